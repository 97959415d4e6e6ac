package dashboard

import (
	"context"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/remote"
)

// statsRepository implements domain.StatsRepository against the remote
// GraphQL API.
type statsRepository struct {
	client *remote.Client
}

// NewRepository creates a StatsRepository backed by the remote API.
func NewRepository(client *remote.Client) domain.StatsRepository {
	return &statsRepository{client: client}
}

func (r *statsRepository) DashboardStats(ctx context.Context, startDate, endDate string) (*domain.DashboardStats, error) {
	query := `
		query getDashboardStats($startDate: String!, $endDate: String!) {
			getDashboardStats(startDate: $startDate, endDate: $endDate) {
				totalSales
				totalOrders
				totalUsers
				allTimePendingOrders
				currentPendingOrders
				dailyRevenue { day revenue }
				newUsers { day count }
				topCategories { name value }
			}
		}`

	var resp struct {
		Stats *domain.DashboardStats `json:"getDashboardStats"`
	}
	vars := map[string]any{"startDate": startDate, "endDate": endDate}
	if err := r.client.Run(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Stats == nil {
		return nil, domain.NewAppError(domain.CodeUpstream, "remote API returned no statistics", nil)
	}
	return resp.Stats, nil
}

func (r *statsRepository) ReportStats(ctx context.Context, startDate, endDate string) (*domain.ReportStats, error) {
	query := `
		query getReportStats($startDate: String!, $endDate: String!) {
			getReportStats(startDate: $startDate, endDate: $endDate) {
				totalRevenue
				totalOrders
				totalUsers
				pendingOrders
				dailyRevenue { day revenue }
				topCategories { name value }
			}
		}`

	var resp struct {
		Stats *domain.ReportStats `json:"getReportStats"`
	}
	vars := map[string]any{"startDate": startDate, "endDate": endDate}
	if err := r.client.Run(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Stats == nil {
		return nil, domain.NewAppError(domain.CodeUpstream, "remote API returned no statistics", nil)
	}
	return resp.Stats, nil
}
