package dashboard

import (
	"context"
	"time"

	"github.com/freshmart/admin-console/internal/domain"
)

// dateLayout is the wire format for report date ranges.
const dateLayout = "2006-01-02"

// statsService implements domain.StatsService.
type statsService struct {
	repo domain.StatsRepository
}

// NewService creates a StatsService with the given repository.
func NewService(repo domain.StatsRepository) domain.StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) GetDashboardStats(ctx context.Context, startDate, endDate string) (*domain.DashboardStats, error) {
	start, end, err := normalizeRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.repo.DashboardStats(ctx, start, end)
}

func (s *statsService) GetReportStats(ctx context.Context, startDate, endDate string) (*domain.ReportStats, error) {
	start, end, err := normalizeRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.repo.ReportStats(ctx, start, end)
}

// normalizeRange validates a date range. An empty range defaults to the
// last 30 days, matching what the dashboard shows on first load.
func normalizeRange(startDate, endDate string) (string, string, error) {
	if startDate == "" && endDate == "" {
		now := time.Now()
		return now.AddDate(0, 0, -30).Format(dateLayout), now.Format(dateLayout), nil
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return "", "", domain.NewAppError(domain.CodeValidation, "startDate must be YYYY-MM-DD", nil)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return "", "", domain.NewAppError(domain.CodeValidation, "endDate must be YYYY-MM-DD", nil)
	}
	if end.Before(start) {
		return "", "", domain.NewAppError(domain.CodeValidation, "endDate must not be before startDate", nil)
	}
	return startDate, endDate, nil
}
