package dashboard

import (
	"context"
	"testing"

	"github.com/freshmart/admin-console/internal/domain"
)

// fakeRepo records the range it was asked for.
type fakeRepo struct {
	start, end string
}

func (r *fakeRepo) DashboardStats(ctx context.Context, startDate, endDate string) (*domain.DashboardStats, error) {
	r.start, r.end = startDate, endDate
	return &domain.DashboardStats{TotalOrders: 3}, nil
}

func (r *fakeRepo) ReportStats(ctx context.Context, startDate, endDate string) (*domain.ReportStats, error) {
	r.start, r.end = startDate, endDate
	return &domain.ReportStats{TotalOrders: 3}, nil
}

func TestGetDashboardStats(t *testing.T) {
	t.Run("happy_explicit_range", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo)

		if _, err := svc.GetDashboardStats(context.Background(), "2026-08-01", "2026-08-31"); err != nil {
			t.Fatal(err)
		}
		if repo.start != "2026-08-01" || repo.end != "2026-08-31" {
			t.Errorf("range not passed through: %s..%s", repo.start, repo.end)
		}
	})

	t.Run("happy_empty_range_defaults", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo)

		if _, err := svc.GetDashboardStats(context.Background(), "", ""); err != nil {
			t.Fatal(err)
		}
		if repo.start == "" || repo.end == "" {
			t.Error("expected defaulted range, got empty dates")
		}
	})

	t.Run("error_malformed_date", func(t *testing.T) {
		svc := NewService(&fakeRepo{})

		if _, err := svc.GetDashboardStats(context.Background(), "08/01/2026", "2026-08-31"); !domain.IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("error_inverted_range", func(t *testing.T) {
		svc := NewService(&fakeRepo{})

		if _, err := svc.GetReportStats(context.Background(), "2026-08-31", "2026-08-01"); !domain.IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}
