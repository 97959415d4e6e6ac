package domain

import "context"

// DailyRevenue is one day of revenue within a reporting range.
type DailyRevenue struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}

// DailyCount is one day of counted events (e.g. new signups).
type DailyCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// CategoryShare is a category's share of sales within a reporting range.
type CategoryShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DashboardStats is the landing-page statistics block.
type DashboardStats struct {
	TotalSales           float64         `json:"totalSales"`
	TotalOrders          int             `json:"totalOrders"`
	TotalUsers           int             `json:"totalUsers"`
	AllTimePendingOrders int             `json:"allTimePendingOrders"`
	CurrentPendingOrders int             `json:"currentPendingOrders"`
	DailyRevenue         []DailyRevenue  `json:"dailyRevenue"`
	NewUsers             []DailyCount    `json:"newUsers"`
	TopCategories        []CategoryShare `json:"topCategories"`
}

// ReportStats is the reports-page statistics block.
type ReportStats struct {
	TotalRevenue  float64         `json:"totalRevenue"`
	TotalOrders   int             `json:"totalOrders"`
	TotalUsers    int             `json:"totalUsers"`
	PendingOrders int             `json:"pendingOrders"`
	DailyRevenue  []DailyRevenue  `json:"dailyRevenue"`
	TopCategories []CategoryShare `json:"topCategories"`
}

// StatsRepository is the remote-API access interface for analytics.
type StatsRepository interface {
	DashboardStats(ctx context.Context, startDate, endDate string) (*DashboardStats, error)
	ReportStats(ctx context.Context, startDate, endDate string) (*ReportStats, error)
}

// StatsService is the console-side interface for analytics. Date ranges are
// validated before the remote call.
type StatsService interface {
	GetDashboardStats(ctx context.Context, startDate, endDate string) (*DashboardStats, error)
	GetReportStats(ctx context.Context, startDate, endDate string) (*ReportStats, error)
}
