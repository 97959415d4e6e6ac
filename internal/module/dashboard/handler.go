package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/pkg"
)

// DashboardHandler handles REST API requests for console statistics.
type DashboardHandler struct {
	svc domain.StatsService
}

// NewHandler creates a DashboardHandler with the given service.
func NewHandler(svc domain.StatsService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats handles GET /api/v1/dashboard.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.GetDashboardStats(c.Request.Context(),
		c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, stats)
}

// Report handles GET /api/v1/reports.
func (h *DashboardHandler) Report(c *gin.Context) {
	stats, err := h.svc.GetReportStats(c.Request.Context(),
		c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, stats)
}
