package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdoc-api/internal/application/service"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// queryInt reads a positive integer query parameter. Anything else is 0,
// which the service treats as its default.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Summary handles the headline figures
// @Summary Dashboard Summary
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard summary retrieved successfully", summary)
}

// Trends handles the sales trend
// @Summary Sales Trend
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param days query int false "Daily points, default 30"
// @Param months query int false "Monthly points instead of daily"
// @Success 200 {object} response.APIResponse
// @Router /dashboard/trends [get]
func (h *DashboardHandler) Trends(c *gin.Context) {
	var (
		points []service.SalesPoint
		err    error
	)
	if months := queryInt(c, "months"); months > 0 {
		points, err = h.dashboardService.GetMonthlyTrend(c.Request.Context(), months)
	} else {
		points, err = h.dashboardService.GetDailyTrend(c.Request.Context(), queryInt(c, "days"))
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales trend retrieved successfully", points)
}

// Ranking handles the best sellers
// @Summary Top Products and Customers
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Rows per list, default 5"
// @Success 200 {object} response.APIResponse
// @Router /dashboard/ranking [get]
func (h *DashboardHandler) Ranking(c *gin.Context) {
	ranking, err := h.dashboardService.GetRanking(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ranking retrieved successfully", ranking)
}
