package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/crm/internal/service"
)

// DashboardHTTPHandler is http handler for dashboard endpoint
type DashboardHTTPHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHTTPHandler builds new DashboardHTTPHandler
func NewDashboardHTTPHandler(dashboardSvc service.DashboardService) *DashboardHTTPHandler {
	return &DashboardHTTPHandler{dashboardSvc: dashboardSvc}
}

// Get gets dashboard statistics
// @Summary     Get dashboard statistics
// @Description Recomputes summary statistics from current store contents
// @Tags        dashboard
// @Produce     json
// @Success     200    {object} model.DashboardStats
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/dashboard [get]
func (h *DashboardHTTPHandler) Get(c echo.Context) error {
	stats, err := h.dashboardSvc.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
