package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/enrollment-backend/internal/response"
	"github.com/stemsi/enrollment-backend/internal/service"
)

// DashboardHandler handles registry summary endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboardData godoc
// GET /api/v1/dashboard
// Returns course, seat and waitlist totals plus a per-course load table.
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	response.Success(c, http.StatusOK, h.dashboardService.GetDashboardData())
}
