package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/handsoff/console/internal/middleware"
	"github.com/handsoff/console/internal/models"
	"github.com/handsoff/console/internal/services"
	"github.com/handsoff/console/pkg/logger"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	errors           *ErrorHandler
}

func NewDashboardHandler(dashboardService *services.DashboardService, errors *ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		errors:           errors,
	}
}

// Dashboard handles the dashboard page. If any of its backend calls fails
// the page is rendered empty with an error.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	data := gin.H{
		"Title":     "Dashboard",
		"Dashboard": &models.Dashboard{Stats: &models.DashboardStats{}, TokenUsage: &models.TokenUsage{}},
		"Charts":    &services.DashboardCharts{},
	}

	dashboard, err := h.dashboardService.Load(c.Request.Context(), middleware.Token(c))
	if err != nil {
		if h.errors.HandleAuth(c, err) {
			return
		}
		logError(c, err)
		data["Error"] = "Failed to load dashboard data"
		render(c, http.StatusOK, "dashboard", data)
		return
	}

	charts, err := services.BuildDashboardCharts(dashboard)
	if err != nil {
		logger.WithError(err).Error("failed to build dashboard charts")
		charts = &services.DashboardCharts{}
	}

	data["Dashboard"] = dashboard
	data["Charts"] = charts
	render(c, http.StatusOK, "dashboard", data)
}
