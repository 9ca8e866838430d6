package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "policy-vault.backend/internal/domain/errors"
	"policy-vault.backend/internal/interfaces/http/middleware"
	"policy-vault.backend/internal/interfaces/http/response"
	"policy-vault.backend/internal/usecases"
)

// DashboardHandler serves derived portfolio statistics
type DashboardHandler struct {
	dashboardUsecase *usecases.DashboardUsecase
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardUsecase *usecases.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

// GetStats returns aggregate statistics over the user's policies
// GET /api/policies/dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	stats, err := h.dashboardUsecase.Compute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
