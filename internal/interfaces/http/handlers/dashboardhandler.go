package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shelfwatch/internal/interfaces/http/middleware"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

type DashboardHandler struct {
	getDashboard getDashboardUseCase
	logger       logger.Interface
}

func NewDashboardHandler(getDashboard getDashboardUseCase, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		getDashboard: getDashboard,
		logger:       logger,
	}
}

// GetSummary handles GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	tenant := middleware.SubjectFrom(c)

	summary, err := h.getDashboard.Execute(c.Request.Context(), tenant)
	if err != nil {
		h.logger.Errorw("failed to build dashboard summary", "tenant_id", tenant.ID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}
