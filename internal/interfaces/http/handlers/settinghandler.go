package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shelfwatch/internal/application/setting/dto"
	"shelfwatch/internal/interfaces/http/middleware"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

// SettingHandler reads and writes the caller's notification preference.
type SettingHandler struct {
	getSettings    getNotificationSettingsUseCase
	updateSettings updateNotificationSettingsUseCase
	logger         logger.Interface
}

func NewSettingHandler(
	getSettings getNotificationSettingsUseCase,
	updateSettings updateNotificationSettingsUseCase,
	logger logger.Interface,
) *SettingHandler {
	return &SettingHandler{
		getSettings:    getSettings,
		updateSettings: updateSettings,
		logger:         logger,
	}
}

// GetNotificationSettings handles GET /api/settings/notifications
func (h *SettingHandler) GetNotificationSettings(c *gin.Context) {
	tenant := middleware.SubjectFrom(c)

	settings, err := h.getSettings.Execute(c.Request.Context(), tenant.ID)
	if err != nil {
		h.logger.Errorw("failed to get notification settings", "tenant_id", tenant.ID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", settings)
}

// UpdateNotificationSettings handles PUT /api/settings/notifications
func (h *SettingHandler) UpdateNotificationSettings(c *gin.Context) {
	tenant := middleware.SubjectFrom(c)

	var req dto.UpdateNotificationSettingsRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for notification settings", "tenant_id", tenant.ID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	settings, err := h.updateSettings.Execute(c.Request.Context(), tenant.ID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "notification settings updated", settings)
}
