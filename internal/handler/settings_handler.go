package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-exams-api/internal/models"
	"github.com/noah-isme/school-exams-api/internal/service"
	appErrors "github.com/noah-isme/school-exams-api/pkg/errors"
	"github.com/noah-isme/school-exams-api/pkg/response"
)

type settingsService interface {
	Current(ctx context.Context) (*models.GlobalSettings, error)
	Update(ctx context.Context, req service.UpdateSettingsRequest) (*models.GlobalSettings, error)
}

// SettingsHandler exposes the global settings.
type SettingsHandler struct {
	settings settingsService
}

func NewSettingsHandler(settings settingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get godoc
// @Summary Get global settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}

// Update godoc
// @Summary Replace global settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body service.UpdateSettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	settings, err := h.settings.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}
