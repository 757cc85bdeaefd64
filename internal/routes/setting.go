package routes

import (
	"net/http"

	"MeuBolso/internal/contracts"
	appErrors "MeuBolso/internal/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListSettings(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	settings, err := h.SettingService.GetAll(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, settings)
}

func (h *Handler) GetSetting(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	key := c.Param("key")
	if key == "" {
		h.respondError(c, appErrors.NewValidationError("key", "é obrigatório"))
		return
	}

	ctx := c.Request.Context()
	settingEntity, err := h.SettingService.GetByKey(ctx, userID, key)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, settingEntity)
}

func (h *Handler) UpsertSettings(c *gin.Context) {
	var body contracts.SettingsUpsertRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.SettingService.Set(ctx, userID, body.Settings); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Configurações salvas com sucesso", nil)
}
