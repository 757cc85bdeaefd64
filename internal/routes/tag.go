package routes

import (
	"net/http"

	"MeuBolso/internal/contracts"
	"MeuBolso/internal/domain/tag"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateTag(c *gin.Context) {
	var body contracts.TagCreateRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	tagEntity := tag.Tag{
		UserId: userID,
		Name:   body.Name,
	}

	ctx := c.Request.Context()
	if err := h.TagService.Create(ctx, &tagEntity); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Tag criada com sucesso", tagEntity)
}

func (h *Handler) ListTags(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var search *string
	if raw := c.Query("search"); raw != "" {
		search = &raw
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	tags, total, err := h.TagService.List(ctx, userID, search, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, pkg.NewPaginatedResponse(tags, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetTag(c *gin.Context) {
	tagID, err := h.parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	tagEntity, err := h.TagService.GetByID(ctx, tagID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, tagEntity)
}

func (h *Handler) UpdateTag(c *gin.Context) {
	tagID, err := h.parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.TagUpdateRequest
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
	if err := h.TagService.Update(ctx, tagID, userID, body.Name); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Tag atualizada com sucesso", nil)
}

func (h *Handler) DeleteTag(c *gin.Context) {
	tagID, err := h.parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.TagService.Delete(ctx, tagID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Tag excluída com sucesso", nil)
}
