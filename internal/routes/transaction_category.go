package routes

import (
	"net/http"

	"MeuBolso/internal/contracts"
	"MeuBolso/internal/domain/category"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCategory(c *gin.Context) {
	var body contracts.TransactionCategoryCreateRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryEntity := category.TransactionCategory{
		UserId: &userID,
		Name:   body.Name,
		Type:   category.Types(body.Type),
	}

	ctx := c.Request.Context()
	if err := h.CategoryService.Create(ctx, &categoryEntity); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Categoria criada com sucesso", categoryEntity)
}

func (h *Handler) ListCategories(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var categoryType *category.Types
	if raw := c.Query("type"); raw != "" {
		t := category.Types(raw)
		if !t.IsValid() {
			h.respondError(c, appErrors.NewValidationError("type", "deve ser income ou expense"))
			return
		}
		categoryType = &t
	}

	includeHidden := c.Query("include_hidden") == "true"
	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	categories, total, err := h.CategoryService.List(ctx, userID, categoryType, includeHidden, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, pkg.NewPaginatedResponse(categories, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetCategory(c *gin.Context) {
	categoryID, err := h.parseIDParam(c)
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
	categoryEntity, err := h.CategoryService.GetByID(ctx, categoryID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, categoryEntity)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, err := h.parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.TransactionCategoryUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var categoryType *category.Types
	if body.Type != nil {
		t := category.Types(*body.Type)
		categoryType = &t
	}

	ctx := c.Request.Context()
	if err := h.CategoryService.Update(ctx, categoryID, userID, &category.UpdateRequest{
		Name:   body.Name,
		Type:   categoryType,
		IsHide: body.IsHide,
	}); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Categoria atualizada com sucesso", nil)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, err := h.parseIDParam(c)
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
	if err := h.CategoryService.Delete(ctx, categoryID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Categoria excluída com sucesso", nil)
}
