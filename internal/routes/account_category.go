package routes

import (
	"net/http"

	"MeuBolso/internal/contracts"
	"MeuBolso/internal/domain/accountcategory"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateAccountCategory(c *gin.Context) {
	var body contracts.AccountCategoryCreateRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryEntity := accountcategory.AccountCategory{
		UserId: &userID,
		Name:   body.Name,
		Type:   accountcategory.Types(body.Type),
	}

	ctx := c.Request.Context()
	if err := h.AccountCategoryService.Create(ctx, &categoryEntity); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Categoria de conta criada com sucesso", categoryEntity)
}

func (h *Handler) ListAccountCategories(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	categories, total, err := h.AccountCategoryService.List(ctx, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, pkg.NewPaginatedResponse(categories, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetAccountCategory(c *gin.Context) {
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
	categoryEntity, err := h.AccountCategoryService.GetByID(ctx, categoryID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, categoryEntity)
}

func (h *Handler) UpdateAccountCategory(c *gin.Context) {
	categoryID, err := h.parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.AccountCategoryUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var categoryType *accountcategory.Types
	if body.Type != nil {
		t := accountcategory.Types(*body.Type)
		categoryType = &t
	}

	ctx := c.Request.Context()
	if err := h.AccountCategoryService.Update(ctx, categoryID, userID, body.Name, categoryType); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Categoria de conta atualizada com sucesso", nil)
}

func (h *Handler) DeleteAccountCategory(c *gin.Context) {
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
	if err := h.AccountCategoryService.Delete(ctx, categoryID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Categoria de conta excluída com sucesso", nil)
}
