package routes

import (
	"net/http"

	"MeuBolso/internal/contracts"
	"MeuBolso/internal/domain/account"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func (h *Handler) CreateAccount(c *gin.Context) {
	var body contracts.AccountCreateRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := pkg.ParseULID(body.AccountCategoryId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("account_category_id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	created, err := h.AccountService.Create(ctx, &account.CreateRequest{
		UserId:            userID,
		AccountCategoryId: categoryID,
		Name:              body.Name,
		InitialBalance:    body.InitialBalance,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Conta criada com sucesso", created)
}

func (h *Handler) ListAccounts(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var categoryID *ulid.ULID
	if raw := c.Query("account_category_id"); raw != "" {
		parsed, err := pkg.ParseULID(raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("account_category_id", "formato inválido"))
			return
		}
		categoryID = &parsed
	}

	var search *string
	if raw := c.Query("search"); raw != "" {
		search = &raw
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	accounts, total, err := h.AccountService.List(ctx, userID, categoryID, search, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, pkg.NewPaginatedResponse(accounts, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetAccount(c *gin.Context) {
	accountID, err := h.parseIDParam(c)
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
	accountEntity, err := h.AccountService.GetByID(ctx, accountID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, accountEntity)
}

func (h *Handler) GetTotalBalance(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	total, err := h.AccountService.GetTotalBalance(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, contracts.AccountBalanceData{TotalBalance: total})
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	accountID, err := h.parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.AccountUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var categoryID *ulid.ULID
	if body.AccountCategoryId != nil {
		parsed, err := pkg.ParseULID(*body.AccountCategoryId)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("account_category_id", "formato inválido"))
			return
		}
		categoryID = &parsed
	}

	ctx := c.Request.Context()
	if err := h.AccountService.Update(ctx, accountID, userID, &account.UpdateRequest{
		Name:              body.Name,
		AccountCategoryId: categoryID,
		InitialBalance:    body.InitialBalance,
	}); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Conta atualizada com sucesso", nil)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	accountID, err := h.parseIDParam(c)
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
	if err := h.AccountService.Delete(ctx, accountID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Conta excluída com sucesso", nil)
}
