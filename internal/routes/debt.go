package routes

import (
	"net/http"

	"MeuBolso/internal/contracts"
	"MeuBolso/internal/domain/debt"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateDebt(c *gin.Context) {
	var body contracts.DebtCreateRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	debtEntity := debt.Debt{
		UserId:      userID,
		ContactName: body.ContactName,
		Direction:   debt.Direction(body.Direction),
		Amount:      body.Amount,
		DueDate:     body.DueDate,
		Note:        body.Note,
	}

	ctx := c.Request.Context()
	if err := h.DebtService.Create(ctx, &debtEntity); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Dívida criada com sucesso", debtEntity)
}

func (h *Handler) ListDebts(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var status *debt.Status
	if raw := c.Query("status"); raw != "" {
		s := debt.Status(raw)
		if s != debt.StatusOpen && s != debt.StatusSettled {
			h.respondError(c, appErrors.NewValidationError("status", "deve ser open ou settled"))
			return
		}
		status = &s
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	debts, total, err := h.DebtService.List(ctx, userID, status, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, pkg.NewPaginatedResponse(debts, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetDebt(c *gin.Context) {
	debtID, err := h.parseIDParam(c)
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
	debtEntity, err := h.DebtService.GetByID(ctx, debtID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, debtEntity)
}

func (h *Handler) ListDebtSettlements(c *gin.Context) {
	debtID, err := h.parseIDParam(c)
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
	settlements, err := h.DebtService.Settlements(ctx, debtID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, settlements)
}

func (h *Handler) UpdateDebt(c *gin.Context) {
	debtID, err := h.parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.DebtUpdateRequest
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
	if err := h.DebtService.Update(ctx, debtID, userID, &debt.UpdateRequest{
		ContactName: body.ContactName,
		DueDate:     body.DueDate,
		Note:        body.Note,
	}); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Dívida atualizada com sucesso", nil)
}

func (h *Handler) SettleDebt(c *gin.Context) {
	debtID, err := h.parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.DebtSettlementRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	accountID, err := pkg.ParseULID(body.AccountId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("account_id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.DebtService.Settle(ctx, debtID, userID, &debt.SettlementRequest{
		AccountId: accountID,
		Amount:    body.Amount,
		Date:      body.Date,
		Note:      body.Note,
	}); err != nil {
		h.respondError(c, err)
		return
	}

	debtEntity, err := h.DebtService.GetByID(ctx, debtID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Baixa registrada com sucesso", debtEntity)
}

func (h *Handler) DeleteDebt(c *gin.Context) {
	debtID, err := h.parseIDParam(c)
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
	if err := h.DebtService.Delete(ctx, debtID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Dívida excluída com sucesso", nil)
}
