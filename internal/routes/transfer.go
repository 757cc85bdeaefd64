package routes

import (
	"net/http"

	"MeuBolso/internal/contracts"
	"MeuBolso/internal/domain/transfer"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (h *Handler) CreateTransfer(c *gin.Context) {
	var body contracts.TransferCreateRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	fromID, err := pkg.ParseULID(body.FromAccountId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("from_account_id", "formato inválido"))
		return
	}

	toID, err := pkg.ParseULID(body.ToAccountId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("to_account_id", "formato inválido"))
		return
	}

	fee := decimal.Zero
	if body.Fee != nil {
		fee = *body.Fee
	}

	transferEntity := transfer.Transfer{
		UserId:        userID,
		FromAccountId: fromID,
		ToAccountId:   toID,
		Amount:        body.Amount,
		Fee:           fee,
		Date:          body.Date,
		Note:          body.Note,
	}

	ctx := c.Request.Context()
	if err := h.TransferService.Create(ctx, &transferEntity); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Transferência realizada com sucesso", transferEntity)
}

func (h *Handler) ListTransfers(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	transfers, total, err := h.TransferService.List(ctx, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, pkg.NewPaginatedResponse(transfers, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetTransfer(c *gin.Context) {
	transferID, err := h.parseIDParam(c)
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
	transferEntity, err := h.TransferService.GetByID(ctx, transferID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, transferEntity)
}

func (h *Handler) DeleteTransfer(c *gin.Context) {
	transferID, err := h.parseIDParam(c)
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
	if err := h.TransferService.Delete(ctx, transferID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Transferência excluída com sucesso", nil)
}
