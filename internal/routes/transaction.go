package routes

import (
	"net/http"
	"time"

	"MeuBolso/internal/contracts"
	"MeuBolso/internal/domain/transaction"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func (h *Handler) CreateTransaction(c *gin.Context) {
	var body contracts.TransactionCreateRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactionEntity, err := buildTransaction(&body, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.TransactionService.Create(ctx, transactionEntity); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Transação criada com sucesso", transactionEntity)
}

func (h *Handler) CreateTransactionsBulk(c *gin.Context) {
	var body contracts.TransactionBulkCreateRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactions := make([]*transaction.Transaction, 0, len(body.Transactions))
	for i := range body.Transactions {
		transactionEntity, err := buildTransaction(&body.Transactions[i], userID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		transactions = append(transactions, transactionEntity)
	}

	ctx := c.Request.Context()
	if err := h.TransactionService.CreateBulk(ctx, userID, transactions); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Transações criadas com sucesso", transactions)
}

func (h *Handler) GetTransactions(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filter, err := h.parseTransactionFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	transactions, total, err := h.TransactionService.List(ctx, userID, filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, pkg.NewPaginatedResponse(transactions, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetTransaction(c *gin.Context) {
	transactionID, err := h.parseIDParam(c)
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
	transactionEntity, err := h.TransactionService.GetByID(ctx, transactionID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, transactionEntity)
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	transactionID, err := h.parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.TransactionUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	createBody := contracts.TransactionCreateRequest(body)
	transactionEntity, err := buildTransaction(&createBody, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	transactionEntity.Id = transactionID

	ctx := c.Request.Context()
	if err := h.TransactionService.Update(ctx, transactionEntity); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Transação atualizada com sucesso", transactionEntity)
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	transactionID, err := h.parseIDParam(c)
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
	if err := h.TransactionService.Delete(ctx, transactionID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Transação excluída com sucesso", nil)
}

func buildTransaction(body *contracts.TransactionCreateRequest, userID ulid.ULID) (*transaction.Transaction, error) {
	accountID, err := pkg.ParseULID(body.AccountId)
	if err != nil {
		return nil, appErrors.NewValidationError("account_id", "formato inválido")
	}

	categoryID, err := pkg.ParseULID(body.CategoryId)
	if err != nil {
		return nil, appErrors.NewValidationError("category_id", "formato inválido")
	}

	tagIDs := make([]ulid.ULID, 0, len(body.TagIds))
	for _, raw := range body.TagIds {
		tagID, err := pkg.ParseULID(raw)
		if err != nil {
			return nil, appErrors.NewValidationError("tag_ids", "formato inválido")
		}
		tagIDs = append(tagIDs, tagID)
	}

	return &transaction.Transaction{
		UserId:                userID,
		AccountId:             accountID,
		TransactionCategoryId: categoryID,
		Type:                  transaction.Types(body.Type),
		Amount:                body.Amount,
		Date:                  body.Date,
		Note:                  body.Note,
		TagIds:                tagIDs,
	}, nil
}

func (h *Handler) parseTransactionFilter(c *gin.Context) (*transaction.Filter, error) {
	filter := &transaction.Filter{
		SortBy:  c.DefaultQuery("sort_by", "date"),
		SortDir: c.DefaultQuery("sort_dir", "desc"),
	}

	if raw := c.Query("account_id"); raw != "" {
		parsed, err := pkg.ParseULID(raw)
		if err != nil {
			return nil, appErrors.NewValidationError("account_id", "formato inválido")
		}
		filter.AccountId = &parsed
	}

	if raw := c.Query("category_id"); raw != "" {
		parsed, err := pkg.ParseULID(raw)
		if err != nil {
			return nil, appErrors.NewValidationError("category_id", "formato inválido")
		}
		filter.CategoryId = &parsed
	}

	if raw := c.Query("tag_id"); raw != "" {
		parsed, err := pkg.ParseULID(raw)
		if err != nil {
			return nil, appErrors.NewValidationError("tag_id", "formato inválido")
		}
		filter.TagId = &parsed
	}

	if raw := c.Query("type"); raw != "" {
		t := transaction.Types(raw)
		if !t.IsValid() {
			return nil, appErrors.NewValidationError("type", "deve ser income ou expense")
		}
		filter.Type = &t
	}

	if raw := c.Query("flag"); raw != "" {
		f := transaction.Flag(raw)
		if !f.IsValid() {
			return nil, appErrors.NewValidationError("flag", "flag inválida")
		}
		filter.Flag = &f
	}

	if raw := c.Query("date_from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, appErrors.NewValidationError("date_from", "use o formato AAAA-MM-DD")
		}
		filter.DateFrom = &parsed
	}

	if raw := c.Query("date_to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, appErrors.NewValidationError("date_to", "use o formato AAAA-MM-DD")
		}
		filter.DateTo = &parsed
	}

	if raw := c.Query("search"); raw != "" {
		filter.Search = &raw
	}

	return filter, nil
}
