package routes

import (
	"net/http"

	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateImport(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("file", "arquivo é obrigatório"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	record, err := h.ImportService.Import(ctx, userID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Planilha importada com sucesso", record)
}

func (h *Handler) ListImports(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	records, total, err := h.ImportService.List(ctx, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, pkg.NewPaginatedResponse(records, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetImport(c *gin.Context) {
	importID, err := h.parseIDParam(c)
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
	record, err := h.ImportService.GetByID(ctx, importID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, record)
}

func (h *Handler) DeleteImport(c *gin.Context) {
	importID, err := h.parseIDParam(c)
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
	if err := h.ImportService.Delete(ctx, importID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Importação excluída com sucesso", nil)
}
