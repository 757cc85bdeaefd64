package routes

import (
	"net/http"

	"MeuBolso/internal/contracts"
	"MeuBolso/internal/domain/account"
	"MeuBolso/internal/domain/accountcategory"
	"MeuBolso/internal/domain/auth"
	"MeuBolso/internal/domain/category"
	"MeuBolso/internal/domain/dashboard"
	"MeuBolso/internal/domain/debt"
	"MeuBolso/internal/domain/importer"
	"MeuBolso/internal/domain/setting"
	"MeuBolso/internal/domain/tag"
	"MeuBolso/internal/domain/transaction"
	"MeuBolso/internal/domain/transfer"
	"MeuBolso/internal/domain/user"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/logger"
	"MeuBolso/internal/middleware"
	"MeuBolso/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type Handler struct {
	JwtService             *middleware.JwtService
	AuthService            *auth.Service
	UserService            *user.Service
	AccountCategoryService *accountcategory.Service
	AccountService         *account.Service
	CategoryService        *category.Service
	TagService             *tag.Service
	TransactionService     *transaction.Service
	TransferService        *transfer.Service
	DebtService            *debt.Service
	ImportService          *importer.Service
	SettingService         *setting.Service
	DashboardService       *dashboard.Service
}

func (h *Handler) GetUserIDFromContext(c *gin.Context) (ulid.ULID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	userID, err := pkg.ParseULID(userIDStr.(string))
	if err != nil {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithError(err)
	}

	return userID, nil
}

func (h *Handler) parsePagination(c *gin.Context) *pkg.PaginationParams {
	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

	var pageNum, limitNum int
	if p, err := pkg.ParseInt(page); err == nil && p > 0 {
		pageNum = p
	} else {
		pageNum = 1
	}

	if l, err := pkg.ParseInt(limit); err == nil && l > 0 {
		limitNum = l
	} else {
		limitNum = 10
	}

	return &pkg.PaginationParams{
		Page:  pageNum,
		Limit: limitNum,
	}
}

func (h *Handler) parseIDParam(c *gin.Context) (ulid.ULID, error) {
	id, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		return ulid.ULID{}, appErrors.NewValidationError("id", "formato inválido")
	}
	return id, nil
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Error().Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")

	c.JSON(appErr.StatusCode, contracts.ErrorResponse{
		Status:  "error",
		Message: appErr.Message,
		Errors:  appErr.Details,
	})
}

func (h *Handler) respondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, contracts.Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func (h *Handler) respondData(c *gin.Context, data interface{}) {
	h.respondSuccess(c, http.StatusOK, "", data)
}
