package routes

import (
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func (h *Handler) GetDashboard(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var accountID *ulid.ULID
	if raw := c.Query("account_id"); raw != "" {
		parsed, err := pkg.ParseULID(raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("account_id", "formato inválido"))
			return
		}
		accountID = &parsed
	}

	month := 0
	if raw := c.Query("month"); raw != "" {
		if m, err := pkg.ParseInt(raw); err == nil && m >= 1 && m <= 12 {
			month = m
		} else {
			h.respondError(c, appErrors.NewValidationError("month", "deve estar entre 1 e 12"))
			return
		}
	}

	year := 0
	if raw := c.Query("year"); raw != "" {
		if y, err := pkg.ParseInt(raw); err == nil && y > 0 {
			year = y
		} else {
			h.respondError(c, appErrors.NewValidationError("year", "formato inválido"))
			return
		}
	}

	ctx := c.Request.Context()
	response, err := h.DashboardService.GetDashboard(ctx, userID, accountID, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, response)
}
