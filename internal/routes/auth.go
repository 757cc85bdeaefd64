package routes

import (
	"net/http"

	"MeuBolso/internal/contracts"
	"MeuBolso/internal/domain/auth"
	"MeuBolso/internal/domain/user"
	appErrors "MeuBolso/internal/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Registration(c *gin.Context) {
	var body contracts.RegisterRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	newUser := user.User{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	}

	ctx := c.Request.Context()
	if err := h.AuthService.Register(ctx, &newUser); err != nil {
		h.respondError(c, err)
		return
	}

	token, refresh, err := h.issueTokens(newUser.Id.String())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Usuário cadastrado com sucesso", contracts.AuthData{
		Token:        token,
		RefreshToken: refresh,
		User:         &newUser,
	})
}

func (h *Handler) Authenticate(c *gin.Context) {
	var body contracts.LoginRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	authenticated, err := h.AuthService.Login(ctx, auth.Login{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, refresh, err := h.issueTokens(authenticated.Id.String())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Login realizado com sucesso", contracts.AuthData{
		Token:        token,
		RefreshToken: refresh,
		User:         authenticated,
	})
}

func (h *Handler) GoogleAuth(c *gin.Context) {
	var body contracts.GoogleAuthRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	authenticated, err := h.AuthService.GoogleLogin(ctx, body.Credential)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, refresh, err := h.issueTokens(authenticated.Id.String())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Login realizado com sucesso", contracts.AuthData{
		Token:        token,
		RefreshToken: refresh,
		User:         authenticated,
	})
}

func (h *Handler) GoogleAuthURL(c *gin.Context) {
	url, state, err := h.AuthService.GoogleAuthURL()
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, contracts.GoogleAuthURLData{
		URL:   url,
		State: state,
	})
}

func (h *Handler) GoogleCallback(c *gin.Context) {
	ctx := c.Request.Context()
	authenticated, err := h.AuthService.GoogleCallback(ctx, c.Query("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, refresh, err := h.issueTokens(authenticated.Id.String())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Login realizado com sucesso", contracts.AuthData{
		Token:        token,
		RefreshToken: refresh,
		User:         authenticated,
	})
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var body contracts.RefreshRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	token, refresh, err := h.JwtService.RefreshToken(c, body.RefreshToken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Token renovado com sucesso", contracts.TokenPair{
		Token:        token,
		RefreshToken: refresh,
	})
}

// Logout é stateless: o cliente descarta os tokens. A rota existe para o
// fluxo do app e para um eventual bloqueio de token no futuro.
func (h *Handler) Logout(c *gin.Context) {
	h.respondSuccess(c, http.StatusOK, "Logout realizado com sucesso", nil)
}

func (h *Handler) Me(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	current, err := h.UserService.GetByID(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondData(c, current)
}

func (h *Handler) issueTokens(userID string) (string, string, error) {
	token, err := h.JwtService.GenerateToken(userID)
	if err != nil {
		return "", "", err
	}

	refresh, err := h.JwtService.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", err
	}

	return token, refresh, nil
}
