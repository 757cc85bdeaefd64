package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	appErrors "MeuBolso/internal/errors"
)

type OAuthUserInfo struct {
	Email   string
	Name    string
	Picture string
}

type OAuthProvider interface {
	VerifyToken(ctx context.Context, credential string) (*OAuthUserInfo, error)
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
}

// generateSecurePassword cria a senha aleatória de contas provisionadas via
// OAuth, que nunca é usada para login direto.
func generateSecurePassword() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

func GenerateState() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
