package middleware

import (
	"fmt"
	"strings"
	"time"

	"MeuBolso/config"
	"MeuBolso/internal/contracts"
	"MeuBolso/internal/domain/user"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type JwtService struct {
	secret      []byte
	ttl         time.Duration
	refreshTTL  time.Duration
	userService *user.Service
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func NewJwtService(cfg config.JWTConfig, userService *user.Service) (*JwtService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("segredo JWT não configurado")
	}

	return &JwtService{
		secret:      []byte(cfg.Secret),
		ttl:         cfg.TTL,
		refreshTTL:  cfg.RefreshTTL,
		userService: userService,
	}, nil
}

func (j *JwtService) GenerateToken(userID string) (string, error) {
	return j.sign(userID, j.ttl)
}

func (j *JwtService) GenerateRefreshToken(userID string) (string, error) {
	return j.sign(userID, j.refreshTTL)
}

func (j *JwtService) sign(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}

	return signed, nil
}

func (j *JwtService) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.ErrUnauthorized.WithError(err)
	}

	if claims.UserID == "" {
		return nil, appErrors.ErrUnauthorized
	}

	return claims, nil
}

// RefreshToken valida o refresh token, confirma que o usuário ainda existe e
// emite um novo par de tokens.
func (j *JwtService) RefreshToken(c *gin.Context, refreshToken string) (string, string, error) {
	claims, err := j.ParseToken(refreshToken)
	if err != nil {
		return "", "", err
	}

	userID, err := pkg.ParseULID(claims.UserID)
	if err != nil {
		return "", "", appErrors.ErrUnauthorized.WithError(err)
	}

	u, err := j.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return "", "", appErrors.ErrUnauthorized.WithError(err)
	}

	access, err := j.GenerateToken(u.Id.String())
	if err != nil {
		return "", "", err
	}

	refresh, err := j.GenerateRefreshToken(u.Id.String())
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func AuthMiddleware(jwtSvc *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Token não informado")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Formato do token inválido")
			return
		}

		claims, err := jwtSvc.ParseToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Token inválido ou expirado")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(appErrors.ErrUnauthorized.StatusCode, contracts.ErrorResponse{
		Status:  "error",
		Message: message,
	})
	c.Abort()
}
