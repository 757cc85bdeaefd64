package auth

import (
	"context"
	"errors"
	"regexp"

	"MeuBolso/internal/domain/shared"
	"MeuBolso/internal/domain/user"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/logger"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Login struct {
	Email    string
	Password string
}

// DefaultSeeder semeia as categorias padrão (de conta e de transação) do
// usuário recém cadastrado.
type DefaultSeeder interface {
	SeedDefaultsWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) error
}

type Service struct {
	UserService      *user.Service
	AccountDefaults  DefaultSeeder
	CategoryDefaults DefaultSeeder
	OAuthProvider    OAuthProvider
	TxRunner         shared.TxRunner
}

func NewService(
	userSvc *user.Service,
	accountDefaults DefaultSeeder,
	categoryDefaults DefaultSeeder,
	oauthProvider OAuthProvider,
	txRunner shared.TxRunner,
) *Service {
	return &Service{
		UserService:      userSvc,
		AccountDefaults:  accountDefaults,
		CategoryDefaults: categoryDefaults,
		OAuthProvider:    oauthProvider,
		TxRunner:         txRunner,
	}
}

func (s *Service) Login(ctx context.Context, login Login) (*user.User, error) {
	entity, err := s.UserService.GetByEmail(ctx, login.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	if err := PasswordValidate(login.Password, entity.Password); err != nil {
		return nil, err
	}
	return entity, nil
}

// Register cria o usuário e semeia as categorias padrão dele em uma única
// transação de banco.
func (s *Service) Register(ctx context.Context, u *user.User) error {
	exists, err := s.emailExists(ctx, u.Email)
	if err != nil {
		return err
	}
	if exists {
		return appErrors.ErrEmailAlreadyExists
	}
	if err := PasswordRequirements(u.Password); err != nil {
		return err
	}

	return s.createWithDefaults(ctx, u)
}

func (s *Service) GoogleLogin(ctx context.Context, credential string) (*user.User, error) {
	if s.OAuthProvider == nil {
		return nil, appErrors.NewAuthError("OAUTH_NOT_CONFIGURED", "Google OAuth não está configurado")
	}

	if credential == "" {
		return nil, appErrors.NewAuthError("CREDENTIAL_MISSING", "Credencial do Google não fornecida")
	}

	info, err := s.OAuthProvider.VerifyToken(ctx, credential)
	if err != nil {
		return nil, err
	}

	entity, err := s.UserService.GetByEmail(ctx, info.Email)
	if err == nil {
		return entity, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.NewDatabaseError(err)
	}

	password, err := generateSecurePassword()
	if err != nil {
		return nil, err
	}

	name := info.Name
	if name == "" {
		name = "Usuário Google"
	}

	newUser := &user.User{
		Name:     name,
		Email:    info.Email,
		Password: password,
	}
	if err := s.createWithDefaults(ctx, newUser); err != nil {
		return nil, err
	}

	logger.Info().Str("email", info.Email).Msg("usuário provisionado via Google OAuth")

	return newUser, nil
}

// GoogleAuthURL inicia o fluxo de código de autorização, devolvendo a URL
// de consentimento do Google e o state que o cliente deve ecoar no callback.
func (s *Service) GoogleAuthURL() (string, string, error) {
	if s.OAuthProvider == nil {
		return "", "", appErrors.NewAuthError("OAUTH_NOT_CONFIGURED", "Google OAuth não está configurado")
	}

	state, err := GenerateState()
	if err != nil {
		return "", "", err
	}

	url := s.OAuthProvider.GetAuthURL(state)
	if url == "" {
		return "", "", appErrors.NewAuthError("OAUTH_CONFIG_INCOMPLETE", "Fluxo de código requer client secret e redirect URL")
	}

	return url, state, nil
}

// GoogleCallback troca o código de autorização pelo id_token e segue o mesmo
// caminho do login por credencial.
func (s *Service) GoogleCallback(ctx context.Context, code string) (*user.User, error) {
	if s.OAuthProvider == nil {
		return nil, appErrors.NewAuthError("OAUTH_NOT_CONFIGURED", "Google OAuth não está configurado")
	}

	if code == "" {
		return nil, appErrors.NewAuthError("CODE_MISSING", "Código de autorização não fornecido")
	}

	idToken, err := s.OAuthProvider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return s.GoogleLogin(ctx, idToken)
}

func (s *Service) createWithDefaults(ctx context.Context, u *user.User) error {
	return s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		if err := s.UserService.CreateWithTx(ctx, tx, u); err != nil {
			if shared.IsUniqueConstraintError(err) {
				return appErrors.ErrEmailAlreadyExists
			}
			return appErrors.NewDatabaseError(err)
		}
		if err := s.AccountDefaults.SeedDefaultsWithTx(ctx, tx, u.Id); err != nil {
			return err
		}
		return s.CategoryDefaults.SeedDefaultsWithTx(ctx, tx, u.Id)
	})
}

func (s *Service) emailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.UserService.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, appErrors.NewDatabaseError(err)
}

func PasswordRequirements(password string) error {
	if len(password) < 8 {
		return appErrors.NewValidationError("password", "deve conter no mínimo 8 caracteres")
	}
	hasUpper, _ := regexp.MatchString(`[A-Z]`, password)
	if !hasUpper {
		return appErrors.NewValidationError("password", "deve conter ao menos uma letra maiúscula")
	}
	hasDigit, _ := regexp.MatchString(`[0-9]`, password)
	if !hasDigit {
		return appErrors.NewValidationError("password", "deve conter ao menos um número")
	}
	return nil
}

func PasswordValidate(inputPassword string, storedPassword string) error {
	if inputPassword == "" {
		return appErrors.NewValidationError("password", "deve ser informado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(inputPassword)); err != nil {
		return appErrors.ErrInvalidCredentials
	}
	return nil
}
