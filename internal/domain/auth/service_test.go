package auth_test

import (
	"context"
	"testing"

	"MeuBolso/internal/domain/auth"
	"MeuBolso/internal/domain/user"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	byEmail   map[string]*user.User
	created   []*user.User
	createdTx []*user.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byEmail: make(map[string]*user.User)}
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	f.byEmail[u.Email] = u
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUserRepository) CreateWithTx(ctx context.Context, tx interface{}, u *user.User) error {
	f.byEmail[u.Email] = u
	f.createdTx = append(f.createdTx, u)
	return nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return nil
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.Id == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) UpdateBalanceWithTx(ctx context.Context, tx interface{}, id ulid.ULID, balance decimal.Decimal) error {
	return nil
}

type fakeSeeder struct {
	seeded []ulid.ULID
}

func (f *fakeSeeder) SeedDefaultsWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) error {
	f.seeded = append(f.seeded, userID)
	return nil
}

type fakeOAuthProvider struct {
	info    *auth.OAuthUserInfo
	err     error
	authURL string
	idToken string
	codes   []string
}

func (f *fakeOAuthProvider) VerifyToken(ctx context.Context, credential string) (*auth.OAuthUserInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func (f *fakeOAuthProvider) GetAuthURL(state string) string {
	if f.authURL == "" {
		return ""
	}
	return f.authURL + "?state=" + state
}

func (f *fakeOAuthProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	f.codes = append(f.codes, code)
	return f.idToken, nil
}

type fakeTxRunner struct {
	runs int
}

func (f *fakeTxRunner) RunInTransaction(ctx context.Context, fn func(tx interface{}) error) error {
	f.runs++
	return fn(nil)
}

func newAuthService(repo *fakeUserRepository, accountSeeder, categorySeeder *fakeSeeder, provider auth.OAuthProvider, runner *fakeTxRunner) *auth.Service {
	return auth.NewService(user.NewService(repo), accountSeeder, categorySeeder, provider, runner)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		t.Fatalf("esperava AppError, obteve %v", err)
	}
	if appErr.Code != code {
		t.Fatalf("esperava código %s, obteve %s", code, appErr.Code)
	}
}

func TestRegisterSeedsDefaults(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepository()
	accountSeeder := &fakeSeeder{}
	categorySeeder := &fakeSeeder{}
	runner := &fakeTxRunner{}
	service := newAuthService(repo, accountSeeder, categorySeeder, nil, runner)

	u := &user.User{Name: "Carla", Email: "carla@example.com", Password: "Senha123"}
	if err := service.Register(context.Background(), u); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if len(repo.createdTx) != 1 {
		t.Fatalf("usuário deveria ser criado dentro da transação, obteve %d", len(repo.createdTx))
	}
	if runner.runs != 1 {
		t.Fatalf("cadastro deveria usar uma única transação, obteve %d", runner.runs)
	}

	// As duas semeaduras acontecem na mesma transação do cadastro.
	if len(accountSeeder.seeded) != 1 || accountSeeder.seeded[0] != u.Id {
		t.Fatal("categorias de conta padrão não foram semeadas")
	}
	if len(categorySeeder.seeded) != 1 || categorySeeder.seeded[0] != u.Id {
		t.Fatal("categorias de transação padrão não foram semeadas")
	}

	if u.Password == "Senha123" {
		t.Fatal("senha não foi hasheada")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("Senha123")); err != nil {
		t.Fatalf("hash da senha não confere: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepository()
	existing := &user.User{Id: pkg.GenerateULIDObject(), Email: "carla@example.com"}
	repo.byEmail[existing.Email] = existing

	accountSeeder := &fakeSeeder{}
	service := newAuthService(repo, accountSeeder, &fakeSeeder{}, nil, &fakeTxRunner{})

	err := service.Register(context.Background(), &user.User{Name: "Carla", Email: "carla@example.com", Password: "Senha123"})
	assertAppErrorCode(t, err, "EMAIL_ALREADY_EXISTS")
	if len(accountSeeder.seeded) != 0 {
		t.Fatal("nada deve ser semeado quando o email já existe")
	}
}

func TestPasswordRequirements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "curta", password: "Ab1", valid: false},
		{name: "sem maiúscula", password: "senha1234", valid: false},
		{name: "sem número", password: "SenhaForte", valid: false},
		{name: "válida", password: "Senha123", valid: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := auth.PasswordRequirements(tc.password)
			if tc.valid && err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
			if !tc.valid {
				assertAppErrorCode(t, err, "VALIDATION_ERROR")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("Senha123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	repo := newFakeUserRepository()
	repo.byEmail["carla@example.com"] = &user.User{
		Id:       pkg.GenerateULIDObject(),
		Email:    "carla@example.com",
		Password: string(hash),
	}
	service := newAuthService(repo, &fakeSeeder{}, &fakeSeeder{}, nil, &fakeTxRunner{})

	entity, err := service.Login(context.Background(), auth.Login{Email: "carla@example.com", Password: "Senha123"})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if entity.Email != "carla@example.com" {
		t.Fatalf("usuário errado: %s", entity.Email)
	}

	_, err = service.Login(context.Background(), auth.Login{Email: "carla@example.com", Password: "errada"})
	assertAppErrorCode(t, err, "INVALID_CREDENTIALS")

	_, err = service.Login(context.Background(), auth.Login{Email: "ninguem@example.com", Password: "Senha123"})
	assertAppErrorCode(t, err, "INVALID_CREDENTIALS")
}

func TestGoogleLoginProvisionsUser(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepository()
	accountSeeder := &fakeSeeder{}
	categorySeeder := &fakeSeeder{}
	provider := &fakeOAuthProvider{info: &auth.OAuthUserInfo{Email: "novo@example.com", Name: "Novo Usuário"}}
	service := newAuthService(repo, accountSeeder, categorySeeder, provider, &fakeTxRunner{})

	entity, err := service.GoogleLogin(context.Background(), "credential")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if entity.Email != "novo@example.com" {
		t.Fatalf("usuário errado: %s", entity.Email)
	}
	if len(accountSeeder.seeded) != 1 || len(categorySeeder.seeded) != 1 {
		t.Fatal("usuário provisionado via OAuth também recebe as categorias padrão")
	}

	// Segundo login com o mesmo email reutiliza a conta existente.
	again, err := service.GoogleLogin(context.Background(), "credential")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if again.Id != entity.Id {
		t.Fatal("login repetido não deve criar outro usuário")
	}
	if len(accountSeeder.seeded) != 1 {
		t.Fatal("login repetido não deve semear de novo")
	}
}

func TestGoogleLoginWithoutCredential(t *testing.T) {
	t.Parallel()

	service := newAuthService(newFakeUserRepository(), &fakeSeeder{}, &fakeSeeder{}, &fakeOAuthProvider{}, &fakeTxRunner{})

	_, err := service.GoogleLogin(context.Background(), "")
	assertAppErrorCode(t, err, "CREDENTIAL_MISSING")
}

func TestGoogleAuthURL(t *testing.T) {
	t.Parallel()

	provider := &fakeOAuthProvider{authURL: "https://accounts.google.com/o/oauth2/auth"}
	service := newAuthService(newFakeUserRepository(), &fakeSeeder{}, &fakeSeeder{}, provider, &fakeTxRunner{})

	url, state, err := service.GoogleAuthURL()
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if state == "" {
		t.Fatal("state não foi gerado")
	}
	if url != "https://accounts.google.com/o/oauth2/auth?state="+state {
		t.Fatalf("URL de consentimento errada: %s", url)
	}

	// Sem provider configurado o fluxo de código não está disponível.
	unconfigured := newAuthService(newFakeUserRepository(), &fakeSeeder{}, &fakeSeeder{}, nil, &fakeTxRunner{})
	_, _, err = unconfigured.GoogleAuthURL()
	assertAppErrorCode(t, err, "OAUTH_NOT_CONFIGURED")
}

func TestGoogleCallback(t *testing.T) {
	t.Parallel()

	provider := &fakeOAuthProvider{
		info:    &auth.OAuthUserInfo{Email: "callback@example.com", Name: "Via Callback"},
		idToken: "id-token",
	}
	service := newAuthService(newFakeUserRepository(), &fakeSeeder{}, &fakeSeeder{}, provider, &fakeTxRunner{})

	entity, err := service.GoogleCallback(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if entity.Email != "callback@example.com" {
		t.Fatalf("usuário errado: %s", entity.Email)
	}
	if len(provider.codes) != 1 || provider.codes[0] != "auth-code" {
		t.Fatalf("código de autorização não foi trocado: %v", provider.codes)
	}

	_, err = service.GoogleCallback(context.Background(), "")
	assertAppErrorCode(t, err, "CODE_MISSING")
}
