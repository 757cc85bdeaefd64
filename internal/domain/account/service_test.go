package account_test

import (
	"context"
	"errors"
	"testing"

	"MeuBolso/internal/domain/account"
	"MeuBolso/internal/domain/accountcategory"
	"MeuBolso/internal/domain/shared"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeUserGetter struct{}

func (f *fakeUserGetter) Exists(ctx context.Context, userID ulid.ULID) error {
	return nil
}

func (f *fakeUserGetter) GetByID(ctx context.Context, userID ulid.ULID) (interface{}, error) {
	return nil, nil
}

type fakeAccountRepository struct {
	stored       map[ulid.ULID]*account.Account
	transactions map[ulid.ULID]int64
	createdTx    []*account.Account
	updatedTx    []*account.Account
	deleted      []ulid.ULID
	deletedTx    []ulid.ULID
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{
		stored:       make(map[ulid.ULID]*account.Account),
		transactions: make(map[ulid.ULID]int64),
	}
}

func (f *fakeAccountRepository) Create(ctx context.Context, acc *account.Account) error {
	f.stored[acc.Id] = acc
	return nil
}

func (f *fakeAccountRepository) CreateWithTx(ctx context.Context, tx interface{}, acc *account.Account) error {
	f.stored[acc.Id] = acc
	f.createdTx = append(f.createdTx, acc)
	return nil
}

func (f *fakeAccountRepository) Update(ctx context.Context, acc *account.Account) error {
	f.stored[acc.Id] = acc
	return nil
}

func (f *fakeAccountRepository) UpdateWithTx(ctx context.Context, tx interface{}, acc *account.Account) error {
	f.stored[acc.Id] = acc
	f.updatedTx = append(f.updatedTx, acc)
	return nil
}

func (f *fakeAccountRepository) Delete(ctx context.Context, accountID, userID ulid.ULID) error {
	delete(f.stored, accountID)
	f.deleted = append(f.deleted, accountID)
	return nil
}

func (f *fakeAccountRepository) DeleteWithTx(ctx context.Context, tx interface{}, accountID, userID ulid.ULID) error {
	delete(f.stored, accountID)
	f.deletedTx = append(f.deletedTx, accountID)
	return nil
}

func (f *fakeAccountRepository) GetByID(ctx context.Context, accountID, userID ulid.ULID) (*account.Account, error) {
	acc, ok := f.stored[accountID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *acc
	return &copied, nil
}

func (f *fakeAccountRepository) GetByName(ctx context.Context, name string, userID ulid.ULID) (*account.Account, error) {
	for _, acc := range f.stored {
		if acc.Name == name && acc.UserId == userID {
			return acc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepository) GetByUserID(ctx context.Context, userID ulid.ULID, categoryID *ulid.ULID, search *string, pagination *pkg.PaginationParams) ([]*account.Account, int64, error) {
	return nil, 0, nil
}

func (f *fakeAccountRepository) CountTransactions(ctx context.Context, accountID ulid.ULID) (int64, error) {
	return f.transactions[accountID], nil
}

func (f *fakeAccountRepository) GetTotalBalance(ctx context.Context, userID ulid.ULID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, acc := range f.stored {
		if acc.UserId == userID {
			total = total.Add(acc.CurrentBalance)
		}
	}
	return total, nil
}

type fakeCategoryChecker struct {
	fallback *accountcategory.AccountCategory
	missing  map[ulid.ULID]bool
}

func (f *fakeCategoryChecker) GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*accountcategory.AccountCategory, error) {
	if f.missing[categoryID] {
		return nil, appErrors.ErrAccountCategoryNotFound
	}
	uid := userID
	return &accountcategory.AccountCategory{Id: categoryID, UserId: &uid, Name: "Banco", Type: accountcategory.TypeBank}, nil
}

func (f *fakeCategoryChecker) DefaultForUser(ctx context.Context, userID ulid.ULID) (*accountcategory.AccountCategory, error) {
	if f.fallback != nil {
		return f.fallback, nil
	}
	uid := userID
	return &accountcategory.AccountCategory{Id: pkg.GenerateULIDObject(), UserId: &uid, Name: accountcategory.FallbackCategoryName, Type: accountcategory.TypeOther}, nil
}

type fakeTxRunner struct{}

func (f *fakeTxRunner) RunInTransaction(ctx context.Context, fn func(tx interface{}) error) error {
	return fn(nil)
}

type fakeRecomputer struct {
	calls []ulid.ULID
	err   error
}

func (f *fakeRecomputer) RecomputeUserWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) error {
	f.calls = append(f.calls, userID)
	return f.err
}

func newAccountService(repo *fakeAccountRepository, recomputer *fakeRecomputer) *account.Service {
	return account.NewService(
		repo,
		&fakeCategoryChecker{},
		&fakeTxRunner{},
		recomputer,
		shared.NewUserCheckerService(&fakeUserGetter{}),
	)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal inválido %q: %v", s, err)
	}
	return d
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

func TestAccountCreate(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeAccountRepository()
	recomputer := &fakeRecomputer{}
	service := newAccountService(repo, recomputer)

	acc, err := service.Create(context.Background(), &account.CreateRequest{
		UserId:            userID,
		AccountCategoryId: pkg.GenerateULIDObject(),
		Name:              "  Nubank  ",
		InitialBalance:    dec(t, "1200.00"),
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if acc.Name != "Nubank" {
		t.Fatalf("nome não foi normalizado: %q", acc.Name)
	}
	// Na criação o saldo atual nasce igual ao inicial.
	if !acc.CurrentBalance.Equal(dec(t, "1200.00")) {
		t.Fatalf("saldo atual errado: %s", acc.CurrentBalance)
	}
	if len(recomputer.calls) != 1 {
		t.Fatalf("esperava 1 recálculo, obteve %d", len(recomputer.calls))
	}

	_, err = service.Create(context.Background(), &account.CreateRequest{
		UserId:            userID,
		AccountCategoryId: pkg.GenerateULIDObject(),
		Name:              "Nubank",
		InitialBalance:    decimal.Zero,
	})
	assertAppErrorCode(t, err, "CONFLICT")
}

func TestAccountUpdateInitialBalanceRecomputes(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeAccountRepository()
	recomputer := &fakeRecomputer{}
	service := newAccountService(repo, recomputer)

	acc := &account.Account{
		Id:             pkg.GenerateULIDObject(),
		UserId:         userID,
		Name:           "Carteira",
		InitialBalance: dec(t, "100.00"),
		CurrentBalance: dec(t, "100.00"),
	}
	repo.stored[acc.Id] = acc

	newName := "Carteira Física"
	if err := service.Update(context.Background(), acc.Id, userID, &account.UpdateRequest{Name: &newName}); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(recomputer.calls) != 0 {
		t.Fatal("renomear não deve disparar recálculo")
	}

	newBalance := dec(t, "250.00")
	if err := service.Update(context.Background(), acc.Id, userID, &account.UpdateRequest{InitialBalance: &newBalance}); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(recomputer.calls) != 1 {
		t.Fatalf("mudar saldo inicial deveria recalcular, obteve %d", len(recomputer.calls))
	}
	if !repo.stored[acc.Id].InitialBalance.Equal(newBalance) {
		t.Fatal("saldo inicial não foi persistido")
	}
}

func TestAccountDelete(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeAccountRepository()
	recomputer := &fakeRecomputer{}
	service := newAccountService(repo, recomputer)

	used := &account.Account{Id: pkg.GenerateULIDObject(), UserId: userID, Name: "Corrente"}
	repo.stored[used.Id] = used
	repo.transactions[used.Id] = 5

	err := service.Delete(context.Background(), used.Id, userID)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
	if len(repo.deletedTx) != 0 {
		t.Fatal("conta com transações não deve ser removida")
	}

	clean := &account.Account{Id: pkg.GenerateULIDObject(), UserId: userID, Name: "Poupança"}
	repo.stored[clean.Id] = clean

	if err := service.Delete(context.Background(), clean.Id, userID); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(repo.deletedTx) != 1 || repo.deletedTx[0] != clean.Id {
		t.Fatal("conta sem transações deveria ser removida")
	}
	if len(recomputer.calls) != 1 {
		t.Fatalf("esperava 1 recálculo, obteve %d", len(recomputer.calls))
	}

	other := &account.Account{Id: pkg.GenerateULIDObject(), UserId: pkg.GenerateULIDObject(), Name: "Alheia"}
	repo.stored[other.Id] = other
	err = service.Delete(context.Background(), other.Id, userID)
	assertAppErrorCode(t, err, "RESOURCE_NOT_OWNED")
}

func TestAccountDeleteStaysTransactional(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeAccountRepository()
	recomputer := &fakeRecomputer{err: errors.New("recálculo indisponível")}
	service := newAccountService(repo, recomputer)

	acc := &account.Account{Id: pkg.GenerateULIDObject(), UserId: userID, Name: "Corrente"}
	repo.stored[acc.Id] = acc

	err := service.Delete(context.Background(), acc.Id, userID)
	if err == nil {
		t.Fatal("falha no recálculo deveria propagar para o chamador")
	}
	// A remoção deve passar pelo handle transacional para desfazer junto
	// com os caches quando o recálculo falha.
	if len(repo.deleted) != 0 {
		t.Fatal("remoção não pode acontecer fora da transação")
	}
	if len(repo.deletedTx) != 1 {
		t.Fatalf("esperava remoção transacional, obteve %d", len(repo.deletedTx))
	}
}

func TestAccountEnsureWithTx(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeAccountRepository()
	service := newAccountService(repo, &fakeRecomputer{})

	created, err := service.EnsureWithTx(context.Background(), nil, userID, "Importada")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if !created.InitialBalance.IsZero() || !created.CurrentBalance.IsZero() {
		t.Fatal("conta criada pela importação nasce com saldo zero")
	}
	if len(repo.createdTx) != 1 {
		t.Fatalf("conta deveria ser criada na transação, obteve %d", len(repo.createdTx))
	}

	again, err := service.EnsureWithTx(context.Background(), nil, userID, "Importada")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if again.Id != created.Id {
		t.Fatal("segunda chamada deve reutilizar a conta existente")
	}
	if len(repo.createdTx) != 1 {
		t.Fatal("segunda chamada não deve criar outra conta")
	}
}
