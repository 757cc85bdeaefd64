package debt_test

import (
	"context"
	"testing"
	"time"

	"MeuBolso/internal/domain/account"
	"MeuBolso/internal/domain/category"
	"MeuBolso/internal/domain/debt"
	"MeuBolso/internal/domain/shared"
	"MeuBolso/internal/domain/transaction"
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

type fakeDebtRepository struct {
	stored      map[ulid.ULID]*debt.Debt
	settlements map[ulid.ULID]int64
	updated     []*debt.Debt
	deleted     []ulid.ULID
}

func newFakeDebtRepository() *fakeDebtRepository {
	return &fakeDebtRepository{
		stored:      make(map[ulid.ULID]*debt.Debt),
		settlements: make(map[ulid.ULID]int64),
	}
}

func (f *fakeDebtRepository) Create(ctx context.Context, d *debt.Debt) error {
	f.stored[d.Id] = d
	return nil
}

func (f *fakeDebtRepository) Update(ctx context.Context, d *debt.Debt) error {
	f.stored[d.Id] = d
	f.updated = append(f.updated, d)
	return nil
}

func (f *fakeDebtRepository) UpdateWithTx(ctx context.Context, tx interface{}, d *debt.Debt) error {
	f.stored[d.Id] = d
	f.updated = append(f.updated, d)
	return nil
}

func (f *fakeDebtRepository) Delete(ctx context.Context, id ulid.ULID) error {
	delete(f.stored, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDebtRepository) GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*debt.Debt, error) {
	d, ok := f.stored[id]
	if !ok || d.UserId != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDebtRepository) GetAll(ctx context.Context, userID ulid.ULID, status *debt.Status, pagination *pkg.PaginationParams) ([]*debt.Debt, int64, error) {
	return nil, 0, nil
}

func (f *fakeDebtRepository) CountSettlements(ctx context.Context, debtID ulid.ULID) (int64, error) {
	return f.settlements[debtID], nil
}

type fakeAccountGetter struct{}

func (f *fakeAccountGetter) GetByID(ctx context.Context, accountID, userID ulid.ULID) (*account.Account, error) {
	return &account.Account{Id: accountID, UserId: userID}, nil
}

type fakeCategoryEnsurer struct {
	names []string
}

func (f *fakeCategoryEnsurer) EnsureWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, name string, categoryType category.Types) (*category.TransactionCategory, error) {
	f.names = append(f.names, name)
	uid := userID
	return &category.TransactionCategory{Id: pkg.GenerateULIDObject(), UserId: &uid, Name: name, Type: categoryType}, nil
}

type fakeSystemWriter struct {
	created []*transaction.Transaction
	removed []string
}

func (f *fakeSystemWriter) CreateSystemWithTx(ctx context.Context, tx interface{}, t *transaction.Transaction) error {
	f.created = append(f.created, t)
	return nil
}

func (f *fakeSystemWriter) DeleteBySourceWithTx(ctx context.Context, tx interface{}, sourceType string, sourceID ulid.ULID) error {
	f.removed = append(f.removed, sourceType+":"+sourceID.String())
	return nil
}

func (f *fakeSystemWriter) ListBySource(ctx context.Context, sourceType string, sourceID ulid.ULID) ([]*transaction.Transaction, error) {
	var matched []*transaction.Transaction
	for _, t := range f.created {
		if t.SourceType != nil && *t.SourceType == sourceType && t.SourceId != nil && *t.SourceId == sourceID {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

type fakeTxRunner struct{}

func (f *fakeTxRunner) RunInTransaction(ctx context.Context, fn func(tx interface{}) error) error {
	return fn(nil)
}

type fakeRecomputer struct {
	calls []ulid.ULID
}

func (f *fakeRecomputer) RecomputeUserWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) error {
	f.calls = append(f.calls, userID)
	return nil
}

func newDebtService(repo *fakeDebtRepository, writer *fakeSystemWriter, ensurer *fakeCategoryEnsurer, recomputer *fakeRecomputer) *debt.Service {
	return debt.NewService(
		repo,
		&fakeAccountGetter{},
		ensurer,
		writer,
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

func seedDebt(repo *fakeDebtRepository, userID ulid.ULID, direction debt.Direction, amount decimal.Decimal) *debt.Debt {
	d := &debt.Debt{
		Id:          pkg.GenerateULIDObject(),
		UserId:      userID,
		ContactName: "João",
		Direction:   direction,
		Amount:      amount,
		Remaining:   amount,
		Status:      debt.StatusOpen,
	}
	repo.stored[d.Id] = d
	return d
}

func TestDebtCreate(t *testing.T) {
	t.Parallel()

	repo := newFakeDebtRepository()
	service := newDebtService(repo, &fakeSystemWriter{}, &fakeCategoryEnsurer{}, &fakeRecomputer{})

	d := &debt.Debt{
		UserId:      pkg.GenerateULIDObject(),
		ContactName: "  Maria  ",
		Direction:   debt.IOwe,
		Amount:      dec(t, "500.00"),
	}

	if err := service.Create(context.Background(), d); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if d.ContactName != "Maria" {
		t.Fatalf("nome do contato não foi normalizado: %q", d.ContactName)
	}
	if !d.Remaining.Equal(d.Amount) {
		t.Fatalf("restante deve iniciar igual ao valor, obteve %s", d.Remaining)
	}
	if d.Status != debt.StatusOpen {
		t.Fatalf("dívida deve nascer aberta, obteve %s", d.Status)
	}
	if pkg.IsEmptyULID(d.Id) {
		t.Fatal("id não foi gerado")
	}
}

func TestDebtCreateValidation(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()

	tests := []struct {
		name string
		debt *debt.Debt
	}{
		{
			name: "contato vazio",
			debt: &debt.Debt{UserId: userID, ContactName: "   ", Direction: debt.IOwe, Amount: dec(t, "10")},
		},
		{
			name: "direção inválida",
			debt: &debt.Debt{UserId: userID, ContactName: "Ana", Direction: "loan", Amount: dec(t, "10")},
		},
		{
			name: "valor zero",
			debt: &debt.Debt{UserId: userID, ContactName: "Ana", Direction: debt.OwedToMe, Amount: decimal.Zero},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := newFakeDebtRepository()
			service := newDebtService(repo, &fakeSystemWriter{}, &fakeCategoryEnsurer{}, &fakeRecomputer{})

			err := service.Create(context.Background(), tc.debt)
			assertAppErrorCode(t, err, "VALIDATION_ERROR")

			if len(repo.stored) != 0 {
				t.Fatal("nada deve ser gravado quando a validação falha")
			}
		})
	}
}

func TestDebtSettlePartial(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeDebtRepository()
	writer := &fakeSystemWriter{}
	ensurer := &fakeCategoryEnsurer{}
	recomputer := &fakeRecomputer{}
	service := newDebtService(repo, writer, ensurer, recomputer)

	d := seedDebt(repo, userID, debt.IOwe, dec(t, "300.00"))

	req := &debt.SettlementRequest{
		AccountId: pkg.GenerateULIDObject(),
		Amount:    dec(t, "100.00"),
		Date:      time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		Note:      "primeira parcela",
	}
	if err := service.Settle(context.Background(), d.Id, userID, req); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	stored := repo.stored[d.Id]
	if !stored.Remaining.Equal(dec(t, "200.00")) {
		t.Fatalf("restante deveria abater a baixa, obteve %s", stored.Remaining)
	}
	if stored.Status != debt.StatusOpen {
		t.Fatalf("baixa parcial não deve quitar a dívida, obteve %s", stored.Status)
	}

	if len(writer.created) != 1 {
		t.Fatalf("esperava 1 transação de sistema, obteve %d", len(writer.created))
	}
	tr := writer.created[0]
	if tr.Flag != transaction.FlagDebtPayment || tr.Type != transaction.Expense {
		t.Fatalf("baixa de i_owe deve gerar despesa debt_payment, obteve %s/%s", tr.Flag, tr.Type)
	}
	if tr.SourceType == nil || *tr.SourceType != transaction.SourceDebt || tr.SourceId == nil || *tr.SourceId != d.Id {
		t.Fatal("transação de baixa deve apontar para a dívida")
	}
	if len(ensurer.names) != 1 || ensurer.names[0] != debt.CategoryPaymentName {
		t.Fatalf("categoria errada para a baixa: %v", ensurer.names)
	}
	if len(recomputer.calls) != 1 || recomputer.calls[0] != userID {
		t.Fatalf("esperava exatamente 1 recálculo, obteve %v", recomputer.calls)
	}
}

func TestDebtSettleClosesAtZero(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeDebtRepository()
	writer := &fakeSystemWriter{}
	service := newDebtService(repo, writer, &fakeCategoryEnsurer{}, &fakeRecomputer{})

	d := seedDebt(repo, userID, debt.OwedToMe, dec(t, "150.00"))

	req := &debt.SettlementRequest{
		AccountId: pkg.GenerateULIDObject(),
		Amount:    dec(t, "150.00"),
		Date:      time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := service.Settle(context.Background(), d.Id, userID, req); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	stored := repo.stored[d.Id]
	if !stored.Remaining.IsZero() || stored.Status != debt.StatusSettled {
		t.Fatalf("dívida deveria quitar ao zerar, obteve restante=%s status=%s", stored.Remaining, stored.Status)
	}

	tr := writer.created[0]
	if tr.Flag != transaction.FlagDebtCollect || tr.Type != transaction.Income {
		t.Fatalf("baixa de owed_to_me deve gerar receita debt_collect, obteve %s/%s", tr.Flag, tr.Type)
	}

	// Uma segunda baixa em dívida quitada é rejeitada.
	err := service.Settle(context.Background(), d.Id, userID, req)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestDebtSettleOverRemaining(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeDebtRepository()
	writer := &fakeSystemWriter{}
	recomputer := &fakeRecomputer{}
	service := newDebtService(repo, writer, &fakeCategoryEnsurer{}, recomputer)

	d := seedDebt(repo, userID, debt.IOwe, dec(t, "100.00"))

	req := &debt.SettlementRequest{
		AccountId: pkg.GenerateULIDObject(),
		Amount:    dec(t, "100.01"),
		Date:      time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	err := service.Settle(context.Background(), d.Id, userID, req)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	if len(writer.created) != 0 || len(recomputer.calls) != 0 {
		t.Fatal("baixa acima do restante não deve gravar nada")
	}
	if !repo.stored[d.Id].Remaining.Equal(dec(t, "100.00")) {
		t.Fatal("restante não deve mudar quando a baixa é rejeitada")
	}
}

func TestDebtSettlements(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeDebtRepository()
	writer := &fakeSystemWriter{}
	service := newDebtService(repo, writer, &fakeCategoryEnsurer{}, &fakeRecomputer{})

	d := seedDebt(repo, userID, debt.IOwe, dec(t, "300.00"))

	for _, amount := range []string{"100.00", "50.00"} {
		if err := service.Settle(context.Background(), d.Id, userID, &debt.SettlementRequest{
			AccountId: pkg.GenerateULIDObject(),
			Amount:    dec(t, amount),
			Date:      time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		}); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
	}

	settlements, err := service.Settlements(context.Background(), d.Id, userID)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(settlements) != 2 {
		t.Fatalf("esperava 2 baixas listadas, obteve %d", len(settlements))
	}
	for _, s := range settlements {
		if s.SourceId == nil || *s.SourceId != d.Id {
			t.Fatal("baixa listada deve apontar para a dívida")
		}
	}

	_, err = service.Settlements(context.Background(), pkg.GenerateULIDObject(), userID)
	assertAppErrorCode(t, err, "DEBT_NOT_FOUND")
}

func TestDebtDelete(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeDebtRepository()
	service := newDebtService(repo, &fakeSystemWriter{}, &fakeCategoryEnsurer{}, &fakeRecomputer{})

	withSettlements := seedDebt(repo, userID, debt.IOwe, dec(t, "50.00"))
	repo.settlements[withSettlements.Id] = 2

	err := service.Delete(context.Background(), withSettlements.Id, userID)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
	if len(repo.deleted) != 0 {
		t.Fatal("dívida com baixas não deve ser removida")
	}

	clean := seedDebt(repo, userID, debt.IOwe, dec(t, "50.00"))
	if err := service.Delete(context.Background(), clean.Id, userID); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != clean.Id {
		t.Fatal("dívida sem baixas deveria ser removida")
	}

	err = service.Delete(context.Background(), pkg.GenerateULIDObject(), userID)
	assertAppErrorCode(t, err, "DEBT_NOT_FOUND")
}
