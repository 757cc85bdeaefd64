package importer_test

import (
	"context"
	"strings"
	"testing"

	"MeuBolso/config"
	"MeuBolso/internal/domain/account"
	"MeuBolso/internal/domain/category"
	"MeuBolso/internal/domain/importer"
	"MeuBolso/internal/domain/shared"
	"MeuBolso/internal/domain/transaction"
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

type fakeImportRepository struct {
	stored  map[ulid.ULID]*importer.ImportRecord
	deleted []ulid.ULID
}

func newFakeImportRepository() *fakeImportRepository {
	return &fakeImportRepository{stored: make(map[ulid.ULID]*importer.ImportRecord)}
}

func (f *fakeImportRepository) CreateWithTx(ctx context.Context, tx interface{}, record *importer.ImportRecord) error {
	f.stored[record.Id] = record
	return nil
}

func (f *fakeImportRepository) DeleteWithTx(ctx context.Context, tx interface{}, id ulid.ULID) error {
	delete(f.stored, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeImportRepository) GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*importer.ImportRecord, error) {
	record, ok := f.stored[id]
	if !ok || record.UserId != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeImportRepository) GetAll(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*importer.ImportRecord, int64, error) {
	return nil, 0, nil
}

type fakeAccountEnsurer struct {
	ensured         map[string]*account.Account
	initialBalances map[ulid.ULID]decimal.Decimal
}

func newFakeAccountEnsurer() *fakeAccountEnsurer {
	return &fakeAccountEnsurer{
		ensured:         make(map[string]*account.Account),
		initialBalances: make(map[ulid.ULID]decimal.Decimal),
	}
}

func (f *fakeAccountEnsurer) EnsureWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, name string) (*account.Account, error) {
	if acc, ok := f.ensured[name]; ok {
		return acc, nil
	}
	acc := &account.Account{Id: pkg.GenerateULIDObject(), UserId: userID, Name: name}
	f.ensured[name] = acc
	return acc, nil
}

func (f *fakeAccountEnsurer) SetInitialBalanceWithTx(ctx context.Context, tx interface{}, acc *account.Account, amount decimal.Decimal) error {
	f.initialBalances[acc.Id] = amount
	return nil
}

type fakeCategoryEnsurer struct {
	ensured map[string]*category.TransactionCategory
}

func newFakeCategoryEnsurer() *fakeCategoryEnsurer {
	return &fakeCategoryEnsurer{ensured: make(map[string]*category.TransactionCategory)}
}

func (f *fakeCategoryEnsurer) EnsureWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, name string, categoryType category.Types) (*category.TransactionCategory, error) {
	if cat, ok := f.ensured[name]; ok {
		return cat, nil
	}
	uid := userID
	cat := &category.TransactionCategory{Id: pkg.GenerateULIDObject(), UserId: &uid, Name: name, Type: categoryType}
	f.ensured[name] = cat
	return cat, nil
}

type fakeTransactionWriter struct {
	batches   [][]*transaction.Transaction
	deletedBy []ulid.ULID
}

func (f *fakeTransactionWriter) CreateImportedWithTx(ctx context.Context, tx interface{}, ts []*transaction.Transaction) error {
	f.batches = append(f.batches, ts)
	return nil
}

func (f *fakeTransactionWriter) DeleteByImportWithTx(ctx context.Context, tx interface{}, importID ulid.ULID) error {
	f.deletedBy = append(f.deletedBy, importID)
	return nil
}

type fakeTxRunner struct {
	runs int
}

func (f *fakeTxRunner) RunInTransaction(ctx context.Context, fn func(tx interface{}) error) error {
	f.runs++
	return fn(nil)
}

type fakeRecomputer struct {
	calls []ulid.ULID
}

func (f *fakeRecomputer) RecomputeUserWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) error {
	f.calls = append(f.calls, userID)
	return nil
}

func newImportService(repo *fakeImportRepository, accounts *fakeAccountEnsurer, writer *fakeTransactionWriter, recomputer *fakeRecomputer) *importer.Service {
	cfg := &config.Config{Import: config.ImportConfig{MaxRows: 100, MaxFileSize: 1024 * 1024}}
	return importer.NewService(
		repo,
		accounts,
		newFakeCategoryEnsurer(),
		writer,
		&fakeTxRunner{},
		recomputer,
		cfg,
		shared.NewUserCheckerService(&fakeUserGetter{}),
	)
}

func TestImportInitialBalanceRow(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeImportRepository()
	accounts := newFakeAccountEnsurer()
	writer := &fakeTransactionWriter{}
	recomputer := &fakeRecomputer{}
	service := newImportService(repo, accounts, writer, recomputer)

	csvData := strings.Join([]string{
		"Saldo Inicial,Nubank,1500.00,2025-01-01,,",
		"Alimentação,Nubank,80.00,2025-01-02,feira,-",
		"Salário,Carteira,2000.00,2025-01-05,,+",
	}, "\n")

	record, err := service.Import(context.Background(), userID, "historico.csv", strings.NewReader(csvData), int64(len(csvData)))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if record.RowCount != 3 || record.Status != importer.StatusCompleted {
		t.Fatalf("registro errado: rows=%d status=%s", record.RowCount, record.Status)
	}
	if _, ok := repo.stored[record.Id]; !ok {
		t.Fatal("registro de importação não foi persistido")
	}

	// A conta da linha de saldo inicial é criada e recebe o valor da linha.
	nubank, ok := accounts.ensured["Nubank"]
	if !ok {
		t.Fatal("conta Nubank deveria ter sido criada")
	}
	if balance, ok := accounts.initialBalances[nubank.Id]; !ok || !balance.Equal(dec(t, "1500.00")) {
		t.Fatalf("saldo inicial errado: %s", balance)
	}
	if _, ok := accounts.ensured["Carteira"]; !ok {
		t.Fatal("conta Carteira deveria ter sido criada")
	}

	if len(writer.batches) != 1 {
		t.Fatalf("esperava um único lote de transações, obteve %d", len(writer.batches))
	}
	batch := writer.batches[0]
	if len(batch) != 3 {
		t.Fatalf("esperava 3 transações, obteve %d", len(batch))
	}

	initial := batch[0]
	if initial.Flag != transaction.FlagInitialBalance || initial.Type != transaction.Income {
		t.Fatalf("linha de saldo inicial mal marcada: flag=%s type=%s", initial.Flag, initial.Type)
	}
	for _, tr := range batch {
		if tr.ImportId == nil || *tr.ImportId != record.Id {
			t.Fatal("transações importadas devem apontar para a importação")
		}
		if tr.UserId != userID {
			t.Fatal("transações importadas devem pertencer ao usuário")
		}
	}

	if len(recomputer.calls) != 1 || recomputer.calls[0] != userID {
		t.Fatalf("esperava exatamente 1 recálculo, obteve %v", recomputer.calls)
	}
}

func TestImportRejectsOversizedFile(t *testing.T) {
	t.Parallel()

	repo := newFakeImportRepository()
	writer := &fakeTransactionWriter{}
	recomputer := &fakeRecomputer{}
	service := newImportService(repo, newFakeAccountEnsurer(), writer, recomputer)

	_, err := service.Import(context.Background(), pkg.GenerateULIDObject(), "grande.csv", strings.NewReader("x"), 10*1024*1024)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	if len(repo.stored) != 0 || len(writer.batches) != 0 {
		t.Fatal("nada deve ser gravado quando o arquivo excede o limite")
	}
}

func TestImportRowLimitUsesConfig(t *testing.T) {
	t.Parallel()

	repo := newFakeImportRepository()
	service := newImportService(repo, newFakeAccountEnsurer(), &fakeTransactionWriter{}, &fakeRecomputer{})
	service.Config = &config.Config{Import: config.ImportConfig{MaxRows: 1, MaxFileSize: 1024}}

	csvData := "Alimentação,Nubank,10.00,2025-01-01,,-\nTransporte,Nubank,5.00,2025-01-02,,-"
	_, err := service.Import(context.Background(), pkg.GenerateULIDObject(), "muitas.csv", strings.NewReader(csvData), int64(len(csvData)))
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestImportDelete(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeImportRepository()
	writer := &fakeTransactionWriter{}
	recomputer := &fakeRecomputer{}
	service := newImportService(repo, newFakeAccountEnsurer(), writer, recomputer)

	record := &importer.ImportRecord{Id: pkg.GenerateULIDObject(), UserId: userID, FileName: "antigo.csv", Status: importer.StatusCompleted}
	repo.stored[record.Id] = record

	if err := service.Delete(context.Background(), record.Id, userID); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if len(writer.deletedBy) != 1 || writer.deletedBy[0] != record.Id {
		t.Fatal("transações da importação não foram removidas")
	}
	if len(repo.deleted) != 1 {
		t.Fatal("registro de importação não foi removido")
	}
	if len(recomputer.calls) != 1 {
		t.Fatalf("esperava 1 recálculo, obteve %d", len(recomputer.calls))
	}

	err := service.Delete(context.Background(), pkg.GenerateULIDObject(), userID)
	assertAppErrorCode(t, err, "IMPORT_NOT_FOUND")
}
