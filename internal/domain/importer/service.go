package importer

import (
	"context"
	"errors"
	"io"
	"strings"

	"MeuBolso/config"
	"MeuBolso/internal/domain/account"
	"MeuBolso/internal/domain/category"
	"MeuBolso/internal/domain/shared"
	"MeuBolso/internal/domain/transaction"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/logger"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountEnsurer interface {
	EnsureWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, name string) (*account.Account, error)
	SetInitialBalanceWithTx(ctx context.Context, tx interface{}, acc *account.Account, amount decimal.Decimal) error
}

type CategoryEnsurer interface {
	EnsureWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, name string, categoryType category.Types) (*category.TransactionCategory, error)
}

type TransactionWriter interface {
	CreateImportedWithTx(ctx context.Context, tx interface{}, ts []*transaction.Transaction) error
	DeleteByImportWithTx(ctx context.Context, tx interface{}, importID ulid.ULID) error
}

type Service struct {
	Repository      Repository
	AccountService  AccountEnsurer
	CategoryService CategoryEnsurer
	Transactions    TransactionWriter
	TxRunner        shared.TxRunner
	Recomputer      shared.BalanceRecomputer
	Config          *config.Config
	shared.BaseService
}

func NewService(
	repo Repository,
	accountSvc AccountEnsurer,
	categorySvc CategoryEnsurer,
	transactions TransactionWriter,
	txRunner shared.TxRunner,
	recomputer shared.BalanceRecomputer,
	cfg *config.Config,
	userChecker *shared.UserCheckerService,
) *Service {
	return &Service{
		Repository:      repo,
		AccountService:  accountSvc,
		CategoryService: categorySvc,
		Transactions:    transactions,
		TxRunner:        txRunner,
		Recomputer:      recomputer,
		Config:          cfg,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

// Import processa o arquivo inteiro dentro de uma única transação de banco.
// Uma linha inválida desfaz a importação completa, sem inserções parciais, e
// o recálculo de saldo roda uma única vez ao final.
func (s *Service) Import(ctx context.Context, userID ulid.ULID, fileName string, r io.Reader, size int64) (*ImportRecord, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	if size > s.Config.Import.MaxFileSize {
		return nil, appErrors.NewValidationError("file", "arquivo excede o tamanho máximo permitido")
	}

	rows, err := Parse(fileName, r)
	if err != nil {
		return nil, err
	}

	if len(rows) > s.Config.Import.MaxRows {
		return nil, appErrors.NewValidationError("file", "arquivo excede o número máximo de linhas")
	}

	record := &ImportRecord{
		Id:           pkg.GenerateULIDObject(),
		UserId:       userID,
		FileName:     fileName,
		RowCount:     len(rows),
		CreatedCount: len(rows),
		Status:       StatusCompleted,
	}
	now := pkg.SetTimestamps()
	record.CreatedAt = now
	record.UpdatedAt = now

	err = s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		if err := s.Repository.CreateWithTx(ctx, tx, record); err != nil {
			return appErrors.NewDatabaseError(err)
		}

		// Contas e categorias criadas nesta importação ficam em cache para
		// não repetir o get-or-create a cada linha.
		accounts := make(map[string]*account.Account)
		categories := make(map[string]*category.TransactionCategory)
		transactions := make([]*transaction.Transaction, 0, len(rows))

		for _, row := range rows {
			acc, err := s.ensureAccount(ctx, tx, userID, row.Account, accounts)
			if err != nil {
				return err
			}

			cat, err := s.ensureCategory(ctx, tx, userID, row.Category, row.Type, categories)
			if err != nil {
				return err
			}

			if row.Kind == RowInitialBalance {
				if err := s.AccountService.SetInitialBalanceWithTx(ctx, tx, acc, row.Amount); err != nil {
					return err
				}
			}

			importID := record.Id
			transactions = append(transactions, &transaction.Transaction{
				ImportId:              &importID,
				UserId:                userID,
				AccountId:             acc.Id,
				TransactionCategoryId: cat.Id,
				Type:                  row.Type,
				Amount:                row.Amount,
				Date:                  row.Date,
				Note:                  row.Note,
				Flag:                  rowFlag(row.Kind),
			})
		}

		if err := s.Transactions.CreateImportedWithTx(ctx, tx, transactions); err != nil {
			return err
		}

		return s.Recomputer.RecomputeUserWithTx(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", userID.String()).
		Str("file", fileName).
		Int("rows", record.RowCount).
		Msg("importação concluída")

	return record, nil
}

// Delete remove a importação e todas as transações que ela produziu, com um
// recálculo de saldo na mesma transação de banco. Contas e categorias criadas
// automaticamente permanecem.
func (s *Service) Delete(ctx context.Context, importID, userID ulid.ULID) error {
	if _, err := s.GetByID(ctx, importID, userID); err != nil {
		return err
	}

	return s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		if err := s.Transactions.DeleteByImportWithTx(ctx, tx, importID); err != nil {
			return err
		}
		if err := s.Repository.DeleteWithTx(ctx, tx, importID); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		return s.Recomputer.RecomputeUserWithTx(ctx, tx, userID)
	})
}

func (s *Service) GetByID(ctx context.Context, importID, userID ulid.ULID) (*ImportRecord, error) {
	record, err := s.Repository.GetByIDAndUser(ctx, importID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrImportNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ImportRecord, int64, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}

	records, total, err := s.Repository.GetAll(ctx, userID, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return records, total, nil
}

func (s *Service) ensureAccount(ctx context.Context, tx interface{}, userID ulid.ULID, name string, cache map[string]*account.Account) (*account.Account, error) {
	key := strings.ToLower(name)
	if acc, ok := cache[key]; ok {
		return acc, nil
	}

	acc, err := s.AccountService.EnsureWithTx(ctx, tx, userID, name)
	if err != nil {
		return nil, err
	}
	cache[key] = acc
	return acc, nil
}

func (s *Service) ensureCategory(ctx context.Context, tx interface{}, userID ulid.ULID, name string, rowType transaction.Types, cache map[string]*category.TransactionCategory) (*category.TransactionCategory, error) {
	key := strings.ToLower(name)
	if cat, ok := cache[key]; ok {
		return cat, nil
	}

	categoryType := category.TypeExpense
	if rowType == transaction.Income {
		categoryType = category.TypeIncome
	}

	cat, err := s.CategoryService.EnsureWithTx(ctx, tx, userID, name, categoryType)
	if err != nil {
		return nil, err
	}
	cache[key] = cat
	return cat, nil
}

func rowFlag(kind RowKind) transaction.Flag {
	switch kind {
	case RowInitialBalance:
		return transaction.FlagInitialBalance
	case RowTransferIn:
		return transaction.FlagTransferIn
	case RowTransferOut:
		return transaction.FlagTransferOut
	case RowDebtPayment:
		return transaction.FlagDebtPayment
	case RowDebtCollect:
		return transaction.FlagDebtCollect
	}
	return transaction.FlagNormal
}
