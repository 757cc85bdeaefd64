package transfer

import (
	"context"
	"errors"

	"MeuBolso/internal/domain/account"
	"MeuBolso/internal/domain/category"
	"MeuBolso/internal/domain/shared"
	"MeuBolso/internal/domain/transaction"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountGetter interface {
	GetByID(ctx context.Context, accountID, userID ulid.ULID) (*account.Account, error)
}

type CategoryEnsurer interface {
	EnsureWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, name string, categoryType category.Types) (*category.TransactionCategory, error)
}

type SystemTransactionWriter interface {
	CreateSystemWithTx(ctx context.Context, tx interface{}, t *transaction.Transaction) error
	DeleteBySourceWithTx(ctx context.Context, tx interface{}, sourceType string, sourceID ulid.ULID) error
}

type Service struct {
	Repository      Repository
	AccountService  AccountGetter
	CategoryService CategoryEnsurer
	Transactions    SystemTransactionWriter
	TxRunner        shared.TxRunner
	Recomputer      shared.BalanceRecomputer
	shared.BaseService
}

func NewService(
	repo Repository,
	accountSvc AccountGetter,
	categorySvc CategoryEnsurer,
	transactions SystemTransactionWriter,
	txRunner shared.TxRunner,
	recomputer shared.BalanceRecomputer,
	userChecker *shared.UserCheckerService,
) *Service {
	return &Service{
		Repository:      repo,
		AccountService:  accountSvc,
		CategoryService: categorySvc,
		Transactions:    transactions,
		TxRunner:        txRunner,
		Recomputer:      recomputer,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

// Create grava a transferência e o par de transações de sistema na mesma
// transação de banco, seguida de um único recálculo de saldo.
func (s *Service) Create(ctx context.Context, t *Transfer) error {
	if err := s.EnsureUserExists(ctx, t.UserId); err != nil {
		return err
	}

	if t.FromAccountId == t.ToAccountId {
		return appErrors.NewValidationError("to_account_id", "conta de destino deve ser diferente da conta de origem")
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	if t.Fee.IsNegative() {
		return appErrors.NewValidationError("fee", "não pode ser negativa")
	}

	if t.Date.IsZero() {
		return appErrors.NewValidationError("date", "é obrigatória")
	}

	if _, err := s.AccountService.GetByID(ctx, t.FromAccountId, t.UserId); err != nil {
		return err
	}
	if _, err := s.AccountService.GetByID(ctx, t.ToAccountId, t.UserId); err != nil {
		return err
	}

	t.Id = pkg.GenerateULIDObject()
	now := pkg.SetTimestamps()
	t.CreatedAt = now
	t.UpdatedAt = now

	return s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		if err := s.Repository.CreateWithTx(ctx, tx, t); err != nil {
			return appErrors.NewDatabaseError(err)
		}

		outCategory, err := s.CategoryService.EnsureWithTx(ctx, tx, t.UserId, CategoryOutName, category.TypeExpense)
		if err != nil {
			return err
		}
		inCategory, err := s.CategoryService.EnsureWithTx(ctx, tx, t.UserId, CategoryInName, category.TypeIncome)
		if err != nil {
			return err
		}

		sourceType := transaction.SourceTransfer
		sourceID := t.Id

		// A taxa sai da conta de origem junto com o valor transferido.
		out := &transaction.Transaction{
			UserId:                t.UserId,
			AccountId:             t.FromAccountId,
			TransactionCategoryId: outCategory.Id,
			Type:                  transaction.Expense,
			Amount:                t.Amount.Add(t.Fee),
			Date:                  t.Date,
			Note:                  t.Note,
			SourceType:            &sourceType,
			SourceId:              &sourceID,
			Flag:                  transaction.FlagTransferOut,
		}
		if err := s.Transactions.CreateSystemWithTx(ctx, tx, out); err != nil {
			return err
		}

		in := &transaction.Transaction{
			UserId:                t.UserId,
			AccountId:             t.ToAccountId,
			TransactionCategoryId: inCategory.Id,
			Type:                  transaction.Income,
			Amount:                t.Amount,
			Date:                  t.Date,
			Note:                  t.Note,
			SourceType:            &sourceType,
			SourceId:              &sourceID,
			Flag:                  transaction.FlagTransferIn,
		}
		if err := s.Transactions.CreateSystemWithTx(ctx, tx, in); err != nil {
			return err
		}

		return s.Recomputer.RecomputeUserWithTx(ctx, tx, t.UserId)
	})
}

func (s *Service) Delete(ctx context.Context, transferID, userID ulid.ULID) error {
	if _, err := s.GetByID(ctx, transferID, userID); err != nil {
		return err
	}

	return s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		if err := s.Transactions.DeleteBySourceWithTx(ctx, tx, transaction.SourceTransfer, transferID); err != nil {
			return err
		}
		if err := s.Repository.DeleteWithTx(ctx, tx, transferID); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		return s.Recomputer.RecomputeUserWithTx(ctx, tx, userID)
	})
}

func (s *Service) GetByID(ctx context.Context, transferID, userID ulid.ULID) (*Transfer, error) {
	t, err := s.Repository.GetByIDAndUser(ctx, transferID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTransferNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Transfer, int64, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}

	transfers, total, err := s.Repository.GetAll(ctx, userID, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return transfers, total, nil
}
