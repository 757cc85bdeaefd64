package debt

import (
	"context"
	"errors"
	"strings"
	"time"

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
	ListBySource(ctx context.Context, sourceType string, sourceID ulid.ULID) ([]*transaction.Transaction, error)
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

func (s *Service) Create(ctx context.Context, d *Debt) error {
	if err := s.EnsureUserExists(ctx, d.UserId); err != nil {
		return err
	}

	d.ContactName = strings.TrimSpace(d.ContactName)
	if d.ContactName == "" {
		return appErrors.NewValidationError("contact_name", "é obrigatório")
	}

	if !d.Direction.IsValid() {
		return appErrors.NewValidationError("direction", "deve ser owed_to_me ou i_owe")
	}

	if d.Amount.LessThanOrEqual(decimal.Zero) {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	d.Id = pkg.GenerateULIDObject()
	d.Remaining = d.Amount
	d.Status = StatusOpen
	now := pkg.SetTimestamps()
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := s.Repository.Create(ctx, d); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

type UpdateRequest struct {
	ContactName *string
	DueDate     *time.Time
	Note        *string
}

// Update altera apenas os campos descritivos. Valor, direção e status são
// controlados pelas baixas.
func (s *Service) Update(ctx context.Context, debtID, userID ulid.ULID, req *UpdateRequest) error {
	d, err := s.GetByID(ctx, debtID, userID)
	if err != nil {
		return err
	}

	if req.ContactName != nil {
		trimmed := strings.TrimSpace(*req.ContactName)
		if trimmed == "" {
			return appErrors.NewValidationError("contact_name", "não pode ser vazio")
		}
		d.ContactName = trimmed
	}
	if req.DueDate != nil {
		d.DueDate = req.DueDate
	}
	if req.Note != nil {
		d.Note = *req.Note
	}

	d.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, d); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, debtID, userID ulid.ULID) error {
	if _, err := s.GetByID(ctx, debtID, userID); err != nil {
		return err
	}

	count, err := s.Repository.CountSettlements(ctx, debtID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if count > 0 {
		return appErrors.NewValidationError("debt", "dívida possui baixas registradas")
	}

	if err := s.Repository.Delete(ctx, debtID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

type SettlementRequest struct {
	AccountId ulid.ULID
	Amount    decimal.Decimal
	Date      time.Time
	Note      string
}

// Settle registra uma baixa da dívida: gera a transação de sistema na conta
// informada, abate o restante e fecha a dívida quando zerar. Tudo dentro de
// uma única transação de banco, com um recálculo de saldo.
func (s *Service) Settle(ctx context.Context, debtID, userID ulid.ULID, req *SettlementRequest) error {
	d, err := s.GetByID(ctx, debtID, userID)
	if err != nil {
		return err
	}

	if d.Status == StatusSettled {
		return appErrors.NewValidationError("debt", "dívida já está quitada")
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	if req.Amount.GreaterThan(d.Remaining) {
		return appErrors.NewValidationError("amount", "não pode ser maior que o valor restante")
	}

	if req.Date.IsZero() {
		return appErrors.NewValidationError("date", "é obrigatória")
	}

	if _, err := s.AccountService.GetByID(ctx, req.AccountId, userID); err != nil {
		return err
	}

	return s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		categoryName := CategoryPaymentName
		categoryType := category.TypeExpense
		transactionType := transaction.Expense
		flag := transaction.FlagDebtPayment
		if d.Direction == OwedToMe {
			categoryName = CategoryCollectName
			categoryType = category.TypeIncome
			transactionType = transaction.Income
			flag = transaction.FlagDebtCollect
		}

		cat, err := s.CategoryService.EnsureWithTx(ctx, tx, userID, categoryName, categoryType)
		if err != nil {
			return err
		}

		sourceType := transaction.SourceDebt
		sourceID := d.Id
		t := &transaction.Transaction{
			UserId:                userID,
			AccountId:             req.AccountId,
			TransactionCategoryId: cat.Id,
			Type:                  transactionType,
			Amount:                req.Amount,
			Date:                  req.Date,
			Note:                  req.Note,
			SourceType:            &sourceType,
			SourceId:              &sourceID,
			Flag:                  flag,
		}
		if err := s.Transactions.CreateSystemWithTx(ctx, tx, t); err != nil {
			return err
		}

		d.Remaining = d.Remaining.Sub(req.Amount)
		if d.Remaining.IsZero() {
			d.Status = StatusSettled
		}
		d.UpdatedAt = pkg.SetTimestamps()

		if err := s.Repository.UpdateWithTx(ctx, tx, d); err != nil {
			return appErrors.NewDatabaseError(err)
		}

		return s.Recomputer.RecomputeUserWithTx(ctx, tx, userID)
	})
}

func (s *Service) GetByID(ctx context.Context, debtID, userID ulid.ULID) (*Debt, error) {
	d, err := s.Repository.GetByIDAndUser(ctx, debtID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrDebtNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return d, nil
}

// Settlements lista as transações de baixa registradas na dívida, na ordem
// em que foram lançadas.
func (s *Service) Settlements(ctx context.Context, debtID, userID ulid.ULID) ([]*transaction.Transaction, error) {
	if _, err := s.GetByID(ctx, debtID, userID); err != nil {
		return nil, err
	}

	settlements, err := s.Transactions.ListBySource(ctx, transaction.SourceDebt, debtID)
	if err != nil {
		return nil, err
	}
	return settlements, nil
}

func (s *Service) List(ctx context.Context, userID ulid.ULID, status *Status, pagination *pkg.PaginationParams) ([]*Debt, int64, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}

	debts, total, err := s.Repository.GetAll(ctx, userID, status, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return debts, total, nil
}
