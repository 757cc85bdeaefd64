package transaction

import (
	"context"
	"errors"

	"MeuBolso/internal/domain/account"
	"MeuBolso/internal/domain/category"
	"MeuBolso/internal/domain/shared"
	"MeuBolso/internal/domain/tag"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CategoryGetter interface {
	GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*category.TransactionCategory, error)
}

type AccountGetter interface {
	GetByID(ctx context.Context, accountID, userID ulid.ULID) (*account.Account, error)
}

type TagGetter interface {
	GetByID(ctx context.Context, tagID, userID ulid.ULID) (*tag.Tag, error)
}

type Service struct {
	Repository      Repository
	CategoryService CategoryGetter
	AccountService  AccountGetter
	TagService      TagGetter
	TxRunner        shared.TxRunner
	Recomputer      shared.BalanceRecomputer
	shared.BaseService
}

func NewService(
	repo Repository,
	categorySvc CategoryGetter,
	accountSvc AccountGetter,
	tagSvc TagGetter,
	txRunner shared.TxRunner,
	recomputer shared.BalanceRecomputer,
	userChecker *shared.UserCheckerService,
) *Service {
	return &Service{
		Repository:      repo,
		CategoryService: categorySvc,
		AccountService:  accountSvc,
		TagService:      tagSvc,
		TxRunner:        txRunner,
		Recomputer:      recomputer,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

func (s *Service) Create(ctx context.Context, t *Transaction) error {
	if err := s.EnsureUserExists(ctx, t.UserId); err != nil {
		return err
	}

	// Rotas comuns só criam transações normais.
	t.Flag = FlagNormal
	t.SourceType = nil
	t.SourceId = nil

	if err := s.validate(ctx, t); err != nil {
		return err
	}

	stampNew(t)

	return s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		if err := s.Repository.CreateWithTx(ctx, tx, t); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if len(t.TagIds) > 0 {
			if err := s.Repository.ReplaceTagsWithTx(ctx, tx, t.Id, t.TagIds); err != nil {
				return appErrors.NewDatabaseError(err)
			}
		}
		return s.Recomputer.RecomputeUserWithTx(ctx, tx, t.UserId)
	})
}

// CreateBulk insere todas as transações em uma única transação de banco e
// dispara exatamente um recálculo de saldo para o usuário.
func (s *Service) CreateBulk(ctx context.Context, userID ulid.ULID, ts []*Transaction) error {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return err
	}

	if len(ts) == 0 {
		return appErrors.NewValidationError("transactions", "lista não pode ser vazia")
	}

	for _, t := range ts {
		t.UserId = userID
		t.Flag = FlagNormal
		t.SourceType = nil
		t.SourceId = nil
		if err := s.validate(ctx, t); err != nil {
			return err
		}
		stampNew(t)
	}

	return s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		if err := s.Repository.CreateBatchWithTx(ctx, tx, ts); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		for _, t := range ts {
			if len(t.TagIds) > 0 {
				if err := s.Repository.ReplaceTagsWithTx(ctx, tx, t.Id, t.TagIds); err != nil {
					return appErrors.NewDatabaseError(err)
				}
			}
		}
		return s.Recomputer.RecomputeUserWithTx(ctx, tx, userID)
	})
}

func (s *Service) Update(ctx context.Context, t *Transaction) error {
	stored, err := s.GetByID(ctx, t.Id, t.UserId)
	if err != nil {
		return err
	}

	if stored.Flag.IsSystem() {
		return appErrors.ErrSystemTransaction
	}

	stored.AccountId = t.AccountId
	stored.TransactionCategoryId = t.TransactionCategoryId
	stored.Type = t.Type
	stored.Amount = t.Amount
	stored.Note = t.Note
	if !t.Date.IsZero() {
		stored.Date = t.Date
	}
	stored.TagIds = t.TagIds

	if err := s.validate(ctx, stored); err != nil {
		return err
	}

	stored.UpdatedAt = pkg.SetTimestamps()

	return s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		if err := s.Repository.UpdateWithTx(ctx, tx, stored); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if stored.TagIds != nil {
			if err := s.Repository.ReplaceTagsWithTx(ctx, tx, stored.Id, stored.TagIds); err != nil {
				return appErrors.NewDatabaseError(err)
			}
		}
		return s.Recomputer.RecomputeUserWithTx(ctx, tx, stored.UserId)
	})
}

func (s *Service) Delete(ctx context.Context, transactionID, userID ulid.ULID) error {
	stored, err := s.GetByID(ctx, transactionID, userID)
	if err != nil {
		return err
	}

	if stored.Flag.IsSystem() {
		return appErrors.ErrSystemTransaction
	}

	return s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		if err := s.Repository.ReplaceTagsWithTx(ctx, tx, transactionID, nil); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if err := s.Repository.DeleteWithTx(ctx, tx, transactionID); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		return s.Recomputer.RecomputeUserWithTx(ctx, tx, userID)
	})
}

func (s *Service) GetByID(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error) {
	t, err := s.Repository.GetByIDAndUser(ctx, transactionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTransactionNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	tagIDs, err := s.Repository.GetTagIDs(ctx, transactionID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	t.TagIds = tagIDs

	return t, nil
}

func (s *Service) List(ctx context.Context, userID ulid.ULID, filter *Filter, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}

	transactions, total, err := s.Repository.GetAll(ctx, userID, filter, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return transactions, total, nil
}

// CreateSystemWithTx insere uma transação gerada pelo sistema (transferência,
// dívida, saldo inicial) dentro da transação de banco do chamador. O chamador
// é responsável pelo recálculo de saldo.
func (s *Service) CreateSystemWithTx(ctx context.Context, tx interface{}, t *Transaction) error {
	if !t.Flag.IsSystem() {
		return appErrors.NewValidationError("flag", "flag de sistema inválida")
	}
	if !t.Type.IsValid() {
		return appErrors.NewValidationError("type", "deve ser income ou expense")
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	stampNew(t)

	if err := s.Repository.CreateWithTx(ctx, tx, t); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// CreateImportedWithTx insere em lote as transações produzidas por uma
// importação de planilha, preservando a flag atribuída pela classificação
// das linhas. Roda dentro da transação de banco da importação.
func (s *Service) CreateImportedWithTx(ctx context.Context, tx interface{}, ts []*Transaction) error {
	for _, t := range ts {
		if !t.Flag.IsValid() {
			return appErrors.NewValidationError("flag", "flag inválida")
		}
		if !t.Type.IsValid() {
			return appErrors.NewValidationError("type", "deve ser income ou expense")
		}
		stampNew(t)
	}

	if err := s.Repository.CreateBatchWithTx(ctx, tx, ts); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// DeleteByImportWithTx remove todas as transações produzidas por uma
// importação.
func (s *Service) DeleteByImportWithTx(ctx context.Context, tx interface{}, importID ulid.ULID) error {
	if err := s.Repository.DeleteByImportWithTx(ctx, tx, importID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// DeleteBySourceWithTx remove as transações vinculadas a uma origem
// polimórfica (par de transferência, baixas de dívida).
func (s *Service) DeleteBySourceWithTx(ctx context.Context, tx interface{}, sourceType string, sourceID ulid.ULID) error {
	if err := s.Repository.DeleteBySourceWithTx(ctx, tx, sourceType, sourceID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// ListBySource devolve as transações vinculadas a uma origem polimórfica,
// como as baixas registradas em uma dívida.
func (s *Service) ListBySource(ctx context.Context, sourceType string, sourceID ulid.ULID) ([]*Transaction, error) {
	transactions, err := s.Repository.GetBySource(ctx, sourceType, sourceID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return transactions, nil
}

func (s *Service) validate(ctx context.Context, t *Transaction) error {
	if !t.Type.IsValid() {
		return appErrors.NewValidationError("type", "deve ser income ou expense")
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	if t.Date.IsZero() {
		return appErrors.NewValidationError("date", "é obrigatória")
	}

	if _, err := s.AccountService.GetByID(ctx, t.AccountId, t.UserId); err != nil {
		return err
	}

	cat, err := s.CategoryService.GetByID(ctx, t.TransactionCategoryId, t.UserId)
	if err != nil {
		return err
	}
	if string(cat.Type) != string(t.Type) {
		return appErrors.NewValidationError("transaction_category_id", "tipo da categoria não corresponde ao tipo da transação")
	}

	for _, tagID := range t.TagIds {
		if _, err := s.TagService.GetByID(ctx, tagID, t.UserId); err != nil {
			return err
		}
	}

	return nil
}

func stampNew(t *Transaction) {
	t.Id = pkg.GenerateULIDObject()
	now := pkg.SetTimestamps()
	t.CreatedAt = now
	t.UpdatedAt = now
}
