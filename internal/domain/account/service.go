package account

import (
	"context"
	"errors"
	"strings"

	"MeuBolso/internal/domain/accountcategory"
	"MeuBolso/internal/domain/shared"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CategoryChecker interface {
	GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*accountcategory.AccountCategory, error)
	DefaultForUser(ctx context.Context, userID ulid.ULID) (*accountcategory.AccountCategory, error)
}

type Service struct {
	Repository      Repository
	CategoryChecker CategoryChecker
	TxRunner        shared.TxRunner
	Recomputer      shared.BalanceRecomputer
	shared.BaseService
}

func NewService(
	repo Repository,
	categoryChecker CategoryChecker,
	txRunner shared.TxRunner,
	recomputer shared.BalanceRecomputer,
	userChecker *shared.UserCheckerService,
) *Service {
	return &Service{
		Repository:      repo,
		CategoryChecker: categoryChecker,
		TxRunner:        txRunner,
		Recomputer:      recomputer,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

type CreateRequest struct {
	UserId            ulid.ULID
	AccountCategoryId ulid.ULID
	Name              string
	InitialBalance    decimal.Decimal
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Account, error) {
	if err := s.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	if err := s.categoryBelongsToUser(ctx, req.AccountCategoryId, req.UserId); err != nil {
		return nil, err
	}

	if err := s.nameAvailable(ctx, name, req.UserId); err != nil {
		return nil, err
	}

	now := pkg.SetTimestamps()
	account := &Account{
		Id:                pkg.GenerateULIDObject(),
		UserId:            req.UserId,
		AccountCategoryId: req.AccountCategoryId,
		Name:              name,
		InitialBalance:    req.InitialBalance,
		CurrentBalance:    req.InitialBalance,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		if err := s.Repository.CreateWithTx(ctx, tx, account); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		return s.Recomputer.RecomputeUserWithTx(ctx, tx, req.UserId)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

type UpdateRequest struct {
	Name              *string
	AccountCategoryId *ulid.ULID
	InitialBalance    *decimal.Decimal
}

func (s *Service) Update(ctx context.Context, accountID, userID ulid.ULID, req *UpdateRequest) error {
	account, err := s.GetByID(ctx, accountID, userID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return appErrors.NewValidationError("name", "não pode ser vazio")
		}
		if !strings.EqualFold(account.Name, name) {
			if err := s.nameAvailable(ctx, name, userID); err != nil {
				return err
			}
		}
		account.Name = name
	}

	if req.AccountCategoryId != nil {
		if err := s.categoryBelongsToUser(ctx, *req.AccountCategoryId, userID); err != nil {
			return err
		}
		account.AccountCategoryId = *req.AccountCategoryId
	}

	initialChanged := false
	if req.InitialBalance != nil && !req.InitialBalance.Equal(account.InitialBalance) {
		account.InitialBalance = *req.InitialBalance
		initialChanged = true
	}

	account.UpdatedAt = pkg.SetTimestamps()

	return s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		if err := s.Repository.UpdateWithTx(ctx, tx, account); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if initialChanged {
			return s.Recomputer.RecomputeUserWithTx(ctx, tx, userID)
		}
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, accountID, userID ulid.ULID) error {
	if _, err := s.GetByID(ctx, accountID, userID); err != nil {
		return err
	}

	count, err := s.Repository.CountTransactions(ctx, accountID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if count > 0 {
		return appErrors.NewValidationError("account", "conta possui transações associadas")
	}

	// O delete usa o handle transacional: se o recálculo falhar, a remoção
	// da conta desfaz junto com os caches.
	err = s.TxRunner.RunInTransaction(ctx, func(tx interface{}) error {
		if err := s.Repository.DeleteWithTx(ctx, tx, accountID, userID); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		return s.Recomputer.RecomputeUserWithTx(ctx, tx, userID)
	})
	return err
}

func (s *Service) GetByID(ctx context.Context, accountID, userID ulid.ULID) (*Account, error) {
	account, err := s.Repository.GetByID(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrAccountNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	if account.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}

	return account, nil
}

func (s *Service) List(ctx context.Context, userID ulid.ULID, categoryID *ulid.ULID, search *string, pagination *pkg.PaginationParams) ([]*Account, int64, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}

	accounts, total, err := s.Repository.GetByUserID(ctx, userID, categoryID, search, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return accounts, total, nil
}

func (s *Service) GetTotalBalance(ctx context.Context, userID ulid.ULID) (decimal.Decimal, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return decimal.Zero, err
	}

	total, err := s.Repository.GetTotalBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, appErrors.NewDatabaseError(err)
	}
	return total, nil
}

// EnsureWithTx devolve a conta com o nome dado, criando-a com saldo zero na
// categoria padrão do usuário quando não existe. Usada pela importação de
// planilhas, que cria contas desconhecidas em vez de rejeitar a linha.
func (s *Service) EnsureWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, name string) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.NewValidationError("account", "nome da conta não pode ser vazio")
	}

	existing, err := s.Repository.GetByName(ctx, name, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.NewDatabaseError(err)
	}

	fallback, err := s.CategoryChecker.DefaultForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := pkg.SetTimestamps()
	account := &Account{
		Id:                pkg.GenerateULIDObject(),
		UserId:            userID,
		AccountCategoryId: fallback.Id,
		Name:              name,
		InitialBalance:    decimal.Zero,
		CurrentBalance:    decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Repository.CreateWithTx(ctx, tx, account); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return account, nil
}

// SetInitialBalanceWithTx grava o saldo inicial da conta dentro da transação
// do chamador. O recálculo fica a cargo do chamador.
func (s *Service) SetInitialBalanceWithTx(ctx context.Context, tx interface{}, account *Account, amount decimal.Decimal) error {
	account.InitialBalance = amount
	account.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.UpdateWithTx(ctx, tx, account); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) categoryBelongsToUser(ctx context.Context, categoryID, userID ulid.ULID) error {
	if _, err := s.CategoryChecker.GetByID(ctx, categoryID, userID); err != nil {
		return err
	}
	return nil
}

func (s *Service) nameAvailable(ctx context.Context, name string, userID ulid.ULID) error {
	_, err := s.Repository.GetByName(ctx, name, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return appErrors.NewConflictError("conta")
}
