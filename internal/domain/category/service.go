package category

import (
	"context"
	"errors"
	"strings"

	"MeuBolso/internal/domain/shared"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type Service struct {
	Repository Repository
	shared.BaseService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository: repo,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

func (s *Service) Create(ctx context.Context, category *TransactionCategory) error {
	if category.UserId == nil {
		return appErrors.ErrDefaultRowImmutable
	}

	if err := s.EnsureUserExists(ctx, *category.UserId); err != nil {
		return err
	}

	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}

	if !category.Type.IsValid() {
		return appErrors.NewValidationError("type", "deve ser income ou expense")
	}

	if err := s.nameAvailable(ctx, category.Name, *category.UserId); err != nil {
		return err
	}

	category.Id = pkg.GenerateULIDObject()
	now := pkg.SetTimestamps()
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := s.Repository.Create(ctx, category); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

type UpdateRequest struct {
	Name   *string
	Type   *Types
	IsHide *bool
}

func (s *Service) Update(ctx context.Context, categoryID, userID ulid.ULID, req *UpdateRequest) error {
	category, err := s.GetByID(ctx, categoryID, userID)
	if err != nil {
		return err
	}

	if category.IsDefault || category.UserId == nil {
		// Apenas is_hide pode ser alternado em categorias padrão.
		if req.Name != nil || req.Type != nil {
			return appErrors.ErrDefaultRowImmutable
		}
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return appErrors.NewValidationError("name", "não pode ser vazio")
		}
		if !strings.EqualFold(category.Name, trimmed) {
			if err := s.nameAvailable(ctx, trimmed, userID); err != nil {
				return err
			}
		}
		category.Name = trimmed
	}

	if req.Type != nil {
		if !req.Type.IsValid() {
			return appErrors.NewValidationError("type", "deve ser income ou expense")
		}

		count, err := s.Repository.CountTransactions(ctx, categoryID)
		if err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if count > 0 && *req.Type != category.Type {
			return appErrors.NewValidationError("type", "categoria possui transações, tipo não pode mudar")
		}
		category.Type = *req.Type
	}

	if req.IsHide != nil {
		category.IsHide = *req.IsHide
	}

	category.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, category); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, categoryID, userID ulid.ULID) error {
	category, err := s.GetByID(ctx, categoryID, userID)
	if err != nil {
		return err
	}

	if category.IsDefault || category.UserId == nil {
		return appErrors.ErrDefaultRowImmutable
	}

	count, err := s.Repository.CountTransactions(ctx, categoryID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if count > 0 {
		return appErrors.NewValidationError("category", "categoria possui transações associadas")
	}

	if err := s.Repository.Delete(ctx, categoryID, userID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*TransactionCategory, error) {
	category, err := s.Repository.GetByID(ctx, categoryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrCategoryNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return category, nil
}

func (s *Service) List(ctx context.Context, userID ulid.ULID, categoryType *Types, includeHidden bool, pagination *pkg.PaginationParams) ([]*TransactionCategory, int64, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}

	categories, total, err := s.Repository.GetAll(ctx, userID, categoryType, includeHidden, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return categories, total, nil
}

// SeedDefaultsWithTx cria as categorias de transação padrão do usuário recém
// registrado dentro da transação do cadastro.
func (s *Service) SeedDefaultsWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) error {
	now := pkg.SetTimestamps()
	for _, def := range DefaultCategories {
		uid := userID
		category := &TransactionCategory{
			Id:        pkg.GenerateULIDObject(),
			UserId:    &uid,
			Name:      def.Name,
			Type:      def.Type,
			IsDefault: true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Repository.CreateWithTx(ctx, tx, category); err != nil {
			if shared.IsUniqueConstraintError(err) {
				continue
			}
			return appErrors.NewDatabaseError(err)
		}
	}
	return nil
}

// EnsureWithTx devolve a categoria com o nome dado, criando-a dentro da
// transação do chamador quando ainda não existe. Usada por transferências,
// dívidas e importação de planilhas.
func (s *Service) EnsureWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, name string, categoryType Types) (*TransactionCategory, error) {
	existing, err := s.Repository.GetByName(ctx, name, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.NewDatabaseError(err)
	}

	uid := userID
	now := pkg.SetTimestamps()
	category := &TransactionCategory{
		Id:        pkg.GenerateULIDObject(),
		UserId:    &uid,
		Name:      name,
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repository.CreateWithTx(ctx, tx, category); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return category, nil
}

func (s *Service) nameAvailable(ctx context.Context, name string, userID ulid.ULID) error {
	_, err := s.Repository.GetByName(ctx, name, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return appErrors.NewConflictError("categoria")
}
