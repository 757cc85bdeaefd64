package tag

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

func (s *Service) Create(ctx context.Context, t *Tag) error {
	if err := s.EnsureUserExists(ctx, t.UserId); err != nil {
		return err
	}

	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}

	if err := s.nameAvailable(ctx, t.UserId, t.Name); err != nil {
		return err
	}

	t.Id = pkg.GenerateULIDObject()
	now := pkg.SetTimestamps()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.Repository.Create(ctx, t); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) Update(ctx context.Context, tagID, userID ulid.ULID, name string) error {
	t, err := s.GetByID(ctx, tagID, userID)
	if err != nil {
		return err
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return appErrors.NewValidationError("name", "não pode ser vazio")
	}

	if !strings.EqualFold(t.Name, trimmed) {
		if err := s.nameAvailable(ctx, userID, trimmed); err != nil {
			return err
		}
	}

	t.Name = trimmed
	t.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, t); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, tagID, userID ulid.ULID) error {
	if _, err := s.GetByID(ctx, tagID, userID); err != nil {
		return err
	}

	count, err := s.Repository.CountTransactions(ctx, tagID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if count > 0 {
		return appErrors.NewValidationError("tag", "tag possui transações associadas")
	}

	if err := s.Repository.Delete(ctx, tagID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, tagID, userID ulid.ULID) (*Tag, error) {
	t, err := s.Repository.GetByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTagNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	if t.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, userID ulid.ULID, search *string, pagination *pkg.PaginationParams) ([]*Tag, int64, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}

	tags, total, err := s.Repository.GetByUserID(ctx, userID, search, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return tags, total, nil
}

func (s *Service) nameAvailable(ctx context.Context, userID ulid.ULID, name string) error {
	_, err := s.Repository.GetByName(ctx, userID, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return appErrors.NewConflictError("tag")
}
