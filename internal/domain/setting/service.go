package setting

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

// Set faz upsert de um conjunto de pares chave/valor do usuário.
func (s *Service) Set(ctx context.Context, userID ulid.ULID, values map[string]string) error {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return err
	}

	if len(values) == 0 {
		return appErrors.NewValidationError("settings", "nenhuma configuração informada")
	}

	now := pkg.SetTimestamps()
	for key, value := range values {
		key = strings.TrimSpace(key)
		if key == "" {
			return appErrors.NewValidationError("key", "não pode ser vazia")
		}

		entry := &Setting{
			Id:        pkg.GenerateULIDObject(),
			UserId:    userID,
			Key:       key,
			Value:     value,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Repository.Upsert(ctx, entry); err != nil {
			return appErrors.NewDatabaseError(err)
		}
	}
	return nil
}

func (s *Service) GetByKey(ctx context.Context, userID ulid.ULID, key string) (*Setting, error) {
	entry, err := s.Repository.GetByKey(ctx, userID, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return entry, nil
}

func (s *Service) GetAll(ctx context.Context, userID ulid.ULID) ([]*Setting, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	entries, err := s.Repository.GetAll(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return entries, nil
}
