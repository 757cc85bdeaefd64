package tag_test

import (
	"context"
	"testing"

	"MeuBolso/internal/domain/shared"
	"MeuBolso/internal/domain/tag"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type fakeUserGetter struct{}

func (f *fakeUserGetter) Exists(ctx context.Context, userID ulid.ULID) error { return nil }
func (f *fakeUserGetter) GetByID(ctx context.Context, userID ulid.ULID) (interface{}, error) {
	return nil, nil
}

type fakeTagRepository struct {
	createFn    func(ctx context.Context, t *tag.Tag) error
	getByIDFn   func(ctx context.Context, id ulid.ULID) (*tag.Tag, error)
	getByNameFn func(ctx context.Context, userID ulid.ULID, name string) (*tag.Tag, error)
	countFn     func(ctx context.Context, tagID ulid.ULID) (int64, error)
	deleted     []ulid.ULID
}

func (f *fakeTagRepository) Create(ctx context.Context, t *tag.Tag) error {
	if f.createFn != nil {
		return f.createFn(ctx, t)
	}
	return nil
}

func (f *fakeTagRepository) Update(ctx context.Context, t *tag.Tag) error { return nil }

func (f *fakeTagRepository) Delete(ctx context.Context, id ulid.ULID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeTagRepository) GetByID(ctx context.Context, id ulid.ULID) (*tag.Tag, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTagRepository) GetByName(ctx context.Context, userID ulid.ULID, name string) (*tag.Tag, error) {
	if f.getByNameFn != nil {
		return f.getByNameFn(ctx, userID, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTagRepository) GetByUserID(ctx context.Context, userID ulid.ULID, search *string, pagination *pkg.PaginationParams) ([]*tag.Tag, int64, error) {
	return nil, 0, nil
}

func (f *fakeTagRepository) CountTransactions(ctx context.Context, tagID ulid.ULID) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx, tagID)
	}
	return 0, nil
}

func newTagService(repo tag.Repository) *tag.Service {
	return tag.NewService(repo, shared.NewUserCheckerService(&fakeUserGetter{}))
}

func TestTagCreate(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	ctx := context.Background()

	t.Run("stamps id and trims name", func(t *testing.T) {
		var created *tag.Tag
		repo := &fakeTagRepository{
			createFn: func(ctx context.Context, entity *tag.Tag) error {
				created = entity
				return nil
			},
		}

		svc := newTagService(repo)
		entity := tag.Tag{UserId: userID, Name: "  Viagem  "}
		if err := svc.Create(ctx, &entity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created == nil || created.Name != "Viagem" {
			t.Fatalf("expected trimmed name, got %+v", created)
		}
		if pkg.IsEmptyULID(created.Id) {
			t.Fatal("expected generated id")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		svc := newTagService(&fakeTagRepository{})
		err := svc.Create(ctx, &tag.Tag{UserId: userID, Name: "   "})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := &fakeTagRepository{
			getByNameFn: func(ctx context.Context, uid ulid.ULID, name string) (*tag.Tag, error) {
				return &tag.Tag{Id: ulid.Make(), UserId: uid, Name: name}, nil
			},
		}
		svc := newTagService(repo)
		err := svc.Create(ctx, &tag.Tag{UserId: userID, Name: "Viagem"})
		assertAppErrorCode(t, err, "CONFLICT")
	})
}

func TestTagDelete(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	tagID := ulid.Make()
	ctx := context.Background()

	baseRepo := func(count int64) *fakeTagRepository {
		return &fakeTagRepository{
			getByIDFn: func(ctx context.Context, id ulid.ULID) (*tag.Tag, error) {
				return &tag.Tag{Id: tagID, UserId: userID, Name: "Viagem"}, nil
			},
			countFn: func(ctx context.Context, id ulid.ULID) (int64, error) {
				return count, nil
			},
		}
	}

	t.Run("referenced tag is kept", func(t *testing.T) {
		repo := baseRepo(3)
		svc := newTagService(repo)
		err := svc.Delete(ctx, tagID, userID)
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
		if len(repo.deleted) != 0 {
			t.Fatal("referenced tag must not be deleted")
		}
	})

	t.Run("unreferenced tag is removed", func(t *testing.T) {
		repo := baseRepo(0)
		svc := newTagService(repo)
		if err := svc.Delete(ctx, tagID, userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.deleted) != 1 || repo.deleted[0] != tagID {
			t.Fatalf("expected tag %s deleted, got %v", tagID, repo.deleted)
		}
	})

	t.Run("tag of another user", func(t *testing.T) {
		repo := baseRepo(0)
		svc := newTagService(repo)
		err := svc.Delete(ctx, tagID, ulid.Make())
		assertAppErrorCode(t, err, appErrors.ErrResourceNotOwned.Code)
	})

	t.Run("unknown tag", func(t *testing.T) {
		svc := newTagService(&fakeTagRepository{})
		err := svc.Delete(ctx, ulid.Make(), userID)
		assertAppErrorCode(t, err, appErrors.ErrTagNotFound.Code)
	})
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code)
	}
}
