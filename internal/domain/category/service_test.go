package category_test

import (
	"context"
	"testing"

	"MeuBolso/internal/domain/category"
	"MeuBolso/internal/domain/shared"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type fakeUserGetter struct{}

func (f *fakeUserGetter) Exists(ctx context.Context, userID ulid.ULID) error {
	return nil
}

func (f *fakeUserGetter) GetByID(ctx context.Context, userID ulid.ULID) (interface{}, error) {
	return nil, nil
}

type fakeCategoryRepository struct {
	stored       map[ulid.ULID]*category.TransactionCategory
	transactions map[ulid.ULID]int64
	created      []*category.TransactionCategory
	createdTx    []*category.TransactionCategory
	updated      []*category.TransactionCategory
	deleted      []ulid.ULID
	getByNameFn  func(name string, userID ulid.ULID) (*category.TransactionCategory, error)
}

func newFakeCategoryRepository() *fakeCategoryRepository {
	return &fakeCategoryRepository{
		stored:       make(map[ulid.ULID]*category.TransactionCategory),
		transactions: make(map[ulid.ULID]int64),
	}
}

func (f *fakeCategoryRepository) Create(ctx context.Context, entity *category.TransactionCategory) error {
	f.stored[entity.Id] = entity
	f.created = append(f.created, entity)
	return nil
}

func (f *fakeCategoryRepository) CreateWithTx(ctx context.Context, tx interface{}, entity *category.TransactionCategory) error {
	f.stored[entity.Id] = entity
	f.createdTx = append(f.createdTx, entity)
	return nil
}

func (f *fakeCategoryRepository) Update(ctx context.Context, entity *category.TransactionCategory) error {
	f.stored[entity.Id] = entity
	f.updated = append(f.updated, entity)
	return nil
}

func (f *fakeCategoryRepository) Delete(ctx context.Context, categoryID, userID ulid.ULID) error {
	delete(f.stored, categoryID)
	f.deleted = append(f.deleted, categoryID)
	return nil
}

func (f *fakeCategoryRepository) GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*category.TransactionCategory, error) {
	entity, ok := f.stored[categoryID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if entity.UserId != nil && *entity.UserId != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *entity
	return &copied, nil
}

func (f *fakeCategoryRepository) GetByName(ctx context.Context, name string, userID ulid.ULID) (*category.TransactionCategory, error) {
	if f.getByNameFn != nil {
		return f.getByNameFn(name, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepository) GetAll(ctx context.Context, userID ulid.ULID, categoryType *category.Types, includeHidden bool, pagination *pkg.PaginationParams) ([]*category.TransactionCategory, int64, error) {
	return nil, 0, nil
}

func (f *fakeCategoryRepository) CountTransactions(ctx context.Context, categoryID ulid.ULID) (int64, error) {
	return f.transactions[categoryID], nil
}

func newCategoryService(repo *fakeCategoryRepository) *category.Service {
	return category.NewService(repo, shared.NewUserCheckerService(&fakeUserGetter{}))
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		t.Fatalf("esperava AppError, obteve %v", err)
	}
	if appErr.Code != code {
		t.Fatalf("esperava código %s, obteve %s", code, appErr.Code)
	}
}

func seedCategory(repo *fakeCategoryRepository, userID *ulid.ULID, name string, categoryType category.Types, isDefault bool) *category.TransactionCategory {
	entity := &category.TransactionCategory{
		Id:        pkg.GenerateULIDObject(),
		UserId:    userID,
		Name:      name,
		Type:      categoryType,
		IsDefault: isDefault,
	}
	repo.stored[entity.Id] = entity
	return entity
}

func TestCategoryCreate(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeCategoryRepository()
	service := newCategoryService(repo)

	entity := &category.TransactionCategory{
		UserId: &userID,
		Name:   "  Assinaturas  ",
		Type:   category.TypeExpense,
	}
	if err := service.Create(context.Background(), entity); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if entity.Name != "Assinaturas" {
		t.Fatalf("nome não foi normalizado: %q", entity.Name)
	}
	if pkg.IsEmptyULID(entity.Id) {
		t.Fatal("id não foi gerado")
	}

	err := service.Create(context.Background(), &category.TransactionCategory{UserId: nil, Name: "Global", Type: category.TypeExpense})
	assertAppErrorCode(t, err, "DEFAULT_ROW_IMMUTABLE")

	err = service.Create(context.Background(), &category.TransactionCategory{UserId: &userID, Name: "Qualquer", Type: "invalid"})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeCategoryRepository()
	repo.getByNameFn = func(name string, uid ulid.ULID) (*category.TransactionCategory, error) {
		return &category.TransactionCategory{Id: pkg.GenerateULIDObject(), UserId: &uid, Name: name}, nil
	}
	service := newCategoryService(repo)

	err := service.Create(context.Background(), &category.TransactionCategory{UserId: &userID, Name: "Alimentação", Type: category.TypeExpense})
	assertAppErrorCode(t, err, "CONFLICT")
}

func TestCategoryUpdateDefaultRow(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeCategoryRepository()
	service := newCategoryService(repo)

	def := seedCategory(repo, &userID, "Salário", category.TypeIncome, true)

	newName := "Pagamento"
	err := service.Update(context.Background(), def.Id, userID, &category.UpdateRequest{Name: &newName})
	assertAppErrorCode(t, err, "DEFAULT_ROW_IMMUTABLE")

	// Em categoria padrão apenas is_hide pode ser alternado.
	hide := true
	if err := service.Update(context.Background(), def.Id, userID, &category.UpdateRequest{IsHide: &hide}); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if !repo.stored[def.Id].IsHide {
		t.Fatal("is_hide não foi persistido")
	}
	if repo.stored[def.Id].Name != "Salário" {
		t.Fatal("nome da categoria padrão não deve mudar")
	}
}

func TestCategoryUpdateTypeWithTransactions(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeCategoryRepository()
	service := newCategoryService(repo)

	entity := seedCategory(repo, &userID, "Vendas", category.TypeIncome, false)
	repo.transactions[entity.Id] = 4

	newType := category.TypeExpense
	err := service.Update(context.Background(), entity.Id, userID, &category.UpdateRequest{Type: &newType})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
	if repo.stored[entity.Id].Type != category.TypeIncome {
		t.Fatal("tipo não deve mudar quando há transações")
	}
}

func TestCategoryDelete(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeCategoryRepository()
	service := newCategoryService(repo)

	def := seedCategory(repo, &userID, "Transporte", category.TypeExpense, true)
	err := service.Delete(context.Background(), def.Id, userID)
	assertAppErrorCode(t, err, "DEFAULT_ROW_IMMUTABLE")

	used := seedCategory(repo, &userID, "Pets", category.TypeExpense, false)
	repo.transactions[used.Id] = 1
	err = service.Delete(context.Background(), used.Id, userID)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	if len(repo.deleted) != 0 {
		t.Fatal("nenhuma categoria deveria ter sido removida")
	}

	clean := seedCategory(repo, &userID, "Doações", category.TypeExpense, false)
	if err := service.Delete(context.Background(), clean.Id, userID); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != clean.Id {
		t.Fatal("categoria própria sem uso deveria ser removida")
	}

	err = service.Delete(context.Background(), pkg.GenerateULIDObject(), userID)
	assertAppErrorCode(t, err, "CATEGORY_NOT_FOUND")
}

func TestCategoryEnsureWithTx(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeCategoryRepository()
	service := newCategoryService(repo)

	created, err := service.EnsureWithTx(context.Background(), nil, userID, "Transferência Enviada", category.TypeExpense)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(repo.createdTx) != 1 {
		t.Fatalf("categoria deveria ser criada na transação, obteve %d", len(repo.createdTx))
	}

	repo.getByNameFn = func(name string, uid ulid.ULID) (*category.TransactionCategory, error) {
		if name == created.Name && uid == userID {
			return created, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	again, err := service.EnsureWithTx(context.Background(), nil, userID, "Transferência Enviada", category.TypeExpense)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if again.Id != created.Id {
		t.Fatal("segunda chamada deve reutilizar a categoria existente")
	}
	if len(repo.createdTx) != 1 {
		t.Fatal("segunda chamada não deve criar outra categoria")
	}
}

func TestCategorySeedDefaultsWithTx(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()
	repo := newFakeCategoryRepository()
	service := newCategoryService(repo)

	if err := service.SeedDefaultsWithTx(context.Background(), nil, userID); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if len(repo.createdTx) != len(category.DefaultCategories) {
		t.Fatalf("esperava %d categorias padrão, obteve %d", len(category.DefaultCategories), len(repo.createdTx))
	}
	for _, entity := range repo.createdTx {
		if !entity.IsDefault {
			t.Fatalf("categoria %s deveria nascer como padrão", entity.Name)
		}
		if entity.UserId == nil || *entity.UserId != userID {
			t.Fatalf("categoria %s deveria pertencer ao usuário", entity.Name)
		}
	}
}
