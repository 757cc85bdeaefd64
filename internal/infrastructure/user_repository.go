package infrastructure

import (
	"context"
	"time"

	"MeuBolso/internal/domain/user"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

var _ user.Repository = (*UserRepository)(nil)

type userDB struct {
	Id        string          `gorm:"type:varchar(26);primaryKey;column:id"`
	Name      string          `gorm:"size:255;not null;column:name"`
	Email     string          `gorm:"size:255;uniqueIndex:idx_users_email;not null;column:email"`
	Password  string          `gorm:"size:255;not null;column:password"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null;column:balance"`
	CreatedAt time.Time       `gorm:"not null;column:created_at"`
	UpdatedAt time.Time       `gorm:"not null;column:updated_at"`
}

func toDomainUser(udb *userDB) (*user.User, error) {
	id, err := pkg.ParseULID(udb.Id)
	if err != nil {
		return nil, err
	}
	return &user.User{
		Id:        id,
		Name:      udb.Name,
		Email:     udb.Email,
		Password:  udb.Password,
		Balance:   udb.Balance,
		CreatedAt: udb.CreatedAt,
		UpdatedAt: udb.UpdatedAt,
	}, nil
}

func toDBUser(u *user.User) *userDB {
	return &userDB{
		Id:        u.Id.String(),
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.DB.WithContext(ctx).Table("users").Create(toDBUser(u)).Error
}

func (r *UserRepository) CreateWithTx(ctx context.Context, tx interface{}, u *user.User) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("users").Create(toDBUser(u)).Error
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	return r.DB.WithContext(ctx).Table("users").Where("id = ?", udb.Id).Updates(udb).Error
}

func (r *UserRepository) Delete(ctx context.Context, id ulid.ULID) error {
	uid := id.String()
	// Remove em cascata tudo que pertence ao usuário.
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM transaction_tags WHERE transaction_id IN (SELECT id FROM transactions WHERE user_id = ?)`, uid).Error; err != nil {
			return err
		}
		tables := []string{
			"transactions", "tags", "transfers", "debts", "import_transactions",
			"accounts", "account_categories", "transaction_categories", "settings",
		}
		for _, table := range tables {
			if err := tx.Exec("DELETE FROM "+table+" WHERE user_id = ?", uid).Error; err != nil {
				return err
			}
		}
		return tx.Table("users").Where("id = ?", uid).Delete(&userDB{}).Error
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	var udb userDB
	err := r.DB.WithContext(ctx).Table("users").Where("id = ?", id.String()).First(&udb).Error
	if err != nil {
		return nil, err
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var udb userDB
	err := r.DB.WithContext(ctx).Table("users").Where("email = ?", email).First(&udb).Error
	if err != nil {
		return nil, err
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) UpdateBalanceWithTx(ctx context.Context, tx interface{}, id ulid.ULID, balance decimal.Decimal) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("users").
		Where("id = ?", id.String()).
		Update("balance", balance).Error
}
