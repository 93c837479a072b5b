package repository

import (
	"errors"

	"flatmate/internal/model"

	"gorm.io/gorm"
)

// ErrNotFound is returned by point lookups when no row matches.
var ErrNotFound = errors.New("record not found")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var u model.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var u model.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// MarkVerified sets the verification timestamp. It only ever transitions
// from NULL, repeated verification attempts are no-ops.
func (r *UserRepository) MarkVerified(email string) error {
	return r.db.Model(&model.User{}).
		Where("email = ? AND email_verified_at IS NULL", email).
		Update("email_verified_at", gorm.Expr("NOW()")).Error
}
