package repository

import (
	"errors"

	"flatmate/internal/model"

	"gorm.io/gorm"
)

// TokenRepository persists one-shot email verification tokens.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(token *model.VerificationToken) error {
	if err := r.db.Create(token).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

func (r *TokenRepository) Find(identifier, token string) (*model.VerificationToken, error) {
	var t model.VerificationToken
	err := r.db.Where("identifier = ? AND token = ?", identifier, token).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Delete burns a redeemed or expired token.
func (r *TokenRepository) Delete(identifier, token string) error {
	return r.db.Where("identifier = ? AND token = ?", identifier, token).
		Delete(&model.VerificationToken{}).Error
}
