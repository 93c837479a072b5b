package repository

import (
	"errors"

	"flatmate/internal/model"

	"gorm.io/gorm"
)

type CollegeRepository struct {
	db *gorm.DB
}

func NewCollegeRepository(db *gorm.DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// List returns the whole directory ordered by name.
func (r *CollegeRepository) List() ([]*model.College, error) {
	var colleges []*model.College
	err := r.db.Order("name ASC").Find(&colleges).Error
	return colleges, err
}

// Upsert seeds one directory entry, keyed on (name, city).
func (r *CollegeRepository) Upsert(college *model.College) error {
	var existing model.College
	err := r.db.Where("name = ? AND city = ?", college.Name, college.City).
		First(&existing).Error
	if err == nil {
		college.ID = existing.ID
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := r.db.Create(college).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}
