package repository

import (
	"errors"
	"strings"

	"flatmate/internal/model"

	"gorm.io/gorm"
)

// ListingRepository persists listings and serves the filtered feed.
type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create inserts the listing together with its location in one transaction.
func (r *ListingRepository) Create(listing *model.Listing) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// gorm cascades the associated Location insert with the parent
		return tx.Create(listing).Error
	})
}

func (r *ListingRepository) GetByID(id uint) (*model.Listing, error) {
	var l model.Listing
	err := r.db.Preload("Location").Preload("College").Preload("Owner").
		First(&l, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ListByOwner returns the owner's listings newest first, closed ones
// included so owners can see filled rooms.
func (r *ListingRepository) ListByOwner(ownerID uint) ([]*model.Listing, error) {
	var listings []*model.Listing
	err := r.db.Preload("Location").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

// Close soft-deletes: is_available only ever transitions true to false.
func (r *ListingRepository) Close(id uint) error {
	return r.db.Model(&model.Listing{}).
		Where("id = ?", id).
		Update("is_available", false).Error
}

// Search runs the feed query. Count and page are fetched inside one read
// transaction so both see the same snapshot under concurrent writes.
func (r *ListingRepository) Search(filter model.ListingFilter, offset, limit int) ([]*model.Listing, int64, error) {
	var (
		listings []*model.Listing
		total    int64
	)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		base := applyFilter(tx.Model(&model.Listing{}), filter)

		if err := base.Count(&total).Error; err != nil {
			return err
		}

		return applyFilter(tx.Model(&model.Listing{}), filter).
			Preload("Location").Preload("College").Preload("Owner").
			Order("listing.created_at DESC").
			Offset(offset).
			Limit(limit).
			Find(&listings).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// applyFilter builds the AND-combined feed predicate. The availability
// check is always present; everything else is opt-in.
func applyFilter(q *gorm.DB, f model.ListingFilter) *gorm.DB {
	q = q.Where("listing.is_available = ?", true)

	if f.Query != "" {
		q = q.Joins("JOIN location ON location.listing_id = listing.id").
			Where("LOWER(location.display_address) LIKE ?", contains(f.Query))
	}
	if f.College != "" {
		q = q.Joins("JOIN college ON college.id = listing.college_id").
			Where("LOWER(college.name) LIKE ?", contains(f.College))
	}

	if f.Category != "" {
		q = q.Where("listing.category = ?", f.Category)
	}
	if f.Sharing != "" {
		q = q.Where("listing.sharing_type = ?", f.Sharing)
	}
	if f.Furnished != "" {
		q = q.Where("listing.furnished_status = ?", f.Furnished)
	}
	if f.Gender != "" {
		q = q.Where("listing.gender_pref = ?", f.Gender)
	}

	if f.MinPrice > 0 {
		q = q.Where("listing.price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("listing.price <= ?", f.MaxPrice)
	}

	if f.AC {
		q = q.Where("listing.tag_ac = ?", true)
	}
	if f.Cooler {
		q = q.Where("listing.tag_cooler = ?", true)
	}
	if f.NoBrokerage {
		q = q.Where("listing.tag_no_brokerage = ?", true)
	}
	if f.Wifi {
		q = q.Where("listing.tag_wifi = ?", true)
	}
	if f.Cook {
		q = q.Where("listing.tag_cook = ?", true)
	}
	if f.Maid {
		q = q.Where("listing.tag_maid = ?", true)
	}
	if f.Geyser {
		q = q.Where("listing.tag_geyser = ?", true)
	}
	if f.MetroNear {
		q = q.Where("listing.tag_metro_near = ?", true)
	}
	if f.NoRestrictions {
		q = q.Where("listing.tag_no_restrictions = ?", true)
	}

	return q
}

func contains(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
