package repository

import (
	"errors"

	"flatmate/internal/model"

	"gorm.io/gorm"
)

// ConnectionRequestRepository persists the request state machine rows.
type ConnectionRequestRepository struct {
	db *gorm.DB
}

func NewConnectionRequestRepository(db *gorm.DB) *ConnectionRequestRepository {
	return &ConnectionRequestRepository{db: db}
}

// Create inserts a new request. A unique-index violation on
// (sender_id, listing_id) comes back as ErrDuplicateKey.
func (r *ConnectionRequestRepository) Create(req *model.ConnectionRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

func (r *ConnectionRequestRepository) GetByID(id uint) (*model.ConnectionRequest, error) {
	var req model.ConnectionRequest
	err := r.db.Preload("Sender").First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetBySenderAndListing finds the unique row for the pair, in any status.
func (r *ConnectionRequestRepository) GetBySenderAndListing(senderID, listingID uint) (*model.ConnectionRequest, error) {
	var req model.ConnectionRequest
	err := r.db.Where("sender_id = ? AND listing_id = ?", senderID, listingID).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetAcceptedForUser finds an ACCEPTED request on the listing with the user
// on either side, with both parties loaded for contact resolution.
func (r *ConnectionRequestRepository) GetAcceptedForUser(listingID, userID uint) (*model.ConnectionRequest, error) {
	var req model.ConnectionRequest
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("listing_id = ? AND status = ?", listingID, model.StatusAccepted).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListIncoming returns all requests addressed to the receiver, newest
// first, with sender and listing summaries loaded.
func (r *ConnectionRequestRepository) ListIncoming(receiverID uint) ([]*model.ConnectionRequest, error) {
	var requests []*model.ConnectionRequest
	err := r.db.Preload("Sender").Preload("Listing").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// UpdateStatus transitions a request out of PENDING. The status predicate
// makes the transition single-shot even under concurrent responders; a
// zero rows-affected result means the request was already decided.
func (r *ConnectionRequestRepository) UpdateStatus(id uint, status string) (bool, error) {
	res := r.db.Model(&model.ConnectionRequest{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountPending counts undecided requests addressed to the receiver.
func (r *ConnectionRequestRepository) CountPending(receiverID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ConnectionRequest{}).
		Where("receiver_id = ? AND status = ?", receiverID, model.StatusPending).
		Count(&count).Error
	return count, err
}
