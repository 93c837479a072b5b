package model

import (
	"time"
)

// Connection request statuses.
const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// ConnectionRequest is one user's interest in one listing.
// ReceiverID is the listing owner at creation time and never changes.
// (sender_id, listing_id) is unique regardless of status history, so a
// sender gets exactly one shot per listing; the composite index is the
// authoritative duplicate guard, application pre-checks are an early exit.

type ConnectionRequest struct {
	ID         uint     `gorm:"primaryKey"`
	SenderID   uint     `gorm:"not null;uniqueIndex:idx_sender_listing"`
	ReceiverID uint     `gorm:"not null;index"`
	ListingID  uint     `gorm:"not null;uniqueIndex:idx_sender_listing"`
	Status     string   `gorm:"type:varchar(16);default:'PENDING'"`
	Sender     *User    `gorm:"foreignKey:SenderID"`
	Receiver   *User    `gorm:"foreignKey:ReceiverID"`
	Listing    *Listing `gorm:"foreignKey:ListingID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ConnectionRequest) TableName() string { return "connection_request" }

// IsTerminal reports whether the request already reached a final decision.
func (r *ConnectionRequest) IsTerminal() bool { return r.Status != StatusPending }
