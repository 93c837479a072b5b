package model

import (
	"time"
)

// VerificationToken is a one-shot email verification token.
// Identifier is the email it was issued for; the row is deleted on redemption.

type VerificationToken struct {
	ID         uint      `gorm:"primaryKey"`
	Identifier string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_identifier_token"`
	Token      string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_identifier_token"`
	ExpiresAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time
}

func (VerificationToken) TableName() string { return "verification_token" }

// Expired reports whether the token can no longer be redeemed.
func (t *VerificationToken) Expired(now time.Time) bool { return t.ExpiresAt.Before(now) }
