package model

import (
	"time"
)

// User account record.
// Email is the login identifier and is unique. PasswordHash is nil for
// accounts created through an external identity provider.
// EmailVerifiedAt is nil until a verification token is redeemed; it is set
// exactly once. Users are never hard-deleted.

type User struct {
	ID              uint    `gorm:"primaryKey"`
	Email           string  `gorm:"type:varchar(128);not null;uniqueIndex"`
	PasswordHash    *string `gorm:"type:varchar(255)"`
	Name            string  `gorm:"type:varchar(64);not null"`
	Phone           string  `gorm:"type:varchar(32)"`
	College         string  `gorm:"type:varchar(128)"`
	Image           string  `gorm:"type:varchar(255)"`
	Role            string  `gorm:"type:varchar(32);default:'USER'"`
	IsBlacklisted   bool    `gorm:"default:false"`
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (User) TableName() string { return "user" }

// IsVerified reports whether the email verification token was ever redeemed.
func (u *User) IsVerified() bool { return u.EmailVerifiedAt != nil }
