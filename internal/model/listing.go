package model

import (
	"time"
)

// Listing categories.
const (
	CategoryPG     = "PG"
	CategoryFlat   = "FLAT"
	CategoryRoom   = "ROOM"
	CategoryHostel = "HOSTEL"
)

// Sharing types.
const (
	SharingSingle = "SINGLE"
	SharingDouble = "DOUBLE"
	SharingTriple = "TRIPLE"
)

// Furnished statuses.
const (
	Furnished     = "FURNISHED"
	SemiFurnished = "SEMI_FURNISHED"
	Unfurnished   = "UNFURNISHED"
)

// Gender preferences.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderAny    = "ANY"
)

// Listing is a room/flat advertisement owned by exactly one user.
// IsAvailable starts true and only ever transitions to false (soft delete);
// a closed listing is never reopened.

type Listing struct {
	ID              uint     `gorm:"primaryKey"`
	OwnerID         uint     `gorm:"not null;index"`
	Owner           *User    `gorm:"foreignKey:OwnerID"`
	Title           string   `gorm:"type:varchar(128);not null"`
	Description     string   `gorm:"type:text;not null"`
	Price           int      `gorm:"not null;index"`
	Deposit         int      `gorm:"default:0"`
	Category        string   `gorm:"type:varchar(16);default:'FLAT';index"`
	SharingType     string   `gorm:"type:varchar(16);default:'SINGLE'"`
	FurnishedStatus string   `gorm:"type:varchar(16);default:'UNFURNISHED'"`
	GenderPref      string   `gorm:"type:varchar(16);default:'ANY'"`
	Images          []string `gorm:"serializer:json;type:json"`

	// Amenity tags. Feed filters apply a tag only when explicitly requested.
	TagAC             bool `gorm:"default:false"`
	TagCooler         bool `gorm:"default:false"`
	TagNoBrokerage    bool `gorm:"default:false"`
	TagWifi           bool `gorm:"default:false"`
	TagCook           bool `gorm:"default:false"`
	TagMaid           bool `gorm:"default:false"`
	TagGeyser         bool `gorm:"default:false"`
	TagMetroNear      bool `gorm:"default:false"`
	TagNoRestrictions bool `gorm:"default:false"`

	IsAvailable bool     `gorm:"default:true;index"`
	CollegeID   *uint    `gorm:"index"`
	College     *College `gorm:"foreignKey:CollegeID"`
	Location    *Location
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (Listing) TableName() string { return "listing" }

// Location is owned 1:1 by its listing.

type Location struct {
	ID             uint    `gorm:"primaryKey"`
	ListingID      uint    `gorm:"not null;uniqueIndex"`
	Latitude       float64 `gorm:"not null"`
	Longitude      float64 `gorm:"not null"`
	DisplayAddress string  `gorm:"type:varchar(255);not null"`
}

func (Location) TableName() string { return "location" }
