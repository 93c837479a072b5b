package model

// College is a seeded directory entry listings can reference.
// (name, city) is unique so re-seeding upserts instead of duplicating.

type College struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"type:varchar(128);not null;uniqueIndex:idx_college_name_city"`
	City      string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_college_name_city"`
	State     string  `gorm:"type:varchar(64)"`
	Latitude  float64
	Longitude float64
}

func (College) TableName() string { return "college" }
