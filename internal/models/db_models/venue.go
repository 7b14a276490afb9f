package db_models

import "github.com/lib/pq"

// Venue is a catalog row. Hours and amenities are stored as jsonb documents.
type Venue struct {
	BaseModel
	ExternalID   string `gorm:"uniqueIndex"`
	Name         string
	PrimaryType  string         `gorm:"index"`
	Types        pq.StringArray `gorm:"type:text[]"`
	City         string         `gorm:"index"`
	Address      string
	Cost         float64
	Rating       float64
	ReviewCount  int
	Latitude     *float64
	Longitude    *float64
	Description  string
	Review       string
	Vibes        pq.StringArray `gorm:"type:text[]"`
	OpeningHours string         `gorm:"type:jsonb"`
	Amenities    string         `gorm:"type:jsonb"`
	Indoor       *bool
}
