package db_models

import "github.com/lib/pq"

// PlanRating is a user's 1-5 satisfaction score for a plan they were served.
type PlanRating struct {
	BaseModel
	UserID    string         `gorm:"type:text;index"`
	Algorithm string         `gorm:"type:text;not null;index"`
	City      string         `gorm:"type:text"`
	Knowledge string         `gorm:"type:text"`
	VenueIDs  pq.StringArray `gorm:"type:text[]"`
	Rating    int            `gorm:"type:int;not null;check:rating >= 1 AND rating <= 5"`
	Comment   string         `gorm:"type:text"`
}
