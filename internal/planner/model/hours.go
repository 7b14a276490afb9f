package model

// DayConvention tells how OpeningPeriod days are numbered.
type DayConvention int

const (
	// SundayFirst numbers days 0=Sunday..6=Saturday (Places API style).
	SundayFirst DayConvention = iota
	// MondayFirst numbers days 0=Monday..6=Sunday.
	MondayFirst
)

type DayTime struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// HHMM returns the time of day as an hhmm integer, e.g. 17:30 -> 1730.
func (d DayTime) HHMM() int {
	return d.Hour*100 + d.Minute
}

type OpeningPeriod struct {
	Open  DayTime  `json:"open"`
	Close *DayTime `json:"close,omitempty"`
}

type OpeningHours struct {
	Convention DayConvention   `json:"convention"`
	Periods    []OpeningPeriod `json:"periods"`
}
