package scoring

import (
	"time"

	"datenight/internal/planner/model"
)

// IsOpen reports whether a venue is open at t. Missing, empty or malformed hours
// count as open so that bad data never removes a candidate.
func IsOpen(hours *model.OpeningHours, t time.Time) bool {
	if hours == nil || len(hours.Periods) == 0 {
		return true
	}
	if isAlwaysOpen(hours.Periods) {
		return true
	}

	today := int(t.Weekday()) // 0=Sunday
	yesterday := (today + 6) % 7
	now := t.Hour()*100 + t.Minute()

	for _, p := range hours.Periods {
		if p.Close == nil || !validDayTime(p.Open) || !validDayTime(*p.Close) {
			return true
		}
		openDay := toSundayFirst(p.Open.Day, hours.Convention)
		closeDay := toSundayFirst(p.Close.Day, hours.Convention)
		open, closing := p.Open.HHMM(), p.Close.HHMM()

		if openDay == closeDay && closing > open {
			if openDay == today && open <= now && now < closing {
				return true
			}
			continue
		}
		// overnight: opened on openDay, closes on the following day
		if openDay == today && now >= open {
			return true
		}
		if openDay == yesterday && closeDay == today && now < closing {
			return true
		}
	}
	return false
}

// isAlwaysOpen detects the single open-ended period Sunday 00:00 used for 24/7 venues.
func isAlwaysOpen(periods []model.OpeningPeriod) bool {
	if len(periods) != 1 {
		return false
	}
	p := periods[0]
	return p.Close == nil && p.Open.Day == 0 && p.Open.Hour == 0 && p.Open.Minute == 0
}

func validDayTime(d model.DayTime) bool {
	return d.Day >= 0 && d.Day <= 6 && d.Hour >= 0 && d.Hour <= 24 && d.Minute >= 0 && d.Minute < 60
}

func toSundayFirst(day int, c model.DayConvention) int {
	if c == model.MondayFirst {
		return (day + 1) % 7
	}
	return day
}
