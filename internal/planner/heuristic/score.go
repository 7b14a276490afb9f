package heuristic

import (
	"math"
	"strings"

	"datenight/internal/planner/model"
	"datenight/internal/planner/scoring"
)

var groupVibes = []string{"group", "groups", "friends", "party"}

// score rates venue i as stop number step given what has been picked so far.
func (p *Planner) score(idx *scoring.Index, i int, relevance float64, c model.Constraints, st *progress, hour, step int) float64 {
	w := p.cfg.Weights
	v := idx.Venue(i)
	s := 0.0

	vibes := v.Vibes
	if len(vibes) == 0 {
		vibes = p.kb.TypeVibes(v.PrimaryType)
	}
	for _, target := range c.Vibes {
		if containsFold(vibes, target) {
			s += w.VibeMatch
		}
	}
	if containsFold(vibes, "neutral") {
		s += w.NeutralVibe
	}

	if c.HiddenGems {
		switch {
		case scoring.IsHiddenGem(p.kb, v.Rating, v.ReviewCount):
			s += w.HiddenGem
		case v.ReviewCount > w.PopularReviews:
			s -= w.PopularPenalty
		}
		s += v.Rating * w.Rating
	} else {
		s += scoring.BayesianRating(p.kb, v.Rating, v.ReviewCount) * w.Rating
	}

	s += p.rng.Float64() * w.Jitter * (v.Rating / 5.0) * scoring.RatingConfidence(p.kb, v.ReviewCount)

	if km, ok := scoring.DistanceKm(st.prev, v.Location); ok {
		s -= math.Pow(km, w.DistanceExponent) * w.Distance
	}

	if len(st.needed) > 0 {
		if idx.Match(p.kb, st.needed, i).Matched() {
			s += w.TypeMatch
		} else {
			switch scoring.VenueStage(v) {
			case model.StageMeal:
				s -= w.WrongCuisine
			case model.StageOther:
				s -= w.UnknownStage
			default:
				s += w.Complementary
			}
		}
	}

	s += relevance * w.Relevance

	venueType := strings.ToLower(v.PrimaryType)
	if _, seen := st.visited[venueType]; seen && venueType != "" {
		s -= w.RepeatedType
	}
	category, _, _ := strings.Cut(venueType, "_")
	if _, seen := st.visited[category]; !seen && category != "" {
		s += w.NewCategory
	}

	if hour >= 0 {
		// a weak slot must also push a negative score further down
		m := scoring.TimeMultiplier(scoring.ProjectedHour(hour, step), v.PrimaryType)
		if s >= 0 {
			s *= m
		} else {
			s /= m
		}
	}

	return s + p.amenityBonus(v, c.Vibes)
}

func (p *Planner) amenityBonus(v *model.Venue, vibes []string) float64 {
	w := p.cfg.Weights
	a := v.Amenities
	bonus := 0.0
	if containsFold(vibes, "romantic") {
		if a.Reservable {
			bonus += w.RomanticReserve
		}
		if a.GoodForChildren {
			bonus -= w.RomanticKids
		}
	}
	if (containsFold(vibes, "outdoors") || containsFold(vibes, "outdoor")) && a.OutdoorSeating {
		bonus += w.OutdoorSeating
	}
	if containsFold(vibes, "family") && a.GoodForChildren {
		bonus += w.FamilyKids
	}
	if containsFold(vibes, "energetic") && a.LiveMusic {
		bonus += w.EnergeticLive
	}
	for _, g := range groupVibes {
		if containsFold(vibes, g) {
			if a.GoodForGroups {
				bonus += w.GroupFriendly
			}
			break
		}
	}
	return bonus
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), s) {
			return true
		}
	}
	return false
}
