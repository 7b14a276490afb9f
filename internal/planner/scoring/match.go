package scoring

import (
	"strings"

	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
)

type MatchKind int

const (
	NoMatch MatchKind = iota
	RelatedMatch
	AmenityMatch
	CuisineRootMatch
	DirectMatch
)

const (
	directScore      = 1.0
	cuisineRootScore = 0.9
	amenityScore     = 0.8
	relatedScore     = 0.6
)

// Match is the outcome of testing one requested type against a venue.
type Match struct {
	Score  float64
	Target string
	Term   string
	Kind   MatchKind
}

func (m Match) Matched() bool {
	return m.Kind != NoMatch
}

// Cuisines is the list of cuisine words used to tell restaurants apart.
var Cuisines = []string{
	"italian", "french", "japanese", "chinese", "vietnamese", "thai",
	"indian", "mexican", "korean", "greek", "mediterranean", "american",
	"pizza", "sushi", "ramen", "pho", "burger", "steak", "seafood",
	"bbq", "brazilian", "spanish", "german", "turkish", "lebanese",
}

// amenityFlags maps request words to the amenity that satisfies them.
var amenityFlags = map[string]func(a *model.Amenities) bool{
	"dinner":       func(a *model.Amenities) bool { return a.ServesDinner },
	"lunch":        func(a *model.Amenities) bool { return a.ServesLunch },
	"breakfast":    func(a *model.Amenities) bool { return a.ServesBreakfast },
	"brunch":       func(a *model.Amenities) bool { return a.ServesBrunch },
	"coffee":       func(a *model.Amenities) bool { return a.ServesCoffee },
	"dessert":      func(a *model.Amenities) bool { return a.ServesDessert },
	"beer":         func(a *model.Amenities) bool { return a.ServesBeer },
	"wine":         func(a *model.Amenities) bool { return a.ServesWine },
	"cocktails":    func(a *model.Amenities) bool { return a.ServesCocktails },
	"vegetarian":   func(a *model.Amenities) bool { return a.ServesVegetarian },
	"veggie":       func(a *model.Amenities) bool { return a.ServesVegetarian },
	"groups":       func(a *model.Amenities) bool { return a.GoodForGroups },
	"group":        func(a *model.Amenities) bool { return a.GoodForGroups },
	"kids":         func(a *model.Amenities) bool { return a.GoodForChildren },
	"children":     func(a *model.Amenities) bool { return a.GoodForChildren },
	"family":       func(a *model.Amenities) bool { return a.GoodForChildren },
	"sports":       func(a *model.Amenities) bool { return a.GoodForSports },
	"live music":   func(a *model.Amenities) bool { return a.LiveMusic },
	"music":        func(a *model.Amenities) bool { return a.LiveMusic },
	"outdoor":      func(a *model.Amenities) bool { return a.OutdoorSeating },
	"patio":        func(a *model.Amenities) bool { return a.OutdoorSeating },
	"dog-friendly": func(a *model.Amenities) bool { return a.AllowsDogs },
	"dogs":         func(a *model.Amenities) bool { return a.AllowsDogs },
	"pet-friendly": func(a *model.Amenities) bool { return a.AllowsDogs },
	"reservable":   func(a *model.Amenities) bool { return a.Reservable },
	"reservation":  func(a *model.Amenities) bool { return a.Reservable },
	"takeout":      func(a *model.Amenities) bool { return a.Takeout },
	"delivery":     func(a *model.Amenities) bool { return a.Delivery },
	"dine-in":      func(a *model.Amenities) bool { return a.DineIn },
}

// typeText is the text a requested type is matched against.
func typeText(v *model.Venue) string {
	return strings.ToLower(v.PrimaryType + " " + strings.Join(v.Types, " ") + " " + v.Name)
}

// MatchType tests one requested type against a venue, strongest rule first.
func MatchType(kb *knowledge.KnowledgeBase, target string, v *model.Venue) Match {
	return matchText(kb, target, v, typeText(v))
}

func matchText(kb *knowledge.KnowledgeBase, target string, v *model.Venue, text string) Match {
	t := strings.ToLower(strings.TrimSpace(target))
	if t == "" {
		return Match{}
	}

	if strings.Contains(text, t) {
		return Match{Score: directScore, Target: target, Term: t, Kind: DirectMatch}
	}

	if root, ok := cuisineRoot(t); ok && strings.Contains(text, root) {
		return Match{Score: cuisineRootScore, Target: target, Term: root, Kind: CuisineRootMatch}
	}
	if term, ok := nameForm(t, strings.ToLower(v.Name)); ok {
		return Match{Score: cuisineRootScore, Target: target, Term: term, Kind: CuisineRootMatch}
	}

	if flag, ok := amenityFlags[t]; ok && flag(&v.Amenities) {
		return Match{Score: amenityScore, Target: target, Term: t, Kind: AmenityMatch}
	}

	if kb != nil {
		for _, rel := range kb.RelatedTerms(t) {
			if rel != "" && strings.Contains(text, strings.ToLower(rel)) {
				return Match{Score: relatedScore, Target: target, Term: rel, Kind: RelatedMatch}
			}
		}
	}
	return Match{}
}

// MatchAny returns the best match among targets.
func MatchAny(kb *knowledge.KnowledgeBase, targets []string, v *model.Venue) Match {
	text := typeText(v)
	best := Match{}
	for _, t := range targets {
		if m := matchText(kb, t, v, text); m.Score > best.Score {
			best = m
		}
	}
	return best
}

// cuisineRoot truncates demonyms: japanese -> japan, italian -> itali, turkish -> turk.
func cuisineRoot(t string) (string, bool) {
	var root string
	switch {
	case strings.HasSuffix(t, "ese"):
		root = t[:len(t)-3]
	case strings.HasSuffix(t, "ian"):
		root = t[:len(t)-2]
	case strings.HasSuffix(t, "ish"):
		root = t[:len(t)-3]
	default:
		return "", false
	}
	return root, len(root) >= 4
}

func nameForm(t, name string) (string, bool) {
	switch {
	case strings.HasPrefix(t, "ital") && strings.Contains(name, "ital"):
		return "ital", true
	case strings.HasPrefix(t, "french"):
		for _, f := range []string{"french", "france", "paris"} {
			if strings.Contains(name, f) {
				return f, true
			}
		}
	case strings.HasPrefix(t, "japan"):
		for _, f := range []string{"japan", "tokyo"} {
			if strings.Contains(name, f) {
				return f, true
			}
		}
	}
	return "", false
}

// VenueCuisine returns the first cuisine found in the primary type, then in the tags.
func VenueCuisine(v *model.Venue) string {
	primary := strings.ToLower(v.PrimaryType)
	for _, c := range Cuisines {
		if strings.Contains(primary, c) {
			return c
		}
	}
	tags := strings.ToLower(strings.Join(v.Types, " "))
	for _, c := range Cuisines {
		if strings.Contains(tags, c) {
			return c
		}
	}
	return ""
}

// IsCuisineRequest reports whether any target names a cuisine.
func IsCuisineRequest(targets []string) bool {
	for _, t := range targets {
		t = strings.ToLower(t)
		for _, c := range Cuisines {
			if strings.Contains(t, c) {
				return true
			}
		}
	}
	return false
}

// IsWrongCuisine flags a meal venue that matches none of the requested cuisines.
func IsWrongCuisine(kb *knowledge.KnowledgeBase, targets []string, v *model.Venue) bool {
	if !IsCuisineRequest(targets) || VenueStage(v) != model.StageMeal {
		return false
	}
	return !MatchAny(kb, targets, v).Matched()
}
