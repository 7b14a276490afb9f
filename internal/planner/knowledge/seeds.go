package knowledge

// Seed tables bootstrap learning. Learned entries are merged on top of them.

var seedVibeKeywords = map[string][]string{
	"romantic":  {"romantic", "intimate", "candlelit", "date night"},
	"energetic": {"energetic", "lively", "party", "dance", "music"},
	"cozy":      {"cozy", "warm", "comfortable", "quiet", "relaxing"},
	"fancy":     {"fancy", "upscale", "elegant", "fine dining", "luxurious"},
	"casual":    {"casual", "relaxed", "laid-back", "chill", "easygoing"},
	"hipster":   {"hipster", "trendy", "artisan", "craft", "indie"},
	"historic":  {"historic", "heritage", "museum", "landmark", "history"},
	"outdoors":  {"outdoor", "patio", "nature", "park", "garden"},
	"artsy":     {"artsy", "gallery", "creative", "art", "artistic"},
	"family":    {"family", "kids", "children", "family-friendly"},
	"foodie":    {"gourmet", "culinary", "chef", "delicious", "authentic"},
	"scenic":    {"scenic", "view", "panorama", "beautiful", "picturesque"},
	"shopping":  {"shop", "store", "boutique", "market", "retail"},
	"wellness":  {"spa", "yoga", "massage", "meditation", "wellness"},
}

var seedTypeVibes = map[string][]string{
	"bar":         {"casual"},
	"pub":         {"casual"},
	"coffee_shop": {"cozy"},
	"cafe":        {"cozy"},
	"park":        {"outdoors"},
	"museum":      {"artsy", "historic"},
	"spa":         {"wellness"},
	"nightclub":   {"energetic"},
}

var seedRelatedTerms = map[string][]string{
	"coffee":   {"cafe", "café", "espresso"},
	"cafe":     {"coffee", "café"},
	"bar":      {"pub", "tavern", "lounge"},
	"pub":      {"bar", "tavern"},
	"italian":  {"trattoria", "pizzeria", "ristorante"},
	"pizza":    {"pizzeria"},
	"japanese": {"sushi", "ramen"},
	"sushi":    {"japanese"},
	"french":   {"bistro", "brasserie"},
}

// typeWordStoplist holds words too generic to relate venue types by.
var typeWordStoplist = []string{
	"restaurant", "food", "establishment", "point", "interest", "store", "shop",
	"place", "service", "the", "and", "bar", "cafe",
}

const (
	defaultRatingMean    = 3.5
	defaultRatingStd     = 0.8
	defaultMinReviews    = 10
	defaultMedianReviews = 50

	defaultTierLow  = 50.0
	defaultTierHigh = 150.0
	defaultTierMax  = 500.0
)
