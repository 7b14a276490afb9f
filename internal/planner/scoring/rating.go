package scoring

import (
	"datenight/internal/planner/knowledge"
)

// BayesianRating shrinks a raw rating toward the catalog mean:
// (rating*n + C*m) / (n + m) with C and m taken from the knowledge base.
func BayesianRating(kb *knowledge.KnowledgeBase, rating float64, reviews int) float64 {
	prior := kb.Rating()
	if reviews < 0 {
		reviews = 0
	}
	n, m := float64(reviews), float64(prior.MinReviews)
	if n+m == 0 {
		return prior.Mean
	}
	return (rating*n + prior.Mean*m) / (n + m)
}

// IsHiddenGem reports a rating at or above the catalog mean with a review count between
// the learned minimum and median.
func IsHiddenGem(kb *knowledge.KnowledgeBase, rating float64, reviews int) bool {
	prior := kb.Rating()
	return rating >= prior.Mean && reviews >= prior.MinReviews && reviews <= prior.MedianReviews
}

// RatingConfidence grows from 0 to 0.5 up to the minimum review count, then to 1 at the
// median.
func RatingConfidence(kb *knowledge.KnowledgeBase, reviews int) float64 {
	prior := kb.Rating()
	switch {
	case reviews >= prior.MedianReviews:
		return 1.0
	case reviews < prior.MinReviews:
		return 0.5 * float64(reviews) / float64(prior.MinReviews)
	case prior.MedianReviews == prior.MinReviews:
		return 1.0
	default:
		return 0.5 + 0.5*float64(reviews-prior.MinReviews)/float64(prior.MedianReviews-prior.MinReviews)
	}
}
