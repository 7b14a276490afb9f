// Package metrics registers the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

var (
	// PlannerRequests counts plan requests.
	// Labels: algorithm, outcome (success, invalid, error, empty)
	PlannerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_requests_total",
			Help: "Total number of plan requests",
		},
		[]string{"algorithm", "outcome"},
	)

	PlannerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_duration_seconds",
			Help:    "Time spent building a plan",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"algorithm"},
	)

	PlanFitness = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_plan_fitness",
			Help:    "Fitness of returned plans",
			Buckets: prometheus.LinearBuckets(0, 100, 11),
		},
		[]string{"algorithm"},
	)

	PlanStops = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "planner_plan_stops",
			Help:    "Number of stops in returned plans",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	// PlanRatings counts user satisfaction scores. Labels: algorithm, rating (1-5)
	PlanRatings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_ratings_total",
			Help: "User ratings of served plans",
		},
		[]string{"algorithm", "rating"},
	)

	GAGenerations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ga_generations_total",
			Help:    "Generations run per genetic plan",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	KnowledgeCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "knowledge_cache_hits_total",
		Help: "Knowledge base lookups served from cache",
	})

	KnowledgeCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "knowledge_cache_misses_total",
		Help: "Knowledge base lookups that required a build",
	})

	KnowledgeBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "knowledge_builds_total",
		Help: "Knowledge bases learned from a catalog",
	})

	// CatalogLoadErrors counts failed catalog loads.
	// Labels: reason (database, breaker_open)
	CatalogLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_load_errors_total",
			Help: "Failed venue catalog loads",
		},
		[]string{"reason"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	HTTPRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
)
