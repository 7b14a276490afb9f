package utils

import "errors"

var (
	ErrInvalidConstraints = errors.New("invalid constraints")
	ErrUnknownAlgorithm   = errors.New("unknown algorithm")
	ErrVenueNotFound      = errors.New("venue not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrDatabaseError      = errors.New("database error")
	ErrPlanningTimeout    = errors.New("planning timed out")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
)
