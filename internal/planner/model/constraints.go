package model

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Constraints describe what a caller wants from a plan.
type Constraints struct {
	Vibes       []string  `json:"vibes"`
	Types       []string  `json:"types"`
	Budget      float64   `json:"budget" validate:"gt=0"`
	Stops       int       `json:"stops" validate:"gt=0,lte=10"`
	Location    string    `json:"location"`
	Indoor      *bool     `json:"indoor,omitempty"`
	HiddenGems  bool      `json:"hidden_gems"`
	Now         time.Time `json:"now"`
	RequireOpen bool      `json:"require_open"`
	Query       string    `json:"query"`
	Randomness  float64   `json:"randomness" validate:"gte=0,lte=1"`
	Exclude     []string  `json:"exclude,omitempty"`
}

// FieldError describes one rejected constraint.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// ConstraintError is returned by Validate when one or more fields are out of range.
type ConstraintError struct {
	Fields []FieldError
}

func (e *ConstraintError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid constraints"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid constraints: " + strings.Join(msgs, "; ")
}

// Validate rejects constraints a planner must never see.
func (c *Constraints) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate constraints: %w", err)
	}
	out := &ConstraintError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	name := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got %v", name, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", name, fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", name, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
	}
}
