package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service interface {
	// Resolve returns the company settings, falling back to system defaults
	// for missing or malformed values. It never fails.
	Resolve(ctx context.Context) Settings
	// Save validates and persists the company settings.
	Save(ctx context.Context, settings Settings) error
}

var ErrInvalidCompany = errors.New("invalid_company")

// FieldError describes one rejected settings field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects a settings save with per-field messages.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid settings: " + strings.Join(msgs, "; ")
}

// Validate checks the save-time constraints.
func (s Settings) Validate() error {
	var fields []FieldError
	if s.WindowDays < 1 {
		fields = append(fields, FieldError{Field: "window_days", Message: "activity window must be at least 1 day"})
	}
	if s.LowThreshold < 0 {
		fields = append(fields, FieldError{Field: "low_threshold", Message: "thresholds must be >= 0"})
	}
	if s.HighThreshold < 0 {
		fields = append(fields, FieldError{Field: "high_threshold", Message: "thresholds must be >= 0"})
	}
	if s.HighThreshold >= 0 && s.LowThreshold >= 0 && s.HighThreshold < s.LowThreshold {
		fields = append(fields, FieldError{Field: "high_threshold", Message: "high threshold must be >= low threshold"})
	}
	if s.WeightCredit < 0 || s.WeightOverdue < 0 || s.WeightActivity < 0 {
		fields = append(fields, FieldError{Field: "weights", Message: "weights must be >= 0"})
	}
	if s.TargetOrdersInWindow < 0 {
		fields = append(fields, FieldError{Field: "target_orders_in_window", Message: "target orders must be >= 0"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
