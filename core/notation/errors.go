package notation

import (
	"fmt"
	"strings"

	"mandashop/internal/errors"
)

// ReasonCode classifies one problem inside a malformed notation
type ReasonCode string

const (
	ReasonMissingTier       ReasonCode = "missing_tier"
	ReasonDuplicateTier     ReasonCode = "duplicate_tier"
	ReasonUnrecognizedToken ReasonCode = "unrecognized_token"
	ReasonTooManyZeroed     ReasonCode = "too_many_zeroed"
	ReasonTierOutOfRange    ReasonCode = "tier_out_of_range"
)

// Reason is one problem found while validating
type Reason struct {
	Code    ReasonCode `json:"code"`
	Token   string     `json:"token,omitempty"`
	Message string     `json:"message"`
}

// ValidationError aggregates every problem found in one input.
type ValidationError struct {
	// Kind is errors.TypeEmptyInput or errors.TypeMalformedNotation
	Kind errors.Type

	// Reasons lists the problems in input order; empty for EmptyInput
	Reasons []Reason

	// Grammar is the grammar the input was validated against
	Grammar Grammar
}

// Error returns a one-line summary
func (e *ValidationError) Error() string {
	if e.Kind == errors.TypeEmptyInput {
		return "IV notation is required"
	}
	msgs := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		msgs[i] = r.Message
	}
	return "malformed IV notation: " + strings.Join(msgs, "; ")
}

// Message returns the full user-facing text: every problem plus the accepted formats.
func (e *ValidationError) Message() string {
	return e.Error() + "\n\n" + e.Grammar.Help()
}

// Has reports whether a reason with the given code was found
func (e *ValidationError) Has(code ReasonCode) bool {
	for _, r := range e.Reasons {
		if r.Code == code {
			return true
		}
	}
	return false
}

// Unwrap exposes the typed domain error so errors.IsType works on it.
func (e *ValidationError) Unwrap() error {
	return errors.New(e.Kind, e.Error())
}

func (e *ValidationError) add(code ReasonCode, token, format string, args ...interface{}) {
	e.Reasons = append(e.Reasons, Reason{
		Code:    code,
		Token:   token,
		Message: fmt.Sprintf(format, args...),
	})
}
