// Package errors turns low-level failures from listing a directory into
// errors that carry a category and suggestions a user can act on.
//
// Basic usage:
//
//	enricher := errors.NewEnricher()
//	if err != nil {
//	    enriched := enricher.Enrich(err, dir)
//	    fmt.Fprintln(os.Stderr, enriched)
//	    fmt.Fprintln(os.Stderr, errors.FormatSuggestions(enriched))
//	}
//
// When no path is given, the enricher extracts one from messages shaped like
// "open /path: reason".
package errors

import (
	"errors"
	"strings"
)

// Exported constants.
const (
	CategoryConnection    ErrorCategory = "connection"
	CategoryDelete        ErrorCategory = "delete"
	CategoryNotADirectory ErrorCategory = "not_a_directory"
	CategoryPath          ErrorCategory = "path"
	CategoryPermission    ErrorCategory = "permission"
	CategoryUnknown       ErrorCategory = "unknown"
)

// ActionableError is an error with suggestions for the user.
type ActionableError interface {
	error
	OriginalError() string
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// ErrorCategory is the kind of failure.
type ErrorCategory string

// NewActionableError creates a new ActionableError with the given details.
func NewActionableError(
	originalError string,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		originalError: originalError,
		category:      category,
		suggestions:   suggestions,
		affectedPath:  affectedPath,
	}
}

// FormatSuggestions renders the suggestions of an ActionableError as an
// indented bullet list. It returns "" for nil, plain errors and errors with
// no suggestions.
func FormatSuggestions(err error) string {
	var actionable ActionableError
	if err == nil || !errors.As(err, &actionable) {
		return ""
	}

	var builder strings.Builder

	for i, suggestion := range actionable.Suggestions() {
		if i > 0 {
			builder.WriteString("\n")
		}

		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

type actionableError struct {
	originalError string
	category      ErrorCategory
	suggestions   []string
	affectedPath  string
}

// AffectedPath returns the path the error is about, or "".
func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *actionableError) Category() ErrorCategory {
	return e.category
}

// Error implements the error interface.
func (e *actionableError) Error() string {
	return e.originalError
}

// OriginalError returns the original error message.
func (e *actionableError) OriginalError() string {
	return e.originalError
}

// Suggestions returns the suggestions, most useful first.
func (e *actionableError) Suggestions() []string {
	return e.suggestions
}
