package errors_test

import (
	"fmt"
	"testing"

	"github.com/joe/dirlist/pkg/errors"
)

func TestActionableError_Accessors(t *testing.T) {
	t.Parallel()

	suggestions := []string{"Check permissions", "Run as another user"}
	err := errors.NewActionableError("permission denied", errors.CategoryPermission, suggestions, "/srv/data")

	if err.Error() != "permission denied" || err.OriginalError() != "permission denied" {
		t.Errorf("unexpected message %q / %q", err.Error(), err.OriginalError())
	}

	if err.Category() != errors.CategoryPermission {
		t.Errorf("expected category %q, got %q", errors.CategoryPermission, err.Category())
	}

	if err.AffectedPath() != "/srv/data" {
		t.Errorf("expected path %q, got %q", "/srv/data", err.AffectedPath())
	}

	if len(err.Suggestions()) != 2 {
		t.Errorf("expected 2 suggestions, got %v", err.Suggestions())
	}
}

func TestFormatSuggestions(t *testing.T) {
	t.Parallel()

	multi := errors.NewActionableError("x", errors.CategoryUnknown, []string{"one", "two"}, "")
	wrapped := fmt.Errorf("listing failed: %w", multi)

	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "plain error", err: fmt.Errorf("plain"), expected: ""}, //nolint:err113,perfsprint // Test input
		{
			name:     "no suggestions",
			err:      errors.NewActionableError("x", errors.CategoryUnknown, nil, ""),
			expected: "",
		},
		{name: "multiple", err: multi, expected: "  • one\n  • two"},
		{name: "wrapped", err: wrapped, expected: "  • one\n  • two"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := errors.FormatSuggestions(testCase.err)
			if got != testCase.expected {
				t.Errorf("expected:\n%q\ngot:\n%q", testCase.expected, got)
			}
		})
	}
}

func TestErrorCategory_CategoriesAreDistinct(t *testing.T) {
	t.Parallel()

	categories := []errors.ErrorCategory{
		errors.CategoryConnection,
		errors.CategoryDelete,
		errors.CategoryNotADirectory,
		errors.CategoryPath,
		errors.CategoryPermission,
		errors.CategoryUnknown,
	}

	seen := make(map[errors.ErrorCategory]bool)
	for _, cat := range categories {
		if cat == "" || seen[cat] {
			t.Errorf("empty or duplicate category: %q", cat)
		}

		seen[cat] = true
	}
}
