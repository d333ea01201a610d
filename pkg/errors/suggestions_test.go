package errors_test

import (
	"strings"
	"testing"

	"github.com/joe/dirlist/pkg/errors"
)

func TestSuggestionGenerator_Generate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		category errors.ErrorCategory
		path     string
		want     string
	}{
		{category: errors.CategoryConnection, path: "", want: "SSH agent"},
		{category: errors.CategoryDelete, path: "/tmp/x", want: "dirlist -l /tmp/x"},
		{category: errors.CategoryNotADirectory, path: "/etc/hosts", want: "is a file"},
		{category: errors.CategoryNotADirectory, path: "", want: "Only directories"},
		{category: errors.CategoryPath, path: "/nope", want: "/nope"},
		{category: errors.CategoryPath, path: "", want: "parent directories"},
		{category: errors.CategoryPermission, path: "/root", want: "ls -ld /root"},
		{category: errors.CategoryPermission, path: "", want: "affected path"},
		{category: errors.CategoryUnknown, path: "/x", want: "accessible: /x"},
		{category: errors.ErrorCategory("other"), path: "", want: "--log-level debug"},
	}

	gen := errors.NewSuggestionGenerator()

	for _, testCase := range testCases {
		t.Run(string(testCase.category)+"/"+testCase.path, func(t *testing.T) {
			t.Parallel()

			suggestions := gen.Generate(testCase.category, testCase.path)
			if len(suggestions) == 0 {
				t.Fatalf("expected suggestions for %q, got none", testCase.category)
			}

			if !strings.Contains(strings.Join(suggestions, "\n"), testCase.want) {
				t.Errorf("expected a suggestion containing %q, got %v", testCase.want, suggestions)
			}
		})
	}
}
