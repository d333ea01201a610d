package errors

import "fmt"

// SuggestionGenerator produces suggestions for a category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

type suggestionGenerator struct{}

// Generate returns suggestions for category, naming affectedPath when known.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryConnection:
		return g.connectionSuggestions(affectedPath)
	case CategoryDelete:
		return g.deleteSuggestions(affectedPath)
	case CategoryNotADirectory:
		return g.notADirectorySuggestions(affectedPath)
	case CategoryPath:
		return g.pathSuggestions(affectedPath)
	case CategoryPermission:
		return g.permissionSuggestions(affectedPath)
	default:
		return g.unknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) connectionSuggestions(_ string) []string {
	return []string{
		"Check that the host is reachable and the port is correct",
		"Make sure your SSH agent is running or a default key exists in ~/.ssh",
		"For S3, check the endpoint, region and credentials",
		"Try again with --log-level debug for connection details",
	}
}

func (g *suggestionGenerator) deleteSuggestions(path string) []string {
	suggestions := []string{
		"Remove the directory's contents first, or remove it recursively",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("List what remains with 'dirlist -l %s'", path))
	}

	return suggestions
}

func (g *suggestionGenerator) notADirectorySuggestions(path string) []string {
	if path == "" {
		return []string{"Only directories can be listed; pass the directory that contains the file"}
	}

	return []string{
		path + " is a file, not a directory",
		fmt.Sprintf("List its parent instead: 'dirlist %s'", parentOf(path)),
	}
}

func (g *suggestionGenerator) pathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the path exists and is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions, "Check if the path exists: "+path)
		suggestions = append(suggestions, "Ensure all parent directories exist for "+path)
	} else {
		suggestions = append(suggestions, "Ensure all parent directories exist")
	}

	return suggestions
}

func (g *suggestionGenerator) permissionSuggestions(path string) []string {
	suggestions := []string{
		"Listing a directory needs read and execute permission on it",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -ld %s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'ls -ld' on the affected path")
	}

	suggestions = append(suggestions, "Try running as a user with access to the directory")

	return suggestions
}

func (g *suggestionGenerator) unknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Run again with --log-level debug",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}

// parentOf returns the part of path before its last separator, or ".".
func parentOf(path string) string {
	for i := len(path) - 1; i > 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[:i]
		}
	}

	return "."
}
