package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	pkgerrors "github.com/joe/dirlist/pkg/errors"
)

// RenderOptions control how a Result is printed.
type RenderOptions struct {
	// Long adds a type column and a human-readable size column.
	Long bool

	// Summary appends a totals line.
	Summary bool

	// Header prints "dir:" above the entries, as when listing several paths.
	Header bool
}

// Render writes result to w. A failed listing is written as its error and
// suggestions.
func Render(w io.Writer, result *Result, opts RenderOptions) error {
	var b strings.Builder

	if opts.Header {
		fmt.Fprintf(&b, "%s:\n", result.Dir)
	}

	if result.Err != nil {
		fmt.Fprintf(&b, "dirlist: cannot list %s: %v\n", result.Dir, result.Err)

		if suggestions := pkgerrors.FormatSuggestions(result.Err); suggestions != "" {
			b.WriteString(suggestions)
			b.WriteString("\n")
		}

		_, err := io.WriteString(w, b.String())

		return err //nolint:wrapcheck // Writer errors pass through
	}

	for _, entry := range result.Entries {
		b.WriteString(FormatEntry(entry.Name, entry.IsDir, entry.Size, opts.Long))
		b.WriteString("\n")
	}

	if opts.Summary {
		b.WriteString(FormatSummary(result.Summarize(), result.Hidden))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())

	return err //nolint:wrapcheck // Writer errors pass through
}

// FormatEntry renders one entry. Directories get a trailing slash; the long
// form adds "d" or "-" and the size (blank for directories).
func FormatEntry(name string, isDir bool, size int64, long bool) string {
	display := name
	if isDir {
		display += "/"
	}

	if !long {
		return display
	}

	kind, sizeText := "-", humanize.IBytes(uint64(max(size, 0)))
	if isDir {
		kind, sizeText = "d", ""
	}

	return fmt.Sprintf("%s %9s  %s", kind, sizeText, display)
}

// FormatSummary renders totals, e.g. "3 entries (1 dir, 2 files), 12 B".
func FormatSummary(summary Summary, hidden int) string {
	total := summary.Dirs + summary.Files

	text := fmt.Sprintf("%s %s (%s %s, %s %s), %s",
		humanize.Comma(int64(total)), plural(total, "entry", "entries"),
		humanize.Comma(int64(summary.Dirs)), plural(summary.Dirs, "dir", "dirs"),
		humanize.Comma(int64(summary.Files)), plural(summary.Files, "file", "files"),
		humanize.IBytes(uint64(max(summary.Bytes, 0))))

	if hidden > 0 {
		text += fmt.Sprintf(", %s hidden by pattern", humanize.Comma(int64(hidden)))
	}

	return text
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}
