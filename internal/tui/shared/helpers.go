package shared

import (
	"strings"
)

// TruncatePath shortens path to at most maxWidth characters by replacing its
// start with "...". The end of a path is the part that tells directories
// apart.
func TruncatePath(path string, maxWidth int) string {
	if maxWidth <= EllipsisLength || len(path) <= maxWidth {
		return path
	}

	return strings.Repeat(".", EllipsisLength) + path[len(path)-(maxWidth-EllipsisLength):]
}

// VisibleWindow returns the [start, end) range of a scrolled list of total
// rows that keeps cursor visible in height rows, starting from offset.
func VisibleWindow(cursor, offset, height, total int) (start, end int) {
	if height <= 0 {
		height = DefaultListHeight
	}

	start = offset
	if cursor < start {
		start = cursor
	}

	if cursor >= start+height {
		start = cursor - height + 1
	}

	start = max(min(start, total-height), 0)
	end = min(start+height, total)

	return start, end
}
