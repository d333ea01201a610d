package listing

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/joe/dirlist/pkg/filesystem"
)

// Filter decides which entries a listing shows.
type Filter interface {
	// ShouldInclude reports whether entry is shown.
	ShouldInclude(entry filesystem.Entry) bool
}

// GlobFilter matches entries against a doublestar pattern, case-insensitively.
// A directory is tried both as "name" and as "name/", so a pattern ending in
// "/" selects directories only. The empty pattern matches everything and an
// invalid pattern matches nothing.
type GlobFilter struct {
	pattern string
	all     bool
	valid   bool
}

// NewGlobFilter creates a GlobFilter for pattern.
func NewGlobFilter(pattern string) *GlobFilter {
	lowered := strings.ToLower(pattern)

	return &GlobFilter{
		pattern: lowered,
		all:     pattern == "",
		valid:   doublestar.ValidatePattern(lowered),
	}
}

// ShouldInclude implements Filter.
func (f *GlobFilter) ShouldInclude(entry filesystem.Entry) bool {
	switch {
	case f.all:
		return true
	case !f.valid:
		return false
	}

	name := strings.ToLower(entry.Name)
	if f.match(name) {
		return true
	}

	return entry.IsDir && f.match(name+"/")
}

func (f *GlobFilter) match(name string) bool {
	matched, err := doublestar.Match(f.pattern, name)

	return err == nil && matched
}
