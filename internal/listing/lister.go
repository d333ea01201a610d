// Package listing lists one directory through the filesystem iterator and
// renders the result.
package listing

import (
	"fmt"

	"github.com/joe/dirlist/internal/logger"
	pkgerrors "github.com/joe/dirlist/pkg/errors"
	"github.com/joe/dirlist/pkg/filesystem"
)

// Result is one listed directory.
type Result struct {
	Dir     string
	Entries []filesystem.Entry

	// Hidden counts entries the filter rejected.
	Hidden int

	// Err is set when the directory could not be listed. Entries is empty
	// then.
	Err error
}

// Summary totals a Result.
type Summary struct {
	Dirs  int
	Files int
	Bytes int64
}

// Lister lists directories of one filesystem.
type Lister struct {
	fsys     filesystem.FileSystem
	filter   Filter
	enricher pkgerrors.Enricher
}

// NewLister creates a Lister. A nil filter shows every entry.
func NewLister(fsys filesystem.FileSystem, filter Filter) *Lister {
	if filter == nil {
		filter = NewGlobFilter("")
	}

	return &Lister{fsys: fsys, filter: filter, enricher: pkgerrors.NewEnricher()}
}

// List reads dir in the order the filesystem returns its entries.
func (l *Lister) List(dir string) *Result {
	result := &Result{Dir: dir}

	it := filesystem.Open(l.fsys, dir)
	defer func() { _ = it.Close() }()

	for end := filesystem.End(); !it.Equal(end); it.Advance() {
		entry := it.Entry()
		if !l.filter.ShouldInclude(entry) {
			result.Hidden++
			continue
		}

		result.Entries = append(result.Entries, entry)
	}

	result.Err = l.diagnose(dir, it.Err())

	logger.Debug("Listed %s: %d shown, %d hidden", dir, len(result.Entries), result.Hidden)

	return result
}

// Summarize counts directories and files and totals the file sizes.
func (r *Result) Summarize() Summary {
	var summary Summary

	for _, entry := range r.Entries {
		if entry.IsDir {
			summary.Dirs++
			continue
		}

		summary.Files++
		summary.Bytes += entry.Size
	}

	return summary
}

// diagnose turns an open failure into an actionable error. The directory is
// looked at again with Attrib, since a path that is not a directory gets a
// clearer message than the raw open error.
func (l *Lister) diagnose(dir string, openErr error) error {
	if openErr == nil {
		return nil
	}

	attr, err := l.fsys.Attrib(dir)

	switch {
	case err != nil:
		return l.enricher.Enrich(err, dir)
	case !attr.IsDir:
		return l.enricher.Enrich(fmt.Errorf("open %s: not a directory", dir), dir) //nolint:err113 // Message feeds the enricher
	default:
		return l.enricher.Enrich(openErr, dir)
	}
}
