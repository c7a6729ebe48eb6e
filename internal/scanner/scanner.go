// Package scanner discovers recorded lectures under a content root and
// assembles them into a manifest.
//
// The root's immediate subdirectories are the collections; the files
// inside each are matched against the collection's naming pattern and
// the surviving page identifiers are de-duplicated and sorted. The
// result is deterministic: the same tree always yields byte-identical
// manifest output, however the per-collection work was interleaved.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/lecternapp/lectern/internal/catalog"
	domainerrors "github.com/lecternapp/lectern/internal/errors"
	"github.com/lecternapp/lectern/internal/manifest"
)

// Scanner builds manifests from a content tree.
type Scanner struct {
	logger *slog.Logger
}

// New creates a scanner.
func New(logger *slog.Logger) *Scanner {
	return &Scanner{
		logger: logger,
	}
}

// Options configures a scan.
type Options struct {
	// Extension is the audio extension recordings must carry.
	// Defaults to catalog.DefaultExtension.
	Extension string

	// Workers bounds the number of collections scanned concurrently.
	// Defaults to runtime.NumCPU().
	Workers int
}

// Scan reads the content tree under root and returns the resulting
// manifest plus diagnostics. A missing or unreadable root is fatal;
// everything below that is recovered per collection: an unreadable
// directory or one with no usable recordings is reported and skipped,
// and the scan carries on.
func (s *Scanner) Scan(ctx context.Context, root string, opts Options) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, domainerrors.MissingRoot(root)
	}

	if opts.Extension == "" {
		opts.Extension = catalog.DefaultExtension
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	result := &Result{
		Manifest:  manifest.New(),
		StartedAt: time.Now(),
	}

	s.logger.Info("starting scan", "root", root, "workers", opts.Workers)

	names, err := collections(root)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeMissingRoot,
			fmt.Sprintf("content root %q not readable", root))
	}

	scanned, err := s.scanAll(ctx, root, names, opts)
	if err != nil {
		return nil, err
	}

	// Aggregation happens in the stable directory order, so worker
	// interleaving never shows up in the output.
	for i, name := range names {
		cr := scanned[i]
		switch {
		case cr.err != nil:
			s.logger.Error("collection not readable", "collection", name, "error", cr.err)
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Level:      LevelError,
				Collection: name,
				Message:    fmt.Sprintf("directory not readable: %v", cr.err),
			})
		case len(cr.pages) == 0:
			s.logger.Warn("collection has no usable recordings", "collection", name)
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Level:      LevelWarning,
				Collection: name,
				Message:    "no recordings match the naming scheme; collection excluded",
			})
			result.Skipped += cr.skipped
		default:
			result.Manifest.Set(name, cr.pages)
			result.Matched += len(cr.pages)
			result.Skipped += cr.skipped
		}
	}

	result.CompletedAt = time.Now()
	s.logger.Info("scan complete",
		"duration", result.CompletedAt.Sub(result.StartedAt),
		"collections", len(result.Manifest),
		"pages", result.Matched,
		"skipped", result.Skipped,
		"diagnostics", len(result.Diagnostics),
	)

	return result, nil
}

// collectionResult carries one collection's scan outcome back from the
// worker pool.
type collectionResult struct {
	pages   []string
	skipped int
	err     error
}

// scanAll fans the collection directories out over a bounded worker
// pool and returns the outcomes indexed like names.
func (s *Scanner) scanAll(ctx context.Context, root string, names []string, opts Options) ([]collectionResult, error) {
	type job struct {
		name  string
		index int
	}
	type result struct {
		collectionResult
		index int
	}

	jobs := make(chan job, len(names))
	results := make(chan result, len(names))

	workers := min(opts.Workers, max(len(names), 1))
	for range workers {
		go func() {
			for j := range jobs {
				select {
				case <-ctx.Done():
					results <- result{collectionResult{err: ctx.Err()}, j.index}
					continue
				default:
				}

				cr := s.scanCollection(filepath.Join(root, j.name), j.name, opts.Extension)
				results <- result{cr, j.index}
			}
		}()
	}

	for i, name := range names {
		jobs <- job{name: name, index: i}
	}
	close(jobs)

	scanned := make([]collectionResult, len(names))
	for range len(names) {
		select {
		case r := <-results:
			if domainerrors.Is(r.err, context.Canceled) || domainerrors.Is(r.err, context.DeadlineExceeded) {
				return nil, r.err
			}
			scanned[r.index] = r.collectionResult
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return scanned, nil
}

// scanCollection reads one collection directory and extracts its page
// identifiers. De-duplication runs before the sort so the first
// spelling in directory order wins when two names carry the same
// number.
func (s *Scanner) scanCollection(dir, name, ext string) collectionResult {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return collectionResult{err: err}
	}

	pattern := catalog.NewPattern(name, ext)

	var pages []string
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() || catalog.IsHidden(entry.Name()) {
			continue
		}
		page, ok := pattern.Match(entry.Name())
		if !ok {
			s.logger.Debug("file does not match naming scheme", "collection", name, "file", entry.Name())
			skipped++
			continue
		}
		pages = append(pages, page)
	}

	pages = catalog.DedupePages(pages)
	catalog.SortPages(pages)

	return collectionResult{pages: pages, skipped: skipped}
}
