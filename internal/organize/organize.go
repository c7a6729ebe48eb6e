// Package organize sorts loose recordings into their collection
// directories. A freshly recorded "BavaBatra46.mp3" dropped at the
// content root moves to "BavaBatra/BavaBatra46.mp3", where the scanner
// will find it on the next build.
//
// The pass is additive and restartable: files whose target already
// exists are skipped, a failed move never stops the run, and running
// twice is a no-op.
package organize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lecternapp/lectern/internal/catalog"
	domainerrors "github.com/lecternapp/lectern/internal/errors"
)

const (
	defaultWorkers = 4
	maxWorkers     = 8
)

// Status classifies the outcome for one file.
type Status string

const (
	StatusMoved   Status = "moved"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// FileResult records what happened to one loose file.
type FileResult struct {
	Name       string
	Collection string
	Target     string
	Status     Status
	Reason     string // set for skips and failures
}

// Summary aggregates one organize run. Results keep the directory
// listing order of the inputs.
type Summary struct {
	Total       int
	Moved       int
	Skipped     int
	Failed      int
	DryRun      bool
	Results     []FileResult
	StartedAt   time.Time
	CompletedAt time.Time
}

// Organizer moves loose recordings into place.
type Organizer struct {
	logger *slog.Logger
}

// New creates an organizer.
func New(logger *slog.Logger) *Organizer {
	return &Organizer{
		logger: logger,
	}
}

// Options configures a run.
type Options struct {
	// Extensions lists the audio extensions picked up as loose
	// recordings. Defaults to .mp3 and .m4a.
	Extensions []string

	// Workers bounds the number of concurrent moves. Defaults to 4,
	// capped at 8.
	Workers int

	// DryRun reports what would move without touching the tree.
	DryRun bool
}

// Run organizes the loose files directly under dir. Subdirectories are
// left alone; they are collections already. A missing dir is fatal,
// anything going wrong with an individual file is recorded in the
// summary and the run continues.
func (o *Organizer) Run(ctx context.Context, dir string, opts Options) (*Summary, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, domainerrors.MissingRoot(dir)
	}

	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".mp3", ".m4a"}
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Workers > maxWorkers {
		opts.Workers = maxWorkers
	}

	names, err := looseFiles(dir, opts.Extensions)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeMissingRoot,
			fmt.Sprintf("directory %q not readable", dir))
	}

	summary := &Summary{
		Total:     len(names),
		DryRun:    opts.DryRun,
		StartedAt: time.Now(),
	}

	o.logger.Info("organizing loose recordings",
		"dir", dir,
		"files", len(names),
		"workers", opts.Workers,
		"dry_run", opts.DryRun,
	)

	results, err := o.moveAll(ctx, dir, names, opts)
	if err != nil {
		return nil, err
	}

	for _, fr := range results {
		summary.Results = append(summary.Results, fr)
		switch fr.Status {
		case StatusMoved:
			summary.Moved++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
			o.logger.Error("move failed", "file", fr.Name, "reason", fr.Reason)
		}
	}

	summary.CompletedAt = time.Now()
	o.logger.Info("organize complete",
		"duration", summary.CompletedAt.Sub(summary.StartedAt),
		"moved", summary.Moved,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)

	return summary, nil
}

// looseFiles returns the names of organizable files directly under dir,
// in directory listing order.
func looseFiles(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || catalog.IsHidden(entry.Name()) {
			continue
		}
		for _, ext := range exts {
			if catalog.IsAudio(entry.Name(), ext) {
				names = append(names, entry.Name())
				break
			}
		}
	}
	return names, nil
}

// moveAll fans the files out over a bounded worker pool and returns the
// outcomes indexed like names. Targets never collide, every file keeps
// its own name, so the moves need no coordination beyond MkdirAll.
func (o *Organizer) moveAll(ctx context.Context, dir string, names []string, opts Options) ([]FileResult, error) {
	type job struct {
		name  string
		index int
	}
	type result struct {
		FileResult
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
					results <- result{FileResult{Name: j.name, Status: StatusFailed, Reason: ctx.Err().Error()}, j.index}
					continue
				default:
				}

				results <- result{o.moveOne(dir, j.name, opts.DryRun), j.index}
			}
		}()
	}

	for i, name := range names {
		jobs <- job{name: name, index: i}
	}
	close(jobs)

	moved := make([]FileResult, len(names))
	for range len(names) {
		select {
		case r := <-results:
			moved[r.index] = r.FileResult
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return moved, nil
}

// moveOne relocates a single file into its collection directory.
func (o *Organizer) moveOne(dir, name string, dryRun bool) FileResult {
	fr := FileResult{Name: name}

	fr.Collection = catalog.BaseName(name)
	if fr.Collection == "" {
		fr.Status = StatusSkipped
		fr.Reason = "no collection name in file name"
		return fr
	}
	fr.Target = filepath.Join(dir, fr.Collection, name)

	if _, err := os.Stat(fr.Target); err == nil {
		fr.Status = StatusSkipped
		fr.Reason = "already exists"
		return fr
	}

	src := filepath.Join(dir, name)
	info, err := os.Stat(src)
	if err != nil {
		fr.Status = StatusFailed
		fr.Reason = err.Error()
		return fr
	}
	if info.Size() == 0 {
		fr.Status = StatusSkipped
		fr.Reason = "empty file"
		return fr
	}

	if dryRun {
		fr.Status = StatusMoved
		return fr
	}

	if err := os.MkdirAll(filepath.Dir(fr.Target), 0755); err != nil {
		fr.Status = StatusFailed
		fr.Reason = err.Error()
		return fr
	}
	if err := moveFile(src, fr.Target); err != nil {
		fr.Status = StatusFailed
		fr.Reason = err.Error()
		return fr
	}

	o.logger.Debug("moved recording", "file", name, "target", fr.Target)
	fr.Status = StatusMoved
	return fr
}
