package validate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lecternapp/lectern/internal/catalog"
	domainerrors "github.com/lecternapp/lectern/internal/errors"
	"github.com/lecternapp/lectern/internal/id"
	"github.com/lecternapp/lectern/internal/reference"
)

// Validator runs the strict structural pass over a content tree.
type Validator struct {
	logger *slog.Logger
}

// New creates a Validator. A nil logger discards output.
func New(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Validator{logger: logger}
}

// Structure checks every collection directory under root against the
// canonical reference list and the strict naming pattern. Unlike the
// scanner it does not tolerate empty collections: a directory with no
// audio files is an error, not a skip.
//
// The only fatal condition is an unreadable root. Everything found
// below that level lands in the report and the pass runs to the end.
func (v *Validator) Structure(root string, list *reference.List, ext string) (*Report, error) {
	started := time.Now()
	report := &Report{RunID: id.NewRunID(), Root: root}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, domainerrors.MissingRoot(root)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeMissingRoot, fmt.Sprintf("cannot read content root %q", root))
	}

	for _, entry := range entries {
		if !entry.IsDir() || catalog.IsHidden(entry.Name()) {
			continue
		}
		report.Collections++
		v.checkCollection(report, root, entry.Name(), list, ext)
	}

	v.logger.Info("structure validation finished",
		"run_id", report.RunID,
		"collections", report.Collections,
		"warnings", report.Warnings(),
		"errors", report.Errors(),
		"duration", time.Since(started))
	return report, nil
}

// checkCollection appends the findings for one collection directory.
// An unreadable directory is a hard error here, but the pass keeps
// going so the report still covers the rest of the tree.
func (v *Validator) checkCollection(report *Report, root, name string, list *reference.List, ext string) {
	if !list.Has(name) {
		report.warn(name, "not in the canonical reference list")
	}

	entries, err := os.ReadDir(filepath.Join(root, name))
	if err != nil {
		report.fail(name, fmt.Sprintf("directory not readable: %v", err))
		return
	}

	strict := catalog.NewStrictPattern(name, ext)
	audio := 0
	var pages []string
	for _, entry := range entries {
		if entry.IsDir() || catalog.IsHidden(entry.Name()) {
			continue
		}
		if catalog.IsAudio(entry.Name(), ext) {
			audio++
		}
		page, ok := strict.Match(entry.Name())
		if !ok {
			report.warn(name, fmt.Sprintf("%s does not match the %s<page>%s naming scheme", entry.Name(), name, strict.Extension()))
			continue
		}
		pages = append(pages, page)
	}

	if audio == 0 {
		report.fail(name, "contains no audio files")
		return
	}

	for _, gap := range catalog.FindGaps(catalog.Numbers(pages)) {
		report.warn(name, fmt.Sprintf("numbering gap: page %d is missing", gap))
	}
}
