package scanner

import (
	"os"

	"github.com/lecternapp/lectern/internal/catalog"
)

// Collection discovery stops at the first level: each immediate
// subdirectory of the content root is a collection candidate and
// nothing below that is walked.

// collections lists the candidate collection directories under root,
// in the lexicographic order os.ReadDir guarantees.
func collections(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if catalog.IsHidden(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
