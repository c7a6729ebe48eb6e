package validate

import (
	"os"
	"path/filepath"

	"github.com/lecternapp/lectern/internal/catalog"
	"github.com/lecternapp/lectern/internal/manifest"
)

// MissingPage identifies one manifest entry with no file behind it.
type MissingPage struct {
	Collection string `json:"collection"`
	Page       string `json:"page"`
	Path       string `json:"path"`
}

// PresenceResult is the outcome of a manifest-against-disk check.
type PresenceResult struct {
	AllPresent bool          `json:"all_present"`
	Checked    int           `json:"checked"`
	Missing    []MissingPage `json:"missing,omitempty"`
}

// CheckPresence verifies that every page the manifest lists exists as a
// regular file under root. It always walks the whole manifest, so the
// result names every missing file, not just the first. A stat failure
// of any kind counts the file as missing; this check never aborts.
func CheckPresence(m manifest.Manifest, root, ext string) *PresenceResult {
	res := &PresenceResult{AllPresent: true}
	for _, name := range m.Names() {
		for _, page := range m.Pages(name) {
			path := filepath.Join(root, name, catalog.FileName(name, page, ext))
			res.Checked++
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				res.AllPresent = false
				res.Missing = append(res.Missing, MissingPage{
					Collection: name,
					Page:       page,
					Path:       path,
				})
			}
		}
	}
	return res
}
