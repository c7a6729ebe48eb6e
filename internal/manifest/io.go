package manifest

import (
	"fmt"
	"os"

	"encoding/json/jsontext"
	"encoding/json/v2"

	domainerrors "github.com/lecternapp/lectern/internal/errors"
)

// Load reads and normalizes a manifest file. Both wire shapes are
// accepted per collection.
func Load(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domainerrors.NotFoundf("manifest %q does not exist", path)
		}
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	m := New()
	if err := json.UnmarshalRead(f, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}

// Write serializes the manifest to path. The write goes to a temp file
// in the same directory and is renamed into place on success, so a
// crash mid-write never leaves a truncated manifest behind. Output is
// deterministic: the same mapping always produces the same bytes.
func (m Manifest) Write(path string) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create manifest file: %w", err)
	}
	defer os.Remove(tmpPath) // Clean up on failure

	if err := json.MarshalWrite(f, m, jsontext.WithIndent("  ")); err != nil {
		f.Close()
		return fmt.Errorf("encode manifest: %w", err)
	}
	if _, err := f.Write([]byte{'\n'}); err != nil {
		f.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close manifest file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename manifest: %w", err)
	}
	return nil
}
