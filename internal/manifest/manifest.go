// Package manifest models the catalog file the web player loads at
// startup: a single JSON object mapping collection names to their
// available page identifiers.
//
// Two shapes exist in the wild for each collection entry. The original
// format is a bare ordered array of identifiers. Catalogs that have
// been through the uploader carry an object with the identifier list
// under "pages" and a page-to-URL map under "urls". Readers accept
// both; in memory everything is normalized to Collection.
package manifest

import (
	"fmt"
	"maps"
	"slices"

	"encoding/json/jsontext"
	"encoding/json/v2"

	"github.com/lecternapp/lectern/internal/catalog"
)

// Collection is the normalized per-collection record: the ordered page
// identifiers, plus remote URLs for pages that have been uploaded.
// URLs is nil for catalogs that never met the uploader.
type Collection struct {
	Pages []string
	URLs  map[string]string
}

// Manifest maps collection names to their records.
type Manifest map[string]*Collection

// New returns an empty manifest.
func New() Manifest {
	return make(Manifest)
}

// Set stores the page list for a collection, replacing any previous
// entry. The caller owns the ordering; the scanner hands the list over
// already sorted.
func (m Manifest) Set(name string, pages []string) {
	m[name] = &Collection{Pages: pages}
}

// Pages returns the identifier list for a collection, nil if absent.
func (m Manifest) Pages(name string) []string {
	c, ok := m[name]
	if !ok {
		return nil
	}
	return c.Pages
}

// URL returns the remote URL recorded for a page, if any.
func (m Manifest) URL(name, page string) (string, bool) {
	c, ok := m[name]
	if !ok || c.URLs == nil {
		return "", false
	}
	u, ok := c.URLs[page]
	return u, ok
}

// Names returns the collection names in sorted order.
func (m Manifest) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

// TotalPages counts identifiers across all collections.
func (m Manifest) TotalPages() int {
	n := 0
	for _, c := range m {
		n += len(c.Pages)
	}
	return n
}

// Equal reports structural equality: same collections, same page order,
// same URL maps.
func (m Manifest) Equal(other Manifest) bool {
	if len(m) != len(other) {
		return false
	}
	for name, c := range m {
		oc, ok := other[name]
		if !ok {
			return false
		}
		if !slices.Equal(c.Pages, oc.Pages) {
			return false
		}
		if !maps.Equal(c.URLs, oc.URLs) {
			return false
		}
	}
	return true
}

// SetURLs merges uploaded URLs into a collection entry. Page order is
// untouched; only the URL map grows. Pages the manifest does not know
// about are rejected so a stale upload run cannot invent content.
func (m Manifest) SetURLs(name string, urls map[string]string) error {
	c, ok := m[name]
	if !ok {
		return fmt.Errorf("collection %q not in manifest", name)
	}
	known := make(map[string]struct{}, len(c.Pages))
	for _, p := range c.Pages {
		known[p] = struct{}{}
	}
	for page := range urls {
		if _, ok := known[page]; !ok {
			return fmt.Errorf("collection %q has no page %q", name, page)
		}
	}
	if c.URLs == nil {
		c.URLs = make(map[string]string, len(urls))
	}
	maps.Copy(c.URLs, urls)
	return nil
}

// CarryURLs copies remote URLs from a previous manifest for pages that
// still exist. Rebuilding a catalog must not lose the uploader's work;
// URLs for pages that vanished from disk are dropped with the page.
func (m Manifest) CarryURLs(prev Manifest) {
	for name, c := range m {
		pc, ok := prev[name]
		if !ok || pc.URLs == nil {
			continue
		}
		for _, page := range c.Pages {
			if u, ok := pc.URLs[page]; ok {
				if c.URLs == nil {
					c.URLs = make(map[string]string)
				}
				c.URLs[page] = u
			}
		}
	}
}

// collectionJSON is the extended wire shape.
type collectionJSON struct {
	Pages []string          `json:"pages"`
	URLs  map[string]string `json:"urls,omitempty"`
}

// MarshalJSONTo writes the legacy array shape when no URLs exist and
// the extended object shape otherwise, so untouched catalogs round-trip
// byte-for-byte.
func (c *Collection) MarshalJSONTo(enc *jsontext.Encoder) error {
	if len(c.URLs) == 0 {
		return json.MarshalEncode(enc, c.Pages)
	}
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String("pages")); err != nil {
		return err
	}
	if err := json.MarshalEncode(enc, c.Pages); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String("urls")); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	// URL keys in page order, same as the identifier lists.
	pages := slices.Collect(maps.Keys(c.URLs))
	catalog.SortPages(pages)
	for _, page := range pages {
		if err := enc.WriteToken(jsontext.String(page)); err != nil {
			return err
		}
		if err := enc.WriteToken(jsontext.String(c.URLs[page])); err != nil {
			return err
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return err
	}
	return enc.WriteToken(jsontext.EndObject)
}

// UnmarshalJSONFrom accepts either wire shape.
func (c *Collection) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	switch dec.PeekKind() {
	case '[':
		var pages []string
		if err := json.UnmarshalDecode(dec, &pages); err != nil {
			return err
		}
		c.Pages = pages
		c.URLs = nil
		return nil
	case '{':
		var rec collectionJSON
		if err := json.UnmarshalDecode(dec, &rec); err != nil {
			return err
		}
		c.Pages = rec.Pages
		c.URLs = rec.URLs
		return nil
	default:
		return fmt.Errorf("collection entry must be an array or object, got %v", dec.PeekKind())
	}
}

// MarshalJSONTo writes collections in sorted name order. Identical
// manifests must serialize to identical bytes no matter how the map
// was populated.
func (m Manifest) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, name := range m.Names() {
		if err := enc.WriteToken(jsontext.String(name)); err != nil {
			return err
		}
		if err := json.MarshalEncode(enc, m[name]); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}
