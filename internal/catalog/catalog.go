// Package catalog holds the naming rules for recorded lecture files.
//
// A recording belongs to a collection (one directory per collection) and
// covers one page. The file name carries both: the collection name, the
// page number, and the audio extension, nothing else. "Berakhot12.mp3"
// in the Berakhot directory is page 12. Everything here is pure string
// work so the scanner and the validators can share one definition of
// what counts as a well-formed recording.
package catalog

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultExtension is the audio extension recordings carry unless
// configured otherwise.
const DefaultExtension = ".mp3"

// Pattern matches recording file names for a single collection.
type Pattern struct {
	collection string
	ext        string
	re         *regexp.Regexp
}

// NewPattern compiles the lenient matcher for a collection: the whole
// file name must be the collection name, digits, and the extension,
// compared case-insensitively.
func NewPattern(collection, ext string) *Pattern {
	ext = normalizeExt(ext)
	return &Pattern{
		collection: collection,
		ext:        ext,
		re:         regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(collection) + `(\d+)` + regexp.QuoteMeta(ext) + `$`),
	}
}

// NewStrictPattern compiles the case-sensitive matcher the structure
// validator uses. The lenient pattern accepts "berakhot12.MP3" for
// Berakhot; the strict one does not. The asymmetry is long-standing
// and catalogs depend on the lenient side, so both are kept.
func NewStrictPattern(collection, ext string) *Pattern {
	ext = normalizeExt(ext)
	return &Pattern{
		collection: collection,
		ext:        ext,
		re:         regexp.MustCompile(`^` + regexp.QuoteMeta(collection) + `(\d+)` + regexp.QuoteMeta(ext) + `$`),
	}
}

// Collection returns the collection name the pattern was compiled for.
func (p *Pattern) Collection() string {
	return p.collection
}

// Extension returns the normalized audio extension, dot included.
func (p *Pattern) Extension() string {
	return p.ext
}

// Match extracts the page identifier from a file name. The identifier
// is returned exactly as it appears in the name, leading zeros included.
// A name that deviates in any way, extra characters, wrong extension,
// digits missing, yields no match. Match never errors and never touches
// the filesystem.
func (p *Pattern) Match(fileName string) (string, bool) {
	m := p.re.FindStringSubmatch(fileName)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParsePage is a convenience for one-off matches against the default
// extension. Callers with many files should compile a Pattern once.
func ParsePage(collection, fileName string) (string, bool) {
	return NewPattern(collection, DefaultExtension).Match(fileName)
}

// FileName builds the canonical recording name for a page, the inverse
// of Match: collection name, identifier, extension.
func FileName(collection, page, ext string) string {
	return collection + page + normalizeExt(ext)
}

// IsHidden reports whether a directory entry is invisible to
// cataloging. Dotfiles never become collections or pages, so editor
// droppings and .DS_Store stay out of manifests.
func IsHidden(name string) bool {
	return name != "." && strings.HasPrefix(name, ".")
}

// IsAudio reports whether a file name carries the given audio
// extension, compared case-insensitively.
func IsAudio(fileName, ext string) bool {
	return strings.EqualFold(filepath.Ext(fileName), normalizeExt(ext))
}

// BaseName guesses the collection a loose recording belongs to: the
// leading letters of the file name, extension dropped. "BavaBatra46.mp3"
// belongs under "BavaBatra". A name with no leading letters falls back
// to the name with trailing digits removed, which can leave nothing.
func BaseName(fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	i := 0
	for i < len(name) && isLetter(name[i]) {
		i++
	}
	if i > 0 {
		return name[:i]
	}
	return strings.TrimRight(name, "0123456789")
}

func isLetter(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

func normalizeExt(ext string) string {
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}
