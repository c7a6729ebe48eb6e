// Package reference loads the canonical collection list: the set of
// collection names a content tree is allowed to contain, in teaching
// order. Strict validation treats any directory outside this list as
// suspect.
//
// The file is a JSON array. Entries are either bare names,
//
//	["Berakhot", "Shabbat"]
//
// or records with display metadata,
//
//	[{"name": "Berakhot", "title": "Tractate Berakhot", "order": 1}]
//
// and the two spellings can be mixed. A list that cannot be read,
// parsed, or validated is fatal to the caller; there is no partial
// reference.
package reference

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"encoding/json/jsontext"
	"encoding/json/v2"

	domainerrors "github.com/lecternapp/lectern/internal/errors"
	"github.com/lecternapp/lectern/internal/validation"
)

// Record is one canonical collection.
type Record struct {
	Name  string `json:"name" validate:"required"`
	Title string `json:"title,omitempty" validate:"max=256"`
	Order int    `json:"order,omitempty" validate:"gte=0"`
}

// UnmarshalJSONFrom accepts both entry spellings.
func (r *Record) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	switch dec.PeekKind() {
	case '"':
		var name string
		if err := json.UnmarshalDecode(dec, &name); err != nil {
			return err
		}
		*r = Record{Name: name}
		return nil
	case '{':
		type plain Record
		var p plain
		if err := json.UnmarshalDecode(dec, &p); err != nil {
			return err
		}
		*r = Record(p)
		return nil
	default:
		return fmt.Errorf("reference entry must be a string or object, got %v", dec.PeekKind())
	}
}

// List is a loaded reference list. Records keep their file order;
// byName provides the membership checks validation leans on.
type List struct {
	records []Record
	byName  map[string]int
}

// Load reads and validates a reference list. Every failure mode, the
// file missing, the JSON malformed, a record without a name, two
// records sharing one, comes back as ErrBadReference so callers can
// abort the run without guessing.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domainerrors.BadReference(path, err)
	}
	defer f.Close()

	var records []Record
	if err := json.UnmarshalRead(f, &records); err != nil {
		return nil, domainerrors.BadReference(path, err)
	}

	l, err := NewList(records...)
	if err != nil {
		return nil, domainerrors.BadReference(path, err)
	}
	return l, nil
}

// NewList builds a list from in-memory records, applying the same
// rules as Load. Records without an explicit order get their position,
// counted from one.
func NewList(records ...Record) (*List, error) {
	rs := make([]Record, len(records))
	copy(rs, records)

	v := validation.New()
	byName := make(map[string]int, len(rs))
	for i := range rs {
		if err := v.Validate(rs[i]); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, dup := byName[rs[i].Name]; dup {
			return nil, fmt.Errorf("duplicate collection %q", rs[i].Name)
		}
		if rs[i].Order == 0 {
			rs[i].Order = i + 1
		}
		byName[rs[i].Name] = i
	}

	return &List{records: rs, byName: byName}, nil
}

// Has reports whether name is canonical. The check is exact; casing
// matters here, same as in the strict file pattern.
func (l *List) Has(name string) bool {
	_, ok := l.byName[name]
	return ok
}

// Lookup returns the record for a canonical name.
func (l *List) Lookup(name string) (Record, bool) {
	i, ok := l.byName[name]
	if !ok {
		return Record{}, false
	}
	return l.records[i], true
}

// Names returns collection names in file order.
func (l *List) Names() []string {
	names := make([]string, len(l.records))
	for i, r := range l.records {
		names[i] = r.Name
	}
	return names
}

// Ordered returns the records sorted by their teaching order.
func (l *List) Ordered() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	slices.SortStableFunc(out, func(a, b Record) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Len returns the number of canonical collections.
func (l *List) Len() int {
	return len(l.records)
}
