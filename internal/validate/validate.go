// Package validate checks a catalog from two directions. The presence
// validator starts from a manifest and confirms every listed recording
// actually exists on disk. The structure validator starts from the
// content tree and holds it against the canonical reference list and
// the strict naming pattern.
//
// Neither mutates anything. The structure validator is the gatekeeper:
// its report decides whether a tree is fit to publish.
package validate

// Level classifies a report message.
type Level string

const (
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one finding, tied to the collection it came from.
type Message struct {
	Level      Level  `json:"level"`
	Collection string `json:"collection"`
	Text       string `json:"text"`
}

// Report is the outcome of a structure validation run. Messages keep
// a deterministic order: collections as the directory listing gave
// them, findings within a collection from coarse (unknown name) to
// fine (individual gaps).
type Report struct {
	RunID       string    `json:"run_id"`
	Root        string    `json:"root"`
	Collections int       `json:"collections"`
	Messages    []Message `json:"messages"`
}

// Passed reports whether the tree is acceptable: warnings allowed,
// errors not.
func (r *Report) Passed() bool {
	return r.Errors() == 0
}

// Errors counts error-level messages.
func (r *Report) Errors() int {
	n := 0
	for _, m := range r.Messages {
		if m.Level == LevelError {
			n++
		}
	}
	return n
}

// Warnings counts warning-level messages.
func (r *Report) Warnings() int {
	n := 0
	for _, m := range r.Messages {
		if m.Level == LevelWarning {
			n++
		}
	}
	return n
}

func (r *Report) warn(collection, text string) {
	r.Messages = append(r.Messages, Message{Level: LevelWarning, Collection: collection, Text: text})
}

func (r *Report) fail(collection, text string) {
	r.Messages = append(r.Messages, Message{Level: LevelError, Collection: collection, Text: text})
}
