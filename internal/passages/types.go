package passages

import (
	"fmt"

	"encoding/json/jsontext"
	"encoding/json/v2"
)

// textResponse is the wire shape of the text service.
type textResponse struct {
	Ref  string      `json:"ref"`
	Book string      `json:"book"`
	Text segmentList `json:"text"`
	He   segmentList `json:"he"`
}

// segmentList absorbs the service's habit of returning a bare string
// for single-segment texts, a flat array, or arrays nested one level
// per section. Everything flattens to an ordered list of segments.
type segmentList []string

func (s *segmentList) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	*s = nil
	return s.decode(dec)
}

func (s *segmentList) decode(dec *jsontext.Decoder) error {
	switch dec.PeekKind() {
	case 'n':
		_, err := dec.ReadToken()
		return err
	case '"':
		var str string
		if err := json.UnmarshalDecode(dec, &str); err != nil {
			return err
		}
		*s = append(*s, str)
		return nil
	case '[':
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
		for dec.PeekKind() != ']' {
			if err := s.decode(dec); err != nil {
				return err
			}
		}
		_, err := dec.ReadToken()
		return err
	default:
		return fmt.Errorf("unexpected %v in text segments", dec.PeekKind())
	}
}
