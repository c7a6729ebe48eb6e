package passages

import "golang.org/x/text/language"

// NormalizeLanguage maps a requested language to one of the supported
// codes. "en-US" resolves to "en", "iw" to "he". Unrecognized requests
// fall back to the first supported code.
func NormalizeLanguage(requested string, supported []string) string {
	if len(supported) == 0 {
		return requested
	}

	tags := make([]language.Tag, 0, len(supported))
	codes := make([]string, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, code)
	}
	if len(tags) == 0 {
		return supported[0]
	}

	want, err := language.Parse(requested)
	if err != nil {
		return codes[0]
	}

	matcher := language.NewMatcher(tags)
	_, index, _ := matcher.Match(want)
	return codes[index]
}
