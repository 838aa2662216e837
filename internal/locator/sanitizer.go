package locator

import (
	"strings"
	"unicode"
)

// GenResult is the raw payload of the selector-generation capability:
// either a single selector or an ordered candidate list.
type GenResult struct {
	Selector  string   `json:"selector"`
	Selectors []string `json:"selectors"`
}

func (r GenResult) candidates() []string {
	if len(r.Selectors) > 0 {
		return r.Selectors
	}

	if r.Selector != "" {
		return []string{r.Selector}
	}

	return nil
}

// Sanitize orders candidate selectors best-first. The winner is the first
// original candidate that is clean and valid; failing that, the first
// cleaned candidate that is valid and non-blank; failing that, the first
// original candidate unchanged. The remaining candidates keep their
// original relative order in cleaned form.
func Sanitize(result GenResult) []string {
	candidates := result.candidates()
	if len(candidates) == 0 {
		return nil
	}

	winner := -1

	for i, candidate := range candidates {
		if !hasBadRunes(candidate) && isValid(candidate) {
			winner = i
			break
		}
	}

	cleanedForm := false

	if winner < 0 {
		for i, candidate := range candidates {
			cleaned := stripBadRunes(candidate)
			if isValid(cleaned) && strings.TrimSpace(cleaned) != "" {
				winner = i
				cleanedForm = true
				break
			}
		}
	}

	if winner < 0 {
		winner = 0
	}

	out := make([]string, 0, len(candidates))

	if cleanedForm {
		out = append(out, stripBadRunes(candidates[winner]))
	} else {
		out = append(out, candidates[winner])
	}

	for i, candidate := range candidates {
		if i == winner {
			continue
		}

		out = append(out, stripBadRunes(candidate))
	}

	return out
}

// SanitizeOne returns only the preferred candidate.
func SanitizeOne(result GenResult) string {
	ordered := Sanitize(result)
	if len(ordered) == 0 {
		return ""
	}

	return ordered[0]
}

// isValid rejects selectors carrying an empty attribute assignment,
// which match nothing useful and usually indicate a generation artifact.
func isValid(selector string) bool {
	return !strings.Contains(selector, `=""`)
}

func hasBadRunes(selector string) bool {
	return strings.ContainsFunc(selector, isBadRune)
}

func stripBadRunes(selector string) string {
	return strings.Map(func(r rune) rune {
		if isBadRune(r) {
			return -1
		}

		return r
	}, selector)
}

// Bad runes are control characters, private-use-area characters (icon
// fonts leak these into class names), and the Unicode specials block and
// above.
func isBadRune(r rune) bool {
	switch {
	case unicode.IsControl(r):
		return true
	case r >= 0xE000 && r <= 0xF8FF:
		return true
	case r >= 0xFFF0:
		return true
	default:
		return false
	}
}
