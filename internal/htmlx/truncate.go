package htmlx

const (
	// TextMarker is appended to truncated plain-text output.
	TextMarker = "\n...[truncated]"
	// HTMLMarker is appended to truncated HTML output.
	HTMLMarker = "\n<!-- truncated -->"
)

// Truncate cuts s to max characters and appends marker, only when s is
// actually longer than max. A non-positive max disables truncation.
func Truncate(s string, max int, marker string) string {
	if max <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max]) + marker
}
