package tagging

// Element is one snapshot entry captured from the page in document order
// (pre-order, elements only, rooted at body). Visibility and the
// excluded-selector match are computed at snapshot time; everything else
// is raw material for the label strategies.
type Element struct {
	Index      int               `json:"index"`
	TagName    string            `json:"tagName"`
	Attributes map[string]string `json:"attributes"`
	Classes    []string          `json:"classes"`
	DirectText string            `json:"directText"`
	Visible    bool              `json:"visible"`
	Excluded   bool              `json:"excluded"`
}

// Attr returns the trimmed attribute value, or "" when absent.
func (e Element) Attr(name string) string {
	return trim(e.Attributes[name])
}

// Record is one tagged element: a sequential decimal identifier and the
// resolved label text. Immutable once recorded.
type Record struct {
	ID   string
	Text string
}
