package tagging

import (
	"strconv"
	"strings"
)

// AttrTagID is the attribute stamped on every labeled element.
const AttrTagID = "data-tag-id"

var namedLabelAttrs = []string{"placeholder", "data-placeholder", "aria-label", "name"}

var formControlTags = map[string]bool{
	"input":    true,
	"textarea": true,
	"select":   true,
}

// Tagger runs the label-resolution heuristic over a document snapshot and
// assigns sequential identifiers in document order.
type Tagger struct {
	conf *Config
}

func NewTagger(conf *Config) *Tagger {
	return &Tagger{conf: conf}
}

// strategies are tried in fixed priority order; the first non-empty
// label wins.
type labelStrategy func(t *Tagger, el Element) (string, bool)

var labelStrategies = []labelStrategy{
	(*Tagger).specialTagLabel,
	(*Tagger).namedAttrLabel,
	(*Tagger).formControlLabel,
	(*Tagger).iconClassLabel,
	(*Tagger).directTextLabel,
}

// Tag classifies every visible element and returns the ordered records
// plus an index->identifier map for stamping. Identifiers are decimal
// strings counting up from 1 among labeled elements only.
func (t *Tagger) Tag(elements []Element) ([]Record, map[int]string) {
	records := make([]Record, 0, len(elements))
	ids := make(map[int]string)
	counter := 0

	for _, el := range elements {
		if !el.Visible {
			continue
		}

		label, ok := t.resolveLabel(el)
		if !ok {
			continue
		}

		counter++
		id := strconv.Itoa(counter)

		records = append(records, Record{ID: id, Text: label})
		ids[el.Index] = id
	}

	return records, ids
}

func (t *Tagger) resolveLabel(el Element) (string, bool) {
	for _, strategy := range labelStrategies {
		if label, ok := strategy(t, el); ok {
			return label, true
		}
	}

	return "", false
}

func (t *Tagger) specialTagLabel(el Element) (string, bool) {
	for _, name := range t.conf.SpecialTagNames {
		if strings.EqualFold(el.TagName, name) {
			return strings.ToUpper(el.TagName), true
		}
	}

	return "", false
}

func (t *Tagger) namedAttrLabel(el Element) (string, bool) {
	for _, attr := range namedLabelAttrs {
		if value := el.Attr(attr); value != "" {
			return strings.ToUpper(el.TagName) + ":" + value, true
		}
	}

	return "", false
}

func (t *Tagger) formControlLabel(el Element) (string, bool) {
	if !formControlTags[strings.ToLower(el.TagName)] {
		return "", false
	}

	for _, attr := range []string{"title", "id"} {
		if value := el.Attr(attr); value != "" {
			return strings.ToUpper(el.TagName) + ":" + value, true
		}
	}

	return "", false
}

func (t *Tagger) iconClassLabel(el Element) (string, bool) {
	for _, class := range el.Classes {
		if !strings.HasPrefix(class, "icon-") {
			continue
		}

		for _, keyword := range t.conf.IconClassKeywords {
			if strings.Contains(class, keyword) {
				return keyword, true
			}
		}
	}

	return "", false
}

// directTextLabel is the fallback and the only strategy gated by the
// excluded-selector check: an element whose ancestor-or-self matches an
// excluded selector gets no tag unless an earlier strategy claimed it.
func (t *Tagger) directTextLabel(el Element) (string, bool) {
	if el.Excluded {
		return "", false
	}

	text := trim(el.DirectText)
	if text == "" {
		return "", false
	}

	if runes := []rune(text); len(runes) > t.conf.DirectTextMaxLen {
		text = string(runes[:t.conf.DirectTextMaxLen])
	}

	return text, true
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
