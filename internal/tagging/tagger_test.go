package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		ExcludedSelectors: []string{".ads", "#footer"},
		IconClassKeywords: []string{"delete", "edit", "close"},
		SpecialTagNames:   []string{"video", "canvas"},
		DirectTextMaxLen:  10,
	}
}

func TestResolveLabelPriority(t *testing.T) {
	tagger := NewTagger(testConfig())

	tests := []struct {
		name      string
		el        Element
		wantLabel string
		wantOK    bool
	}{
		{
			name: "special tag name wins over everything",
			el: Element{
				TagName:    "VIDEO",
				Attributes: map[string]string{"aria-label": "Player"},
				DirectText: "inline",
			},
			wantLabel: "VIDEO",
			wantOK:    true,
		},
		{
			name: "placeholder before form-control title",
			el: Element{
				TagName: "INPUT",
				Attributes: map[string]string{
					"placeholder": "Search",
					"title":       "Search box",
					"id":          "q",
				},
			},
			wantLabel: "INPUT:Search",
			wantOK:    true,
		},
		{
			name: "data-placeholder when placeholder absent",
			el: Element{
				TagName:    "DIV",
				Attributes: map[string]string{"data-placeholder": "Type here"},
			},
			wantLabel: "DIV:Type here",
			wantOK:    true,
		},
		{
			name: "aria-label before name",
			el: Element{
				TagName: "BUTTON",
				Attributes: map[string]string{
					"aria-label": "Submit form",
					"name":       "submit",
				},
			},
			wantLabel: "BUTTON:Submit form",
			wantOK:    true,
		},
		{
			name: "attribute values are trimmed",
			el: Element{
				TagName:    "INPUT",
				Attributes: map[string]string{"placeholder": "  Search  "},
			},
			wantLabel: "INPUT:Search",
			wantOK:    true,
		},
		{
			name: "form control falls back to title",
			el: Element{
				TagName:    "SELECT",
				Attributes: map[string]string{"title": "Country"},
			},
			wantLabel: "SELECT:Country",
			wantOK:    true,
		},
		{
			name: "form control falls back to id after title",
			el: Element{
				TagName:    "TEXTAREA",
				Attributes: map[string]string{"id": "comment"},
			},
			wantLabel: "TEXTAREA:comment",
			wantOK:    true,
		},
		{
			name: "title on non-form-control is ignored",
			el: Element{
				TagName:    "DIV",
				Attributes: map[string]string{"title": "Tooltip"},
			},
			wantOK: false,
		},
		{
			name: "icon class resolves to keyword",
			el: Element{
				TagName: "I",
				Classes: []string{"btn", "icon-delete-btn"},
			},
			wantLabel: "delete",
			wantOK:    true,
		},
		{
			name: "icon class without configured keyword",
			el: Element{
				TagName: "I",
				Classes: []string{"icon-unknown"},
			},
			wantOK: false,
		},
		{
			name: "keyword outside icon- class is ignored",
			el: Element{
				TagName: "I",
				Classes: []string{"delete-action"},
			},
			wantOK: false,
		},
		{
			name: "direct text fallback",
			el: Element{
				TagName:    "SPAN",
				DirectText: "Hello",
			},
			wantLabel: "Hello",
			wantOK:    true,
		},
		{
			name: "direct text truncated to max length",
			el: Element{
				TagName:    "SPAN",
				DirectText: "A very long label indeed",
			},
			wantLabel: "A very lon",
			wantOK:    true,
		},
		{
			name: "excluded element gets no direct-text label",
			el: Element{
				TagName:    "SPAN",
				DirectText: "Sponsored",
				Excluded:   true,
			},
			wantOK: false,
		},
		{
			name: "exclusion does not veto earlier strategies",
			el: Element{
				TagName:    "INPUT",
				Attributes: map[string]string{"placeholder": "Search"},
				Excluded:   true,
			},
			wantLabel: "INPUT:Search",
			wantOK:    true,
		},
		{
			name:   "nothing resolvable",
			el:     Element{TagName: "DIV"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := tagger.resolveLabel(tt.el)

			require.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.wantLabel, label)
			}
		})
	}
}

func TestTagAssignsSequentialIDs(t *testing.T) {
	tagger := NewTagger(testConfig())

	elements := []Element{
		{Index: 0, TagName: "INPUT", Attributes: map[string]string{"placeholder": "Search"}, Visible: true},
		{Index: 1, TagName: "DIV", Visible: true},
		{Index: 2, TagName: "A", DirectText: "Home", Visible: true},
		{Index: 3, TagName: "BUTTON", Attributes: map[string]string{"aria-label": "Close"}, Visible: false},
		{Index: 4, TagName: "SPAN", DirectText: "Logout", Visible: true},
	}

	records, ids := tagger.Tag(elements)

	require.Len(t, records, 3)
	assert.Equal(t, []Record{
		{ID: "1", Text: "INPUT:Search"},
		{ID: "2", Text: "Home"},
		{ID: "3", Text: "Logout"},
	}, records)

	assert.Equal(t, map[int]string{0: "1", 2: "2", 4: "3"}, ids)
}

func TestTagInvisibleElementsNeverTagged(t *testing.T) {
	tagger := NewTagger(testConfig())

	records, ids := tagger.Tag([]Element{
		{Index: 0, TagName: "INPUT", Attributes: map[string]string{"placeholder": "Hidden"}, Visible: false},
	})

	assert.Empty(t, records)
	assert.Empty(t, ids)
}

func TestTagDeterministic(t *testing.T) {
	tagger := NewTagger(testConfig())

	elements := []Element{
		{Index: 0, TagName: "A", DirectText: "One", Visible: true},
		{Index: 1, TagName: "A", DirectText: "Two", Visible: true},
		{Index: 2, TagName: "VIDEO", Visible: true},
	}

	first, _ := tagger.Tag(elements)
	second, _ := tagger.Tag(elements)

	assert.Equal(t, first, second)
}

func TestFormatRecords(t *testing.T) {
	out := FormatRecords([]Record{
		{ID: "1", Text: "INPUT:Search"},
		{ID: "2", Text: "Home"},
	})

	assert.Equal(t, "1:INPUT:Search\n2:Home", out)

	assert.Equal(t, "", FormatRecords(nil))
}
