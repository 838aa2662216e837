package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name   string
		result GenResult
		want   []string
	}{
		{
			name:   "clean first candidate kept in front",
			result: GenResult{Selectors: []string{"button.ok", "div.other"}},
			want:   []string{"button.ok", "div.other"},
		},
		{
			name:   "invalid empty-attribute candidate skipped",
			result: GenResult{Selectors: []string{`div[data-x=""]`, "button.ok"}},
			want:   []string{"button.ok", `div[data-x=""]`},
		},
		{
			name:   "candidate with private-use rune loses to clean one",
			result: GenResult{Selectors: []string{"span.icon-", "a.nav"}},
			want:   []string{"a.nav", "span.icon-"},
		},
		{
			name:   "cleaned candidate wins when all originals are bad",
			result: GenResult{Selectors: []string{"span.x"}},
			want:   []string{"span.x"},
		},
		{
			name:   "first original as last resort",
			result: GenResult{Selectors: []string{`a[href=""]`, `b[id=""]`}},
			want:   []string{`a[href=""]`, `b[id=""]`},
		},
		{
			name:   "single selector field",
			result: GenResult{Selector: "input[name=\"q\"]"},
			want:   []string{"input[name=\"q\"]"},
		},
		{
			name:   "selectors array takes precedence over selector",
			result: GenResult{Selector: "div.a", Selectors: []string{"div.b"}},
			want:   []string{"div.b"},
		},
		{
			name:   "control characters stripped from losers",
			result: GenResult{Selectors: []string{"button.ok", "div.xy"}},
			want:   []string{"button.ok", "div.xy"},
		},
		{
			name:   "empty input",
			result: GenResult{},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.result))
		})
	}
}

func TestSanitizeOne(t *testing.T) {
	assert.Equal(t, "button.ok", SanitizeOne(GenResult{
		Selectors: []string{`div[data-x=""]`, "button.ok"},
	}))

	assert.Equal(t, "", SanitizeOne(GenResult{}))
}

func TestIsBadRune(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', false},
		{'#', false},
		{'\n', true},
		{'', true},
		{'', true},
		{'', true},
		{'�', true},
		{'\U0001F600', true},
		{'é', false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isBadRune(tt.r), "rune %U", tt.r)
	}
}
