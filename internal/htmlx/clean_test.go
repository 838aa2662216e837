package htmlx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	input := `<html><head>
		<meta charset="utf-8">
		<style>body { color: red; }</style>
		<script>alert(1);</script>
	</head><body>
		<!-- navigation -->
		<div class="main">Hello</div>
		<script src="app.js"></script>
	</body></html>`

	tests := []struct {
		name    string
		opts    Options
		wantNot []string
		want    []string
	}{
		{
			name:    "remove scripts only",
			opts:    Options{RemoveScripts: true},
			wantNot: []string{"<script"},
			want:    []string{"<style", "<meta", "<!-- navigation -->", "Hello"},
		},
		{
			name:    "remove styles only",
			opts:    Options{RemoveStyles: true},
			wantNot: []string{"<style"},
			want:    []string{"<script", "<meta", "Hello"},
		},
		{
			name:    "remove meta only",
			opts:    Options{RemoveMeta: true},
			wantNot: []string{"<meta"},
			want:    []string{"<script", "<style", "Hello"},
		},
		{
			name:    "remove comments only",
			opts:    Options{RemoveComments: true},
			wantNot: []string{"<!-- navigation -->"},
			want:    []string{"<script", "<style", "<meta", "Hello"},
		},
		{
			name:    "all removals",
			opts:    AllRemovals(),
			wantNot: []string{"<script", "<style", "<meta", "<!--"},
			want:    []string{"Hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Clean(input, tt.opts)
			require.NoError(t, err)

			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}

			for _, s := range tt.wantNot {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestCleanFragmentKeepsShape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  string
	}{
		{
			name:  "single element stays unwrapped",
			input: `<div id="main"><script>x()</script>Content</div>`,
			opts:  Options{RemoveScripts: true},
			want:  `<div id="main">Content</div>`,
		},
		{
			name:  "sibling elements preserved",
			input: `<span>a</span><!-- c --><span>b</span>`,
			opts:  Options{RemoveComments: true},
			want:  `<span>a</span><span>b</span>`,
		},
		{
			name:  "top-level removable node dropped",
			input: `<style>a{}</style><p>Hi</p>`,
			opts:  AllRemovals(),
			want:  `<p>Hi</p>`,
		},
		{
			name:  "fragment minify",
			input: "<div>\n  <span>a</span>\n</div>",
			opts:  Options{Minify: true},
			want:  "<div><span>a</span></div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Clean(tt.input, tt.opts)

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.NotContains(t, out, "<body")
		})
	}
}

func TestCleanDocumentKeepsDocumentShape(t *testing.T) {
	out, err := Clean(`<html><head></head><body><p>Hi</p></body></html>`, AllRemovals())

	require.NoError(t, err)
	assert.Equal(t, `<html><head></head><body><p>Hi</p></body></html>`, out)
}

func TestCleanRemovesNestedComments(t *testing.T) {
	input := `<html><body><div><p><!-- deep --><span><!-- deeper -->x</span></p></div></body></html>`

	out, err := Clean(input, Options{RemoveComments: true})

	require.NoError(t, err)
	assert.NotContains(t, out, "<!--")
	assert.Contains(t, out, "x")
}

func TestMinify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses whitespace between tags",
			input: "<div>\n\t <span>a</span>   <span>b</span>\n</div>",
			want:  "<div><span>a</span><span>b</span></div>",
		},
		{
			name:  "text inside an element is untouched",
			input: "<p>hello   world</p>",
			want:  "<p>hello   world</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Minify(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		max    int
		marker string
		want   string
	}{
		{
			name:   "short input unchanged",
			input:  "hello",
			max:    10,
			marker: TextMarker,
			want:   "hello",
		},
		{
			name:   "exact length unchanged",
			input:  "hello",
			max:    5,
			marker: TextMarker,
			want:   "hello",
		},
		{
			name:   "long input cut with marker",
			input:  "hello world",
			max:    5,
			marker: TextMarker,
			want:   "hello" + TextMarker,
		},
		{
			name:   "zero max disables truncation",
			input:  "hello world",
			max:    0,
			marker: TextMarker,
			want:   "hello world",
		},
		{
			name:   "multibyte input cut on rune boundary",
			input:  "héllö wörld",
			max:    5,
			marker: HTMLMarker,
			want:   "héllö" + HTMLMarker,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.max, tt.marker)

			assert.Equal(t, tt.want, got)

			if len([]rune(tt.input)) <= tt.max {
				assert.False(t, strings.HasSuffix(got, tt.marker) && got != tt.input)
			}
		})
	}
}
