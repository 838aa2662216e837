package tagging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browser-tools/pkg/apperr"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tags.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"excludedSelectors": [".ads"],
		"iconClassKeywords": ["delete"],
		"specialTagNames": ["video"],
		"directTextMaxLen": 20
	}`)

	conf, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, []string{".ads"}, conf.ExcludedSelectors)
	assert.Equal(t, []string{"delete"}, conf.IconClassKeywords)
	assert.Equal(t, []string{"video"}, conf.SpecialTagNames)
	assert.Equal(t, 20, conf.DirectTextMaxLen)
}

func TestLoadConfigDefaultsMaxLen(t *testing.T) {
	path := writeConfigFile(t, `{
		"excludedSelectors": [],
		"iconClassKeywords": [],
		"specialTagNames": []
	}`)

	conf, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, defaultDirectTextMaxLen, conf.DirectTextMaxLen)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "empty path",
			path: func(t *testing.T) string { return "" },
		},
		{
			name: "missing file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.json")
			},
		},
		{
			name: "malformed json",
			path: func(t *testing.T) string {
				return writeConfigFile(t, `{"excludedSelectors": [`)
			},
		},
		{
			name: "wrong field type",
			path: func(t *testing.T) string {
				return writeConfigFile(t, `{
					"excludedSelectors": ".ads",
					"iconClassKeywords": [],
					"specialTagNames": []
				}`)
			},
		},
		{
			name: "missing excludedSelectors",
			path: func(t *testing.T) string {
				return writeConfigFile(t, `{
					"iconClassKeywords": [],
					"specialTagNames": []
				}`)
			},
		},
		{
			name: "negative directTextMaxLen",
			path: func(t *testing.T) string {
				return writeConfigFile(t, `{
					"excludedSelectors": [],
					"iconClassKeywords": [],
					"specialTagNames": [],
					"directTextMaxLen": -3
				}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfig(tt.path(t))

			require.Error(t, err)
			assert.Nil(t, conf)

			var appErr *apperr.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperr.CodeConfiguration, appErr.Code)
		})
	}
}
