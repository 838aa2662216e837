package tagging

import (
	"encoding/json"
	"fmt"
	"os"

	"browser-tools/pkg/apperr"
)

const defaultDirectTextMaxLen = 10

// Config drives the tagging pass. Loaded once per invocation and
// immutable for its duration.
type Config struct {
	ExcludedSelectors []string `json:"excludedSelectors"`
	IconClassKeywords []string `json:"iconClassKeywords"`
	SpecialTagNames   []string `json:"specialTagNames"`
	DirectTextMaxLen  int      `json:"directTextMaxLen"`
}

func LoadConfig(path string) (*Config, error) {
	const op = "LoadConfig"

	if path == "" {
		return nil, apperr.ConfigurationError(op, fmt.Errorf("tag config path is empty"), path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.ConfigurationError(op, fmt.Errorf("read tag config: %w", err), path)
	}

	var conf Config

	if err := json.Unmarshal(data, &conf); err != nil {
		return nil, apperr.ConfigurationError(op, fmt.Errorf("parse tag config: %w", err), path)
	}

	if conf.ExcludedSelectors == nil {
		return nil, apperr.ConfigurationError(op, fmt.Errorf("excludedSelectors is required"), path)
	}

	if conf.IconClassKeywords == nil {
		return nil, apperr.ConfigurationError(op, fmt.Errorf("iconClassKeywords is required"), path)
	}

	if conf.SpecialTagNames == nil {
		return nil, apperr.ConfigurationError(op, fmt.Errorf("specialTagNames is required"), path)
	}

	if conf.DirectTextMaxLen < 0 {
		return nil, apperr.ConfigurationError(op, fmt.Errorf("directTextMaxLen must be positive, got %d", conf.DirectTextMaxLen), path)
	}

	if conf.DirectTextMaxLen == 0 {
		conf.DirectTextMaxLen = defaultDirectTextMaxLen
	}

	return &conf, nil
}
