package tools

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"browser-tools/internal/config"
	"browser-tools/internal/entity"
	"browser-tools/internal/ports"
	"browser-tools/internal/tagging"
	"browser-tools/pkg/logg"
)

// TagElementsTool runs the tagging pass: snapshot the document, resolve
// labels for visible elements, stamp data-tag-id attributes, and report
// the id:text records.
type TagElementsTool struct {
	driver ports.PageDriver
	conf   *config.ToolsConfig
	logger *zap.Logger
}

type TagElementsParams struct {
	fx.In

	Driver ports.PageDriver
	Config *config.Config
	Logger *zap.Logger
}

func NewTagElementsTool(params TagElementsParams) *TagElementsTool {
	return &TagElementsTool{
		driver: params.Driver,
		conf:   params.Config.ToolsConfig,
		logger: params.Logger.With(zap.String(logg.Layer, "TagElementsTool")),
	}
}

func (t *TagElementsTool) Name() string {
	return "tag_elements"
}

func (t *TagElementsTool) Description() string {
	return "Tag visible interactive elements with sequential data-tag-id identifiers and list them as id:text."
}

func (t *TagElementsTool) Execute(ctx context.Context, args entity.Args) (string, error) {
	const op = "TagElements"
	logger := t.logger.With(zap.String(logg.Operation, op))

	if err := checkPage(ctx, t.driver, op); err != nil {
		return "", err
	}

	// Reloaded per invocation so config edits apply without a restart.
	tagConf, err := tagging.LoadConfig(t.conf.TagConfigPath)
	if err != nil {
		return "", err
	}

	elements, err := t.driver.Snapshot(ctx, tagConf.ExcludedSelectors)
	if err != nil {
		return "", err
	}

	records, ids := tagging.NewTagger(tagConf).Tag(elements)

	// Stamping is best effort: the records stand even when attribute
	// writes fail.
	if err := t.driver.Stamp(ctx, ids); err != nil {
		logger.Warn("Failed to stamp tag identifiers", zap.Error(err))
	}

	if len(records) == 0 {
		return "0 elements tagged", nil
	}

	return fmt.Sprintf("%s\n\n%d elements tagged", tagging.FormatRecords(records), len(records)), nil
}
