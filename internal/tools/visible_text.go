package tools

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"browser-tools/internal/config"
	"browser-tools/internal/entity"
	"browser-tools/internal/htmlx"
	"browser-tools/internal/ports"
	"browser-tools/pkg/logg"
)

// VisibleTextTool extracts the rendered text of the page body: text
// nodes whose parent element is displayed, one per line.
type VisibleTextTool struct {
	driver ports.PageDriver
	conf   *config.ToolsConfig
	logger *zap.Logger
}

type VisibleTextParams struct {
	fx.In

	Driver ports.PageDriver
	Config *config.Config
	Logger *zap.Logger
}

func NewVisibleTextTool(params VisibleTextParams) *VisibleTextTool {
	return &VisibleTextTool{
		driver: params.Driver,
		conf:   params.Config.ToolsConfig,
		logger: params.Logger.With(zap.String(logg.Layer, "VisibleTextTool")),
	}
}

func (t *VisibleTextTool) Name() string {
	return "get_visible_text"
}

func (t *VisibleTextTool) Description() string {
	return "Get the visible text content of the current page, one text node per line."
}

func (t *VisibleTextTool) Execute(ctx context.Context, args entity.Args) (string, error) {
	const op = "VisibleText"

	if err := checkPage(ctx, t.driver, op); err != nil {
		return "", err
	}

	text, err := t.driver.VisibleText(ctx)
	if err != nil {
		return "", err
	}

	maxLength := t.conf.MaxTextLength
	if args.MaxLength != nil {
		maxLength = *args.MaxLength
	}

	return htmlx.Truncate(text, maxLength, htmlx.TextMarker), nil
}
