package tools

import (
	"context"
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"browser-tools/internal/config"
	"browser-tools/internal/entity"
	"browser-tools/internal/ports"
	"browser-tools/pkg/apperr"
	"browser-tools/pkg/logg"
)

// ExpectTextTool waits for the given text to appear on the page and
// returns the matching element's trimmed text content.
type ExpectTextTool struct {
	driver ports.PageDriver
	conf   *config.ToolsConfig
	logger *zap.Logger
}

type ExpectTextParams struct {
	fx.In

	Driver ports.PageDriver
	Config *config.Config
	Logger *zap.Logger
}

func NewExpectTextTool(params ExpectTextParams) *ExpectTextTool {
	return &ExpectTextTool{
		driver: params.Driver,
		conf:   params.Config.ToolsConfig,
		logger: params.Logger.With(zap.String(logg.Layer, "ExpectTextTool")),
	}
}

func (t *ExpectTextTool) Name() string {
	return "expect_text"
}

func (t *ExpectTextTool) Description() string {
	return "Wait until the given text appears on the page and return the element's text content."
}

func (t *ExpectTextTool) Execute(ctx context.Context, args entity.Args) (string, error) {
	const op = "ExpectText"

	if args.Text == "" {
		return "", apperr.InvalidReqError(op, "text", errors.New("text cannot be empty"))
	}

	if err := checkPage(ctx, t.driver, op); err != nil {
		return "", err
	}

	return t.driver.WaitForText(ctx, args.Text, t.conf.WaitTimeout)
}
