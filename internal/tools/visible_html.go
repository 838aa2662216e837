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

// VisibleHTMLTool returns page HTML, optionally scoped to one selector
// and cleaned of scripts, styles, meta tags, and comments.
type VisibleHTMLTool struct {
	driver ports.PageDriver
	conf   *config.ToolsConfig
	logger *zap.Logger
}

type VisibleHTMLParams struct {
	fx.In

	Driver ports.PageDriver
	Config *config.Config
	Logger *zap.Logger
}

func NewVisibleHTMLTool(params VisibleHTMLParams) *VisibleHTMLTool {
	return &VisibleHTMLTool{
		driver: params.Driver,
		conf:   params.Config.ToolsConfig,
		logger: params.Logger.With(zap.String(logg.Layer, "VisibleHTMLTool")),
	}
}

func (t *VisibleHTMLTool) Name() string {
	return "get_visible_html"
}

func (t *VisibleHTMLTool) Description() string {
	return "Get the page HTML, or the outer HTML of one selector, with optional cleaning and minification."
}

func (t *VisibleHTMLTool) Execute(ctx context.Context, args entity.Args) (string, error) {
	const op = "VisibleHTML"

	if err := checkPage(ctx, t.driver, op); err != nil {
		return "", err
	}

	var raw string
	var err error

	if args.Selector != "" {
		raw, err = t.driver.OuterHTML(ctx, args.Selector)
	} else {
		raw, err = t.driver.Content(ctx)
	}

	if err != nil {
		return "", err
	}

	opts := cleanOptions(args)

	out := raw

	if opts != (htmlx.Options{}) {
		out, err = htmlx.Clean(raw, opts)
		if err != nil {
			return "", err
		}
	}

	maxLength := t.conf.MaxTextLength
	if args.MaxLength != nil {
		maxLength = *args.MaxLength
	}

	return htmlx.Truncate(out, maxLength, htmlx.HTMLMarker), nil
}

// cleanOptions maps tool arguments onto the cleaning options. Script
// removal is on by default and only an explicit removeScripts=false
// keeps them; cleanHtml switches on all four removals at once.
func cleanOptions(args entity.Args) htmlx.Options {
	opts := htmlx.Options{
		RemoveScripts:  true,
		RemoveStyles:   args.RemoveStyles,
		RemoveMeta:     args.RemoveMeta,
		RemoveComments: args.RemoveComments,
		Minify:         args.Minify,
	}

	if args.RemoveScripts != nil {
		opts.RemoveScripts = *args.RemoveScripts
	}

	if args.CleanHTML {
		removals := htmlx.AllRemovals()
		removals.Minify = opts.Minify
		opts = removals
	}

	return opts
}
