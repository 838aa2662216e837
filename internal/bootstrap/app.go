package bootstrap

import (
	"time"

	"go.uber.org/fx"

	"browser-tools/internal/browser"
	"browser-tools/internal/config"
	"browser-tools/internal/console"
	"browser-tools/internal/ports"
	"browser-tools/internal/tools"
)

func NewApp() *fx.App {
	return fx.New(
		fx.Provide(
			config.GetConfig,
			newLogger,
			newTraceProvider,

			fx.Annotate(browser.NewManager,
				fx.As(new(ports.BrowserManager)),
				fx.As(new(ports.PageDriver))),
			fx.Annotate(browser.NewGenerator, fx.As(new(ports.SelectorGenerator))),

			tools.NewVisibleTextTool,
			tools.NewVisibleHTMLTool,
			tools.NewTagElementsTool,
			tools.NewElementLocatorsTool,
			tools.NewExpectTextTool,
			tools.NewRegistry,

			console.NewInterface,
		),

		fx.Invoke(
			runConsole,
		),

		fx.StartTimeout(10*time.Second),
	)
}
