package console

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"browser-tools/internal/config"
	"browser-tools/internal/entity"
	"browser-tools/internal/ports"
	"browser-tools/internal/tools"
	"browser-tools/pkg/logg"
)

type Interface struct {
	config   *config.Config
	logger   *zap.Logger
	manager  ports.BrowserManager
	registry *tools.Registry
	ctx      context.Context
	cancel   context.CancelFunc
	sigChan  chan os.Signal
	stopping bool
}

type Params struct {
	fx.In

	Config   *config.Config
	Logger   *zap.Logger
	Manager  ports.BrowserManager
	Registry *tools.Registry
}

func NewInterface(params Params) *Interface {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)

	return &Interface{
		config:   params.Config,
		logger:   params.Logger.With(zap.String(logg.Layer, "Console")),
		manager:  params.Manager,
		registry: params.Registry,
		ctx:      ctx,
		cancel:   cancel,
		sigChan:  sigChan,
		stopping: false,
	}
}

func (i *Interface) Start() error {
	i.printBanner()
	i.printHelp()

	signal.Notify(i.sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-i.sigChan
		fmt.Println("\n\nInterrupt received, shutting down...")
		i.stopping = true
		i.Stop()
	}()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		if i.stopping {
			break
		}

		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "" {
			continue
		}

		if err := i.handleCommand(input); err != nil {
			if err.Error() == "exit" {
				break
			}

			i.logger.Error("Command error", zap.Error(err))
			fmt.Printf("Error: %v\n", err)
		}
	}

	return nil
}

func (i *Interface) Stop() error {
	if i.stopping {
		return nil
	}

	i.stopping = true
	i.logger.Info("Stopping console interface...")

	i.cancel()

	fmt.Println("Goodbye!")
	os.Exit(0)

	return nil
}

func (i *Interface) handleCommand(input string) error {
	name, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "help", "h":
		i.printHelp()

		return nil
	case "exit", "quit", "q":
		fmt.Println("Shutting down...")

		return fmt.Errorf("exit")
	case "open":
		if rest == "" {
			return fmt.Errorf("usage: open <url>")
		}

		return i.manager.Navigate(i.ctx, rest)
	case "tools":
		i.printTools()

		return nil
	default:
		return i.callTool(name, rest)
	}
}

// callTool dispatches a tool invocation. The remainder of the line, if
// present, is a JSON object of the tool's arguments.
func (i *Interface) callTool(name, rawArgs string) error {
	if _, ok := i.registry.Get(name); !ok {
		return fmt.Errorf("unknown command or tool: %s (try 'tools')", name)
	}

	var args entity.Args
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return fmt.Errorf("parse args: %w", err)
		}
	}

	result := i.registry.Call(i.ctx, name, args)

	fmt.Println("\n─────────────────────────────────────────────")

	if result.OK {
		fmt.Println(result.Text)
	} else {
		fmt.Printf("Tool failed: %s\n", result.Error)
	}

	fmt.Println("─────────────────────────────────────────────")

	return nil
}

func (i *Interface) printBanner() {
	banner := `
╔═══════════════════════════════════════════╗
║                                           ║
║           Browser Tools Console           ║
║                                           ║
║   Page inspection tools over Playwright   ║
║                                           ║
╚═══════════════════════════════════════════╝
`
	fmt.Println(banner)
}

func (i *Interface) printHelp() {
	help := `
Available commands:
  help, h        - Show this help message
  exit, quit, q  - Exit the application
  open <url>     - Navigate the page to a URL
  tools          - List available tools

To run a tool, type its name, optionally followed by a JSON argument object:
  Examples:
    - open https://example.com
    - get_visible_text
    - get_visible_html {"selector": "#main", "cleanHtml": true}
    - tag_elements
    - get_element_locators {"id": "3"}
    - get_element_locators {"id": "3", "first": true}
    - expect_text {"text": "Order confirmed"}
`
	fmt.Println(help)
}

func (i *Interface) printTools() {
	for _, name := range i.registry.Names() {
		tool, _ := i.registry.Get(name)
		fmt.Printf("  %-22s %s\n", name, tool.Description())
	}
}
