package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"browser-tools/internal/config"
	"browser-tools/internal/tagging"
	"browser-tools/pkg/apperr"
	"browser-tools/pkg/logg"
	"browser-tools/pkg/tracing"
)

const (
	browserManagerName = "BrowserManager"
	browserTracer      = "browser.manager"
)

// Manager owns the playwright handles and implements the page-driver
// surface the tools run against.
type Manager struct {
	config         *config.Config
	logger         *zap.Logger
	tracer         trace.Tracer
	playwright     *playwright.Playwright
	browser        playwright.Browser
	browserContext playwright.BrowserContext
	page           playwright.Page
	ready          bool
}

type Params struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func NewManager(params Params) *Manager {
	return &Manager{
		config: params.Config,
		logger: params.Logger.With(zap.String(logg.Layer, browserManagerName)),
		tracer: otel.Tracer(browserTracer),
		ready:  false,
	}
}

func (m *Manager) Launch(ctx context.Context) (err error) {
	const op = "Launch"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Launching browser...")
	step.AddEvent("installing playwright")

	err = playwright.Install()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_install_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	step.AddEvent("starting playwright")

	pw, err := playwright.Run()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_start_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.playwright = pw

	if m.config.BrowserConfig.UserDataDir != "" {
		return m.launchPersistent(ctx)
	}

	return m.launchNew(ctx)
}

func (m *Manager) launchPersistent(ctx context.Context) (err error) {
	const op = "launchPersistent"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Launching persistent browser context")

	userDataDir := m.config.BrowserConfig.UserDataDir

	if err := os.MkdirAll(userDataDir, 0755); err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "mkdir_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	options := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless:          playwright.Bool(m.config.BrowserConfig.Headless),
		SlowMo:            playwright.Float(float64(m.config.BrowserConfig.SlowMo)),
		Viewport:          &playwright.Size{Width: 1920, Height: 1080},
		AcceptDownloads:   playwright.Bool(false),
		JavaScriptEnabled: playwright.Bool(true),
	}

	browserContext, err := m.playwright.Chromium.LaunchPersistentContext(userDataDir, options)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "launch_persistent_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	m.browserContext = browserContext

	pages := browserContext.Pages()

	if len(pages) > 0 {
		m.page = pages[0]
		logger.Info("Using existing page")
	} else {
		page, err := browserContext.NewPage()
		if err != nil {
			return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
				apperr.MetaReason: "new_page_failed",
				apperr.MetaStage:  apperr.StageBrowser,
			})
		}
		m.page = page
		logger.Info("Created new page")
	}

	m.ready = true
	logger.Info("Browser launched successfully")

	return nil
}

func (m *Manager) launchNew(ctx context.Context) (err error) {
	const op = "launchNew"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Launching new browser")

	browserOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.config.BrowserConfig.Headless),
		SlowMo:   playwright.Float(float64(m.config.BrowserConfig.SlowMo)),
	}

	browser, err := m.playwright.Chromium.Launch(browserOptions)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "browser_launch_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.browser = browser

	browserContext, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		JavaScriptEnabled: playwright.Bool(true),
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "context_create_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	m.browserContext = browserContext

	page, err := browserContext.NewPage()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "page_create_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.page = page

	m.ready = true
	logger.Info("Browser launched successfully")

	return nil
}

func (m *Manager) Close(ctx context.Context) (err error) {
	const op = "Close"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Closing browser...")

	if m.browserContext != nil {
		if err := m.browserContext.Close(); err != nil {
			logger.Warn("Failed to close context", zap.Error(err))
		}
	}

	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			logger.Warn("Failed to close browser", zap.Error(err))
		}
	}

	if m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
				apperr.MetaReason: "playwright_stop_failed",
			})
		}
	}

	m.ready = false
	logger.Info("Browser closed")

	return nil
}

// Reset drops the page handle so the next operation reattaches to a live
// page. Called by the tool layer after a connectivity failure.
func (m *Manager) Reset(ctx context.Context) error {
	const op = "Reset"
	logger := m.logger.With(zap.String(logg.Operation, op))

	logger.Info("Resetting page handles")

	if m.page != nil && !m.page.IsClosed() {
		if err := m.page.Close(); err != nil {
			logger.Warn("Failed to close stale page", zap.Error(err))
		}
	}

	m.page = nil

	return m.ensurePageActive(ctx)
}

func (m *Manager) ensurePageActive(ctx context.Context) error {
	if m.browserContext == nil {
		return fmt.Errorf("browser context is nil")
	}

	if m.page != nil && !m.page.IsClosed() {
		return nil
	}

	m.logger.Info("Page closed, reconnecting to active page...")

	pages := m.browserContext.Pages()

	for _, p := range pages {
		if !p.IsClosed() {
			m.page = p
			m.logger.Info("Reconnected to existing page")

			return nil
		}
	}

	m.logger.Info("No active pages found, creating new page...")

	page, err := m.browserContext.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create new page: %w", err)
	}

	m.page = page
	m.logger.Info("Created new page")

	return nil
}

func (m *Manager) IsConnected() bool {
	if !m.ready {
		return false
	}

	if m.browser != nil {
		return m.browser.IsConnected()
	}

	// Persistent contexts have no parent browser handle.
	return m.browserContext != nil
}

func (m *Manager) IsPageClosed() bool {
	return m.page == nil || m.page.IsClosed()
}

func (m *Manager) Navigate(ctx context.Context, url string) (err error) {
	const op = "Navigate"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, url))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("url", url))
	defer func() {
		step.End(err)
	}()

	if !m.ready {
		return apperr.WrapErrorWithReason(op, apperr.CodeConnectivity, "browser_not_ready")
	}

	if err := m.ensurePageActive(ctx); err != nil {
		return apperr.Wrap(op, apperr.CodePageUnavailable, err, map[string]any{
			apperr.MetaReason: "page_not_active",
		})
	}

	step.AddEvent("navigating to URL")

	_, err = m.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(m.config.BrowserConfig.Timeout)),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})

	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "goto_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	step.AddEvent("navigation completed")

	return nil
}

func (m *Manager) Content(ctx context.Context) (content string, err error) {
	const op = "Content"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return "", err
	}

	content, err = m.page.Content()
	if err != nil {
		return "", apperr.EvaluationError(op, err)
	}

	return content, nil
}

// VisibleText runs the filtered text-node walk and returns the joined,
// trimmed result.
func (m *Manager) VisibleText(ctx context.Context) (text string, err error) {
	const op = "VisibleText"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return "", err
	}

	result, err := m.page.Evaluate(visibleTextScript())
	if err != nil {
		return "", apperr.EvaluationError(op, err)
	}

	text, ok := result.(string)
	if !ok {
		return "", apperr.WrapErrorWithReason(op, apperr.CodeEvaluation, "unexpected_result_type")
	}

	return text, nil
}

func (m *Manager) Evaluate(ctx context.Context, script string, args ...any) (result any, err error) {
	const op = "Evaluate"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		result, err = m.page.Evaluate(script, args[0])
	} else {
		result, err = m.page.Evaluate(script)
	}

	if err != nil {
		return nil, apperr.EvaluationError(op, err)
	}

	return result, nil
}

// OuterHTML returns the outer HTML of the first element matching the
// selector. A selector matching nothing is an explicit error.
func (m *Manager) OuterHTML(ctx context.Context, selector string) (html string, err error) {
	const op = "OuterHTML"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.Selector, selector))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("selector", selector))
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return "", err
	}

	result, err := m.page.Evaluate(
		`(sel) => { const el = document.querySelector(sel); return el ? el.outerHTML : null; }`,
		selector,
	)
	if err != nil {
		return "", apperr.EvaluationError(op, err)
	}

	html, ok := result.(string)
	if !ok {
		return "", apperr.SelectorNotFoundError(op, selector)
	}

	return html, nil
}

func (m *Manager) WaitForText(ctx context.Context, text string, timeout int) (content string, err error) {
	const op = "WaitForText"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("text", text))
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return "", err
	}

	element, err := m.page.WaitForSelector("text="+text, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(timeout)),
	})
	if err != nil {
		return "", apperr.Wrap(op, apperr.CodeTimeout, err, map[string]any{
			apperr.MetaReason: "wait_text_timeout",
		})
	}

	content, err = element.TextContent()
	if err != nil {
		return "", apperr.EvaluationError(op, err)
	}

	return strings.TrimSpace(content), nil
}

// Snapshot captures the document-order element snapshot the tagger runs
// over. Excluded selectors are matched in-page via Element.closest, so
// exclusion covers the element and its ancestors.
func (m *Manager) Snapshot(ctx context.Context, excludedSelectors []string) (elements []tagging.Element, err error) {
	const op = "Snapshot"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return nil, err
	}

	if excludedSelectors == nil {
		excludedSelectors = []string{}
	}

	step.AddEvent("evaluating snapshot script")

	result, err := m.page.Evaluate(snapshotScript(), excludedSelectors)
	if err != nil {
		return nil, apperr.EvaluationError(op, err)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, apperr.EvaluationError(op, fmt.Errorf("encode snapshot: %w", err))
	}

	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, apperr.EvaluationError(op, fmt.Errorf("decode snapshot: %w", err))
	}

	step.AddEvent("snapshot decoded", attribute.Int("elements", len(elements)))

	return elements, nil
}

// Stamp writes data-tag-id attributes for the given snapshot indices.
// Best effort: per-node write failures are swallowed in the page.
func (m *Manager) Stamp(ctx context.Context, ids map[int]string) (err error) {
	const op = "Stamp"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.Int("count", len(ids)))
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return err
	}

	byIndex := make(map[string]string, len(ids))
	for index, id := range ids {
		byIndex[strconv.Itoa(index)] = id
	}

	if _, err := m.page.Evaluate(stampScript(), byIndex); err != nil {
		return apperr.EvaluationError(op, err)
	}

	return nil
}

// guard is the shared precondition of every page operation: browser
// ready and an attached, open page.
func (m *Manager) guard(ctx context.Context, op string) error {
	if !m.ready {
		return apperr.WrapErrorWithReason(op, apperr.CodeConnectivity, "browser_not_ready")
	}

	if err := m.ensurePageActive(ctx); err != nil {
		return apperr.Wrap(op, apperr.CodePageUnavailable, err, map[string]any{
			apperr.MetaReason: "page_not_active",
		})
	}

	return nil
}
