package ports

import (
	"context"

	"browser-tools/internal/locator"
	"browser-tools/internal/tagging"
)

// PageDriver is the slice of the browser-automation surface the tools
// depend on. The production implementation wraps a playwright page; tests
// substitute fakes.
type PageDriver interface {
	IsConnected() bool
	IsPageClosed() bool

	// Reset drops the current page handles so the next call reattaches.
	// Invoked by tools when connectivity is lost.
	Reset(ctx context.Context) error

	Content(ctx context.Context) (string, error)
	VisibleText(ctx context.Context) (string, error)
	Evaluate(ctx context.Context, script string, args ...any) (any, error)
	OuterHTML(ctx context.Context, selector string) (string, error)
	WaitForText(ctx context.Context, text string, timeout int) (string, error)

	Snapshot(ctx context.Context, excludedSelectors []string) ([]tagging.Element, error)
	Stamp(ctx context.Context, ids map[int]string) error
}

// SelectorGenerator produces ordered candidate selectors for a
// previously tagged element.
type SelectorGenerator interface {
	Generate(ctx context.Context, tagID string) (locator.GenResult, error)
}

// BrowserManager owns the browser lifecycle. Navigation lives here and
// not on the tool surface: tools inspect whatever page the caller opened.
type BrowserManager interface {
	PageDriver

	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
}
