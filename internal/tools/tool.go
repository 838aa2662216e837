// Package tools implements the page-inspection tool surface: visible
// text, cleaned HTML, element tagging, locator resolution, and text
// expectation waits, all running against a ports.PageDriver.
package tools

import (
	"context"

	"browser-tools/internal/entity"
	"browser-tools/internal/ports"
	"browser-tools/pkg/apperr"
)

// Tool is one named operation of the call surface. Execute returns the
// success text block; failures are surfaced as errors and converted to
// the uniform error payload by the registry.
type Tool interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args entity.Args) (string, error)
}

// checkPage is the shared precondition of every tool: a disconnected
// browser reports a connectivity error and triggers the driver reset; a
// closed page reports an unavailable-page error.
func checkPage(ctx context.Context, driver ports.PageDriver, op string) error {
	if !driver.IsConnected() {
		_ = driver.Reset(ctx)

		return apperr.WrapErrorWithReason(op, apperr.CodeConnectivity, "browser_disconnected")
	}

	if driver.IsPageClosed() {
		return apperr.WrapErrorWithReason(op, apperr.CodePageUnavailable, "page_closed")
	}

	return nil
}
