package tools

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"browser-tools/internal/entity"
	"browser-tools/internal/locator"
	"browser-tools/internal/ports"
	"browser-tools/pkg/apperr"
	"browser-tools/pkg/logg"
)

// ElementLocatorsTool resolves a tagged element to an ordered list of
// sanitized selector candidates, best first.
type ElementLocatorsTool struct {
	driver    ports.PageDriver
	generator ports.SelectorGenerator
	logger    *zap.Logger
}

type ElementLocatorsParams struct {
	fx.In

	Driver    ports.PageDriver
	Generator ports.SelectorGenerator
	Logger    *zap.Logger
}

func NewElementLocatorsTool(params ElementLocatorsParams) *ElementLocatorsTool {
	return &ElementLocatorsTool{
		driver:    params.Driver,
		generator: params.Generator,
		logger:    params.Logger.With(zap.String(logg.Layer, "ElementLocatorsTool")),
	}
}

func (t *ElementLocatorsTool) Name() string {
	return "get_element_locators"
}

func (t *ElementLocatorsTool) Description() string {
	return "Resolve a tagged element (by its data-tag-id value) to candidate CSS selectors, best first; pass first=true for only the best one."
}

func (t *ElementLocatorsTool) Execute(ctx context.Context, args entity.Args) (string, error) {
	const op = "ElementLocators"

	if args.ID == "" {
		return "", apperr.InvalidReqError(op, "id", errors.New("id cannot be empty"))
	}

	if err := checkPage(ctx, t.driver, op); err != nil {
		return "", err
	}

	gen, err := t.generator.Generate(ctx, args.ID)
	if err != nil {
		return "", err
	}

	if args.First {
		selector := locator.SanitizeOne(gen)
		if selector == "" {
			return "", apperr.WrapErrorWithReason(op, apperr.CodeEvaluation, "no_selector_candidates")
		}

		return selector, nil
	}

	selectors := locator.Sanitize(gen)
	if len(selectors) == 0 {
		return "", apperr.WrapErrorWithReason(op, apperr.CodeEvaluation, "no_selector_candidates")
	}

	return strings.Join(selectors, "\n"), nil
}
