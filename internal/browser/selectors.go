package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"browser-tools/internal/locator"
	"browser-tools/internal/ports"
	"browser-tools/pkg/apperr"
	"browser-tools/pkg/logg"
	"browser-tools/pkg/tracing"
)

const (
	selectorGenName   = "SelectorGenerator"
	selectorGenTracer = "browser.selectors"
)

// Generator produces candidate selectors for tagged elements by running
// the generation script inside the page.
type Generator struct {
	driver ports.PageDriver
	logger *zap.Logger
	tracer trace.Tracer
}

type GeneratorParams struct {
	fx.In

	Driver ports.PageDriver
	Logger *zap.Logger
}

func NewGenerator(params GeneratorParams) *Generator {
	return &Generator{
		driver: params.Driver,
		logger: params.Logger.With(zap.String(logg.Layer, selectorGenName)),
		tracer: otel.Tracer(selectorGenTracer),
	}
}

func (g *Generator) Generate(ctx context.Context, tagID string) (gen locator.GenResult, err error) {
	const op = "Generate"
	logger := g.logger.With(zap.String(logg.Operation, op), zap.String(logg.TagID, tagID))

	ctx, step := tracing.StartSpan(ctx, g.tracer, logger, op, attribute.String("tag_id", tagID))
	defer func() {
		step.End(err)
	}()

	result, err := g.driver.Evaluate(ctx, selectorCandidatesScript(), tagID)
	if err != nil {
		return locator.GenResult{}, err
	}

	if result == nil {
		return locator.GenResult{}, apperr.SelectorNotFoundError(op, fmt.Sprintf(`[data-tag-id=%q]`, tagID))
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return locator.GenResult{}, apperr.EvaluationError(op, fmt.Errorf("encode candidates: %w", err))
	}

	if err := json.Unmarshal(raw, &gen); err != nil {
		return locator.GenResult{}, apperr.EvaluationError(op, fmt.Errorf("decode candidates: %w", err))
	}

	step.AddEvent("candidates generated", attribute.Int("count", len(gen.Selectors)))

	return gen, nil
}
