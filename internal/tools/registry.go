package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"browser-tools/internal/entity"
	"browser-tools/pkg/logg"
	"browser-tools/pkg/tracing"
)

const (
	registryName   = "ToolRegistry"
	registryTracer = "tools.registry"
)

// Registry dispatches tool calls by name and converts failures into the
// uniform error payload. Every invocation gets an id for log and trace
// correlation.
type Registry struct {
	logger *zap.Logger
	tracer trace.Tracer
	tools  map[string]Tool
}

type RegistryParams struct {
	fx.In

	Logger      *zap.Logger
	VisibleText *VisibleTextTool
	VisibleHTML *VisibleHTMLTool
	TagElements *TagElementsTool
	Locators    *ElementLocatorsTool
	ExpectText  *ExpectTextTool
}

func NewRegistry(params RegistryParams) *Registry {
	registry := &Registry{
		logger: params.Logger.With(zap.String(logg.Layer, registryName)),
		tracer: otel.Tracer(registryTracer),
		tools:  make(map[string]Tool),
	}

	for _, tool := range []Tool{
		params.VisibleText,
		params.VisibleHTML,
		params.TagElements,
		params.Locators,
		params.ExpectText,
	} {
		registry.tools[tool.Name()] = tool
	}

	return registry
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]

	return tool, ok
}

// Call runs the named tool and always returns a payload: tool errors
// are reported to the caller, never propagated as process failures.
func (r *Registry) Call(ctx context.Context, name string, args entity.Args) entity.Result {
	const op = "Call"

	invocationID := uuid.New().String()
	logger := r.logger.With(
		zap.String(logg.Operation, op),
		zap.String(logg.Tool, name),
		zap.String(logg.InvocationID, invocationID),
	)

	ctx, step := tracing.StartSpan(ctx, r.tracer, logger, op,
		attribute.String("tool", name),
		attribute.String("invocation_id", invocationID))

	tool, ok := r.tools[name]
	if !ok {
		err := fmt.Errorf("unknown tool: %s", name)
		step.End(err)

		return entity.Failure(err.Error())
	}

	logger.Info("Running tool")

	text, err := tool.Execute(ctx, args)
	step.End(err)

	if err != nil {
		logger.Warn("Tool failed", zap.Error(err))

		return entity.Failure(err.Error())
	}

	return entity.Success(text)
}
