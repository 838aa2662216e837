package apperr

import (
	"errors"
	"fmt"
)

const (
	MetaReason   = "reason"
	MetaStage    = "stage"
	MetaField    = "field"
	MetaTool     = "tool"
	MetaSelector = "selector"
	MetaTagID    = "tag_id"
	MetaPath     = "path"

	StageBrowser    = "browser"
	StageEvaluation = "evaluation"
	StageConfig     = "config"
	StageSanitize   = "sanitize"
	StageRender     = "render"

	CodeInternal         = "internal"
	CodeInvalidArgument  = "invalid_argument"
	CodeTimeout          = "timeout"
	CodeConnectivity     = "connectivity"
	CodePageUnavailable  = "page_unavailable"
	CodeSelectorNotFound = "selector_not_found"
	CodeConfiguration    = "configuration"
	CodeEvaluation       = "evaluation"
)

type Error struct {
	Op       string
	Code     string
	Err      error
	Metadata map[string]any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Wrap(op, code string, err error, metadata map[string]any) error {
	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &Error{
		Op:       op,
		Code:     code,
		Err:      err,
		Metadata: metadata,
	}
}

func WrapWithReason(op, code string, err error, reason string) error {
	return Wrap(op, code, err, map[string]any{
		MetaReason: reason,
	})
}

func WrapErrorWithReason(op, code, reason string) error {
	return Wrap(op, code, errors.New(reason), map[string]any{
		MetaReason: reason,
	})
}

func InvalidReqError(op, field string, err error) error {
	return Wrap(op, CodeInvalidArgument, err, map[string]any{
		MetaField:  field,
		MetaReason: "invalid_request",
	})
}

func SelectorNotFoundError(op, selector string) error {
	return Wrap(op, CodeSelectorNotFound, fmt.Errorf("no element matches selector: %s", selector), map[string]any{
		MetaReason:   "selector_not_found",
		MetaSelector: selector,
	})
}

func ConfigurationError(op string, err error, path string) error {
	return Wrap(op, CodeConfiguration, err, map[string]any{
		MetaReason: "invalid_configuration",
		MetaStage:  StageConfig,
		MetaPath:   path,
	})
}

func EvaluationError(op string, err error) error {
	return Wrap(op, CodeEvaluation, err, map[string]any{
		MetaReason: "evaluation_failed",
		MetaStage:  StageEvaluation,
	})
}

// CodeOf returns the code of the outermost apperr in the chain,
// or CodeInternal for foreign errors.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}
