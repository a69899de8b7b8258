package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/timmy/mememania/internal/domain"
)

// Tool is a named operation callable through tools/call.
type Tool interface {
	Name() string
	Description() string
	InputSchema() *jsonschema.Schema
	// Call executes the tool with JSON-encoded arguments.
	Call(ctx context.Context, args json.RawMessage) (*ToolResult, error)
}

// ToolDefinition is the tools/list view of a Tool.
type ToolDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// Content is a single content block of a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the result of tools/call.
type ToolResult struct {
	Content           []Content   `json:"content"`
	StructuredContent interface{} `json:"structuredContent,omitempty"`
	IsError           bool        `json:"isError"`
}

// TextResult wraps a plain string as a tool result.
func TextResult(text string) *ToolResult {
	return &ToolResult{Content: []Content{{Type: "text", Text: text}}}
}

// StructuredResult encodes v as JSON text and also attaches it as structured content.
func StructuredResult(v interface{}) (*ToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return &ToolResult{
		Content:           []Content{{Type: "text", Text: string(b)}},
		StructuredContent: v,
	}, nil
}

// NoArgs is the argument type of tools that take no parameters.
type NoArgs struct{}

// FuncTool adapts a typed function into a Tool.
// Arguments are decoded over a copy of Defaults and validated with
// `validate` struct tags before Fn runs.
type FuncTool[A any, R any] struct {
	ToolName        string
	ToolDescription string
	Defaults        A
	Fn              func(ctx context.Context, args A) (R, error)

	schema *jsonschema.Schema
}

// NewFuncTool creates a tool whose input schema is reflected from A.
func NewFuncTool[A any, R any](name, description string, defaults A, fn func(ctx context.Context, args A) (R, error)) *FuncTool[A, R] {
	return &FuncTool[A, R]{
		ToolName:        name,
		ToolDescription: description,
		Defaults:        defaults,
		Fn:              fn,
		schema:          reflectSchema(defaults),
	}
}

func (t *FuncTool[A, R]) Name() string {
	return t.ToolName
}

func (t *FuncTool[A, R]) Description() string {
	return t.ToolDescription
}

func (t *FuncTool[A, R]) InputSchema() *jsonschema.Schema {
	return t.schema
}

func (t *FuncTool[A, R]) Call(ctx context.Context, raw json.RawMessage) (*ToolResult, error) {
	args := t.Defaults
	if err := BindArgs(raw, &args); err != nil {
		return nil, err
	}

	out, err := t.Fn(ctx, args)
	if err != nil {
		return nil, err
	}

	if s, ok := any(out).(string); ok {
		return TextResult(s), nil
	}
	return StructuredResult(out)
}

var (
	reflector = &jsonschema.Reflector{
		ExpandedStruct:            true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// reflectSchema builds the input schema of an argument struct.
func reflectSchema(v interface{}) *jsonschema.Schema {
	s := reflector.Reflect(v)
	s.Version = ""
	return s
}

// BindArgs decodes raw JSON arguments into dst and validates the result.
// Failures are reported as *domain.InvalidParameterError.
func BindArgs(raw json.RawMessage, dst interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if trimmed[0] != '{' {
			return &domain.InvalidParameterError{Reason: "arguments must be an object"}
		}
		if err := json.Unmarshal(trimmed, dst); err != nil {
			return decodeError(err)
		}
	}

	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func decodeError(err error) error {
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		return &domain.InvalidParameterError{
			Param:  typeErr.Field,
			Reason: fmt.Sprintf("Input should be a valid %s", typeErr.Type.Kind()),
		}
	}
	return &domain.InvalidParameterError{Reason: err.Error()}
}

func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &domain.InvalidParameterError{Reason: err.Error()}
	}

	fe := verrs[0]
	var reason string
	switch fe.Tag() {
	case "min", "gte":
		reason = "Input should be greater than or equal to " + fe.Param()
	case "max", "lte":
		reason = "Input should be less than or equal to " + fe.Param()
	case "required":
		reason = "Field required"
	default:
		reason = fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return &domain.InvalidParameterError{Param: fe.Field(), Reason: reason}
}
