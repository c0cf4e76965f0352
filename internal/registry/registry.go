// Package registry implements the tool registry (C5): a name -> (schema,
// handler) map with JSON-schema argument validation, frozen after
// initialization so concurrent lookups need no lock.
package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"

	"github.com/tolga/terp/internal/jsonrpc"
)

// Handler executes one tool call against already-validated arguments.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Tool is one registered name -> (description, schema, handler) entry.
type Tool struct {
	Name        string
	Description string
	Schema      *spec.Schema
	Handler     Handler
}

// Registry is a frozen, read-only-after-build tool map satisfying
// jsonrpc.ToolRegistry.
type Registry struct {
	tools map[string]Tool
	order []string
}

// New creates an empty Registry. Call Register for each tool, then stop
// mutating it before handing it to the dispatcher: nothing here
// synchronizes concurrent Register/Call access.
func New() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds one tool. Registering the same name twice overwrites
// the earlier entry but keeps its original position in tools/list order.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.tools[t.Name] = t
}

// List implements jsonrpc.ToolRegistry.
func (r *Registry) List() []jsonrpc.ToolDescriptor {
	out := make([]jsonrpc.ToolDescriptor, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		out = append(out, jsonrpc.ToolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.Schema,
		})
	}
	return out
}

// Call implements jsonrpc.ToolRegistry: validates arguments against the
// tool's schema, then invokes its handler.
func (r *Registry) Call(ctx context.Context, name string, arguments json.RawMessage) (any, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, jsonrpc.NewError(jsonrpc.KindUnknownTool, fmt.Sprintf("Unknown tool: %s", name))
	}

	args := map[string]any{}
	if len(arguments) > 0 {
		if err := json.Unmarshal(arguments, &args); err != nil {
			return nil, jsonrpc.NewError(jsonrpc.KindInvalidArgument, fmt.Sprintf("arguments must be a JSON object: %v", err))
		}
	}

	if tool.Schema != nil {
		if err := validate.AgainstSchema(tool.Schema, args, strfmt.Default); err != nil {
			return nil, jsonrpc.NewError(jsonrpc.KindInvalidArgument, err.Error())
		}
	}

	return tool.Handler(ctx, args)
}
