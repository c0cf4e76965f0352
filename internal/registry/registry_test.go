package registry_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/terp/internal/jsonrpc"
	"github.com/tolga/terp/internal/registry"
)

func TestRegistry_List_PreservesRegistrationOrder(t *testing.T) {
	r := registry.New()
	r.Register(registry.Tool{Name: "b", Description: "second"})
	r.Register(registry.Tool{Name: "a", Description: "first"})

	descriptors := r.List()
	require.Len(t, descriptors, 2)
	assert.Equal(t, "b", descriptors[0].Name)
	assert.Equal(t, "a", descriptors[1].Name)
}

func TestRegistry_Call_UnknownTool(t *testing.T) {
	r := registry.New()
	_, err := r.Call(context.Background(), "does_not_exist", nil)
	require.Error(t, err)

	rpcErr, ok := err.(*jsonrpc.Error)
	require.True(t, ok)
	assert.Equal(t, jsonrpc.KindUnknownTool, rpcErr.Kind)
}

func TestRegistry_Call_MissingRequiredArgument(t *testing.T) {
	r := registry.New()
	schemas := registry.Schemas()
	called := false
	r.Register(registry.Tool{
		Name:   registry.ToolBuscarEmpleado,
		Schema: schemas[registry.ToolBuscarEmpleado],
		Handler: func(_ context.Context, _ map[string]any) (any, error) {
			called = true
			return map[string]any{}, nil
		},
	})

	_, err := r.Call(context.Background(), registry.ToolBuscarEmpleado, json.RawMessage(`{}`))
	require.Error(t, err)
	assert.False(t, called)

	rpcErr, ok := err.(*jsonrpc.Error)
	require.True(t, ok)
	assert.Equal(t, jsonrpc.KindInvalidArgument, rpcErr.Kind)
}

func TestRegistry_Call_OutOfRangeInteger(t *testing.T) {
	r := registry.New()
	schemas := registry.Schemas()
	r.Register(registry.Tool{
		Name:   registry.ToolReporteHorasMensual,
		Schema: schemas[registry.ToolReporteHorasMensual],
		Handler: func(_ context.Context, _ map[string]any) (any, error) {
			return map[string]any{}, nil
		},
	})

	_, err := r.Call(context.Background(), registry.ToolReporteHorasMensual, json.RawMessage(`{"anio":2025,"mes":13}`))
	require.Error(t, err)
}

func TestRegistry_Call_ValidArguments(t *testing.T) {
	r := registry.New()
	schemas := registry.Schemas()
	r.Register(registry.Tool{
		Name:   registry.ToolReporteHorasMensual,
		Schema: schemas[registry.ToolReporteHorasMensual],
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			return args, nil
		},
	})

	result, err := r.Call(context.Background(), registry.ToolReporteHorasMensual, json.RawMessage(`{"anio":2025,"mes":12}`))
	require.NoError(t, err)
	assert.NotNil(t, result)
}
