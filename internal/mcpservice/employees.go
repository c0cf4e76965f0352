package mcpservice

import (
	"context"
	"fmt"

	"github.com/tolga/terp/internal/jsonrpc"
	"github.com/tolga/terp/internal/repository"
)

// ConsultarEmpleados implements consultar_empleados: lists employees
// with optional activo/restaurante/departamento filters.
func (s *Service) ConsultarEmpleados(ctx context.Context, args map[string]any) (any, error) {
	activosSolo := boolArg(args, "solo_activos", true)
	restaurante := stringArg(args, "restaurante")
	departamento := stringArg(args, "departamento")

	employees, err := s.Employees.List(ctx, repository.EmployeeFilter{
		ActiveOnly: activosSolo,
		WorkSite:   restaurante,
		Department: departamento,
	})
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to list employees: %v", err))
	}

	out := make([]map[string]any, 0, len(employees))
	for _, e := range employees {
		out = append(out, map[string]any{
			"id":                e.ID.String(),
			"codigo_empleado":   e.Code,
			"nombre_completo":   e.FullName(),
			"nombre":            e.FirstName,
			"apellido":          e.LastName,
			"email":             e.Email,
			"telefono":          e.Phone,
			"departamento":      e.Department,
			"cargo":             e.Role,
			"punto_trabajo":     e.WorkSite,
			"liquida_dominical": e.LiquidatesSunday,
			"dia_descanso":      e.RestDay,
			"activo":            e.Active,
		})
	}

	return map[string]any{
		"total": len(out),
		"filtros": map[string]any{
			"activos_solo": activosSolo,
			"restaurante":  nilIfEmpty(restaurante),
			"departamento": nilIfEmpty(departamento),
		},
		"empleados": out,
	}, nil
}

// BuscarEmpleado implements buscar_empleado: exact-code-match-wins
// search over code/name/surname.
func (s *Service) BuscarEmpleado(ctx context.Context, args map[string]any) (any, error) {
	termino := stringArg(args, "termino")
	if termino == "" {
		return nil, jsonrpc.NewError(jsonrpc.KindInvalidArgument, "termino is required")
	}

	employees, err := s.Employees.Search(ctx, termino)
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to search employees: %v", err))
	}

	out := make([]map[string]any, 0, len(employees))
	for _, e := range employees {
		out = append(out, map[string]any{
			"id":              e.ID.String(),
			"codigo_empleado": e.Code,
			"nombre_completo": e.FullName(),
			"cargo":           e.Role,
			"departamento":    e.Department,
			"punto_trabajo":   e.WorkSite,
			"activo":          e.Active,
		})
	}

	return map[string]any{
		"termino_busqueda": termino,
		"resultados":       len(out),
		"empleados":        out,
	}, nil
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
