package mcpservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tolga/terp/internal/jsonrpc"
	"github.com/tolga/terp/internal/repository"
)

func observationsOrNil(p repository.PunchWithEmployee) any {
	if p.Observations == nil {
		return nil
	}
	return *p.Observations
}

func confidenceOrNil(p repository.PunchWithEmployee) any {
	if p.Confidence == nil {
		return nil
	}
	return *p.Confidence
}

// ConsultarRegistrosFecha implements consultar_registros_fecha.
func (s *Service) ConsultarRegistrosFecha(ctx context.Context, args map[string]any) (any, error) {
	fecha, err := requiredDateArg(args, "fecha", s.Location)
	if err != nil {
		return nil, err
	}
	empleadoID, err := optionalUUIDArg(args, "empleado_id")
	if err != nil {
		return nil, err
	}
	restaurante := stringArg(args, "restaurante")
	tipo, err := optionalEventKindArg(args, "tipo")
	if err != nil {
		return nil, err
	}

	punches, err := s.Punches.ByDate(ctx, fecha, repository.PunchFilter{
		EmployeeID: empleadoID,
		WorkSite:   restaurante,
		EventKind:  tipo,
	})
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to query registros: %v", err))
	}

	registros := make([]map[string]any, 0, len(punches))
	for _, p := range punches {
		m := map[string]any{
			"id":              p.ID.String(),
			"empleado_id":     p.EmployeeID.String(),
			"codigo_empleado": p.EmployeeCode,
			"empleado_nombre": p.EmployeeName,
			"cargo":           p.Role,
			"departamento":    p.Department,
			"tipo_registro":   string(p.EventKind),
			"punto_trabajo":   p.WorkSite,
			"fecha_registro":  p.Date.Format(dateLayout),
			"hora_registro":   p.TimeOfDay.Format("15:04:05"),
			"confianza":       confidenceOrNil(p),
			"observaciones":   observationsOrNil(p),
			"forzado":         p.IsForced(),
		}
		registros = append(registros, m)
	}

	return map[string]any{
		"fecha": fecha.Format(dateLayout),
		"filtros": map[string]any{
			"empleado_id": uuidOrNil(empleadoID),
			"restaurante": nilIfEmpty(restaurante),
			"tipo":        nilIfEmpty(tipo),
		},
		"total_registros": len(registros),
		"registros":       registros,
	}, nil
}

// ConsultarRegistrosRango implements consultar_registros_rango.
func (s *Service) ConsultarRegistrosRango(ctx context.Context, args map[string]any) (any, error) {
	inicio, err := requiredDateArg(args, "fecha_inicio", s.Location)
	if err != nil {
		return nil, err
	}
	fin, err := requiredDateArg(args, "fecha_fin", s.Location)
	if err != nil {
		return nil, err
	}
	empleadoID, err := optionalUUIDArg(args, "empleado_id")
	if err != nil {
		return nil, err
	}
	restaurante := stringArg(args, "restaurante")

	punches, err := s.Punches.ByRange(ctx, inicio, fin, repository.PunchFilter{
		EmployeeID: empleadoID,
		WorkSite:   restaurante,
	})
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to query registros: %v", err))
	}

	registros := make([]map[string]any, 0, len(punches))
	for _, p := range punches {
		registros = append(registros, map[string]any{
			"id":              p.ID.String(),
			"empleado_id":     p.EmployeeID.String(),
			"codigo_empleado": p.EmployeeCode,
			"empleado_nombre": p.EmployeeName,
			"tipo_registro":   string(p.EventKind),
			"punto_trabajo":   p.WorkSite,
			"fecha_registro":  p.Date.Format(dateLayout),
			"hora_registro":   p.TimeOfDay.Format("15:04:05"),
			"observaciones":   observationsOrNil(p),
			"forzado":         p.IsForced(),
		})
	}

	return map[string]any{
		"periodo": map[string]any{
			"inicio": inicio.Format(dateLayout),
			"fin":    fin.Format(dateLayout),
		},
		"filtros": map[string]any{
			"empleado_id": uuidOrNil(empleadoID),
			"restaurante": nilIfEmpty(restaurante),
		},
		"total_registros": len(registros),
		"registros":       registros,
	}, nil
}

// ObtenerUltimoRegistro implements obtener_ultimo_registro.
func (s *Service) ObtenerUltimoRegistro(ctx context.Context, args map[string]any) (any, error) {
	empleadoID, err := requiredUUIDArg(args, "empleado_id")
	if err != nil {
		return nil, err
	}

	employee, err := s.Employees.GetByID(ctx, empleadoID)
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to load employee: %v", err))
	}

	last, err := s.Punches.LastForEmployee(ctx, empleadoID)
	if err != nil {
		return map[string]any{
			"empleado_id":      empleadoID.String(),
			"empleado_nombre":  employee.FullName(),
			"ultimo_registro":  nil,
			"siguiente_accion": "ENTRADA",
			"mensaje":          "No hay registros para este empleado",
		}, nil
	}

	siguiente := "ENTRADA"
	if string(last.EventKind) == "ENTRADA" {
		siguiente = "SALIDA"
	}

	return map[string]any{
		"empleado_id":     empleadoID.String(),
		"empleado_nombre": employee.FullName(),
		"ultimo_registro": map[string]any{
			"tipo":          string(last.EventKind),
			"fecha":         last.Date.Format(dateLayout),
			"hora":          last.TimeOfDay.Format("15:04:05"),
			"punto_trabajo": last.WorkSite,
		},
		"siguiente_accion": siguiente,
	}, nil
}

// EmpleadosSinSalida implements empleados_sin_salida.
func (s *Service) EmpleadosSinSalida(ctx context.Context, args map[string]any) (any, error) {
	var fecha = s.now()
	if raw := stringArg(args, "fecha"); raw != "" {
		parsed, err := requiredDateArg(args, "fecha", s.Location)
		if err != nil {
			return nil, err
		}
		fecha = parsed
	}

	missing, err := s.Punches.EmployeesWithoutExit(ctx, fecha)
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to query employees without exit: %v", err))
	}

	empleados := make([]map[string]any, 0, len(missing))
	for _, m := range missing {
		empleados = append(empleados, map[string]any{
			"empleado_id":         m.EmployeeID.String(),
			"codigo_empleado":     m.EmployeeCode,
			"empleado_nombre":     m.EmployeeName,
			"hora_entrada":        m.FirstEntry.Format("15:04:05"),
			"punto_trabajo":       m.WorkSite,
			"horas_transcurridas": round2(m.HoursElapsed),
		})
	}

	return map[string]any{
		"fecha":            fecha.Format(dateLayout),
		"total_sin_salida": len(empleados),
		"empleados":        empleados,
	}, nil
}

func uuidOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}
