package mcpservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tolga/terp/internal/calculation"
	"github.com/tolga/terp/internal/jsonrpc"
	"github.com/tolga/terp/internal/model"
	"github.com/tolga/terp/internal/repository"
	"github.com/tolga/terp/internal/timeutil"
)

var meses = [...]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// limiteSemanal is the weekly hour ceiling that triggers the overage
// alert in reporte_horas_semanal.
const limiteSemanal = 48.0

// CalcularHorasTrabajadasDia implements calcular_horas_trabajadas_dia.
func (s *Service) CalcularHorasTrabajadasDia(ctx context.Context, args map[string]any) (any, error) {
	empleadoID, err := requiredUUIDArg(args, "empleado_id")
	if err != nil {
		return nil, err
	}
	fecha, err := requiredDateArg(args, "fecha", s.Location)
	if err != nil {
		return nil, err
	}

	employee, err := s.Employees.GetByID(ctx, empleadoID)
	if err != nil {
		return map[string]any{"error": fmt.Sprintf("Empleado %s no encontrado", empleadoID)}, nil
	}

	events, err := s.Punches.PunchesForEmployeeInRange(ctx, empleadoID, fecha, fecha)
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to load punches: %v", err))
	}
	if len(events) == 0 {
		return map[string]any{
			"empleado_id":      empleadoID.String(),
			"empleado_nombre":  employee.FullName(),
			"fecha":            fecha.Format(dateLayout),
			"mensaje":          "No hay registros para esta fecha",
			"horas_trabajadas": 0,
		}, nil
	}

	totals := calculation.Classify(events, fecha)
	out := dayTotalsJSON(fecha.Format(dateLayout), totals)
	out["empleado_id"] = empleadoID.String()
	out["empleado_nombre"] = employee.FullName()
	out["liquida_dominical"] = employee.LiquidatesSunday

	registros := make([]map[string]any, 0, len(events))
	for _, e := range events {
		registros = append(registros, map[string]any{
			"tipo": string(e.EventKind),
			"hora": e.TimeOfDay.Format("15:04:05"),
			"obs":  observationString(e.Observations),
		})
	}
	out["registros"] = registros

	return out, nil
}

func observationString(o *string) any {
	if o == nil {
		return nil
	}
	return *o
}

// ReporteHorasSemanal implements reporte_horas_semanal.
func (s *Service) ReporteHorasSemanal(ctx context.Context, args map[string]any) (any, error) {
	reference := s.now()
	if raw := stringArg(args, "fecha_semana"); raw != "" {
		parsed, err := requiredDateArg(args, "fecha_semana", s.Location)
		if err != nil {
			return nil, err
		}
		reference = parsed
	}
	empleadoID, err := optionalUUIDArg(args, "empleado_id")
	if err != nil {
		return nil, err
	}
	restaurante := stringArg(args, "restaurante")

	employees, err := s.employeesInScope(ctx, empleadoID, restaurante)
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := timeutil.WeekRange(reference)

	reportes, err := calculation.FanOutPeriodReports(ctx, employees, func(ctx context.Context, employee model.Employee) (calculation.PeriodTotals, error) {
		totals, _, err := calculation.WeekReport(ctx, s.Punches, employee, reference, calculation.Rates{})
		return totals, err
	})
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to build weekly report: %v", err))
	}

	out := make([]map[string]any, 0, len(reportes))
	for i, totals := range reportes {
		employee := employees[i]

		dias := make([]map[string]any, 0, 7)
		for d := weekStart; !d.After(weekEnd); d = d.AddDate(0, 0, 1) {
			key := d.Format(dateLayout)
			dayJSON := dayTotalsJSON(key, totals.Days[key])
			dias = append(dias, dayJSON)
		}

		horasExceso := 0.0
		if totals.HoursWorked > limiteSemanal {
			horasExceso = round2(totals.HoursWorked - limiteSemanal)
		}

		out = append(out, map[string]any{
			"empleado_id":   employee.ID.String(),
			"codigo":        employee.Code,
			"nombre":        employee.FullName(),
			"semana_inicio": weekStart.Format(dateLayout),
			"semana_fin":    weekEnd.Format(dateLayout),
			"dias":          dias,
			"totales": map[string]any{
				"horas_trabajadas":       totals.HoursWorked,
				"horas_ordinarias":       totals.Ordinary,
				"horas_extra_diurna":     totals.OvertimeDay,
				"horas_extra_nocturna":   totals.OvertimeNight,
				"horas_recargo_nocturno": totals.NightSurcharge,
				"horas_dominical":        totals.Sunday,
			},
			"alerta_exceso": totals.HoursWorked > limiteSemanal,
			"horas_exceso":  horasExceso,
		})
	}

	return map[string]any{
		"semana": map[string]any{
			"inicio": weekStart.Format(dateLayout),
			"fin":    weekEnd.Format(dateLayout),
		},
		"filtros": map[string]any{
			"empleado_id": uuidOrNil(empleadoID),
			"restaurante": nilIfEmpty(restaurante),
		},
		"total_empleados": len(out),
		"reportes":        out,
	}, nil
}

// ReporteHorasMensual implements reporte_horas_mensual.
func (s *Service) ReporteHorasMensual(ctx context.Context, args map[string]any) (any, error) {
	anio, err := requiredIntArg(args, "anio")
	if err != nil {
		return nil, err
	}
	mes, err := requiredIntArg(args, "mes")
	if err != nil {
		return nil, err
	}
	if mes < 1 || mes > 12 {
		return nil, jsonrpc.NewError(jsonrpc.KindInvalidArgument, "mes must be between 1 and 12")
	}
	empleadoID, err := optionalUUIDArg(args, "empleado_id")
	if err != nil {
		return nil, err
	}
	restaurante := stringArg(args, "restaurante")

	employees, err := s.employeesInScope(ctx, empleadoID, restaurante)
	if err != nil {
		return nil, err
	}

	start, end := timeutil.MonthRange(anio, monthOf(mes), s.Location)

	reportes, err := calculation.FanOutPeriodReports(ctx, employees, func(ctx context.Context, employee model.Employee) (calculation.PeriodTotals, error) {
		return calculation.MonthReport(ctx, s.Punches, employee, anio, monthOf(mes), s.Location, calculation.Rates{})
	})
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to build monthly report: %v", err))
	}

	periodo := fmt.Sprintf("%s %d", meses[mes], anio)

	out := make([]map[string]any, 0, len(reportes))
	for i, totals := range reportes {
		employee := employees[i]
		out = append(out, map[string]any{
			"empleado_id":  employee.ID.String(),
			"codigo":       employee.Code,
			"nombre":       employee.FullName(),
			"cargo":        employee.Role,
			"departamento": employee.Department,
			"periodo":      periodo,
			"resumen": map[string]any{
				"dias_trabajados":      totals.DaysWorked,
				"total_horas":          totals.HoursWorked,
				"horas_ordinarias":     totals.Ordinary,
				"horas_extra_diurna":   totals.OvertimeDay,
				"horas_extra_nocturna": totals.OvertimeNight,
				"recargo_nocturno":     totals.NightSurcharge,
				"horas_dominical":      totals.Sunday,
			},
		})
	}

	return map[string]any{
		"periodo": periodo,
		"rango": map[string]any{
			"inicio": start.Format(dateLayout),
			"fin":    end.Format(dateLayout),
		},
		"filtros": map[string]any{
			"empleado_id": uuidOrNil(empleadoID),
			"restaurante": nilIfEmpty(restaurante),
		},
		"total_empleados": len(out),
		"reportes":        out,
	}, nil
}

// EstadisticasAsistencia implements estadisticas_asistencia.
func (s *Service) EstadisticasAsistencia(ctx context.Context, args map[string]any) (any, error) {
	inicio, err := requiredDateArg(args, "fecha_inicio", s.Location)
	if err != nil {
		return nil, err
	}
	fin, err := requiredDateArg(args, "fecha_fin", s.Location)
	if err != nil {
		return nil, err
	}
	restaurante := stringArg(args, "restaurante")

	sites, err := s.Punches.AttendanceStatsByRange(ctx, inicio, fin, restaurante)
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to query attendance stats: %v", err))
	}
	uniqueEmployees, err := s.Punches.UniqueEmployeeCount(ctx, inicio, fin, restaurante)
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to count unique employees: %v", err))
	}

	porRestaurante := make([]map[string]any, 0, len(sites))
	var totalRegistros, entradas, salidas, forzados int64
	for _, site := range sites {
		totalRegistros += site.TotalPunches
		entradas += site.Entries
		salidas += site.Exits
		forzados += site.Forced
		porRestaurante = append(porRestaurante, map[string]any{
			"restaurante": site.WorkSite,
			"registros":   site.TotalPunches,
			"empleados":   site.UniqueEmployees,
		})
	}

	return map[string]any{
		"periodo": map[string]any{
			"inicio": inicio.Format(dateLayout),
			"fin":    fin.Format(dateLayout),
		},
		"totales": map[string]any{
			"total_registros":    totalRegistros,
			"empleados_unicos":   uniqueEmployees,
			"entradas":           entradas,
			"salidas":            salidas,
			"registros_forzados": forzados,
		},
		"por_restaurante": porRestaurante,
	}, nil
}

// ObtenerConfiguracion implements obtener_configuracion.
func (s *Service) ObtenerConfiguracion(ctx context.Context, args map[string]any) (any, error) {
	clave := stringArg(args, "clave")
	if clave != "" {
		entry, err := s.Config.ByKey(ctx, clave)
		if err == nil {
			return map[string]any{
				"clave":       entry.Key,
				"valor":       entry.Value,
				"descripcion": entry.Description,
				"tipo_dato":   entry.TypeTag,
			}, nil
		}
	}

	entries, err := s.Config.All(ctx)
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to list configuration: %v", err))
	}

	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{
			"clave":       e.Key,
			"valor":       e.Value,
			"descripcion": e.Description,
			"tipo_dato":   e.TypeTag,
		})
	}

	return map[string]any{
		"total":           len(out),
		"configuraciones": out,
	}, nil
}

// employeesInScope resolves the employee set a period report or
// valuation should run over: a single employee when empleadoID is
// given, otherwise every active employee matching restaurante.
func (s *Service) employeesInScope(ctx context.Context, empleadoID *uuid.UUID, restaurante string) ([]model.Employee, error) {
	if empleadoID != nil {
		employee, err := s.Employees.GetByID(ctx, *empleadoID)
		if err != nil {
			return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to load employee: %v", err))
		}
		return []model.Employee{*employee}, nil
	}

	employees, err := s.Employees.List(ctx, repository.EmployeeFilter{ActiveOnly: true, WorkSite: restaurante})
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to list employees: %v", err))
	}
	return employees, nil
}

func monthOf(m int) time.Month {
	return time.Month(m)
}
