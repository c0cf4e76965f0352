package mcpservice

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tolga/terp/internal/calculation"
	"github.com/tolga/terp/internal/jsonrpc"
	"github.com/tolga/terp/internal/model"
	"github.com/tolga/terp/internal/timeutil"
)

// ResumenNominaQuincenal implements resumen_nomina_quincenal: the
// fortnight payroll summary. Each employee's valuation is the sum of
// the per-day valuations the aggregator computed against the
// configured hourly rates.
func (s *Service) ResumenNominaQuincenal(ctx context.Context, args map[string]any) (any, error) {
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
	quincena, err := requiredIntArg(args, "quincena")
	if err != nil {
		return nil, err
	}
	if quincena != 1 && quincena != 2 {
		return nil, jsonrpc.NewError(jsonrpc.KindInvalidArgument, "quincena must be 1 or 2")
	}
	restaurante := stringArg(args, "restaurante")

	rateEntries, err := s.Config.RatesMap(ctx)
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to load configured rates: %v", err))
	}
	rates := calculation.RatesFromConfig(rateEntries)

	employees, err := s.employeesInScope(ctx, nil, restaurante)
	if err != nil {
		return nil, err
	}

	var start, end time.Time
	reportes, err := calculation.FanOutPeriodReports(ctx, employees, func(ctx context.Context, employee model.Employee) (calculation.PeriodTotals, error) {
		totals, rangeErr := calculation.QuincenaReport(ctx, s.Punches, employee, anio, monthOf(mes), quincena, s.Location, rates)
		return totals, rangeErr
	})
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindDBUnavailable, fmt.Sprintf("failed to build quincena report: %v", err))
	}
	start, end, err = timeutil.QuincenaRange(anio, monthOf(mes), quincena, s.Location)
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindInvalidInterval, err.Error())
	}

	periodo := fmt.Sprintf("Quincena %d - %s %d", quincena, meses[mes], anio)

	out := make([]map[string]any, 0, len(reportes))
	for i, totals := range reportes {
		employee := employees[i]

		horas := map[string]any{
			"ordinarias":       totals.Ordinary,
			"extra_diurna":     totals.OvertimeDay,
			"extra_nocturna":   totals.OvertimeNight,
			"recargo_nocturno": totals.NightSurcharge,
			"dominical":        0.0,
		}
		if employee.LiquidatesSunday {
			horas["dominical"] = totals.Sunday
		}

		valores := valuationJSON(totals.Valuation)

		out = append(out, map[string]any{
			"empleado_id":     employee.ID.String(),
			"codigo":          employee.Code,
			"nombre":          employee.FullName(),
			"cargo":           employee.Role,
			"departamento":    employee.Department,
			"dias_trabajados": totals.DaysWorked,
			"horas":           horas,
			"valores":         valores,
			"detalle_dias":    detalleDiasFor(totals),
		})
	}

	return map[string]any{
		"periodo":  periodo,
		"quincena": quincena,
		"rango": map[string]any{
			"inicio": start.Format(dateLayout),
			"fin":    end.Format(dateLayout),
		},
		"filtros": map[string]any{
			"restaurante": nilIfEmpty(restaurante),
		},
		"total_empleados": len(out),
		"reportes":        out,
	}, nil
}

// detalleDiasFor renders the one-entry-per-worked-day breakdown
// nomina reports carry: the first interval's entry time, the last
// interval's exit time, and the day's worked hours, for every date in
// the period that has at least one interval.
func detalleDiasFor(totals calculation.PeriodTotals) []map[string]any {
	keys := make([]string, 0, len(totals.Days))
	for key, day := range totals.Days {
		if len(day.Intervals) > 0 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := make([]map[string]any, 0, len(keys))
	for _, key := range keys {
		day := totals.Days[key]
		first := day.Intervals[0]
		last := day.Intervals[len(day.Intervals)-1]
		out = append(out, map[string]any{
			"fecha":   key,
			"entrada": timeutil.MinutesToString(first.EntryMinutes),
			"salida":  timeutil.MinutesToString(last.ExitMinutes),
			"horas":   day.HoursWorked,
		})
	}
	return out
}
