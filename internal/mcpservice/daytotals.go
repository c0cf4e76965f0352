package mcpservice

import (
	"github.com/tolga/terp/internal/calculation"
	"github.com/tolga/terp/internal/timeutil"
)

// dayTotalsJSON renders a calculation.DayTotals as the horas_dia shape
// the original calcular_horas_dia returned.
func dayTotalsJSON(fecha string, d calculation.DayTotals) map[string]any {
	intervalos := make([]map[string]any, 0, len(d.Intervals))
	for _, iv := range d.Intervals {
		intervalos = append(intervalos, map[string]any{
			"entrada":         timeutil.MinutesToString(iv.EntryMinutes),
			"salida":          timeutil.MinutesToString(iv.ExitMinutes),
			"horas":           iv.TotalHours,
			"horas_nocturnas": iv.NightHours,
			"horas_diurnas":   iv.DayHours,
		})
	}

	return map[string]any{
		"fecha":                  fecha,
		"es_domingo":             d.IsSunday,
		"horas_trabajadas":       d.HoursWorked,
		"horas_ordinarias":       d.HoursOrdinary,
		"horas_extra_diurna":     d.HoursOvertimeDay,
		"horas_extra_nocturna":   d.HoursOvertimeNight,
		"horas_recargo_nocturno": d.HoursNightSurcharge,
		"horas_dominical":        d.HoursSunday,
		"intervalos":             intervalos,
		"total_intervalos":       len(d.Intervals),
	}
}

// valuationJSON renders a calculation.Valuation. The dominical line
// item is taken as-is from v: calculation.Value already zeroes it
// unless the day was a Sunday and the employee liquidates Sunday pay.
func valuationJSON(v calculation.Valuation) map[string]any {
	return map[string]any{
		"ordinarias":       v.Ordinary.InexactFloat64(),
		"extra_diurna":     v.OvertimeDay.InexactFloat64(),
		"extra_nocturna":   v.OvertimeNight.InexactFloat64(),
		"recargo_nocturno": v.NightSurcharge.InexactFloat64(),
		"dominical":        v.Sunday.InexactFloat64(),
		"total":            v.Total.InexactFloat64(),
	}
}
