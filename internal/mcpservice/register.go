package mcpservice

import (
	"context"

	"github.com/tolga/terp/internal/registry"
)

// descriptions carries the human-readable summary shown by tools/list
// for each entry in the public catalog.
var descriptions = map[string]string{
	registry.ToolConsultarEmpleados:         "Consulta el directorio de empleados con filtros opcionales de estado, restaurante y departamento.",
	registry.ToolBuscarEmpleado:             "Busca empleados por codigo, nombre o apellido.",
	registry.ToolConsultarRegistrosFecha:    "Consulta los registros de marcacion de un dia especifico.",
	registry.ToolConsultarRegistrosRango:    "Consulta los registros de marcacion dentro de un rango de fechas.",
	registry.ToolCalcularHorasTrabajadasDia: "Calcula las horas trabajadas de un empleado en una fecha, clasificadas por categoria laboral.",
	registry.ToolReporteHorasSemanal:        "Genera el reporte semanal de horas trabajadas por empleado.",
	registry.ToolReporteHorasMensual:        "Genera el reporte mensual de horas trabajadas por empleado.",
	registry.ToolEstadisticasAsistencia:     "Genera estadisticas de asistencia agrupadas por punto de trabajo.",
	registry.ToolEmpleadosSinSalida:         "Lista los empleados con una entrada registrada y sin salida en la fecha consultada.",
	registry.ToolObtenerUltimoRegistro:      "Obtiene el ultimo registro de marcacion de un empleado y la siguiente accion esperada.",
	registry.ToolObtenerConfiguracion:       "Consulta los valores de configuracion del sistema, opcionalmente filtrados por clave.",
	registry.ToolResumenNominaQuincenal:     "Genera el resumen de nomina quincenal, incluyendo la valoracion monetaria de las horas trabajadas.",
}

// Register builds a tool registry carrying the twelve handlers this
// service implements, bound to their JSON-schema and description.
func Register(s *Service) *registry.Registry {
	r := registry.New()
	schemas := registry.Schemas()

	handlers := map[string]registry.Handler{
		registry.ToolConsultarEmpleados:         s.ConsultarEmpleados,
		registry.ToolBuscarEmpleado:             s.BuscarEmpleado,
		registry.ToolConsultarRegistrosFecha:    s.ConsultarRegistrosFecha,
		registry.ToolConsultarRegistrosRango:    s.ConsultarRegistrosRango,
		registry.ToolCalcularHorasTrabajadasDia: s.CalcularHorasTrabajadasDia,
		registry.ToolReporteHorasSemanal:        s.ReporteHorasSemanal,
		registry.ToolReporteHorasMensual:        s.ReporteHorasMensual,
		registry.ToolEstadisticasAsistencia:     s.EstadisticasAsistencia,
		registry.ToolEmpleadosSinSalida:         s.EmpleadosSinSalida,
		registry.ToolObtenerUltimoRegistro:      s.ObtenerUltimoRegistro,
		registry.ToolObtenerConfiguracion:       s.ObtenerConfiguracion,
		registry.ToolResumenNominaQuincenal:     s.ResumenNominaQuincenal,
	}

	// Registration order fixes tools/list order; this list is the
	// catalog's canonical ordering.
	order := []string{
		registry.ToolConsultarEmpleados,
		registry.ToolBuscarEmpleado,
		registry.ToolConsultarRegistrosFecha,
		registry.ToolConsultarRegistrosRango,
		registry.ToolCalcularHorasTrabajadasDia,
		registry.ToolReporteHorasSemanal,
		registry.ToolReporteHorasMensual,
		registry.ToolEstadisticasAsistencia,
		registry.ToolEmpleadosSinSalida,
		registry.ToolObtenerUltimoRegistro,
		registry.ToolObtenerConfiguracion,
		registry.ToolResumenNominaQuincenal,
	}

	for _, name := range order {
		r.Register(registry.Tool{
			Name:        name,
			Description: descriptions[name],
			Schema:      schemas[name],
			Handler:     guarded(s, handlers[name]),
		})
	}

	return r
}

// guarded wraps a handler so it fails fast with DB_UNAVAILABLE instead
// of calling into a repository backed by a pool that never connected.
func guarded(s *Service, h registry.Handler) registry.Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		if err := s.checkAvailable(); err != nil {
			return nil, err
		}
		return h(ctx, args)
	}
}
