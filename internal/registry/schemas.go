package registry

import "github.com/go-openapi/spec"

// Tool names are part of the public contract; they are never renamed.
const (
	ToolConsultarEmpleados         = "consultar_empleados"
	ToolBuscarEmpleado             = "buscar_empleado"
	ToolConsultarRegistrosFecha    = "consultar_registros_fecha"
	ToolConsultarRegistrosRango    = "consultar_registros_rango"
	ToolCalcularHorasTrabajadasDia = "calcular_horas_trabajadas_dia"
	ToolReporteHorasSemanal        = "reporte_horas_semanal"
	ToolReporteHorasMensual        = "reporte_horas_mensual"
	ToolEstadisticasAsistencia     = "estadisticas_asistencia"
	ToolEmpleadosSinSalida         = "empleados_sin_salida"
	ToolObtenerUltimoRegistro      = "obtener_ultimo_registro"
	ToolObtenerConfiguracion       = "obtener_configuracion"
	ToolResumenNominaQuincenal     = "resumen_nomina_quincenal"
)

func stringSchema() spec.Schema {
	return spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{"string"}}}
}

func dateSchema() spec.Schema {
	return spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{"string"}, Format: "date"}}
}

func uuidSchema() spec.Schema {
	return spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{"string"}, Format: "uuid"}}
}

func intSchema() spec.Schema {
	return spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{"integer"}}}
}

func intRangeSchema(min, max float64) spec.Schema {
	s := intSchema()
	s.Minimum = &min
	s.Maximum = &max
	return s
}

func enumIntSchema(values ...float64) spec.Schema {
	s := intSchema()
	for _, v := range values {
		s.Enum = append(s.Enum, v)
	}
	return s
}

func enumStringSchema(values ...string) spec.Schema {
	s := stringSchema()
	for _, v := range values {
		s.Enum = append(s.Enum, v)
	}
	return s
}

func objectSchema(required []string, properties map[string]spec.Schema) *spec.Schema {
	return &spec.Schema{
		SchemaProps: spec.SchemaProps{
			Type:       []string{"object"},
			Properties: properties,
			Required:   required,
		},
	}
}

// tipoRegistroSchema is the ENTRADA/SALIDA event-kind filter shared by
// every tool that accepts it.
func tipoRegistroSchema() spec.Schema {
	return enumStringSchema("ENTRADA", "SALIDA")
}

// commonFilters are the optional-filter arguments spec.md §6 says every
// tool accepts where relevant: empleado_id, restaurante, departamento,
// tipo.
func commonFilters(props map[string]spec.Schema) map[string]spec.Schema {
	props["empleado_id"] = uuidSchema()
	props["restaurante"] = stringSchema()
	props["departamento"] = stringSchema()
	props["tipo"] = tipoRegistroSchema()
	return props
}

// Schemas returns the input-validation schema for every tool in the
// public catalog, keyed by tool name.
func Schemas() map[string]*spec.Schema {
	return map[string]*spec.Schema{
		ToolConsultarEmpleados: objectSchema(nil, commonFilters(map[string]spec.Schema{
			"solo_activos": {SchemaProps: spec.SchemaProps{Type: []string{"boolean"}}},
		})),
		ToolBuscarEmpleado: objectSchema([]string{"termino"}, map[string]spec.Schema{
			"termino": stringSchema(),
		}),
		ToolConsultarRegistrosFecha: objectSchema([]string{"fecha"}, commonFilters(map[string]spec.Schema{
			"fecha": dateSchema(),
		})),
		ToolConsultarRegistrosRango: objectSchema([]string{"fecha_inicio", "fecha_fin"}, commonFilters(map[string]spec.Schema{
			"fecha_inicio": dateSchema(),
			"fecha_fin":    dateSchema(),
		})),
		ToolCalcularHorasTrabajadasDia: objectSchema([]string{"empleado_id", "fecha"}, map[string]spec.Schema{
			"empleado_id": uuidSchema(),
			"fecha":       dateSchema(),
		}),
		ToolReporteHorasSemanal: objectSchema(nil, commonFilters(map[string]spec.Schema{
			"fecha_semana": dateSchema(),
		})),
		ToolReporteHorasMensual: objectSchema([]string{"anio", "mes"}, commonFilters(map[string]spec.Schema{
			"anio": intRangeSchema(2000, 2100),
			"mes":  intRangeSchema(1, 12),
		})),
		ToolEstadisticasAsistencia: objectSchema([]string{"fecha_inicio", "fecha_fin"}, map[string]spec.Schema{
			"fecha_inicio": dateSchema(),
			"fecha_fin":    dateSchema(),
			"restaurante":  stringSchema(),
		}),
		ToolEmpleadosSinSalida: objectSchema(nil, map[string]spec.Schema{
			"fecha": dateSchema(),
		}),
		ToolObtenerUltimoRegistro: objectSchema([]string{"empleado_id"}, map[string]spec.Schema{
			"empleado_id": uuidSchema(),
		}),
		ToolObtenerConfiguracion: objectSchema(nil, map[string]spec.Schema{
			"clave": stringSchema(),
		}),
		ToolResumenNominaQuincenal: objectSchema([]string{"anio", "mes", "quincena"}, commonFilters(map[string]spec.Schema{
			"anio":     intRangeSchema(2000, 2100),
			"mes":      intRangeSchema(1, 12),
			"quincena": enumIntSchema(1, 2),
		})),
	}
}
