package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MissingExit is one row of empleados_sin_salida: an employee with at
// least one ENTRY and no EXIT on the queried date.
type MissingExit struct {
	EmployeeID   uuid.UUID
	EmployeeCode string
	EmployeeName string
	FirstEntry   time.Time
	WorkSite     string
	HoursElapsed float64
}

// EmployeesWithoutExit implements the employees-without-exit anomaly
// query: an entries CTE (earliest ENTRY per employee/site), an exits
// CTE (distinct employees with any EXIT), and a left-anti-join.
func (r *PunchEventRepository) EmployeesWithoutExit(ctx context.Context, date time.Time) ([]MissingExit, error) {
	const query = `
		WITH entradas AS (
			SELECT empleado_id, MIN(hora_registro) AS primera_entrada, punto_trabajo
			FROM registros
			WHERE fecha_registro = $1 AND tipo_registro = 'ENTRADA'
			GROUP BY empleado_id, punto_trabajo
		),
		salidas AS (
			SELECT DISTINCT empleado_id
			FROM registros
			WHERE fecha_registro = $1 AND tipo_registro = 'SALIDA'
		)
		SELECT
			e.id, e.codigo_empleado, e.nombre || ' ' || e.apellido,
			en.primera_entrada, en.punto_trabajo,
			EXTRACT(EPOCH FROM (NOW() - ($1::date + en.primera_entrada))) / 3600
		FROM entradas en
		JOIN empleados e ON en.empleado_id = e.id
		LEFT JOIN salidas s ON en.empleado_id = s.empleado_id
		WHERE s.empleado_id IS NULL
		ORDER BY en.primera_entrada
	`

	rows, err := r.db.Pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees without exit: %w", err)
	}
	defer rows.Close()

	var out []MissingExit
	for rows.Next() {
		var m MissingExit
		if err := rows.Scan(&m.EmployeeID, &m.EmployeeCode, &m.EmployeeName, &m.FirstEntry, &m.WorkSite, &m.HoursElapsed); err != nil {
			return nil, fmt.Errorf("failed to scan missing-exit row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
