package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tolga/terp/internal/model"
)

// PunchFilter holds the optional-filter arguments shared by the
// punch-query tools: every field left at its zero value is ignored.
type PunchFilter struct {
	EmployeeID *uuid.UUID
	WorkSite   string
	EventKind  string
}

// PunchEventRepository queries the append-only registros table.
type PunchEventRepository struct {
	db *DB
}

// NewPunchEventRepository creates a new punch event repository.
func NewPunchEventRepository(db *DB) *PunchEventRepository {
	return &PunchEventRepository{db: db}
}

// PunchWithEmployee pairs a punch row with the denormalized employee
// fields consultar_registros_fecha/rango join in.
type PunchWithEmployee struct {
	model.PunchEvent
	EmployeeCode string
	EmployeeName string
	Role         string
	Department   string
}

// ByDate implements consultar_registros_fecha.
func (r *PunchEventRepository) ByDate(ctx context.Context, date time.Time, filter PunchFilter) ([]PunchWithEmployee, error) {
	const query = `
		SELECT
			r.id, r.empleado_id, e.codigo_empleado,
			e.nombre || ' ' || e.apellido, e.cargo, e.departamento,
			r.tipo_registro, r.punto_trabajo, r.fecha_registro, r.hora_registro,
			r.timestamp_registro, r.confianza_reconocimiento, r.observaciones
		FROM registros r
		JOIN empleados e ON r.empleado_id = e.id
		WHERE r.fecha_registro = $1
		  AND (CAST($2 AS uuid) IS NULL OR r.empleado_id = $2)
		  AND (CAST($3 AS text) IS NULL OR r.punto_trabajo ILIKE ('%' || CAST($3 AS text) || '%'))
		  AND (CAST($4 AS text) IS NULL OR r.tipo_registro = $4)
		ORDER BY r.hora_registro
	`

	rows, err := r.db.Pool.Query(ctx, query, date, r.employeeIDParam(filter), nullIfEmpty(filter.WorkSite), nullIfEmpty(filter.EventKind))
	if err != nil {
		return nil, fmt.Errorf("failed to query punches by date: %w", err)
	}
	defer rows.Close()

	return scanPunchesWithEmployee(rows)
}

// ByRange implements consultar_registros_rango.
func (r *PunchEventRepository) ByRange(ctx context.Context, start, end time.Time, filter PunchFilter) ([]PunchWithEmployee, error) {
	const query = `
		SELECT
			r.id, r.empleado_id, e.codigo_empleado,
			e.nombre || ' ' || e.apellido, e.cargo, e.departamento,
			r.tipo_registro, r.punto_trabajo, r.fecha_registro, r.hora_registro,
			r.timestamp_registro, r.confianza_reconocimiento, r.observaciones
		FROM registros r
		JOIN empleados e ON r.empleado_id = e.id
		WHERE r.fecha_registro BETWEEN $1 AND $2
		  AND (CAST($3 AS uuid) IS NULL OR r.empleado_id = $3)
		  AND (CAST($4 AS text) IS NULL OR r.punto_trabajo ILIKE ('%' || CAST($4 AS text) || '%'))
		ORDER BY r.fecha_registro, r.hora_registro
	`

	rows, err := r.db.Pool.Query(ctx, query, start, end, r.employeeIDParam(filter), nullIfEmpty(filter.WorkSite))
	if err != nil {
		return nil, fmt.Errorf("failed to query punches by range: %w", err)
	}
	defer rows.Close()

	return scanPunchesWithEmployee(rows)
}

// PunchesForEmployeeInRange implements calculation.EventSource for
// the C3 aggregator: plain punches (no employee join needed) for one
// employee over an inclusive date range.
func (r *PunchEventRepository) PunchesForEmployeeInRange(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]model.PunchEvent, error) {
	const query = `
		SELECT id, empleado_id, tipo_registro, punto_trabajo, fecha_registro,
		       hora_registro, timestamp_registro, confianza_reconocimiento, observaciones
		FROM registros
		WHERE empleado_id = $1 AND fecha_registro BETWEEN $2 AND $3
		ORDER BY fecha_registro, hora_registro
	`

	rows, err := r.db.Pool.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query punches for employee: %w", err)
	}
	defer rows.Close()

	var events []model.PunchEvent
	for rows.Next() {
		var e model.PunchEvent
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.EventKind, &e.WorkSite, &e.Date,
			&e.TimeOfDay, &e.CreatedAt, &e.Confidence, &e.Observations); err != nil {
			return nil, fmt.Errorf("failed to scan punch row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// LastForEmployee implements obtener_ultimo_registro.
func (r *PunchEventRepository) LastForEmployee(ctx context.Context, employeeID uuid.UUID) (*PunchWithEmployee, error) {
	const query = `
		SELECT
			r.id, r.empleado_id, '' , e.nombre || ' ' || e.apellido, '', '',
			r.tipo_registro, r.punto_trabajo, r.fecha_registro, r.hora_registro,
			r.timestamp_registro, r.confianza_reconocimiento, r.observaciones
		FROM registros r
		JOIN empleados e ON r.empleado_id = e.id
		WHERE r.empleado_id = $1
		ORDER BY r.fecha_registro DESC, r.hora_registro DESC
		LIMIT 1
	`

	row := r.db.Pool.QueryRow(ctx, query, employeeID)
	punch, err := scanPunchWithEmployeeRow(row)
	if err != nil {
		return nil, err
	}
	return &punch, nil
}

func (r *PunchEventRepository) employeeIDParam(filter PunchFilter) any {
	if filter.EmployeeID == nil {
		return nil
	}
	return *filter.EmployeeID
}

type scannableRow interface {
	Scan(...any) error
}

func scanPunchesWithEmployee(rows interface {
	scannableRow
	Next() bool
	Err() error
}) ([]PunchWithEmployee, error) {
	var punches []PunchWithEmployee
	for rows.Next() {
		p, err := scanPunchWithEmployeeRow(rows)
		if err != nil {
			return nil, err
		}
		punches = append(punches, p)
	}
	return punches, rows.Err()
}

func scanPunchWithEmployeeRow(row scannableRow) (PunchWithEmployee, error) {
	var p PunchWithEmployee
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.EmployeeCode, &p.EmployeeName, &p.Role, &p.Department,
		&p.EventKind, &p.WorkSite, &p.Date, &p.TimeOfDay,
		&p.CreatedAt, &p.Confidence, &p.Observations,
	)
	if err != nil {
		return PunchWithEmployee{}, fmt.Errorf("failed to scan punch row: %w", err)
	}
	return p, nil
}
