package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tolga/terp/internal/model"
)

// ErrEmployeeNotFound is returned when a lookup finds no matching row.
var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeFilter holds the optional-filter arguments accepted by
// consultar_empleados: every field left at its zero value is ignored.
type EmployeeFilter struct {
	ActiveOnly bool
	WorkSite   string
	Department string
}

// EmployeeRepository handles employee reads. Employees are owned by
// the live attendance system; the core never creates or mutates them.
type EmployeeRepository struct {
	db *DB
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(db *DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// GetByID retrieves an employee by ID.
func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.GORM.WithContext(ctx).First(&emp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &emp, nil
}

// List lists employees matching filter, sorted by family then given
// name — the consultar_empleados contract. ActiveOnly=false returns
// every employee; the original's sentinel is "activo=FALSE means no
// filter", which this mirrors by making ActiveOnly itself the switch.
func (r *EmployeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error) {
	const query = `
		SELECT id, codigo_empleado, nombre, apellido,
		       COALESCE(email, ''), COALESCE(telefono, ''),
		       COALESCE(departamento, ''), COALESCE(cargo, ''), COALESCE(punto_trabajo, ''),
		       liquida_dominical, dia_descanso, activo, created_at
		FROM empleados
		WHERE (NOT $1 OR activo = TRUE)
		  AND (CAST($2 AS text) IS NULL OR punto_trabajo = $2)
		  AND (CAST($3 AS text) IS NULL OR departamento = $3)
		ORDER BY apellido, nombre
	`

	rows, err := r.db.Pool.Query(ctx, query, filter.ActiveOnly, nullIfEmpty(filter.WorkSite), nullIfEmpty(filter.Department))
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// Search implements buscar_empleado: an exact case-insensitive code
// match sorts first, then a substring match on code/name/surname,
// limited to 20 results.
func (r *EmployeeRepository) Search(ctx context.Context, term string) ([]model.Employee, error) {
	const query = `
		SELECT id, codigo_empleado, nombre, apellido,
		       COALESCE(email, ''), COALESCE(telefono, ''),
		       COALESCE(departamento, ''), COALESCE(cargo, ''), COALESCE(punto_trabajo, ''),
		       liquida_dominical, dia_descanso, activo, created_at
		FROM empleados
		WHERE codigo_empleado ILIKE '%' || $1 || '%'
		   OR nombre ILIKE '%' || $1 || '%'
		   OR apellido ILIKE '%' || $1 || '%'
		ORDER BY
		    CASE WHEN codigo_empleado ILIKE $1 THEN 0 ELSE 1 END,
		    apellido, nombre
		LIMIT 20
	`

	rows, err := r.db.Pool.Query(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func scanEmployee(rows interface{ Scan(...any) error }) (model.Employee, error) {
	var emp model.Employee
	err := rows.Scan(
		&emp.ID, &emp.Code, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone,
		&emp.Department, &emp.Role, &emp.WorkSite, &emp.LiquidatesSunday,
		&emp.RestDay, &emp.Active, &emp.CreatedAt,
	)
	if err != nil {
		return model.Employee{}, fmt.Errorf("failed to scan employee row: %w", err)
	}
	return emp, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
