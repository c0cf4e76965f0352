package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tolga/terp/internal/model"
	"github.com/tolga/terp/internal/repository"
	"github.com/tolga/terp/internal/testutil"
)

func insertTestPunch(t *testing.T, db *repository.DB, employeeID uuid.UUID, kind model.EventKind, date time.Time, hour, minute int, workSite string) {
	t.Helper()
	ctx := context.Background()

	var id uuid.UUID
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO registros (empleado_id, tipo_registro, punto_trabajo, fecha_registro, hora_registro)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, employeeID, kind, workSite, date, time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Pool.Exec(context.Background(), `DELETE FROM registros WHERE id = $1`, id)
	})
}

func TestPunchEventRepository_ByDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	empRepo := repository.NewEmployeeRepository(db)
	_ = empRepo
	punchRepo := repository.NewPunchEventRepository(db)
	ctx := context.Background()

	employeeID := insertTestEmployee(t, db, "P-"+uuid.New().String()[:8], "Dana", "Soto", "site-a", "ops", true)
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	insertTestPunch(t, db, employeeID, model.EventEntry, date, 8, 0, "site-a")
	insertTestPunch(t, db, employeeID, model.EventExit, date, 17, 0, "site-a")

	punches, err := punchRepo.ByDate(ctx, date, repository.PunchFilter{EmployeeID: &employeeID})
	require.NoError(t, err)
	require.Len(t, punches, 2)
}

func TestPunchEventRepository_PunchesForEmployeeInRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	punchRepo := repository.NewPunchEventRepository(db)
	ctx := context.Background()

	employeeID := insertTestEmployee(t, db, "R-"+uuid.New().String()[:8], "Eva", "Mora", "site-b", "ops", true)
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	insertTestPunch(t, db, employeeID, model.EventEntry, date, 8, 0, "site-b")
	insertTestPunch(t, db, employeeID, model.EventExit, date, 17, 0, "site-b")

	events, err := punchRepo.PunchesForEmployeeInRange(ctx, employeeID, date, date)
	require.NoError(t, err)
	require.Len(t, events, 2)
}

func TestPunchEventRepository_LastForEmployee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	punchRepo := repository.NewPunchEventRepository(db)
	ctx := context.Background()

	employeeID := insertTestEmployee(t, db, "L-"+uuid.New().String()[:8], "Fer", "Nino", "site-c", "ops", true)
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	insertTestPunch(t, db, employeeID, model.EventEntry, date, 8, 0, "site-c")

	last, err := punchRepo.LastForEmployee(ctx, employeeID)
	require.NoError(t, err)
	require.NotNil(t, last)
	require.Equal(t, model.EventEntry, last.EventKind)
}

func TestPunchEventRepository_EmployeesWithoutExit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	punchRepo := repository.NewPunchEventRepository(db)
	ctx := context.Background()

	employeeID := insertTestEmployee(t, db, "X-"+uuid.New().String()[:8], "Gus", "Paz", "site-d", "ops", true)
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	insertTestPunch(t, db, employeeID, model.EventEntry, date, 8, 0, "site-d")

	missing, err := punchRepo.EmployeesWithoutExit(ctx, date)
	require.NoError(t, err)

	found := false
	for _, m := range missing {
		if m.EmployeeID == employeeID {
			found = true
		}
	}
	require.True(t, found)
}
