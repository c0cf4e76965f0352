package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tolga/terp/internal/model"
	"github.com/tolga/terp/internal/repository"
	"github.com/tolga/terp/internal/testutil"
)

func insertTestConfig(t *testing.T, db *repository.DB, key, value, description, typeTag string) {
	t.Helper()
	ctx := context.Background()

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO configuracion (clave, valor, descripcion, tipo_dato)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (clave) DO UPDATE SET valor = EXCLUDED.valor
	`, key, value, description, typeTag)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Pool.Exec(context.Background(), `DELETE FROM configuracion WHERE clave = $1`, key)
	})
}

func TestConfigRepository_All(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewConfigRepository(db)
	ctx := context.Background()

	insertTestConfig(t, db, "clave-test-all", "10", "prueba", "numero")

	entries, err := repo.All(ctx)
	require.NoError(t, err)

	found := false
	for _, e := range entries {
		if e.Key == "clave-test-all" {
			found = true
		}
	}
	require.True(t, found)
}

func TestConfigRepository_ByKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewConfigRepository(db)
	ctx := context.Background()

	insertTestConfig(t, db, "clave-test-by-key", "25.5", "prueba", "numero")

	entry, err := repo.ByKey(ctx, "clave-test-by-key")
	require.NoError(t, err)
	require.Equal(t, "25.5", entry.Value)
}

func TestConfigRepository_RatesMap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewConfigRepository(db)
	ctx := context.Background()

	insertTestConfig(t, db, model.ConfigHourlyOrdinary, "5000", "tarifa ordinaria", "numero")
	insertTestConfig(t, db, model.ConfigHourlyOvertimeDay, "6250", "tarifa extra diurna", "numero")
	insertTestConfig(t, db, model.ConfigHourlyOvertimeNight, "8750", "tarifa extra nocturna", "numero")

	rates, err := repo.RatesMap(ctx)
	require.NoError(t, err)
	require.Contains(t, rates, model.ConfigHourlyOrdinary)
	require.Equal(t, "5000", rates[model.ConfigHourlyOrdinary].Value)
	require.Equal(t, "6250", rates[model.ConfigHourlyOvertimeDay].Value)
	require.Equal(t, "8750", rates[model.ConfigHourlyOvertimeNight].Value)
}
