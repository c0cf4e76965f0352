package repository

import (
	"context"
	"fmt"

	"github.com/tolga/terp/internal/model"
)

// ConfigRepository reads the configuracion key/value table.
type ConfigRepository struct {
	db *DB
}

// NewConfigRepository creates a new configuration repository.
func NewConfigRepository(db *DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// All implements obtener_configuracion with no key filter.
func (r *ConfigRepository) All(ctx context.Context) ([]model.ConfigEntry, error) {
	const query = `SELECT clave, valor, descripcion, tipo_dato FROM configuracion ORDER BY clave`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list configuration: %w", err)
	}
	defer rows.Close()

	var entries []model.ConfigEntry
	for rows.Next() {
		var e model.ConfigEntry
		if err := rows.Scan(&e.Key, &e.Value, &e.Description, &e.TypeTag); err != nil {
			return nil, fmt.Errorf("failed to scan configuration row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ByKey implements obtener_configuracion with a single key.
func (r *ConfigRepository) ByKey(ctx context.Context, key string) (*model.ConfigEntry, error) {
	const query = `
		SELECT clave, valor, descripcion, tipo_dato
		FROM configuracion
		WHERE (CAST($1 AS text) IS NULL OR clave = $1)
		ORDER BY clave
		LIMIT 1
	`

	var e model.ConfigEntry
	err := r.db.Pool.QueryRow(ctx, query, key).Scan(&e.Key, &e.Value, &e.Description, &e.TypeTag)
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration entry: %w", err)
	}
	return &e, nil
}

// RatesMap builds the key->entry map the calculation package's
// RatesFromConfig expects, populated with the three hourly-rate keys
// it consults (any others are not fetched).
func (r *ConfigRepository) RatesMap(ctx context.Context) (map[string]model.ConfigEntry, error) {
	const query = `
		SELECT clave, valor, descripcion, tipo_dato
		FROM configuracion
		WHERE clave IN ($1, $2, $3)
	`

	rows, err := r.db.Pool.Query(ctx, query,
		model.ConfigHourlyOrdinary, model.ConfigHourlyOvertimeDay, model.ConfigHourlyOvertimeNight)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate configuration: %w", err)
	}
	defer rows.Close()

	out := make(map[string]model.ConfigEntry)
	for rows.Next() {
		var e model.ConfigEntry
		if err := rows.Scan(&e.Key, &e.Value, &e.Description, &e.TypeTag); err != nil {
			return nil, fmt.Errorf("failed to scan configuration row: %w", err)
		}
		out[e.Key] = e
	}
	return out, rows.Err()
}
