package db

import (
	"fmt"
	"strconv"

	"spacetraders-router/internal/config"
)

// shipKeys maps config table keys to ship profile fields.
func shipKeys(s *config.Ship) map[string]*int {
	return map[string]*int{
		"fuel_capacity":      &s.FuelCapacity,
		"start_fuel":         &s.StartFuel,
		"speed":              &s.Speed,
		"max_jumpgate_range": &s.MaxJumpgateRange,
		"max_warp_range":     &s.MaxWarpRange,
		"fuel_segment":       &s.FuelSegment,
		"drift_fuel_cost":    &s.DriftFuelCost,
		"min_jump_duration":  &s.MinJumpDuration,
	}
}

// LoadShip reads the stored ship profile over defaults. found is false when
// nothing has been saved yet; unparsable values keep their default.
func (d *DB) LoadShip(defaults config.Ship) (ship config.Ship, found bool) {
	ship = defaults

	rows, err := d.sql.Query("SELECT key, value FROM config")
	if err != nil {
		return ship, false
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		m[k] = v
	}

	for key, field := range shipKeys(&ship) {
		v, ok := m[key]
		if !ok {
			continue
		}
		found = true
		if n, err := strconv.Atoi(v); err == nil {
			*field = n
		}
	}
	return ship, found
}

// SaveShip stores every field of the ship profile.
func (d *DB) SaveShip(ship config.Ship) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return fmt.Errorf("save ship: %w", err)
	}
	defer tx.Rollback()

	for key, field := range shipKeys(&ship) {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO config (key, value) VALUES (?, ?)",
			key, strconv.Itoa(*field),
		); err != nil {
			return fmt.Errorf("save ship %s: %w", key, err)
		}
	}
	return tx.Commit()
}
