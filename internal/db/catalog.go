package db

import (
	"fmt"

	"spacetraders-router/internal/catalog"
)

// ImportSystems replaces the stored catalog with systems, keeping their order.
func (d *DB) ImportSystems(systems []catalog.System) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return fmt.Errorf("import systems: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"waypoint_traits", "waypoints", "systems"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	sysStmt, err := tx.Prepare("INSERT INTO systems (position, symbol, type, x, y) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer sysStmt.Close()
	wpStmt, err := tx.Prepare(`INSERT INTO waypoints (system_position, position, symbol, type, x, y)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer wpStmt.Close()
	traitStmt, err := tx.Prepare(`INSERT INTO waypoint_traits
		(system_position, waypoint_position, position, symbol, name, description)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer traitStmt.Close()

	for si, s := range systems {
		if _, err := sysStmt.Exec(si, s.Symbol, s.Type, s.X, s.Y); err != nil {
			return fmt.Errorf("insert system %s: %w", s.Symbol, err)
		}
		for wi, w := range s.Waypoints {
			if _, err := wpStmt.Exec(si, wi, w.Symbol, w.Type, w.X, w.Y); err != nil {
				return fmt.Errorf("insert waypoint %s: %w", w.Symbol, err)
			}
			for ti, t := range w.Traits {
				if _, err := traitStmt.Exec(si, wi, ti, t.Symbol, t.Name, t.Description); err != nil {
					return fmt.Errorf("insert trait %s/%s: %w", w.Symbol, t.Symbol, err)
				}
			}
		}
	}
	return tx.Commit()
}

// SystemCount returns the number of stored systems.
func (d *DB) SystemCount() int {
	var n int
	d.sql.QueryRow("SELECT COUNT(*) FROM systems").Scan(&n)
	return n
}

// LoadSystems returns the stored catalog in import order.
func (d *DB) LoadSystems() ([]catalog.System, error) {
	var systems []catalog.System

	rows, err := d.sql.Query("SELECT symbol, type, x, y FROM systems ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("load systems: %w", err)
	}
	for rows.Next() {
		var s catalog.System
		if err := rows.Scan(&s.Symbol, &s.Type, &s.X, &s.Y); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan system: %w", err)
		}
		systems = append(systems, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = d.sql.Query(`SELECT system_position, symbol, type, x, y
		FROM waypoints ORDER BY system_position, position`)
	if err != nil {
		return nil, fmt.Errorf("load waypoints: %w", err)
	}
	for rows.Next() {
		var si int
		var w catalog.Waypoint
		if err := rows.Scan(&si, &w.Symbol, &w.Type, &w.X, &w.Y); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan waypoint: %w", err)
		}
		if si < 0 || si >= len(systems) {
			continue
		}
		systems[si].Waypoints = append(systems[si].Waypoints, w)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = d.sql.Query(`SELECT system_position, waypoint_position, symbol, name, description
		FROM waypoint_traits ORDER BY system_position, waypoint_position, position`)
	if err != nil {
		return nil, fmt.Errorf("load traits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var si, wi int
		var t catalog.Trait
		if err := rows.Scan(&si, &wi, &t.Symbol, &t.Name, &t.Description); err != nil {
			return nil, fmt.Errorf("scan trait: %w", err)
		}
		if si < 0 || si >= len(systems) || wi < 0 || wi >= len(systems[si].Waypoints) {
			continue
		}
		w := &systems[si].Waypoints[wi]
		w.Traits = append(w.Traits, t)
	}
	return systems, rows.Err()
}

// ImportFactions replaces the stored factions.
func (d *DB) ImportFactions(factions []catalog.Faction) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return fmt.Errorf("import factions: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM factions"); err != nil {
		return fmt.Errorf("clear factions: %w", err)
	}
	for i, f := range factions {
		if _, err := tx.Exec(
			"INSERT INTO factions (position, symbol, name, headquarters) VALUES (?, ?, ?, ?)",
			i, f.Symbol, f.Name, f.Headquarters,
		); err != nil {
			return fmt.Errorf("insert faction %s: %w", f.Symbol, err)
		}
	}
	return tx.Commit()
}

// LoadFactions returns the stored factions in import order.
func (d *DB) LoadFactions() ([]catalog.Faction, error) {
	rows, err := d.sql.Query("SELECT symbol, name, headquarters FROM factions ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("load factions: %w", err)
	}
	defer rows.Close()

	var out []catalog.Faction
	for rows.Next() {
		var f catalog.Faction
		if err := rows.Scan(&f.Symbol, &f.Name, &f.Headquarters); err != nil {
			return nil, fmt.Errorf("scan faction: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
