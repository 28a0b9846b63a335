// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	migrationTable = "schema_migrations"
	initMigration  = "0001_init.sql"
)

// ApplyMigrations runs every embedded migration that has not been recorded
// yet, in file name order, and returns the names it applied.
// Safe to call on every startup.
func ApplyMigrations(conn *sql.DB, driver string) ([]string, error) {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}
	return applyMigrations(conn, driver, sub)
}

func applyMigrations(conn *sql.DB, driver string, migrations fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
			name TEXT PRIMARY KEY,
			applied_at BIGINT NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration table: %w", err)
	}

	var applied []string
	for _, name := range files {
		done, err := isApplied(conn, driver, name)
		if err != nil {
			return applied, fmt.Errorf("failed to check migration %s: %w", name, err)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(migrations, name)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		if err := applyOne(conn, driver, name, upSection(string(content))); err != nil {
			return applied, err
		}
		applied = append(applied, name)
	}

	return applied, nil
}

func applyOne(conn *sql.DB, driver, name, upSQL string) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", name, err)
	}
	defer tx.Rollback()

	// One statement per Exec so a tolerated duplicate skips only that statement
	for _, stmt := range splitStatements(upSQL) {
		if _, err := tx.Exec(stmt); err != nil {
			if driver == DriverSQLite && isAlreadyExists(err) {
				continue
			}
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}

	_, err = tx.Exec(
		rebind(driver, "INSERT INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)"),
		name, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to record migration %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", name, err)
	}
	return nil
}

func isApplied(conn *sql.DB, driver, name string) (bool, error) {
	var found int
	err := conn.QueryRow(rebind(driver, "SELECT 1 FROM "+migrationTable+" WHERE name = ?"), name).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// upSection returns the SQL between "-- +migrate Up" and "-- +migrate Down"
func upSection(content string) string {
	up := strings.Index(content, "-- +migrate Up")
	if up == -1 {
		return content
	}
	rest := content[up+len("-- +migrate Up"):]
	if down := strings.Index(rest, "-- +migrate Down"); down != -1 {
		return rest[:down]
	}
	return rest
}

// splitStatements breaks a migration into statements on ";", dropping
// comment lines. Migrations must not put ";" inside string literals.
func splitStatements(sqlText string) []string {
	var lines []string
	for _, line := range strings.Split(sqlText, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var stmts []string
	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// isAlreadyExists reports DDL errors left by a partial sqlite upgrade.
// Postgres DDL is transactional, so a failed migration leaves nothing behind.
func isAlreadyExists(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column name")
}
