package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/labunify/migrations"
	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)

type migration struct {
	Version string
	Order   int
	Name    string
	SQL     string
}

// applyEmbeddedMigrations runs every migration not yet recorded in
// schema_migrations and returns the names it applied, in order.
func applyEmbeddedMigrations(database *gorm.DB) ([]string, error) {
	return applyMigrations(database, embeddedmigrations.Files)
}

func applyMigrations(database *gorm.DB, files fs.FS) ([]string, error) {
	if err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := loadMigrations(files)
	if err != nil {
		return nil, err
	}

	versions := make([]string, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}
	applied := make(map[string]struct{}, len(versions))
	for _, version := range versions {
		applied[version] = struct{}{}
	}

	names := make([]string, 0)
	for _, next := range pending {
		if _, done := applied[next.Version]; done {
			continue
		}
		if err := applyMigration(database, next); err != nil {
			return names, err
		}
		names = append(names, next.Name)
	}
	return names, nil
}

func loadMigrations(files fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	result := make([]migration, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matches := migrationFilePattern.FindStringSubmatch(entry.Name())
		if len(matches) != 2 {
			continue
		}

		version := matches[1]
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", entry.Name(), err)
		}
		if existing, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, existing, entry.Name())
		}
		seen[version] = entry.Name()

		raw, err := fs.ReadFile(files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		result = append(result, migration{Version: version, Order: order, Name: entry.Name(), SQL: string(raw)})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order == result[j].Order {
			return result[i].Name < result[j].Name
		}
		return result[i].Order < result[j].Order
	})
	return result, nil
}

func applyMigration(database *gorm.DB, next migration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitSQLStatements(next.SQL)
		if len(statements) == 0 {
			return errors.New("migration has no SQL statements")
		}
		for _, statement := range statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", next.Name, statement, err)
			}
		}
		if err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, next.Version, next.Name).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", next.Name, err)
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
