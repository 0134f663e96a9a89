package db

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/glebarez/sqlite"
	"github.com/google/go-cmp/cmp"
	embeddedmigrations "github.com/terraincognita07/labunify/migrations"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "labunify-clean.db")
	database := openTestDatabase(t, databasePath)

	for _, table := range []string{"canonical_names", "synonyms", "units", "unit_conversions"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist after migrations", table)
		}
	}

	for _, column := range []string{"canonical_name_id", "from_unit_id", "to_unit_id", "formula"} {
		if !database.Migrator().HasColumn("unit_conversions", column) {
			t.Fatalf("expected unit_conversions.%s after migrations", column)
		}
	}

	indexSQL := indexDefinition(t, database, "uidx_units_single_standard")
	if compact := strings.ToLower(strings.Join(strings.Fields(indexSQL), "")); !strings.Contains(compact, "whereis_standard=1") {
		t.Fatalf("expected a partial unique index on standard units, got %q", indexSQL)
	}

	versions := make([]string, 0)
	for _, entry := range appliedMigrations(t, database) {
		versions = append(versions, entry.Version)
	}
	if diff := cmp.Diff(embeddedVersions(t), versions); diff != "" {
		t.Fatalf("applied versions mismatch (-embedded +applied):\n%s", diff)
	}
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "labunify-idempotent.db")

	first, err := OpenSQLite(databasePath, nil)
	if err != nil {
		t.Fatalf("first boot: %v", err)
	}
	before := appliedMigrations(t, first)
	firstSQLDB, err := first.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close after first boot: %v", err)
	}

	after := appliedMigrations(t, openTestDatabase(t, databasePath))
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("second boot changed the migration ledger (-before +after):\n%s", diff)
	}
}

func TestApplyMigrationsSkipsRecordedVersionsAndRejectsDuplicates(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "labunify-custom.db")
	database, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	files := fstest.MapFS{
		"001_first.sql":  {Data: []byte("CREATE TABLE first (id INTEGER);")},
		"002_second.sql": {Data: []byte("CREATE TABLE second (id INTEGER); CREATE TABLE third (id INTEGER);")},
		"README.md":      {Data: []byte("not a migration")},
	}

	applied, err := applyMigrations(database, files)
	if err != nil {
		t.Fatalf("applyMigrations() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"001_first.sql", "002_second.sql"}, applied); diff != "" {
		t.Fatalf("applied migrations mismatch (-want +got):\n%s", diff)
	}
	if !database.Migrator().HasTable("third") {
		t.Fatal("expected every statement of a migration to run")
	}

	applied, err = applyMigrations(database, files)
	if err != nil {
		t.Fatalf("second applyMigrations() unexpected error: %v", err)
	}
	if len(applied) != 0 {
		t.Fatalf("expected no migrations on second run, got %v", applied)
	}

	files["002_duplicate.sql"] = &fstest.MapFile{Data: []byte("SELECT 1;")}
	if _, err := applyMigrations(database, files); err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestSplitSQLStatements(t *testing.T) {
	statements := splitSQLStatements("CREATE TABLE a (id INTEGER);\n\n  ;CREATE INDEX b ON a(id);  ")
	want := []string{"CREATE TABLE a (id INTEGER)", "CREATE INDEX b ON a(id)"}
	if diff := cmp.Diff(want, statements); diff != "" {
		t.Fatalf("splitSQLStatements() mismatch (-want +got):\n%s", diff)
	}
}

func openTestDatabase(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath, nil)
	if err != nil {
		t.Fatalf("open sqlite %s: %v", databasePath, err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

type appliedMigration struct {
	Version   string `gorm:"column:version"`
	Name      string `gorm:"column:name"`
	AppliedAt string `gorm:"column:applied_at"`
}

func appliedMigrations(t *testing.T, database *gorm.DB) []appliedMigration {
	t.Helper()

	var ledger []appliedMigration
	err := database.Table("schema_migrations").
		Select("version", "name", "applied_at").
		Order("version").
		Scan(&ledger).Error
	if err != nil {
		t.Fatalf("read schema_migrations: %v", err)
	}
	return ledger
}

func indexDefinition(t *testing.T, database *gorm.DB, name string) string {
	t.Helper()

	var definition string
	err := database.Raw(`SELECT sql FROM sqlite_master WHERE type = 'index' AND name = ?`, name).
		Scan(&definition).Error
	if err != nil {
		t.Fatalf("read index %s: %v", name, err)
	}
	return definition
}

func embeddedVersions(t *testing.T) []string {
	t.Helper()

	migrations, err := loadMigrations(embeddedmigrations.Files)
	if err != nil {
		t.Fatalf("load embedded migrations: %v", err)
	}
	versions := make([]string, len(migrations))
	for index, migration := range migrations {
		versions[index] = migration.Version
	}
	return versions
}
