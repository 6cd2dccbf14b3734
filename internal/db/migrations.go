package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	embeddedmigrations "github.com/terraincognita07/cyclejournal/migrations"
	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
var addColumnStatementPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)

// journalTables lists every table owned by the schema, children first so drops never
// trip foreign keys.
var journalTables = []string{
	"daily_log_emotions",
	"daily_log_moods",
	"daily_log_symptoms",
	"daily_logs",
	"periods",
	"emotions",
	"moods",
	"symptoms",
	"users",
	"schema_migrations",
}

type migrationFile struct {
	Version string
	Order   int
	Name    string
	SQL     string
}

type AppliedMigration struct {
	Version   string    `gorm:"column:version"`
	Name      string    `gorm:"column:name"`
	AppliedAt time.Time `gorm:"column:applied_at"`
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	if err := ensureSchemaMigrationsTable(database); err != nil {
		return err
	}

	files, err := loadMigrationFiles()
	if err != nil {
		return err
	}

	applied, err := ListAppliedMigrations(database)
	if err != nil {
		return err
	}
	appliedVersions := make(map[string]struct{}, len(applied))
	for _, migration := range applied {
		appliedVersions[migration.Version] = struct{}{}
	}

	for _, file := range files {
		if _, done := appliedVersions[file.Version]; done {
			continue
		}
		if err := applyMigration(database, file); err != nil {
			return err
		}
	}
	return nil
}

// ResetSchema drops every journal table and rebuilds the schema from the embedded
// migrations. All data is lost.
func ResetSchema(database *gorm.DB) error {
	if err := database.Exec(`PRAGMA foreign_keys = OFF`).Error; err != nil {
		return fmt.Errorf("disable foreign keys: %w", err)
	}
	dropErr := database.Transaction(func(tx *gorm.DB) error {
		for _, table := range journalTables {
			if err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %q`, table)).Error; err != nil {
				return fmt.Errorf("drop %s: %w", table, err)
			}
		}
		return nil
	})
	if err := database.Exec(`PRAGMA foreign_keys = ON`).Error; err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	if dropErr != nil {
		return dropErr
	}
	return applyEmbeddedMigrations(database)
}

// ListAppliedMigrations returns the recorded migrations ordered by version.
func ListAppliedMigrations(database *gorm.DB) ([]AppliedMigration, error) {
	rows := make([]AppliedMigration, 0)
	if err := database.Raw(`SELECT version, name, applied_at FROM schema_migrations ORDER BY version`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	return rows, nil
}

func ensureSchemaMigrationsTable(database *gorm.DB) error {
	const createTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func loadMigrationFiles() ([]migrationFile, error) {
	entries, err := fs.ReadDir(embeddedmigrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	files := make([]migrationFile, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.TrimSpace(entry.Name())
		matches := migrationFilePattern.FindStringSubmatch(name)
		if len(matches) != 2 {
			continue
		}

		version := matches[1]
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		if existing, duplicate := seen[version]; duplicate {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, existing, name)
		}
		seen[version] = name

		raw, err := fs.ReadFile(embeddedmigrations.Files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		files = append(files, migrationFile{Version: version, Order: order, Name: name, SQL: string(raw)})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Order == files[j].Order {
			return files[i].Name < files[j].Name
		}
		return files[i].Order < files[j].Order
	})
	return files, nil
}

func applyMigration(database *gorm.DB, file migrationFile) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitSQLStatements(file.SQL)
		if len(statements) == 0 {
			return errors.New("migration has no SQL statements")
		}

		for _, statement := range statements {
			// Databases created by older tooling may already carry a column that a later
			// migration adds; those statements are skipped.
			skip, err := columnAlreadyPresent(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", file.Name, err)
			}
			if skip {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", file.Name, statement, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			file.Version,
			file.Name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", file.Name, err)
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

func columnAlreadyPresent(database *gorm.DB, statement string) (bool, error) {
	matches := addColumnStatementPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false, nil
	}
	return tableHasColumn(database, normalizeSQLIdentifier(matches[1]), normalizeSQLIdentifier(matches[2]))
}

type pragmaTableColumn struct {
	Name string `gorm:"column:name"`
}

func tableHasColumn(database *gorm.DB, table string, column string) (bool, error) {
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))

	columns := make([]pragmaTableColumn, 0)
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", table, err)
	}
	for _, existing := range columns {
		if strings.EqualFold(strings.TrimSpace(existing.Name), column) {
			return true, nil
		}
	}
	return false, nil
}

func normalizeSQLIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
