package db

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/courtlog/migrations"
	"gorm.io/gorm"
)

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_[\w.-]+\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

type schemaMigration struct {
	Version string
	Order   int
	Name    string
	Body    string
}

// schemaMigrator applies forward-only SQL files from source in version order.
type schemaMigrator struct {
	database *gorm.DB
	source   fs.FS
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	return schemaMigrator{database: database, source: embeddedmigrations.Files}.run()
}

func loadEmbeddedMigrations() ([]schemaMigration, error) {
	return schemaMigrator{source: embeddedmigrations.Files}.pending(nil)
}

func (m schemaMigrator) run() error {
	if err := m.database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	var applied []string
	if err := m.database.Table("schema_migrations").Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}
	done := make(map[string]bool, len(applied))
	for _, version := range applied {
		done[version] = true
	}

	pending, err := m.pending(done)
	if err != nil {
		return err
	}
	for _, migration := range pending {
		if err := m.apply(migration); err != nil {
			return err
		}
	}
	return nil
}

// pending lists migrations from source that are not in done, sorted by version.
func (m schemaMigrator) pending(done map[string]bool) ([]schemaMigration, error) {
	names, err := fs.Glob(m.source, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(names))
	byVersion := make(map[string]string, len(names))
	for _, name := range names {
		match := migrationNamePattern.FindStringSubmatch(path.Base(name))
		if match == nil {
			continue
		}
		version := match[1]
		if previous, duplicate := byVersion[version]; duplicate {
			return nil, fmt.Errorf("migration version %s used by both %s and %s", version, previous, name)
		}
		byVersion[version] = name
		if done[version] {
			continue
		}

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version %s: %w", name, err)
		}
		body, err := fs.ReadFile(m.source, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, schemaMigration{Version: version, Order: order, Name: name, Body: string(body)})
	}

	sort.SliceStable(migrations, func(i, j int) bool {
		return migrations[i].Order < migrations[j].Order
	})
	return migrations, nil
}

func (m schemaMigrator) apply(migration schemaMigration) error {
	statements := splitSQLStatements(migration.Body)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s is empty", migration.Name)
	}

	return m.database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			present, err := columnAlreadyAdded(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", migration.Name, err)
			}
			if present {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %q: %w", migration.Name, statement, err)
			}
		}

		return tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.Version,
			migration.Name,
		).Error
	})
}

func splitSQLStatements(body string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(body, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// columnAlreadyAdded reports whether statement is an ADD COLUMN for a column
// that already exists, which happens on databases created before the
// migration table was introduced.
func columnAlreadyAdded(tx *gorm.DB, statement string) (bool, error) {
	match := addColumnPattern.FindStringSubmatch(statement)
	if match == nil {
		return false, nil
	}
	table := unquoteIdentifier(match[1])
	column := unquoteIdentifier(match[2])

	var columns []struct {
		Name string `gorm:"column:name"`
	}
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))
	if err := tx.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("table_info %s: %w", table, err)
	}
	for _, existing := range columns {
		if strings.EqualFold(existing.Name, column) {
			return true, nil
		}
	}
	return false, nil
}

func unquoteIdentifier(identifier string) string {
	return strings.Trim(strings.TrimSpace(identifier), "\"`[]")
}
