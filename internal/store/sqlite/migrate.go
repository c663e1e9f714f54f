package sqlite

import (
	"cmp"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

// Migration is one forward schema step, named NNN_description.up.sql.
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// Migrator applies embedded migrations and records them in schema_migrations.
type Migrator struct {
	db *sql.DB
}

func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// LoadMigrations returns the embedded migrations ordered by version.
func (m *Migrator) LoadMigrations() ([]Migration, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("listing migrations: %w", err)
	}

	out := make([]Migration, 0, len(names))

	for _, name := range names {
		mig, err := parseMigrationName(path.Base(name))
		if err != nil {
			return nil, err
		}

		body, err := migrationsFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", name, err)
		}

		mig.SQL = string(body)
		out = append(out, mig)
	}

	slices.SortFunc(out, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })

	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}

	return out, nil
}

func parseMigrationName(name string) (Migration, error) {
	stem := strings.TrimSuffix(name, ".up.sql")

	num, desc, ok := strings.Cut(stem, "_")
	if !ok {
		return Migration{}, fmt.Errorf("migration %s: want NNN_description.up.sql", name)
	}

	version, err := strconv.Atoi(num)
	if err != nil || version <= 0 {
		return Migration{}, fmt.Errorf("migration %s: bad version %q", name, num)
	}

	return Migration{Version: version, Description: strings.ReplaceAll(desc, "_", " ")}, nil
}

func (m *Migrator) ensureTable() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version     INTEGER PRIMARY KEY,
			description TEXT,
			applied_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	return nil
}

// CurrentVersion returns the highest applied version, 0 on a fresh database.
func (m *Migrator) CurrentVersion() (int, error) {
	if err := m.ensureTable(); err != nil {
		return 0, err
	}

	var version int
	if err := m.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}

	return version, nil
}

// MigrateUp applies every migration newer than CurrentVersion, each in
// its own transaction.
func (m *Migrator) MigrateUp() error {
	all, err := m.LoadMigrations()
	if err != nil {
		return err
	}

	current, err := m.CurrentVersion()
	if err != nil {
		return err
	}

	for _, mig := range all {
		if mig.Version <= current {
			continue
		}

		if err := m.apply(mig); err != nil {
			return fmt.Errorf("applying migration %d (%s): %w", mig.Version, mig.Description, err)
		}
	}

	return nil
}

func (m *Migrator) apply(mig Migration) (err error) {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(mig.SQL); err != nil {
		return err
	}

	if _, err = tx.Exec(`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
		mig.Version, mig.Description); err != nil {
		return err
	}

	return tx.Commit()
}
