package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/shared/logger"
)

//go:embed scripts
var scripts embed.FS

// goose keeps its dialect and base FS in package globals.
var gooseMu sync.Mutex

// Migrator runs the embedded goose scripts for one dialect.
type Migrator struct {
	db      *sql.DB
	dialect string
	dir     string
	logger  logger.Interface
}

// NewMigrator picks the script directory from the gorm dialector name
// ("mysql" or "sqlite").
func NewMigrator(db *gorm.DB, log logger.Interface) (*Migrator, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	m := &Migrator{db: sqlDB, logger: log.Named("migration.goose")}
	switch name := db.Dialector.Name(); name {
	case "mysql":
		m.dialect, m.dir = "mysql", "scripts/mysql"
	case "sqlite":
		m.dialect, m.dir = "sqlite3", "scripts/sqlite"
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", name)
	}
	return m, nil
}

func (m *Migrator) run(fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(scripts)
	goose.SetLogger(&gooseLogger{log: m.logger})
	if err := goose.SetDialect(m.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return fn()
}

func (m *Migrator) Up(ctx context.Context) error {
	return m.run(func() error {
		from, err := goose.GetDBVersionContext(ctx, m.db)
		if err != nil {
			return fmt.Errorf("failed to get current version: %w", err)
		}
		if err := goose.UpContext(ctx, m.db, m.dir); err != nil {
			m.logger.Errorw("migration failed", "error", err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		to, err := goose.GetDBVersionContext(ctx, m.db)
		if err != nil {
			return fmt.Errorf("failed to get final version: %w", err)
		}
		m.logger.Infow("migration completed", "from_version", from, "to_version", to)
		return nil
	})
}

func (m *Migrator) Down(ctx context.Context, steps int) error {
	return m.run(func() error {
		for i := 0; i < steps; i++ {
			if err := goose.DownContext(ctx, m.db, m.dir); err != nil {
				return fmt.Errorf("failed to run down migration: %w", err)
			}
		}
		m.logger.Infow("down migration completed", "steps", steps)
		return nil
	})
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	var version int64
	err := m.run(func() error {
		v, err := goose.GetDBVersionContext(ctx, m.db)
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

// Status logs the applied state of every script.
func (m *Migrator) Status(ctx context.Context) error {
	return m.run(func() error {
		if err := goose.StatusContext(ctx, m.db, m.dir); err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		return nil
	})
}

// Scripts lists the embedded script names for the migrator's dialect.
func (m *Migrator) Scripts() ([]string, error) {
	return fs.Glob(scripts, m.dir+"/*.sql")
}

// CreateScript writes a new timestamped SQL script into dir on disk.
// Embedded scripts are read-only, so this targets the source tree.
func CreateScript(dir, name string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(nil)
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}
	return nil
}

type gooseLogger struct {
	log logger.Interface
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal(fmt.Sprintf(format, v...))
}
