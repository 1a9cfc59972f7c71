// Package testutil provides migrated in-memory databases for tests.
package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/infrastructure/migration"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// NewSQLiteDB returns an in-memory sqlite database private to t, migrated to
// the latest schema and closed on cleanup.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.NewMigrator(db, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up(context.Background()))
	return db
}
