package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/shared/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestMigrator_UpDown(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	m, err := NewMigrator(db, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, m.Up(ctx))
	version, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	for _, table := range []string{"plans", "clients", "subscriptions", "subscription_history", "payments", "casbin_rule"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// idempotent
	require.NoError(t, m.Up(ctx))

	require.NoError(t, m.Down(ctx, 1))
	assert.False(t, db.Migrator().HasTable("casbin_rule"))
	assert.True(t, db.Migrator().HasTable("subscriptions"))
}

func TestMigrator_Scripts(t *testing.T) {
	m, err := NewMigrator(openSQLite(t), logger.NewNop())
	require.NoError(t, err)

	names, err := m.Scripts()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"scripts/sqlite/00001_create_billing_tables.sql",
		"scripts/sqlite/00002_create_casbin_rule.sql",
	}, names)
}
