package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/backoffice/internal/shared/config"
)

func TestInit_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{Driver: "sqlite", Database: "file:conn_test?mode=memory&cache=shared"}

	require.NoError(t, Init(cfg))
	t.Cleanup(func() { _ = Close() })

	conn := Get()
	require.NotNil(t, conn)
	assert.Equal(t, "sqlite", conn.Dialector.Name())

	var one int
	require.NoError(t, conn.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestFilteredLogger_DropsBootstrapQueries(t *testing.T) {
	l := &filteredLogger{}
	assert.NotPanics(t, func() {
		l.Printf("%s", "SELECT VERSION()")
		l.Printf("%s", "[error] record not found")
	})
}
