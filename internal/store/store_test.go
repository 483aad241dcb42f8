package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	db, err := Open(Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, "sqlite", nil))
	// Second run is a no-op.
	require.NoError(t, Migrate(ctx, db, "sqlite", nil))

	assert.True(t, db.Migrator().HasTable("customer_sessions"))
	assert.True(t, db.Migrator().HasIndex("customer_sessions", "ix_customer_sessions_expires_at"))
}

func TestUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle", DSN: "x"})
	require.Error(t, err)

	_, err = gooseDialect("oracle")
	require.Error(t, err)
}

func TestMySQLDSNForcesParseTime(t *testing.T) {
	d, err := dialectorFor(Config{Driver: "mysql", DSN: "user:pw@tcp(localhost:3306)/homura"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	_, err = dialectorFor(Config{Driver: "mysql", DSN: "not a dsn"})
	require.Error(t, err)
}
