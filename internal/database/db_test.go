package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
)

func TestDSN(t *testing.T) {
	t.Run("mysql parts", func(t *testing.T) {
		dsn := database.DSN(config.Config{
			DBDriver: database.DriverMySQL,
			DBUser:   "fyyur",
			DBPass:   "secret",
			DBHost:   "db",
			DBPort:   "3306",
			DBName:   "fyyur",
		})
		assert.Equal(t, "fyyur:secret@tcp(db:3306)/fyyur?charset=utf8mb4&parseTime=true&loc=UTC", dsn)
	})

	t.Run("mysql without password", func(t *testing.T) {
		dsn := database.MySQLDSN("root", "", "localhost", "3306", "fyyur")
		assert.Equal(t, "root@tcp(localhost:3306)/fyyur?charset=utf8mb4&parseTime=true&loc=UTC", dsn)
	})

	t.Run("sqlite", func(t *testing.T) {
		dsn := database.DSN(config.Config{DBDriver: database.DriverSQLite, DBName: "fyyur.db"})
		assert.Equal(t, "fyyur.db?_foreign_keys=1&_busy_timeout=5000", dsn)
		assert.Equal(t, "file:x.db?cache=shared&_foreign_keys=1&_busy_timeout=5000",
			database.SQLiteDSN("file:x.db?cache=shared"))
	})

	t.Run("url wins", func(t *testing.T) {
		dsn := database.DSN(config.Config{DBDriver: database.DriverMySQL, DatabaseURL: "u@tcp(h)/d", DBUser: "x"})
		assert.Equal(t, "u@tcp(h)/d", dsn)
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := database.Open(database.DriverSQLite, database.SQLiteDSN(filepath.Join(t.TempDir(), "m.db")))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))
	require.NoError(t, database.Migrate(ctx, db))

	var tables []string
	err = db.SelectContext(ctx, &tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Artist", "Genre", "Show", "Venue", "genres_artists", "genres_venues"}, tables)
}

func TestSQLiteLowerFoldsUnicode(t *testing.T) {
	db, err := database.Open(database.DriverSQLite, database.SQLiteDSN(filepath.Join(t.TempDir(), "l.db")))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, database.DriverSQLite, db.DriverName())
	var got string
	require.NoError(t, db.Get(&got, "SELECT LOWER(?)", "ÉCOLE Hall"))
	assert.Equal(t, "école hall", got)
}
