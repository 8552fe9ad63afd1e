package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Table names are shared by both dialects.  SHOW is a reserved word in
// MySQL, so queries quote it with backticks; SQLite accepts the same quoting.
var mysqlSchema = []string{
	"CREATE TABLE IF NOT EXISTS `Genre` (" + `
	id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(120) NOT NULL,
	UNIQUE KEY uq_genre_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	"CREATE TABLE IF NOT EXISTS `Venue` (" + `
	id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	city VARCHAR(120) NOT NULL,
	state VARCHAR(120) NOT NULL,
	address VARCHAR(120) NOT NULL,
	phone VARCHAR(120) NOT NULL,
	image_link VARCHAR(500) NULL,
	facebook_link VARCHAR(120) NULL,
	website VARCHAR(500) NULL,
	seeking_talent BOOLEAN NOT NULL DEFAULT FALSE,
	seeking_description TEXT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	"CREATE TABLE IF NOT EXISTS `Artist` (" + `
	id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	city VARCHAR(120) NOT NULL,
	state VARCHAR(120) NOT NULL,
	phone VARCHAR(120) NOT NULL,
	image_link VARCHAR(500) NULL,
	facebook_link VARCHAR(120) NULL,
	website VARCHAR(500) NULL,
	seeking_venue BOOLEAN NOT NULL DEFAULT FALSE,
	seeking_description TEXT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	"CREATE TABLE IF NOT EXISTS `Show` (" + `
	id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	start_time DATETIME NOT NULL,
	artist_id BIGINT UNSIGNED NOT NULL,
	venue_id BIGINT UNSIGNED NOT NULL,
	KEY idx_show_start (start_time),
	CONSTRAINT fk_show_artist FOREIGN KEY (artist_id) REFERENCES ` + "`Artist`" + ` (id),
	CONSTRAINT fk_show_venue FOREIGN KEY (venue_id) REFERENCES ` + "`Venue`" + ` (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS genres_venues (
	genre_id BIGINT UNSIGNED NOT NULL,
	venue_id BIGINT UNSIGNED NOT NULL,
	PRIMARY KEY (genre_id, venue_id),
	CONSTRAINT fk_gv_genre FOREIGN KEY (genre_id) REFERENCES ` + "`Genre`" + ` (id),
	CONSTRAINT fk_gv_venue FOREIGN KEY (venue_id) REFERENCES ` + "`Venue`" + ` (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS genres_artists (
	genre_id BIGINT UNSIGNED NOT NULL,
	artist_id BIGINT UNSIGNED NOT NULL,
	PRIMARY KEY (genre_id, artist_id),
	CONSTRAINT fk_ga_genre FOREIGN KEY (genre_id) REFERENCES ` + "`Genre`" + ` (id),
	CONSTRAINT fk_ga_artist FOREIGN KEY (artist_id) REFERENCES ` + "`Artist`" + ` (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	"CREATE TABLE IF NOT EXISTS `Genre` (" + `
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
)`,

	"CREATE TABLE IF NOT EXISTS `Venue` (" + `
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	city TEXT NOT NULL,
	state TEXT NOT NULL,
	address TEXT NOT NULL,
	phone TEXT NOT NULL,
	image_link TEXT,
	facebook_link TEXT,
	website TEXT,
	seeking_talent BOOLEAN NOT NULL DEFAULT 0,
	seeking_description TEXT
)`,

	"CREATE TABLE IF NOT EXISTS `Artist` (" + `
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	city TEXT NOT NULL,
	state TEXT NOT NULL,
	phone TEXT NOT NULL,
	image_link TEXT,
	facebook_link TEXT,
	website TEXT,
	seeking_venue BOOLEAN NOT NULL DEFAULT 0,
	seeking_description TEXT
)`,

	"CREATE TABLE IF NOT EXISTS `Show` (" + `
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	start_time DATETIME NOT NULL,
	artist_id INTEGER NOT NULL REFERENCES ` + "`Artist`" + ` (id),
	venue_id INTEGER NOT NULL REFERENCES ` + "`Venue`" + ` (id)
)`,

	"CREATE INDEX IF NOT EXISTS idx_show_start ON `Show` (start_time)",

	`CREATE TABLE IF NOT EXISTS genres_venues (
	genre_id INTEGER NOT NULL REFERENCES ` + "`Genre`" + ` (id),
	venue_id INTEGER NOT NULL REFERENCES ` + "`Venue`" + ` (id),
	PRIMARY KEY (genre_id, venue_id)
)`,

	`CREATE TABLE IF NOT EXISTS genres_artists (
	genre_id INTEGER NOT NULL REFERENCES ` + "`Genre`" + ` (id),
	artist_id INTEGER NOT NULL REFERENCES ` + "`Artist`" + ` (id),
	PRIMARY KEY (genre_id, artist_id)
)`,
}

// Migrate creates the tables for the connection's dialect.  Statements are
// idempotent and run one at a time since the MySQL driver rejects multiple
// statements per Exec by default.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	var stmts []string
	switch db.DriverName() {
	case DriverMySQL:
		stmts = mysqlSchema
	case DriverSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("migrate: unsupported driver %q", db.DriverName())
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}
