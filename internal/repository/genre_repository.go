package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

// GenreRepo manages the shared Genre lookup table and the two join tables
// linking genres to venues and artists.  Genres are created lazily and
// never deleted, so a genre may end up attached to nothing.
type GenreRepo struct {
	db *sqlx.DB
}

func NewGenreRepo(db *sqlx.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// Resolve returns the id of the genre with exactly this name, inserting a
// new row when none exists.  It runs on q so callers can keep it inside
// their transaction.
func (r *GenreRepo) Resolve(ctx context.Context, q sqlx.ExtContext, name string) (uint64, error) {
	const qSelect = "SELECT id FROM `Genre` WHERE name = ?"
	var id uint64
	err := sqlx.GetContext(ctx, q, &id, qSelect, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup genre %q: %w", name, err)
	}

	res, err := q.ExecContext(ctx, "INSERT INTO `Genre` (name) VALUES (?)", name)
	if err != nil {
		if isUniqueViolation(err) {
			// inserted concurrently; the row is there now
			if err := sqlx.GetContext(ctx, q, &id, qSelect, name); err != nil {
				return 0, fmt.Errorf("lookup genre %q: %w", name, err)
			}
			return id, nil
		}
		return 0, fmt.Errorf("insert genre %q: %w", name, err)
	}
	n, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// NamesForVenue returns the genre names attached to a venue, sorted.
func (r *GenreRepo) NamesForVenue(ctx context.Context, venueID uint64) ([]string, error) {
	const q = "SELECT g.name FROM `Genre` g JOIN genres_venues gv ON gv.genre_id = g.id WHERE gv.venue_id = ? ORDER BY g.name"
	names := []string{}
	if err := r.db.SelectContext(ctx, &names, q, venueID); err != nil {
		return nil, err
	}
	return names, nil
}

// NamesForArtist returns the genre names attached to an artist, sorted.
func (r *GenreRepo) NamesForArtist(ctx context.Context, artistID uint64) ([]string, error) {
	const q = "SELECT g.name FROM `Genre` g JOIN genres_artists ga ON ga.genre_id = g.id WHERE ga.artist_id = ? ORDER BY g.name"
	names := []string{}
	if err := r.db.SelectContext(ctx, &names, q, artistID); err != nil {
		return nil, err
	}
	return names, nil
}

// Count returns the number of genre rows.
func (r *GenreRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM `Genre`")
	return n, err
}

// CountByName returns how many genre rows carry exactly this name.  With
// the unique index in place the answer is 0 or 1.
func (r *GenreRepo) CountByName(ctx context.Context, name string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM `Genre` WHERE name = ?", name)
	return n, err
}

// attach links ownerID to every named genre through joinTable.  Repeated
// and blank names are collapsed first.
func (r *GenreRepo) attach(ctx context.Context, tx *sqlx.Tx, joinTable, ownerCol string, ownerID uint64, names []string) error {
	names = lo.Uniq(lo.FilterMap(names, func(n string, _ int) (string, bool) {
		n = strings.TrimSpace(n)
		return n, n != ""
	}))
	insert := fmt.Sprintf("INSERT INTO %s (genre_id, %s) VALUES (?, ?)", joinTable, ownerCol)
	for _, name := range names {
		gid, err := r.Resolve(ctx, tx, name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert, gid, ownerID); err != nil {
			return fmt.Errorf("attach genre %q: %w", name, err)
		}
	}
	return nil
}

// detach removes every genre link of ownerID in joinTable.
func (r *GenreRepo) detach(ctx context.Context, tx *sqlx.Tx, joinTable, ownerCol string, ownerID uint64) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", joinTable, ownerCol)
	_, err := tx.ExecContext(ctx, q, ownerID)
	return err
}
