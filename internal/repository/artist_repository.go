package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

const artistColumns = `id, name, city, state, phone,
	COALESCE(image_link, '') AS image_link,
	COALESCE(facebook_link, '') AS facebook_link,
	COALESCE(website, '') AS website,
	seeking_venue,
	COALESCE(seeking_description, '') AS seeking_description`

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db     *sqlx.DB
	genres *GenreRepo
}

func NewArtistRepo(db *sqlx.DB) *ArtistRepo {
	return &ArtistRepo{db: db, genres: NewGenreRepo(db)}
}

// Create inserts a and links it to the named genres in one transaction.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist, genres []string) error {
	const q = "INSERT INTO `Artist` (name, city, state, phone, image_link, facebook_link, website, seeking_venue, seeking_description) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			a.Name, a.City, a.State, a.Phone,
			nullString(a.ImageLink), nullString(a.FacebookLink), nullString(a.Website),
			a.SeekingVenue, nullString(a.SeekingDescription))
		if err != nil {
			return fmt.Errorf("insert artist: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if err := r.genres.attach(ctx, tx, "genres_artists", "artist_id", uint64(id), genres); err != nil {
			return err
		}
		a.ID = uint64(id)
		return nil
	})
}

// Update overwrites the stored artist a.ID and replaces its genre links.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist, genres []string) error {
	const q = "UPDATE `Artist` SET name = ?, city = ?, state = ?, phone = ?, image_link = ?, facebook_link = ?, website = ?, seeking_venue = ?, seeking_description = ? WHERE id = ?"
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var found uint64
		if err := tx.GetContext(ctx, &found, "SELECT id FROM `Artist` WHERE id = ?", a.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArtistNotFound
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, q,
			a.Name, a.City, a.State, a.Phone,
			nullString(a.ImageLink), nullString(a.FacebookLink), nullString(a.Website),
			a.SeekingVenue, nullString(a.SeekingDescription), a.ID); err != nil {
			return fmt.Errorf("update artist: %w", err)
		}
		if err := r.genres.detach(ctx, tx, "genres_artists", "artist_id", a.ID); err != nil {
			return err
		}
		return r.genres.attach(ctx, tx, "genres_artists", "artist_id", a.ID, genres)
	})
}

// GetByID returns ErrArtistNotFound if no row is found.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	q := "SELECT " + artistColumns + " FROM `Artist` WHERE id = ?"
	var a model.Artist
	if err := r.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	q := "SELECT " + artistColumns + " FROM `Artist` ORDER BY id"
	out := []model.Artist{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) Search(ctx context.Context, term string) ([]model.Artist, error) {
	q := "SELECT " + artistColumns + " FROM `Artist` WHERE LOWER(name) LIKE LOWER(?) ESCAPE '!' ORDER BY id"
	out := []model.Artist{}
	if err := r.db.SelectContext(ctx, &out, q, containsPattern(term)); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ArtistRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM `Artist`")
	return n, err
}
