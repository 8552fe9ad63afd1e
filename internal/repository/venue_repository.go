package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

// Nullable link columns are read back as empty strings.
const venueColumns = `id, name, city, state, address, phone,
	COALESCE(image_link, '') AS image_link,
	COALESCE(facebook_link, '') AS facebook_link,
	COALESCE(website, '') AS website,
	seeking_talent,
	COALESCE(seeking_description, '') AS seeking_description`

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db     *sqlx.DB
	genres *GenreRepo
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sqlx.DB) *VenueRepo {
	return &VenueRepo{db: db, genres: NewGenreRepo(db)}
}

// Create inserts v and links it to the named genres in one transaction.
// Either the venue and all of its genre links persist, or nothing does.
// On success v.ID holds the generated id.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue, genres []string) error {
	const q = "INSERT INTO `Venue` (name, city, state, address, phone, image_link, facebook_link, website, seeking_talent, seeking_description) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			v.Name, v.City, v.State, v.Address, v.Phone,
			nullString(v.ImageLink), nullString(v.FacebookLink), nullString(v.Website),
			v.SeekingTalent, nullString(v.SeekingDescription))
		if err != nil {
			return fmt.Errorf("insert venue: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if err := r.genres.attach(ctx, tx, "genres_venues", "venue_id", uint64(id), genres); err != nil {
			return err
		}
		v.ID = uint64(id)
		return nil
	})
}

// Update overwrites the stored venue v.ID and replaces its genre links.
// ErrVenueNotFound is returned when the row does not exist.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue, genres []string) error {
	const q = "UPDATE `Venue` SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?, facebook_link = ?, website = ?, seeking_talent = ?, seeking_description = ? WHERE id = ?"
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		// MySQL reports 0 affected rows for an unchanged row, so check first.
		var found uint64
		if err := tx.GetContext(ctx, &found, "SELECT id FROM `Venue` WHERE id = ?", v.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, q,
			v.Name, v.City, v.State, v.Address, v.Phone,
			nullString(v.ImageLink), nullString(v.FacebookLink), nullString(v.Website),
			v.SeekingTalent, nullString(v.SeekingDescription), v.ID); err != nil {
			return fmt.Errorf("update venue: %w", err)
		}
		if err := r.genres.detach(ctx, tx, "genres_venues", "venue_id", v.ID); err != nil {
			return err
		}
		return r.genres.attach(ctx, tx, "genres_venues", "venue_id", v.ID, genres)
	})
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM `Venue` WHERE id = ?"
	var v model.Venue
	if err := r.db.GetContext(ctx, &v, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListAll returns every venue ordered by state, city and id so that venues
// sharing a location are adjacent.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM `Venue` ORDER BY state, city, id"
	out := []model.Venue{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns venues whose name contains term, ignoring case.  An empty
// term matches every venue.
func (r *VenueRepo) Search(ctx context.Context, term string) ([]model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM `Venue` WHERE LOWER(name) LIKE LOWER(?) ESCAPE '!' ORDER BY id"
	out := []model.Venue{}
	if err := r.db.SelectContext(ctx, &out, q, containsPattern(term)); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of venue rows.
func (r *VenueRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM `Venue`")
	return n, err
}
