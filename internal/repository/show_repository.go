package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

// Newest first everywhere; the id breaks ties between shows starting at
// the same instant.
const showDetailSelect = "SELECT s.id, s.start_time, s.artist_id, s.venue_id, " +
	"a.name AS artist_name, COALESCE(a.image_link, '') AS artist_image_link, " +
	"v.name AS venue_name, COALESCE(v.image_link, '') AS venue_image_link " +
	"FROM `Show` s " +
	"JOIN `Artist` a ON a.id = s.artist_id " +
	"JOIN `Venue` v ON v.id = s.venue_id "

const showOrder = " ORDER BY s.start_time DESC, s.id DESC"

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sqlx.DB
}

func NewShowRepo(db *sqlx.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a show.  Referenced artist and venue are not checked
// beforehand; a dangling id surfaces as a foreign key violation (see
// IsForeignKeyViolation).  StartTime is stored in UTC at second precision.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = "INSERT INTO `Show` (start_time, artist_id, venue_id) VALUES (?, ?, ?)"
	s.StartTime = s.StartTime.UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx, q, s.StartTime, s.ArtistID, s.VenueID)
	if err != nil {
		return fmt.Errorf("insert show: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// List returns every show with its artist and venue, newest first.
func (r *ShowRepo) List(ctx context.Context) ([]model.ShowDetail, error) {
	return r.selectDetails(ctx, showDetailSelect+showOrder)
}

// ListByVenue returns the shows hosted by one venue, newest first.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowDetail, error) {
	return r.selectDetails(ctx, showDetailSelect+"WHERE s.venue_id = ?"+showOrder, venueID)
}

// ListByArtist returns the shows played by one artist, newest first.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowDetail, error) {
	return r.selectDetails(ctx, showDetailSelect+"WHERE s.artist_id = ?"+showOrder, artistID)
}

// ListByVenues returns the shows of any of the given venues ordered by
// venue id, newest first within a venue.
func (r *ShowRepo) ListByVenues(ctx context.Context, venueIDs []uint64) ([]model.ShowDetail, error) {
	if len(venueIDs) == 0 {
		return []model.ShowDetail{}, nil
	}
	q, args, err := sqlx.In(showDetailSelect+"WHERE s.venue_id IN (?) ORDER BY s.venue_id, s.start_time DESC, s.id DESC", venueIDs)
	if err != nil {
		return nil, err
	}
	return r.selectDetails(ctx, r.db.Rebind(q), args...)
}

// ListByArtists returns the shows of any of the given artists.
func (r *ShowRepo) ListByArtists(ctx context.Context, artistIDs []uint64) ([]model.ShowDetail, error) {
	if len(artistIDs) == 0 {
		return []model.ShowDetail{}, nil
	}
	q, args, err := sqlx.In(showDetailSelect+"WHERE s.artist_id IN (?)"+showOrder, artistIDs)
	if err != nil {
		return nil, err
	}
	return r.selectDetails(ctx, r.db.Rebind(q), args...)
}

func (r *ShowRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM `Show`")
	return n, err
}

func (r *ShowRepo) selectDetails(ctx context.Context, q string, args ...any) ([]model.ShowDetail, error) {
	out := []model.ShowDetail{}
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].StartTime = out[i].StartTime.UTC()
	}
	return out, nil
}
