// Package listing shapes stored rows into the payloads served by the venue,
// artist and show pages.  Derived values such as upcoming show counts are
// computed here at request time against a caller supplied instant; nothing
// in this package touches the database.
package listing

import (
	"time"

	"github.com/samber/lo"

	"github.com/iliyamo/fyyur/internal/model"
)

// Area groups the venues sharing one (city, state) pair.
type Area struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenueSummary is one venue inside an Area.
type VenueSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// ArtistSummary is one row of the flat artist listing.
type ArtistSummary struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Match is one venue or artist search hit.
type Match struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// SearchResult answers a venue or artist search.
type SearchResult struct {
	SearchTerm string  `json:"search_term"`
	Count      int     `json:"count"`
	Data       []Match `json:"data"`
}

// VenueShow is a show as listed on a venue page: the counterpart is the
// artist.
type VenueShow struct {
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ArtistShow is a show as listed on an artist page.
type ArtistShow struct {
	VenueID        uint64    `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

type VenueDetail struct {
	ID                 uint64      `json:"id"`
	Name               string      `json:"name"`
	Genres             []string    `json:"genres"`
	Address            string      `json:"address"`
	City               string      `json:"city"`
	State              string      `json:"state"`
	Phone              string      `json:"phone"`
	Website            string      `json:"website"`
	FacebookLink       string      `json:"facebook_link"`
	SeekingTalent      bool        `json:"seeking_talent"`
	SeekingDescription string      `json:"seeking_description"`
	ImageLink          string      `json:"image_link"`
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

type ArtistDetail struct {
	ID                 uint64       `json:"id"`
	Name               string       `json:"name"`
	Genres             []string     `json:"genres"`
	City               string       `json:"city"`
	State              string       `json:"state"`
	Phone              string       `json:"phone"`
	Website            string       `json:"website"`
	FacebookLink       string       `json:"facebook_link"`
	SeekingVenue       bool         `json:"seeking_venue"`
	SeekingDescription string       `json:"seeking_description"`
	ImageLink          string       `json:"image_link"`
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// ShowEntry is one row of the chronological show listing.
type ShowEntry struct {
	VenueID         uint64    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ShowMatch is one show found through a venue name search.
type ShowMatch struct {
	VenueID        uint64    `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	ArtistID       uint64    `json:"artist_id"`
	ArtistName     string    `json:"artist_name"`
	IsUpcoming     bool      `json:"is_upcoming"`
	StartTime      time.Time `json:"start_time"`
}

type ShowSearchResult struct {
	SearchTerm string      `json:"search_term"`
	Count      int         `json:"count"`
	Data       []ShowMatch `json:"data"`
}

// IsUpcoming reports whether a show starting at start has not begun at now.
// A show starting exactly at now is upcoming; every page uses this rule.
func IsUpcoming(start, now time.Time) bool {
	return !start.Before(now)
}

// UpcomingByVenue counts upcoming shows per venue id.
func UpcomingByVenue(shows []model.ShowDetail, now time.Time) map[uint64]int {
	out := make(map[uint64]int)
	for _, s := range shows {
		if IsUpcoming(s.StartTime, now) {
			out[s.VenueID]++
		}
	}
	return out
}

// UpcomingByArtist counts upcoming shows per artist id.
func UpcomingByArtist(shows []model.ShowDetail, now time.Time) map[uint64]int {
	out := make(map[uint64]int)
	for _, s := range shows {
		if IsUpcoming(s.StartTime, now) {
			out[s.ArtistID]++
		}
	}
	return out
}

// GroupByArea groups venues by (city, state).  Areas appear in the order
// their first venue appears in venues, and venues keep their relative order
// within an area.
func GroupByArea(venues []model.Venue, upcoming map[uint64]int) []Area {
	type key struct{ city, state string }
	index := make(map[key]int)
	areas := []Area{}
	for _, v := range venues {
		k := key{v.City, v.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{City: v.City, State: v.State})
		}
		areas[i].Venues = append(areas[i].Venues, VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: upcoming[v.ID],
		})
	}
	return areas
}

// NewArtistSummaries maps artists to the flat listing rows.
func NewArtistSummaries(artists []model.Artist) []ArtistSummary {
	return lo.Map(artists, func(a model.Artist, _ int) ArtistSummary {
		return ArtistSummary{ID: a.ID, Name: a.Name}
	})
}

// NewVenueMatches builds the venue search response.
func NewVenueMatches(term string, venues []model.Venue, upcoming map[uint64]int) SearchResult {
	data := lo.Map(venues, func(v model.Venue, _ int) Match {
		return Match{ID: v.ID, Name: v.Name, NumUpcomingShows: upcoming[v.ID]}
	})
	return SearchResult{SearchTerm: term, Count: len(data), Data: data}
}

// NewArtistMatches builds the artist search response.
func NewArtistMatches(term string, artists []model.Artist, upcoming map[uint64]int) SearchResult {
	data := lo.Map(artists, func(a model.Artist, _ int) Match {
		return Match{ID: a.ID, Name: a.Name, NumUpcomingShows: upcoming[a.ID]}
	})
	return SearchResult{SearchTerm: term, Count: len(data), Data: data}
}

// NewVenueDetail partitions the venue's shows into past and upcoming.  Each
// show lands in exactly one list and keeps its relative order.
func NewVenueDetail(v model.Venue, genres []string, shows []model.ShowDetail, now time.Time) VenueDetail {
	d := VenueDetail{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             nonNil(genres),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		ImageLink:          v.ImageLink,
		PastShows:          []VenueShow{},
		UpcomingShows:      []VenueShow{},
	}
	for _, s := range shows {
		vs := VenueShow{
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime,
		}
		if IsUpcoming(s.StartTime, now) {
			d.UpcomingShows = append(d.UpcomingShows, vs)
		} else {
			d.PastShows = append(d.PastShows, vs)
		}
	}
	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d
}

// NewArtistDetail partitions the artist's shows into past and upcoming.
func NewArtistDetail(a model.Artist, genres []string, shows []model.ShowDetail, now time.Time) ArtistDetail {
	d := ArtistDetail{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             nonNil(genres),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		ImageLink:          a.ImageLink,
		PastShows:          []ArtistShow{},
		UpcomingShows:      []ArtistShow{},
	}
	for _, s := range shows {
		as := ArtistShow{
			VenueID:        s.VenueID,
			VenueName:      s.VenueName,
			VenueImageLink: s.VenueImageLink,
			StartTime:      s.StartTime,
		}
		if IsUpcoming(s.StartTime, now) {
			d.UpcomingShows = append(d.UpcomingShows, as)
		} else {
			d.PastShows = append(d.PastShows, as)
		}
	}
	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d
}

// NewShowEntries maps shows to listing rows, keeping their order.
func NewShowEntries(shows []model.ShowDetail) []ShowEntry {
	return lo.Map(shows, func(s model.ShowDetail, _ int) ShowEntry {
		return ShowEntry{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime,
		}
	})
}

// NewShowSearch builds the show search response from the shows of every
// matched venue.
func NewShowSearch(term string, shows []model.ShowDetail, now time.Time) ShowSearchResult {
	data := lo.Map(shows, func(s model.ShowDetail, _ int) ShowMatch {
		return ShowMatch{
			VenueID:        s.VenueID,
			VenueName:      s.VenueName,
			VenueImageLink: s.VenueImageLink,
			ArtistID:       s.ArtistID,
			ArtistName:     s.ArtistName,
			IsUpcoming:     IsUpcoming(s.StartTime, now),
			StartTime:      s.StartTime,
		}
	})
	return ShowSearchResult{SearchTerm: term, Count: len(data), Data: data}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
