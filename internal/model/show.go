package model

import "time"

// Show is one booking of an artist at a venue.  Whether it is past or
// upcoming is derived from StartTime at read time and never stored.
//
// Fields:
//  ID        – primary key identifier.
//  StartTime – when the show begins, stored in UTC.
//  ArtistID  – performing artist (FK, required).
//  VenueID   – hosting venue (FK, required).
type Show struct {
    ID        uint64    `db:"id"`         // Show.id
    StartTime time.Time `db:"start_time"` // Show.start_time
    ArtistID  uint64    `db:"artist_id"`  // Show.artist_id
    VenueID   uint64    `db:"venue_id"`   // Show.venue_id
}

// ShowDetail is a show joined with the name and picture of its artist and
// venue, which is what every listing page displays.
type ShowDetail struct {
    Show
    ArtistName      string `db:"artist_name"`
    ArtistImageLink string `db:"artist_image_link"`
    VenueName       string `db:"venue_name"`
    VenueImageLink  string `db:"venue_image_link"`
}
