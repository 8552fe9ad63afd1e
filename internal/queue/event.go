// Package queue defines message payloads exchanged over the message broker.
package queue

// ListingQueueName is the durable queue carrying ListingEvent messages.
const ListingQueueName = "listing.created"

// Kinds of listing.
const (
    KindVenue  = "venue"
    KindArtist = "artist"
    KindShow   = "show"
)

// ListingEvent is published after a venue, artist or show has been stored.
// It carries enough for downstream consumers to log or notify without
// querying the primary database.  VenueID, ArtistID and StartTime are only
// set for shows.
type ListingEvent struct {
    Kind      string `json:"kind"`
    ID        uint64 `json:"id"`
    Name      string `json:"name,omitempty"`
    VenueID   uint64 `json:"venue_id,omitempty"`
    ArtistID  uint64 `json:"artist_id,omitempty"`
    StartTime string `json:"start_time,omitempty"`
    CreatedAt string `json:"created_at"`
}
