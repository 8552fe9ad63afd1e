package model

// Artist is a performer who can be booked for shows.  Unlike a venue it has
// no street address.
type Artist struct {
    ID                 uint64 `db:"id"`                  // Artist.id
    Name               string `db:"name"`                // Artist.name
    City               string `db:"city"`                // Artist.city
    State              string `db:"state"`               // Artist.state
    Phone              string `db:"phone"`               // Artist.phone
    ImageLink          string `db:"image_link"`          // Artist.image_link (nullable)
    FacebookLink       string `db:"facebook_link"`       // Artist.facebook_link (nullable)
    Website            string `db:"website"`             // Artist.website (nullable)
    SeekingVenue       bool   `db:"seeking_venue"`       // Artist.seeking_venue
    SeekingDescription string `db:"seeking_description"` // Artist.seeking_description (nullable)
}
