package model

// Venue is a place that can host shows.  Optional link columns are
// nullable in the database and read back as empty strings.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – venue name, searched case-insensitively.
//  City, State        – location; venues are grouped by this pair.
//  Address            – street address.
//  Phone              – contact number (xxx-xxx-xxxx).
//  ImageLink          – optional picture URL.
//  FacebookLink       – optional Facebook page URL.
//  Website            – optional website URL.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text shown when SeekingTalent is set.
type Venue struct {
    ID                 uint64 `db:"id"`                  // Venue.id
    Name               string `db:"name"`                // Venue.name
    City               string `db:"city"`                // Venue.city
    State              string `db:"state"`               // Venue.state
    Address            string `db:"address"`             // Venue.address
    Phone              string `db:"phone"`               // Venue.phone
    ImageLink          string `db:"image_link"`          // Venue.image_link (nullable)
    FacebookLink       string `db:"facebook_link"`       // Venue.facebook_link (nullable)
    Website            string `db:"website"`             // Venue.website (nullable)
    SeekingTalent      bool   `db:"seeking_talent"`      // Venue.seeking_talent
    SeekingDescription string `db:"seeking_description"` // Venue.seeking_description (nullable)
}
