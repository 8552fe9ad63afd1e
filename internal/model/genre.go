package model

// Genre is a shared descriptive tag attached to venues and artists through
// the genres_venues and genres_artists join tables.  Names are unique.
//
// Fields:
//  ID   – primary key identifier.
//  Name – display name, e.g. "Jazz".
type Genre struct {
    ID   uint64 `db:"id"`   // Genre.id
    Name string `db:"name"` // Genre.name
}
