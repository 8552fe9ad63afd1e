package form

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/iliyamo/fyyur/internal/model"
)

// VenueForm is the new/edit venue submission.
type VenueForm struct {
	Name               string   `form:"name" json:"name"`
	City               string   `form:"city" json:"city"`
	State              string   `form:"state" json:"state"`
	Address            string   `form:"address" json:"address"`
	Phone              string   `form:"phone" json:"phone"`
	ImageLink          string   `form:"image_link" json:"image_link"`
	Genres             []string `form:"genres" json:"genres"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link"`
	WebsiteLink        string   `form:"website_link" json:"website_link"`
	SeekingTalent      Checkbox `form:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description"`
}

// Validate trims surrounding whitespace and checks every field.  Optional
// links are only checked when present.
func (f *VenueForm) Validate() error {
	trimAll(&f.Name, &f.City, &f.State, &f.Address, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription)
	f.Genres = trimGenres(f.Genres)

	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.City, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.State, validation.Required, validation.In(stateChoices...)),
		validation.Field(&f.Address, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.Phone, validation.Required, phoneRule),
		validation.Field(&f.Genres, validation.Required, validation.Each(validation.In(genreChoices...))),
		validation.Field(&f.ImageLink, is.URL, validation.Length(0, 500)),
		validation.Field(&f.FacebookLink, is.URL, validation.Length(0, 120)),
		validation.Field(&f.WebsiteLink, is.URL, validation.Length(0, 500)),
	)
}

// Venue builds the row to store.  Call Validate first.
func (f VenueForm) Venue() model.Venue {
	return model.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingTalent:      f.SeekingTalent.Bool(),
		SeekingDescription: f.SeekingDescription,
	}
}

// FromVenue pre-populates an edit form from a stored venue.
func FromVenue(v model.Venue, genres []string) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             genres,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.Website,
		SeekingTalent:      Checkbox(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}
