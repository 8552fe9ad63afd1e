package form

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/iliyamo/fyyur/internal/model"
)

// ArtistForm is the new/edit artist submission.  Artists have no address.
type ArtistForm struct {
	Name               string   `form:"name" json:"name"`
	City               string   `form:"city" json:"city"`
	State              string   `form:"state" json:"state"`
	Phone              string   `form:"phone" json:"phone"`
	ImageLink          string   `form:"image_link" json:"image_link"`
	Genres             []string `form:"genres" json:"genres"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link"`
	WebsiteLink        string   `form:"website_link" json:"website_link"`
	SeekingVenue       Checkbox `form:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description"`
}

func (f *ArtistForm) Validate() error {
	trimAll(&f.Name, &f.City, &f.State, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription)
	f.Genres = trimGenres(f.Genres)

	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.City, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.State, validation.Required, validation.In(stateChoices...)),
		validation.Field(&f.Phone, validation.Required, phoneRule),
		validation.Field(&f.Genres, validation.Required, validation.Each(validation.In(genreChoices...))),
		validation.Field(&f.ImageLink, is.URL, validation.Length(0, 500)),
		validation.Field(&f.FacebookLink, is.URL, validation.Length(0, 120)),
		validation.Field(&f.WebsiteLink, is.URL, validation.Length(0, 500)),
	)
}

func (f ArtistForm) Artist() model.Artist {
	return model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingVenue:       f.SeekingVenue.Bool(),
		SeekingDescription: f.SeekingDescription,
	}
}

func FromArtist(a model.Artist, genres []string) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             genres,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.Website,
		SeekingVenue:       Checkbox(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}
