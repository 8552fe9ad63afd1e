package form

import (
	"errors"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/iliyamo/fyyur/internal/model"
)

// Accepted start_time layouts.  Times without an offset are taken as UTC.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ShowForm is the new show submission.  Ids arrive as text from the HTML
// form and are parsed after validation.
type ShowForm struct {
	ArtistID  string `form:"artist_id" json:"artist_id"`
	VenueID   string `form:"venue_id" json:"venue_id"`
	StartTime string `form:"start_time" json:"start_time"`
}

func (f *ShowForm) Validate() error {
	trimAll(&f.ArtistID, &f.VenueID, &f.StartTime)
	return validation.ValidateStruct(f,
		validation.Field(&f.ArtistID, validation.Required, is.Digit, validation.By(validID)),
		validation.Field(&f.VenueID, validation.Required, is.Digit, validation.By(validID)),
		validation.Field(&f.StartTime, validation.Required, validation.By(func(v interface{}) error {
			_, err := ParseStartTime(v.(string))
			return err
		})),
	)
}

// validID rejects digit strings too large for an id column.
func validID(v interface{}) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseUint(s, 10, 64); err != nil {
		return errors.New("must be a valid id")
	}
	return nil
}

// Show builds the row to store.
func (f ShowForm) Show() (model.Show, error) {
	artistID, err := strconv.ParseUint(f.ArtistID, 10, 64)
	if err != nil {
		return model.Show{}, err
	}
	venueID, err := strconv.ParseUint(f.VenueID, 10, 64)
	if err != nil {
		return model.Show{}, err
	}
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return model.Show{}, err
	}
	return model.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}

// ParseStartTime parses a submitted start time and returns it in UTC.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("must be a date and time like 2006-01-02 15:04:05")
}
