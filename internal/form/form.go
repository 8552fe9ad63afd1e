// Package form binds and validates the venue, artist and show submissions.
// Field names match the HTML forms; the same structs accept JSON bodies.
package form

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// phone numbers look like 123-123-1234, (123) 123-1234 or 123.123.1234
var phonePattern = regexp.MustCompile(`^\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}$`)

var phoneRule = validation.Match(phonePattern).Error("must be a valid phone number (xxx-xxx-xxxx)")

// FieldErrors flattens a validation error into field name -> message.  It
// returns nil for anything that is not a validation.Errors.
func FieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for field, e := range verrs {
		out[field] = e.Error()
	}
	return out
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func trimGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
