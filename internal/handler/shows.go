package handler

import (
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/fyyur/internal/form"
    "github.com/iliyamo/fyyur/internal/listing"
    "github.com/iliyamo/fyyur/internal/metrics"
    q "github.com/iliyamo/fyyur/internal/queue"
    "github.com/iliyamo/fyyur/internal/repository"
)

// ListShows lists every show, most recent first.
func (h *Handler) ListShows(c echo.Context) error {
    shows, err := h.Shows.List(c.Request().Context())
    if err != nil {
        return fmt.Errorf("list shows: %w", err)
    }
    return h.render(c, http.StatusOK, "pages/shows.html", "Shows", listing.NewShowEntries(shows))
}

// SearchShows finds venues by name and returns all of their shows.
func (h *Handler) SearchShows(c echo.Context) error {
    ctx := c.Request().Context()
    term := searchTerm(c)
    metrics.Searches.WithLabelValues(q.KindShow).Inc()

    venues, err := h.Venues.Search(ctx, term)
    if err != nil {
        return fmt.Errorf("search show venues: %w", err)
    }
    shows, err := h.Shows.ListByVenues(ctx, venueIDs(venues))
    if err != nil {
        return fmt.Errorf("search shows: %w", err)
    }
    return h.render(c, http.StatusOK, "pages/search_shows.html", "Show search", listing.NewShowSearch(term, shows, h.now()))
}

func (h *Handler) CreateShowForm(c echo.Context) error {
    return h.renderForm(c, "forms/new_show.html", "New show", "/shows/create", form.ShowForm{}, nil)
}

// CreateShow stores a show.  Unknown artist or venue ids are rejected by
// the foreign keys and reported like any other storage failure.
func (h *Handler) CreateShow(c echo.Context) error {
    var f form.ShowForm
    if errs := bindForm(c, &f); errs != nil {
        metrics.ListingFailures.WithLabelValues(q.KindShow, metrics.ReasonValidation).Inc()
        h.notify(c, "Please try again! Enter a valid input.")
        return c.Redirect(http.StatusSeeOther, "/")
    }

    s, err := f.Show()
    if err == nil {
        err = h.Shows.Create(c.Request().Context(), &s)
    }
    if err != nil {
        log := h.logger(c).WithError(err).WithFields(logrus.Fields{"artist_id": f.ArtistID, "venue_id": f.VenueID})
        if repository.IsForeignKeyViolation(err) {
            log.Warn("create show: unknown artist or venue")
        } else {
            log.Error("create show failed")
        }
        metrics.ListingFailures.WithLabelValues(q.KindShow, metrics.ReasonPersistence).Inc()
        h.notify(c, "An error occurred. Show could not be listed.")
        return c.Redirect(http.StatusSeeOther, "/")
    }

    h.logger(c).WithFields(logrus.Fields{"show_id": s.ID, "start_time": s.StartTime}).Info("show listed")
    metrics.ListingsCreated.WithLabelValues(q.KindShow).Inc()
    h.notify(c, "Show was successfully listed!")
    h.publish(c, q.ListingEvent{
        Kind:      q.KindShow,
        ID:        s.ID,
        VenueID:   s.VenueID,
        ArtistID:  s.ArtistID,
        StartTime: s.StartTime.UTC().Format(time.RFC3339),
    })
    return c.Redirect(http.StatusSeeOther, "/")
}
