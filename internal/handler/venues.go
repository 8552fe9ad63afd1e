package handler

import (
    "errors"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/samber/lo"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/fyyur/internal/form"
    "github.com/iliyamo/fyyur/internal/listing"
    "github.com/iliyamo/fyyur/internal/metrics"
    "github.com/iliyamo/fyyur/internal/model"
    q "github.com/iliyamo/fyyur/internal/queue"
    "github.com/iliyamo/fyyur/internal/repository"
)

// ListVenues groups every venue by city and state.
func (h *Handler) ListVenues(c echo.Context) error {
    ctx := c.Request().Context()
    venues, err := h.Venues.ListAll(ctx)
    if err != nil {
        return fmt.Errorf("list venues: %w", err)
    }
    shows, err := h.Shows.ListByVenues(ctx, venueIDs(venues))
    if err != nil {
        return fmt.Errorf("list venue shows: %w", err)
    }
    areas := listing.GroupByArea(venues, listing.UpcomingByVenue(shows, h.now()))
    return h.render(c, http.StatusOK, "pages/venues.html", "Venues", areas)
}

// SearchVenues matches search_term against venue names, ignoring case.
func (h *Handler) SearchVenues(c echo.Context) error {
    ctx := c.Request().Context()
    term := searchTerm(c)
    metrics.Searches.WithLabelValues(q.KindVenue).Inc()

    venues, err := h.Venues.Search(ctx, term)
    if err != nil {
        return fmt.Errorf("search venues: %w", err)
    }
    shows, err := h.Shows.ListByVenues(ctx, venueIDs(venues))
    if err != nil {
        return fmt.Errorf("search venue shows: %w", err)
    }
    res := listing.NewVenueMatches(term, venues, listing.UpcomingByVenue(shows, h.now()))
    return h.render(c, http.StatusOK, "pages/search_venues.html", "Venue search", res)
}

// ShowVenue renders one venue with its past and upcoming shows.
func (h *Handler) ShowVenue(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    v, err := h.Venues.GetByID(ctx, id)
    if errors.Is(err, repository.ErrVenueNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return fmt.Errorf("get venue %d: %w", id, err)
    }
    genres, err := h.Genres.NamesForVenue(ctx, id)
    if err != nil {
        return fmt.Errorf("venue %d genres: %w", id, err)
    }
    shows, err := h.Shows.ListByVenue(ctx, id)
    if err != nil {
        return fmt.Errorf("venue %d shows: %w", id, err)
    }
    return h.render(c, http.StatusOK, "pages/show_venue.html", v.Name, listing.NewVenueDetail(*v, genres, shows, h.now()))
}

func (h *Handler) CreateVenueForm(c echo.Context) error {
    return h.renderForm(c, "forms/new_venue.html", "New venue", "/venues/create", form.VenueForm{}, nil)
}

// CreateVenue stores a submitted venue and its genres in one transaction.
// A rejected form is shown again; every other outcome lands on the home
// page with a notice.
func (h *Handler) CreateVenue(c echo.Context) error {
    var f form.VenueForm
    if errs := bindForm(c, &f); errs != nil {
        metrics.ListingFailures.WithLabelValues(q.KindVenue, metrics.ReasonValidation).Inc()
        h.notify(c, "Validation Failed!")
        return h.renderForm(c, "forms/new_venue.html", "New venue", "/venues/create", f, errs)
    }

    v := f.Venue()
    if err := h.Venues.Create(c.Request().Context(), &v, f.Genres); err != nil {
        h.logger(c).WithError(err).WithField("venue", v.Name).Error("create venue failed")
        metrics.ListingFailures.WithLabelValues(q.KindVenue, metrics.ReasonPersistence).Inc()
        h.notify(c, "An error occurred. Venue "+v.Name+" could not be listed.")
        return c.Redirect(http.StatusSeeOther, "/")
    }

    h.logger(c).WithFields(logrus.Fields{"venue_id": v.ID, "venue": v.Name}).Info("venue listed")
    metrics.ListingsCreated.WithLabelValues(q.KindVenue).Inc()
    h.notify(c, "Venue "+v.Name+" was successfully listed!")
    h.publish(c, q.ListingEvent{Kind: q.KindVenue, ID: v.ID, Name: v.Name})
    return c.Redirect(http.StatusSeeOther, "/")
}

// EditVenueForm pre-populates the edit form from the stored venue.
func (h *Handler) EditVenueForm(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    v, err := h.Venues.GetByID(ctx, id)
    if errors.Is(err, repository.ErrVenueNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return fmt.Errorf("get venue %d: %w", id, err)
    }
    genres, err := h.Genres.NamesForVenue(ctx, id)
    if err != nil {
        return fmt.Errorf("venue %d genres: %w", id, err)
    }
    return h.renderForm(c, "forms/edit_venue.html", "Edit "+v.Name, editVenuePath(id), form.FromVenue(*v, genres), nil)
}

// EditVenue replaces a venue's fields and genres, then returns to its page.
func (h *Handler) EditVenue(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    var f form.VenueForm
    if errs := bindForm(c, &f); errs != nil {
        metrics.ListingFailures.WithLabelValues(q.KindVenue, metrics.ReasonValidation).Inc()
        h.notify(c, "Validation Failed!")
        return h.renderForm(c, "forms/edit_venue.html", "Edit venue", editVenuePath(id), f, errs)
    }

    v := f.Venue()
    v.ID = id
    err = h.Venues.Update(c.Request().Context(), &v, f.Genres)
    if errors.Is(err, repository.ErrVenueNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        h.logger(c).WithError(err).WithField("venue_id", id).Error("update venue failed")
        metrics.ListingFailures.WithLabelValues(q.KindVenue, metrics.ReasonPersistence).Inc()
        h.notify(c, "An error occurred. Venue "+v.Name+" could not be updated.")
    } else {
        metrics.ListingsUpdated.WithLabelValues(q.KindVenue).Inc()
        h.notify(c, "Venue "+v.Name+" was successfully updated!")
    }
    return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/venues/%d", id))
}

// DeleteVenue is routed but has no agreed semantics yet.
func (h *Handler) DeleteVenue(c echo.Context) error {
    if _, err := pathID(c); err != nil {
        return err
    }
    return echo.NewHTTPError(http.StatusNotImplemented, "deleting venues is not supported")
}

func editVenuePath(id uint64) string { return fmt.Sprintf("/venues/%d/edit", id) }

func venueIDs(venues []model.Venue) []uint64 {
    return lo.Map(venues, func(v model.Venue, _ int) uint64 { return v.ID })
}
