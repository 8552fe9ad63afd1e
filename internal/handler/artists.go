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

func (h *Handler) ListArtists(c echo.Context) error {
    artists, err := h.Artists.ListAll(c.Request().Context())
    if err != nil {
        return fmt.Errorf("list artists: %w", err)
    }
    return h.render(c, http.StatusOK, "pages/artists.html", "Artists", listing.NewArtistSummaries(artists))
}

// SearchArtists matches search_term against artist names, ignoring case.
func (h *Handler) SearchArtists(c echo.Context) error {
    ctx := c.Request().Context()
    term := searchTerm(c)
    metrics.Searches.WithLabelValues(q.KindArtist).Inc()

    artists, err := h.Artists.Search(ctx, term)
    if err != nil {
        return fmt.Errorf("search artists: %w", err)
    }
    ids := lo.Map(artists, func(a model.Artist, _ int) uint64 { return a.ID })
    shows, err := h.Shows.ListByArtists(ctx, ids)
    if err != nil {
        return fmt.Errorf("search artist shows: %w", err)
    }
    res := listing.NewArtistMatches(term, artists, listing.UpcomingByArtist(shows, h.now()))
    return h.render(c, http.StatusOK, "pages/search_artists.html", "Artist search", res)
}

func (h *Handler) ShowArtist(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    a, err := h.Artists.GetByID(ctx, id)
    if errors.Is(err, repository.ErrArtistNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return fmt.Errorf("get artist %d: %w", id, err)
    }
    genres, err := h.Genres.NamesForArtist(ctx, id)
    if err != nil {
        return fmt.Errorf("artist %d genres: %w", id, err)
    }
    shows, err := h.Shows.ListByArtist(ctx, id)
    if err != nil {
        return fmt.Errorf("artist %d shows: %w", id, err)
    }
    return h.render(c, http.StatusOK, "pages/show_artist.html", a.Name, listing.NewArtistDetail(*a, genres, shows, h.now()))
}

func (h *Handler) CreateArtistForm(c echo.Context) error {
    return h.renderForm(c, "forms/new_artist.html", "New artist", "/artists/create", form.ArtistForm{}, nil)
}

func (h *Handler) CreateArtist(c echo.Context) error {
    var f form.ArtistForm
    if errs := bindForm(c, &f); errs != nil {
        metrics.ListingFailures.WithLabelValues(q.KindArtist, metrics.ReasonValidation).Inc()
        h.notify(c, "Validation Failed!")
        return h.renderForm(c, "forms/new_artist.html", "New artist", "/artists/create", f, errs)
    }

    a := f.Artist()
    if err := h.Artists.Create(c.Request().Context(), &a, f.Genres); err != nil {
        h.logger(c).WithError(err).WithField("artist", a.Name).Error("create artist failed")
        metrics.ListingFailures.WithLabelValues(q.KindArtist, metrics.ReasonPersistence).Inc()
        h.notify(c, "An error occurred. Artist "+a.Name+" could not be listed.")
        return c.Redirect(http.StatusSeeOther, "/")
    }

    h.logger(c).WithFields(logrus.Fields{"artist_id": a.ID, "artist": a.Name}).Info("artist listed")
    metrics.ListingsCreated.WithLabelValues(q.KindArtist).Inc()
    h.notify(c, "Artist "+a.Name+" was successfully listed!")
    h.publish(c, q.ListingEvent{Kind: q.KindArtist, ID: a.ID, Name: a.Name})
    return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) EditArtistForm(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    a, err := h.Artists.GetByID(ctx, id)
    if errors.Is(err, repository.ErrArtistNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return fmt.Errorf("get artist %d: %w", id, err)
    }
    genres, err := h.Genres.NamesForArtist(ctx, id)
    if err != nil {
        return fmt.Errorf("artist %d genres: %w", id, err)
    }
    return h.renderForm(c, "forms/edit_artist.html", "Edit "+a.Name, editArtistPath(id), form.FromArtist(*a, genres), nil)
}

func (h *Handler) EditArtist(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    var f form.ArtistForm
    if errs := bindForm(c, &f); errs != nil {
        metrics.ListingFailures.WithLabelValues(q.KindArtist, metrics.ReasonValidation).Inc()
        h.notify(c, "Validation Failed!")
        return h.renderForm(c, "forms/edit_artist.html", "Edit artist", editArtistPath(id), f, errs)
    }

    a := f.Artist()
    a.ID = id
    err = h.Artists.Update(c.Request().Context(), &a, f.Genres)
    if errors.Is(err, repository.ErrArtistNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        h.logger(c).WithError(err).WithField("artist_id", id).Error("update artist failed")
        metrics.ListingFailures.WithLabelValues(q.KindArtist, metrics.ReasonPersistence).Inc()
        h.notify(c, "An error occurred. Artist "+a.Name+" could not be updated.")
    } else {
        metrics.ListingsUpdated.WithLabelValues(q.KindArtist).Inc()
        h.notify(c, "Artist "+a.Name+" was successfully updated!")
    }
    return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artists/%d", id))
}

func editArtistPath(id uint64) string { return fmt.Sprintf("/artists/%d/edit", id) }
