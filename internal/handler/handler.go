// Package handler exposes the HTTP handlers of the venue, artist and show
// directory.  Every handler answers HTML by default and the typed listing
// payload as JSON when the client asks for application/json.
package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/jmoiron/sqlx"
    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/fyyur/internal/flash"
    "github.com/iliyamo/fyyur/internal/form"
    "github.com/iliyamo/fyyur/internal/middleware"
    q "github.com/iliyamo/fyyur/internal/queue"
    "github.com/iliyamo/fyyur/internal/repository"
    "github.com/iliyamo/fyyur/internal/service"
    "github.com/iliyamo/fyyur/internal/web"
)

// Handler bundles what the directory handlers need.  Now is read once per
// request to split shows into past and upcoming.
type Handler struct {
    Venues  *repository.VenueRepo
    Artists *repository.ArtistRepo
    Shows   *repository.ShowRepo
    Genres  *repository.GenreRepo
    Flash   *flash.Store
    Events  service.Publisher
    Log     logrus.FieldLogger
    Now     func() time.Time
}

// NewHandler wires the repositories over db.  A nil publisher drops
// listing events.
func NewHandler(db *sqlx.DB, notices *flash.Store, events service.Publisher, log logrus.FieldLogger) *Handler {
    if db == nil || notices == nil || log == nil {
        panic("handler: nil dependency")
    }
    if events == nil {
        events = service.NopPublisher{}
    }
    return &Handler{
        Venues:  repository.NewVenueRepo(db),
        Artists: repository.NewArtistRepo(db),
        Shows:   repository.NewShowRepo(db),
        Genres:  repository.NewGenreRepo(db),
        Flash:   notices,
        Events:  events,
        Log:     log,
        Now:     time.Now,
    }
}

func (h *Handler) now() time.Time { return h.Now().UTC() }

func (h *Handler) logger(c echo.Context) logrus.FieldLogger {
    return middleware.Logger(c, h.Log)
}

// notify queues a flash notice.  A signing failure only loses the notice.
func (h *Handler) notify(c echo.Context, msg string) {
    if err := h.Flash.Add(c, msg); err != nil {
        h.logger(c).WithError(err).Warn("flash: add failed")
    }
}

// publish announces a stored listing without failing the request.
func (h *Handler) publish(c echo.Context, ev q.ListingEvent) {
    ev.CreatedAt = h.now().Format(time.RFC3339)
    ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
    defer cancel()
    if err := h.Events.PublishListing(ctx, ev); err != nil {
        h.logger(c).WithError(err).WithFields(logrus.Fields{"kind": ev.Kind, "id": ev.ID}).Warn("listing event not published")
    }
}

func wantsJSON(c echo.Context) bool {
    return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// render writes data as JSON or as the named page.
func (h *Handler) render(c echo.Context, status int, name, title string, data any) error {
    if wantsJSON(c) {
        return c.JSON(status, data)
    }
    return c.Render(status, name, web.Page{Title: title, Flashes: h.Flash.Pop(c), Data: data})
}

// renderForm shows a new or edit form with the submitted values and any
// field errors.
func (h *Handler) renderForm(c echo.Context, name, title, action string, f any, errs map[string]string) error {
    if wantsJSON(c) {
        return c.JSON(http.StatusOK, echo.Map{
            "form":     f,
            "errors":   errs,
            "messages": h.Flash.Pop(c),
        })
    }
    return c.Render(http.StatusOK, name, web.Page{
        Title:   title,
        Flashes: h.Flash.Pop(c),
        Form:    f,
        Errors:  errs,
        Action:  action,
    })
}

type validator interface {
    Validate() error
}

// bindForm binds and validates a submission.  It returns one message per
// rejected field, or nil when the submission is valid.
func bindForm(c echo.Context, f validator) map[string]string {
    if err := c.Bind(f); err != nil {
        return map[string]string{"form": "could not read submission"}
    }
    if err := f.Validate(); err != nil {
        if errs := form.FieldErrors(err); len(errs) > 0 {
            return errs
        }
        return map[string]string{"form": err.Error()}
    }
    return nil
}

// pathID parses the numeric :id parameter.  Anything else is a 404.
func pathID(c echo.Context) (uint64, error) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, echo.ErrNotFound
    }
    return id, nil
}

func searchTerm(c echo.Context) string {
    return strings.TrimSpace(c.FormValue("search_term"))
}

// Home renders the landing page, which is where create flows end up.
func (h *Handler) Home(c echo.Context) error {
    if wantsJSON(c) {
        return c.JSON(http.StatusOK, echo.Map{"messages": h.Flash.Pop(c)})
    }
    return c.Render(http.StatusOK, "pages/home.html", web.Page{Title: "Fyyur", Flashes: h.Flash.Pop(c)})
}
