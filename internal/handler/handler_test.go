package handler_test

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "net/url"
    "strings"
    "testing"
    "time"

    "github.com/PuerkitoBio/goquery"
    "github.com/jmoiron/sqlx"
    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"
    "github.com/sirupsen/logrus/hooks/test"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/fyyur/internal/database/dbtest"
    "github.com/iliyamo/fyyur/internal/flash"
    "github.com/iliyamo/fyyur/internal/handler"
    "github.com/iliyamo/fyyur/internal/listing"
    "github.com/iliyamo/fyyur/internal/model"
    "github.com/iliyamo/fyyur/internal/queue"
    "github.com/iliyamo/fyyur/internal/router"
    "github.com/iliyamo/fyyur/internal/service/servicetest"
)

var now = time.Date(2030, 6, 1, 20, 0, 0, 0, time.UTC)

type app struct {
    t      *testing.T
    db     *sqlx.DB
    h      *handler.Handler
    e      *echo.Echo
    events *servicetest.RecordingPublisher
    hook   *test.Hook
}

func newApp(t *testing.T) *app {
    db := dbtest.New(t)
    log, hook := test.NewNullLogger()
    events := &servicetest.RecordingPublisher{}
    h := handler.NewHandler(db, flash.NewStore("test-secret"), events, log)
    h.Now = func() time.Time { return now }
    return &app{t: t, db: db, h: h, e: router.New(h, db, nil), events: events, hook: hook}
}

func (a *app) do(method, target string, form url.Values, jsonReply bool) *httptest.ResponseRecorder {
    a.t.Helper()
    var req *http.Request
    if form != nil {
        req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
    } else {
        req = httptest.NewRequest(method, target, nil)
    }
    if jsonReply {
        req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    a.e.ServeHTTP(rec, req)
    return rec
}

func (a *app) getJSON(target string, out any) {
    a.t.Helper()
    rec := a.do(http.MethodGet, target, nil, true)
    require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
    require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), out))
}

func (a *app) postJSON(target string, form url.Values, out any) {
    a.t.Helper()
    rec := a.do(http.MethodPost, target, form, true)
    require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
    require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), out))
}

// follow loads the redirect target of rec carrying its cookies and
// returns the flashed notices shown there.
func (a *app) follow(rec *httptest.ResponseRecorder) []string {
    a.t.Helper()
    loc := rec.Header().Get(echo.HeaderLocation)
    require.NotEmpty(a.t, loc)
    req := httptest.NewRequest(http.MethodGet, loc, nil)
    for _, c := range rec.Result().Cookies() {
        req.AddCookie(c)
    }
    next := httptest.NewRecorder()
    a.e.ServeHTTP(next, req)
    require.Equal(a.t, http.StatusOK, next.Code)
    return alerts(a.t, next)
}

func alerts(t *testing.T, rec *httptest.ResponseRecorder) []string {
    doc := parse(t, rec)
    var out []string
    doc.Find(".alert").Each(func(_ int, s *goquery.Selection) { out = append(out, s.Text()) })
    return out
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
    t.Helper()
    doc, err := goquery.NewDocumentFromReader(rec.Body)
    require.NoError(t, err)
    return doc
}

func (a *app) count(table string) int {
    a.t.Helper()
    var n int
    require.NoError(a.t, a.db.Get(&n, "SELECT COUNT(*) FROM `"+table+"`"))
    return n
}

func (a *app) venue(name, city, state string) uint64 {
    a.t.Helper()
    v := model.Venue{Name: name, City: city, State: state, Address: "1 Main St", Phone: "123-123-1234"}
    require.NoError(a.t, a.h.Venues.Create(context.Background(), &v, []string{"Jazz"}))
    return v.ID
}

func (a *app) artist(name string) uint64 {
    a.t.Helper()
    ar := model.Artist{Name: name, City: "San Francisco", State: "CA", Phone: "326-123-5000"}
    require.NoError(a.t, a.h.Artists.Create(context.Background(), &ar, []string{"Rock n Roll"}))
    return ar.ID
}

func (a *app) show(artistID, venueID uint64, start time.Time) {
    a.t.Helper()
    s := model.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}
    require.NoError(a.t, a.h.Shows.Create(context.Background(), &s))
}

func venueForm(name string, genres ...string) url.Values {
    return url.Values{
        "name":           {name},
        "city":           {"San Francisco"},
        "state":          {"CA"},
        "address":        {"1015 Folsom Street"},
        "phone":          {"123-123-1234"},
        "genres":         genres,
        "website_link":   {"https://www.themusicalhop.com"},
        "seeking_talent": {"y"},
    }
}

func TestVenuesGroupedByArea(t *testing.T) {
    a := newApp(t)
    hop := a.venue("The Musical Hop", "San Francisco", "CA")
    a.venue("Park Square Live Music & Coffee", "San Francisco", "CA")
    a.venue("The Dueling Pianos Bar", "New York", "NY")
    gnp := a.artist("Guns N Petals")
    a.show(gnp, hop, now.Add(24*time.Hour))
    a.show(gnp, hop, now.Add(-24*time.Hour))

    var areas []listing.Area
    a.getJSON("/venues", &areas)
    require.Len(t, areas, 2)
    for _, area := range areas {
        if area.City == "San Francisco" {
            require.Len(t, area.Venues, 2)
            assert.Equal(t, hop, area.Venues[0].ID)
            assert.Equal(t, 1, area.Venues[0].NumUpcomingShows)
            assert.Equal(t, 0, area.Venues[1].NumUpcomingShows)
        } else {
            assert.Equal(t, "NY", area.State)
            require.Len(t, area.Venues, 1)
            assert.Equal(t, "The Dueling Pianos Bar", area.Venues[0].Name)
        }
    }

    rec := a.do(http.MethodGet, "/venues", nil, false)
    require.Equal(t, http.StatusOK, rec.Code)
    doc := parse(t, rec)
    assert.Equal(t, 2, doc.Find(".area").Length())
    assert.Equal(t, 3, doc.Find(".venue").Length())
}

func TestSearchVenuesIgnoresCase(t *testing.T) {
    a := newApp(t)
    a.venue("The Musical Hop", "San Francisco", "CA")
    a.venue("The Dueling Pianos Bar", "New York", "NY")

    var res listing.SearchResult
    a.postJSON("/venues/search", url.Values{"search_term": {"  HOP "}}, &res)
    assert.Equal(t, "HOP", res.SearchTerm)
    require.Equal(t, 1, res.Count)
    assert.Equal(t, "The Musical Hop", res.Data[0].Name)

    a.postJSON("/venues/search", url.Values{"search_term": {""}}, &res)
    assert.Equal(t, 2, res.Count)

    rec := a.do(http.MethodPost, "/venues/search", url.Values{"search_term": {"zzz"}}, false)
    require.Equal(t, http.StatusOK, rec.Code)
    doc := parse(t, rec)
    assert.Equal(t, "0", doc.Find(".count").Text())
    assert.Equal(t, 0, doc.Find(".result").Length())
}

func TestSearchVenuesNonASCII(t *testing.T) {
    a := newApp(t)
    a.venue("ÉCOLE Hall", "Paris", "NY")

    var res listing.SearchResult
    for _, term := range []string{"ÉCOLE", "école"} {
        a.postJSON("/venues/search", url.Values{"search_term": {term}}, &res)
        assert.Equal(t, 1, res.Count, term)
    }
}

func TestSearchArtists(t *testing.T) {
    a := newApp(t)
    gnp := a.artist("Guns N Petals")
    a.artist("Matt Quevedo")
    a.artist("The Wild Sax Band")
    hop := a.venue("The Musical Hop", "San Francisco", "CA")
    a.show(gnp, hop, now)

    var res listing.SearchResult
    a.postJSON("/artists/search", url.Values{"search_term": {"A"}}, &res)
    assert.Equal(t, 3, res.Count)

    a.postJSON("/artists/search", url.Values{"search_term": {"band"}}, &res)
    require.Equal(t, 1, res.Count)
    assert.Equal(t, "The Wild Sax Band", res.Data[0].Name)

    a.postJSON("/artists/search", url.Values{"search_term": {"petals"}}, &res)
    require.Equal(t, 1, res.Count)
    assert.Equal(t, 1, res.Data[0].NumUpcomingShows, "a show starting now is upcoming")
}

func TestVenueDetailSplitsShows(t *testing.T) {
    a := newApp(t)
    hop := a.venue("The Musical Hop", "San Francisco", "CA")
    gnp := a.artist("Guns N Petals")
    for _, d := range []time.Duration{-48 * time.Hour, -time.Second, 0, 72 * time.Hour} {
        a.show(gnp, hop, now.Add(d))
    }

    var d listing.VenueDetail
    a.getJSON("/venues/1", &d)
    assert.Equal(t, hop, d.ID)
    assert.Equal(t, 2, d.PastShowsCount)
    assert.Equal(t, 2, d.UpcomingShowsCount)
    assert.Len(t, d.PastShows, 2)
    assert.Len(t, d.UpcomingShows, 2)
    assert.Equal(t, "Guns N Petals", d.UpcomingShows[0].ArtistName)

    var ad listing.ArtistDetail
    a.getJSON("/artists/1", &ad)
    assert.Equal(t, d.PastShowsCount, ad.PastShowsCount)
    assert.Equal(t, d.UpcomingShowsCount, ad.UpcomingShowsCount)
    assert.Equal(t, []string{"Rock n Roll"}, ad.Genres)

    rec := a.do(http.MethodGet, "/venues/1", nil, false)
    require.Equal(t, http.StatusOK, rec.Code)
    doc := parse(t, rec)
    assert.Equal(t, 2, doc.Find("#upcoming-shows .show").Length())
    assert.Equal(t, 2, doc.Find("#past-shows .show").Length())
}

func TestCreateVenueScenario(t *testing.T) {
    a := newApp(t)

    rec := a.do(http.MethodPost, "/venues/create", venueForm("The Musical Hop", "Jazz", "Folk"), false)
    require.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
    assert.Equal(t, []string{"Venue The Musical Hop was successfully listed!"}, a.follow(rec))

    var d listing.VenueDetail
    a.getJSON("/venues/1", &d)
    assert.Equal(t, "The Musical Hop", d.Name)
    assert.ElementsMatch(t, []string{"Jazz", "Folk"}, d.Genres)
    assert.True(t, d.SeekingTalent)
    assert.Equal(t, "https://www.themusicalhop.com", d.Website)
    assert.Zero(t, d.PastShowsCount)
    assert.Zero(t, d.UpcomingShowsCount)

    require.Len(t, a.events.Events, 1)
    assert.Equal(t, queue.KindVenue, a.events.Events[0].Kind)
    assert.Equal(t, uint64(1), a.events.Events[0].ID)
    assert.Equal(t, now.Format(time.RFC3339), a.events.Events[0].CreatedAt)
}

func TestCreateVenueReusesGenres(t *testing.T) {
    a := newApp(t)
    a.artist("Guns N Petals")
    _, err := a.h.Genres.Resolve(context.Background(), a.db, "Jazz")
    require.NoError(t, err)

    rec := a.do(http.MethodPost, "/venues/create", venueForm("The Musical Hop", "Jazz", "Jazz"), false)
    require.Equal(t, http.StatusSeeOther, rec.Code)

    n, err := a.h.Genres.CountByName(context.Background(), "Jazz")
    require.NoError(t, err)
    assert.Equal(t, 1, n)

    names, err := a.h.Genres.NamesForVenue(context.Background(), 1)
    require.NoError(t, err)
    assert.Equal(t, []string{"Jazz"}, names)
}

func TestCreateVenueValidationFailure(t *testing.T) {
    a := newApp(t)
    f := venueForm("", "Jazz")
    f.Set("phone", "12-34")

    rec := a.do(http.MethodPost, "/venues/create", f, false)
    require.Equal(t, http.StatusOK, rec.Code)
    doc := parse(t, rec)
    assert.Equal(t, "Validation Failed!", doc.Find(".alert").Text())
    assert.Equal(t, 1, doc.Find(`.field-error[data-field="name"]`).Length())
    assert.Equal(t, 1, doc.Find(`.field-error[data-field="phone"]`).Length())
    city, _ := doc.Find("input[name=city]").Attr("value")
    assert.Equal(t, "San Francisco", city)

    assert.Zero(t, a.count("Venue"))
    assert.Zero(t, a.count("Genre"))
    assert.Empty(t, a.events.Events)
}

func TestCreateVenueRollsBack(t *testing.T) {
    a := newApp(t)
    _, err := a.db.Exec("DROP TABLE genres_venues")
    require.NoError(t, err)

    rec := a.do(http.MethodPost, "/venues/create", venueForm("The Musical Hop", "Jazz"), false)
    require.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, []string{"An error occurred. Venue The Musical Hop could not be listed."}, a.follow(rec))

    assert.Zero(t, a.count("Venue"))
    assert.Zero(t, a.count("Genre"))
    assert.Empty(t, a.events.Events)

    var logged bool
    for _, entry := range a.hook.AllEntries() {
        if entry.Level == logrus.ErrorLevel && entry.Message == "create venue failed" {
            logged = true
        }
    }
    assert.True(t, logged)
}

func TestCreateArtist(t *testing.T) {
    a := newApp(t)
    f := url.Values{
        "name":          {"Guns N Petals"},
        "city":          {"San Francisco"},
        "state":         {"CA"},
        "phone":         {"326-123-5000"},
        "genres":        {"Rock n Roll"},
        "seeking_venue": {"y"},
    }
    rec := a.do(http.MethodPost, "/artists/create", f, false)
    require.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, []string{"Artist Guns N Petals was successfully listed!"}, a.follow(rec))

    var list []listing.ArtistSummary
    a.getJSON("/artists", &list)
    assert.Equal(t, []listing.ArtistSummary{{ID: 1, Name: "Guns N Petals"}}, list)

    var d listing.ArtistDetail
    a.getJSON("/artists/1", &d)
    assert.True(t, d.SeekingVenue)

    f.Del("name")
    rec = a.do(http.MethodPost, "/artists/create", f, false)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, []string{"Validation Failed!"}, alerts(t, rec))
    assert.Equal(t, 1, a.count("Artist"))
}

func TestEditVenue(t *testing.T) {
    a := newApp(t)
    id := a.venue("The Musical Hop", "San Francisco", "CA")

    rec := a.do(http.MethodGet, "/venues/1/edit", nil, false)
    require.Equal(t, http.StatusOK, rec.Code)
    doc := parse(t, rec)
    name, _ := doc.Find("input[name=name]").Attr("value")
    assert.Equal(t, "The Musical Hop", name)
    action, _ := doc.Find("form.venue-form").Attr("action")
    assert.Equal(t, "/venues/1/edit", action)

    rec = a.do(http.MethodPost, "/venues/1/edit", venueForm("The Musical Hop Annex", "Rock n Roll", "Blues"), false)
    require.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, "/venues/1", rec.Header().Get(echo.HeaderLocation))

    v, err := a.h.Venues.GetByID(context.Background(), id)
    require.NoError(t, err)
    assert.Equal(t, "The Musical Hop Annex", v.Name)
    genres, err := a.h.Genres.NamesForVenue(context.Background(), id)
    require.NoError(t, err)
    assert.Equal(t, []string{"Blues", "Rock n Roll"}, genres)

    rec = a.do(http.MethodPost, "/venues/1/edit", venueForm("", "Jazz"), false)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, []string{"Validation Failed!"}, alerts(t, rec))
    v, err = a.h.Venues.GetByID(context.Background(), id)
    require.NoError(t, err)
    assert.Equal(t, "The Musical Hop Annex", v.Name)

    rec = a.do(http.MethodPost, "/venues/9/edit", venueForm("Elsewhere", "Jazz"), false)
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditArtist(t *testing.T) {
    a := newApp(t)
    id := a.artist("Guns N Petals")

    var f struct {
        Form struct {
            Name   string   `json:"name"`
            Genres []string `json:"genres"`
        } `json:"form"`
    }
    a.getJSON("/artists/1/edit", &f)
    assert.Equal(t, "Guns N Petals", f.Form.Name)
    assert.Equal(t, []string{"Rock n Roll"}, f.Form.Genres)

    rec := a.do(http.MethodPost, "/artists/1/edit", url.Values{
        "name":   {"Guns N Roses"},
        "city":   {"Los Angeles"},
        "state":  {"CA"},
        "phone":  {"326-123-5000"},
        "genres": {"Rock n Roll"},
    }, false)
    require.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, []string{"Artist Guns N Roses was successfully updated!"}, a.follow(rec))

    ar, err := a.h.Artists.GetByID(context.Background(), id)
    require.NoError(t, err)
    assert.Equal(t, "Los Angeles", ar.City)
    assert.False(t, ar.SeekingVenue)
}

func TestNotFound(t *testing.T) {
    a := newApp(t)
    for _, target := range []string{"/venues/1", "/venues/abc", "/artists/7", "/artists/1/edit", "/venues/1/edit", "/nowhere"} {
        rec := a.do(http.MethodGet, target, nil, false)
        require.Equal(t, http.StatusNotFound, rec.Code, target)
        assert.Equal(t, 1, parse(t, rec).Find(`section.error[data-status="404"]`).Length(), target)
    }

    rec := a.do(http.MethodGet, "/venues/1", nil, true)
    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestDeleteVenueNotImplemented(t *testing.T) {
    a := newApp(t)
    a.venue("The Musical Hop", "San Francisco", "CA")

    rec := a.do(http.MethodDelete, "/venues/1", nil, false)
    assert.Equal(t, http.StatusNotImplemented, rec.Code)
    assert.Equal(t, 1, a.count("Venue"))
}

func TestServerError(t *testing.T) {
    a := newApp(t)
    require.NoError(t, a.db.Close())

    rec := a.do(http.MethodGet, "/venues", nil, false)
    require.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.Equal(t, 1, parse(t, rec).Find(`section.error[data-status="500"]`).Length())
    assert.NotContains(t, rec.Body.String(), "database is closed")

    rec = a.do(http.MethodGet, "/healthz", nil, false)
    assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateShow(t *testing.T) {
    a := newApp(t)
    a.venue("The Musical Hop", "San Francisco", "CA")
    a.artist("Guns N Petals")

    rec := a.do(http.MethodPost, "/shows/create", url.Values{
        "artist_id":  {"1"},
        "venue_id":   {"1"},
        "start_time": {"2035-04-01 20:00:00"},
    }, false)
    require.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, []string{"Show was successfully listed!"}, a.follow(rec))
    require.Len(t, a.events.Events, 1)
    assert.Equal(t, "2035-04-01T20:00:00Z", a.events.Events[0].StartTime)

    rec = a.do(http.MethodPost, "/shows/create", url.Values{"artist_id": {"x"}, "venue_id": {"1"}}, false)
    require.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, []string{"Please try again! Enter a valid input."}, a.follow(rec))

    rec = a.do(http.MethodPost, "/shows/create", url.Values{
        "artist_id":  {"99999999999999999999999"},
        "venue_id":   {"1"},
        "start_time": {"2035-04-01 20:00:00"},
    }, false)
    require.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, []string{"Please try again! Enter a valid input."}, a.follow(rec))

    rec = a.do(http.MethodPost, "/shows/create", url.Values{
        "artist_id":  {"99"},
        "venue_id":   {"1"},
        "start_time": {"2035-04-01 20:00:00"},
    }, false)
    require.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, []string{"An error occurred. Show could not be listed."}, a.follow(rec))

    assert.Equal(t, 1, a.count("Show"))
}

func TestListAndSearchShows(t *testing.T) {
    a := newApp(t)
    hop := a.venue("The Musical Hop", "San Francisco", "CA")
    bar := a.venue("The Dueling Pianos Bar", "New York", "NY")
    gnp := a.artist("Guns N Petals")
    a.show(gnp, hop, now.Add(-time.Hour))
    a.show(gnp, hop, now.Add(time.Hour))
    a.show(gnp, bar, now.Add(2*time.Hour))

    var entries []listing.ShowEntry
    a.getJSON("/shows", &entries)
    require.Len(t, entries, 3)
    assert.Equal(t, bar, entries[0].VenueID, "most recent first")

    var res listing.ShowSearchResult
    a.postJSON("/shows/search", url.Values{"search_term": {"musical"}}, &res)
    require.Equal(t, 2, res.Count)
    assert.True(t, res.Data[0].IsUpcoming)
    assert.False(t, res.Data[1].IsUpcoming)

    rec := a.do(http.MethodPost, "/shows/search", url.Values{"search_term": {"musical"}}, false)
    require.Equal(t, http.StatusOK, rec.Code)
    doc := parse(t, rec)
    assert.Equal(t, 1, doc.Find(".result.show.upcoming").Length())
    assert.Equal(t, 1, doc.Find(".result.show.past").Length())
}

func TestPagesRender(t *testing.T) {
    a := newApp(t)
    for _, target := range []string{"/", "/artists", "/shows", "/venues/create", "/artists/create", "/shows/create"} {
        rec := a.do(http.MethodGet, target, nil, false)
        require.Equal(t, http.StatusOK, rec.Code, target)
        assert.Equal(t, 1, parse(t, rec).Find("nav.navbar").Length(), target)
    }

    rec := a.do(http.MethodGet, "/healthz", nil, false)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "ok", rec.Body.String())
}
