// Package router wires handlers to their routes.
package router

import (
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/prometheus/client_golang/prometheus/promhttp"

    "github.com/iliyamo/fyyur/internal/handler"
    "github.com/iliyamo/fyyur/internal/middleware"
    "github.com/iliyamo/fyyur/internal/web"
)

// New builds the echo instance for the directory: templates, error pages,
// request logging and every route.  limiter may be nil.
func New(h *handler.Handler, db handler.Pinger, limiter echo.MiddlewareFunc) *echo.Echo {
    e := echo.New()
    e.HideBanner = true
    e.HidePort = true
    e.Renderer = web.MustRenderer()
    e.HTTPErrorHandler = h.HTTPErrorHandler
    e.Use(middleware.RequestLogger(h.Log), echomw.Recover())

    RegisterOps(e, db)
    RegisterRoutes(e, h, limiter)
    return e
}

// RegisterOps exposes the health check and Prometheus metrics.
func RegisterOps(e *echo.Echo, db handler.Pinger) {
    e.GET("/healthz", handler.Health(db))
    e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterRoutes registers the venue, artist and show pages.  Writes and
// searches go through limiter when one is given.  Static segments such as
// /venues/create take precedence over /venues/:id.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, limiter echo.MiddlewareFunc) {
    var limited []echo.MiddlewareFunc
    if limiter != nil {
        limited = append(limited, limiter)
    }

    e.GET("/", h.Home)

    v := e.Group("/venues")
    v.GET("", h.ListVenues)
    v.POST("/search", h.SearchVenues, limited...)
    v.GET("/create", h.CreateVenueForm)
    v.POST("/create", h.CreateVenue, limited...)
    v.GET("/:id", h.ShowVenue)
    v.DELETE("/:id", h.DeleteVenue, limited...)
    v.GET("/:id/edit", h.EditVenueForm)
    v.POST("/:id/edit", h.EditVenue, limited...)

    a := e.Group("/artists")
    a.GET("", h.ListArtists)
    a.POST("/search", h.SearchArtists, limited...)
    a.GET("/create", h.CreateArtistForm)
    a.POST("/create", h.CreateArtist, limited...)
    a.GET("/:id", h.ShowArtist)
    a.GET("/:id/edit", h.EditArtistForm)
    a.POST("/:id/edit", h.EditArtist, limited...)

    s := e.Group("/shows")
    s.GET("", h.ListShows)
    s.POST("/search", h.SearchShows, limited...)
    s.GET("/create", h.CreateShowForm)
    s.POST("/create", h.CreateShow, limited...)
}
