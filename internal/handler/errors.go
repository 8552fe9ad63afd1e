package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/web"
)

// HTTPErrorHandler replaces echo's default handler.  Unknown routes and
// missing rows get the 404 page, unexpected errors are logged and get the
// 500 page; other HTTP errors are written as plain text.  Internal error
// text never reaches the client.
func (h *Handler) HTTPErrorHandler(err error, c echo.Context) {
    if c.Response().Committed {
        return
    }

    code := http.StatusInternalServerError
    msg := http.StatusText(code)
    var he *echo.HTTPError
    if errors.As(err, &he) {
        code = he.Code
        msg = http.StatusText(code)
        if s, ok := he.Message.(string); ok && code < http.StatusInternalServerError {
            msg = s
        }
    }
    if code == http.StatusInternalServerError {
        h.logger(c).WithError(err).Error("unhandled error")
    }

    var werr error
    switch {
    case c.Request().Method == http.MethodHead:
        werr = c.NoContent(code)
    case wantsJSON(c):
        werr = c.JSON(code, echo.Map{"error": msg})
    case code == http.StatusNotFound:
        werr = c.Render(code, "errors/404.html", web.Page{Title: "Not Found"})
    case code == http.StatusInternalServerError:
        werr = c.Render(code, "errors/500.html", web.Page{Title: "Server Error"})
    default:
        werr = c.String(code, msg)
    }
    if werr != nil {
        h.logger(c).WithError(werr).Warn("error response not written")
    }
}
