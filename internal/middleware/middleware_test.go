package middleware

import (
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"
    "github.com/sirupsen/logrus/hooks/test"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/fyyur/internal/config"
)

func TestBuildRateKey(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/venues/search", nil)
    req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/venues/search")

    cfg := config.RateLimitConfig{Prefix: "fyyur:rl"}
    testCases := map[string]string{
        "ip":       "fyyur:rl:ip:10.0.0.7",
        "route":    "fyyur:rl:route:POST /venues/search",
        "ip_route": "fyyur:rl:ip:10.0.0.7:route:POST /venues/search",
        "":         "fyyur:rl:ip:10.0.0.7:route:POST /venues/search",
    }
    for strategy, want := range testCases {
        cfg.KeyStrategy = strategy
        assert.Equal(t, want, buildRateKey(cfg, c), strategy)
    }
}

func TestParseBucketResult(t *testing.T) {
    res, ok := parseBucketResult([]interface{}{int64(0), int64(0), int64(1500)})
    require.True(t, ok)
    assert.False(t, res.Allowed)
    assert.Equal(t, 1500*time.Millisecond, res.RetryAfter)

    res, ok = parseBucketResult([]interface{}{int64(1), "4", int64(0)})
    require.True(t, ok)
    assert.True(t, res.Allowed)
    assert.Equal(t, int64(4), res.Remaining)

    _, ok = parseBucketResult("nope")
    assert.False(t, ok)
}

func TestTokenBucketPassThroughWithoutRedis(t *testing.T) {
    log, _ := test.NewNullLogger()
    mw := NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, log)

    e := echo.New()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
    called := false
    require.NoError(t, mw(func(echo.Context) error { called = true; return nil })(c))
    assert.True(t, called)
}

func TestRequestLogger(t *testing.T) {
    log, hook := test.NewNullLogger()
    e := echo.New()
    e.Use(RequestLogger(log))
    e.GET("/ok", func(c echo.Context) error {
        _, ok := c.Get("logger").(logrus.FieldLogger)
        assert.True(t, ok)
        return c.String(http.StatusOK, "ok")
    })
    e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
    entry := hook.LastEntry()
    require.NotNil(t, entry)
    assert.Equal(t, logrus.InfoLevel, entry.Level)
    assert.Equal(t, http.StatusOK, entry.Data["status"])

    req := httptest.NewRequest(http.MethodGet, "/boom", nil)
    req.Header.Set(RequestIDHeader, "abc-123")
    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
    entry = hook.LastEntry()
    require.NotNil(t, entry)
    assert.Equal(t, logrus.ErrorLevel, entry.Level)
    assert.Equal(t, "abc-123", entry.Data["request_id"])
}
