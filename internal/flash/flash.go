// Package flash carries one-shot notices such as "Venue X was successfully
// listed!" across a redirect.  Pending messages live in the request context
// and are mirrored into an HS256-signed cookie; the next page that renders
// pops and clears them.
package flash

import (
    "errors"
    "net/http"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// CookieName is the name of the signed flash cookie.
const CookieName = "fyyur_flash"

const pendingKey = "flash.pending"

// DefaultTTL bounds how long an unread notice survives.
const DefaultTTL = 5 * time.Minute

type claims struct {
    Messages []string `json:"msgs"`
    jwt.RegisteredClaims
}

// Store signs and verifies flash cookies with a shared secret.
type Store struct {
    secret []byte
    ttl    time.Duration
}

// NewStore returns a Store signing with secret.  The secret must not be
// empty.
func NewStore(secret string) *Store {
    if secret == "" {
        panic("flash: empty secret")
    }
    return &Store{secret: []byte(secret), ttl: DefaultTTL}
}

// Add queues msg for the next rendered page.  The cookie is re-signed with
// every message queued during this request.
func (s *Store) Add(c echo.Context, msg string) error {
    msgs := append(pending(c), msg)
    c.Set(pendingKey, msgs)

    token, err := s.sign(msgs)
    if err != nil {
        return err
    }
    c.SetCookie(&http.Cookie{
        Name:     CookieName,
        Value:    token,
        Path:     "/",
        Expires:  time.Now().Add(s.ttl),
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    })
    return nil
}

// Pop returns the messages carried by the incoming cookie followed by the
// ones queued during this request, and clears both.  A tampered or expired
// cookie contributes nothing.
func (s *Store) Pop(c echo.Context) []string {
    var out []string
    cookie, err := c.Cookie(CookieName)
    hadCookie := err == nil && cookie.Value != ""
    if hadCookie {
        if msgs, err := s.parse(cookie.Value); err == nil {
            out = append(out, msgs...)
        }
    }
    queued := pending(c)
    out = append(out, queued...)

    if hadCookie || len(queued) > 0 {
        c.Set(pendingKey, []string(nil))
        c.SetCookie(&http.Cookie{
            Name:     CookieName,
            Value:    "",
            Path:     "/",
            MaxAge:   -1,
            Expires:  time.Unix(0, 0),
            HttpOnly: true,
            SameSite: http.SameSiteLaxMode,
        })
    }
    return out
}

func pending(c echo.Context) []string {
    msgs, _ := c.Get(pendingKey).([]string)
    return msgs
}

func (s *Store) sign(msgs []string) (string, error) {
    now := time.Now().UTC()
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
        Messages: msgs,
        RegisteredClaims: jwt.RegisteredClaims{
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
        },
    })
    return t.SignedString(s.secret)
}

func (s *Store) parse(token string) ([]string, error) {
    var cl claims
    _, err := jwt.ParseWithClaims(token, &cl, func(*jwt.Token) (any, error) {
        return s.secret, nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
    if err != nil {
        return nil, err
    }
    if cl.Messages == nil {
        return nil, errors.New("flash: no messages")
    }
    return cl.Messages, nil
}
