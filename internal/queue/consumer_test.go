package queue

import (
    "os"
    "path/filepath"
    "strings"
    "testing"

    "github.com/sirupsen/logrus/hooks/test"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func newTestConsumer(t *testing.T) *Consumer {
    log, _ := test.NewNullLogger()
    c := NewConsumer("amqp://unused", log)
    c.LogPath = filepath.Join(t.TempDir(), "logs", "listings.log")
    return c
}

func TestHandleMessageAppendsLines(t *testing.T) {
    c := newTestConsumer(t)

    require.NoError(t, c.HandleMessage([]byte(`{"kind":"venue","id":1,"name":"The Musical Hop","created_at":"2024-06-01T12:00:00Z"}`)))
    require.NoError(t, c.HandleMessage([]byte(`{"kind":"show","id":3,"artist_id":4,"venue_id":1,"start_time":"2035-04-01T20:00:00Z","created_at":"2024-06-01T12:01:00Z"}`)))

    data, err := os.ReadFile(c.LogPath)
    require.NoError(t, err)
    lines := strings.Split(strings.TrimSpace(string(data)), "\n")
    require.Len(t, lines, 2)
    assert.Equal(t, `[2024-06-01T12:00:00Z] Venue listed | id=1 | name="The Musical Hop"`, lines[0])
    assert.Equal(t, `[2024-06-01T12:01:00Z] Show listed | id=3 | artist_id=4 | venue_id=1 | start_time=2035-04-01T20:00:00Z`, lines[1])
}

func TestHandleMessageRejectsBadPayloads(t *testing.T) {
    c := newTestConsumer(t)
    assert.Error(t, c.HandleMessage([]byte(`not json`)))
    assert.Error(t, c.HandleMessage([]byte(`{"kind":"venue"}`)))

    _, err := os.Stat(c.LogPath)
    assert.True(t, os.IsNotExist(err))
}

func TestFormatLineArtist(t *testing.T) {
    line := FormatLine(ListingEvent{Kind: KindArtist, ID: 5, Name: "Matt Quevedo", CreatedAt: "t"})
    assert.Equal(t, "[t] Artist listed | id=5 | name=\"Matt Quevedo\"\n", line)
}
