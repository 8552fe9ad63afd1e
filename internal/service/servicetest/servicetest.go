// Package servicetest provides in-memory publishers for tests.
package servicetest

import (
    "context"

    "github.com/iliyamo/fyyur/internal/queue"
)

// RecordingPublisher keeps every published event in memory.
type RecordingPublisher struct {
    Events []queue.ListingEvent
}

func (r *RecordingPublisher) PublishListing(_ context.Context, ev queue.ListingEvent) error {
    r.Events = append(r.Events, ev)
    return nil
}
