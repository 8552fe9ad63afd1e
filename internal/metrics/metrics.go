// Package metrics registers the Prometheus counters exported on /metrics.
package metrics

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

// Failure reasons.
const (
    ReasonValidation  = "validation"
    ReasonPersistence = "persistence"
)

var (
    // ListingsCreated counts stored listings by kind (venue, artist, show).
    ListingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "fyyur_listings_created_total",
        Help: "Listings stored, by kind.",
    }, []string{"kind"})

    // ListingsUpdated counts edited venues and artists.
    ListingsUpdated = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "fyyur_listings_updated_total",
        Help: "Listings edited, by kind.",
    }, []string{"kind"})

    // ListingFailures counts rejected or failed submissions.
    ListingFailures = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "fyyur_listing_failures_total",
        Help: "Listing submissions that were not stored, by kind and reason.",
    }, []string{"kind", "reason"})

    // Searches counts search requests by target.
    Searches = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "fyyur_searches_total",
        Help: "Search requests, by target.",
    }, []string{"target"})
)
