package metrics_test

import (
    "testing"

    "github.com/prometheus/client_golang/prometheus/testutil"
    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/fyyur/internal/metrics"
)

func TestCounters(t *testing.T) {
    before := testutil.ToFloat64(metrics.ListingFailures.WithLabelValues("venue", metrics.ReasonValidation))
    metrics.ListingFailures.WithLabelValues("venue", metrics.ReasonValidation).Inc()
    after := testutil.ToFloat64(metrics.ListingFailures.WithLabelValues("venue", metrics.ReasonValidation))
    assert.Equal(t, before+1, after)
}
