package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSideEffectFailure(t *testing.T) {
	before := testutil.ToFloat64(SideEffectFailuresTotal.WithLabelValues(EffectNotification))
	RecordSideEffectFailure(EffectNotification)
	assert.Equal(t, before+1, testutil.ToFloat64(SideEffectFailuresTotal.WithLabelValues(EffectNotification)))
}

func TestRecordCatalogRequest(t *testing.T) {
	before := testutil.ToFloat64(CatalogRequestsTotal.WithLabelValues("tmdb", "success"))
	RecordCatalogRequest("tmdb", "success")
	RecordCatalogRequest("tmdb", "success")
	assert.Equal(t, before+2, testutil.ToFloat64(CatalogRequestsTotal.WithLabelValues("tmdb", "success")))
}

func TestObserveHTTPRequest_UnmatchedRoute(t *testing.T) {
	ObserveHTTPRequest("GET", "", 404, 10*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(HTTPRequestDuration, "cinelibri_http_request_duration_seconds"), 1)
}
