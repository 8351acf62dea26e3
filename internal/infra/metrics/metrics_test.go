package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/speechkit/internal/infra/metrics"
)

func TestObserveCallCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(metrics.ExternalCallErrorsTotal.WithLabelValues("polly", "synthesize_test"))

	var okErr error
	metrics.ObserveCall("polly", "synthesize_test", time.Now(), &okErr)

	failErr := errors.New("boom")
	metrics.ObserveCall("polly", "synthesize_test", time.Now(), &failErr)

	after := testutil.ToFloat64(metrics.ExternalCallErrorsTotal.WithLabelValues("polly", "synthesize_test"))
	assert.InDelta(t, 1, after-before, 0.0001)
}

func TestHandlerExposesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg))

	var err error
	metrics.ObserveCall("s3", "get_object", time.Now(), &err)

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "external_call_duration_seconds")
}
