package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRecalculation_Outcomes(t *testing.T) {
	ok := recalculationsTotal.WithLabelValues(string(KindOffer), "ok")
	warn := recalculationsTotal.WithLabelValues(string(KindOffer), "warning")
	fail := recalculationsTotal.WithLabelValues(string(KindOffer), "error")
	beforeOK, beforeWarn, beforeFail := testutil.ToFloat64(ok), testutil.ToFloat64(warn), testutil.ToFloat64(fail)

	ObserveRecalculation(KindOffer, nil)
	ObserveRecalculation(KindOffer, ErrNoItems)
	ObserveRecalculation(KindOffer, errors.New("disk full"))

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(ok))
	assert.Equal(t, beforeWarn+1, testutil.ToFloat64(warn))
	assert.Equal(t, beforeFail+1, testutil.ToFloat64(fail))
}

func TestMetricsHandler_ServesCounters(t *testing.T) {
	ObserveExport("pdf", nil)

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tradeops_exports_total")
}
