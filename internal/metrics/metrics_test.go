package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSettlementRecorder(t *testing.T) {
	rec := NewSettlementRecorder()

	spinsWin := testutil.ToFloat64(SpinsTotal.WithLabelValues("metrics-test", ResultWin))
	spinsLoss := testutil.ToFloat64(SpinsTotal.WithLabelValues("metrics-test", ResultLoss))
	wagered := testutil.ToFloat64(CreditsWagered.WithLabelValues("metrics-test"))
	paid := testutil.ToFloat64(CreditsPaidOut.WithLabelValues("metrics-test"))

	rec.ObserveSettlement("metrics-test", 100, 250, time.Millisecond)
	rec.ObserveSettlement("metrics-test", 40, 0, time.Millisecond)

	assert.Equal(t, spinsWin+1, testutil.ToFloat64(SpinsTotal.WithLabelValues("metrics-test", ResultWin)))
	assert.Equal(t, spinsLoss+1, testutil.ToFloat64(SpinsTotal.WithLabelValues("metrics-test", ResultLoss)))
	assert.Equal(t, wagered+140, testutil.ToFloat64(CreditsWagered.WithLabelValues("metrics-test")))
	assert.Equal(t, paid+250, testutil.ToFloat64(CreditsPaidOut.WithLabelValues("metrics-test")))

	failures := testutil.ToFloat64(SettlementFailures.WithLabelValues("MetricsTest"))
	rec.ObserveFailure("MetricsTest")
	assert.Equal(t, failures+1, testutil.ToFloat64(SettlementFailures.WithLabelValues("MetricsTest")))

	replays := testutil.ToFloat64(IdempotentReplays)
	rec.ObserveReplay()
	assert.Equal(t, replays+1, testutil.ToFloat64(IdempotentReplays))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/games/{gameID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/games/{gameID}", "418"))

	for _, id := range []string{"classic777", "neoncyber"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/games/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/games/{gameID}", "418")))
}

func TestMiddleware_Unmatched(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, UnmatchedRoute, "404"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, UnmatchedRoute, "404")))
}
