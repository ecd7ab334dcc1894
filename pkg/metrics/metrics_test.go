package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Middleware)
	router.Get("/api/admin/affiliates/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/api/admin/affiliates/{id}", "418"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/affiliates/17", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/api/admin/affiliates/{id}", "418"))
	assert.Equal(t, before+1, after)
}

func TestCounters_AreRegistered(t *testing.T) {
	Commissions.WithLabelValues("record", OutcomeOK).Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(Commissions.WithLabelValues("record", OutcomeOK)), 1.0)
}
