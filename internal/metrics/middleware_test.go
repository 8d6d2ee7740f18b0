package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/account/state", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/account/state", "404")
	before := testutil.ToFloat64(counter)

	// Query parameters must not fan the series out
	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/state?address=GROWER1", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMiddlewareCapturesImplicitOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/healthz", "200")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
