package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/v1/evaluate", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	r.Get("/v1/slots", func(w http.ResponseWriter, _ *http.Request) {})
	r.Get("/v1/fail", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Get("/v1/docs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func TestMiddleware_RecordsRouteAndStatus(t *testing.T) {
	r := newRouter()

	tests := []struct {
		method string
		path   string
		route  string
		status string
	}{
		{"POST", "/v1/evaluate", "/v1/evaluate", "200"},
		{"GET", "/v1/slots", "/v1/slots", "200"},
		{"GET", "/v1/fail", "/v1/fail", "400"},
		{"GET", "/v1/docs/abc", "/v1/docs/{id}", "200"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status))

			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{"query":{}}`))
			r.ServeHTTP(httptest.NewRecorder(), req)

			after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status))
			if after-before != 1 {
				t.Errorf("requests_total{%s %s %s} delta = %v, want 1", tc.method, tc.route, tc.status, after-before)
			}
		})
	}

	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())

	var during float64
	r.Get("/probe", func(w http.ResponseWriter, _ *http.Request) {
		during = testutil.ToFloat64(httpRequestsInFlight)
	})

	before := testutil.ToFloat64(httpRequestsInFlight)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/probe", http.NoBody))

	if during != before+1 {
		t.Errorf("in-flight during request = %v, want %v", during, before+1)
	}
	if got := testutil.ToFloat64(httpRequestsInFlight); got != before {
		t.Errorf("in-flight after request = %v, want %v", got, before)
	}
}

func TestMiddleware_BodyBytes(t *testing.T) {
	r := newRouter()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/v1/evaluate", strings.NewReader(`{"query":{"target_slot":"when"}}`)))

	if testutil.CollectAndCount(httpRequestBodyBytes) == 0 {
		t.Error("expected body size observation")
	}
}

func TestRouteLabel_NoRouteContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", http.NoBody)
	if got := routeLabel(req); got != "unknown" {
		t.Errorf("routeLabel = %q, want unknown", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/v1/evaluate/batch", "/v1/evaluate/batch"},
		{"/health", "/health"},
	}

	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestRegisterGateMetrics_Idempotent(t *testing.T) {
	RegisterGateMetrics()
	RegisterGateMetrics()
	if !gateMetricsRegistered {
		t.Fatal("gate metrics not registered")
	}
}
