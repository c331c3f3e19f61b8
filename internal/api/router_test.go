package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jengzang/solarmap-backend-go/internal/config"
	"github.com/jengzang/solarmap-backend-go/internal/dataset/datasettest"
	"github.com/jengzang/solarmap-backend-go/internal/middleware"
	"github.com/jengzang/solarmap-backend-go/internal/service"
)

func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) http.Handler {
	t.Helper()
	cfg := &config.Config{Server: config.ServerConfig{Mode: "test"}}
	svc := service.NewDashboardService(datasettest.New(t, datasettest.Rows(4, "Centro", "Tirol")))
	return SetupRouter(cfg, svc, limiter)
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		path         string
		wantStatus   int
		wantContains string
	}{
		{"/health", http.StatusOK, `"parcels":4`},
		{"/", http.StatusOK, "Solar Map"},
		{"/static/app.js", http.StatusOK, "plotly_click"},
		{"/metrics", http.StatusOK, "solarmap_parcels_loaded"},
		{"/api/v1/dashboard/layout", http.StatusOK, `"card_rows"`},
		{"/api/v1/parcels/1", http.StatusOK, `"neighborhood":"Centro"`},
		{"/api/v1/nope", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(r, tt.path)
			if w.Code != tt.wantStatus {
				t.Fatalf("GET %s status = %d, want %d", tt.path, w.Code, tt.wantStatus)
			}
			if !strings.Contains(w.Body.String(), tt.wantContains) {
				t.Errorf("GET %s body missing %q", tt.path, tt.wantContains)
			}
		})
	}
}

func TestIndexRendersLayout(t *testing.T) {
	r := newTestRouter(t, nil)
	body := get(r, "/").Body.String()
	for _, want := range []string{`<option value="Tirol">Tirol</option>`, `id="card-panel_count"`, "Clear filters", "Total parcels"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/dashboard/update", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("OPTIONS status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(middleware.RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
	if got := get(r, "/health").Header().Get(middleware.RequestIDHeader); got == "" {
		t.Error("request id should be generated")
	}
}

func TestRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(2, time.Hour)
	defer limiter.Stop()
	r := newTestRouter(t, limiter)

	for i := 0; i < 2; i++ {
		if w := get(r, "/api/v1/dashboard/layout"); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}
	}
	if w := get(r, "/api/v1/dashboard/layout"); w.Code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", w.Code)
	}
	// health is outside the limited group
	if w := get(r, "/health"); w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
}
