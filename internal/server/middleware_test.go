package server

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"metropath/internal/graph"
	"metropath/internal/handler"
	"metropath/internal/route"
)

func newTestServer(logOut io.Writer) *Server {
	g := graph.New()
	a := g.AddStation("Romolo", 1)
	b := g.AddStation("Duomo", 2)
	g.AddSegment(a, b, 300, []int{1})

	logger := slog.New(slog.NewTextHandler(logOut, nil))
	return New(8080, handler.New(g, route.LinearScan, nil, logger), logger)
}

func TestSecurityHeaders(t *testing.T) {
	ts := httptest.NewServer(newTestServer(io.Discard).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for k, v := range want {
		if got := resp.Header.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestRequestLogger_CapturesStatus(t *testing.T) {
	var buf bytes.Buffer
	h := newTestServer(&buf).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/route?from=Duomo&to=Romolo", nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	logged := buf.String()
	for _, want := range []string{"msg=request", "path=/route", "status=422"} {
		if !strings.Contains(logged, want) {
			t.Errorf("log %q does not contain %q", logged, want)
		}
	}
}

func TestRoutes(t *testing.T) {
	h := newTestServer(io.Discard).Handler()

	tests := []struct {
		method, target string
		want           int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/route?from=Romolo&to=Duomo", http.StatusOK},
		{http.MethodGet, "/route", http.StatusBadRequest},
		{http.MethodGet, "/stations", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodPost, "/route", http.StatusMethodNotAllowed},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
