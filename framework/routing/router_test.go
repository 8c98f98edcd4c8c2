package routing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/km-arc/go-fixture/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Get(t *testing.T) {
	r := routing.New()
	r.Get("/healthz", okHandler)

	rr := do(t, r, http.MethodGet, "/healthz")
	if rr.Code != http.StatusOK {
		t.Errorf("GET /healthz: got %d want 200", rr.Code)
	}
}

func TestRouter_Head(t *testing.T) {
	r := routing.New()
	r.Head("/healthz", okHandler)

	rr := do(t, r, http.MethodHead, "/healthz")
	if rr.Code != http.StatusOK {
		t.Errorf("HEAD /healthz: got %d want 200", rr.Code)
	}
}

func TestRouter_Handle(t *testing.T) {
	r := routing.New()
	r.Handle("/metrics", http.HandlerFunc(okHandler))

	rr := do(t, r, http.MethodGet, "/metrics")
	if rr.Code != http.StatusOK {
		t.Errorf("GET /metrics: got %d want 200", rr.Code)
	}
}

// ── 404 / 405 ────────────────────────────────────────────────────────────────

func TestRouter_NotFound(t *testing.T) {
	r := routing.New()
	rr := do(t, r, http.MethodGet, "/not-registered")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestRouter_CustomNotFound(t *testing.T) {
	r := routing.New()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := do(t, r, http.MethodGet, "/nowhere")
	if rr.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", rr.Code)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := routing.New()
	r.Get("/v1/fixtures", okHandler)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte("nope"))
	})

	rr := do(t, r, http.MethodPost, "/v1/fixtures")
	if rr.Code != http.StatusMethodNotAllowed || rr.Body.String() != "nope" {
		t.Errorf("got %d %q", rr.Code, rr.Body.String())
	}
}

// ── Recoverer ────────────────────────────────────────────────────────────────

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New()
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rr := do(t, r, http.MethodGet, "/boom")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

// ── Route params ─────────────────────────────────────────────────────────────

func TestRouter_Param(t *testing.T) {
	r := routing.New()
	r.Get("/fixtures/{name}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(routing.Param(req, "name")))
	})

	rr := do(t, r, http.MethodGet, "/fixtures/user")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	if rr.Body.String() != "user" {
		t.Errorf("got body %q want %q", rr.Body.String(), "user")
	}
}

func TestRouter_RoutePattern(t *testing.T) {
	var pattern string
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			pattern = routing.RoutePattern(req)
		})
	}

	r := routing.New()
	r.Middleware(mw)
	r.Prefix("/v1", func(v1 *routing.Router) {
		v1.Get("/fixtures/{name}", okHandler)
	})

	do(t, r, http.MethodGet, "/v1/fixtures/user")
	if pattern != "/v1/fixtures/{name}" {
		t.Errorf("pattern: got %q", pattern)
	}
}

func TestRoutePattern_OutsideRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := routing.RoutePattern(req); got != "" {
		t.Errorf("expected empty pattern, got %q", got)
	}
}

// ── Prefix / Group ───────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New()
	r.Prefix("/v1", func(api *routing.Router) {
		api.Get("/fixtures", okHandler)
	})

	rr := do(t, r, http.MethodGet, "/v1/fixtures")
	if rr.Code != http.StatusOK {
		t.Errorf("GET /v1/fixtures: got %d want 200", rr.Code)
	}

	// Root must 404
	rr2 := do(t, r, http.MethodGet, "/fixtures")
	if rr2.Code != http.StatusNotFound {
		t.Errorf("GET /fixtures: expected 404, got %d", rr2.Code)
	}
}

func TestRouter_Group_Middleware(t *testing.T) {
	called := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	r := routing.New()
	r.Group(func(g *routing.Router) {
		g.Middleware(mw)
		g.Get("/limited", okHandler)
	})
	r.Get("/open", okHandler)

	do(t, r, http.MethodGet, "/open")
	if called {
		t.Error("middleware leaked outside its group")
	}
	do(t, r, http.MethodGet, "/limited")
	if !called {
		t.Error("expected middleware to be called")
	}
}

// ── Handler() returns http.Handler ───────────────────────────────────────────

func TestRouter_HandlerInterface(t *testing.T) {
	r := routing.New()
	r.Get("/ping", okHandler)
	var _ http.Handler = r.Handler()
}
