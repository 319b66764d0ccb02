package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/km-arc/go-lifetime/framework/container"
	gohttp "github.com/km-arc/go-lifetime/framework/http"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newResponse(t *testing.T) (*gohttp.Response, *httptest.ResponseRecorder) {
	t.Helper()
	rr := httptest.NewRecorder()
	return gohttp.NewResponse(rr), rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&m); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	return m
}

// ── JSON ──────────────────────────────────────────────────────────────────────

func TestResponse_JSON(t *testing.T) {
	res, rr := newResponse(t)
	res.JSON(http.StatusOK, map[string]any{"key": "val"})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q want application/json", ct)
	}
	m := decodeJSON(t, rr)
	if m["key"] != "val" {
		t.Errorf("body key: got %v want val", m["key"])
	}
}

func TestResponse_Success(t *testing.T) {
	res, rr := newResponse(t)
	res.Success(map[string]any{"id": float64(1)})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	m := decodeJSON(t, rr)
	data, ok := m["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data envelope, got %T", m["data"])
	}
	if data["id"] != float64(1) {
		t.Errorf("data.id: got %v want 1", data["id"])
	}
}

// ── Errors ────────────────────────────────────────────────────────────────────

func TestResponse_ErrorHelpers(t *testing.T) {
	tests := []struct {
		name    string
		send    func(*gohttp.Response)
		code    int
		message string
	}{
		{"Error", func(r *gohttp.Response) { r.Error(http.StatusBadRequest, "bad input") }, 400, "bad input"},
		{"NotFound default", func(r *gohttp.Response) { r.NotFound() }, 404, "Not found."},
		{"NotFound custom", func(r *gohttp.Response) { r.NotFound("no such user") }, 404, "no such user"},
		{"ServerError default", func(r *gohttp.Response) { r.ServerError() }, 500, "Server Error."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			tt.send(res)

			if rr.Code != tt.code {
				t.Errorf("status: got %d want %d", rr.Code, tt.code)
			}
			if m := decodeJSON(t, rr); m["message"] != tt.message {
				t.Errorf("message: got %v want %q", m["message"], tt.message)
			}
		})
	}
}

func TestResponse_ResolveError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"unregistered", &container.UnregisteredServiceError{Name: "x"}, http.StatusNotFound},
		{"disposed", &container.DisposedProviderAccessError{Name: "x", Provider: "host"}, http.StatusServiceUnavailable},
		{"circular", &container.CircularDependencyError{Name: "x"}, http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			res.ResolveError(tt.err)
			if rr.Code != tt.code {
				t.Errorf("status: got %d want %d", rr.Code, tt.code)
			}
		})
	}
}
