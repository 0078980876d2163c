package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecoverer(t *testing.T) {
	t.Run("recovers from panic and returns 500", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("something broke")
		})

		handler := Recoverer(inner)

		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		rr := httptest.NewRecorder()

		// Must not panic past the middleware.
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status: got %d, want 500", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Internal Server Error") {
			t.Errorf("body: got %q, want Internal Server Error", rr.Body.String())
		}
	})

	t.Run("passes through normal requests untouched", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			w.Write([]byte("ok"))
		})

		handler := Recoverer(inner)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusTeapot {
			t.Errorf("status: got %d, want 418", rr.Code)
		}
		if rr.Body.String() != "ok" {
			t.Errorf("body: got %q, want ok", rr.Body.String())
		}
	})
}
