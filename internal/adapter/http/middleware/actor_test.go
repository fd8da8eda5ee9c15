package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestActor_PropagatesHeader(t *testing.T) {
	var gotActor string
	var ok bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, ok = GetActorFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", nil)
	req.Header.Set(ActorHeader, "  treasurer-1  ")
	rr := httptest.NewRecorder()

	Actor(true)(next).ServeHTTP(rr, req)

	if !ok || gotActor != "treasurer-1" {
		t.Fatalf("expected trimmed actor from header, got %q ok=%v", gotActor, ok)
	}
}

func TestActor_RequiredRejectsMissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without an actor")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", nil)
	rr := httptest.NewRecorder()

	Actor(true)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestActor_OptionalAllowsMissingHeader(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := GetActorFromContext(r.Context()); ok {
			t.Fatal("expected no actor in context")
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	rr := httptest.NewRecorder()

	Actor(false)(next).ServeHTTP(rr, req)

	if !called {
		t.Fatal("expected handler to run")
	}
}
