package mealapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/plateful/mealscan/internal/domain"
)

func TestGetTrends_PassesRawPayloadThrough(t *testing.T) {
	t.Parallel()

	const payload = `{"days":[{"date":"2026-08-01","calories":1810}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/analytics/trends" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("uid") != "uid-1" || q.Get("startDate") != "2026-08-01" || q.Get("endDate") != "2026-08-28" {
			t.Errorf("query = %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := NewClientWithURL(srv.URL, newTestLogger())

	raw, err := c.GetTrends(testCtx(), "2026-08-01", "2026-08-28")
	if err != nil {
		t.Fatalf("GetTrends() error = %v", err)
	}
	if string(raw) != payload {
		t.Errorf("GetTrends() = %s, want %s", raw, payload)
	}
}

func TestGetStreaks_FailureIsFetchError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClientWithURL(srv.URL, newTestLogger())

	if _, err := c.GetStreaks(testCtx()); err == nil {
		t.Fatal("GetStreaks() expected error")
	} else if !errors.Is(err, domain.ErrFetch) {
		t.Errorf("GetStreaks() error = %v, want ErrFetch", err)
	}
}
