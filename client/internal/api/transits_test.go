package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/hectorherrerafullstack/astroApi/client/internal/errors"
)

func TestGetTransits_QueryParams(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/transits/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		q := r.URL.Query()
		if q.Get("timezone") != "America/Tegucigalpa" || q.Get("date") != "2024-05-01" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"date":"2024-05-01","timezone":"America/Tegucigalpa","transits":{"sun":{"longitude":41.2,"speed":0.97,"sign":"Tauro","sign_index":1,"degree_in_sign":11.2}}}`))
	}))
	defer srv.Close()

	ts, err := GetTransits(context.Background(), srv.Client(), srv.URL, "2024-05-01", "America/Tegucigalpa")
	if err != nil {
		t.Fatalf("GetTransits error: %v", err)
	}
	if ts.Date != "2024-05-01" || ts.Transits["sun"].SignIndex != 1 {
		t.Fatalf("unexpected transit set %+v", ts)
	}
}

func TestGetTransits_DateOmitted(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Has("date") {
			t.Errorf("date must be omitted, got %s", r.URL.RawQuery)
		}
		if q.Get("timezone") != "UTC" {
			t.Errorf("timezone = %q", q.Get("timezone"))
		}
		_, _ = w.Write([]byte(`{"date":"2024-05-01","timezone":"UTC","transits":{}}`))
	}))
	defer srv.Close()

	if _, err := GetTransits(context.Background(), srv.Client(), srv.URL, "", ""); err != nil {
		t.Fatalf("GetTransits error: %v", err)
	}
}

func TestGetTransits_NonOK(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	if _, err := GetTransits(context.Background(), srv.Client(), srv.URL, "", "UTC"); !apierrors.IsServiceError(err) {
		t.Fatalf("expected service error, got %v", err)
	}
}
