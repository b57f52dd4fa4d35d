package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealth_ReadsProvenanceHeaders(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("X-Source-Code", "https://example.com/astro-backend")
		w.Header().Set("X-License", "AGPL-3.0-only")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	hs, err := Health(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("Health error: %v", err)
	}
	if hs.Status != "ok" || hs.License != "AGPL-3.0-only" || hs.SourceCode == "" {
		t.Fatalf("unexpected health %+v", hs)
	}
}

func TestHealth_NonOK(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	if _, err := Health(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected error for 502")
	}
}
