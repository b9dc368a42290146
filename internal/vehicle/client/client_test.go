package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"garage_portal_backend/platform/config"
	"garage_portal_backend/platform/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{RegistryURL: srv.URL, RegistryTimeout: 2 * time.Second}
	return New(cfg, logger.New("development")), srv
}

func TestSearchDecodesRecords(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("kenteken")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"kenteken":"AA11BB","merk":"BMW","handelsbenaming":"320I","datum_eerste_toelating":"20190315","aantal_cilinders":"4","vervaldatum_apk":"20260801"}]`))
	})

	records, err := c.Search(context.Background(), "AA11BB")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotQuery != "AA11BB" {
		t.Fatalf("expected kenteken query AA11BB, got %q", gotQuery)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Merk != "BMW" || records[0].AantalCilinders != "4" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	records, err := c.Search(context.Background(), "ZZ00ZZ")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestSearchUpstreamError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.Search(context.Background(), "AA11BB"); err == nil {
		t.Fatal("expected error for upstream 500")
	}
}

func TestSearchMalformedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	})

	if _, err := c.Search(context.Background(), "AA11BB"); err == nil {
		t.Fatal("expected decode error for malformed body")
	}
}

func TestSearchRespectsContextCancellation(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := c.Search(ctx, "AA11BB"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
