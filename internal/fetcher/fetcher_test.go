package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ang-eichhorst/2025municipalelections/internal/logger"
)

const (
	versionBody  = `{"Version": 12}`
	lookupBody   = `{"townIds": {"5": "Hartford"}}`
	electionBody = `{"voterTurnout": {"5": {"NM": "Hartford"}}}`
)

func testLogger() *logger.Logger {
	return logger.NewLogger("error")
}

func TestFetch_UnversionedPath(t *testing.T) {
	var hits []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.Path)

		switch r.URL.Path {
		case "/97/Version.json":
			_, _ = w.Write([]byte(versionBody))
		case "/97/Lookup.json":
			_, _ = w.Write([]byte(lookupBody))
		case "/97/Election.json":
			_, _ = w.Write([]byte(electionBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := New(srv.URL, 5*time.Second, testLogger())

	lookup, election, version, err := f.Fetch(context.Background(), 97)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if version != "12" {
		t.Errorf("version = %q, want 12 (bare number in marker)", version)
	}

	if lookup.TownIDs["5"] != "Hartford" {
		t.Errorf("lookup towns = %v", lookup.TownIDs)
	}

	if _, ok := election.VoterTurnout["5"]; !ok {
		t.Errorf("election turnout = %v", election.VoterTurnout)
	}

	for _, path := range hits {
		if strings.Contains(path, "/12/") {
			t.Errorf("versioned path %s was fetched although the unversioned path succeeded", path)
		}
	}
}

func TestFetch_FallsBackToVersionedPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/97/Version.json":
			_, _ = w.Write([]byte(versionBody))
		case "/97/12/Lookupdata.json":
			_, _ = w.Write([]byte(lookupBody))
		case "/97/12/Electiondata.json":
			_, _ = w.Write([]byte(electionBody))
		default:
			// Finalized election: unversioned documents are gone.
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := New(srv.URL, 5*time.Second, testLogger())

	lookup, _, version, err := f.Fetch(context.Background(), 97)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if version != "12" || lookup.TownIDs["5"] != "Hartford" {
		t.Errorf("fallback fetch: version = %q, towns = %v", version, lookup.TownIDs)
	}
}

func TestFetch_VersionMarkerFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := New(srv.URL, 5*time.Second, testLogger())

	_, _, _, err := f.Fetch(context.Background(), 97)
	if err == nil {
		t.Fatal("Fetch succeeded, want error when the version marker is unavailable")
	}

	if !strings.Contains(err.Error(), "election 97") {
		t.Errorf("error %q does not carry the election identifier", err)
	}
}

func TestFetch_MalformedJSONDoesNotTriggerFallback(t *testing.T) {
	var versionedHit bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/12/") {
			versionedHit = true
		}

		switch r.URL.Path {
		case "/97/Version.json":
			_, _ = w.Write([]byte(versionBody))
		case "/97/Lookup.json":
			_, _ = w.Write([]byte(`{not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := New(srv.URL, 5*time.Second, testLogger())

	_, _, _, err := f.Fetch(context.Background(), 97)
	if err == nil {
		t.Fatal("Fetch succeeded, want decode error")
	}

	if versionedHit {
		t.Error("versioned path was consulted; only HTTP-level failures fall back")
	}
}

func TestFetch_VersionedPathAlsoFailing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/97/Version.json" {
			_, _ = w.Write([]byte(versionBody))

			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(srv.URL, 5*time.Second, testLogger())

	_, _, _, err := f.Fetch(context.Background(), 97)
	if err == nil {
		t.Fatal("Fetch succeeded, want error when both path shapes fail")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error %v does not wrap a StatusError", err)
	}

	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}
