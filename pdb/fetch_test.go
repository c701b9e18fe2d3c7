package pdb_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/helixbio/structq/pdb"
)

// fetchServer pretends to be the download site. It knows exactly one
// entry, 1abc.
func fetchServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/download/1abc.pdb" {
				w.Write([]byte(smallPDB))
				return
			}
			http.NotFound(w, r)
		}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchFrom(t *testing.T) {
	srv := fetchServer(t)
	s, err := FetchFrom(srv.URL+"/download/", "1abc")
	if err != nil {
		t.Fatal("fetching from test server:", err)
	}
	if s.ID != "1abc" {
		t.Error("want id 1abc, got", s.ID)
	}
	if s.NAtoms() != 6 {
		t.Error("want 6 atoms, got", s.NAtoms())
	}
}

func TestFetchMissingEntry(t *testing.T) {
	srv := fetchServer(t)
	s, err := FetchFrom(srv.URL+"/download/", "2nope")
	if err == nil {
		t.Fatal("five character code should be refused")
	}
	if s != nil {
		t.Error("no structure should come back with an error")
	}

	s, err = FetchFrom(srv.URL+"/download/", "9zzz")
	if err == nil || s != nil {
		t.Fatal("missing entry must fail and return no structure")
	}
	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("want FetchError, got %T", err)
	}
	if ferr.Status == "" {
		t.Error("a 404 should carry the http status, got", ferr)
	}
	if ferr.Timeout() {
		t.Error("a 404 is not a timeout")
	}
}

func TestFetchDeadServer(t *testing.T) {
	srv := fetchServer(t)
	base := srv.URL + "/download/"
	srv.Close()
	_, err := FetchFrom(base, "1abc")
	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("a dead server should give a FetchError, got %T %v", err, err)
	}
	if ferr.Status != "" {
		t.Error("transport failures have no http status")
	}
	if ferr.Unwrap() == nil {
		t.Error("transport failures should carry the underlying error")
	}
}
