// Go to the protein data bank and download coordinates. The files
// live under a fixed template, base + code + ".pdb". There is no
// retrying and no authentication, just one GET with a deadline on
// it. Anything other than a happy status comes back as a FetchError
// so a caller can tell a download problem from a broken file.

package pdb

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// RcsbURL is where Fetch goes by default.
const RcsbURL = "https://files.rcsb.org/download/"

// FetchTimeout bounds the whole request. The old behaviour of
// blocking forever on a dead server helps nobody.
const FetchTimeout = 30 * time.Second

var httpClient = &http.Client{Timeout: FetchTimeout}

// Fetch downloads the entry with this four letter accession code
// from the RCSB and parses it. The body is parsed directly from the
// response, so a failed download never yields a partial structure.
func Fetch(acqCode string) (*Structure, error) {
	return FetchFrom(RcsbURL, acqCode)
}

// FetchFrom is Fetch against a chosen mirror. base should end in a
// slash. It exists because there is more than one site serving these
// files and because tests want to point it at a local server.
func FetchFrom(base, acqCode string) (*Structure, error) {
	if len(acqCode) != 4 {
		return nil, errors.New("acquisition code should be four char, not " + acqCode)
	}
	url := base + acqCode + ".pdb"

	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, &FetchError{ID: acqCode, URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{ID: acqCode, URL: url, Status: resp.Status}
	}

	s, err := Read(resp.Body)
	if err != nil {
		return nil, err
	}
	if s.ID == "" {
		s.ID = strings.ToLower(acqCode)
	}
	return s, nil
}
