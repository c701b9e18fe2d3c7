// Error types for the pdb package. These carry enough context that
// the message can be printed without the caller adding anything, in
// the style of the line oriented reader errors we use elsewhere.
// Nothing is retried anywhere. All of these go straight back to the
// caller.

package pdb

import (
	"errors"
	"net"
	"strconv"
)

const maxMsgLen = 70

// ParseError says a line in the input could not be interpreted. We
// keep the line number and the start of the offending line, since
// that is what you want to see when a file is broken.
type ParseError struct {
	N    int    // line number, starting from 1, 0 if unknown
	Line string // the line that provoked the error
	Desc string // what was wrong with it
}

func (e *ParseError) Error() string {
	var msg string
	if e.N != 0 {
		msg = "line " + strconv.Itoa(e.N) + ": "
	}
	msg += e.Desc
	if e.Line != "" {
		l := e.Line
		if len(l) > maxMsgLen {
			l = l[:maxMsgLen]
		}
		msg += "\nline starting with\n" + l
	}
	return msg
}

// KeyNotFoundError means a chain or residue lookup failed. NoChain
// distinguishes a missing chain from a missing residue in a chain we
// did find.
type KeyNotFoundError struct {
	ChainID byte
	SeqNum  int
	NoChain bool
}

func (e *KeyNotFoundError) Error() string {
	if e.NoChain {
		return "no chain " + string(e.ChainID) + " in structure"
	}
	return "no residue " + strconv.Itoa(e.SeqNum) +
		" in chain " + string(e.ChainID)
}

// InvalidTargetError means somebody asked for the centroid of a
// residue with no atoms. There is no defensible answer, so it is an
// error rather than a zero value.
type InvalidTargetError struct {
	Name    string
	ChainID byte
	SeqNum  int
}

func (e *InvalidTargetError) Error() string {
	return "residue " + e.Name + " " + string(e.ChainID) + " " +
		strconv.Itoa(e.SeqNum) + " has no atoms, centroid undefined"
}

// FetchError is anything that went wrong getting a structure over
// http. Status is the http status line for a non-2xx answer and is
// empty when the transport itself failed, in which case Err says why.
type FetchError struct {
	ID     string
	URL    string
	Status string
	Err    error
}

func (e *FetchError) Error() string {
	s := "fetching " + e.ID + " from " + e.URL
	if e.Status != "" {
		return s + ": got " + e.Status
	}
	if e.Err != nil {
		return s + ": " + e.Err.Error()
	}
	return s
}

func (e *FetchError) Unwrap() error { return e.Err }

// Timeout says whether the fetch failed because the client timeout
// expired, so callers can tell a slow server from a missing entry.
func (e *FetchError) Timeout() bool {
	var ne net.Error
	if errors.As(e.Err, &ne) {
		return ne.Timeout()
	}
	return false
}
