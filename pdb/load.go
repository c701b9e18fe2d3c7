// Loading structures from disk or from text already in memory.
// Files are mapped rather than read, which costs nothing on small
// files and helps on the big multi model ones. A mapped or slurped
// file that starts with the gzip magic gets decompressed first.

package pdb

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"
)

var gzMagic = []byte{0x1f, 0x8b}

// Load accepts either the name of a coordinate file or raw
// coordinate text. If input names something that exists on disk, it
// is treated as a file. Anything else is parsed as text. That is the
// whole rule, so a misspelled file name turns into a parse error on
// the file name itself, which at least is easy to recognise.
func Load(input string) (*Structure, error) {
	if fi, err := os.Stat(input); err == nil && fi.Mode().IsRegular() {
		return ReadFile(input)
	}
	return Read(strings.NewReader(input))
}

// ReadFile reads one structure from a file, decompressing if it is
// gzipped. The accession code is guessed from the file name when the
// file has no usable HEADER record.
func ReadFile(fname string) (*Structure, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	var buf []byte
	if mm, e2 := mmap.Map(fp, mmap.RDONLY, 0); e2 == nil {
		defer mm.Unmap()
		buf = mm
	} else { // mapping can fail on odd filesystems, fall back to a slurp
		if buf, err = io.ReadAll(fp); err != nil {
			return nil, err
		}
	}

	var rdr io.Reader = bytes.NewReader(buf)
	if bytes.HasPrefix(buf, gzMagic) {
		zr, e2 := gzip.NewReader(rdr)
		if e2 != nil {
			return nil, e2
		}
		defer zr.Close()
		rdr = zr
	}

	s, err := Read(rdr)
	if err != nil {
		return nil, err
	}
	s.Path = fname
	if s.ID == "" {
		s.ID = idFromFname(fname)
	}
	return s, nil
}

// idFromFname tries to dig a four letter accession code out of a
// file name like 1abc.pdb, pdb1abc.ent or 1abc.pdb.gz. An empty
// string means we could not guess.
func idFromFname(fname string) string {
	base := filepath.Base(fname)
	if i := strings.IndexByte(base, '.'); i != -1 {
		base = base[:i]
	}
	base = strings.ToLower(base)
	if strings.HasPrefix(base, "pdb") && len(base) >= 7 {
		return base[3:7]
	}
	if len(base) == 4 {
		return base
	}
	return ""
}
