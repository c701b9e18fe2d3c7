// Reading of old style fixed column coordinate files. The format is
// columns, not fields, so everything is sliced out of the line by
// position. Column numbers in comments are the one based numbers
// from the format description, the slices are zero based.

package pdb

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// reader carries the state while we walk the file line by line.
type reader struct {
	s      *Structure
	model  *Model // model we are filling, nil before the first atom
	res    *Residue
	n      int // current line number
	mdlNum int // highest model number seen
}

// Read parses one structure from r. It is the entry point the
// loader, the fetcher and anybody with their own reader uses.
// A broken line gives a ParseError with the line number. Input in
// which we find no atoms at all is also a ParseError, since it was
// probably never a coordinate file.
func Read(r io.Reader) (*Structure, error) {
	rdr := reader{s: &Structure{}}
	scnnr := bufio.NewScanner(r)
	for rdr.n = 1; scnnr.Scan(); rdr.n++ {
		line := scnnr.Text()
		var rec string
		if len(line) >= 6 {
			rec = strings.TrimSpace(line[0:6])
		} else {
			rec = strings.TrimSpace(line)
		}
		var err error
		switch rec {
		case "HEADER":
			rdr.header(line)
		case "MODEL":
			err = rdr.newModel(line)
		case "ENDMDL":
			rdr.model = nil
			rdr.res = nil
		case "ATOM":
			err = rdr.atom(line, false)
		case "HETATM":
			err = rdr.atom(line, true)
		case "TER":
			rdr.res = nil
		}
		if err != nil {
			return nil, err
		}
	}
	if err := scnnr.Err(); err != nil {
		return nil, err
	}
	if rdr.s.NAtoms() == 0 {
		return nil, &ParseError{Desc: "no atom records found, input does not look like a coordinate file"}
	}
	return rdr.s, nil
}

// header picks the accession code out of a HEADER record,
// columns 63-66.
func (rdr *reader) header(line string) {
	if len(line) >= 66 {
		rdr.s.ID = strings.ToLower(strings.TrimSpace(line[62:66]))
	}
}

// newModel starts a model from a MODEL record. The serial is in
// columns 11-14, but we are forgiving and take anything numeric on
// the line after the record name.
func (rdr *reader) newModel(line string) error {
	num := rdr.mdlNum + 1
	if f := strings.Fields(line); len(f) >= 2 {
		if i, err := strconv.Atoi(f[1]); err == nil {
			num = i
		}
	}
	rdr.startModel(num)
	return nil
}

func (rdr *reader) startModel(num int) {
	m := &Model{Num: num}
	rdr.s.Models = append(rdr.s.Models, m)
	rdr.model = m
	rdr.res = nil
	if num > rdr.mdlNum {
		rdr.mdlNum = num
	}
}

// badLine makes a ParseError for the line we are on.
func (rdr *reader) badLine(line, desc string) error {
	return &ParseError{N: rdr.n, Line: line, Desc: desc}
}

// atom eats one ATOM or HETATM record and files the atom under the
// right model, chain and residue, making each of those as needed.
// Alternate locations other than blank or 'A' are dropped, the same
// thing everybody else does with them.
func (rdr *reader) atom(line string, het bool) error {
	if len(line) < 54 {
		return rdr.badLine(line, "atom record too short for coordinates")
	}
	if alt := line[16]; alt != ' ' && alt != 'A' {
		return nil
	}
	if rdr.model == nil { // file had no MODEL record, or atoms after ENDMDL
		rdr.startModel(rdr.mdlNum + 1)
	}

	a := &Atom{
		Name: strings.TrimSpace(line[12:16]),
		Het:  het,
	}
	var err error
	// Serial, columns 7-11. Some programs leave it blank, so a blank
	// one is allowed and stays zero.
	if ser := strings.TrimSpace(line[6:11]); ser != "" {
		if a.Serial, err = strconv.Atoi(ser); err != nil {
			return rdr.badLine(line, "bad atom serial number")
		}
	}
	// Coordinates, columns 31-38, 39-46, 47-54.
	if a.X, err = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64); err != nil {
		return rdr.badLine(line, "bad x coordinate")
	}
	if a.Y, err = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64); err != nil {
		return rdr.badLine(line, "bad y coordinate")
	}
	if a.Z, err = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64); err != nil {
		return rdr.badLine(line, "bad z coordinate")
	}
	// Occupancy, B factor and element are nice to have, but old or
	// hand made files stop at column 54 and that is fine.
	if len(line) >= 60 {
		if occ := strings.TrimSpace(line[54:60]); occ != "" {
			if a.Occ, err = strconv.ParseFloat(occ, 64); err != nil {
				return rdr.badLine(line, "bad occupancy")
			}
		}
	}
	if len(line) >= 66 {
		if bf := strings.TrimSpace(line[60:66]); bf != "" {
			if a.BFac, err = strconv.ParseFloat(bf, 64); err != nil {
				return rdr.badLine(line, "bad temperature factor")
			}
		}
	}
	if len(line) >= 78 {
		a.Element = strings.TrimSpace(line[76:78])
	}

	resName := strings.TrimSpace(line[17:20])
	chainID := line[21]
	if chainID == ' ' {
		chainID = '_'
	}
	seqNum := 0
	if sn := strings.TrimSpace(line[22:26]); sn != "" {
		if seqNum, err = strconv.Atoi(sn); err != nil {
			return rdr.badLine(line, "bad residue sequence number")
		}
	}
	iCode := line[26]
	if iCode == ' ' {
		iCode = 0
	}

	r := rdr.res
	if r == nil || r.ChainID != chainID || r.SeqNum != seqNum ||
		r.ICode != iCode || r.Name != resName {
		r = &Residue{
			Name:    resName,
			ChainID: chainID,
			SeqNum:  seqNum,
			ICode:   iCode,
			Het:     het,
		}
		rdr.chain(chainID).Residues = append(rdr.chain(chainID).Residues, r)
		rdr.res = r
	}
	a.Res = r
	r.Atoms = append(r.Atoms, a)
	return nil
}

// chain gets the chain with this name in the current model, making
// it if we have not seen it before.
func (rdr *reader) chain(id byte) *Chain {
	if c := rdr.model.Chain(id); c != nil {
		return c
	}
	c := &Chain{ID: id}
	rdr.model.Chains = append(rdr.model.Chains, c)
	return c
}
