// Package pdb reads and writes protein data bank coordinate files and
// holds the in-memory picture of a structure. The hierarchy is the
// usual one. A structure has models, a model has chains, a chain has
// residues and a residue has atoms. Atoms know which residue owns
// them, so one can go back up from a spatial hit to a residue.
// Nothing here is clever. The clever parts (neighbour searching) live
// in the neighbor sub package.
package pdb

import (
	"math"
	"strings"
)

// AminoThreeToOne maps three letter amino acid names to their one
// letter codes. Anything not in the map is a het group or something
// exotic and gets an 'X' from Residue.OneLetter.
var AminoThreeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',
}

// Xyz is one point in the coordinate frame of the source file.
// Distances are in whatever the file used, almost always Angstrom.
type Xyz struct{ X, Y, Z float64 }

// Dist2 returns the squared distance to b. Use this when comparing
// distances so we do not pay for the square root.
func (a Xyz) Dist2(b Xyz) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return dx*dx + dy*dy + dz*dz
}

// Dist returns the distance to b.
func (a Xyz) Dist(b Xyz) float64 { return math.Sqrt(a.Dist2(b)) }

// Atom is one ATOM or HETATM record. Het says which of the two it
// was. Res points back at the owning residue and is filled in by the
// reader, or by hand if you build structures yourself.
type Atom struct {
	Serial  int
	Name    string // "CA", "OXT" and so on, without padding
	Element string
	Occ     float64
	BFac    float64
	Het     bool
	Res     *Residue
	Xyz
}

// Residue is an amino acid or a het group such as a ligand or water.
// It is identified by its chain, its residue number from the file and
// the insertion code if there was one.
type Residue struct {
	Name    string // three letter name, "GLY" or "HOH"
	ChainID byte
	SeqNum  int
	ICode   byte
	Het     bool
	Atoms   []*Atom
}

// Chain is a named run of residues. The protein data bank gives
// chains one byte names. A blank name in the file becomes '_' so it
// is visible when printed.
type Chain struct {
	ID       byte
	Residues []*Residue
}

// Model is one set of coordinates. X-ray structures have one model,
// NMR files often have many.
type Model struct {
	Num    int
	Chains []*Chain
}

// Structure is a whole entry. ID is the four letter accession code if
// we know it and Path says where the file came from, if it came from
// a file.
type Structure struct {
	ID     string
	Path   string
	Models []*Model
}

// OneLetter gives the single letter code for a residue, or 'X' if it
// is not a standard amino acid.
func (r *Residue) OneLetter() byte {
	if c, ok := AminoThreeToOne[r.Name]; ok {
		return c
	}
	return 'X'
}

// Centroid returns the unweighted mean position of the residue's
// atoms. Occupancy and mass are ignored. A residue without atoms has
// no centroid, so we return an InvalidTargetError rather than quietly
// dividing by zero.
func (r *Residue) Centroid() (Xyz, error) {
	if len(r.Atoms) == 0 {
		return Xyz{}, &InvalidTargetError{Name: r.Name, ChainID: r.ChainID, SeqNum: r.SeqNum}
	}
	var c Xyz
	for _, a := range r.Atoms {
		c.X += a.X
		c.Y += a.Y
		c.Z += a.Z
	}
	n := float64(len(r.Atoms))
	c.X /= n
	c.Y /= n
	c.Z /= n
	return c, nil
}

// Residue finds a residue in a chain by its number from the file.
// Insertion codes are ignored, so you get the first residue with
// that number. Returns nil if there is no such residue.
func (c *Chain) Residue(seqNum int) *Residue {
	for _, r := range c.Residues {
		if r.SeqNum == seqNum {
			return r
		}
	}
	return nil
}

// Seq returns the chain's residues as a one letter string. Het
// groups come out as 'X'.
func (c *Chain) Seq() string {
	var b strings.Builder
	for _, r := range c.Residues {
		b.WriteByte(r.OneLetter())
	}
	return b.String()
}

// Chain finds a chain by name within a model, nil if absent.
func (m *Model) Chain(id byte) *Chain {
	for _, c := range m.Chains {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Residues returns every residue in the model in file order,
// walking the chains.
func (m *Model) Residues() []*Residue {
	var rs []*Residue
	for _, c := range m.Chains {
		rs = append(rs, c.Residues...)
	}
	return rs
}

// Chain finds a chain by name in the first model, nil if absent or
// if the structure is empty.
func (s *Structure) Chain(id byte) *Chain {
	if len(s.Models) == 0 {
		return nil
	}
	return s.Models[0].Chain(id)
}

// Residue looks up a residue by chain name and residue number in the
// first model. It is a plain dictionary style walk, no searching.
// If the chain or the residue is missing you get a KeyNotFoundError
// saying which of the two it was.
func (s *Structure) Residue(chainID byte, seqNum int) (*Residue, error) {
	c := s.Chain(chainID)
	if c == nil {
		return nil, &KeyNotFoundError{ChainID: chainID, SeqNum: seqNum, NoChain: true}
	}
	r := c.Residue(seqNum)
	if r == nil {
		return nil, &KeyNotFoundError{ChainID: chainID, SeqNum: seqNum}
	}
	return r, nil
}

// Atoms flattens the structure to a list of atoms over all models.
// The neighbour search starts from this.
func (s *Structure) Atoms() []*Atom {
	var as []*Atom
	for _, m := range s.Models {
		for _, c := range m.Chains {
			for _, r := range c.Residues {
				as = append(as, r.Atoms...)
			}
		}
	}
	return as
}

// NAtoms says how many atoms we have in total.
func (s *Structure) NAtoms() int {
	n := 0
	for _, m := range s.Models {
		for _, c := range m.Chains {
			for _, r := range c.Residues {
				n += len(r.Atoms)
			}
		}
	}
	return n
}
