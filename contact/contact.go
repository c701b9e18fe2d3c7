// Package contact builds residue level distance maps. A distance map
// is the matrix of centroid to centroid distances over all residues
// of one model. It answers the cheap global questions (who is near
// whom, roughly) without building any index, as opposed to the
// neighbor package which answers the precise atom level question for
// one residue.
package contact

import (
	"github.com/andrew-torda/matrix"

	"github.com/helixbio/structq/pdb"
)

// BrokenDist marks a pair where one residue has no atoms and hence
// no centroid. It is negative, so it can never be mistaken for a
// real distance.
const BrokenDist = -99

// Matrix returns the symmetric distance matrix over the residues of
// m, together with the residue order used for the rows and columns.
// Entries involving a residue without atoms are BrokenDist.
// float32 is plenty here. Nobody needs a distance map to more than
// three decimals.
func Matrix(m *pdb.Model) (*matrix.FMatrix2d, []*pdb.Residue) {
	rs := m.Residues()
	cens := make([]pdb.Xyz, len(rs))
	ok := make([]bool, len(rs))
	for i, r := range rs {
		if c, err := r.Centroid(); err == nil {
			cens[i] = c
			ok[i] = true
		}
	}

	dm := matrix.NewFMatrix2d(len(rs), len(rs))
	for i := range rs {
		for j := i; j < len(rs); j++ {
			d := float32(BrokenDist)
			if ok[i] && ok[j] {
				d = float32(cens[i].Dist(cens[j]))
			}
			dm.Mat[i][j] = d
			dm.Mat[j][i] = d
		}
	}
	return dm, rs
}

// Pair is two residues whose centroids are within some cutoff of
// each other, along with the distance between them.
type Pair struct {
	A, B *pdb.Residue
	Dist float64
}

// Pairs lists every distinct residue pair in m whose centroids are
// no further apart than cutoff. Residues without atoms are skipped.
// A residue is not paired with itself.
func Pairs(m *pdb.Model, cutoff float64) []Pair {
	rs := m.Residues()
	var cens []pdb.Xyz
	var kept []*pdb.Residue
	for _, r := range rs {
		if c, err := r.Centroid(); err == nil {
			cens = append(cens, c)
			kept = append(kept, r)
		}
	}

	var out []Pair
	c2 := cutoff * cutoff
	for i := 0; i < len(kept); i++ {
		for j := i + 1; j < len(kept); j++ {
			if d2 := cens[i].Dist2(cens[j]); d2 <= c2 {
				out = append(out, Pair{A: kept[i], B: kept[j], Dist: cens[i].Dist(cens[j])})
			}
		}
	}
	return out
}
