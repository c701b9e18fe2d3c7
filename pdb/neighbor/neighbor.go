// Package neighbor answers the question "which residues sit near
// this one". All atoms of a structure go into a k-d tree and we ask
// the tree for every atom within some radius of the target residue's
// centroid. A residue is a neighbour if at least one of its atoms is
// in range, atoms at exactly the radius included. Tree building and
// the radius query are gonum's, we only map the hits back onto
// residues.
//
// The target residue itself normally ends up in its own neighbour
// set, since its atoms surround its centroid. That is deliberate and
// callers who do not want it say so with Opts.ExcludeTarget.
package neighbor

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/helixbio/structq/pdb"
)

// atomPoint is one atom coordinate tied to the residue that owns it.
type atomPoint struct {
	c   [3]float64
	res *pdb.Residue
}

func (p atomPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(atomPoint)
	return p.c[d] - q.c[d]
}

func (p atomPoint) Dims() int { return 3 }

// Distance is the squared euclidean distance. Radii get squared
// before they are compared with this.
func (p atomPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(atomPoint)
	var sum float64
	for i, x := range p.c {
		d := x - q.c[i]
		sum += d * d
	}
	return sum
}

// atomPoints with the plane helper below satisfy kdtree.Interface.
// This is the standard boilerplate the kdtree package asks of its
// callers.
type atomPoints []atomPoint

func (p atomPoints) Index(i int) kdtree.Comparable { return p[i] }

func (p atomPoints) Len() int { return len(p) }

func (p atomPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p atomPoints) Pivot(d kdtree.Dim) int {
	return plane{atomPoints: p, Dim: d}.pivot()
}

type plane struct {
	kdtree.Dim
	atomPoints
}

func (p plane) Less(i, j int) bool {
	return p.atomPoints[i].c[p.Dim] < p.atomPoints[j].c[p.Dim]
}
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.atomPoints = p.atomPoints[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.atomPoints[i], p.atomPoints[j] = p.atomPoints[j], p.atomPoints[i]
}
func (p plane) pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Index is a spatial index over every atom in one structure. The
// structure must not change underneath it. Building costs a sort per
// tree level, so if you have many queries against one structure,
// build one Index and keep it.
type Index struct {
	tree *kdtree.Tree
}

// NewIndex builds the k-d tree over all atoms in all models of s.
func NewIndex(s *pdb.Structure) *Index {
	atoms := s.Atoms()
	pts := make(atomPoints, len(atoms))
	for i, a := range atoms {
		pts[i] = atomPoint{c: [3]float64{a.X, a.Y, a.Z}, res: a.Res}
	}
	return &Index{tree: kdtree.New(pts, false)}
}

// Within returns the residues owning at least one atom with distance
// to x no greater than radius. The result is deduplicated and sorted
// by chain, residue number and insertion code so it is stable from
// run to run.
func (ix *Index) Within(x pdb.Xyz, radius float64) []*pdb.Residue {
	keeper := kdtree.NewDistKeeper(radius * radius)
	ix.tree.NearestSet(keeper, atomPoint{c: [3]float64{x.X, x.Y, x.Z}})

	seen := make(map[*pdb.Residue]bool)
	var out []*pdb.Residue
	for _, c := range keeper.Heap {
		if c.Comparable == nil { // the keeper's own sentinel entry
			continue
		}
		r := c.Comparable.(atomPoint).res
		if r != nil && !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		if a.SeqNum != b.SeqNum {
			return a.SeqNum < b.SeqNum
		}
		return a.ICode < b.ICode
	})
	return out
}

// Opts holds the optional knobs for Search. The zero value gives the
// plain behaviour, target included.
type Opts struct {
	ExcludeTarget bool // drop the target residue from its own result
}

// Search finds all residues of s with an atom within radius of the
// centroid of target. The index is built fresh on every call, which
// is fine for one-off questions. Use NewIndex directly when asking
// many times about the same structure.
//
// A target with no atoms has no centroid and gives an
// InvalidTargetError. A negative radius is a caller bug and gives an
// error too, rather than a quietly empty answer.
func Search(s *pdb.Structure, target *pdb.Residue, radius float64, opts *Opts) ([]*pdb.Residue, error) {
	if radius < 0 {
		return nil, errors.New("negative search radius")
	}
	cen, err := target.Centroid()
	if err != nil {
		return nil, err
	}
	out := NewIndex(s).Within(cen, radius)
	if opts != nil && opts.ExcludeTarget {
		for i, r := range out {
			if r == target {
				out = append(out[:i], out[i+1:]...)
				break
			}
		}
	}
	return out, nil
}
