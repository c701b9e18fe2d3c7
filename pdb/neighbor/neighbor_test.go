package neighbor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/helixbio/structq/pdb"
	"github.com/helixbio/structq/pdb/neighbor"
)

// The same little entry the pdb tests use. Glycine 1 has its
// centroid at (0.5, 0, 0). From there the water oxygen is 1.5 away,
// the serine CA 2.5 and the alanine atoms 9.5 and 10.5.
const smallPDB = `ATOM      1  N   GLY A   1       0.000   0.000   0.000  1.00  0.00           N
ATOM      2  CA  GLY A   1       1.000   0.000   0.000  1.00  0.00           C
ATOM      3  CA  SER A   2       3.000   0.000   0.000  1.00  0.00           C
ATOM      4  N   ALA A   3      10.000   0.000   0.000  1.00  0.00           N
ATOM      5  CA  ALA A   3      11.000   0.000   0.000  1.00  0.00           C
HETATM    6  O   HOH W 101       2.000   0.000   0.000  1.00  0.00           O
`

func structAndTarget(t *testing.T) (*pdb.Structure, *pdb.Residue) {
	t.Helper()
	s, err := pdb.Read(strings.NewReader(smallPDB))
	if err != nil {
		t.Fatal(err)
	}
	gly, err := s.Residue('A', 1)
	if err != nil {
		t.Fatal(err)
	}
	return s, gly
}

// names turns a residue list into something easy to compare in a
// test table.
func names(rs []*pdb.Residue) string {
	var b strings.Builder
	for i, r := range rs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.Name)
	}
	return b.String()
}

var radiusTests = []struct {
	radius float64
	want   string
}{
	{0.5, "GLY"}, // own atoms sit exactly at the radius, closed interval
	{1.0, "GLY"},
	{1.5, "GLY HOH"}, // water at exactly 1.5, again the closed interval
	{2.5, "GLY SER HOH"},
	{10.5, "GLY SER ALA HOH"},
}

func TestSearchRadii(t *testing.T) {
	s, gly := structAndTarget(t)
	for _, test := range radiusTests {
		got, err := neighbor.Search(s, gly, test.radius, nil)
		if err != nil {
			t.Fatal("radius", test.radius, err)
		}
		if names(got) != test.want {
			t.Errorf("radius %.1f: want %q, got %q",
				test.radius, test.want, names(got))
		}
	}
}

// Growing the radius must never lose a neighbour.
func TestMonotonic(t *testing.T) {
	s, gly := structAndTarget(t)
	var prev []*pdb.Residue
	for _, radius := range []float64{0, 0.5, 1, 2, 3, 5, 8, 12} {
		got, err := neighbor.Search(s, gly, radius, nil)
		if err != nil {
			t.Fatal(err)
		}
		in := make(map[*pdb.Residue]bool)
		for _, r := range got {
			in[r] = true
		}
		for _, r := range prev {
			if !in[r] {
				t.Errorf("radius %.1f lost %s %d", radius, r.Name, r.SeqNum)
			}
		}
		prev = got
	}
}

func TestExcludeTarget(t *testing.T) {
	s, gly := structAndTarget(t)
	got, err := neighbor.Search(s, gly, 1.5, &neighbor.Opts{ExcludeTarget: true})
	if err != nil {
		t.Fatal(err)
	}
	if names(got) != "HOH" {
		t.Error("want only HOH with the target excluded, got", names(got))
	}
}

// A ligand is a perfectly good target.
func TestLigandTarget(t *testing.T) {
	s, _ := structAndTarget(t)
	hoh, err := s.Residue('W', 101)
	if err != nil {
		t.Fatal(err)
	}
	got, err := neighbor.Search(s, hoh, 1.5, nil)
	if err != nil {
		t.Fatal(err)
	}
	// From (2,0,0): glycine CA at 1.0, itself at 0, serine at 1.0.
	if names(got) != "GLY SER HOH" {
		t.Error("ligand target: want GLY SER HOH, got", names(got))
	}
}

func TestNoAtomsTarget(t *testing.T) {
	s, _ := structAndTarget(t)
	bare := &pdb.Residue{Name: "GLY", ChainID: 'A', SeqNum: 9}
	_, err := neighbor.Search(s, bare, 5, nil)
	if err == nil {
		t.Fatal("target without atoms must be refused")
	}
	var ierr *pdb.InvalidTargetError
	if !errors.As(err, &ierr) {
		t.Errorf("want InvalidTargetError, got %T", err)
	}
}

func TestNegativeRadius(t *testing.T) {
	s, gly := structAndTarget(t)
	if _, err := neighbor.Search(s, gly, -1, nil); err == nil {
		t.Error("negative radius must be refused")
	}
}

// Build once, ask many times.
func TestIndexReuse(t *testing.T) {
	s, gly := structAndTarget(t)
	ix := neighbor.NewIndex(s)
	cen, err := gly.Centroid()
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range radiusTests {
		if got := ix.Within(cen, test.radius); names(got) != test.want {
			t.Errorf("index radius %.1f: want %q, got %q",
				test.radius, test.want, names(got))
		}
	}
}
