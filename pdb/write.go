// Writing structures back out as fixed column text. The writer
// renumbers atom serials from one, which is what you want after
// cutting structures about. Coordinates keep three decimals, so a
// read and write round trip only loses digits a coordinate file
// could never have held anyway.

package pdb

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// atomName pads an atom name the way the format wants. Names of up
// to three characters sit in columns 14-16 with column 13 blank.
// Four character names use all of columns 13-16.
func atomName(name string) string {
	if len(name) < 4 {
		return fmt.Sprintf(" %-3s", name)
	}
	return name[:4]
}

// writeAtom emits one ATOM or HETATM line.
func writeAtom(w io.Writer, a *Atom, serial int) error {
	rec := "ATOM"
	if a.Het {
		rec = "HETATM"
	}
	r := a.Res
	chain := r.ChainID
	if chain == '_' {
		chain = ' '
	}
	icode := r.ICode
	if icode == 0 {
		icode = ' '
	}
	_, err := fmt.Fprintf(w,
		"%-6s%5d %4s %3s %c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
		rec, serial, atomName(a.Name), r.Name, chain, r.SeqNum, icode,
		a.X, a.Y, a.Z, a.Occ, a.BFac, a.Element)
	return err
}

// Write serialises a structure as coordinate text. MODEL and ENDMDL
// records only appear when there is more than one model. Each chain
// gets a TER after its last polymer residue and the file ends with
// END, which is what the reference writers emit.
func Write(w io.Writer, s *Structure) error {
	bw := bufio.NewWriter(w)
	multi := len(s.Models) > 1
	serial := 0
	for _, m := range s.Models {
		if multi {
			fmt.Fprintf(bw, "MODEL     %4d\n", m.Num)
		}
		for _, c := range m.Chains {
			wroteAtom := false
			for _, r := range c.Residues {
				for _, a := range r.Atoms {
					serial++
					if err := writeAtom(bw, a, serial); err != nil {
						return err
					}
					wroteAtom = wroteAtom || !a.Het
				}
			}
			if wroteAtom {
				serial++
				fmt.Fprintf(bw, "TER   %5d\n", serial)
			}
		}
		if multi {
			fmt.Fprintln(bw, "ENDMDL")
		}
	}
	fmt.Fprintln(bw, "END")
	return bw.Flush()
}

// Text is Write into a string, for callers who want the text rather
// than a stream.
func Text(s *Structure) string {
	var b strings.Builder
	Write(&b, s) // cannot fail writing to a builder
	return b.String()
}
