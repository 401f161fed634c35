/*
 * convert.go, part of gomisato.
 *
 * Copyright 2024 The gomisato authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package misato

import (
	"fmt"
	"strconv"

	v3 "github.com/rmera/gomisato/v3"
)

//MDFrame contains the per-atom data for one frame of an MD trajectory.
//Coords, Types, Residues and Numbers must all refer to the same N atoms.
type MDFrame struct {
	Coords   *v3.Matrix
	Types    []int //atom type codes, keys of the type table.
	Residues []int //residue codes, keys of the residue table.
	Numbers  []int //atomic numbers.
	Begins   []int //indexes of the atoms that start a new molecule.
}

//Len returns the number of atoms in the frame.
func (F *MDFrame) Len() int {
	return len(F.Types)
}

//Corrupted returns an error if the per-atom data of the frame is not consistent.
func (F *MDFrame) Corrupted() error {
	n := len(F.Types)
	if F.Coords == nil {
		return &Error{message: "nil coordinates", atom: -1, kind: ErrMismatch, deco: []string{"Corrupted"}, critical: true}
	}
	if len(F.Residues) != n || len(F.Numbers) != n || F.Coords.NVecs() != n {
		return &Error{message: fmt.Sprintf("%d types, %d residues, %d atomic numbers and %d coordinates given", n, len(F.Residues), len(F.Numbers), F.Coords.NVecs()), atom: -1, kind: ErrMismatch, deco: []string{"Corrupted"}, critical: true}
	}
	return nil
}

//MDLines returns the PDB lines for the frame F, using the lookup tables T.
//Residue numbers and TER lines are rebuilt from the sequence of atom types
//and residues, and from the molecule beginnings in F.
//The returned slice has one ATOM line per atom plus one TER line per molecule
//boundary.
func MDLines(F *MDFrame, T *Tables) ([]string, error) {
	if err := F.Corrupted(); err != nil {
		return nil, errDecorate(err, "MDLines", -1)
	}
	n := F.Len()
	begins := make(map[int]bool, len(F.Begins))
	for _, b := range F.Begins {
		begins[b] = true
	}
	lines := make([]string, 0, n+len(F.Begins))
	if n == 0 {
		return lines, nil
	}
	seg := NewSegmenter()
	typ, res, err := labels(F, T, 0)
	if err != nil {
		return nil, errDecorate(err, "MDLines", 0)
	}
	for i := 0; i < n; i++ {
		pos := seg.Advance()
		symbol, err := Symbol(F.Numbers[i])
		if err != nil {
			return nil, errDecorate(err, "MDLines", i)
		}
		name, err := AtomName(F.Numbers[i], res, typ, pos, T)
		if err != nil {
			return nil, errDecorate(err, "MDLines", i)
		}
		lines = append(lines, PDBLine(i+1, name, res, seg.Residue, F.Coords.Vec3(i), symbol))
		if i < n-1 {
			nexttyp, nextres, err := labels(F, T, i+1)
			if err != nil {
				return nil, errDecorate(err, "MDLines", i+1)
			}
			seg.Discontinuity(res, typ, nexttyp, nextres)
			typ, res = nexttyp, nextres
		}
		if begins[i+1] {
			lines = append(lines, TER)
			seg.Boundary()
		}
	}
	return lines, nil
}

//labels returns the type label and the residue name of the ith atom in F.
func labels(F *MDFrame, T *Tables, i int) (string, string, error) {
	typ, err := T.Type(F.Types[i])
	if err != nil {
		return "", "", err
	}
	res, err := T.Residue(F.Residues[i])
	if err != nil {
		return "", "", err
	}
	return typ, res, nil
}

//QMLines returns the PDB lines for a QM snapshot with the given coordinates
//and atomic numbers. All atoms go in residue 1, named MOL, and each atom is
//named with its element symbol followed by its 0-based index.
func QMLines(coords *v3.Matrix, numbers []int) ([]string, error) {
	if coords == nil {
		return nil, &Error{message: "nil coordinates", atom: -1, kind: ErrMismatch, deco: []string{"QMLines"}, critical: true}
	}
	if coords.NVecs() != len(numbers) {
		return nil, &Error{message: fmt.Sprintf("%d coordinates and %d atomic numbers given", coords.NVecs(), len(numbers)), atom: -1, kind: ErrMismatch, deco: []string{"QMLines"}, critical: true}
	}
	lines := make([]string, 0, len(numbers))
	for i, z := range numbers {
		symbol, err := Symbol(z)
		if err != nil {
			return nil, errDecorate(err, "QMLines", i)
		}
		lines = append(lines, PDBLine(i+1, symbol+strconv.Itoa(i), Ligand, 1, coords.Vec3(i), symbol))
	}
	return lines, nil
}
