/*
 * misato_test.go, part of gomisato.
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
	"errors"
	"strconv"
	"strings"
	"testing"

	v3 "github.com/rmera/gomisato/v3"
)

//testTables returns small tables. Type codes: 0 OH, 1 NH, 2 CA, 3 C, 4 O, 5 N, 6 HA.
//Residue codes: 0 GLY, 1 MOL, 2 GLN, 3 ASN, 4 ALA.
func testTables() *Tables {
	types := map[int]string{0: "OH", 1: "NH", 2: "CA", 3: "C", 4: "O", 5: "N", 6: "HA"}
	residues := map[int]string{0: "GLY", 1: "MOL", 2: "GLN", 3: "ASN", 4: "ALA"}
	names := map[NameKey]string{
		{"ALA", 0, "N"}:  "N",
		{"ALA", 1, "CA"}: "CA",
		{"ALA", 2, "C"}:  "C",
		{"ALA", 3, "O"}:  "O",
		{"MOL", 0, "CA"}: "XX",
	}
	return NewTables(types, residues, names)
}

func zeros(n int) *v3.Matrix {
	return v3.Zeros(n)
}

func TestSymbol(Te *testing.T) {
	for z, s := range map[int]string{1: "H", 6: "C", 11: "Na", 34: "Se", 53: "I"} {
		got, err := Symbol(z)
		if err != nil {
			Te.Fatal(err)
		}
		if got != s {
			Te.Errorf("atomic number %d: expected %s, got %s", z, s, got)
		}
	}
	_, err := Symbol(26)
	if !errors.Is(err, ErrUnknownElement) {
		Te.Errorf("iron is not in the table, expected ErrUnknownElement, got %v", err)
	}
}

func TestAtomName(Te *testing.T) {
	T := testTables()
	name, err := AtomName(6, "ALA", "CA", 2, T)
	if err != nil {
		Te.Fatal(err)
	}
	if name != "CA" {
		Te.Errorf("expected the canonical name CA, got %s", name)
	}
	//no entry for this position, falls back to element+position.
	name, err = AtomName(6, "ALA", "CA", 5, T)
	if err != nil {
		Te.Fatal(err)
	}
	if name != "C5" {
		Te.Errorf("expected the fallback name C5, got %s", name)
	}
	//ligands never use the table, even when there is a matching key.
	name, err = AtomName(6, Ligand, "CA", 1, T)
	if err != nil {
		Te.Fatal(err)
	}
	if name != "C1" {
		Te.Errorf("expected ligand name C1, got %s", name)
	}
	_, err = AtomName(92, "ALA", "CA", 2, T)
	if !errors.Is(err, ErrUnknownElement) {
		Te.Errorf("expected ErrUnknownElement, got %v", err)
	}
}

func TestTablesLookup(Te *testing.T) {
	T := testTables()
	if _, err := T.Type(99); !errors.Is(err, ErrUnknownCode) {
		Te.Errorf("expected ErrUnknownCode, got %v", err)
	}
	if _, err := T.Residue(99); !errors.Is(err, ErrUnknownCode) {
		Te.Errorf("expected ErrUnknownCode, got %v", err)
	}
	if _, ok := T.Name("GLY", 0, "OH"); ok {
		Te.Error("GLY/0/OH is not in the name table")
	}
	types, _, _ := T.Maps()
	types[0] = "changed"
	if t, _ := T.Type(0); t != "OH" {
		Te.Errorf("the tables were modified through a copy: %s", t)
	}
}

func TestPDBLine(Te *testing.T) {
	line := PDBLine(1, "CA", "ALA", 1, [3]float64{1.5, -2.25, 10}, "C")
	expected := "ATOM      1  CA  ALA     1       1.500  -2.250  10.000  1.00  0.00           C    "
	if line != expected {
		Te.Errorf("wrong line:\n%q\n%q", line, expected)
	}
	long := PDBLine(12345, "HD21X", "NMEXX", 42, [3]float64{-100.1234, 0, 999.9999}, "Cl")
	if len(long) != len(expected) {
		Te.Errorf("line with long names has length %d, expected %d", len(long), len(expected))
	}
	if long[13:17] != "HD21" || long[17:21] != "NMEX" {
		Te.Errorf("names not truncated to their fields: %q", long)
	}
	if strings.TrimSpace(long[30:38]) != "-100.123" || strings.TrimSpace(long[46:54]) != "1000.000" {
		Te.Errorf("coordinates in the wrong columns: %q", long)
	}
	if long[77:82] != "Cl   " {
		Te.Errorf("element in the wrong columns: %q", long)
	}
}

//Residue numbers, as read from the lines.
func residueNumbers(lines []string) []string {
	var ret []string
	for _, l := range lines {
		if l == TER {
			continue
		}
		ret = append(ret, strings.TrimSpace(l[21:26]))
	}
	return ret
}

func atomNames(lines []string) []string {
	var ret []string
	for _, l := range lines {
		if l == TER {
			continue
		}
		ret = append(ret, strings.TrimSpace(l[13:17]))
	}
	return ret
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

//The three-atom example: OH and NH in GLY, then a ligand carbon starting a new molecule.
func TestMDLinesSmall(Te *testing.T) {
	F := &MDFrame{
		Coords:   zeros(3),
		Types:    []int{0, 1, 2},
		Residues: []int{0, 0, 1},
		Numbers:  []int{8, 7, 6},
		Begins:   []int{2},
	}
	lines, err := MDLines(F, testTables())
	if err != nil {
		Te.Fatal(err)
	}
	if len(lines) != 4 {
		Te.Fatalf("expected 3 atoms and one TER, got %d lines: %v", len(lines), lines)
	}
	if lines[2] != TER {
		Te.Errorf("expected TER before the ligand, got %q", lines[2])
	}
	//O->N breaks the residue after the first atom, the ligand after the second,
	//and the molecule boundary increments once more.
	if r := residueNumbers(lines); !equal(r, []string{"1", "2", "4"}) {
		Te.Errorf("wrong residue numbers: %v", r)
	}
	if n := atomNames(lines); !equal(n, []string{"O1", "N1", "C1"}) {
		Te.Errorf("wrong atom names: %v", n)
	}
	if lines[0][17:21] != "GLY " || lines[3][17:21] != "MOL " {
		Te.Errorf("wrong residue names: %q %q", lines[0], lines[3])
	}
}

func TestMDLinesNames(Te *testing.T) {
	//Two alanines N CA C O | N CA C O
	F := &MDFrame{
		Coords:   zeros(8),
		Types:    []int{5, 2, 3, 4, 5, 2, 3, 4},
		Residues: []int{4, 4, 4, 4, 4, 4, 4, 4},
		Numbers:  []int{7, 6, 6, 8, 7, 6, 6, 8},
	}
	lines, err := MDLines(F, testTables())
	if err != nil {
		Te.Fatal(err)
	}
	if n := atomNames(lines); !equal(n, []string{"N", "CA", "C", "O", "N", "CA", "C", "O"}) {
		Te.Errorf("wrong atom names: %v", n)
	}
	if r := residueNumbers(lines); !equal(r, []string{"1", "1", "1", "1", "2", "2", "2", "2"}) {
		Te.Errorf("wrong residue numbers: %v", r)
	}
	for i, l := range lines {
		if serial := strings.TrimSpace(l[4:11]); serial != []string{"1", "2", "3", "4", "5", "6", "7", "8"}[i] {
			Te.Errorf("wrong serial in line %d: %s", i, serial)
		}
	}
}

//A residue with the given code and n atoms, all type CA except an O at oPos and an N
//right after it (positions are 1-based).
func onResidue(code, n, oPos int) (types, residues []int) {
	for p := 1; p <= n; p++ {
		t := 2
		if p == oPos {
			t = 4
		} else if p == oPos+1 {
			t = 5
		}
		types = append(types, t)
		residues = append(residues, code)
	}
	return
}

func TestMDLinesExceptions(Te *testing.T) {
	var types, residues, begins []int
	add := func(t, r []int) {
		if len(types) > 0 {
			begins = append(begins, len(types))
		}
		types = append(types, t...)
		residues = append(residues, r...)
	}
	//Each residue is its own molecule, so positions restart at each one.
	//GLN with inner O-N pairs at positions 12 and 14: no break.
	t, r := onResidue(2, 16, 12)
	t[13], t[14] = 4, 5 //O at 14, N at 15
	add(t, r)
	//ASN with an inner O-N at 9: no break.
	add(onResidue(3, 12, 9))
	//ASN with an inner O-N at 11: no break.
	add(onResidue(3, 13, 11))
	//ALA with O-N at 3: breaks.
	add(onResidue(4, 5, 3))
	//GLN with O-N at 13, which is not one of its inner pairs: breaks.
	add(onResidue(2, 16, 13))
	n := len(types)
	numbers := make([]int, n)
	for i := range numbers {
		numbers[i] = 6
	}
	F := &MDFrame{Coords: zeros(n), Types: types, Residues: residues, Numbers: numbers, Begins: begins}
	lines, err := MDLines(F, testTables())
	if err != nil {
		Te.Fatal(err)
	}
	if len(lines) != n+4 {
		Te.Fatalf("expected %d atoms and 4 TER lines, got %d lines", n, len(lines))
	}
	var expected []string
	for i, count := range []int{16, 12, 13, 3, 2, 13, 3} {
		for j := 0; j < count; j++ {
			expected = append(expected, strconv.Itoa(i+1))
		}
	}
	if res := residueNumbers(lines); !equal(res, expected) {
		Te.Errorf("wrong residue numbers:\n%v\n%v", res, expected)
	}
}

func TestMDLinesDoubleIncrement(Te *testing.T) {
	//O then N, and the N starts a new molecule: both rules fire.
	F := &MDFrame{
		Coords:   zeros(3),
		Types:    []int{4, 5, 2},
		Residues: []int{4, 4, 4},
		Numbers:  []int{8, 7, 6},
		Begins:   []int{0, 1},
	}
	lines, err := MDLines(F, testTables())
	if err != nil {
		Te.Fatal(err)
	}
	if len(lines) != 4 || lines[1] != TER {
		Te.Fatalf("expected a TER after the first atom: %v", lines)
	}
	if r := residueNumbers(lines); !equal(r, []string{"1", "3", "3"}) {
		Te.Errorf("wrong residue numbers: %v", r)
	}
	if n := atomNames(lines); !equal(n, []string{"O1", "N", "CA"}) {
		Te.Errorf("wrong atom names: %v", n)
	}
}

func TestMDLinesPositions(Te *testing.T) {
	//A ligand: every atom is followed by a ligand atom, so each one opens a new residue.
	F := &MDFrame{
		Coords:   zeros(4),
		Types:    []int{2, 2, 4, 6},
		Residues: []int{1, 1, 1, 1},
		Numbers:  []int{6, 6, 8, 1},
	}
	lines, err := MDLines(F, testTables())
	if err != nil {
		Te.Fatal(err)
	}
	if n := atomNames(lines); !equal(n, []string{"C1", "C1", "O1", "H1"}) {
		Te.Errorf("wrong ligand names: %v", n)
	}
	if r := residueNumbers(lines); !equal(r, []string{"1", "2", "3", "4"}) {
		Te.Errorf("wrong residue numbers: %v", r)
	}
}

func TestMDLinesTrailingTER(Te *testing.T) {
	//A molecule boundary right after the last atom still closes the chain.
	F := &MDFrame{
		Coords:   zeros(2),
		Types:    []int{2, 2},
		Residues: []int{4, 4},
		Numbers:  []int{6, 6},
		Begins:   []int{2},
	}
	lines, err := MDLines(F, testTables())
	if err != nil {
		Te.Fatal(err)
	}
	if len(lines) != 3 || lines[2] != TER {
		Te.Fatalf("expected 2 atoms and a final TER, got %v", lines)
	}
	if r := residueNumbers(lines); !equal(r, []string{"1", "1"}) {
		Te.Errorf("wrong residue numbers: %v", r)
	}
}

func TestMDLinesErrors(Te *testing.T) {
	T := testTables()
	F := &MDFrame{
		Coords:   zeros(3),
		Types:    []int{0, 1},
		Residues: []int{0, 0, 0},
		Numbers:  []int{8, 7, 6},
	}
	if _, err := MDLines(F, T); !errors.Is(err, ErrMismatch) {
		Te.Errorf("expected ErrMismatch, got %v", err)
	}
	F.Types = []int{0, 1, 2}
	F.Coords = nil
	if _, err := MDLines(F, T); !errors.Is(err, ErrMismatch) {
		Te.Errorf("expected ErrMismatch for nil coordinates, got %v", err)
	}
	F.Coords = zeros(3)
	F.Numbers = []int{8, 26, 6}
	_, err := MDLines(F, T)
	if !errors.Is(err, ErrUnknownElement) {
		Te.Fatalf("expected ErrUnknownElement, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Atom() != 1 || !e.Critical() {
		Te.Errorf("error should be critical and point to atom 1: %v", err)
	}
	F.Numbers = []int{8, 7, 6}
	F.Residues = []int{0, 0, 42}
	if _, err := MDLines(F, T); !errors.Is(err, ErrUnknownCode) {
		Te.Errorf("expected ErrUnknownCode, got %v", err)
	}
}

func TestQMLines(Te *testing.T) {
	lines, err := QMLines(zeros(1), []int{6})
	if err != nil {
		Te.Fatal(err)
	}
	expected := "ATOM      1  C0  MOL     1       0.000   0.000   0.000  1.00  0.00           C    "
	if len(lines) != 1 || lines[0] != expected {
		Te.Errorf("wrong QM lines:\n%q\n%q", lines, expected)
	}
	c, _ := v3.NewMatrix([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0})
	lines, err = QMLines(c, []int{8, 1, 1})
	if err != nil {
		Te.Fatal(err)
	}
	if n := atomNames(lines); !equal(n, []string{"O0", "H1", "H2"}) {
		Te.Errorf("wrong QM names: %v", n)
	}
	if r := residueNumbers(lines); !equal(r, []string{"1", "1", "1"}) {
		Te.Errorf("QM atoms should all be in residue 1: %v", r)
	}
	if _, err := QMLines(c, []int{8, 1}); !errors.Is(err, ErrMismatch) {
		Te.Errorf("expected ErrMismatch, got %v", err)
	}
	if _, err := QMLines(c, []int{8, 1, 2}); !errors.Is(err, ErrUnknownElement) {
		Te.Errorf("expected ErrUnknownElement, got %v", err)
	}
}
