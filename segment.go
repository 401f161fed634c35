/*
 * segment.go, part of gomisato.
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

//Positions at which an O atom followed by an N atom does not end the residue.
//GLN and ASN have such a pair in their side chain.
var innerON = map[string][2]int{
	"GLN": {12, 14},
	"ASN": {9, 11},
}

//Segmenter tracks the residue number and the position of the current atom
//within its residue while the atoms of one frame are scanned in order.
//The zero value is not ready to use, use NewSegmenter.
type Segmenter struct {
	Residue  int //1-based residue number of the current atom.
	Position int //1-based position of the current atom in its residue, 0 before the first atom.
}

//NewSegmenter returns a Segmenter positioned before the first atom of the first residue.
func NewSegmenter() Segmenter {
	return Segmenter{Residue: 1}
}

//Advance moves to the next atom and returns its position in the residue.
func (S *Segmenter) Advance() int {
	S.Position++
	return S.Position
}

//Discontinuity applies the residue-break rule between the current atom, of type
//typ in residue residue, and the next one, of type nexttyp in residue nextres.
//A new residue starts if the current atom is an O and the next one an N, or if
//the next atom belongs to a ligand, except for the O-N pairs inside GLN and ASN.
//It returns true if a new residue was started.
func (S *Segmenter) Discontinuity(residue, typ, nexttyp, nextres string) bool {
	if !(element(typ) == 'O' && element(nexttyp) == 'N') && nextres != Ligand {
		return false
	}
	if p, ok := innerON[residue]; ok && (S.Position == p[0] || S.Position == p[1]) {
		return false
	}
	S.newResidue()
	return true
}

//Boundary starts a new residue because a new molecule begins after the current atom.
func (S *Segmenter) Boundary() {
	S.newResidue()
}

func (S *Segmenter) newResidue() {
	S.Residue++
	S.Position = 0
}

//element returns the first character of a type label, which is the element letter.
func element(typ string) byte {
	if typ == "" {
		return 0
	}
	return typ[0]
}
