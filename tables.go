/*
 * tables.go, part of gomisato.
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

import "fmt"

//Ligand is the residue name given to every non-polymer residue.
const Ligand = "MOL"

//NameKey identifies a canonical atom name: the residue name, the 0-based
//position of the atom in the residue and the atom type label.
type NameKey struct {
	Residue  string
	Position int
	Type     string
}

//Tables holds the three lookup tables used to rebuild atom and residue names.
//A Tables is never modified after NewTables returns, so the same value can be
//shared by any number of concurrent conversions.
type Tables struct {
	types    map[int]string
	residues map[int]string
	names    map[NameKey]string
}

//NewTables builds a Tables from copies of the given maps.
func NewTables(types, residues map[int]string, names map[NameKey]string) *Tables {
	T := &Tables{
		types:    make(map[int]string, len(types)),
		residues: make(map[int]string, len(residues)),
		names:    make(map[NameKey]string, len(names)),
	}
	for k, v := range types {
		T.types[k] = v
	}
	for k, v := range residues {
		T.residues[k] = v
	}
	for k, v := range names {
		T.names[k] = v
	}
	return T
}

//Type returns the type label for code.
func (T *Tables) Type(code int) (string, error) {
	t, ok := T.types[code]
	if !ok {
		return "", &Error{message: fmt.Sprintf("atom type code %d not in type table", code), atom: -1, kind: ErrUnknownCode, deco: []string{"Type"}, critical: true}
	}
	return t, nil
}

//Residue returns the residue name for code.
func (T *Tables) Residue(code int) (string, error) {
	r, ok := T.residues[code]
	if !ok {
		return "", &Error{message: fmt.Sprintf("residue code %d not in residue table", code), atom: -1, kind: ErrUnknownCode, deco: []string{"Residue"}, critical: true}
	}
	return r, nil
}

//Name looks up the canonical name of the atom of type typ at the 0-based
//position in residue. The second value is false if there is no such entry.
func (T *Tables) Name(residue string, position int, typ string) (string, bool) {
	n, ok := T.names[NameKey{Residue: residue, Position: position, Type: typ}]
	return n, ok
}

//Len returns the number of entries in the type, residue and name tables.
func (T *Tables) Len() (types, residues, names int) {
	return len(T.types), len(T.residues), len(T.names)
}

//Maps returns copies of the three tables.
func (T *Tables) Maps() (types, residues map[int]string, names map[NameKey]string) {
	c := NewTables(T.types, T.residues, T.names)
	return c.types, c.residues, c.names
}
