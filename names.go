/*
 * names.go, part of gomisato.
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

import "strconv"

//AtomName returns the name of an atom with atomic number z and type label typ,
//at position (1-based) in a residue named residue.
//Ligand atoms are always named with the element symbol followed by the position.
//Other atoms get their canonical name from the name table, falling back to the
//ligand-style name if the table has no entry for them.
func AtomName(z int, residue, typ string, position int, T *Tables) (string, error) {
	symbol, err := Symbol(z)
	if err != nil {
		return "", errDecorate(err, "AtomName", -1)
	}
	if residue != Ligand {
		if name, ok := T.Name(residue, position-1, typ); ok {
			return name, nil
		}
	}
	return symbol + strconv.Itoa(position), nil
}
