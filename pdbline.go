/*
 * pdbline.go, part of gomisato.
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

//TER is the line that closes a molecule.
const TER = "TER"

//PDBLine returns the ATOM record for one atom. Names that don't fit in their
//columns are truncated. Numbers are written as given.
func PDBLine(serial int, name, residue string, resid int, c [3]float64, symbol string) string {
	return fmt.Sprintf("ATOM%7d  %-4s%-4s%5d    %8.3f%8.3f%8.3f  1.00  0.00           %-5s",
		serial, fit(name, 4), fit(residue, 4), resid, c[0], c[1], c[2], fit(symbol, 5))
}

func fit(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	return s
}
