/*
 * atomicdata.go, part of gomisato.
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

//A map from atomic numbers to element symbols.
//Only the elements present in the MISATO records are included, any other
//atomic number in an input is an error.
var numberSymbol = map[int]string{
	1:  "H",
	5:  "B",
	6:  "C",
	7:  "N",
	8:  "O",
	9:  "F",
	11: "Na",
	12: "Mg",
	13: "Al",
	14: "Si",
	15: "P",
	16: "S",
	17: "Cl",
	19: "K",
	20: "Ca",
	34: "Se",
	35: "Br",
	53: "I",
}

//Symbol returns the element symbol for the atomic number z, or an error
//wrapping ErrUnknownElement if z is not in the element table.
func Symbol(z int) (string, error) {
	s, ok := numberSymbol[z]
	if !ok {
		return "", &Error{message: fmt.Sprintf("atomic number %d has no known element symbol", z), atom: -1, kind: ErrUnknownElement, deco: []string{"Symbol"}, critical: true}
	}
	return s, nil
}
