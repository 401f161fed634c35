/*
 * errors.go, part of gomisato.
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
	"fmt"
)

//Error kinds. Every *Error returned by this package unwraps to one of these,
//so callers can tell them apart with errors.Is.
var (
	ErrUnknownElement = errors.New("unknown element")
	ErrUnknownCode    = errors.New("code not in lookup table")
	ErrMismatch       = errors.New("mismatched per-atom data")
)

//Error is the error type for the conversion. It can be
//decorated with the names of the functions it passes through.
type Error struct {
	message  string
	atom     int //index of the offending atom, -1 if the error is not tied to one.
	kind     error
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	if err.atom < 0 {
		return fmt.Sprintf("misato: %s", err.message)
	}
	return fmt.Sprintf("misato: atom %d: %s", err.atom, err.message)
}

//Decorate adds deco to the decoration slice, unless it is empty, and
//returns the resulting slice.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Critical returns true if the error aborts the conversion.
func (err *Error) Critical() bool { return err.critical }

//Atom returns the index of the atom that caused the error, or -1.
func (err *Error) Atom() int { return err.atom }

func (err *Error) Unwrap() error { return err.kind }

//errDecorate decorates err with caller if err is an *Error. The atom index
//is set if it was not already.
func errDecorate(err error, caller string, atom int) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
		if e.atom < 0 {
			e.atom = atom
		}
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}
