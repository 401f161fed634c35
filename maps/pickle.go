/*
 * pickle.go, part of gomisato.
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

package maps

import (
	"fmt"
	"math/big"

	"github.com/nlpodyssey/gopickle/pickle"
	"github.com/nlpodyssey/gopickle/types"
	misato "github.com/rmera/gomisato"
	"github.com/rmera/gomisato/zio"
)

//unpickle reads the Python dict stored in the pickle file name.
func unpickle(name string) (*types.Dict, error) {
	r, err := zio.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	u := pickle.NewUnpickler(r)
	v, err := u.Load()
	if err != nil {
		return nil, fmt.Errorf("unpickling %s: %w", name, err)
	}
	d, ok := v.(*types.Dict)
	if !ok {
		return nil, fmt.Errorf("%s: expected a dict, got %T", name, v)
	}
	return d, nil
}

//pickledCodes reads a pickled {int: str} dict, as the type and residue tables are stored.
func pickledCodes(name string) (map[int]string, error) {
	d, err := unpickle(name)
	if err != nil {
		return nil, err
	}
	ret := make(map[int]string, d.Len())
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		code, err := pyInt(k)
		if err != nil {
			return nil, fmt.Errorf("%s: key: %w", name, err)
		}
		label, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s: value for %d: expected a string, got %T", name, code, v)
		}
		ret[code] = label
	}
	return ret, nil
}

//pickledNames reads the pickled {(residue, position, type): name} dict.
func pickledNames(name string) (map[misato.NameKey]string, error) {
	d, err := unpickle(name)
	if err != nil {
		return nil, err
	}
	ret := make(map[misato.NameKey]string, d.Len())
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		t, ok := k.(*types.Tuple)
		if !ok || t.Len() != 3 {
			return nil, fmt.Errorf("%s: expected a 3-tuple key, got %v", name, k)
		}
		res, ok1 := t.Get(0).(string)
		typ, ok2 := t.Get(2).(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%s: wrong key %v", name, k)
		}
		pos, err := pyInt(t.Get(1))
		if err != nil {
			return nil, fmt.Errorf("%s: key %v: %w", name, k, err)
		}
		atom, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s: value for %v: expected a string, got %T", name, k, v)
		}
		ret[misato.NameKey{Residue: res, Position: pos, Type: typ}] = atom
	}
	return ret, nil
}

//pyInt converts an unpickled Python int.
func pyInt(v interface{}) (int, error) {
	switch i := v.(type) {
	case int:
		return i, nil
	case int64:
		return int(i), nil
	case *big.Int:
		if i.IsInt64() {
			return int(i.Int64()), nil
		}
	}
	return 0, fmt.Errorf("expected an int, got %T %v", v, v)
}
