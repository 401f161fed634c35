/*
 * maps.go, part of gomisato.
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

//Package maps loads and saves the lookup tables used to rebuild atom and residue
//names from the MISATO codes.
//
//Each table is a JSON document, optionally compressed (see package zio).
//The type and residue tables are objects from the decimal code to the label.
//The name table is an array of {"residue", "position", "type", "name"} objects,
//since its keys are tuples.
//The .pickle files distributed with MISATO are read too, but tables are always
//saved as JSON.
package maps

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	misato "github.com/rmera/gomisato"
	"github.com/rmera/gomisato/zio"
)

//Base names of the table files in a MISATO Maps directory.
const (
	TypeFile    = "atoms_type_map"
	ResidueFile = "atoms_residue_map"
	NameFile    = "atoms_name_map_for_pdb"
)

//Suffixes tried, in order, when looking for a table in a directory.
var suffixes = []string{".json.zst", ".json.gz", ".json", pickleSuffix}

const pickleSuffix = ".pickle"

type nameEntry struct {
	Residue  string `json:"residue"`
	Position int    `json:"position"`
	Type     string `json:"type"`
	Name     string `json:"name"`
}

//Load reads the three tables from dir.
func Load(dir string) (*misato.Tables, error) {
	var paths [3]string
	for i, base := range []string{TypeFile, ResidueFile, NameFile} {
		p, err := find(dir, base)
		if err != nil {
			return nil, fmt.Errorf("Load: %w", err)
		}
		paths[i] = p
	}
	return LoadFiles(paths[0], paths[1], paths[2])
}

//LoadFiles reads the type, residue and name tables from the given files.
//Files ending in .pickle are read as Python pickles, the rest as JSON.
func LoadFiles(typeFile, residueFile, nameFile string) (*misato.Tables, error) {
	types, err := codes(typeFile)
	if err != nil {
		return nil, fmt.Errorf("LoadFiles: %w", err)
	}
	residues, err := codes(residueFile)
	if err != nil {
		return nil, fmt.Errorf("LoadFiles: %w", err)
	}
	var names map[misato.NameKey]string
	if strings.HasSuffix(nameFile, pickleSuffix) {
		names, err = pickledNames(nameFile)
	} else {
		var entries []nameEntry
		err = decode(nameFile, &entries)
		names = make(map[misato.NameKey]string, len(entries))
		for _, e := range entries {
			names[misato.NameKey{Residue: e.Residue, Position: e.Position, Type: e.Type}] = e.Name
		}
	}
	if err != nil {
		return nil, fmt.Errorf("LoadFiles: %w", err)
	}
	return misato.NewTables(types, residues, names), nil
}

func codes(name string) (map[int]string, error) {
	if strings.HasSuffix(name, pickleSuffix) {
		return pickledCodes(name)
	}
	ret := make(map[int]string)
	return ret, decode(name, &ret)
}

//Save writes the tables in T to dir, which is created if needed. suffix is
//appended to the file names and selects the compression: ".json",
//".json.gz" or ".json.zst".
func Save(dir string, T *misato.Tables, suffix string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	types, residues, names := T.Maps()
	entries := make([]nameEntry, 0, len(names))
	for k, v := range names {
		entries = append(entries, nameEntry{Residue: k.Residue, Position: k.Position, Type: k.Type, Name: v})
	}
	for base, v := range map[string]interface{}{TypeFile: types, ResidueFile: residues, NameFile: entries} {
		if err := encode(filepath.Join(dir, base+suffix), v); err != nil {
			return fmt.Errorf("Save: %w", err)
		}
	}
	return nil
}

func find(dir, base string) (string, error) {
	for _, s := range suffixes {
		p := filepath.Join(dir, base+s)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("no %s table in %s: %w", base, dir, fs.ErrNotExist)
}

func decode(name string, v interface{}) error {
	r, err := zio.Open(name)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

func encode(name string, v interface{}) error {
	w, err := zio.Create(name)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		w.Close()
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return w.Close()
}
