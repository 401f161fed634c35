/*
 * config.go, part of gomisato.
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

//Package config holds the settings for a conversion run, read from a TOML file
//and completed with command-line flags.
//
//A configuration file looks like:
//
//	[input]
//	md = "MD_dataset_mapped.hdf5"
//	qm = "QM_dataset.hdf5"
//	maps = "Maps/"
//
//	[output]
//	dir = "pdbs"
//	compress = "zst"
//
//	[run]
//	struct = "all"
//	frame = 0
//	workers = 8
//	all_frames = false
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml"
)

//All is the structure code that requests the conversion of every structure.
const All = "all"

//ErrNoDataset is returned by Validate when neither a MD nor a QM dataset is set.
var ErrNoDataset = errors.New("no MD or QM dataset given")

//Input contains the paths to read from.
type Input struct {
	MD   string `toml:"md"`   //MD dataset, HDF5.
	QM   string `toml:"qm"`   //QM dataset, HDF5.
	Maps string `toml:"maps"` //Directory with the lookup tables.
}

//Output contains where and how to write.
type Output struct {
	Dir      string `toml:"dir"`      //Base directory when converting every structure.
	Compress string `toml:"compress"` //"", "gz" or "zst".
}

//Run contains what to convert.
type Run struct {
	Struct    string `toml:"struct"` //PDB code of the structure, or "all".
	Frame     int    `toml:"frame"`
	Workers   int    `toml:"workers"`
	AllFrames bool   `toml:"all_frames"` //Convert every frame of Struct instead of only Frame.
}

//Config is the whole configuration for a run.
type Config struct {
	Input  Input  `toml:"input"`
	Output Output `toml:"output"`
	Run    Run    `toml:"run"`
}

//Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Input:  Input{Maps: "Maps/"},
		Output: Output{Dir: "."},
		Run:    Run{Workers: runtime.NumCPU()},
	}
}

//Load reads the TOML file path. Settings absent from the file keep their
//default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var read Config
	if err := toml.NewDecoder(f).Decode(&read); err != nil {
		return nil, fmt.Errorf("Load: %s: %w", path, err)
	}
	C := Default()
	C.Merge(&read)
	return C, nil
}

//Merge sets in C every setting that is not a zero value in o.
func (C *Config) Merge(o *Config) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&C.Input.MD, o.Input.MD)
	set(&C.Input.QM, o.Input.QM)
	set(&C.Input.Maps, o.Input.Maps)
	set(&C.Output.Dir, o.Output.Dir)
	set(&C.Output.Compress, o.Output.Compress)
	set(&C.Run.Struct, o.Run.Struct)
	if o.Run.Frame != 0 {
		C.Run.Frame = o.Run.Frame
	}
	if o.Run.Workers != 0 {
		C.Run.Workers = o.Run.Workers
	}
	if o.Run.AllFrames {
		C.Run.AllFrames = true
	}
}

//All returns true if every structure in the MD dataset is to be converted.
//Without a MD dataset, "all" is just a structure code.
func (C *Config) All() bool {
	return C.Input.MD != "" && strings.ToLower(C.Run.Struct) == All
}

//Ext returns the extension to append to output file names for the
//requested compression.
func (C *Config) Ext() string {
	if C.Output.Compress == "" {
		return ""
	}
	return "." + C.Output.Compress
}

//Validate returns an error if the configuration can't be run.
func (C *Config) Validate() error {
	if C.Input.MD == "" && C.Input.QM == "" {
		return ErrNoDataset
	}
	if C.Run.Struct == "" {
		return fmt.Errorf("no structure given")
	}
	if C.Run.AllFrames && C.Input.MD == "" {
		return fmt.Errorf("all_frames requires a MD dataset")
	}
	if C.Run.Frame < 0 {
		return fmt.Errorf("invalid frame %d", C.Run.Frame)
	}
	if C.Run.Workers < 1 {
		return fmt.Errorf("invalid number of workers %d", C.Run.Workers)
	}
	switch C.Output.Compress {
	case "", "gz", "zst":
	default:
		return fmt.Errorf("unknown compression %q, use gz or zst", C.Output.Compress)
	}
	return nil
}
