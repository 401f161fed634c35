/*
 * h5.go, part of gomisato.
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

//Package h5 reads the MISATO HDF5 datasets.
//
//An MD file has one group per structure, named after its PDB code, with the
//datasets trajectory_coordinates (frames x atoms x 3), atoms_type, atoms_residue,
//atoms_number and molecules_begin_atom_index. A QM file has one group per
//structure with atom_properties/atom_properties_values (atoms x properties, the
//first three are the coordinates) and atom_properties/atom_names (the atomic numbers).
//
//The HDF5 library is not safe for concurrent use: a File must be used by one
//goroutine at a time.
package h5

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	misato "github.com/rmera/gomisato"
	v3 "github.com/rmera/gomisato/v3"
	"gonum.org/v1/hdf5"
)

//Dataset names inside each structure group.
const (
	Coordinates = "trajectory_coordinates"
	Types       = "atoms_type"
	Residues    = "atoms_residue"
	Numbers     = "atoms_number"
	Begins      = "molecules_begin_atom_index"
	QMValues    = "atom_properties/atom_properties_values"
	QMNames     = "atom_properties/atom_names"
)

//File is an open MISATO HDF5 file.
type File struct {
	f    *hdf5.File
	name string
}

//Open opens the HDF5 file name for reading.
func Open(name string) (*File, error) {
	f, err := hdf5.OpenFile(name, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("Open: %s: %w", name, err)
	}
	return &File{f: f, name: name}, nil
}

//Close closes the file.
func (F *File) Close() error {
	return F.f.Close()
}

//Name returns the name of the file.
func (F *File) Name() string {
	return F.name
}

//Structs returns the codes of the structures in the file, sorted.
func (F *File) Structs() ([]string, error) {
	n, err := F.f.NumObjects()
	if err != nil {
		return nil, F.error("Structs", "/", err)
	}
	codes := make([]string, 0, n)
	for i := uint(0); i < n; i++ {
		t, err := F.f.ObjectTypeByIndex(i)
		if err != nil {
			return nil, F.error("Structs", "/", err)
		}
		if t != hdf5.H5G_GROUP {
			continue
		}
		name, err := F.f.ObjectNameByIndex(i)
		if err != nil {
			return nil, F.error("Structs", "/", err)
		}
		codes = append(codes, name)
	}
	sort.Strings(codes)
	return codes, nil
}

//Frames returns the number of frames in the trajectory of the structure code.
func (F *File) Frames(code string) (int, error) {
	path := code + "/" + Coordinates
	dims, err := F.dims(path)
	if err != nil {
		return 0, F.error("Frames", path, err)
	}
	if len(dims) != 3 || dims[2] != 3 {
		return 0, F.error("Frames", path, fmt.Errorf("expected frames x atoms x 3, got dimensions %v", dims))
	}
	return int(dims[0]), nil
}

//Topology contains the frame-independent data for a structure in an MD file.
type Topology struct {
	Types    []int
	Residues []int
	Numbers  []int
	Begins   []int
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Types)
}

//Frame returns an MDFrame with the data in T and the coordinates coords.
//The slices in T are shared, not copied.
func (T *Topology) Frame(coords *v3.Matrix) *misato.MDFrame {
	return &misato.MDFrame{Coords: coords, Types: T.Types, Residues: T.Residues, Numbers: T.Numbers, Begins: T.Begins}
}

//Topology reads the frame-independent data of the structure code.
func (F *File) Topology(code string) (*Topology, error) {
	var err error
	T := new(Topology)
	for _, d := range []struct {
		name string
		dest *[]int
	}{{Types, &T.Types}, {Residues, &T.Residues}, {Numbers, &T.Numbers}, {Begins, &T.Begins}} {
		*d.dest, err = F.ints(code + "/" + d.name)
		if err != nil {
			return nil, fmt.Errorf("Topology: %w", err)
		}
	}
	return T, nil
}

//Coords reads the coordinates of the given frame of the structure code.
func (F *File) Coords(code string, frame int) (*v3.Matrix, error) {
	path := code + "/" + Coordinates
	ds, err := F.f.OpenDataset(path)
	if err != nil {
		return nil, F.error("Coords", path, err)
	}
	defer ds.Close()
	filespace := ds.Space()
	defer filespace.Close()
	dims, _, err := filespace.SimpleExtentDims()
	if err != nil {
		return nil, F.error("Coords", path, err)
	}
	if len(dims) != 3 || dims[2] != 3 {
		return nil, F.error("Coords", path, fmt.Errorf("expected frames x atoms x 3, got dimensions %v", dims))
	}
	if frame < 0 || uint(frame) >= dims[0] {
		return nil, F.error("Coords", path, fmt.Errorf("frame %d out of range, %d frames in trajectory", frame, dims[0]))
	}
	natoms := dims[1]
	count := []uint{1, natoms, 3}
	if err := filespace.SelectHyperslab([]uint{uint(frame), 0, 0}, []uint{1, 1, 1}, count, []uint{1, 1, 1}); err != nil {
		return nil, F.error("Coords", path, err)
	}
	memspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		return nil, F.error("Coords", path, err)
	}
	defer memspace.Close()
	data := make([]float64, natoms*3)
	if err := ds.ReadSubset(&data, memspace, filespace); err != nil {
		return nil, F.error("Coords", path, err)
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, F.error("Coords", path, err)
	}
	return coords, nil
}

//MDFrame reads the given frame of the structure code. When converting many frames
//of the same structure it is cheaper to read the Topology once and use Coords.
func (F *File) MDFrame(code string, frame int) (*misato.MDFrame, error) {
	T, err := F.Topology(code)
	if err != nil {
		return nil, fmt.Errorf("MDFrame: %w", err)
	}
	coords, err := F.Coords(code, frame)
	if err != nil {
		return nil, fmt.Errorf("MDFrame: %w", err)
	}
	return T.Frame(coords), nil
}

//QMSnapshot reads the coordinates and atomic numbers of the structure code
//from a QM file.
func (F *File) QMSnapshot(code string) (*v3.Matrix, []int, error) {
	path := code + "/" + QMValues
	dims, err := F.dims(path)
	if err != nil {
		return nil, nil, F.error("QMSnapshot", path, err)
	}
	if len(dims) != 2 || dims[1] < 3 {
		return nil, nil, F.error("QMSnapshot", path, fmt.Errorf("expected atoms x properties with at least 3 properties, got dimensions %v", dims))
	}
	values, err := F.floats(path)
	if err != nil {
		return nil, nil, fmt.Errorf("QMSnapshot: %w", err)
	}
	natoms, nprops := int(dims[0]), int(dims[1])
	data := make([]float64, 0, natoms*3)
	for i := 0; i < natoms; i++ {
		data = append(data, values[i*nprops:i*nprops+3]...)
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, nil, F.error("QMSnapshot", path, err)
	}
	numbers, err := F.atomNumbers(code + "/" + QMNames)
	if err != nil {
		return nil, nil, fmt.Errorf("QMSnapshot: %w", err)
	}
	return coords, numbers, nil
}

//atomNumbers reads a dataset of atomic numbers stored either as numbers or as
//strings with the numbers.
func (F *File) atomNumbers(path string) ([]int, error) {
	ds, err := F.f.OpenDataset(path)
	if err != nil {
		return nil, F.error("atomNumbers", path, err)
	}
	dtype, err := ds.Datatype()
	ds.Close()
	if err != nil {
		return nil, F.error("atomNumbers", path, err)
	}
	defer dtype.Close()
	if dtype.Class() != hdf5.T_STRING {
		return F.ints(path)
	}
	strs, err := F.strings(path)
	if err != nil {
		return nil, err
	}
	ret := make([]int, len(strs))
	for i, s := range strs {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, F.error("atomNumbers", path, fmt.Errorf("atom %d: %w", i, err))
		}
		ret[i] = int(f)
	}
	return ret, nil
}

func (F *File) dims(path string) ([]uint, error) {
	ds, err := F.f.OpenDataset(path)
	if err != nil {
		return nil, err
	}
	defer ds.Close()
	space := ds.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	return dims, err
}

func points(dims []uint) int {
	n := 1
	for _, d := range dims {
		n *= int(d)
	}
	return n
}

//ints reads a whole integer dataset. HDF5 converts from the stored integer type.
func (F *File) ints(path string) ([]int, error) {
	dims, err := F.dims(path)
	if err != nil {
		return nil, F.error("ints", path, err)
	}
	ds, err := F.f.OpenDataset(path)
	if err != nil {
		return nil, F.error("ints", path, err)
	}
	defer ds.Close()
	data := make([]int32, points(dims))
	if len(data) > 0 {
		if err := ds.Read(&data); err != nil {
			return nil, F.error("ints", path, err)
		}
	}
	ret := make([]int, len(data))
	for i, v := range data {
		ret[i] = int(v)
	}
	return ret, nil
}

func (F *File) floats(path string) ([]float64, error) {
	dims, err := F.dims(path)
	if err != nil {
		return nil, F.error("floats", path, err)
	}
	ds, err := F.f.OpenDataset(path)
	if err != nil {
		return nil, F.error("floats", path, err)
	}
	defer ds.Close()
	data := make([]float64, points(dims))
	if len(data) > 0 {
		if err := ds.Read(&data); err != nil {
			return nil, F.error("floats", path, err)
		}
	}
	return data, nil
}

func (F *File) strings(path string) ([]string, error) {
	dims, err := F.dims(path)
	if err != nil {
		return nil, F.error("strings", path, err)
	}
	ds, err := F.f.OpenDataset(path)
	if err != nil {
		return nil, F.error("strings", path, err)
	}
	defer ds.Close()
	data := make([]string, points(dims))
	if len(data) > 0 {
		if err := ds.Read(&data); err != nil {
			return nil, F.error("strings", path, err)
		}
	}
	return data, nil
}

func (F *File) error(caller, path string, err error) error {
	return fmt.Errorf("%s: %s:%s: %w", caller, F.name, path, err)
}
