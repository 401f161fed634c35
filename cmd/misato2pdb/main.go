/*
 * main.go, part of gomisato.
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

//misato2pdb converts structures from the MISATO MD and QM HDF5 datasets to PDB files.
//
//	misato2pdb -s 11gs -f 10 -dMD MD_dataset_mapped.hdf5 -mdir Maps/
//	misato2pdb -s 11gs -dQM QM_dataset.hdf5
//	misato2pdb -s 11gs -all_frames -dMD MD_dataset_mapped.hdf5 --base_save_dir pdbs
//	misato2pdb -s all -dMD MD_dataset_mapped.hdf5 --base_save_dir pdbs -w 16 -z zst
//
//With -s all and no MD dataset, "all" is taken as a structure code.
//
//Settings can also be read from a TOML file given with -c, see package config.
//Flags override the file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	misato "github.com/rmera/gomisato"
	"github.com/rmera/gomisato/batch"
	"github.com/rmera/gomisato/config"
	"github.com/rmera/gomisato/h5"
	"github.com/rmera/gomisato/maps"
	"github.com/rmera/gomisato/pdbw"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	stop()
	os.Exit(code)
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)
	log.SetFlags(0)
	log.SetPrefix("misato2pdb: ")
	C, err := parse(argv, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		if errors.Is(err, config.ErrNoDataset) {
			fmt.Fprintln(stderr, "Please provide either a MD or a QM dataset name!")
			return 2
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if C.All() {
		fmt.Fprintf(stdout, "Generating pdb for all trajectories in MD dataset %s. Trajectories will be saved to %s\n", C.Input.MD, C.Output.Dir)
		return runBatch(ctx, C, nil, stdout)
	}
	status := 0
	if C.Input.MD != "" && C.Run.AllFrames {
		fmt.Fprintf(stdout, "Generating pdb for all frames of %s in MD dataset %s. Frames will be saved to %s\n", C.Run.Struct, C.Input.MD, C.Output.Dir)
		status = runBatch(ctx, C, []string{C.Run.Struct}, stdout)
	} else if C.Input.MD != "" {
		if err := runMD(C, stdout); err != nil {
			log.Print(err)
			status = 1
		}
	}
	if C.Input.QM != "" {
		if err := runQM(C, stdout); err != nil {
			log.Print(err)
			status = 1
		}
	}
	return status
}

//parse reads the flags and the configuration file, if any, and returns the
//resulting, validated, configuration.
func parse(argv []string, stderr io.Writer) (*config.Config, error) {
	fs := flag.NewFlagSet("misato2pdb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var flags config.Config
	var confFile string
	fs.StringVar(&confFile, "c", "", "TOML configuration file")
	for _, n := range []string{"s", "struct"} {
		fs.StringVar(&flags.Run.Struct, n, "", "pdb code of struct to convert e.g. 11gs, or 'all'")
	}
	for _, n := range []string{"f", "frame"} {
		fs.IntVar(&flags.Run.Frame, n, 0, "Frame of trajectory to convert")
	}
	for _, n := range []string{"dMD", "datasetMD"} {
		fs.StringVar(&flags.Input.MD, n, "", "MD dataset in hdf5 format, e.g. MD_dataset_mapped.hdf5")
	}
	for _, n := range []string{"dQM", "datasetQM"} {
		fs.StringVar(&flags.Input.QM, n, "", "QM dataset in hdf5 format")
	}
	for _, n := range []string{"mdir", "mapdir"} {
		fs.StringVar(&flags.Input.Maps, n, "", "Path to maps (default \"Maps/\")")
	}
	for _, n := range []string{"a", "all_frames"} {
		fs.BoolVar(&flags.Run.AllFrames, n, false, "Convert every frame of the struct to <base_save_dir>/<struct>/complex/")
	}
	fs.StringVar(&flags.Output.Dir, "base_save_dir", "", "Base save dir when struct=all or with all_frames (default \".\")")
	fs.IntVar(&flags.Run.Workers, "w", 0, "Structures converted concurrently when struct=all (default: number of CPUs)")
	fs.StringVar(&flags.Output.Compress, "z", "", "Compress the output PDB files: gz or zst")
	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	C := config.Default()
	if confFile != "" {
		var err error
		C, err = config.Load(confFile)
		if err != nil {
			return nil, err
		}
	}
	C.Merge(&flags)
	//Merge skips zero values, but -f 0 and -all_frames=false must still override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "f", "frame":
			C.Run.Frame = flags.Run.Frame
		case "a", "all_frames":
			C.Run.AllFrames = flags.Run.AllFrames
		}
	})
	if err := C.Validate(); err != nil {
		return nil, err
	}
	return C, nil
}

func runMD(C *config.Config, stdout io.Writer) error {
	T, err := maps.Load(C.Input.Maps)
	if err != nil {
		return err
	}
	f, err := h5.Open(C.Input.MD)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintf(stdout, "Generating pdb for MD dataset for %s frame %d\n", C.Run.Struct, C.Run.Frame)
	return batch.MDFrame(f, T, C.Run.Struct, C.Run.Frame, pdbw.MDName(C.Run.Struct, C.Run.Frame)+C.Ext())
}

func runQM(C *config.Config, stdout io.Writer) error {
	f, err := h5.Open(C.Input.QM)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintf(stdout, "Generating pdb for QM dataset for %s\n", C.Run.Struct)
	return batch.QM(f, C.Run.Struct, pdbw.QMName(C.Run.Struct)+C.Ext())
}

//runBatch converts every frame of the given structures of the MD dataset, or of
//all its structures if structs is nil.
func runBatch(ctx context.Context, C *config.Config, structs []string, stdout io.Writer) int {
	T, err := maps.Load(C.Input.Maps)
	if err != nil {
		log.Print(err)
		return 1
	}
	if C.All() && C.Input.QM != "" {
		log.Print("struct=all only converts the MD dataset, the QM dataset is ignored")
	}
	f, err := h5.Open(C.Input.MD)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer f.Close()
	return convert(ctx, f, T, C, structs, stdout)
}

func convert(ctx context.Context, src batch.Source, T *misato.Tables, C *config.Config, structs []string, stdout io.Writer) int {
	rep, err := batch.Run(ctx, src, batch.Options{Tables: T, Dir: C.Output.Dir, Ext: C.Ext(), Workers: C.Run.Workers, Structs: structs})
	if rep != nil {
		fmt.Fprintf(stdout, "%d structures, %d frames written, %d failures\n", rep.Structs, rep.Frames, len(rep.Failed))
	}
	if err != nil {
		log.Print(err)
		return 1
	}
	if len(rep.Failed) > 0 {
		return 1
	}
	return 0
}
