/*
 * batch.go, part of gomisato.
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

//Package batch converts whole MISATO datasets to PDB files, one structure per
//worker.
package batch

import (
	"context"
	"fmt"
	"log"
	"sync"

	misato "github.com/rmera/gomisato"
	"github.com/rmera/gomisato/h5"
	"github.com/rmera/gomisato/pdbw"
	v3 "github.com/rmera/gomisato/v3"
	"golang.org/x/sync/errgroup"
)

//Source is a set of MD trajectories. *h5.File is a Source.
type Source interface {
	Structs() ([]string, error)
	Frames(code string) (int, error)
	Topology(code string) (*h5.Topology, error)
	Coords(code string, frame int) (*v3.Matrix, error)
}

//QMSource is a set of QM snapshots. *h5.File is a QMSource.
type QMSource interface {
	QMSnapshot(code string) (*v3.Matrix, []int, error)
}

//Options for Run.
type Options struct {
	Tables  *misato.Tables
	Dir     string   //Base output directory.
	Ext     string   //Appended to the file names, "", ".gz" or ".zst".
	Workers int      //Structures converted at the same time. Values < 1 mean 1.
	Structs []string //Structures to convert. If nil, all the structures in the Source.
}

//Failure records a structure, or a frame of it, that could not be converted.
type Failure struct {
	Struct string
	Frame  int //-1 if the whole structure failed.
	Err    error
}

func (F Failure) Error() string {
	if F.Frame < 0 {
		return fmt.Sprintf("structure %s: %v", F.Struct, F.Err)
	}
	return fmt.Sprintf("structure %s frame %d: %v", F.Struct, F.Frame, F.Err)
}

func (F Failure) Unwrap() error { return F.Err }

//Report summarizes a Run.
type Report struct {
	Structs int //Structures processed, including those that failed.
	Frames  int //Frames written.
	Failed  []Failure
}

//Run converts every frame of the selected structures in src, writing each frame to
//pdbw.FramePath(O.Dir, code, frame, O.Ext).
//A structure or frame that fails is logged and added to the report, and the other
//ones go on. Run stops starting new structures when ctx is cancelled, and returns
//ctx's error in that case.
func Run(ctx context.Context, src Source, O Options) (*Report, error) {
	codes := O.Structs
	if codes == nil {
		var err error
		codes, err = src.Structs()
		if err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
	}
	workers := O.Workers
	if workers < 1 {
		workers = 1
	}
	r := &runner{src: src, o: O, report: new(Report), total: len(codes)}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, code := range codes {
		if gctx.Err() != nil {
			break
		}
		code := code
		g.Go(func() error {
			r.structure(gctx, code)
			return nil
		})
	}
	g.Wait()
	return r.report, ctx.Err()
}

type runner struct {
	src    Source
	o      Options
	h5mu   sync.Mutex //the HDF5 library is not thread-safe.
	mu     sync.Mutex //protects report and done.
	report *Report
	done   int
	total  int
}

func (r *runner) structure(ctx context.Context, code string) {
	r.h5mu.Lock()
	topo, err := r.src.Topology(code)
	var frames int
	if err == nil {
		frames, err = r.src.Frames(code)
	}
	r.h5mu.Unlock()
	if err != nil {
		r.fail(code, -1, err)
	} else {
		for frame := 0; frame < frames; frame++ {
			if ctx.Err() != nil {
				break
			}
			if err := r.frame(code, frame, topo); err != nil {
				r.fail(code, frame, err)
				continue
			}
			r.mu.Lock()
			r.report.Frames++
			r.mu.Unlock()
		}
	}
	r.mu.Lock()
	r.report.Structs++
	r.done++
	log.Printf("%d/%d structures done (%s)", r.done, r.total, code)
	r.mu.Unlock()
}

func (r *runner) frame(code string, frame int, topo *h5.Topology) error {
	r.h5mu.Lock()
	coords, err := r.src.Coords(code, frame)
	r.h5mu.Unlock()
	if err != nil {
		return err
	}
	lines, err := misato.MDLines(topo.Frame(coords), r.o.Tables)
	if err != nil {
		return err
	}
	return pdbw.WriteFile(pdbw.FramePath(r.o.Dir, code, frame, r.o.Ext), lines)
}

func (r *runner) fail(code string, frame int, err error) {
	f := Failure{Struct: code, Frame: frame, Err: err}
	log.Print(f.Error())
	r.mu.Lock()
	r.report.Failed = append(r.report.Failed, f)
	r.mu.Unlock()
}

//MDFrame converts one frame of the structure code in src and writes it to name.
func MDFrame(src Source, T *misato.Tables, code string, frame int, name string) error {
	topo, err := src.Topology(code)
	if err != nil {
		return fmt.Errorf("MDFrame: %w", err)
	}
	coords, err := src.Coords(code, frame)
	if err != nil {
		return fmt.Errorf("MDFrame: %w", err)
	}
	lines, err := misato.MDLines(topo.Frame(coords), T)
	if err != nil {
		return fmt.Errorf("MDFrame: %s frame %d: %w", code, frame, err)
	}
	return pdbw.WriteFile(name, lines)
}

//QM converts the QM snapshot of the structure code in src and writes it to name.
func QM(src QMSource, code string, name string) error {
	coords, numbers, err := src.QMSnapshot(code)
	if err != nil {
		return fmt.Errorf("QM: %w", err)
	}
	lines, err := misato.QMLines(coords, numbers)
	if err != nil {
		return fmt.Errorf("QM: %s: %w", code, err)
	}
	return pdbw.WriteFile(name, lines)
}
