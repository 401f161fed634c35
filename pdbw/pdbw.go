/*
 * pdbw.go, part of gomisato.
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

//Package pdbw writes PDB lines to files, plain or compressed.
package pdbw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rmera/gomisato/zio"
)

//Writer writes lines, each followed by a newline, to an underlying writer.
type Writer struct {
	w      *bufio.Writer
	c      io.Closer //nil if the Writer does not own the underlying writer.
	name   string
	nlines int
}

//NewWriter returns a Writer writing to w. Closing the Writer flushes it but
//does not close w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

//Create creates the file name, and its parent directories, and returns a Writer
//for it. The file is compressed if its name ends in .zst or .gz.
func Create(name string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	wc, err := zio.Create(name)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return &Writer{w: bufio.NewWriter(wc), c: wc, name: name}, nil
}

//WriteLines writes each line followed by a newline.
func (W *Writer) WriteLines(lines []string) error {
	for _, l := range lines {
		if _, err := W.w.WriteString(l); err != nil {
			return W.error("WriteLines", err)
		}
		if err := W.w.WriteByte('\n'); err != nil {
			return W.error("WriteLines", err)
		}
		W.nlines++
	}
	return nil
}

//Lines returns the number of lines written so far.
func (W *Writer) Lines() int {
	return W.nlines
}

//Close flushes the Writer and, if it was obtained with Create, closes the file.
func (W *Writer) Close() error {
	err := W.w.Flush()
	if W.c != nil {
		if err2 := W.c.Close(); err == nil {
			err = err2
		}
		W.c = nil
	}
	if err != nil {
		return W.error("Close", err)
	}
	return nil
}

func (W *Writer) error(caller string, err error) error {
	if W.name == "" {
		return fmt.Errorf("%s: %w", caller, err)
	}
	return fmt.Errorf("%s: %s: %w", caller, W.name, err)
}

//WriteFile writes lines to the file name, creating it and its parent directories.
func WriteFile(name string, lines []string) error {
	W, err := Create(name)
	if err != nil {
		return err
	}
	if err := W.WriteLines(lines); err != nil {
		W.Close()
		return err
	}
	return W.Close()
}

//MDName returns the file name for a frame of the structure code converted on its own.
func MDName(code string, frame int) string {
	return fmt.Sprintf("%s_MD_frame%d.pdb", code, frame)
}

//QMName returns the file name for the QM snapshot of the structure code.
func QMName(code string) string {
	return code + "_qm.pdb"
}

//FramePath returns the path of a frame of the structure code when a whole
//dataset is converted under base. ext is appended to the name, and can be used
//to request compression (".zst", ".gz").
func FramePath(base, code string, frame int, ext string) string {
	return filepath.Join(base, code, "complex", fmt.Sprintf("%s_frame%03d.pdb%s", code, frame, ext))
}
