/*
 * zio.go, part of gomisato.
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

//Package zio opens and creates files that may be compressed. The compression
//is chosen from the file name: names ending in .zst use zstd, names ending in
//.gz use gzip and any other name is read or written as is.
package zio

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//Format returns "zst", "gz" or "" depending on the compression that
//name implies.
func Format(name string) string {
	l := strings.ToLower(name)
	switch {
	case strings.HasSuffix(l, ".zst"):
		return "zst"
	case strings.HasSuffix(l, ".gz"):
		return "gz"
	}
	return ""
}

//Why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type zstdql struct {
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.Decoder.Close()
	return nil
}

//reader closes the decompressor and then the file.
type reader struct {
	io.ReadCloser
	f *os.File
}

func (r *reader) Close() error {
	err := r.ReadCloser.Close()
	if err2 := r.f.Close(); err == nil {
		err = err2
	}
	return err
}

//Open opens name for reading, decompressing it if needed.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	var r io.ReadCloser
	buf := bufio.NewReader(f)
	switch Format(name) {
	case "zst":
		var d *zstd.Decoder
		d, err = zstd.NewReader(buf)
		r = zstdql{d}
	case "gz":
		r, err = gzip.NewReader(buf)
	default:
		r = io.NopCloser(buf)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return &reader{r, f}, nil
}

//writer flushes and closes the compressor, then the buffer and the file.
type writer struct {
	io.WriteCloser
	buf *bufio.Writer
	f   *os.File
}

func (w *writer) Close() error {
	err := w.WriteCloser.Close()
	if err2 := w.buf.Flush(); err == nil {
		err = err2
	}
	if err2 := w.f.Close(); err == nil {
		err = err2
	}
	return err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

//Create creates or truncates name, and returns a writer that compresses
//what is written to it if the name asks for it. The returned writer must be
//closed for the data to reach the file.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(f)
	var w io.WriteCloser
	switch Format(name) {
	case "zst":
		w, err = zstd.NewWriter(buf, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case "gz":
		w = gzip.NewWriter(buf)
	default:
		w = nopWriteCloser{buf}
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return &writer{w, buf, f}, nil
}
