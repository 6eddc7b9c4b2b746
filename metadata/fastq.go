/*******************************************************************************
 * Copyright (c) 2025 Genome Research Ltd.
 *
 * Permission is hereby granted, free of charge, to any person obtaining
 * a copy of this software and associated documentation files (the
 * "Software"), to deal in the Software without restriction, including
 * without limitation the rights to use, copy, modify, merge, publish,
 * distribute, sublicense, and/or sell copies of the Software, and to
 * permit persons to whom the Software is furnished to do so, subject to
 * the following conditions:
 *
 * The above copyright notice and this permission notice shall be included
 * in all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
 * EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
 * MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
 * IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY
 * CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT,
 * TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE
 * SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 ******************************************************************************/

package metadata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shenwei356/xopen"
)

const (
	ErrColumnCount = Error("sample name parts do not match the number of columns")
	ErrBadColumns  = Error("invalid metadata column names")
	ErrNoFastqs    = Error("no R1 FASTQ files found")

	nameSeparator = "_"
	partSeparator = "-"
	readOneMarker = "R1"
)

// SampleName returns the sample id encoded in a FASTQ file name, the part
// before the first "_", and whether the file holds the first reads of a pair,
// ie. if one of the other "_" separated parts of the name, ignoring any file
// extension, is "R1".
func SampleName(fastq string) (string, bool) {
	parts := strings.Split(fastq, nameSeparator)

	for _, part := range parts[1:] {
		if part, _, _ = strings.Cut(part, "."); part == readOneMarker {
			return parts[0], true
		}
	}

	return parts[0], false
}

// FromFastqNames builds Metadata from FASTQ file names, eg.
// "BSNS-R1_S1_L001_R1_001.fastq.gz". Only R1 files are used. Each sample id is
// split on "-" and its parts become the values of the given columns, in order;
// every id must have exactly as many parts as there are columns. Sample ids
// seen before are skipped.
func FromFastqNames(names []string, idColumn string, columns []string) (*Metadata, error) {
	if err := checkColumns(idColumn, columns); err != nil {
		return nil, err
	}

	var rows [][]string

	seen := make(map[string]bool)

	for _, name := range names {
		id, isR1 := SampleName(name)
		if !isR1 || seen[id] {
			continue
		}

		seen[id] = true

		parts := strings.Split(id, partSeparator)
		if len(parts) != len(columns) {
			return nil, fmt.Errorf("%w: %s has %d parts, but %d columns were given",
				ErrColumnCount, id, len(parts), len(columns))
		}

		rows = append(rows, append([]string{id}, parts...))
	}

	if len(rows) == 0 {
		return nil, ErrNoFastqs
	}

	return New(idColumn, append([]string{idColumn}, columns...), rows)
}

func checkColumns(idColumn string, columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("%w: none given", ErrBadColumns)
	}

	seen := map[string]bool{idColumn: true}

	for _, col := range columns {
		if col == "" || seen[col] {
			return fmt.Errorf("%w: '%s'", ErrBadColumns, col)
		}

		seen[col] = true
	}

	return nil
}

// FromFastqDir is like FromFastqNames, using the names of the files in the
// given directory, in name order.
func FromFastqDir(dir, idColumn string, columns []string) (*Metadata, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	return FromFastqNames(names, idColumn, columns)
}

// Write writes the Metadata as tab separated text with a header line.
func (m *Metadata) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(m.Columns); err != nil {
		return err
	}

	if err := cw.WriteAll(m.Records); err != nil {
		return err
	}

	return cw.Error()
}

// WriteFile writes the Metadata to the given path, compressed if the path
// ends in a compression suffix like ".gz".
func (m *Metadata) WriteFile(path string) error {
	fh, err := xopen.Wopen(path)
	if err != nil {
		return err
	}

	if err = m.Write(fh); err != nil {
		fh.Close()

		return err
	}

	return fh.Close()
}
