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
	"bytes"
	"encoding/csv"
	"io"

	"github.com/csimplestring/go-csv/detector"
	"github.com/shenwei356/xopen"
)

const enclosure = '"'

// Read parses a metadata file: tab separated text (comma separated is also
// accepted), optionally compressed, whose header contains idColumn.
func Read(path, idColumn string) (*Metadata, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	data, err := io.ReadAll(fh)
	if err != nil {
		return nil, err
	}

	return Parse(data, idColumn)
}

// Parse is like Read, but takes the file content directly.
func Parse(data []byte, idColumn string) (*Metadata, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = determineDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNoData
	}

	return New(idColumn, rows[0], rows[1:])
}

// determineDelimiter prefers tab, then comma, over any other candidate the
// detector comes up with, since sample ids frequently contain other
// punctuation.
func determineDelimiter(data []byte) rune {
	d := detector.New()
	candidates := d.DetectDelimiter(bytes.NewReader(data), enclosure)

	comma := false

	for _, c := range candidates {
		switch c {
		case "\t":
			return '\t'
		case ",":
			comma = true
		}
	}

	if comma {
		return ','
	}

	return '\t'
}
