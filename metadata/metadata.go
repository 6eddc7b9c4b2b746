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
	"fmt"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrMissingColumn = Error("metadata is missing required column")
	ErrNoData        = Error("no data found in metadata")

	// DefaultIDColumn is the name of the sample id column in QIIME 2 style
	// metadata files.
	DefaultIDColumn = "sampleid"
)

// Metadata holds one row per sample, with the sample id in IDColumn and any
// number of descriptive fields. All values are strings.
type Metadata struct {
	IDColumn string
	Columns  []string
	Records  [][]string
	idIndex  int
}

// New returns a Metadata from a header and data rows. Short rows are padded
// with empty strings and surplus cells are ignored. The header must contain
// idColumn.
func New(idColumn string, header []string, rows [][]string) (*Metadata, error) {
	idIndex := -1

	for i, col := range header {
		if col == idColumn {
			idIndex = i

			break
		}
	}

	if idIndex == -1 {
		return nil, fmt.Errorf("%w '%s'", ErrMissingColumn, idColumn)
	}

	records := make([][]string, len(rows))

	for i, row := range rows {
		record := make([]string, len(header))
		copy(record, row)
		records[i] = record
	}

	return &Metadata{
		IDColumn: idColumn,
		Columns:  append([]string{}, header...),
		Records:  records,
		idIndex:  idIndex,
	}, nil
}

// Fields returns the descriptive fields, ie. every column except the id
// column, in file order.
func (m *Metadata) Fields() []string {
	fields := make([]string, 0, len(m.Columns))

	for i, col := range m.Columns {
		if i != m.idIndex {
			fields = append(fields, col)
		}
	}

	return fields
}

// HasField tells you if the given descriptive field exists.
func (m *Metadata) HasField(field string) bool {
	return m.columnIndex(field) != -1 && field != m.IDColumn
}

func (m *Metadata) columnIndex(col string) int {
	for i, c := range m.Columns {
		if c == col {
			return i
		}
	}

	return -1
}

// Dedup returns a Metadata with later duplicate sample ids discarded, so that
// the first occurrence of each sample id wins.
func (m *Metadata) Dedup() *Metadata {
	seen := make(map[string]bool, len(m.Records))
	records := make([][]string, 0, len(m.Records))

	for _, record := range m.Records {
		id := record[m.idIndex]
		if seen[id] {
			continue
		}

		seen[id] = true

		records = append(records, record)
	}

	return &Metadata{
		IDColumn: m.IDColumn,
		Columns:  m.Columns,
		Records:  records,
		idIndex:  m.idIndex,
	}
}

// SampleIDs returns the unique sample ids in file order.
func (m *Metadata) SampleIDs() []string {
	d := m.Dedup()
	ids := make([]string, len(d.Records))

	for i, record := range d.Records {
		ids[i] = record[m.idIndex]
	}

	return ids
}

// Lookup returns a map of sample id to that sample's value for the given
// field. Where a sample id appears more than once, the first one wins.
func (m *Metadata) Lookup(field string) (map[string]string, error) {
	col := m.columnIndex(field)
	if col == -1 {
		return nil, fmt.Errorf("%w '%s'", ErrMissingColumn, field)
	}

	d := m.Dedup()
	lookup := make(map[string]string, len(d.Records))

	for _, record := range d.Records {
		lookup[record[m.idIndex]] = record[col]
	}

	return lookup, nil
}

// Values returns the unique values of the given field in the order they
// first appear.
func (m *Metadata) Values(field string) ([]string, error) {
	col := m.columnIndex(field)
	if col == -1 {
		return nil, fmt.Errorf("%w '%s'", ErrMissingColumn, field)
	}

	seen := make(map[string]bool)

	var values []string

	for _, record := range m.Records {
		v := record[col]
		if seen[v] {
			continue
		}

		seen[v] = true

		values = append(values, v)
	}

	return values, nil
}
