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

package table

import (
	"fmt"
	"strings"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNoHeader        = Error("table has no header row")
	ErrDuplicateSample = Error("duplicate sample column")
)

// Row is a labelled row of a Table, holding one Value per sample column.
type Row struct {
	Label  string
	Values []Value
}

// Table is a taxon (or read count) table: a label column followed by sample
// columns. The label column always comes first and is never reordered.
type Table struct {
	LabelHeader string
	Samples     []string
	Rows        []Row
}

// New returns an empty Table with the given label column header and sample
// columns. Sample names must be unique.
func New(labelHeader string, samples []string) (*Table, error) {
	seen := make(map[string]bool, len(samples))

	for _, s := range samples {
		if seen[s] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSample, s)
		}

		seen[s] = true
	}

	return &Table{
		LabelHeader: labelHeader,
		Samples:     append([]string{}, samples...),
	}, nil
}

// FromRows creates a Table from raw spreadsheet rows, where the first row is
// the header (label header followed by sample ids) and every following row is
// a label followed by cell values. Trailing empty header cells are ignored, as
// are cells beyond the header's width; short rows are padded with blanks.
func FromRows(raw [][]string) (*Table, error) {
	if len(raw) == 0 {
		return nil, ErrNoHeader
	}

	header := trimTrailingEmpty(raw[0])
	if len(header) == 0 {
		return nil, ErrNoHeader
	}

	t, err := New(header[0], header[1:])
	if err != nil {
		return nil, err
	}

	for _, cells := range raw[1:] {
		if len(trimTrailingEmpty(cells)) == 0 {
			continue
		}

		values := make([]Value, len(t.Samples))

		for i := range values {
			if i+1 < len(cells) {
				values[i] = Parse(cells[i+1])
			}
		}

		t.Rows = append(t.Rows, Row{Label: cells[0], Values: values})
	}

	return t, nil
}

func trimTrailingEmpty(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}

	return cells[:end]
}

// Clone returns a deep copy of the Table.
func (t *Table) Clone() *Table {
	c := &Table{
		LabelHeader: t.LabelHeader,
		Samples:     append([]string{}, t.Samples...),
		Rows:        make([]Row, len(t.Rows)),
	}

	for i, r := range t.Rows {
		c.Rows[i] = Row{Label: r.Label, Values: append([]Value{}, r.Values...)}
	}

	return c
}

// Append adds a row to the end of the Table. values are padded with blanks or
// truncated to the number of sample columns.
func (t *Table) Append(label string, values []Value) {
	t.Rows = append(t.Rows, Row{Label: label, Values: t.fit(values)})
}

// Prepend inserts the given rows, in order, above the existing rows.
func (t *Table) Prepend(rows ...Row) {
	out := make([]Row, 0, len(rows)+len(t.Rows))

	for _, r := range rows {
		out = append(out, Row{Label: r.Label, Values: t.fit(r.Values)})
	}

	t.Rows = append(out, t.Rows...)
}

func (t *Table) fit(values []Value) []Value {
	out := make([]Value, len(t.Samples))
	copy(out, values)

	return out
}

// SampleIndex returns a map of sample id to column index.
func (t *Table) SampleIndex() map[string]int {
	idx := make(map[string]int, len(t.Samples))

	for i, s := range t.Samples {
		idx[s] = i
	}

	return idx
}

// Find returns the indices of rows whose label satisfies match, in row order.
func (t *Table) Find(match func(label string) bool) []int {
	var found []int

	for i, r := range t.Rows {
		if match(r.Label) {
			found = append(found, i)
		}
	}

	return found
}

// Remove deletes the rows at the given indices.
func (t *Table) Remove(indices []int) {
	if len(indices) == 0 {
		return
	}

	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}

	kept := t.Rows[:0]

	for i, r := range t.Rows {
		if !drop[i] {
			kept = append(kept, r)
		}
	}

	t.Rows = kept
}

// ColumnSums sums the Float() of every sample column over rows [from, to).
func (t *Table) ColumnSums(from, to int) []float64 {
	sums := make([]float64, len(t.Samples))

	for _, r := range t.Rows[from:to] {
		for j, v := range r.Values {
			sums[j] += v.Float()
		}
	}

	return sums
}

// Header returns the label header followed by the sample ids.
func (t *Table) Header() []string {
	return append([]string{t.LabelHeader}, t.Samples...)
}
