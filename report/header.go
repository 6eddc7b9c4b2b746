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

package report

import (
	"github.com/wtsi-hgi/taxa-organiser/metadata"
	"github.com/wtsi-hgi/taxa-organiser/table"
)

// InjectMetadataHeader returns a copy of t with one row prepended for each
// descriptive metadata field, in metadata column order. Each row is labelled
// with the field name and holds, for each sample column, that sample's value
// for the field, or an empty string if the sample has no metadata. The number
// of rows added is also returned.
func InjectMetadataHeader(t *table.Table, m *metadata.Metadata) (*table.Table, int, error) {
	fields := m.Fields()
	rows := make([]table.Row, 0, len(fields))

	for _, field := range fields {
		lookup, err := m.Lookup(field)
		if err != nil {
			return nil, 0, err
		}

		values := make([]table.Value, len(t.Samples))

		for i, sample := range t.Samples {
			values[i] = table.Text(lookup[sample])
		}

		rows = append(rows, table.Row{Label: field, Values: values})
	}

	out := t.Clone()
	out.Prepend(rows...)

	return out, len(rows), nil
}
