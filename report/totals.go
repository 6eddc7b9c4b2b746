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
	"github.com/wtsi-hgi/taxa-organiser/table"
)

// AppendTotalReads appends a "Total reads" row to t, holding for each sample
// column the sum of that column in the read count table. Samples missing from
// reads get 0, and are returned.
func AppendTotalReads(t, reads *table.Table) []string {
	readIndex := reads.SampleIndex()
	totals := reads.ColumnSums(0, len(reads.Rows))
	values := make([]table.Value, len(t.Samples))

	var missing []string

	for i, sample := range t.Samples {
		j, ok := readIndex[sample]
		if !ok {
			missing = append(missing, sample)
			values[i] = table.Number(0)

			continue
		}

		values[i] = table.Number(totals[j])
	}

	t.Append(LabelTotalReads, values)

	return missing
}
