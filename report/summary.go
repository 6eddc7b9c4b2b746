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
	"math"
	"strings"

	"github.com/wtsi-hgi/taxa-organiser/table"
)

// Summary holds, per sample column, the values of the summary rows.
type Summary struct {
	MinorGroup   []float64
	Unidentified []float64
	Identified   []float64
	TotalReads   []float64
}

// Summarise computes the Summary of t, which must be a table with headerRows
// metadata rows at the top and the "Total reads" row at the bottom, and
// removes the rows it extracts from t.
//
// The minor group is whatever the body rows (those between the metadata rows
// and the last row) fall short of 100%, never less than 0.
//
// Every row whose label contains "unidentified" and every row whose label
// contains "total reads" (case insensitively) is removed, but only the first
// of each provides the values. Without such rows their values are 0.
func Summarise(t *table.Table, headerRows int) Summary {
	n := len(t.Samples)
	s := Summary{MinorGroup: make([]float64, n)}

	bodyStart := min(headerRows, len(t.Rows))
	bodyEnd := max(bodyStart, len(t.Rows)-1)

	for i, sum := range t.ColumnSums(bodyStart, bodyEnd) {
		s.MinorGroup[i] = math.Max(0, percent-sum)
	}

	s.Unidentified = extractFirst(t, LabelUnidentified)

	s.Identified = make([]float64, n)
	for i, u := range s.Unidentified {
		s.Identified[i] = percent - u
	}

	s.TotalReads = extractFirst(t, LabelTotalReads)

	return s
}

// extractFirst removes every row whose label contains substr, returning the
// values of the first one, or zeros.
func extractFirst(t *table.Table, substr string) []float64 {
	substr = strings.ToLower(substr)

	found := t.Find(func(label string) bool {
		return strings.Contains(strings.ToLower(label), substr)
	})

	if len(found) == 0 {
		return make([]float64, len(t.Samples))
	}

	values := table.Floats(t.Rows[found[0]].Values)

	t.Remove(found)

	return values
}

// AppendSummary appends the summary rows to t.
func AppendSummary(t *table.Table, s Summary) {
	t.Append(LabelMinorGroup, table.Numbers(s.MinorGroup))
	t.Append(LabelUnidentified, table.Numbers(s.Unidentified))
	t.Append(LabelIdentified, table.Numbers(s.Identified))
	t.Append(LabelTotalReads, table.Numbers(s.TotalReads))
}
