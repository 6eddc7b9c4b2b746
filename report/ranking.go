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
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wtsi-hgi/taxa-organiser/table"
)

// DefaultTopK is the default number of ranks computed per sample.
const DefaultTopK = 5

// Ranking holds the top K taxa of each sample column. Values and Taxa are
// indexed by rank-1 then sample column.
type Ranking struct {
	K       int
	Colors  []int
	Values  [][]table.Value
	Taxa    [][]string
	Sum1to3 []float64
	Sum1to5 []float64
}

// Rank computes the Ranking of the rows of t above the "minor group (<1%)"
// row, ignoring any "Total reads" row. Non-numeric cells count as 0, so the
// metadata header rows, whose cells are text, never rank.
//
// For each sample column the k largest values are picked; equal values are
// ranked by row order, earlier rows first. Only strictly positive values are
// ranked: ranks beyond the number of positive values have an empty taxon and
// a blank value. Colors holds that number of positive values.
func Rank(t *table.Table, k int) (*Ranking, error) {
	if k < 1 {
		return nil, ErrInvalidTopK
	}

	universe, err := rankingUniverse(t)
	if err != nil {
		return nil, err
	}

	n := len(t.Samples)
	r := &Ranking{
		K:       k,
		Colors:  make([]int, n),
		Values:  make([][]table.Value, k),
		Taxa:    make([][]string, k),
		Sum1to3: make([]float64, n),
		Sum1to5: make([]float64, n),
	}

	for rank := 0; rank < k; rank++ {
		r.Values[rank] = make([]table.Value, n)
		r.Taxa[rank] = make([]string, n)
	}

	for col := 0; col < n; col++ {
		r.rankColumn(universe, col)
	}

	return r, nil
}

func rankingUniverse(t *table.Table) ([]table.Row, error) {
	cutoff := -1

	for i, row := range t.Rows {
		if strings.TrimSpace(row.Label) == LabelMinorGroup {
			cutoff = i

			break
		}
	}

	if cutoff == -1 {
		return nil, fmt.Errorf("%w: '%s'", ErrMissingRow, LabelMinorGroup)
	}

	universe := make([]table.Row, 0, cutoff)

	for _, row := range t.Rows[:cutoff] {
		if strings.TrimSpace(row.Label) != LabelTotalReads {
			universe = append(universe, row)
		}
	}

	return universe, nil
}

func (r *Ranking) rankColumn(universe []table.Row, col int) {
	order := make([]int, len(universe))
	for i := range order {
		order[i] = i
	}

	value := func(i int) float64 {
		return universe[i].Values[col].Float()
	}

	sort.SliceStable(order, func(a, b int) bool {
		return value(order[a]) > value(order[b])
	})

	for _, i := range order {
		if value(i) > 0 {
			r.Colors[col]++
		}
	}

	for rank := 0; rank < r.K && rank < r.Colors[col]; rank++ {
		i := order[rank]
		v := value(i)

		r.Values[rank][col] = table.Number(v)
		r.Taxa[rank][col] = universe[i].Label

		if rank < 3 { //nolint:mnd
			r.Sum1to3[col] += v
		}

		if rank < 5 { //nolint:mnd
			r.Sum1to5[col] += v
		}
	}
}

// TopTaxon returns the taxon at the given rank (starting from 1) for the given
// sample column, or an empty string.
func (r *Ranking) TopTaxon(rank, col int) string {
	if rank < 1 || rank > r.K {
		return ""
	}

	return r.Taxa[rank-1][col]
}

// AppendRanking appends the ranking block to t: the "# of colors" row, a blank
// "Ranking" row, the value row of each rank, the two partial sum rows, and the
// taxon row of each rank. Both value and taxon rows are labelled with the rank
// number.
func AppendRanking(t *table.Table, r *Ranking) {
	colors := make([]table.Value, len(r.Colors))
	for i, c := range r.Colors {
		colors[i] = table.Number(float64(c))
	}

	t.Append(LabelColors, colors)
	t.Append(LabelRanking, nil)

	for rank := 0; rank < r.K; rank++ {
		t.Append(strconv.Itoa(rank+1), r.Values[rank])
	}

	t.Append(LabelSum1to3, table.Numbers(r.Sum1to3))
	t.Append(LabelSum1to5, table.Numbers(r.Sum1to5))

	for rank := 0; rank < r.K; rank++ {
		taxa := make([]table.Value, len(r.Taxa[rank]))
		for i, taxon := range r.Taxa[rank] {
			taxa[i] = table.Text(taxon)
		}

		t.Append(strconv.Itoa(rank+1), taxa)
	}
}
