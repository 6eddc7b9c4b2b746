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
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wtsi-hgi/taxa-organiser/metadata"
	"github.com/wtsi-hgi/taxa-organiser/table"
)

func TestRank(t *testing.T) {
	Convey("Given a summarised table", t, func() {
		tbl := newTable([]string{"S1", "S2"},
			table.Row{Label: "site", Values: texts("BSSG", "50")},
			table.Row{Label: "A", Values: nums(10, 5)},
			table.Row{Label: "B", Values: nums(30, 5)},
			table.Row{Label: "C", Values: []table.Value{{}, table.Number(50)}},
			table.Row{Label: "D", Values: nums(20, 5)},
			table.Row{Label: "E", Values: []table.Value{table.Text("n/a"), table.Number(1)}},
			table.Row{Label: "F", Values: nums(0, 0)},
			table.Row{Label: " Total reads ", Values: nums(1000, 1000)},
			table.Row{Label: LabelMinorGroup, Values: nums(40, 34)},
			table.Row{Label: "G", Values: nums(99, 99)},
		)

		Convey("Rank picks the top k positive taxa of each column", func() {
			r, err := Rank(tbl, DefaultTopK)
			So(err, ShouldBeNil)
			So(r.K, ShouldEqual, 5)
			So(r.Colors, ShouldResemble, []int{3, 5})

			So(r.Taxa[0], ShouldResemble, []string{"B", "C"})
			So(r.Taxa[1], ShouldResemble, []string{"D", "A"})
			So(r.Taxa[2], ShouldResemble, []string{"A", "B"})
			So(r.Taxa[3], ShouldResemble, []string{"", "D"})
			So(r.Taxa[4], ShouldResemble, []string{"", "E"})

			So(r.Values[0], ShouldResemble, nums(30, 50))
			So(r.Values[2], ShouldResemble, nums(10, 5))
			So(r.Values[3][0].IsBlank(), ShouldBeTrue)
			So(r.Values[4][0].IsBlank(), ShouldBeTrue)
			So(r.Values[4][1], ShouldResemble, table.Number(1))

			So(r.Sum1to3, ShouldResemble, []float64{60, 60})
			So(r.Sum1to5, ShouldResemble, []float64{60, 66})

			So(r.TopTaxon(1, 1), ShouldEqual, "C")
			So(r.TopTaxon(0, 1), ShouldEqual, "")
			So(r.TopTaxon(6, 1), ShouldEqual, "")

			Convey("Ranked values never increase and match their taxon's row", func() {
				for col := range tbl.Samples {
					for rank := 1; rank < r.K; rank++ {
						So(r.Values[rank][col].Float(), ShouldBeLessThanOrEqualTo, r.Values[rank-1][col].Float())
					}

					for rank := 0; rank < r.K; rank++ {
						taxon := r.Taxa[rank][col]
						if taxon == "" {
							continue
						}

						found := tbl.Find(func(l string) bool { return l == taxon })
						So(len(found), ShouldEqual, 1)
						So(tbl.Rows[found[0]].Values[col], ShouldResemble, r.Values[rank][col])
					}
				}
			})

			Convey("Then AppendRanking adds the ranking block", func() {
				before := len(tbl.Rows)
				AppendRanking(tbl, r)

				So(labels(tbl)[before:], ShouldResemble, []string{
					LabelColors, LabelRanking,
					"1", "2", "3", "4", "5",
					LabelSum1to3, LabelSum1to5,
					"1", "2", "3", "4", "5",
				})

				So(tbl.Rows[before].Values, ShouldResemble, nums(3, 5))
				So(tbl.Rows[before+1].Values, ShouldResemble, []table.Value{{}, {}})
				So(tbl.Rows[before+2].Values, ShouldResemble, nums(30, 50))
				So(tbl.Rows[before+7].Values, ShouldResemble, nums(60, 60))
				So(tbl.Rows[before+8].Values, ShouldResemble, nums(60, 66))
				So(tbl.Rows[before+9].Values, ShouldResemble, texts("B", "C"))
				So(tbl.Rows[before+12].Values, ShouldResemble, texts("", "D"))
			})
		})

		Convey("Rank with a smaller k still sums what it has", func() {
			r, err := Rank(tbl, 2)
			So(err, ShouldBeNil)
			So(len(r.Taxa), ShouldEqual, 2)
			So(r.Sum1to3, ShouldResemble, []float64{50, 55})
			So(r.Sum1to5, ShouldResemble, []float64{50, 55})
		})

		Convey("Rank rejects a k below 1", func() {
			_, err := Rank(tbl, 0)
			So(err, ShouldEqual, ErrInvalidTopK)
		})

		Convey("Rank fails without a minor group row", func() {
			tbl.Remove(tbl.Find(func(l string) bool { return l == LabelMinorGroup }))

			_, err := Rank(tbl, DefaultTopK)
			So(errors.Is(err, ErrMissingRow), ShouldBeTrue)
		})
	})

	Convey("Given a column with more rows than k but fewer positive values", t, func() {
		tbl := newTable([]string{"S1"},
			table.Row{Label: "A", Values: nums(0)},
			table.Row{Label: "B", Values: nums(70)},
			table.Row{Label: "C", Values: nums(0)},
			table.Row{Label: "D", Values: nums(25)},
			table.Row{Label: "E", Values: nums(0)},
			table.Row{Label: "F", Values: nums(0)},
			table.Row{Label: LabelMinorGroup, Values: nums(5)},
		)

		Convey("Rank leaves the ranks after the positive values blank", func() {
			r, err := Rank(tbl, DefaultTopK)
			So(err, ShouldBeNil)
			So(r.Colors, ShouldResemble, []int{2})
			So(r.TopTaxon(1, 0), ShouldEqual, "B")
			So(r.TopTaxon(2, 0), ShouldEqual, "D")

			for rank := 3; rank <= DefaultTopK; rank++ {
				So(r.TopTaxon(rank, 0), ShouldEqual, "")
				So(r.Values[rank-1][0].IsBlank(), ShouldBeTrue)
			}

			So(r.Sum1to3, ShouldResemble, []float64{95})
			So(r.Sum1to5, ShouldResemble, []float64{95})
		})
	})

	Convey("Given a table with numeric looking metadata header rows", t, func() {
		m, err := metadata.New(metadata.DefaultIDColumn,
			[]string{"sampleid", "pH", "depth"},
			[][]string{{"S1", "8", "120"}, {"S2", "9", "80"}})
		So(err, ShouldBeNil)

		taxa := newTable([]string{"S1", "S2"},
			table.Row{Label: "A", Values: nums(60, 3)},
			table.Row{Label: "B", Values: nums(35, 2)},
			table.Row{Label: LabelMinorGroup, Values: nums(5, 95)},
		)

		tbl, headerRows, err := InjectMetadataHeader(taxa, m)
		So(err, ShouldBeNil)
		So(headerRows, ShouldEqual, 2)

		Convey("Rank never ranks the header rows", func() {
			r, err := Rank(tbl, DefaultTopK)
			So(err, ShouldBeNil)
			So(r.Colors, ShouldResemble, []int{2, 2})
			So(r.Taxa[0], ShouldResemble, []string{"A", "A"})
			So(r.Taxa[1], ShouldResemble, []string{"B", "B"})
			So(r.Taxa[2], ShouldResemble, []string{"", ""})
			So(r.Sum1to5, ShouldResemble, []float64{95, 5})
		})
	})
}
