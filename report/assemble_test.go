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
	"github.com/wtsi-hgi/taxa-organiser/sortspec"
	"github.com/wtsi-hgi/taxa-organiser/table"
)

func TestSheetNames(t *testing.T) {
	Convey("Sheet names tell you targets, read sheets and top labels", t, func() {
		names := []string{"OTUs", "P_read", "P(%)", "P_rank(%)", "G_rank(%)", "X_rank(%)"}

		So(TargetSheets(names), ShouldResemble, []string{"P_rank(%)", "G_rank(%)", "X_rank(%)"})
		So(ReadSheetName("P_rank(%)"), ShouldEqual, "P_read")
		So(ReadSheetName("rank(%)"), ShouldEqual, "rank(%)_read")
		So(TopLabel("G_rank(%)"), ShouldEqual, "Genus")
		So(TopLabel("X_rank(%)"), ShouldEqual, "")
	})
}

func TestAssemble(t *testing.T) {
	Convey("Given metadata, a global order and tables", t, func() {
		m, err := metadata.New(metadata.DefaultIDColumn,
			[]string{"sampleid", "site", "round"},
			[][]string{{"S1", "BSNS", "R1"}, {"S2", "BSSG", "R2"}, {"S3", "BSSG", "R1"}})
		So(err, ShouldBeNil)

		spec, err := sortspec.Resolve(m, []string{"site", "round"}, nil)
		So(err, ShouldBeNil)

		order, err := sortspec.GlobalOrder(m, spec)
		So(err, ShouldBeNil)
		So(order, ShouldResemble, []string{"S2", "S3", "S1"})

		taxa := newTable([]string{"S1", "S2", "S3", "X"},
			table.Row{Label: "Proteobacteria", Values: nums(60, 50, 40, 30)},
			table.Row{Label: "Firmicutes", Values: nums(30, 45, 20, 69.5)},
			table.Row{Label: "unidentified", Values: nums(5, 2, 30, 0)},
			table.Row{Label: "Bacteroidota", Values: nums(4.5, 2.5, 9, 0)},
		)

		reads := newTable([]string{"S1", "S2", "S3"},
			table.Row{Label: "Proteobacteria", Values: nums(100, 200, 300)},
			table.Row{Label: "Firmicutes", Values: nums(50, 50, 50)},
		)

		a := NewAssembler(m, order)

		Convey("Assemble builds the finished sheet", func() {
			sheet, err := a.Assemble("P_rank(%)", taxa, reads)
			So(err, ShouldBeNil)
			So(sheet.Name, ShouldEqual, "P_rank(%)")
			So(sheet.TopLabel, ShouldEqual, "Phylum")
			So(sheet.MissingReadSamples, ShouldResemble, []string{"X"})

			out := sheet.Table
			So(out.LabelHeader, ShouldEqual, "Phylum")
			So(out.Samples, ShouldResemble, []string{"S2", "S3", "S1", "X"})
			So(labels(out), ShouldResemble, []string{
				"site", "round",
				"Proteobacteria", "Firmicutes", "Bacteroidota",
				LabelMinorGroup, LabelUnidentified, LabelIdentified, LabelTotalReads,
				LabelColors, LabelRanking,
				"1", "2", "3", "4", "5",
				LabelSum1to3, LabelSum1to5,
				"1", "2", "3", "4", "5",
			})

			So(out.Rows[0].Values, ShouldResemble, texts("BSSG", "BSSG", "BSNS", ""))
			So(out.Rows[1].Values, ShouldResemble, texts("R2", "R1", "R1", ""))
			So(out.Rows[2].Values, ShouldResemble, nums(50, 40, 60, 30))
			So(out.Rows[5].Values, ShouldResemble, nums(0.5, 1, 0.5, 0.5))
			So(out.Rows[6].Values, ShouldResemble, nums(2, 30, 5, 0))
			So(out.Rows[7].Values, ShouldResemble, nums(98, 70, 95, 100))
			So(out.Rows[8].Values, ShouldResemble, nums(250, 350, 150, 0))
			So(out.Rows[9].Values, ShouldResemble, nums(3, 3, 3, 2))
			So(out.Rows[11].Values, ShouldResemble, nums(50, 40, 60, 69.5))
			So(out.Rows[13].Values[3].IsBlank(), ShouldBeTrue)
			So(out.Rows[18].Values, ShouldResemble, texts("Proteobacteria", "Proteobacteria", "Proteobacteria", "Firmicutes"))
			So(out.Rows[19].Values, ShouldResemble, texts("Firmicutes", "Firmicutes", "Firmicutes", "Proteobacteria"))

			So(sheet.Ranking.TopTaxon(3, 1), ShouldEqual, "Bacteroidota")

			Convey("Without touching the input tables", func() {
				So(taxa.Samples, ShouldResemble, []string{"S1", "S2", "S3", "X"})
				So(len(taxa.Rows), ShouldEqual, 4)
			})
		})

		Convey("Assemble in strict mode rejects missing read counts", func() {
			a.Strict = true

			_, err := a.Assemble("P_rank(%)", taxa, reads)
			So(errors.Is(err, ErrShapeMismatch), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "X")
		})

		Convey("Assemble passes on an invalid TopK", func() {
			a.TopK = 0

			_, err := a.Assemble("P_rank(%)", taxa, reads)
			So(err, ShouldEqual, ErrInvalidTopK)
		})
	})
}
