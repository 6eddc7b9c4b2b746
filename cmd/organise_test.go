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

package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wtsi-hgi/taxa-organiser/config"
	"github.com/wtsi-hgi/taxa-organiser/report"
	"github.com/xuri/excelize/v2"
)

const (
	userPerms    = 0600
	metadataTSV  = "sampleid\tsite\tround\nS1\tBSNS\tR1\nS2\tBSSG\tR2\nS3\tBSSG\tR1\n"
	sortSpecYAML = `priority:
  - field: round
    values: [R1, R2]
  - field: site
`
)

func writeInputWorkbook(path string) {
	f := excelize.NewFile()
	defer f.Close()

	So(f.SetSheetName("Sheet1", "P_rank(%)"), ShouldBeNil)

	_, err := f.NewSheet("P_read")
	So(err, ShouldBeNil)

	rows := map[string][][]any{
		"P_rank(%)": {
			{"Phylum", "S1", "S2", "S3", "X"},
			{"Proteobacteria", 60, 50, 40, 30},
			{"Firmicutes", 30, 45, 20, 69.5},
			{"unidentified", 5, 2, 30, 0},
			{"Bacteroidota", 4.5, 2.5, 9, 0},
		},
		"P_read": {
			{"Phylum", "S1", "S2", "S3"},
			{"Proteobacteria", 100, 200, 300},
			{"Firmicutes", 50, 50, 50},
		},
	}

	for sheet, sheetRows := range rows {
		for i, row := range sheetRows {
			cell, errc := excelize.CoordinatesToCellName(1, i+1)
			So(errc, ShouldBeNil)
			So(f.SetSheetRow(sheet, cell, &row), ShouldBeNil)
		}
	}

	So(f.SaveAs(path), ShouldBeNil)
}

func outputRow(path, sheet string, row int) []string {
	f, err := excelize.OpenFile(path)
	So(err, ShouldBeNil)

	defer f.Close()

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	So(err, ShouldBeNil)
	So(len(rows), ShouldBeGreaterThan, row)

	return rows[row]
}

func TestOrganise(t *testing.T) {
	Convey("Given an input workbook and metadata file", t, func() {
		dir := t.TempDir()
		ctx := context.Background()

		c := &config.Config{
			InputPath:    filepath.Join(dir, "in.xlsx"),
			MetadataPath: filepath.Join(dir, "metadata.tsv"),
			OutputPath:   filepath.Join(dir, "out", "report.xlsx"),
			IDColumn:     "sampleid",
			TopK:         report.DefaultTopK,
		}

		writeInputWorkbook(c.InputPath)
		So(os.WriteFile(c.MetadataPath, []byte(metadataTSV), userPerms), ShouldBeNil)

		Convey("organise writes the report ordered by flag priorities", func() {
			err := organise(ctx, c, []string{"site"}, nil, false)
			So(err, ShouldBeNil)

			So(outputRow(c.OutputPath, "P_rank(%)", 1), ShouldResemble,
				[]string{"", "Phylum", "S2", "S3", "S1", "X"})
			So(outputRow(c.OutputPath, "P_rank(%)", 2), ShouldResemble,
				[]string{"", "site", "BSSG", "BSSG", "BSNS"})
			So(outputRow(c.OutputPath, "P_rank(%)", 10), ShouldResemble,
				[]string{"", report.LabelTotalReads, "250", "350", "150", "0"})
		})

		Convey("organise can use a sort spec file", func() {
			c.SortSpecPath = filepath.Join(dir, "spec.yaml")
			So(os.WriteFile(c.SortSpecPath, []byte(sortSpecYAML), userPerms), ShouldBeNil)

			err := organise(ctx, c, nil, nil, false)
			So(err, ShouldBeNil)

			So(outputRow(c.OutputPath, "P_rank(%)", 1), ShouldResemble,
				[]string{"", "Phylum", "S3", "S1", "S2", "X"})

			Convey("but not together with priority flags", func() {
				err := organise(ctx, c, []string{"site"}, nil, false)
				So(err, ShouldEqual, ErrSortSpecConflict)
			})

			Convey("sort flags replace a sort spec file from the environment", func() {
				So(chooseSortSource(c, false, false), ShouldBeNil)
				So(c.SortSpecPath, ShouldNotBeEmpty)

				So(chooseSortSource(c, false, true), ShouldBeNil)
				So(c.SortSpecPath, ShouldBeEmpty)

				err := organise(ctx, c, []string{"site"}, nil, false)
				So(err, ShouldBeNil)

				So(outputRow(c.OutputPath, "P_rank(%)", 1), ShouldResemble,
					[]string{"", "Phylum", "S2", "S3", "S1", "X"})
			})

			Convey("giving --sort-spec and sort flags together is an error", func() {
				So(chooseSortSource(c, true, true), ShouldEqual, ErrSortSpecConflict)
				So(chooseSortSource(c, true, false), ShouldBeNil)
				So(c.SortSpecPath, ShouldNotBeEmpty)
			})
		})

		Convey("organise fails in strict mode when read counts are missing", func() {
			c.Strict = true

			err := organise(ctx, c, []string{"site"}, nil, false)
			So(errors.Is(err, report.ErrShapeMismatch), ShouldBeTrue)

			_, err = os.Stat(c.OutputPath)
			So(os.IsNotExist(err), ShouldBeTrue)
		})

		Convey("organise fails for unknown sort fields", func() {
			err := organise(ctx, c, []string{"depth"}, nil, false)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "depth")
		})
	})
}
