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

package workbook

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wtsi-hgi/taxa-organiser/report"
	"github.com/wtsi-hgi/taxa-organiser/table"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet = "Sheet1"
	labelCol     = 2
	firstDataCol = 3
	topLabelRow  = 1
	headerRow    = 2
	firstDataRow = 3
	decimals     = 2
	tempPattern  = ".taxa-organiser-*.xlsx"
	filePerms    = 0o644
)

// RankColors are the font colors of ranks 1 to 5. Higher ranks are not
// colored.
var RankColors = []string{"000000", "00B050", "FFC000", "C00000", "7030A0"} //nolint:gochecknoglobals

// Writer writes report Sheets to a new xlsx file.
type Writer struct {
	f          *excelize.File
	rankStyles []int
	written    int
}

// NewWriter returns a Writer with an empty workbook.
func NewWriter() (*Writer, error) {
	f := excelize.NewFile()

	w := &Writer{f: f, rankStyles: make([]int, len(RankColors))}

	for i, color := range RankColors {
		id, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: color}})
		if err != nil {
			f.Close()

			return nil, err
		}

		w.rankStyles[i] = id
	}

	return w, nil
}

// WriteSheet adds the given Sheet to the workbook as a sheet of the same name.
// Column A is left blank, B1 holds the top label, row 2 the header and the
// rows follow from row 3. Numbers are rounded to 2 decimals, and the ranked
// cells are colored.
func (w *Writer) WriteSheet(s *report.Sheet) error {
	if err := w.addSheet(s.Name); err != nil {
		return err
	}

	if s.TopLabel != "" {
		if err := w.setStyledValue(s.Name, labelCol, topLabelRow, s.TopLabel, w.rankStyles[0]); err != nil {
			return err
		}
	}

	if err := w.writeTable(s.Name, s.Table); err != nil {
		return err
	}

	return w.colorRanks(s)
}

func (w *Writer) addSheet(name string) error {
	w.written++

	if w.written == 1 {
		return w.f.SetSheetName(defaultSheet, name)
	}

	_, err := w.f.NewSheet(name)

	return err
}

func (w *Writer) writeTable(sheet string, t *table.Table) error {
	for i, h := range t.Header() {
		if err := w.setValue(sheet, labelCol+i, headerRow, h); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		excelRow := firstDataRow + r

		if err := w.setValue(sheet, labelCol, excelRow, row.Label); err != nil {
			return err
		}

		for c, v := range row.Values {
			if err := w.setCell(sheet, firstDataCol+c, excelRow, v); err != nil {
				return err
			}
		}
	}

	return nil
}

func (w *Writer) setCell(sheet string, col, row int, v table.Value) error {
	switch {
	case v.Numeric:
		return w.setValue(sheet, col, row, round(v.Number))
	case v.IsBlank():
		return nil
	default:
		return w.setValue(sheet, col, row, v.Text)
	}
}

func round(f float64) float64 {
	scale := math.Pow10(decimals)

	return math.Round(f*scale) / scale
}

func (w *Writer) setValue(sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	return w.f.SetCellValue(sheet, cell, value)
}

func (w *Writer) setStyledValue(sheet string, col, row int, value any, style int) error {
	if err := w.setValue(sheet, col, row, value); err != nil {
		return err
	}

	return w.style(sheet, col, row, style)
}

func (w *Writer) style(sheet string, col, row, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	return w.f.SetCellStyle(sheet, cell, cell, style)
}

// colorRanks colors, for ranks 1 to 5, every rank label cell, the numeric
// cells of the rank's value row, and the cell of the upper table that holds
// each column's taxon of that rank.
func (w *Writer) colorRanks(s *report.Sheet) error {
	t := s.Table
	upperEnd := upperTableEnd(t)
	valueRowDone := make(map[int]bool)

	for r, row := range t.Rows {
		rank, ok := rankLabel(row.Label)
		if !ok {
			continue
		}

		style := w.rankStyles[rank-1]

		if err := w.style(s.Name, labelCol, firstDataRow+r, style); err != nil {
			return err
		}

		if valueRowDone[rank] {
			continue
		}

		valueRowDone[rank] = true

		if err := w.styleNumeric(s.Name, t, r, style); err != nil {
			return err
		}
	}

	if s.Ranking == nil {
		return nil
	}

	for rank := 1; rank <= min(s.Ranking.K, len(RankColors)); rank++ {
		for col := range t.Samples {
			if err := w.colorTopTaxon(s, upperEnd, rank, col); err != nil {
				return err
			}
		}
	}

	return nil
}

func (w *Writer) styleNumeric(sheet string, t *table.Table, r, style int) error {
	for c, v := range t.Rows[r].Values {
		if !v.Numeric {
			continue
		}

		if err := w.style(sheet, firstDataCol+c, firstDataRow+r, style); err != nil {
			return err
		}
	}

	return nil
}

func (w *Writer) colorTopTaxon(s *report.Sheet, upperEnd, rank, col int) error {
	taxon := strings.TrimSpace(s.Ranking.TopTaxon(rank, col))
	if taxon == "" {
		return nil
	}

	for r, row := range s.Table.Rows[:upperEnd] {
		if strings.TrimSpace(row.Label) != taxon {
			continue
		}

		if !row.Values[col].Numeric {
			return nil
		}

		return w.style(s.Name, firstDataCol+col, firstDataRow+r, w.rankStyles[rank-1])
	}

	return nil
}

// upperTableEnd returns the index of the minor group row, or the number of
// rows if there is none.
func upperTableEnd(t *table.Table) int {
	for i, row := range t.Rows {
		if strings.TrimSpace(row.Label) == report.LabelMinorGroup {
			return i
		}
	}

	return len(t.Rows)
}

func rankLabel(label string) (int, bool) {
	rank, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil || rank < 1 || rank > len(RankColors) {
		return 0, false
	}

	return rank, true
}

// Save writes the workbook to a temporary file next to path, then renames it
// to path, so that path is never left partially written.
func (w *Writer) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return err
	}

	tmpPath := tmp.Name()

	if err = tmp.Chmod(filePerms); err == nil {
		_, err = w.f.WriteTo(tmp)
	}

	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)

		return err
	}

	if err = tmp.Close(); err != nil {
		os.Remove(tmpPath)

		return err
	}

	if err = os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)

		return err
	}

	return nil
}

// Close releases the resources of the underlying workbook.
func (w *Writer) Close() error {
	return w.f.Close()
}
