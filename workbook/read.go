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

// Package workbook reads the taxon tables of input spreadsheets and writes
// finished report sheets to xlsx files.
package workbook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/wtsi-hgi/taxa-organiser/report"
	"github.com/wtsi-hgi/taxa-organiser/table"
	"github.com/xuri/excelize/v2"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrMissingSheet      = Error("workbook is missing sheet")
	ErrNoTargetSheets    = Error("workbook has no rank(%) sheets")
	ErrUnsupportedFormat = Error("unsupported spreadsheet format")

	xlsEncoding = "utf-8"
)

// Workbook holds the raw cell text of every sheet of a spreadsheet.
type Workbook struct {
	Path  string
	names []string
	rows  map[string][][]string
}

// Open reads every sheet of the .xlsx or .xls file at the given path.
func Open(path string) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return openXLSX(path)
	case ".xls":
		return openXLS(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func newWorkbook(path string) *Workbook {
	return &Workbook{Path: path, rows: make(map[string][][]string)}
}

func (w *Workbook) add(name string, rows [][]string) {
	w.names = append(w.names, name)
	w.rows[name] = rows
}

func openXLSX(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	w := newWorkbook(path)

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}

		w.add(name, rows)
	}

	return w, nil
}

func openXLS(path string) (*Workbook, error) {
	wb, err := xls.Open(path, xlsEncoding)
	if err != nil {
		return nil, err
	}

	w := newWorkbook(path)

	for i, n := 0, wb.NumSheets(); i < n; i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}

		w.add(sheet.Name, xlsRows(sheet))
	}

	return w, nil
}

func xlsRows(sheet *xls.WorkSheet) [][]string {
	rows := make([][]string, 0, int(sheet.MaxRow)+1)

	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := sheet.Row(r)
		if row == nil {
			rows = append(rows, nil)

			continue
		}

		// LastCol() is the BIFF colMac, one past the last used column, but
		// some writers store the last column itself.
		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}

		rows = append(rows, trimTrailingEmpty(cells))
	}

	return rows
}

func trimTrailingEmpty(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}

	return cells[:end]
}

// SheetNames returns the names of all sheets, in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.names
}

// Targets returns the names of the sheets that hold ranked percentage tables,
// in workbook order.
func (w *Workbook) Targets() ([]string, error) {
	targets := report.TargetSheets(w.names)
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTargetSheets, w.Path)
	}

	return targets, nil
}

// Table parses the named sheet in to a Table.
func (w *Workbook) Table(name string) (*table.Table, error) {
	rows, found := w.rows[name]
	if !found {
		return nil, fmt.Errorf("%w '%s'", ErrMissingSheet, name)
	}

	t, err := table.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", name, err)
	}

	return t, nil
}

// Pair returns the Table of the named target sheet along with the Table of
// its read count sheet.
func (w *Workbook) Pair(name string) (*table.Table, *table.Table, error) {
	taxa, err := w.Table(name)
	if err != nil {
		return nil, nil, err
	}

	reads, err := w.Table(report.ReadSheetName(name))
	if err != nil {
		return nil, nil, err
	}

	return taxa, reads, nil
}
