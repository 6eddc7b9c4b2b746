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

// Package report turns per-rank taxon abundance tables into finished report
// tables: metadata header rows, read totals, summary rows and top-k rankings,
// with sample columns in a global order.
package report

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrMissingRow    = Error("required row not found")
	ErrShapeMismatch = Error("sample columns missing from read count table")
	ErrInvalidTopK   = Error("number of ranks must be at least 1")

	LabelTotalReads   = "Total reads"
	LabelMinorGroup   = "minor group (<1%)"
	LabelUnidentified = "unidentified"
	LabelIdentified   = "Identified"
	LabelColors       = "# of colors"
	LabelRanking      = "Ranking"
	LabelSum1to3      = "Σ(1~3) (%)"
	LabelSum1to5      = "Σ(1~5) (%)"

	percent = 100
)
