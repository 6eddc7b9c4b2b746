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
	"strings"

	"github.com/wtsi-hgi/taxa-organiser/metadata"
	"github.com/wtsi-hgi/taxa-organiser/table"
)

const (
	targetSheetMarker = "rank(%)"
	readSheetSuffix   = "_read"
	prefixSeparator   = "_"
)

// TopLabels maps sheet prefixes to the taxonomic rank they hold.
var TopLabels = map[string]string{ //nolint:gochecknoglobals
	"P": "Phylum",
	"C": "Class",
	"O": "Order",
	"F": "Family",
	"G": "Genus",
	"S": "Species",
}

// IsTargetSheet tells you if the named sheet holds a ranked percentage table
// that should be turned in to a report, eg. "P_rank(%)".
func IsTargetSheet(name string) bool {
	return strings.Contains(name, targetSheetMarker)
}

// TargetSheets returns the names that IsTargetSheet(), in the given order.
func TargetSheets(names []string) []string {
	var targets []string

	for _, name := range names {
		if IsTargetSheet(name) {
			targets = append(targets, name)
		}
	}

	return targets
}

func sheetPrefix(name string) string {
	prefix, _, _ := strings.Cut(name, prefixSeparator)

	return prefix
}

// ReadSheetName returns the name of the read count sheet that goes with the
// given sheet, eg. "P_rank(%)" -> "P_read".
func ReadSheetName(name string) string {
	return sheetPrefix(name) + readSheetSuffix
}

// TopLabel returns the taxonomic rank name for the given sheet, eg.
// "P_rank(%)" -> "Phylum", or an empty string for unknown prefixes.
func TopLabel(name string) string {
	return TopLabels[sheetPrefix(name)]
}

// Sheet is a finished report table, ready to be written out.
type Sheet struct {
	Name     string
	TopLabel string
	Table    *table.Table
	Ranking  *Ranking

	// MissingReadSamples are the sample columns that had no read counts.
	MissingReadSamples []string
}

// Assembler turns taxon tables in to report Sheets, using the same metadata
// and sample order for every sheet.
type Assembler struct {
	Metadata *metadata.Metadata
	Order    []string
	TopK     int

	// Strict makes sample columns missing from the read count table an error
	// instead of giving them a total of 0.
	Strict bool
}

// NewAssembler returns an Assembler with the default TopK.
func NewAssembler(m *metadata.Metadata, order []string) *Assembler {
	return &Assembler{
		Metadata: m,
		Order:    order,
		TopK:     DefaultTopK,
	}
}

// Assemble creates the report Sheet for the named taxon table, given its
// companion read count table. The input tables are not modified.
func (a *Assembler) Assemble(name string, taxa, reads *table.Table) (*Sheet, error) {
	t, headerRows, err := InjectMetadataHeader(taxa, a.Metadata)
	if err != nil {
		return nil, err
	}

	missing := AppendTotalReads(t, reads)
	if a.Strict && len(missing) > 0 {
		return nil, fmt.Errorf("%w: sheet %s: %s", ErrShapeMismatch, name, strings.Join(missing, ", "))
	}

	t.Reorder(a.Order)

	AppendSummary(t, Summarise(t, headerRows))

	ranking, err := Rank(t, a.TopK)
	if err != nil {
		return nil, err
	}

	AppendRanking(t, ranking)

	return &Sheet{
		Name:               name,
		TopLabel:           TopLabel(name),
		Table:              t,
		Ranking:            ranking,
		MissingReadSamples: missing,
	}, nil
}
