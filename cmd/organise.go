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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wtsi-hgi/taxa-organiser/config"
	"github.com/wtsi-hgi/taxa-organiser/metadata"
	"github.com/wtsi-hgi/taxa-organiser/report"
	"github.com/wtsi-hgi/taxa-organiser/sheets"
	"github.com/wtsi-hgi/taxa-organiser/sortspec"
	"github.com/wtsi-hgi/taxa-organiser/workbook"
)

const (
	ErrSortSpecConflict = Error("give either --sort-spec or --priority/--values, not both")

	dirPerm = 0755

	inputFlag     = "input"
	metadataFlag  = "metadata"
	outputFlag    = "output"
	sortSpecFlag  = "sort-spec"
	idColumnFlag  = "id-column"
	topKFlag      = "top-k"
	strictFlag    = "strict"
	credsFlag     = "credentials"
	sheetFlag     = "metadata-sheet"
	sheetNameFlag = "metadata-sheet-name"
	priorityFlag  = "priority"
	valuesFlag    = "values"
)

// options for this cmd.
var (
	orgInput     string
	orgMetadata  string
	orgOutput    string
	orgSortSpec  string
	orgIDColumn  string
	orgTopK      int
	orgStrict    bool
	orgCreds     string
	orgSheet     string
	orgSheetName string
	orgPriority  []string
	orgValues    []string
	orgProgress  bool
)

// organiseCmd represents the organise command.
var organiseCmd = &cobra.Command{
	Use:   "organise",
	Short: "Create a report workbook.",
	Long: `Create a report workbook.

Every sheet of the input workbook (-i, .xlsx or .xls) with "rank(%)" in its
name, eg. "P_rank(%)", is turned in to a sheet of the same name in the output
workbook (-o). Each needs a companion read count sheet named after its prefix,
eg. "P_read".

Sample metadata comes from a TSV file (-m, optionally compressed) or from a
Google sheet (--metadata-sheet, which needs --credentials for a service
account). Its sample id column is named by --id-column.

Samples are ordered by your chosen metadata fields, highest priority first.
Either give a YAML sort spec file (see the "fields" sub-command for a
template):

priority:
  - field: site
  - field: round
    values: [R2, R1]

or the same thing with flags:
$ taxa-organiser organise -i in.xlsx -m metadata.tsv -o out.xlsx \
    --priority site --priority round --values round=R2,R1

The "site" field always uses its conventional site order. Other fields are
only used for sorting if you give their values in your desired order.

Sample columns with no read counts get a total of 0 and a warning, unless you
use --strict, in which case that is an error.

Options can also be set with TAXA_ORGANISER_* environment variables, or in a
.env file in the current directory: INPUT, METADATA, OUTPUT, SORT_SPEC,
ID_COLUMN, TOP_K, STRICT, CREDENTIALS_FILE, METADATA_SHEET and
METADATA_SHEET_NAME. Flags take precedence.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		c, err := organiseConfig(cmd)
		if err != nil {
			die(err)
		}

		err = organise(cmd.Context(), c, orgPriority, orgValues, orgProgress)
		if err != nil {
			die(err)
		}

		cliPrint("DONE\nOutput Excel: %s\n", c.OutputPath)
	},
}

func init() {
	RootCmd.AddCommand(organiseCmd)

	flags := organiseCmd.Flags()
	flags.StringVarP(&orgInput, inputFlag, "i", "", "input workbook (.xlsx or .xls)")
	flags.StringVarP(&orgMetadata, metadataFlag, "m", "", "sample metadata TSV file")
	flags.StringVarP(&orgOutput, outputFlag, "o", "", "output workbook (.xlsx)")
	flags.StringVarP(&orgSortSpec, sortSpecFlag, "s", "", "YAML sort spec file")
	flags.StringVar(&orgIDColumn, idColumnFlag, metadata.DefaultIDColumn, "metadata sample id column")
	flags.IntVarP(&orgTopK, topKFlag, "k", report.DefaultTopK, "number of top taxa to rank per sample")
	flags.BoolVar(&orgStrict, strictFlag, false, "fail on samples without read counts")
	flags.StringVar(&orgCreds, credsFlag, "", "Google service account credentials JSON file")
	flags.StringVar(&orgSheet, sheetFlag, "", "id of a Google sheet holding the sample metadata")
	flags.StringVar(&orgSheetName, sheetNameFlag, config.DefaultSheetName, "name of the metadata sheet")
	flags.StringArrayVarP(&orgPriority, priorityFlag, "p", nil, "metadata field to sort by, highest priority first (repeatable)")
	flags.StringArrayVar(&orgValues, valuesFlag, nil, "desired value order of a field as field=v1,v2 (repeatable)")
	flags.BoolVar(&orgProgress, "progress", false, "show a progress bar")
}

// organiseConfig returns the Config from the environment, overridden by any
// flags the user set.
func organiseConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	strFlags := map[string]struct {
		flag *string
		conf *string
	}{
		inputFlag:     {&orgInput, &c.InputPath},
		metadataFlag:  {&orgMetadata, &c.MetadataPath},
		outputFlag:    {&orgOutput, &c.OutputPath},
		sortSpecFlag:  {&orgSortSpec, &c.SortSpecPath},
		idColumnFlag:  {&orgIDColumn, &c.IDColumn},
		credsFlag:     {&orgCreds, &c.CredentialsPath},
		sheetFlag:     {&orgSheet, &c.SheetID},
		sheetNameFlag: {&orgSheetName, &c.SheetName},
	}

	for name, f := range strFlags {
		if flags.Changed(name) {
			*f.conf = *f.flag
		}
	}

	if flags.Changed(topKFlag) {
		c.TopK = orgTopK
	}

	if flags.Changed(strictFlag) {
		c.Strict = orgStrict
	}

	err = chooseSortSource(c, flags.Changed(sortSpecFlag),
		flags.Changed(priorityFlag) || flags.Changed(valuesFlag))
	if err != nil {
		return nil, err
	}

	return c, c.Validate()
}

// chooseSortSource makes sort flags take precedence over a sort spec file from
// the environment. Giving both --sort-spec and sort flags is an error.
func chooseSortSource(c *config.Config, specFlagGiven, sortFlagsGiven bool) error {
	if !sortFlagsGiven {
		return nil
	}

	if specFlagGiven {
		return ErrSortSpecConflict
	}

	c.SortSpecPath = ""

	return nil
}

func organise(ctx context.Context, c *config.Config, priority, valueOrders []string, showProgress bool) error {
	m, err := loadMetadata(ctx, c)
	if err != nil {
		return err
	}

	order, err := globalOrder(c, m, priority, valueOrders)
	if err != nil {
		return err
	}

	wb, err := workbook.Open(c.InputPath)
	if err != nil {
		return err
	}

	targets, err := wb.Targets()
	if err != nil {
		return err
	}

	infof("organising %d sheets of %s", len(targets), c.InputPath)

	w, err := workbook.NewWriter()
	if err != nil {
		return err
	}

	defer w.Close()

	if err = writeSheets(wb, w, newAssembler(c, m, order), targets, showProgress); err != nil {
		return err
	}

	if err = ensureParentDir(c.OutputPath); err != nil {
		return err
	}

	return w.Save(c.OutputPath)
}

func loadMetadata(ctx context.Context, c *config.Config) (*metadata.Metadata, error) {
	if c.MetadataPath != "" {
		debugf("reading metadata from %s", c.MetadataPath)

		return metadata.Read(c.MetadataPath, c.IDColumn)
	}

	debugf("reading metadata from Google sheet %s, sheet %s", c.SheetID, c.SheetName)

	sc, err := sheets.ServiceCredentialsFromConfig(c)
	if err != nil {
		return nil, err
	}

	s, err := sheets.New(ctx, sc)
	if err != nil {
		return nil, err
	}

	return s.Metadata(ctx, c.SheetID, c.SheetName, c.IDColumn)
}

func sortRequest(c *config.Config, priority, valueOrders []string) (*sortspec.Request, error) {
	if c.SortSpecPath == "" {
		return sortspec.NewRequest(priority, valueOrders)
	}

	if len(priority) > 0 || len(valueOrders) > 0 {
		return nil, ErrSortSpecConflict
	}

	return sortspec.Load(c.SortSpecPath)
}

func globalOrder(c *config.Config, m *metadata.Metadata, priority, valueOrders []string) ([]string, error) {
	req, err := sortRequest(c, priority, valueOrders)
	if err != nil {
		return nil, err
	}

	fields, values := req.Split()

	spec, err := sortspec.Resolve(m, fields, values)
	if err != nil {
		return nil, err
	}

	if len(spec) == 0 {
		warnf("no usable sort fields given; samples will be in metadata order")
	} else {
		debugf("sorting samples by %s", strings.Join(spec.Fields(), ", "))
	}

	order, err := sortspec.GlobalOrder(m, spec)
	if err != nil {
		return nil, err
	}

	debugf("global sample order: %s", strings.Join(order, ", "))

	return order, nil
}

func newAssembler(c *config.Config, m *metadata.Metadata, order []string) *report.Assembler {
	a := report.NewAssembler(m, order)
	a.TopK = c.TopK
	a.Strict = c.Strict

	return a
}

func writeSheets(wb *workbook.Workbook, w *workbook.Writer, a *report.Assembler,
	targets []string, showProgress bool) error {
	p := newProgress(len(targets), showProgress)
	defer p.finish()

	for _, name := range targets {
		taxa, reads, err := wb.Pair(name)
		if err != nil {
			return err
		}

		sheet, err := a.Assemble(name, taxa, reads)
		if err != nil {
			return err
		}

		if len(sheet.MissingReadSamples) > 0 {
			warnf("sheet %s: no read counts for samples %s; their total reads are 0",
				name, strings.Join(sheet.MissingReadSamples, ", "))
		}

		if err = w.WriteSheet(sheet); err != nil {
			return err
		}

		debugf("organised sheet %s", name)
		p.increment()
	}

	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)

	if _, err := os.Stat(dir); err != nil {
		return createDirIfNotExist(dir, err)
	}

	return nil
}

func createDirIfNotExist(dir string, statErr error) error {
	if !os.IsNotExist(statErr) {
		return statErr
	}

	return os.MkdirAll(dir, dirPerm)
}
