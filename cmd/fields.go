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
	"strings"

	"github.com/spf13/cobra"
	"github.com/wtsi-hgi/taxa-organiser/config"
	"github.com/wtsi-hgi/taxa-organiser/metadata"
	"github.com/wtsi-hgi/taxa-organiser/sortspec"
)

// options for this cmd.
var (
	fieldsMetadata  string
	fieldsIDColumn  string
	fieldsCreds     string
	fieldsSheet     string
	fieldsSheetName string
)

// fieldsCmd represents the fields command.
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Show the metadata fields you can sort by.",
	Long: `Show the metadata fields you can sort by.

Reads sample metadata the same way as the "organise" sub-command (-m for a TSV
file, or --metadata-sheet and --credentials for a Google sheet) and lists each
descriptive field with its values in the order they first appear.

It then prints a YAML sort spec listing every field, which you can save to a
file, edit to put the fields and values in your desired order (deleting any
fields you don't want to sort by), and pass to "organise --sort-spec".
`,
	Run: func(cmd *cobra.Command, _ []string) {
		c, err := fieldsConfig(cmd)
		if err != nil {
			die(err)
		}

		if err = fields(cmd.Context(), c); err != nil {
			die(err)
		}
	},
}

func init() {
	RootCmd.AddCommand(fieldsCmd)

	flags := fieldsCmd.Flags()
	flags.StringVarP(&fieldsMetadata, metadataFlag, "m", "", "sample metadata TSV file")
	flags.StringVar(&fieldsIDColumn, idColumnFlag, metadata.DefaultIDColumn, "metadata sample id column")
	flags.StringVar(&fieldsCreds, credsFlag, "", "Google service account credentials JSON file")
	flags.StringVar(&fieldsSheet, sheetFlag, "", "id of a Google sheet holding the sample metadata")
	flags.StringVar(&fieldsSheetName, sheetNameFlag, config.DefaultSheetName, "name of the metadata sheet")
}

func fieldsConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	for name, f := range map[string]struct {
		flag *string
		conf *string
	}{
		metadataFlag:  {&fieldsMetadata, &c.MetadataPath},
		idColumnFlag:  {&fieldsIDColumn, &c.IDColumn},
		credsFlag:     {&fieldsCreds, &c.CredentialsPath},
		sheetFlag:     {&fieldsSheet, &c.SheetID},
		sheetNameFlag: {&fieldsSheetName, &c.SheetName},
	} {
		if flags.Changed(name) {
			*f.conf = *f.flag
		}
	}

	switch {
	case c.MetadataPath == "" && c.SheetID == "":
		return nil, config.ErrMissingMetadata
	case c.MetadataPath == "" && c.CredentialsPath == "":
		return nil, config.ErrMissingCreds
	}

	return c, nil
}

func fields(ctx context.Context, c *config.Config) error {
	m, err := loadMetadata(ctx, c)
	if err != nil {
		return err
	}

	cliPrint("%d samples, identified by %s\n\n", len(m.SampleIDs()), m.IDColumn)

	for _, field := range m.Fields() {
		values, errv := m.Values(field)
		if errv != nil {
			return errv
		}

		cliPrint("%s: %s\n", field, strings.Join(values, ", "))
	}

	req, err := sortspec.Template(m)
	if err != nil {
		return err
	}

	data, err := req.Marshal()
	if err != nil {
		return err
	}

	cliPrintRaw("\nSort spec template:\n\n")
	cliPrintRaw(string(data))

	return nil
}
