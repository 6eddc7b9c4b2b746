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
	"github.com/spf13/cobra"
	"github.com/wtsi-hgi/taxa-organiser/metadata"
)

const fastqDirFlag = "fastq-dir"

// options for this cmd.
var (
	mdFastqDir string
	mdColumns  []string
	mdOutput   string
	mdIDColumn string
)

// metadataCmd represents the metadata command.
var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Create a sample metadata file from FASTQ file names.",
	Long: `Create a sample metadata file from FASTQ file names.

Looks at the R1 FASTQ files in the given directory (-f), eg.
BSNS-R1_S1_L001_R1_001.fastq.gz, and takes the sample id from each file name
up to the first "_". Each sample id is split on "-" in to the values of the
columns you name with -c, in order, so every sample id must have as many
parts as you give columns.

The result is written to -o as a TSV file (compressed if the path ends in eg.
.gz) with the sample id in the --id-column column, ready for use with the
"fields" and "organise" sub-commands:
$ taxa-organiser metadata -f fastqs/ -c site,round -o sample-metadata.tsv
`,
	Run: func(_ *cobra.Command, _ []string) {
		err := createMetadata(mdFastqDir, mdIDColumn, mdColumns, mdOutput)
		if err != nil {
			die(err)
		}

		cliPrint("DONE\nMetadata: %s\n", mdOutput)
	},
}

func init() {
	RootCmd.AddCommand(metadataCmd)

	flags := metadataCmd.Flags()
	flags.StringVarP(&mdFastqDir, fastqDirFlag, "f", "", "directory of FASTQ files")
	flags.StringSliceVarP(&mdColumns, "columns", "c", nil, "comma separated names of the sample id parts")
	flags.StringVarP(&mdOutput, outputFlag, "o", "", "output metadata TSV file")
	flags.StringVar(&mdIDColumn, idColumnFlag, metadata.DefaultIDColumn, "name of the sample id column")

	markFlagRequired(metadataCmd, fastqDirFlag)
	markFlagRequired(metadataCmd, "columns")
	markFlagRequired(metadataCmd, outputFlag)
}

func createMetadata(fastqDir, idColumn string, columns []string, output string) error {
	m, err := metadata.FromFastqDir(fastqDir, idColumn, columns)
	if err != nil {
		return err
	}

	infof("found %d samples in %s", len(m.Records), fastqDir)

	if err = ensureParentDir(output); err != nil {
		return err
	}

	return m.WriteFile(output)
}

func markFlagRequired(cmd *cobra.Command, flagName string) {
	if err := cmd.MarkFlagRequired(flagName); err != nil {
		die(err)
	}
}
