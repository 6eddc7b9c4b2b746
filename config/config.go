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

// Package config gathers the options of a run from environment variables and
// .env files.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/wtsi-hgi/taxa-organiser/metadata"
	"github.com/wtsi-hgi/taxa-organiser/report"
)

const (
	EnvVarInput     = "TAXA_ORGANISER_INPUT"
	EnvVarMetadata  = "TAXA_ORGANISER_METADATA"
	EnvVarOutput    = "TAXA_ORGANISER_OUTPUT"
	EnvVarSortSpec  = "TAXA_ORGANISER_SORT_SPEC"
	EnvVarIDColumn  = "TAXA_ORGANISER_ID_COLUMN"
	EnvVarTopK      = "TAXA_ORGANISER_TOP_K"
	EnvVarStrict    = "TAXA_ORGANISER_STRICT"
	EnvVarCreds     = "TAXA_ORGANISER_CREDENTIALS_FILE"
	EnvVarSheet     = "TAXA_ORGANISER_METADATA_SHEET"
	EnvVarSheetName = "TAXA_ORGANISER_METADATA_SHEET_NAME"

	DefaultSheetName = "metadata"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrMissingInput    = Error("an input workbook is required")
	ErrMissingOutput   = Error("an output path is required")
	ErrMissingMetadata = Error("a metadata file or metadata sheet is required")
	ErrMissingCreds    = Error("a credentials file is required to read a metadata sheet")
)

// Config holds the options of a run.
type Config struct {
	InputPath       string
	MetadataPath    string
	OutputPath      string
	SortSpecPath    string
	IDColumn        string
	TopK            int
	Strict          bool
	CredentialsPath string
	SheetID         string
	SheetName       string
}

// FromEnv returns a new Config with properies populated from environment
// variables TAXA_ORGANISER_*, where * is amongst: INPUT, METADATA, OUTPUT,
// SORT_SPEC, ID_COLUMN, TOP_K, STRICT, CREDENTIALS_FILE, METADATA_SHEET and
// METADATA_SHEET_NAME. Unset variables get their defaults.
//
// If these environment variables are defined in a file called .env (and not
// previously set in an environment variable), they will be automatically
// loaded.
//
// Optionally supply a directory to look for the .env file in.
func FromEnv(dir ...string) (*Config, error) {
	var parentDir string
	if len(dir) == 1 {
		parentDir = dir[0] + string(os.PathSeparator)
	}

	godotenv.Load(parentDir + ".env") //nolint:errcheck

	c := converter{}

	config := &Config{
		InputPath:       os.Getenv(EnvVarInput),
		MetadataPath:    os.Getenv(EnvVarMetadata),
		OutputPath:      os.Getenv(EnvVarOutput),
		SortSpecPath:    os.Getenv(EnvVarSortSpec),
		IDColumn:        getenvDefault(EnvVarIDColumn, metadata.DefaultIDColumn),
		TopK:            c.ToInt(EnvVarTopK, os.Getenv(EnvVarTopK)),
		Strict:          c.ToBool(EnvVarStrict, os.Getenv(EnvVarStrict)),
		CredentialsPath: os.Getenv(EnvVarCreds),
		SheetID:         os.Getenv(EnvVarSheet),
		SheetName:       getenvDefault(EnvVarSheetName, DefaultSheetName),
	}

	if config.TopK == 0 {
		config.TopK = report.DefaultTopK
	}

	if c.Err != nil {
		return nil, c.Err
	}

	return config, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

// Validate checks that the Config has everything needed for a run: an input
// workbook, an output path, and either a metadata file or a metadata sheet
// with credentials.
func (c *Config) Validate() error {
	switch {
	case c.InputPath == "":
		return ErrMissingInput
	case c.OutputPath == "":
		return ErrMissingOutput
	case c.MetadataPath == "" && c.SheetID == "":
		return ErrMissingMetadata
	case c.MetadataPath == "" && c.CredentialsPath == "":
		return ErrMissingCreds
	}

	return nil
}
