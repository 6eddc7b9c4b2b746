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

package config

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const filePerm = 0644

var allEnvVars = []string{ //nolint:gochecknoglobals
	EnvVarInput, EnvVarMetadata, EnvVarOutput, EnvVarSortSpec, EnvVarIDColumn,
	EnvVarTopK, EnvVarStrict, EnvVarCreds, EnvVarSheet, EnvVarSheetName,
}

func TestConfig(t *testing.T) {
	for _, name := range allEnvVars {
		t.Setenv(name, "")
	}

	Convey("Given a full set of env vars, you can make a config", t, func() {
		os.Setenv(EnvVarInput, "/in.xlsx")
		os.Setenv(EnvVarMetadata, "/metadata.tsv")
		os.Setenv(EnvVarOutput, "/out.xlsx")
		os.Setenv(EnvVarSortSpec, "/spec.yaml")
		os.Setenv(EnvVarIDColumn, "sample-id")
		os.Setenv(EnvVarTopK, "3")
		os.Setenv(EnvVarStrict, "true")
		os.Setenv(EnvVarCreds, "/creds.json")
		os.Setenv(EnvVarSheet, "sheetid")
		os.Setenv(EnvVarSheetName, "samples")

		config, err := FromEnv()
		So(err, ShouldBeNil)
		So(config, ShouldResemble, &Config{
			InputPath:       "/in.xlsx",
			MetadataPath:    "/metadata.tsv",
			OutputPath:      "/out.xlsx",
			SortSpecPath:    "/spec.yaml",
			IDColumn:        "sample-id",
			TopK:            3,
			Strict:          true,
			CredentialsPath: "/creds.json",
			SheetID:         "sheetid",
			SheetName:       "samples",
		})
		So(config.Validate(), ShouldBeNil)

		Convey("Unset optional env vars get defaults", func() {
			for _, name := range []string{EnvVarIDColumn, EnvVarTopK, EnvVarStrict, EnvVarSheetName} {
				os.Setenv(name, "")
			}

			config, err := FromEnv()
			So(err, ShouldBeNil)
			So(config.IDColumn, ShouldEqual, "sampleid")
			So(config.TopK, ShouldEqual, 5)
			So(config.Strict, ShouldBeFalse)
			So(config.SheetName, ShouldEqual, DefaultSheetName)
		})

		Convey("Bad numbers and bools are rejected", func() {
			os.Setenv(EnvVarTopK, "five")

			config, err := FromEnv()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, EnvVarTopK)
			So(config, ShouldBeNil)

			os.Setenv(EnvVarTopK, "5")
			os.Setenv(EnvVarStrict, "maybe")

			_, err = FromEnv()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, EnvVarStrict)
		})

		Convey("Validate complains about missing options", func() {
			c := *config
			c.InputPath = ""
			So(c.Validate(), ShouldEqual, ErrMissingInput)

			c = *config
			c.OutputPath = ""
			So(c.Validate(), ShouldEqual, ErrMissingOutput)

			c = *config
			c.MetadataPath = ""
			c.SheetID = ""
			So(c.Validate(), ShouldEqual, ErrMissingMetadata)

			c = *config
			c.MetadataPath = ""
			c.CredentialsPath = ""
			So(c.Validate(), ShouldEqual, ErrMissingCreds)

			c = *config
			c.SheetID = ""
			c.CredentialsPath = ""
			So(c.Validate(), ShouldBeNil)
		})

		Convey("You can load values from an .env file", func() {
			os.Unsetenv(EnvVarOutput)
			os.Unsetenv(EnvVarTopK)

			origDir, err := os.Getwd()
			So(err, ShouldBeNil)

			defer func() {
				os.Chdir(origDir)
			}()

			dir := t.TempDir()
			err = os.Chdir(dir)
			So(err, ShouldBeNil)

			config, err := FromEnv()
			So(err, ShouldBeNil)
			So(config.Validate(), ShouldEqual, ErrMissingOutput)

			err = os.WriteFile(".env",
				[]byte(EnvVarOutput+"=/file/out.xlsx\n"+EnvVarTopK+"=10\n"+EnvVarInput+"=/file/in.xlsx"), filePerm)
			So(err, ShouldBeNil)

			config, err = FromEnv()
			So(err, ShouldBeNil)
			So(config.OutputPath, ShouldEqual, "/file/out.xlsx")
			So(config.TopK, ShouldEqual, 10)
			So(config.InputPath, ShouldEqual, "/in.xlsx")

			os.Unsetenv(EnvVarOutput)
			os.Unsetenv(EnvVarTopK)

			config, err = FromEnv(dir)
			So(err, ShouldBeNil)
			So(config.OutputPath, ShouldEqual, "/file/out.xlsx")
		})
	})
}
