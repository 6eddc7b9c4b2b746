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

// package cmd is the cobra file that enables subcommands and handles
// command-line args.

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
)

type Error string

func (e Error) Error() string { return string(e) }

// appLogger is used for logging events in our commands.
var appLogger = log15.New()

// verbose is a global option for all commands.
var verbose bool

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "taxa-organiser",
	Short: "taxa-organiser builds taxonomic abundance reports",
	Long: `taxa-organiser builds taxonomic abundance reports.

Given a workbook of per-rank relative abundance tables (sheets like
"P_rank(%)" with companion "P_read" sheets) and a sample metadata table, it
writes a new xlsx workbook where each table has its samples ordered by your
choice of metadata fields, metadata rows on top, and summary and top taxa
ranking rows below, with the top ranks colored.

Start with the "fields" sub-command to see what metadata fields you can sort
by, then use the "organise" sub-command to create the report.
`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			setLogLevel(log15.LvlDebug)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once to
// the rootCmd.
func Execute() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		die(err)
	}
}

func init() {
	// set up logging to stderr
	setLogLevel(log15.LvlInfo)

	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log debug messages")
}

func setLogLevel(lvl log15.Lvl) {
	appLogger.SetHandler(log15.LvlFilterHandler(lvl, log15.StderrHandler))
}

// cliPrint outputs the message to STDOUT.
func cliPrint(msg string, a ...interface{}) {
	fmt.Fprintf(os.Stdout, msg, a...)
}

// cliPrintRaw is like cliPrint, but does no interpretation of placeholders in
// msg.
func cliPrintRaw(msg string) {
	fmt.Fprint(os.Stdout, msg)
}

// debugf is a convenience to log a message at the Debug level.
func debugf(msg string, a ...interface{}) {
	appLogger.Debug(fmt.Sprintf(msg, a...))
}

// infof is a convenience to log a message at the Info level.
func infof(msg string, a ...interface{}) {
	appLogger.Info(fmt.Sprintf(msg, a...))
}

// warnf is a convenience to log a message at the Warn level.
func warnf(msg string, a ...interface{}) {
	appLogger.Warn(fmt.Sprintf(msg, a...))
}

// die is a convenience to log an error at the Error level and exit non zero.
func die(err error) {
	appLogger.Error(err.Error())
	os.Exit(1)
}
