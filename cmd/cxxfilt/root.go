package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputFile        string
	output            io.Writer
	noStripUnderscore bool
	demangleTypes     bool
)

var rootCmd = &cobra.Command{
	Use:   "cxxfilt [symbol...]",
	Short: "Decode Itanium C++ ABI mangled symbol names",
	Long: `cxxfilt decodes Itanium C++ ABI mangled symbol names, as emitted by
GNU and Clang toolchains, into their human-readable declarations.

With no arguments, symbols are read one per line from standard input.
A line that does not look like a mangled name, or that this
implementation's grammar subset does not cover, is echoed back
unchanged.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
	RunE: runFilter,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.Flags().BoolVarP(&noStripUnderscore, "no-strip-underscores", "n", false, "do not try stripping a leading underscore before decoding")
	rootCmd.Flags().BoolVarP(&demangleTypes, "types", "t", false, "also attempt to decode mangled names appearing as words inside otherwise-plain lines")
}
