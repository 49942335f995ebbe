package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chriserin/ftfold/internal/fold"
	"github.com/chriserin/ftfold/internal/ui"
	"github.com/spf13/cobra"
)

var rangesCmd = &cobra.Command{
	Use:   "ranges <file>",
	Short: "Print the fold ranges of a feature file as offset and length",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRanges(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(rangesCmd)
}

func RunRanges(w io.Writer, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	for _, span := range fold.ComputeFoldRanges(string(content)) {
		ui.RangeLine(w, span.Offset, span.Length)
	}
	return nil
}
