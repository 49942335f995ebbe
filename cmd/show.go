package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chriserin/ftfold/internal/document"
	"github.com/chriserin/ftfold/internal/fold"
	"github.com/chriserin/ftfold/internal/parser"
	"github.com/chriserin/ftfold/internal/ui"
	"github.com/spf13/cobra"
)

var eventsFlag bool

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show the fold outline of a feature file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if eventsFlag {
			return RunShowEvents(cmd.OutOrStdout(), args[0])
		}
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	showCmd.Flags().BoolVar(&eventsFlag, "events", false, "Print the parser event stream instead of the outline")
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	m := fold.NewModel(path)
	m.Update(document.New(string(content)))

	ui.ShowHeader(w, filepath.Base(path), m.Document().NumberOfLines())
	for _, f := range m.Folds() {
		ui.ShowFold(w, depth(f.Kind), f.Keyword, f.Name, f.Line, f.EndLine)
	}
	for _, perr := range m.Errors() {
		ui.ErrorLine(w, perr)
	}
	return nil
}

func RunShowEvents(w io.Writer, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	// a syntax error is the last recorded event
	events, _ := parser.Record(path, content)
	for _, e := range events {
		fmt.Fprintln(w, e.String())
	}
	return nil
}

func depth(k fold.Kind) int {
	switch {
	case k == fold.KindFeature:
		return 0
	case k.IsStepContainer():
		return 1
	default:
		return 2
	}
}
