package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/chriserin/ftfold/internal/config"
	"github.com/chriserin/ftfold/internal/fold"
	"github.com/chriserin/ftfold/internal/ui"
	"github.com/spf13/cobra"
)

var (
	kindFlag string
	fileFlag string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all indexed sections",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), cfg, kindFlag, fileFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&kindFlag, "kind", "", "Filter by section kind (feature, background, scenario, scenarioOutline, examples)")
	listCmd.Flags().StringVar(&fileFlag, "file", "", "Filter by file path or base name")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	fileName string
	kind     string
	lines    string
	name     string
}

func RunList(w io.Writer, cfg *config.Config, kindFilter, fileFilter string) error {
	if kindFilter != "" {
		if _, ok := fold.ParseKind(kindFilter); !ok {
			return fmt.Errorf("unknown section kind %q", kindFilter)
		}
	}

	sqlDB, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT f.file_path, s.kind, s.keyword, s.name, s.start_line, s.end_line
		FROM sections s
		JOIN files f ON s.file_id = f.id
		ORDER BY f.file_path, s.position
	`)
	if err != nil {
		return fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var filePath, kind, keyword, name string
		var start, end int
		if err := rows.Scan(&filePath, &kind, &keyword, &name, &start, &end); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}

		if kindFilter != "" && kind != kindFilter {
			continue
		}
		if fileFilter != "" && filePath != fileFilter && filepath.Base(filePath) != fileFilter {
			continue
		}

		if name == "" {
			name = keyword
		}
		results = append(results, listRow{
			fileName: filepath.Base(filePath),
			kind:     kind,
			lines:    strconv.Itoa(start) + "-" + strconv.Itoa(end),
			name:     name,
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	if len(results) == 0 {
		return nil
	}

	// Compute column widths
	fileWidth, kindWidth, linesWidth := 0, 0, 0
	for _, r := range results {
		if len(r.fileName) > fileWidth {
			fileWidth = len(r.fileName)
		}
		if len(r.kind) > kindWidth {
			kindWidth = len(r.kind)
		}
		if len(r.lines) > linesWidth {
			linesWidth = len(r.lines)
		}
	}

	for _, r := range results {
		ui.SectionRow(w, r.fileName, r.kind, r.lines, r.name, fileWidth, kindWidth, linesWidth)
	}

	return nil
}
