package cmd

import (
	"fmt"
	"io"

	"github.com/chriserin/ftfold/internal/config"
	"github.com/chriserin/ftfold/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the fold index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer, cfg *config.Config) error {
	sqlDB, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var files, sections int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM files`).Scan(&files); err != nil {
		return fmt.Errorf("counting files: %w", err)
	}
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM sections`).Scan(&sections); err != nil {
		return fmt.Errorf("counting sections: %w", err)
	}

	ui.StatusTotal(w, "Files", files)
	ui.StatusTotal(w, "Sections", sections)

	if sections > 0 {
		rows, err := sqlDB.Query(`
			SELECT kind, COUNT(*) AS cnt
			FROM sections
			GROUP BY kind
			ORDER BY cnt DESC, kind
		`)
		if err != nil {
			return fmt.Errorf("querying section counts: %w", err)
		}
		type kindCount struct {
			kind string
			cnt  int
		}
		var counts []kindCount
		for rows.Next() {
			var c kindCount
			if err := rows.Scan(&c.kind, &c.cnt); err != nil {
				rows.Close()
				return fmt.Errorf("scanning count row: %w", err)
			}
			counts = append(counts, c)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterating counts: %w", err)
		}
		for _, c := range counts {
			ui.StatusCount(w, c.kind, c.cnt)
		}
	}

	rows, err := sqlDB.Query(`
		SELECT f.file_path, e.line, e.col, e.message
		FROM syntax_errors e
		JOIN files f ON e.file_id = f.id
		ORDER BY f.file_path, e.line
	`)
	if err != nil {
		return fmt.Errorf("querying syntax errors: %w", err)
	}
	defer rows.Close()

	var messages []string
	for rows.Next() {
		var path, message string
		var line, col int
		if err := rows.Scan(&path, &line, &col, &message); err != nil {
			return fmt.Errorf("scanning syntax error: %w", err)
		}
		messages = append(messages, fmt.Sprintf("%s:%d:%d: %s", path, line, col, message))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating syntax errors: %w", err)
	}

	ui.StatusTotal(w, "Syntax errors", len(messages))
	for _, msg := range messages {
		fmt.Fprintf(w, "  %s\n", msg)
	}
	return nil
}
