package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/chriserin/ftfold/internal/config"
	"github.com/chriserin/ftfold/internal/db"
	"github.com/chriserin/ftfold/internal/document"
	"github.com/chriserin/ftfold/internal/fold"
	"github.com/chriserin/ftfold/internal/ui"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan the features directory and rebuild the fold index",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer, cfg *config.Config) error {
	sqlDB, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	matches, err := featureFiles(cfg)
	if err != nil {
		return fmt.Errorf("scanning %s/: %w", cfg.Dir, err)
	}

	seen := make(map[string]bool, len(matches))
	sections := 0
	for _, path := range matches {
		seen[path] = true

		var id int64
		err := sqlDB.QueryRow(`SELECT id FROM files WHERE file_path = ?`, path).Scan(&id)
		if err == sql.ErrNoRows {
			res, err := sqlDB.Exec(`INSERT INTO files (file_path) VALUES (?)`, path)
			if err != nil {
				return fmt.Errorf("inserting %s: %w", path, err)
			}
			if id, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("inserting %s: %w", path, err)
			}
			ui.NewLine(w, path)
		} else if err != nil {
			return fmt.Errorf("querying %s: %w", path, err)
		} else {
			ui.TrkLine(w, path)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		m := fold.NewModel(path)
		m.Update(document.New(string(content)))

		n, err := storeModel(sqlDB, id, m)
		if err != nil {
			return fmt.Errorf("indexing %s: %w", path, err)
		}
		log.Debugf("%s: %d sections, %d syntax errors", path, n, len(m.Errors()))
		for _, perr := range m.Errors() {
			ui.ErrorLine(w, perr)
		}
		sections += n
	}

	if err := pruneFiles(w, sqlDB, seen); err != nil {
		return err
	}

	ui.SummaryLine(w, len(matches), sections)
	return nil
}

func openIndex(cfg *config.Config) (*sql.DB, error) {
	if _, err := os.Stat(cfg.Dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("run `ftfold init` first")
	}

	sqlDB, err := db.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return sqlDB, nil
}

// featureFiles walks the features directory for files with a configured
// extension, sorted by path.
func featureFiles(cfg *config.Config) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(cfg.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && cfg.IsFeatureFile(path) {
			matches = append(matches, filepath.ToSlash(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// storeModel replaces the indexed sections and syntax errors of one file.
func storeModel(sqlDB *sql.DB, fileID int64, m *fold.Model) (int, error) {
	tx, err := sqlDB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sections WHERE file_id = ?`, fileID); err != nil {
		return 0, fmt.Errorf("clearing sections: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM syntax_errors WHERE file_id = ?`, fileID); err != nil {
		return 0, fmt.Errorf("clearing syntax errors: %w", err)
	}

	folds := m.Folds()
	for i, f := range folds {
		_, err := tx.Exec(`
			INSERT INTO sections (file_id, position, kind, keyword, name, start_line, end_line, start_offset, length)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, fileID, i, f.Kind.String(), f.Keyword, f.Name, f.Line, f.EndLine, f.Span.Offset, f.Span.Length)
		if err != nil {
			return 0, fmt.Errorf("inserting section: %w", err)
		}
	}

	for _, perr := range m.Errors() {
		_, err := tx.Exec(`INSERT INTO syntax_errors (file_id, line, col, message) VALUES (?, ?, ?, ?)`,
			fileID, perr.Line, perr.Column, perr.Message)
		if err != nil {
			return 0, fmt.Errorf("inserting syntax error: %w", err)
		}
	}

	if _, err := tx.Exec(`UPDATE files SET updated_at = datetime('now') WHERE id = ?`, fileID); err != nil {
		return 0, fmt.Errorf("touching file: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(folds), nil
}

// pruneFiles drops files that are no longer on disk, with their sections.
func pruneFiles(w io.Writer, sqlDB *sql.DB, seen map[string]bool) error {
	rows, err := sqlDB.Query(`SELECT id, file_path FROM files ORDER BY file_path`)
	if err != nil {
		return fmt.Errorf("querying files: %w", err)
	}
	type staleFile struct {
		id   int64
		path string
	}
	var stale []staleFile
	for rows.Next() {
		var id int64
		var path string
		if err := rows.Scan(&id, &path); err != nil {
			rows.Close()
			return fmt.Errorf("scanning file row: %w", err)
		}
		if !seen[path] {
			stale = append(stale, staleFile{id, path})
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating files: %w", err)
	}

	for _, f := range stale {
		if _, err := sqlDB.Exec(`DELETE FROM files WHERE id = ?`, f.id); err != nil {
			return fmt.Errorf("removing %s: %w", f.path, err)
		}
		log.Infof("%s: removed from index", f.path)
		ui.DelLine(w, f.path)
	}
	return nil
}
