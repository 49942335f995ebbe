package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/ftfold/internal/config"
	"github.com/chriserin/ftfold/internal/db"
)

func TestSync_RequiresInit(t *testing.T) {
	inTempDir(t)
	var buf bytes.Buffer
	err := RunSync(&buf, config.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ftfold init")
}

func TestSync_IndexesNewFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.ft", loginFeature)

	out := runSync(t)
	assert.Contains(t, out, "new  fts/login.ft")
	assert.Contains(t, out, "synced 1 files, 3 sections")

	sqlDB, err := db.Open("fts/ft.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`SELECT kind, start_line, end_line, start_offset, length FROM sections ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()

	type section struct {
		kind                       string
		start, end, offset, length int
	}
	var got []section
	for rows.Next() {
		var s section
		require.NoError(t, rows.Scan(&s.kind, &s.start, &s.end, &s.offset, &s.length))
		got = append(got, s)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []section{
		{"feature", 1, 8, 0, 95},
		{"background", 3, 4, 16, 31},
		{"scenario", 6, 8, 48, 47},
	}, got)
}

func TestSync_SecondRunTracksFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.ft", loginFeature)
	runSync(t)

	out := runSync(t)
	assert.Contains(t, out, "trk  fts/login.ft")
	assert.NotContains(t, out, "new  fts/login.ft")
	assert.Contains(t, out, "synced 1 files, 3 sections")
}

func TestSync_ReplacesSectionsOnChange(t *testing.T) {
	inTempDir(t)
	runInit(t)
	path := writeFeature(t, "login.ft", loginFeature)
	runSync(t)

	require.NoError(t, os.WriteFile(path, []byte("Feature: Login\n  Scenario: only\n    Given x\n"), 0o644))
	out := runSync(t)
	assert.Contains(t, out, "synced 1 files, 2 sections")

	sqlDB, err := db.Open("fts/ft.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM sections`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestSync_PrunesDeletedFiles(t *testing.T) {
	inTempDir(t)
	runInit(t)
	path := writeFeature(t, "login.ft", loginFeature)
	writeFeature(t, "other.ft", "Feature: Other\n")
	runSync(t)

	require.NoError(t, os.Remove(path))
	out := runSync(t)
	assert.Contains(t, out, "del  fts/login.ft")
	assert.Contains(t, out, "synced 1 files, 1 sections")

	sqlDB, err := db.Open("fts/ft.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM sections`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSync_RecordsSyntaxErrors(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "bad.ft", "Feature: Bad\n  Scenario: A\n    Given x\n  Rule: nope\n")

	out := runSync(t)
	assert.Contains(t, out, "err  fts/bad.ft:4:3: Rule is not supported")

	sqlDB, err := db.Open("fts/ft.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	var line, col int
	var message string
	require.NoError(t, sqlDB.QueryRow(`SELECT line, col, message FROM syntax_errors`).Scan(&line, &col, &message))
	assert.Equal(t, 4, line)
	assert.Equal(t, 3, col)
	assert.Equal(t, "Rule is not supported", message)
}

func TestSync_IgnoresOtherExtensions(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "notes.txt", "Feature: Not indexed\n")
	writeFeature(t, "nested/login.feature", loginFeature)

	out := runSync(t)
	assert.NotContains(t, out, "notes.txt")
	assert.Contains(t, out, "new  fts/nested/login.feature")
}
