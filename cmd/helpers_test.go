package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chriserin/ftfold/internal/config"
)

const loginFeature = `Feature: Login

  Background:
    Given a user

  Scenario: ok
    When login
    Then welcome
`

func writeFeature(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join("fts", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runSync(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf, config.Default()))
	return buf.String()
}
