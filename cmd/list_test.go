package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/ftfold/internal/config"
)

func runList(t *testing.T, kind, file string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunList(&buf, config.Default(), kind, file))
	return buf.String()
}

func TestList_ShowsAllSections(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.ft", loginFeature)
	runSync(t)

	lines := strings.Split(strings.TrimSpace(runList(t, "", "")), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "feature")
	assert.Contains(t, lines[0], "1-8")
	assert.Contains(t, lines[0], "Login")
	assert.Contains(t, lines[1], "background")
	assert.Contains(t, lines[1], "3-4")
	assert.Contains(t, lines[1], "Background")
	assert.Contains(t, lines[2], "scenario")
	assert.Contains(t, lines[2], "6-8")
	assert.True(t, strings.HasPrefix(lines[2], "login.ft"))
}

func TestList_FiltersByKind(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.ft", loginFeature)
	runSync(t)

	out := runList(t, "scenario", "")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "ok")
}

func TestList_FiltersByFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.ft", loginFeature)
	writeFeature(t, "other.ft", "Feature: Other\n")
	runSync(t)

	out := runList(t, "", "other.ft")
	assert.Contains(t, out, "Other")
	assert.NotContains(t, out, "login.ft")

	out = runList(t, "", "fts/login.ft")
	assert.Contains(t, out, "Login")
	assert.NotContains(t, out, "other.ft")
}

func TestList_UnknownKind(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	err := RunList(&buf, config.Default(), "rule", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown section kind "rule"`)
}

func TestList_EmptyIndex(t *testing.T) {
	inTempDir(t)
	runInit(t)
	assert.Empty(t, runList(t, "", ""))
}
