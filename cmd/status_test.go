package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/ftfold/internal/config"
)

func runStatus(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunStatus(&buf, config.Default()))
	return buf.String()
}

func TestStatus_Empty(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := runStatus(t)
	assert.Contains(t, out, "Files: 0")
	assert.Contains(t, out, "Sections: 0")
	assert.Contains(t, out, "Syntax errors: 0")
}

func TestStatus_CountsByKind(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.ft", loginFeature)
	writeFeature(t, "other.ft", "Feature: Other\n  Scenario: A\n    Given x\n")
	runSync(t)

	out := runStatus(t)
	assert.Contains(t, out, "Files: 2")
	assert.Contains(t, out, "Sections: 5")
	assert.Contains(t, out, "  feature: 2")
	assert.Contains(t, out, "  scenario: 2")
	assert.Contains(t, out, "  background: 1")
}

func TestStatus_ListsSyntaxErrors(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "bad.ft", "Feature: Bad\n  Rule: nope\n")
	runSync(t)

	out := runStatus(t)
	assert.Contains(t, out, "Syntax errors: 1")
	assert.Contains(t, out, "fts/bad.ft:2:3: Rule is not supported")
}

func TestStatus_RequiresInit(t *testing.T) {
	inTempDir(t)
	var buf bytes.Buffer
	require.Error(t, RunStatus(&buf, config.Default()))
}
