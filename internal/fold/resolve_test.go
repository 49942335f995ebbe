package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/ftfold/internal/document"
)

const resolveText = "Feature: F\n  Scenario: A\n    Given x\n"

func TestResolve_LineRange(t *testing.T) {
	doc := document.New(resolveText)
	r := &Record{Section: Section{Kind: KindScenario, Line: 2}, EndLine: 3}

	span, err := Resolve(r, doc)
	require.NoError(t, err)
	assert.Equal(t, Span{Offset: 11, Length: len("  Scenario: A\n    Given x\n")}, span)
	assert.Equal(t, len(resolveText), span.End())
}

func TestResolve_UnsetEndCoversStartLine(t *testing.T) {
	doc := document.New(resolveText)
	r := &Record{Section: Section{Kind: KindScenario, Line: 2}}

	span, err := Resolve(r, doc)
	require.NoError(t, err)
	text, err := doc.Slice(span.Offset, span.Length)
	require.NoError(t, err)
	assert.Equal(t, "  Scenario: A\n", text)
}

func TestResolve_DoesNotMutateRecord(t *testing.T) {
	doc := document.New(resolveText)
	r := &Record{Section: Section{Kind: KindScenario, Line: 2}}

	_, err := Resolve(r, doc)
	require.NoError(t, err)
	assert.False(t, r.HasEnd())
}

func TestResolve_OutOfRange(t *testing.T) {
	doc := document.New(resolveText)

	tests := []struct {
		name   string
		record *Record
		line   int
	}{
		{"start past end", &Record{Section: Section{Kind: KindScenario, Line: 9}}, 9},
		{"end past end", &Record{Section: Section{Kind: KindFeature, Line: 1}, EndLine: 12}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.record, doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, document.ErrLineOutOfRange)

			var rerr *RangeError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, tt.line, rerr.Line)
			assert.Same(t, tt.record, rerr.Record)
		})
	}
}

func TestResolve_EndBeforeStart(t *testing.T) {
	doc := document.New(resolveText)
	r := &Record{Section: Section{Kind: KindScenario, Line: 3}, EndLine: 1}

	_, err := Resolve(r, doc)
	assert.ErrorIs(t, err, document.ErrLineOutOfRange)
}
