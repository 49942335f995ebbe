package document

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrLineOutOfRange   = errors.New("line out of range")
	ErrOffsetOutOfRange = errors.New("offset out of range")
)

// Document is the read-only view of a text buffer the fold model consults.
// Line indexes are 0-based, as in an editor buffer.
type Document interface {
	LineOffset(index int) (int, error)
	LineLength(index int) (int, error)
	NumberOfLines() int
}

// Text is an in-memory Document. Offsets are byte offsets into the text and
// a line's length includes its delimiter.
type Text struct {
	text   string
	starts []int
}

func New(text string) *Text {
	t := &Text{text: text}
	if text == "" {
		return t
	}
	t.starts = append(t.starts, 0)
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		if i+1 < len(text) {
			t.starts = append(t.starts, i+1)
		}
	}
	return t
}

func (t *Text) String() string {
	return t.text
}

func (t *Text) NumberOfLines() int {
	return len(t.starts)
}

func (t *Text) LineOffset(index int) (int, error) {
	if index < 0 || index >= len(t.starts) {
		return 0, fmt.Errorf("line %d of %d: %w", index, len(t.starts), ErrLineOutOfRange)
	}
	return t.starts[index], nil
}

func (t *Text) LineLength(index int) (int, error) {
	start, err := t.LineOffset(index)
	if err != nil {
		return 0, err
	}
	if index+1 < len(t.starts) {
		return t.starts[index+1] - start, nil
	}
	return len(t.text) - start, nil
}

// LineOfOffset returns the 0-based index of the line containing offset.
func (t *Text) LineOfOffset(offset int) (int, error) {
	if offset < 0 || offset >= len(t.text) {
		return 0, fmt.Errorf("offset %d of %d: %w", offset, len(t.text), ErrOffsetOutOfRange)
	}
	return sort.SearchInts(t.starts, offset+1) - 1, nil
}

func (t *Text) Slice(offset, length int) (string, error) {
	if offset < 0 || length < 0 || offset+length > len(t.text) {
		return "", fmt.Errorf("range [%d, %d) of %d: %w", offset, offset+length, len(t.text), ErrOffsetOutOfRange)
	}
	return t.text[offset : offset+length], nil
}
