package fold

import (
	"fmt"

	"github.com/chriserin/ftfold/internal/document"
)

// Span is an absolute character range in a document.
type Span struct {
	Offset int
	Length int
}

func (s Span) End() int {
	return s.Offset + s.Length
}

// RangeError reports a record whose lines fall outside the document.
type RangeError struct {
	Record *Record
	Line   int
	Err    error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s at line %d: resolving line %d: %v", e.Record.Kind, e.Record.Line, e.Line, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

// Resolve maps a record's lines to a span of doc, from the start of its
// first line through the end of its last line, delimiter included. A record
// without an end covers only its first line.
func Resolve(r *Record, doc document.Document) (Span, error) {
	offset, err := doc.LineOffset(documentLine(r.Line))
	if err != nil {
		return Span{}, &RangeError{Record: r, Line: r.Line, Err: err}
	}

	last := r.LastLine()
	lastOffset, err := doc.LineOffset(documentLine(last))
	if err != nil {
		return Span{}, &RangeError{Record: r, Line: last, Err: err}
	}
	length, err := doc.LineLength(documentLine(last))
	if err != nil {
		return Span{}, &RangeError{Record: r, Line: last, Err: err}
	}

	end := lastOffset + length
	if end < offset {
		return Span{}, &RangeError{Record: r, Line: last, Err: fmt.Errorf("end line precedes start line %d: %w", r.Line, document.ErrLineOutOfRange)}
	}
	return Span{Offset: offset, Length: end - offset}, nil
}

// documentLine converts a 1-based source line to the document's 0-based index.
func documentLine(line int) int {
	return line - 1
}
