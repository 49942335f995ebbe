package fold

import (
	"github.com/chriserin/ftfold/internal/document"
	"github.com/chriserin/ftfold/internal/parser"
	"github.com/tliron/commonlog"
)

// Builder turns parser events into section records. It keeps the open
// containers on a stack: a step-container closes when the next one opens,
// and everything still open is closed at the last line of the document when
// the input ends.
//
// Builder implements parser.Listener.
type Builder struct {
	doc     document.Document
	log     commonlog.Logger
	records []*Record
	stack   []*Record
	errors  []parser.ParseError
}

var _ parser.Listener = (*Builder)(nil)

// NewBuilder returns a builder whose end-of-input flush uses the line count
// of doc.
func NewBuilder(doc document.Document) *Builder {
	return &Builder{doc: doc, log: log}
}

// Records returns the records in creation order.
func (b *Builder) Records() []*Record {
	return b.records
}

// Errors returns the syntax errors reported by the event source.
func (b *Builder) Errors() []parser.ParseError {
	return b.errors
}

func (b *Builder) Feature(f parser.Feature) {
	b.push(b.newRecord(KindFeature, f.Line, f.Keyword, f.Name))
}

func (b *Builder) Background(bg parser.Background) {
	b.stepContainer(KindBackground, bg.Line, bg.Keyword, bg.Name)
}

func (b *Builder) Scenario(sc parser.Scenario) {
	b.stepContainer(KindScenario, sc.Line, sc.Keyword, sc.Name)
}

func (b *Builder) ScenarioOutline(so parser.ScenarioOutline) {
	b.stepContainer(KindScenarioOutline, so.Line, so.Keyword, so.Name)
}

func (b *Builder) Step(s parser.Step) {
	top := b.top()
	if top == nil {
		b.log.Debugf("step at line %d has no open section", s.Line)
		return
	}
	top.EndLine = s.LastLine
}

func (b *Builder) Examples(ex parser.Examples) {
	lastLine := ex.LastLine
	if len(ex.Rows) > 0 {
		lastLine = ex.Rows[len(ex.Rows)-1].Line
	}

	r := b.newRecord(KindExamples, ex.Line, ex.Keyword, ex.Name)
	r.EndLine = lastLine

	top := b.top()
	if top == nil {
		b.log.Debugf("examples at line %d have no open section", ex.Line)
		return
	}
	top.EndLine = lastLine
}

func (b *Builder) SyntaxError(err parser.ParseError) {
	b.log.Warningf("syntax error: %s", err.Error())
	b.errors = append(b.errors, err)
}

func (b *Builder) EOF() {
	lines := b.doc.NumberOfLines()
	for len(b.stack) > 0 {
		b.pop().EndLine = lines
	}
}

// stepContainer closes at most one open step-container before opening the
// new one. The closed record keeps whatever end it already has.
func (b *Builder) stepContainer(kind Kind, line int, keyword, name string) {
	if top := b.top(); top != nil && top.Kind.IsStepContainer() {
		b.pop()
	}
	b.push(b.newRecord(kind, line, keyword, name))
}

func (b *Builder) newRecord(kind Kind, line int, keyword, name string) *Record {
	r := &Record{Section: Section{Kind: kind, Line: line, Keyword: keyword, Name: name}}
	b.records = append(b.records, r)
	return r
}

func (b *Builder) push(r *Record) {
	b.stack = append(b.stack, r)
}

func (b *Builder) pop() *Record {
	r := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return r
}

func (b *Builder) top() *Record {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}
