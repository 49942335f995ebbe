package fold

import (
	"github.com/chriserin/ftfold/internal/document"
	"github.com/chriserin/ftfold/internal/parser"
)

// Fold is a resolved record.
type Fold struct {
	Section
	EndLine int
	Span    Span
}

// Model holds the fold structure of one document snapshot. Update rebuilds
// it from scratch; Folds resolves spans lazily and caches them until the next
// Update. A Model is not safe for concurrent use.
type Model struct {
	uri     string
	doc     *document.Text
	records []*Record
	errors  []parser.ParseError
	folds   []Fold
	cached  bool
}

func NewModel(uri string) *Model {
	return &Model{uri: uri, doc: document.New("")}
}

// Update discards all records and rebuilds them from doc.
func (m *Model) Update(doc *document.Text) {
	m.doc = doc
	m.folds = nil
	m.cached = false

	b := NewBuilder(doc)
	// syntax errors reach b.SyntaxError
	parser.Parse(m.uri, []byte(doc.String()), b)
	m.records = b.Records()
	m.errors = b.Errors()
}

func (m *Model) Document() *document.Text {
	return m.doc
}

func (m *Model) Records() []*Record {
	return m.records
}

func (m *Model) Errors() []parser.ParseError {
	return m.errors
}

// Folds returns one fold per record in creation order. Records that cannot
// be resolved against the current document are logged and left out.
func (m *Model) Folds() []Fold {
	if m.cached {
		return m.folds
	}
	folds := make([]Fold, 0, len(m.records))
	for _, r := range m.records {
		span, err := Resolve(r, m.doc)
		if err != nil {
			log.Warningf("%s: skipping fold: %s", m.uri, err.Error())
			continue
		}
		folds = append(folds, Fold{Section: r.Section, EndLine: r.LastLine(), Span: span})
	}
	m.folds = folds
	m.cached = true
	return folds
}

func (m *Model) FoldRanges() []Span {
	folds := m.Folds()
	spans := make([]Span, 0, len(folds))
	for _, f := range folds {
		spans = append(spans, f.Span)
	}
	return spans
}

// ComputeFoldRanges parses text and returns the span of every section.
func ComputeFoldRanges(text string) []Span {
	m := NewModel("")
	m.Update(document.New(text))
	return m.FoldRanges()
}
