package parser

import (
	"fmt"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`@[^@\s]+`)

type keyword int

const (
	kwNone keyword = iota
	kwFeature
	kwBackground
	kwScenario
	kwOutline
	kwExamples
	kwRule
)

// Longer prefixes first so "Scenario Outline:" never reads as "Scenario:".
var sectionKeywords = []struct {
	prefix string
	kw     keyword
}{
	{"Feature:", kwFeature},
	{"Background:", kwBackground},
	{"Scenario Outline:", kwOutline},
	{"Scenario Template:", kwOutline},
	{"Scenario:", kwScenario},
	{"Examples:", kwExamples},
	{"Scenarios:", kwExamples},
	{"Rule:", kwRule},
}

var stepKeywords = []string{"Given", "When", "Then", "And", "But", "*"}

type state int

const (
	inFeature state = iota
	inBackground
	inScenario
	inOutline
	inExamples
)

type parser struct {
	uri          string
	lines        []string
	i            int
	l            Listener
	state        state
	seenScenario bool
	tags         []Tag
}

// Parse scans a feature file top to bottom and reports its structure to l.
// The first syntax error is delivered to l.SyntaxError and returned; no
// further events follow it.
func Parse(uri string, content []byte, l Listener) error {
	p := &parser{uri: uri, lines: splitLines(content), l: l}
	if perr := p.parse(); perr != nil {
		l.SyntaxError(*perr)
		return *perr
	}
	l.EOF()
	return nil
}

func splitLines(content []byte) []string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func (p *parser) parse() *ParseError {
	// Skip leading blanks and comments, collecting feature-level tags
	for !p.done() {
		trimmed := p.trimmed()
		if trimmed == "" || isComment(trimmed) {
			p.i++
			continue
		}
		if isTagLine(trimmed) {
			p.tags = append(p.tags, parseTags(trimmed, p.i+1)...)
			p.i++
			continue
		}
		break
	}

	if p.done() {
		return p.danglingTags()
	}

	kw, word, name := sectionKeyword(p.trimmed())
	if kw != kwFeature {
		return p.errorf("expected Feature, got %q", p.trimmed())
	}
	line := p.i + 1
	tags := p.takeTags()
	p.i++
	desc, _ := p.description()
	p.l.Feature(Feature{Line: line, Keyword: word, Name: name, Description: desc, Tags: tags})

	// Body loop
	for !p.done() {
		trimmed := p.trimmed()
		if trimmed == "" || isComment(trimmed) {
			p.i++
			continue
		}
		if isTagLine(trimmed) {
			p.tags = append(p.tags, parseTags(trimmed, p.i+1)...)
			p.i++
			continue
		}
		if err := p.statement(trimmed); err != nil {
			return err
		}
	}

	return p.danglingTags()
}

func (p *parser) statement(trimmed string) *ParseError {
	if kw, word, name := sectionKeyword(trimmed); kw != kwNone {
		return p.section(kw, word, name)
	}
	if word, text, ok := stepKeyword(trimmed); ok {
		return p.step(word, text)
	}
	if isTableRow(trimmed) {
		return p.errorf("unexpected table row")
	}
	if isDocStringDelimiter(trimmed) {
		return p.errorf("unexpected doc string")
	}
	return p.errorf("unexpected text %q", trimmed)
}

func (p *parser) section(kw keyword, word, name string) *ParseError {
	line := p.i + 1

	switch kw {
	case kwFeature:
		return p.errorf("only one Feature is allowed")
	case kwRule:
		return p.errorf("Rule is not supported")
	case kwBackground:
		if p.state == inBackground {
			return p.errorf("only one Background is allowed")
		}
		if p.seenScenario {
			return p.errorf("Background must precede all scenarios")
		}
		p.tags = nil // Background doesn't get tags
		p.i++
		desc, _ := p.description()
		p.state = inBackground
		p.l.Background(Background{Line: line, Keyword: word, Name: name, Description: desc})
	case kwScenario:
		tags := p.takeTags()
		p.i++
		desc, _ := p.description()
		p.state = inScenario
		p.seenScenario = true
		p.l.Scenario(Scenario{Line: line, Keyword: word, Name: name, Description: desc, Tags: tags})
	case kwOutline:
		tags := p.takeTags()
		p.i++
		desc, _ := p.description()
		p.state = inOutline
		p.seenScenario = true
		p.l.ScenarioOutline(ScenarioOutline{Line: line, Keyword: word, Name: name, Description: desc, Tags: tags})
	case kwExamples:
		if p.state != inOutline && p.state != inExamples {
			return p.errorf("Examples must follow a Scenario Outline")
		}
		return p.examples(word, name)
	}
	return nil
}

func (p *parser) step(word, text string) *ParseError {
	switch p.state {
	case inFeature:
		return p.errorf("step %q must belong to a Background, Scenario or Scenario Outline", word)
	case inExamples:
		return p.errorf("steps are not allowed after Examples")
	}
	if len(p.tags) > 0 {
		return p.errorAt(p.tags[0].Line, "tags must precede a Feature, Scenario, Scenario Outline or Examples")
	}

	s := Step{Line: p.i + 1, LastLine: p.i + 1, Keyword: word, Text: text}
	p.i++

	j := p.peek()
	if j < len(p.lines) {
		trimmed := strings.TrimSpace(p.lines[j])
		switch {
		case isDocStringDelimiter(trimmed):
			p.i = j
			ds, err := p.docString()
			if err != nil {
				return err
			}
			s.Argument = &StepArgument{DocString: ds}
			s.LastLine = ds.LastLine
		case isTableRow(trimmed):
			p.i = j
			rows, err := p.table()
			if err != nil {
				return err
			}
			s.Argument = &StepArgument{DataTable: &DataTable{Rows: rows}}
			s.LastLine = rows[len(rows)-1].Line
		}
	}

	p.l.Step(s)
	return nil
}

func (p *parser) examples(word, name string) *ParseError {
	ex := Examples{Line: p.i + 1, LastLine: p.i + 1, Keyword: word, Name: name, Tags: p.takeTags()}
	p.i++

	desc, last := p.description()
	ex.Description = desc
	if last > ex.LastLine {
		ex.LastLine = last
	}

	if j := p.peek(); j < len(p.lines) && isTableRow(strings.TrimSpace(p.lines[j])) {
		p.i = j
		rows, err := p.table()
		if err != nil {
			return err
		}
		ex.Rows = rows
	}

	p.state = inExamples
	p.l.Examples(ex)
	return nil
}

// description consumes the free text following a header. It returns the
// text and the 1-based line of its last non-blank line, or 0 if empty.
func (p *parser) description() (string, int) {
	var descLines []string
	last := 0
	for !p.done() {
		trimmed := p.trimmed()
		if isComment(trimmed) {
			p.i++
			continue
		}
		if trimmed != "" && startsStatement(trimmed) {
			break
		}
		descLines = append(descLines, trimmed)
		if trimmed != "" {
			last = p.i + 1
		}
		p.i++
	}

	// Trim trailing blank lines
	for len(descLines) > 0 && descLines[len(descLines)-1] == "" {
		descLines = descLines[:len(descLines)-1]
	}
	return strings.Join(descLines, "\n"), last
}

// docString consumes a doc string block. p.i points at the opening delimiter.
func (p *parser) docString() (*DocString, *ParseError) {
	opener := p.lines[p.i]
	trimmed := strings.TrimSpace(opener)
	delimiter := `"""`
	if strings.HasPrefix(trimmed, "```") {
		delimiter = "```"
	}
	indent := len(opener) - len(strings.TrimLeft(opener, " \t"))
	ds := &DocString{
		Line:      p.i + 1,
		MediaType: strings.TrimSpace(strings.TrimPrefix(trimmed, delimiter)),
	}

	var content []string
	for j := p.i + 1; j < len(p.lines); j++ {
		if strings.TrimSpace(p.lines[j]) == delimiter {
			ds.LastLine = j + 1
			ds.Content = strings.Join(content, "\n")
			p.i = j + 1
			return ds, nil
		}
		content = append(content, unindent(p.lines[j], indent))
	}
	return nil, p.errorAt(ds.Line, "unterminated doc string")
}

// table consumes consecutive table rows, skipping interleaved blank lines
// and comments. p.i points at the first row.
func (p *parser) table() ([]Row, *ParseError) {
	var rows []Row
	for !p.done() {
		trimmed := p.trimmed()
		if trimmed == "" || isComment(trimmed) {
			j := p.peek()
			if j < len(p.lines) && isTableRow(strings.TrimSpace(p.lines[j])) {
				p.i = j
				continue
			}
			break
		}
		if !isTableRow(trimmed) {
			break
		}
		row := Row{Line: p.i + 1, Cells: parseCells(trimmed)}
		if len(rows) > 0 && len(row.Cells) != len(rows[0].Cells) {
			return nil, p.errorf("inconsistent cell count: expected %d, got %d", len(rows[0].Cells), len(row.Cells))
		}
		rows = append(rows, row)
		p.i++
	}
	return rows, nil
}

// peek returns the index of the next line that is neither blank nor a comment.
func (p *parser) peek() int {
	j := p.i
	for j < len(p.lines) {
		trimmed := strings.TrimSpace(p.lines[j])
		if trimmed != "" && !isComment(trimmed) {
			break
		}
		j++
	}
	return j
}

func (p *parser) danglingTags() *ParseError {
	if len(p.tags) == 0 {
		return nil
	}
	return p.errorAt(p.tags[0].Line, "tags must precede a Feature, Scenario, Scenario Outline or Examples")
}

func (p *parser) takeTags() []Tag {
	tags := p.tags
	p.tags = nil
	return tags
}

func (p *parser) done() bool {
	return p.i >= len(p.lines)
}

func (p *parser) trimmed() string {
	return strings.TrimSpace(p.lines[p.i])
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return p.errorAt(p.i+1, format, args...)
}

func (p *parser) errorAt(line int, format string, args ...any) *ParseError {
	column := 1
	if line >= 1 && line <= len(p.lines) {
		raw := p.lines[line-1]
		column = len(raw) - len(strings.TrimLeft(raw, " \t")) + 1
	}
	return &ParseError{URI: p.uri, Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}

func sectionKeyword(trimmed string) (keyword, string, string) {
	for _, k := range sectionKeywords {
		if strings.HasPrefix(trimmed, k.prefix) {
			word := strings.TrimSuffix(k.prefix, ":")
			return k.kw, word, strings.TrimSpace(strings.TrimPrefix(trimmed, k.prefix))
		}
	}
	return kwNone, "", ""
}

func stepKeyword(trimmed string) (string, string, bool) {
	for _, word := range stepKeywords {
		if !strings.HasPrefix(trimmed, word) {
			continue
		}
		rest := trimmed[len(word):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			return word, strings.TrimSpace(rest), true
		}
	}
	return "", "", false
}

func startsStatement(trimmed string) bool {
	if kw, _, _ := sectionKeyword(trimmed); kw != kwNone {
		return true
	}
	if _, _, ok := stepKeyword(trimmed); ok {
		return true
	}
	return isTagLine(trimmed) || isTableRow(trimmed) || isDocStringDelimiter(trimmed)
}

func parseTags(line string, lineNo int) []Tag {
	matches := tagPattern.FindAllString(line, -1)
	var tags []Tag
	for _, m := range matches {
		tags = append(tags, Tag{Name: m, Line: lineNo})
	}
	return tags
}

// parseCells splits a table row on unescaped pipes.
func parseCells(trimmed string) []string {
	var cells []string
	var cell strings.Builder
	body := strings.TrimPrefix(trimmed, "|")
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			i++
			switch body[i] {
			case 'n':
				cell.WriteByte('\n')
			default:
				cell.WriteByte(body[i])
			}
		case c == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(c)
		}
	}
	if rest := strings.TrimSpace(cell.String()); rest != "" {
		cells = append(cells, rest)
	}
	return cells
}

func unindent(line string, indent int) string {
	n := 0
	for n < indent && n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return line[n:]
}

func isComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "#")
}

func isTagLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "@")
}

func isTableRow(trimmed string) bool {
	return strings.HasPrefix(trimmed, "|")
}

func isDocStringDelimiter(trimmed string) bool {
	return strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "```")
}
