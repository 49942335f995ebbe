package parser

import "fmt"

// Listener receives structural events in document order. Parse stops after
// SyntaxError, so EOF is only delivered for documents that parse cleanly.
type Listener interface {
	Feature(f Feature)
	Background(bg Background)
	Scenario(sc Scenario)
	ScenarioOutline(so ScenarioOutline)
	Step(s Step)
	Examples(ex Examples)
	SyntaxError(err ParseError)
	EOF()
}

type Feature struct {
	Line        int // 1-based line of Feature:
	Keyword     string
	Name        string
	Description string
	Tags        []Tag
}

type Background struct {
	Line        int
	Keyword     string
	Name        string
	Description string
}

type Scenario struct {
	Line        int
	Keyword     string
	Name        string
	Description string
	Tags        []Tag
}

type ScenarioOutline struct {
	Line        int
	Keyword     string
	Name        string
	Description string
	Tags        []Tag
}

type Tag struct {
	Name string // e.g. "@smoke", "@ft:42"
	Line int
}

type Step struct {
	Line     int
	LastLine int // last line of the step including its argument
	Keyword  string // Given, When, Then, And, But, *
	Text     string
	Argument *StepArgument
}

type StepArgument struct {
	DocString *DocString
	DataTable *DataTable
}

type DocString struct {
	Line      int
	LastLine  int
	MediaType string
	Content   string
}

type DataTable struct {
	Rows []Row
}

type Row struct {
	Line  int
	Cells []string
}

type Examples struct {
	Line        int
	LastLine    int // last line of the header and description, not the table
	Keyword     string
	Name        string
	Description string
	Tags        []Tag
	Rows        []Row // header row first
}

type ParseError struct {
	URI     string
	Line    int
	Column  int
	Message string
}

func (e ParseError) Error() string {
	if e.URI == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.URI, e.Line, e.Column, e.Message)
}
