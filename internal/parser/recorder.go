package parser

import "fmt"

type EventKind string

const (
	EventFeature         EventKind = "feature"
	EventBackground      EventKind = "background"
	EventScenario        EventKind = "scenario"
	EventScenarioOutline EventKind = "scenarioOutline"
	EventStep            EventKind = "step"
	EventExamples        EventKind = "examples"
	EventSyntaxError     EventKind = "syntaxError"
	EventEOF             EventKind = "eof"
)

// Event is a flattened copy of one Listener call.
type Event struct {
	Kind     EventKind
	Line     int
	LastLine int
	Keyword  string
	Name     string
	Rows     []int // examples row lines
	Err      *ParseError
}

func (e Event) String() string {
	switch e.Kind {
	case EventSyntaxError:
		return fmt.Sprintf("%s %s", e.Kind, e.Err.Error())
	case EventEOF:
		return string(e.Kind)
	case EventStep, EventExamples:
		return fmt.Sprintf("%s %d-%d %s %s", e.Kind, e.Line, e.LastLine, e.Keyword, e.Name)
	}
	return fmt.Sprintf("%s %d %s: %s", e.Kind, e.Line, e.Keyword, e.Name)
}

// Recorder is a Listener that keeps every event it receives in order.
type Recorder struct {
	Events []Event
}

// Record parses content and returns the events it produced.
func Record(uri string, content []byte) ([]Event, error) {
	r := &Recorder{}
	err := Parse(uri, content, r)
	return r.Events, err
}

func (r *Recorder) Feature(f Feature) {
	r.Events = append(r.Events, Event{Kind: EventFeature, Line: f.Line, Keyword: f.Keyword, Name: f.Name})
}

func (r *Recorder) Background(bg Background) {
	r.Events = append(r.Events, Event{Kind: EventBackground, Line: bg.Line, Keyword: bg.Keyword, Name: bg.Name})
}

func (r *Recorder) Scenario(sc Scenario) {
	r.Events = append(r.Events, Event{Kind: EventScenario, Line: sc.Line, Keyword: sc.Keyword, Name: sc.Name})
}

func (r *Recorder) ScenarioOutline(so ScenarioOutline) {
	r.Events = append(r.Events, Event{Kind: EventScenarioOutline, Line: so.Line, Keyword: so.Keyword, Name: so.Name})
}

func (r *Recorder) Step(s Step) {
	r.Events = append(r.Events, Event{Kind: EventStep, Line: s.Line, LastLine: s.LastLine, Keyword: s.Keyword, Name: s.Text})
}

func (r *Recorder) Examples(ex Examples) {
	var rows []int
	for _, row := range ex.Rows {
		rows = append(rows, row.Line)
	}
	r.Events = append(r.Events, Event{Kind: EventExamples, Line: ex.Line, LastLine: ex.LastLine, Keyword: ex.Keyword, Name: ex.Name, Rows: rows})
}

func (r *Recorder) SyntaxError(err ParseError) {
	r.Events = append(r.Events, Event{Kind: EventSyntaxError, Line: err.Line, Err: &err})
}

func (r *Recorder) EOF() {
	r.Events = append(r.Events, Event{Kind: EventEOF})
}
