package fold

type Kind int

const (
	KindFeature Kind = iota
	KindBackground
	KindScenario
	KindScenarioOutline
	KindExamples
	KindStep
)

var kindNames = map[Kind]string{
	KindFeature:         "feature",
	KindBackground:      "background",
	KindScenario:        "scenario",
	KindScenarioOutline: "scenarioOutline",
	KindExamples:        "examples",
	KindStep:            "step",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// IsContainer reports whether sections of this kind own nested content.
func (k Kind) IsContainer() bool {
	return k == KindFeature || k.IsStepContainer()
}

// IsStepContainer reports whether sections of this kind directly own steps.
func (k Kind) IsStepContainer() bool {
	return k == KindBackground || k == KindScenario || k == KindScenarioOutline
}

type Section struct {
	Kind    Kind
	Line    int // 1-based
	Keyword string
	Name    string
}

// Record is a section whose end line is filled in as later events arrive.
// EndLine is 1-based and inclusive; zero means it was never set.
type Record struct {
	Section
	EndLine int
}

func (r *Record) HasEnd() bool {
	return r.EndLine > 0
}

// LastLine is EndLine, or the start line when no end was ever assigned.
func (r *Record) LastLine() int {
	if r.HasEnd() {
		return r.EndLine
	}
	return r.Line
}
