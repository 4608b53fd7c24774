package directive

import "strings"

// Kind is a directive recognized at the start of a reply line.
type Kind int

const (
	None Kind = iota
	Plan
	CodeUpdate
	SimulatingTest
	TestResult
	TaskComplete
	Error
)

type token struct {
	prefix string
	kind   Kind
}

// grammar maps line prefixes to directive kinds. Prefixes are matched
// case-sensitively against the trimmed line, first match wins.
var grammar = []token{
	{"PLAN:", Plan},
	{"CODE_UPDATE:", CodeUpdate},
	{"SIMULATING_TEST:", SimulatingTest},
	{"TEST_RESULT:", TestResult},
	{"TASK_COMPLETE", TaskComplete},
	{"ERROR:", Error},
}

// Classify returns the directive kind of a trimmed line and the trimmed
// remainder after its prefix. Lines that carry no directive return None and
// the line itself.
func Classify(line string) (Kind, string) {
	for _, t := range grammar {
		if strings.HasPrefix(line, t.prefix) {
			return t.kind, strings.TrimSpace(line[len(t.prefix):])
		}
	}
	return None, line
}

// Prefix returns the wire prefix of k.
func Prefix(k Kind) string {
	for _, t := range grammar {
		if t.kind == k {
			return t.prefix
		}
	}
	return ""
}

func (k Kind) String() string {
	switch k {
	case Plan:
		return "plan"
	case CodeUpdate:
		return "code_update"
	case SimulatingTest:
		return "simulating_test"
	case TestResult:
		return "test_result"
	case TaskComplete:
		return "task_complete"
	case Error:
		return "error"
	default:
		return "none"
	}
}
