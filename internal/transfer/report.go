package transfer

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Simouie/Project-Furnace/internal/document"
	"github.com/Simouie/Project-Furnace/internal/rules"
)

// State is the progress of one object through a run.
type State uint8

const (
	StateUnclassified State = iota
	StateClassified
	StatePartitioned
	StateTransferred
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnclassified:
		return "Unclassified"
	case StateClassified:
		return "Classified"
	case StatePartitioned:
		return "Partitioned"
	case StateTransferred:
		return "Transferred"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(s))
	}
}

// Outcome is the result for one object. Split objects get one outcome per
// resulting object, all sharing Source.
type Outcome struct {
	Object   document.ObjectID
	Source   document.ObjectID
	Name     string
	State    State
	Category rules.Category
	Writes   int
	Err      error
}

// Diagnostic codes.
const (
	CodeSkipped        = "skipped"
	CodeMalformedName  = "malformed-name"
	CodeFlagCollision  = "flag-collision"
	CodeUnstableSplit  = "unstable-split"
	CodeWriteFailure   = "write-failure"
	CodeSplitFailure   = "split-failure"
	CodeSceneWriteFail = "scene-write-failure"
)

// Severity of a Diagnostic.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is one message about the run.
type Diagnostic struct {
	Severity Severity
	Code     string
	Object   string
	Message  string
}

// String returns "[code] object: message".
func (d Diagnostic) String() string {
	if d.Object == "" {
		return fmt.Sprintf("[%s] %s", d.Code, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Code, d.Object, d.Message)
}

// Report collects everything a run did.
type Report struct {
	Outcomes    []Outcome
	Diagnostics []Diagnostic
	Failures    []*WriteFailure
}

func (r *Report) add(sev Severity, code, object, msg string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: sev, Code: code, Object: object, Message: msg})
}

// Warnings returns the warning diagnostics.
func (r *Report) Warnings() []Diagnostic {
	return r.filter(SeverityWarning)
}

// Infos returns the informational diagnostics.
func (r *Report) Infos() []Diagnostic {
	return r.filter(SeverityInfo)
}

func (r *Report) filter(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// Count returns how many outcomes ended in state s.
func (r *Report) Count(s State) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State == s {
			n++
		}
	}
	return n
}

// Outcome returns the outcome for object h.
func (r *Report) Outcome(h document.ObjectID) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Object == h {
			return o, true
		}
	}
	return Outcome{}, false
}

// Err combines every failure, or returns nil.
func (r *Report) Err() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, f)
	}
	return err
}
