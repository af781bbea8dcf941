// Package report defines the finding types the smell rules emit and the
// stable ordering and severity filtering applied before output.
package report

import (
	"fmt"
	"sort"
	"strings"
)

// Severity is the severity level of a detected finding, ordered Info <
// Warning < Error so numeric comparison gives severity-descending sort.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// ParseSeverity parses a severity level from its textual form, accepting
// the "warn"/"err" shorthands. It reports false for anything else.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "info":
		return Info, true
	case "warning", "warn":
		return Warning, true
	case "error", "err":
		return Error, true
	default:
		return Info, false
	}
}

// Kind is the kind of code smell a rule detected.
type Kind int

const (
	UnusedTag Kind = iota
	UndefinedTag
	EmptyBlock
)

func (k Kind) String() string {
	switch k {
	case UnusedTag:
		return "unused-tag"
	case UndefinedTag:
		return "undefined-tag"
	case EmptyBlock:
		return "empty-block"
	default:
		return "unknown"
	}
}

// Finding is a single detected code smell.
type Finding struct {
	Kind       Kind
	Severity   Severity
	Scope      string // e.g. "Program:Main", "Controller", a POU name
	Identifier string // the tag/routine/POU name involved
	Message    string
}

// String renders a Finding in the CLI's line format:
// "[<severity>] <kind>: <scope> - <message> (<identifier>)".
func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s - %s (%s)", f.Severity, f.Kind, f.Scope, f.Message, f.Identifier)
}

// Report accumulates findings for one analysed file.
type Report struct {
	Findings   []Finding
	SourceFile string
}

// New creates an empty report.
func New() *Report { return &Report{} }

// Add appends one finding.
func (r *Report) Add(f Finding) { r.Findings = append(r.Findings, f) }

// IsEmpty reports whether no findings were recorded.
func (r *Report) IsEmpty() bool { return len(r.Findings) == 0 }

// Len returns the total number of findings.
func (r *Report) Len() int { return len(r.Findings) }

// FilterBySeverity returns findings at or above min, in the report's
// stable order (call Sort first if ordering matters to the caller).
func (r *Report) FilterBySeverity(min Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity >= min {
			out = append(out, f)
		}
	}
	return out
}

// Sort orders findings by severity descending, then scope, then
// identifier, then kind, per spec.md §4.7. It is stable so findings that
// compare equal on all four keys keep their detection order.
func (r *Report) Sort() {
	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		if a.Scope != b.Scope {
			return a.Scope < b.Scope
		}
		if a.Identifier != b.Identifier {
			return a.Identifier < b.Identifier
		}
		return a.Kind < b.Kind
	})
}
