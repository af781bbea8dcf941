// Package xref builds the cross-reference result that the smell rules
// operate on: every declared variable, every variable/POU reference
// actually used, and which POUs/routines carry no logic at all. It
// walks either an L5X controller tree directly (so RLL rung structure
// is available in full) or a vendor-neutral plcmodel.Project (for
// PLCopen sources, whose bodies decode cleanly into that shape).
package xref

import (
	"strings"

	"github.com/radevgit/plceye/internal/plcmodel"
	"github.com/radevgit/plceye/internal/span"
)

// VarDef is one declared variable, grounded on spec.md §4.5's
// "(scope = pou name, var name, class, declared type, span)" tuple.
// Span is the zero value when the declaration did not come from a
// parsed ST AST (e.g. an L5X Tag element, or a PLCopen <variable>,
// neither of which this module re-parses for source position).
type VarDef struct {
	Name     string
	Scope    string
	Class    plcmodel.VarClass
	DataType string
	Span     span.Span
}

// DiagnosticKind enumerates the semantic diagnostics the cross-reference
// walk itself raises, distinct from the smell rules that run afterward.
type DiagnosticKind int

const (
	DuplicateIdentifier DiagnosticKind = iota
)

// Diagnostic is one semantic finding raised while building the result.
type Diagnostic struct {
	Kind       DiagnosticKind
	Scope      string
	Identifier string
	Message    string
}

// Stats counts what the walk processed, exposed for the CLI's optional
// stats output (SPEC_FULL.md §5.1's supplemented parse-stats feature).
type Stats struct {
	PouCount        int
	RoutineCount    int
	RungCount       int
	STRoutineCount  int
	ParseErrorCount int
}

// CrossRefResult is the complete output of one project's cross-reference
// walk: C8 in SPEC_FULL.md's package map.
type CrossRefResult struct {
	SourceFormat string // "L5X" or "PLCopen"

	// CaseFold is true when identifier comparison must be
	// case-insensitive (vendor-A XML); false for the vendor-neutral
	// format, per spec.md §4.5's vendor-specific case-sensitivity rule.
	CaseFold bool

	Defined     []VarDef
	UsedVars    map[string]bool // normalized per CaseFold
	UsedPous    map[string]bool // normalized per CaseFold
	PouNames    map[string]bool // normalized per CaseFold
	EmptyPous   []string
	Diagnostics []Diagnostic
	Stats       Stats
}

func newResult(format string, caseFold bool) *CrossRefResult {
	return &CrossRefResult{
		SourceFormat: format,
		CaseFold:     caseFold,
		UsedVars:     make(map[string]bool),
		UsedPous:     make(map[string]bool),
		PouNames:     make(map[string]bool),
	}
}

// normalize applies the result's case-sensitivity rule to name.
func (r *CrossRefResult) normalize(name string) string {
	if r.CaseFold {
		return strings.ToUpper(name)
	}
	return name
}

func (r *CrossRefResult) addDefined(def VarDef) {
	r.Defined = append(r.Defined, def)
}

func (r *CrossRefResult) addUsedVar(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	r.UsedVars[r.normalize(name)] = true
}

func (r *CrossRefResult) addUsedPou(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	r.UsedPous[r.normalize(name)] = true
}

func (r *CrossRefResult) addPouName(name string) {
	r.PouNames[r.normalize(name)] = true
}

// UndefinedVariables returns the sorted set difference used_vars \
// defined_vars \ builtin_tags \ pou_names, per spec.md §4.5.
func (r *CrossRefResult) UndefinedVariables() []string {
	defined := make(map[string]bool, len(r.Defined))
	for _, d := range r.Defined {
		defined[r.normalize(d.Name)] = true
	}
	var out []string
	for name := range r.UsedVars {
		if defined[name] {
			continue
		}
		if r.PouNames[name] {
			continue
		}
		if IsBuiltinMnemonic(name) {
			continue
		}
		out = append(out, name)
	}
	return sortedCopy(out)
}

// UnusedVariables returns every declared variable whose normalized name
// never appears in UsedVars across the whole project.
func (r *CrossRefResult) UnusedVariables() []VarDef {
	var out []VarDef
	for _, d := range r.Defined {
		if !r.UsedVars[r.normalize(d.Name)] {
			out = append(out, d)
		}
	}
	return out
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	// insertion sort is fine here: identifier sets are small per project
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
