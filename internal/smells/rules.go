// Package smells implements the three cross-reference smell rules —
// unused-tag, undefined-tag, empty-block — as pure functions from an
// xref.CrossRefResult and its rule config to a list of report.Finding,
// grounded on plceye's rules/undefined_tags.rs, rules/empty_routines.rs,
// smells/unused_tags.rs and smells/model_smells.rs.
package smells

import (
	"fmt"

	"github.com/radevgit/plceye/internal/config"
	"github.com/radevgit/plceye/internal/report"
	"github.com/radevgit/plceye/internal/xref"
)

// Detect runs every enabled rule against r and returns a sorted report.
func Detect(r *xref.CrossRefResult, cfg config.RuleConfig) *report.Report {
	rep := report.New()
	if cfg.UnusedTags.Enabled {
		for _, f := range UnusedTags(r, cfg.UnusedTags) {
			rep.Add(f)
		}
	}
	if cfg.UndefinedTags.Enabled {
		for _, f := range UndefinedTags(r, cfg.UndefinedTags) {
			rep.Add(f)
		}
	}
	if cfg.EmptyRoutines.Enabled {
		for _, f := range EmptyBlocks(r, cfg.EmptyRoutines) {
			rep.Add(f)
		}
	}
	rep.Sort()
	return rep
}

// UnusedTags flags every declared variable never seen in UsedVars,
// skipping names matching an ignore pattern or declared in an ignored
// scope. Severity follows the source format: Warning for the vendor-A
// L5X path (case-insensitive matching hides more false negatives, so a
// real unused tag is worth flagging harder), Info for the
// vendor-neutral PLCopen path, matching plceye's own Severity::Info
// baseline for its exact-match PLCopen detector.
func UnusedTags(r *xref.CrossRefResult, cfg config.UnusedTagsConfig) []report.Finding {
	sev := report.Info
	if r.SourceFormat == "L5X" {
		sev = report.Warning
	}

	var out []report.Finding
	for _, def := range r.UnusedVariables() {
		if matchAny(cfg.IgnorePatterns, def.Name) {
			continue
		}
		if containsScope(cfg.IgnoreScopes, def.Scope) {
			continue
		}
		out = append(out, report.Finding{
			Kind:       report.UnusedTag,
			Severity:   sev,
			Scope:      def.Scope,
			Identifier: def.Name,
			Message:    fmt.Sprintf("Tag '%s' is defined but never used", def.Name),
		})
	}
	return out
}

// UndefinedTags flags every name in used_vars \ defined_vars \
// pou_names \ builtins, skipping names matching an ignore pattern —
// typically used to allow-list module I/O references such as
// "Local:*" that never appear as a declared tag.
func UndefinedTags(r *xref.CrossRefResult, cfg config.UndefinedTagsConfig) []report.Finding {
	var out []report.Finding
	for _, name := range r.UndefinedVariables() {
		if matchAny(cfg.IgnorePatterns, name) {
			continue
		}
		out = append(out, report.Finding{
			Kind:       report.UndefinedTag,
			Severity:   report.Warning,
			Scope:      r.SourceFormat,
			Identifier: name,
			Message:    fmt.Sprintf("Tag '%s' is referenced but not defined (may be alias or I/O)", name),
		})
	}
	return out
}

// EmptyBlocks flags every POU recorded in EmptyPous, skipping names
// matching an ignore pattern (e.g. intentionally-blank placeholder
// routines).
func EmptyBlocks(r *xref.CrossRefResult, cfg config.EmptyRoutinesConfig) []report.Finding {
	var out []report.Finding
	for _, name := range r.EmptyPous {
		if matchAny(cfg.IgnorePatterns, name) {
			continue
		}
		out = append(out, report.Finding{
			Kind:       report.EmptyBlock,
			Severity:   report.Info,
			Scope:      r.SourceFormat,
			Identifier: name,
			Message:    fmt.Sprintf("POU '%s' appears to be empty", name),
		})
	}
	return out
}

func containsScope(scopes []string, scope string) bool {
	for _, s := range scopes {
		if s == scope {
			return true
		}
	}
	return false
}
