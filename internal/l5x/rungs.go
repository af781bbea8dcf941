package l5x

import (
	"fmt"

	"github.com/radevgit/plceye/internal/limits"
	"github.com/radevgit/plceye/internal/rll"
)

// RungLocation pins a rung to its position within a project: the
// program it belongs to, the routine within that program, and the
// rung's own number.
type RungLocation struct {
	Program    string
	Routine    string
	RungNumber uint32
}

// Path formats a location as "Program/Routine/Rung#N", used in
// diagnostic and report output.
func (l RungLocation) Path() string {
	return fmt.Sprintf("%s/%s/Rung#%d", l.Program, l.Routine, l.RungNumber)
}

// LocatedRung is a parsed rung together with where it sits in the
// project, so cross-reference findings can be traced back to a source
// location.
type LocatedRung struct {
	Location RungLocation
	Parsed   rll.Rung
}

// HasError reports whether this rung failed to parse.
func (lr *LocatedRung) HasError() bool { return lr.Parsed.Err != nil }

// AllRungs walks every Program/Routine/RLLContent in the controller,
// parsing each rung's raw text with a fresh tracker-scoped call into
// internal/rll, and returns every rung with its project location
// attached. A routine's AOI counterpart is covered the same way via
// AllAoiRungs, since AOI logic routines are not nested under Programs.
func (c *Controller) AllRungs(tracker *limits.Tracker) []LocatedRung {
	var out []LocatedRung
	for _, prog := range c.Programs {
		for _, routine := range prog.Routines {
			if routine.RLLContent == nil {
				continue
			}
			for _, r := range routine.RLLContent.Rungs {
				out = append(out, LocatedRung{
					Location: RungLocation{Program: prog.Name, Routine: routine.Name, RungNumber: r.NumberInt()},
					Parsed:   rll.Parse(r.Text, tracker),
				})
			}
		}
	}
	return out
}

// AllAoiRungs parses every rung inside every AddOnInstructionDefinition's
// routines, locating them under a synthetic program name so they remain
// distinguishable from ordinary program rungs in a report.
func (c *Controller) AllAoiRungs(tracker *limits.Tracker) []LocatedRung {
	var out []LocatedRung
	for _, aoi := range c.AddOnInstructionDefinitions {
		for _, routine := range aoi.Routines {
			if routine.RLLContent == nil {
				continue
			}
			for _, r := range routine.RLLContent.Rungs {
				out = append(out, LocatedRung{
					Location: RungLocation{Program: "AOI:" + aoi.Name, Routine: routine.Name, RungNumber: r.NumberInt()},
					Parsed:   rll.Parse(r.Text, tracker),
				})
			}
		}
	}
	return out
}
