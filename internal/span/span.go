// Package span tracks byte-range source locations and turns them into
// human-readable line/column positions and caret-style diagnostics.
package span

import (
	"fmt"
	"strings"
)

// Span is a half-open byte range [Start, End) into a source buffer.
type Span struct {
	Start int
	End   int
}

// New creates a span covering [start, end).
func New(start, end int) Span {
	return Span{Start: start, End: end}
}

// At creates a single-byte span at position.
func At(position int) Span {
	return Span{Start: position, End: position + 1}
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Start >= s.End
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Text extracts the substring of source covered by the span, clamped to
// the source length.
func (s Span) Text(source string) string {
	end := s.End
	if end > len(source) {
		end = len(source)
	}
	start := s.Start
	if start > end {
		start = end
	}
	return source[start:end]
}

// String renders the span as "start..end", or just "start" when the span
// covers a single byte or less.
func (s Span) String() string {
	if s.Len() <= 1 {
		return fmt.Sprintf("%d", s.Start)
	}
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Position is a 1-based line/column location in source text.
type Position struct {
	Line   int
	Column int
}

// Resolve maps a byte offset to a 1-based line/column position.
func Resolve(source string, offset int) Position {
	if offset > len(source) {
		offset = len(source)
	}
	line := 1
	lineStart := 0
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return Position{Line: line, Column: offset - lineStart + 1}
}

// LineBounds returns the [start, end) byte range of the line containing
// offset, not including the trailing newline.
func LineBounds(source string, offset int) (start, end int) {
	if offset > len(source) {
		offset = len(source)
	}
	start = 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			start = i + 1
		}
	}
	end = len(source)
	if idx := strings.IndexByte(source[start:], '\n'); idx >= 0 {
		end = start + idx
	}
	return start, end
}

// Caret renders a source line with a caret indicator under span, in the
// style:
//
//	12 | x := 1 + ;
//	             ^
func Caret(source string, s Span) string {
	pos := Resolve(source, s.Start)
	lineStart, lineEnd := LineBounds(source, s.Start)
	lineText := source[lineStart:lineEnd]

	gutter := fmt.Sprintf("%d | ", pos.Line)
	var b strings.Builder
	b.WriteString(gutter)
	b.WriteString(lineText)
	b.WriteByte('\n')

	indicatorLen := s.Len()
	if indicatorLen < 1 {
		indicatorLen = 1
	}
	maxLen := len(lineText) - pos.Column + 1
	if maxLen < 1 {
		maxLen = 1
	}
	if indicatorLen > maxLen {
		indicatorLen = maxLen
	}

	b.WriteString(strings.Repeat(" ", len(gutter)+pos.Column-1))
	b.WriteString(strings.Repeat("^", indicatorLen))
	b.WriteByte('\n')
	return b.String()
}

// Spanned pairs a value with the span it was parsed from.
type Spanned[T any] struct {
	Node T
	Span Span
}
