// Package stparse implements a recursive-descent parser with an
// operator-precedence (Pratt) expression parser for IEC 61131-3
// Structured Text and Siemens SCL.
package stparse

import (
	"fmt"

	"github.com/radevgit/plceye/internal/limits"
	"github.com/radevgit/plceye/internal/span"
	"github.com/radevgit/plceye/internal/stast"
	"github.com/radevgit/plceye/internal/stlex"
)

// ErrorKind enumerates the distinct parse-error kinds.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	MissingEnd
	DuplicateVar
	BoundExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case MissingEnd:
		return "missing END_* keyword"
	case DuplicateVar:
		return "duplicate variable declaration"
	case BoundExceeded:
		return "resource bound exceeded"
	default:
		return "parse error"
	}
}

// Error is one recorded parse error.
type Error struct {
	Kind    ErrorKind
	Span    span.Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Span)
}

// Mode selects whether the parser fails on the first error or records it
// and synchronises to keep going.
type Mode int

const (
	Strict Mode = iota
	Recovery
)

// Result is the outcome of parsing one compilation unit: whatever
// declarations were built, plus any errors recorded in Recovery mode.
type Result struct {
	Unit   stast.CompilationUnit
	Errors []*Error
}

// Parser holds the token stream and recovery state for one parse call.
type Parser struct {
	src     string
	toks    []stlex.Token
	pos     int
	mode    Mode
	tracker *limits.Tracker
	errors  []*Error
}

// Parse tokenizes and parses src in the given mode, consulting
// tracker for every bound-checked operation. tracker must not be nil.
func Parse(src string, tracker *limits.Tracker, mode Mode) (Result, error) {
	if err := limits.CheckInputSize(tracker.Limits(), len(src)); err != nil {
		return Result{}, err
	}
	lx := stlex.New(src, tracker)
	var toks []stlex.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return Result{}, err
		}
		if tok.Kind == stlex.LineComment || tok.Kind == stlex.BlockComment {
			continue
		}
		toks = append(toks, tok)
		if tok.Kind == stlex.EOF {
			break
		}
	}
	p := &Parser{src: src, toks: toks, mode: mode, tracker: tracker}
	unit, err := p.parseCompilationUnit()
	if err != nil {
		return Result{}, err
	}
	return Result{Unit: unit, Errors: p.errors}, nil
}

// ParseExpression parses a single standalone expression, used by the
// cross-reference engine to mine identifiers out of graphical-body
// in/out variable text and SFC transition conditions.
func ParseExpression(src string, tracker *limits.Tracker) (*stast.Expression, error) {
	lx := stlex.New(src, tracker)
	var toks []stlex.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == stlex.LineComment || tok.Kind == stlex.BlockComment {
			continue
		}
		toks = append(toks, tok)
		if tok.Kind == stlex.EOF {
			break
		}
	}
	p := &Parser{src: src, toks: toks, mode: Strict, tracker: tracker}
	expr := p.parseExpr(0)
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return expr, nil
}

func (p *Parser) cur() stlex.Token  { return p.toks[p.pos] }
func (p *Parser) peekAt(n int) stlex.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) advance() stlex.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) atEOF() bool { return p.cur().Kind == stlex.EOF }

func (p *Parser) isKeyword(kw string) bool { return p.cur().Is(kw) }

func (p *Parser) expectKeyword(kw string) (stlex.Token, error) {
	if p.isKeyword(kw) {
		return p.advance(), nil
	}
	return stlex.Token{}, p.unexpected(fmt.Sprintf("expected %s", kw))
}

func (p *Parser) expectKind(k stlex.Kind, what string) (stlex.Token, error) {
	if p.cur().Kind == k {
		return p.advance(), nil
	}
	return stlex.Token{}, p.unexpected("expected " + what)
}

func (p *Parser) unexpected(msg string) *Error {
	return &Error{Kind: UnexpectedToken, Span: p.cur().Span, Message: msg + ", found " + p.cur().Kind.String()}
}

// record appends an error to the accumulated list. Callers in Strict mode
// return the error directly instead of calling record; ParseExpression
// and Recovery-mode statement/declaration parsing use record so parsing
// can continue.
func (p *Parser) record(err error) {
	e, ok := err.(*Error)
	if !ok {
		e = &Error{Kind: UnexpectedToken, Span: p.cur().Span, Message: err.Error()}
	}
	p.errors = append(p.errors, e)
}

// synchronize skips tokens until a statement terminator, an END_*
// keyword, or a top-level declaration keyword, guaranteeing forward
// progress even if none of those are found before EOF.
func (p *Parser) synchronize() {
	before := p.pos
	if p.atEOF() {
		return
	}
	// Always consume the token that caused the error before looking for a
	// resynchronisation point, so landing on an END_*/declaration keyword
	// immediately can never make zero progress.
	p.advance()
	for !p.atEOF() {
		if p.toks[p.pos-1].Kind == stlex.Semicolon {
			return
		}
		if p.cur().Kind == stlex.Keyword {
			text := p.cur().Text
			if len(text) >= 4 && text[:4] == "END_" {
				return
			}
			if isTopLevelKeyword(text) {
				return
			}
		}
		p.advance()
	}
	if p.pos == before {
		p.advance()
	}
}

func isTopLevelKeyword(kw string) bool {
	switch kw {
	case "FUNCTION", "FUNCTION_BLOCK", "PROGRAM", "DATA_BLOCK",
		"ORGANIZATION_BLOCK", "TYPE", "CLASS", "INTERFACE", "METHOD":
		return true
	default:
		return false
	}
}

func (p *Parser) enterDepth() error {
	if err := p.tracker.EnterDepth(); err != nil {
		return err
	}
	return nil
}

func (p *Parser) exitDepth() { p.tracker.ExitDepth() }
