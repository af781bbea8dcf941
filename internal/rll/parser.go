package rll

import (
	"fmt"
	"strings"

	"github.com/radevgit/plceye/internal/limits"
	"github.com/radevgit/plceye/internal/span"
)

// ErrorKind enumerates the distinct rung-parse error kinds.
type ErrorKind int

const (
	UnclosedBracket ErrorKind = iota
	UnexpectedCharacter
	UnexpectedEnd
	BoundExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case UnclosedBracket:
		return "unclosed bracket"
	case UnexpectedCharacter:
		return "unexpected character"
	case UnexpectedEnd:
		return "unexpected end of rung text"
	case BoundExceeded:
		return "resource bound exceeded"
	default:
		return "rung parse error"
	}
}

// Error is a structured rung-parse error.
type Error struct {
	Kind ErrorKind
	Span span.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Kind, e.Span)
}

// Parse parses raw rung text into a Rung. Parsing never returns a Go
// error: any failure becomes Rung.Err, and Rung.RawText is always set,
// matching the spec's "exactly one of parsed_content or error" rule.
func Parse(text string, tracker *limits.Tracker) Rung {
	p := &parser{src: text, tracker: tracker}
	content, err := p.parseRung()
	if err != nil {
		return Rung{RawText: text, Err: err}
	}
	return Rung{RawText: text, ParsedContent: content}
}

type parser struct {
	src     string
	pos     int
	tracker *limits.Tracker
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) atEnd() bool { return p.pos >= len(p.src) }

func (p *parser) parseRung() (*RungContent, error) {
	elems, err := p.parseElements(func() bool { return !p.atEnd() && p.peek() == ';' })
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.atEnd() && p.peek() == ';' {
		p.pos++
	}
	p.skipSpace()
	if !p.atEnd() {
		return nil, &Error{Kind: UnexpectedCharacter, Span: span.At(p.pos)}
	}
	return &RungContent{Elements: elems}, nil
}

// parseElements parses element* until stop() reports true or input ends.
func (p *parser) parseElements(stop func() bool) ([]Element, error) {
	var elems []Element
	for {
		p.skipSpace()
		if p.atEnd() || stop() {
			return elems, nil
		}
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		if err := p.tracker.CheckCollectionSize(len(elems) + 1); err != nil {
			return nil, &Error{Kind: BoundExceeded, Span: el.Span}
		}
		elems = append(elems, el)
	}
}

func (p *parser) parseElement() (Element, error) {
	p.skipSpace()
	if p.atEnd() {
		return Element{}, &Error{Kind: UnexpectedEnd, Span: span.At(p.pos)}
	}
	if p.peek() == '[' {
		return p.parseParallel()
	}
	return p.parseInstruction()
}

func (p *parser) parseParallel() (Element, error) {
	start := p.pos
	if err := p.tracker.EnterDepth(); err != nil {
		return Element{}, &Error{Kind: BoundExceeded, Span: span.At(start)}
	}
	defer p.tracker.ExitDepth()

	p.pos++ // consume '['
	var branches [][]Element
	for {
		branch, err := p.parseElements(func() bool {
			return !p.atEnd() && (p.peek() == '|' || p.peek() == ']' || p.peek() == ';')
		})
		if err != nil {
			return Element{}, err
		}
		if err := p.tracker.CheckCollectionSize(len(branches) + 1); err != nil {
			return Element{}, &Error{Kind: BoundExceeded, Span: span.At(start)}
		}
		branches = append(branches, branch)
		if p.atEnd() || p.peek() == ';' {
			return Element{}, &Error{Kind: UnclosedBracket, Span: span.New(start, p.pos)}
		}
		if p.peek() == '|' {
			p.pos++
			continue
		}
		if p.peek() == ']' {
			p.pos++
			break
		}
	}
	return Element{Kind: ElemParallel, Span: span.New(start, p.pos), Branches: branches}, nil
}

func isMnemonicChar(b byte) bool {
	return b == '_' || b == ':' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (p *parser) parseInstruction() (Element, error) {
	start := p.pos
	for p.pos < len(p.src) && isMnemonicChar(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return Element{}, &Error{Kind: UnexpectedCharacter, Span: span.At(p.pos)}
	}
	mnemonic := p.src[start:p.pos]
	p.skipSpace()
	if p.atEnd() || p.peek() != '(' {
		return Element{}, &Error{Kind: UnexpectedCharacter, Span: span.At(p.pos)}
	}
	p.pos++ // consume '('

	if err := p.tracker.EnterDepth(); err != nil {
		return Element{}, &Error{Kind: BoundExceeded, Span: span.New(start, p.pos)}
	}
	defer p.tracker.ExitDepth()

	var operands []Operand
	p.skipSpace()
	if !p.atEnd() && p.peek() != ')' {
		for {
			p.skipSpace()
			op, err := p.parseOperand()
			if err != nil {
				return Element{}, err
			}
			if err := p.tracker.CheckCollectionSize(len(operands) + 1); err != nil {
				return Element{}, &Error{Kind: BoundExceeded, Span: op.Span}
			}
			operands = append(operands, op)
			p.skipSpace()
			if !p.atEnd() && p.peek() == ',' {
				p.pos++
				continue
			}
			break
		}
	}
	p.skipSpace()
	if p.atEnd() || p.peek() != ')' {
		return Element{}, &Error{Kind: UnclosedBracket, Span: span.New(start, p.pos)}
	}
	p.pos++ // consume ')'
	return Element{Kind: ElemInstruction, Span: span.New(start, p.pos), Mnemonic: mnemonic, Operands: operands}, nil
}

func (p *parser) parseOperand() (Operand, error) {
	start := p.pos
	if !p.atEnd() && p.peek() == '?' {
		nxt := p.pos + 1
		if nxt >= len(p.src) || isOperandTerminator(p.src[nxt]) {
			p.pos++
			return Operand{Kind: OperandInferred, Span: span.New(start, p.pos)}, nil
		}
	}
	text, err := p.parseBalancedText()
	if err != nil {
		return Operand{}, err
	}
	return Operand{Kind: OperandValue, Text: strings.TrimSpace(text), Span: span.New(start, p.pos)}, nil
}

func isOperandTerminator(b byte) bool {
	return b == ',' || b == ')' || b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// parseBalancedText scans operand_value: balanced text up to a top-level
// ',' or ')', where parentheses, brackets, and single-quoted strings
// nest and are not terminators while unbalanced.
func (p *parser) parseBalancedText() (string, error) {
	start := p.pos
	depthParen, depthBracket := 0, 0
	for !p.atEnd() {
		c := p.peek()
		switch {
		case c == '\'':
			p.pos++
			for !p.atEnd() && p.peek() != '\'' {
				p.pos++
			}
			if p.atEnd() {
				return "", &Error{Kind: UnclosedBracket, Span: span.New(start, p.pos)}
			}
			p.pos++ // consume closing quote
		case c == '(':
			depthParen++
			p.pos++
		case c == ')':
			if depthParen == 0 {
				return p.src[start:p.pos], nil
			}
			depthParen--
			p.pos++
		case c == '[':
			depthBracket++
			p.pos++
		case c == ']':
			if depthBracket > 0 {
				depthBracket--
			}
			p.pos++
		case c == ',':
			if depthParen == 0 && depthBracket == 0 {
				return p.src[start:p.pos], nil
			}
			p.pos++
		default:
			p.pos++
		}
	}
	if depthParen > 0 || depthBracket > 0 {
		return "", &Error{Kind: UnclosedBracket, Span: span.New(start, p.pos)}
	}
	return p.src[start:p.pos], nil
}
