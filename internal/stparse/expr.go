package stparse

import (
	"github.com/radevgit/plceye/internal/span"
	"github.com/radevgit/plceye/internal/stast"
	"github.com/radevgit/plceye/internal/stlex"
)

// precedence, weakest to strongest: OR < XOR < AND < comparison <
// additive < multiplicative < power (right-assoc, handled separately) <
// unary < postfix.
const (
	precNone = iota
	precOr
	precXor
	precAnd
	precCompare
	precAdditive
	precMultiplicative
	precPower
	precUnary
	precPostfix
)

func binOpFor(tok stlex.Token) (stast.BinaryOp, int, bool) {
	if tok.Kind == stlex.Keyword {
		switch tok.Text {
		case "OR":
			return stast.OpOr, precOr, true
		case "XOR":
			return stast.OpXor, precXor, true
		case "AND":
			return stast.OpAnd, precAnd, true
		case "MOD":
			return stast.OpMod, precMultiplicative, true
		}
		return 0, 0, false
	}
	switch tok.Kind {
	case stlex.Eq:
		return stast.OpEq, precCompare, true
	case stlex.NE:
		return stast.OpNe, precCompare, true
	case stlex.LT:
		return stast.OpLt, precCompare, true
	case stlex.GT:
		return stast.OpGt, precCompare, true
	case stlex.LE:
		return stast.OpLe, precCompare, true
	case stlex.GE:
		return stast.OpGe, precCompare, true
	case stlex.Plus:
		return stast.OpAdd, precAdditive, true
	case stlex.Minus:
		return stast.OpSub, precAdditive, true
	case stlex.Star:
		return stast.OpMul, precMultiplicative, true
	case stlex.Slash:
		return stast.OpDiv, precMultiplicative, true
	case stlex.Power:
		return stast.OpPow, precPower, true
	default:
		return 0, 0, false
	}
}

// parseExpr parses an expression whose operators bind at least as
// tightly as minPrec, using precedence climbing. Power is right-associative; every
// other binary operator is left-associative.
func (p *Parser) parseExpr(minPrec int) *stast.Expression {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		op, prec, ok := binOpFor(p.cur())
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		nextMin := prec + 1
		if op == stast.OpPow {
			nextMin = prec // right-associative: same precedence recurses
		}
		right := p.parseExpr(nextMin)
		if right == nil {
			p.record(p.unexpected("expected right operand"))
			return left
		}
		left = &stast.Expression{
			Kind:  stast.ExprBinary,
			Span:  left.Span.Merge(right.Span),
			BinOp: op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *Parser) parseUnary() *stast.Expression {
	start := p.cur()
	switch {
	case start.Kind == stlex.Minus:
		p.advance()
		operand := p.parseUnaryPrec()
		if operand == nil {
			return nil
		}
		return &stast.Expression{Kind: stast.ExprUnary, Span: start.Span.Merge(operand.Span), UnOp: stast.OpNeg, Operand: operand}
	case start.Kind == stlex.Plus:
		p.advance()
		operand := p.parseUnaryPrec()
		if operand == nil {
			return nil
		}
		return &stast.Expression{Kind: stast.ExprUnary, Span: start.Span.Merge(operand.Span), UnOp: stast.OpPos, Operand: operand}
	case start.Is("NOT"):
		p.advance()
		operand := p.parseUnaryPrec()
		if operand == nil {
			return nil
		}
		return &stast.Expression{Kind: stast.ExprUnary, Span: start.Span.Merge(operand.Span), UnOp: stast.OpNot, Operand: operand}
	default:
		return p.parsePostfix()
	}
}

// parseUnaryPrec parses the operand of a unary operator, which itself
// may be unary or a postfix/primary chain, never a looser binary form.
func (p *Parser) parseUnaryPrec() *stast.Expression {
	return p.parseUnary()
}

func (p *Parser) parsePostfix() *stast.Expression {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for {
		switch p.cur().Kind {
		case stlex.Dot:
			p.advance()
			fieldTok, err := p.expectKind(stlex.Ident, "field name")
			if err != nil {
				p.record(err)
				return expr
			}
			expr = &stast.Expression{Kind: stast.ExprMember, Span: expr.Span.Merge(fieldTok.Span), Base: expr, Field: fieldTok.Text}

		case stlex.LBracket:
			if err := p.enterDepth(); err != nil {
				p.record(&Error{Kind: BoundExceeded, Span: p.cur().Span, Message: err.Error()})
				return expr
			}
			p.advance()
			var idx []stast.Expression
			for {
				e := p.parseExpr(precOr)
				if e == nil {
					break
				}
				if err := p.tracker.CheckCollectionSize(len(idx) + 1); err != nil {
					p.record(&Error{Kind: BoundExceeded, Span: e.Span, Message: err.Error()})
					break
				}
				idx = append(idx, *e)
				if p.cur().Kind == stlex.Comma {
					p.advance()
					continue
				}
				break
			}
			end, err := p.expectKind(stlex.RBracket, "]")
			p.exitDepth()
			if err != nil {
				p.record(err)
				return expr
			}
			expr = &stast.Expression{Kind: stast.ExprIndex, Span: expr.Span.Merge(end.Span), Array: expr, Index: idx}

		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() *stast.Expression {
	tok := p.cur()
	switch tok.Kind {
	case stlex.IntLit:
		p.advance()
		return &stast.Expression{Kind: stast.ExprLiteralInt, Span: tok.Span, IntValue: tok.IntValue, IntSuffix: tok.IntSuffix}
	case stlex.RealLit:
		p.advance()
		return &stast.Expression{Kind: stast.ExprLiteralReal, Span: tok.Span, RealValue: tok.RealValue}
	case stlex.StringLit:
		p.advance()
		return &stast.Expression{Kind: stast.ExprLiteralString, Span: tok.Span, StringValue: tok.Text}
	case stlex.TimeLit:
		p.advance()
		return &stast.Expression{Kind: stast.ExprLiteralTime, Span: tok.Span, TimeNanos: tok.TimeNanos}
	case stlex.DateLit:
		p.advance()
		return &stast.Expression{Kind: stast.ExprLiteralDate, Span: tok.Span, Year: tok.Year, Month: tok.Month, Day: tok.Day}
	case stlex.TODLit:
		p.advance()
		return &stast.Expression{Kind: stast.ExprLiteralTOD, Span: tok.Span, Hour: tok.Hour, Minute: tok.Minute, Second: tok.Second, Nanosecond: tok.Nanosecond}
	case stlex.DateTimeLit:
		p.advance()
		return &stast.Expression{Kind: stast.ExprLiteralDateTime, Span: tok.Span,
			Year: tok.Year, Month: tok.Month, Day: tok.Day,
			Hour: tok.Hour, Minute: tok.Minute, Second: tok.Second, Nanosecond: tok.Nanosecond}
	case stlex.Keyword:
		if tok.Is("TRUE") {
			p.advance()
			return &stast.Expression{Kind: stast.ExprLiteralBool, Span: tok.Span, BoolValue: true}
		}
		if tok.Is("FALSE") {
			p.advance()
			return &stast.Expression{Kind: stast.ExprLiteralBool, Span: tok.Span, BoolValue: false}
		}
		p.record(p.unexpected("expected expression"))
		return nil
	case stlex.Ident:
		p.advance()
		if p.cur().Kind == stlex.LParen {
			return p.finishCall(tok)
		}
		return &stast.Expression{Kind: stast.ExprIdent, Span: tok.Span, Name: tok.Text}
	case stlex.LParen:
		p.advance()
		inner := p.parseExpr(precOr)
		end, err := p.expectKind(stlex.RParen, ")")
		if err != nil {
			p.record(err)
			if inner == nil {
				return nil
			}
			return inner
		}
		sp := tok.Span.Merge(end.Span)
		return &stast.Expression{Kind: stast.ExprParen, Span: sp, Inner: inner}
	default:
		p.record(p.unexpected("expected expression"))
		return nil
	}
}

func (p *Parser) finishCall(nameTok stlex.Token) *stast.Expression {
	p.advance() // consume '('
	if err := p.enterDepth(); err != nil {
		p.record(&Error{Kind: BoundExceeded, Span: nameTok.Span, Message: err.Error()})
		return &stast.Expression{Kind: stast.ExprIdent, Span: nameTok.Span, Name: nameTok.Text}
	}
	var args []stast.CallArg
	for p.cur().Kind != stlex.RParen && !p.atEOF() {
		argStart := p.cur().Span
		var argName string
		if p.cur().Kind == stlex.Ident && p.peekAt(1).Kind == stlex.Assign {
			argName = p.advance().Text
			p.advance() // ':='
		}
		val := p.parseExpr(precOr)
		if val == nil {
			break
		}
		if err := p.tracker.CheckCollectionSize(len(args) + 1); err != nil {
			p.record(&Error{Kind: BoundExceeded, Span: val.Span, Message: err.Error()})
			break
		}
		args = append(args, stast.CallArg{Name: argName, Value: *val, Span: argStart.Merge(val.Span)})
		if p.cur().Kind == stlex.Comma {
			p.advance()
			continue
		}
		break
	}
	end, err := p.expectKind(stlex.RParen, ")")
	p.exitDepth()
	if err != nil {
		p.record(err)
	}
	sp := nameTok.Span
	if err == nil {
		sp = sp.Merge(end.Span)
	}
	return &stast.Expression{Kind: stast.ExprCall, Span: sp, Name: nameTok.Text, Args: args}
}

// parseRange parses a `low..high` subrange used in array
// dimensions and Subrange type specs.
func (p *Parser) parseRange() (span.Span, stast.Expression, stast.Expression, error) {
	low := p.parseExpr(precOr)
	if low == nil {
		return span.Span{}, stast.Expression{}, stast.Expression{}, p.unexpected("expected range lower bound")
	}
	if _, err := p.expectKind(stlex.DotDot, ".."); err != nil {
		return span.Span{}, stast.Expression{}, stast.Expression{}, err
	}
	high := p.parseExpr(precOr)
	if high == nil {
		return span.Span{}, stast.Expression{}, stast.Expression{}, p.unexpected("expected range upper bound")
	}
	return low.Span.Merge(high.Span), *low, *high, nil
}
