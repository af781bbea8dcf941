package stparse

import (
	"github.com/radevgit/plceye/internal/stast"
	"github.com/radevgit/plceye/internal/stlex"
)

// parseStatementsUntilEnd parses statements until the next token is the
// given END_* keyword (left unconsumed for the caller) or EOF.
func (p *Parser) parseStatementsUntilEnd(endKeyword string) ([]stast.Statement, error) {
	return p.parseStatementsUntil(func() bool { return p.isKeyword(endKeyword) })
}

func (p *Parser) parseStatementsUntil(stop func() bool) ([]stast.Statement, error) {
	var stmts []stast.Statement
	for !stop() && !p.atEOF() {
		s, err := p.parseStatement()
		if err != nil {
			if p.mode == Strict {
				return nil, err
			}
			p.record(err)
			p.synchronize()
			continue
		}
		if err := p.tracker.RecordStatement(); err != nil {
			return nil, &Error{Kind: BoundExceeded, Span: s.Span, Message: err.Error()}
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (stast.Statement, error) {
	tok := p.cur()
	if tok.Kind == stlex.Keyword {
		switch tok.Text {
		case "IF":
			return p.parseIf()
		case "CASE":
			return p.parseCase()
		case "FOR":
			return p.parseFor()
		case "WHILE":
			return p.parseWhile()
		case "REPEAT":
			return p.parseRepeat()
		case "EXIT":
			p.advance()
			semi, err := p.expectKind(stlex.Semicolon, ";")
			if err != nil {
				return stast.Statement{}, err
			}
			return stast.Statement{Kind: stast.StmtExit, Span: tok.Span.Merge(semi.Span)}, nil
		case "CONTINUE":
			p.advance()
			semi, err := p.expectKind(stlex.Semicolon, ";")
			if err != nil {
				return stast.Statement{}, err
			}
			return stast.Statement{Kind: stast.StmtContinue, Span: tok.Span.Merge(semi.Span)}, nil
		case "RETURN":
			p.advance()
			var val *stast.Expression
			if p.cur().Kind != stlex.Semicolon {
				val = p.parseExpr(precOr)
			}
			semi, err := p.expectKind(stlex.Semicolon, ";")
			if err != nil {
				return stast.Statement{}, err
			}
			return stast.Statement{Kind: stast.StmtReturn, ReturnValue: val, Span: tok.Span.Merge(semi.Span)}, nil
		case "REGION":
			return p.parseRegion()
		}
	}
	return p.parseAssignmentOrCall()
}

func (p *Parser) parseIf() (stast.Statement, error) {
	start := p.advance() // IF
	if err := p.enterDepth(); err != nil {
		return stast.Statement{}, &Error{Kind: BoundExceeded, Span: start.Span, Message: err.Error()}
	}
	defer p.exitDepth()

	cond := p.parseExpr(precOr)
	if cond == nil {
		return stast.Statement{}, p.unexpected("expected condition")
	}
	if _, err := p.expectKeyword("THEN"); err != nil {
		return stast.Statement{}, err
	}
	then, err := p.parseStatementsUntil(func() bool {
		return p.isKeyword("ELSIF") || p.isKeyword("ELSE") || p.isKeyword("END_IF")
	})
	if err != nil {
		return stast.Statement{}, err
	}

	var elsifs []stast.ElsIf
	for p.isKeyword("ELSIF") {
		p.advance()
		ec := p.parseExpr(precOr)
		if ec == nil {
			return stast.Statement{}, p.unexpected("expected elsif condition")
		}
		if _, err := p.expectKeyword("THEN"); err != nil {
			return stast.Statement{}, err
		}
		eb, err := p.parseStatementsUntil(func() bool {
			return p.isKeyword("ELSIF") || p.isKeyword("ELSE") || p.isKeyword("END_IF")
		})
		if err != nil {
			return stast.Statement{}, err
		}
		if err := p.tracker.CheckCollectionSize(len(elsifs) + 1); err != nil {
			return stast.Statement{}, &Error{Kind: BoundExceeded, Span: ec.Span, Message: err.Error()}
		}
		elsifs = append(elsifs, stast.ElsIf{Cond: *ec, Then: eb})
	}

	var elseBody []stast.Statement
	if p.isKeyword("ELSE") {
		p.advance()
		elseBody, err = p.parseStatementsUntil(func() bool { return p.isKeyword("END_IF") })
		if err != nil {
			return stast.Statement{}, err
		}
	}
	end, err := p.expectKeyword("END_IF")
	if err != nil {
		return stast.Statement{}, &Error{Kind: MissingEnd, Span: start.Span, Message: "missing END_IF"}
	}
	return stast.Statement{Kind: stast.StmtIf, Cond: cond, Then: then, ElsIf: elsifs, Else: elseBody, Span: start.Span.Merge(end.Span)}, nil
}

func (p *Parser) parseCase() (stast.Statement, error) {
	start := p.advance() // CASE
	if err := p.enterDepth(); err != nil {
		return stast.Statement{}, &Error{Kind: BoundExceeded, Span: start.Span, Message: err.Error()}
	}
	defer p.exitDepth()

	scrutinee := p.parseExpr(precOr)
	if scrutinee == nil {
		return stast.Statement{}, p.unexpected("expected case selector")
	}
	if _, err := p.expectKeyword("OF"); err != nil {
		return stast.Statement{}, err
	}

	var arms []stast.CaseArm
	for !p.isKeyword("ELSE") && !p.isKeyword("END_CASE") && !p.atEOF() {
		armStart := p.cur().Span
		var labels []stast.CaseLabel
		for {
			lbl, err := p.parseCaseLabel()
			if err != nil {
				return stast.Statement{}, err
			}
			labels = append(labels, lbl)
			if p.cur().Kind == stlex.Comma {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expectKind(stlex.Colon, ":"); err != nil {
			return stast.Statement{}, err
		}
		body, err := p.parseStatementsUntil(func() bool {
			return p.atCaseLabel() || p.isKeyword("ELSE") || p.isKeyword("END_CASE")
		})
		if err != nil {
			return stast.Statement{}, err
		}
		if err := p.tracker.CheckCollectionSize(len(arms) + 1); err != nil {
			return stast.Statement{}, &Error{Kind: BoundExceeded, Span: armStart, Message: err.Error()}
		}
		arms = append(arms, stast.CaseArm{Labels: labels, Body: body, Span: armStart.Merge(p.cur().Span)})
	}

	var elseBody []stast.Statement
	if p.isKeyword("ELSE") {
		p.advance()
		var err error
		elseBody, err = p.parseStatementsUntil(func() bool { return p.isKeyword("END_CASE") })
		if err != nil {
			return stast.Statement{}, err
		}
	}
	end, err := p.expectKeyword("END_CASE")
	if err != nil {
		return stast.Statement{}, &Error{Kind: MissingEnd, Span: start.Span, Message: "missing END_CASE"}
	}
	return stast.Statement{Kind: stast.StmtCase, Scrutinee: scrutinee, Arms: arms, Else: elseBody, Span: start.Span.Merge(end.Span)}, nil
}

// atCaseLabel reports whether the parser sits at the start of a new CASE
// arm's label list rather than mid-body. A label list is a comma list of
// (literal|ident) or (literal|ident '..' literal|ident) terminated by
// ':'; bodies never contain a bare ':' outside that shape, so bounded
// lookahead (capped to stay linear even on adversarial input) resolves
// the ambiguity without backtracking the main parse.
func (p *Parser) atCaseLabel() bool {
	tok := p.cur()
	if tok.Kind != stlex.IntLit && tok.Kind != stlex.Ident {
		return false
	}
	const maxLookahead = 64
	i := 0
	for n := 0; n < maxLookahead; n++ {
		t := p.peekAt(i)
		if t.Kind != stlex.IntLit && t.Kind != stlex.Ident {
			return false
		}
		i++
		if p.peekAt(i).Kind == stlex.DotDot {
			i++
			t2 := p.peekAt(i)
			if t2.Kind != stlex.IntLit && t2.Kind != stlex.Ident {
				return false
			}
			i++
		}
		switch p.peekAt(i).Kind {
		case stlex.Colon:
			return true
		case stlex.Comma:
			i++
			continue
		default:
			return false
		}
	}
	return false
}

func (p *Parser) parseCaseLabel() (stast.CaseLabel, error) {
	low := p.parseExpr(precOr)
	if low == nil {
		return stast.CaseLabel{}, p.unexpected("expected case label")
	}
	if p.cur().Kind == stlex.DotDot {
		p.advance()
		high := p.parseExpr(precOr)
		if high == nil {
			return stast.CaseLabel{}, p.unexpected("expected case range upper bound")
		}
		return stast.CaseLabel{Low: low, High: high}, nil
	}
	return stast.CaseLabel{Value: low}, nil
}

func (p *Parser) parseFor() (stast.Statement, error) {
	start := p.advance() // FOR
	if err := p.enterDepth(); err != nil {
		return stast.Statement{}, &Error{Kind: BoundExceeded, Span: start.Span, Message: err.Error()}
	}
	defer p.exitDepth()

	ind, err := p.expectKind(stlex.Ident, "loop variable")
	if err != nil {
		return stast.Statement{}, err
	}
	if _, err := p.expectKind(stlex.Assign, ":="); err != nil {
		return stast.Statement{}, err
	}
	from := p.parseExpr(precOr)
	if from == nil {
		return stast.Statement{}, p.unexpected("expected loop start value")
	}
	if _, err := p.expectKeyword("TO"); err != nil {
		return stast.Statement{}, err
	}
	to := p.parseExpr(precOr)
	if to == nil {
		return stast.Statement{}, p.unexpected("expected loop end value")
	}
	var by *stast.Expression
	if p.isKeyword("BY") {
		p.advance()
		by = p.parseExpr(precOr)
		if by == nil {
			return stast.Statement{}, p.unexpected("expected loop step value")
		}
	}
	if _, err := p.expectKeyword("DO"); err != nil {
		return stast.Statement{}, err
	}
	body, err := p.parseStatementsUntilEnd("END_FOR")
	if err != nil {
		return stast.Statement{}, err
	}
	end, err := p.expectKeyword("END_FOR")
	if err != nil {
		return stast.Statement{}, &Error{Kind: MissingEnd, Span: start.Span, Message: "missing END_FOR"}
	}
	return stast.Statement{Kind: stast.StmtFor, IndVar: ind.Text, From: from, To: to, By: by, Body: body, Span: start.Span.Merge(end.Span)}, nil
}

func (p *Parser) parseWhile() (stast.Statement, error) {
	start := p.advance() // WHILE
	if err := p.enterDepth(); err != nil {
		return stast.Statement{}, &Error{Kind: BoundExceeded, Span: start.Span, Message: err.Error()}
	}
	defer p.exitDepth()

	cond := p.parseExpr(precOr)
	if cond == nil {
		return stast.Statement{}, p.unexpected("expected loop condition")
	}
	if _, err := p.expectKeyword("DO"); err != nil {
		return stast.Statement{}, err
	}
	body, err := p.parseStatementsUntilEnd("END_WHILE")
	if err != nil {
		return stast.Statement{}, err
	}
	end, err := p.expectKeyword("END_WHILE")
	if err != nil {
		return stast.Statement{}, &Error{Kind: MissingEnd, Span: start.Span, Message: "missing END_WHILE"}
	}
	return stast.Statement{Kind: stast.StmtWhile, Cond: cond, Body: body, Span: start.Span.Merge(end.Span)}, nil
}

func (p *Parser) parseRepeat() (stast.Statement, error) {
	start := p.advance() // REPEAT
	if err := p.enterDepth(); err != nil {
		return stast.Statement{}, &Error{Kind: BoundExceeded, Span: start.Span, Message: err.Error()}
	}
	defer p.exitDepth()

	body, err := p.parseStatementsUntil(func() bool { return p.isKeyword("UNTIL") })
	if err != nil {
		return stast.Statement{}, err
	}
	if _, err := p.expectKeyword("UNTIL"); err != nil {
		return stast.Statement{}, err
	}
	cond := p.parseExpr(precOr)
	if cond == nil {
		return stast.Statement{}, p.unexpected("expected repeat-until condition")
	}
	end, err := p.expectKeyword("END_REPEAT")
	if err != nil {
		return stast.Statement{}, &Error{Kind: MissingEnd, Span: start.Span, Message: "missing END_REPEAT"}
	}
	return stast.Statement{Kind: stast.StmtRepeat, Body: body, Cond: cond, Span: start.Span.Merge(end.Span)}, nil
}

func (p *Parser) parseRegion() (stast.Statement, error) {
	start := p.advance() // REGION
	name := ""
	if p.cur().Kind == stlex.Ident {
		name = p.advance().Text
	}
	body, err := p.parseStatementsUntilEnd("END_REGION")
	if err != nil {
		return stast.Statement{}, err
	}
	end, err := p.expectKeyword("END_REGION")
	if err != nil {
		return stast.Statement{}, &Error{Kind: MissingEnd, Span: start.Span, Message: "missing END_REGION"}
	}
	return stast.Statement{Kind: stast.StmtRegion, RegionName: name, Body: body, Span: start.Span.Merge(end.Span)}, nil
}

// parseAssignmentOrCall parses a bare expression statement, which is
// either a Call (bare function/FB invocation) or an Assignment (followed
// by ':=' or '?=' for an edge-triggered nullable assignment).
func (p *Parser) parseAssignmentOrCall() (stast.Statement, error) {
	expr := p.parseExpr(precOr)
	if expr == nil {
		return stast.Statement{}, p.unexpected("expected statement")
	}

	switch p.cur().Kind {
	case stlex.Assign:
		p.advance()
		val := p.parseExpr(precOr)
		if val == nil {
			return stast.Statement{}, p.unexpected("expected assignment value")
		}
		semi, err := p.expectKind(stlex.Semicolon, ";")
		if err != nil {
			return stast.Statement{}, err
		}
		return stast.Statement{Kind: stast.StmtAssignment, Target: expr, Value: val, Span: expr.Span.Merge(semi.Span)}, nil

	case stlex.EdgeAssign:
		p.advance()
		val := p.parseExpr(precOr)
		if val == nil {
			return stast.Statement{}, p.unexpected("expected assignment value")
		}
		semi, err := p.expectKind(stlex.Semicolon, ";")
		if err != nil {
			return stast.Statement{}, err
		}
		return stast.Statement{Kind: stast.StmtNullableAssignment, Target: expr, Value: val, Span: expr.Span.Merge(semi.Span)}, nil

	default:
		semi, err := p.expectKind(stlex.Semicolon, ";")
		if err != nil {
			return stast.Statement{}, err
		}
		if expr.Kind == stast.ExprCall || expr.Kind == stast.ExprIdent {
			return stast.Statement{Kind: stast.StmtCall, CalleeName: expr.Name, Args: expr.Args, Span: expr.Span.Merge(semi.Span)}, nil
		}
		return stast.Statement{}, &Error{Kind: UnexpectedToken, Span: expr.Span, Message: "expected assignment or call"}
	}
}
