package stparse

import (
	"github.com/radevgit/plceye/internal/stast"
	"github.com/radevgit/plceye/internal/stlex"
)

var declKeywords = map[string]stast.DeclKind{
	"FUNCTION":           stast.DeclFunction,
	"FUNCTION_BLOCK":     stast.DeclFunctionBlock,
	"PROGRAM":            stast.DeclProgram,
	"DATA_BLOCK":         stast.DeclDataBlock,
	"TYPE":               stast.DeclType,
	"CLASS":              stast.DeclClass,
	"INTERFACE":          stast.DeclInterface,
	"METHOD":             stast.DeclMethod,
	"ORGANIZATION_BLOCK": stast.DeclOrganizationBlock,
}

var declEndKeyword = map[stast.DeclKind]string{
	stast.DeclFunction:          "END_FUNCTION",
	stast.DeclFunctionBlock:     "END_FUNCTION_BLOCK",
	stast.DeclProgram:           "END_PROGRAM",
	stast.DeclDataBlock:         "END_DATA_BLOCK",
	stast.DeclType:              "END_TYPE",
	stast.DeclClass:             "END_CLASS",
	stast.DeclInterface:         "END_INTERFACE",
	stast.DeclMethod:            "END_METHOD",
	stast.DeclOrganizationBlock: "END_ORGANIZATION_BLOCK",
}

func (p *Parser) parseCompilationUnit() (stast.CompilationUnit, error) {
	start := p.cur().Span
	var decls []stast.Declaration
	for !p.atEOF() {
		d, err := p.parseDeclaration()
		if err != nil {
			if p.mode == Strict {
				return stast.CompilationUnit{}, err
			}
			p.record(err)
			p.synchronize()
			continue
		}
		decls = append(decls, d)
	}
	end := p.cur().Span
	return stast.CompilationUnit{Declarations: decls, Span: start.Merge(end)}, nil
}

func (p *Parser) parseDeclaration() (stast.Declaration, error) {
	if p.cur().Kind != stlex.Keyword {
		return stast.Declaration{}, p.unexpected("expected a top-level declaration")
	}
	kind, ok := declKeywords[p.cur().Text]
	if !ok {
		return stast.Declaration{}, p.unexpected("expected a top-level declaration")
	}
	startTok := p.advance()

	nameTok, err := p.expectKind(stlex.Ident, "declaration name")
	if err != nil {
		return stast.Declaration{}, err
	}
	d := stast.Declaration{Kind: kind, Name: nameTok.Text}

	if p.cur().Kind == stlex.Colon && kind != stast.DeclType {
		p.advance()
		ts, err := p.parseTypeSpec()
		if err != nil {
			return stast.Declaration{}, err
		}
		d.ReturnType = ts
	}

	if p.isKeyword("EXTENDS") {
		p.advance()
		for {
			n, err := p.expectKind(stlex.Ident, "base name")
			if err != nil {
				return stast.Declaration{}, err
			}
			d.Extends = append(d.Extends, n.Text)
			if p.cur().Kind == stlex.Comma {
				p.advance()
				continue
			}
			break
		}
	}
	if p.isKeyword("IMPLEMENTS") {
		p.advance()
		for {
			n, err := p.expectKind(stlex.Ident, "interface name")
			if err != nil {
				return stast.Declaration{}, err
			}
			d.Implements = append(d.Implements, n.Text)
			if p.cur().Kind == stlex.Comma {
				p.advance()
				continue
			}
			break
		}
	}

	if kind == stast.DeclType {
		if _, err := p.expectKind(stlex.Colon, ":"); err != nil {
			return stast.Declaration{}, err
		}
		ts, err := p.parseTypeSpec()
		if err != nil {
			return stast.Declaration{}, err
		}
		d.TypeDef = ts
		if _, err := p.expectKind(stlex.Semicolon, ";"); err != nil {
			return stast.Declaration{}, err
		}
	} else {
		seen := make(map[string]bool)
		for isVarSectionStart(p.cur()) {
			vs, err := p.parseVarSection()
			if err != nil {
				return stast.Declaration{}, err
			}
			if err := checkDuplicateNames(vs, seen); err != nil {
				p.record(err)
			}
			d.VarSections = append(d.VarSections, vs)
		}
		if p.isKeyword("BEGIN") {
			p.advance()
		}
		body, err := p.parseStatementsUntilEnd(declEndKeyword[kind])
		if err != nil {
			return stast.Declaration{}, err
		}
		d.Body = body
	}

	endTok, err := p.expectKeyword(declEndKeyword[kind])
	if err != nil {
		return stast.Declaration{}, &Error{Kind: MissingEnd, Span: startTok.Span, Message: "missing " + declEndKeyword[kind]}
	}
	d.Span = startTok.Span.Merge(endTok.Span)
	return d, nil
}

// checkDuplicateNames flags a name already recorded in seen — shared
// across every VarSection of one declaration's interface, so a name
// repeated across e.g. VAR_INPUT and VAR_OUTPUT is caught too, not just
// a repeat within a single section.
func checkDuplicateNames(vs stast.VarSection, seen map[string]bool) *Error {
	for _, d := range vs.Decls {
		key := d.Name
		if seen[key] {
			return &Error{Kind: DuplicateVar, Span: d.Span, Message: "duplicate variable " + d.Name}
		}
		seen[key] = true
	}
	return nil
}

var varSectionKeywords = map[string]stast.VarSectionClass{
	"VAR_INPUT":    stast.VarInput,
	"VAR_OUTPUT":   stast.VarOutput,
	"VAR_IN_OUT":   stast.VarInOut,
	"VAR_TEMP":     stast.VarTemp,
	"VAR":          stast.VarLocal,
	"VAR_GLOBAL":   stast.VarGlobal,
	"VAR_EXTERNAL": stast.VarExternal,
}

func isVarSectionStart(tok stlex.Token) bool {
	if tok.Kind != stlex.Keyword {
		return false
	}
	_, ok := varSectionKeywords[tok.Text]
	return ok
}

func (p *Parser) parseVarSection() (stast.VarSection, error) {
	startTok := p.advance()
	class := varSectionKeywords[startTok.Text]
	constant := false
	retainSection := false
	for p.isKeyword("CONSTANT") || p.isKeyword("RETAIN") {
		if p.isKeyword("CONSTANT") {
			constant = true
		} else {
			retainSection = true
		}
		p.advance()
	}
	if constant {
		class = stast.VarConstant
	}

	var decls []stast.VarDecl
	for !p.isKeyword("END_VAR") && !p.atEOF() {
		vd, err := p.parseVarDecl()
		if err != nil {
			return stast.VarSection{}, err
		}
		if retainSection {
			vd.Retain = true
		}
		if err := p.tracker.CheckCollectionSize(len(decls) + 1); err != nil {
			return stast.VarSection{}, &Error{Kind: BoundExceeded, Span: vd.Span, Message: err.Error()}
		}
		decls = append(decls, vd)
	}
	endTok, err := p.expectKeyword("END_VAR")
	if err != nil {
		return stast.VarSection{}, err
	}
	return stast.VarSection{Class: class, Decls: decls, Span: startTok.Span.Merge(endTok.Span)}, nil
}

func (p *Parser) parseVarDecl() (stast.VarDecl, error) {
	nameTok, err := p.expectKind(stlex.Ident, "variable name")
	if err != nil {
		return stast.VarDecl{}, err
	}
	vd := stast.VarDecl{Name: nameTok.Text, Span: nameTok.Span}

	if p.isKeyword("AT") {
		p.advance()
		addrTok, err := p.expectKind(stlex.Ident, "address")
		if err != nil {
			return stast.VarDecl{}, err
		}
		vd.Address = addrTok.Text
	}
	if _, err := p.expectKind(stlex.Colon, ":"); err != nil {
		return stast.VarDecl{}, err
	}
	if p.isKeyword("RETAIN") {
		p.advance()
		vd.Retain = true
	}
	ts, err := p.parseTypeSpec()
	if err != nil {
		return stast.VarDecl{}, err
	}
	vd.Type = *ts

	if p.cur().Kind == stlex.Assign {
		p.advance()
		val := p.parseExpr(precOr)
		if val == nil {
			return stast.VarDecl{}, p.unexpected("expected initial value")
		}
		vd.Init = val
		vd.Span = vd.Span.Merge(val.Span)
	}
	end, err := p.expectKind(stlex.Semicolon, ";")
	if err != nil {
		return stast.VarDecl{}, err
	}
	vd.Span = vd.Span.Merge(end.Span)
	return vd, nil
}

func (p *Parser) parseTypeSpec() (*stast.TypeSpec, error) {
	if err := p.enterDepth(); err != nil {
		return nil, &Error{Kind: BoundExceeded, Span: p.cur().Span, Message: err.Error()}
	}
	defer p.exitDepth()

	start := p.cur()
	switch {
	case start.Is("ARRAY"):
		return p.parseArrayType(start)
	case start.Is("STRING"):
		return p.parseStringType(start, stast.TypeString)
	case start.Is("WSTRING"):
		return p.parseStringType(start, stast.TypeWString)
	case start.Is("STRUCT"):
		return p.parseStructType(start)
	case start.Is("POINTER"):
		p.advance()
		if _, err := p.expectKeyword("TO"); err != nil {
			return nil, err
		}
		inner, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		return &stast.TypeSpec{Kind: stast.TypePointer, PointeeType: inner, Span: start.Span.Merge(inner.Span)}, nil
	case start.Is("REF_TO"):
		p.advance()
		inner, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		return &stast.TypeSpec{Kind: stast.TypeRef, PointeeType: inner, Span: start.Span.Merge(inner.Span)}, nil
	case start.Kind == stlex.LParen:
		return p.parseEnumType(start)
	default:
		nameTok, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		base := &stast.TypeSpec{Kind: stast.TypeSimple, Name: nameTok.Text, Span: nameTok.Span}
		if p.cur().Kind == stlex.DotDot {
			// Rare inline subrange with implicit base omitted is not valid
			// grammar here; subranges always spell INT (low..high).
			return base, nil
		}
		if p.cur().Kind == stlex.LParen && isSubrangeBase(nameTok.Text) {
			p.advance()
			_, low, high, err := p.parseRange()
			if err != nil {
				return nil, err
			}
			end, err := p.expectKind(stlex.RParen, ")")
			if err != nil {
				return nil, err
			}
			return &stast.TypeSpec{Kind: stast.TypeSubrange, Base: nameTok.Text, Low: &low, High: &high, Span: nameTok.Span.Merge(end.Span)}, nil
		}
		return base, nil
	}
}

func isSubrangeBase(name string) bool {
	switch name {
	case "INT", "DINT", "SINT", "LINT", "UINT", "UDINT", "USINT", "ULINT":
		return true
	default:
		return false
	}
}

// expectIdentLike accepts either a plain identifier or a reserved
// elementary-type keyword (INT, BOOL, REAL, ...) as a type name.
func (p *Parser) expectIdentLike() (stlex.Token, error) {
	if p.cur().Kind == stlex.Ident || p.cur().Kind == stlex.Keyword {
		return p.advance(), nil
	}
	return stlex.Token{}, p.unexpected("expected type name")
}

func (p *Parser) parseArrayType(start stlex.Token) (*stast.TypeSpec, error) {
	p.advance()
	if _, err := p.expectKind(stlex.LBracket, "["); err != nil {
		return nil, err
	}
	var ranges []stast.Range
	for {
		_, low, high, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		if err := p.tracker.CheckCollectionSize(len(ranges) + 1); err != nil {
			return nil, &Error{Kind: BoundExceeded, Span: start.Span, Message: err.Error()}
		}
		ranges = append(ranges, stast.Range{Low: low, High: high})
		if p.cur().Kind == stlex.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectKind(stlex.RBracket, "]"); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("OF"); err != nil {
		return nil, err
	}
	elem, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	return &stast.TypeSpec{Kind: stast.TypeArray, ElementType: elem, Ranges: ranges, Span: start.Span.Merge(elem.Span)}, nil
}

func (p *Parser) parseStringType(start stlex.Token, kind stast.TypeSpecKind) (*stast.TypeSpec, error) {
	p.advance()
	sp := start.Span
	var maxLen *stast.Expression
	if p.cur().Kind == stlex.LBracket {
		p.advance()
		e := p.parseExpr(precOr)
		if e == nil {
			return nil, p.unexpected("expected string length")
		}
		maxLen = e
		end, err := p.expectKind(stlex.RBracket, "]")
		if err != nil {
			return nil, err
		}
		sp = sp.Merge(end.Span)
	}
	return &stast.TypeSpec{Kind: kind, MaxLength: maxLen, Span: sp}, nil
}

func (p *Parser) parseStructType(start stlex.Token) (*stast.TypeSpec, error) {
	p.advance()
	var fields []stast.VarDecl
	for !p.isKeyword("END_STRUCT") && !p.atEOF() {
		f, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		if err := p.tracker.CheckCollectionSize(len(fields) + 1); err != nil {
			return nil, &Error{Kind: BoundExceeded, Span: f.Span, Message: err.Error()}
		}
		fields = append(fields, f)
	}
	end, err := p.expectKeyword("END_STRUCT")
	if err != nil {
		return nil, err
	}
	return &stast.TypeSpec{Kind: stast.TypeStruct, Fields: fields, Span: start.Span.Merge(end.Span)}, nil
}

func (p *Parser) parseEnumType(start stlex.Token) (*stast.TypeSpec, error) {
	p.advance()
	var members []string
	for {
		m, err := p.expectKind(stlex.Ident, "enum member")
		if err != nil {
			return nil, err
		}
		if err := p.tracker.CheckCollectionSize(len(members) + 1); err != nil {
			return nil, &Error{Kind: BoundExceeded, Span: m.Span, Message: err.Error()}
		}
		members = append(members, m.Text)
		if p.cur().Kind == stlex.Comma {
			p.advance()
			continue
		}
		break
	}
	end, err := p.expectKind(stlex.RParen, ")")
	if err != nil {
		return nil, err
	}
	return &stast.TypeSpec{Kind: stast.TypeEnum, Members: members, Span: start.Span.Merge(end.Span)}, nil
}
