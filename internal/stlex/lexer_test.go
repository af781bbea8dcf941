package stlex

import "testing"

func collect(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src, nil)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		if tok.Kind == EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := collect(t, "IF x THEN y := 1; END_IF")
	want := []Kind{Keyword, Ident, Keyword, Ident, Assign, IntLit, Semicolon, Keyword}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %v want %v", i, toks[i].Kind, k)
		}
	}
}

func TestTypedIntLiteral(t *testing.T) {
	toks := collect(t, "DINT#16#FF")
	if len(toks) != 1 || toks[0].Kind != IntLit {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	if toks[0].IntValue != 255 || toks[0].IntSuffix != "DINT" || toks[0].IntBase != 16 {
		t.Fatalf("bad int token: %+v", toks[0])
	}
}

func TestPlainBasedInt(t *testing.T) {
	toks := collect(t, "2#1010")
	if len(toks) != 1 || toks[0].Kind != IntLit || toks[0].IntValue != 10 {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestUnderscoreSeparatedInt(t *testing.T) {
	toks := collect(t, "1_000_000")
	if len(toks) != 1 || toks[0].IntValue != 1_000_000 {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestRealLiteral(t *testing.T) {
	toks := collect(t, "3.14 1.0e-3")
	if len(toks) != 2 || toks[0].Kind != RealLit || toks[1].Kind != RealLit {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	if toks[0].RealValue != 3.14 {
		t.Fatalf("bad real value: %v", toks[0].RealValue)
	}
	if toks[1].RealValue != 1.0e-3 {
		t.Fatalf("bad real value: %v", toks[1].RealValue)
	}
}

func TestTimeLiteral(t *testing.T) {
	toks := collect(t, "T#1s500ms")
	if len(toks) != 1 || toks[0].Kind != TimeLit {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	if toks[0].TimeNanos != 1_500_000_000 {
		t.Fatalf("bad time value: %d", toks[0].TimeNanos)
	}
}

func TestDateAndTimeOfDayLiterals(t *testing.T) {
	toks := collect(t, "D#2024-01-15 TOD#08:30:00 DT#2024-01-15-08:30:00")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens: %+v", len(toks), toks)
	}
	if toks[0].Kind != DateLit || toks[0].Year != 2024 || toks[0].Month != 1 || toks[0].Day != 15 {
		t.Fatalf("bad date: %+v", toks[0])
	}
	if toks[1].Kind != TODLit || toks[1].Hour != 8 || toks[1].Minute != 30 {
		t.Fatalf("bad tod: %+v", toks[1])
	}
	if toks[2].Kind != DateTimeLit || toks[2].Day != 15 || toks[2].Second != 0 {
		t.Fatalf("bad date-and-time: %+v", toks[2])
	}
}

func TestSingleQuotedStringEscapes(t *testing.T) {
	toks := collect(t, `'a$'b$Nc'`)
	if len(toks) != 1 || toks[0].Kind != StringLit {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	if toks[0].Text != "a'b\nc" {
		t.Fatalf("bad string value: %q", toks[0].Text)
	}
}

func TestDoubleQuotedString(t *testing.T) {
	toks := collect(t, `"hello ""world"""`)
	if len(toks) != 1 || toks[0].Kind != StringLit {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	if toks[0].Text != `hello "world"` {
		t.Fatalf("bad string value: %q", toks[0].Text)
	}
}

func TestOperatorDisambiguation(t *testing.T) {
	toks := collect(t, ":= <= >= <> .. ** => : < > = . *")
	want := []Kind{Assign, LE, GE, NE, DotDot, Power, Arrow, Colon, LT, GT, Eq, Dot, Star}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %v want %v", i, toks[i].Kind, k)
		}
	}
}

func TestCommentsSkippedByDefault(t *testing.T) {
	toks := collect(t, "x (* a block comment *) := // trailing\n1;")
	want := []Kind{Ident, Assign, IntLit, Semicolon}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens: %+v", len(toks), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %v want %v", i, toks[i].Kind, k)
		}
	}
}

func TestCommentsIncludedOnRequest(t *testing.T) {
	l := New("// note\nx", nil)
	l.SetIncludeComments(true)
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != LineComment {
		t.Fatalf("expected line comment, got %v", tok.Kind)
	}
}

func TestPragmaToken(t *testing.T) {
	toks := collect(t, "{region foo} x")
	if len(toks) != 2 || toks[0].Kind != Pragma || toks[1].Kind != Ident {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	l := New("'abc", nil)
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
	lexErr, ok := err.(*Error)
	if !ok || lexErr.Kind != UnterminatedString {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnterminatedBlockCommentIsError(t *testing.T) {
	l := New("(* never closes", nil)
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected error for unterminated comment")
	}
}
