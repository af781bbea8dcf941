package span

import "testing"

func TestMerge(t *testing.T) {
	a := New(5, 10)
	b := New(15, 20)
	m := a.Merge(b)
	if m.Start != 5 || m.End != 20 {
		t.Fatalf("merge = %v", m)
	}
}

func TestText(t *testing.T) {
	src := "hello world"
	s := New(0, 5)
	if got := s.Text(src); got != "hello" {
		t.Fatalf("text = %q", got)
	}
}

func TestResolve(t *testing.T) {
	src := "abc\ndef\nghi"
	pos := Resolve(src, 5)
	if pos.Line != 2 || pos.Column != 2 {
		t.Fatalf("pos = %+v", pos)
	}
}

func TestCaret(t *testing.T) {
	src := "x := 1 + ;\ny := 2;"
	out := Caret(src, New(9, 10))
	if out == "" {
		t.Fatal("empty caret output")
	}
}
