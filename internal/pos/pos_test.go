package pos_test

import (
	"testing"

	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/pos"
)

func TestStart(t *testing.T) {
	p := pos.Start()
	if p.Line != 1 || p.Col != 1 {
		t.Errorf("Start() = %+v, want {1 1}", p)
	}
}

func TestString(t *testing.T) {
	p := pos.Pos{Line: 3, Col: 7}
	if got, want := p.String(), "3:7"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNextLine(t *testing.T) {
	p := pos.Pos{Line: 2, Col: 9}
	n := p.NextLine()
	if n.Line != 3 || n.Col != 1 {
		t.Errorf("NextLine() = %+v, want {3 1}", n)
	}
}

func TestNextCol(t *testing.T) {
	p := pos.Pos{Line: 2, Col: 9}
	n := p.NextCol(3)
	if n.Line != 2 || n.Col != 12 {
		t.Errorf("NextCol(3) = %+v, want {2 12}", n)
	}
}
