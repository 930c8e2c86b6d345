package parser_test

import (
	"os"
	"strings"
	"testing"

	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/diag"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/lexer"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/parser"
)

func serialize(t *testing.T, src string) string {
	t.Helper()
	lx, err := lexer.New(strings.NewReader(src), 0)
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	em, err := parser.Parse(lx)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dir := t.TempDir()
	path, err := em.Serialize(dir)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	lx, err := lexer.New(strings.NewReader(src), 0)
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	_, err = parser.Parse(lx)
	if err == nil {
		t.Fatal("Parse succeeded, want an error")
	}
	return err
}

func TestHelloStatement(t *testing.T) {
	out := serialize(t, `program Hi begin write "hello" end`)
	for _, want := range []string{
		"getstatic java/lang/System/out",
		`ldc "hello"`,
		"invokevirtual java/io/PrintStream/print",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDuplicateVariable(t *testing.T) {
	err := parseErr(t, `program D begin integer x, x; end`)
	if !strings.Contains(err.Error(), "multiple definition of 'x'") {
		t.Errorf("error = %v, want mention of multiple definition of 'x'", err)
	}
}

func TestArrayWriteRejected(t *testing.T) {
	err := parseErr(t, `program W begin integer array a; a <- array 3; write a end`)
	d, ok := err.(*diag.Diagnostic)
	if !ok {
		t.Fatalf("error is %T, want *diag.Diagnostic", err)
	}
	if !strings.Contains(d.Msg, "write is an illegal array operation") {
		t.Errorf("message = %q, want mention of illegal array operation", d.Msg)
	}
}

func TestFunctionReturnTypeMismatch(t *testing.T) {
	src := `program F
define f() -> boolean
begin
	exit 1
end
begin
	chill
end`
	err := parseErr(t, src)
	if !strings.Contains(err.Error(), "incompatible types (expected boolean, found integer) for 'exit' statement") {
		t.Errorf("error = %v, want the exit type-mismatch message", err)
	}
}

func TestArityMismatch(t *testing.T) {
	src := `program P
define p(integer x)
begin
	chill
end
begin
	p(1, 2)
end`
	err := parseErr(t, src)
	if !strings.Contains(err.Error(), "too many arguments for call to 'p'") {
		t.Errorf("error = %v, want too-many-arguments message", err)
	}
}

func TestAndHasNoShortCircuit(t *testing.T) {
	out := serialize(t, `program B begin boolean b; b <- true and false end`)
	iconst1 := strings.Index(out, "iconst_1")
	iconst0 := strings.Index(out, "iconst_0")
	iand := strings.Index(out, "iand")
	if iconst1 < 0 || iconst0 < 0 || iand < 0 {
		t.Fatalf("expected iconst_1, iconst_0 and iand all present:\n%s", out)
	}
	if !(iconst1 < iconst0 && iconst0 < iand) {
		t.Errorf("operands not evaluated unconditionally in order before 'and':\n%s", out)
	}
}

func TestWhileLoopStructure(t *testing.T) {
	src := `program Loop
begin
	integer i;
	i <- 0;
	while i < 10 do
		i <- i + 1
	end
end`
	out := serialize(t, src)
	for _, want := range []string{"if_icmplt", "ifeq", "goto", "iadd"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestIfElsifElse(t *testing.T) {
	src := `program Branch
begin
	integer x;
	x <- 1;
	if x = 1 then
		write "one"
	elsif x = 2 then
		write "two"
	else
		write "other"
	end
end`
	out := serialize(t, src)
	for _, want := range []string{`"one"`, `"two"`, `"other"`, "if_icmpeq"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestArrayElementReadWriteRoundTrip(t *testing.T) {
	src := `program Arr
begin
	integer array a;
	a <- array 5;
	a[0] <- 42;
	write a[0]
end`
	out := serialize(t, src)
	for _, want := range []string{"newarray int", "iastore", "iaload"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFunctionCallAndReturn(t *testing.T) {
	src := `program Calc
define square(integer n) -> integer
begin
	exit n * n
end
begin
	write square(4)
end`
	out := serialize(t, src)
	for _, want := range []string{"invokestatic Calc/square(I)I", "imul", "ireturn"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestUnknownIdentifier(t *testing.T) {
	err := parseErr(t, `program U begin write nope end`)
	if !strings.Contains(err.Error(), "unknown identifier 'nope'") {
		t.Errorf("error = %v, want unknown-identifier message", err)
	}
}

func TestArglistOrAssignmentExpected(t *testing.T) {
	err := parseErr(t, `program X begin integer x; x end`)
	if !strings.Contains(err.Error(), "argument list or assignment expected") {
		t.Errorf("error = %v, want argument-list-or-assignment message", err)
	}
}

func TestExitNotAllowedInProcedure(t *testing.T) {
	src := `program E
define p()
begin
	exit
end
begin
	p()
end`
	// A bare 'exit' in a procedure is fine; an expression is not.
	if _, err := lexer.New(strings.NewReader(src), 0); err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	out := serialize(t, src)
	if !strings.Contains(out, "return") {
		t.Errorf("expected a bare return, got:\n%s", out)
	}

	src2 := `program E2
define p()
begin
	exit 1
end
begin
	p()
end`
	err := parseErr(t, src2)
	if !strings.Contains(err.Error(), "exit expression not allowed for procedure") {
		t.Errorf("error = %v, want exit-expression-not-allowed message", err)
	}
}
