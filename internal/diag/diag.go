// Package diag implements the closed catalogue of user-facing compiler
// diagnostics described in spec.md §7. A Diagnostic is always fatal: the
// first one produced by any subsystem stops compilation.
package diag

import (
	"fmt"

	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/pos"
)

// Kind groups diagnostics into the categories spec.md §7 enumerates.
type Kind int

const (
	Lexical Kind = iota
	Syntactic
	Declaration
	Scope
	KindMismatch // "not a function" / "not a variable" / etc.
	Arity
	Type
	Control
	Environment
)

// Diagnostic is a single fatal, position-anchored compiler error. It
// implements the error interface so it flows through ordinary Go error
// returns; it deliberately does not wrap github.com/pkg/errors (see
// SPEC_FULL.md §8) since it carries its own position and no Go call
// stack is useful to a SIMPL-2021 programmer.
type Diagnostic struct {
	Kind Kind
	Pos  pos.Pos
	Msg  string
	Src  string // source file name, filled in by the driver if known
}

// New builds a Diagnostic at p with message built from format/args.
func New(kind Kind, p pos.Pos, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Pos: p, Msg: fmt.Sprintf(format, args...)}
}

// Error renders "<source>:<line>:<col>: <message>", per spec.md §6.
func (d *Diagnostic) Error() string {
	src := d.Src
	if src == "" {
		src = "<input>"
	}
	return fmt.Sprintf("%s:%s: %s", src, d.Pos, d.Msg)
}

// WithSource returns a copy of d with Src set, used by the driver once
// the source file name is known (the lexer/parser only see a Reader).
func (d *Diagnostic) WithSource(src string) *Diagnostic {
	cp := *d
	cp.Src = src
	return &cp
}

// Common diagnostic constructors, one per spec.md §7 example category.

func IllegalChar(p pos.Pos, c byte) *Diagnostic {
	return New(Lexical, p, "illegal character %q", c)
}

func NumberTooLarge(p pos.Pos) *Diagnostic {
	return New(Lexical, p, "number too large")
}

func IdentifierTooLong(p pos.Pos, max int) *Diagnostic {
	return New(Lexical, p, "identifier too long (maximum %d characters)", max)
}

func UnterminatedString(p pos.Pos) *Diagnostic {
	return New(Lexical, p, "unterminated string")
}

func UnterminatedComment(p pos.Pos) *Diagnostic {
	return New(Lexical, p, "unterminated comment")
}

func UnknownEscape(p pos.Pos, c byte) *Diagnostic {
	return New(Lexical, p, "unknown escape sequence '\\%c'", c)
}

func NonPrintableInString(p pos.Pos) *Diagnostic {
	return New(Lexical, p, "non-printable character in string")
}

func Expected(p pos.Pos, want, found string) *Diagnostic {
	return New(Syntactic, p, "expected %s but found %s", want, found)
}

func StatementExpected(p pos.Pos, found string) *Diagnostic {
	return New(Syntactic, p, "statement expected, found %s", found)
}

func TypeExpected(p pos.Pos, found string) *Diagnostic {
	return New(Syntactic, p, "type expected, found %s", found)
}

func FactorExpected(p pos.Pos, found string) *Diagnostic {
	return New(Syntactic, p, "expression expected, found %s", found)
}

func ExpressionOrStringExpected(p pos.Pos, found string) *Diagnostic {
	return New(Syntactic, p, "expression or string expected, found %s", found)
}

func ArglistOrAssignmentExpected(p pos.Pos, found string) *Diagnostic {
	return New(Syntactic, p, "argument list or assignment expected, found %s", found)
}

func ArrayAllocationOrExpressionExpected(p pos.Pos, found string) *Diagnostic {
	return New(Syntactic, p, "array allocation or expression expected, found %s", found)
}

func MultipleDefinition(p pos.Pos, name string) *Diagnostic {
	return New(Declaration, p, "multiple definition of '%s'", name)
}

func UnknownIdentifier(p pos.Pos, name string) *Diagnostic {
	return New(Scope, p, "unknown identifier '%s'", name)
}

func NotAFunction(p pos.Pos, name string) *Diagnostic {
	return New(KindMismatch, p, "'%s' is not a function", name)
}

func NotAProcedure(p pos.Pos, name string) *Diagnostic {
	return New(KindMismatch, p, "'%s' is not a procedure", name)
}

func NotAVariable(p pos.Pos, name string) *Diagnostic {
	return New(KindMismatch, p, "'%s' is not a variable", name)
}

func NotAnArray(p pos.Pos, name string) *Diagnostic {
	return New(KindMismatch, p, "'%s' is not an array", name)
}

func ScalarVariableExpected(p pos.Pos, name string) *Diagnostic {
	return New(KindMismatch, p, "scalar variable expected, '%s' is an array", name)
}

func MissingArgumentList(p pos.Pos, name string) *Diagnostic {
	return New(KindMismatch, p, "missing argument list for call to '%s'", name)
}

func TooFewArguments(p pos.Pos, name string) *Diagnostic {
	return New(Arity, p, "too few arguments for call to '%s'", name)
}

func TooManyArguments(p pos.Pos, name string) *Diagnostic {
	return New(Arity, p, "too many arguments for call to '%s'", name)
}

func IncompatibleTypes(p pos.Pos, expected, found, context string) *Diagnostic {
	return New(Type, p, "incompatible types (expected %s, found %s) for %s", expected, found, context)
}

func ExitExpressionNotAllowed(p pos.Pos) *Diagnostic {
	return New(Control, p, "exit expression not allowed for procedure")
}

func MissingExitExpression(p pos.Pos) *Diagnostic {
	return New(Control, p, "missing exit expression for function")
}

func IllegalArrayOperation(p pos.Pos, op string) *Diagnostic {
	return New(Control, p, "%s is an illegal array operation", op)
}

func MissingJasminJar() *Diagnostic {
	return New(Environment, pos.Pos{}, "environment variable JASMIN_JAR is not set")
}
