// Package emitter assembles the textual, Jasmin-style assembly program
// that is the compiler's final output: label allocation, one
// instruction per call, subroutine framing, a deduplicated string pool,
// and serialization to a "<ClassName>.j" file.
package emitter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/symtab"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/types"
)

// instruction is one line of emitted assembly: an opcode plus its
// operands, or a bare label placement.
type instruction struct {
	label string // set when this "instruction" is just a label definition
	op    string
	args  []string
}

func (in instruction) render() string {
	if in.label != "" {
		return in.label + ":"
	}
	if len(in.args) == 0 {
		return "\t" + in.op
	}
	return "\t" + in.op + " " + strings.Join(in.args, " ")
}

// frame holds one subroutine's instruction buffer and signature.
type frame struct {
	name       string
	params     []types.ValType
	returnType types.ValType // 0 (no base type) for a procedure
	isFunc     bool
	localsW    int
	code       []instruction
}

// Emitter accumulates one program's worth of subroutines and serializes
// them to a single ".j" file when compilation finishes.
type Emitter struct {
	className string

	labelCounter int

	stringPool  []string
	stringIndex map[string]int

	current *frame
	subs    []*frame
}

// New returns an Emitter that will produce a class named className.
func New(className string) *Emitter {
	return &Emitter{
		className:   className,
		stringIndex: make(map[string]int),
	}
}

// GetLabel returns a fresh, never-before-returned label name.
func (e *Emitter) GetLabel() string {
	l := fmt.Sprintf("L%d", e.labelCounter)
	e.labelCounter++
	return l
}

// InitSubroutine opens a new instruction buffer for name. Subroutines
// never nest in SIMPL-2021, so it is an error to call this while one is
// already open (callers are trusted, per spec.md §4.5: "the emitter
// trusts the parser's slot assignments").
func (e *Emitter) InitSubroutine(name string, props *symtab.IdProp) {
	e.current = &frame{
		name:       name,
		params:     props.Params,
		returnType: props.Type.StripCallable(),
		isFunc:     props.Type.IsFunction(),
	}
}

// CloseSubroutine records localsWidth as the subroutine's frame width
// and appends the finished frame to the program's output order.
func (e *Emitter) CloseSubroutine(localsWidth int) {
	e.current.localsW = localsWidth
	e.subs = append(e.subs, e.current)
	e.current = nil
}

// Emit appends one instruction to the currently open subroutine.
func (e *Emitter) Emit(op string, args ...string) {
	e.current.code = append(e.current.code, instruction{op: op, args: args})
}

// EmitLabel places label at the current code position.
func (e *Emitter) EmitLabel(label string) {
	e.current.code = append(e.current.code, instruction{label: label})
}

// jumpOpFor maps a SIMPL relational operator to the two-operand compare-
// and-branch opcode that tests it.
func jumpOpFor(cond string) string {
	switch cond {
	case "=":
		return "if_icmpeq"
	case "#":
		return "if_icmpne"
	case "<":
		return "if_icmplt"
	case "<=":
		return "if_icmple"
	case ">":
		return "if_icmpgt"
	case ">=":
		return "if_icmpge"
	}
	panic("emitter: unknown relational operator " + cond)
}

// EmitCmp lowers an integer comparison (cond one of "= # < <= > >=")
// against the top two stack values into a branch-and-push sequence that
// leaves 0 or 1 on the stack, per spec.md §4.5.
func (e *Emitter) EmitCmp(cond string) {
	trueLabel := e.GetLabel()
	endLabel := e.GetLabel()
	e.Emit(jumpOpFor(cond), trueLabel)
	e.Emit("iconst_0")
	e.Emit("goto", endLabel)
	e.EmitLabel(trueLabel)
	e.Emit("iconst_1")
	e.EmitLabel(endLabel)
}

// EmitBranchIfZero emits the idiom used by if/while guards: pop TOS and
// branch to label if it is zero (false).
func (e *Emitter) EmitBranchIfZero(label string) {
	e.Emit("ifeq", label)
}

// EmitGoto emits an unconditional jump to label.
func (e *Emitter) EmitGoto(label string) {
	e.Emit("goto", label)
}

// EmitNewArray allocates a 1-D array of elemType (the base type of an
// ARRAY ValType) whose length is the value currently on top of stack.
func (e *Emitter) EmitNewArray(elemType types.ValType) {
	kind := "int"
	if elemType.IsBoolean() {
		kind = "boolean"
	}
	e.Emit("newarray", kind)
}

func jvmType(t types.ValType) string {
	switch {
	case t.IsArray() && t.IsBoolean():
		return "[Z"
	case t.IsArray() && t.IsInteger():
		return "[I"
	case t.IsBoolean():
		return "Z"
	case t.IsInteger():
		return "I"
	default:
		return "V"
	}
}

// signature renders the JVM method descriptor for props, e.g.
// "(II)Z" for a function taking two integers and returning boolean.
func signature(params []types.ValType, ret types.ValType, isFunc bool) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range params {
		b.WriteString(jvmType(p))
	}
	b.WriteByte(')')
	if isFunc {
		b.WriteString(jvmType(ret))
	} else {
		b.WriteByte('V')
	}
	return b.String()
}

// EmitCall emits a static invocation of name honoring props' parameter
// list and return kind. Arguments must already have been pushed, in
// order, by the caller.
func (e *Emitter) EmitCall(name string, props *symtab.IdProp) {
	sig := signature(props.Params, props.Type.StripCallable(), props.Type.IsFunction())
	e.Emit("invokestatic", fmt.Sprintf("%s/%s%s", e.className, name, sig))
}

// EmitReturn emits the appropriate return instruction for a procedure
// (void), or a function returning an integer/array-of-integer
// ("reference- or integer-kind" per spec.md §4.4) or boolean value
// already on top of stack.
func (e *Emitter) EmitReturn(t types.ValType, isFunc bool) {
	switch {
	case !isFunc:
		e.Emit("return")
	case t.IsArray():
		e.Emit("areturn")
	default:
		e.Emit("ireturn")
	}
}

// EmitPrintPrefix must be called before evaluating the expression (or
// pushing the string) that a write item prints, so that the JVM's
// invokevirtual receiver/argument stack order comes out right.
func (e *Emitter) EmitPrintPrefix() {
	e.Emit("getstatic", "java/lang/System/out", "Ljava/io/PrintStream;")
}

// EmitPrintSuffix completes a write item for a scalar expression of
// type t, already pushed onto the stack after EmitPrintPrefix.
func (e *Emitter) EmitPrintSuffix(t types.ValType) {
	desc := "(I)V"
	if t.IsBoolean() {
		desc = "(Z)V"
	}
	e.Emit("invokevirtual", "java/io/PrintStream/print"+desc)
}

// EmitPrintString emits a complete write item for a string literal.
func (e *Emitter) EmitPrintString(s string) {
	e.EmitPrintPrefix()
	e.addString(s)
	e.Emit("ldc", strconv.Quote(s))
	e.Emit("invokevirtual", "java/io/PrintStream/print(Ljava/lang/String;)V")
}

// EmitRead emits a call into the runtime's scalar-read helper and
// returns the value on the stack.
func (e *Emitter) EmitRead(t types.ValType) {
	name, desc := "readInt", "()I"
	if t.IsBoolean() {
		name, desc = "readBool", "()Z"
	}
	e.Emit("invokestatic", "SimplRuntime/"+name+desc)
}

// addString interns s in the string pool, returning its stable index.
func (e *Emitter) addString(s string) int {
	if idx, ok := e.stringIndex[s]; ok {
		return idx
	}
	idx := len(e.stringPool)
	e.stringPool = append(e.stringPool, s)
	e.stringIndex[s] = idx
	return idx
}

// StringPoolSize returns the number of distinct strings interned so far
// (exposed for tests asserting deduplication).
func (e *Emitter) StringPoolSize() int { return len(e.stringPool) }

// OutputPath returns the path Serialize will write to, given outDir (an
// empty outDir means the current directory).
func (e *Emitter) OutputPath(outDir string) string {
	return filepath.Join(outDir, e.className+".j")
}

// Serialize writes the full textual program to "<ClassName>.j" inside
// outDir and returns the path written.
func (e *Emitter) Serialize(outDir string) (string, error) {
	path := e.OutputPath(outDir)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "emitter: creating %s", path)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	fmt.Fprintf(w, ".class public %s\n", e.className)
	fmt.Fprintf(w, ".super java/lang/Object\n\n")

	for _, sub := range e.subs {
		fmt.Fprintf(w, ".method public static %s%s\n", sub.name, signature(sub.params, sub.returnType, sub.isFunc))
		fmt.Fprintf(w, "\t.limit stack 64\n")
		fmt.Fprintf(w, "\t.limit locals %d\n", max(sub.localsW, 1))
		for _, in := range sub.code {
			fmt.Fprintln(w, in.render())
		}
		fmt.Fprintf(w, ".end method\n\n")
	}

	if err := w.Flush(); err != nil {
		return "", errors.Wrapf(err, "emitter: writing %s", path)
	}
	return path, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
