package emitter_test

import (
	"os"
	"strings"
	"testing"

	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/emitter"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/symtab"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/types"
)

func TestLabelsAreFresh(t *testing.T) {
	em := emitter.New("T")
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		l := em.GetLabel()
		if seen[l] {
			t.Fatalf("GetLabel() returned %q twice", l)
		}
		seen[l] = true
	}
}

func TestStringPoolDedup(t *testing.T) {
	em := emitter.New("T")
	em.InitSubroutine("main", &symtab.IdProp{Type: types.Procedure})
	em.EmitPrintString("hello")
	em.EmitPrintString("world")
	em.EmitPrintString("hello")
	em.Emit("return")
	em.CloseSubroutine(1)

	if got := em.StringPoolSize(); got != 2 {
		t.Errorf("StringPoolSize() = %d, want 2", got)
	}
}

func TestSerializeWritesMethodsAndLimits(t *testing.T) {
	em := emitter.New("Hello")
	em.InitSubroutine("main", &symtab.IdProp{Type: types.Procedure})
	em.EmitPrintPrefix()
	em.EmitPrintString("hi")
	em.Emit("return")
	em.CloseSubroutine(1)

	dir := t.TempDir()
	path, err := em.Serialize(dir)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	src := string(data)
	for _, want := range []string{
		".class public Hello",
		".method public static main()V",
		".limit stack 64",
		".limit locals 1",
		".end method",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("serialized output missing %q:\n%s", want, src)
		}
	}
}

func TestEmitCallSignature(t *testing.T) {
	em := emitter.New("P")
	em.InitSubroutine("main", &symtab.IdProp{Type: types.Procedure})
	props := &symtab.IdProp{
		Type:   types.Integer.AsCallable(),
		Params: []types.ValType{types.Integer, types.Boolean},
	}
	em.EmitCall("add", props)
	em.Emit("return")
	em.CloseSubroutine(1)

	dir := t.TempDir()
	path, _ := em.Serialize(dir)
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "invokestatic P/add(IZ)I") {
		t.Errorf("expected call signature (IZ)I in output, got:\n%s", data)
	}
}

func TestEmitCmpLeavesBooleanOnStack(t *testing.T) {
	em := emitter.New("C")
	em.InitSubroutine("main", &symtab.IdProp{Type: types.Procedure})
	em.EmitCmp("<")
	em.Emit("return")
	em.CloseSubroutine(1)

	dir := t.TempDir()
	path, _ := em.Serialize(dir)
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "if_icmplt") {
		t.Errorf("expected if_icmplt in output, got:\n%s", data)
	}
}
