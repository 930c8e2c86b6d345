package types_test

import (
	"testing"

	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/types"
)

func TestPredicates(t *testing.T) {
	data := []struct {
		name       string
		t          types.ValType
		isArray    bool
		isCallable bool
		isFunction bool
		isProc     bool
		isVariable bool
	}{
		{"integer", types.Integer, false, false, false, false, true},
		{"boolean array", types.Boolean.WithArray(), true, false, false, false, true},
		{"procedure", types.Procedure, false, true, false, true, false},
		{"function returning integer", types.Integer.AsCallable(), false, true, true, false, false},
		{"function returning boolean array", types.Boolean.WithArray().AsCallable(), true, true, true, false, false},
	}
	for _, d := range data {
		if got := d.t.IsArray(); got != d.isArray {
			t.Errorf("%s: IsArray() = %v, want %v", d.name, got, d.isArray)
		}
		if got := d.t.IsCallable(); got != d.isCallable {
			t.Errorf("%s: IsCallable() = %v, want %v", d.name, got, d.isCallable)
		}
		if got := d.t.IsFunction(); got != d.isFunction {
			t.Errorf("%s: IsFunction() = %v, want %v", d.name, got, d.isFunction)
		}
		if got := d.t.IsProcedure(); got != d.isProc {
			t.Errorf("%s: IsProcedure() = %v, want %v", d.name, got, d.isProc)
		}
		if got := d.t.IsVariable(); got != d.isVariable {
			t.Errorf("%s: IsVariable() = %v, want %v", d.name, got, d.isVariable)
		}
	}
}

func TestEqualIsStrict(t *testing.T) {
	if types.Equal(types.Integer, types.Boolean) {
		t.Error("integer and boolean compared equal")
	}
	if types.Equal(types.Integer, types.Integer.WithArray()) {
		t.Error("integer and integer array compared equal (no implicit widening)")
	}
	if !types.Equal(types.Integer, types.Integer) {
		t.Error("integer not equal to itself")
	}
}

func TestStripAndWith(t *testing.T) {
	f := types.Integer.AsCallable()
	if got := f.StripCallable(); got != types.Integer {
		t.Errorf("StripCallable() = %v, want %v", got, types.Integer)
	}
	arr := types.Integer.WithArray()
	if got := arr.StripArray(); got != types.Integer {
		t.Errorf("StripArray() = %v, want %v", got, types.Integer)
	}
}

func TestString(t *testing.T) {
	data := []struct {
		t    types.ValType
		want string
	}{
		{types.Integer, "integer"},
		{types.Boolean.WithArray(), "boolean array"},
		{types.Procedure, "procedure"},
		{types.Integer.AsCallable(), "function returning integer"},
		{types.Boolean.WithArray().AsCallable(), "function returning boolean array"},
	}
	for _, d := range data {
		if got := d.t.String(); got != d.want {
			t.Errorf("%v.String() = %q, want %q", d.t, got, d.want)
		}
	}
}
