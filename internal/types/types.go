// Package types implements the SIMPL-2021 value-type model: a 4-bit
// bitset encoding {integer, boolean} x {scalar, array} x {value, callable}.
package types

// ValType is a bitset over {ARRAY, BOOLEAN, INTEGER, CALLABLE}. A legal
// scalar type is exactly one of {BOOLEAN, INTEGER}, optionally OR-ed with
// ARRAY. A legal callable type is CALLABLE alone (procedure), or
// CALLABLE|BOOLEAN / CALLABLE|INTEGER (function), optionally OR-ed with
// ARRAY when the function returns an array. Bit combinations outside
// these forms are never constructed by this package.
type ValType uint8

const (
	ARRAY    ValType = 1 << iota // 1
	BOOLEAN                      // 2
	INTEGER                      // 4
	CALLABLE                     // 8
)

// Integer and Boolean are the two non-array scalar value types.
var (
	Integer = INTEGER
	Boolean = BOOLEAN
)

// Procedure is the callable type of a procedure (no return value).
var Procedure = CALLABLE

// IsArray reports whether t carries the ARRAY flag.
func (t ValType) IsArray() bool { return t&ARRAY != 0 }

// IsCallable reports whether t carries the CALLABLE flag.
func (t ValType) IsCallable() bool { return t&CALLABLE != 0 }

// baseType strips ARRAY and CALLABLE, leaving {BOOLEAN, INTEGER} or 0.
func (t ValType) baseType() ValType { return t &^ (ARRAY | CALLABLE) }

// HasBaseType reports whether t carries a BOOLEAN or INTEGER flag.
func (t ValType) HasBaseType() bool { return t.baseType() != 0 }

// IsFunction reports whether t is a callable with a return base type.
func (t ValType) IsFunction() bool { return t.IsCallable() && t.HasBaseType() }

// IsProcedure reports whether t is a callable without a return base type.
func (t ValType) IsProcedure() bool { return t.IsCallable() && !t.HasBaseType() }

// IsVariable reports whether t is a scalar or array variable type
// (i.e. not callable).
func (t ValType) IsVariable() bool { return !t.IsCallable() && t.HasBaseType() }

// IsInteger reports whether t's base type is INTEGER.
func (t ValType) IsInteger() bool { return t.baseType() == INTEGER }

// IsBoolean reports whether t's base type is BOOLEAN.
func (t ValType) IsBoolean() bool { return t.baseType() == BOOLEAN }

// StripCallable returns t with the CALLABLE flag cleared, leaving the
// base type and array-ness (i.e. the type of a call's result).
func (t ValType) StripCallable() ValType { return t &^ CALLABLE }

// StripArray returns t with the ARRAY flag cleared (i.e. the type of a
// single element of an array-typed t).
func (t ValType) StripArray() ValType { return t &^ ARRAY }

// WithArray returns t with the ARRAY flag set.
func (t ValType) WithArray() ValType { return t | ARRAY }

// AsCallable returns the callable type corresponding to the scalar
// return type t (procedures use CALLABLE with no base type, callers
// should pass 0 for that case instead).
func (t ValType) AsCallable() ValType { return t | CALLABLE }

// String renders t for diagnostics, e.g. "integer array" or "function
// returning boolean".
func (t ValType) String() string {
	if t.IsCallable() {
		if t.IsProcedure() {
			return "procedure"
		}
		s := "function returning " + t.baseType().scalarString()
		if t.IsArray() {
			s += " array"
		}
		return s
	}
	return t.scalarString()
}

func (t ValType) scalarString() string {
	s := ""
	switch t.baseType() {
	case INTEGER:
		s = "integer"
	case BOOLEAN:
		s = "boolean"
	default:
		s = "<invalid>"
	}
	if t.IsArray() {
		s += " array"
	}
	return s
}

// Equal is structural equality, the only comparison check performs: no
// implicit widening exists in SIMPL-2021.
func Equal(a, b ValType) bool { return a == b }
