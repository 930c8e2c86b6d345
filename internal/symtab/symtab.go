// Package symtab implements the two-scope (global + at most one active
// subroutine) identifier table described in spec.md §4.2, assigning
// local-variable slot numbers as variables are declared.
package symtab

import "github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/types"

// IdProp holds the properties attached to a declared name: its type,
// its local slot (valid only for variables; 0 is reserved/unused), and
// for callables, the ordered parameter type list.
type IdProp struct {
	Type    types.ValType
	Offset  int // local slot, >= 1 for variables; 0 for callables
	Params  []types.ValType
	NParams int
}

// IsVariable reports whether props describes a variable (scalar or
// array, non-callable).
func (p *IdProp) IsVariable() bool { return p.Type.IsVariable() }

type scope struct {
	table      *Table[*IdProp]
	currOffset int
}

func newScope() *scope {
	return &scope{table: NewTable[*IdProp](), currOffset: 1}
}

// SymbolTable is the compiler's single identifier table: one persistent
// global scope (subroutine signatures) and, while compiling the body of
// a subroutine, one active scope for its parameters and locals.
type SymbolTable struct {
	global *scope
	active *scope
}

// New returns an empty SymbolTable with only a global scope open.
func New() *SymbolTable {
	return &SymbolTable{global: newScope()}
}

// OpenSubroutine inserts name/props (a callable) into the global scope
// and, on success, opens a fresh active scope with curr_offset reset to
// 1. Returns false if name is already declared in the global scope, in
// which case no scope is opened.
func (t *SymbolTable) OpenSubroutine(name string, props *IdProp) bool {
	if !t.global.table.Insert(name, props) {
		return false
	}
	t.active = newScope()
	return true
}

// CloseSubroutine discards the active scope. Must be balanced with a
// prior OpenSubroutine.
func (t *SymbolTable) CloseSubroutine() {
	t.active = nil
}

// InSubroutine reports whether an active subroutine scope is open.
func (t *SymbolTable) InSubroutine() bool { return t.active != nil }

// Insert adds name/props to the active scope if one is open, else to the
// global scope. Returns false on duplicate-in-scope. If props describes
// a variable, its Offset is assigned from the scope's running counter.
func (t *SymbolTable) Insert(name string, props *IdProp) bool {
	s := t.global
	if t.active != nil {
		s = t.active
	}
	if props.IsVariable() {
		props.Offset = s.currOffset
	}
	if !s.table.Insert(name, props) {
		return false
	}
	if props.IsVariable() {
		s.currOffset++
	}
	return true
}

// Find looks up name: the active scope (if any) is searched first; a
// hit there always wins. Otherwise the global scope is searched, and a
// hit there is visible only if it is callable — global variables never
// exist in this language (every body executes inside some subroutine's
// active scope), but the boundary rule is enforced here regardless, per
// spec.md §4.2.
func (t *SymbolTable) Find(name string) (*IdProp, bool) {
	if t.active != nil {
		if p, ok := t.active.table.Find(name); ok {
			return p, true
		}
		if p, ok := t.global.table.Find(name); ok && p.Type.IsCallable() {
			return p, true
		}
		return nil, false
	}
	return t.global.table.Find(name)
}

// LocalsWidth returns the current scope's running slot counter, i.e. one
// past the highest slot assigned so far — the frame width the emitter
// needs to size a subroutine's locals.
func (t *SymbolTable) LocalsWidth() int {
	if t.active != nil {
		return t.active.currOffset
	}
	return t.global.currOffset
}
