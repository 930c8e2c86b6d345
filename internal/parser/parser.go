// Package parser implements the SIMPL-2021 recursive-descent
// parser/analyser/lowerer: grammar recognition, scoped symbol
// resolution, static type checking, and stack-machine code emission all
// happen in the same pass, with a single token of lookahead and no
// persistent AST (spec.md §3, §4.4).
package parser

import (
	"fmt"
	"strconv"

	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/diag"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/emitter"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/lexer"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/pos"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/symtab"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/token"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/types"
)

// Parser drives the lexer, the symbol table, and the emitter together
// over one left-to-right pass.
type Parser struct {
	lex *lexer.Lexer
	tok token.Token

	sym *symtab.SymbolTable
	em  *emitter.Emitter

	curReturnType types.ValType // valid while inside a funcdef/main body
	curIsFunc     bool
}

// Parse compiles the token stream from lex into an *emitter.Emitter
// ready for Serialize, or returns the first fatal diagnostic/error.
func Parse(lex *lexer.Lexer) (*emitter.Emitter, error) {
	p := &Parser{lex: lex, sym: symtab.New()}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.program(); err != nil {
		return nil, err
	}
	return p.em, nil
}

// --- token-stream plumbing -------------------------------------------------

func (p *Parser) next() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) expect(k token.Kind) error {
	if p.tok.Kind != k {
		return diag.Expected(p.tok.Pos, k.String(), p.tok.Kind.String())
	}
	return p.next()
}

func (p *Parser) expectID() (string, pos.Pos, error) {
	if p.tok.Kind != token.ID {
		return "", pos.Pos{}, diag.Expected(p.tok.Pos, "identifier", p.tok.Kind.String())
	}
	name, at := p.tok.Text, p.tok.Pos
	return name, at, p.next()
}

func (p *Parser) startsExpr() bool {
	switch p.tok.Kind {
	case token.ID, token.NUM, token.LPAREN, token.MINUS, token.NOT, token.TRUE, token.FALSE:
		return true
	}
	return false
}

// --- grammar ----------------------------------------------------------------

// program = "program" id { funcdef } body .
func (p *Parser) program() error {
	if err := p.expect(token.PROGRAM); err != nil {
		return err
	}
	className, _, err := p.expectID()
	if err != nil {
		return err
	}
	p.em = emitter.New(className)

	for p.tok.Kind == token.DEFINE {
		if err := p.funcdef(); err != nil {
			return err
		}
	}

	mainProps := &symtab.IdProp{Type: types.CALLABLE}
	mainPos := p.tok.Pos
	if !p.sym.OpenSubroutine("main", mainProps) {
		return diag.MultipleDefinition(mainPos, "main")
	}
	p.em.InitSubroutine("main", mainProps)
	p.curReturnType, p.curIsFunc = 0, false
	if err := p.body(); err != nil {
		return err
	}
	p.em.Emit("return")
	p.em.CloseSubroutine(p.sym.LocalsWidth())
	p.sym.CloseSubroutine()
	return nil
}

// funcdef = "define" id "(" [ type id { "," type id } ] ")" [ "->" type ] body .
func (p *Parser) funcdef() error {
	if err := p.next(); err != nil { // consume 'define'
		return err
	}
	name, namePos, err := p.expectID()
	if err != nil {
		return err
	}

	if err := p.expect(token.LPAREN); err != nil {
		return err
	}

	type param struct {
		name string
		typ  types.ValType
		at   pos.Pos
	}
	var params []param
	seen := map[string]bool{name: true} // a param cannot shadow the subroutine's own name
	if p.tok.Kind != token.RPAREN {
		for {
			pt, err := p.typeSpec()
			if err != nil {
				return err
			}
			pname, ppos, err := p.expectID()
			if err != nil {
				return err
			}
			if seen[pname] {
				return diag.MultipleDefinition(ppos, pname)
			}
			seen[pname] = true
			params = append(params, param{pname, pt, ppos})
			if p.tok.Kind != token.COMMA {
				break
			}
			if err := p.next(); err != nil {
				return err
			}
		}
	}
	if err := p.expect(token.RPAREN); err != nil {
		return err
	}

	hasReturn := false
	var retType types.ValType
	if p.tok.Kind == token.ARROW {
		if err := p.next(); err != nil {
			return err
		}
		hasReturn = true
		retType, err = p.typeSpec()
		if err != nil {
			return err
		}
	}

	callableType := types.CALLABLE
	if hasReturn {
		callableType |= retType
	}
	paramTypes := make([]types.ValType, len(params))
	for i, pr := range params {
		paramTypes[i] = pr.typ
	}
	props := &symtab.IdProp{Type: callableType, Params: paramTypes, NParams: len(paramTypes)}

	if !p.sym.OpenSubroutine(name, props) {
		return diag.MultipleDefinition(namePos, name)
	}
	p.em.InitSubroutine(name, props)

	for _, pr := range params {
		vp := &symtab.IdProp{Type: pr.typ}
		if !p.sym.Insert(pr.name, vp) {
			return diag.MultipleDefinition(pr.at, pr.name)
		}
	}

	p.curReturnType = callableType
	p.curIsFunc = callableType.IsFunction()
	if err := p.body(); err != nil {
		return err
	}

	// Fall-through safety net: a body that runs off its end without an
	// explicit exit still needs a well-formed return.
	if p.curIsFunc {
		ret := p.curReturnType.StripCallable()
		if ret.IsArray() {
			p.em.Emit("aconst_null")
		} else {
			p.em.Emit("iconst_0")
		}
		p.em.EmitReturn(ret, true)
	} else {
		p.em.Emit("return")
	}

	p.em.CloseSubroutine(p.sym.LocalsWidth())
	p.sym.CloseSubroutine()
	return nil
}

// body = "begin" { vardef } statements "end" .
func (p *Parser) body() error {
	if err := p.expect(token.BEGIN); err != nil {
		return err
	}
	for p.tok.Kind == token.BOOLEAN || p.tok.Kind == token.INTEGER {
		if err := p.vardef(); err != nil {
			return err
		}
	}
	if err := p.statements(); err != nil {
		return err
	}
	return p.expect(token.END)
}

// vardef = type id { "," id } ";" .
func (p *Parser) vardef() error {
	t, err := p.typeSpec()
	if err != nil {
		return err
	}
	for {
		name, at, err := p.expectID()
		if err != nil {
			return err
		}
		if !p.sym.Insert(name, &symtab.IdProp{Type: t}) {
			return diag.MultipleDefinition(at, name)
		}
		if p.tok.Kind != token.COMMA {
			break
		}
		if err := p.next(); err != nil {
			return err
		}
	}
	return p.expect(token.SEMI)
}

// type = ("boolean" | "integer") [ "array" ] .
func (p *Parser) typeSpec() (types.ValType, error) {
	var t types.ValType
	switch p.tok.Kind {
	case token.BOOLEAN:
		t = types.BOOLEAN
	case token.INTEGER:
		t = types.INTEGER
	default:
		return 0, diag.TypeExpected(p.tok.Pos, p.tok.Kind.String())
	}
	if err := p.next(); err != nil {
		return 0, err
	}
	if p.tok.Kind == token.ARRAY {
		t = t.WithArray()
		if err := p.next(); err != nil {
			return 0, err
		}
	}
	return t, nil
}

// statements = "chill" | statement { ";" statement } .
func (p *Parser) statements() error {
	if p.tok.Kind == token.CHILL {
		return p.next()
	}
	if err := p.statement(); err != nil {
		return err
	}
	for p.tok.Kind == token.SEMI {
		if err := p.next(); err != nil {
			return err
		}
		if err := p.statement(); err != nil {
			return err
		}
	}
	return nil
}

// statement = exit | if | name | read | while | write .
func (p *Parser) statement() error {
	switch p.tok.Kind {
	case token.EXIT:
		return p.exitStmt()
	case token.IF:
		return p.ifStmt()
	case token.ID:
		return p.nameStmt()
	case token.READ:
		return p.readStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.WRITE:
		return p.writeStmt()
	}
	return diag.StatementExpected(p.tok.Pos, p.tok.Kind.String())
}

// exit = "exit" [ expr ] .
func (p *Parser) exitStmt() error {
	exitPos := p.tok.Pos
	if err := p.next(); err != nil {
		return err
	}
	if p.startsExpr() {
		if !p.curIsFunc {
			return diag.ExitExpressionNotAllowed(exitPos)
		}
		t, err := p.expr()
		if err != nil {
			return err
		}
		expected := p.curReturnType.StripCallable()
		if !types.Equal(t, expected) {
			return diag.IncompatibleTypes(exitPos, expected.String(), t.String(), "'exit' statement")
		}
		p.em.EmitReturn(expected, true)
		return nil
	}
	if p.curIsFunc {
		return diag.MissingExitExpression(exitPos)
	}
	p.em.Emit("return")
	return nil
}

// if = "if" expr "then" statements { "elsif" expr "then" statements } [ "else" statements ] "end" .
func (p *Parser) ifStmt() error {
	condPos := p.tok.Pos
	if err := p.next(); err != nil { // consume 'if'
		return err
	}
	endLabel := p.em.GetLabel()
	for {
		t, err := p.expr()
		if err != nil {
			return err
		}
		if !t.IsBoolean() {
			return diag.IncompatibleTypes(condPos, "boolean", t.String(), "'if' condition")
		}
		if err := p.expect(token.THEN); err != nil {
			return err
		}
		nextLabel := p.em.GetLabel()
		p.em.EmitBranchIfZero(nextLabel)
		if err := p.statements(); err != nil {
			return err
		}
		p.em.EmitGoto(endLabel)
		p.em.EmitLabel(nextLabel)
		if p.tok.Kind != token.ELSIF {
			break
		}
		condPos = p.tok.Pos
		if err := p.next(); err != nil {
			return err
		}
	}
	if p.tok.Kind == token.ELSE {
		if err := p.next(); err != nil {
			return err
		}
		if err := p.statements(); err != nil {
			return err
		}
	}
	if err := p.expect(token.END); err != nil {
		return err
	}
	p.em.EmitLabel(endLabel)
	return nil
}

// while = "while" expr "do" statements "end" .
func (p *Parser) whileStmt() error {
	if err := p.next(); err != nil { // consume 'while'
		return err
	}
	headLabel := p.em.GetLabel()
	exitLabel := p.em.GetLabel()
	p.em.EmitLabel(headLabel)
	condPos := p.tok.Pos
	t, err := p.expr()
	if err != nil {
		return err
	}
	if !t.IsBoolean() {
		return diag.IncompatibleTypes(condPos, "boolean", t.String(), "'while' condition")
	}
	if err := p.expect(token.DO); err != nil {
		return err
	}
	p.em.EmitBranchIfZero(exitLabel)
	if err := p.statements(); err != nil {
		return err
	}
	p.em.EmitGoto(headLabel)
	if err := p.expect(token.END); err != nil {
		return err
	}
	p.em.EmitLabel(exitLabel)
	return nil
}

// read = "read" id [ index ] .
func (p *Parser) readStmt() error {
	if err := p.next(); err != nil { // consume 'read'
		return err
	}
	name, idPos, err := p.expectID()
	if err != nil {
		return err
	}
	props, ok := p.sym.Find(name)
	if !ok {
		return diag.UnknownIdentifier(idPos, name)
	}
	if !props.IsVariable() {
		return diag.NotAVariable(idPos, name)
	}
	if p.tok.Kind == token.LBRACK {
		if !props.Type.IsArray() {
			return diag.NotAnArray(idPos, name)
		}
		p.em.Emit("aload", strconv.Itoa(props.Offset))
		if err := p.index(); err != nil {
			return err
		}
		base := props.Type.StripArray()
		p.em.EmitRead(base)
		p.em.Emit(arrayStoreOp(base))
		return nil
	}
	if props.Type.IsArray() {
		return diag.ScalarVariableExpected(idPos, name)
	}
	p.em.EmitRead(props.Type)
	p.em.Emit("istore", strconv.Itoa(props.Offset))
	return nil
}

// name = id ( arglist | [ index ] "<-" ( expr | "array" simple ) ) .
func (p *Parser) nameStmt() error {
	name, idPos, err := p.expectID()
	if err != nil {
		return err
	}
	props, ok := p.sym.Find(name)
	if !ok {
		return diag.UnknownIdentifier(idPos, name)
	}

	if p.tok.Kind == token.LPAREN {
		if !props.Type.IsProcedure() {
			return diag.NotAProcedure(idPos, name)
		}
		return p.arglist(name, props, idPos)
	}

	if !props.IsVariable() {
		return diag.NotAVariable(idPos, name)
	}

	if p.tok.Kind == token.LBRACK {
		if !props.Type.IsArray() {
			return diag.NotAnArray(idPos, name)
		}
		p.em.Emit("aload", strconv.Itoa(props.Offset))
		if err := p.index(); err != nil {
			return err
		}
		if err := p.expect(token.ASSIGN); err != nil {
			return err
		}
		base := props.Type.StripArray()
		exprPos := p.tok.Pos
		t, err := p.expr()
		if err != nil {
			return err
		}
		if !types.Equal(t, base) {
			return diag.IncompatibleTypes(exprPos, base.String(), t.String(), fmt.Sprintf("assignment to '%s'", name))
		}
		p.em.Emit(arrayStoreOp(base))
		return nil
	}

	if p.tok.Kind != token.ASSIGN {
		return diag.ArglistOrAssignmentExpected(p.tok.Pos, p.tok.Kind.String())
	}
	if err := p.next(); err != nil {
		return err
	}

	if props.Type.IsArray() {
		if p.tok.Kind == token.ARRAY {
			if err := p.next(); err != nil {
				return err
			}
			sizePos := p.tok.Pos
			t, err := p.simple()
			if err != nil {
				return err
			}
			if !t.IsInteger() {
				return diag.IncompatibleTypes(sizePos, "integer", t.String(), "array allocation size")
			}
			p.em.EmitNewArray(props.Type.StripArray())
			p.em.Emit("astore", strconv.Itoa(props.Offset))
			return nil
		}
		if p.startsExpr() {
			exprPos := p.tok.Pos
			t, err := p.expr()
			if err != nil {
				return err
			}
			if !types.Equal(t, props.Type) {
				return diag.IncompatibleTypes(exprPos, props.Type.String(), t.String(), fmt.Sprintf("assignment to '%s'", name))
			}
			p.em.Emit("astore", strconv.Itoa(props.Offset))
			return nil
		}
		return diag.ArrayAllocationOrExpressionExpected(p.tok.Pos, p.tok.Kind.String())
	}

	exprPos := p.tok.Pos
	t, err := p.expr()
	if err != nil {
		return err
	}
	if !types.Equal(t, props.Type) {
		return diag.IncompatibleTypes(exprPos, props.Type.String(), t.String(), fmt.Sprintf("assignment to '%s'", name))
	}
	p.em.Emit("istore", strconv.Itoa(props.Offset))
	return nil
}

// write = "write" (string|expr) { "&" (string|expr) } .
func (p *Parser) writeStmt() error {
	writePos := p.tok.Pos
	if err := p.next(); err != nil { // consume 'write'
		return err
	}
	if err := p.writeItem(writePos); err != nil {
		return err
	}
	for p.tok.Kind == token.AMP {
		if err := p.next(); err != nil {
			return err
		}
		if err := p.writeItem(writePos); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) writeItem(writePos pos.Pos) error {
	if p.tok.Kind == token.STR {
		s := p.tok.Text
		if err := p.next(); err != nil {
			return err
		}
		p.em.EmitPrintString(s)
		return nil
	}
	if !p.startsExpr() {
		return diag.ExpressionOrStringExpected(p.tok.Pos, p.tok.Kind.String())
	}
	p.em.EmitPrintPrefix()
	t, err := p.expr()
	if err != nil {
		return err
	}
	if t.IsArray() {
		return diag.IllegalArrayOperation(writePos, "write")
	}
	p.em.EmitPrintSuffix(t)
	return nil
}

// arglist = "(" [ expr { "," expr } ] ")" .
//
// callPos is the position of the call's identifier, used for arity
// diagnostics ("at the call", per spec.md §7).
func (p *Parser) arglist(name string, props *symtab.IdProp, callPos pos.Pos) error {
	if err := p.expect(token.LPAREN); err != nil {
		return err
	}
	var args []types.ValType
	var argPos []pos.Pos
	if p.tok.Kind != token.RPAREN {
		for {
			start := p.tok.Pos
			t, err := p.expr()
			if err != nil {
				return err
			}
			args = append(args, t)
			argPos = append(argPos, start)
			if p.tok.Kind != token.COMMA {
				break
			}
			if err := p.next(); err != nil {
				return err
			}
		}
	}
	if err := p.expect(token.RPAREN); err != nil {
		return err
	}
	if len(args) > len(props.Params) {
		return diag.TooManyArguments(callPos, name)
	}
	if len(args) < len(props.Params) {
		return diag.TooFewArguments(callPos, name)
	}
	for i, t := range args {
		if !types.Equal(t, props.Params[i]) {
			return diag.IncompatibleTypes(argPos[i], props.Params[i].String(), t.String(),
				fmt.Sprintf("argument %d of call to '%s'", i+1, name))
		}
	}
	p.em.EmitCall(name, props)
	return nil
}

// index = "[" simple "]" .
func (p *Parser) index() error {
	lbrackPos := p.tok.Pos
	if err := p.expect(token.LBRACK); err != nil {
		return err
	}
	t, err := p.simple()
	if err != nil {
		return err
	}
	if !t.IsInteger() {
		return diag.IncompatibleTypes(lbrackPos, "integer", t.String(), "array index")
	}
	return p.expect(token.RBRACK)
}

// expr = simple [ relop simple ] .
func (p *Parser) expr() (types.ValType, error) {
	leftPos := p.tok.Pos
	left, err := p.simple()
	if err != nil {
		return 0, err
	}
	if !isRelOp(p.tok.Kind) {
		return left, nil
	}
	op := p.tok.Kind
	opPos := p.tok.Pos
	if err := p.next(); err != nil {
		return 0, err
	}
	rightPos := p.tok.Pos
	right, err := p.simple()
	if err != nil {
		return 0, err
	}
	if left.IsArray() || right.IsArray() {
		return 0, diag.IllegalArrayOperation(opPos, relOpName(op))
	}
	if !types.Equal(left, right) {
		return 0, diag.IncompatibleTypes(rightPos, left.String(), right.String(), "relational operator")
	}
	if isOrderingOp(op) && !left.IsInteger() {
		return 0, diag.IncompatibleTypes(leftPos, "integer", left.String(), "relational operator")
	}
	p.em.EmitCmp(relOpSymbol(op))
	return types.BOOLEAN, nil
}

// simple = [ "-" ] term { addop term } .
func (p *Parser) simple() (types.ValType, error) {
	neg := p.tok.Kind == token.MINUS
	negPos := p.tok.Pos
	if neg {
		if err := p.next(); err != nil {
			return 0, err
		}
	}
	t, err := p.term()
	if err != nil {
		return 0, err
	}
	if neg {
		if t.IsArray() {
			return 0, diag.IllegalArrayOperation(negPos, "unary '-'")
		}
		if !t.IsInteger() {
			return 0, diag.IncompatibleTypes(negPos, "integer", t.String(), "unary '-'")
		}
		p.em.Emit("ineg")
	}
	for isAddOp(p.tok.Kind) {
		op := p.tok.Kind
		opPos := p.tok.Pos
		if err := p.next(); err != nil {
			return 0, err
		}
		rPos := p.tok.Pos
		rt, err := p.term()
		if err != nil {
			return 0, err
		}
		if t.IsArray() || rt.IsArray() {
			return 0, diag.IllegalArrayOperation(opPos, addOpName(op))
		}
		switch op {
		case token.PLUS, token.MINUS:
			if !t.IsInteger() {
				return 0, diag.IncompatibleTypes(opPos, "integer", t.String(), addOpName(op))
			}
			if !rt.IsInteger() {
				return 0, diag.IncompatibleTypes(rPos, "integer", rt.String(), addOpName(op))
			}
			if op == token.PLUS {
				p.em.Emit("iadd")
			} else {
				p.em.Emit("isub")
			}
			t = types.INTEGER
		case token.OR:
			if !t.IsBoolean() {
				return 0, diag.IncompatibleTypes(opPos, "boolean", t.String(), "'or'")
			}
			if !rt.IsBoolean() {
				return 0, diag.IncompatibleTypes(rPos, "boolean", rt.String(), "'or'")
			}
			p.em.Emit("ior")
			t = types.BOOLEAN
		}
	}
	return t, nil
}

// term = factor { mulop factor } .
func (p *Parser) term() (types.ValType, error) {
	t, err := p.factor()
	if err != nil {
		return 0, err
	}
	for isMulOp(p.tok.Kind) {
		op := p.tok.Kind
		opPos := p.tok.Pos
		if err := p.next(); err != nil {
			return 0, err
		}
		rPos := p.tok.Pos
		rt, err := p.factor()
		if err != nil {
			return 0, err
		}
		if t.IsArray() || rt.IsArray() {
			return 0, diag.IllegalArrayOperation(opPos, mulOpName(op))
		}
		switch op {
		case token.STAR, token.SLASH, token.MOD:
			if !t.IsInteger() {
				return 0, diag.IncompatibleTypes(opPos, "integer", t.String(), mulOpName(op))
			}
			if !rt.IsInteger() {
				return 0, diag.IncompatibleTypes(rPos, "integer", rt.String(), mulOpName(op))
			}
			switch op {
			case token.STAR:
				p.em.Emit("imul")
			case token.SLASH:
				p.em.Emit("idiv")
			case token.MOD:
				p.em.Emit("irem")
			}
			t = types.INTEGER
		case token.AND:
			if !t.IsBoolean() {
				return 0, diag.IncompatibleTypes(opPos, "boolean", t.String(), "'and'")
			}
			if !rt.IsBoolean() {
				return 0, diag.IncompatibleTypes(rPos, "boolean", rt.String(), "'and'")
			}
			p.em.Emit("iand")
			t = types.BOOLEAN
		}
	}
	return t, nil
}

// factor = id [ index | arglist ] | num | "not" factor | "true" | "false" | "(" expr ")" .
func (p *Parser) factor() (types.ValType, error) {
	switch p.tok.Kind {
	case token.ID:
		name, idPos, err := p.expectID()
		if err != nil {
			return 0, err
		}
		props, ok := p.sym.Find(name)
		if !ok {
			return 0, diag.UnknownIdentifier(idPos, name)
		}
		switch p.tok.Kind {
		case token.LBRACK:
			if props.Type.IsCallable() {
				return 0, diag.NotAVariable(idPos, name)
			}
			if !props.Type.IsArray() {
				return 0, diag.NotAnArray(idPos, name)
			}
			p.em.Emit("aload", strconv.Itoa(props.Offset))
			if err := p.index(); err != nil {
				return 0, err
			}
			base := props.Type.StripArray()
			p.em.Emit(arrayLoadOp(base))
			return base, nil
		case token.LPAREN:
			if !props.Type.IsFunction() {
				return 0, diag.NotAFunction(idPos, name)
			}
			if err := p.arglist(name, props, idPos); err != nil {
				return 0, err
			}
			return props.Type.StripCallable(), nil
		default:
			if props.Type.IsCallable() {
				return 0, diag.MissingArgumentList(idPos, name)
			}
			if props.Type.IsArray() {
				p.em.Emit("aload", strconv.Itoa(props.Offset))
			} else {
				p.em.Emit("iload", strconv.Itoa(props.Offset))
			}
			return props.Type, nil
		}
	case token.NUM:
		v := p.tok.IntVal
		if err := p.next(); err != nil {
			return 0, err
		}
		p.em.Emit("ldc", strconv.Itoa(int(v)))
		return types.INTEGER, nil
	case token.NOT:
		notPos := p.tok.Pos
		if err := p.next(); err != nil {
			return 0, err
		}
		t, err := p.factor()
		if err != nil {
			return 0, err
		}
		if t.IsArray() {
			return 0, diag.IllegalArrayOperation(notPos, "'not'")
		}
		if !t.IsBoolean() {
			return 0, diag.IncompatibleTypes(notPos, "boolean", t.String(), "'not'")
		}
		p.em.Emit("iconst_1")
		p.em.Emit("ixor")
		return types.BOOLEAN, nil
	case token.TRUE:
		if err := p.next(); err != nil {
			return 0, err
		}
		p.em.Emit("iconst_1")
		return types.BOOLEAN, nil
	case token.FALSE:
		if err := p.next(); err != nil {
			return 0, err
		}
		p.em.Emit("iconst_0")
		return types.BOOLEAN, nil
	case token.LPAREN:
		if err := p.next(); err != nil {
			return 0, err
		}
		t, err := p.expr()
		if err != nil {
			return 0, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return 0, err
		}
		return t, nil
	}
	return 0, diag.FactorExpected(p.tok.Pos, p.tok.Kind.String())
}

// --- operator classification -------------------------------------------------

func isRelOp(k token.Kind) bool {
	switch k {
	case token.EQ, token.HASH, token.LT, token.LE, token.GT, token.GE:
		return true
	}
	return false
}

func isOrderingOp(k token.Kind) bool {
	switch k {
	case token.LT, token.LE, token.GT, token.GE:
		return true
	}
	return false
}

func relOpSymbol(k token.Kind) string {
	switch k {
	case token.EQ:
		return "="
	case token.HASH:
		return "#"
	case token.LT:
		return "<"
	case token.LE:
		return "<="
	case token.GT:
		return ">"
	case token.GE:
		return ">="
	}
	panic("parser: not a relational operator")
}

func relOpName(k token.Kind) string { return "relational operator " + relOpSymbol(k) }

func isAddOp(k token.Kind) bool {
	switch k {
	case token.PLUS, token.MINUS, token.OR:
		return true
	}
	return false
}

func addOpName(k token.Kind) string {
	switch k {
	case token.PLUS:
		return "'+'"
	case token.MINUS:
		return "'-'"
	case token.OR:
		return "'or'"
	}
	panic("parser: not an additive operator")
}

func isMulOp(k token.Kind) bool {
	switch k {
	case token.STAR, token.SLASH, token.MOD, token.AND:
		return true
	}
	return false
}

func mulOpName(k token.Kind) string {
	switch k {
	case token.STAR:
		return "'*'"
	case token.SLASH:
		return "'/'"
	case token.MOD:
		return "'mod'"
	case token.AND:
		return "'and'"
	}
	panic("parser: not a multiplicative operator")
}

func arrayLoadOp(base types.ValType) string {
	if base.IsBoolean() {
		return "baload"
	}
	return "iaload"
}

func arrayStoreOp(base types.ValType) string {
	if base.IsBoolean() {
		return "bastore"
	}
	return "iastore"
}
