// Package lexer tokenises SIMPL-2021 source text, one token per call,
// handling nested comments and escaped string literals inline.
package lexer

import (
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/diag"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/pos"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/token"
)

// DefaultMaxIDLength is used when no MaxIDLength option is supplied.
const DefaultMaxIDLength = 64

// Lexer produces SIMPL-2021 tokens on demand against a single
// byte of pushed-back lookahead.
type Lexer struct {
	src         []byte
	off         int // byte offset of src[off], the lookahead byte
	p           pos.Pos
	maxIDLength int
}

// New reads all of r (source files are small; the teacher's own
// assembler reads its input the same way via bufio) and returns a Lexer
// positioned at the first byte.
func New(r io.Reader, maxIDLength int) (*Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "lexer: reading source")
	}
	if maxIDLength <= 0 {
		maxIDLength = DefaultMaxIDLength
	}
	return &Lexer{src: data, off: 0, p: pos.Start(), maxIDLength: maxIDLength}, nil
}

func (l *Lexer) peek() byte {
	if l.off >= len(l.src) {
		return 0
	}
	return l.src[l.off]
}

func (l *Lexer) peekAt(n int) byte {
	if l.off+n >= len(l.src) {
		return 0
	}
	return l.src[l.off+n]
}

func (l *Lexer) atEnd() bool { return l.off >= len(l.src) }

// advance consumes the lookahead byte and returns it, updating position.
func (l *Lexer) advance() byte {
	c := l.src[l.off]
	l.off++
	if c == '\n' {
		l.p = l.p.NextLine()
	} else {
		l.p = l.p.NextCol(1)
	}
	return c
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNum(c byte) bool { return isAlpha(c) || isDigit(c) }

func isPrintable(c byte) bool { return c >= 0x20 && c < 0x7f }

// Next returns the next token, or a fatal *diag.Diagnostic on any lexical
// error (unterminated comment/string, illegal character, overflow,
// identifier too long, bad escape, non-printable byte in a string).
func (l *Lexer) Next() (token.Token, error) {
	for {
		for !l.atEnd() && isSpace(l.peek()) {
			l.advance()
		}
		if l.atEnd() {
			return token.Token{Kind: token.EOF, Pos: l.p}, nil
		}
		if l.peek() == '(' && l.peekAt(1) == '*' {
			if err := l.skipComment(); err != nil {
				return token.Token{}, err
			}
			continue
		}
		break
	}

	start := l.p
	c := l.advance()

	switch {
	case isAlpha(c):
		return l.lexIdent(start, c)
	case isDigit(c):
		return l.lexNumber(start, c)
	case c == '"':
		return l.lexString(start)
	}

	switch c {
	case '=':
		return token.Token{Kind: token.EQ, Pos: start}, nil
	case '>':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.GE, Pos: start}, nil
		}
		return token.Token{Kind: token.GT, Pos: start}, nil
	case '<':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.LE, Pos: start}, nil
		}
		if l.peek() == '-' {
			l.advance()
			return token.Token{Kind: token.ASSIGN, Pos: start}, nil
		}
		return token.Token{Kind: token.LT, Pos: start}, nil
	case '#':
		return token.Token{Kind: token.HASH, Pos: start}, nil
	case '-':
		if l.peek() == '>' {
			l.advance()
			return token.Token{Kind: token.ARROW, Pos: start}, nil
		}
		return token.Token{Kind: token.MINUS, Pos: start}, nil
	case '+':
		return token.Token{Kind: token.PLUS, Pos: start}, nil
	case '/':
		return token.Token{Kind: token.SLASH, Pos: start}, nil
	case '*':
		return token.Token{Kind: token.STAR, Pos: start}, nil
	case '&':
		return token.Token{Kind: token.AMP, Pos: start}, nil
	case '[':
		return token.Token{Kind: token.LBRACK, Pos: start}, nil
	case ']':
		return token.Token{Kind: token.RBRACK, Pos: start}, nil
	case ',':
		return token.Token{Kind: token.COMMA, Pos: start}, nil
	case '(':
		return token.Token{Kind: token.LPAREN, Pos: start}, nil
	case ')':
		return token.Token{Kind: token.RPAREN, Pos: start}, nil
	case ';':
		return token.Token{Kind: token.SEMI, Pos: start}, nil
	}

	return token.Token{}, diag.IllegalChar(start, c)
}

func (l *Lexer) lexIdent(start pos.Pos, first byte) (token.Token, error) {
	buf := []byte{first}
	for !l.atEnd() && isAlphaNum(l.peek()) {
		buf = append(buf, l.advance())
	}
	if len(buf) > l.maxIDLength {
		return token.Token{}, diag.IdentifierTooLong(start, l.maxIDLength)
	}
	text := string(buf)
	if kind, ok := token.Lookup(text); ok {
		return token.Token{Kind: kind, Pos: start, Text: text}, nil
	}
	return token.Token{Kind: token.ID, Pos: start, Text: text}, nil
}

func (l *Lexer) lexNumber(start pos.Pos, first byte) (token.Token, error) {
	var v int64 = int64(first - '0')
	overflow := false
	for !l.atEnd() && isDigit(l.peek()) {
		d := l.advance()
		v = v*10 + int64(d-'0')
		if v > math.MaxInt32 {
			overflow = true
		}
	}
	if overflow {
		return token.Token{}, diag.NumberTooLarge(start)
	}
	return token.Token{Kind: token.NUM, Pos: start, IntVal: int32(v)}, nil
}

func (l *Lexer) lexString(start pos.Pos) (token.Token, error) {
	var buf []byte
	for {
		if l.atEnd() {
			return token.Token{}, diag.UnterminatedString(start)
		}
		c := l.peek()
		if c == '"' {
			l.advance()
			break
		}
		if c == '\\' {
			escPos := l.p
			l.advance()
			if l.atEnd() {
				return token.Token{}, diag.UnterminatedString(start)
			}
			e := l.advance()
			switch e {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case '"':
				buf = append(buf, '"')
			case '\\':
				buf = append(buf, '\\')
			default:
				return token.Token{}, diag.UnknownEscape(escPos, e)
			}
			continue
		}
		if !isPrintable(c) {
			return token.Token{}, diag.NonPrintableInString(l.p)
		}
		buf = append(buf, l.advance())
	}
	return token.Token{Kind: token.STR, Pos: start, Text: string(buf)}, nil
}

// skipComment consumes a nestable (* ... *) comment; the opening "(*"
// lookahead has already been confirmed by the caller but not consumed.
func (l *Lexer) skipComment() error {
	start := l.p
	l.advance() // '('
	l.advance() // '*'
	depth := 1
	for depth > 0 {
		if l.atEnd() {
			return diag.UnterminatedComment(start)
		}
		if l.peek() == '(' && l.peekAt(1) == '*' {
			l.advance()
			l.advance()
			depth++
			continue
		}
		if l.peek() == '*' && l.peekAt(1) == ')' {
			l.advance()
			l.advance()
			depth--
			continue
		}
		l.advance()
	}
	return nil
}
