package lexer

import (
	"errors"
	"fmt"
	"strconv"

	"lumen/internal/diag"
	"lumen/internal/source"
	"lumen/internal/token"
)

// ErrTooManyErrors is returned when the run aborts on its local error budget.
var ErrTooManyErrors = errors.New("lexer: too many errors")

// Lexer turns the bytes of a single source into a token buffer. It reads the
// source's immutable data only and never touches the source manager.
type Lexer struct {
	src    *source.Source
	cursor Cursor
	buf    *token.Buffer
	opts   Options
	errs   uint
}

// Tokenize scans all of src and returns a fresh, unlocked token buffer
// ending in an EOF token. Lexical problems are reported through
// opts.Reporter; the error return is non-nil only when the run aborts early
// on the local error budget.
func Tokenize(src *source.Source, opts Options) (*token.Buffer, error) {
	lx := &Lexer{
		src:    src,
		cursor: NewCursor(src.Data()),
		buf:    new(token.Buffer),
		opts:   opts,
	}
	return lx.run()
}

func (lx *Lexer) run() (*token.Buffer, error) {
	for {
		lx.skipTrivia()
		if lx.cursor.EOF() {
			break
		}
		if lx.opts.MaxErrors > 0 && lx.errs >= lx.opts.MaxErrors {
			line, col := lx.cursor.Pos()
			lx.report(diag.Error, diag.LexTooManyErrors, lx.locAt(line, col),
				fmt.Sprintf("stopped after %d lexical errors", lx.errs))
			return nil, ErrTooManyErrors
		}

		ch := lx.cursor.Peek()
		switch {
		case isIdentStart(ch) || ch >= utf8RuneSelf:
			lx.scanIdentOrKeyword()
		case isDigit(ch):
			lx.scanNumber()
		case ch == '"':
			lx.scanString()
		default:
			lx.scanOperatorOrPunct()
		}
	}

	line, col := lx.cursor.Pos()
	lx.buf.CreateToken(token.EOF, lx.locAt(line, col))
	return lx.buf, nil
}

// locAt builds a single-position location.
func (lx *Lexer) locAt(line, col uint32) token.Location {
	return token.Location{
		Source:    lx.src.ID(),
		LineStart: line,
		ColStart:  col,
		LineEnd:   line,
		ColEnd:    col,
	}
}

// locFrom builds a location from a recorded start to the last consumed rune.
func (lx *Lexer) locFrom(startLine, startCol uint32) token.Location {
	endLine, endCol := lx.cursor.PrevPos()
	return token.Location{
		Source:    lx.src.ID(),
		LineStart: startLine,
		ColStart:  startCol,
		LineEnd:   endLine,
		ColEnd:    endCol,
	}
}

func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r':
			lx.cursor.Bump()
		case '/':
			switch lx.cursor.PeekAt(1) {
			case '/':
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' && lx.cursor.Peek() != '\r' {
					lx.cursor.Bump()
				}
			case '*':
				lx.skipBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

func (lx *Lexer) skipBlockComment() {
	startLine, startCol := lx.cursor.Pos()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
	lx.report(diag.Error, diag.LexUnterminatedBlockComment,
		lx.locAt(startLine, startCol), "unterminated block comment")
}

func (lx *Lexer) scanIdentOrKeyword() {
	startLine, startCol := lx.cursor.Pos()
	startOff := lx.cursor.Offset()
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if !isIdentContinue(ch) && ch < utf8RuneSelf {
			break
		}
		lx.cursor.Bump()
	}
	text := string(lx.cursor.Slice(startOff, lx.cursor.Offset()))
	loc := lx.locFrom(startLine, startCol)

	switch text {
	case "true":
		lx.buf.CreateBoolToken(token.BoolLit, loc, true)
	case "false":
		lx.buf.CreateBoolToken(token.BoolLit, loc, false)
	default:
		if kind := token.LookupKeyword(text); kind != token.Ident {
			lx.buf.CreateToken(kind, loc)
		} else {
			lx.buf.CreateStringToken(token.Ident, loc, text)
		}
	}
}

func (lx *Lexer) scanNumber() {
	startLine, startCol := lx.cursor.Pos()
	startOff := lx.cursor.Offset()

	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digitsStart := lx.cursor.Offset()
		for !lx.cursor.EOF() && isHexDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		loc := lx.locFrom(startLine, startCol)
		digits := string(lx.cursor.Slice(digitsStart, lx.cursor.Offset()))
		if digits == "" {
			lx.report(diag.Error, diag.LexBadNumber, loc, "hex literal has no digits")
			lx.buf.CreateToken(token.Invalid, loc)
			return
		}
		value, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			lx.report(diag.Error, diag.LexBadNumber, loc,
				fmt.Sprintf("invalid hex literal %q", "0x"+digits))
			lx.buf.CreateToken(token.Invalid, loc)
			return
		}
		lx.buf.CreateUintToken(token.IntLit, loc, value)
		return
	}

	for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	isFloat := false
	if lx.cursor.Peek() == '.' && isDigit(lx.cursor.PeekAt(1)) {
		isFloat = true
		lx.cursor.Bump()
		for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if ch := lx.cursor.Peek(); ch == 'e' || ch == 'E' {
		next := lx.cursor.PeekAt(1)
		nextNext := lx.cursor.PeekAt(2)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(nextNext)) {
			isFloat = true
			lx.cursor.Bump()
			if ch := lx.cursor.Peek(); ch == '+' || ch == '-' {
				lx.cursor.Bump()
			}
			for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	loc := lx.locFrom(startLine, startCol)
	text := string(lx.cursor.Slice(startOff, lx.cursor.Offset()))

	if isFloat {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			lx.report(diag.Error, diag.LexBadNumber, loc,
				fmt.Sprintf("invalid float literal %q", text))
			lx.buf.CreateToken(token.Invalid, loc)
			return
		}
		lx.buf.CreateFloatToken(token.FloatLit, loc, value)
		return
	}

	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		lx.report(diag.Error, diag.LexBadNumber, loc,
			fmt.Sprintf("integer literal %q out of range", text))
		lx.buf.CreateToken(token.Invalid, loc)
		return
	}
	lx.buf.CreateUintToken(token.IntLit, loc, value)
}

func (lx *Lexer) scanString() {
	startLine, startCol := lx.cursor.Pos()
	lx.cursor.Bump() // opening quote

	var value []byte
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' || lx.cursor.Peek() == '\r' {
			loc := lx.locFrom(startLine, startCol)
			lx.report(diag.Error, diag.LexUnterminatedString, loc, "unterminated string literal")
			lx.buf.CreateToken(token.Invalid, loc)
			return
		}
		b := lx.cursor.Bump()
		if b == '"' {
			break
		}
		if b != '\\' {
			value = append(value, b)
			continue
		}
		escLine, escCol := lx.cursor.PrevPos()
		esc := lx.cursor.Bump()
		switch esc {
		case 'n':
			value = append(value, '\n')
		case 't':
			value = append(value, '\t')
		case 'r':
			value = append(value, '\r')
		case '\\':
			value = append(value, '\\')
		case '"':
			value = append(value, '"')
		case '0':
			value = append(value, 0)
		default:
			lx.report(diag.Error, diag.LexBadEscape,
				token.Location{
					Source:    lx.src.ID(),
					LineStart: escLine,
					ColStart:  escCol,
					LineEnd:   escLine,
					ColEnd:    escCol + 1,
				},
				fmt.Sprintf("unknown escape sequence '\\%c'", esc))
			value = append(value, esc)
		}
	}

	lx.buf.CreateStringToken(token.StringLit, lx.locFrom(startLine, startCol), string(value))
}

func (lx *Lexer) scanOperatorOrPunct() {
	startLine, startCol := lx.cursor.Pos()
	ch := lx.cursor.Bump()

	var kind token.Kind
	switch ch {
	case '+':
		kind = token.Plus
	case '-':
		if lx.cursor.Eat('>') {
			kind = token.Arrow
		} else {
			kind = token.Minus
		}
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '=':
		if lx.cursor.Eat('=') {
			kind = token.EqEq
		} else {
			kind = token.Assign
		}
	case '!':
		if lx.cursor.Eat('=') {
			kind = token.BangEq
		} else {
			kind = token.Bang
		}
	case '<':
		if lx.cursor.Eat('=') {
			kind = token.LtEq
		} else {
			kind = token.Lt
		}
	case '>':
		if lx.cursor.Eat('=') {
			kind = token.GtEq
		} else {
			kind = token.Gt
		}
	case '&':
		if lx.cursor.Eat('&') {
			kind = token.AndAnd
		}
	case '|':
		if lx.cursor.Eat('|') {
			kind = token.OrOr
		}
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case ':':
		kind = token.Colon
	case '.':
		kind = token.Dot
	}

	loc := lx.locFrom(startLine, startCol)
	if kind == token.Invalid {
		lx.report(diag.Error, diag.LexUnknownChar, loc,
			fmt.Sprintf("unknown character %q", rune(ch)))
		return
	}
	lx.buf.CreateToken(kind, loc)
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
