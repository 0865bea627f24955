/*
File    : camps/lexer/lexer.go

Package lexer turns CAMPS source text into a token stream terminated by an
End sentinel (spec.md §4.1). It is a hand-written, byte-oriented scanner in
the same style as the teacher's lexer.Lexer: a Current byte, a Position
index, and a NextToken-shaped dispatch, here driven to completion by Scan.
*/
package lexer

import (
	"strings"

	"github.com/camps-lang/camps/token"
)

// Lexer scans one source string into CAMPS tokens. It tracks its own
// position, current byte, and line number, and advances one byte at a
// time the way the teacher's Lexer does — there is no backtracking past
// the single byte of lookahead peek() exposes.
//
// Fields:
//   - src: the entire source text, read once at construction
//   - pos: the current index into src (0-indexed)
//   - line: the current 1-indexed line number, used to tag every token
//     and every LexError
//   - current: the byte at pos, or 0 past end of input
type Lexer struct {
	src     string
	pos     int
	line    int
	current byte
}

// New creates a Lexer positioned at the start of src, with current
// already loaded from the first byte (or 0 for an empty source).
//
// Parameters:
//   - src: the CAMPS source text to tokenize
//
// Returns:
//   - *Lexer: a lexer ready for next() or Scan to drive
func New(src string) *Lexer {
	l := &Lexer{src: src, pos: 0, line: 1}
	l.current = l.byteAt(0)
	return l
}

// byteAt returns the byte at index i, or 0 if i is past the end of src —
// a single sentinel value next() and peek() can both test against
// without a separate bounds check at every call site.
func (l *Lexer) byteAt(i int) byte {
	if i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

// peek looks one byte past current without consuming it, used to
// disambiguate the composite operators (`<=`, `>=`, `<>`, `<-`) from
// their single-character prefixes.
func (l *Lexer) peek() byte {
	return l.byteAt(l.pos + 1)
}

// advance consumes current and loads the next byte into it.
func (l *Lexer) advance() {
	l.pos++
	l.current = l.byteAt(l.pos)
}

// atEnd reports whether the scanner has consumed all of src.
func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

// Scan tokenizes the whole of src in one pass and returns the complete
// token list, always terminated by a single token.End, or the first
// LexError encountered (spec.md §7: "abort with location; no partial
// token stream" — a failed Scan returns no tokens at all, not the
// prefix it managed to read).
//
// Parameters:
//   - src: the CAMPS source text to tokenize
//
// Returns:
//   - []token.Token: the full token stream ending in token.End
//   - error: the first *LexError hit, if any
//
// Example:
//
//	toks, err := lexer.Scan("DECLARE x : INTEGER\n")
func Scan(src string) ([]token.Token, error) {
	l := New(src)
	var toks []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.End {
			return toks, nil
		}
	}
}

// next returns the single next token, first skipping whitespace and `//`
// comments. A run of one or more newlines (and the whitespace between
// them) collapses to one NL token, since spec.md §4.1 treats consecutive
// blank lines as a single statement separator. It returns a *LexError if
// the current character doesn't begin any token CAMPS recognizes.
func (l *Lexer) next() (token.Token, error) {
	l.skipWhitespaceAndComments()

	line := l.line
	if l.atEnd() {
		return token.New(token.End, "", line), nil
	}

	c := l.current

	if c == '\n' {
		for !l.atEnd() && (l.current == '\n' || l.current == '\r' || l.current == '\t' || l.current == ' ') {
			if l.current == '\n' {
				l.line++
			}
			l.advance()
		}
		return token.New(token.NL, "\n", line), nil
	}

	switch {
	case isDigit(c):
		return l.scanNumber(line), nil
	case isAlpha(c):
		return l.scanIdent(line), nil
	}

	// Single-character punctuation and operators that need no lookahead.
	switch c {
	case '=':
		l.advance()
		return token.New(token.Equal, "=", line), nil
	case '[':
		l.advance()
		return token.New(token.LBracket, "[", line), nil
	case ']':
		l.advance()
		return token.New(token.RBracket, "]", line), nil
	case '(':
		l.advance()
		return token.New(token.LParen, "(", line), nil
	case ')':
		l.advance()
		return token.New(token.RParen, ")", line), nil
	case ':':
		l.advance()
		return token.New(token.Colon, ":", line), nil
	case ',':
		l.advance()
		return token.New(token.Comma, ",", line), nil
	case '.':
		l.advance()
		return token.New(token.Dot, ".", line), nil
	case '*':
		l.advance()
		return token.New(token.Star, "*", line), nil
	case '/':
		l.advance()
		return token.New(token.Slash, "/", line), nil
	case '+':
		l.advance()
		return token.New(token.Plus, "+", line), nil
	case '-':
		l.advance()
		return token.New(token.Minus, "-", line), nil
	case '<':
		// `<=`, `<>`, and `<-` all share the `<` prefix; peek decides
		// which composite (if any) we're looking at before consuming.
		if l.peek() == '=' {
			l.advance()
			l.advance()
			return token.New(token.LessEqual, "<=", line), nil
		}
		if l.peek() == '>' {
			l.advance()
			l.advance()
			return token.New(token.NotEqual, "<>", line), nil
		}
		if l.peek() == '-' {
			l.advance()
			l.advance()
			return token.New(token.Arrow, "<-", line), nil
		}
		l.advance()
		return token.New(token.Less, "<", line), nil
	case '>':
		if l.peek() == '=' {
			l.advance()
			l.advance()
			return token.New(token.GreaterEqual, ">=", line), nil
		}
		l.advance()
		return token.New(token.Greater, ">", line), nil
	}

	return token.Token{}, &LexError{Line: line, Msg: "unexpected character " + strings.TrimSpace(string(c))}
}

// skipWhitespaceAndComments consumes spaces/tabs/carriage-returns and `//`
// line comments. Newlines are handled by next() itself, since a run of
// newlines collapses to a single NL token (spec.md §4.1).
func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch l.current {
		case ' ', '\t', '\r':
			l.advance()
		case '/':
			if l.peek() == '/' {
				for !l.atEnd() && l.current != '\n' {
					l.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// scanNumber reads a run of digits, optionally followed by a `.` and
// more digits, and classifies the result as token.Int or token.Float —
// CAMPS has no exponent or sign syntax in a numeric literal itself (a
// leading `-` is always the unary minus operator, handled by the
// parser, not the lexer).
func (l *Lexer) scanNumber(line int) token.Token {
	start := l.pos
	for !l.atEnd() && isDigit(l.current) {
		l.advance()
	}
	isFloat := false
	if l.current == '.' && isDigit(l.peek()) {
		isFloat = true
		l.advance()
		for !l.atEnd() && isDigit(l.current) {
			l.advance()
		}
	}
	lexeme := l.src[start:l.pos]
	if isFloat {
		return token.New(token.Float, lexeme, line)
	}
	return token.New(token.Int, lexeme, line)
}

// scanIdent reads a run of letters/digits/underscores starting with a
// letter or underscore, then looks the lexeme up in the keyword table
// (token.LookupIdent) so reserved words come back as their own token
// type rather than a generic identifier.
func (l *Lexer) scanIdent(line int) token.Token {
	start := l.pos
	for !l.atEnd() && (isAlpha(l.current) || isDigit(l.current)) {
		l.advance()
	}
	lexeme := l.src[start:l.pos]
	return token.New(token.LookupIdent(lexeme), lexeme, line)
}

// isDigit reports whether c is an ASCII decimal digit.
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isAlpha reports whether c can start or continue a CAMPS identifier:
// an ASCII letter or underscore (spec.md §4.1's "ASCII identifier
// alphabet").
func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}
