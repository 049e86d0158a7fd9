package parser

import (
	"errors"
	"strings"
)

// errNoMatch is returned by a recognizer that found nothing at the cursor.
// It never leaves the package; the next ordered alternative is tried instead.
var errNoMatch = errors.New("no match")

// Cursor is a position in the source text. It is a value: recognizers
// return an advanced copy on success and the caller keeps the original on
// failure.
type Cursor struct {
	src string
	pos int
}

func NewCursor(src string) Cursor {
	return Cursor{src: src}
}

func (c Cursor) Pos() int {
	return c.pos
}

func (c Cursor) AtEnd() bool {
	return c.pos >= len(c.src)
}

func (c Cursor) rest() string {
	return c.src[c.pos:]
}

func (c Cursor) advance(n int) Cursor {
	c.pos += n
	return c
}

func (c Cursor) at(pos int) Cursor {
	c.pos = pos
	return c
}

// recognizer attempts to match one token at the cursor.
type recognizer func(c Cursor) (Token, Cursor, error)

// firstOf tries each alternative in order against the same cursor and
// returns the first match. Fatal errors stop the search.
func firstOf(c Cursor, alts []recognizer) (Token, Cursor, error) {
	for _, r := range alts {
		tok, next, err := r(c)
		if errors.Is(err, errNoMatch) {
			continue
		}
		return tok, next, err
	}
	return Token{}, c, errNoMatch
}

func literal(b byte, kind TokenKind) recognizer {
	return func(c Cursor) (Token, Cursor, error) {
		if c.AtEnd() || c.src[c.pos] != b {
			return Token{}, c, errNoMatch
		}
		return Token{Kind: kind, Offset: c.pos}, c.advance(1), nil
	}
}

var (
	openParen  = literal('(', OpenBracket)
	closeParen = literal(')', CloseBracket)
)

func endOfInput(c Cursor) (Token, Cursor, error) {
	if !c.AtEnd() {
		return Token{}, c, errNoMatch
	}
	return Token{Kind: EndOfInput, Offset: c.pos}, c, nil
}

func isQuote(b byte) bool {
	return b == '\'' || b == '"' || b == '`'
}

// quoteDelimiter matches one of ' " ` and reports which one.
func quoteDelimiter(c Cursor) (byte, Cursor, error) {
	if c.AtEnd() || !isQuote(c.src[c.pos]) {
		return 0, c, errNoMatch
	}
	return c.src[c.pos], c.advance(1), nil
}

func skipSpace(c Cursor) Cursor {
	trimmed := strings.TrimLeft(c.rest(), " \t\r\n")
	return c.advance(len(c.rest()) - len(trimmed))
}

// skipBlank moves past whitespace and comments. An unterminated block
// comment is left in place for skipFiller to report.
func skipBlank(c Cursor) Cursor {
	for {
		c = skipSpace(c)
		rest := c.rest()
		switch {
		case strings.HasPrefix(rest, "//"):
			nl := strings.IndexByte(rest, '\n')
			if nl < 0 {
				return c.advance(len(rest))
			}
			c = c.advance(nl + 1)
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				return c
			}
			c = c.advance(2 + end + 2)
		default:
			return c
		}
	}
}

// lexeme wraps a recognizer so that filler before the token is skipped.
func lexeme(r recognizer) recognizer {
	return func(c Cursor) (Token, Cursor, error) {
		start, err := skipFiller(c)
		if err != nil {
			return Token{}, c, err
		}
		tok, next, err := r(start)
		if err != nil {
			return Token{}, c, err
		}
		return tok, next, nil
	}
}

// skipFiller moves past everything that is not a paren or a stanza:
// identifiers, punctuation, string literals and comments.
func skipFiller(c Cursor) (Cursor, error) {
	src := c.src
	i := c.pos
	for i < len(src) {
		b := src[i]
		switch {
		case b == '(' || b == ')':
			return c.at(i), nil
		case isQuote(b):
			end := skipLiteral(src, i)
			switch {
			case end > 0:
				i = end
			case b == '`':
				return c, newError(c.at(i), ErrUnrecognizedStructure, "unterminated template literal")
			default:
				// An apostrophe in JSX text or a regex, not a string.
				i++
			}
		case b == '/' && i+1 < len(src) && src[i+1] == '/':
			nl := strings.IndexByte(src[i:], '\n')
			if nl < 0 {
				i = len(src)
			} else {
				i += nl + 1
			}
		case b == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return c, newError(c.at(i), ErrUnrecognizedStructure, "unterminated block comment")
			}
			i += 2 + end + 2
		case isIdentByte(b):
			if atBoundary(src, i) {
				if _, _, ok := matchStanza(src, i); ok {
					return c.at(i), nil
				}
			}
			for i < len(src) && isIdentByte(src[i]) {
				i++
			}
		default:
			i++
		}
	}
	return c.at(i), nil
}

// skipLiteral returns the offset just past the string literal opened at i,
// or -1 if it never closes. Backslash escapes the following byte. Only
// template literals may span lines.
func skipLiteral(src string, i int) int {
	q := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '\n':
			if q != '`' {
				return -1
			}
		case q:
			return j + 1
		}
	}
	return -1
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}

// atBoundary reports whether an identifier may start at i, i.e. it is not
// the tail of a longer identifier or a member access.
func atBoundary(src string, i int) bool {
	if i == 0 {
		return true
	}
	prev := src[i-1]
	return !isIdentByte(prev) && prev != '.'
}
