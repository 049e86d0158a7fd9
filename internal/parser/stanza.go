package parser

import "strings"

const (
	keywordDescribe = "describe"
	keywordIt       = "it"
	keywordTest     = "test"
)

// modifiers accepted between the keyword and its paren, e.g. describe.only(.
var modifiers = []string{"only", "skip", "todo", "concurrent"}

// matchStanza checks for a stanza opening at i and returns its kind and
// width, including the opening paren.
func matchStanza(src string, i int) (TokenKind, int, bool) {
	rest := src[i:]
	for _, kw := range []struct {
		word string
		kind TokenKind
	}{
		{keywordDescribe, DescribeStanza},
		{keywordIt, TestStanza},
		{keywordTest, TestStanza},
	} {
		if !strings.HasPrefix(rest, kw.word) {
			continue
		}
		n := len(kw.word)
		if n < len(rest) && rest[n] == '.' {
			w := modifierWidth(rest[n+1:])
			if w == 0 {
				continue
			}
			n += 1 + w
		}
		if n < len(rest) && rest[n] == '(' {
			return kw.kind, n + 1, true
		}
	}
	return 0, 0, false
}

func modifierWidth(s string) int {
	for _, m := range modifiers {
		if strings.HasPrefix(s, m) {
			return len(m)
		}
	}
	return 0
}

func stanza(kind TokenKind) recognizer {
	return func(c Cursor) (Token, Cursor, error) {
		if c.AtEnd() || !atBoundary(c.src, c.pos) {
			return Token{}, c, errNoMatch
		}
		got, width, ok := matchStanza(c.src, c.pos)
		if !ok || got != kind {
			return Token{}, c, errNoMatch
		}
		return Token{Kind: kind, Offset: c.pos}, c.advance(width), nil
	}
}

var (
	describeStanza = stanza(DescribeStanza)
	testStanza     = stanza(TestStanza)
)

// title reads a quoted title directly after a stanza, past any whitespace
// or comments. The text is copied verbatim up to the next occurrence of the
// opening delimiter; there is no escape processing.
func title(c Cursor) (Token, Cursor, error) {
	start := skipBlank(c)
	q, body, err := quoteDelimiter(start)
	if err != nil {
		return Token{}, c, err
	}
	end := strings.IndexByte(body.rest(), q)
	if end < 0 {
		return Token{}, c, newError(start, ErrUnterminatedTitle, "title opened with "+string(q)+" is never closed")
	}
	return Token{Kind: TitleText, Text: body.rest()[:end], Offset: start.pos}, body.advance(end + 1), nil
}
