package parser

import (
	"errors"
	"fmt"
)

// start is the Last kind of a State that has not consumed anything yet.
const start TokenKind = 0

var (
	fromStart = []recognizer{
		lexeme(describeStanza), lexeme(testStanza), lexeme(openParen), lexeme(closeParen), lexeme(endOfInput),
	}
	fromStanza = []recognizer{
		title, lexeme(describeStanza), lexeme(testStanza), lexeme(openParen), lexeme(closeParen), lexeme(endOfInput),
	}
	fromTitle = fromStart
	fromOpen  = []recognizer{
		lexeme(closeParen), lexeme(openParen), lexeme(describeStanza), lexeme(testStanza), lexeme(endOfInput),
	}
	fromClose = []recognizer{
		lexeme(openParen), lexeme(closeParen), lexeme(describeStanza), lexeme(testStanza), lexeme(endOfInput),
	}
)

// alternatives returns the ordered recognizers to try after a token of
// kind last.
func alternatives(last TokenKind) []recognizer {
	switch last {
	case start:
		return fromStart
	case DescribeStanza, TestStanza:
		return fromStanza
	case TitleText:
		return fromTitle
	case OpenBracket:
		return fromOpen
	case CloseBracket:
		return fromClose
	case EndOfInput:
		return nil
	}
	panic(fmt.Sprintf("parser: no alternatives for %v", last))
}

// nextDepth is the paren depth once tok has been consumed. A stanza counts
// its own opening paren.
func nextDepth(kind TokenKind, depth int) int {
	switch kind {
	case OpenBracket, DescribeStanza, TestStanza:
		return depth + 1
	case CloseBracket:
		return depth - 1
	case TitleText, EndOfInput:
		return depth
	}
	panic(fmt.Sprintf("parser: no depth rule for %v", kind))
}

// State is everything one parse run carries between steps. Step returns the
// successor and never writes to memory the receiver can see, so any State,
// including a hand-built one, may be stepped more than once.
type State struct {
	Cursor  Cursor
	Depth   int
	Stack   Stack
	Entries []Entry
	Last    TokenKind
	stanza  Token // most recent stanza, consulted when its title arrives
}

func NewState(src string) State {
	return State{
		Cursor: NewCursor(src),
		Stack:  Stack{{Label: "", OpenedAtDepth: 0}},
	}
}

func (s State) Done() bool {
	return s.Last == EndOfInput
}

// Step consumes one token. On error the receiver is returned unchanged.
func (s State) Step() (State, error) {
	if s.Done() {
		return s, nil
	}
	tok, cur, err := firstOf(s.Cursor, alternatives(s.Last))
	if errors.Is(err, errNoMatch) {
		return s, newError(s.Cursor, ErrUnrecognizedStructure, "no "+s.Last.expectation()+" matched")
	}
	if err != nil {
		return s, err
	}

	next := s
	next.Cursor = cur
	next.Last = tok.Kind

	switch tok.Kind {
	case OpenBracket:
		next.Depth = nextDepth(tok.Kind, s.Depth)
	case CloseBracket:
		if s.Depth == 0 {
			return s, newError(cur.at(tok.Offset), ErrUnrecognizedStructure, "unmatched closing paren")
		}
		next.Depth = nextDepth(tok.Kind, s.Depth)
		if len(next.Stack) > 1 && next.Depth < next.Stack.Top().OpenedAtDepth {
			next.Stack = next.Stack[:len(next.Stack)-1]
		}
	case DescribeStanza:
		next.Depth = nextDepth(tok.Kind, s.Depth)
		next.stanza = tok
		// Pushed with the parent label; the title, if one follows, renames it.
		next.Stack = push(s.Stack, Frame{Label: s.Stack.Top().Label, OpenedAtDepth: next.Depth})
	case TestStanza:
		next.Depth = nextDepth(tok.Kind, s.Depth)
		next.stanza = tok
	case TitleText:
		switch s.Last {
		case DescribeStanza:
			label := join(s.Stack.Parent().Label, tok.Text)
			next.Stack = push(s.Stack[:len(s.Stack)-1], Frame{Label: label, OpenedAtDepth: s.Stack.Top().OpenedAtDepth})
			next.Entries = record(s.Entries, Entry{Kind: Suite, Name: label, Title: tok.Text, Offset: s.stanza.Offset})
		case TestStanza:
			name := join(s.Stack.Top().Label, tok.Text)
			next.Entries = record(s.Entries, Entry{Kind: Test, Name: name, Title: tok.Text, Offset: s.stanza.Offset})
		default:
			panic(fmt.Sprintf("parser: title after %v", s.Last))
		}
	case EndOfInput:
	default:
		panic(fmt.Sprintf("parser: unhandled token %v", tok.Kind))
	}
	return next, nil
}

// push appends without writing into an array shared with earlier states.
func push(s Stack, f Frame) Stack {
	out := make(Stack, len(s), len(s)+1)
	copy(out, s)
	return append(out, f)
}

// record is push for the entry list.
func record(entries []Entry, e Entry) []Entry {
	out := make([]Entry, len(entries), len(entries)+1)
	copy(out, entries)
	return append(out, e)
}

func join(parent, title string) string {
	if parent == "" {
		return title
	}
	return parent + "/" + title
}

func (k TokenKind) expectation() string {
	switch k {
	case start:
		return "opening token"
	case DescribeStanza, TestStanza:
		return "title or token after " + k.String()
	}
	return "token after " + k.String()
}
