package parser

import "fmt"

// TokenKind tags the single variant a Token carries.
type TokenKind int

const (
	OpenBracket TokenKind = iota + 1
	CloseBracket
	DescribeStanza
	TestStanza
	TitleText
	EndOfInput
)

func (k TokenKind) String() string {
	switch k {
	case OpenBracket:
		return "OpenBracket"
	case CloseBracket:
		return "CloseBracket"
	case DescribeStanza:
		return "DescribeStanza"
	case TestStanza:
		return "TestStanza"
	case TitleText:
		return "TitleText"
	case EndOfInput:
		return "EndOfInput"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is the result of one parse step. Only TitleText carries Text.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int // byte offset where the token starts
}

// EntryKind distinguishes suites from tests in the result list.
type EntryKind int

const (
	Suite EntryKind = iota + 1
	Test
)

func (k EntryKind) String() string {
	switch k {
	case Suite:
		return "suite"
	case Test:
		return "test"
	}
	return "unknown"
}

// Entry is one discovered describe or test/it block.
type Entry struct {
	Kind   EntryKind
	Name   string // fully qualified, slash-joined
	Title  string
	Line   int // 1-based line of the stanza
	Offset int
}

// Frame is one active namespace on the stack.
type Frame struct {
	Label         string
	OpenedAtDepth int
}

// Stack holds the active namespaces. The root frame is at index 0 and the
// most recently pushed frame is last.
type Stack []Frame

func (s Stack) Top() Frame {
	return s[len(s)-1]
}

// Parent returns the frame below the top, or the root when only the root
// is present.
func (s Stack) Parent() Frame {
	if len(s) < 2 {
		return s[0]
	}
	return s[len(s)-2]
}
