package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitives_NoAdvanceOnFailure(t *testing.T) {
	c := NewCursor("x(")

	for _, r := range []recognizer{openParen, closeParen, endOfInput, describeStanza, testStanza, title} {
		_, next, err := r(c)
		require.ErrorIs(t, err, errNoMatch)
		assert.Equal(t, c, next)
	}

	_, next, err := quoteDelimiter(c)
	require.ErrorIs(t, err, errNoMatch)
	assert.Equal(t, c, next)
}

func TestQuoteDelimiter_ReportsMatchedCharacter(t *testing.T) {
	for _, q := range []string{`'`, `"`, "`"} {
		got, next, err := quoteDelimiter(NewCursor(q + "rest"))
		require.NoError(t, err)
		assert.Equal(t, q[0], got)
		assert.Equal(t, 1, next.Pos())
	}
}

func TestEndOfInput(t *testing.T) {
	tok, _, err := endOfInput(NewCursor(""))
	require.NoError(t, err)
	assert.Equal(t, EndOfInput, tok.Kind)

	_, _, err = endOfInput(NewCursor(" "))
	assert.ErrorIs(t, err, errNoMatch)
}

func TestStanza_ConsumesOpeningParen(t *testing.T) {
	tok, next, err := describeStanza(NewCursor(`describe("A")`))
	require.NoError(t, err)
	assert.Equal(t, DescribeStanza, tok.Kind)
	assert.Equal(t, len("describe("), next.Pos())

	tok, next, err = testStanza(NewCursor(`it.only("A")`))
	require.NoError(t, err)
	assert.Equal(t, TestStanza, tok.Kind)
	assert.Equal(t, len("it.only("), next.Pos())

	_, _, err = describeStanza(NewCursor(`test("A")`))
	assert.ErrorIs(t, err, errNoMatch)
}

func TestLexeme_SkipsLeadingWhitespace(t *testing.T) {
	tok, next, err := lexeme(testStanza)(NewCursor("\n\t  test(\"A\")"))
	require.NoError(t, err)
	assert.Equal(t, TestStanza, tok.Kind)
	assert.Equal(t, 4, tok.Offset)
	assert.Equal(t, 9, next.Pos())
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"double quotes", `"hello"`, "hello"},
		{"single quotes", `'say "hi"'`, `say "hi"`},
		{"backticks", "`it's ok`", "it's ok"},
		{"leading whitespace", `  "x"`, "x"},
		{"empty", `""`, ""},
		{"no escape processing", `'a\'b'`, `a\`},
		{"leading comments", "/* c */ // d\n \"x\"", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, _, err := title(NewCursor(tt.src))
			require.NoError(t, err)
			assert.Equal(t, TitleText, tok.Kind)
			assert.Equal(t, tt.want, tok.Text)
		})
	}
}

func TestTitle_Unterminated(t *testing.T) {
	c := NewCursor(`"never closed`)
	_, next, err := title(c)
	assert.ErrorIs(t, err, ErrUnterminatedTitle)
	assert.Equal(t, c, next)
}

func TestNextDepth(t *testing.T) {
	assert.Equal(t, 3, nextDepth(OpenBracket, 2))
	assert.Equal(t, 1, nextDepth(CloseBracket, 2))
	assert.Equal(t, 3, nextDepth(DescribeStanza, 2))
	assert.Equal(t, 3, nextDepth(TestStanza, 2))
	assert.Equal(t, 2, nextDepth(TitleText, 2))
	assert.Equal(t, 2, nextDepth(EndOfInput, 2))
}

func TestAlternatives_TitleOnlyAfterStanza(t *testing.T) {
	c := NewCursor(`"A"`)
	for _, last := range []TokenKind{start, TitleText, OpenBracket, CloseBracket} {
		// outside a stanza a string is filler
		tok, _, err := firstOf(c, alternatives(last))
		require.NoError(t, err)
		assert.Equal(t, EndOfInput, tok.Kind, last.String())
	}
	for _, last := range []TokenKind{DescribeStanza, TestStanza} {
		tok, _, err := firstOf(c, alternatives(last))
		require.NoError(t, err)
		assert.Equal(t, TitleText, tok.Kind)
	}
	assert.Nil(t, alternatives(EndOfInput))
}

func TestStep_StackTracksOpenDescribes(t *testing.T) {
	s := NewState(`describe("A", () => { describe("B", () => {}); })`)

	var kinds []TokenKind
	var sizes []int
	for !s.Done() {
		next, err := s.Step()
		require.NoError(t, err)
		s = next
		kinds = append(kinds, s.Last)
		sizes = append(sizes, len(s.Stack))
	}

	assert.Equal(t, []TokenKind{
		DescribeStanza, TitleText, OpenBracket, CloseBracket,
		DescribeStanza, TitleText, OpenBracket, CloseBracket,
		CloseBracket, CloseBracket, EndOfInput,
	}, kinds)
	assert.Equal(t, []int{2, 2, 2, 2, 3, 3, 3, 3, 2, 1, 1}, sizes)
	assert.Equal(t, 0, s.Depth)
	assert.Equal(t, Stack{{Label: "", OpenedAtDepth: 0}}, s.Stack)
}

func TestStep_FromConstructedState(t *testing.T) {
	s := State{
		Cursor: NewCursor(`"leaf"`),
		Depth:  2,
		Stack:  Stack{{"", 0}, {"outer", 1}, {"outer", 2}},
		Last:   DescribeStanza,
	}

	next, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, Frame{Label: "outer/leaf", OpenedAtDepth: 2}, next.Stack.Top())
	require.Len(t, next.Entries, 1)
	assert.Equal(t, "outer/leaf", next.Entries[0].Name)

	// the earlier state's stack is untouched
	assert.Equal(t, "outer", s.Stack.Top().Label)
}

func TestStep_SameStateTwice(t *testing.T) {
	s := State{
		Stack:   Stack{{Label: "", OpenedAtDepth: 0}},
		Depth:   1,
		Entries: make([]Entry, 0, 4),
		Last:    TestStanza,
	}

	first := s
	first.Cursor = NewCursor(`"one"`)
	a, err := first.Step()
	require.NoError(t, err)

	second := s
	second.Cursor = NewCursor(`"two"`)
	b, err := second.Step()
	require.NoError(t, err)

	assert.Equal(t, []string{"one"}, Names(a.Entries))
	assert.Equal(t, []string{"two"}, Names(b.Entries))
	assert.Empty(t, s.Entries)
}

func TestStep_ErrorLeavesStateUnchanged(t *testing.T) {
	s := NewState(`)`)
	next, err := s.Step()
	require.ErrorIs(t, err, ErrUnrecognizedStructure)
	assert.Equal(t, s, next)
}

func TestStep_DoneIsTerminal(t *testing.T) {
	s := NewState("")
	s, err := s.Step()
	require.NoError(t, err)
	require.True(t, s.Done())

	again, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, s, again)
}
