package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/lex"
	"github.com/asthra-lang/asthrac/internal/source"
)

func scan(t *testing.T, src string) ([]lex.Token, *diag.Engine) {
	t.Helper()
	mgr := source.New()
	id := mgr.AddVirtual("test.asthra", []byte(src))
	engine := diag.NewEngine(mgr, diag.SuppressionPolicy{})
	l := lex.New(mgr, id, engine)

	var toks []lex.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == lex.EOF {
			break
		}
	}
	return toks, engine
}

func TestLexKeywordsAndIdents(t *testing.T) {
	toks, engine := scan(t, "pub fn main")
	require.False(t, engine.HasErrors())
	require.Len(t, toks, 4) // pub, fn, main, EOF
	assert.Equal(t, lex.Keyword, toks[0].Kind)
	assert.Equal(t, "pub", toks[0].Lexeme)
	assert.Equal(t, lex.Keyword, toks[1].Kind)
	assert.Equal(t, lex.Ident, toks[2].Kind)
	assert.Equal(t, "main", toks[2].Lexeme)
}

func TestLexIntegerBases(t *testing.T) {
	toks, engine := scan(t, "42 0x2A 0o52 0b101010")
	require.False(t, engine.HasErrors())
	require.Len(t, toks, 5)
	for i := 0; i < 4; i++ {
		assert.Equal(t, lex.IntLiteral, toks[i].Kind)
		assert.EqualValues(t, 42, toks[i].Literal.Int)
	}
}

func TestLexFloat(t *testing.T) {
	toks, engine := scan(t, "3.14 2.5e10")
	require.False(t, engine.HasErrors())
	assert.Equal(t, lex.FloatLiteral, toks[0].Kind)
	assert.InDelta(t, 3.14, toks[0].Literal.Float, 0.0001)
	assert.Equal(t, lex.FloatLiteral, toks[1].Kind)
}

func TestLexCharEscapes(t *testing.T) {
	toks, engine := scan(t, `'\n' 'x' '\x41' '\u{1F600}'`)
	require.False(t, engine.HasErrors())
	require.Len(t, toks, 5)
	assert.Equal(t, '\n', toks[0].Literal.Rune)
	assert.Equal(t, 'x', toks[1].Literal.Rune)
	assert.Equal(t, 'A', toks[2].Literal.Rune)
	assert.Equal(t, rune(0x1F600), toks[3].Literal.Rune)
}

func TestLexSingleLineString(t *testing.T) {
	toks, engine := scan(t, `"hello\nworld"`)
	require.False(t, engine.HasErrors())
	assert.Equal(t, "hello\nworld", toks[0].Literal.Str)
}

func TestLexProcessedMultilineStringNormalizesIndentation(t *testing.T) {
	src := "\"\"\"\n    line one\n    line two\n    \"\"\""
	toks, engine := scan(t, src)
	require.False(t, engine.HasErrors())
	require.Equal(t, lex.StringLiteral, toks[0].Kind)
	assert.Equal(t, "line one\nline two", toks[0].Literal.Str)
}

func TestLexRawMultilineStringSkipsEscapes(t *testing.T) {
	src := `r"""` + "\n" + `no \n escape here` + "\n" + `"""`
	toks, engine := scan(t, src)
	require.False(t, engine.HasErrors())
	require.Equal(t, lex.StringLiteral, toks[0].Kind)
	assert.True(t, toks[0].Literal.IsRaw)
	assert.Contains(t, toks[0].Literal.Str, `\n escape here`)
}

func TestLexNestedBlockComment(t *testing.T) {
	toks, engine := scan(t, "/* outer /* inner */ still outer */ fn")
	require.False(t, engine.HasErrors())
	require.Len(t, toks, 2)
	assert.Equal(t, lex.Keyword, toks[0].Kind)
	assert.Equal(t, "fn", toks[0].Lexeme)
}

func TestLexUnterminatedStringIsError(t *testing.T) {
	toks, engine := scan(t, `"unterminated`)
	require.True(t, engine.HasErrors())
	assert.Equal(t, lex.Error, toks[0].Kind)
	assert.Equal(t, diag.CodeUnterminatedString, engine.All()[0].Code)
}

func TestLexUnterminatedBlockCommentIsError(t *testing.T) {
	_, engine := scan(t, "/* never closed")
	require.True(t, engine.HasErrors())
	assert.Equal(t, diag.CodeUnterminatedComment, engine.All()[0].Code)
}

// TestLexRoundTrip verifies that reconstructing a lexeme from its span
// equals the original source text, for every non-trivia token (spec.md §8).
func TestLexRoundTrip(t *testing.T) {
	src := `pub fn f(x: i32) -> i32 { return x + 1; }`
	mgr := source.New()
	id := mgr.AddVirtual("rt.asthra", []byte(src))
	engine := diag.NewEngine(mgr, diag.SuppressionPolicy{})
	l := lex.New(mgr, id, engine)

	for {
		tok := l.Next()
		if tok.Kind == lex.EOF {
			break
		}
		got := mgr.Snippet(tok.Span)
		assert.Equal(t, tok.Lexeme, got, "token %v", tok)
	}
	require.False(t, engine.HasErrors())
}

func TestOperatorTokenization(t *testing.T) {
	toks, engine := scan(t, "<<= >>= ..= == != <= >= && || ->")
	require.False(t, engine.HasErrors())
	kinds := []lex.Kind{lex.ShlEq, lex.ShrEq, lex.DotDotEq, lex.EqEq, lex.NotEq, lex.LtEq, lex.GtEq, lex.AmpAmp, lex.PipePipe, lex.Arrow}
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
}
