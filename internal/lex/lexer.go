package lex

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/source"
)

// Lexer is a lazy token source over a single file's bytes: each call to
// Next advances by exactly one token. It never returns a Go error; lexical
// problems are reported to the bound diag.Engine and surfaced as an Error
// token so the parser can resynchronize (spec.md §4.2).
type Lexer struct {
	mgr  *source.Manager
	file source.FileID
	data []byte
	diags *diag.Engine

	pos int // current byte offset into data

	pendingDoc []string // accumulated doc-comment lines since the last non-trivia token
}

// New creates a Lexer over the bytes already loaded into mgr under file.
func New(mgr *source.Manager, file source.FileID, diags *diag.Engine) *Lexer {
	return &Lexer{mgr: mgr, file: file, data: mgr.Bytes(file), diags: diags}
}

func (l *Lexer) pos_() source.Position { return source.Position{File: l.file, Offset: l.pos} }

func (l *Lexer) eof() bool { return l.pos >= len(l.data) }

func (l *Lexer) peekByte() byte {
	if l.eof() {
		return 0
	}
	return l.data[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.data) {
		return 0
	}
	return l.data[l.pos+off]
}

func (l *Lexer) peekRune() (rune, int) {
	if l.eof() {
		return 0, 0
	}
	r, size := utf8.DecodeRune(l.data[l.pos:])
	return r, size
}

func (l *Lexer) advance(n int) { l.pos += n }

// TakeDocComment returns and clears any documentation-comment trivia
// accumulated since the last token, for the parser to attach to the next
// declaration it builds (spec.md §4.2: "retained as trivia attached to the
// next declaration").
func (l *Lexer) TakeDocComment() string {
	if len(l.pendingDoc) == 0 {
		return ""
	}
	doc := l.pendingDoc
	l.pendingDoc = nil
	joined := ""
	for i, line := range doc {
		if i > 0 {
			joined += "\n"
		}
		joined += line
	}
	return joined
}

// Next returns the next token, skipping whitespace and non-documentation
// comments. At end of input it returns a token of Kind EOF; that token (and
// only that one) may have a zero-length Span.
func (l *Lexer) Next() Token {
	l.skipTrivia()

	start := l.pos_()
	if l.eof() {
		return Token{Kind: EOF, Span: source.Span{Start: start, End: start}}
	}

	r, size := l.peekRune()

	switch {
	case r == 'r' && (l.peekByteAt(size) == '"'):
		return l.lexString(start, true)
	case isIdentStart(r):
		return l.lexIdentOrKeyword(start)
	case unicode.IsDigit(r):
		return l.lexNumber(start)
	case r == '"':
		return l.lexString(start, false)
	case r == '\'':
		return l.lexChar(start)
	default:
		return l.lexPunct(start, r, size)
	}
}

// skipTrivia consumes whitespace and comments, stashing the text of any
// "///"-style documentation comment line encountered along the way.
func (l *Lexer) skipTrivia() {
	for {
		if l.eof() {
			return
		}
		b := l.peekByte()
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			l.advance(1)
			continue
		}
		if b == '/' && l.peekByteAt(1) == '/' {
			l.skipLineComment()
			continue
		}
		if b == '/' && l.peekByteAt(1) == '*' {
			l.skipBlockComment()
			continue
		}
		return
	}
}

func (l *Lexer) skipLineComment() {
	isDoc := l.peekByteAt(2) == '/'
	start := l.pos
	for !l.eof() && l.peekByte() != '\n' {
		l.advance(1)
	}
	if isDoc {
		text := string(l.data[start:l.pos])
		l.pendingDoc = append(l.pendingDoc, text)
	}
}

// skipBlockComment consumes a /* ... */ comment, honoring nesting
// (spec.md §4.2: "block comments nest").
func (l *Lexer) skipBlockComment() {
	startTok := l.pos_()
	depth := 0
	l.advance(2) // opening /*
	depth++
	for depth > 0 {
		if l.eof() {
			l.diags.Report(diag.Diagnostic{
				Code:     diag.CodeUnterminatedComment,
				Severity: diag.Error,
				Message:  "unterminated block comment",
				Primary:  source.Span{Start: startTok, End: l.pos_()},
				Metadata: diag.Metadata{Category: diag.CategorySyntax},
			})
			return
		}
		if l.peekByte() == '/' && l.peekByteAt(1) == '*' {
			depth++
			l.advance(2)
			continue
		}
		if l.peekByte() == '*' && l.peekByteAt(1) == '/' {
			depth--
			l.advance(2)
			continue
		}
		_, size := l.peekRune()
		if size == 0 {
			size = 1
		}
		l.advance(size)
	}
}

// isIdentStart reports whether r can begin an identifier, per the Unicode
// identifier profile (letters and underscore). It tests the raw rune;
// width folding and NFC normalization are applied afterwards to the whole
// scanned identifier by lexIdentOrKeyword, using golang.org/x/text rather
// than hand-rolled Unicode tables.
func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *Lexer) lexIdentOrKeyword(start source.Position) Token {
	startOff := l.pos
	for {
		r, size := l.peekRune()
		if size == 0 || !isIdentCont(r) {
			break
		}
		l.advance(size)
	}
	raw := string(l.data[startOff:l.pos])
	// fold halfwidth/fullwidth variants to their canonical form, then
	// normalize to NFC, so visually-identical identifiers typed on
	// different input methods compare equal.
	lexeme := norm.NFC.String(width.Fold.String(raw))
	end := l.pos_()
	span := source.Span{Start: start, End: end}

	if Keywords[lexeme] {
		return Token{Kind: Keyword, Lexeme: lexeme, Span: span}
	}
	return Token{Kind: Ident, Lexeme: lexeme, Span: span}
}

func (l *Lexer) errorToken(start source.Position, code diag.Code, msg string) Token {
	span := source.Span{Start: start, End: l.pos_()}
	l.diags.Report(diag.Diagnostic{
		Code:     code,
		Severity: diag.Error,
		Message:  msg,
		Primary:  span,
		Metadata: diag.Metadata{Category: code.Category()},
	})
	l.resync()
	return Token{Kind: Error, Lexeme: string(l.data[span.Start.Offset:l.pos]), Span: source.Span{Start: start, End: l.pos_()}, Message: msg}
}

// resync advances past the rest of the offending token up to the next
// whitespace, as spec.md §4.2 requires ("resynchronizes at the next
// whitespace").
func (l *Lexer) resync() {
	for !l.eof() {
		b := l.peekByte()
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			return
		}
		l.advance(1)
	}
}

func (l *Lexer) lexPunct(start source.Position, r rune, size int) Token {
	two := func(k Kind) Token {
		l.advance(size + 1)
		return Token{Kind: k, Lexeme: string(r) + string(l.data[l.pos-1]), Span: source.Span{Start: start, End: l.pos_()}}
	}
	one := func(k Kind) Token {
		l.advance(size)
		return Token{Kind: k, Lexeme: string(r), Span: source.Span{Start: start, End: l.pos_()}}
	}
	three := func(k Kind, lexeme string) Token {
		l.advance(size + 2)
		return Token{Kind: k, Lexeme: lexeme, Span: source.Span{Start: start, End: l.pos_()}}
	}

	next := l.peekByteAt(size)
	switch r {
	case '(':
		return one(LParen)
	case ')':
		return one(RParen)
	case '{':
		return one(LBrace)
	case '}':
		return one(RBrace)
	case '[':
		return one(LBracket)
	case ']':
		return one(RBracket)
	case ',':
		return one(Comma)
	case ';':
		return one(Semicolon)
	case '#':
		return one(Hash)
	case ':':
		if next == ':' {
			return two(ColonColon)
		}
		return one(Colon)
	case '.':
		if next == '.' {
			if l.peekByteAt(size+1) == '=' {
				return three(DotDotEq, "..=")
			}
			return two(DotDot)
		}
		return one(Dot)
	case '-':
		if next == '>' {
			return two(Arrow)
		}
		if next == '=' {
			return two(MinusEq)
		}
		return one(Minus)
	case '+':
		if next == '=' {
			return two(PlusEq)
		}
		return one(Plus)
	case '*':
		if next == '=' {
			return two(StarEq)
		}
		return one(Star)
	case '/':
		if next == '=' {
			return two(SlashEq)
		}
		return one(Slash)
	case '%':
		if next == '=' {
			return two(PercentEq)
		}
		return one(Percent)
	case '&':
		if next == '&' {
			return two(AmpAmp)
		}
		if next == '=' {
			return two(AmpEq)
		}
		return one(Amp)
	case '|':
		if next == '|' {
			return two(PipePipe)
		}
		if next == '=' {
			return two(PipeEq)
		}
		return one(Pipe)
	case '^':
		if next == '=' {
			return two(CaretEq)
		}
		return one(Caret)
	case '!':
		if next == '=' {
			return two(NotEq)
		}
		return one(Bang)
	case '=':
		if next == '=' {
			return two(EqEq)
		}
		if next == '>' {
			return two(FatArrow)
		}
		return one(Eq)
	case '<':
		if next == '<' {
			if l.peekByteAt(size+1) == '=' {
				return three(ShlEq, "<<=")
			}
			return two(Shl)
		}
		if next == '=' {
			return two(LtEq)
		}
		return one(Lt)
	case '>':
		if next == '>' {
			if l.peekByteAt(size+1) == '=' {
				return three(ShrEq, ">>=")
			}
			return two(Shr)
		}
		if next == '=' {
			return two(GtEq)
		}
		return one(Gt)
	default:
		l.advance(size)
		return l.errorToken(start, diag.CodeInvalidCharacter, "unexpected character "+string(r))
	}
}
