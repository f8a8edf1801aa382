package lex

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/source"
)

// lexNumber scans an integer or float literal. Integer literals may be
// decimal, hex (0x), octal (0o), or binary (0b); a value is accepted
// syntactically even if it needs all 128 bits, and range-checking against a
// concrete type happens during semantic analysis, not here (spec.md §4.2).
// No type suffix is permitted on any numeric literal.
func (l *Lexer) lexNumber(start source.Position) Token {
	startOff := l.pos

	if l.peekByte() == '0' && (l.peekByteAt(1) == 'x' || l.peekByteAt(1) == 'X') {
		return l.lexRadixInt(start, startOff, 16, "0123456789abcdefABCDEF")
	}
	if l.peekByte() == '0' && (l.peekByteAt(1) == 'o' || l.peekByteAt(1) == 'O') {
		return l.lexRadixInt(start, startOff, 8, "01234567")
	}
	if l.peekByte() == '0' && (l.peekByteAt(1) == 'b' || l.peekByteAt(1) == 'B') {
		return l.lexRadixInt(start, startOff, 2, "01")
	}

	for isASCIIDigit(l.peekByte()) {
		l.advance(1)
	}

	isFloat := false
	if l.peekByte() == '.' && isASCIIDigit(l.peekByteAt(1)) {
		isFloat = true
		l.advance(1)
		for isASCIIDigit(l.peekByte()) {
			l.advance(1)
		}
	}
	if l.peekByte() == 'e' || l.peekByte() == 'E' {
		save := l.pos
		l.advance(1)
		if l.peekByte() == '+' || l.peekByte() == '-' {
			l.advance(1)
		}
		if isASCIIDigit(l.peekByte()) {
			isFloat = true
			for isASCIIDigit(l.peekByte()) {
				l.advance(1)
			}
		} else {
			l.pos = save
		}
	}

	if isIdentStart(rune(l.peekByte())) {
		// a trailing letter directly after digits means a (forbidden) type
		// suffix or a malformed literal; either way it's invalid.
		for isIdentCont(rune(l.peekByte())) {
			l.advance(1)
		}
		span := source.Span{Start: start, End: l.pos_()}
		text := string(l.data[startOff:l.pos])
		return l.invalidNumeric(start, span, text)
	}

	text := string(l.data[startOff:l.pos])
	span := source.Span{Start: start, End: l.pos_()}

	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return l.invalidNumeric(start, span, text)
		}
		return Token{Kind: FloatLiteral, Lexeme: text, Span: span, Literal: LiteralPayload{Float: f}}
	}

	iv, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		// too large for int64: keep the decimal text for the 128-bit path
		// and range-check during semantic analysis.
		return Token{Kind: IntLiteral, Lexeme: text, Span: span, Literal: LiteralPayload{BigInt: text}}
	}
	return Token{Kind: IntLiteral, Lexeme: text, Span: span, Literal: LiteralPayload{Int: iv}}
}

func (l *Lexer) lexRadixInt(start source.Position, startOff int, radix int, digits string) Token {
	l.advance(2) // the "0x"/"0o"/"0b" prefix
	digitsStart := l.pos
	for strings.ContainsRune(digits, rune(l.peekByte())) {
		l.advance(1)
	}
	if l.pos == digitsStart {
		span := source.Span{Start: start, End: l.pos_()}
		return l.invalidNumeric(start, span, string(l.data[startOff:l.pos]))
	}
	text := string(l.data[startOff:l.pos])
	digitsOnly := string(l.data[digitsStart:l.pos])
	span := source.Span{Start: start, End: l.pos_()}

	iv, err := strconv.ParseUint(digitsOnly, radix, 64)
	if err != nil {
		// value needs more than 64 bits; accepted syntactically, decimal
		// BigInt form filled in during semantic analysis from digitsOnly.
		return Token{Kind: IntLiteral, Lexeme: text, Span: span, Literal: LiteralPayload{BigInt: digitsOnly}}
	}
	return Token{Kind: IntLiteral, Lexeme: text, Span: span, Literal: LiteralPayload{Int: int64(iv)}}
}

func (l *Lexer) invalidNumeric(start source.Position, span source.Span, text string) Token {
	l.diags.Report(diag.Diagnostic{
		Code:     diag.CodeInvalidNumericLiteral,
		Severity: diag.Error,
		Message:  "invalid numeric literal " + strconv.Quote(text),
		Primary:  span,
		Metadata: diag.Metadata{Category: diag.CategorySyntax},
	})
	return Token{Kind: Error, Lexeme: text, Span: span, Message: "invalid numeric literal"}
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

// decodeEscape decodes one escape from the shared escape set for character
// and single-line string literals (spec.md §4.2).
func decodeEscape(l *Lexer, start source.Position) (rune, bool) {
	// assumes the leading backslash has already been consumed.
	if l.eof() {
		return 0, false
	}
	b := l.peekByte()
	switch b {
	case 'n':
		l.advance(1)
		return '\n', true
	case 't':
		l.advance(1)
		return '\t', true
	case 'r':
		l.advance(1)
		return '\r', true
	case '\\':
		l.advance(1)
		return '\\', true
	case '\'':
		l.advance(1)
		return '\'', true
	case '"':
		l.advance(1)
		return '"', true
	case '0':
		l.advance(1)
		return 0, true
	case 'x':
		l.advance(1)
		hex := ""
		for i := 0; i < 2 && isHexDigit(l.peekByte()); i++ {
			hex += string(l.peekByte())
			l.advance(1)
		}
		if len(hex) != 2 {
			return 0, false
		}
		v, err := strconv.ParseInt(hex, 16, 32)
		if err != nil {
			return 0, false
		}
		return rune(v), true
	case 'u':
		l.advance(1)
		if l.peekByte() != '{' {
			return 0, false
		}
		l.advance(1)
		hex := ""
		for l.peekByte() != '}' && !l.eof() {
			hex += string(l.peekByte())
			l.advance(1)
		}
		if l.peekByte() != '}' || hex == "" {
			return 0, false
		}
		l.advance(1)
		v, err := strconv.ParseInt(hex, 16, 32)
		if err != nil || !isValidCodePoint(rune(v)) {
			return 0, false
		}
		return rune(v), true
	default:
		return 0, false
	}
}

func isHexDigit(b byte) bool {
	return isASCIIDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isValidCodePoint(r rune) bool {
	return r >= 0 && r <= unicode.MaxRune
}

// lexChar scans a single character literal, '…', supporting the escape
// table plus \xNN and \u{…} forms.
func (l *Lexer) lexChar(start source.Position) Token {
	l.advance(1) // opening '

	if l.eof() {
		return l.unterminatedChar(start)
	}

	var r rune
	if l.peekByte() == '\\' {
		l.advance(1)
		escStart := l.pos
		decoded, ok := decodeEscape(l, start)
		if !ok {
			span := source.Span{Start: start, End: l.pos_()}
			l.diags.Report(diag.Diagnostic{
				Code:     diag.CodeInvalidEscape,
				Severity: diag.Error,
				Message:  "invalid escape sequence",
				Primary:  span,
				Metadata: diag.Metadata{Category: diag.CategorySyntax},
			})
			l.resync()
			return Token{Kind: Error, Span: span, Message: "invalid escape sequence"}
		}
		_ = escStart
		r = decoded
	} else {
		rr, size := l.peekRune()
		if size == 0 {
			return l.unterminatedChar(start)
		}
		l.advance(size)
		r = rr
	}

	if l.peekByte() != '\'' {
		span := source.Span{Start: start, End: l.pos_()}
		l.diags.Report(diag.Diagnostic{
			Code:     diag.CodeInvalidCharacter,
			Severity: diag.Error,
			Message:  "character literal must contain exactly one code point",
			Primary:  span,
			Metadata: diag.Metadata{Category: diag.CategorySyntax},
		})
		l.resync()
		return Token{Kind: Error, Span: span, Message: "malformed character literal"}
	}
	l.advance(1) // closing '

	span := source.Span{Start: start, End: l.pos_()}
	return Token{
		Kind:   CharLiteral,
		Lexeme: string(l.data[span.Start.Offset:span.End.Offset]),
		Span:   span,
		Literal: LiteralPayload{Rune: r, Str: string(r)},
	}
}

func (l *Lexer) unterminatedChar(start source.Position) Token {
	span := source.Span{Start: start, End: l.pos_()}
	l.diags.Report(diag.Diagnostic{
		Code:     diag.CodeInvalidCharacter,
		Severity: diag.Error,
		Message:  "unterminated character literal",
		Primary:  span,
		Metadata: diag.Metadata{Category: diag.CategorySyntax},
	})
	return Token{Kind: Error, Span: span, Message: "unterminated character literal"}
}

// lexString scans a string literal in one of three forms: single-line
// "...", processed multi-line """...""", or (when raw is true, entered with
// the leading "r" already peeked but not consumed) raw multi-line
// r"""...""". Multi-line forms require the triple-quote delimiter; a lone
// '"' always starts a single-line string.
func (l *Lexer) lexString(start source.Position, raw bool) Token {
	if raw {
		l.advance(1) // the 'r'
	}

	if l.peekByte() == '"' && l.peekByteAt(1) == '"' && l.peekByteAt(2) == '"' {
		return l.lexMultilineString(start, raw)
	}
	if raw {
		// "r" followed by a single '"' with no triple-quote is not a valid
		// raw-string opener; treat as an error token rather than silently
		// reinterpreting as an identifier plus a string.
		return l.errorToken(start, diag.CodeInvalidCharacter, "raw string literal requires a triple-quote delimiter: r\"\"\"...\"\"\"")
	}
	return l.lexSingleLineString(start)
}

func (l *Lexer) lexSingleLineString(start source.Position) Token {
	l.advance(1) // opening "
	var sb strings.Builder
	for {
		if l.eof() || l.peekByte() == '\n' {
			span := source.Span{Start: start, End: l.pos_()}
			l.diags.Report(diag.Diagnostic{
				Code:     diag.CodeUnterminatedString,
				Severity: diag.Error,
				Message:  "unterminated string literal",
				Primary:  span,
				Metadata: diag.Metadata{Category: diag.CategorySyntax},
			})
			return Token{Kind: Error, Span: span, Message: "unterminated string literal"}
		}
		if l.peekByte() == '"' {
			l.advance(1)
			break
		}
		if l.peekByte() == '\\' {
			l.advance(1)
			decoded, ok := decodeEscape(l, start)
			if !ok {
				span := source.Span{Start: start, End: l.pos_()}
				l.diags.Report(diag.Diagnostic{
					Code:     diag.CodeInvalidEscape,
					Severity: diag.Error,
					Message:  "invalid escape sequence",
					Primary:  span,
					Metadata: diag.Metadata{Category: diag.CategorySyntax},
				})
				l.resync()
				return Token{Kind: Error, Span: span, Message: "invalid escape sequence"}
			}
			sb.WriteRune(decoded)
			continue
		}
		r, size := l.peekRune()
		l.advance(size)
		sb.WriteRune(r)
	}
	span := source.Span{Start: start, End: l.pos_()}
	return Token{
		Kind:   StringLiteral,
		Lexeme: string(l.data[span.Start.Offset:span.End.Offset]),
		Span:   span,
		Literal: LiteralPayload{Str: sb.String()},
	}
}

// lexMultilineString handles both the processed (""\"...\"") and raw
// (r"""..."""") triple-quoted forms. Both share the same indentation
// normalization: the longest common leading-whitespace prefix across
// non-empty content lines is stripped (spec.md §4.2).
func (l *Lexer) lexMultilineString(start source.Position, raw bool) Token {
	l.advance(3) // opening """
	contentStart := l.pos

	for {
		if l.eof() {
			span := source.Span{Start: start, End: l.pos_()}
			l.diags.Report(diag.Diagnostic{
				Code:     diag.CodeUnterminatedString,
				Severity: diag.Error,
				Message:  "unterminated multi-line string literal",
				Primary:  span,
				Metadata: diag.Metadata{Category: diag.CategorySyntax},
			})
			return Token{Kind: Error, Span: span, Message: "unterminated multi-line string literal"}
		}
		if l.peekByte() == '"' && l.peekByteAt(1) == '"' && l.peekByteAt(2) == '"' {
			break
		}
		if !raw && l.peekByte() == '\\' {
			l.advance(1)
			if !l.eof() {
				_, size := l.peekRune()
				if size == 0 {
					size = 1
				}
				l.advance(size)
			}
			continue
		}
		_, size := l.peekRune()
		if size == 0 {
			size = 1
		}
		l.advance(size)
	}

	rawContent := string(l.data[contentStart:l.pos])
	l.advance(3) // closing """

	span := source.Span{Start: start, End: l.pos_()}
	content := normalizeIndentation(rawContent)
	if !raw {
		decoded, ok := decodeStringEscapes(content)
		if !ok {
			l.diags.Report(diag.Diagnostic{
				Code:     diag.CodeInvalidEscape,
				Severity: diag.Error,
				Message:  "invalid escape sequence in multi-line string",
				Primary:  span,
				Metadata: diag.Metadata{Category: diag.CategorySyntax},
			})
			return Token{Kind: Error, Span: span, Message: "invalid escape sequence"}
		}
		content = decoded
	}

	return Token{
		Kind:   StringLiteral,
		Lexeme: string(l.data[span.Start.Offset:span.End.Offset]),
		Span:   span,
		Literal: LiteralPayload{Str: content, IsRaw: raw, IsMultiline: true},
	}
}

// normalizeIndentation strips the longest common leading-whitespace prefix
// shared by every non-empty line of content, and trims what delimiter
// placement alone introduces: a single newline right after the opening
// delimiter, and a final line holding only the closing delimiter's
// indentation (or nothing).
func normalizeIndentation(content string) string {
	content = strings.TrimPrefix(content, "\n")
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 1 && strings.TrimSpace(lines[n-1]) == "" {
		lines = lines[:n-1]
	}

	prefix := ""
	havePrefix := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !havePrefix {
			prefix = indent
			havePrefix = true
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}

	if prefix == "" {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			lines[i] = line[len(prefix):]
		}
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return a[:n]
}

// decodeStringEscapes applies the shared escape table to an already
// indentation-normalized processed multi-line string body.
func decodeStringEscapes(s string) (string, bool) {
	var sb strings.Builder
	bs := []byte(s)
	i := 0
	for i < len(bs) {
		if bs[i] != '\\' {
			r, size := decodeRuneAt(bs, i)
			sb.WriteRune(r)
			i += size
			continue
		}
		i++
		if i >= len(bs) {
			return "", false
		}
		switch bs[i] {
		case 'n':
			sb.WriteRune('\n')
			i++
		case 't':
			sb.WriteRune('\t')
			i++
		case 'r':
			sb.WriteRune('\r')
			i++
		case '\\':
			sb.WriteRune('\\')
			i++
		case '\'':
			sb.WriteRune('\'')
			i++
		case '"':
			sb.WriteRune('"')
			i++
		case '0':
			sb.WriteRune(0)
			i++
		case 'x':
			i++
			if i+2 > len(bs) {
				return "", false
			}
			v, err := strconv.ParseInt(string(bs[i:i+2]), 16, 32)
			if err != nil {
				return "", false
			}
			sb.WriteRune(rune(v))
			i += 2
		case 'u':
			i++
			if i >= len(bs) || bs[i] != '{' {
				return "", false
			}
			i++
			j := i
			for j < len(bs) && bs[j] != '}' {
				j++
			}
			if j >= len(bs) || j == i {
				return "", false
			}
			v, err := strconv.ParseInt(string(bs[i:j]), 16, 32)
			if err != nil {
				return "", false
			}
			sb.WriteRune(rune(v))
			i = j + 1
		default:
			return "", false
		}
	}
	return sb.String(), true
}

func decodeRuneAt(bs []byte, i int) (rune, int) {
	r, size := utf8.DecodeRune(bs[i:])
	if size == 0 {
		return rune(bs[i]), 1
	}
	return r, size
}
