package parser

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/lex"
	"github.com/asthra-lang/asthrac/internal/source"
)

// parsePattern parses one match-arm pattern.
func (p *Parser) parsePattern() ast.Pattern {
	start := p.tok.Span.Start

	switch {
	case p.at(lex.Ident) && p.tok.Lexeme == "_":
		p.advance()
		return ast.NewWildcardPattern(p.arena, p.spanFrom(start))

	case p.at(lex.IntLiteral), p.at(lex.FloatLiteral), p.at(lex.StringLiteral), p.at(lex.CharLiteral),
		p.atKeyword("true"), p.atKeyword("false"):
		value := p.parsePrimary()
		return ast.NewLiteralPattern(p.arena, p.spanFrom(start), value)

	case p.at(lex.LParen):
		p.advance()
		var elems []ast.Pattern
		for !p.at(lex.RParen) && !p.at(lex.EOF) {
			elems = append(elems, p.parsePattern())
			if !p.accept(lex.Comma) {
				break
			}
		}
		p.expect(lex.RParen)
		return ast.NewTuplePattern(p.arena, p.spanFrom(start), elems)

	case p.at(lex.Ident):
		segs := p.parsePath()
		if len(segs) == 1 && p.at(lex.Dot) {
			p.advance()
			if variantTok, ok := p.expect(lex.Ident); ok {
				segs = append(segs, variantTok.Lexeme)
			}
		}
		if len(segs) == 2 {
			return p.parseEnumOrStructPattern(start, segs[0], segs[1])
		}
		name := segs[0]
		if p.at(lex.LBrace) {
			return p.parseStructPatternBody(start, name)
		}
		return ast.NewIdentPattern(p.arena, p.spanFrom(start), name)

	default:
		p.errorf(diag.CodeUnexpectedToken, "expected pattern, found %s", p.describeTok())
		span := p.tok.Span
		p.advance()
		return ast.NewWildcardPattern(p.arena, span)
	}
}

func (p *Parser) parseEnumOrStructPattern(start source.Position, enumName, variantName string) ast.Pattern {
	var payload []ast.Pattern
	if p.accept(lex.LParen) {
		if p.atKeyword("void") {
			p.advance()
		} else {
			for !p.at(lex.RParen) && !p.at(lex.EOF) {
				payload = append(payload, p.parsePattern())
				if !p.accept(lex.Comma) {
					break
				}
			}
		}
		p.expect(lex.RParen)
	}
	return ast.NewEnumVariantPattern(p.arena, p.spanFrom(start), enumName, variantName, payload)
}

func (p *Parser) parseStructPatternBody(start source.Position, typeName string) ast.Pattern {
	p.expect(lex.LBrace)
	if p.atKeyword("none") {
		p.advance()
		p.expect(lex.RBrace)
		return ast.NewStructPattern(p.arena, p.spanFrom(start), typeName, nil, false)
	}
	var fields []ast.FieldPattern
	rest := false
	for !p.at(lex.RBrace) && !p.at(lex.EOF) {
		if p.at(lex.DotDot) {
			p.advance()
			rest = true
			break
		}
		fieldStart := p.tok.Span.Start
		nameTok, _ := p.expect(lex.Ident)
		p.expect(lex.Colon)
		pat := p.parsePattern()
		fields = append(fields, ast.FieldPattern{Name: nameTok.Lexeme, Pattern: pat, Span: p.spanFrom(fieldStart)})
		if !p.accept(lex.Comma) {
			break
		}
	}
	p.expect(lex.RBrace)
	return ast.NewStructPattern(p.arena, p.spanFrom(start), typeName, fields, rest)
}
