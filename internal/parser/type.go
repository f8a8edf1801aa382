package parser

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/lex"
	"github.com/asthra-lang/asthrac/internal/source"
)

// parseType parses one syntactic type expression. Generic application
// ("Name<Args>") is disambiguated greedily once a Lt follows a named type:
// spec.md §9 leaves the exact disambiguation strategy open, and a full
// tentative/backtracking parse is not worth the complexity for a grammar
// where "<" otherwise never follows a type name in type position.
func (p *Parser) parseType() ast.TypeExpr {
	start := p.tok.Span.Start

	switch {
	case p.at(lex.LBracket):
		p.advance()
		if p.accept(lex.RBracket) {
			elem := p.parseType()
			return ast.NewSliceType(p.arena, p.spanFrom(start), elem)
		}
		length := p.parseExpr()
		p.expect(lex.RBracket)
		elem := p.parseType()
		return ast.NewArrayType(p.arena, p.spanFrom(start), elem, length, false)

	case p.at(lex.Star):
		p.advance()
		mutable := false
		if p.atKeyword("mut") {
			mutable = true
			p.advance()
		} else {
			p.expectKeyword("const")
		}
		elem := p.parseType()
		return ast.NewPointerType(p.arena, p.spanFrom(start), elem, mutable)

	case p.at(lex.LParen):
		p.advance()
		var elems []ast.TypeExpr
		for !p.at(lex.RParen) && !p.at(lex.EOF) {
			elems = append(elems, p.parseType())
			if !p.accept(lex.Comma) {
				break
			}
		}
		p.expect(lex.RParen)
		return ast.NewTupleType(p.arena, p.spanFrom(start), elems)

	case p.atKeyword("fn"):
		p.advance()
		p.expect(lex.LParen)
		var params []ast.TypeExpr
		if p.atKeyword("none") {
			p.advance()
		} else {
			for !p.at(lex.RParen) && !p.at(lex.EOF) {
				params = append(params, p.parseType())
				if !p.accept(lex.Comma) {
					break
				}
			}
		}
		p.expect(lex.RParen)
		p.expect(lex.Arrow)
		ret := p.parseType()
		return ast.NewFunctionType(p.arena, p.spanFrom(start), params, ret)

	case p.atKeyword("void"):
		p.advance()
		return ast.NewVoidType(p.arena, p.spanFrom(start))

	case p.at(lex.Bang):
		p.advance()
		return ast.NewNeverType(p.arena, p.spanFrom(start))

	default:
		path := p.parsePath()
		named := ast.NewNamedType(p.arena, p.spanFrom(start), path)
		if p.at(lex.Lt) {
			return p.parseGenericApp(start, named)
		}
		return named
	}
}

func (p *Parser) parseGenericApp(start source.Position, base ast.TypeExpr) ast.TypeExpr {
	p.advance() // consume '<'
	var args []ast.TypeExpr
	for !p.at(lex.Gt) && !p.at(lex.EOF) {
		args = append(args, p.parseType())
		if !p.accept(lex.Comma) {
			break
		}
	}
	p.expect(lex.Gt)
	return ast.NewGenericAppType(p.arena, p.spanFrom(start), base, args)
}

// parsePath parses a "::"-separated identifier sequence, e.g. "pkg::Widget".
func (p *Parser) parsePath() []string {
	var segs []string
	tok, ok := p.expect(lex.Ident)
	if ok {
		segs = append(segs, tok.Lexeme)
	}
	// Stop before "::<": that starts a generic instantiation, which postfix
	// parsing (for expressions) or parseGenericApp (for types) handles.
	for p.at(lex.ColonColon) && p.peek().Kind != lex.Lt {
		p.advance()
		tok, ok := p.expect(lex.Ident)
		if ok {
			segs = append(segs, tok.Lexeme)
		}
	}
	return segs
}
