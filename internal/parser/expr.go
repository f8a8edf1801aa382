package parser

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/lex"
	"github.com/asthra-lang/asthrac/internal/source"
)

// binaryPrec gives each infix operator's binding strength, highest number
// binds tightest, exactly matching spec.md §4.3's precedence table (range
// and assignment are handled outside this table, at their own levels).
var binaryPrec = map[lex.Kind]int{
	lex.PipePipe: 1,
	lex.AmpAmp:   2,
	lex.EqEq:     3, lex.NotEq: 3, lex.Lt: 3, lex.LtEq: 3, lex.Gt: 3, lex.GtEq: 3,
	lex.Pipe: 4,
	lex.Caret: 5,
	lex.Amp:   6,
	lex.Shl:   7, lex.Shr: 7,
	lex.Plus: 8, lex.Minus: 8,
	lex.Star: 9, lex.Slash: 9, lex.Percent: 9,
}

var binaryOp = map[lex.Kind]ast.BinaryOp{
	lex.PipePipe: ast.OpOr,
	lex.AmpAmp:   ast.OpAnd,
	lex.EqEq:     ast.OpEq, lex.NotEq: ast.OpNotEq,
	lex.Lt: ast.OpLt, lex.LtEq: ast.OpLtEq, lex.Gt: ast.OpGt, lex.GtEq: ast.OpGtEq,
	lex.Pipe: ast.OpBitOr, lex.Caret: ast.OpBitXor, lex.Amp: ast.OpBitAnd,
	lex.Shl: ast.OpShl, lex.Shr: ast.OpShr,
	lex.Plus: ast.OpAdd, lex.Minus: ast.OpSub,
	lex.Star: ast.OpMul, lex.Slash: ast.OpDiv, lex.Percent: ast.OpMod,
}

// parseExpr parses a full expression, including the range forms that sit
// below logical-or in spec.md §4.3's table.
func (p *Parser) parseExpr() ast.Expr {
	start := p.tok.Span.Start
	e := p.parseBinary(1)
	if p.at(lex.DotDot) || p.at(lex.DotDotEq) {
		inclusive := p.at(lex.DotDotEq)
		p.advance()
		var end ast.Expr
		if p.canStartExpr() {
			end = p.parseBinary(1)
		}
		e = ast.NewRangeExpr(p.arena, p.spanFrom(start), e, end, inclusive)
	}
	return e
}

func (p *Parser) canStartExpr() bool {
	switch p.tok.Kind {
	case lex.RBracket, lex.RParen, lex.RBrace, lex.Comma, lex.Semicolon, lex.EOF, lex.LBrace:
		return false
	}
	return true
}

// parseBinary implements precedence climbing over binaryPrec/binaryOp.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	start := p.tok.Span.Start
	left := p.parseCast()
	for {
		prec, ok := binaryPrec[p.tok.Kind]
		if !ok || prec < minPrec {
			return left
		}
		op := binaryOp[p.tok.Kind]
		p.advance()
		right := p.parseBinary(prec + 1)
		left = ast.NewBinaryExpr(p.arena, p.spanFrom(start), op, left, right)
	}
}

func (p *Parser) parseCast() ast.Expr {
	start := p.tok.Span.Start
	e := p.parseUnary()
	for p.atKeyword("as") {
		p.advance()
		target := p.parseType()
		e = ast.NewCastExpr(p.arena, p.spanFrom(start), e, target)
	}
	return e
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.tok.Span.Start
	switch {
	case p.at(lex.Minus):
		p.advance()
		return ast.NewUnaryExpr(p.arena, p.spanFrom(start), ast.OpNeg, p.parseUnary())
	case p.at(lex.Bang):
		p.advance()
		return ast.NewUnaryExpr(p.arena, p.spanFrom(start), ast.OpNot, p.parseUnary())
	case p.at(lex.Caret):
		p.advance()
		return ast.NewUnaryExpr(p.arena, p.spanFrom(start), ast.OpBitNot, p.parseUnary())
	case p.at(lex.Star):
		p.advance()
		return ast.NewUnaryExpr(p.arena, p.spanFrom(start), ast.OpDeref, p.parseUnary())
	case p.at(lex.Amp):
		p.advance()
		if p.atKeyword("mut") {
			p.advance()
			return ast.NewUnaryExpr(p.arena, p.spanFrom(start), ast.OpAddrMut, p.parseUnary())
		}
		return ast.NewUnaryExpr(p.arena, p.spanFrom(start), ast.OpAddr, p.parseUnary())
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	start := p.tok.Span.Start
	e := p.parsePrimary()
	for {
		switch {
		case p.at(lex.Dot):
			p.advance()
			nameTok, _ := p.expect(lex.Ident)
			if p.at(lex.ColonColon) || p.at(lex.LParen) {
				var typeArgs []ast.TypeExpr
				if p.accept(lex.ColonColon) {
					p.expect(lex.Lt)
					for !p.at(lex.Gt) && !p.at(lex.EOF) {
						typeArgs = append(typeArgs, p.parseType())
						if !p.accept(lex.Comma) {
							break
						}
					}
					p.expect(lex.Gt)
				}
				args := p.parseArgList()
				e = ast.NewMethodCallExpr(p.arena, p.spanFrom(start), e, nameTok.Lexeme, typeArgs, args)
			} else {
				e = ast.NewFieldExpr(p.arena, p.spanFrom(start), e, nameTok.Lexeme)
			}
		case p.at(lex.LBracket):
			p.advance()
			idx := p.parseExpr()
			p.expect(lex.RBracket)
			e = ast.NewIndexExpr(p.arena, p.spanFrom(start), e, idx)
		case p.at(lex.LParen):
			args := p.parseArgList()
			e = ast.NewCallExpr(p.arena, p.spanFrom(start), e, args)
		case p.at(lex.ColonColon) && p.peek().Kind == lex.Lt:
			p.advance() // '::'
			p.advance() // '<'
			var typeArgs []ast.TypeExpr
			for !p.at(lex.Gt) && !p.at(lex.EOF) {
				typeArgs = append(typeArgs, p.parseType())
				if !p.accept(lex.Comma) {
					break
				}
			}
			p.expect(lex.Gt)
			e = ast.NewGenericExpr(p.arena, p.spanFrom(start), e, typeArgs)
		case p.at(lex.ColonColon):
			// "Type::item", e.g. an associated function reference such as
			// "Vec::new": treated like field access so the later call-parse
			// arm wraps it the same way a method call would.
			p.advance()
			nameTok, _ := p.expect(lex.Ident)
			e = ast.NewFieldExpr(p.arena, p.spanFrom(start), e, nameTok.Lexeme)
		default:
			return e
		}
	}
}

func (p *Parser) parseArgList() []ast.Expr {
	p.expect(lex.LParen)
	var args []ast.Expr
	for !p.at(lex.RParen) && !p.at(lex.EOF) {
		args = append(args, p.parseExpr())
		if !p.accept(lex.Comma) {
			break
		}
	}
	p.expect(lex.RParen)
	return args
}

// parseSelect parses a "select { channel => body, ... }" expression. Arm
// bindings (naming the received value) are left for a later grammar
// revision; spec.md's select form does not require one.
func (p *Parser) parseSelect(start source.Position) ast.Expr {
	p.advance() // consume 'select'
	p.expect(lex.LBrace)
	var arms []ast.SelectArm
	for !p.at(lex.RBrace) && !p.at(lex.EOF) {
		armStart := p.tok.Span.Start
		channel := p.parseExpr()
		p.expect(lex.FatArrow)
		body := p.parseExpr()
		arms = append(arms, ast.SelectArm{Channel: channel, Body: body, Span: p.spanFrom(armStart)})
		if !p.accept(lex.Comma) {
			break
		}
	}
	p.expect(lex.RBrace)
	return ast.NewSelectExpr(p.arena, p.spanFrom(start), arms)
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.tok.Span.Start

	switch {
	case p.at(lex.IntLiteral):
		lit := ast.NewLiteral(p.arena, p.tok.Span, ast.LitInt)
		lit.Int = p.tok.Literal.Int
		lit.BigInt = p.tok.Literal.BigInt
		p.advance()
		return lit

	case p.at(lex.FloatLiteral):
		lit := ast.NewLiteral(p.arena, p.tok.Span, ast.LitFloat)
		lit.Float = p.tok.Literal.Float
		p.advance()
		return lit

	case p.at(lex.CharLiteral):
		lit := ast.NewLiteral(p.arena, p.tok.Span, ast.LitChar)
		lit.Char = p.tok.Literal.Rune
		p.advance()
		return lit

	case p.at(lex.StringLiteral):
		lit := ast.NewLiteral(p.arena, p.tok.Span, ast.LitString)
		lit.Str = p.tok.Literal.Str
		p.advance()
		return lit

	case p.atKeyword("true"), p.atKeyword("false"):
		lit := ast.NewLiteral(p.arena, p.tok.Span, ast.LitBool)
		lit.Bool = p.atKeyword("true")
		p.advance()
		return lit

	case p.atKeyword("null"), p.atKeyword("none"), p.atKeyword("void"):
		name := p.tok.Lexeme
		span := p.tok.Span
		p.advance()
		return ast.NewIdentifier(p.arena, span, name)

	case p.atKeyword("await"):
		p.advance()
		operand := p.parseUnary()
		return ast.NewAwaitExpr(p.arena, p.spanFrom(start), operand)

	case p.atKeyword("recv"):
		p.advance()
		channel := p.parseUnary()
		return ast.NewReceiveExpr(p.arena, p.spanFrom(start), channel)

	case p.atKeyword("select"):
		return p.parseSelect(start)

	case p.at(lex.LParen):
		p.advance()
		if p.at(lex.RParen) {
			p.advance()
			return ast.NewTupleLitExpr(p.arena, p.spanFrom(start), nil)
		}
		first := p.parseExpr()
		if p.at(lex.Comma) {
			elems := []ast.Expr{first}
			for p.accept(lex.Comma) {
				if p.at(lex.RParen) {
					break
				}
				elems = append(elems, p.parseExpr())
			}
			p.expect(lex.RParen)
			return ast.NewTupleLitExpr(p.arena, p.spanFrom(start), elems)
		}
		p.expect(lex.RParen)
		return first

	case p.at(lex.LBracket):
		p.advance()
		if p.atKeyword("void") {
			p.advance()
			p.expect(lex.RBracket)
			return ast.NewArrayLitExpr(p.arena, p.spanFrom(start), nil, true)
		}
		if p.at(lex.RBracket) {
			p.errorf(diag.CodeMissingStructContent, "empty array literal must be written as %q", "[void]")
		}
		var elems []ast.Expr
		for !p.at(lex.RBracket) && !p.at(lex.EOF) {
			elems = append(elems, p.parseExpr())
			if !p.accept(lex.Comma) {
				break
			}
		}
		p.expect(lex.RBracket)
		return ast.NewArrayLitExpr(p.arena, p.spanFrom(start), elems, false)

	case p.at(lex.Ident):
		segs := p.parsePath()
		if len(segs) > 1 {
			path := ast.NewPathExpr(p.arena, p.spanFrom(start), segs)
			return p.maybeStructLit(start, segs[len(segs)-1], path)
		}
		ident := ast.NewIdentifier(p.arena, p.spanFrom(start), segs[0])
		return p.maybeStructLit(start, segs[0], ident)

	default:
		p.errorf(diag.CodeUnexpectedToken, "expected expression, found %s", p.describeTok())
		span := p.tok.Span
		p.advance()
		return p.errorExprAt(span, "expected expression")
	}
}

// maybeStructLit parses a trailing "{ ... }" struct literal after a type
// name, unless the parser is inside a condition (spec.md's implicit
// "no ambiguous struct literal in condition position" rule, grounded on
// the same class of ambiguity Rust's "no struct literal" contexts solve).
func (p *Parser) maybeStructLit(start source.Position, typeName string, base ast.Expr) ast.Expr {
	if p.noStructLit || !p.at(lex.LBrace) {
		return base
	}
	p.advance()
	if p.atKeyword("none") {
		p.advance()
		p.expect(lex.RBrace)
		return ast.NewStructLitExpr(p.arena, p.spanFrom(start), typeName, nil, true)
	}
	var fields []ast.StructLitField
	for !p.at(lex.RBrace) && !p.at(lex.EOF) {
		fieldStart := p.tok.Span.Start
		nameTok, _ := p.expect(lex.Ident)
		p.expect(lex.Colon)
		value := p.parseExpr()
		fields = append(fields, ast.StructLitField{Name: nameTok.Lexeme, Value: value, Span: p.spanFrom(fieldStart)})
		if !p.accept(lex.Comma) {
			break
		}
	}
	p.expect(lex.RBrace)
	return ast.NewStructLitExpr(p.arena, p.spanFrom(start), typeName, fields, false)
}
