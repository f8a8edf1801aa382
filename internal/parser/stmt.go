package parser

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/lex"
	"github.com/asthra-lang/asthrac/internal/source"
)

var compoundAssignOps = map[lex.Kind]ast.BinaryOp{
	lex.PlusEq: ast.OpAdd, lex.MinusEq: ast.OpSub, lex.StarEq: ast.OpMul,
	lex.SlashEq: ast.OpDiv, lex.PercentEq: ast.OpMod,
	lex.AmpEq: ast.OpBitAnd, lex.PipeEq: ast.OpBitOr, lex.CaretEq: ast.OpBitXor,
	lex.ShlEq: ast.OpShl, lex.ShrEq: ast.OpShr,
}

// parseStmt parses one statement, including the statement-forms that also
// double as block terminators (return/break/continue).
func (p *Parser) parseStmt() ast.Stmt {
	start := p.tok.Span.Start

	switch {
	case p.atKeyword("let"):
		return p.parseLetStmt(start)
	case p.atKeyword("return"):
		p.advance()
		var value ast.Expr
		if !p.at(lex.Semicolon) {
			value = p.parseExpr()
		}
		p.expect(lex.Semicolon)
		return ast.NewReturnStmt(p.arena, p.spanFrom(start), value)
	case p.atKeyword("if"):
		return p.parseIfStmt(start)
	case p.atKeyword("match"):
		return p.parseMatchStmt(start)
	case p.atKeyword("for"):
		return p.parseForStmt(start)
	case p.atKeyword("while"):
		return p.parseWhileStmt(start)
	case p.atKeyword("break"):
		p.advance()
		label := p.optionalLabel()
		p.expect(lex.Semicolon)
		return ast.NewBreakStmt(p.arena, p.spanFrom(start), label)
	case p.atKeyword("continue"):
		p.advance()
		label := p.optionalLabel()
		p.expect(lex.Semicolon)
		return ast.NewContinueStmt(p.arena, p.spanFrom(start), label)
	case p.atKeyword("unsafe"):
		p.advance()
		body := p.parseBlock()
		return ast.NewUnsafeStmt(p.arena, p.spanFrom(start), body)
	case p.atKeyword("spawn"), p.atKeyword("spawn_with_handle"):
		p.advance()
		call := p.parseExpr()
		p.expect(lex.Semicolon)
		ce, _ := call.(*ast.CallExpr)
		return ast.NewSpawnStmt(p.arena, p.spanFrom(start), ce)
	case p.at(lex.LBrace):
		return p.parseBlock()
	default:
		return p.parseExprOrAssignStmt(start)
	}
}

func (p *Parser) optionalLabel() string {
	if p.at(lex.Ident) {
		t := p.tok
		p.advance()
		return t.Lexeme
	}
	return ""
}

func (p *Parser) parseLetStmt(start source.Position) *ast.LetStmt {
	p.advance() // 'let'
	mutable := false
	if p.atKeyword("mut") {
		mutable = true
		p.advance()
	}
	nameTok, _ := p.expect(lex.Ident)
	var typ ast.TypeExpr
	if p.accept(lex.Colon) {
		typ = p.parseType()
	}
	var value ast.Expr
	if p.accept(lex.Eq) {
		value = p.parseExpr()
	}
	p.expect(lex.Semicolon)
	return ast.NewLetStmt(p.arena, p.spanFrom(start), nameTok.Lexeme, mutable, typ, value)
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	start := p.tok.Span.Start
	p.expect(lex.LBrace)
	var stmts []ast.Stmt
	for !p.at(lex.RBrace) && !p.at(lex.EOF) {
		before := p.tok
		s := p.parseStmt()
		stmts = append(stmts, s)
		if p.tok == before {
			// parseStmt made no progress (a malformed primary at statement
			// start): force advance so the loop terminates.
			p.advance()
			p.synchronize()
		}
	}
	p.expect(lex.RBrace)
	return ast.NewBlockStmt(p.arena, p.spanFrom(start), stmts)
}

func (p *Parser) parseIfStmt(start source.Position) *ast.IfStmt {
	p.advance() // 'if'
	p.noStructLit = true
	cond := p.parseExpr()
	p.noStructLit = false
	then := p.parseBlock()
	var els ast.Stmt
	if p.atKeyword("else") {
		p.advance()
		if p.atKeyword("if") {
			els = p.parseIfStmt(p.tok.Span.Start)
		} else {
			els = p.parseBlock()
		}
	}
	return ast.NewIfStmt(p.arena, p.spanFrom(start), cond, then, els)
}

func (p *Parser) parseMatchStmt(start source.Position) *ast.MatchStmt {
	p.advance() // 'match'
	p.noStructLit = true
	scrutinee := p.parseExpr()
	p.noStructLit = false
	p.expect(lex.LBrace)
	var arms []ast.MatchArm
	for !p.at(lex.RBrace) && !p.at(lex.EOF) {
		armStart := p.tok.Span.Start
		pat := p.parsePattern()
		var guard ast.Expr
		if p.atKeyword("if") {
			p.advance()
			guard = p.parseExpr()
		}
		p.expect(lex.FatArrow)
		var body ast.Stmt
		if p.at(lex.LBrace) {
			body = p.parseBlock()
		} else if p.atKeyword("return") {
			retStart := p.tok.Span.Start
			p.advance()
			var value ast.Expr
			if !p.at(lex.Comma) && !p.at(lex.RBrace) {
				value = p.parseExpr()
			}
			body = ast.NewReturnStmt(p.arena, p.spanFrom(retStart), value)
		} else {
			e := p.parseExpr()
			body = ast.NewExprStmt(p.arena, e.Span(), e)
		}
		arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body, Span: p.spanFrom(armStart)})
		p.accept(lex.Comma)
	}
	p.expect(lex.RBrace)
	return ast.NewMatchStmt(p.arena, p.spanFrom(start), scrutinee, arms)
}

func (p *Parser) parseForStmt(start source.Position) *ast.ForStmt {
	p.advance() // 'for'
	nameTok, _ := p.expect(lex.Ident)
	p.expectKeyword("in")
	p.noStructLit = true
	iterable := p.parseExpr()
	p.noStructLit = false
	body := p.parseBlock()
	return ast.NewForStmt(p.arena, p.spanFrom(start), nameTok.Lexeme, iterable, body)
}

func (p *Parser) parseWhileStmt(start source.Position) *ast.WhileStmt {
	p.advance() // 'while'
	p.noStructLit = true
	cond := p.parseExpr()
	p.noStructLit = false
	body := p.parseBlock()
	return ast.NewWhileStmt(p.arena, p.spanFrom(start), cond, body)
}

// parseExprOrAssignStmt handles both a bare expression statement and an
// assignment (plain or compound), which share an expression-parse prefix.
func (p *Parser) parseExprOrAssignStmt(start source.Position) ast.Stmt {
	target := p.parseExpr()
	if p.at(lex.Eq) {
		p.advance()
		value := p.parseExpr()
		p.expect(lex.Semicolon)
		return ast.NewAssignStmt(p.arena, p.spanFrom(start), target, nil, value)
	}
	if op, ok := compoundAssignOps[p.tok.Kind]; ok {
		p.advance()
		value := p.parseExpr()
		p.expect(lex.Semicolon)
		opCopy := op
		return ast.NewAssignStmt(p.arena, p.spanFrom(start), target, &opCopy, value)
	}
	p.expect(lex.Semicolon)
	return ast.NewExprStmt(p.arena, p.spanFrom(start), target)
}
