package parser

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/lex"
)

// ParseFile parses one complete source file: its mandatory package clause,
// its imports, and its top-level declarations.
func (p *Parser) ParseFile() *ast.File {
	pkg := p.parsePackageDecl()

	var imports []*ast.ImportDecl
	for p.atKeyword("import") {
		imports = append(imports, p.parseImportDecl())
	}

	var decls []ast.Decl
	for !p.at(lex.EOF) {
		before := p.tok
		d := p.parseTopLevelDecl()
		if d != nil {
			decls = append(decls, d)
		}
		if p.tok == before {
			p.advance()
			p.synchronize()
		}
	}
	return ast.NewFile(p.file, pkg, imports, decls)
}

func (p *Parser) parsePackageDecl() *ast.PackageDecl {
	start := p.tok.Span.Start
	p.expectKeyword("package")
	nameTok, _ := p.expect(lex.Ident)
	p.expect(lex.Semicolon)
	return ast.NewPackageDecl(p.arena, p.spanFrom(start), nameTok.Lexeme)
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	start := p.tok.Span.Start
	p.advance() // 'import'
	pathTok, _ := p.expect(lex.StringLiteral)
	alias := ""
	if p.atKeyword("as") {
		p.advance()
		aliasTok, _ := p.expect(lex.Ident)
		alias = aliasTok.Lexeme
	}
	p.expect(lex.Semicolon)
	return ast.NewImportDecl(p.arena, p.spanFrom(start), pathTok.Literal.Str, alias)
}

// parseAnnotations parses zero or more "#[name(args)]" attributes.
// Explicit annotation arguments are enforced here: a bare "#[name]" with no
// parenthesized argument list (not even "(void)") is a grammar error
// (spec.md §4.3).
func (p *Parser) parseAnnotations() []ast.Annotation {
	var out []ast.Annotation
	for p.at(lex.Hash) {
		start := p.tok.Span.Start
		p.advance()
		p.expect(lex.LBracket)
		nameTok, _ := p.expect(lex.Ident)
		var args []ast.AnnotationArg
		if p.at(lex.LParen) {
			p.advance()
			if p.atKeyword("void") {
				p.advance()
			} else {
				for !p.at(lex.RParen) && !p.at(lex.EOF) {
					args = append(args, p.parseAnnotationArg())
					if !p.accept(lex.Comma) {
						break
					}
				}
			}
			p.expect(lex.RParen)
		} else {
			p.errorf(diag.CodeMissingVariantArguments, "annotation %q requires explicit arguments: #[%s(void)] or #[%s(args)]", nameTok.Lexeme, nameTok.Lexeme, nameTok.Lexeme)
		}
		p.expect(lex.RBracket)
		out = append(out, ast.Annotation{Name: nameTok.Lexeme, Args: args, Span: p.spanFrom(start)})
	}
	return out
}

func (p *Parser) parseAnnotationArg() ast.AnnotationArg {
	start := p.tok.Span.Start
	keyTok, _ := p.expect(lex.Ident)
	value := ""
	if p.accept(lex.Colon) || p.accept(lex.Eq) {
		switch {
		case p.at(lex.StringLiteral):
			value = p.tok.Literal.Str
			p.advance()
		case p.at(lex.Ident), p.at(lex.Keyword):
			value = p.tok.Lexeme
			p.advance()
		case p.at(lex.IntLiteral):
			value = p.tok.Lexeme
			p.advance()
		}
	}
	return ast.AnnotationArg{Key: keyTok.Lexeme, Value: value, Span: p.spanFrom(start)}
}

func (p *Parser) parseVisibility() bool {
	switch {
	case p.atKeyword("pub"):
		p.advance()
		return true
	case p.atKeyword("priv"):
		p.advance()
		return false
	default:
		p.errorf(diag.CodeMissingVisibility, "declaration requires explicit visibility: %q or %q", "pub", "priv")
		return true
	}
}

func (p *Parser) parseTopLevelDecl() ast.Decl {
	doc := p.lex.TakeDocComment()
	annotations := p.parseAnnotations()

	switch {
	case p.atKeyword("extern"):
		return p.parseExternDecl(annotations, doc)
	case p.atKeyword("impl"):
		return p.parseImplBlock()
	case p.atKeyword("pub"), p.atKeyword("priv"):
		pub := p.parseVisibility()
		return p.parseVisibleDecl(pub, annotations, doc)
	case p.atKeyword("fn"), p.atKeyword("struct"), p.atKeyword("enum"), p.atKeyword("const"):
		// visibility omitted entirely: still report MissingVisibility, then
		// proceed as if "pub" had been written, so the rest of the tree is
		// still usable for downstream diagnostics (spec.md §4.2).
		pub := p.parseVisibility()
		return p.parseVisibleDecl(pub, annotations, doc)
	default:
		p.errorf(diag.CodeUnexpectedToken, "expected a declaration, found %s", p.describeTok())
		return nil
	}
}

func (p *Parser) parseVisibleDecl(pub bool, annotations []ast.Annotation, doc string) ast.Decl {
	switch {
	case p.atKeyword("fn"):
		return p.parseFunctionDecl(pub, annotations, doc)
	case p.atKeyword("struct"):
		return p.parseStructDecl(pub, annotations, doc)
	case p.atKeyword("enum"):
		return p.parseEnumDecl(pub, annotations, doc)
	case p.atKeyword("const"):
		return p.parseConstDecl(pub, doc)
	default:
		p.errorf(diag.CodeUnexpectedToken, "expected fn, struct, enum, or const after visibility, found %s", p.describeTok())
		return nil
	}
}

func (p *Parser) parseGenericParams() []ast.GenericParam {
	if !p.accept(lex.Lt) {
		return nil
	}
	var params []ast.GenericParam
	for !p.at(lex.Gt) && !p.at(lex.EOF) {
		start := p.tok.Span.Start
		nameTok, _ := p.expect(lex.Ident)
		var bounds []string
		if p.accept(lex.Colon) {
			b, _ := p.expect(lex.Ident)
			bounds = append(bounds, b.Lexeme)
			for p.accept(lex.Plus) {
				b, _ := p.expect(lex.Ident)
				bounds = append(bounds, b.Lexeme)
			}
		}
		params = append(params, ast.GenericParam{Name: nameTok.Lexeme, Bounds: bounds, Span: p.spanFrom(start)})
		if !p.accept(lex.Comma) {
			break
		}
	}
	p.expect(lex.Gt)
	return params
}

// parseParamList enforces spec.md §4.3's explicit-empty-parameter-list
// rule: "fn f(none) -> T" for zero parameters, a parse error on "fn f()".
func (p *Parser) parseParamList() []ast.Param {
	p.expect(lex.LParen)
	if p.atKeyword("none") {
		p.advance()
		p.expect(lex.RParen)
		return nil
	}
	if p.at(lex.RParen) {
		p.errorf(diag.CodeMissingParameterList, "empty parameter list must be written \"(none)\"")
		p.advance()
		return nil
	}
	var params []ast.Param
	for !p.at(lex.RParen) && !p.at(lex.EOF) {
		start := p.tok.Span.Start
		mutable := false
		if p.atKeyword("mut") {
			mutable = true
			p.advance()
		}
		if p.atKeyword("self") {
			p.advance()
			params = append(params, ast.Param{Name: "self", Mutable: mutable, Span: p.spanFrom(start)})
		} else {
			nameTok, _ := p.expect(lex.Ident)
			p.expect(lex.Colon)
			typ := p.parseType()
			params = append(params, ast.Param{Name: nameTok.Lexeme, Type: typ, Mutable: mutable, Span: p.spanFrom(start)})
		}
		if !p.accept(lex.Comma) {
			break
		}
	}
	p.expect(lex.RParen)
	return params
}

func (p *Parser) parseFunctionDecl(pub bool, annotations []ast.Annotation, doc string) *ast.FunctionDecl {
	start := p.tok.Span.Start
	p.advance() // 'fn'
	nameTok, _ := p.expect(lex.Ident)
	generics := p.parseGenericParams()
	params := p.parseParamList()
	p.expect(lex.Arrow)
	ret := p.parseType()
	body := p.parseBlock()
	return ast.NewFunctionDecl(p.arena, p.spanFrom(start), nameTok.Lexeme, pub, generics, params, ret, body, annotations, doc)
}

func (p *Parser) parseExternDecl(annotations []ast.Annotation, doc string) *ast.ExternDecl {
	start := p.tok.Span.Start
	p.advance() // 'extern'
	abi := "C"
	if p.at(lex.StringLiteral) {
		abi = p.tok.Literal.Str
		p.advance()
	}
	p.expectKeyword("fn")
	nameTok, _ := p.expect(lex.Ident)
	params := p.parseParamList()
	p.expect(lex.Arrow)
	ret := p.parseType()
	p.expect(lex.Semicolon)
	return ast.NewExternDecl(p.arena, p.spanFrom(start), nameTok.Lexeme, abi, params, ret, annotations, doc)
}

// parseStructDecl enforces the explicit "{ none }" empty-content rule for
// zero-field structs (spec.md §4.3).
func (p *Parser) parseStructDecl(pub bool, annotations []ast.Annotation, doc string) *ast.StructDecl {
	start := p.tok.Span.Start
	p.advance() // 'struct'
	nameTok, _ := p.expect(lex.Ident)
	generics := p.parseGenericParams()
	p.expect(lex.LBrace)

	if p.atKeyword("none") {
		p.advance()
		p.expect(lex.RBrace)
		return ast.NewStructDecl(p.arena, p.spanFrom(start), nameTok.Lexeme, pub, generics, nil, true, annotations, doc)
	}
	if p.at(lex.RBrace) {
		p.errorf(diag.CodeMissingStructContent, "empty struct body must be written \"{ none }\"")
		p.advance()
		return ast.NewStructDecl(p.arena, p.spanFrom(start), nameTok.Lexeme, pub, generics, nil, true, annotations, doc)
	}

	var fields []ast.FieldDecl
	for !p.at(lex.RBrace) && !p.at(lex.EOF) {
		fstart := p.tok.Span.Start
		fieldPub := p.parseVisibility()
		fnameTok, _ := p.expect(lex.Ident)
		p.expect(lex.Colon)
		ftype := p.parseType()
		fields = append(fields, ast.FieldDecl{Name: fnameTok.Lexeme, Type: ftype, Visibility: fieldPub, Span: p.spanFrom(fstart)})
		if !p.accept(lex.Comma) {
			break
		}
	}
	p.expect(lex.RBrace)
	return ast.NewStructDecl(p.arena, p.spanFrom(start), nameTok.Lexeme, pub, generics, fields, false, annotations, doc)
}

// parseEnumDecl enforces the explicit "{ none }" empty-content rule and the
// explicit payload marker on every variant (spec.md §4.3).
func (p *Parser) parseEnumDecl(pub bool, annotations []ast.Annotation, doc string) *ast.EnumDecl {
	start := p.tok.Span.Start
	p.advance() // 'enum'
	nameTok, _ := p.expect(lex.Ident)
	generics := p.parseGenericParams()
	p.expect(lex.LBrace)

	if p.atKeyword("none") {
		p.advance()
		p.expect(lex.RBrace)
		return ast.NewEnumDecl(p.arena, p.spanFrom(start), nameTok.Lexeme, pub, generics, nil, annotations, doc)
	}
	if p.at(lex.RBrace) {
		p.errorf(diag.CodeMissingStructContent, "empty enum body must be written \"{ none }\"")
		p.advance()
		return ast.NewEnumDecl(p.arena, p.spanFrom(start), nameTok.Lexeme, pub, generics, nil, annotations, doc)
	}

	var variants []ast.EnumVariantDecl
	for !p.at(lex.RBrace) && !p.at(lex.EOF) {
		vstart := p.tok.Span.Start
		vnameTok, _ := p.expect(lex.Ident)
		variant := ast.EnumVariantDecl{Name: vnameTok.Lexeme}
		if p.accept(lex.LParen) {
			variant.HasPayload = true
			if p.atKeyword("void") {
				p.advance()
			} else {
				for !p.at(lex.RParen) && !p.at(lex.EOF) {
					variant.PayloadType = append(variant.PayloadType, p.parseType())
					if !p.accept(lex.Comma) {
						break
					}
				}
			}
			p.expect(lex.RParen)
		} else {
			p.errorf(diag.CodeMissingVariantArguments, "variant %q requires an explicit payload marker: %q(void) or %q(T)", vnameTok.Lexeme, vnameTok.Lexeme, vnameTok.Lexeme)
		}
		variant.Span = p.spanFrom(vstart)
		variants = append(variants, variant)
		if !p.accept(lex.Comma) {
			break
		}
	}
	p.expect(lex.RBrace)
	return ast.NewEnumDecl(p.arena, p.spanFrom(start), nameTok.Lexeme, pub, generics, variants, annotations, doc)
}

func (p *Parser) parseImplBlock() *ast.ImplBlock {
	start := p.tok.Span.Start
	p.advance() // 'impl'
	generics := p.parseGenericParams()
	nameTok, _ := p.expect(lex.Ident)
	p.expect(lex.LBrace)

	var methods []*ast.FunctionDecl
	for !p.at(lex.RBrace) && !p.at(lex.EOF) {
		doc := p.lex.TakeDocComment()
		annotations := p.parseAnnotations()
		pub := p.parseVisibility()
		if p.atKeyword("fn") {
			methods = append(methods, p.parseFunctionDecl(pub, annotations, doc))
		} else {
			p.errorf(diag.CodeUnexpectedToken, "expected method declaration inside impl block, found %s", p.describeTok())
			p.advance()
		}
	}
	p.expect(lex.RBrace)
	return ast.NewImplBlock(p.arena, p.spanFrom(start), nameTok.Lexeme, generics, methods)
}

func (p *Parser) parseConstDecl(pub bool, doc string) *ast.ConstDecl {
	start := p.tok.Span.Start
	p.expectKeyword("const")
	nameTok, _ := p.expect(lex.Ident)
	p.expect(lex.Colon)
	typ := p.parseType()
	p.expect(lex.Eq)
	value := p.parseExpr()
	p.expect(lex.Semicolon)
	return ast.NewConstDecl(p.arena, p.spanFrom(start), nameTok.Lexeme, pub, typ, value, doc)
}
