package sema

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
)

// checkConstantTime implements spec.md §4.6's "#[constant_time]" baseline:
// a conservative syntactic check, not data-flow taint analysis (spec.md §9
// leaves the stronger form to the implementer as a later option). It walks
// fn's body for any if/match whose condition expression mentions one of
// fn's own parameters, which would make the function's control flow
// data-dependent on its (presumably sensitive) input.
func (a *Analyzer) checkConstantTime(fn *ast.FunctionDecl, fnScope ScopeID) {
	params := map[string]bool{}
	for _, p := range fn.Params {
		if p.Name != "self" {
			params[p.Name] = true
		}
	}
	walkBlockForBranches(fn.Body, func(cond ast.Expr) {
		if exprMentionsAny(cond, params) {
			a.errorf(cond.Span(), diag.CodeConstantTimeViolation,
				"#[constant_time] function branches on a value derived from its parameters")
		}
	})
}

// walkBlockForBranches calls visit with the condition expression of every
// if/while/match found anywhere under b.
func walkBlockForBranches(b *ast.BlockStmt, visit func(ast.Expr)) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		walkStmtForBranches(s, visit)
	}
}

func walkStmtForBranches(s ast.Stmt, visit func(ast.Expr)) {
	switch st := s.(type) {
	case *ast.IfStmt:
		visit(st.Cond)
		walkBlockForBranches(st.Then, visit)
		if st.Else != nil {
			walkStmtForBranches(st.Else, visit)
		}
	case *ast.MatchStmt:
		visit(st.Scrutinee)
		for _, arm := range st.Arms {
			if blk, ok := arm.Body.(*ast.BlockStmt); ok {
				walkBlockForBranches(blk, visit)
			} else {
				walkStmtForBranches(arm.Body, visit)
			}
		}
	case *ast.WhileStmt:
		visit(st.Cond)
		walkBlockForBranches(st.Body, visit)
	case *ast.ForStmt:
		walkBlockForBranches(st.Body, visit)
	case *ast.BlockStmt:
		walkBlockForBranches(st, visit)
	case *ast.UnsafeStmt:
		walkBlockForBranches(st.Body, visit)
	}
}

// exprMentionsAny reports whether any Identifier anywhere under e has a
// name in names.
func exprMentionsAny(e ast.Expr, names map[string]bool) bool {
	switch x := e.(type) {
	case *ast.Identifier:
		return names[x.Name]
	case *ast.BinaryExpr:
		return exprMentionsAny(x.Left, names) || exprMentionsAny(x.Right, names)
	case *ast.UnaryExpr:
		return exprMentionsAny(x.Operand, names)
	case *ast.CastExpr:
		return exprMentionsAny(x.Operand, names)
	case *ast.FieldExpr:
		return exprMentionsAny(x.Receiver, names)
	case *ast.IndexExpr:
		return exprMentionsAny(x.Receiver, names) || exprMentionsAny(x.Index, names)
	case *ast.CallExpr:
		if exprMentionsAny(x.Callee, names) {
			return true
		}
		for _, arg := range x.Args {
			if exprMentionsAny(arg, names) {
				return true
			}
		}
		return false
	case *ast.MethodCallExpr:
		if exprMentionsAny(x.Receiver, names) {
			return true
		}
		for _, arg := range x.Args {
			if exprMentionsAny(arg, names) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
