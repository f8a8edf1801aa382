package ast

import "github.com/asthra-lang/asthrac/internal/source"

// LetStmt declares a new local binding. Type is nil when the declaration
// relies on local type inference; Mutable reflects an explicit "mut".
type LetStmt struct {
	stmtBase
	Name    string
	Mutable bool
	Type    TypeExpr
	Value   Expr
}

func NewLetStmt(a *Arena, span source.Span, name string, mutable bool, typ TypeExpr, value Expr) *LetStmt {
	return &LetStmt{stmtBase: stmtBase{base{a.alloc(), span}}, Name: name, Mutable: mutable, Type: typ, Value: value}
}

func (*LetStmt) StmtKind() StmtKind { return StmtLet }

// AssignStmt is "target = value" or a compound form such as
// "target += value". Op is nil for plain assignment.
type AssignStmt struct {
	stmtBase
	Target Expr
	Op     *BinaryOp
	Value  Expr
}

func NewAssignStmt(a *Arena, span source.Span, target Expr, op *BinaryOp, value Expr) *AssignStmt {
	return &AssignStmt{stmtBase: stmtBase{base{a.alloc(), span}}, Target: target, Op: op, Value: value}
}

func (*AssignStmt) StmtKind() StmtKind { return StmtAssign }

// ReturnStmt returns from the enclosing function. Value is nil for a bare
// "return;" in a void function.
type ReturnStmt struct {
	stmtBase
	Value Expr
}

func NewReturnStmt(a *Arena, span source.Span, value Expr) *ReturnStmt {
	return &ReturnStmt{stmtBase: stmtBase{base{a.alloc(), span}}, Value: value}
}

func (*ReturnStmt) StmtKind() StmtKind { return StmtReturn }

// IfStmt is a conditional. Else is nil, a *BlockStmt, or another *IfStmt
// (the "else if" chain).
type IfStmt struct {
	stmtBase
	Cond Expr
	Then *BlockStmt
	Else Stmt
}

func NewIfStmt(a *Arena, span source.Span, cond Expr, then *BlockStmt, els Stmt) *IfStmt {
	return &IfStmt{stmtBase: stmtBase{base{a.alloc(), span}}, Cond: cond, Then: then, Else: els}
}

func (*IfStmt) StmtKind() StmtKind { return StmtIf }

// MatchArm is one "pattern [if guard] => body" entry of a MatchStmt.
type MatchArm struct {
	Pattern Pattern
	Guard   Expr // nil when the arm has no guard clause
	Body    Stmt
	Span    source.Span
}

// MatchStmt dispatches on Scrutinee's runtime shape. Exhaustiveness over
// Scrutinee's declared type is enforced by the semantic analyzer, not the
// parser (spec.md §3).
type MatchStmt struct {
	stmtBase
	Scrutinee Expr
	Arms      []MatchArm
}

func NewMatchStmt(a *Arena, span source.Span, scrutinee Expr, arms []MatchArm) *MatchStmt {
	return &MatchStmt{stmtBase: stmtBase{base{a.alloc(), span}}, Scrutinee: scrutinee, Arms: arms}
}

func (*MatchStmt) StmtKind() StmtKind { return StmtMatch }

// ForStmt iterates Binding over Iterable.
type ForStmt struct {
	stmtBase
	Binding  string
	Iterable Expr
	Body     *BlockStmt
}

func NewForStmt(a *Arena, span source.Span, binding string, iterable Expr, body *BlockStmt) *ForStmt {
	return &ForStmt{stmtBase: stmtBase{base{a.alloc(), span}}, Binding: binding, Iterable: iterable, Body: body}
}

func (*ForStmt) StmtKind() StmtKind { return StmtFor }

// WhileStmt loops while Cond holds.
type WhileStmt struct {
	stmtBase
	Cond Expr
	Body *BlockStmt
}

func NewWhileStmt(a *Arena, span source.Span, cond Expr, body *BlockStmt) *WhileStmt {
	return &WhileStmt{stmtBase: stmtBase{base{a.alloc(), span}}, Cond: cond, Body: body}
}

func (*WhileStmt) StmtKind() StmtKind { return StmtWhile }

// BreakStmt exits the nearest enclosing loop, or the loop labeled Label.
type BreakStmt struct {
	stmtBase
	Label string
}

func NewBreakStmt(a *Arena, span source.Span, label string) *BreakStmt {
	return &BreakStmt{stmtBase: stmtBase{base{a.alloc(), span}}, Label: label}
}

func (*BreakStmt) StmtKind() StmtKind { return StmtBreak }

// ContinueStmt advances the nearest enclosing loop, or the loop labeled
// Label.
type ContinueStmt struct {
	stmtBase
	Label string
}

func NewContinueStmt(a *Arena, span source.Span, label string) *ContinueStmt {
	return &ContinueStmt{stmtBase: stmtBase{base{a.alloc(), span}}, Label: label}
}

func (*ContinueStmt) StmtKind() StmtKind { return StmtContinue }

// BlockStmt is a brace-delimited statement sequence introducing its own
// scope.
type BlockStmt struct {
	stmtBase
	Stmts []Stmt
}

func NewBlockStmt(a *Arena, span source.Span, stmts []Stmt) *BlockStmt {
	return &BlockStmt{stmtBase: stmtBase{base{a.alloc(), span}}, Stmts: stmts}
}

func (*BlockStmt) StmtKind() StmtKind { return StmtBlock }

// UnsafeStmt marks Body as an unsafe block, lifting the restrictions on
// pointer dereference and FFI calls that Body's statements would otherwise
// violate (spec.md §3: "unsafe discipline").
type UnsafeStmt struct {
	stmtBase
	Body *BlockStmt
}

func NewUnsafeStmt(a *Arena, span source.Span, body *BlockStmt) *UnsafeStmt {
	return &UnsafeStmt{stmtBase: stmtBase{base{a.alloc(), span}}, Body: body}
}

func (*UnsafeStmt) StmtKind() StmtKind { return StmtUnsafe }

// SpawnStmt launches Call as a concurrent task.
type SpawnStmt struct {
	stmtBase
	Call *CallExpr
}

func NewSpawnStmt(a *Arena, span source.Span, call *CallExpr) *SpawnStmt {
	return &SpawnStmt{stmtBase: stmtBase{base{a.alloc(), span}}, Call: call}
}

func (*SpawnStmt) StmtKind() StmtKind { return StmtSpawn }

// ExprStmt evaluates Expr for its side effects, discarding any result.
type ExprStmt struct {
	stmtBase
	X Expr
}

func NewExprStmt(a *Arena, span source.Span, x Expr) *ExprStmt {
	return &ExprStmt{stmtBase: stmtBase{base{a.alloc(), span}}, X: x}
}

func (*ExprStmt) StmtKind() StmtKind { return StmtExpr }
