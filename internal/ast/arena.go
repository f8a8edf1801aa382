package ast

import "github.com/asthra-lang/asthrac/internal/source"

// Arena owns every node of a single compilation unit and hands out the
// monotonic NodeIDs used for index-based back-references. It is released
// as a whole at the end of compilation (spec.md Glossary: "Arena").
type Arena struct {
	nextID NodeID
}

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) alloc() NodeID {
	a.nextID++
	return a.nextID
}

// base is embedded in every concrete node type and supplies its NodeID and
// Span.
type base struct {
	id   NodeID
	span source.Span
}

// ID returns the node's arena-assigned identity.
func (b base) ID() NodeID { return b.id }

// Span returns the source span the node covers. Invariant: non-empty and
// monotonic within its parent's span (spec.md §3), checked in parser tests.
func (b base) Span() source.Span { return b.span }

// Node is the minimal shape every AST node satisfies, regardless of
// category.
type Node interface {
	ID() NodeID
	Span() source.Span
}
