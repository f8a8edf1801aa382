// Package sema implements semantic analysis: the two-pass symbol-table
// construction (spec.md §4.4), type inference and checking (§4.5), and the
// per-node validations (§4.6) — immutability, pattern exhaustiveness,
// annotation semantics, unsafe discipline, import visibility — that turn a
// parsed AST into one the IR lowerer can trust. Traversal follows the
// teacher's total `switch n.Type()` idiom (tunascript.go), generalized from
// one flat node kind to the five closed AST categories.
package sema

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/source"
	"github.com/asthra-lang/asthrac/internal/types"
)

// SymbolKind is the closed set of things a Symbol can name (spec.md §3).
type SymbolKind int

const (
	SymModule SymbolKind = iota
	SymType
	SymFunction
	SymLocal
	SymConst
	SymField
	SymVariant
)

func (k SymbolKind) String() string {
	switch k {
	case SymModule:
		return "module"
	case SymType:
		return "type"
	case SymFunction:
		return "function"
	case SymLocal:
		return "local"
	case SymConst:
		return "const"
	case SymField:
		return "field"
	case SymVariant:
		return "variant"
	default:
		return "?"
	}
}

// Symbol is the analyzer's canonical identity for one named entity (spec.md
// §3). Its ID is its index into Table.symbols plus one, so the zero value
// of types.SymbolID can mean "no symbol" everywhere back-references are
// stored.
type Symbol struct {
	ID         types.SymbolID
	Name       string
	Kind       SymbolKind
	Span       source.Span
	Public     bool
	ScopeID    ScopeID
	Type       *types.Type
	Mutable    bool // SymLocal only: declared with "let mut"
	Node       ast.Node
}

// ScopeKind is the closed set of scope shapes (spec.md §3).
type ScopeKind int

const (
	ScopePackage ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeImpl
	ScopeGenericParams
)

// ScopeID is a Scope's index into Table.scopes.
type ScopeID int

// NoScope is the zero value meaning "not yet assigned a scope."
const NoScope ScopeID = -1

// symKey is a scope-local lookup key: spec.md §3 requires name uniqueness
// per symbol *category*, not per name alone, so two different kinds (e.g. a
// type and a const) may share a name in the same scope.
type symKey struct {
	name string
	kind SymbolKind
}

// Scope is a named region introducing symbols resolvable by unqualified
// name from within (spec.md §3). Scopes nest lexically via Parent.
type Scope struct {
	ID      ScopeID
	Parent  ScopeID
	Kind    ScopeKind
	Symbols map[symKey]types.SymbolID
}
