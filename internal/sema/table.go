package sema

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/source"
	"github.com/asthra-lang/asthrac/internal/types"
)

// Table is the symbol table and scope graph for one compilation unit
// (spec.md §4.4): every Scope and Symbol of the unit, indexed for O(1)
// lookup by ID and by (scope, name, kind).
type Table struct {
	scopes  []*Scope
	symbols []*Symbol
	diags   *diag.Engine
}

// NewTable creates an empty Table reporting into diags.
func NewTable(diags *diag.Engine) *Table {
	return &Table{diags: diags}
}

// NewScope creates a child scope of parent (NoScope for a root/package
// scope) and returns its ID.
func (t *Table) NewScope(parent ScopeID, kind ScopeKind) ScopeID {
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, &Scope{ID: id, Parent: parent, Kind: kind, Symbols: map[symKey]types.SymbolID{}})
	return id
}

func (t *Table) Scope(id ScopeID) *Scope {
	if id < 0 || int(id) >= len(t.scopes) {
		return nil
	}
	return t.scopes[id]
}

func (t *Table) Symbol(id types.SymbolID) *Symbol {
	i := int(id) - 1
	if i < 0 || i >= len(t.symbols) {
		return nil
	}
	return t.symbols[i]
}

// Declare inserts a new symbol into scope. A name already declared in the
// same scope under the same SymbolKind is a DuplicateSymbol error (spec.md
// §4.4); the pre-existing symbol is kept and the new declaration is
// skipped, following spec.md §7's "definitions following an error are still
// collected, never re-reported as cascades" posture — the duplicate itself
// still gets a symbol so later references to it resolve to *something*.
func (t *Table) Declare(scopeID ScopeID, name string, kind SymbolKind, span source.Span, public bool, node ast.Node) types.SymbolID {
	scope := t.Scope(scopeID)
	key := symKey{name: name, kind: kind}
	if existing, ok := scope.Symbols[key]; ok {
		t.diags.Report(diag.Diagnostic{
			Code:     diag.CodeDuplicateSymbol,
			Severity: diag.Error,
			Message:  "duplicate " + kind.String() + " " + name + " in this scope",
			Primary:  span,
			Metadata: diag.Metadata{Category: diag.CodeDuplicateSymbol.Category()},
		})
		return existing
	}
	id := types.SymbolID(len(t.symbols) + 1)
	t.symbols = append(t.symbols, &Symbol{ID: id, Name: name, Kind: kind, Span: span, Public: public, ScopeID: scopeID, Node: node})
	scope.Symbols[key] = id
	return id
}

// Lookup resolves name (of any of the given kinds, checked in order) by
// walking scope outward from scopeID, honoring shadowing: the nearest
// enclosing scope that declares a matching symbol wins (spec.md §4.4).
func (t *Table) Lookup(scopeID ScopeID, name string, kinds ...SymbolKind) (*Symbol, bool) {
	for s := t.Scope(scopeID); s != nil; s = t.Scope(s.Parent) {
		for _, k := range kinds {
			if id, ok := s.Symbols[symKey{name: name, kind: k}]; ok {
				return t.Symbol(id), true
			}
		}
	}
	return nil, false
}

// NamesInScope returns every unqualified name visible from scopeID,
// outward through enclosing scopes, for similar-symbol suggestion ranking
// (spec.md §4.8).
func (t *Table) NamesInScope(scopeID ScopeID) []string {
	seen := map[string]bool{}
	var out []string
	for s := t.Scope(scopeID); s != nil; s = t.Scope(s.Parent) {
		for key := range s.Symbols {
			if !seen[key.name] {
				seen[key.name] = true
				out = append(out, key.name)
			}
		}
	}
	return out
}
