package sema

import (
	"strings"

	"github.com/asthra-lang/asthrac/internal/diag"
)

// checkImports enforces spec.md §4.4's import path rules: the "stdlib/"
// prefix is reserved (no user package may live there), and "internal/" may
// only be imported by a package whose own path also starts with "stdlib/"
// or "internal/". This unit's own package path isn't modeled at the
// language level here (the compilation unit has no declared import path of
// its own in this frontier — see SPEC_FULL.md), so the check degrades to:
// any "internal/…" import from a unit not itself rooted under stdlib/
// internal is forbidden, which is the only direction spec.md's examples
// exercise (§8 scenario 6).
func (a *Analyzer) checkImports() {
	for _, f := range a.unit.Files {
		for _, imp := range f.Imports {
			if strings.HasPrefix(imp.Path, "internal/") {
				a.errorf(imp.Span(), diag.CodeForbiddenInternalImport, "package \""+imp.Path+"\" is internal and cannot be imported here")
			}
		}
	}
}
