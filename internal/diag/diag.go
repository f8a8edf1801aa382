// Package diag implements the Diagnostic Engine: an accumulator of
// structured diagnostics with source spans, machine-readable codes,
// confidence-ranked suggestions, and human/JSON renderers (spec.md §4.8).
package diag

import (
	"sort"
	"sync"

	"github.com/asthra-lang/asthrac/internal/source"
)

// Severity is the closed set of diagnostic severities.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
	Help
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	case Help:
		return "help"
	default:
		return "unknown"
	}
}

// Category buckets a diagnostic's Code for the JSON "metadata.category"
// field (spec.md §6).
type Category string

const (
	CategorySyntax   Category = "syntax"
	CategoryTypeSys  Category = "type_system"
	CategoryGrammar  Category = "grammar"
	CategorySemantic Category = "semantic"
	CategoryFFI      Category = "ffi"
	CategorySecurity Category = "security"
)

// Confidence ranks a Suggestion.
type Confidence string

const (
	High   Confidence = "high"
	Medium Confidence = "medium"
	Low    Confidence = "low"
)

// Label attaches explanatory text to a secondary span.
type Label struct {
	Span  source.Span
	Label string
}

// Suggestion is a single candidate fix: replacement text for a span, ranked
// by confidence, with a short rationale.
type Suggestion struct {
	Span        source.Span
	Replacement string
	Confidence  Confidence
	Rationale   string
}

// Metadata carries the structured, code-specific context of a Diagnostic.
type Metadata struct {
	Category       Category
	SimilarSymbols []string
	InferredTypes  []string
	// MissingVariants is populated for NonExhaustivePatterns.
	MissingVariants []string
}

// Diagnostic is the uniform shape every compiler stage reports into the
// engine (spec.md §3, §6).
type Diagnostic struct {
	Code       Code
	Severity   Severity
	Message    string
	Primary    source.Span
	Labels     []Label
	Suggestions []Suggestion
	Metadata   Metadata
}

// SuppressionPolicy is the compiler's only process-wide configuration
// surface (spec.md §9): which warning categories are suppressed, and
// whether Note/Help diagnostics should be dropped entirely. It is always
// passed in explicitly, never read from a package-level singleton.
type SuppressionPolicy struct {
	// DisabledCategories lists warning categories to drop entirely.
	DisabledCategories map[Category]bool
	// WarningsOnly, if true, suppresses Note/Help severities.
	WarningsOnly bool
}

func (p SuppressionPolicy) suppresses(d Diagnostic) bool {
	if p.DisabledCategories[d.Metadata.Category] && d.Severity != Error {
		return true
	}
	if p.WarningsOnly && (d.Severity == Note || d.Severity == Help) {
		return true
	}
	return false
}

// Engine accumulates diagnostics for one compilation unit and renders them
// in source order at the end, per spec.md §5's ordering guarantee.
type Engine struct {
	mgr    *source.Manager
	policy SuppressionPolicy

	// mu guards diags. Most compiles never touch it outside the main
	// goroutine, but internal/compile's ParallelFiles option reports from
	// several file-checking goroutines at once (SPEC_FULL.md §12).
	mu    sync.Mutex
	diags []Diagnostic
}

// NewEngine creates an Engine bound to a Source Manager (for rendering) and
// a suppression policy.
func NewEngine(mgr *source.Manager, policy SuppressionPolicy) *Engine {
	return &Engine{mgr: mgr, policy: policy}
}

// Report records d, unless the suppression policy drops it.
func (e *Engine) Report(d Diagnostic) {
	if e.policy.suppresses(d) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.diags = append(e.diags, d)
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (e *Engine) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, d := range e.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// All returns every recorded diagnostic, unsorted (discovery order).
func (e *Engine) All() []Diagnostic {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Diagnostic, len(e.diags))
	copy(out, e.diags)
	return out
}

// Sorted returns diagnostics ordered by primary span, the order spec.md §7
// requires at print time: (file, start offset) ascending, ties broken by
// end offset then by discovery order for full determinism.
func (e *Engine) Sorted() []Diagnostic {
	e.mu.Lock()
	out := make([]Diagnostic, len(e.diags))
	copy(out, e.diags)
	e.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Primary, out[j].Primary
		if a.File() != b.File() {
			return a.File() < b.File()
		}
		if a.Start.Offset != b.Start.Offset {
			return a.Start.Offset < b.Start.Offset
		}
		return a.End.Offset < b.End.Offset
	})
	return out
}

// Count returns the number of recorded diagnostics of the given severity.
func (e *Engine) Count(sev Severity) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, d := range e.diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}
