package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/asthra-lang/asthrac/internal/source"
)

// RenderHuman writes every recorded diagnostic, in source order, as
// human-readable text with a source snippet and caret underline, the way a
// terminal-facing compiler driver prints them.
func (e *Engine) RenderHuman(w io.Writer) {
	for _, d := range e.Sorted() {
		fmt.Fprintln(w, renderOne(e.mgr, d))
	}
}

func renderOne(mgr *source.Manager, d Diagnostic) string {
	var sb strings.Builder

	loc := mgr.PositionResolve(d.Primary.Start)
	path := mgr.Path(d.Primary.File())

	fmt.Fprintf(&sb, "%s: %s [%s]\n", d.Severity, d.Message, d.Code)
	fmt.Fprintf(&sb, "  --> %s:%d:%d\n", path, loc.Line, loc.Col)

	line := mgr.Line(d.Primary.File(), loc.Line)
	if line != "" {
		wrapped := rosed.Edit(line).Wrap(100).String()
		fmt.Fprintf(&sb, "   | %s\n", wrapped)
		caretLen := d.Primary.Len()
		if caretLen < 1 {
			caretLen = 1
		}
		fmt.Fprintf(&sb, "   | %s%s\n", strings.Repeat(" ", loc.Col-1), strings.Repeat("^", caretLen))
	}

	for _, l := range d.Labels {
		lloc := mgr.PositionResolve(l.Span.Start)
		fmt.Fprintf(&sb, "  note: %s (%s:%d:%d)\n", l.Label, mgr.Path(l.Span.File()), lloc.Line, lloc.Col)
	}

	for _, s := range d.Suggestions {
		fmt.Fprintf(&sb, "  help[%s]: replace with %q — %s\n", s.Confidence, s.Replacement, s.Rationale)
	}

	return sb.String()
}

// Summary renders all diagnostics (code, severity, location, message) as a
// header row plus one row per diagnostic, for a compact batch/CI-style
// overview. Cells are joined with "  |  " separators and each row is wrapped
// at 120 columns; columns are not padded to a common width.
func (e *Engine) Summary() string {
	headers := []string{"CODE", "SEVERITY", "LOCATION", "MESSAGE"}
	rows := [][]string{headers}
	for _, d := range e.Sorted() {
		loc := e.mgr.PositionResolve(d.Primary.Start)
		rows = append(rows, []string{
			string(d.Code),
			d.Severity.String(),
			fmt.Sprintf("%s:%d:%d", e.mgr.Path(d.Primary.File()), loc.Line, loc.Col),
			d.Message,
		})
	}

	var sb strings.Builder
	for _, row := range rows {
		line := strings.Join(row, "  |  ")
		sb.WriteString(rosed.Edit(line).Wrap(120).String())
		sb.WriteRune('\n')
	}
	return sb.String()
}

// jsonSpan, jsonDiagnostic, etc. mirror the stable schema of spec.md §6
// exactly.
type jsonPos struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

type jsonSpan struct {
	File  string  `json:"file"`
	Start jsonPos `json:"start"`
	End   jsonPos `json:"end"`
}

type jsonLabel struct {
	Span  jsonSpan `json:"span"`
	Label string   `json:"label"`
}

type jsonSuggestion struct {
	Span        jsonSpan `json:"span"`
	Replacement string   `json:"replacement"`
	Confidence  string   `json:"confidence"`
	Rationale   string   `json:"rationale"`
}

type jsonMetadata struct {
	Category       string   `json:"category"`
	SimilarSymbols []string `json:"similar_symbols,omitempty"`
	InferredTypes  []string `json:"inferred_types,omitempty"`
}

type jsonDiagnostic struct {
	Code        string           `json:"code"`
	Severity    string           `json:"severity"`
	Message     string           `json:"message"`
	Primary     jsonSpan         `json:"primary"`
	Labels      []jsonLabel      `json:"labels,omitempty"`
	Suggestions []jsonSuggestion `json:"suggestions,omitempty"`
	Metadata    jsonMetadata     `json:"metadata"`
}

func (e *Engine) toJSONSpan(s source.Span) jsonSpan {
	start := e.mgr.PositionResolve(s.Start)
	end := e.mgr.PositionResolve(s.End)
	return jsonSpan{
		File:  e.mgr.Path(s.File()),
		Start: jsonPos{Line: start.Line, Col: start.Col},
		End:   jsonPos{Line: end.Line, Col: end.Col},
	}
}

// ExportJSON renders every recorded diagnostic, in source order, to the
// stable JSON schema of spec.md §6.
func (e *Engine) ExportJSON() ([]byte, error) {
	out := make([]jsonDiagnostic, 0, len(e.diags))
	for _, d := range e.Sorted() {
		jd := jsonDiagnostic{
			Code:     string(d.Code),
			Severity: d.Severity.String(),
			Message:  d.Message,
			Primary:  e.toJSONSpan(d.Primary),
			Metadata: jsonMetadata{
				Category:       string(d.Metadata.Category),
				SimilarSymbols: d.Metadata.SimilarSymbols,
				InferredTypes:  d.Metadata.InferredTypes,
			},
		}
		for _, l := range d.Labels {
			jd.Labels = append(jd.Labels, jsonLabel{Span: e.toJSONSpan(l.Span), Label: l.Label})
		}
		for _, s := range d.Suggestions {
			jd.Suggestions = append(jd.Suggestions, jsonSuggestion{
				Span:        e.toJSONSpan(s.Span),
				Replacement: s.Replacement,
				Confidence:  string(s.Confidence),
				Rationale:   s.Rationale,
			})
		}
		out = append(out, jd)
	}
	return json.MarshalIndent(out, "", "  ")
}
