// Package source implements the Source Manager: it owns the byte buffers of
// every file in a compilation unit, resolves byte offsets to line/column
// positions, and hands out snippets for diagnostic rendering.
package source

import (
	"fmt"
	"os"
	"sort"

	"github.com/asthra-lang/asthrac/internal/cerr"
)

// FileID identifies a loaded file within a Manager. The zero value is never
// a valid FileID.
type FileID int

// Position is a (file, byte-offset) pair.
type Position struct {
	File   FileID
	Offset int
}

// Span is a half-open [Start, End) interval of Positions within a single
// file. A Span is non-empty unless explicitly constructed otherwise (used
// only for synthesized nodes such as an implicit return).
type Span struct {
	Start Position
	End   Position
}

// File reports the FileID this span belongs to. Start and End must share a
// file; this is enforced by construction throughout the lexer and parser.
func (s Span) File() FileID { return s.Start.File }

// Len returns the byte length of the span.
func (s Span) Len() int { return s.End.Offset - s.Start.Offset }

// Contains reports whether s fully contains o (same file, o's bounds within
// s's bounds).
func (s Span) Contains(o Span) bool {
	return s.File() == o.File() && s.Start.Offset <= o.Start.Offset && o.End.Offset <= s.End.Offset
}

// Join returns the smallest span covering both s and o. Both must be in the
// same file.
func Join(s, o Span) Span {
	start, end := s.Start, s.End
	if o.Start.Offset < start.Offset {
		start = o.Start
	}
	if o.End.Offset > end.Offset {
		end = o.End
	}
	return Span{Start: start, End: end}
}

// LineCol is a 1-based line and column pair, as printed in diagnostics.
type LineCol struct {
	Line, Col int
}

type file struct {
	path string
	data []byte

	// lineOffsets[i] is the byte offset of the start of line i+1 (0-based
	// index, 1-based line number). Built lazily on first position query.
	lineOffsets []int
}

// Manager owns every source file of a compilation. It is not safe for
// concurrent writes (Load), but position queries and snippet extraction are
// read-only once loading is complete, satisfying the single-unit
// sequential-within-a-pass contract of spec.md §5.
type Manager struct {
	files []*file
	byPath map[string]FileID
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{byPath: map[string]FileID{}}
}

// Load reads path from disk and returns its FileID. Loading the same path
// twice returns the same FileID without re-reading the file.
func (m *Manager) Load(path string) (FileID, error) {
	if id, ok := m.byPath[path]; ok {
		return id, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, cerr.IO(path, err)
	}
	return m.AddVirtual(path, data), nil
}

// AddVirtual registers in-memory source text under a nominal path, without
// touching the filesystem. Used by tests and by internal/langserver, which
// receives source bodies over HTTP rather than from disk.
func (m *Manager) AddVirtual(path string, data []byte) FileID {
	m.files = append(m.files, &file{path: path, data: data})
	id := FileID(len(m.files))
	m.byPath[path] = id
	return id
}

// Path returns the path a FileID was loaded under.
func (m *Manager) Path(id FileID) string {
	return m.mustFile(id).path
}

// Bytes returns the full contents of the given file.
func (m *Manager) Bytes(id FileID) []byte {
	return m.mustFile(id).data
}

// Resolve converts a byte offset within id into a 1-based line/column pair.
func (m *Manager) Resolve(id FileID, offset int) LineCol {
	f := m.mustFile(id)
	f.ensureLineOffsets()

	// find the last line whose start offset is <= offset.
	i := sort.Search(len(f.lineOffsets), func(i int) bool {
		return f.lineOffsets[i] > offset
	})
	line := i // sort.Search returns index of first offset > target; i-1 is the line
	if line == 0 {
		line = 1
	}
	lineStart := f.lineOffsets[line-1]
	return LineCol{Line: line, Col: offset - lineStart + 1}
}

// PositionResolve is a convenience wrapper around Resolve for a Position.
func (m *Manager) PositionResolve(p Position) LineCol {
	return m.Resolve(p.File, p.Offset)
}

// Snippet returns the raw source text covered by span.
func (m *Manager) Snippet(span Span) string {
	f := m.mustFile(span.File())
	start, end := span.Start.Offset, span.End.Offset
	if start < 0 {
		start = 0
	}
	if end > len(f.data) {
		end = len(f.data)
	}
	if start > end {
		return ""
	}
	return string(f.data[start:end])
}

// Line returns the full text of the 1-based line number ln in file id,
// without its trailing newline. Used to render the source line a diagnostic
// points at.
func (m *Manager) Line(id FileID, ln int) string {
	f := m.mustFile(id)
	f.ensureLineOffsets()
	if ln < 1 || ln > len(f.lineOffsets) {
		return ""
	}
	start := f.lineOffsets[ln-1]
	end := len(f.data)
	if ln < len(f.lineOffsets) {
		end = f.lineOffsets[ln]
	}
	text := f.data[start:end]
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return string(text)
}

func (m *Manager) mustFile(id FileID) *file {
	if id <= 0 || int(id) > len(m.files) {
		panic(fmt.Sprintf("source: invalid FileID %d", id))
	}
	return m.files[id-1]
}

func (f *file) ensureLineOffsets() {
	if f.lineOffsets != nil {
		return
	}
	offsets := []int{0}
	for i, b := range f.data {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	f.lineOffsets = offsets
}
