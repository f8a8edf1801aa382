package diag

import "github.com/asthra-lang/asthrac/internal/source"

// SimilarSymbol ranks candidates against name by normalized Levenshtein
// similarity and returns the best one, if it clears the medium-confidence
// threshold (spec.md §4.8): >= 0.8 is High, >= 0.6 is Medium, otherwise no
// suggestion is produced.
func SimilarSymbol(name string, candidates []string, at source.Span) (Suggestion, bool) {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		score := similarity(name, c)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	if bestScore >= 0.8 {
		return Suggestion{Span: at, Replacement: best, Confidence: High, Rationale: "similar name in scope"}, true
	}
	if bestScore >= 0.6 {
		return Suggestion{Span: at, Replacement: best, Confidence: Medium, Rationale: "similar name in scope"}, true
	}
	return Suggestion{}, false
}

// similarity returns 1 - (Levenshtein distance / max length), in [0, 1].
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(maxLen)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}

// TypeConversion builds the fixed-text medium-confidence suggestion for
// specific primitive mismatches spec.md §4.8 names (string <-> integer).
func TypeConversion(at source.Span, fromType, toType string) Suggestion {
	var replacement string
	switch {
	case fromType == "string" && isIntegerTypeName(toType):
		replacement = "<expr>.parse_" + toType + "()"
	case isIntegerTypeName(fromType) && toType == "string":
		replacement = "<expr>.to_string()"
	default:
		replacement = "<expr> as " + toType
	}
	return Suggestion{
		Span:        at,
		Replacement: replacement,
		Confidence:  Medium,
		Rationale:   "convert between " + fromType + " and " + toType,
	}
}

func isIntegerTypeName(name string) bool {
	switch name {
	case "i8", "i16", "i32", "i64", "i128", "u8", "u16", "u32", "u64", "u128", "isize", "usize":
		return true
	default:
		return false
	}
}

// GrammarCompliance builds the deterministic, high-confidence fix for a
// violation of the explicit-syntax rules of spec.md §4.3.
func GrammarCompliance(at source.Span, replacement, rationale string) Suggestion {
	return Suggestion{
		Span:        at,
		Replacement: replacement,
		Confidence:  High,
		Rationale:   rationale,
	}
}
