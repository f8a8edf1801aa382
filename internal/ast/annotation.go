package ast

import "github.com/asthra-lang/asthrac/internal/source"

// AnnotationArg is one key[=value] entry inside an annotation's explicit
// argument list (spec.md §3: "annotation arguments are never implicit").
// Value is empty for an argument written as a bare key, without "=value".
type AnnotationArg struct {
	Key   string
	Value string
	Span  source.Span
}

// Annotation is a #[name(args...)] attribute attached to a declaration,
// parameter, or statement block: human_review, constant_time,
// volatile_memory, repr, and the FFI ownership markers transfer_full,
// transfer_none, and borrowed (spec.md §3, Glossary: "Annotation").
type Annotation struct {
	Name string
	Args []AnnotationArg
	Span source.Span
}

// Has reports whether name appears among annotations, ignoring arguments.
func Has(annotations []Annotation, name string) bool {
	for _, a := range annotations {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Find returns the first annotation named name, if present.
func Find(annotations []Annotation, name string) (Annotation, bool) {
	for _, a := range annotations {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}
