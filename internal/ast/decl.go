package ast

import "github.com/asthra-lang/asthrac/internal/source"

// GenericParam is one "<Name: Bound + Bound>" entry on a generic
// declaration.
type GenericParam struct {
	Name   string
	Bounds []string
	Span   source.Span
}

// Param is one function parameter.
type Param struct {
	Name    string
	Type    TypeExpr
	Mutable bool
	Span    source.Span
}

// PackageDecl is the mandatory "package name;" at the top of every file.
type PackageDecl struct {
	declBase
	Name string
}

func NewPackageDecl(a *Arena, span source.Span, name string) *PackageDecl {
	return &PackageDecl{declBase: declBase{base{a.alloc(), span}}, Name: name}
}

func (*PackageDecl) DeclKind() DeclKind { return DeclPackage }

// ImportDecl brings another package's public symbols into scope. Alias is
// accepted but, per spec.md §3, has no semantic effect: every reference
// still uses the imported package's own name.
type ImportDecl struct {
	declBase
	Path  string
	Alias string
}

func NewImportDecl(a *Arena, span source.Span, path, alias string) *ImportDecl {
	return &ImportDecl{declBase: declBase{base{a.alloc(), span}}, Path: path, Alias: alias}
}

func (*ImportDecl) DeclKind() DeclKind { return DeclImport }

// FunctionDecl declares a function or, inside an ImplBlock, a method.
type FunctionDecl struct {
	declBase
	Name        string
	Visibility  bool // true = pub
	Generics    []GenericParam
	Params      []Param
	ReturnType  TypeExpr
	Body        *BlockStmt // nil for a declaration with no body (unreachable in practice; extern uses ExternDecl)
	Annotations []Annotation
	DocComment  string
}

func NewFunctionDecl(a *Arena, span source.Span, name string, pub bool, generics []GenericParam, params []Param, ret TypeExpr, body *BlockStmt, annotations []Annotation, doc string) *FunctionDecl {
	return &FunctionDecl{
		declBase:    declBase{base{a.alloc(), span}},
		Name:        name,
		Visibility:  pub,
		Generics:    generics,
		Params:      params,
		ReturnType:  ret,
		Body:        body,
		Annotations: annotations,
		DocComment:  doc,
	}
}

func (*FunctionDecl) DeclKind() DeclKind { return DeclFunction }

// ExternDecl declares a foreign function, bound to ABI (e.g. "C"), with no
// Asthra-level body. FFI ownership annotations on Params/return live in
// Annotations (spec.md §3: transfer_full, transfer_none, borrowed).
type ExternDecl struct {
	declBase
	Name        string
	ABI         string
	Params      []Param
	ReturnType  TypeExpr
	Annotations []Annotation
	DocComment  string
}

func NewExternDecl(a *Arena, span source.Span, name, abi string, params []Param, ret TypeExpr, annotations []Annotation, doc string) *ExternDecl {
	return &ExternDecl{
		declBase:    declBase{base{a.alloc(), span}},
		Name:        name,
		ABI:         abi,
		Params:      params,
		ReturnType:  ret,
		Annotations: annotations,
		DocComment:  doc,
	}
}

func (*ExternDecl) DeclKind() DeclKind { return DeclExtern }

// FieldDecl is one field of a StructDecl.
type FieldDecl struct {
	Name       string
	Type       TypeExpr
	Visibility bool
	Span       source.Span
}

// StructDecl declares a struct type. Empty is true only for the explicit
// "{ none }" marker required when the struct has no fields (spec.md §3).
type StructDecl struct {
	declBase
	Name        string
	Visibility  bool
	Generics    []GenericParam
	Fields      []FieldDecl
	Empty       bool
	Annotations []Annotation
	DocComment  string
}

func NewStructDecl(a *Arena, span source.Span, name string, pub bool, generics []GenericParam, fields []FieldDecl, empty bool, annotations []Annotation, doc string) *StructDecl {
	return &StructDecl{
		declBase:    declBase{base{a.alloc(), span}},
		Name:        name,
		Visibility:  pub,
		Generics:    generics,
		Fields:      fields,
		Empty:       empty,
		Annotations: annotations,
		DocComment:  doc,
	}
}

func (*StructDecl) DeclKind() DeclKind { return DeclStruct }

// EnumVariantDecl is one variant of an EnumDecl. HasPayload distinguishes
// a unit variant from one carrying an explicitly-marked, possibly empty
// payload tuple (spec.md §3: "variant payload markers are never implicit").
type EnumVariantDecl struct {
	Name        string
	HasPayload  bool
	PayloadType []TypeExpr
	Span        source.Span
}

// EnumDecl declares a closed sum type.
type EnumDecl struct {
	declBase
	Name        string
	Visibility  bool
	Generics    []GenericParam
	Variants    []EnumVariantDecl
	Annotations []Annotation
	DocComment  string
}

func NewEnumDecl(a *Arena, span source.Span, name string, pub bool, generics []GenericParam, variants []EnumVariantDecl, annotations []Annotation, doc string) *EnumDecl {
	return &EnumDecl{
		declBase:    declBase{base{a.alloc(), span}},
		Name:        name,
		Visibility:  pub,
		Generics:    generics,
		Variants:    variants,
		Annotations: annotations,
		DocComment:  doc,
	}
}

func (*EnumDecl) DeclKind() DeclKind { return DeclEnum }

// ImplBlock attaches a set of methods to a named type.
type ImplBlock struct {
	declBase
	TypeName string
	Generics []GenericParam
	Methods  []*FunctionDecl
}

func NewImplBlock(a *Arena, span source.Span, typeName string, generics []GenericParam, methods []*FunctionDecl) *ImplBlock {
	return &ImplBlock{declBase: declBase{base{a.alloc(), span}}, TypeName: typeName, Generics: generics, Methods: methods}
}

func (*ImplBlock) DeclKind() DeclKind { return DeclImpl }

// ConstDecl declares a compile-time constant.
type ConstDecl struct {
	declBase
	Name       string
	Visibility bool
	Type       TypeExpr
	Value      Expr
	DocComment string
}

func NewConstDecl(a *Arena, span source.Span, name string, pub bool, typ TypeExpr, value Expr, doc string) *ConstDecl {
	return &ConstDecl{declBase: declBase{base{a.alloc(), span}}, Name: name, Visibility: pub, Type: typ, Value: value, DocComment: doc}
}

func (*ConstDecl) DeclKind() DeclKind { return DeclConst }

// File is the parse result of one source file: its mandatory package
// clause, its imports, and its top-level declarations. A compilation unit
// (spec.md Glossary) is a package's worth of Files sharing one Arena,
// assembled by package compile.
type File struct {
	FileID  source.FileID
	Package *PackageDecl
	Imports []*ImportDecl
	Decls   []Decl
}

// NewFile wraps one file's parse result.
func NewFile(fileID source.FileID, pkg *PackageDecl, imports []*ImportDecl, decls []Decl) *File {
	return &File{FileID: fileID, Package: pkg, Imports: imports, Decls: decls}
}

// Unit is a compilation unit: every File of a package, sharing one Arena
// (spec.md Glossary: "Arena", "Compilation unit").
type Unit struct {
	Arena *Arena
	Files []*File
}

// NewUnit creates an empty compilation unit over a fresh Arena.
func NewUnit() *Unit {
	return &Unit{Arena: NewArena()}
}

// AddFile appends a parsed file to the unit.
func (u *Unit) AddFile(f *File) {
	u.Files = append(u.Files, f)
}
