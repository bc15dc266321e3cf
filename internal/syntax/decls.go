package syntax

import "sort"

// DeclKind distinguishes a variant declaration from a record declaration.
type DeclKind int

const (
	DeclVariant DeclKind = iota
	DeclRecord
)

// VariantCtor is one constructor of a variant type, in declaration order.
type VariantCtor struct {
	Name Constructor
	Args []Type
}

// RecordField is one field of a record type, in declaration order.
type RecordField struct {
	Name FieldName
	Type Type
}

// TypeDecl is a single entry of TypeDecls: either an ordered list of
// variant constructors or an ordered list of record fields (§3).
type TypeDecl struct {
	Kind     DeclKind
	Variants []VariantCtor // DeclVariant
	Fields   []RecordField // DeclRecord
}

// ctorEntry is what the reverse constructor index stores.
type ctorEntry struct {
	TypeName TypeName
	Args     []Type
}

// TypeDecls is the mapping from type name to declaration, plus a reverse
// lookup from constructor name to its owning type and argument types
// (§3). A record's type name is itself usable as the record's sole
// "constructor" for ECon, but it is deliberately NOT entered into the
// constructor index: pattern matching on records is not supported
// (§9, open question) and the index serves pattern lookups (and the
// "did you mean" candidates); construction looks the type name up
// directly and never consults it.
type TypeDecls struct {
	decls map[TypeName]*TypeDecl
	ctors map[Constructor]ctorEntry
}

// NewTypeDecls builds a TypeDecls from entries, visiting type names in
// sorted order so the constructor index is built deterministically (§5).
func NewTypeDecls(entries map[TypeName]*TypeDecl) *TypeDecls {
	d := &TypeDecls{
		decls: make(map[TypeName]*TypeDecl, len(entries)),
		ctors: make(map[Constructor]ctorEntry),
	}
	names := make([]TypeName, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		decl := entries[n]
		d.decls[n] = decl
		if decl.Kind == DeclVariant {
			for _, v := range decl.Variants {
				d.ctors[v.Name] = ctorEntry{TypeName: n, Args: v.Args}
			}
		}
	}
	return d
}

// Lookup returns the declaration for a type name.
func (d *TypeDecls) Lookup(tn TypeName) (*TypeDecl, bool) {
	decl, ok := d.decls[tn]
	return decl, ok
}

// LookupConstructor is the reverse lookup: constructor name -> (type
// name, argument types).
func (d *TypeDecls) LookupConstructor(c Constructor) (TypeName, []Type, bool) {
	e, ok := d.ctors[c]
	if !ok {
		return "", nil, false
	}
	return e.TypeName, e.Args, true
}

// Names returns the declared type names in a stable, sorted order.
func (d *TypeDecls) Names() []TypeName {
	names := make([]TypeName, 0, len(d.decls))
	for n := range d.decls {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ConstructorNames returns every variant constructor known across all
// declared types, in a stable, sorted order. Used to build "did you
// mean" suggestions for an unrecognized constructor name.
func (d *TypeDecls) ConstructorNames() []Constructor {
	names := make([]Constructor, 0, len(d.ctors))
	for n := range d.ctors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
