// Package syntax defines the surface-level data model that the constraint
// generator consumes: ground literal kinds, declared types, surface types,
// and the annotated expression/pattern trees described by the front end's
// elaboration pass.
package syntax

import "strconv"

// Name, FieldName, Constructor and TypeName are all plain identifiers at
// this layer; they exist as distinct aliases so call sites read like the
// grammar they come from rather than like interchangeable strings.
type (
	Name        = string
	FieldName   = string
	Constructor = string
	TypeName    = string
)

// Pos is the default source annotation used by the demo CLI and most
// tests. Library callers may annotate expressions with any type A; the
// core never inspects A, it only carries it through.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Typed pairs a fully resolved surface Type with the original annotation,
// exactly the shape every node carries after a successful check (§3,
// Lifecycle: "replace each annotation A with (Type, A)").
type Typed[A any] struct {
	Type Type
	Orig A
}
