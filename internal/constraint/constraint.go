// Package constraint defines the single constraint kind the generator
// emits. Field requirements are not a separate constraint kind: EPrj
// attaches a field list to a fresh IType and emits an ordinary equality
// against it, and ECon embeds the record's fields in the node's own type
// (§4.3), so unification alone is left to discover the consequences.
package constraint

import "github.com/tmplang/typecheck/internal/itype"

// Equal is an equality constraint between two inference types, tagged
// with the annotation of the expression that produced it so a later
// unification failure can point back at a source location.
type Equal[A any] struct {
	Left, Right *itype.IType[A]
	Ann         A
}

// List is an append-only, order-preserving sequence of constraints
// (§5: "append-only by the generator; read-only by the solver").
type List[A any] []Equal[A]
