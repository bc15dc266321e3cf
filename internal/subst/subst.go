// Package subst implements substitution and lowering (§4.6): after the
// solver finishes, build a Substitutions map from the union-find store,
// apply it to every node's inference type, and lower the result into a
// concrete surface Type or an inference error.
package subst

import (
	"github.com/tmplang/typecheck/internal/itype"
	"github.com/tmplang/typecheck/internal/unionfind"
)

// Substitutions maps a variable id to its representative descriptor,
// built once after solving completes. Entries that would just point
// back to their own (still-unresolved) id with no field constraints are
// filtered out, matching §4.6.
type Substitutions[A any] map[int]*itype.IType[A]

// Build constructs a Substitutions map covering every variable id the
// name supply handed out during this session (ids 1..maxID inclusive).
func Build[A any](store *unionfind.Store[A], maxID int) Substitutions[A] {
	subs := make(Substitutions[A])
	var zero A
	for id := 1; id <= maxID; id++ {
		probe := itype.Var(zero, id)
		repr := store.Repr(probe)
		fields := store.FieldsOf(probe)

		if repr.Shape == itype.ShapeVar && repr.VarID == id && len(fields) == 0 {
			continue
		}
		if repr.Shape == itype.ShapeVar {
			subs[id] = itype.VarWithFields(repr.Ann, repr.VarID, fields)
		} else {
			subs[id] = repr.WithFields(fields)
		}
	}
	return subs
}

// Apply replaces solved class representatives throughout t. It does not
// descend into field-constraint lists (§9): a FieldConstraint's Type is
// carried over exactly as the unifier last left it, so downstream
// consumers must not assume those nested types are fully substituted.
func Apply[A any](subs Substitutions[A], t *itype.IType[A]) *itype.IType[A] {
	switch t.Shape {
	case itype.ShapeVar:
		r, ok := subs[t.VarID]
		if !ok {
			return t
		}
		if r.Shape == itype.ShapeVar {
			return r
		}
		return Apply(subs, r)
	case itype.ShapeArrow:
		return itype.Arrow(t.Ann, Apply(subs, t.Param), Apply(subs, t.Result))
	case itype.ShapeList:
		return itype.List(t.Ann, Apply(subs, t.Elem))
	case itype.ShapeRef:
		return itype.RefWithFields(t.Ann, t.TypeName, t.Fields)
	default:
		return t
	}
}
