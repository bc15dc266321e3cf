// Package itype is the inference-time type representation (§3, "IType"):
// a tagged variant of unresolved unification variable vs. known shape,
// with a list of field constraints attached to both forms. Arena-style
// indirection (variables identified by integer id rather than by
// pointer) is what lets the same variable appear in many constraints
// without forming ownership cycles (§9).
package itype

import (
	"fmt"

	ast "github.com/tmplang/typecheck/internal/syntax"
)

// Shape tags which alternative of the IType sum an instance represents.
type Shape int

const (
	ShapeVar Shape = iota
	ShapeLit
	ShapeRef
	ShapeArrow
	ShapeList
)

// FieldConstraint is a deferred "must have field f: tau" requirement
// (§3, §4.3 ECon/EPrj).
type FieldConstraint[A any] struct {
	Name FieldName
	Type *IType[A]
}

type FieldName = ast.FieldName

// IType is the recursive inference type. Exactly one of the Shape-tagged
// fields is meaningful at a time:
//
//	ShapeVar:   VarID
//	ShapeLit:   Lit
//	ShapeRef:   TypeName
//	ShapeArrow: Param, Result
//	ShapeList:  Elem
//
// Fields is attached regardless of Shape, per §3's "plus, attached to
// both variants, a list of field constraints".
type IType[A any] struct {
	Ann A

	Shape Shape

	VarID int

	Lit ast.LitKind

	TypeName ast.TypeName

	Param  *IType[A]
	Result *IType[A]

	Elem *IType[A]

	Fields []FieldConstraint[A]
}

func Var[A any](a A, id int) *IType[A] {
	return &IType[A]{Ann: a, Shape: ShapeVar, VarID: id}
}

// VarWithFields builds a fresh variable that already carries field
// constraints, used by EPrj to seed a single "must have this field"
// requirement before it has ever touched the solver's store (§4.3).
func VarWithFields[A any](a A, id int, fields []FieldConstraint[A]) *IType[A] {
	return &IType[A]{Ann: a, Shape: ShapeVar, VarID: id, Fields: fields}
}

func Lit[A any](a A, k ast.LitKind) *IType[A] {
	return &IType[A]{Ann: a, Shape: ShapeLit, Lit: k}
}

func Ref[A any](a A, tn ast.TypeName) *IType[A] {
	return &IType[A]{Ann: a, Shape: ShapeRef, TypeName: tn}
}

func RefWithFields[A any](a A, tn ast.TypeName, fields []FieldConstraint[A]) *IType[A] {
	return &IType[A]{Ann: a, Shape: ShapeRef, TypeName: tn, Fields: fields}
}

func Arrow[A any](a A, param, result *IType[A]) *IType[A] {
	return &IType[A]{Ann: a, Shape: ShapeArrow, Param: param, Result: result}
}

func List[A any](a A, elem *IType[A]) *IType[A] {
	return &IType[A]{Ann: a, Shape: ShapeList, Elem: elem}
}

// WithFields returns a shallow copy of t carrying a different field list,
// leaving t itself untouched (the store's classes own field lists; a
// plain IType value never needs to be mutated in place).
func (t *IType[A]) WithFields(fields []FieldConstraint[A]) *IType[A] {
	cp := *t
	cp.Fields = fields
	return &cp
}

// FromType lifts a fully resolved surface type into an IType, used for
// ELam's optional ascription and EForeign's known type (§4.3).
func FromType[A any](a A, t ast.Type) *IType[A] {
	switch t := t.(type) {
	case ast.TLit:
		return Lit(a, t.Kind)
	case ast.TRef:
		return Ref(a, t.Name)
	case ast.TArrow:
		return Arrow(a, FromType(a, t.Param), FromType(a, t.Result))
	case ast.TList:
		return List(a, FromType(a, t.Elem))
	default:
		panic(fmt.Sprintf("itype.FromType: unknown surface type %T", t))
	}
}

// String renders an IType for diagnostics; it does not consult a store,
// so unresolved variables print as plain "tN" placeholders.
func (t *IType[A]) String() string {
	switch t.Shape {
	case ShapeVar:
		return fmt.Sprintf("t%d", t.VarID)
	case ShapeLit:
		return t.Lit.String()
	case ShapeRef:
		return string(t.TypeName)
	case ShapeArrow:
		return fmt.Sprintf("(%s -> %s)", t.Param, t.Result)
	case ShapeList:
		return fmt.Sprintf("[%s]", t.Elem)
	default:
		return "<bad-shape>"
	}
}
