package syntax

import "fmt"

// Type is the surface type grammar (§3): literals, references to declared
// variants/records, functions and lists. It never carries unification
// variables; those live one layer down in the itype package.
type Type interface {
	String() string
	typeNode()
}

// TLit is a ground literal type.
type TLit struct{ Kind LitKind }

func (t TLit) String() string { return t.Kind.String() }
func (TLit) typeNode()        {}

// TRef refers to a declared variant or record type by name (spec's
// TVar(TypeName) — renamed here so it isn't confused with a unification
// type variable, which is a completely different thing one layer down).
type TRef struct{ Name TypeName }

func (t TRef) String() string { return t.Name }
func (TRef) typeNode()        {}

// TArrow is a function type.
type TArrow struct{ Param, Result Type }

func (t TArrow) String() string { return fmt.Sprintf("(%s -> %s)", t.Param, t.Result) }
func (TArrow) typeNode()        {}

// TList is a homogeneous list type.
type TList struct{ Elem Type }

func (t TList) String() string { return fmt.Sprintf("[%s]", t.Elem) }
func (TList) typeNode()        {}

// Equal structurally compares two surface types.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case TLit:
		b, ok := b.(TLit)
		return ok && a.Kind == b.Kind
	case TRef:
		b, ok := b.(TRef)
		return ok && a.Name == b.Name
	case TArrow:
		b, ok := b.(TArrow)
		return ok && Equal(a.Param, b.Param) && Equal(a.Result, b.Result)
	case TList:
		b, ok := b.(TList)
		return ok && Equal(a.Elem, b.Elem)
	default:
		return false
	}
}
