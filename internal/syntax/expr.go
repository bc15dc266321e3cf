package syntax

// Expr is the elaborated expression tree the generator walks (§3). It is
// generic over the annotation carried at every node: callers supply A on
// the way in (typically a source position), the generator replaces it
// with (IType, A) during constraint generation, and a successful check
// replaces it again with Typed[A] on the way out. Re-instantiating the
// same node types at each annotation layer is what lets the substituter
// reuse the input structure instead of re-deriving it (§3, Lifecycle).
type Expr[A any] interface {
	Annotation() A
	exprNode()
}

type node[A any] struct{ Ann A }

func (n node[A]) Annotation() A { return n.Ann }

// Lit is a literal value.
type Lit[A any] struct {
	node[A]
	Value LitValue
}

func (Lit[A]) exprNode() {}

func NewLit[A any](a A, v LitValue) Lit[A] { return Lit[A]{node[A]{a}, v} }

// Var is a variable reference.
type Var[A any] struct {
	node[A]
	Name Name
}

func (Var[A]) exprNode() {}

func NewVar[A any](a A, n Name) Var[A] { return Var[A]{node[A]{a}, n} }

// Lam is a lambda with an optional type ascription on its binder.
type Lam[A any] struct {
	node[A]
	Param   Name
	ParamTy *Type // nil when unannotated
	Body    Expr[A]
}

func (Lam[A]) exprNode() {}

func NewLam[A any](a A, param Name, paramTy *Type, body Expr[A]) Lam[A] {
	return Lam[A]{node[A]{a}, param, paramTy, body}
}

// App is function application.
type App[A any] struct {
	node[A]
	Fn, Arg Expr[A]
}

func (App[A]) exprNode() {}

func NewApp[A any](a A, fn, arg Expr[A]) App[A] { return App[A]{node[A]{a}, fn, arg} }

// ListE is list construction with an explicit element type.
type ListE[A any] struct {
	node[A]
	ElemType Type
	Elems    []Expr[A]
}

func (ListE[A]) exprNode() {}

func NewList[A any](a A, elemTy Type, elems []Expr[A]) ListE[A] {
	return ListE[A]{node[A]{a}, elemTy, elems}
}

// MapE is the polymorphic list-map primitive.
type MapE[A any] struct {
	node[A]
	Fn, List Expr[A]
}

func (MapE[A]) exprNode() {}

func NewMap[A any](a A, fn, list Expr[A]) MapE[A] { return MapE[A]{node[A]{a}, fn, list} }

// Con is variant or record construction.
type Con[A any] struct {
	node[A]
	Ctor     Constructor
	TypeName TypeName
	Args     []Expr[A]
}

func (Con[A]) exprNode() {}

func NewCon[A any](a A, ctor Constructor, tn TypeName, args []Expr[A]) Con[A] {
	return Con[A]{node[A]{a}, ctor, tn, args}
}

// Alt is one (pattern, body) arm of a Case.
type Alt[A any] struct {
	Pattern Pattern[A]
	Body    Expr[A]
}

// Case is pattern-match dispatch over a non-empty list of alternatives.
// The generator assumes Alts is non-empty; producing a Case with no
// alternatives is a bug in the caller, not a reportable type error.
type Case[A any] struct {
	node[A]
	Scrutinee Expr[A]
	Alts      []Alt[A]
}

func (Case[A]) exprNode() {}

func NewCase[A any](a A, scrutinee Expr[A], alts []Alt[A]) Case[A] {
	return Case[A]{node[A]{a}, scrutinee, alts}
}

// Prj is field projection.
type Prj[A any] struct {
	node[A]
	Record Expr[A]
	Field  FieldName
}

func (Prj[A]) exprNode() {}

func NewPrj[A any](a A, record Expr[A], field FieldName) Prj[A] {
	return Prj[A]{node[A]{a}, record, field}
}

// Foreign is an opaque external binding with a known, already-resolved
// type (e.g. a host function the interpreter provides).
type Foreign[A any] struct {
	node[A]
	Name Name
	Type Type
}

func (Foreign[A]) exprNode() {}

func NewForeign[A any](a A, n Name, ty Type) Foreign[A] {
	return Foreign[A]{node[A]{a}, n, ty}
}
