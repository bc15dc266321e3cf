package syntax

// Pattern is a case alternative's pattern (§3). Only variable and
// constructor patterns exist: record-as-constructor patterns are not
// supported even though record construction uses the same ECon form as
// variants (§9, open question — construction and pattern-matching are
// deliberately asymmetric here, carried over unchanged from the source
// behaviour).
type Pattern[A any] interface {
	Annotation() A
	patNode()
}

type patNode_[A any] struct{ Ann A }

func (n patNode_[A]) Annotation() A { return n.Ann }

// PVar binds the scrutinee (or sub-scrutinee) to a name.
type PVar[A any] struct {
	patNode_[A]
	Name Name
}

func (PVar[A]) patNode() {}

func NewPVar[A any](a A, n Name) PVar[A] { return PVar[A]{patNode_[A]{a}, n} }

// PCon matches a variant constructor and recurses into its arguments.
type PCon[A any] struct {
	patNode_[A]
	Ctor Constructor
	Args []Pattern[A]
}

func (PCon[A]) patNode() {}

func NewPCon[A any](a A, ctor Constructor, args []Pattern[A]) PCon[A] {
	return PCon[A]{patNode_[A]{a}, ctor, args}
}

// BindersOf returns the variable names a pattern introduces, in the
// order they appear, matching the traversal order the generator uses to
// attach field/equality constraints in §4.3.1.
func BindersOf[A any](p Pattern[A]) []Name {
	switch p := p.(type) {
	case PVar[A]:
		return []Name{p.Name}
	case PCon[A]:
		var names []Name
		for _, sub := range p.Args {
			names = append(names, BindersOf(sub)...)
		}
		return names
	default:
		return nil
	}
}
