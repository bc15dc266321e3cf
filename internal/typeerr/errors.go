// Package typeerr is the error taxonomy from §7. Every constructor takes
// the annotation of the site that produced the error; nothing here ever
// short-circuits a caller, the whole point of this package is to give
// the generator and solver a common shape to accumulate into.
package typeerr

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	ast "github.com/tmplang/typecheck/internal/syntax"
)

var foldCase = cases.Fold()

// Kind identifies which of the §7 taxonomy entries an Error is.
type Kind string

const (
	KindUnification     Kind = "unification_error"
	KindInfiniteType     Kind = "infinite_type"
	KindFreeVariable     Kind = "free_variable"
	KindUndeclaredType   Kind = "undeclared_type"
	KindBadCtorName      Kind = "bad_constructor_name"
	KindBadCtorArity     Kind = "bad_constructor_arity"
	KindBadPatternArity   Kind = "bad_pattern_arity"
	KindBadPatternCtor    Kind = "bad_pattern_constructor"
	KindInferenceError    Kind = "inference_error"
	KindRecordInference   Kind = "record_inference_error"
	KindInvalidRecordFields Kind = "invalid_record_fields"
)

// FieldAt names one stuck field constraint alongside the (Type, A) it
// resolved to, used by RecordInferenceError and InvalidRecordFields.
type FieldAt[A any] struct {
	Field ast.FieldName
	Type  ast.Type
	Ann   A
}

// Error is a single type error. A is the site's original annotation;
// which of the typed fields are populated depends on Kind.
type Error[A any] struct {
	Kind Kind

	// UnificationError
	T1, T2     string
	Ann1, Ann2 A

	// InfiniteType
	Var string

	// FreeVariable
	Name ast.Name

	// BadConstructorName / BadConstructorArity / BadPatternConstructor / BadPatternArity
	// (TypeName is also used by UndeclaredType)
	Constructor ast.Constructor
	TypeName    ast.TypeName
	Expected    int
	Actual      int

	// Suggestion is an optional "did you mean" candidate for
	// BadConstructorName / BadPatternConstructor, populated by
	// BadConstructorName / BadPatternConstructor from the declared
	// constructors visible at the error site. Empty when no declared
	// name is close enough to be worth suggesting.
	Suggestion ast.Constructor

	// InferenceError / RecordInferenceError / InvalidRecordFields
	ResolvedType ast.Type
	Fields       []FieldAt[A]

	Ann A
}

func (e *Error[A]) Error() string {
	switch e.Kind {
	case KindUnification:
		return fmt.Sprintf("cannot unify %s with %s", e.T1, e.T2)
	case KindInfiniteType:
		return fmt.Sprintf("infinite type: %s occurs in %s", e.Var, e.T1)
	case KindFreeVariable:
		return fmt.Sprintf("unbound variable: %s", e.Name)
	case KindUndeclaredType:
		return fmt.Sprintf("undeclared type: %s", e.TypeName)
	case KindBadCtorName:
		return fmt.Sprintf("type %s has no constructor %s%s", e.TypeName, e.Constructor, e.suggestionSuffix())
	case KindBadCtorArity:
		return fmt.Sprintf("constructor %s expects %d argument(s), got %d", e.Constructor, e.Expected, e.Actual)
	case KindBadPatternArity:
		return fmt.Sprintf("pattern %s expects %d argument(s), got %d", e.Constructor, e.Expected, e.Actual)
	case KindBadPatternCtor:
		return fmt.Sprintf("unknown constructor in pattern: %s%s", e.Constructor, e.suggestionSuffix())
	case KindInferenceError:
		return "could not infer a concrete type (no let-polymorphism: unresolved variables are errors)"
	case KindRecordInference:
		names := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			names[i] = fmt.Sprintf("%s: %s", f.Field, f.Type)
		}
		return fmt.Sprintf("could not resolve a record type with fields {%s}", strings.Join(names, ", "))
	case KindInvalidRecordFields:
		names := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			names[i] = fmt.Sprintf("%s: %s", f.Field, f.Type)
		}
		return fmt.Sprintf("type %s cannot have fields {%s}", e.ResolvedType, strings.Join(names, ", "))
	default:
		return "unknown type error"
	}
}

func (e *Error[A]) suggestionSuffix() string {
	if e.Suggestion == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %s?)", e.Suggestion)
}

// suggest picks the closest candidate to name by case-folded edit
// distance, returning "" if none is within a small threshold. Used to
// turn an unknown constructor into a "did you mean" hint without
// pretending to a full spell-checker.
func suggest(name string, candidates []ast.Constructor) ast.Constructor {
	folded := foldCase.String(name)
	best := ""
	bestDist := -1
	for _, c := range candidates {
		d := levenshtein(folded, foldCase.String(c))
		threshold := len(folded)/2 + 1
		if d > threshold {
			continue
		}
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// levenshtein is a plain edit-distance computation over runes.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func Unification[A any](t1, t2 string, ann A) *Error[A] {
	return &Error[A]{Kind: KindUnification, T1: t1, T2: t2, Ann: ann}
}

func InfiniteType[A any](varDesc, inType string, ann A) *Error[A] {
	return &Error[A]{Kind: KindInfiniteType, Var: varDesc, T1: inType, Ann: ann}
}

func FreeVariable[A any](name ast.Name, ann A) *Error[A] {
	return &Error[A]{Kind: KindFreeVariable, Name: name, Ann: ann}
}

func UndeclaredType[A any](tn ast.TypeName, ann A) *Error[A] {
	return &Error[A]{Kind: KindUndeclaredType, TypeName: tn, Ann: ann}
}

// BadConstructorName reports that tn has no constructor named ctor.
// candidates is the set of constructor names actually declared for tn,
// used to populate a "did you mean" suggestion; pass nil if unknown.
func BadConstructorName[A any](ctor ast.Constructor, tn ast.TypeName, candidates []ast.Constructor, ann A) *Error[A] {
	return &Error[A]{Kind: KindBadCtorName, Constructor: ctor, TypeName: tn, Suggestion: suggest(ctor, candidates), Ann: ann}
}

func BadConstructorArity[A any](ctor ast.Constructor, expected, actual int, ann A) *Error[A] {
	return &Error[A]{Kind: KindBadCtorArity, Constructor: ctor, Expected: expected, Actual: actual, Ann: ann}
}

func BadPatternArity[A any](ctor ast.Constructor, expected, actual int, ann A) *Error[A] {
	return &Error[A]{Kind: KindBadPatternArity, Constructor: ctor, Expected: expected, Actual: actual, Ann: ann}
}

// BadPatternConstructor reports a pattern using a constructor name that
// no declared type owns. candidates is every constructor known across
// all declared types; pass nil if unknown.
func BadPatternConstructor[A any](ctor ast.Constructor, candidates []ast.Constructor, ann A) *Error[A] {
	return &Error[A]{Kind: KindBadPatternCtor, Constructor: ctor, Suggestion: suggest(ctor, candidates), Ann: ann}
}

func InferenceError[A any](ann A) *Error[A] {
	return &Error[A]{Kind: KindInferenceError, Ann: ann}
}

func RecordInferenceError[A any](fields []FieldAt[A], ann A) *Error[A] {
	return &Error[A]{Kind: KindRecordInference, Fields: fields, Ann: ann}
}

func InvalidRecordFields[A any](resolved ast.Type, fields []FieldAt[A], ann A) *Error[A] {
	return &Error[A]{Kind: KindInvalidRecordFields, ResolvedType: resolved, Fields: fields, Ann: ann}
}

// List is a flat, order-preserving list of errors (§7: "accumulated, not
// short-circuited").
type List[A any] []*Error[A]

func (l List[A]) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	if len(l) == 1 {
		return l[0].Error()
	}
	parts := make([]string, 0, len(l)+1)
	parts = append(parts, fmt.Sprintf("%d type errors:", len(l)))
	for i, e := range l {
		parts = append(parts, fmt.Sprintf("[%d] %s", i+1, e.Error()))
	}
	return strings.Join(parts, "\n")
}
