package subst

import (
	"github.com/tmplang/typecheck/internal/itype"
	ast "github.com/tmplang/typecheck/internal/syntax"
	"github.com/tmplang/typecheck/internal/typeerr"
)

// Lower turns a substituted IType into a surface Type, or reports why it
// could not (§4.6).
func Lower[A any](t *itype.IType[A]) (ast.Type, *typeerr.Error[A]) {
	switch t.Shape {
	case itype.ShapeVar:
		if len(t.Fields) == 0 {
			return nil, typeerr.InferenceError[A](t.Ann)
		}
		return nil, typeerr.RecordInferenceError[A](lowerFieldAts(t.Fields), t.Ann)

	case itype.ShapeLit:
		if len(t.Fields) > 0 {
			return nil, fieldsErr(t)
		}
		return ast.TLit{Kind: t.Lit}, nil

	case itype.ShapeRef:
		// A known TVar(tn) with leftover fields is accepted: the fields
		// were consistency constraints seeded by construction or
		// projection, not a second source of truth. We do not check
		// that they are a subset of the record's declared fields (§9,
		// open question) — the permissive behaviour is kept as-is.
		return ast.TRef{Name: t.TypeName}, nil

	case itype.ShapeArrow:
		if len(t.Fields) > 0 {
			return nil, fieldsErr(t)
		}
		param, err := Lower(t.Param)
		if err != nil {
			return nil, err
		}
		result, err := Lower(t.Result)
		if err != nil {
			return nil, err
		}
		return ast.TArrow{Param: param, Result: result}, nil

	case itype.ShapeList:
		if len(t.Fields) > 0 {
			return nil, fieldsErr(t)
		}
		elem, err := Lower(t.Elem)
		if err != nil {
			return nil, err
		}
		return ast.TList{Elem: elem}, nil

	default:
		return nil, typeerr.InferenceError[A](t.Ann)
	}
}

func lowerFieldAts[A any](fields []itype.FieldConstraint[A]) []typeerr.FieldAt[A] {
	out := make([]typeerr.FieldAt[A], len(fields))
	for i, f := range fields {
		ty, _ := Lower(f.Type)
		out[i] = typeerr.FieldAt[A]{Field: f.Name, Type: ty, Ann: f.Type.Ann}
	}
	return out
}

func fieldsErr[A any](t *itype.IType[A]) *typeerr.Error[A] {
	bare, _ := Lower(t.WithFields(nil))
	return typeerr.InvalidRecordFields[A](bare, lowerFieldAts(t.Fields), t.Ann)
}
