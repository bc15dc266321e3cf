package subst

import (
	"github.com/tmplang/typecheck/internal/itype"
	ast "github.com/tmplang/typecheck/internal/syntax"
	"github.com/tmplang/typecheck/internal/typeerr"
)

// LowerExpr walks an annotated expression, substituting and lowering
// every node's inference type. It never short-circuits on the first
// failure (§7, §9): independent subexpressions keep contributing
// diagnostics, and the returned error list is in pre-order traversal
// order: a node's own error before its children's, children left to
// right.
func LowerExpr[A any](subs Substitutions[A], e ast.Expr[itype.Pair[A]]) (ast.Expr[ast.Typed[A]], []*typeerr.Error[A]) {
	switch e := e.(type) {

	case ast.Lit[itype.Pair[A]]:
		ann, errs := lowerAnn(subs, e.Annotation())
		return ast.NewLit(ann, e.Value), errs

	case ast.Var[itype.Pair[A]]:
		ann, errs := lowerAnn(subs, e.Annotation())
		return ast.NewVar(ann, e.Name), errs

	case ast.Lam[itype.Pair[A]]:
		ann, errs := lowerAnn(subs, e.Annotation())
		body, bodyErrs := LowerExpr(subs, e.Body)
		return ast.NewLam(ann, e.Param, e.ParamTy, body), append(errs, bodyErrs...)

	case ast.App[itype.Pair[A]]:
		ann, errs := lowerAnn(subs, e.Annotation())
		fn, fnErrs := LowerExpr(subs, e.Fn)
		arg, argErrs := LowerExpr(subs, e.Arg)
		errs = append(errs, fnErrs...)
		errs = append(errs, argErrs...)
		return ast.NewApp(ann, fn, arg), errs

	case ast.ListE[itype.Pair[A]]:
		ann, errs := lowerAnn(subs, e.Annotation())
		elems := make([]ast.Expr[ast.Typed[A]], len(e.Elems))
		for i, el := range e.Elems {
			lowered, elErrs := LowerExpr(subs, el)
			elems[i] = lowered
			errs = append(errs, elErrs...)
		}
		return ast.NewList(ann, e.ElemType, elems), errs

	case ast.MapE[itype.Pair[A]]:
		ann, errs := lowerAnn(subs, e.Annotation())
		fn, fnErrs := LowerExpr(subs, e.Fn)
		list, listErrs := LowerExpr(subs, e.List)
		errs = append(errs, fnErrs...)
		errs = append(errs, listErrs...)
		return ast.NewMap(ann, fn, list), errs

	case ast.Con[itype.Pair[A]]:
		ann, errs := lowerAnn(subs, e.Annotation())
		args := make([]ast.Expr[ast.Typed[A]], len(e.Args))
		for i, a := range e.Args {
			lowered, argErrs := LowerExpr(subs, a)
			args[i] = lowered
			errs = append(errs, argErrs...)
		}
		return ast.NewCon(ann, e.Ctor, e.TypeName, args), errs

	case ast.Case[itype.Pair[A]]:
		ann, errs := lowerAnn(subs, e.Annotation())
		scrutinee, scrutErrs := LowerExpr(subs, e.Scrutinee)
		errs = append(errs, scrutErrs...)
		alts := make([]ast.Alt[ast.Typed[A]], len(e.Alts))
		for i, alt := range e.Alts {
			pat, patErrs := lowerPattern(subs, alt.Pattern)
			body, bodyErrs := LowerExpr(subs, alt.Body)
			errs = append(errs, patErrs...)
			errs = append(errs, bodyErrs...)
			alts[i] = ast.Alt[ast.Typed[A]]{Pattern: pat, Body: body}
		}
		return ast.NewCase(ann, scrutinee, alts), errs

	case ast.Prj[itype.Pair[A]]:
		ann, errs := lowerAnn(subs, e.Annotation())
		record, recErrs := LowerExpr(subs, e.Record)
		errs = append(errs, recErrs...)
		return ast.NewPrj(ann, record, e.Field), errs

	case ast.Foreign[itype.Pair[A]]:
		ann, errs := lowerAnn(subs, e.Annotation())
		return ast.NewForeign(ann, e.Name, e.Type), errs

	default:
		panic("subst.LowerExpr: unknown expression form")
	}
}

func lowerPattern[A any](subs Substitutions[A], p ast.Pattern[itype.Pair[A]]) (ast.Pattern[ast.Typed[A]], []*typeerr.Error[A]) {
	switch p := p.(type) {
	case ast.PVar[itype.Pair[A]]:
		ann, errs := lowerAnn(subs, p.Annotation())
		return ast.NewPVar(ann, p.Name), errs
	case ast.PCon[itype.Pair[A]]:
		ann, errs := lowerAnn(subs, p.Annotation())
		args := make([]ast.Pattern[ast.Typed[A]], len(p.Args))
		for i, sub := range p.Args {
			lowered, subErrs := lowerPattern(subs, sub)
			args[i] = lowered
			errs = append(errs, subErrs...)
		}
		return ast.NewPCon(ann, p.Ctor, args), errs
	default:
		panic("subst.lowerPattern: unknown pattern form")
	}
}

func lowerAnn[A any](subs Substitutions[A], pair itype.Pair[A]) (ast.Typed[A], []*typeerr.Error[A]) {
	resolved := Apply(subs, pair.Type)
	ty, err := Lower(resolved)
	if err != nil {
		return ast.Typed[A]{Orig: pair.Orig}, []*typeerr.Error[A]{err}
	}
	return ast.Typed[A]{Type: ty, Orig: pair.Orig}, nil
}
