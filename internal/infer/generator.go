// Package infer is the constraint generator (§4.3): it walks an
// elaborated expression bottom-up, producing an annotated copy, a list
// of equality constraints, and a list of generation-time errors
// (undeclared types, bad constructors, bad patterns). It never touches
// the union-find store — that belongs to the solver (§5) — and it is
// the only component allowed to mutate the assumption set and name
// supply during its walk.
package infer

import (
	"github.com/tmplang/typecheck/internal/assump"
	"github.com/tmplang/typecheck/internal/constraint"
	"github.com/tmplang/typecheck/internal/itype"
	"github.com/tmplang/typecheck/internal/names"
	ast "github.com/tmplang/typecheck/internal/syntax"
	"github.com/tmplang/typecheck/internal/typeerr"
)

// Generator holds all of the per-session, generator-owned mutable state:
// the name supply, the assumption set, the running constraint list and
// the running error list. A Generator is single-use for one session
// (§5) and must not be shared across sessions.
type Generator[A any] struct {
	Decls       *ast.TypeDecls
	Names       *names.Supply
	Assump      *assump.Set[A]
	Constraints constraint.List[A]
	Errors      typeerr.List[A]
}

// New returns a Generator sharing the given decls, over a fresh name
// supply and assumption set.
func New[A any](decls *ast.TypeDecls) *Generator[A] {
	return &Generator[A]{
		Decls:  decls,
		Names:  names.NewSupply(),
		Assump: assump.New[A](),
	}
}

func (g *Generator[A]) freshVar(a A) *itype.IType[A] {
	return itype.Var(a, g.Names.Fresh())
}

func (g *Generator[A]) emitEqual(left, right *itype.IType[A], ann A) {
	g.Constraints = append(g.Constraints, constraint.Equal[A]{Left: left, Right: right, Ann: ann})
}

func (g *Generator[A]) addError(e *typeerr.Error[A]) {
	g.Errors = append(g.Errors, e)
}

// typeOf reads the inference type out of an already-annotated node.
func typeOf[A any](e ast.Expr[itype.Pair[A]]) *itype.IType[A] {
	return e.Annotation().Type
}

func patTypeOf[A any](p ast.Pattern[itype.Pair[A]]) *itype.IType[A] {
	return p.Annotation().Type
}

// Generate walks expr and produces its annotated form, mutating g's
// constraint list, error list and assumption set as it goes (§4.3).
func (g *Generator[A]) Generate(expr ast.Expr[A]) ast.Expr[itype.Pair[A]] {
	switch e := expr.(type) {

	case ast.Lit[A]:
		a := e.Annotation()
		t := itype.Lit(a, ast.TypeOf(e.Value))
		return ast.NewLit(itype.Pair[A]{Type: t, Orig: a}, e.Value)

	case ast.Var[A]:
		a := e.Annotation()
		t := g.freshVar(a)
		g.Assump.Add(e.Name, t)
		return ast.NewVar(itype.Pair[A]{Type: t, Orig: a}, e.Name)

	case ast.Lam[A]:
		return g.genLam(e)

	case ast.App[A]:
		a := e.Annotation()
		genF := g.Generate(e.Fn)
		genG := g.Generate(e.Arg)
		t := g.freshVar(a)
		g.emitEqual(typeOf(genF), itype.Arrow(a, typeOf(genG), t), a)
		return ast.NewApp(itype.Pair[A]{Type: t, Orig: a}, genF, genG)

	case ast.ListE[A]:
		a := e.Annotation()
		elemTy := itype.FromType(a, e.ElemType)
		elems := make([]ast.Expr[itype.Pair[A]], len(e.Elems))
		for i, el := range e.Elems {
			genEl := g.Generate(el)
			g.emitEqual(elemTy, typeOf(genEl), a)
			elems[i] = genEl
		}
		t := itype.List(a, elemTy)
		return ast.NewList(itype.Pair[A]{Type: t, Orig: a}, e.ElemType, elems)

	case ast.MapE[A]:
		a := e.Annotation()
		ta := g.freshVar(a)
		tb := g.freshVar(a)
		genF := g.Generate(e.Fn)
		genList := g.Generate(e.List)
		g.emitEqual(itype.Arrow(a, ta, tb), typeOf(genF), a)
		g.emitEqual(itype.List(a, ta), typeOf(genList), a)
		t := itype.List(a, tb)
		return ast.NewMap(itype.Pair[A]{Type: t, Orig: a}, genF, genList)

	case ast.Con[A]:
		return g.genCon(e)

	case ast.Case[A]:
		return g.genCase(e)

	case ast.Prj[A]:
		a := e.Annotation()
		genE := g.Generate(e.Record)
		tp := g.freshVar(a)
		fieldVar := itype.VarWithFields(a, g.Names.Fresh(), []itype.FieldConstraint[A]{{Name: e.Field, Type: tp}})
		g.emitEqual(fieldVar, typeOf(genE), a)
		return ast.NewPrj(itype.Pair[A]{Type: tp, Orig: a}, genE, e.Field)

	case ast.Foreign[A]:
		a := e.Annotation()
		t := itype.FromType(a, e.Type)
		return ast.NewForeign(itype.Pair[A]{Type: t, Orig: a}, e.Name, e.Type)

	default:
		panic("infer.Generate: unknown expression form")
	}
}

func (g *Generator[A]) genLam(e ast.Lam[A]) ast.Expr[itype.Pair[A]] {
	a := e.Annotation()
	collected, genBody := assump.WithBindings(g.Assump, []ast.Name{e.Param}, func() ast.Expr[itype.Pair[A]] {
		return g.Generate(e.Body)
	})

	var ta *itype.IType[A]
	if e.ParamTy != nil {
		ta = itype.FromType(a, *e.ParamTy)
	} else {
		ta = g.freshVar(a)
	}
	for _, u := range collected[e.Param] {
		g.emitEqual(ta, u, a)
	}

	t := itype.Arrow(a, ta, typeOf(genBody))
	return ast.NewLam(itype.Pair[A]{Type: t, Orig: a}, e.Param, e.ParamTy, genBody)
}

func (g *Generator[A]) genCon(e ast.Con[A]) ast.Expr[itype.Pair[A]] {
	a := e.Annotation()

	decl, ok := g.Decls.Lookup(e.TypeName)
	if !ok {
		g.addError(typeerr.UndeclaredType[A](e.TypeName, a))
		args := g.generateEach(e.Args)
		return ast.NewCon(itype.Pair[A]{Type: g.freshVar(a), Orig: a}, e.Ctor, e.TypeName, args)
	}

	switch decl.Kind {
	case ast.DeclVariant:
		var ctor *ast.VariantCtor
		for i := range decl.Variants {
			if decl.Variants[i].Name == e.Ctor {
				ctor = &decl.Variants[i]
				break
			}
		}
		if ctor == nil {
			names := make([]ast.Constructor, len(decl.Variants))
			for i, v := range decl.Variants {
				names[i] = v.Name
			}
			g.addError(typeerr.BadConstructorName[A](e.Ctor, e.TypeName, names, a))
			args := g.generateEach(e.Args)
			return ast.NewCon(itype.Pair[A]{Type: itype.Ref(a, e.TypeName), Orig: a}, e.Ctor, e.TypeName, args)
		}
		if len(ctor.Args) != len(e.Args) {
			g.addError(typeerr.BadConstructorArity[A](e.Ctor, len(ctor.Args), len(e.Args), a))
		}
		args := make([]ast.Expr[itype.Pair[A]], len(e.Args))
		for i, argExpr := range e.Args {
			genArg := g.Generate(argExpr)
			if i < len(ctor.Args) {
				g.emitEqual(itype.FromType(a, ctor.Args[i]), typeOf(genArg), a)
			}
			args[i] = genArg
		}
		t := itype.Ref(a, e.TypeName)
		return ast.NewCon(itype.Pair[A]{Type: t, Orig: a}, e.Ctor, e.TypeName, args)

	case ast.DeclRecord:
		if len(decl.Fields) != len(e.Args) {
			g.addError(typeerr.BadConstructorArity[A](e.Ctor, len(decl.Fields), len(e.Args), a))
		}
		args := make([]ast.Expr[itype.Pair[A]], len(e.Args))
		fields := make([]itype.FieldConstraint[A], 0, len(decl.Fields))
		for i, argExpr := range e.Args {
			genArg := g.Generate(argExpr)
			if i < len(decl.Fields) {
				fieldTy := itype.FromType(a, decl.Fields[i].Type)
				g.emitEqual(fieldTy, typeOf(genArg), a)
				fields = append(fields, itype.FieldConstraint[A]{Name: decl.Fields[i].Name, Type: fieldTy})
			}
			args[i] = genArg
		}
		t := itype.RefWithFields(a, e.TypeName, fields)
		return ast.NewCon(itype.Pair[A]{Type: t, Orig: a}, e.Ctor, e.TypeName, args)

	default:
		panic("infer: unknown TypeDecl kind")
	}
}

func (g *Generator[A]) generateEach(exprs []ast.Expr[A]) []ast.Expr[itype.Pair[A]] {
	out := make([]ast.Expr[itype.Pair[A]], len(exprs))
	for i, e := range exprs {
		out[i] = g.Generate(e)
	}
	return out
}

func (g *Generator[A]) genCase(e ast.Case[A]) ast.Expr[itype.Pair[A]] {
	a := e.Annotation()
	genScrutinee := g.Generate(e.Scrutinee)
	scrutTy := typeOf(genScrutinee)
	result := g.freshVar(a)

	alts := make([]ast.Alt[itype.Pair[A]], len(e.Alts))
	for i, alt := range e.Alts {
		binders := ast.BindersOf(alt.Pattern)
		collected, genBody := assump.WithBindings(g.Assump, binders, func() ast.Expr[itype.Pair[A]] {
			return g.Generate(alt.Body)
		})
		genPat := g.genPattern(alt.Pattern, scrutTy, collected)
		g.emitEqual(result, typeOf(genBody), a)
		alts[i] = ast.Alt[itype.Pair[A]]{Pattern: genPat, Body: genBody}
	}

	return ast.NewCase(itype.Pair[A]{Type: result, Orig: a}, genScrutinee, alts)
}

// genPattern is §4.3.1: it checks pat against scrutTy, consuming the
// per-binder assumption lists collected while the alt's body was
// generated.
func (g *Generator[A]) genPattern(
	pat ast.Pattern[A],
	scrutTy *itype.IType[A],
	collected map[ast.Name][]*itype.IType[A],
) ast.Pattern[itype.Pair[A]] {
	switch p := pat.(type) {
	case ast.PVar[A]:
		a := p.Annotation()
		for _, u := range collected[p.Name] {
			g.emitEqual(scrutTy, u, a)
		}
		return ast.NewPVar(itype.Pair[A]{Type: scrutTy, Orig: a}, p.Name)

	case ast.PCon[A]:
		a := p.Annotation()
		tn, argTys, ok := g.Decls.LookupConstructor(p.Ctor)
		if !ok {
			g.addError(typeerr.BadPatternConstructor[A](p.Ctor, g.Decls.ConstructorNames(), a))
			subs := make([]ast.Pattern[itype.Pair[A]], len(p.Args))
			for i, sub := range p.Args {
				subs[i] = g.genPattern(sub, g.freshVar(a), collected)
			}
			return ast.NewPCon(itype.Pair[A]{Type: g.freshVar(a), Orig: a}, p.Ctor, subs)
		}
		if len(argTys) != len(p.Args) {
			g.addError(typeerr.BadPatternArity[A](p.Ctor, len(argTys), len(p.Args), a))
		}
		g.emitEqual(itype.Ref(a, tn), scrutTy, a)
		subs := make([]ast.Pattern[itype.Pair[A]], len(p.Args))
		for i, sub := range p.Args {
			var argTy *itype.IType[A]
			if i < len(argTys) {
				argTy = itype.FromType(a, argTys[i])
			} else {
				argTy = g.freshVar(a)
			}
			subs[i] = g.genPattern(sub, argTy, collected)
		}
		return ast.NewPCon(itype.Pair[A]{Type: itype.Ref(a, tn), Orig: a}, p.Ctor, subs)

	default:
		panic("infer.genPattern: unknown pattern form")
	}
}
