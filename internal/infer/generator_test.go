package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmplang/typecheck/internal/itype"
	ast "github.com/tmplang/typecheck/internal/syntax"
	"github.com/tmplang/typecheck/internal/unify"
	"github.com/tmplang/typecheck/internal/unionfind"
)

func solve[A any](t *testing.T, g *Generator[A]) *unionfind.Store[A] {
	t.Helper()
	store := unionfind.New[A]()
	u := unify.New[A](store)
	for _, c := range g.Constraints {
		require.Nil(t, u.Unify(c.Left, c.Right), "constraint %v = %v should unify", c.Left, c.Right)
	}
	return store
}

func TestGenerateLiteralProducesItsGroundType(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	g := New[ast.Pos](decls)

	lit := ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(42))
	got := g.Generate(lit)

	assert.Equal(t, itype.ShapeLit, typeOf(got).Shape)
	assert.Equal(t, ast.KInt, typeOf(got).Lit)
	assert.Empty(t, g.Errors)
}

func TestGenerateVarRecordsAnAssumption(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	g := New[ast.Pos](decls)

	v := ast.NewVar(ast.Pos{Line: 1, Col: 1}, "x")
	got := g.Generate(v)

	uses := g.Assump.Lookup("x")
	require.Len(t, uses, 1)
	assert.Same(t, uses[0], typeOf(got))
}

func TestGenerateLamDischargesBodyAssumptionsAgainstBinder(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	g := New[ast.Pos](decls)

	// \x -> x, unannotated: the binder's uses must unify with a fresh ta.
	ident := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "x", nil,
		ast.NewVar(ast.Pos{Line: 1, Col: 4}, "x"))
	got := g.Generate(ident)

	assert.Empty(t, g.Assump.Lookup("x"), "binder's uses are consumed by WithBindings")
	assert.Equal(t, itype.ShapeArrow, typeOf(got).Shape)

	store := solve(t, g)
	param := store.Repr(typeOf(got).Param)
	result := store.Repr(typeOf(got).Result)
	assert.Equal(t, param.Shape, result.Shape)
}

func TestGenerateLamWithAscriptionFixesBinderType(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	g := New[ast.Pos](decls)

	intTy := ast.Type(ast.TLit{Kind: ast.KInt})
	ident := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "x", &intTy,
		ast.NewVar(ast.Pos{Line: 1, Col: 4}, "x"))
	got := g.Generate(ident)

	store := solve(t, g)
	lamTy := typeOf(got)
	param := store.Repr(lamTy.Param)
	assert.Equal(t, itype.ShapeLit, param.Shape)
	assert.Equal(t, ast.KInt, param.Lit)
}

func TestGenerateAppEmitsArrowEquality(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	g := New[ast.Pos](decls)

	intTy := ast.Type(ast.TLit{Kind: ast.KInt})
	ident := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "x", &intTy,
		ast.NewVar(ast.Pos{Line: 1, Col: 4}, "x"))
	app := ast.NewApp(ast.Pos{Line: 1, Col: 1}, ident,
		ast.NewLit(ast.Pos{Line: 1, Col: 8}, ast.IntLit(1)))
	got := g.Generate(app)

	store := solve(t, g)
	result := store.Repr(typeOf(got))
	assert.Equal(t, itype.ShapeLit, result.Shape)
	assert.Equal(t, ast.KInt, result.Lit)
}

func TestGenerateAppMismatchFailsToUnify(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	g := New[ast.Pos](decls)

	intTy := ast.Type(ast.TLit{Kind: ast.KInt})
	ident := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "x", &intTy,
		ast.NewVar(ast.Pos{Line: 1, Col: 4}, "x"))
	app := ast.NewApp(ast.Pos{Line: 1, Col: 1}, ident,
		ast.NewLit(ast.Pos{Line: 1, Col: 8}, ast.StringLit("hello")))
	g.Generate(app)

	store := unionfind.New[ast.Pos]()
	u := unify.New[ast.Pos](store)
	var failed bool
	for _, c := range g.Constraints {
		if err := u.Unify(c.Left, c.Right); err != nil {
			failed = true
		}
	}
	assert.True(t, failed, "applying \\x:int -> x to a string literal must fail to unify")
}

func TestGenerateListUnifiesElementsAgainstElemType(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	g := New[ast.Pos](decls)

	list := ast.NewList(ast.Pos{Line: 1, Col: 1}, ast.TLit{Kind: ast.KInt}, []ast.Expr[ast.Pos]{
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(1)),
		ast.NewLit(ast.Pos{Line: 1, Col: 2}, ast.IntLit(2)),
	})
	got := g.Generate(list)
	store := solve(t, g)

	ty := store.Repr(typeOf(got))
	require.Equal(t, itype.ShapeList, ty.Shape)
	elem := store.Repr(ty.Elem)
	assert.Equal(t, itype.ShapeLit, elem.Shape)
	assert.Equal(t, ast.KInt, elem.Lit)
}

func TestGenerateMapProducesListOfResultType(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	g := New[ast.Pos](decls)

	ident := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "x", nil,
		ast.NewVar(ast.Pos{Line: 1, Col: 4}, "x"))
	list := ast.NewList(ast.Pos{Line: 1, Col: 1}, ast.TLit{Kind: ast.KInt}, []ast.Expr[ast.Pos]{
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(1)),
	})
	m := ast.NewMap(ast.Pos{Line: 1, Col: 1}, ident, list)
	got := g.Generate(m)
	store := solve(t, g)

	ty := store.Repr(typeOf(got))
	require.Equal(t, itype.ShapeList, ty.Shape)
	elem := store.Repr(ty.Elem)
	assert.Equal(t, itype.ShapeLit, elem.Shape)
	assert.Equal(t, ast.KInt, elem.Lit)
}

func TestGenerateConUndeclaredTypeReportsError(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	g := New[ast.Pos](decls)

	con := ast.NewCon(ast.Pos{Line: 1, Col: 1}, "Pair", "Pair", nil)
	g.Generate(con)

	require.Len(t, g.Errors, 1)
	assert.Equal(t, "undeclared type: Pair", g.Errors[0].Error())
}

func TestGenerateConVariantBadArityReportsError(t *testing.T) {
	decls := ast.NewTypeDecls(map[ast.TypeName]*ast.TypeDecl{
		"Pair": {
			Kind: ast.DeclVariant,
			Variants: []ast.VariantCtor{
				{Name: "Pair", Args: []ast.Type{ast.TLit{Kind: ast.KInt}, ast.TLit{Kind: ast.KString}}},
			},
		},
	})
	g := New[ast.Pos](decls)
	con := ast.NewCon(ast.Pos{Line: 1, Col: 1}, "Pair", "Pair", []ast.Expr[ast.Pos]{
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(1)),
	})
	g.Generate(con)

	require.Len(t, g.Errors, 1)
	assert.Equal(t, "constructor Pair expects 2 argument(s), got 1", g.Errors[0].Error())
}

func TestGenerateConRecordSeedsFieldConstraintsForProjection(t *testing.T) {
	decls := ast.NewTypeDecls(map[ast.TypeName]*ast.TypeDecl{
		"Person": {
			Kind: ast.DeclRecord,
			Fields: []ast.RecordField{
				{Name: "name", Type: ast.TLit{Kind: ast.KString}},
				{Name: "age", Type: ast.TLit{Kind: ast.KInt}},
			},
		},
	})
	g := New[ast.Pos](decls)
	ctor := ast.NewCon(ast.Pos{Line: 1, Col: 1}, "Person", "Person", []ast.Expr[ast.Pos]{
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.StringLit("Ada")),
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(36)),
	})
	got := g.Generate(ctor)

	ty := typeOf(got)
	require.Equal(t, itype.ShapeRef, ty.Shape)
	require.Len(t, ty.Fields, 2)
	assert.Empty(t, g.Errors)
}

func TestGeneratePrjSeedsAFreshFieldVariable(t *testing.T) {
	decls := ast.NewTypeDecls(map[ast.TypeName]*ast.TypeDecl{
		"Person": {
			Kind: ast.DeclRecord,
			Fields: []ast.RecordField{
				{Name: "age", Type: ast.TLit{Kind: ast.KInt}},
			},
		},
	})
	g := New[ast.Pos](decls)
	ctor := ast.NewCon(ast.Pos{Line: 1, Col: 1}, "Person", "Person", []ast.Expr[ast.Pos]{
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(36)),
	})
	prj := ast.NewPrj(ast.Pos{Line: 1, Col: 1}, ctor, "age")
	got := g.Generate(prj)
	store := solve(t, g)

	ty := store.Repr(typeOf(got))
	assert.Equal(t, itype.ShapeLit, ty.Shape)
	assert.Equal(t, ast.KInt, ty.Lit)
}

func TestGenerateForeignLiftsItsKnownType(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	g := New[ast.Pos](decls)

	foreign := ast.NewForeign(ast.Pos{Line: 1, Col: 1}, "now", ast.TLit{Kind: ast.KInt})
	got := g.Generate(foreign)

	assert.Equal(t, itype.ShapeLit, typeOf(got).Shape)
	assert.Equal(t, ast.KInt, typeOf(got).Lit)
}

func TestGenerateCasePopulatesAndConsumesBinderAssumptions(t *testing.T) {
	decls := ast.NewTypeDecls(map[ast.TypeName]*ast.TypeDecl{
		"Option": {
			Kind: ast.DeclVariant,
			Variants: []ast.VariantCtor{
				{Name: "None"},
				{Name: "Some", Args: []ast.Type{ast.TLit{Kind: ast.KInt}}},
			},
		},
	})
	g := New[ast.Pos](decls)

	scrutinee := ast.NewCon(ast.Pos{Line: 1, Col: 1}, "Some", "Option",
		[]ast.Expr[ast.Pos]{ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(1))})
	kase := ast.NewCase(ast.Pos{Line: 1, Col: 1}, scrutinee, []ast.Alt[ast.Pos]{
		{
			Pattern: ast.NewPCon(ast.Pos{Line: 1, Col: 1}, "None", nil),
			Body:    ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(0)),
		},
		{
			Pattern: ast.NewPCon(ast.Pos{Line: 1, Col: 1}, "Some",
				[]ast.Pattern[ast.Pos]{ast.NewPVar(ast.Pos{Line: 1, Col: 1}, "n")}),
			Body: ast.NewVar(ast.Pos{Line: 1, Col: 1}, "n"),
		},
	})
	got := g.Generate(kase)
	store := solve(t, g)

	assert.Empty(t, g.Errors)
	result := store.Repr(typeOf(got))
	assert.Equal(t, itype.ShapeLit, result.Shape)
	assert.Equal(t, ast.KInt, result.Lit)
}

func TestGeneratePatternBadConstructorReportsError(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	g := New[ast.Pos](decls)

	kase := ast.NewCase(ast.Pos{Line: 1, Col: 1},
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(1)),
		[]ast.Alt[ast.Pos]{
			{
				Pattern: ast.NewPCon(ast.Pos{Line: 1, Col: 1}, "Nope", nil),
				Body:    ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(0)),
			},
		})
	g.Generate(kase)

	require.Len(t, g.Errors, 1)
	assert.Equal(t, "unknown constructor in pattern: Nope", g.Errors[0].Error())
}
