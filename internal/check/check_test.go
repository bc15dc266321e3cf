package check

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmplang/typecheck/internal/itype"
	ast "github.com/tmplang/typecheck/internal/syntax"
)

func TestTypeCheckLiteral(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	lit := ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(42))

	ty, errs := TypeCheck(decls, lit)
	require.Empty(t, errs)
	assert.Equal(t, "int", ty.String())
}

func TestTypeCheckUnannotatedIdentityIsAnInferenceError(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	ident := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "x", nil,
		ast.NewVar(ast.Pos{Line: 1, Col: 4}, "x"))

	_, errs := TypeCheck(decls, ident)
	// Lowering reports the unresolved variable once for the lambda node
	// and once more for the body's var node.
	require.Len(t, errs, 2)
	assert.Equal(t, "could not infer a concrete type (no let-polymorphism: unresolved variables are errors)", errs[0].Error())
	assert.Equal(t, "could not infer a concrete type (no let-polymorphism: unresolved variables are errors)", errs[1].Error())
}

func TestTypeCheckAnnotatedIdentity(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	intTy := ast.Type(ast.TLit{Kind: ast.KInt})
	ident := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "x", &intTy,
		ast.NewVar(ast.Pos{Line: 1, Col: 4}, "x"))

	ty, errs := TypeCheck(decls, ident)
	require.Empty(t, errs)
	assert.Equal(t, "(int -> int)", ty.String())
}

func TestTypeCheckApplicationMismatchReportsUnificationError(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	intTy := ast.Type(ast.TLit{Kind: ast.KInt})
	ident := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "x", &intTy,
		ast.NewVar(ast.Pos{Line: 1, Col: 4}, "x"))
	app := ast.NewApp(ast.Pos{Line: 1, Col: 1}, ident,
		ast.NewLit(ast.Pos{Line: 1, Col: 8}, ast.StringLit("hello")))

	_, errs := TypeCheck(decls, app)
	// The failed parameter unification leaves the application's result
	// variable unresolved, so lowering adds an inference error after it.
	require.Len(t, errs, 2)
	assert.Equal(t, "cannot unify int with string", errs[0].Error())
	assert.Equal(t, "could not infer a concrete type (no let-polymorphism: unresolved variables are errors)", errs[1].Error())
}

func TestTypeCheckVariantConstruction(t *testing.T) {
	decls := ast.NewTypeDecls(map[ast.TypeName]*ast.TypeDecl{
		"Pair": {
			Kind: ast.DeclVariant,
			Variants: []ast.VariantCtor{
				{Name: "Pair", Args: []ast.Type{ast.TLit{Kind: ast.KInt}, ast.TLit{Kind: ast.KString}}},
			},
		},
	})
	ctor := ast.NewCon(ast.Pos{Line: 1, Col: 1}, "Pair", "Pair", []ast.Expr[ast.Pos]{
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(1)),
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.StringLit("x")),
	})

	ty, errs := TypeCheck(decls, ctor)
	require.Empty(t, errs)
	assert.Equal(t, "Pair", ty.String())
}

func TestTypeCheckVariantConstructionWithWrongArgTypesFails(t *testing.T) {
	decls := ast.NewTypeDecls(map[ast.TypeName]*ast.TypeDecl{
		"Pair": {
			Kind: ast.DeclVariant,
			Variants: []ast.VariantCtor{
				{Name: "Pair", Args: []ast.Type{ast.TLit{Kind: ast.KInt}, ast.TLit{Kind: ast.KString}}},
			},
		},
	})
	ctor := ast.NewCon(ast.Pos{Line: 1, Col: 1}, "Pair", "Pair", []ast.Expr[ast.Pos]{
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(1)),
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(2)),
	})

	_, errs := TypeCheck(decls, ctor)
	require.NotEmpty(t, errs)
}

func TestTypeCheckRecordProjection(t *testing.T) {
	decls := ast.NewTypeDecls(map[ast.TypeName]*ast.TypeDecl{
		"Point": {
			Kind: ast.DeclRecord,
			Fields: []ast.RecordField{
				{Name: "x", Type: ast.TLit{Kind: ast.KInt}},
				{Name: "y", Type: ast.TLit{Kind: ast.KInt}},
			},
		},
	})
	point := ast.NewCon(ast.Pos{Line: 1, Col: 1}, "Point", "Point", []ast.Expr[ast.Pos]{
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(1)),
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(2)),
	})
	prj := ast.NewPrj(ast.Pos{Line: 1, Col: 1}, point, "x")

	ty, errs := TypeCheck(decls, prj)
	require.Empty(t, errs)
	assert.Equal(t, "int", ty.String())
}

func TestTypeCheckProjectingAMissingFieldIsARecordError(t *testing.T) {
	decls := ast.NewTypeDecls(map[ast.TypeName]*ast.TypeDecl{
		"Point": {
			Kind: ast.DeclRecord,
			Fields: []ast.RecordField{
				{Name: "x", Type: ast.TLit{Kind: ast.KInt}},
				{Name: "y", Type: ast.TLit{Kind: ast.KInt}},
			},
		},
	})
	point := ast.NewCon(ast.Pos{Line: 1, Col: 1}, "Point", "Point", []ast.Expr[ast.Pos]{
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(1)),
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(2)),
	})
	prj := ast.NewPrj(ast.Pos{Line: 1, Col: 1}, point, "z")

	_, errs := TypeCheck(decls, prj)
	require.Len(t, errs, 1)
}

func TestTypeCheckFreeVariableAtTopLevel(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	v := ast.NewVar(ast.Pos{Line: 1, Col: 1}, "missing")

	_, errs := TypeCheck(decls, v)
	// The free variable's type is never resolved, so lowering the var
	// node adds an inference error after the free-variable error.
	require.Len(t, errs, 2)
	assert.Equal(t, "unbound variable: missing", errs[0].Error())
	assert.Equal(t, "could not infer a concrete type (no let-polymorphism: unresolved variables are errors)", errs[1].Error())
}

func TestTypeCheckMapOverAList(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	ident := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "x", nil,
		ast.NewVar(ast.Pos{Line: 1, Col: 4}, "x"))
	list := ast.NewList(ast.Pos{Line: 1, Col: 1}, ast.TLit{Kind: ast.KInt}, []ast.Expr[ast.Pos]{
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(1)),
		ast.NewLit(ast.Pos{Line: 1, Col: 2}, ast.IntLit(2)),
	})
	m := ast.NewMap(ast.Pos{Line: 1, Col: 1}, ident, list)

	ty, errs := TypeCheck(decls, m)
	require.Empty(t, errs)
	assert.Equal(t, "[int]", ty.String())
}

func TestTypeCheckAllResolvesMutualRecursionAsLetrec(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	intTy := ast.Type(ast.TLit{Kind: ast.KInt})
	// isEven = \n:int -> isOdd(n)
	// isOdd  = \n:int -> not(isEven(n))
	// Each body refers to the other definition; general recursion is
	// admitted, so both resolve (to int -> bool) without any error.
	not := ast.NewForeign(ast.Pos{Line: 2, Col: 1}, "not",
		ast.Type(ast.TArrow{Param: ast.TLit{Kind: ast.KBool}, Result: ast.TLit{Kind: ast.KBool}}))
	isEven := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "n", &intTy,
		ast.NewApp(ast.Pos{Line: 1, Col: 1},
			ast.NewVar(ast.Pos{Line: 1, Col: 1}, "isOdd"),
			ast.NewVar(ast.Pos{Line: 1, Col: 1}, "n")))
	isOdd := ast.NewLam(ast.Pos{Line: 2, Col: 1}, "n", &intTy,
		ast.NewApp(ast.Pos{Line: 2, Col: 1}, not,
			ast.NewApp(ast.Pos{Line: 2, Col: 1},
				ast.NewVar(ast.Pos{Line: 2, Col: 1}, "isEven"),
				ast.NewVar(ast.Pos{Line: 2, Col: 1}, "n"))))

	result := TypeCheckAll(decls, map[ast.Name]ast.Expr[ast.Pos]{
		"isEven": isEven,
		"isOdd":  isOdd,
	})

	for _, e := range result.Errors {
		t.Logf("unexpected error: %s", e.Error())
	}
	assert.Empty(t, result.Errors)
	require.Contains(t, result.Trees, "isEven")
	require.Contains(t, result.Trees, "isOdd")
}

func TestTypeCheckIncrementalResolvesAgainstKnownNames(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	pos := ast.Pos{Line: 0, Col: 0}
	// "double" was type-checked in a previous batch/module and is handed
	// in as a known typing rather than being checked here.
	doubleTy := itype.Arrow(pos, itype.Lit(pos, ast.KInt), itype.Lit(pos, ast.KInt))

	callDouble := ast.NewApp(ast.Pos{Line: 1, Col: 1},
		ast.NewVar(ast.Pos{Line: 1, Col: 1}, "double"),
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(21)))

	result := TypeCheckIncremental(decls, map[ast.Name]*itype.IType[ast.Pos]{"double": doubleTy},
		map[ast.Name]ast.Expr[ast.Pos]{"useDouble": callDouble})

	assert.Empty(t, result.Errors)
	tree, ok := result.Trees["useDouble"]
	require.True(t, ok)
	assert.Equal(t, "int", tree.Annotation().Type.String())
}

// TestTypeCheckLamOverListMatchesFullTypeShape compares the whole
// resolved type tree structurally rather than via its string rendering,
// so a regression that happens to print the same but nests the arrow or
// list constructors incorrectly would still be caught.
func TestTypeCheckLamOverListMatchesFullTypeShape(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	listTy := ast.Type(ast.TList{Elem: ast.TLit{Kind: ast.KInt}})
	lam := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "xs", &listTy,
		ast.NewVar(ast.Pos{Line: 1, Col: 5}, "xs"))

	got, errs := TypeCheck(decls, lam)
	require.Empty(t, errs)

	want := ast.TArrow{
		Param:  ast.TList{Elem: ast.TLit{Kind: ast.KInt}},
		Result: ast.TList{Elem: ast.TLit{Kind: ast.KInt}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved type mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeCheckIncrementalStillReportsTrulyFreeNames(t *testing.T) {
	decls := ast.NewTypeDecls(nil)
	v := ast.NewVar(ast.Pos{Line: 1, Col: 1}, "neitherKnownNorInBatch")

	result := TypeCheckIncremental(decls, nil, map[ast.Name]ast.Expr[ast.Pos]{"use": v})

	require.Len(t, result.Errors, 2)
	assert.Equal(t, "unbound variable: neitherKnownNorInBatch", result.Errors[0].Error())
	assert.Equal(t, "could not infer a concrete type (no let-polymorphism: unresolved variables are errors)", result.Errors[1].Error())
}
