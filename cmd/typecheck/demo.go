package main

import (
	"fmt"

	"github.com/tmplang/typecheck/internal/check"
	ast "github.com/tmplang/typecheck/internal/syntax"
)

func runDemo() {
	fmt.Println(bold("Type Inference Demo"))
	fmt.Println("====================")
	fmt.Println()

	decls := ast.NewTypeDecls(map[ast.TypeName]*ast.TypeDecl{
		"Bool": {
			Kind: ast.DeclVariant,
			Variants: []ast.VariantCtor{
				{Name: "True"},
				{Name: "False"},
			},
		},
	})

	demoLiteral(decls)
	demoIdentity(decls)
	demoApplication(decls)
	demoProjection(decls)
	demoFreeVariable(decls)
}

func reportWithDecls(label string, decls *ast.TypeDecls, expr ast.Expr[ast.Pos]) {
	ty, errs := check.TypeCheck(decls, expr)
	if len(errs) > 0 {
		fmt.Printf("%-28s %s\n", label, red("FAILED"))
		for _, e := range errs {
			fmt.Printf("  %s\n", yellow(e.Error()))
		}
		return
	}
	fmt.Printf("%-28s : %s\n", label, green(ty.String()))
}

func demoLiteral(decls *ast.TypeDecls) {
	lit := ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(42))
	reportWithDecls("42", decls, lit)
}

func demoIdentity(decls *ast.TypeDecls) {
	ident := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "x", nil,
		ast.NewVar(ast.Pos{Line: 1, Col: 4}, "x"))
	reportWithDecls(`\x -> x`, decls, ident)
}

func demoApplication(decls *ast.TypeDecls) {
	ident := ast.NewLam(ast.Pos{Line: 1, Col: 1}, "x", nil,
		ast.NewVar(ast.Pos{Line: 1, Col: 4}, "x"))
	app := ast.NewApp(ast.Pos{Line: 1, Col: 1}, ident,
		ast.NewLit(ast.Pos{Line: 1, Col: 8}, ast.IntLit(1)))
	reportWithDecls(`(\x -> x)(1)`, decls, app)
}

func demoProjection(decls *ast.TypeDecls) {
	person := ast.NewTypeDecls(map[ast.TypeName]*ast.TypeDecl{
		"Person": {
			Kind: ast.DeclRecord,
			Fields: []ast.RecordField{
				{Name: "name", Type: ast.TLit{Kind: ast.KString}},
				{Name: "age", Type: ast.TLit{Kind: ast.KInt}},
			},
		},
	})
	ctor := ast.NewCon(ast.Pos{Line: 1, Col: 1}, "Person", "Person", []ast.Expr[ast.Pos]{
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.StringLit("Ada")),
		ast.NewLit(ast.Pos{Line: 1, Col: 1}, ast.IntLit(36)),
	})
	prj := ast.NewPrj(ast.Pos{Line: 1, Col: 1}, ctor, "age")
	reportWithDecls(`Person("Ada", 36).age`, person, prj)
}

func demoFreeVariable(decls *ast.TypeDecls) {
	v := ast.NewVar(ast.Pos{Line: 1, Col: 1}, "undefined_name")
	reportWithDecls("undefined_name", decls, v)
}
