// Package check is the incremental driver (§4.7) and the public surface
// the rest of the compiler calls into: it wires the generator, the
// solver and the substitution/lowering pass together into the four
// entry points the elaborator depends on.
package check

import (
	"sort"

	"github.com/tmplang/typecheck/internal/constraint"
	"github.com/tmplang/typecheck/internal/infer"
	"github.com/tmplang/typecheck/internal/itype"
	ast "github.com/tmplang/typecheck/internal/syntax"
	"github.com/tmplang/typecheck/internal/subst"
	"github.com/tmplang/typecheck/internal/typeerr"
	"github.com/tmplang/typecheck/internal/unify"
	"github.com/tmplang/typecheck/internal/unionfind"
)

// generateConstraints runs the generator over every expr in a shared
// session (one assumption set, one name supply, one constraint list), as
// required for top-level letrec (§4.7 step 1). It is unexported, but
// visible to this package's tests, so property tests can exercise the
// generator independently of the solver, per §6.
func generateConstraints[A any](decls *ast.TypeDecls, exprs map[ast.Name]ast.Expr[A]) (
	annotated map[ast.Name]ast.Expr[itype.Pair[A]],
	gen *infer.Generator[A],
) {
	gen = infer.New[A](decls)
	annotated = make(map[ast.Name]ast.Expr[itype.Pair[A]], len(exprs))
	for _, n := range sortedNames(exprs) {
		annotated[n] = gen.Generate(exprs[n])
	}
	return annotated, gen
}

// solveConstraints runs mgu over every constraint in cs against a fresh
// store, accumulating (not short-circuiting on) every failure (§5, §7).
func solveConstraints[A any](cs constraint.List[A]) (*unionfind.Store[A], typeerr.List[A]) {
	store := unionfind.New[A]()
	u := unify.New[A](store)
	var errs typeerr.List[A]
	for _, c := range cs {
		if err := u.Unify(c.Left, c.Right); err != nil {
			errs = append(errs, err)
		}
	}
	return store, errs
}

func sortedNames[A any](m map[ast.Name]ast.Expr[A]) []ast.Name {
	out := make([]ast.Name, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Result is the outcome of checking a batch of top-level bindings.
type Result[A any] struct {
	Trees  map[ast.Name]ast.Expr[ast.Typed[A]]
	Errors typeerr.List[A]
}

// TypeCheckAll is typeCheckAll(decls, exprs) from §6: check exprs as a
// single mutually-recursive batch with no externally supplied typings.
func TypeCheckAll[A any](decls *ast.TypeDecls, exprs map[ast.Name]ast.Expr[A]) Result[A] {
	return TypeCheckIncremental(decls, nil, exprs)
}

// TypeCheckIncremental is checkAll(decls, known, exprs) from §4.7:
// known supplies typings for names already checked by a previous batch
// (e.g. earlier modules in a session), so this batch's free-variable
// uses of them resolve instead of being reported as errors.
func TypeCheckIncremental[A any](
	decls *ast.TypeDecls,
	known map[ast.Name]*itype.IType[A],
	exprs map[ast.Name]ast.Expr[A],
) Result[A] {
	annotated, gen := generateConstraints(decls, exprs)

	// Step 2: every name with assumptions gets its uses equated with its
	// own definition's inferred type, whether that definition is in this
	// batch (letrec) or in `known` (a previously checked module).
	for _, n := range gen.Assump.Names() {
		uses := gen.Assump.Lookup(n)
		var defType *itype.IType[A]
		if body, ok := annotated[n]; ok {
			defType = body.Annotation().Type
		} else if t, ok := known[n]; ok {
			defType = t
		} else {
			continue // truly free; handled in step 3
		}
		for _, u := range uses {
			gen.Constraints = append(gen.Constraints, constraint.Equal[A]{Left: defType, Right: u, Ann: u.Ann})
		}
	}

	// Step 3: names with assumptions in neither exprs nor known are free.
	errs := append(typeerr.List[A]{}, gen.Errors...)
	for _, n := range gen.Assump.Names() {
		if _, ok := annotated[n]; ok {
			continue
		}
		if _, ok := known[n]; ok {
			continue
		}
		for _, u := range gen.Assump.Lookup(n) {
			errs = append(errs, typeerr.FreeVariable[A](n, u.Ann))
		}
	}

	// Step 4: solve.
	store, solveErrs := solveConstraints(gen.Constraints)
	errs = append(errs, solveErrs...)

	// Step 5: substitute and lower every expression, flattening errors.
	subs := subst.Build(store, gen.Names.Max())
	trees := make(map[ast.Name]ast.Expr[ast.Typed[A]], len(annotated))
	for _, n := range sortedNames(annotated) {
		tree, lowerErrs := subst.LowerExpr(subs, annotated[n])
		trees[n] = tree
		errs = append(errs, lowerErrs...)
	}

	return Result[A]{Trees: trees, Errors: errs}
}

const soleName ast.Name = "$"

// TypeTree is typeTree(decls, expr) from §6: the degenerate single
// expression case. Any assumption left over after solving is a free
// variable, since there is no known map and no sibling batch.
func TypeTree[A any](decls *ast.TypeDecls, expr ast.Expr[A]) (ast.Expr[ast.Typed[A]], typeerr.List[A]) {
	result := TypeCheckIncremental(decls, nil, map[ast.Name]ast.Expr[A]{soleName: expr})
	return result.Trees[soleName], result.Errors
}

// TypeCheck is typeCheck(decls, expr) from §6: only the outer type.
func TypeCheck[A any](decls *ast.TypeDecls, expr ast.Expr[A]) (ast.Type, typeerr.List[A]) {
	tree, errs := TypeTree(decls, expr)
	if len(errs) > 0 {
		return nil, errs
	}
	return tree.Annotation().Type, nil
}
