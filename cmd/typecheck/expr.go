package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tmplang/typecheck/internal/check"
	"github.com/tmplang/typecheck/internal/fixture"
	ast "github.com/tmplang/typecheck/internal/syntax"
)

// runExprFile loads an optional decls file and a required expression
// fixture, runs check.TypeCheck, and reports the result the same way
// the -demo scenarios do.
func runExprFile(declsPath, exprPath string) error {
	decls := ast.NewTypeDecls(nil)
	if declsPath != "" {
		raw, err := os.ReadFile(declsPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", declsPath, err)
		}
		var doc yamlTypeDecls
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", declsPath, err)
		}
		decls, err = doc.toTypeDecls()
		if err != nil {
			return err
		}
	}

	raw, err := os.ReadFile(exprPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", exprPath, err)
	}
	expr, err := fixture.Decode(raw)
	if err != nil {
		return err
	}

	reportWithDecls(exprPath, decls, expr)
	return nil
}
