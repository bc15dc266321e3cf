package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tmplang/typecheck/internal/fixture"
	ast "github.com/tmplang/typecheck/internal/syntax"
)

// yamlTypeDecls is the on-disk shape of a type-declaration file: a flat,
// YAML-friendly mirror of ast.TypeDecl that toTypeDecls converts into
// the real thing before handing it to the checker.
type yamlTypeDecls struct {
	Variants map[string][]yamlCtor  `yaml:"variants"`
	Records  map[string][]yamlField `yaml:"records"`
}

type yamlCtor struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args"`
}

type yamlField struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

func runDeclsFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var doc yamlTypeDecls
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	decls, err := doc.toTypeDecls()
	if err != nil {
		return err
	}
	fmt.Println(bold("Declared types"))
	for _, n := range decls.Names() {
		fmt.Printf("  %s\n", green(n))
	}
	return nil
}

func (y yamlTypeDecls) toTypeDecls() (*ast.TypeDecls, error) {
	entries := make(map[ast.TypeName]*ast.TypeDecl)
	for tn, ctors := range y.Variants {
		variants := make([]ast.VariantCtor, len(ctors))
		for i, c := range ctors {
			args := make([]ast.Type, len(c.Args))
			for j, a := range c.Args {
				ty, err := parseYAMLType(a)
				if err != nil {
					return nil, err
				}
				args[j] = ty
			}
			variants[i] = ast.VariantCtor{Name: c.Name, Args: args}
		}
		entries[tn] = &ast.TypeDecl{Kind: ast.DeclVariant, Variants: variants}
	}
	for tn, fields := range y.Records {
		fs := make([]ast.RecordField, len(fields))
		for i, f := range fields {
			ty, err := parseYAMLType(f.Type)
			if err != nil {
				return nil, err
			}
			fs[i] = ast.RecordField{Name: f.Name, Type: ty}
		}
		entries[tn] = &ast.TypeDecl{Kind: ast.DeclRecord, Fields: fs}
	}
	return ast.NewTypeDecls(entries), nil
}

// parseYAMLType accepts the ground literal names, bare type-reference
// names, and the "[Elem]" / "(Param -> Result)" compound forms also used
// by expression fixtures (internal/fixture), so a declared field or
// constructor argument can itself be a list or function type.
func parseYAMLType(s string) (ast.Type, error) {
	if s == "" {
		return nil, fmt.Errorf("empty type name")
	}
	return fixture.ParseType(s)
}
