package main

import (
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	"github.com/tmplang/typecheck/internal/check"
	"github.com/tmplang/typecheck/internal/fixture"
	ast "github.com/tmplang/typecheck/internal/syntax"
)

// runRepl starts an interactive loop that type-checks one flow-style
// YAML expression fragment per input line against declsPath (or no
// declared types if declsPath is empty), e.g.:
//
//	ty> {kind: lit, lit_kind: int, int: 42}
//	int
func runRepl(declsPath string) error {
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

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println(bold("typecheck") + " interactive session")
	fmt.Println(dim("Enter one flow-style YAML expression per line; :quit to exit."))

	for {
		input, err := line.Prompt("ty> ")
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if input == ":quit" || input == ":q" {
			return nil
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		expr, err := fixture.Decode([]byte(input))
		if err != nil {
			fmt.Printf("%s: %v\n", red("parse error"), err)
			continue
		}
		ty, errs := check.TypeCheck(decls, expr)
		if len(errs) > 0 {
			fmt.Println(red("FAILED"))
			for _, e := range errs {
				fmt.Printf("  %s\n", yellow(e.Error()))
			}
			continue
		}
		fmt.Println(green(ty.String()))
	}
}
