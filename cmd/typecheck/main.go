package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

func main() {
	var (
		declsFlag = flag.String("decls", "", "path to a YAML file declaring variant/record types")
		exprFlag  = flag.String("expr", "", "path to a YAML expression fixture to type-check")
		demoFlag  = flag.Bool("demo", false, "run the built-in inference scenarios")
		replFlag  = flag.Bool("repl", false, "start an interactive type-checking session")
		helpFlag  = flag.Bool("help", false, "show help")
	)
	flag.Parse()

	if *helpFlag || (!*demoFlag && !*replFlag && *declsFlag == "" && *exprFlag == "") {
		printHelp()
		return
	}

	if *demoFlag {
		runDemo()
	}

	if *exprFlag == "" && *declsFlag != "" {
		if err := runDeclsFile(*declsFlag); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
	}

	if *exprFlag != "" {
		if err := runExprFile(*declsFlag, *exprFlag); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
	}

	if *replFlag {
		if err := runRepl(*declsFlag); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
	}
}

func printHelp() {
	fmt.Println(bold("typecheck") + " - constraint-based type inference demo")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  typecheck -demo                           run the built-in inference scenarios")
	fmt.Println("  typecheck -decls types.yaml                load type declarations and report them")
	fmt.Println("  typecheck -decls types.yaml -expr e.yaml   type-check an expression fixture")
	fmt.Println("  typecheck -repl [-decls types.yaml]        start an interactive session")
}
