// Package fixture decodes a flat YAML serialization of the core
// expression language (§3) into *syntax.Expr/*syntax.Pattern trees, so
// the CLI can drive a check session from a file instead of a Go
// literal. It is not a parser for the template language itself — it
// never sees template syntax, only an already-elaborated tree written
// down one field per node, mirroring the yamlTypeDecls convention the
// CLI already uses for type-declaration files.
package fixture

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	ast "github.com/tmplang/typecheck/internal/syntax"
)

// Expr is the on-disk shape of one expression node. Only the fields
// relevant to Kind are populated; the rest are left zero.
type Expr struct {
	Kind string `yaml:"kind"`
	Line int    `yaml:"line"`
	Col  int    `yaml:"col"`

	// lit
	LitKind string  `yaml:"lit_kind,omitempty"`
	Int     *int64  `yaml:"int,omitempty"`
	Float   *float64 `yaml:"float,omitempty"`
	Str     *string `yaml:"string,omitempty"`
	Bool    *bool   `yaml:"bool,omitempty"`

	// var
	Name string `yaml:"name,omitempty"`

	// lam
	Param     string `yaml:"param,omitempty"`
	ParamType string `yaml:"param_type,omitempty"`
	Body      *Expr  `yaml:"body,omitempty"`

	// app
	Fn  *Expr `yaml:"fn,omitempty"`
	Arg *Expr `yaml:"arg,omitempty"`

	// list
	ElemType string `yaml:"elem_type,omitempty"`
	Elems    []Expr `yaml:"elems,omitempty"`

	// map
	List *Expr `yaml:"list,omitempty"`

	// con
	Ctor     string  `yaml:"ctor,omitempty"`
	TypeName string  `yaml:"type_name,omitempty"`
	Args     []Expr  `yaml:"args,omitempty"`

	// case
	Scrutinee *Expr `yaml:"scrutinee,omitempty"`
	Alts      []Alt `yaml:"alts,omitempty"`

	// prj
	Record *Expr  `yaml:"record,omitempty"`
	Field  string `yaml:"field,omitempty"`

	// foreign
	Type string `yaml:"type,omitempty"`
}

// Alt is one (pattern, body) arm of a case expression.
type Alt struct {
	Pattern Pattern `yaml:"pattern"`
	Body    Expr    `yaml:"body"`
}

// Pattern is the on-disk shape of one pattern node.
type Pattern struct {
	Kind string `yaml:"kind"`
	Line int    `yaml:"line"`
	Col  int    `yaml:"col"`
	Name string `yaml:"name,omitempty"`
	Ctor string `yaml:"ctor,omitempty"`
	Args []Pattern `yaml:"args,omitempty"`
}

// Decode parses a YAML-encoded expression fixture into an Expr tree
// annotated with source positions taken straight from the document.
func Decode(raw []byte) (ast.Expr[ast.Pos], error) {
	var e Expr
	if err := yaml.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("decode expression fixture: %w", err)
	}
	return e.toAST()
}

func (e Expr) pos() ast.Pos { return ast.Pos{Line: e.Line, Col: e.Col} }

func (e Expr) toAST() (ast.Expr[ast.Pos], error) {
	a := e.pos()
	switch e.Kind {
	case "lit":
		v, err := litValue(e)
		if err != nil {
			return nil, err
		}
		return ast.NewLit(a, v), nil

	case "var":
		if e.Name == "" {
			return nil, fmt.Errorf("var node at %s missing name", a)
		}
		return ast.NewVar(a, e.Name), nil

	case "lam":
		if e.Body == nil {
			return nil, fmt.Errorf("lam node at %s missing body", a)
		}
		body, err := e.Body.toAST()
		if err != nil {
			return nil, err
		}
		var paramTy *ast.Type
		if e.ParamType != "" {
			ty, err := ParseType(e.ParamType)
			if err != nil {
				return nil, err
			}
			paramTy = &ty
		}
		return ast.NewLam(a, e.Param, paramTy, body), nil

	case "app":
		if e.Fn == nil || e.Arg == nil {
			return nil, fmt.Errorf("app node at %s missing fn/arg", a)
		}
		fn, err := e.Fn.toAST()
		if err != nil {
			return nil, err
		}
		arg, err := e.Arg.toAST()
		if err != nil {
			return nil, err
		}
		return ast.NewApp(a, fn, arg), nil

	case "list":
		elemTy, err := ParseType(e.ElemType)
		if err != nil {
			return nil, err
		}
		elems, err := toASTEach(e.Elems)
		if err != nil {
			return nil, err
		}
		return ast.NewList(a, elemTy, elems), nil

	case "map":
		if e.Fn == nil || e.List == nil {
			return nil, fmt.Errorf("map node at %s missing fn/list", a)
		}
		fn, err := e.Fn.toAST()
		if err != nil {
			return nil, err
		}
		list, err := e.List.toAST()
		if err != nil {
			return nil, err
		}
		return ast.NewMap(a, fn, list), nil

	case "con":
		args, err := toASTEach(e.Args)
		if err != nil {
			return nil, err
		}
		return ast.NewCon(a, e.Ctor, e.TypeName, args), nil

	case "case":
		if e.Scrutinee == nil {
			return nil, fmt.Errorf("case node at %s missing scrutinee", a)
		}
		scrut, err := e.Scrutinee.toAST()
		if err != nil {
			return nil, err
		}
		alts := make([]ast.Alt[ast.Pos], len(e.Alts))
		for i, alt := range e.Alts {
			pat, err := alt.Pattern.toAST()
			if err != nil {
				return nil, err
			}
			body, err := alt.Body.toAST()
			if err != nil {
				return nil, err
			}
			alts[i] = ast.Alt[ast.Pos]{Pattern: pat, Body: body}
		}
		return ast.NewCase(a, scrut, alts), nil

	case "prj":
		if e.Record == nil {
			return nil, fmt.Errorf("prj node at %s missing record", a)
		}
		rec, err := e.Record.toAST()
		if err != nil {
			return nil, err
		}
		return ast.NewPrj(a, rec, e.Field), nil

	case "foreign":
		ty, err := ParseType(e.Type)
		if err != nil {
			return nil, err
		}
		return ast.NewForeign(a, e.Name, ty), nil

	default:
		return nil, fmt.Errorf("unknown expression kind %q at %s", e.Kind, a)
	}
}

func toASTEach(es []Expr) ([]ast.Expr[ast.Pos], error) {
	out := make([]ast.Expr[ast.Pos], len(es))
	for i, e := range es {
		g, err := e.toAST()
		if err != nil {
			return nil, err
		}
		out[i] = g
	}
	return out, nil
}

func (p Pattern) toAST() (ast.Pattern[ast.Pos], error) {
	a := ast.Pos{Line: p.Line, Col: p.Col}
	switch p.Kind {
	case "var":
		return ast.NewPVar(a, p.Name), nil
	case "con":
		subs := make([]ast.Pattern[ast.Pos], len(p.Args))
		for i, sub := range p.Args {
			s, err := sub.toAST()
			if err != nil {
				return nil, err
			}
			subs[i] = s
		}
		return ast.NewPCon(a, p.Ctor, subs), nil
	default:
		return nil, fmt.Errorf("unknown pattern kind %q at %s", p.Kind, a)
	}
}

func litValue(e Expr) (ast.LitValue, error) {
	switch e.LitKind {
	case "int":
		if e.Int == nil {
			return ast.LitValue{}, fmt.Errorf("lit at %s: lit_kind int requires int", e.pos())
		}
		return ast.IntLit(*e.Int), nil
	case "float":
		if e.Float == nil {
			return ast.LitValue{}, fmt.Errorf("lit at %s: lit_kind float requires float", e.pos())
		}
		return ast.FloatLit(*e.Float), nil
	case "string":
		if e.Str == nil {
			return ast.LitValue{}, fmt.Errorf("lit at %s: lit_kind string requires string", e.pos())
		}
		return ast.StringLit(*e.Str), nil
	case "bool":
		if e.Bool == nil {
			return ast.LitValue{}, fmt.Errorf("lit at %s: lit_kind bool requires bool", e.pos())
		}
		return ast.BoolLit(*e.Bool), nil
	default:
		return ast.LitValue{}, fmt.Errorf("lit at %s: unknown lit_kind %q", e.pos(), e.LitKind)
	}
}

// ParseType parses the small surface-type grammar used by expression
// and declaration fixtures: ground literal names, bare type references,
// "[Elem]" lists and "(Param -> Result)" arrows, nested arbitrarily.
func ParseType(s string) (ast.Type, error) {
	p := &typeParser{src: strings.TrimSpace(s)}
	ty, err := p.parse()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("type %q: unexpected trailing input at %d", s, p.pos)
	}
	return ty, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) parse() (ast.Type, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("type %q: unexpected end of input", p.src)
	}
	switch p.src[p.pos] {
	case '[':
		p.pos++
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume(']') {
			return nil, fmt.Errorf("type %q: expected ']'", p.src)
		}
		return ast.TList{Elem: elem}, nil
	case '(':
		p.pos++
		param, err := p.parse()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consumeToken("->") {
			return nil, fmt.Errorf("type %q: expected '->'", p.src)
		}
		result, err := p.parse()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume(')') {
			return nil, fmt.Errorf("type %q: expected ')'", p.src)
		}
		return ast.TArrow{Param: param, Result: result}, nil
	default:
		ident := p.ident()
		if ident == "" {
			return nil, fmt.Errorf("type %q: expected a type name at %d", p.src, p.pos)
		}
		switch ident {
		case "int":
			return ast.TLit{Kind: ast.KInt}, nil
		case "float":
			return ast.TLit{Kind: ast.KFloat}, nil
		case "string":
			return ast.TLit{Kind: ast.KString}, nil
		case "bool":
			return ast.TLit{Kind: ast.KBool}, nil
		default:
			return ast.TRef{Name: ident}, nil
		}
	}
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) consumeToken(tok string) bool {
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *typeParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '[' || c == ']' || c == '(' || c == ')' || c == ' ' || c == '\t' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}
