package typeerr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ast "github.com/tmplang/typecheck/internal/syntax"
)

func TestBadConstructorNameSuggestsClosestDeclaredCtor(t *testing.T) {
	e := BadConstructorName[ast.Pos]("Som", "Option", []ast.Constructor{"None", "Some"}, ast.Pos{})
	assert.Equal(t, "type Option has no constructor Som (did you mean Some?)", e.Error())
}

func TestBadConstructorNameOmitsSuggestionWhenNothingIsClose(t *testing.T) {
	e := BadConstructorName[ast.Pos]("Zzzzzzzz", "Option", []ast.Constructor{"None", "Some"}, ast.Pos{})
	assert.Equal(t, "type Option has no constructor Zzzzzzzz", e.Error())
}

func TestBadConstructorNameOmitsSuggestionWithNoCandidates(t *testing.T) {
	e := BadConstructorName[ast.Pos]("Nope", "Empty", nil, ast.Pos{})
	assert.Equal(t, "type Empty has no constructor Nope", e.Error())
}

func TestBadPatternConstructorSuggestsAcrossAllDeclaredTypes(t *testing.T) {
	e := BadPatternConstructor[ast.Pos]("som", []ast.Constructor{"None", "Some", "True", "False"}, ast.Pos{})
	assert.Equal(t, "unknown constructor in pattern: som (did you mean Some?)", e.Error())
}

func TestListErrorAggregatesMultipleErrors(t *testing.T) {
	l := List[ast.Pos]{
		FreeVariable[ast.Pos]("x", ast.Pos{}),
		UndeclaredType[ast.Pos]("Bogus", ast.Pos{}),
	}
	got := l.Error()
	assert.Contains(t, got, "2 type errors:")
	assert.Contains(t, got, "unbound variable: x")
	assert.Contains(t, got, "undeclared type: Bogus")
}

func TestListErrorEmpty(t *testing.T) {
	var l List[ast.Pos]
	assert.Equal(t, "no errors", l.Error())
}

func TestRecordInferenceErrorListsStuckFields(t *testing.T) {
	e := RecordInferenceError([]FieldAt[ast.Pos]{
		{Field: "name", Type: ast.TLit{Kind: ast.KString}, Ann: ast.Pos{}},
	}, ast.Pos{})
	assert.Equal(t, "could not resolve a record type with fields {name: string}", e.Error())
}

func TestInvalidRecordFieldsNamesTheOffendingType(t *testing.T) {
	e := InvalidRecordFields[ast.Pos](ast.TLit{Kind: ast.KInt}, []FieldAt[ast.Pos]{
		{Field: "x", Type: ast.TLit{Kind: ast.KInt}, Ann: ast.Pos{}},
	}, ast.Pos{})
	assert.Equal(t, "type int cannot have fields {x: int}", e.Error())
}
