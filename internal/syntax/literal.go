package syntax

// LitKind is the closed set of ground literal kinds (§3, "L"). The
// template front end only ever elaborates these four forms; a fifth kind
// would mean the grammar grew and this set needs to grow with it.
type LitKind int

const (
	KInt LitKind = iota
	KFloat
	KString
	KBool
)

func (k LitKind) String() string {
	switch k {
	case KInt:
		return "int"
	case KFloat:
		return "float"
	case KString:
		return "string"
	case KBool:
		return "bool"
	default:
		return "<bad-lit-kind>"
	}
}

// LitValue is a literal value together with its kind. The generator never
// inspects the payload, only TypeOf's result, but the payload travels with
// the tree so the eventual interpreter has something to evaluate.
type LitValue struct {
	Kind LitKind
	Int  int64
	Flt  float64
	Str  string
	Bool bool
}

// TypeOf is the `typeOf(value) -> L` function from §3.
func TypeOf(v LitValue) LitKind { return v.Kind }

func IntLit(n int64) LitValue      { return LitValue{Kind: KInt, Int: n} }
func FloatLit(f float64) LitValue  { return LitValue{Kind: KFloat, Flt: f} }
func StringLit(s string) LitValue  { return LitValue{Kind: KString, Str: s} }
func BoolLit(b bool) LitValue      { return LitValue{Kind: KBool, Bool: b} }
