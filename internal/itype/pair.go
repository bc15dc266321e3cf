package itype

// Pair is the annotation the generator attaches to every node: the
// node's inference type plus the original annotation it replaced
// (§4.3, "an annotated node whose annotation is (IType, original
// annotation)").
type Pair[A any] struct {
	Type *IType[A]
	Orig A
}
