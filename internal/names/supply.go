// Package names hands out fresh unification-variable identities.
package names

// Supply is a monotonic integer counter producing unique variable ids
// within a single check session (§4.1). It must never be shared across
// sessions (§5): each session owns its own Supply exclusively for its
// lifetime.
type Supply struct {
	next int
}

// NewSupply returns a Supply with no ids handed out yet.
func NewSupply() *Supply {
	return &Supply{}
}

// Fresh returns a new, previously unused id.
func (s *Supply) Fresh() int {
	s.next++
	return s.next
}

// Max returns the highest id handed out so far, or 0 if none has.
func (s *Supply) Max() int {
	return s.next
}
