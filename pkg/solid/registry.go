package solid

import "github.com/samber/lo"

// Registry is an ordered collection of solids. Insertion order is kept and
// is the order every analysis reports ties in. A Registry is not safe for
// concurrent use; callers pass it explicitly rather than sharing one.
type Registry struct {
	solids []Solid
}

// NewRegistry returns a registry holding the given solids in order.
func NewRegistry(solids ...Solid) *Registry {
	r := &Registry{}
	for _, s := range solids {
		r.Add(s)
	}
	return r
}

// Add appends s and returns its index. Nil solids are ignored and -1 is
// returned.
func (r *Registry) Add(s Solid) int {
	if s == nil {
		return -1
	}
	r.solids = append(r.solids, s)
	return len(r.solids) - 1
}

// Remove deletes the solid at index i, shifting later solids down.
func (r *Registry) Remove(i int) (Solid, bool) {
	if i < 0 || i >= len(r.solids) {
		return nil, false
	}
	s := r.solids[i]
	r.solids = append(r.solids[:i], r.solids[i+1:]...)
	return s, true
}

// At returns the solid at index i, or nil when out of range.
func (r *Registry) At(i int) Solid {
	if i < 0 || i >= len(r.solids) {
		return nil
	}
	return r.solids[i]
}

// Len returns the number of solids.
func (r *Registry) Len() int {
	return len(r.solids)
}

// All returns a snapshot of the solids in insertion order. Appending to
// or reordering the snapshot does not affect the registry.
func (r *Registry) All() []Solid {
	out := make([]Solid, len(r.solids))
	copy(out, r.solids)
	return out
}

// Lookup returns the first solid with the given name, or nil.
func (r *Registry) Lookup(name string) Solid {
	s, ok := lo.Find(r.solids, func(s Solid) bool { return s.Name() == name })
	if !ok {
		return nil
	}
	return s
}

// OfKind returns the solids of kind k in insertion order.
func (r *Registry) OfKind(k Kind) []Solid {
	return lo.Filter(r.solids, func(s Solid, _ int) bool { return s.Kind() == k })
}
