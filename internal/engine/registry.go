package engine

import "fmt"

// Candidate is one ingested résumé. Immutable after registration.
type Candidate struct {
	ID          string
	DisplayName string
	RawText     string
}

// Registry tracks candidates in insertion order. It is written only during
// engine construction and read-only afterwards.
type Registry struct {
	order []string
	byID  map[string]*Candidate
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Candidate)}
}

// Register adds a candidate. Registering an already known id fails with
// ErrDuplicateDocument and leaves the first registration untouched.
func (r *Registry) Register(id, displayName, rawText string) (*Candidate, error) {
	if _, exists := r.byID[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateDocument, id)
	}

	candidate := &Candidate{ID: id, DisplayName: displayName, RawText: rawText}
	r.byID[id] = candidate
	r.order = append(r.order, id)

	return candidate, nil
}

// Get returns the candidate for the given id or ErrNotFound.
func (r *Registry) Get(id string) (*Candidate, error) {
	candidate, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return candidate, nil
}

// List returns all candidates in insertion order.
func (r *Registry) List() []*Candidate {
	candidates := make([]*Candidate, 0, len(r.order))
	for _, id := range r.order {
		candidates = append(candidates, r.byID[id])
	}
	return candidates
}

// Len returns the number of registered candidates.
func (r *Registry) Len() int {
	return len(r.order)
}
