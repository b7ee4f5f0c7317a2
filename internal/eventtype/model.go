package eventtype

// EventType describes a kind of booking (training, match, other).
// Two overlapping bookings are tolerated only if both types allow overlap.
type EventType struct {
	ID           string
	Label        string
	Icon         string
	AllowOverlap bool
	SortOrder    int
}

// Registry resolves event types by id.
type Registry map[string]EventType

func NewRegistry(types []EventType) Registry {
	reg := make(Registry, len(types))
	for _, t := range types {
		reg[t.ID] = t
	}
	return reg
}

// Has reports whether id is a configured type.
func (r Registry) Has(id string) bool {
	_, ok := r[id]
	return ok
}

// Lookup returns the type for id. Unknown ids resolve to a type labelled
// with the id itself that does not allow overlap.
func (r Registry) Lookup(id string) EventType {
	if t, ok := r[id]; ok {
		return t
	}
	return EventType{ID: id, Label: id}
}
