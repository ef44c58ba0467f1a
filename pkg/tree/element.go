package tree

// Element describes a node before any renderer has produced it: the value a
// caller hands to Mount, SetProps re-renders, and containment checks. Child
// entries may be *Element, string, any numeric type, bool, func values, or
// nil; adapters convert them into Node children (false and nil are dropped,
// numbers become text).
type Element struct {
	// Type is a host tag (string) or a comparable composite type reference.
	Type any
	// Key is the reconciliation key, or nil.
	Key any
	// Props holds the element's properties, children excluded.
	Props map[string]any
	// Children are the child descriptions in document order.
	Children []any
}

// New builds an element description. props may be nil.
func New(typ any, props map[string]any, children ...any) *Element {
	return &Element{Type: typ, Props: props, Children: children}
}

// WithKey returns a copy of el carrying the given key.
func (el *Element) WithKey(key any) *Element {
	dup := *el
	dup.Key = key
	return &dup
}
