package tree

// Kind identifies the category of a Node.
type Kind int

const (
	// KindHost is a primitive output element identified by a string tag.
	KindHost Kind = iota
	// KindComponent is a user-defined component identified by a type reference.
	KindComponent
	// KindText is a textual leaf. Adapters stringify numeric children into
	// text leaves when building the tree.
	KindText
	// KindFunc is a function-valued leaf (render-prop style children).
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindHost:
		return "host"
	case KindComponent:
		return "component"
	case KindText:
		return "text"
	case KindFunc:
		return "function"
	default:
		return "unknown"
	}
}

// Node is one node of the abstracted rendered component tree that a renderer
// adapter produces. The Children slice owns its nodes; Parent is a non-owning
// back-reference used for upward navigation only.
type Node struct {
	// Kind discriminates host, composite, text, and function leaves.
	Kind Kind
	// Type is the host tag (string) or composite type reference. Composite
	// references must be comparable values. Nil for text and function leaves.
	Type any
	// Props holds the node's properties. Children are never stored here.
	Props map[string]any
	// Children are the rendered children in document order.
	Children []*Node
	// Parent points at the owning parent node, nil at the root of a tree.
	Parent *Node
	// Key is the reconciliation key from the source element, or nil.
	Key any
	// Text is the content of a KindText leaf.
	Text string
	// Value is the raw leaf value: the original child for text leaves
	// (string or number) and the function for KindFunc leaves.
	Value any
	// Instance is the live component handle exposed by the adapter, or nil.
	Instance any
}

// IsText reports whether n is a textual leaf.
func (n *Node) IsText() bool {
	return n != nil && n.Kind == KindText
}

// Prop returns the named prop, or nil when absent.
func (n *Node) Prop(name string) any {
	if n == nil || n.Props == nil {
		return nil
	}
	return n.Props[name]
}
