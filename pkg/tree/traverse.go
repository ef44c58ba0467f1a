package tree

// ForEach visits n and then each of its descendants in pre-order.
// It no-ops on a nil node.
func ForEach(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		ForEach(c, visit)
	}
}

// Filter collects every node in n's subtree, n included, that satisfies
// pred, in pre-order.
func Filter(n *Node, pred func(*Node) bool) []*Node {
	var out []*Node
	ForEach(n, func(c *Node) {
		if pred(c) {
			out = append(out, c)
		}
	})
	return out
}

// Walk visits n and its descendants in pre-order. The visitor's return
// controls descent: false skips the node's children, true continues into
// them. Siblings are always visited.
func Walk(n *Node, visitor func(*Node) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visitor)
	}
}

// Ancestors returns n's ancestor chain from the immediate parent up to the
// root of the tree, excluding n itself.
func Ancestors(n *Node) []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}
