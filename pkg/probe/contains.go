package probe

import (
	"github.com/go-probe/probe/pkg/match"
	"github.com/go-probe/probe/pkg/tree"
)

// Contains reports whether the wrapper's subtrees contain the given
// element(s) under exact structural equality. A single element matches any
// equal node; multiple elements must appear as a contiguous children run of
// some node.
func (w *Wrapper) Contains(els ...*tree.Element) bool {
	expected := w.comparisonNodes("Contains", els)
	if len(expected) == 1 {
		return w.anyNode(func(n *tree.Node) bool {
			return match.NodeEqual(expected[0], n)
		})
	}
	return w.anyNode(func(n *tree.Node) bool {
		return match.ContainsChildrenSubArray(match.NodeEqual, n, expected)
	})
}

// ContainsMatchingElement reports whether some node in the wrapper's
// subtrees loosely matches el: el may specify fewer props and children than
// the node carries, but nothing conflicting.
func (w *Wrapper) ContainsMatchingElement(el *tree.Element) bool {
	expected := w.comparisonNodes("ContainsMatchingElement", []*tree.Element{el})
	return w.anyNode(func(n *tree.Node) bool {
		return match.NodeMatches(expected[0], n)
	})
}

// ContainsAnyMatchingElements reports whether at least one of els loosely
// matches some node. Panics with *InvalidArgumentError on an empty list.
func (w *Wrapper) ContainsAnyMatchingElements(els []*tree.Element) bool {
	expected := w.comparisonNodes("ContainsAnyMatchingElements", els)
	for _, exp := range expected {
		if w.anyNode(func(n *tree.Node) bool { return match.NodeMatches(exp, n) }) {
			return true
		}
	}
	return false
}

// ContainsAllMatchingElements reports whether every one of els loosely
// matches some node. Panics with *InvalidArgumentError on an empty list.
func (w *Wrapper) ContainsAllMatchingElements(els []*tree.Element) bool {
	expected := w.comparisonNodes("ContainsAllMatchingElements", els)
	for _, exp := range expected {
		if !w.anyNode(func(n *tree.Node) bool { return match.NodeMatches(exp, n) }) {
			return false
		}
	}
	return true
}

// comparisonNodes converts expected elements into transient comparison
// trees through the same adapter machinery that built the wrapper's tree.
func (w *Wrapper) comparisonNodes(op string, els []*tree.Element) []*tree.Node {
	if len(els) == 0 {
		panic(&InvalidArgumentError{Op: op, Reason: "expected at least one element"})
	}
	out := make([]*tree.Node, len(els))
	for i, el := range els {
		if el == nil {
			panic(&InvalidArgumentError{Op: op, Reason: "nil element"})
		}
		out[i] = w.root.adapter.ElementToTree(el)
	}
	return out
}

func (w *Wrapper) anyNode(pred func(*tree.Node) bool) bool {
	for _, n := range w.nodes {
		found := false
		tree.Walk(n, func(c *tree.Node) bool {
			if pred(c) {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}
