// Package match implements structural comparison between rendered tree
// nodes: strict equality for exact containment checks and loose subset
// matching for "matching element" assertions.
//
// Both entry points share one algorithm parameterized by a length
// comparator. [NodeEqual] uses identity equality of counts; [NodeMatches]
// admits the left side carrying at most as many entries as the right, which
// is the only source of its deliberate asymmetry: a may match b while b does
// not match a.
package match

import (
	"reflect"
	"strings"

	"github.com/go-probe/probe/pkg/tree"
)

// comparison carries the mode parameters threaded through the recursion.
type comparison struct {
	// lengthOK admits a pair of counts: sequence lengths and own-key counts.
	lengthOK func(a, b int) bool
	// stripNil drops nil-valued props from both sides before comparing, so
	// an absent prop and an explicit nil prop are treated alike.
	stripNil bool
}

var (
	strict = &comparison{lengthOK: func(a, b int) bool { return a == b }}
	loose  = &comparison{lengthOK: func(a, b int) bool { return a <= b }, stripNil: true}
)

// NodeEqual reports exact structural equality of a and b: same type, same
// props under deep equality, and pairwise-equal simplified children.
func NodeEqual(a, b *tree.Node) bool {
	return compare(a, b, strict)
}

// NodeMatches reports whether a structurally matches b, allowing b to carry
// props and children beyond those a specifies. Not symmetric.
func NodeMatches(a, b *tree.Node) bool {
	return compare(a, b, loose)
}

func compare(a, b *tree.Node, c *comparison) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind == tree.KindText || b.Kind == tree.KindText {
		return a.Kind == b.Kind && a.Text == b.Text
	}
	if a.Kind == tree.KindFunc || b.Kind == tree.KindFunc {
		return a.Kind == b.Kind && funcEqual(a.Value, b.Value)
	}
	if a.Kind != b.Kind || !tree.TypeEqual(a.Type, b.Type) {
		return false
	}

	aProps, bProps := a.Props, b.Props
	if c.stripNil {
		aProps = stripNilProps(aProps)
		bProps = stripNilProps(bProps)
	}
	for k, av := range aProps {
		if k == "children" {
			continue
		}
		bv, ok := bProps[k]
		if !ok || !valueEqual(av, bv) {
			return false
		}
	}

	sa := SimplifyChildren(a.Children)
	sb := SimplifyChildren(b.Children)
	if !c.lengthOK(len(sa), len(sb)) {
		return false
	}
	for i := range sa {
		if !compare(sa[i], sb[i], c) {
			return false
		}
	}

	// Own-key admissibility: under the loose comparator b may legitimately
	// carry more props than a; under the strict one the counts must agree,
	// which is what rules out b-only props after the subset walk above.
	return c.lengthOK(len(aProps), len(bProps))
}

// SimplifyChildren normalizes a children sequence by dropping nil entries
// and merging adjacent text leaves into single runs, absorbing incidental
// splitting of interpolated text. Applying it twice yields the same
// sequence as once.
func SimplifyChildren(children []*tree.Node) []*tree.Node {
	var out []*tree.Node
	var run []*tree.Node
	flush := func() {
		switch len(run) {
		case 0:
		case 1:
			out = append(out, run[0])
		default:
			var sb strings.Builder
			for _, t := range run {
				sb.WriteString(t.Text)
			}
			out = append(out, &tree.Node{Kind: tree.KindText, Text: sb.String()})
		}
		run = nil
	}
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.Kind == tree.KindText {
			run = append(run, child)
			continue
		}
		flush()
		out = append(out, child)
	}
	flush()
	return out
}

// ContainsChildrenSubArray reports whether node's simplified children
// contain sub as a contiguous run under the given comparator, each expected
// entry compared against the aligned child.
func ContainsChildrenSubArray(match func(a, b *tree.Node) bool, node *tree.Node, sub []*tree.Node) bool {
	if node == nil {
		return false
	}
	children := SimplifyChildren(node.Children)
	sub = SimplifyChildren(sub)
	if len(sub) == 0 {
		return true
	}
	for i := 0; i+len(sub) <= len(children); i++ {
		found := true
		for j := range sub {
			if !match(sub[j], children[i+j]) {
				found = false
				break
			}
		}
		if found {
			return true
		}
	}
	return false
}

// valueEqual compares prop values: numeric values compare across numeric
// types, functions by code pointer, everything else under
// reflect.DeepEqual.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := toFloat(a); ok {
		fb, ok2 := toFloat(b)
		return ok2 && fa == fb
	}
	if reflect.TypeOf(a).Kind() == reflect.Func {
		return funcEqual(a, b)
	}
	return reflect.DeepEqual(a, b)
}

func funcEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Func || vb.Kind() != reflect.Func {
		return false
	}
	return va.Pointer() == vb.Pointer()
}

func stripNilProps(props map[string]any) map[string]any {
	if len(props) == 0 {
		return props
	}
	clean := make(map[string]any, len(props))
	for k, v := range props {
		if v == nil {
			continue
		}
		clean[k] = v
	}
	return clean
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
