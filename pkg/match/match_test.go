package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-probe/probe/pkg/tree"
)

func host(tag string, props map[string]any, children ...*tree.Node) *tree.Node {
	return &tree.Node{Kind: tree.KindHost, Type: tag, Props: props, Children: children}
}

func text(s string) *tree.Node {
	return &tree.Node{Kind: tree.KindText, Text: s}
}

func TestNodeEqual_Reflexive(t *testing.T) {
	t.Parallel()

	nodes := []*tree.Node{
		host("div", nil),
		host("div", map[string]any{"className": "foo"}, text("Hi")),
		text("plain"),
		host("ul", nil, host("li", nil, text("a")), host("li", nil, text("b"))),
	}
	for _, n := range nodes {
		assert.True(t, NodeEqual(n, n))
	}
}

func TestNodeEqual_Symmetric(t *testing.T) {
	t.Parallel()

	a := host("div", map[string]any{"className": "foo"}, text("Hi"))
	b := host("div", map[string]any{"className": "foo"}, text("Hi"))
	c := host("div", map[string]any{"className": "bar"}, text("Hi"))

	assert.True(t, NodeEqual(a, b))
	assert.True(t, NodeEqual(b, a))
	assert.False(t, NodeEqual(a, c))
	assert.False(t, NodeEqual(c, a))
}

func TestNodeEqual_Basics(t *testing.T) {
	t.Parallel()

	assert.False(t, NodeEqual(host("div", nil), nil), "one side nil")
	assert.False(t, NodeEqual(nil, host("div", nil)))
	assert.True(t, NodeEqual(nil, nil), "same reference, both nil")
	assert.False(t, NodeEqual(host("div", nil), host("span", nil)), "type mismatch")
	assert.False(t, NodeEqual(text("a"), text("b")))
	assert.True(t, NodeEqual(text("a"), text("a")))
	assert.False(t, NodeEqual(text("div"), host("div", nil)), "text never equals an element")
}

func TestNodeEqual_ExtraPropsRejected(t *testing.T) {
	t.Parallel()

	sparse := host("div", map[string]any{"className": "foo bar"})
	full := host("div", map[string]any{"className": "foo bar", "title": "x"})

	assert.False(t, NodeEqual(sparse, full))
	assert.False(t, NodeEqual(full, sparse))
}

func TestNodeMatches_SubsetSemantics(t *testing.T) {
	t.Parallel()

	expected := host("div", map[string]any{"className": "foo bar"})
	actual := host("div", map[string]any{"className": "foo bar", "title": "x"})

	assert.True(t, NodeMatches(expected, actual), "expected may carry fewer props")
	assert.False(t, NodeMatches(actual, expected), "matches is not symmetric")

	conflicting := host("div", map[string]any{"className": "foo bar", "missing": "y"})
	assert.False(t, NodeMatches(conflicting, actual))
}

func TestNodeMatches_NilPropsStripped(t *testing.T) {
	t.Parallel()

	explicitNil := host("div", map[string]any{"className": "foo", "title": nil})
	absent := host("div", map[string]any{"className": "foo"})

	assert.True(t, NodeMatches(explicitNil, absent), "explicit nil equals absence")
	assert.True(t, NodeMatches(absent, explicitNil))
}

func TestNodeMatches_ChildrenSubset(t *testing.T) {
	t.Parallel()

	expected := host("ul", nil, host("li", nil, text("a")))
	actual := host("ul", nil, host("li", nil, text("a")), host("li", nil, text("b")))

	assert.True(t, NodeMatches(expected, actual))
	assert.False(t, NodeMatches(actual, expected))

	wrongOrder := host("ul", nil, host("li", nil, text("b")))
	assert.False(t, NodeMatches(wrongOrder, actual), "children compare element-wise from the front")
}

func TestNodeEqual_MergedTextRuns(t *testing.T) {
	t.Parallel()

	// Interpolated text arrives split; comparison sees merged runs.
	split := host("p", nil, text("Hello, "), text("World"))
	joined := host("p", nil, text("Hello, World"))

	assert.True(t, NodeEqual(split, joined))
	assert.True(t, NodeEqual(joined, split))
}

func TestSimplifyChildren_Idempotent(t *testing.T) {
	t.Parallel()

	children := []*tree.Node{
		text("a"), text("b"),
		host("span", nil),
		nil,
		text("c"),
	}
	once := SimplifyChildren(children)
	twice := SimplifyChildren(once)

	assert.Len(t, once, 3)
	assert.Equal(t, "ab", once[0].Text)
	assert.Equal(t, "c", once[2].Text)
	assert.Equal(t, len(once), len(twice))
	for i := range once {
		assert.True(t, NodeEqual(once[i], twice[i]))
	}
}

func TestContainsChildrenSubArray(t *testing.T) {
	t.Parallel()

	node := host("ul", nil,
		host("li", nil, text("a")),
		host("li", nil, text("b")),
		host("li", nil, text("c")),
	)

	run := []*tree.Node{host("li", nil, text("b")), host("li", nil, text("c"))}
	assert.True(t, ContainsChildrenSubArray(NodeEqual, node, run))

	gap := []*tree.Node{host("li", nil, text("a")), host("li", nil, text("c"))}
	assert.False(t, ContainsChildrenSubArray(NodeEqual, node, gap), "run must be contiguous")

	assert.True(t, ContainsChildrenSubArray(NodeEqual, node, nil), "empty run is trivially contained")
	assert.False(t, ContainsChildrenSubArray(NodeEqual, nil, run))
}
