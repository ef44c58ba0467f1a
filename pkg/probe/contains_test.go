package probe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-probe/probe/pkg/probe"
	"github.com/go-probe/probe/pkg/tree"
)

func mountBox(t *testing.T) *probe.Wrapper {
	t.Helper()
	return mountElement(t, tree.New("div", map[string]any{"className": "box"},
		tree.New("span", nil, "Hi"),
		tree.New("span", nil, "Bye"),
		tree.New("em", map[string]any{"className": "x", "title": "t"}, "!"),
	), nil)
}

func TestContains(t *testing.T) {
	t.Parallel()
	w := mountBox(t)

	assert.True(t, w.Contains(tree.New("span", nil, "Hi")))
	assert.True(t, w.Contains(tree.New("span", nil, "Bye")))
	assert.False(t, w.Contains(tree.New("span", nil, "Nope")))

	// Exact equality: extra or missing props reject the match.
	assert.False(t, w.Contains(tree.New("span", map[string]any{"className": "z"}, "Hi")))
	assert.False(t, w.Contains(tree.New("em", nil, "!")))

	// The whole mounted tree contains itself.
	assert.True(t, w.Contains(tree.New("div", map[string]any{"className": "box"},
		tree.New("span", nil, "Hi"),
		tree.New("span", nil, "Bye"),
		tree.New("em", map[string]any{"className": "x", "title": "t"}, "!"),
	)))
}

func TestContainsChildrenRun(t *testing.T) {
	t.Parallel()
	w := mountBox(t)

	// Multiple elements must appear as a contiguous, ordered children run.
	assert.True(t, w.Contains(
		tree.New("span", nil, "Hi"),
		tree.New("span", nil, "Bye"),
	))
	assert.False(t, w.Contains(
		tree.New("span", nil, "Hi"),
		tree.New("em", map[string]any{"className": "x", "title": "t"}, "!"),
	))
	assert.False(t, w.Contains(
		tree.New("span", nil, "Bye"),
		tree.New("span", nil, "Hi"),
	))
}

func TestContainsMatchingElement(t *testing.T) {
	t.Parallel()
	w := mountBox(t)

	// The expectation may omit props and children the node carries.
	assert.True(t, w.ContainsMatchingElement(tree.New("em", map[string]any{"title": "t"})))
	assert.True(t, w.ContainsMatchingElement(tree.New("em", nil)))

	// Conflicting props still reject.
	assert.False(t, w.ContainsMatchingElement(tree.New("em", map[string]any{"title": "q"})))

	// Nil-valued expected props count as absent.
	assert.True(t, w.ContainsMatchingElement(
		tree.New("em", map[string]any{"title": "t", "hidden": nil})))
}

func TestContainsAnyMatchingElements(t *testing.T) {
	t.Parallel()
	w := mountBox(t)

	assert.True(t, w.ContainsAnyMatchingElements([]*tree.Element{
		tree.New("section", nil),
		tree.New("em", map[string]any{"title": "t"}),
	}))
	assert.False(t, w.ContainsAnyMatchingElements([]*tree.Element{
		tree.New("section", nil),
		tree.New("article", nil),
	}))
}

func TestContainsAllMatchingElements(t *testing.T) {
	t.Parallel()
	w := mountBox(t)

	assert.True(t, w.ContainsAllMatchingElements([]*tree.Element{
		tree.New("span", nil, "Hi"),
		tree.New("em", map[string]any{"title": "t"}),
	}))
	assert.False(t, w.ContainsAllMatchingElements([]*tree.Element{
		tree.New("span", nil, "Hi"),
		tree.New("section", nil),
	}))
}

func TestContainsArgumentChecks(t *testing.T) {
	t.Parallel()
	w := mountBox(t)

	argErr := panicsWith[*probe.InvalidArgumentError](t, func() {
		w.ContainsAllMatchingElements(nil)
	})
	assert.Contains(t, argErr.Reason, "at least one")

	panicsWith[*probe.InvalidArgumentError](t, func() {
		w.ContainsAnyMatchingElements([]*tree.Element{})
	})
	panicsWith[*probe.InvalidArgumentError](t, func() {
		w.Contains(tree.New("div", nil), nil)
	})
}

func TestContainsThroughComponents(t *testing.T) {
	t.Parallel()
	w := mountCounter(t, 5)

	assert.True(t, w.Contains(tree.New("span", map[string]any{"className": "value"}, "5")))
	assert.False(t, w.Contains(tree.New("span", map[string]any{"className": "value"}, "6")))
	assert.True(t, w.ContainsMatchingElement(tree.New("span", map[string]any{"className": "value"})))
	require.NoError(t, w.SetState(map[string]any{"count": 6}))
	assert.True(t, w.Contains(tree.New("span", map[string]any{"className": "value"}, "6")))
}
