package probe

import (
	"github.com/go-probe/probe/pkg/tree"
)

// Renderer drives one render session. Adapters implement it on top of a
// concrete framework's test renderer; every call is synchronous and runs to
// completion before returning.
type Renderer interface {
	// Render renders el into a fresh node graph, replacing any previous
	// graph wholesale. done, when non-nil, runs after the render completes.
	Render(el *tree.Element, context map[string]any, done func()) error
	// Node returns the current root node, or nil when nothing is rendered.
	Node() *tree.Node
	// SimulateEvent dispatches the named interaction against a node.
	// Unsupported events surface *UnknownEventError.
	SimulateEvent(n *tree.Node, event string, payload map[string]any) error
	// Unmount tears down the session.
	Unmount() error
	// RenderToStaticMarkup returns static markup for n's subtree. ok is
	// false when the subtree renders nothing.
	RenderToStaticMarkup(n *tree.Node) (markup string, ok bool)
}

// Adapter translates one rendering framework's internals into the tree
// model. There is no global adapter registry; the adapter travels in the
// Options value passed to Mount.
type Adapter interface {
	// CreateRenderer opens a new render session.
	CreateRenderer(opts Options) Renderer
	// ElementToTree converts an element description into a detached node
	// tree without rendering composites, for structural comparison.
	ElementToTree(el *tree.Element) *tree.Node
}

// Options configures a mount. The zero value is not usable: Adapter is
// required.
type Options struct {
	// Adapter is the framework adapter to mount through.
	Adapter Adapter
	// Context is the initial rendering context.
	Context map[string]any
}

// Stateful is implemented by live component instances whose state the
// wrapper can read and merge into. SetState re-renders synchronously and
// then invokes done.
type Stateful interface {
	State() map[string]any
	SetState(state map[string]any, done func())
}

// ContextAware is implemented by live component instances exposing their
// rendering context.
type ContextAware interface {
	Context() map[string]any
}
