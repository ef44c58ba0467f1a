package probe

import (
	"maps"

	"github.com/go-probe/probe/pkg/dump"
	"github.com/go-probe/probe/pkg/selector"
	"github.com/go-probe/probe/pkg/snapshot"
	"github.com/go-probe/probe/pkg/tree"
)

// root is the opaque token owning one render session. It is created once
// per Mount call and shared by every wrapper derived from that mount. The
// ref node is the parent assigned to each rendered root node, so root-ness
// stays a derived property of parent linkage rather than stored state.
type root struct {
	adapter  Adapter
	renderer Renderer
	element  *tree.Element
	context  map[string]any
	node     *tree.Node
	ref      *tree.Node
}

// refresh re-reads the renderer's current node graph and re-attaches the
// root parent link.
func (rt *root) refresh() {
	rt.node = rt.renderer.Node()
	if rt.node != nil {
		rt.node.Parent = rt.ref
	}
}

// Wrapper is a stateful query object bound to one root render session.
// Every query method derives a new wrapper over a new node sequence sharing
// the same root token; a wrapper's node sequence is captured at call time
// and goes stale, without being erased, when the underlying tree
// re-renders.
//
// Query and accessor methods are chainable and panic with the typed errors
// of this package on misuse (wrong cardinality, invalid selector, non-root
// mutation target); mutation, lifecycle, and interaction methods return
// errors.
type Wrapper struct {
	nodes []*tree.Node
	root  *root
}

// Mount renders el through the adapter in opts and returns the root
// wrapper owning the session.
func Mount(el *tree.Element, opts Options) (*Wrapper, error) {
	if el == nil {
		return nil, &InvalidArgumentError{Op: "Mount", Reason: "nil element"}
	}
	if opts.Adapter == nil {
		return nil, &InvalidArgumentError{Op: "Mount", Reason: "no adapter configured"}
	}
	rt := &root{
		adapter:  opts.Adapter,
		renderer: opts.Adapter.CreateRenderer(opts),
		element:  el,
		context:  opts.Context,
		ref:      &tree.Node{Kind: tree.KindComponent},
	}
	if err := rt.renderer.Render(el, opts.Context, nil); err != nil {
		return nil, err
	}
	rt.refresh()
	return &Wrapper{nodes: nodesOf(rt.node), root: rt}, nil
}

func nodesOf(n *tree.Node) []*tree.Node {
	if n == nil {
		return nil
	}
	return []*tree.Node{n}
}

// derive builds a new wrapper over nodes, sharing w's root token.
func (w *Wrapper) derive(nodes []*tree.Node) *Wrapper {
	return &Wrapper{nodes: nodes, root: w.root}
}

func (w *Wrapper) wrapNode(n *tree.Node) *Wrapper {
	return w.derive([]*tree.Node{n})
}

// single returns the wrapper's sole node, panicking with *SingleNodeError
// when the length is not exactly 1.
func (w *Wrapper) single(op string) *tree.Node {
	if len(w.nodes) != 1 {
		panic(&SingleNodeError{Op: op, Count: len(w.nodes)})
	}
	return w.nodes[0]
}

// compile compiles sel, panicking with *InvalidSelectorError on
// unsupported shapes.
func (w *Wrapper) compile(sel any) selector.Predicate {
	pred, err := selector.Compile(sel)
	if err != nil {
		panic(err)
	}
	return pred
}

// IsRoot reports whether w wraps exactly the current render root: a
// wrapper is root iff its sole node's parent resolves to the root token.
// Recomputed from parent linkage on every call.
func (w *Wrapper) IsRoot() bool {
	return w.root != nil && len(w.nodes) == 1 && w.nodes[0] != nil && w.nodes[0].Parent == w.root.ref
}

// Length returns the number of wrapped nodes.
func (w *Wrapper) Length() int {
	return len(w.nodes)
}

// IsEmpty reports whether the wrapper holds no nodes.
func (w *Wrapper) IsEmpty() bool {
	return len(w.nodes) == 0
}

// Nodes returns a copy of the wrapped node sequence.
func (w *Wrapper) Nodes() []*tree.Node {
	out := make([]*tree.Node, len(w.nodes))
	copy(out, w.nodes)
	return out
}

// Node returns the wrapper's sole node.
func (w *Wrapper) Node() *tree.Node {
	return w.single("Node")
}

// GetNodes is a deprecated alias of Nodes.
func (w *Wrapper) GetNodes() []*tree.Node {
	deprecated("GetNodes", "Nodes")
	return w.Nodes()
}

// GetNode is a deprecated alias of Node.
func (w *Wrapper) GetNode() *tree.Node {
	deprecated("GetNode", "Node")
	return w.Node()
}

// --- Positional ---

// At wraps the node at index i. Out-of-range indices produce an empty
// wrapper.
func (w *Wrapper) At(i int) *Wrapper {
	if i < 0 || i >= len(w.nodes) {
		return w.derive(nil)
	}
	return w.wrapNode(w.nodes[i])
}

// First wraps the first node.
func (w *Wrapper) First() *Wrapper {
	return w.At(0)
}

// Last wraps the last node.
func (w *Wrapper) Last() *Wrapper {
	return w.At(len(w.nodes) - 1)
}

// Slice wraps a subrange of nodes. Negative bounds count from the end;
// omitting end slices through the final node.
func (w *Wrapper) Slice(begin int, end ...int) *Wrapper {
	n := len(w.nodes)
	b := clampIndex(begin, n)
	e := n
	if len(end) > 0 {
		e = clampIndex(end[0], n)
	}
	if b >= e {
		return w.derive(nil)
	}
	out := make([]*tree.Node, e-b)
	copy(out, w.nodes[b:e])
	return w.derive(out)
}

func clampIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

// --- Predicate-based ---

// Filter retains the wrapped nodes matching sel.
func (w *Wrapper) Filter(sel any) *Wrapper {
	pred := w.compile(sel)
	return w.filterNodes(func(n *tree.Node) bool { return pred(n) })
}

// Not retains the wrapped nodes not matching sel.
func (w *Wrapper) Not(sel any) *Wrapper {
	pred := w.compile(sel)
	return w.filterNodes(func(n *tree.Node) bool { return !pred(n) })
}

// FilterWhere retains the nodes for which fn, invoked with a single-node
// wrapper, returns true.
func (w *Wrapper) FilterWhere(fn func(*Wrapper) bool) *Wrapper {
	return w.filterNodes(func(n *tree.Node) bool { return fn(w.wrapNode(n)) })
}

func (w *Wrapper) filterNodes(pred func(*tree.Node) bool) *Wrapper {
	var out []*tree.Node
	for _, n := range w.nodes {
		if pred(n) {
			out = append(out, n)
		}
	}
	return w.derive(out)
}

// Is reports whether the wrapper's sole node matches sel.
func (w *Wrapper) Is(sel any) bool {
	pred := w.compile(sel)
	return pred(w.single("Is"))
}

// --- Descendant search ---

// Find collects, in encounter order, every node in the wrapped nodes'
// subtrees (the nodes themselves included) matching sel.
func (w *Wrapper) Find(sel any) *Wrapper {
	pred := w.compile(sel)
	return w.findNodes(func(n *tree.Node) bool { return pred(n) })
}

// FindWhere is Find with a raw predicate invoked on single-node wrappers.
func (w *Wrapper) FindWhere(fn func(*Wrapper) bool) *Wrapper {
	return w.findNodes(func(n *tree.Node) bool { return fn(w.wrapNode(n)) })
}

func (w *Wrapper) findNodes(pred func(*tree.Node) bool) *Wrapper {
	var out []*tree.Node
	for _, n := range w.nodes {
		out = append(out, tree.Filter(n, pred)...)
	}
	return w.derive(out)
}

// --- Tree navigation ---

// Children wraps the element children of every wrapped node, flattened in
// order. Text and function leaves are not wrapped. An optional selector
// filters the result.
func (w *Wrapper) Children(sel ...any) *Wrapper {
	var out []*tree.Node
	for _, n := range w.nodes {
		for _, c := range n.Children {
			if c == nil || c.Kind == tree.KindText || c.Kind == tree.KindFunc {
				continue
			}
			out = append(out, c)
		}
	}
	res := w.derive(out)
	if len(sel) > 0 {
		res = res.Filter(sel[0])
	}
	return res
}

// Parent wraps the distinct immediate parents of the wrapped nodes. The
// render root has no parent.
func (w *Wrapper) Parent() *Wrapper {
	var out []*tree.Node
	seen := make(map[*tree.Node]bool)
	for _, n := range w.nodes {
		p := n.Parent
		if p == nil || p == w.rootRef() || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return w.derive(out)
}

// Parents wraps the sole node's ancestor chain from the immediate parent
// up to the render root, excluding the node itself. An optional selector
// filters the result.
func (w *Wrapper) Parents(sel ...any) *Wrapper {
	n := w.single("Parents")
	var out []*tree.Node
	for p := n.Parent; p != nil && p != w.rootRef(); p = p.Parent {
		out = append(out, p)
	}
	res := w.derive(out)
	if len(sel) > 0 {
		res = res.Filter(sel[0])
	}
	return res
}

// Closest wraps the sole node itself when it matches sel, otherwise the
// nearest matching ancestor, otherwise nothing.
func (w *Wrapper) Closest(sel any) *Wrapper {
	pred := w.compile(sel)
	n := w.single("Closest")
	for c := n; c != nil && c != w.rootRef(); c = c.Parent {
		if pred(c) {
			return w.wrapNode(c)
		}
	}
	return w.derive(nil)
}

func (w *Wrapper) rootRef() *tree.Node {
	if w.root == nil {
		return nil
	}
	return w.root.ref
}

// --- Single-node accessors ---

// Props returns a copy of the sole node's props.
func (w *Wrapper) Props() map[string]any {
	return maps.Clone(w.single("Props").Props)
}

// Prop returns the named prop of the sole node.
func (w *Wrapper) Prop(name string) any {
	return w.single("Prop").Prop(name)
}

// Key returns the sole node's key.
func (w *Wrapper) Key() any {
	return w.single("Key").Key
}

// Type returns the sole node's type identity.
func (w *Wrapper) Type() any {
	return w.single("Type").Type
}

// Name returns the resolved type name of the sole node.
func (w *Wrapper) Name() string {
	return tree.TypeName(w.single("Name").Type)
}

// Instance returns the sole node's live component handle, or nil for
// hosts.
func (w *Wrapper) Instance() any {
	return w.single("Instance").Instance
}

// State returns a copy of the root component's state. Root-only.
func (w *Wrapper) State() map[string]any {
	return maps.Clone(w.stateful("State").State())
}

// StateValue returns one entry of the root component's state. Root-only.
func (w *Wrapper) StateValue(name string) any {
	return w.stateful("StateValue").State()[name]
}

func (w *Wrapper) stateful(op string) Stateful {
	n := w.single(op)
	if !w.IsRoot() {
		panic(&RootRequiredError{Op: op})
	}
	st, ok := n.Instance.(Stateful)
	if !ok {
		panic(&InvalidArgumentError{Op: op, Reason: "root component is stateless"})
	}
	return st
}

// Context returns a copy of the root component's rendering context.
// Root-only.
func (w *Wrapper) Context() map[string]any {
	return maps.Clone(w.contextual("Context").Context())
}

// ContextValue returns one entry of the root component's rendering
// context. Root-only.
func (w *Wrapper) ContextValue(name string) any {
	return w.contextual("ContextValue").Context()[name]
}

func (w *Wrapper) contextual(op string) ContextAware {
	n := w.single(op)
	if !w.IsRoot() {
		panic(&RootRequiredError{Op: op})
	}
	ca, ok := n.Instance.(ContextAware)
	if !ok {
		panic(&InvalidArgumentError{Op: op, Reason: "root component exposes no context"})
	}
	return ca
}

// --- Presentation ---

// Debug renders the wrapped nodes as pretty pseudo-markup.
func (w *Wrapper) Debug(opts ...dump.Options) string {
	var o dump.Options
	if len(opts) > 0 {
		o = opts[0]
	}
	return dump.Nodes(w.nodes, o)
}

// HTML returns static markup for the sole node's subtree. ok is false, not
// an empty string, when nothing renders.
func (w *Wrapper) HTML() (markup string, ok bool) {
	return w.root.renderer.RenderToStaticMarkup(w.single("HTML"))
}

// Text concatenates the rendered text of the sole node's subtree.
func (w *Wrapper) Text() string {
	var sb []byte
	tree.Walk(w.single("Text"), func(n *tree.Node) bool {
		if n.Kind == tree.KindText {
			sb = append(sb, n.Text...)
			return false
		}
		return true
	})
	return string(sb)
}

// Render returns the host-only projection of the sole node's subtree as a
// detached tree, suitable for markup-level inspection with the same query
// primitives. Returns nil when nothing renders.
func (w *Wrapper) Render() *tree.Node {
	hosts := hostProjection(w.single("Render"))
	if len(hosts) == 0 {
		return nil
	}
	return hosts[0]
}

// Snapshot captures the wrapped nodes' framework-agnostic representation
// including key metadata; SnapshotAnonymous omits keys. Both require a
// single node.
func (w *Wrapper) Snapshot() *snapshot.Tree {
	return snapshot.Capture(w.single("Snapshot"))
}

// SnapshotAnonymous is Snapshot without key metadata.
func (w *Wrapper) SnapshotAnonymous() *snapshot.Tree {
	return snapshot.CaptureAnonymous(w.single("SnapshotAnonymous"))
}

// hostProjection clones n's subtree keeping only host and text nodes;
// composite nodes are replaced by their host output, hoisted in place.
func hostProjection(n *tree.Node) []*tree.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case tree.KindText:
		return []*tree.Node{{Kind: tree.KindText, Text: n.Text, Value: n.Value}}
	case tree.KindHost:
		clone := &tree.Node{
			Kind:  tree.KindHost,
			Type:  n.Type,
			Props: maps.Clone(n.Props),
			Key:   n.Key,
		}
		for _, c := range n.Children {
			for _, pc := range hostProjection(c) {
				pc.Parent = clone
				clone.Children = append(clone.Children, pc)
			}
		}
		return []*tree.Node{clone}
	case tree.KindComponent:
		var out []*tree.Node
		for _, c := range n.Children {
			out = append(out, hostProjection(c)...)
		}
		return out
	}
	return nil
}

// --- Combinators ---

// Map applies fn to each node wrapped singly, returning the results in
// order.
func (w *Wrapper) Map(fn func(*Wrapper, int) any) []any {
	out := make([]any, len(w.nodes))
	for i, n := range w.nodes {
		out[i] = fn(w.wrapNode(n), i)
	}
	return out
}

// ForEach applies fn to each node wrapped singly and returns w for
// chaining.
func (w *Wrapper) ForEach(fn func(*Wrapper, int)) *Wrapper {
	for i, n := range w.nodes {
		fn(w.wrapNode(n), i)
	}
	return w
}

// Reduce folds fn over the nodes left to right, each wrapped singly.
func (w *Wrapper) Reduce(fn func(acc any, node *Wrapper, i int) any, initial any) any {
	acc := initial
	for i, n := range w.nodes {
		acc = fn(acc, w.wrapNode(n), i)
	}
	return acc
}

// ReduceRight folds fn over the nodes right to left, each wrapped singly.
func (w *Wrapper) ReduceRight(fn func(acc any, node *Wrapper, i int) any, initial any) any {
	acc := initial
	for i := len(w.nodes) - 1; i >= 0; i-- {
		acc = fn(acc, w.wrapNode(w.nodes[i]), i)
	}
	return acc
}

// Some reports whether any wrapped node matches sel.
func (w *Wrapper) Some(sel any) bool {
	pred := w.compile(sel)
	for _, n := range w.nodes {
		if pred(n) {
			return true
		}
	}
	return false
}

// SomeWhere reports whether fn holds for any node wrapped singly.
func (w *Wrapper) SomeWhere(fn func(*Wrapper, int) bool) bool {
	for i, n := range w.nodes {
		if fn(w.wrapNode(n), i) {
			return true
		}
	}
	return false
}

// Every reports whether all wrapped nodes match sel. Vacuously true when
// empty.
func (w *Wrapper) Every(sel any) bool {
	pred := w.compile(sel)
	for _, n := range w.nodes {
		if !pred(n) {
			return false
		}
	}
	return true
}

// EveryWhere reports whether fn holds for every node wrapped singly.
func (w *Wrapper) EveryWhere(fn func(*Wrapper, int) bool) bool {
	for i, n := range w.nodes {
		if !fn(w.wrapNode(n), i) {
			return false
		}
	}
	return true
}

// Tap invokes fn with w and returns w, for inspecting a chain in flight.
func (w *Wrapper) Tap(fn func(*Wrapper)) *Wrapper {
	fn(w)
	return w
}
