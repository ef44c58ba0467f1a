package probe

import (
	"maps"

	"dario.cat/mergo"

	"github.com/go-probe/probe/pkg/tree"
)

// SetProps merges props into the root element's props and re-renders
// synchronously, invoking cb on completion. Root-only.
func (w *Wrapper) SetProps(props map[string]any, cb ...func()) error {
	if !w.IsRoot() {
		return &RootRequiredError{Op: "SetProps"}
	}
	done, err := w.mutationCallback("SetProps", cb)
	if err != nil {
		return err
	}
	merged, err := mergeMaps(w.root.element.Props, props)
	if err != nil {
		return err
	}
	el := *w.root.element
	el.Props = merged
	w.root.element = &el
	return w.rerender(done)
}

// SetState merges state into the root component's state and re-renders
// synchronously, invoking cb on completion. Root-only; the root component
// must be stateful.
func (w *Wrapper) SetState(state map[string]any, cb ...func()) error {
	if !w.IsRoot() {
		return &RootRequiredError{Op: "SetState"}
	}
	done, err := w.mutationCallback("SetState", cb)
	if err != nil {
		return err
	}
	st, ok := w.root.node.Instance.(Stateful)
	if !ok {
		return &InvalidArgumentError{Op: "SetState", Reason: "root component is stateless"}
	}
	merged, err := mergeMaps(st.State(), state)
	if err != nil {
		return err
	}
	st.SetState(merged, nil)
	w.refresh()
	if done != nil {
		done()
	}
	return nil
}

// SetContext merges ctx into the mount context and re-renders
// synchronously. Root-only.
func (w *Wrapper) SetContext(ctx map[string]any) error {
	if !w.IsRoot() {
		return &RootRequiredError{Op: "SetContext"}
	}
	merged, err := mergeMaps(w.root.context, ctx)
	if err != nil {
		return err
	}
	w.root.context = merged
	return w.rerender(nil)
}

// Update forces a synchronous re-render of the root element without prop
// changes and refreshes w's node sequence. Root-only.
func (w *Wrapper) Update() error {
	if !w.IsRoot() {
		return &RootRequiredError{Op: "Update"}
	}
	return w.rerender(nil)
}

// Mount re-renders the original root element fresh, including after an
// Unmount. Root-only.
func (w *Wrapper) Mount() error {
	unmounted := w.root != nil && w.root.node == nil && len(w.nodes) == 0
	if !w.IsRoot() && !unmounted {
		return &RootRequiredError{Op: "Mount"}
	}
	w.root.renderer = w.root.adapter.CreateRenderer(Options{
		Adapter: w.root.adapter,
		Context: w.root.context,
	})
	return w.rerender(nil)
}

// Unmount tears down the render session. Root-only. Behavior of further
// root-only operations on an unmounted wrapper is unspecified.
func (w *Wrapper) Unmount() error {
	if !w.IsRoot() {
		return &RootRequiredError{Op: "Unmount"}
	}
	if err := w.root.renderer.Unmount(); err != nil {
		return err
	}
	w.root.node = nil
	w.nodes = nil
	return nil
}

// Simulate dispatches the named interaction against the sole node,
// resolving the nearest descendant exposing a live component handle as the
// dispatch target. Unsupported events surface *UnknownEventError.
func (w *Wrapper) Simulate(event string, payload ...map[string]any) error {
	n := w.single("Simulate")
	var pl map[string]any
	if len(payload) > 0 {
		pl = payload[0]
	}
	target := n
	tree.Walk(n, func(c *tree.Node) bool {
		if c.Instance != nil {
			target = c
			return false
		}
		return true
	})
	if err := w.root.renderer.SimulateEvent(target, event, pl); err != nil {
		return err
	}
	// Handlers may have re-rendered; re-read the root token so root
	// wrappers observe the new graph on their next refresh.
	w.root.refresh()
	if w.IsRoot() {
		w.nodes = nodesOf(w.root.node)
	}
	return nil
}

// rerender renders the current root element and refreshes w's nodes.
func (w *Wrapper) rerender(done func()) error {
	if err := w.root.renderer.Render(w.root.element, w.root.context, nil); err != nil {
		return err
	}
	w.refresh()
	if done != nil {
		done()
	}
	return nil
}

// refresh re-reads the root token's node graph into this wrapper. Only
// root wrappers self-refresh; derived wrappers keep their captured
// sequence.
func (w *Wrapper) refresh() {
	w.root.refresh()
	w.nodes = nodesOf(w.root.node)
}

// mutationCallback validates the optional completion callback.
func (w *Wrapper) mutationCallback(op string, cb []func()) (func(), error) {
	switch len(cb) {
	case 0:
		return nil, nil
	case 1:
		if cb[0] == nil {
			return nil, &InvalidArgumentError{Op: op, Reason: "callback is not callable"}
		}
		return cb[0], nil
	default:
		return nil, &InvalidArgumentError{Op: op, Reason: "expected at most one callback"}
	}
}

// mergeMaps merges src over a copy of dst, never mutating either input.
func mergeMaps(dst, src map[string]any) (map[string]any, error) {
	merged := make(map[string]any, len(dst)+len(src))
	maps.Copy(merged, dst)
	if err := mergo.Merge(&merged, src, mergo.WithOverride); err != nil {
		return nil, err
	}
	return merged, nil
}
