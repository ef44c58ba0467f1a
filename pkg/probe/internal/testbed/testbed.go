// Package testbed provides an in-memory component framework and adapter
// used by probe's own tests. It renders Element descriptions synchronously
// into node graphs, preserving component state across re-renders by tree
// position.
package testbed

import (
	"maps"

	"github.com/go-probe/probe/pkg/tree"
)

// Component defines a composite component: an optional initial-state
// function and a render function. Components are referenced by pointer, so
// each definition is its own type identity.
type Component struct {
	Name         string
	InitialState func(props map[string]any) map[string]any
	Render       func(self *Instance) *tree.Element
}

// DisplayName implements tree.DisplayNamer.
func (c *Component) DisplayName() string { return c.Name }

// Instance is the live handle attached to rendered composite nodes. It
// implements probe.Stateful and probe.ContextAware.
type Instance struct {
	def      *Component
	renderer *Renderer
	path     string
	props    map[string]any
	context  map[string]any
}

// Props returns the props the instance was rendered with.
func (i *Instance) Props() map[string]any { return i.props }

// State returns the instance's current state, nil for stateless
// components.
func (i *Instance) State() map[string]any {
	return i.renderer.states[i.path]
}

// SetState merges state into the instance's state and synchronously
// re-renders the whole tree, then invokes done.
func (i *Instance) SetState(state map[string]any, done func()) {
	st := i.renderer.states[i.path]
	if st == nil {
		st = make(map[string]any, len(state))
		i.renderer.states[i.path] = st
	}
	maps.Copy(st, state)
	i.renderer.rebuild()
	if done != nil {
		done()
	}
}

// Context returns the rendering context the instance was rendered under.
func (i *Instance) Context() map[string]any { return i.context }
