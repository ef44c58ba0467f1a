// Package probe is a query-and-assertion layer over rendered component
// trees. A framework adapter converts its renderer's internals into the
// tree model of [github.com/go-probe/probe/pkg/tree]; this package mounts
// an element through that adapter and exposes a chainable wrapper for
// locating, inspecting, and manipulating the rendered nodes.
//
// # Quick start
//
// Mount an element and make assertions:
//
//	w, err := probe.Mount(el, probe.Options{Adapter: myAdapter})
//	if err != nil {
//	    t.Fatal(err)
//	}
//
//	// Locate nodes with selectors
//	buttons := w.Find("button.primary")
//	if buttons.Length() != 2 {
//	    t.Errorf("want 2 primary buttons, got %d", buttons.Length())
//	}
//
//	// Drive state and interactions
//	if err := w.SetProps(map[string]any{"title": "Hi"}); err != nil {
//	    t.Fatal(err)
//	}
//	if err := buttons.First().Simulate("click", nil); err != nil {
//	    t.Fatal(err)
//	}
//
// Every query method derives a new wrapper; node sequences are captured at
// call time and go stale, without being refreshed, when a mutation
// re-renders the tree. Mutation and lifecycle methods are root-only and
// return errors; queries and accessors panic with the typed errors of this
// package on misuse.
//
// The model is single-threaded and synchronous: every render, mutation,
// and simulated interaction runs to completion before its call returns,
// and exactly one logical caller drives a given root at a time.
package probe
