// Package tree defines the abstracted rendered component tree shared by every
// layer of probe: the Node model produced by renderer adapters, the Element
// descriptions callers construct, and the pre-order traversal primitives.
//
// A tree is a forward-owning structure: each Node owns its Children slice,
// while Parent is a non-owning back-reference used only for upward
// navigation. Adapters rebuild the whole graph on every re-render; nodes are
// never mutated in place.
package tree
