package testbed

import (
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"

	"github.com/go-probe/probe/pkg/probe"
	"github.com/go-probe/probe/pkg/tree"
)

// Adapter implements probe.Adapter over the testbed framework.
type Adapter struct{}

// CreateRenderer opens a new render session.
func (Adapter) CreateRenderer(opts probe.Options) probe.Renderer {
	return &Renderer{
		context: opts.Context,
		states:  make(map[string]map[string]any),
	}
}

// ElementToTree converts an element description into a detached node tree
// without rendering composites.
func (Adapter) ElementToTree(el *tree.Element) *tree.Node {
	return elementToNode(el, nil)
}

// Renderer owns one render session. The node graph is rebuilt wholesale on
// every render; component state persists across rebuilds keyed by tree
// position.
type Renderer struct {
	element *tree.Element
	context map[string]any
	root    *tree.Node
	states  map[string]map[string]any
}

// Render renders el into a fresh node graph.
func (r *Renderer) Render(el *tree.Element, context map[string]any, done func()) error {
	if el == nil {
		return fmt.Errorf("testbed: render of nil element")
	}
	r.element = el
	r.context = context
	r.rebuild()
	if done != nil {
		done()
	}
	return nil
}

// Node returns the current root node.
func (r *Renderer) Node() *tree.Node { return r.root }

// rebuild re-renders the element into a new node graph.
func (r *Renderer) rebuild() {
	if r.element == nil {
		r.root = nil
		return
	}
	r.root = r.build(r.element, nil, "0")
}

func (r *Renderer) build(el *tree.Element, parent *tree.Node, path string) *tree.Node {
	switch typ := el.Type.(type) {
	case string:
		n := &tree.Node{
			Kind:   tree.KindHost,
			Type:   typ,
			Props:  maps.Clone(el.Props),
			Key:    el.Key,
			Parent: parent,
		}
		for i, child := range el.Children {
			if cn := r.buildChild(child, n, fmt.Sprintf("%s.%d", path, i)); cn != nil {
				n.Children = append(n.Children, cn)
			}
		}
		return n

	case *Component:
		n := &tree.Node{
			Kind:   tree.KindComponent,
			Type:   typ,
			Props:  maps.Clone(el.Props),
			Key:    el.Key,
			Parent: parent,
		}
		if typ.InitialState != nil {
			if _, ok := r.states[path]; !ok {
				r.states[path] = typ.InitialState(el.Props)
			}
		}
		inst := &Instance{def: typ, renderer: r, path: path, props: el.Props, context: r.context}
		n.Instance = inst
		if rendered := typ.Render(inst); rendered != nil {
			n.Children = []*tree.Node{r.build(rendered, n, path+".0")}
		}
		return n

	case func(map[string]any) *tree.Element:
		n := &tree.Node{
			Kind:   tree.KindComponent,
			Type:   typ,
			Props:  maps.Clone(el.Props),
			Key:    el.Key,
			Parent: parent,
		}
		if rendered := typ(el.Props); rendered != nil {
			n.Children = []*tree.Node{r.build(rendered, n, path+".0")}
		}
		return n
	}
	panic(fmt.Sprintf("testbed: unsupported element type %T", el.Type))
}

func (r *Renderer) buildChild(v any, parent *tree.Node, path string) *tree.Node {
	switch c := v.(type) {
	case nil:
		return nil
	case bool:
		// Booleans render nothing, matching null/false child semantics.
		return nil
	case *tree.Element:
		return r.build(c, parent, path)
	case string:
		return &tree.Node{Kind: tree.KindText, Text: c, Value: c, Parent: parent}
	case func() *tree.Element, func(map[string]any) any:
		return &tree.Node{Kind: tree.KindFunc, Value: c, Parent: parent}
	}
	if s, ok := formatScalar(v); ok {
		return &tree.Node{Kind: tree.KindText, Text: s, Value: v, Parent: parent}
	}
	panic(fmt.Sprintf("testbed: unsupported child %T", v))
}

// elementToNode statically converts an element, leaving composites
// unrendered. Used for comparison trees.
func elementToNode(el *tree.Element, parent *tree.Node) *tree.Node {
	n := &tree.Node{
		Props:  maps.Clone(el.Props),
		Key:    el.Key,
		Parent: parent,
	}
	if tag, ok := el.Type.(string); ok {
		n.Kind = tree.KindHost
		n.Type = tag
	} else {
		n.Kind = tree.KindComponent
		n.Type = el.Type
	}
	for _, child := range el.Children {
		switch c := child.(type) {
		case nil, bool:
		case *tree.Element:
			n.Children = append(n.Children, elementToNode(c, n))
		case string:
			n.Children = append(n.Children, &tree.Node{Kind: tree.KindText, Text: c, Value: c, Parent: n})
		default:
			if s, ok := formatScalar(c); ok {
				n.Children = append(n.Children, &tree.Node{Kind: tree.KindText, Text: s, Value: c, Parent: n})
			}
		}
	}
	return n
}

func formatScalar(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), true
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", n), true
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64), true
	}
	return "", false
}

// SimulateEvent looks up an onX handler prop on n or the first descendant
// carrying one and invokes it with the payload.
func (r *Renderer) SimulateEvent(n *tree.Node, event string, payload map[string]any) error {
	if event == "" {
		return &probe.UnknownEventError{Event: event}
	}
	handlerName := "on" + strings.ToUpper(event[:1]) + event[1:]
	var handler any
	tree.Walk(n, func(c *tree.Node) bool {
		if h, ok := c.Props[handlerName]; ok && h != nil {
			handler = h
			return false
		}
		return true
	})
	switch h := handler.(type) {
	case func(map[string]any):
		h(payload)
		return nil
	case func():
		h()
		return nil
	}
	return &probe.UnknownEventError{Event: event}
}

// Unmount tears down the session, discarding the node graph and all
// component state.
func (r *Renderer) Unmount() error {
	r.root = nil
	r.element = nil
	r.states = make(map[string]map[string]any)
	return nil
}

// RenderToStaticMarkup serializes n's host projection as plain markup.
func (r *Renderer) RenderToStaticMarkup(n *tree.Node) (string, bool) {
	var sb strings.Builder
	writeMarkup(&sb, n)
	s := sb.String()
	if s == "" {
		return "", false
	}
	return s, true
}

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func writeMarkup(sb *strings.Builder, n *tree.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case tree.KindText:
		sb.WriteString(markupEscaper.Replace(n.Text))
	case tree.KindHost:
		tag := n.Type.(string)
		sb.WriteByte('<')
		sb.WriteString(tag)
		writeAttrs(sb, n.Props)
		sb.WriteByte('>')
		for _, c := range n.Children {
			writeMarkup(sb, c)
		}
		sb.WriteString("</")
		sb.WriteString(tag)
		sb.WriteByte('>')
	case tree.KindComponent:
		for _, c := range n.Children {
			writeMarkup(sb, c)
		}
	}
}

func writeAttrs(sb *strings.Builder, props map[string]any) {
	keys := make([]string, 0, len(props))
	for k := range props {
		// Event handlers have no markup representation.
		if strings.HasPrefix(k, "on") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := props[k]
		if v == nil {
			continue
		}
		name := k
		if name == "className" {
			name = "class"
		}
		switch val := v.(type) {
		case string:
			fmt.Fprintf(sb, " %s=%q", name, val)
		case bool:
			if val {
				fmt.Fprintf(sb, " %s", name)
			}
		default:
			if s, ok := formatScalar(v); ok {
				fmt.Fprintf(sb, " %s=%q", name, s)
			}
		}
	}
}
