// Package dump renders node trees as pretty pseudo-markup for debug output.
package dump

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/go-probe/probe/pkg/tree"
)

// Options controls debug rendering.
type Options struct {
	// IgnoreProps suppresses inline prop serialization.
	IgnoreProps bool
	// Verbose deep-inspects object-valued props instead of the opaque
	// placeholder.
	Verbose bool
}

// spewConf inspects prop values in verbose mode. Method stringers are
// disabled so output reflects structure, not presentation.
var spewConf = &spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Nodes renders each node and joins the results with blank lines.
func Nodes(nodes []*tree.Node, o Options) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if s := Node(n, 2, o); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Node renders a single node as pseudo-markup. indent is the number of
// spaces per nesting level. Text leaves render as escaped text with no
// tags; function leaves render as a fixed placeholder; nil renders empty.
func Node(n *tree.Node, indent int, o Options) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case tree.KindText:
		return escaper.Replace(n.Text)
	case tree.KindFunc:
		return "[function]"
	}

	name := tree.TypeName(n.Type)
	props := ""
	if !o.IgnoreProps {
		props = propsString(n.Props, o)
	}

	var children []string
	for _, c := range n.Children {
		if s := Node(c, indent, o); s != "" {
			children = append(children, s)
		}
	}
	if len(children) == 0 {
		return fmt.Sprintf("<%s%s />", name, props)
	}
	inner := indentLines(compactBlankLines(strings.Join(children, "\n")), indent)
	return fmt.Sprintf("<%s%s>\n%s\n</%s>", name, props, inner, name)
}

// propsString serializes props inline in sorted key order.
func propsString(props map[string]any, o Options) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		v := props[k]
		if v == nil {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(propValue(v, o))
	}
	return sb.String()
}

func propValue(v any, o Options) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case bool:
		return fmt.Sprintf("{%t}", val)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprintf("{%v}", v)
	case reflect.Func:
		return "{[function]}"
	default:
		if o.Verbose {
			return fmt.Sprintf("{%+v}", spewConf.NewFormatter(v))
		}
		return "{{...}}"
	}
}

// compactBlankLines drops empty lines so nested blocks stay dense.
func compactBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func indentLines(s string, width int) string {
	pad := strings.Repeat(" ", width)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
