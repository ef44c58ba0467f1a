package tree

import (
	"reflect"
	"runtime"
	"strings"
)

// Marker identifies a framework-special construct (fragments, portals) whose
// name takes precedence over every other naming source.
type Marker string

// Fragment groups children without introducing a host wrapper.
const Fragment Marker = "Fragment"

// DisplayNamer lets a composite type reference provide an explicit name for
// debug output and bare-identifier selectors.
type DisplayNamer interface {
	DisplayName() string
}

// TypeName resolves a human-readable name for a node type. Precedence:
// framework marker name, explicit display name, the function or named type's
// own name, then a literal fallback ("Component" for anonymous composites,
// "unknown" for nil).
func TypeName(t any) string {
	switch v := t.(type) {
	case nil:
		return "unknown"
	case Marker:
		return string(v)
	case string:
		return v
	}
	if d, ok := t.(DisplayNamer); ok {
		if name := d.DisplayName(); name != "" {
			return name
		}
	}
	rt := reflect.TypeOf(t)
	if rt.Kind() == reflect.Func {
		if name := funcName(t); name != "" {
			return name
		}
		return "Component"
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if name := rt.Name(); name != "" {
		return name
	}
	return "Component"
}

// funcName extracts the bare name of a function value via the runtime,
// stripping the package path and method-value suffix.
func funcName(fn any) string {
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	// Anonymous functions look like "glob..func1"; not a useful name.
	if strings.Contains(name, "func") && strings.Contains(name, ".") {
		return ""
	}
	return name
}

// TypeEqual reports whether two type references denote the same identity.
// Comparable values compare with ==; function references compare by code
// pointer.
func TypeEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if !ta.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}
