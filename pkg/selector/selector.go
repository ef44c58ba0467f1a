// Package selector compiles selector values into node predicates.
//
// Four selector shapes are accepted by [Compile]: a predicate function used
// as-is, a string in the CSS-like mini-language, a props map matched as a
// subset under deep equality, and a composite type reference matched by
// identity. Any other shape yields *[InvalidSelectorError].
//
// The string language supports bare identifiers (host tag or composite
// display name), dot-prefixed class tokens matched against the className
// prop, and bracketed attribute tokens with an optional value:
//
//	"button"                 host tag or display name
//	".primary"               className word
//	"[disabled]"             prop present
//	"[title=\"Save\"]"       prop equality
//	"button.primary[n=3]"    all criteria must hold
package selector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-probe/probe/pkg/tree"
)

// Predicate decides whether a node matches a selector.
type Predicate func(*tree.Node) bool

// InvalidSelectorError reports a selector value of an unsupported shape or a
// string selector that does not parse.
type InvalidSelectorError struct {
	// Selector is the offending value.
	Selector any
	// Reason describes the parse failure for string selectors.
	Reason string
}

func (e *InvalidSelectorError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid selector %q: %s", e.Selector, e.Reason)
	}
	return fmt.Sprintf("expected a selector string, props map, type reference, or predicate function, got %T", e.Selector)
}

// Compile turns a selector value into a node predicate, dispatching on the
// selector's shape.
func Compile(sel any) (Predicate, error) {
	switch s := sel.(type) {
	case Predicate:
		return s, nil
	case func(*tree.Node) bool:
		return s, nil
	case string:
		return compileString(s)
	case map[string]any:
		return propsSubset(s), nil
	case nil:
		return nil, &InvalidSelectorError{Selector: sel}
	}
	rt := reflect.TypeOf(sel)
	if rt.Kind() == reflect.Func || rt.Comparable() {
		return typeReference(sel), nil
	}
	return nil, &InvalidSelectorError{Selector: sel}
}

// typeReference matches nodes whose type identity equals ref.
func typeReference(ref any) Predicate {
	return func(n *tree.Node) bool {
		if n == nil || n.Kind == tree.KindText || n.Kind == tree.KindFunc {
			return false
		}
		return tree.TypeEqual(n.Type, ref)
	}
}

// propsSubset matches nodes carrying every key/value of want, with deep
// equality for object and array values.
func propsSubset(want map[string]any) Predicate {
	return func(n *tree.Node) bool {
		if n == nil {
			return false
		}
		for k, v := range want {
			got, ok := n.Props[k]
			if !ok || !equalValues(v, got) {
				return false
			}
		}
		return true
	}
}

// equalValues compares prop values: numerics compare across numeric types,
// everything else under reflect.DeepEqual.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := toFloat(a); ok {
		fb, ok2 := toFloat(b)
		return ok2 && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// criterion is one component of a compound string selector.
type criterion func(*tree.Node) bool

// compileString parses the selector mini-language into a conjunction of
// criteria.
func compileString(src string) (Predicate, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &InvalidSelectorError{Selector: src, Reason: "empty selector"}
	}
	l := &lexer{src: src}
	var crits []criterion
	for {
		tok := l.next()
		switch tok.kind {
		case tokEOF:
			if len(crits) == 0 {
				return nil, &InvalidSelectorError{Selector: src, Reason: "empty selector"}
			}
			return conjunction(crits), nil
		case tokIdent:
			crits = append(crits, nameCriterion(tok.text))
		case tokClass:
			crits = append(crits, classCriterion(tok.text))
		case tokLBrack:
			crit, err := parseAttr(l, src)
			if err != nil {
				return nil, err
			}
			crits = append(crits, crit)
		case tokInvalid:
			return nil, &InvalidSelectorError{Selector: src, Reason: tok.text}
		default:
			return nil, &InvalidSelectorError{Selector: src, Reason: fmt.Sprintf("unexpected %s", tok.kind)}
		}
	}
}

// parseAttr consumes "name]" or "name=value]" after an opening bracket.
func parseAttr(l *lexer, src string) (criterion, error) {
	name := l.next()
	if name.kind != tokIdent {
		return nil, &InvalidSelectorError{Selector: src, Reason: "expected attribute name after '['"}
	}
	switch tok := l.next(); tok.kind {
	case tokRBrack:
		return attrPresent(name.text), nil
	case tokEqual:
		val := l.next()
		var value any
		switch val.kind {
		case tokString:
			value = val.text
		case tokNumber:
			f, _ := strconv.ParseFloat(val.text, 64)
			value = f
		case tokTrue:
			value = true
		case tokFalse:
			value = false
		case tokIdent:
			// Bare-word value, e.g. [title=x].
			value = val.text
		default:
			return nil, &InvalidSelectorError{Selector: src, Reason: "expected attribute value after '='"}
		}
		if closing := l.next(); closing.kind != tokRBrack {
			return nil, &InvalidSelectorError{Selector: src, Reason: "expected ']' to close attribute"}
		}
		return attrEquals(name.text, value), nil
	default:
		return nil, &InvalidSelectorError{Selector: src, Reason: "expected '=' or ']' after attribute name"}
	}
}

func conjunction(crits []criterion) Predicate {
	return func(n *tree.Node) bool {
		if n == nil {
			return false
		}
		for _, c := range crits {
			if !c(n) {
				return false
			}
		}
		return true
	}
}

// nameCriterion matches a host tag or a composite type's display name.
func nameCriterion(name string) criterion {
	return func(n *tree.Node) bool {
		switch n.Kind {
		case tree.KindHost, tree.KindComponent:
			return tree.TypeName(n.Type) == name
		}
		return false
	}
}

// classCriterion matches a whitespace-separated word of the className prop.
func classCriterion(name string) criterion {
	return func(n *tree.Node) bool {
		cls, ok := n.Prop("className").(string)
		if !ok {
			return false
		}
		for _, word := range strings.Fields(cls) {
			if word == name {
				return true
			}
		}
		return false
	}
}

func attrPresent(name string) criterion {
	return func(n *tree.Node) bool {
		v, ok := n.Props[name]
		return ok && v != nil
	}
}

func attrEquals(name string, want any) criterion {
	return func(n *tree.Node) bool {
		got, ok := n.Props[name]
		return ok && equalValues(want, got)
	}
}
