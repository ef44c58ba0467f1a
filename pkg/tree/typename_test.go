package tree

import "testing"

type namedComponent struct{ label string }

func (c *namedComponent) DisplayName() string { return c.label }

type plainComponent struct{}

func renderWidget(map[string]any) *Element { return nil }

func TestTypeName(t *testing.T) {
	for _, tc := range []struct {
		name string
		typ  any
		want string
	}{
		{"nil", nil, "unknown"},
		{"host tag", "div", "div"},
		{"framework marker", Fragment, "Fragment"},
		{"display name", &namedComponent{label: "Fancy"}, "Fancy"},
		{"named type", plainComponent{}, "plainComponent"},
		{"named pointer type", &plainComponent{}, "plainComponent"},
		{"function", renderWidget, "renderWidget"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := TypeName(tc.typ); got != tc.want {
				t.Errorf("TypeName(%v) = %q, want %q", tc.typ, got, tc.want)
			}
		})
	}
}

func TestTypeName_AnonymousFunctionFallsBack(t *testing.T) {
	fn := func(map[string]any) *Element { return nil }
	if got := TypeName(fn); got != "Component" {
		t.Errorf("TypeName(anonymous func) = %q, want %q", got, "Component")
	}
}

func TestTypeEqual(t *testing.T) {
	a := &namedComponent{label: "A"}
	if !TypeEqual("div", "div") {
		t.Error("identical host tags should be equal")
	}
	if TypeEqual("div", "span") {
		t.Error("different host tags should not be equal")
	}
	if !TypeEqual(a, a) {
		t.Error("same reference should be equal")
	}
	if TypeEqual(a, &namedComponent{label: "A"}) {
		t.Error("distinct component references should not be equal")
	}
	if !TypeEqual(renderWidget, renderWidget) {
		t.Error("same function reference should be equal")
	}
	if TypeEqual("div", nil) || !TypeEqual(nil, nil) {
		t.Error("nil handling is wrong")
	}
}
