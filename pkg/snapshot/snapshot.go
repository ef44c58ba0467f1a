// Package snapshot converts node trees into a framework-agnostic
// representation for snapshot-style output, and compares captures against
// golden files.
//
// Two capture variants exist: [Capture] includes each node's key metadata,
// [CaptureAnonymous] omits it. Golden files may be JSON or YAML, chosen by
// file extension. Set PROBE_UPDATE_SNAPSHOTS=1 to rewrite goldens instead
// of failing on mismatch:
//
//	PROBE_UPDATE_SNAPSHOTS=1 go test ./...
package snapshot

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"

	"github.com/go-probe/probe/pkg/tree"
)

// UpdateEnv gates golden-file rewriting.
const UpdateEnv = "PROBE_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing test
// doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Tree is one node of the serialized representation. NodeType is the
// discriminator tag: "host", "component", "text", or "function".
type Tree struct {
	NodeType string         `json:"nodeType" yaml:"nodeType"`
	Type     string         `json:"type,omitempty" yaml:"type,omitempty"`
	Key      any            `json:"key,omitempty" yaml:"key,omitempty"`
	Props    map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
	Text     string         `json:"text,omitempty" yaml:"text,omitempty"`
	Children []*Tree        `json:"children,omitempty" yaml:"children,omitempty"`
}

// Capture serializes n's subtree including key metadata.
func Capture(n *tree.Node) *Tree {
	return capture(n, true)
}

// CaptureAnonymous serializes n's subtree with key metadata omitted.
func CaptureAnonymous(n *tree.Node) *Tree {
	return capture(n, false)
}

func capture(n *tree.Node, withKeys bool) *Tree {
	if n == nil {
		return nil
	}
	t := &Tree{NodeType: n.Kind.String()}
	switch n.Kind {
	case tree.KindText:
		t.Text = n.Text
		return t
	case tree.KindFunc:
		return t
	}
	t.Type = tree.TypeName(n.Type)
	if withKeys && n.Key != nil {
		t.Key = sanitizeValue(n.Key)
	}
	if len(n.Props) > 0 {
		t.Props = make(map[string]any, len(n.Props))
		for k, v := range n.Props {
			t.Props[k] = sanitizeValue(v)
		}
	}
	for _, c := range n.Children {
		if child := capture(c, withKeys); child != nil {
			t.Children = append(t.Children, child)
		}
	}
	return t
}

// sanitizeValue reduces prop values to encodable shapes: functions become a
// placeholder, maps and slices recurse, anything non-trivial falls back to
// its fmt rendering.
func sanitizeValue(v any) any {
	switch val := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = sanitizeValue(e)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, e := range val {
			s[i] = sanitizeValue(e)
		}
		return s
	}
	if reflect.ValueOf(v).Kind() == reflect.Func {
		return "[function]"
	}
	return fmt.Sprintf("%v", v)
}

// EncodeJSON renders the tree as deterministic, indented JSON.
func (t *Tree) EncodeJSON() ([]byte, error) {
	return json.Marshal(t, json.Deterministic(true), jsontext.WithIndent("  "))
}

// EncodeYAML renders the tree as YAML.
func (t *Tree) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(t)
}

// MatchesFile compares t against a golden file. On mismatch it reports a
// diff and update instructions. When PROBE_UPDATE_SNAPSHOTS=1 is set, the
// file is silently rewritten instead.
func (t *Tree) MatchesFile(tt TestingT, path string) {
	tt.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := t.UpdateFile(path); err != nil {
			tt.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := LoadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			tt.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, tt.Name())
			return
		}
		tt.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := t.Diff(expected); diff != "" {
		tt.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, tt.Name())
	}
}

// UpdateFile writes t to path in the format implied by its extension,
// creating directories as needed.
func (t *Tree) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := encodeFor(t, path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadFile reads a golden file, accepting JSON or YAML by extension.
func LoadFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Tree
	if isYAMLPath(path) {
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("invalid snapshot YAML: %w", err)
		}
		return &t, nil
	}
	if err := json.Unmarshal(data, &t, json.DefaultOptionsV2()); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &t, nil
}

// Diff returns a line diff between t and other, empty when equal. Both
// sides are compared in deterministic JSON form regardless of the golden
// format.
func (t *Tree) Diff(other *Tree) string {
	a, _ := t.EncodeJSON()
	b, _ := other.EncodeJSON()
	if bytes.Equal(a, b) {
		return ""
	}
	return lineDiff(string(b), string(a))
}

func encodeFor(t *Tree, path string) ([]byte, error) {
	if isYAMLPath(path) {
		return t.EncodeYAML()
	}
	return t.EncodeJSON()
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// lineDiff produces a simple line-oriented diff.
func lineDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := len(expectedLines)
	if len(actualLines) > maxLen {
		maxLen = len(actualLines)
	}

	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
