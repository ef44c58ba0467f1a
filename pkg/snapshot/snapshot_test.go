package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-probe/probe/pkg/tree"
)

func sampleNode() *tree.Node {
	return &tree.Node{
		Kind: tree.KindHost, Type: "div", Key: "root",
		Props: map[string]any{"className": "box", "onClick": func() {}},
		Children: []*tree.Node{
			{Kind: tree.KindText, Text: "Hi"},
			{Kind: tree.KindComponent, Type: "Widget", Key: "w1"},
		},
	}
}

func TestCapture_Structure(t *testing.T) {
	got := Capture(sampleNode())

	if got.NodeType != "host" || got.Type != "div" {
		t.Fatalf("root = %s/%s, want host/div", got.NodeType, got.Type)
	}
	if got.Key != "root" {
		t.Errorf("key = %v, want root", got.Key)
	}
	if got.Props["className"] != "box" {
		t.Errorf("className = %v", got.Props["className"])
	}
	if got.Props["onClick"] != "[function]" {
		t.Errorf("function props must serialize as a placeholder, got %v", got.Props["onClick"])
	}
	if len(got.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(got.Children))
	}
	if got.Children[0].NodeType != "text" || got.Children[0].Text != "Hi" {
		t.Errorf("text child = %+v", got.Children[0])
	}
	if got.Children[1].NodeType != "component" {
		t.Errorf("component child tagged %q", got.Children[1].NodeType)
	}
}

func TestCaptureAnonymous_OmitsKeys(t *testing.T) {
	got := CaptureAnonymous(sampleNode())
	if got.Key != nil {
		t.Errorf("anonymous capture carries key %v", got.Key)
	}
	if got.Children[1].Key != nil {
		t.Errorf("anonymous capture carries child key %v", got.Children[1].Key)
	}
}

func TestDiff_EqualAndDifferent(t *testing.T) {
	a := Capture(sampleNode())
	b := Capture(sampleNode())
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical captures, got:\n%s", diff)
	}

	other := sampleNode()
	other.Props["className"] = "changed"
	c := Capture(other)
	if diff := a.Diff(c); diff == "" {
		t.Error("expected diff for different captures")
	}
}

func TestUpdateAndMatch_JSON(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	snap := Capture(sampleNode())

	path := filepath.Join(t.TempDir(), "testdata", "box.snapshot.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	snap.MatchesFile(t, path)
}

func TestUpdateAndMatch_YAML(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	snap := Capture(sampleNode())

	path := filepath.Join(t.TempDir(), "box.snapshot.yaml")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "nodeType:") {
		t.Errorf("expected YAML output, got:\n%s", data)
	}

	snap.MatchesFile(t, path)
}

func TestMatchesFile_MissingFile(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	snap := Capture(sampleNode())

	failed := false
	rec := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(rec, filepath.Join(t.TempDir(), "missing.json"))
	if !failed {
		t.Error("expected MatchesFile to fail for a missing file")
	}
}

func TestMatchesFile_Mismatch(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	first := Capture(sampleNode())

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := first.UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	other := sampleNode()
	other.Children = other.Children[:1]
	second := Capture(other)

	errored := false
	rec := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(rec, path)
	if !errored {
		t.Error("expected MatchesFile to report a mismatch")
	}
}

func TestMatchesFile_UpdateMode(t *testing.T) {
	snap := Capture(sampleNode())
	path := filepath.Join(t.TempDir(), "update.snapshot.json")

	t.Setenv(UpdateEnv, "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
