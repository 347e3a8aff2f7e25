package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

const buildTestManifest = `
name = "arabic"

[entries]
"sh" = "ش"
"sha" = "شا"
`

// testContext returns a context with a quiet logger attached.
func testContext(t *testing.T) context.Context {
	t.Helper()
	return withLogger(context.Background(), newLogger(os.Stderr, log.ErrorLevel))
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunBuild(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	manifest := filepath.Join(dir, "arabic.toml")
	writeFile(t, manifest, buildTestManifest)

	output := filepath.Join(dir, "arabic.json")
	opts := buildOpts{output: output}
	if err := runBuild(testContext(t), manifest, &opts); err != nil {
		t.Fatalf("runBuild() error: %v", err)
	}

	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output file missing: %v", err)
	}

	// Second build of the same manifest hits the cache and produces the
	// same bytes.
	first, _ := os.ReadFile(output)
	if err := runBuild(testContext(t), manifest, &opts); err != nil {
		t.Fatalf("runBuild() second run error: %v", err)
	}
	second, _ := os.ReadFile(output)
	if string(first) != string(second) {
		t.Error("cached rebuild produced different output")
	}
}

func TestRunBuildDefaultOutput(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	manifest := filepath.Join(dir, "arabic.toml")
	writeFile(t, manifest, buildTestManifest)

	opts := buildOpts{noCache: true}
	if err := runBuild(testContext(t), manifest, &opts); err != nil {
		t.Fatalf("runBuild() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "arabic.json")); err != nil {
		t.Errorf("default output file missing: %v", err)
	}
}

func TestRunLookup(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "arabic.toml")
	writeFile(t, manifest, buildTestManifest)

	// Directly against the manifest.
	if err := runLookup(testContext(t), manifest, "sha", &lookupOpts{}); err != nil {
		t.Errorf("runLookup(manifest) error: %v", err)
	}

	// Against the built graph file.
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	output := filepath.Join(dir, "arabic.json")
	if err := runBuild(testContext(t), manifest, &buildOpts{output: output, noCache: true}); err != nil {
		t.Fatalf("runBuild() error: %v", err)
	}
	if err := runLookup(testContext(t), output, "sh", &lookupOpts{}); err != nil {
		t.Errorf("runLookup(graph) error: %v", err)
	}

	// Miss returns an error for scripting.
	if err := runLookup(testContext(t), output, "zz", &lookupOpts{}); err == nil {
		t.Error("runLookup() should fail for an absent key")
	}

	// Prefix mode succeeds even when the prefix itself has no value.
	if err := runLookup(testContext(t), output, "s", &lookupOpts{prefix: true}); err != nil {
		t.Errorf("runLookup(prefix) error: %v", err)
	}
}

func TestRunMerge(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")
	writeFile(t, a, "name = \"a\"\n\n[entries]\n\"ab\" = \"1\"\n")
	writeFile(t, b, "name = \"b\"\n\n[entries]\n\"cd\" = \"2\"\n")

	output := filepath.Join(dir, "merged.json")
	opts := mergeOpts{output: output, duplicate: true}
	if err := runMerge(testContext(t), a, b, &opts); err != nil {
		t.Fatalf("runMerge() error: %v", err)
	}

	if err := runLookup(testContext(t), output, "cd", &lookupOpts{}); err != nil {
		t.Errorf("merged graph missing entry: %v", err)
	}
}

func TestRunDump(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "arabic.toml")
	writeFile(t, manifest, buildTestManifest)

	if err := runDump(testContext(t), manifest, &dumpOpts{depth: -1}); err != nil {
		t.Errorf("runDump() error: %v", err)
	}
	if err := runDump(testContext(t), manifest, &dumpOpts{depth: 1}); err != nil {
		t.Errorf("runDump(depth=1) error: %v", err)
	}
}

func TestRunVizDOT(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "arabic.toml")
	writeFile(t, manifest, buildTestManifest)

	output := filepath.Join(dir, "arabic.dot")
	opts := vizOpts{output: output, format: formatDOT, values: true}
	if err := runViz(testContext(t), manifest, &opts); err != nil {
		t.Fatalf("runViz() error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("DOT output missing: %v", err)
	}
	if len(data) == 0 {
		t.Error("DOT output is empty")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0 B"},
		{in: 512, want: "512 B"},
		{in: 2048, want: "2.0 KiB"},
		{in: 5 * 1024 * 1024, want: "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
