package dot

import (
	"strings"
	"testing"

	"github.com/polytrie/polytrie/pkg/graph"
)

func testGraph() graph.Graph {
	return graph.Graph{
		Name: "arabic",
		Nodes: []graph.Node{
			{ID: "n0", Key: "s"},
			{ID: "n1", Key: "h", Value: "sha"},
		},
		Edges: []graph.Edge{
			{From: graph.RootID, To: "n0"},
			{From: "n0", To: "n1"},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testGraph(), Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"n0"`) {
		t.Error("ToDOT() output missing node n0")
	}
	if !strings.Contains(dot, `"n0" -> "n1"`) {
		t.Error("ToDOT() output missing edge")
	}
	if strings.Contains(dot, graph.RootID) {
		t.Error("ToDOT() should hide the root by default")
	}
}

func TestToDOT_ShowRoot(t *testing.T) {
	dot := ToDOT(testGraph(), Options{ShowRoot: true})

	if !strings.Contains(dot, `"`+graph.RootID+`" [shape=point`) {
		t.Error("ToDOT() missing root point node")
	}
	if !strings.Contains(dot, `"`+graph.RootID+`" -> "n0"`) {
		t.Error("ToDOT() missing root edge")
	}
}

func TestToDOT_Values(t *testing.T) {
	dot := ToDOT(testGraph(), Options{Values: true})

	if !strings.Contains(dot, `h\nsha`) {
		t.Error("ToDOT() values output missing node value in label")
	}
}

func TestToDOT_PrefixNodeStyle(t *testing.T) {
	dot := ToDOT(testGraph(), Options{})

	if !strings.Contains(dot, "dashed") {
		t.Error("ToDOT() prefix node missing dashed style")
	}
	if !strings.Contains(dot, "lightgrey") {
		t.Error("ToDOT() prefix node missing lightgrey fill")
	}
}

func TestFmtLabel(t *testing.T) {
	n := graph.Node{ID: "n1", Key: "h", Value: "sha"}

	if got := fmtLabel(n, false); got != "h" {
		t.Errorf("fmtLabel() simple mode = %q, want %q", got, "h")
	}
	if got := fmtLabel(n, true); got != "h\nsha" {
		t.Errorf("fmtLabel() values mode = %q, want %q", got, "h\nsha")
	}

	prefix := graph.Node{ID: "n0", Key: "s"}
	if got := fmtLabel(prefix, true); got != "s" {
		t.Errorf("fmtLabel() prefix node = %q, want %q", got, "s")
	}
}

func TestFmtAttrs(t *testing.T) {
	terminal := graph.Node{ID: "n1", Key: "h", Value: "sha"}
	attrs := fmtAttrs(terminal, "h")
	if len(attrs) != 1 {
		t.Errorf("fmtAttrs() terminal node should have 1 attr, got %d: %v", len(attrs), attrs)
	}

	prefix := graph.Node{ID: "n0", Key: "s"}
	attrs = fmtAttrs(prefix, "s")
	if len(attrs) != 4 {
		t.Errorf("fmtAttrs() prefix node should have 4 attrs, got %d: %v", len(attrs), attrs)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	dot := `digraph G { a -> b; }`
	svg, err := RenderSVG(dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}

	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	dot := `not valid DOT {{{`
	if _, err := RenderSVG(dot); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
