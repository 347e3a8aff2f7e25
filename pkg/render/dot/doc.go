// Package dot renders lookup tries as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// trie nodes appear as boxes connected by parent→child arrows. Shared nodes
// (multiple incoming edges) show up naturally, which makes the diagrams
// useful for inspecting merged lexicons.
//
// # Usage
//
// Convert a serialized trie to DOT format, then render to SVG:
//
//	d := dot.ToDOT(g, dot.Options{Values: true})
//	svg, err := dot.RenderSVG(d)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded box
// nodes. Prefix nodes without a value are drawn dashed and grey.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no external Graphviz installation is required.
package dot
