// Package pkg provides the core libraries for polytrie lookup tables.
//
// # Overview
//
// Polytrie compiles flat key/value manifests into labeled multi-parent tries
// and serves lookups against them. The pkg directory is organized into:
//
//  1. [trie] - The generic container: labeled nodes, attach/detach, traversal, merge
//  2. [graph] - Serialization (node-link JSON) for CLI round trips and the API
//  3. [render/dot] - Graphviz diagrams of built tries
//  4. [cache] - Content-addressed caching of built graphs
//  5. [errors] - Error codes and input validation
//  6. [observability] - Optional instrumentation hooks
//  7. [buildinfo] - ldflags-injected version information
//
// # Architecture
//
// The typical data flow:
//
//	Manifest (TOML/YAML)
//	         ↓
//	    internal/lexicon (split keys into rune paths, build trie)
//	         ↓
//	    [trie] package (multi-parent container, merge)
//	         ↓
//	    [graph] package (deterministic JSON export)
//	         ↓
//	    CLI output / HTTP API / [render/dot] diagrams
//
// # Quick Start
//
// Build a trie and export it:
//
//	import (
//	    "github.com/polytrie/polytrie/pkg/graph"
//	    "github.com/polytrie/polytrie/pkg/trie"
//	)
//
//	t := trie.NewTrie[string, string]()
//	s, _ := t.Root.Insert("s", "")
//	s.Insert("h", "sh")
//	data, _ := graph.MarshalGraph(t)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/trie/...   # Specific package
//	go test -run Example     # Examples only
//
// [trie]: https://pkg.go.dev/github.com/polytrie/polytrie/pkg/trie
// [graph]: https://pkg.go.dev/github.com/polytrie/polytrie/pkg/graph
// [render/dot]: https://pkg.go.dev/github.com/polytrie/polytrie/pkg/render/dot
// [cache]: https://pkg.go.dev/github.com/polytrie/polytrie/pkg/cache
// [errors]: https://pkg.go.dev/github.com/polytrie/polytrie/pkg/errors
// [observability]: https://pkg.go.dev/github.com/polytrie/polytrie/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/polytrie/polytrie/pkg/buildinfo
package pkg
