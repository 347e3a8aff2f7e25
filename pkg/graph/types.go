package graph

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/polytrie/polytrie/pkg/trie"
)

// RootID is the node ID reserved for the sentinel root of a trie.
// The root itself is never serialized as a node; it appears only as the From
// endpoint of top-level edges.
const RootID = "__root__"

// =============================================================================
// Graph - Trie Serialization Format
// =============================================================================

// Graph is the canonical serialization format for lookup tries.
// Used for CLI round trips, API responses and caching.
//
// A trie is a DAG, so the format is nodes plus edges rather than a nested
// tree: a node shared by several parents is serialized once and referenced by
// every incoming edge. The format is designed for round-trip fidelity:
// export → re-import produces a structurally identical trie.
type Graph struct {
	Name  string `json:"name,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is the serialized form of a single trie node.
// IDs are synthetic and stable within one export; keys are the trie keys.
type Node struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// Edge represents a directed parent→child edge between node IDs.
// Edges starting at [RootID] denote top-level children.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// Trie ↔ Graph Conversion
// =============================================================================

// FromTrie converts a trie to its serialization format.
// Children are walked in sorted key order and nodes are numbered in visit
// order, so the output is deterministic for a given structure. A node
// reachable through several parents is emitted once, with one edge per
// parent.
func FromTrie(t *trie.Trie[string, string]) Graph {
	out := Graph{Nodes: []Node{}, Edges: []Edge{}}
	ids := map[*trie.Node[string, string]]string{t.Root: RootID}
	next := 0

	var walk func(n *trie.Node[string, string])
	walk = func(n *trie.Node[string, string]) {
		for _, child := range sortedChildren(n) {
			id, seen := ids[child]
			if !seen {
				id = fmt.Sprintf("n%d", next)
				next++
				ids[child] = id
				out.Nodes = append(out.Nodes, Node{ID: id, Key: child.Key(), Value: child.Value})
			}
			out.Edges = append(out.Edges, Edge{From: ids[n], To: id})
			if !seen {
				walk(child)
			}
		}
	}
	walk(t.Root)

	return out
}

// ToTrie converts a Graph back to a trie.
// Edges are replayed through the container's Attach, so a malformed graph
// surfaces the container's own errors: trie.ErrDuplicateKey for sibling key
// collisions and trie.ErrInvalidAttach for cycles. Edges that target [RootID]
// are rejected outright, since the root must stay parentless. Nodes not
// reachable from [RootID] are dropped.
func ToTrie(g Graph) (*trie.Trie[string, string], error) {
	t := trie.NewTrie[string, string]()

	byID := map[string]*trie.Node[string, string]{RootID: t.Root}
	for _, n := range g.Nodes {
		if n.ID == RootID {
			return nil, fmt.Errorf("node ID %s is reserved", RootID)
		}
		if _, exists := byID[n.ID]; exists {
			return nil, fmt.Errorf("duplicate node ID %s", n.ID)
		}
		byID[n.ID] = trie.New(n.Key, n.Value)
	}

	for _, e := range g.Edges {
		if e.To == RootID {
			return nil, fmt.Errorf("edge %s→%s: root cannot be an edge target", e.From, e.To)
		}
		from, ok := byID[e.From]
		if !ok {
			return nil, fmt.Errorf("edge %s→%s: unknown source node", e.From, e.To)
		}
		to, ok := byID[e.To]
		if !ok {
			return nil, fmt.Errorf("edge %s→%s: unknown target node", e.From, e.To)
		}
		if _, err := from.Attach(to); err != nil {
			return nil, fmt.Errorf("edge %s→%s: %w", e.From, e.To, err)
		}
	}

	return t, nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

// sortedChildren returns the direct children ordered by key, for
// deterministic export.
func sortedChildren(n *trie.Node[string, string]) []*trie.Node[string, string] {
	children := make([]*trie.Node[string, string], 0, n.ChildCount())
	for _, child := range n.Children() {
		children = append(children, child)
	}
	slices.SortFunc(children, func(a, b *trie.Node[string, string]) int {
		if a.Key() < b.Key() {
			return -1
		}
		if a.Key() > b.Key() {
			return 1
		}
		return 0
	})
	return children
}
