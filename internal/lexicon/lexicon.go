// Package lexicon builds lookup tries from manifest files.
//
// A manifest declares flat key/value entries; Build expands each key into a
// rune path and inserts it into a shared trie, so entries with common
// prefixes share their prefix nodes. The package also provides query
// execution against a built lexicon and a file watcher that rebuilds the
// lexicon when its manifest changes.
package lexicon

import (
	"context"
	"sort"
	"time"

	"github.com/polytrie/polytrie/pkg/errors"
	"github.com/polytrie/polytrie/pkg/graph"
	"github.com/polytrie/polytrie/pkg/observability"
	"github.com/polytrie/polytrie/pkg/trie"
)

// Lexicon is a built lookup table: a named trie keyed by rune segments, with
// terminal values on the nodes that complete an entry.
type Lexicon struct {
	Name string
	Trie *trie.Trie[string, string]
}

// Build constructs a lexicon from a manifest.
// Keys are inserted in sorted order so the resulting structure is
// deterministic. Two entries may share a node (one key being a prefix of
// another), but a node can carry only one value; conflicting values for the
// same key fail the build.
func Build(ctx context.Context, m Manifest) (*Lexicon, error) {
	start := time.Now()
	observability.Build().OnBuildStart(ctx, m.Name, len(m.Entries))

	t := trie.NewTrie[string, string]()

	keys := make([]string, 0, len(m.Entries))
	for key := range m.Entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := insert(t, key, m.Entries[key]); err != nil {
			observability.Build().OnBuildComplete(ctx, m.Name, 0, time.Since(start), err)
			return nil, err
		}
	}

	lex := &Lexicon{Name: m.Name, Trie: t}
	observability.Build().OnBuildComplete(ctx, m.Name, lex.NodeCount(), time.Since(start), nil)
	return lex, nil
}

// insert walks the rune path for key, creating prefix nodes as needed, and
// sets the value on the terminal node.
func insert(t *trie.Trie[string, string], key, value string) error {
	// The empty string is the prefix-node marker, so it cannot be a value.
	if value == "" {
		return errors.New(errors.ErrCodeInvalidManifest, "entry %q has an empty value", key)
	}

	node := t.Root
	for _, r := range key {
		seg := string(r)
		child, ok := node.Child(seg)
		if !ok {
			var err error
			child, err = node.Insert(seg, "")
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "insert segment %q of %q", seg, key)
			}
		}
		node = child
	}

	if node.Value != "" && node.Value != value {
		return errors.New(errors.ErrCodeInvalidManifest,
			"conflicting values for key %q: %q vs %q", key, node.Value, value)
	}
	node.Value = value
	return nil
}

// Lookup walks the query rune by rune and returns the value at the final
// node. The second return is false when the path does not exist or ends on a
// prefix node without a value.
func (l *Lexicon) Lookup(ctx context.Context, query string) (string, bool, error) {
	start := time.Now()
	if err := errors.ValidateQuery(query); err != nil {
		return "", false, err
	}

	node := l.Trie.Root
	for _, r := range query {
		child, ok := node.Child(string(r))
		if !ok {
			observability.Lookup().OnLookup(ctx, query, false, time.Since(start))
			return "", false, nil
		}
		node = child
	}

	found := node.Value != ""
	observability.Lookup().OnLookup(ctx, query, found, time.Since(start))
	return node.Value, found, nil
}

// Completions returns every entry whose key starts with the given prefix, as
// full key/value pairs in sorted key order. An empty prefix lists the whole
// lexicon.
func (l *Lexicon) Completions(ctx context.Context, prefix string) ([]Completion, error) {
	start := time.Now()
	if prefix != "" {
		if err := errors.ValidateQuery(prefix); err != nil {
			return nil, err
		}
	}

	node := l.Trie.Root
	for _, r := range prefix {
		child, ok := node.Child(string(r))
		if !ok {
			observability.Lookup().OnTraversal(ctx, 0, time.Since(start))
			return []Completion{}, nil
		}
		node = child
	}

	out := []Completion{}
	visited := 0
	var walk func(n *trie.Node[string, string], path string)
	walk = func(n *trie.Node[string, string], path string) {
		visited++
		if n.Value != "" {
			out = append(out, Completion{Key: path, Value: n.Value})
		}
		for _, child := range sortedChildren(n) {
			walk(child, path+child.Key())
		}
	}
	walk(node, prefix)

	observability.Lookup().OnTraversal(ctx, visited, time.Since(start))
	return out, nil
}

// Completion is a single prefix-expansion result.
type Completion struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NodeCount returns the number of nodes in the trie, excluding the root.
func (l *Lexicon) NodeCount() int {
	count := -1
	l.Trie.Root.Traverse(func(*trie.Node[string, string]) { count++ }, -1)
	return count
}

// Graph returns the serialized form of the lexicon.
func (l *Lexicon) Graph() graph.Graph {
	g := graph.FromTrie(l.Trie)
	g.Name = l.Name
	return g
}

// FromGraph reconstructs a lexicon from its serialized form.
func FromGraph(g graph.Graph) (*Lexicon, error) {
	t, err := graph.ToTrie(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "reconstruct lexicon %q", g.Name)
	}
	return &Lexicon{Name: g.Name, Trie: t}, nil
}

// Merge folds another lexicon into this one.
// With duplicate set, the other lexicon's nodes are copied; otherwise they
// are relocated and the source lexicon must not be used afterwards.
func (l *Lexicon) Merge(ctx context.Context, other *Lexicon, duplicate bool) error {
	start := time.Now()
	observability.Build().OnMergeStart(ctx, l.Name, other.Name)

	err := l.Trie.Merge(other.Trie, duplicate)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeDuplicateKey, err, "merge %q into %q", other.Name, l.Name)
	}
	observability.Build().OnMergeComplete(ctx, l.Name, other.Name, time.Since(start), err)
	return err
}

func sortedChildren(n *trie.Node[string, string]) []*trie.Node[string, string] {
	children := make([]*trie.Node[string, string], 0, n.ChildCount())
	for _, child := range n.Children() {
		children = append(children, child)
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Key() < children[j].Key() })
	return children
}
