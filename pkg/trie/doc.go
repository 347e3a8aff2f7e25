// Package trie implements a generic, keyed multi-parent trie: a directed
// acyclic graph of labeled nodes in which every node carries one key, one
// value, a key-indexed child map, and a list of parent back-references.
//
// Unlike a strict tree, a node may be attached under any number of parents
// simultaneously, which makes the structure a DAG. Acyclicity is enforced at
// the single mutating entry point: [Node.Attach] rejects self-attachment and
// any edge that would make a node an ancestor of itself. Because of that
// guarantee, the reachability queries ([Node.IsAncestor], [Node.IsDescendant])
// can run unbounded depth-first searches without a cycle guard.
//
// Nodes are plain heap values shared by reference. Detaching a node removes
// one parent edge only; the node and its subtree stay alive for as long as
// anything still references them. The package performs no locking - callers
// that share a trie across goroutines must synchronize externally.
//
// # Basic usage
//
//	t := trie.NewTrie[string, int]()
//	t.Root.Insert("cat", 1)
//	t.Root.Insert("car", 2)
//
//	n, err := t.Get("cat") // n.Value == 1
//
// [Trie.Merge] combines two tries by relocating or deep-copying the top-level
// children of one root into another.
package trie
