package trie

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

var (
	// ErrKeyNotFound is returned by [Node.Get] and [Trie.Get] when no direct
	// child carries the requested key. Use [Node.Child] for a non-failing
	// lookup.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidAttach is returned by [Node.Attach] when the candidate child
	// is the node itself, or when the new edge would close a cycle. This is
	// always a caller error - the graph is left untouched.
	ErrInvalidAttach = errors.New("invalid attach")

	// ErrDuplicateKey is returned by [Node.Attach] and [Node.Insert] when the
	// node already has a direct child under the candidate's key. Keys must be
	// unique among the direct children of a node.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Entry pairs a key with a value for batch insertion via [Node.InsertAll].
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Node is a single labeled vertex in a multi-parent trie. It holds one
// immutable key, one mutable value, a key-indexed map of children, and an
// ordered list of parent back-references.
//
// The parent list is a non-owning relation: it exists only for upward queries
// and for unhooking the node during [Node.Detach], and is kept in lockstep
// with the child maps of the parents. A node reachable from several parents
// is shared, not copied.
//
// The zero value is not usable - construct nodes with [New].
type Node[K comparable, V any] struct {
	// Value is the node's payload. It may be replaced freely; the container
	// attaches no meaning to it.
	Value V

	key      K
	children map[K]*Node[K, V]
	parents  []*Node[K, V]
}

// New creates an isolated node with the given key and value, no children and
// no parents. The key is fixed for the node's lifetime.
func New[K comparable, V any](key K, value V) *Node[K, V] {
	return &Node[K, V]{
		key:      key,
		Value:    value,
		children: make(map[K]*Node[K, V]),
	}
}

// Key returns the node's immutable key.
func (n *Node[K, V]) Key() K { return n.key }

// Get returns the direct child with the given key.
// Returns an error wrapping [ErrKeyNotFound] if no such child exists.
func (n *Node[K, V]) Get(key K) (*Node[K, V], error) {
	child, ok := n.children[key]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return child, nil
}

// Child returns the direct child with the given key and true, or nil and
// false if absent. This is the non-failing variant of [Node.Get].
func (n *Node[K, V]) Child(key K) (*Node[K, V], bool) {
	child, ok := n.children[key]
	return child, ok
}

// ContainsKey reports whether a direct child carries the given key.
func (n *Node[K, V]) ContainsKey(key K) bool {
	_, ok := n.children[key]
	return ok
}

// ChildCount returns the number of direct children.
func (n *Node[K, V]) ChildCount() int { return len(n.children) }

// Children returns a single-pass iterator over the direct children and their
// keys. Each call produces a fresh pass; the order is the map iteration order
// and carries no guarantee. The iterator must not outlive mutations of the
// child map - snapshot into a slice before attaching or detaching mid-walk.
func (n *Node[K, V]) Children() iter.Seq2[K, *Node[K, V]] {
	return maps.All(n.children)
}

// Parents returns a copy of the node's parent list. Mutating the returned
// slice does not affect the graph.
func (n *Node[K, V]) Parents() []*Node[K, V] {
	return slices.Clone(n.parents)
}

// Attach adds child as a direct child of n and registers n in the child's
// parent list. The attached node is returned to allow chained construction.
//
// Attach is the only operation that creates edges, and it is where the DAG
// invariant is enforced: attaching a node to itself, or attaching a node that
// already has n somewhere in its own subtree, returns an error wrapping
// [ErrInvalidAttach]. A direct child with the same key already present
// returns an error wrapping [ErrDuplicateKey]. On error the graph is
// unchanged.
//
// The cycle check is a full reachability search over the candidate's subtree
// and is the most expensive operation in the API. It must not be skipped: the
// reachability queries rely on acyclicity to terminate.
func (n *Node[K, V]) Attach(child *Node[K, V]) (*Node[K, V], error) {
	if child == n {
		return nil, fmt.Errorf("%w: cannot attach node %v to itself", ErrInvalidAttach, n.key)
	}
	if child.IsDescendant(n) {
		return nil, fmt.Errorf("%w: node %v is already an ancestor of %v", ErrInvalidAttach, child.key, n.key)
	}
	if _, exists := n.children[child.key]; exists {
		return nil, fmt.Errorf("%w: %v", ErrDuplicateKey, child.key)
	}
	child.parents = append(child.parents, n)
	n.children[child.key] = child
	return child, nil
}

// AttachAll attaches the given nodes in order, stopping at the first failure.
// The batch is not transactional: nodes attached before the failure stay
// attached.
func (n *Node[K, V]) AttachAll(children ...*Node[K, V]) error {
	for _, child := range children {
		if _, err := n.Attach(child); err != nil {
			return err
		}
	}
	return nil
}

// Detach removes each given node from n's direct children and removes n from
// that node's parent list. Nodes that are not direct children of n are
// silently skipped - detaching something never attached is a no-op, not an
// error. The detached node keeps its own children and any other parents.
func (n *Node[K, V]) Detach(nodes ...*Node[K, V]) {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		existing, ok := n.children[node.key]
		if !ok || existing != node {
			continue
		}
		delete(n.children, node.key)
		if i := slices.Index(node.parents, n); i >= 0 {
			node.parents = slices.Delete(node.parents, i, i+1)
		}
	}
}

// Remove detaches the direct children carrying the given keys.
// Unknown keys are silently skipped.
func (n *Node[K, V]) Remove(keys ...K) {
	for _, key := range keys {
		if child, ok := n.children[key]; ok {
			n.Detach(child)
		}
	}
}

// Insert constructs a new node from key and value and attaches it to n.
// It is shorthand for n.Attach(New(key, value)) and is subject to the same
// invariants.
func (n *Node[K, V]) Insert(key K, value V) (*Node[K, V], error) {
	return n.Attach(New(key, value))
}

// InsertAll inserts the given entries in order, stopping at the first
// failure. Like [Node.AttachAll], the batch is not transactional.
func (n *Node[K, V]) InsertAll(entries ...Entry[K, V]) error {
	for _, e := range entries {
		if _, err := n.Insert(e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// Duplicate returns a new node with the same key and value. The value is
// copied by plain assignment - reference payloads stay shared.
//
// With withChildren set, the entire subtree is duplicated recursively and
// attached under the copy. The duplicate shares no node identity with the
// original, and every duplicated node starts with an empty parent list.
func (n *Node[K, V]) Duplicate(withChildren bool) *Node[K, V] {
	dup := New(n.key, n.Value)
	if !withChildren {
		return dup
	}
	for _, child := range n.children {
		// Fresh nodes under unique keys: Attach cannot fail here.
		_, _ = dup.Attach(child.Duplicate(true))
	}
	return dup
}

// IsRoot reports whether the node has no parents.
func (n *Node[K, V]) IsRoot() bool { return len(n.parents) == 0 }

// IsParent reports whether node is a direct parent of n, by identity.
func (n *Node[K, V]) IsParent(node *Node[K, V]) bool {
	return slices.Contains(n.parents, node)
}

// IsChild reports whether node is a direct child of n, by identity.
func (n *Node[K, V]) IsChild(node *Node[K, V]) bool {
	for _, c := range n.children {
		if c == node {
			return true
		}
	}
	return false
}

// IsAncestor reports whether node is an ancestor of n: a direct parent, or an
// ancestor of any direct parent. All parent paths are searched, so a node
// reachable upward via more than one route is still found.
func (n *Node[K, V]) IsAncestor(node *Node[K, V]) bool {
	for _, p := range n.parents {
		if p == node || p.IsAncestor(node) {
			return true
		}
	}
	return false
}

// IsDescendant reports whether node is a descendant of n: a direct child, or
// a descendant of any direct child.
func (n *Node[K, V]) IsDescendant(node *Node[K, V]) bool {
	for _, c := range n.children {
		if c == node || c.IsDescendant(node) {
			return true
		}
	}
	return false
}

// IsSibling reports whether n and node share at least one direct parent.
// A node is never a sibling of itself.
func (n *Node[K, V]) IsSibling(node *Node[K, V]) bool {
	if node == n {
		return false
	}
	for _, p := range n.parents {
		if p.IsChild(node) {
			return true
		}
	}
	return false
}

// Traverse applies fn to n and then, in pre-order, to every node reachable
// through children. maxDepth bounds the descent: 0 visits n only, 1 visits n
// and its direct children, and so on. Pass -1 for an unbounded walk.
func (n *Node[K, V]) Traverse(fn func(*Node[K, V]), maxDepth int) {
	n.traverse(fn, 0, maxDepth)
}

func (n *Node[K, V]) traverse(fn func(*Node[K, V]), depth, maxDepth int) {
	fn(n)
	if maxDepth >= 0 && depth == maxDepth {
		return
	}
	for _, c := range n.children {
		c.traverse(fn, depth+1, maxDepth)
	}
}

// TraverseChildren applies [Node.Traverse] to each direct child, without
// visiting n itself. Each child starts its own depth count at zero, so
// maxDepth 0 visits the direct children only.
func (n *Node[K, V]) TraverseChildren(fn func(*Node[K, V]), maxDepth int) {
	for _, c := range n.children {
		c.Traverse(fn, maxDepth)
	}
}
