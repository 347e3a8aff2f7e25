package trie

// Trie wraps a single sentinel root node and exposes graph-level operations
// on top of [Node]'s primitives. The root carries zero-valued key and value,
// always exists, and is never attached as a child of anything; all real keys
// live strictly below it.
//
// Trie is not safe for concurrent use without external synchronization.
type Trie[K comparable, V any] struct {
	Root *Node[K, V]
}

// NewTrie creates an empty trie with a fresh sentinel root.
func NewTrie[K comparable, V any]() *Trie[K, V] {
	var key K
	var value V
	return &Trie[K, V]{Root: New(key, value)}
}

// Get returns the root's direct child with the given key.
// Returns an error wrapping [ErrKeyNotFound] if no such child exists.
func (t *Trie[K, V]) Get(key K) (*Node[K, V], error) {
	return t.Root.Get(key)
}

// Child returns the root's direct child with the given key and true, or nil
// and false if absent.
func (t *Trie[K, V]) Child(key K) (*Node[K, V], bool) {
	return t.Root.Child(key)
}

// ContainsKey reports whether the root has a direct child with the given key.
func (t *Trie[K, V]) ContainsKey(key K) bool {
	return t.Root.ContainsKey(key)
}

// Merge moves the direct children of other's root into t's root.
//
// With duplicate false, each child node is relocated: attached to t's root
// and then detached from other's root, so the node object afterward lives
// only under t. With duplicate true, a deep copy of each child's subtree is
// attached instead and other is left untouched.
//
// Every transfer goes through [Node.Attach] and is subject to its key
// collision and cycle checks. The merge is not transactional: on error,
// children already merged stay merged, and with duplicate false, children
// already detached from other stay gone.
func (t *Trie[K, V]) Merge(other *Trie[K, V], duplicate bool) error {
	// Snapshot first: the loop below mutates the child map being walked.
	children := make([]*Node[K, V], 0, other.Root.ChildCount())
	for _, child := range other.Root.Children() {
		children = append(children, child)
	}

	for _, child := range children {
		if duplicate {
			if _, err := t.Root.Attach(child.Duplicate(true)); err != nil {
				return err
			}
			continue
		}
		if _, err := t.Root.Attach(child); err != nil {
			return err
		}
		other.Root.Detach(child)
	}
	return nil
}

// Merge combines two tries into a fresh one: a is merged first, then b, so a
// key collision between the two surfaces while merging b. With duplicate
// false, both inputs are emptied of their top-level children as a side
// effect; with duplicate true, both are left untouched.
func Merge[K comparable, V any](a, b *Trie[K, V], duplicate bool) (*Trie[K, V], error) {
	merged := NewTrie[K, V]()
	if err := merged.Merge(a, duplicate); err != nil {
		return nil, err
	}
	if err := merged.Merge(b, duplicate); err != nil {
		return nil, err
	}
	return merged, nil
}
