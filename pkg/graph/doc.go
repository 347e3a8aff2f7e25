// Package graph defines the JSON interchange format for lookup tries.
//
// The format is a flat nodes-plus-edges representation rather than a nested
// tree, because a trie node may have more than one parent. Exports are
// deterministic (children sorted by key, nodes numbered in visit order) so
// the same structure always produces the same bytes, which makes the format
// usable as a cache payload.
//
// Import replays edges through the container's Attach, so structural
// violations (sibling key collisions, cycles) are caught by the container
// itself rather than re-validated here.
package graph
