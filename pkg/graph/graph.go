package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/polytrie/polytrie/pkg/trie"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a trie to JSON bytes.
// Children are sorted by key for deterministic output.
func MarshalGraph(t *trie.Trie[string, string]) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(t, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a trie to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(t *trie.Trie[string, string], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(t, f)
}

// WriteGraph writes a trie as JSON to an io.Writer.
// Use MarshalGraph for in-memory serialization or WriteGraphFile for files.
func WriteGraph(t *trie.Trie[string, string], w io.Writer) error {
	return writeGraphTo(t, w)
}

// ReadGraphFile reads a JSON file and returns the decoded trie.
// Returns an error for malformed input or DAG constraint violations.
func ReadGraphFile(path string) (*trie.Trie[string, string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader into a trie.
// Use ReadGraphFile for files or pass bytes.NewReader for in-memory data.
func ReadGraph(r io.Reader) (*trie.Trie[string, string], error) {
	return readGraphFrom(r)
}

// Marshal converts a Graph to indented JSON bytes.
// Unlike [MarshalGraph] it preserves the graph name.
func Marshal(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes a Graph to a JSON file.
func WriteFile(g Graph, path string) error {
	data, err := Marshal(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Graph from a JSON file without converting it to a trie.
func ReadFile(path string) (Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	return UnmarshalGraph(data)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(t *trie.Trie[string, string], w io.Writer) error {
	out := FromTrie(t)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*trie.Trie[string, string], error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToTrie(data)
}
