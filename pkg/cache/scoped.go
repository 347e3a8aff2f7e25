package cache

// ScopedKeyer wraps a Keyer with a prefix, isolating cache namespaces when
// several lexicons share one cache directory.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "lexicon:arabic:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for a built lexicon graph.
func (k *ScopedKeyer) GraphKey(manifestHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(manifestHash, opts)
}
