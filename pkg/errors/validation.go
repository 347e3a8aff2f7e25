package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateName validates a lexicon name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidManifest, "lexicon name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidManifest, "lexicon name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidManifest, "lexicon name contains control characters")
		}
	}
	return nil
}

// ValidateQuery validates a lookup query before it is walked through a trie.
// Queries come from untrusted HTTP input, so the limits are strict.
func ValidateQuery(q string) error {
	if q == "" {
		return New(ErrCodeInvalidQuery, "query cannot be empty")
	}
	const maxQueryLength = 512
	if len(q) > maxQueryLength {
		return New(ErrCodeInvalidQuery, "query too long (max %d bytes)", maxQueryLength)
	}
	for _, r := range q {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidQuery, "query contains invalid characters")
		}
	}
	return nil
}

// manifestExtensions is the set of supported manifest file extensions.
var manifestExtensions = map[string]bool{
	".toml": true,
	".yaml": true,
	".yml":  true,
}

// ValidateManifestPath checks that a manifest path has a supported extension.
// The format itself is validated by the lexicon loader.
func ValidateManifestPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidManifest, "manifest path cannot be empty")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !manifestExtensions[ext] {
		return New(ErrCodeUnsupported, "unsupported manifest format %q (use .toml, .yaml or .yml)", ext)
	}
	return nil
}
