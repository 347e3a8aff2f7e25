package lexicon

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/polytrie/polytrie/pkg/errors"
)

// Manifest is the on-disk description of a lexicon: a name and a flat table
// of entries mapping a key string to its value. Keys are split into rune
// segments when the trie is built, so "sha" becomes the path s → h → a.
type Manifest struct {
	Name    string            `toml:"name" yaml:"name"`
	Entries map[string]string `toml:"entries" yaml:"entries"`
}

// Format identifies a manifest file format.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// FormatForPath determines the manifest format from the file extension.
func FormatForPath(path string) (string, error) {
	if err := errors.ValidateManifestPath(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	default:
		return FormatYAML, nil
	}
}

// ParseManifest deserializes manifest bytes in the given format.
func ParseManifest(data []byte, format string) (Manifest, error) {
	var m Manifest
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return Manifest{}, errors.Wrap(errors.ErrCodeInvalidManifest, err, "invalid TOML manifest")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Manifest{}, errors.Wrap(errors.ErrCodeInvalidManifest, err, "invalid YAML manifest")
		}
	default:
		return Manifest{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format %q", format)
	}

	if err := m.validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// LoadManifest reads and parses a manifest file, detecting the format from
// the extension. The raw bytes are returned alongside the manifest so callers
// can derive cache keys from them.
func LoadManifest(path string) (Manifest, []byte, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Manifest{}, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest not found: %s", path)
		}
		return Manifest{}, nil, errors.Wrap(errors.ErrCodeInternal, err, "read manifest: %s", path)
	}

	m, err := ParseManifest(data, format)
	if err != nil {
		return Manifest{}, nil, err
	}
	return m, data, nil
}

func (m Manifest) validate() error {
	if err := errors.ValidateName(m.Name); err != nil {
		return err
	}
	for key, value := range m.Entries {
		if key == "" {
			return errors.New(errors.ErrCodeInvalidManifest, "empty entry key")
		}
		// The empty string marks prefix nodes inside the trie, so an entry
		// with an empty value would vanish from lookups.
		if value == "" {
			return errors.New(errors.ErrCodeInvalidManifest, "entry %q has an empty value", key)
		}
	}
	return nil
}
