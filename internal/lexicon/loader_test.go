package lexicon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestNewLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arabic.toml")
	writeManifest(t, path, tomlManifest)

	l, err := NewLoader(context.Background(), path)
	require.NoError(t, err)

	lex := l.Lexicon()
	require.NotNil(t, lex)
	assert.Equal(t, "arabic", lex.Name)
	assert.Equal(t, path, l.Path())
}

func TestNewLoaderBadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeManifest(t, path, "name = [broken")

	_, err := NewLoader(context.Background(), path)
	require.Error(t, err)
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "arabic.toml")
	writeManifest(t, path, tomlManifest)

	l, err := NewLoader(ctx, path)
	require.NoError(t, err)

	var notified *Lexicon
	l.OnChange(func(lex *Lexicon) { notified = lex })

	writeManifest(t, path, "name = \"persian\"\n\n[entries]\n\"zh\" = \"ژ\"\n")
	lex, err := l.Reload(ctx)
	require.NoError(t, err)

	assert.Equal(t, "persian", lex.Name)
	assert.Same(t, lex, l.Lexicon())
	assert.Same(t, lex, notified)
}

func TestReloadFailureKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "arabic.toml")
	writeManifest(t, path, tomlManifest)

	l, err := NewLoader(ctx, path)
	require.NoError(t, err)
	before := l.Lexicon()

	writeManifest(t, path, "name = [broken")
	_, err = l.Reload(ctx)
	require.Error(t, err)
	assert.Same(t, before, l.Lexicon())
}

func TestWatchRebuildsOnWrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "arabic.toml")
	writeManifest(t, path, tomlManifest)

	l, err := NewLoader(ctx, path)
	require.NoError(t, err)

	changed := make(chan *Lexicon, 1)
	l.OnChange(func(lex *Lexicon) {
		select {
		case changed <- lex:
		default:
		}
	})

	stop, err := l.Watch(ctx)
	require.NoError(t, err)
	defer stop()

	writeManifest(t, path, "name = \"persian\"\n\n[entries]\n\"zh\" = \"ژ\"\n")

	select {
	case lex := <-changed:
		assert.Equal(t, "persian", lex.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
