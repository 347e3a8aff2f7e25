package lexicon

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/polytrie/polytrie/pkg/observability"
)

// Loader reads a manifest file, builds the lexicon, and watches the file for
// changes. The server uses it to hot-swap the lexicon without a restart.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  *Lexicon
	onChange []func(*Lexicon)
	watcher  *fsnotify.Watcher
}

// NewLoader creates a Loader and performs the initial load and build.
func NewLoader(ctx context.Context, path string) (*Loader, error) {
	l := &Loader{path: path}
	lex, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	l.current = lex
	return l, nil
}

// Lexicon returns the current (latest) lexicon.
func (l *Loader) Lexicon() *Lexicon {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Path returns the watched manifest path.
func (l *Loader) Path() string { return l.path }

// OnChange registers a callback invoked whenever the lexicon reloads.
func (l *Loader) OnChange(fn func(*Lexicon)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that rebuilds the lexicon on manifest
// changes. A manifest that fails to parse or build keeps the previous lexicon
// serving. Call the returned stop function to clean up.
func (l *Loader) Watch(ctx context.Context) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("manifest watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("manifest watcher add %s: %w", l.path, err)
	}
	l.watcher = w

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					lex, err := l.load(ctx)
					observability.Build().OnReload(ctx, l.name(), err)
					if err != nil {
						// Keep serving the old lexicon.
						continue
					}
					l.swap(lex)
				}
			case <-w.Errors:
				// Ignore watcher errors.
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

// Reload forces an immediate rebuild from the manifest file.
func (l *Loader) Reload(ctx context.Context) (*Lexicon, error) {
	lex, err := l.load(ctx)
	observability.Build().OnReload(ctx, l.name(), err)
	if err != nil {
		return nil, err
	}
	l.swap(lex)
	return lex, nil
}

func (l *Loader) swap(lex *Lexicon) {
	l.mu.Lock()
	l.current = lex
	callbacks := make([]func(*Lexicon), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(lex)
	}
}

func (l *Loader) name() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.current == nil {
		return ""
	}
	return l.current.Name
}

func (l *Loader) load(ctx context.Context) (*Lexicon, error) {
	m, _, err := LoadManifest(l.path)
	if err != nil {
		return nil, err
	}
	return Build(ctx, m)
}
