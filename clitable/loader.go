package clitable

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// IndexLoader is the process-wide index cache of §5/§9: loading a path
// populates the cache exactly once across all callers sharing the loader,
// and a fsnotify watch invalidates an entry when its backing file changes
// on disk. Callers get a Clone() of the cached IndexTable so mutating one
// caller's copy never affects another's.
type IndexLoader struct {
	preParse   PreParseFunc
	preCompile PreCompileFunc

	mu      sync.Mutex
	cache   map[string]*IndexTable
	watcher *fsnotify.Watcher
}

// NewIndexLoader builds a loader and starts its invalidation watch.
func NewIndexLoader(preParse PreParseFunc, preCompile PreCompileFunc) (*IndexLoader, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "clitable: starting index file watcher")
	}
	l := &IndexLoader{
		preParse:   preParse,
		preCompile: preCompile,
		cache:      make(map[string]*IndexTable),
		watcher:    w,
	}
	go l.watchLoop()
	return l, nil
}

func (l *IndexLoader) watchLoop() {
	for {
		select {
		case ev, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				l.mu.Lock()
				delete(l.cache, ev.Name)
				l.mu.Unlock()
			}
		case _, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Load returns the IndexTable for path, populating the cache on first miss.
// The write on first miss is made idempotent under concurrent callers: if
// two goroutines race to load the same path, only the first result is kept.
func (l *IndexLoader) Load(path string) (*IndexTable, error) {
	l.mu.Lock()
	if cached, ok := l.cache[path]; ok {
		l.mu.Unlock()
		return cached.Clone()
	}
	l.mu.Unlock()

	loaded, err := LoadIndexTable(l.preParse, l.preCompile, path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.cache[path]; ok {
		return cached.Clone()
	}
	l.cache[path] = loaded
	_ = l.watcher.Add(path) // best-effort: a missing watch just means no auto-invalidation
	return loaded.Clone()
}

// Reset drops every cached entry and its watch. Exposed so tests don't leak
// state across cases (§9 Design Notes).
func (l *IndexLoader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for path := range l.cache {
		_ = l.watcher.Remove(path)
	}
	l.cache = make(map[string]*IndexTable)
}

// Close stops the loader's file watch.
func (l *IndexLoader) Close() error {
	return l.watcher.Close()
}

var (
	defaultLoaderOnce sync.Once
	defaultLoader     *IndexLoader
	defaultLoaderErr  error
)

// DefaultLoader returns the lazily initialized, process-wide shared loader.
// Open does not fall back to it; callers pass it to Open explicitly.
func DefaultLoader() (*IndexLoader, error) {
	defaultLoaderOnce.Do(func() {
		defaultLoader, defaultLoaderErr = NewIndexLoader(defaultPreParse, defaultPreCompile)
	})
	return defaultLoader, defaultLoaderErr
}

func defaultPreParse(column, value string) string {
	if column == "Command" {
		return expandCompletion(value)
	}
	return value
}

// ResetDefaultLoader clears the process-wide default loader's cache. Tests
// that load index fixtures from temporary paths should call this between
// cases to avoid cross-test staleness.
func ResetDefaultLoader() {
	if defaultLoader != nil {
		defaultLoader.Reset()
	}
}

func defaultPreCompile(column, value string) (string, bool) {
	if column == "Template" {
		return "", false
	}
	return value, true
}
