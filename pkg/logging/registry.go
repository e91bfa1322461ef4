package logging

import (
	"log/slog"
	"strings"
	"sync"
)

// registry holds the minimum severity for every named logger that has been
// touched. Names are hierarchical: the effective level for "azure.core.pipeline"
// is the entry for the longest dot-prefix that exists ("azure.core", then
// "azure"), falling back to the root level.
type registry struct {
	mu    sync.RWMutex
	root  *slog.LevelVar
	named map[string]*slog.LevelVar
}

func newRegistry() *registry {
	return &registry{
		root:  new(slog.LevelVar),
		named: make(map[string]*slog.LevelVar),
	}
}

func (r *registry) setRoot(l slog.Level) {
	r.root.Set(l)
}

func (r *registry) set(name string, l slog.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.named[name]
	if !ok {
		v = new(slog.LevelVar)
		r.named[name] = v
	}
	v.Set(l)
}

func (r *registry) effective(name string) slog.Level {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for n := name; n != ""; {
		if v, ok := r.named[n]; ok {
			return v.Level()
		}

		i := strings.LastIndex(n, ".")
		if i < 0 {
			break
		}
		n = n[:i]
	}

	return r.root.Level()
}
