package loader

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"assetloader/internal/config"
	"assetloader/internal/fetch"
	"assetloader/internal/model"
)

// Registry owns the named loader contexts of a process. There is no ambient
// global state: callers construct a Registry and share it explicitly.
type Registry struct {
	settings *config.Settings
	fetcher  fetch.Fetcher
	logger   *log.Logger

	mu      sync.Mutex
	loaders map[string]*Loader
}

// NewRegistry creates a registry. Nil arguments fall back to
// config.DefaultSettings, the HTTP fetcher, and a discarded logger.
func NewRegistry(settings *config.Settings, fetcher fetch.Fetcher, logger *log.Logger) *Registry {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if fetcher == nil {
		fetcher = fetch.NewClient(settings.UserAgent)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Registry{
		settings: settings,
		fetcher:  fetcher,
		logger:   logger,
		loaders:  make(map[string]*Loader),
	}
}

// GetInstance returns the loader context registered under name, creating it
// if absent.
//
// Creation fails with model.ErrInvalidArgument when either URL resolver is
// nil; the arguments have no effect on an already-existing context. Safe
// under concurrent calls for the same or different names.
func (r *Registry) GetInstance(name string, manifestURL fetch.ManifestURLResolver, unitURL fetch.UnitURLResolver) (*Loader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.loaders[name]; ok {
		return l, nil
	}

	if manifestURL == nil || unitURL == nil {
		return nil, fmt.Errorf("context %q requires both URL resolvers: %w", name, model.ErrInvalidArgument)
	}

	l := newLoader(name, r.settings, r.fetcher, r.logger.With("context", name), manifestURL, unitURL)
	r.loaders[name] = l
	r.logger.Debug("created loader context", "context", name)
	return l, nil
}

// DestroyInstance removes the named context. Requests already running on
// the destroyed loader finish against its (now unreachable) state; a later
// GetInstance for the same name constructs a fresh context with an empty
// cache and unloaded manifest.
func (r *Registry) DestroyInstance(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.loaders, name)
}
