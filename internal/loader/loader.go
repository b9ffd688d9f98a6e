package loader

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"assetloader/internal/config"
	"assetloader/internal/fetch"
	"assetloader/internal/manifest"
	"assetloader/internal/model"
	"assetloader/internal/progress"
)

// AssetLocator maps a logical asset name to the id of its owning unit.
// Name-to-unit mapping is supplied by the caller, not owned by the loader.
type AssetLocator func(name string) (unitID string, ok bool)

// Loader is one independent content context.
//
// A Loader owns its manifest state, unit cache, in-flight request table and
// progress tracker. All methods are safe for concurrent use.
type Loader struct {
	name     string
	settings *config.Settings
	fetcher  fetch.Fetcher
	logger   *log.Logger

	manifestURL fetch.ManifestURLResolver
	unitURL     fetch.UnitURLResolver

	// sem caps the number of simultaneously in-flight unit downloads.
	sem     *semaphore.Weighted
	tracker *progress.Tracker

	mu          sync.Mutex
	locate      AssetLocator
	manifestFut *future[*model.Manifest]
	units       map[string]*model.Unit
	inflight    map[string]*future[*model.Unit]
	closures    map[string]*future[*model.Unit]

	// failed marks units whose most recent attempt series ended in error,
	// cleared when a fresh download for the id starts.
	failed map[string]bool
}

func newLoader(name string, settings *config.Settings, fetcher fetch.Fetcher, logger *log.Logger,
	manifestURL fetch.ManifestURLResolver, unitURL fetch.UnitURLResolver) *Loader {
	return &Loader{
		name:        name,
		settings:    settings,
		fetcher:     fetcher,
		logger:      logger,
		manifestURL: manifestURL,
		unitURL:     unitURL,
		sem:         semaphore.NewWeighted(int64(settings.MaxParallelDownloads)),
		tracker:     progress.NewTracker(),
		units:       make(map[string]*model.Unit),
		inflight:    make(map[string]*future[*model.Unit]),
		closures:    make(map[string]*future[*model.Unit]),
		failed:      make(map[string]bool),
	}
}

// Name returns the context name the loader was registered under.
func (l *Loader) Name() string {
	return l.name
}

// SetAssetLocator installs the logical-name-to-unit mapping used by
// LoadAsset.
func (l *Loader) SetAssetLocator(locate AssetLocator) {
	l.mu.Lock()
	l.locate = locate
	l.mu.Unlock()
}

// LoadManifest fetches and decodes the root manifest.
//
// The manifest is fetched at most once per context: the first caller
// initiates a timed, retried fetch and all concurrent and subsequent callers
// observe the same completed result. A terminal failure is delivered to
// every waiter, then cleared so a later call reattempts the fetch.
func (l *Loader) LoadManifest(ctx context.Context) (*model.Manifest, error) {
	l.mu.Lock()
	if f := l.manifestFut; f != nil {
		l.mu.Unlock()
		return f.await(ctx)
	}
	f := newFuture[*model.Manifest]()
	l.manifestFut = f
	l.mu.Unlock()

	m, err := l.fetchManifest(ctx)
	if err != nil {
		l.mu.Lock()
		if l.manifestFut == f {
			l.manifestFut = nil
		}
		l.mu.Unlock()
	} else {
		// Publish the total before waiters wake so their first snapshot
		// is already normalized.
		l.tracker.SetTotal(m.UnitCount())
	}
	f.complete(m, err)
	return m, err
}

func (l *Loader) fetchManifest(ctx context.Context) (*model.Manifest, error) {
	url, err := l.manifestURL()
	if err != nil {
		return nil, fmt.Errorf("resolve manifest: %w", err)
	}

	l.logger.Debug("loading manifest", "url", url)
	data, err := l.fetchWithRetry(ctx, "manifest", url, nil)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Decode(data)
	if err != nil {
		return nil, err
	}

	l.logger.Info("manifest loaded", "units", m.UnitCount())
	return m, nil
}

// ResolveClosure downloads the unit's full dependency closure and then the
// unit itself, returning the loaded unit. The unit's download never starts
// before all of its direct dependencies have completed.
func (l *Loader) ResolveClosure(ctx context.Context, unitID string) (*model.Unit, error) {
	return l.resolveClosure(ctx, unitID, nil)
}

// DownloadAll downloads every unit declared in the manifest, in dependency
// order, under the configured concurrency cap.
func (l *Loader) DownloadAll(ctx context.Context) error {
	m, err := l.LoadManifest(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.settings.MaxParallelDownloads)

	for _, id := range m.AllUnitIDs() {
		g.Go(func() error {
			_, err := l.resolveClosure(gctx, id, nil)
			return err
		})
	}

	return g.Wait()
}

// LoadAsset downloads the closure of the named asset's owning unit and
// extracts the asset as T.
//
// The owning unit comes from the loader's AssetLocator; LoadAsset fails with
// model.ErrInvalidArgument when no locator is installed.
func LoadAsset[T any](ctx context.Context, l *Loader, name string) (T, error) {
	var zero T

	l.mu.Lock()
	locate := l.locate
	l.mu.Unlock()
	if locate == nil {
		return zero, fmt.Errorf("context %q has no asset locator: %w", l.name, model.ErrInvalidArgument)
	}

	unitID, ok := locate(name)
	if !ok {
		return zero, fmt.Errorf("asset %q has no owning unit: %w", name, model.ErrAssetNotFound)
	}

	u, err := l.ResolveClosure(ctx, unitID)
	if err != nil {
		return zero, err
	}

	return Extract[T](u, name)
}

// State reports the lifecycle state of a unit within this context.
//
// A unit whose most recent attempt series ended in error reports
// StateFailed until a new request for it starts; the failure itself is not
// cached, so such a unit may be requested again.
func (l *Loader) State(unitID string) model.LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.units[unitID]; ok {
		return model.StateLoaded
	}
	if _, ok := l.inflight[unitID]; ok {
		return model.StateLoading
	}
	if l.failed[unitID] {
		return model.StateFailed
	}
	return model.StateUnloaded
}

// Progress returns the current aggregate progress snapshot.
func (l *Loader) Progress() progress.Snapshot {
	return l.tracker.Snapshot()
}

// OnProgressChanged returns a stream of aggregate progress snapshots and a
// cancel function. Snapshots emitted before the manifest is loaded carry
// TotalUnits == 0 and are not yet meaningful.
func (l *Loader) OnProgressChanged() (<-chan progress.Snapshot, func()) {
	return l.tracker.Subscribe()
}
