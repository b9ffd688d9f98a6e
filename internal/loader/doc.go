// Package loader implements the resource-loading core of assetloader.
//
// A Loader is one independent content context: it resolves the root manifest
// exactly once, computes dependency closures over the manifest's DAG,
// downloads units under a global concurrency cap with per-attempt timeout
// and fixed retry count, caches completed units for the lifetime of the
// context, and reports aggregate download progress.
//
// # Registry
//
// Loaders are owned by a Registry keyed by context name:
//
//	reg := loader.NewRegistry(settings, nil, logger)
//	manifestURL, unitURL := fetch.NewBaseResolvers("https://cdn.example.com/content", "manifest.json")
//
//	l, err := reg.GetInstance("main", manifestURL, unitURL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := l.DownloadAll(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// DestroyInstance tears a context down; a later GetInstance for the same
// name constructs a fresh context with an empty cache and unloaded manifest.
//
// # Exactly-once downloads
//
// Each unit is fetched over the network at most once per context. The first
// request for a unit id registers an in-flight operation; concurrent
// requests for the same id, including ones arriving through overlapping
// dependency closures, attach to it. Completed units are served from the
// cache with no network access.
//
// # Dependency closures
//
// Requesting a unit downloads its full transitive dependency set first: a
// unit's download never starts before every direct dependency has completed.
// Ordering between independent siblings is unconstrained. A cycle in the
// graph fails the closure with model.ErrDependencyCycle instead of recursing
// unboundedly.
//
// # Failure policy
//
// A fetch is retried with the same per-attempt timeout up to the configured
// count. Once exhausted, the terminal error reaches every waiter attached to
// the unit and fails every closure that depends on it; dependents that had
// not started are never fetched. Terminal failures are not cached: a later
// top-level request for the same id starts a fresh attempt series. The same
// reattempt policy applies to the manifest.
package loader
