package loader

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"assetloader/internal/model"
)

// resolveClosure computes and awaits the full dependency closure of unitID,
// then downloads the unit itself. Resolution for a given id is memoized in a
// per-id future table, so shared sub-graphs are only walked once and
// repeated requests attach to one in-flight resolution.
//
// path holds the unit ids currently being resolved on this branch of the
// walk; revisiting one means the graph is not a DAG.
func (l *Loader) resolveClosure(ctx context.Context, unitID string, path map[string]bool) (*model.Unit, error) {
	if path[unitID] {
		return nil, fmt.Errorf("unit %q: %w", unitID, model.ErrDependencyCycle)
	}

	m, err := l.LoadManifest(ctx)
	if err != nil {
		return nil, err
	}
	if !m.Has(unitID) {
		return nil, fmt.Errorf("unit %q not declared in manifest: %w", unitID, model.ErrMalformedManifest)
	}

	l.mu.Lock()
	if f, ok := l.closures[unitID]; ok {
		l.mu.Unlock()
		return f.await(ctx)
	}
	f := newFuture[*model.Unit]()
	l.closures[unitID] = f
	l.mu.Unlock()

	u, err := l.walkClosure(ctx, m, unitID, path)
	if err != nil {
		// Drop the failed resolution so a fresh top-level request can
		// reattempt it.
		l.mu.Lock()
		if l.closures[unitID] == f {
			delete(l.closures, unitID)
		}
		l.mu.Unlock()
	}
	f.complete(u, err)
	return u, err
}

// walkClosure resolves every direct dependency's closure, waits for all of
// them, and only then schedules the unit itself for download. The first
// dependency error fails the whole closure request.
func (l *Loader) walkClosure(ctx context.Context, m *model.Manifest, unitID string, path map[string]bool) (*model.Unit, error) {
	deps := m.DirectDependencies(unitID)
	if len(deps) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for _, dep := range deps {
			branch := clonePath(path, unitID)
			g.Go(func() error {
				_, err := l.resolveClosure(gctx, dep, branch)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("dependencies of %q: %w", unitID, err)
		}
	}

	return l.Download(ctx, unitID)
}

// clonePath copies path and adds unitID. Each dependency branch walks with
// its own copy, so sibling branches never race on the visited set.
func clonePath(path map[string]bool, unitID string) map[string]bool {
	branch := make(map[string]bool, len(path)+1)
	for id := range path {
		branch[id] = true
	}
	branch[unitID] = true
	return branch
}
