package loader

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"assetloader/internal/fetch"
	"assetloader/internal/model"
)

// Download returns the unit, fetching it if needed.
//
// A cached unit is returned immediately with no network access. Otherwise
// the caller either starts the single in-flight download for the id or
// attaches to one already running; every waiter observes the same result.
// The unit is stored in the cache before the waiters are released.
//
// Only units declared in the manifest can be downloaded, so no progress
// sink is ever created for an id outside the manifest's total.
func (l *Loader) Download(ctx context.Context, unitID string) (*model.Unit, error) {
	m, err := l.LoadManifest(ctx)
	if err != nil {
		return nil, err
	}
	if !m.Has(unitID) {
		return nil, fmt.Errorf("unit %q not declared in manifest: %w", unitID, model.ErrMalformedManifest)
	}

	l.mu.Lock()
	if u, ok := l.units[unitID]; ok {
		l.mu.Unlock()
		return u, nil
	}
	if f, ok := l.inflight[unitID]; ok {
		l.mu.Unlock()
		l.logger.Debug("attaching to in-flight download", "unit", unitID)
		return f.await(ctx)
	}
	f := newFuture[*model.Unit]()
	l.inflight[unitID] = f
	delete(l.failed, unitID)
	l.mu.Unlock()

	u, err := l.fetchUnit(ctx, unitID)

	l.mu.Lock()
	if err == nil {
		l.units[unitID] = u
	} else {
		l.failed[unitID] = true
	}
	delete(l.inflight, unitID)
	l.mu.Unlock()

	f.complete(u, err)
	return u, err
}

// fetchUnit performs the capped, retried network fetch for one unit.
func (l *Loader) fetchUnit(ctx context.Context, unitID string) (*model.Unit, error) {
	url, err := l.unitURL(unitID)
	if err != nil {
		return nil, fmt.Errorf("resolve unit %q: %w", unitID, err)
	}

	// One concurrency slot per in-flight download. Acquire blocks this
	// request, not the process, and the deferred release runs on every
	// exit path.
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer l.sem.Release(1)

	sink := l.tracker.Sink(unitID)
	data, err := l.fetchWithRetry(ctx, unitID, url, func(written, total int64) {
		if total > 0 {
			sink.Set(float64(written) / float64(total))
		}
	})
	if err != nil {
		return nil, err
	}

	u := model.DecodeUnitPayload(unitID, data)
	sink.Complete()
	return u, nil
}

// fetchWithRetry fetches url with a fixed per-attempt timeout and a fixed
// number of attempts. The same timeout is reused for every retry.
func (l *Loader) fetchWithRetry(ctx context.Context, what, url string, onProgress fetch.ProgressFunc) ([]byte, error) {
	attempts := l.settings.RetryCount
	if attempts < 1 {
		attempts = 1
	}
	timeout := l.settings.AttemptTimeout()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		data, err := l.fetcher.Fetch(attemptCtx, url, onProgress)
		timedOut := errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
		cancel()

		if err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if timedOut {
			lastErr = fmt.Errorf("%w after %s: %v", model.ErrTimeout, timeout, err)
		} else {
			lastErr = fmt.Errorf("%w: %v", model.ErrFetchFailed, err)
		}

		if attempt < attempts {
			l.logger.Warn("retrying fetch", "what", what, "attempt", attempt, "of", attempts, "err", lastErr)
			l.waitForRetry(ctx, attempt)
		}
	}

	l.logger.Error("fetch failed", "what", what, "attempts", attempts, "err", lastErr)
	return nil, fmt.Errorf("%q: %w after %d attempts: %w", what, model.ErrRetriesExhausted, attempts, lastErr)
}

// waitForRetry sleeps between attempts with exponential backoff, waking
// early on cancellation.
func (l *Loader) waitForRetry(ctx context.Context, attempt int) {
	cooldown := l.settings.RetryCooldown * math.Pow(l.settings.RetryExponent, float64(attempt-1))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}
