// Package progress tracks per-unit download fractions and exposes a running
// aggregate for a loader context.
//
// Each unit id gets one Sink, created lazily and reused for repeated queries
// of the same id. A sink's fraction is clamped to [0,1] and is monotonically
// non-decreasing. The aggregate is:
//
//	sum(sink fractions) / totalUnitCount
//
// The total unit count comes from the manifest; snapshots taken before the
// manifest is loaded report TotalUnits == 0 and a zero fraction, which
// consumers must treat as not yet meaningful.
//
// # Subscriptions
//
//	ch, cancel := tracker.Subscribe()
//	defer cancel()
//	for snap := range ch {
//	    fmt.Printf("%.0f%%\n", snap.Fraction*100)
//	}
//
// Subscriber channels are buffered and coalescing: when a subscriber lags,
// intermediate snapshots are replaced by newer ones rather than blocking the
// downloaders.
package progress
