package progress

import "sync"

// Snapshot is one observation of aggregate download progress.
type Snapshot struct {
	// Fraction is sum(per-unit fractions) / TotalUnits, in [0,1].
	// Zero while TotalUnits is unknown.
	Fraction float64

	// TotalUnits is the unit count from the manifest, or 0 before the
	// manifest has been loaded.
	TotalUnits int

	// Completed is the number of units whose fraction has reached 1.
	Completed int
}

// Tracker aggregates per-unit download progress for one loader context.
// All methods are safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	total     int
	fractions map[string]float64
	sinks     map[string]*Sink
	subs      map[int]chan Snapshot
	nextSub   int
}

// NewTracker creates an empty tracker. The total unit count is unknown
// until SetTotal is called with the manifest's unit count.
func NewTracker() *Tracker {
	return &Tracker{
		fractions: make(map[string]float64),
		sinks:     make(map[string]*Sink),
		subs:      make(map[int]chan Snapshot),
	}
}

// SetTotal records the total unit count once the manifest is loaded and
// notifies subscribers.
func (t *Tracker) SetTotal(n int) {
	t.mu.Lock()
	t.total = n
	t.notifyLocked()
	t.mu.Unlock()
}

// Sink returns the progress sink for a unit id, creating it on first use.
// Repeated calls for the same id return the same sink.
func (t *Tracker) Sink(unitID string) *Sink {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sinks[unitID]
	if !ok {
		s = &Sink{tracker: t, unitID: unitID}
		t.sinks[unitID] = s
	}
	return s
}

// Snapshot returns the current aggregate progress.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Subscribe returns a channel of aggregate progress snapshots and a cancel
// function. The channel is closed when cancel is called.
func (t *Tracker) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = ch
	ch <- t.snapshotLocked()
	t.mu.Unlock()

	cancel := func() {
		t.mu.Lock()
		if _, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(ch)
		}
		t.mu.Unlock()
	}
	return ch, cancel
}

func (t *Tracker) snapshotLocked() Snapshot {
	snap := Snapshot{TotalUnits: t.total}
	if t.total == 0 {
		return snap
	}

	var sum float64
	for _, f := range t.fractions {
		sum += f
		if f >= 1 {
			snap.Completed++
		}
	}
	snap.Fraction = sum / float64(t.total)
	return snap
}

// notifyLocked pushes the current snapshot to every subscriber without
// blocking: a full subscriber buffer is drained so the newest snapshot wins.
func (t *Tracker) notifyLocked() {
	snap := t.snapshotLocked()
	for _, ch := range t.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// Sink reports the download fraction of a single unit.
type Sink struct {
	tracker *Tracker
	unitID  string
}

// Set records the unit's fraction. Values are clamped to [0,1] and the
// recorded fraction never decreases.
func (s *Sink) Set(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	t := s.tracker
	t.mu.Lock()
	if fraction > t.fractions[s.unitID] {
		t.fractions[s.unitID] = fraction
		t.notifyLocked()
	}
	t.mu.Unlock()
}

// Complete marks the unit fully downloaded.
func (s *Sink) Complete() {
	s.Set(1)
}

// Fraction returns the unit's recorded fraction.
func (s *Sink) Fraction() float64 {
	t := s.tracker
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fractions[s.unitID]
}
