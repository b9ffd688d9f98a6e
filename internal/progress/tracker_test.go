package progress

import (
	"testing"
	"time"
)

func TestSink_Monotonic(t *testing.T) {
	tr := NewTracker()
	s := tr.Sink("A")

	s.Set(0.5)
	s.Set(0.3) // lower values are ignored
	if got := s.Fraction(); got != 0.5 {
		t.Errorf("Fraction() = %v, want 0.5", got)
	}

	s.Set(0.8)
	if got := s.Fraction(); got != 0.8 {
		t.Errorf("Fraction() = %v, want 0.8", got)
	}
}

func TestSink_Clamped(t *testing.T) {
	tr := NewTracker()
	s := tr.Sink("A")

	s.Set(4.2)
	if got := s.Fraction(); got != 1 {
		t.Errorf("Fraction() = %v, want clamped to 1", got)
	}

	s2 := tr.Sink("B")
	s2.Set(-1)
	if got := s2.Fraction(); got != 0 {
		t.Errorf("Fraction() = %v, want clamped to 0", got)
	}
}

func TestTracker_SinkReused(t *testing.T) {
	tr := NewTracker()
	if tr.Sink("A") != tr.Sink("A") {
		t.Error("repeated Sink calls for the same id should return the same sink")
	}
	if tr.Sink("A") == tr.Sink("B") {
		t.Error("different ids should get different sinks")
	}
}

func TestTracker_SnapshotBeforeManifest(t *testing.T) {
	tr := NewTracker()
	tr.Sink("A").Set(0.5)

	snap := tr.Snapshot()
	if snap.TotalUnits != 0 {
		t.Errorf("TotalUnits = %d, want 0 before SetTotal", snap.TotalUnits)
	}
	if snap.Fraction != 0 {
		t.Errorf("Fraction = %v, want 0 before SetTotal", snap.Fraction)
	}
}

func TestTracker_Aggregate(t *testing.T) {
	tr := NewTracker()
	tr.SetTotal(4)

	tr.Sink("A").Set(1)
	tr.Sink("B").Set(0.5)

	snap := tr.Snapshot()
	if snap.Fraction != 0.375 {
		t.Errorf("Fraction = %v, want 0.375", snap.Fraction)
	}
	if snap.Completed != 1 {
		t.Errorf("Completed = %d, want 1", snap.Completed)
	}

	tr.Sink("B").Complete()
	tr.Sink("C").Complete()
	tr.Sink("D").Complete()

	snap = tr.Snapshot()
	if snap.Fraction != 1 {
		t.Errorf("Fraction = %v, want exactly 1 once all units complete", snap.Fraction)
	}
	if snap.Completed != 4 {
		t.Errorf("Completed = %d, want 4", snap.Completed)
	}
}

func TestTracker_Subscribe(t *testing.T) {
	tr := NewTracker()
	tr.SetTotal(2)

	ch, cancel := tr.Subscribe()
	defer cancel()

	// Initial snapshot is delivered immediately.
	select {
	case snap := <-ch:
		if snap.TotalUnits != 2 {
			t.Errorf("TotalUnits = %d, want 2", snap.TotalUnits)
		}
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	tr.Sink("A").Complete()

	select {
	case snap := <-ch:
		if snap.Fraction != 0.5 {
			t.Errorf("Fraction = %v, want 0.5", snap.Fraction)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot after progress change")
	}
}

func TestTracker_SubscribeCoalesces(t *testing.T) {
	tr := NewTracker()
	tr.SetTotal(10)

	ch, cancel := tr.Subscribe()
	defer cancel()

	// Many updates while the subscriber is not draining must not block,
	// and the newest snapshot must win.
	for i := 1; i <= 10; i++ {
		tr.Sink("A").Set(float64(i) / 10)
	}

	var last Snapshot
	for {
		select {
		case snap := <-ch:
			last = snap
			continue
		default:
		}
		break
	}
	if last.Fraction != 0.1 {
		t.Errorf("coalesced Fraction = %v, want 0.1 (newest: unit A at 1.0 of 10 units)", last.Fraction)
	}
}

func TestTracker_CancelClosesChannel(t *testing.T) {
	tr := NewTracker()
	ch, cancel := tr.Subscribe()

	cancel()
	cancel() // idempotent

	// Drain anything buffered; the channel must then report closed.
	for {
		if _, ok := <-ch; !ok {
			return
		}
	}
}
