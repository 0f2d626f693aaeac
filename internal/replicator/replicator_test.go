package replicator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/example/pitstop/internal/ports/secondary"
)

// fakeWriter records pushed plates and can be made to block.
type fakeWriter struct {
	mu      sync.Mutex
	plates  []string
	release chan struct{} // when non-nil, Write blocks until closed
}

func (f *fakeWriter) Write(ctx context.Context, record *secondary.MirrorRecord) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plates = append(f.plates, record.Plate)
	return nil
}

func (f *fakeWriter) Ping(ctx context.Context) error { return nil }
func (f *fakeWriter) Close()                         {}

func (f *fakeWriter) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.plates...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestReplicator_PushesEnqueuedSnapshots(t *testing.T) {
	writer := &fakeWriter{}
	r := New(writer, 8)
	defer r.Close()

	r.Enqueue(&secondary.MirrorRecord{Plate: "1234ABC"})
	r.Enqueue(&secondary.MirrorRecord{Plate: "5678DEF"})

	waitFor(t, func() bool { return len(writer.seen()) == 2 })
	got := writer.seen()
	if got[0] != "1234ABC" || got[1] != "5678DEF" {
		t.Errorf("expected in-order pushes, got %v", got)
	}
}

func TestReplicator_EnqueueNeverBlocks(t *testing.T) {
	writer := &fakeWriter{release: make(chan struct{})}
	r := New(writer, 1)
	defer func() {
		close(writer.release)
		r.Close()
	}()

	start := time.Now()
	for i := 0; i < 100; i++ {
		r.Enqueue(&secondary.MirrorRecord{Plate: "9999ZZZ"})
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Enqueue must not block the caller, took %v", elapsed)
	}
}

func TestReplicator_DropsWhenQueueFull(t *testing.T) {
	writer := &fakeWriter{release: make(chan struct{})}
	r := New(writer, 1)

	// First snapshot is picked up by the worker and blocks in Write; the
	// second fills the queue; the third has nowhere to go and is dropped.
	r.Enqueue(&secondary.MirrorRecord{Plate: "AAAA111"})
	time.Sleep(20 * time.Millisecond)
	r.Enqueue(&secondary.MirrorRecord{Plate: "BBBB222"})
	r.Enqueue(&secondary.MirrorRecord{Plate: "CCCC333"})

	close(writer.release)
	waitFor(t, func() bool { return len(writer.seen()) >= 2 })
	r.Close()

	got := writer.seen()
	if len(got) != 2 {
		t.Fatalf("expected exactly 2 pushes (third dropped), got %v", got)
	}
	if got[0] != "AAAA111" || got[1] != "BBBB222" {
		t.Errorf("unexpected pushes: %v", got)
	}
}

func TestReplicator_CloseDrainsQueued(t *testing.T) {
	writer := &fakeWriter{}
	r := New(writer, 8)

	r.Enqueue(&secondary.MirrorRecord{Plate: "DDDD444"})
	r.Enqueue(&secondary.MirrorRecord{Plate: "EEEE555"})
	r.Close()

	if got := writer.seen(); len(got) != 2 {
		t.Errorf("expected Close to drain queued snapshots, got %v", got)
	}
}

func TestReplicator_EnqueueAfterCloseIsDropped(t *testing.T) {
	writer := &fakeWriter{}
	r := New(writer, 8)
	r.Close()

	// Must not panic or block.
	r.Enqueue(&secondary.MirrorRecord{Plate: "FFFF666"})

	if got := writer.seen(); len(got) != 0 {
		t.Errorf("expected nothing pushed after close, got %v", got)
	}
}
