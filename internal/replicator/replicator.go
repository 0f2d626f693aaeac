// Package replicator mirrors accepted local writes to the remote store.
// Replication is best-effort and fire-and-forget: the writer is never
// blocked, failures are logged and discarded, and nothing is retried.
package replicator

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/example/pitstop/internal/ports/secondary"
)

// pushTimeout is the max time allowed for a single mirror push.
const pushTimeout = 5 * time.Second

// DrainDuration is how long Close waits for in-flight pushes before
// abandoning them. Dropped work on shutdown is acceptable. Must be >=
// pushTimeout so an in-flight push can finish.
const DrainDuration = pushTimeout

// defaultQueueSize bounds the work queue; when it is full, new snapshots are
// dropped rather than blocking the writer.
const defaultQueueSize = 64

// Replicator owns the bounded queue and the single worker goroutine that
// consumes it. Snapshots are handed off by value-ownership: after Enqueue the
// caller must not mutate the record.
type Replicator struct {
	writer secondary.MirrorWriter
	queue  chan *secondary.MirrorRecord
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// New starts a replicator pushing to the given writer.
func New(writer secondary.MirrorWriter, queueSize int) *Replicator {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	r := &Replicator{
		writer: writer,
		queue:  make(chan *secondary.MirrorRecord, queueSize),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

// Enqueue hands a snapshot to the worker. It never blocks: when the queue is
// full or the replicator is shut down, the snapshot is dropped with a log
// line. No acknowledgment flows back to the caller.
func (r *Replicator) Enqueue(record *secondary.MirrorRecord) {
	select {
	case <-r.stop:
		log.Printf("replicator: shut down, dropping snapshot for %s", record.Plate)
		return
	default:
	}
	select {
	case r.queue <- record:
	default:
		log.Printf("replicator: queue full, dropping snapshot for %s", record.Plate)
	}
}

// Close stops intake, drains what is already queued for up to DrainDuration,
// and abandons the rest.
func (r *Replicator) Close() {
	r.once.Do(func() {
		close(r.stop)
		select {
		case <-r.done:
		case <-time.After(DrainDuration):
			log.Printf("replicator: drain timed out, abandoning queued snapshots")
		}
	})
}

func (r *Replicator) run() {
	defer close(r.done)
	for {
		select {
		case <-r.stop:
			// Best-effort drain of whatever is already queued.
			for {
				select {
				case record := <-r.queue:
					r.push(record)
				default:
					return
				}
			}
		case record := <-r.queue:
			r.push(record)
		}
	}
}

// push mirrors one snapshot with a short timeout. Errors are logged and
// discarded; the local write is authoritative and is never rolled back.
func (r *Replicator) push(record *secondary.MirrorRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()
	if err := r.writer.Write(ctx, record); err != nil {
		log.Printf("replicator: push failed for %s: %v", record.Plate, err)
	}
}
