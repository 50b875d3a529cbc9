// Package queue caps how many operations are in flight at once and starts the
// rest strictly in submission order.
package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrsteele09/go-ukci-client/internal/errors"
	"github.com/jrsteele09/go-ukci-client/internal/metrics"
	"github.com/rs/zerolog/log"
)

// DefaultLimit is the number of operations allowed in flight when none is given.
const DefaultLimit = 5

// Operation is a unit of queued work.
type Operation func(ctx context.Context) (any, error)

type task struct {
	ctx     context.Context
	op      Operation
	future  *Future
	started chan struct{}
}

// Stats is a snapshot of the queue's state.
type Stats struct {
	Limit     int
	Running   int
	Queued    int
	Completed uint64
	Failed    uint64
}

// Queue admits at most Limit operations at a time. Waiting operations are held
// in a FIFO list and admitted as running ones finish.
type Queue struct {
	mu        sync.Mutex
	limit     int
	running   int
	pending   []*task
	completed uint64
	failed    uint64
}

func New(limit int) *Queue {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Queue{limit: limit}
}

// Submit enqueues op and returns straight away. The returned Future settles
// exactly once, after op has run. Cancelling ctx does not withdraw op; it only
// stops callers waiting on it.
func (q *Queue) Submit(ctx context.Context, op Operation) *Future {
	future := newFuture()
	if op == nil {
		future.settle(nil, errors.Wrapf(errors.ErrNilOperation, "[queue Submit]"))
		return future
	}

	q.mu.Lock()
	q.pending = append(q.pending, &task{
		ctx:     context.WithoutCancel(ctx),
		op:      op,
		future:  future,
		started: make(chan struct{}),
	})
	metrics.QueueWaiting.Inc()
	q.admitLocked()
	q.mu.Unlock()

	return future
}

// admitLocked starts queued tasks while there is a free slot. q.mu must be held.
// Each task is handed off only once the previous one is about to call its op, so
// operations begin in submission order even when several slots free up at once.
func (q *Queue) admitLocked() {
	for q.running < q.limit && len(q.pending) > 0 {
		t := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.running++
		metrics.QueueWaiting.Dec()
		metrics.QueueRunning.Inc()
		go q.run(t)
		<-t.started
	}
}

func (q *Queue) run(t *task) {
	value, err := q.execute(t)

	q.mu.Lock()
	q.running--
	if err != nil {
		q.failed++
	} else {
		q.completed++
	}
	metrics.QueueRunning.Dec()
	q.admitLocked()
	q.mu.Unlock()

	if err != nil {
		metrics.QueueSettled.WithLabelValues("failed").Inc()
	} else {
		metrics.QueueSettled.WithLabelValues("ok").Inc()
	}
	t.future.settle(value, err)
}

func (q *Queue) execute(t *task) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Queued operation panicked")
			value = nil
			err = errors.Wrapf(errors.ErrOperationPanic, "[queue] %s", fmt.Sprint(r))
		}
	}()
	close(t.started)
	return t.op(t.ctx)
}

// Stats returns a point-in-time snapshot.
func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		Limit:     q.limit,
		Running:   q.running,
		Queued:    len(q.pending),
		Completed: q.completed,
		Failed:    q.failed,
	}
}

func (q *Queue) Limit() int {
	return q.limit
}
