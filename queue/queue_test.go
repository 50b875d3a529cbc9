package queue_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-ukci-client/internal/errors"
	"github.com/jrsteele09/go-ukci-client/queue"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestQueue_DefaultLimit(t *testing.T) {
	require.Equal(t, queue.DefaultLimit, queue.New(0).Limit())
	require.Equal(t, 5, queue.New(-1).Limit())
	require.Equal(t, 2, queue.New(2).Limit())
}

func TestQueue_SettlesWithValue(t *testing.T) {
	q := queue.New(2)
	f := q.Submit(context.Background(), func(context.Context) (any, error) {
		return "done", nil
	})

	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, "done", v)
}

func TestQueue_FIFOWithSingleSlot(t *testing.T) {
	q := queue.New(1)
	var mu sync.Mutex
	var order []int

	futures := make([]*queue.Future, 0, 10)
	for i := 0; i < 10; i++ {
		i := i
		futures = append(futures, q.Submit(context.Background(), func(context.Context) (any, error) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return i, nil
		}))
	}
	for _, f := range futures {
		_, err := f.Wait(context.Background())
		require.NoError(t, err)
	}

	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestQueue_ConcurrencyCeilingAndOrder(t *testing.T) {
	const limit = 3
	const total = 8
	q := queue.New(limit)

	var running, peak int32
	started := make(chan int, total)
	gates := make([]chan struct{}, total)
	futures := make([]*queue.Future, total)

	for i := 0; i < total; i++ {
		i := i
		gates[i] = make(chan struct{})
		futures[i] = q.Submit(context.Background(), func(context.Context) (any, error) {
			started <- i
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			<-gates[i]
			atomic.AddInt32(&running, -1)
			return nil, nil
		})
	}

	first := make([]int, 0, limit)
	for i := 0; i < limit; i++ {
		first = append(first, <-started)
	}
	require.Equal(t, []int{0, 1, 2}, first)
	require.Equal(t, total-limit, q.Stats().Queued)
	require.Equal(t, limit, q.Stats().Running)

	// Freeing one slot at a time admits exactly the next submission.
	for next := limit; next < total; next++ {
		close(gates[next-limit])
		select {
		case got := <-started:
			require.Equal(t, next, got)
		case <-time.After(time.Second):
			t.Fatalf("operation %d never started", next)
		}
	}
	for i := total - limit; i < total; i++ {
		close(gates[i])
	}
	for _, f := range futures {
		_, err := f.Wait(context.Background())
		require.NoError(t, err)
	}

	require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(limit))
	stats := q.Stats()
	require.Equal(t, 0, stats.Running)
	require.Equal(t, 0, stats.Queued)
	require.Equal(t, uint64(total), stats.Completed)
}

func TestQueue_FreeSlotsStartInSubmissionOrder(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		q := queue.New(queue.DefaultLimit)
		var mu sync.Mutex
		var order []int

		futures := make([]*queue.Future, queue.DefaultLimit)
		for i := range futures {
			i := i
			futures[i] = q.Submit(context.Background(), func(context.Context) (any, error) {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil, nil
			})
		}
		for _, f := range futures {
			_, err := f.Wait(context.Background())
			require.NoError(t, err)
		}
		require.Equal(t, []int{0, 1, 2, 3, 4}, order, "trial %d", trial)
	}
}

func TestQueue_FailureIsolation(t *testing.T) {
	q := queue.New(1)
	boom := fmt.Errorf("backend unavailable")

	failing := q.Submit(context.Background(), func(context.Context) (any, error) {
		return nil, boom
	})
	panicking := q.Submit(context.Background(), func(context.Context) (any, error) {
		panic("nil map")
	})
	ok := q.Submit(context.Background(), func(context.Context) (any, error) {
		return 42, nil
	})

	_, err := failing.Wait(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = panicking.Wait(context.Background())
	require.True(t, errors.Is(err, errors.ErrOperationPanic))
	require.Contains(t, err.Error(), "nil map")

	v, err := ok.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, v)

	stats := q.Stats()
	require.Equal(t, uint64(1), stats.Completed)
	require.Equal(t, uint64(2), stats.Failed)
}

func TestQueue_NilOperation(t *testing.T) {
	q := queue.New(1)
	_, err := q.Submit(context.Background(), nil).Wait(context.Background())
	require.True(t, errors.Is(err, errors.ErrNilOperation))

	_, err = queue.Go[int](q, context.Background(), nil).Wait(context.Background())
	require.True(t, errors.Is(err, errors.ErrNilOperation))
}

func TestQueue_CancelledCallerStillSettles(t *testing.T) {
	q := queue.New(1)
	release := make(chan struct{})
	var ran int32

	ctx, cancel := context.WithCancel(context.Background())
	f := q.Submit(ctx, func(opCtx context.Context) (any, error) {
		<-release
		atomic.AddInt32(&ran, 1)
		return nil, opCtx.Err()
	})
	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer waitCancel()
	_, err := f.Wait(waitCtx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	<-f.Done()
	_, err = f.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&ran))
}

func TestGo_Typed(t *testing.T) {
	q := queue.New(2)
	type company struct{ Number string }

	f := queue.Go(q, context.Background(), func(context.Context) (company, error) {
		return company{Number: "00445790"}, nil
	})
	got, err := f.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, "00445790", got.Number)

	ptr := queue.Go(q, context.Background(), func(context.Context) (*company, error) {
		return nil, nil
	})
	p, err := ptr.Wait(context.Background())
	require.NoError(t, err)
	require.Nil(t, p)
}
