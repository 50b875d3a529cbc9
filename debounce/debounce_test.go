package debounce_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-ukci-client/debounce"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDebouncer_CollapsesBurst(t *testing.T) {
	d := debounce.NewDebouncer(50 * time.Millisecond)
	var calls int32

	for i := 0; i < 5; i++ {
		d.Debounce(func() { atomic.AddInt32(&calls, 1) })
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.False(t, d.Pending())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := debounce.NewDebouncer(30 * time.Millisecond)
	var calls int32

	d.Debounce(func() { atomic.AddInt32(&calls, 1) })
	require.True(t, d.Pending())
	d.Cancel()
	require.False(t, d.Pending())

	time.Sleep(80 * time.Millisecond)
	require.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestDebouncer_Immediate(t *testing.T) {
	d := debounce.NewDebouncer(30 * time.Millisecond)
	var pending, immediate int32

	d.Debounce(func() { atomic.AddInt32(&pending, 1) })
	d.Immediate(func() { atomic.AddInt32(&immediate, 1) })

	time.Sleep(80 * time.Millisecond)
	require.Equal(t, int32(0), atomic.LoadInt32(&pending))
	require.Equal(t, int32(1), atomic.LoadInt32(&immediate))
}

func TestNew_LastArgumentWins(t *testing.T) {
	var mu sync.Mutex
	var got []string
	fn := debounce.New(func(q string) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, q)
	}, 40*time.Millisecond)

	for _, q := range []string{"a", "ac", "acm", "acme"} {
		fn(q)
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"acme"}, got)
}

func TestNew_SeparateCallablesAreIndependent(t *testing.T) {
	var a, b int32
	fa := debounce.New(func(int) { atomic.AddInt32(&a, 1) }, 20*time.Millisecond)
	fb := debounce.New(func(int) { atomic.AddInt32(&b, 1) }, 20*time.Millisecond)

	fa(1)
	fb(1)

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&a) == 1 && atomic.LoadInt32(&b) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSearchDispatcher(t *testing.T) {
	t.Run("short query short-circuits", func(t *testing.T) {
		var searches, empties int32
		s := debounce.NewSearchDispatcher(20*time.Millisecond, 2,
			func(context.Context, string) { atomic.AddInt32(&searches, 1) },
			func() { atomic.AddInt32(&empties, 1) })

		s.Dispatch(context.Background(), "a")
		s.Dispatch(context.Background(), " ")

		require.Equal(t, int32(2), atomic.LoadInt32(&empties))
		time.Sleep(60 * time.Millisecond)
		require.Equal(t, int32(0), atomic.LoadInt32(&searches))
	})

	t.Run("short query cancels pending search", func(t *testing.T) {
		var searches int32
		s := debounce.NewSearchDispatcher(40*time.Millisecond, 2,
			func(context.Context, string) { atomic.AddInt32(&searches, 1) },
			nil)

		s.Dispatch(context.Background(), "ac")
		s.Dispatch(context.Background(), "a")

		time.Sleep(100 * time.Millisecond)
		require.Equal(t, int32(0), atomic.LoadInt32(&searches))
	})

	t.Run("burst runs last query once", func(t *testing.T) {
		queries := make(chan string, 4)
		s := debounce.NewSearchDispatcher(30*time.Millisecond, 0,
			func(_ context.Context, q string) { queries <- q },
			nil)
		require.Equal(t, debounce.DefaultMinLength, s.MinLength)

		for _, q := range []string{"te", "tes", "tesc", "tesco"} {
			s.Dispatch(context.Background(), q)
		}

		select {
		case q := <-queries:
			require.Equal(t, "tesco", q)
		case <-time.After(time.Second):
			t.Fatal("search never ran")
		}
		time.Sleep(60 * time.Millisecond)
		require.Empty(t, queries)
	})

	t.Run("cancelled context drops search", func(t *testing.T) {
		var searches int32
		s := debounce.NewSearchDispatcher(20*time.Millisecond, 2,
			func(context.Context, string) { atomic.AddInt32(&searches, 1) },
			nil)
		ctx, cancel := context.WithCancel(context.Background())
		s.Dispatch(ctx, "barclays")
		cancel()

		time.Sleep(60 * time.Millisecond)
		require.Equal(t, int32(0), atomic.LoadInt32(&searches))
	})
}
