package carte

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestAssemblerPool - Bounded concurrent exports
// ---------------------------------------------------------------------------

func TestAssemblerPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := NewAssemblerPool(2)
	if pool.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", pool.Size())
	}

	ctx := context.Background()
	a1, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	a2, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if a1 == a2 {
		t.Error("Acquire() returned the same assembler twice")
	}

	// Pool is exhausted: a bounded wait must time out.
	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(waitCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() on exhausted pool error = %v, want DeadlineExceeded", err)
	}

	pool.Release(a1)
	a3, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() after Release error = %v", err)
	}
	if a3 != a1 {
		t.Error("Acquire() did not reuse the released assembler")
	}

	pool.Release(nil)
}

func TestAssemblerPool_InvalidOptions(t *testing.T) {
	t.Parallel()

	pool := NewAssemblerPool(1, WithRateLimit(-1, 1))
	for i := 0; i < 2; i++ {
		if _, err := pool.Acquire(context.Background()); err == nil {
			t.Fatal("Acquire() error = nil, want option error")
		}
	}
}

func TestAssemblerPool_Concurrent(t *testing.T) {
	t.Parallel()

	pool := NewAssemblerPool(3, WithClock(func() time.Time { return fixedNow }))

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			a, err := pool.Acquire(context.Background())
			if err != nil {
				errs <- err
				return
			}
			defer pool.Release(a)

			res, err := a.Assemble(context.Background(), Input{Record: &ProjectRecord{Name: "Bloc A"}})
			if err != nil {
				errs <- err
				return
			}
			if res.Pages != 1 {
				errs <- errors.New("unexpected page count")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := ResolvePoolSize(5); got != 5 {
		t.Errorf("ResolvePoolSize(5) = %d, want 5", got)
	}

	want := min(max(runtime.GOMAXPROCS(0), MinPoolSize), MaxPoolSize)
	if got := ResolvePoolSize(0); got != want {
		t.Errorf("ResolvePoolSize(0) = %d, want %d", got, want)
	}
}

func TestNewAssemblerPool_MinimumSize(t *testing.T) {
	t.Parallel()

	if got := NewAssemblerPool(0).Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}
