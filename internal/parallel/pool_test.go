package parallel

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolSubmitAndWait(t *testing.T) {
	pool := NewWorkerPool[int](context.Background(), 2, false)
	for i := 0; i < 5; i++ {
		pool.Submit(string(rune('a'+i)), func(ctx context.Context) (int, error) {
			// Later jobs finish first
			time.Sleep(time.Duration(5-i) * time.Millisecond)
			return i * i, nil
		})
	}

	results, errs := pool.Wait()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	for i, r := range results {
		if r.ID != string(rune('a'+i)) || r.Value != i*i {
			t.Errorf("result %d: got %+v", i, r)
		}
	}
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	pool := NewWorkerPool[struct{}](context.Background(), 3, false)
	for i := 0; i < 12; i++ {
		pool.Submit("job", func(ctx context.Context) (struct{}, error) {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			running.Add(-1)
			return struct{}{}, nil
		})
	}
	pool.Wait()
	if got := peak.Load(); got > 3 {
		t.Errorf("peak concurrency %d exceeds 3", got)
	}
}

func TestWorkerPoolErrors(t *testing.T) {
	boom := errors.New("boom")
	pool := NewWorkerPool[string](context.Background(), 0, false)
	pool.Submit("ok", func(ctx context.Context) (string, error) { return "fine", nil })
	pool.Submit("bad", func(ctx context.Context) (string, error) { return "", boom })

	results, errs := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Err != nil || results[1].Err != boom {
		t.Errorf("results: %+v", results)
	}
	if len(errs) != 1 || !errors.Is(errs[0], boom) || !strings.HasPrefix(errs[0].Error(), "bad: ") {
		t.Errorf("errors: %v", errs)
	}
}

func TestWorkerPoolFailFast(t *testing.T) {
	pool := NewWorkerPool[int](context.Background(), 1, true)
	release := make(chan struct{})
	pool.Submit("first", func(ctx context.Context) (int, error) {
		<-release
		return 0, errors.New("first failed")
	})
	for i := 0; i < 3; i++ {
		pool.Submit("later", func(ctx context.Context) (int, error) {
			return 1, nil
		})
	}
	close(release)

	results, errs := pool.Wait()
	if len(results) != 4 {
		t.Fatalf("every job must report a result, got %d", len(results))
	}
	if len(errs) == 0 {
		t.Fatal("expected errors")
	}
	if !strings.HasPrefix(errs[0].Error(), "first: ") {
		t.Errorf("first error should belong to the first job: %v", errs)
	}
}

func TestWorkerPoolErrorsInSubmissionOrder(t *testing.T) {
	pool := NewWorkerPool[int](context.Background(), 0, false)
	for i := 0; i < 5; i++ {
		pool.Submit(string(rune('a'+i)), func(ctx context.Context) (int, error) {
			// Later jobs fail first
			time.Sleep(time.Duration(5-i) * 2 * time.Millisecond)
			return 0, errors.New("failed")
		})
	}

	_, errs := pool.Wait()
	if len(errs) != 5 {
		t.Fatalf("got %d errors, want 5", len(errs))
	}
	for i, err := range errs {
		if want := string(rune('a'+i)) + ": failed"; err.Error() != want {
			t.Errorf("error %d: got %q, want %q", i, err, want)
		}
	}
}

func TestWorkerPoolCanceledParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pool := NewWorkerPool[int](ctx, 2, false)
	pool.Submit("job", func(ctx context.Context) (int, error) { return 1, nil })

	results, errs := pool.Wait()
	if len(results) != 1 || !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("results: %+v", results)
	}
	if len(errs) != 1 {
		t.Errorf("errors: %v", errs)
	}
}
