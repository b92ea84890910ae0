package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunChunked_CapsParallelism(t *testing.T) {
	var inFlight, peak int64

	items := []int{1, 2, 3, 4, 5}
	errs := RunChunked(context.Background(), items, 3, func(_ context.Context, _ int) error {
		cur := atomic.AddInt64(&inFlight, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if cur <= p || atomic.CompareAndSwapInt64(&peak, p, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return nil
	})

	if len(errs) != 5 {
		t.Fatalf("expected 5 results, got %d", len(errs))
	}
	if got := atomic.LoadInt64(&peak); got > 3 {
		t.Fatalf("parallelism cap exceeded: peak=%d", got)
	}
}

func TestRunChunked_IsolatesFailures(t *testing.T) {
	boom := errors.New("boom")
	items := []int{0, 1, 2, 3, 4}
	errs := RunChunked(context.Background(), items, 3, func(_ context.Context, i int) error {
		if i == 1 || i == 3 {
			return boom
		}
		return nil
	})

	for i, err := range errs {
		wantErr := i == 1 || i == 3
		if wantErr && !errors.Is(err, boom) {
			t.Fatalf("item %d: expected failure, got %v", i, err)
		}
		if !wantErr && err != nil {
			t.Fatalf("item %d: expected success, got %v", i, err)
		}
	}
}

func TestRunChunked_Empty(t *testing.T) {
	errs := RunChunked(context.Background(), nil, 3, func(_ context.Context, _ int) error { return nil })
	if len(errs) != 0 {
		t.Fatalf("expected no results, got %d", len(errs))
	}
}

func TestRunChunked_DefaultParallelism(t *testing.T) {
	items := make([]int, 7)
	var count int64
	errs := RunChunked(context.Background(), items, 0, func(_ context.Context, _ int) error {
		atomic.AddInt64(&count, 1)
		return nil
	})
	if len(errs) != 7 || atomic.LoadInt64(&count) != 7 {
		t.Fatalf("expected all items processed, got %d/%d", count, len(errs))
	}
}
