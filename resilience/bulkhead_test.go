package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBulkhead_RejectsWhenFull(t *testing.T) {
	b := NewBulkhead(1, 0)
	release, err := b.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Acquire(context.Background()); !errors.Is(err, ErrBulkheadFull) {
		t.Errorf("err = %v, want ErrBulkheadFull", err)
	}
	release()
	if b.Available() != 1 || b.InUse() != 0 {
		t.Errorf("available=%d in use=%d", b.Available(), b.InUse())
	}
}

func TestBulkhead_WaitTimeout(t *testing.T) {
	b := NewBulkhead(1, 20*time.Millisecond)
	release, _ := b.Acquire(context.Background())
	defer release()

	if _, err := b.Acquire(context.Background()); !errors.Is(err, ErrBulkheadTimeout) {
		t.Errorf("err = %v, want ErrBulkheadTimeout", err)
	}
}

func TestBulkhead_WaitsForSlot(t *testing.T) {
	b := NewBulkhead(1, time.Second)
	release, _ := b.Acquire(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		release()
	}()

	next, err := b.Acquire(context.Background())
	if err != nil {
		t.Fatalf("expected a slot after release, got %v", err)
	}
	next()
}

func TestBulkhead_ContextCancelled(t *testing.T) {
	b := NewBulkhead(1, time.Second)
	release, _ := b.Acquire(context.Background())
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}

func TestGuard(t *testing.T) {
	if NewGuard(nil) != nil || NewGuard(&Config{}) != nil {
		t.Error("no limits should give a nil guard")
	}

	var nilGuard *Guard
	ran := false
	if err := nilGuard.Do(context.Background(), func(context.Context) error { ran = true; return nil }); err != nil || !ran {
		t.Errorf("nil guard should run fn: err=%v ran=%v", err, ran)
	}

	g := NewGuard(&Config{MaxConcurrent: 2})
	var inFlight, peak int32
	var wg sync.WaitGroup
	var rejected atomic.Int32
	start := make(chan struct{})
	for range 6 {
		wg.Go(func() {
			<-start
			err := g.Do(context.Background(), func(context.Context) error {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return nil
			})
			if errors.Is(err, ErrBulkheadFull) {
				rejected.Add(1)
			}
		})
	}
	close(start)
	wg.Wait()

	if peak > 2 {
		t.Errorf("peak concurrency %d exceeds limit", peak)
	}
	if rejected.Load() == 0 {
		t.Error("expected some calls to be rejected")
	}
}
