package tracking

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-restaurant-operations/models"
)

func TestPollerDeliversUpdates(t *testing.T) {
	var mu sync.Mutex
	var got []OrderUpdate

	fetch := func(ctx context.Context) ([]OrderUpdate, error) {
		return []OrderUpdate{{Order_id: "order-1", Status: models.StatusPreparing}}, nil
	}
	p := NewPoller(5*time.Millisecond, fetch, func(u OrderUpdate) {
		mu.Lock()
		got = append(got, u)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	deadline := time.After(time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("got %d updates before deadline, want at least 2", n)
		case <-time.After(5 * time.Millisecond):
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if got[0].Order_id != "order-1" || got[0].Status != models.StatusPreparing {
		t.Errorf("first update = %+v", got[0])
	}
}

func TestPollerDiscardsInFlightResultAfterStop(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	fetch := func(ctx context.Context) ([]OrderUpdate, error) {
		started <- struct{}{}
		<-release
		return []OrderUpdate{{Order_id: "order-1", Status: models.StatusReady}}, nil
	}

	var mu sync.Mutex
	delivered := 0
	p := NewPoller(5*time.Millisecond, fetch, func(OrderUpdate) {
		mu.Lock()
		delivered++
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	<-started // a poll is now in flight
	p.Stop()
	close(release) // let the in-flight poll complete

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if delivered != 0 {
		t.Errorf("delivered %d updates after Stop; in-flight results must be discarded", delivered)
	}
}

func TestPollerDiscardsInFlightResultAfterContextCancel(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	fetch := func(ctx context.Context) ([]OrderUpdate, error) {
		started <- struct{}{}
		<-release
		return []OrderUpdate{{Order_id: "order-1", Status: models.StatusServed}}, nil
	}

	var mu sync.Mutex
	delivered := 0
	p := NewPoller(5*time.Millisecond, fetch, func(OrderUpdate) {
		mu.Lock()
		delivered++
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	defer p.Stop()

	<-started // a poll is now in flight
	cancel()
	close(release) // let the in-flight poll complete

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if delivered != 0 {
		t.Errorf("delivered %d updates after context cancel; in-flight results must be discarded", delivered)
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	fetch := func(ctx context.Context) ([]OrderUpdate, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil, nil
	}
	p := NewPoller(5*time.Millisecond, fetch, func(OrderUpdate) {})

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	after := calls
	mu.Unlock()
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if calls != after {
		t.Error("poller kept fetching after its context was cancelled")
	}
}

func TestPollerKeepsGoingPastFetchErrors(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	fetch := func(ctx context.Context) ([]OrderUpdate, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil, context.DeadlineExceeded
	}
	p := NewPoller(5*time.Millisecond, fetch, func(OrderUpdate) {
		t.Error("onUpdate called for a failed poll")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	deadline := time.After(time.Second)
	for {
		mu.Lock()
		n := calls
		mu.Unlock()
		if n >= 3 {
			return // errored polls did not kill the loop
		}
		select {
		case <-deadline:
			t.Fatalf("fetch called %d times before deadline, want at least 3", n)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestTrackOrderReconcilesMatchingOrder(t *testing.T) {
	store := NewRecoveryStore("")
	store.Remember("token-1", OrderRecord{Order_id: "order-1", Order_number: 3, Total: 900, Status: models.StatusPlaced})

	fetch := func(ctx context.Context) ([]OrderUpdate, error) {
		return []OrderUpdate{
			{Order_id: "order-other", Status: models.StatusCancelled},
			{Order_id: "order-1", Status: models.StatusAccepted},
		}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := TrackOrder(ctx, "token-1", store, 5*time.Millisecond, fetch)
	defer p.Stop()

	deadline := time.After(time.Second)
	for {
		rec, ok := store.Lookup("token-1")
		if ok && rec.Status == models.StatusAccepted {
			if rec.Order_number != 3 || rec.Total != 900 {
				t.Errorf("reconcile touched identity fields: %+v", rec)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("record never reconciled to ACCEPTED: %+v", rec)
		case <-time.After(5 * time.Millisecond):
		}
	}
}
