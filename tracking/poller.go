package tracking

import (
	"context"
	"sync"
	"time"

	"go-restaurant-operations/models"
)

const defaultInterval = 12 * time.Second

// OrderUpdate is one order's freshly polled state.
type OrderUpdate struct {
	Order_id string
	Status   models.OrderStatus
}

// PollFunc calls a read endpoint and returns the current orders visible to
// this client. The endpoint is idempotent; calling it never mutates server
// state.
type PollFunc func(ctx context.Context) ([]OrderUpdate, error)

// Poller re-invokes fetch on a fixed interval and hands each result to
// onUpdate. Staleness between polls is accepted, bounded inconsistency.
// Stopping only stops scheduling: a poll already in flight completes and its
// result is discarded.
type Poller struct {
	interval time.Duration
	fetch    PollFunc
	onUpdate func(OrderUpdate)

	stopOnce sync.Once
	stop     chan struct{}
}

func NewPoller(interval time.Duration, fetch PollFunc, onUpdate func(OrderUpdate)) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		interval: interval,
		fetch:    fetch,
		onUpdate: onUpdate,
		stop:     make(chan struct{}),
	}
}

// Start launches the poll loop. The loop ends when ctx is cancelled or Stop
// is called.
func (p *Poller) Start(ctx context.Context) {
	go p.run(ctx)
}

func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	updates, err := p.fetch(ctx)
	if err != nil {
		// transient by assumption; the next tick retries
		return
	}
	select {
	case <-p.stop:
		return // stopped while in flight; drop the result
	case <-ctx.Done():
		return // cancelled while in flight; drop the result
	default:
	}
	for _, update := range updates {
		p.onUpdate(update)
	}
}

// TrackOrder wires a poller to a recovery store: every poll result matching
// the remembered order for token is reconciled into the store. The returned
// poller is already running.
func TrackOrder(ctx context.Context, token string, store *RecoveryStore, interval time.Duration, fetch PollFunc) *Poller {
	p := NewPoller(interval, fetch, func(update OrderUpdate) {
		rec, ok := store.Lookup(token)
		if !ok || rec.Order_id != update.Order_id {
			return
		}
		store.Reconcile(token, update.Status)
	})
	p.Start(ctx)
	return p
}
