package notification

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher records sold-out notifications off the checkout path.
// Dispatch never blocks the caller; a background worker persists each
// event with a bounded number of attempts and drops it afterwards.
type Dispatcher struct {
	repo        Repository
	logger      *zap.Logger
	events      chan SoldOutEvent
	maxAttempts int
	retryDelay  time.Duration

	wg       sync.WaitGroup
	mu       sync.RWMutex
	closed   bool
	dropped  atomic.Uint64
	recorded atomic.Uint64
}

// NewDispatcher creates a dispatcher with the given buffer and retry policy.
func NewDispatcher(repo Repository, logger *zap.Logger, buffer, maxAttempts int, retryDelay time.Duration) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Dispatcher{
		repo:        repo,
		logger:      logger,
		events:      make(chan SoldOutEvent, buffer),
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
}

// Start launches the background worker.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.worker()
}

// Dispatch enqueues a sold-out event. It returns false when the event
// was dropped because the dispatcher is closed or the buffer is full;
// either way the checkout response is never delayed. Safe to call
// concurrently with Close: the read lock holds the channel open for the
// duration of the send.
func (d *Dispatcher) Dispatch(ev SoldOutEvent) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.dropped.Add(1)
		return false
	}
	select {
	case d.events <- ev:
		return true
	default:
		d.dropped.Add(1)
		d.logger.Warn("notification buffer full, dropping sold-out event",
			zap.String("shop_id", ev.ShopID.String()),
			zap.String("product_id", ev.ProductID.String()))
		return false
	}
}

// Close stops intake, drains buffered events, and waits for the worker.
// The write lock waits out every in-flight Dispatch before the channel
// closes, so no send can hit a closed channel.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	close(d.events)
	d.wg.Wait()
}

// Stats returns how many events were recorded and dropped.
func (d *Dispatcher) Stats() (recorded, dropped uint64) {
	return d.recorded.Load(), d.dropped.Load()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.events {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev SoldOutEvent) {
	n := &Notification{
		ID:        uuid.New(),
		ShopID:    ev.ShopID,
		ProductID: ev.ProductID,
		Color:     ev.Color,
		Size:      ev.Size,
	}
	var lastErr error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		lastErr = d.repo.Create(ctx, n)
		cancel()
		if lastErr == nil {
			d.recorded.Add(1)
			return
		}
		if attempt < d.maxAttempts {
			time.Sleep(d.retryDelay)
		}
	}
	d.dropped.Add(1)
	d.logger.Error("sold-out notification dropped after retries",
		zap.String("shop_id", ev.ShopID.String()),
		zap.String("product_id", ev.ProductID.String()),
		zap.String("color", ev.Color),
		zap.String("size", ev.Size),
		zap.Int("attempts", d.maxAttempts),
		zap.Error(lastErr))
}
