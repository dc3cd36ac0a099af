package room

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Sink consumes notifications. Deliver is called from a single dispatcher
// goroutine, in publish order.
type Sink interface {
	Deliver(Event)
}

type SinkFunc func(Event)

func (f SinkFunc) Deliver(e Event) {
	if f == nil {
		return
	}
	f(e)
}

const dropWarnInterval = 5 * time.Second

// Bus is the bounded outbound queue between the room engine and its sinks.
// Publish never blocks; when the queue is full the event is dropped and counted.
type Bus struct {
	queue  chan Event
	logger Logger

	mu    sync.RWMutex
	sinks []Sink

	dispatchMu  sync.Mutex
	dropped     atomic.Uint64
	lastDropLog atomic.Int64
}

func NewBus(size int, logger Logger) *Bus {
	if size <= 0 {
		size = 1024
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Bus{queue: make(chan Event, size), logger: logger}
}

func (b *Bus) Subscribe(s Sink) {
	if s == nil {
		return
	}
	b.mu.Lock()
	b.sinks = append(b.sinks, s)
	b.mu.Unlock()
}

func (b *Bus) Publish(e Event) bool {
	select {
	case b.queue <- e:
		return true
	default:
	}
	total := b.dropped.Add(1)
	now := time.Now().UnixNano()
	last := b.lastDropLog.Load()
	if now-last >= int64(dropWarnInterval) && b.lastDropLog.CompareAndSwap(last, now) {
		b.logger.Printf("event queue full, dropped %s for room %s (total dropped %d)", e.Kind, e.RoomID, total)
	}
	return false
}

func (b *Bus) Dropped() uint64 { return b.dropped.Load() }

func (b *Bus) Pending() int { return len(b.queue) }

// Run dispatches events until ctx is done, then flushes what is left.
func (b *Bus) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			b.Flush()
			return nil
		case e := <-b.queue:
			b.deliver(e)
		}
	}
}

// Flush synchronously delivers every queued event.
func (b *Bus) Flush() {
	for {
		select {
		case e := <-b.queue:
			b.deliver(e)
		default:
			return
		}
	}
}

func (b *Bus) deliver(e Event) {
	b.dispatchMu.Lock()
	defer b.dispatchMu.Unlock()
	b.mu.RLock()
	sinks := append([]Sink(nil), b.sinks...)
	b.mu.RUnlock()
	for _, s := range sinks {
		b.deliverTo(s, e)
	}
}

func (b *Bus) deliverTo(s Sink, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("sink panic on %s for room %s: %v", e.Kind, e.RoomID, r)
		}
	}()
	s.Deliver(e)
}
