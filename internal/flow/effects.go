package flow

import (
	"context"
	"sync"
)

// DefaultCapacity is the buffer size used by controllers that do not need
// a tighter bound.
const DefaultCapacity = 8

// Effects is a bounded, single-consumer queue of one-shot events.
//
// Emit never blocks. Effects emitted while no consumer is attached stay
// buffered; once the buffer holds capacity entries the oldest one is
// discarded to make room. Each effect reaches at most one subscriber.
type Effects[E any] struct {
	mu       sync.Mutex
	capacity int
	buf      []E
	active   *subscriber
	closed   bool
	dropped  int
}

type subscriber struct {
	cancel context.CancelFunc
	ready  chan struct{}
	done   chan struct{} // closed once the pump has requeued and detached
}

func (s *subscriber) wake() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

func NewEffects[E any](capacity int) *Effects[E] {
	if capacity < 1 {
		capacity = 1
	}
	return &Effects[E]{capacity: capacity}
}

// Emit enqueues e for delivery. After Close it is a no-op.
func (c *Effects[E]) Emit(e E) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if len(c.buf) == c.capacity {
		c.buf = append(c.buf[:0], c.buf[1:]...)
		c.dropped++
	}
	c.buf = append(c.buf, e)
	sub := c.active
	c.mu.Unlock()

	if sub != nil {
		sub.wake()
	}
}

// Subscribe attaches the consumer. Buffered effects are delivered first, in
// emission order. A later Subscribe takes over: the earlier channel is closed
// and receives nothing more. The channel is also closed when ctx is done or
// the queue is closed.
//
// Takeover waits for the earlier consumer to hand back any effect it was
// still holding, so the new channel starts from the oldest undelivered one.
func (c *Effects[E]) Subscribe(ctx context.Context) <-chan E {
	ctx, cancel := context.WithCancel(ctx)
	sub := &subscriber{cancel: cancel, ready: make(chan struct{}, 1), done: make(chan struct{})}
	out := make(chan E)

	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			cancel()
			close(out)
			return out
		}
		prev := c.active
		if prev == nil {
			c.active = sub
			c.mu.Unlock()
			break
		}
		c.mu.Unlock()
		prev.cancel()
		<-prev.done
	}

	sub.wake()
	go c.pump(ctx, sub, out)
	return out
}

func (c *Effects[E]) pump(ctx context.Context, sub *subscriber, out chan<- E) {
	defer close(out)
	defer close(sub.done)
	defer c.detach(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.ready:
		}
		for {
			e, ok := c.pop(sub)
			if !ok {
				break
			}
			select {
			case out <- e:
			case <-ctx.Done():
				c.requeue(e)
				return
			}
		}
	}
}

func (c *Effects[E]) pop(sub *subscriber) (E, bool) {
	var zero E
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != sub || len(c.buf) == 0 {
		return zero, false
	}
	e := c.buf[0]
	c.buf[0] = zero
	c.buf = c.buf[1:]
	return e, true
}

// requeue puts back an effect whose hand-off was interrupted. If newer
// effects already filled the buffer, it is the oldest and gets dropped.
func (c *Effects[E]) requeue(e E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if len(c.buf) >= c.capacity {
		c.dropped++
		return
	}
	c.buf = append([]E{e}, c.buf...)
	if c.active != nil {
		c.active.wake()
	}
}

func (c *Effects[E]) detach(sub *subscriber) {
	sub.cancel()
	c.mu.Lock()
	if c.active == sub {
		c.active = nil
	}
	c.mu.Unlock()
}

// Close detaches the consumer and discards everything still buffered.
func (c *Effects[E]) Close() {
	c.mu.Lock()
	c.closed = true
	c.buf = nil
	sub := c.active
	c.active = nil
	c.mu.Unlock()

	if sub != nil {
		sub.cancel()
	}
}

// Reset detaches the consumer, waits for it to hand back anything it held
// and discards the buffer. Unlike Close, the queue stays usable.
func (c *Effects[E]) Reset() {
	for {
		c.mu.Lock()
		prev := c.active
		if prev == nil {
			c.buf = nil
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
		prev.cancel()
		<-prev.done
	}
}

// Pending reports how many effects are buffered and undelivered.
func (c *Effects[E]) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buf)
}

// Dropped reports how many effects were discarded by the overflow policy.
func (c *Effects[E]) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}
