package state

import "sync"

// Cell holds a single value that is only ever replaced whole. Writers go
// through Update, which applies a function to the latest value under a
// lock, so concurrent writers never lose each other's changes. Every
// replacement is delivered to every subscriber in order.
type Cell[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[*subscription[T]]struct{}
	closed bool
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[*subscription[T]]struct{}),
	}
}

// Load returns the current value.
func (c *Cell[T]) Load() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Update replaces the value with fn(current) and publishes the result.
// fn runs under the cell lock and must not call back into the cell.
func (c *Cell[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = fn(c.value)
	for s := range c.subs {
		s.push(c.value)
	}
	return c.value
}

// Subscribe returns a channel that first yields the current value and then
// every later replacement, in order. The channel is closed after cancel is
// called or the cell is closed. A slow reader delays only itself.
func (c *Cell[T]) Subscribe() (<-chan T, func()) {
	s := newSubscription[T]()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		s.stop()
		go s.pump()
		return s.out, func() {}
	}
	s.push(c.value)
	c.subs[s] = struct{}{}
	c.mu.Unlock()

	go s.pump()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, s)
			c.mu.Unlock()
			s.stop()
		})
	}
	return s.out, cancel
}

// Close ends all subscriptions. Updates after Close still change the value
// but are not delivered.
func (c *Cell[T]) Close() {
	c.mu.Lock()
	subs := c.subs
	c.subs = make(map[*subscription[T]]struct{})
	c.closed = true
	c.mu.Unlock()

	for s := range subs {
		s.stop()
	}
}

// subscription is an unbounded FIFO between the cell and one reader.
type subscription[T any] struct {
	mu      sync.Mutex
	pending []T
	wake    chan struct{}
	done    chan struct{}
	out     chan T
	once    sync.Once
}

func newSubscription[T any]() *subscription[T] {
	return &subscription[T]{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		out:  make(chan T),
	}
}

func (s *subscription[T]) push(v T) {
	s.mu.Lock()
	s.pending = append(s.pending, v)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscription[T]) stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *subscription[T]) pump() {
	defer close(s.out)
	for {
		select {
		case <-s.wake:
		case <-s.done:
			return
		}

		s.mu.Lock()
		batch := s.pending
		s.pending = nil
		s.mu.Unlock()

		for _, v := range batch {
			select {
			case s.out <- v:
			case <-s.done:
				return
			}
		}
	}
}
