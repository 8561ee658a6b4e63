// Package queue provides an unbounded FIFO for messages headed to one client.
// Producers never block; the single consumer blocks until a message arrives or
// the queue is closed.
package queue

import (
	"sync"

	"github.com/jacobpatterson1549/cross-tiles/game/message"
)

// Queue is a multi-producer, single-consumer message buffer.
// The zero value is not usable; create queues with New.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []message.Message
	closed bool
}

// New creates an empty, open queue.
func New() *Queue {
	var q Queue
	q.cond = sync.NewCond(&q.mu)
	return &q
}

// Put appends the message.  Messages put after Close are dropped.
func (q *Queue) Put(m message.Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, m)
	q.cond.Signal()
}

// Get removes and returns the oldest message, blocking until one is available.
// It returns ok=false once the queue is closed and drained.
func (q *Queue) Get() (m message.Message, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}
	m = q.items[0]
	q.items = q.items[1:]
	return m, true
}

// Close stops accepting messages.  Buffered messages can still be drained
// with Get.  Close is idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
