package input

import "sync"

// DefaultQueueCapacity bounds the number of pending actions.
const DefaultQueueCapacity = 64

// Queue hands actions from device goroutines to the game loop. Push never
// blocks; once the queue is full the oldest pending action is discarded.
type Queue struct {
	mu       sync.Mutex
	pending  []Action
	capacity int
	dropped  uint64
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{
		pending:  make([]Action, 0, capacity),
		capacity: capacity,
	}
}

func (q *Queue) Push(a Action) {
	if a == ActionNone {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == q.capacity {
		copy(q.pending, q.pending[1:])
		q.pending = q.pending[:len(q.pending)-1]
		q.dropped++
	}
	q.pending = append(q.pending, a)
}

// Drain appends every pending action to dst in arrival order and empties the
// queue.
func (q *Queue) Drain(dst []Action) []Action {
	q.mu.Lock()
	defer q.mu.Unlock()

	dst = append(dst, q.pending...)
	q.pending = q.pending[:0]
	return dst
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Dropped returns how many actions were discarded because the queue was full.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
