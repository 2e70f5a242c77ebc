// timer/timer.go
package timer

import (
	"container/heap"
	"sync"
	"time"
)

type task struct {
	id       int64
	execute  time.Time
	callback func()
	index    int
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	return q[i].execute.Before(q[j].execute)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	n := len(*q)
	t := x.(*task)
	t.index = n
	*q = append(*q, t)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	t.index = -1
	*q = old[0 : n-1]
	return t
}

// Manager is a heap-based one-shot scheduler shared by all rooms. Callbacks
// run on their own goroutine; rooms use them only to post a message back
// into their inbox, so firing never touches room state directly.
type Manager struct {
	queue   taskQueue
	mutex   sync.Mutex
	nextID  int64
	ticker  *time.Ticker
	closeCh chan struct{}
}

func NewManager() *Manager {
	m := &Manager{
		queue:   make(taskQueue, 0),
		nextID:  1,
		ticker:  time.NewTicker(50 * time.Millisecond),
		closeCh: make(chan struct{}),
	}
	heap.Init(&m.queue)
	go m.process()
	return m
}

// After schedules callback once after delay and returns a cancel handle.
func (m *Manager) After(delay time.Duration, callback func()) int64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	t := &task{
		id:       m.nextID,
		execute:  time.Now().Add(delay),
		callback: callback,
	}
	m.nextID++

	heap.Push(&m.queue, t)
	return t.id
}

// Cancel removes a pending timer. Canceling an already-fired or unknown id
// is a no-op.
func (m *Manager) Cancel(id int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, t := range m.queue {
		if t.id == id {
			heap.Remove(&m.queue, i)
			break
		}
	}
}

func (m *Manager) Close() {
	close(m.closeCh)
}

func (m *Manager) process() {
	defer m.ticker.Stop()

	for {
		select {
		case <-m.ticker.C:
			var due []*task
			m.mutex.Lock()
			now := time.Now()
			for m.queue.Len() > 0 {
				t := m.queue[0]
				if t.execute.After(now) {
					break
				}
				heap.Pop(&m.queue)
				due = append(due, t)
			}
			m.mutex.Unlock()

			for _, t := range due {
				go t.callback()
			}

		case <-m.closeCh:
			return
		}
	}
}
