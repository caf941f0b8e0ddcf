package driver

import (
	"sync"

	"lumen/internal/source"
)

// taskKind discriminates the task variants. runTask switches over it
// exhaustively; an unhandled kind is a programming error.
type taskKind uint8

const (
	taskLoadFile taskKind = iota
	taskTokenizeFile
)

// task is one unit of work. Exactly the fields for its kind are set: path
// for taskLoadFile, src for taskTokenizeFile. The queue owns a task until a
// worker pops it.
type task struct {
	kind taskKind
	path string
	src  source.ID
}

// taskQueue is a FIFO of pending tasks guarded by a mutex. The mutex is held
// only across push/pop, never across task execution.
type taskQueue struct {
	mu    sync.Mutex
	tasks []task
}

func (q *taskQueue) push(t task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, t)
}

func (q *taskQueue) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks) == 0
}
