package driver

import (
	"time"
)

// StartWorkers spins up the configured worker pool. Multi-threaded mode
// only; the pool must not already be running. Worker goroutines are
// detached: they are joined indirectly through the live-thread counter and
// the stop flags.
func (d *Driver) StartWorkers() {
	if !d.IsMultiThreaded() {
		panic("driver: StartWorkers on a single-threaded driver")
	}
	if len(d.workers) != 0 {
		panic("driver: workers already running")
	}

	d.workers = make([]*worker, 0, d.cfg.NumThreads)
	for i := uint(0); i < d.cfg.NumThreads; i++ {
		w := &worker{drv: d}
		d.workers = append(d.workers, w)
		d.numThreadsRunning.Add(1)
		go w.loop()
	}

	d.emitDebug("driver started %d workers", d.cfg.NumThreads)
}

// WorkersRunning reports whether the pool is up and not mid-teardown.
func (d *Driver) WorkersRunning() bool {
	if !d.IsMultiThreaded() {
		panic("driver: WorkersRunning on a single-threaded driver")
	}
	if len(d.workers) == 0 {
		return false
	}
	return !d.shuttingDownPool.Load()
}

// ShutdownWorkers tears the pool down. The test-and-set sentinel makes a
// concurrent call a no-op, so the teardown runs exactly once no matter how
// many callers race into it. The wait loop holds no mutex the workers
// acquire.
func (d *Driver) ShutdownWorkers() {
	if !d.IsMultiThreaded() {
		panic("driver: ShutdownWorkers on a single-threaded driver")
	}
	if d.shuttingDownPool.Swap(true) {
		return
	}
	defer d.shuttingDownPool.Store(false)

	if len(d.workers) == 0 {
		return
	}

	for _, w := range d.workers {
		w.stop.Store(true)
	}
	for d.numThreadsRunning.Load() != 0 {
		time.Sleep(pollInterval)
	}

	d.workers = nil
	d.taskGroupRunning.Store(false)

	d.emitDebug("driver shut down workers")
}

// WaitForAllTasks blocks until the current task group has fully drained.
// The check is two-phase: first the queue must be empty, then every worker
// must report idle, because a worker may still be mid-task when the queue
// first empties. Valid only while workers are running and no fail condition
// has been hit; returns immediately if a shutdown is already in progress.
func (d *Driver) WaitForAllTasks() {
	if !d.IsMultiThreaded() {
		panic("driver: WaitForAllTasks on a single-threaded driver")
	}
	// A latched fail condition means the pool is already being torn down by
	// the detached helper; there is nothing left to wait for.
	if d.shuttingDownPool.Load() || d.HasHitFailCondition() {
		return
	}
	if !d.WorkersRunning() {
		panic("driver: WaitForAllTasks without running workers")
	}

	for !d.tasks.empty() {
		if d.shuttingDownPool.Load() || d.HasHitFailCondition() {
			return
		}
		time.Sleep(pollInterval)
	}

	for {
		if d.shuttingDownPool.Load() || d.HasHitFailCondition() {
			return
		}
		allDone := true
		for _, w := range d.workers {
			if w.isWorking.Load() {
				allDone = false
				break
			}
		}
		if allDone {
			break
		}
		time.Sleep(pollInterval)
	}

	d.taskGroupRunning.Store(false)
}
