package driver

import (
	"lumen/internal/pipeline"
)

// LoadFiles enqueues one load task per path and marks the task group
// running. In single-threaded mode the queue drains inline before the call
// returns; in multi-threaded mode the already-running workers pick the
// tasks up and the caller should WaitForAllTasks.
func (d *Driver) LoadFiles(paths ...string) {
	if d.IsMultiThreaded() && !d.WorkersRunning() {
		panic("driver: LoadFiles requires running workers in multi-threaded mode")
	}
	if d.taskGroupRunning.Load() {
		panic("driver: task group already running")
	}

	d.taskGroupRunning.Store(true)

	d.srcs.Reserve(len(paths))
	for _, path := range paths {
		d.tasks.push(task{kind: taskLoadFile, path: path})
		d.progressEvent(path, pipeline.StageLoad, pipeline.StatusQueued)
	}

	if d.IsSingleThreaded() {
		d.consumeTasksSingleThreaded()
	}
}

// TokenizeLoadedFiles enqueues one tokenize task per registered source. The
// enumeration takes the manager's lock, so it snapshots a consistent set of
// sources before the group starts.
func (d *Driver) TokenizeLoadedFiles() {
	if d.IsMultiThreaded() && !d.WorkersRunning() {
		panic("driver: TokenizeLoadedFiles requires running workers in multi-threaded mode")
	}
	if d.taskGroupRunning.Load() {
		panic("driver: task group already running")
	}

	d.taskGroupRunning.Store(true)

	for _, src := range d.srcs.Sources() {
		d.tasks.push(task{kind: taskTokenizeFile, src: src.ID()})
		d.progressEvent(src.Path(), pipeline.StageTokenize, pipeline.StatusQueued)
	}

	if d.IsSingleThreaded() {
		d.consumeTasksSingleThreaded()
	}
}

// consumeTasksSingleThreaded drains the queue on the caller's goroutine,
// stopping early once the fail condition latches.
func (d *Driver) consumeTasksSingleThreaded() {
	if !d.IsSingleThreaded() {
		panic("driver: inline drain on a multi-threaded driver")
	}

	w := &worker{drv: d}
	for !d.tasks.empty() && !d.HasHitFailCondition() {
		w.getTaskSingleThreaded()
	}

	d.taskGroupRunning.Store(false)
}
