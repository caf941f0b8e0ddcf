package driver

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"lumen/internal/diag"
	"lumen/internal/pipeline"
	"lumen/internal/source"
	"lumen/internal/token"
)

// pollInterval is the coarse polling period used by idle workers and by the
// drain/shutdown waits. Task bursts are measured in whole files, so 32ms is
// plenty.
const pollInterval = 32 * time.Millisecond

// DiagnosticCallback is the user-supplied diagnostic sink. It is invoked
// under the driver's callback mutex, so it need not be reentrant-safe, and it
// may read any driver state that is stable during a stage (such as source
// manager contents referenced by a diagnostic location).
type DiagnosticCallback func(*Driver, diag.Diagnostic)

// Driver coordinates the staged processing of a batch of source files: load
// from disk, then tokenize. Stages enqueue one task per file; the queue is
// drained either inline (single-threaded mode) or by a fixed pool of worker
// goroutines. Diagnostics are accumulated against a bounded error budget,
// and the artifacts land in the source manager.
type Driver struct {
	cfg  Config
	srcs *source.Manager

	tasks   taskQueue
	workers []*worker

	callbackMu sync.Mutex

	numErrors         atomic.Uint32
	numThreadsRunning atomic.Int32

	taskGroupRunning atomic.Bool
	hitFailCondition atomic.Bool
	shuttingDownPool atomic.Bool
}

// New constructs a Driver. A zero MaxNumErrors is a configuration error.
func New(cfg Config) *Driver {
	if cfg.MaxNumErrors == 0 {
		panic("driver: MaxNumErrors cannot be 0")
	}
	return &Driver{
		cfg:  cfg,
		srcs: source.NewManager(),
	}
}

// Close tears the worker pool down if it is still running. It is safe to
// call on a single-threaded driver.
func (d *Driver) Close() {
	if d.IsMultiThreaded() && d.WorkersRunning() {
		d.ShutdownWorkers()
	}
}

// IsSingleThreaded reports whether stages drain inline on the caller.
func (d *Driver) IsSingleThreaded() bool { return d.cfg.NumThreads == 0 }

// IsMultiThreaded reports whether the driver uses a worker pool.
func (d *Driver) IsMultiThreaded() bool { return d.cfg.NumThreads != 0 }

// SourceManager exposes the registry of loaded sources.
func (d *Driver) SourceManager() *source.Manager { return d.srcs }

// NumErrors returns the number of counted errors so far.
func (d *Driver) NumErrors() uint { return uint(d.numErrors.Load()) }

// HasHitFailCondition reports whether the error ceiling has been reached.
// Once true it stays true for the driver's lifetime.
func (d *Driver) HasHitFailCondition() bool { return d.hitFailCondition.Load() }

// TaskGroupRunning reports whether a stage's task group is still draining.
func (d *Driver) TaskGroupRunning() bool { return d.taskGroupRunning.Load() }

// NumThreadsRunning returns the number of live worker goroutines.
func (d *Driver) NumThreadsRunning() int { return int(d.numThreadsRunning.Load()) }

// popTask hands the oldest pending task to w. The worker's live flag is
// flipped inside the queue's critical section, so the two-phase quiescence
// check in WaitForAllTasks can never observe an empty queue and a not-yet-
// marked worker for the same task. A worker that finds the queue empty
// clears the task-group flag.
func (d *Driver) popTask(w *worker) (task, bool) {
	d.tasks.mu.Lock()
	defer d.tasks.mu.Unlock()

	if len(d.tasks.tasks) == 0 {
		d.taskGroupRunning.Store(false)
		return task{}, false
	}
	t := d.tasks.tasks[0]
	d.tasks.tasks = d.tasks.tasks[1:]
	w.isWorking.Store(true)
	return t, true
}

//////////////////////////////////////////////////////////////////////
// diagnostics

// Emit forwards a fully formed diagnostic to the configured callback. The
// driver takes no other lock of its own while the callback mutex is held; a
// callback that reads the source manager takes the manager's mutex.
func (d *Driver) Emit(dg diag.Diagnostic) {
	d.callbackMu.Lock()
	defer d.callbackMu.Unlock()
	if d.cfg.Callback != nil {
		d.cfg.Callback(d, dg)
	}
}

// emitInternal builds and emits a diagnostic, counting it against the error
// ceiling when the level is Fatal or Error. The count saturates at the
// ceiling; the increment that reaches it raises the fail condition.
func (d *Driver) emitInternal(level diag.Level, code diag.Code, loc *token.Location, msg string) {
	if level.CountsAsError() {
		d.countError()
	}
	d.Emit(diag.Diagnostic{Level: level, Code: code, Loc: loc, Message: msg})
}

func (d *Driver) countError() {
	for {
		current := d.numErrors.Load()
		if uint(current) >= d.cfg.MaxNumErrors {
			// Already at the ceiling; never exceed it.
			d.raiseFailCondition()
			return
		}
		if d.numErrors.CompareAndSwap(current, current+1) {
			if uint(current+1) >= d.cfg.MaxNumErrors {
				d.raiseFailCondition()
			}
			return
		}
	}
}

// raiseFailCondition latches the fail state. In multi-threaded mode the pool
// teardown runs on a detached goroutine: the worker that raised the
// condition has not yet signalled task completion, so tearing down
// synchronously from it would spin forever on the live-thread counter.
func (d *Driver) raiseFailCondition() {
	d.hitFailCondition.Store(true)
	if d.IsMultiThreaded() {
		go d.ShutdownWorkers()
	}
}

// notifyTaskErrored is called by workers after a failed task so the driver
// can evaluate the ceiling.
func (d *Driver) notifyTaskErrored() {
	if d.NumErrors() >= d.cfg.MaxNumErrors {
		d.raiseFailCondition()
	}
}

func (d *Driver) emitTrace(format string, args ...any) {
	if d.cfg.Verbosity < VerbosityTrace {
		return
	}
	d.Emit(diag.Diagnostic{
		Level:   diag.Info,
		Code:    diag.MiscTrace,
		Message: fmt.Sprintf(format, args...),
	})
}

func (d *Driver) emitDebug(format string, args ...any) {
	if d.cfg.Verbosity < VerbosityDebug {
		return
	}
	d.Emit(diag.Diagnostic{
		Level:   diag.Info,
		Code:    diag.MiscDebug,
		Message: fmt.Sprintf(format, args...),
	})
}

func (d *Driver) progressEvent(path string, stage pipeline.Stage, status pipeline.Status) {
	if d.cfg.Progress != nil {
		d.cfg.Progress.OnEvent(pipeline.Event{Path: path, Stage: stage, Status: status})
	}
}

// lexerReporter adapts the diagnostic engine to the lexer's reporting
// contract.
type lexerReporter struct {
	d *Driver
}

func (r lexerReporter) Report(level diag.Level, code diag.Code, loc token.Location, msg string) {
	l := loc
	r.d.emitInternal(level, code, &l, msg)
}
