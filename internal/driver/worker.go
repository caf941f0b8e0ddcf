package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"
	"time"

	"lumen/internal/diag"
	"lumen/internal/lexer"
	"lumen/internal/pipeline"
	"lumen/internal/source"
)

// worker executes tasks. In multi-threaded mode each worker owns a goroutine
// running loop; in single-threaded mode a stack-local worker drains the
// queue inline. isWorking is the quiescence signal WaitForAllTasks polls;
// stop is the pool shutdown request.
type worker struct {
	drv       *Driver
	isWorking atomic.Bool
	stop      atomic.Bool
}

func (w *worker) loop() {
	for !w.stop.Load() {
		w.getTask()
	}
	w.done()
}

// done signals termination: the live-thread counter is the only join
// handshake the detached worker goroutines have.
func (w *worker) done() {
	w.isWorking.Store(false)
	w.drv.numThreadsRunning.Add(-1)
}

func (w *worker) getTask() {
	t, ok := w.drv.popTask(w)
	if !ok {
		w.isWorking.Store(false)
		time.Sleep(pollInterval)
		return
	}
	w.runTask(t)
}

func (w *worker) getTaskSingleThreaded() {
	w.isWorking.Store(true)
	if t, ok := w.drv.popTask(w); ok {
		w.runTask(t)
	}
	w.isWorking.Store(false)
}

func (w *worker) runTask(t task) {
	var ok bool
	switch t.kind {
	case taskLoadFile:
		ok = w.runLoadFile(t)
	case taskTokenizeFile:
		ok = w.runTokenizeFile(t)
	default:
		panic(fmt.Sprintf("driver: unhandled task kind %d", t.kind))
	}
	if !ok {
		w.drv.notifyTaskErrored()
	}
}

func (w *worker) runLoadFile(t task) bool {
	d := w.drv
	d.progressEvent(t.path, pipeline.StageLoad, pipeline.StatusWorking)

	if _, err := os.Stat(t.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d.emitInternal(diag.Error, diag.MiscFileDoesNotExist, nil,
				fmt.Sprintf("file %q does not exist", t.path))
		} else {
			d.emitInternal(diag.Error, diag.MiscLoadFileFailed, nil,
				fmt.Sprintf("failed to load file %q: %v", t.path, err))
		}
		d.progressEvent(t.path, pipeline.StageLoad, pipeline.StatusError)
		return false
	}

	raw, err := os.ReadFile(t.path)
	if err != nil {
		d.emitInternal(diag.Error, diag.MiscLoadFileFailed, nil,
			fmt.Sprintf("failed to load file %q: %v", t.path, err))
		d.progressEvent(t.path, pipeline.StageLoad, pipeline.StatusError)
		return false
	}

	data, err := source.Decode(raw)
	if err != nil {
		d.emitInternal(diag.Error, diag.MiscLoadFileFailed, nil,
			fmt.Sprintf("failed to decode file %q: %v", t.path, err))
		d.progressEvent(t.path, pipeline.StageLoad, pipeline.StatusError)
		return false
	}

	d.srcs.AddSource(t.path, data)
	d.emitTrace("loaded file %q", t.path)
	d.progressEvent(t.path, pipeline.StageLoad, pipeline.StatusDone)
	return true
}

func (w *worker) runTokenizeFile(t task) bool {
	d := w.drv
	src := d.srcs.Get(t.src)
	d.progressEvent(src.Path(), pipeline.StageTokenize, pipeline.StatusWorking)

	// Source data is immutable after creation, so no lock is needed here.
	buf, err := lexer.Tokenize(src, lexer.Options{
		Reporter:  lexerReporter{d},
		MaxErrors: d.cfg.MaxNumErrors,
	})
	if err != nil {
		// The lexer has already reported its diagnostics.
		d.progressEvent(src.Path(), pipeline.StageTokenize, pipeline.StatusError)
		return false
	}

	// The slot's address is stable, so installation replaces the buffer
	// contents in place; this worker is the only writer for this source.
	buf.Lock()
	src.InstallTokens(buf)

	d.emitTrace("tokenized file %q", src.Path())
	d.progressEvent(src.Path(), pipeline.StageTokenize, pipeline.StatusDone)
	return true
}
