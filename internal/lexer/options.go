package lexer

import (
	"lumen/internal/diag"
	"lumen/internal/token"
)

// Reporter is the thin contract the lexer reports diagnostics through. The
// driver adapts its own diagnostic engine to it; tests plug in a collector.
type Reporter interface {
	Report(level diag.Level, code diag.Code, loc token.Location, msg string)
}

// Options configures a tokenize run.
type Options struct {
	// Reporter receives lexical diagnostics. May be nil; errors are then
	// dropped but lexing continues.
	Reporter Reporter

	// MaxErrors aborts the run once this many errors have been reported.
	// Zero means no local limit.
	MaxErrors uint
}

func (lx *Lexer) report(level diag.Level, code diag.Code, loc token.Location, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(level, code, loc, msg)
	}
	if level.CountsAsError() {
		lx.errs++
	}
}
