package resolverService

import (
	"fmt"
	"io"
	"os"
)

// Reporter is where the resolver surfaces outcomes: warnings and errors are
// user-facing, debug lines carry the diagnostic detail the user-facing
// messages intentionally omit.
type Reporter interface {
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}

// StderrReporter writes to stderr. Debug output is gated on the Debug flag.
type StderrReporter struct {
	Debug bool
	Out   io.Writer
}

func NewStderrReporter(debug bool) *StderrReporter {
	return &StderrReporter{Debug: debug, Out: os.Stderr}
}

func (r *StderrReporter) Warnf(format string, args ...any) {
	fmt.Fprintf(r.Out, "WARNING: "+format+"\n", args...)
}

func (r *StderrReporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.Out, "ERROR: "+format+"\n", args...)
}

func (r *StderrReporter) Debugf(format string, args ...any) {
	if !r.Debug {
		return
	}
	fmt.Fprintf(r.Out, "DEBUG: "+format+"\n", args...)
}
