package tategb

import (
	"log"
	"os"

	"github.com/segmentio/ksuid"
)

// Verbose is the verbose/log channel of spec.md §6: an integer verbosity
// knob (0–4) controlling human-readable progress lines, with no
// machine-parsed format requirement. Matching the teacher repo's own
// choice (fumin/nag has no logging-framework dependency; its tests reach
// for plain "log"), this stays on the standard library's log.Logger.
//
// Each top-level call (groebner_basis) is tagged with a short correlation
// id so that verbose output from concurrent computations on different
// ideals can be told apart in an interleaved log stream.
type Verbose struct {
	Level  int
	Logger *log.Logger
}

func (v *Verbose) orDefault() *Verbose {
	if v == nil {
		return &Verbose{Level: 0, Logger: log.New(os.Stderr, "", log.LstdFlags)}
	}
	if v.Logger == nil {
		return &Verbose{Level: v.Level, Logger: log.New(os.Stderr, "", log.LstdFlags)}
	}
	return v
}

// begin logs the start of a top-level computation at verbosity level 1 and
// returns a correlation id to pass to subsequent logf/end calls.
func (v *Verbose) begin(format string, args ...interface{}) string {
	corr := ksuid.New().String()
	v.logf(corr, 1, format, args...)
	return corr
}

func (v *Verbose) end(corr string) {
	v.logf(corr, 1, "done")
}

func (v *Verbose) logf(corr string, level int, format string, args ...interface{}) {
	if v == nil || v.Level < level {
		return
	}
	v.Logger.Printf("[%s] "+format, append([]interface{}{corr}, args...)...)
}
