// Package status implements the {Ok, Warning, Error} propagation rule
// used throughout setup and stepping: Error short-circuits upward and
// aborts the current phase, Warning is collected and only surfaced if
// no Error follows, Ok passes through silently.
package status

import "fmt"

// Level is the severity of a Result.
type Level int

const (
	Ok Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Ok:
		return "Ok"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Kind classifies a non-Ok Result per spec §7.
type Kind int

const (
	// KindNone is used for Ok results.
	KindNone Kind = iota
	KindInputStructural
	KindTopology
	KindRuntime
	KindSoft
)

func (k Kind) String() string {
	switch k {
	case KindInputStructural:
		return "input-structural"
	case KindTopology:
		return "topology"
	case KindRuntime:
		return "runtime"
	case KindSoft:
		return "soft"
	default:
		return "none"
	}
}

// Result is a single status-carrying outcome, optionally located in the
// input tree (file, line) the way §7 requires for input-structural
// errors.
type Result struct {
	Level   Level
	Kind    Kind
	Message string
	File    string
	Line    int
}

func (r Result) Error() string {
	if r.File != "" {
		return fmt.Sprintf("%s:%d: [%s/%s] %s", r.File, r.Line, r.Level, r.Kind, r.Message)
	}
	return fmt.Sprintf("[%s/%s] %s", r.Level, r.Kind, r.Message)
}

// IsOk reports whether this Result carries no error or warning.
func (r Result) IsOk() bool { return r.Level == Ok }

// Errf builds a fatal Result of the given kind.
func Errf(kind Kind, format string, args ...interface{}) Result {
	return Result{Level: Error, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrfAt builds a fatal Result with a source location, for input-structural
// failures that should be reported with file/line per §7.
func ErrfAt(kind Kind, file string, line int, format string, args ...interface{}) Result {
	return Result{Level: Error, Kind: kind, Message: fmt.Sprintf(format, args...), File: file, Line: line}
}

// Warnf builds a soft Result that does not abort the current phase.
func Warnf(format string, args ...interface{}) Result {
	return Result{Level: Warning, Kind: KindSoft, Message: fmt.Sprintf(format, args...)}
}

// Accumulator collects Results across a setup or step phase, implementing
// the propagation rule: the first Error wins and short-circuits; Warnings
// added before it are kept, and every Result added after it is ignored.
type Accumulator struct {
	warnings []Result
	err      *Result
}

// Add folds a Result into the accumulator. Once an Error has been added,
// subsequent Adds are ignored (the phase has already aborted).
func (a *Accumulator) Add(r Result) {
	if a.err != nil {
		return
	}
	switch r.Level {
	case Error:
		cp := r
		a.err = &cp
	case Warning:
		a.warnings = append(a.warnings, r)
	}
}

// Err returns the first fatal Result seen, or nil if the phase is clean.
func (a *Accumulator) Err() *Result { return a.err }

// Failed reports whether an Error was ever added.
func (a *Accumulator) Failed() bool { return a.err != nil }

// Warnings returns every Warning collected so far. After an Error this
// is the Warnings added before it; Add ignores everything that follows.
func (a *Accumulator) Warnings() []Result { return a.warnings }

// ToError renders the accumulator's fatal Result (if any) as a Go error
// usable with fmt.Errorf("%w", ...) wrapping further up the call stack.
func (a *Accumulator) ToError() error {
	if a.err == nil {
		return nil
	}
	return *a.err
}
