// Package cerr defines the compiler's own Go-error values: failures that
// are not user-facing diagnostics (those live in internal/diag) but genuine
// Go errors — unreadable source files and internal compiler bugs.
package cerr

import "fmt"

// internalError is an error raised by the compiler itself discovering it is
// in a state its own invariants say is impossible (a lowering bug, a
// consistency check failure). It carries a human summary distinct from the
// Go Error() text, matching the split the teacher's tqerrors package uses
// for game-facing vs technical messages.
type internalError struct {
	msg     string
	summary string
	wrap    error
}

func (e *internalError) Error() string { return e.msg }

// Summary is the short, stage-tagged description suitable for a bug report
// ("lowering: unreachable basic block").
func (e *internalError) Summary() string { return e.summary }

func (e *internalError) Unwrap() error { return e.wrap }

// Internal returns a new internal-compiler-error with both a short summary
// and a full technical message.
func Internal(summary, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("internal compiler error: %s", summary)
	}
	return &internalError{msg: technical, summary: summary}
}

// Internalf is Internal with the summary built from a format string.
func Internalf(format string, a ...interface{}) error {
	return Internal(fmt.Sprintf(format, a...), "")
}

// WrapInternal returns an internal-compiler-error that wraps a lower-level
// cause, preserving it for errors.Is/errors.As.
func WrapInternal(cause error, summary string) error {
	return &internalError{
		msg:     fmt.Sprintf("internal compiler error: %s: %v", summary, cause),
		summary: summary,
		wrap:    cause,
	}
}

// ioError reports a failure to read source from the Source Manager.
type ioError struct {
	path string
	wrap error
}

func (e *ioError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.path, e.wrap)
}

func (e *ioError) Unwrap() error { return e.wrap }

// IO wraps a failure to load a source file.
func IO(path string, cause error) error {
	return &ioError{path: path, wrap: cause}
}

// Summary extracts the short internal-error summary from err, if it is one
// (or wraps one); ok is false otherwise.
func Summary(err error) (string, bool) {
	var ie *internalError
	for err != nil {
		if v, isIE := err.(*internalError); isIE {
			ie = v
			break
		}
		u, isWrapper := err.(interface{ Unwrap() error })
		if !isWrapper {
			break
		}
		err = u.Unwrap()
	}
	if ie == nil {
		return "", false
	}
	return ie.summary, true
}
