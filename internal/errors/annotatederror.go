// Package errors wraps the standard library errors with slog annotations
// and source locations so that failures log with full context.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

// annotatedError carries a message, an optional cause, structured
// annotations, and the source location where it was created.
type annotatedError struct {
	msg    string
	cause  error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

// NewSentinel creates a new error suitable for package-level sentinel values.
func NewSentinel(msg string) error {
	return &annotatedError{msg: msg, source: callerSource()}
}

// Wrap annotates err with a message and optional [slog.Attr]. The
// annotations surface in logs through [SlogError]. A nil err is allowed
// so that call sites don't need to guard.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		cause:  err,
		attrs:  attrs,
		source: callerSource(),
	}
}

// New re-exports [errors.New].
func New(text string) error {
	return stderrors.New(text) //nolint:err113 // pass-through to standard library.
}

// Unwrap re-exports [errors.Unwrap].
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Is re-exports [errors.Is].
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As re-exports [errors.As].
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Join re-exports [errors.Join].
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// DecoratePanic converts a recovered panic value into an error whose
// source points at the panic site instead of the recovery handler.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	return &annotatedError{
		msg:    fmt.Sprintf("panic: %v", excp),
		source: panicSource(),
	}
}

// SlogError renders an error as a structured log attribute with its
// message, collected annotations, and the source location of the
// innermost annotated error. It tolerates nil and non-annotated errors.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}

	var (
		annotations []slog.Attr
		source      string
	)
	collectAnnotations(err, &annotations, &source)

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		groupArgs := make([]any, 0, len(annotations))
		for _, a := range annotations {
			groupArgs = append(groupArgs, a)
		}
		attrs = append(attrs, slog.Group("annotations", groupArgs...))
	}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	return slog.Group("error", attrs...)
}

// collectAnnotations walks the error tree gathering annotations from the
// outside in. The source of the outermost annotated error wins since it
// is closest to where the failure was handled.
func collectAnnotations(err error, annotations *[]slog.Attr, source *string) {
	if err == nil {
		return
	}
	var annotated *annotatedError
	if stderrors.As(err, &annotated) {
		*annotations = append(*annotations, annotated.attrs...)
		if *source == "" {
			*source = annotated.source
		}
		collectAnnotations(annotated.cause, annotations, source)
		return
	}
	switch unwrapped := err.(type) { //nolint:errorlint // walking the tree, not matching.
	case interface{ Unwrap() error }:
		collectAnnotations(unwrapped.Unwrap(), annotations, source)
	case interface{ Unwrap() []error }:
		for _, e := range unwrapped.Unwrap() {
			collectAnnotations(e, annotations, source)
		}
	}
}

// callerSource returns file:line of the caller two frames up, i.e. the
// code constructing the error.
func callerSource() string {
	_, file, line, ok := runtime.Caller(2) //nolint:mnd // skip callerSource and its caller.
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// panicSource walks the call stack past the runtime panic machinery to
// find the frame that panicked.
func panicSource() string {
	pcs := make([]uintptr, 64) //nolint:mnd // plenty for any realistic panic depth.
	n := runtime.Callers(0, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	sawPanic := false
	for {
		frame, more := frames.Next()
		if sawPanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if frame.Function == "runtime.gopanic" {
			sawPanic = true
		}
		if !more {
			return ""
		}
	}
}
