// Package errors provides structured error types for better observability
// and programmatic error handling across the monitor.
//
// Service manager backends classify their failures with a code so callers
// can tell "could not ask" apart from "asked and got a negative answer":
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "systemctl is-active timed out",
//	    ctx.Err(),
//	    map[string]any{"unit": unit},
//	)
//
//	if errors.IsCode(err, errors.ErrCodeTimeout) {
//	    // report unknown
//	}
package errors
