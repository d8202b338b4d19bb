// Package errors provides structured error handling for the clockface engine.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid configuration value or unknown instance.
	KindConfig
	// KindStyle indicates a style sheet lookup or validation failure.
	KindStyle
	// KindDecode indicates an image decoding failure.
	KindDecode
	// KindRender indicates a rendering sink error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindStyle:
		return "style"
	case KindDecode:
		return "decode"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ClockError represents a structured error in the clockface engine.
type ClockError struct {
	// Op is the operation that failed (e.g., "style.Store.Resolve").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// InstanceID is the clock instance involved, if applicable.
	InstanceID string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ClockError) Error() string {
	if e.InstanceID != "" {
		return fmt.Sprintf("%s [%s] instance=%s: %v", e.Op, e.Kind, e.InstanceID, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ClockError) Unwrap() error {
	return e.Err
}

// PanicError represents a panic recovered inside a scheduled frame.
type PanicError struct {
	// Op is the operation that panicked (e.g., "clockface.Scheduler.Tick").
	Op string
	// Value is the value passed to panic().
	Value any
	// InstanceID is the clock instance whose frame panicked, if known.
	InstanceID string
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	switch {
	case e.Op != "" && e.InstanceID != "":
		return fmt.Sprintf("panic in %s (instance %s): %v", e.Op, e.InstanceID, e.Value)
	case e.Op != "":
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	default:
		return fmt.Sprintf("panic: %v", e.Value)
	}
}

// ConfigurationError reports an invalid value passed to a configuration
// call, or an operation addressed to an unknown instance. It is always
// surfaced synchronously to the caller, never swallowed.
type ConfigurationError struct {
	// Op is the configuration call that rejected the value.
	Op string
	// Field names the offending parameter ("fps", "style", "instance").
	Field string
	// Value is the rejected value.
	Value any
	// Reason explains why the value was rejected.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: invalid %s %v: %s", e.Op, e.Field, e.Value, e.Reason)
}

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ClockError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
