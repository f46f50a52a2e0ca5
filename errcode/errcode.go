package errcode

// Code is a stable error identifier shared across the firmware.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Query outcomes.
	NoDev        Code = "no_dev"        // nothing attached, or port out of range
	NotSupported Code = "not_supported" // operation not available on this hardware
	Unavailable  Code = "unavailable"   // converter busy or absent; caller may retry

	// Service/control plane.
	Busy          Code = "busy"
	InvalidParams Code = "invalid_params"
	UnknownVerb   Code = "unknown_verb"
	UnknownPin    Code = "unknown_pin"
	UnknownBank   Code = "unknown_bank"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
