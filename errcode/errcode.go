package errcode

import "errors"

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK             Code = "ok"
	Busy           Code = "busy"
	Unsupported    Code = "unsupported"
	InvalidParams  Code = "invalid_params"
	InvalidPayload Code = "invalid_payload"
	InvalidTopic   Code = "invalid_topic"
	NotReady       Code = "not_ready"

	// Lookup-table taxonomy.
	BelowRange     Code = "below_range"
	AboveRange     Code = "above_range"
	MalformedTable Code = "malformed_table"

	UnknownChannel Code = "unknown_channel"
	UnknownBus     Code = "unknown_bus"
	SourceFailed   Code = "source_failed"
	Timeout        Code = "timeout"

	Error Code = "error" // generic fallback
)

// E keeps a code together with context and an optional cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

// New returns an *E for op with a fixed message.
func New(c Code, op, msg string) *E {
	return &E{C: c, Op: op, Msg: msg}
}

// Wrap attaches a code and op to err. A nil err yields nil.
func Wrap(c Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: c, Op: op, Err: err}
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
// Wrapped errors are searched outermost first.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	type coder interface{ Code() Code }
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch x := e.(type) {
		case Code:
			return x
		case coder:
			return x.Code()
		}
	}
	return Error
}

// Message returns the human part of err without the code prefix, if any.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *E
	if errors.As(err, &e) {
		if e.Msg != "" {
			return e.Msg
		}
		if e.Err != nil {
			return e.Err.Error()
		}
		return ""
	}
	return err.Error()
}
