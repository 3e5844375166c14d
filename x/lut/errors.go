package lut

import (
	"strconv"

	"calcurve-go/errcode"
)

// Construction errors. All carry errcode.MalformedTable.
var (
	ErrLengthMismatch = errcode.New(errcode.MalformedTable, "lut.New", "domain and range lengths differ")
	ErrTooFewSamples  = errcode.New(errcode.MalformedTable, "lut.New", "fewer than two samples")
	ErrNotFinite      = errcode.New(errcode.MalformedTable, "lut.New", "sample is NaN or infinite")
	ErrNotIncreasing  = errcode.New(errcode.MalformedTable, "lut.New", "samples not strictly increasing")
)

// Query errors.
var (
	ErrBelowRange = errcode.New(errcode.BelowRange, "lut.Interpolate", "query below first knot")
	ErrAboveRange = errcode.New(errcode.AboveRange, "lut.Interpolate", "query above last knot")
	ErrNaNQuery   = errcode.New(errcode.InvalidParams, "lut.Interpolate", "query is NaN")
)

// SampleError locates the offending sample of a malformed table.
// It unwraps to one of the construction errors above.
type SampleError struct {
	Index int
	Err   error
}

func (e *SampleError) Error() string {
	return e.Err.Error() + " (sample " + strconv.Itoa(e.Index) + ")"
}

func (e *SampleError) Unwrap() error { return e.Err }

// QueryError is returned by InterpolateAll and names the failing query.
type QueryError struct {
	Index int
	Err   error
}

func (e *QueryError) Error() string {
	return e.Err.Error() + " (query " + strconv.Itoa(e.Index) + ")"
}

func (e *QueryError) Unwrap() error { return e.Err }
