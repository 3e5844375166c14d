package lut

import "calcurve-go/errcode"

// Policy selects what Interpolate does with a query outside
// [domain[0], domain[n-1]].
type Policy uint8

const (
	// PolicyReject returns ErrBelowRange or ErrAboveRange.
	PolicyReject Policy = iota
	// PolicyClamp returns the first or last range sample.
	PolicyClamp
	// PolicyExtrapolate extends the first or last segment.
	PolicyExtrapolate
)

func (p Policy) String() string {
	switch p {
	case PolicyReject:
		return "reject"
	case PolicyClamp:
		return "clamp"
	case PolicyExtrapolate:
		return "extrapolate"
	}
	return "unknown"
}

// ParsePolicy accepts the String forms. An empty string is PolicyReject.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "reject":
		return PolicyReject, nil
	case "clamp":
		return PolicyClamp, nil
	case "extrapolate":
		return PolicyExtrapolate, nil
	}
	return PolicyReject, errcode.New(errcode.InvalidParams, "lut.ParsePolicy", "unknown policy "+s)
}
