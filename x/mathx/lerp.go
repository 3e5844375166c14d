package mathx

import "golang.org/x/exp/constraints"

// Lerp returns a + (b-a)*t. t is not clamped.
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// InvLerp returns the position of v between a and b as a fraction
// (0 at a, 1 at b). The caller guarantees a != b.
func InvLerp[T constraints.Float](a, b, v T) T {
	return (v - a) / (b - a)
}

// Remap maps v from the segment [inLo, inHi] onto [outLo, outHi] without
// clamping. The endpoints are blended as outLo*(1-t) + outHi*t with
// t = (v-inLo)/(inHi-inLo), so the result stays finite whenever the
// endpoints are, however far apart they lie. The caller guarantees
// inLo != inHi.
func Remap[T constraints.Float](v, inLo, inHi, outLo, outHi T) T {
	t := (v - inLo) / (inHi - inLo)
	return outLo*(1-t) + outHi*t
}
