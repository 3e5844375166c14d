// Package lutfile loads calibration curves from YAML (or JSON) documents
// and turns them into lookup tables.
//
//	name: ntc10k
//	units: degC
//	policy: clamp
//	knots:
//	  - [310, 85]
//	  - [620, 60]
//	  - [1240, 35]
//
// Parallel domain/range lists are accepted instead of knots.
package lutfile

import (
	"os"

	"calcurve-go/errcode"
	"calcurve-go/types"
	"calcurve-go/x/lut"
	"calcurve-go/x/strx"

	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"
)

var (
	ErrBothForms = errcode.New(errcode.MalformedTable, "lutfile", "both knots and domain/range given")
	ErrSyntax    = errcode.New(errcode.InvalidPayload, "lutfile", "cannot parse table document")
)

// Parse decodes one table document. JSON is valid YAML, so both work.
func Parse(data []byte) (types.TableSpec, error) {
	var spec types.TableSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return types.TableSpec{}, &errcode.E{C: ErrSyntax.C, Op: ErrSyntax.Op, Msg: ErrSyntax.Msg, Err: err}
	}
	return spec, nil
}

// Load reads and parses a table file. A missing name defaults to the file
// name without extension.
func Load(path string) (types.TableSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.TableSpec{}, err
	}
	spec, err := Parse(data)
	if err != nil {
		return types.TableSpec{}, err
	}
	spec.Name = strx.Coalesce(spec.Name, strx.Stem(path))
	return spec, nil
}

// Samples returns the domain and range of spec, splitting knots if needed.
// The returned slices are freshly allocated.
func Samples[T constraints.Float](spec types.TableSpec) (domain, rng []T, err error) {
	if len(spec.Knots) > 0 {
		if len(spec.Domain) > 0 || len(spec.Range) > 0 {
			return nil, nil, ErrBothForms
		}
		domain = make([]T, len(spec.Knots))
		rng = make([]T, len(spec.Knots))
		for i, k := range spec.Knots {
			domain[i], rng[i] = T(k[0]), T(k[1])
		}
		return domain, rng, nil
	}
	domain = make([]T, len(spec.Domain))
	for i, v := range spec.Domain {
		domain[i] = T(v)
	}
	rng = make([]T, len(spec.Range))
	for i, v := range spec.Range {
		rng[i] = T(v)
	}
	return domain, rng, nil
}

// Build validates spec and returns a table with its policy applied.
// The table owns the converted samples.
func Build[T constraints.Float](spec types.TableSpec) (*lut.Table[T], error) {
	policy, err := lut.ParsePolicy(spec.Policy)
	if err != nil {
		return nil, err
	}
	domain, rng, err := Samples[T](spec)
	if err != nil {
		return nil, err
	}
	t, err := lut.New(domain, rng)
	if err != nil {
		return nil, err
	}
	return t.WithPolicy(policy), nil
}
