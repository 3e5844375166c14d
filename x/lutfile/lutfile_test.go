package lutfile

import (
	"os"
	"path/filepath"
	"testing"

	"calcurve-go/errcode"
	"calcurve-go/types"
	"calcurve-go/x/lut"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ntcYAML = `
units: degC
policy: clamp
knots:
  - [310, 85]
  - [620, 60]
  - [1240, 35]
  - [2150, 15]
  - [3010, -5]
`

func TestParseKnots(t *testing.T) {
	spec, err := Parse([]byte(ntcYAML))
	require.NoError(t, err)
	assert.Equal(t, "degC", spec.Units)
	assert.Equal(t, "clamp", spec.Policy)
	require.Len(t, spec.Knots, 5)
	assert.Equal(t, [2]float64{1240, 35}, spec.Knots[2])

	tab, err := Build[float64](spec)
	require.NoError(t, err)
	assert.Equal(t, lut.PolicyClamp, tab.Policy())
	v, err := tab.Interpolate(930)
	require.NoError(t, err)
	assert.Equal(t, 47.5, v)
	v, err = tab.Interpolate(4000)
	require.NoError(t, err)
	assert.Equal(t, -5.0, v)
}

func TestParseJSONDomainRange(t *testing.T) {
	spec, err := Parse([]byte(`{"units":"mV","domain":[0,10,20],"range":[0,100,300]}`))
	require.NoError(t, err)

	tab, err := Build[float32](spec)
	require.NoError(t, err)
	assert.Equal(t, lut.PolicyReject, tab.Policy())
	v, err := tab.Interpolate(15)
	require.NoError(t, err)
	assert.Equal(t, float32(200), v)
	_, err = tab.Interpolate(25)
	assert.ErrorIs(t, err, lut.ErrAboveRange)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build[float64](types.TableSpec{
		Domain: []float64{0, 1},
		Range:  []float64{0, 1},
		Knots:  [][2]float64{{0, 0}, {1, 1}},
	})
	assert.ErrorIs(t, err, ErrBothForms)

	_, err = Build[float64](types.TableSpec{Policy: "wrap", Domain: []float64{0, 1}, Range: []float64{0, 1}})
	assert.Equal(t, errcode.InvalidParams, errcode.Of(err))

	_, err = Build[float64](types.TableSpec{Knots: [][2]float64{{0, 0}, {0, 1}}})
	assert.ErrorIs(t, err, lut.ErrNotIncreasing)

	_, err = Build[float64](types.TableSpec{})
	assert.ErrorIs(t, err, lut.ErrTooFewSamples)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("knots: [[1, 2], oops"))
	require.Error(t, err)
	assert.Equal(t, errcode.InvalidPayload, errcode.Of(err))
}

func TestLoadDefaultsName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ntc10k.yaml")
	require.NoError(t, os.WriteFile(path, []byte(ntcYAML), 0o644))

	spec, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ntc10k", spec.Name)

	named := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(named, []byte("name: vbat\ndomain: [0, 1]\nrange: [0, 2]\n"), 0o644))
	spec, err = Load(named)
	require.NoError(t, err)
	assert.Equal(t, "vbat", spec.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
