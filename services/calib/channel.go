package calib

import (
	"strings"
	"sync"
	"time"

	"calcurve-go/errcode"
	"calcurve-go/types"
	"calcurve-go/x/lut"
	"calcurve-go/x/lutfile"
	"calcurve-go/x/timex"

	"tinygo.org/x/drivers"
)

// Channel is one calibrated measurement: a raw-code source read through a
// lookup table. It satisfies drivers.Sensor so it can sit next to ordinary
// tinygo sensor drivers.
type Channel struct {
	name     string
	src      Source
	table    *lut.Table[float64]
	units    string
	kind     drivers.Measurement
	interval time.Duration
	now      func() int64

	mu      sync.Mutex
	last    types.Reading
	lastErr error
}

var _ drivers.Sensor = (*Channel)(nil)

// NewChannel builds the table from spec.Table. src may be nil for a
// convert-only channel; Update then fails with errcode.NotReady.
func NewChannel(spec types.ChannelSpec, src Source, defInterval time.Duration) (*Channel, error) {
	if spec.Name == "" {
		return nil, errcode.New(errcode.InvalidParams, "calib.NewChannel", "channel name is empty")
	}
	t, err := lutfile.Build[float64](spec.Table)
	if err != nil {
		return nil, err
	}
	return &Channel{
		name:     spec.Name,
		src:      src,
		table:    t,
		units:    spec.Table.Units,
		kind:     MeasurementOf(spec.Table.Units),
		interval: timex.Ms(spec.IntervalMs, defInterval),
		now:      timex.NowMs,
		lastErr:  errcode.NotReady,
	}, nil
}

func (c *Channel) Name() string                     { return c.name }
func (c *Channel) Units() string                    { return c.units }
func (c *Channel) Interval() time.Duration          { return c.interval }
func (c *Channel) Measurement() drivers.Measurement { return c.kind }
func (c *Channel) Table() *lut.Table[float64]       { return c.table }

// Convert maps a raw code through the table without touching the source.
func (c *Channel) Convert(raw float64) (types.Reading, error) {
	v, err := c.table.Interpolate(raw)
	if err != nil {
		return types.Reading{Raw: raw, Units: c.units, TS: c.now()}, err
	}
	return types.Reading{Raw: raw, Value: v, Units: c.units, TS: c.now()}, nil
}

// Update reads the source and converts the code when which includes this
// channel's measurement kind. Source failures carry errcode.SourceFailed;
// table failures keep the lut error (below_range, above_range, ...).
func (c *Channel) Update(which drivers.Measurement) error {
	if which&c.kind == 0 {
		return nil
	}
	if c.src == nil {
		return c.store(types.Reading{}, errcode.NotReady)
	}
	code, err := c.src.Read()
	if err != nil {
		return c.store(types.Reading{}, errcode.Wrap(errcode.SourceFailed, "calib.Update", err))
	}
	r, err := c.Convert(float64(code))
	return c.store(r, err)
}

func (c *Channel) store(r types.Reading, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
	if err == nil {
		c.last = r
	}
	return err
}

// Last returns the most recent good reading and the error of the most
// recent Update, if any.
func (c *Channel) Last() (types.Reading, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.lastErr
}

// Value returns the last good value.
func (c *Channel) Value() float64 {
	r, _ := c.Last()
	return r.Value
}

func (c *Channel) Info() types.ChannelInfo {
	lo, hi := c.table.Bounds()
	return types.ChannelInfo{
		Knots:     c.table.Len(),
		DomainMin: lo,
		DomainMax: hi,
		Policy:    c.table.Policy().String(),
		Units:     c.units,
	}
}

// MeasurementOf guesses the drivers.Measurement for a unit string.
// Unknown units match every measurement request.
func MeasurementOf(units string) drivers.Measurement {
	switch strings.ToLower(units) {
	case "degc", "c", "k", "degf":
		return drivers.Temperature
	case "mv", "v", "uv":
		return drivers.Voltage
	case "%rh", "rh":
		return drivers.Humidity
	case "pa", "hpa", "kpa":
		return drivers.Pressure
	case "mm", "cm", "m":
		return drivers.Distance
	case "lux", "lx":
		return drivers.Luminosity
	case "ppm":
		return drivers.Concentration
	}
	return drivers.AllMeasurements
}
