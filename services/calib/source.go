package calib

import (
	"calcurve-go/drivers/rawcode"
	"calcurve-go/errcode"
	"calcurve-go/types"

	"tinygo.org/x/drivers"
)

// Source yields one uncalibrated code per call.
type Source interface {
	Read() (int32, error)
}

// SourceFactory builds the Source a channel spec asks for.
type SourceFactory func(spec types.SourceSpec) (Source, error)

// I2CFactory returns a factory that builds rawcode devices on the named
// buses. Channels poll concurrently, so each bus must tolerate concurrent
// Tx calls (see calcurve-go/drivers/i2cowner).
func I2CFactory(buses map[string]drivers.I2C) SourceFactory {
	return func(spec types.SourceSpec) (Source, error) {
		b, ok := buses[spec.Bus]
		if !ok {
			return nil, errcode.New(errcode.UnknownBus, "calib.I2CFactory", spec.Bus)
		}
		d, err := rawcode.New(b, rawcode.Config{
			Address:      spec.Addr,
			Register:     spec.Reg,
			Width:        spec.Width,
			LittleEndian: spec.LittleEndian,
			Signed:       spec.Signed,
			Shift:        spec.Shift,
			Bits:         spec.Bits,
		})
		if err != nil {
			return nil, errcode.Wrap(errcode.InvalidParams, "calib.I2CFactory", err)
		}
		return d, nil
	}
}
