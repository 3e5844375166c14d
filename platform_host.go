//go:build !rp2040 && !rp2350

package main

import (
	"errors"
	"os"
	"sync"
	"time"

	"calcurve-go/x/envx"
	"calcurve-go/x/mathx"

	"tinygo.org/x/drivers"
)

// hostEnv is read from CALCURVE_* variables and an optional .env file.
type hostEnv struct {
	Device string `envconfig:"DEVICE" default:"host"`
	// SweepMs is the period of the simulated thermistor sweep.
	SweepMs uint32 `envconfig:"SWEEP_MS" default:"20000"`
	envx.Log
}

func setupPlatform() platform {
	env, err := envx.Process[hostEnv]("CALCURVE", "")
	if err != nil {
		println("env:", err.Error())
		os.Exit(1)
	}
	return platform{
		device: env.Device,
		log:    env.Logger(os.Stdout),
		buses: map[string]drivers.I2C{
			"i2c0": newSimADC(0x48, time.Duration(env.SweepMs)*time.Millisecond),
		},
	}
}

// simADC stands in for the ADS1015 of the board config: a 12-bit,
// left-justified converter whose channel 0 sweeps a thermistor divider
// through and past its calibrated span and whose channel 1 reads a
// slowly sagging battery.
type simADC struct {
	addr   uint16
	period time.Duration
	start  time.Time

	mu sync.Mutex
}

func newSimADC(addr uint16, period time.Duration) *simADC {
	if period <= 0 {
		period = 20 * time.Second
	}
	return &simADC{addr: addr, period: period, start: time.Now()}
}

var _ drivers.I2C = (*simADC)(nil)

func (a *simADC) Tx(addr uint16, w, r []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if addr != a.addr {
		return errNack
	}
	if len(w) != 1 || len(r) != 2 {
		return errNack
	}
	var code uint16
	switch w[0] {
	case 0:
		code = a.sweep(200, 3200)
	case 1:
		code = a.sweep(2600, 2400)
	default:
		return errNack
	}
	code <<= 4
	r[0], r[1] = byte(code>>8), byte(code)
	return nil
}

// sweep moves linearly from lo to hi and back once per period.
func (a *simADC) sweep(lo, hi float64) uint16 {
	phase := mathx.InvLerp(0, float64(a.period), float64(time.Since(a.start)%a.period))
	if phase > 0.5 {
		phase = 1 - phase
	}
	return uint16(mathx.Clamp(mathx.Lerp(lo, hi, 2*phase), 0, 4095))
}

var errNack = errors.New("simadc: nack")
