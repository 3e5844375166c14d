//go:build rp2040 || rp2350

// On-target self-test for the lookup tables and the calib service.
// Results go to the USB console; the LED stays on when everything passed
// and blinks otherwise.
package main

import (
	"context"
	"time"

	"calcurve-go/bus"
	"calcurve-go/errcode"
	"calcurve-go/services/calib"
	"calcurve-go/types"
	"calcurve-go/x/lut"

	"machine"
)

// --- tiny logger (avoid fmt on MCU) ------------------------------------------

func logln(s ...string) {
	for _, p := range s {
		print(p)
	}
	println()
}

func fail(name, why string) bool {
	logln(name, ": ", why)
	return false
}

// --- individual tests (return bool pass/fail) --------------------------------

func TestThreeKnots() bool {
	t := lut.MustNew([]float64{0, 10, 20}, []float64{0, 100, 300})
	if v, err := t.Interpolate(5); err != nil || v != 50 {
		return fail("TestThreeKnots", "q=5")
	}
	if v, err := t.Interpolate(15); err != nil || v != 200 {
		return fail("TestThreeKnots", "q=15")
	}
	if _, err := t.Interpolate(25); errcode.Of(err) != errcode.AboveRange {
		return fail("TestThreeKnots", "q=25 not above_range")
	}
	return true
}

func TestKnotsExact() bool {
	x := []float32{310, 620, 1240, 2150, 3010}
	y := []float32{85, 60, 35, 15, -5}
	t := lut.MustNew(x, y)
	for i := range x {
		if v, err := t.Interpolate(x[i]); err != nil || v != y[i] {
			return fail("TestKnotsExact", "knot mismatch")
		}
	}
	return true
}

func TestPolicies() bool {
	t := lut.MustNew([]float64{0, 10}, []float64{0, 100})
	if v, _ := t.WithPolicy(lut.PolicyClamp).Interpolate(-5); v != 0 {
		return fail("TestPolicies", "clamp")
	}
	if v, _ := t.WithPolicy(lut.PolicyExtrapolate).Interpolate(20); v != 200 {
		return fail("TestPolicies", "extrapolate")
	}
	if _, err := t.Interpolate(-5); errcode.Of(err) != errcode.BelowRange {
		return fail("TestPolicies", "reject")
	}
	return true
}

func TestMalformed() bool {
	if _, err := lut.New([]float64{0, 1, 1}, []float64{0, 1, 2}); errcode.Of(err) != errcode.MalformedTable {
		return fail("TestMalformed", "duplicate abscissa accepted")
	}
	if _, err := lut.New([]float64{0}, []float64{0}); errcode.Of(err) != errcode.MalformedTable {
		return fail("TestMalformed", "single sample accepted")
	}
	return true
}

func TestCalibConvert() bool {
	b := bus.NewBus(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calib.New(nil).Start(ctx, b.NewConnection("calib"))
	conn := b.NewConnection("test")
	info := conn.Subscribe(bus.T("calib", "ntc", "info"))
	defer conn.Unsubscribe(info)

	conn.Publish(conn.NewMessage(bus.T("config", "calib"), types.CalibConfig{Channels: []types.ChannelSpec{{
		Name:  "ntc",
		Table: types.TableSpec{Units: "degC", Knots: [][2]float64{{310, 85}, {620, 60}, {1240, 35}}},
	}}}, true))
	select {
	case <-info.Channel():
	case <-time.After(time.Second):
		return fail("TestCalibConvert", "no info")
	}

	rctx, rcancel := context.WithTimeout(ctx, time.Second)
	defer rcancel()
	reply, err := conn.RequestWait(rctx, conn.NewMessage(bus.T("calib", "ntc", "convert"), 930, false))
	if err != nil {
		return fail("TestCalibConvert", err.Error())
	}
	r, ok := reply.Payload.(types.Reading)
	if !ok || r.Value != 47.5 {
		return fail("TestCalibConvert", "unexpected reply")
	}
	return true
}

// --- main: run all tests, report, and blink LED on failure --------------------

type testFn struct {
	name string
	fn   func() bool
}

func main() {
	// Give the USB CDC time to enumerate so logs show up reliably.
	time.Sleep(250 * time.Millisecond)

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High() // signal "running"

	tests := []testFn{
		{"TestThreeKnots", TestThreeKnots},
		{"TestKnotsExact", TestKnotsExact},
		{"TestPolicies", TestPolicies},
		{"TestMalformed", TestMalformed},
		{"TestCalibConvert", TestCalibConvert},
	}

	passed, failed := 0, 0
	logln("== calcurve self-test starting ==")
	for _, tc := range tests {
		if tc.fn() {
			logln("[PASS] ", tc.name)
			passed++
		} else {
			logln("[FAIL] ", tc.name)
			failed++
		}
		time.Sleep(10 * time.Millisecond)
	}
	println("== done:", passed, "passed,", failed, "failed ==")

	// LED: solid ON if all passed, otherwise blink forever.
	for {
		led.High()
		if failed == 0 {
			time.Sleep(2 * time.Second)
			continue
		}
		time.Sleep(250 * time.Millisecond)
		led.Low()
		time.Sleep(250 * time.Millisecond)
	}
}
