package main

import (
	"context"
	"time"

	"calcurve-go/bus"
	"calcurve-go/drivers/i2cowner"
	"calcurve-go/services/calib"
	"calcurve-go/services/config"
	"calcurve-go/types"

	"github.com/rs/zerolog"
	"tinygo.org/x/drivers"
)

const i2cTimeout = 50 * time.Millisecond

// platform is what each target provides to the boot sequence.
type platform struct {
	device string
	log    zerolog.Logger
	buses  map[string]drivers.I2C
}

func main() {
	p := setupPlatform()
	log := p.log
	log.Info().Str("device", p.device).Msg("boot")

	ctx := config.WithDevice(context.Background(), p.device)
	b := bus.NewBus(8)

	buses := make(map[string]drivers.I2C, len(p.buses))
	for id, hw := range p.buses {
		buses[id] = i2cowner.New(id, hw, 0).Bus(i2cTimeout)
	}

	cal := calib.New(calib.I2CFactory(buses), calib.WithLogger(log))
	cal.Start(ctx, b.NewConnection("calib"))

	// Subscribe before the config lands so the first readings are seen.
	ui := b.NewConnection("ui")
	values := ui.Subscribe(bus.T("calib", bus.WildOne, "value"))
	status := ui.Subscribe(bus.T("calib", bus.WildOne, "status"))

	config.NewConfigService(log).Start(ctx, b.NewConnection("config"))

	for {
		select {
		case m := <-values.Channel():
			r, ok := m.Payload.(types.Reading)
			if !ok {
				continue
			}
			log.Info().Str("channel", topicName(m.Topic)).Float64("raw", r.Raw).Float64("value", r.Value).Str("units", r.Units).Msg("reading")
		case m := <-status.Channel():
			st, ok := m.Payload.(types.ChannelStatus)
			if !ok {
				continue
			}
			log.Debug().Str("channel", topicName(m.Topic)).Str("link", string(st.Link)).Str("code", st.Error).Msg("status")
		}
	}
}

func topicName(t bus.Topic) string {
	if len(t) < 2 {
		return ""
	}
	s, _ := t[1].(string)
	return s
}
