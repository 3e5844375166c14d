//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"github.com/rs/zerolog"
	"tinygo.org/x/drivers"
)

const (
	device   = "pico"
	baudRate = 115200
	i2cHz    = 400_000
)

func setupPlatform() platform {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)

	_ = uartx.UART0.Configure(uartx.UARTConfig{
		BaudRate: baudRate,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	sda, scl := machine.GP4, machine.GP5
	sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
	scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
	if err := machine.I2C0.Configure(machine.I2CConfig{SDA: sda, SCL: scl, Frequency: i2cHz}); err != nil {
		println("i2c0:", err.Error())
	}

	return platform{
		device: device,
		log:    zerolog.New(uartx.UART0).Level(zerolog.InfoLevel),
		buses:  map[string]drivers.I2C{"i2c0": machine.I2C0},
	}
}
