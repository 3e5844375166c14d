// Package rawcode reads an uncalibrated sample code from a register of an
// I2C device: ADC results, thermistor dividers, load-cell bridges and the
// like. Turning the code into a physical value is left to a calibration
// curve (see calcurve-go/x/lut).
//
// One Read is a single write-register/repeated-start-read transaction:
//
//	bus.Tx(addr, []byte{reg}, buf[:width])
package rawcode

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Errors returned by the driver.
var (
	ErrWidth   = errors.New("rawcode: width must be 1..4 bytes")
	ErrBits    = errors.New("rawcode: bits exceed register width")
	ErrAddress = errors.New("rawcode: address must be 7-bit")
)

// Config describes where the code lives and how it is packed.
type Config struct {
	Address  uint16
	Register uint8
	// Width in bytes, 1..4. Defaults to 2.
	Width uint8
	// LittleEndian selects LSB-first byte order. Default is MSB first.
	LittleEndian bool
	// Shift drops low-order padding bits (e.g. 4 for a left-justified 12-bit ADC).
	Shift uint8
	// Bits keeps this many significant bits after Shift. 0 keeps all.
	Bits uint8
	// Signed treats the top kept bit as a two's complement sign.
	Signed bool
}

// Device wraps an I2C connection to one code register.
type Device struct {
	bus drivers.I2C
	cfg Config
	w   [1]byte
	r   [4]byte
}

// New validates cfg and returns a Device. It does not touch the bus.
func New(bus drivers.I2C, cfg Config) (*Device, error) {
	if cfg.Width == 0 {
		cfg.Width = 2
	}
	if cfg.Width > 4 {
		return nil, ErrWidth
	}
	if cfg.Address > 0x7F {
		return nil, ErrAddress
	}
	if int(cfg.Shift)+int(cfg.Bits) > int(cfg.Width)*8 {
		return nil, ErrBits
	}
	return &Device{bus: bus, cfg: cfg}, nil
}

func (d *Device) Config() Config { return d.cfg }

// Read performs one transaction and returns the decoded code.
// Bus errors are returned as-is.
func (d *Device) Read() (int32, error) {
	n := int(d.cfg.Width)
	d.w[0] = d.cfg.Register
	if err := d.bus.Tx(d.cfg.Address, d.w[:], d.r[:n]); err != nil {
		return 0, err
	}
	return Decode(d.r[:n], d.cfg), nil
}

// Decode assembles buf (len == cfg.Width) according to cfg.
func Decode(buf []byte, cfg Config) int32 {
	var u uint32
	if cfg.LittleEndian {
		for i := len(buf) - 1; i >= 0; i-- {
			u = u<<8 | uint32(buf[i])
		}
	} else {
		for _, b := range buf {
			u = u<<8 | uint32(b)
		}
	}
	bits := uint(len(buf) * 8)
	u >>= cfg.Shift
	bits -= uint(cfg.Shift)
	if cfg.Bits != 0 {
		bits = uint(cfg.Bits)
	}
	if bits < 32 {
		u &= 1<<bits - 1
	}
	if cfg.Signed && bits > 0 && bits < 32 && u&(1<<(bits-1)) != 0 {
		return int32(u) - int32(1<<bits)
	}
	return int32(u)
}
