package types

// Calibration configuration supplied on topic "config/calib".

type CalibConfig struct {
	Channels []ChannelSpec `json:"channels"`
}

// ChannelSpec binds one raw-code source to one calibration curve.
type ChannelSpec struct {
	Name       string     `json:"name"`
	Source     SourceSpec `json:"source"`
	Table      TableSpec  `json:"table"`
	IntervalMs uint32     `json:"interval_ms,omitempty"` // 0 => service default
}

// SourceSpec describes a register read on an I2C bus.
type SourceSpec struct {
	Bus          string `json:"bus"`  // "i2c0", ...
	Addr         uint16 `json:"addr"` // 7-bit address
	Reg          uint8  `json:"reg"`
	Width        uint8  `json:"width,omitempty"` // bytes, default 2
	LittleEndian bool   `json:"little_endian,omitempty"`
	Signed       bool   `json:"signed,omitempty"`
	Shift        uint8  `json:"shift,omitempty"` // right shift after assembly
	Bits         uint8  `json:"bits,omitempty"`  // significant bits after shift, 0 => all
}

// TableSpec is a calibration curve. Either Domain/Range or Knots is set.
type TableSpec struct {
	Name   string       `json:"name,omitempty" yaml:"name,omitempty"`
	Units  string       `json:"units,omitempty" yaml:"units,omitempty"`
	Policy string       `json:"policy,omitempty" yaml:"policy,omitempty"` // reject|clamp|extrapolate
	Domain []float64    `json:"domain,omitempty" yaml:"domain,omitempty"`
	Range  []float64    `json:"range,omitempty" yaml:"range,omitempty"`
	Knots  [][2]float64 `json:"knots,omitempty" yaml:"knots,omitempty"`
}
