package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

// ADS1015 at 0x48: channel 0 reads a 10k NTC divider, channel 1 the battery
// through a 1:4 divider. Codes are 12-bit, left-justified.
const cfgPico = `{
  "calib": {
    "channels": [
      {
        "name": "ntc",
        "interval_ms": 1000,
        "source": {"bus": "i2c0", "addr": 72, "reg": 0, "shift": 4, "bits": 12},
        "table": {
          "units": "degC",
          "policy": "clamp",
          "knots": [[310, 85], [620, 60], [1240, 35], [2150, 15], [3010, -5]]
        }
      },
      {
        "name": "vbat",
        "interval_ms": 2000,
        "source": {"bus": "i2c0", "addr": 72, "reg": 1, "shift": 4, "bits": 12},
        "table": {
          "units": "mV",
          "domain": [0, 1024, 2048, 3072, 4095],
          "range": [0, 3280, 6575, 9860, 13150]
        }
      }
    ]
  }
}`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
	"host": []byte(cfgPico),
}
