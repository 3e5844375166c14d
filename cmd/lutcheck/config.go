package main

import (
	"fmt"
	"os"

	"calcurve-go/errcode"
	"calcurve-go/x/envx"
	"calcurve-go/x/lut"
	"calcurve-go/x/lutfile"

	"github.com/rs/zerolog"
)

// Config holds the LUTCHECK_* settings. Flags override them.
type Config struct {
	// Policy overrides the table's own out-of-range policy when set.
	// Env: LUTCHECK_POLICY
	Policy string `envconfig:"POLICY"`

	// Output is text or json.
	// Env: LUTCHECK_OUTPUT (default: text)
	Output string `envconfig:"OUTPUT" default:"text"`

	envx.Log
}

func loadConfig(envFile string) (Config, error) {
	cfg, err := envx.Process[Config]("LUTCHECK", envFile)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	switch cfg.Output {
	case "text", "json":
	default:
		return Config{}, errcode.New(errcode.InvalidParams, "lutcheck", "output must be text or json, got "+cfg.Output)
	}
	return cfg, nil
}

func (c Config) logger() zerolog.Logger { return c.Logger(os.Stderr) }

// loadTable reads path and applies the policy override, if any.
func loadTable(path, policy string) (*lut.Table[float64], string, error) {
	spec, err := lutfile.Load(path)
	if err != nil {
		return nil, "", err
	}
	if policy != "" {
		spec.Policy = policy
	}
	t, err := lutfile.Build[float64](spec)
	if err != nil {
		return nil, spec.Name, err
	}
	return t, spec.Name, nil
}
