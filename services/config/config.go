package config

import (
	"context"
	"encoding/json"
	"errors"

	"calcurve-go/bus"

	"github.com/rs/zerolog"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
)

// ctxKey is unexported so other packages cannot collide with it.
type ctxKey struct{}

// CtxDeviceKey is the context key carrying the device ID.
var CtxDeviceKey = ctxKey{}

// WithDevice returns ctx carrying the device ID used to pick a config.
func WithDevice(ctx context.Context, device string) context.Context {
	return context.WithValue(ctx, CtxDeviceKey, device)
}

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Errors returned by the publisher.
var (
	ErrNoDevice  = errors.New("config: missing device ID in context")
	ErrNoConfig  = errors.New("config: no embedded config for device")
	ErrNotObject = errors.New("config: embedded config is not a JSON object")
)

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
	log  zerolog.Logger
}

func NewConfigService(log zerolog.Logger) *ConfigService {
	return &ConfigService{
		Name: serviceName,
		log:  log.With().Str("service", serviceName).Logger(),
	}
}

// publishConfig reads the device config from embedded data and publishes
// each top-level key as a retained message on config/<key>.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return ErrNoDevice
	}

	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return ErrNoConfig
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return ErrNotObject
	}

	for k, v := range m {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), v, true))
		s.log.Debug().Str("key", k).Msg("published")
	}
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			s.log.Error().Err(err).Msg("publish failed")
		}
	}()
}
