// Package calib runs calibrated measurement channels on the bus.
//
// Configuration arrives retained on config/calib as a types.CalibConfig.
// Each channel polls its raw-code source, maps the code through its lookup
// table and publishes:
//
//	calib/<name>/value   types.Reading        (retained, last good reading)
//	calib/<name>/status  types.ChannelStatus  (retained, on change)
//	calib/<name>/info    types.ChannelInfo    (retained)
//
// A request on calib/<name>/convert with a numeric payload is answered with
// a types.Reading, or a types.ErrorReply carrying the errcode.
package calib

import (
	"context"
	"sync"
	"time"

	"calcurve-go/bus"
	"calcurve-go/errcode"
	"calcurve-go/services/calib/internal/util"
	"calcurve-go/types"
	"calcurve-go/x/timex"

	"github.com/rs/zerolog"
	"tinygo.org/x/drivers"
)

const (
	serviceName = "calib"

	DefaultInterval = time.Second
)

var (
	topicConfig  = bus.T("config", "calib")
	topicConvert = bus.T(serviceName, bus.WildOne, "convert")
)

func topicValue(name string) bus.Topic  { return bus.T(serviceName, name, "value") }
func topicStatus(name string) bus.Topic { return bus.T(serviceName, name, "status") }
func topicInfo(name string) bus.Topic   { return bus.T(serviceName, name, "info") }

type Option func(*Service)

func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// WithDefaultInterval sets the poll interval for channels without interval_ms.
func WithDefaultInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.defInterval = d
		}
	}
}

type Service struct {
	factory     SourceFactory
	log         zerolog.Logger
	defInterval time.Duration

	mu       sync.RWMutex
	channels map[string]*Channel
	retained map[string]bool // names with retained topics, rejected ones included

	stop context.CancelFunc
	wg   sync.WaitGroup
}

// New returns a stopped service. factory may be nil, in which case every
// channel is convert-only. Channels whose source names no bus are
// convert-only either way.
func New(factory SourceFactory, opts ...Option) *Service {
	s := &Service{
		factory:     factory,
		log:         zerolog.Nop(),
		defInterval: DefaultInterval,
		channels:    map[string]*Channel{},
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With().Str("service", serviceName).Logger()
	return s
}

// Channel returns a configured channel by name.
func (s *Service) Channel(name string) (*Channel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.channels[name]
	return c, ok
}

// Start runs the service until ctx is cancelled.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfig)
	convSub := conn.Subscribe(topicConvert)
	go s.serviceLoop(ctx, conn, cfgSub, convSub)
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection, cfgSub, convSub *bus.Subscription) {
	defer conn.Unsubscribe(cfgSub)
	defer conn.Unsubscribe(convSub)

	for {
		select {
		case <-ctx.Done():
			s.stopPollers()
			s.log.Info().Msg("stopping")
			return
		case msg := <-cfgSub.Channel():
			var cfg types.CalibConfig
			if err := util.DecodeJSON(msg.Payload, &cfg); err != nil {
				s.log.Error().Err(err).Msg("bad config payload")
				continue
			}
			s.apply(ctx, conn, cfg)
		case msg := <-convSub.Channel():
			s.handleConvert(conn, msg)
		}
	}
}

// apply replaces the running channel set with cfg.
func (s *Service) apply(ctx context.Context, conn *bus.Connection, cfg types.CalibConfig) {
	s.stopPollers()

	next := make(map[string]*Channel, len(cfg.Channels))
	named := make(map[string]bool, len(cfg.Channels))
	for _, spec := range cfg.Channels {
		var ch *Channel
		var err error
		if named[spec.Name] {
			err = errcode.New(errcode.InvalidParams, "calib.apply", "duplicate channel name "+spec.Name)
		} else {
			ch, err = s.build(spec)
		}
		if spec.Name != "" {
			named[spec.Name] = true
		}
		if err != nil {
			s.log.Error().Err(err).Str("channel", spec.Name).Str("code", string(errcode.Of(err))).Msg("channel rejected")
			if spec.Name != "" {
				conn.Publish(conn.NewMessage(topicStatus(spec.Name), types.ChannelStatus{
					Link: types.LinkDown, Error: string(errcode.Of(err)), TS: timex.NowMs(),
				}, true))
			}
			continue
		}
		next[ch.name] = ch
	}

	s.mu.Lock()
	s.channels = next
	s.mu.Unlock()

	// Clear retained state of channels that went away.
	for name := range s.retained {
		if named[name] {
			continue
		}
		for _, t := range []bus.Topic{topicValue(name), topicStatus(name), topicInfo(name)} {
			conn.Publish(conn.NewMessage(t, nil, true))
		}
	}

	s.retained = named

	pctx, cancel := context.WithCancel(ctx)
	s.stop = cancel
	for _, ch := range next {
		conn.Publish(conn.NewMessage(topicInfo(ch.name), ch.Info(), true))
		if ch.src == nil {
			continue
		}
		s.wg.Add(1)
		go s.poll(pctx, conn, ch)
	}
	s.log.Info().Int("channels", len(next)).Msg("configured")
}

// build makes a channel for spec. A spec without a source bus is
// convert-only.
func (s *Service) build(spec types.ChannelSpec) (*Channel, error) {
	var src Source
	if s.factory != nil && spec.Source.Bus != "" {
		var err error
		if src, err = s.factory(spec.Source); err != nil {
			return nil, err
		}
	}
	return NewChannel(spec, src, s.defInterval)
}

func (s *Service) stopPollers() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	s.wg.Wait()
}

// poll samples ch immediately and then every ch.interval.
func (s *Service) poll(ctx context.Context, conn *bus.Connection, ch *Channel) {
	defer s.wg.Done()

	tick := time.NewTicker(ch.interval)
	defer tick.Stop()

	var link types.Link
	var code errcode.Code
	for {
		l, c, err := s.sample(conn, ch)
		if l != link || c != code {
			link, code = l, c
			s.logTransition(ch, link, code, err)
			st := types.ChannelStatus{Link: link, TS: timex.NowMs()}
			if c != errcode.OK {
				st.Error = string(c)
			}
			conn.Publish(conn.NewMessage(topicStatus(ch.name), st, true))
		}
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
	}
}

// sample runs one Update and publishes the reading on success.
func (s *Service) sample(conn *bus.Connection, ch *Channel) (types.Link, errcode.Code, error) {
	err := ch.Update(drivers.AllMeasurements)
	code := errcode.Of(err)
	switch code {
	case errcode.OK:
		r, _ := ch.Last()
		conn.Publish(conn.NewMessage(topicValue(ch.name), r, true))
		return types.LinkUp, code, nil
	case errcode.BelowRange, errcode.AboveRange:
		return types.LinkDegraded, code, err
	}
	return types.LinkDown, code, err
}

func (s *Service) logTransition(ch *Channel, link types.Link, code errcode.Code, err error) {
	switch link {
	case types.LinkUp:
		s.log.Info().Str("channel", ch.name).Msg("channel up")
	case types.LinkDegraded:
		s.log.Warn().Str("channel", ch.name).Str("code", string(code)).Msg("reading outside calibration curve")
	default:
		s.log.Error().Err(err).Str("channel", ch.name).Str("code", string(code)).Msg("read failed")
	}
}

func (s *Service) handleConvert(conn *bus.Connection, msg *bus.Message) {
	name, _ := msg.Topic[1].(string)
	ch, ok := s.Channel(name)
	if !ok {
		conn.Reply(msg, types.ErrorReply{Error: string(errcode.UnknownChannel), Msg: name}, false)
		return
	}
	raw, err := util.Float(msg.Payload)
	if err != nil {
		conn.Reply(msg, types.ErrorReply{Error: string(errcode.InvalidPayload), Msg: err.Error()}, false)
		return
	}
	r, err := ch.Convert(raw)
	if err != nil {
		s.log.Debug().Str("channel", name).Float64("raw", raw).Str("code", string(errcode.Of(err))).Msg("convert rejected")
		conn.Reply(msg, types.ErrorReply{Error: string(errcode.Of(err)), Msg: errcode.Message(err)}, false)
		return
	}
	conn.Reply(msg, r, false)
}
