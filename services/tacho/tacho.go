// Package tacho exposes the position-sensing core on the firmware bus. Other
// services (and the scripting bindings behind them) never touch the registry
// directly; they ask over control topics and listen for value publishes.
package tacho

import (
	"context"
	"io"
	"time"

	"github.com/chewxy/math32"

	"motioncode-go/bus"
	"motioncode-go/errcode"
	"motioncode-go/services/tacho/internal/quad"
	"motioncode-go/types"
	"motioncode-go/x/strconvx"
)

// Control verbs.
const (
	VerbAngle    = "angle"
	VerbAbsAngle = "abs_angle"
	VerbCount    = "count"
	VerbVoltage  = "voltage"
)

// Converter scale for the diagnostic millivolt conversion.
const (
	refMillivolts = 3300
	rawFullScale  = 4095
)

// Deps carries the service's collaborators.
type Deps struct {
	Registry *quad.Registry
	Report   io.Writer // line feed for the host monitor; nil disables
	Config   types.TachoConfig
}

type service struct {
	b   *bus.Bus
	reg *quad.Registry
	rep io.Writer
	cfg types.TachoConfig
}

// Run publishes the ready state and serves control verbs until ctx is done.
// The registry must be initialized before Run is called.
func Run(ctx context.Context, b *bus.Bus, d Deps) {
	s := &service{b: b, reg: d.Registry, rep: d.Report, cfg: d.Config}
	s.loop(ctx)
}

func (s *service) loop(ctx context.Context) {
	ctrl := s.b.Subscribe(bus.T("tacho", "motor", bus.Wildcard, "control", bus.Wildcard))
	defer ctrl.Unsubscribe()
	conf := s.b.Subscribe(bus.T("config", "tacho"))
	defer conf.Unsubscribe()

	s.publishState("ready", "ok")

	var ticker *time.Ticker
	var tick <-chan time.Time
	setPoll := func(ms uint32) {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
		if ms > 0 {
			ticker = time.NewTicker(time.Duration(ms) * time.Millisecond)
			tick = ticker.C
		}
	}
	setPoll(s.cfg.PollIntervalMs)
	defer setPoll(0)

	for {
		select {
		case <-ctx.Done():
			s.publishState("idle", "stopped")
			return
		case msg := <-ctrl.Channel():
			s.handleControl(msg)
		case msg := <-conf.Channel():
			var cfg types.TachoConfig
			if err := decodeConfig(msg.Payload, &cfg); err != nil {
				continue
			}
			s.cfg = cfg
			setPoll(cfg.PollIntervalMs)
		case <-tick:
			s.pollOnce()
		}
	}
}

func (s *service) publishState(level, status string) {
	s.b.Publish(&bus.Message{
		Topic:    bus.T("tacho", "state"),
		Retained: true,
		Payload: types.TachoState{
			Level:  level,
			Status: status,
			Ports:  s.reg.Len(),
			TsMs:   nowMs(),
		},
	})
}

// handleControl answers one verb on a motor port. Topic shape:
// tacho/motor/<port>/control/<verb>.
func (s *service) handleControl(msg *bus.Message) {
	topic := msg.Topic
	if len(topic) != 5 {
		return
	}
	port, err := strconvx.Atoi(topic[2])
	if err != nil {
		s.reply(msg, types.ErrorReply{Error: string(errcode.InvalidParams)})
		return
	}
	dev, err := s.reg.Device(port)
	if err != nil {
		s.reply(msg, types.ErrorReply{Error: string(errcode.Of(err))})
		return
	}

	switch verb := topic[4]; verb {
	case VerbAngle:
		if v, err := s.angleValue(dev); err != nil {
			s.reply(msg, types.ErrorReply{Error: string(errcode.Of(err))})
		} else {
			s.reply(msg, v)
		}
	case VerbAbsAngle:
		// Relative encoders only; callers must not retry.
		_, err := dev.AbsoluteAngle()
		s.reply(msg, types.ErrorReply{Error: string(errcode.Of(err))})
	case VerbCount:
		s.reply(msg, types.CountValue{Port: dev.Port(), Count: dev.Count(), TsMs: nowMs()})
	case VerbVoltage:
		raw, motor, err := dev.Sample()
		if err != nil {
			s.reply(msg, types.ErrorReply{Error: string(errcode.Of(err))})
			return
		}
		s.reply(msg, types.VoltageValue{
			Port:       dev.Port(),
			Raw:        raw,
			Millivolts: millivolts(raw),
			Motor:      motor.String(),
			TsMs:       nowMs(),
		})
	default:
		s.reply(msg, types.ErrorReply{Error: string(errcode.UnknownVerb)})
	}
}

func (s *service) reply(msg *bus.Message, payload any) {
	if len(msg.ReplyTo) == 0 {
		return
	}
	s.b.Publish(&bus.Message{Topic: msg.ReplyTo, Payload: payload})
}

func (s *service) angleValue(dev *quad.Device) (types.AngleValue, error) {
	rot, mdeg, motor, err := dev.Angle()
	if err != nil {
		return types.AngleValue{}, err
	}
	return types.AngleValue{
		Port:         dev.Port(),
		Rotations:    rot,
		Millidegrees: mdeg,
		Motor:        motor.String(),
		TsMs:         nowMs(),
	}, nil
}

// pollOnce publishes a value for every port with a motor attached. Absent and
// transiently unavailable ports are skipped, not errored: unplugging is a
// routine outcome.
func (s *service) pollOnce() {
	for port := 0; port < s.reg.Len(); port++ {
		dev, err := s.reg.Device(port)
		if err != nil {
			continue
		}
		v, err := s.angleValue(dev)
		if err != nil {
			continue
		}
		s.b.Publish(&bus.Message{Topic: bus.T("tacho", "motor", port, "value"), Payload: v})
		if s.cfg.Report && s.rep != nil {
			writeReport(s.rep, v)
		}
	}
}

// millivolts converts a raw converter count for the diagnostic verb.
func millivolts(raw uint16) uint32 {
	return uint32(math32.Round(float32(raw) * refMillivolts / rawFullScale))
}

func nowMs() int64 { return time.Now().UnixMilli() }
