// Package quad owns the per-port rotation counters. A hardware edge on a
// port's pulse line lands in an interrupt bank; the bank's service routine
// decodes rotation direction from the relative phase of the pulse and
// direction lines and adjusts the counter. Mainline code reads counters only
// through protected snapshots.
package quad

import (
	"motioncode-go/errcode"
	"motioncode-go/services/tacho/internal/ident"
	"motioncode-go/services/tacho/internal/irqlock"
	"motioncode-go/services/tacho/internal/tachocore"
	"motioncode-go/types"
)

// ChannelConfig binds one port's counter to its I/O lines. Fixed at build
// time by the board plan; never changes at runtime.
type ChannelConfig struct {
	PulsePin   int // interrupt-capable quadrature pulse line
	DirPin     int // direction line, sampled in the service routine
	DetectPin  int // output driven low to enable the ID divider
	Bank       int // edge-interrupt bank owning the pulse line
	BankBit    uint8
	ADCChannel uint8
}

// Plan is the full per-board channel table.
type Plan []ChannelConfig

type channel struct {
	cfg    ChannelConfig
	pulse  tachocore.GPIOPin
	dir    tachocore.GPIOPin
	detect tachocore.GPIOPin

	// Mutated only by the bank service routine. Everything else takes a
	// snapshot under irqlock. Wraps silently after very long continuous
	// runs; accepted.
	count int32
}

// Registry is the fixed-size table of sensing channels. Constructed once at
// boot; lives for the process lifetime.
type Registry struct {
	channels []channel
	banks    []tachocore.Bank
	adc      tachocore.ADC
}

// NewRegistry resolves the plan's pins and banks. It does not touch hardware;
// call Init for that.
func NewRegistry(plan Plan, pins tachocore.PinFactory, banks tachocore.BankFactory, adc tachocore.ADC) (*Registry, error) {
	r := &Registry{
		channels: make([]channel, len(plan)),
		adc:      adc,
	}
	for i, cfg := range plan {
		ch := &r.channels[i]
		ch.cfg = cfg
		var ok bool
		if ch.pulse, ok = pins.ByNumber(cfg.PulsePin); !ok {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "quad.NewRegistry", Msg: "pulse"}
		}
		if ch.dir, ok = pins.ByNumber(cfg.DirPin); !ok {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "quad.NewRegistry", Msg: "dir"}
		}
		if ch.detect, ok = pins.ByNumber(cfg.DetectPin); !ok {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "quad.NewRegistry", Msg: "detect"}
		}
		if r.bankByID(cfg.Bank) == nil {
			b, ok := banks.ByID(cfg.Bank)
			if !ok {
				return nil, &errcode.E{C: errcode.UnknownBank, Op: "quad.NewRegistry"}
			}
			r.banks = append(r.banks, b)
		}
	}
	return r, nil
}

// Init configures every channel's lines, registers one service routine per
// distinct bank and arms edge detection for exactly the pulse-line bits.
// Call exactly once, before any interrupt source is live.
func (r *Registry) Init() error {
	for i := range r.channels {
		ch := &r.channels[i]
		if err := ch.pulse.ConfigureInput(tachocore.PullNone); err != nil {
			return err
		}
		if err := ch.dir.ConfigureInput(tachocore.PullNone); err != nil {
			return err
		}
		// Driven low once to enable the passive ID circuitry, then left
		// alone for the process lifetime.
		if err := ch.detect.ConfigureOutput(false); err != nil {
			return err
		}
	}

	for _, b := range r.banks {
		bank := b
		bank.SetHandler(func() { r.serviceBank(bank) })
		bank.EnableEdges(r.pulseMask(bank.ID()))
	}
	return nil
}

// pulseMask is the union of pulse-line status bits for one bank. Unused lines
// in a shared bank stay disarmed so they cannot invoke the routine spuriously.
func (r *Registry) pulseMask(bankID int) uint32 {
	var mask uint32
	for i := range r.channels {
		if r.channels[i].cfg.Bank == bankID {
			mask |= 1 << r.channels[i].cfg.BankBit
		}
	}
	return mask
}

func (r *Registry) bankByID(id int) tachocore.Bank {
	for _, b := range r.banks {
		if b.ID() == id {
			return b
		}
	}
	return nil
}

// serviceBank runs in interrupt context. One hardware event can carry edges
// for several channels in the bank, so every channel is evaluated against a
// single status read. No failure path: a missed edge is accepted precision
// loss, never an error.
func (r *Registry) serviceBank(b tachocore.Bank) {
	b.IntDisable()
	status := b.Pending()

	for i := range r.channels {
		ch := &r.channels[i]
		if ch.cfg.Bank != b.ID() {
			continue
		}
		mask := uint32(1) << ch.cfg.BankBit
		if status&mask == 0 {
			// Event is for another channel, or already serviced.
			continue
		}
		b.Ack(mask)

		// Quadrature decode: direction is the relative phase of the two
		// lines at the moment of the edge, not either line alone.
		if ch.pulse.Get() != ch.dir.Get() {
			ch.count++
		} else {
			ch.count--
		}
	}

	b.ClearPending()
	b.IntEnable()
}

// Len reports the number of ports in the registry.
func (r *Registry) Len() int { return len(r.channels) }

// Device returns the handle for a port, or no_dev if the id is outside the
// fixed range.
func (r *Registry) Device(id int) (*Device, error) {
	if id < 0 || id >= len(r.channels) {
		return nil, errcode.NoDev
	}
	return &Device{ch: &r.channels[id], adc: r.adc, port: id}, nil
}

// Device is the query façade for one port.
type Device struct {
	ch   *channel
	adc  tachocore.ADC
	port int
}

// Port returns the registry index of this device.
func (d *Device) Port() int { return d.port }

// Count takes one protected snapshot of the rotation counter. Counting
// continues concurrently; the snapshot is never torn.
func (d *Device) Count() int32 {
	t := irqlock.Enter()
	v := d.ch.count
	irqlock.Exit(t)
	return v
}

// Sample reads the port's identification voltage and classifies it. Converter
// failures propagate verbatim.
func (d *Device) Sample() (uint16, types.MotorType, error) {
	raw, err := d.adc.ReadChannel(d.ch.cfg.ADCChannel)
	if err != nil {
		return 0, types.MotorNone, err
	}
	return raw, ident.Classify(raw), nil
}

// Angle reports the accumulated rotation as whole rotations plus
// sub-rotation millidegrees, along with the currently attached motor type.
//
// The classifier runs first: with nothing attached the historical count is
// never surfaced, so callers can detect unplugging. Division truncates
// toward zero, so negative counts yield negative millidegrees.
func (d *Device) Angle() (rotations, millidegrees int32, motor types.MotorType, err error) {
	_, motor, err = d.Sample()
	if err != nil {
		return 0, 0, types.MotorNone, err
	}
	if motor == types.MotorNone {
		return 0, 0, types.MotorNone, errcode.NoDev
	}

	count := d.Count()
	return count / 360, (count % 360) * 1000, motor, nil
}

// AbsoluteAngle is unsupported on this hardware family: the encoders provide
// relative position only. Callers must not retry.
func (d *Device) AbsoluteAngle() (int32, error) {
	return 0, errcode.NotSupported
}
