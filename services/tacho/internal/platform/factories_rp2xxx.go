//go:build rp2040 || rp2350

package platform

import (
	"io"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/mcp3008"

	"motioncode-go/errcode"
	"motioncode-go/services/tacho/internal/irqlock"
	"motioncode-go/services/tacho/internal/quad"
	"motioncode-go/services/tacho/internal/tachocore"
)

// Pico carrier layout: four motor ports on one soft bank (bit == GP number),
// identification voltages on an external MCP3008 behind SPI0.
var planPico = quad.Plan{
	{PulsePin: 2, DirPin: 3, DetectPin: 10, Bank: 0, BankBit: 2, ADCChannel: 0},
	{PulsePin: 4, DirPin: 5, DetectPin: 11, Bank: 0, BankBit: 4, ADCChannel: 1},
	{PulsePin: 6, DirPin: 7, DetectPin: 12, Bank: 0, BankBit: 6, ADCChannel: 2},
	{PulsePin: 8, DirPin: 9, DetectPin: 13, Bank: 0, BankBit: 8, ADCChannel: 3},
}

const (
	adcCSPin = machine.GP17

	reportBaud = 115200
)

func DefaultPlan() quad.Plan { return planPico }

// Default configures the RP2 peripherals: GPIO factory, the soft edge bank,
// the SPI identification converter and the report UART.
func Default() (tachocore.PinFactory, tachocore.BankFactory, tachocore.ADC, io.Writer) {
	_ = machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 1 * machine.MHz,
		Mode:      0,
	})
	conv := mcp3008.New(machine.SPI0, adcCSPin)
	conv.Configure()

	hw := uartx.UART0
	_ = hw.Configure(uartx.UARTConfig{
		BaudRate: reportBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})

	return rp2PinFactory{}, &rp2BankFactory{}, &spiADC{dev: &conv}, hw
}

// ---- GPIO ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (tachocore.GPIOPin, bool) {
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull tachocore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case tachocore.PullUp:
		mode = machine.PinInputPullup
	case tachocore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

// ---- Edge bank ----

// rp2Bank synthesizes the bank contract over per-pin GPIO interrupts: the
// pending mask accumulates in software from ISR callbacks, with the bit
// position equal to the GP number. Bank-level masking nests through irqlock.
type rp2Bank struct {
	id      int
	handler func()
	pending uint32
	tok     irqlock.Token
}

func (b *rp2Bank) ID() int              { return b.id }
func (b *rp2Bank) SetHandler(fn func()) { b.handler = fn }

func (b *rp2Bank) EnableEdges(mask uint32) {
	for bit := 0; bit <= 28; bit++ {
		if mask&(1<<uint(bit)) == 0 {
			continue
		}
		pin := machine.Pin(bit)
		_ = pin.SetInterrupt(machine.PinRising|machine.PinFalling, func(p machine.Pin) {
			b.pending |= 1 << uint(p)
			if b.handler != nil {
				b.handler()
			}
		})
	}
}

func (b *rp2Bank) IntDisable()     { b.tok = irqlock.Enter() }
func (b *rp2Bank) IntEnable()      { irqlock.Exit(b.tok) }
func (b *rp2Bank) Pending() uint32 { return b.pending }
func (b *rp2Bank) Ack(mask uint32) { b.pending &^= mask }

// ClearPending: the RP2 GPIO IRQ acknowledges per pin inside the machine
// runtime; there is no separate bank-level flag to clear.
func (b *rp2Bank) ClearPending() {}

type rp2BankFactory struct {
	bank *rp2Bank
}

func (f *rp2BankFactory) ByID(id int) (tachocore.Bank, bool) {
	if id != 0 {
		return nil, false
	}
	if f.bank == nil {
		f.bank = &rp2Bank{id: 0}
	}
	return f.bank, true
}

// ---- ADC ----

// spiADC adapts the 10-bit MCP3008 to the 12-bit scale the classifier bands
// were measured on.
type spiADC struct {
	dev *mcp3008.Device
}

func (a *spiADC) ReadChannel(ch uint8) (uint16, error) {
	raw, err := a.dev.Read(int(ch))
	if err != nil {
		return 0, &errcode.E{C: errcode.Unavailable, Op: "adc.read", Err: err}
	}
	return raw << 2, nil
}
