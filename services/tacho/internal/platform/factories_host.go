//go:build !(rp2040 || rp2350)

package platform

import (
	"io"
	"os"
	"sync"

	"motioncode-go/services/tacho/internal/quad"
	"motioncode-go/services/tacho/internal/tachocore"
)

// DefaultPlan returns the reference four-port layout; host fakes can model
// any bank topology.
func DefaultPlan() quad.Plan { return planFourPort }

// Default wires up fresh host fakes plus stdout as the report feed.
func Default() (tachocore.PinFactory, tachocore.BankFactory, tachocore.ADC, io.Writer) {
	return NewFakePins(), NewFakeBanks(), NewFakeADC(), os.Stdout
}

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements tachocore.GPIOPin and records how it was configured.
type FakePin struct {
	mu       sync.Mutex
	number   int
	level    bool
	isOutput bool
	inputs   int // ConfigureInput call count
	outputs  int // ConfigureOutput call count
}

func (p *FakePin) ConfigureInput(_ tachocore.Pull) error {
	p.mu.Lock()
	p.isOutput = false
	p.inputs++
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.isOutput = true
	p.level = initial
	p.outputs++
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.Lock()
	v := p.level
	p.mu.Unlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// Test inspection helpers.
func (p *FakePin) IsOutput() bool                 { return p.isOutput }
func (p *FakePin) ConfigureCounts() (in, out int) { return p.inputs, p.outputs }

// FakePinFactory hands out stable *FakePin instances per number.
type FakePinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func NewFakePins() *FakePinFactory {
	return &FakePinFactory{pins: make(map[int]*FakePin)}
}

func (f *FakePinFactory) ByNumber(n int) (tachocore.GPIOPin, bool) {
	if n < 0 {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// Pin exposes the underlying fake for tests (to drive levels).
func (f *FakePinFactory) Pin(n int) *FakePin {
	p, _ := f.ByNumber(n)
	return p.(*FakePin)
}

// ----------------------------- Banks (host) ----------------------------------

// FakeBank models an edge-interrupt bank: armed status bits, a pending mask
// with write-one-to-clear Ack, bank-level masking, and handler re-fire when
// the bank is unmasked with edges still pending.
type FakeBank struct {
	id      int
	handler func()
	armed   uint32
	pending uint32
	masked  bool
	inISR   bool
}

func (b *FakeBank) ID() int              { return b.id }
func (b *FakeBank) SetHandler(fn func()) { b.handler = fn }
func (b *FakeBank) EnableEdges(mask uint32) {
	b.armed |= mask
}
func (b *FakeBank) IntDisable()     { b.masked = true }
func (b *FakeBank) IntEnable()      { b.masked = false; b.fireIfPending() }
func (b *FakeBank) Pending() uint32 { return b.pending }
func (b *FakeBank) Ack(mask uint32) { b.pending &^= mask }
func (b *FakeBank) ClearPending()   {}

// Armed exposes the armed status mask for wiring tests.
func (b *FakeBank) Armed() uint32 { return b.armed }

// Edge simulates a hardware edge on one status bit. Disarmed bits never set
// status, matching a bank whose unused lines are not edge-enabled. If the
// bank is masked or mid-service, the bit stays pending and the handler
// re-fires on unmask, like the real controller.
func (b *FakeBank) Edge(bit uint8) {
	mask := uint32(1) << bit
	if b.armed&mask == 0 {
		return
	}
	b.pending |= mask
	b.fireIfPending()
}

func (b *FakeBank) fireIfPending() {
	if b.masked || b.inISR || b.handler == nil || b.pending&b.armed == 0 {
		return
	}
	b.inISR = true
	b.handler()
	b.inISR = false
}

// FakeBankFactory hands out stable *FakeBank instances per id.
type FakeBankFactory struct {
	banks map[int]*FakeBank
}

func NewFakeBanks() *FakeBankFactory {
	return &FakeBankFactory{banks: make(map[int]*FakeBank)}
}

func (f *FakeBankFactory) ByID(id int) (tachocore.Bank, bool) {
	if id < 0 {
		return nil, false
	}
	b, ok := f.banks[id]
	if !ok {
		b = &FakeBank{id: id}
		f.banks[id] = b
	}
	return b, true
}

// Bank exposes the underlying fake for tests (to fire edges).
func (f *FakeBankFactory) Bank(id int) *FakeBank {
	b, _ := f.ByID(id)
	return b.(*FakeBank)
}

// ------------------------------ ADC (host) -----------------------------------

// FakeADC serves canned samples per channel. Channels without a canned value
// read as the floating "nothing attached" centre. Err, when set, is returned
// for every read. ReadHook, when set, runs before each read; tests use it to
// interleave counter activity with a query in flight.
type FakeADC struct {
	mu       sync.Mutex
	samples  map[uint8]uint16
	Err      error
	ReadHook func()
}

// rawFloating matches the classifier's "nothing attached" centre reference.
const rawFloating = 2014

func NewFakeADC() *FakeADC {
	return &FakeADC{samples: make(map[uint8]uint16)}
}

// SetSample sets the canned reading for a channel.
func (a *FakeADC) SetSample(ch uint8, raw uint16) {
	a.mu.Lock()
	a.samples[ch] = raw
	a.mu.Unlock()
}

func (a *FakeADC) ReadChannel(ch uint8) (uint16, error) {
	if a.ReadHook != nil {
		a.ReadHook()
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return 0, a.Err
	}
	raw, ok := a.samples[ch]
	if !ok {
		return rawFloating, nil
	}
	return raw, nil
}

var (
	_ tachocore.PinFactory  = (*FakePinFactory)(nil)
	_ tachocore.BankFactory = (*FakeBankFactory)(nil)
	_ tachocore.ADC         = (*FakeADC)(nil)
)
