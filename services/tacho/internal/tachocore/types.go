// Package tachocore holds the capability contracts the sensing core consumes.
// Platform packages implement them against real hardware; host builds supply
// fakes for tests.
package tachocore

// Pull selects the input bias for a digital line.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// GPIOPin is one digital I/O line.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// ADC reads the raw identification sample for a channel. A busy or absent
// converter returns errcode.Unavailable; callers decide whether to retry.
type ADC interface {
	ReadChannel(ch uint8) (uint16, error)
}

// Bank is one hardware edge-interrupt bank: a group of digital lines sharing
// an interrupt source, with per-line pending-edge status bits.
//
// The handler registered with SetHandler runs in interrupt context. It must
// not block and must not allocate.
type Bank interface {
	ID() int
	// SetHandler registers the service routine for this bank's interrupt
	// source. Call once, before EnableEdges.
	SetHandler(fn func())
	// EnableEdges arms rising and falling edge detection for exactly the
	// lines in mask, and enables the bank's interrupt at the controller.
	// Bits outside mask stay disarmed.
	EnableEdges(mask uint32)
	// IntDisable masks this bank's interrupt source; IntEnable unmasks it.
	IntDisable()
	IntEnable()
	// Pending returns the bank's pending-edge status bits.
	Pending() uint32
	// Ack clears the given status bits (write-one-to-clear semantics).
	Ack(mask uint32)
	// ClearPending clears the bank-level pending flag at the controller.
	ClearPending()
}

// PinFactory resolves pin numbers to lines.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// BankFactory resolves bank identifiers.
type BankFactory interface {
	ByID(id int) (Bank, bool)
}
