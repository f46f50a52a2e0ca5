//go:build rp2040 || rp2350

package irqlock

import (
	"device/arm"
	"runtime/interrupt"
)

// Token captures the interrupt-enable state at Enter. It is opaque; pass it
// back unchanged to Exit and never keep it past the region.
type Token interrupt.State

// Enter masks interrupts on this core and returns the prior state.
func Enter() Token { return Token(interrupt.Disable()) }

// Exit restores the state captured by the matching Enter. Nested regions
// compose because the outer region's state is restored, not "enabled".
func Exit(t Token) { interrupt.Restore(interrupt.State(t)) }

// Idle waits for the next interrupt. WFI wakes on a pending interrupt even
// while masked; the caller then exits the region to let it be serviced.
func Idle(Token) { arm.Asm("wfi") }
