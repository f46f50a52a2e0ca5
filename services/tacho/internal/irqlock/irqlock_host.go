//go:build !(rp2040 || rp2350)

// Package irqlock is the firmware's critical-section primitive: a process-wide
// capability to mask the interrupt sources that mutate shared counters, and to
// restore exactly the prior mask state afterwards. Regions nest; the innermost
// Exit must not unmask while an outer region is still active, which falls out
// of restoring the captured state rather than unconditionally enabling.
//
// On host builds all operations are no-ops with a fixed placeholder token.
// Nothing in the core may depend on the token's value.
package irqlock

// Token captures the interrupt-enable state at Enter. It is opaque; pass it
// back unchanged to Exit and never keep it past the region.
type Token uintptr

// Enter masks counter-mutating interrupt sources and returns the prior state.
func Enter() Token { return 0 }

// Exit restores the state captured by the matching Enter.
func Exit(Token) {}

// Idle is a power-saving hint: wait for the next interrupt while masked.
// It carries no ordering guarantee and is not a synchronization primitive.
func Idle(Token) {}
