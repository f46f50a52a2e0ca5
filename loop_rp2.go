//go:build rp2040 || rp2350

package main

import (
	"runtime"

	"motioncode-go/services/tacho"
)

func mainLoop() {
	for {
		tacho.IdleUntilInterrupt()
		// Let the service goroutine run before parking again; the TinyGo
		// scheduler is cooperative.
		runtime.Gosched()
	}
}
