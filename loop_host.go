//go:build !(rp2040 || rp2350)

package main

// On the host build there is no interrupt to park on; block forever while the
// service goroutines run.
func mainLoop() {
	select {}
}
