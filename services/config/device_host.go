//go:build !(rp2040 || rp2350)

package config

// DeviceName identifies which embedded config applies to this build.
func DeviceName() string { return "host" }
