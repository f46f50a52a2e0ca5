// Package config publishes the device's embedded configuration onto the bus as
// retained messages, one per top-level section. Services pick up their section
// by subscribing config/<name>; late subscribers get the retained copy.
package config

import (
	"encoding/json"
	"errors"

	"motioncode-go/bus"
)

const configPrefix = "config"

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Publish decodes the embedded config for device and publishes each top-level
// section retained under config/<section>.
func Publish(b *bus.Bus, device string) error {
	if device == "" {
		return errors.New("missing device ID")
	}
	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return errors.New("no embedded config for device: " + device)
	}

	var sections map[string]any
	if err := json.Unmarshal(raw, &sections); err != nil {
		return err
	}
	for name, payload := range sections {
		b.Publish(&bus.Message{
			Topic:    bus.T(configPrefix, name),
			Payload:  payload,
			Retained: true,
		})
	}
	return nil
}
