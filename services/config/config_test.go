package config

import (
	"testing"
	"time"

	"motioncode-go/bus"
)

func TestPublishEmbeddedRetainedPerSection(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		if device != "pico" {
			return nil, false
		}
		return []byte(`{
			"mode": "dev",
			"debug": true,
			"tacho": {"poll_interval_ms": 50, "report": false}
		}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(16)
	if err := Publish(b, "pico"); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	// Subscribe after publishing; retained copies should still arrive.
	sub := b.Subscribe(bus.T(configPrefix, bus.Wildcard))
	defer sub.Unsubscribe()

	got := map[string]any{}
	deadline := time.After(600 * time.Millisecond)
	for len(got) < 3 {
		select {
		case m := <-sub.Channel():
			if len(m.Topic) != 2 || m.Topic[0] != configPrefix {
				t.Fatalf("unexpected topic: %v", m.Topic)
			}
			if !m.Retained {
				t.Fatalf("config message for %q not retained", m.Topic[1])
			}
			got[m.Topic[1]] = m.Payload
		case <-deadline:
			t.Fatalf("expected 3 retained sections, got %d (%v)", len(got), got)
		}
	}

	if s, ok := got["mode"].(string); !ok || s != "dev" {
		t.Fatalf("mode payload = %#v, want \"dev\"", got["mode"])
	}
	if v, ok := got["debug"].(bool); !ok || !v {
		t.Fatalf("debug payload = %#v, want true", got["debug"])
	}
	m, ok := got["tacho"].(map[string]any)
	if !ok {
		t.Fatalf("tacho payload type = %T, want map[string]any", got["tacho"])
	}
	if iv, ok := m["poll_interval_ms"].(float64); !ok || iv != 50 {
		t.Fatalf("tacho.poll_interval_ms = %#v, want 50", m["poll_interval_ms"])
	}
}

func TestPublishMissingDevice(t *testing.T) {
	b := bus.NewBus(4)
	if err := Publish(b, ""); err == nil {
		t.Fatal("expected error for missing device ID, got nil")
	}
}

func TestPublishNoConfigFound(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) { return nil, false }
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(4)
	if err := Publish(b, "unknown-device"); err == nil {
		t.Fatal("expected error for missing embedded config, got nil")
	}
}
