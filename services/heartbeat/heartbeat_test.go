package heartbeat

import (
	"testing"
	"time"
)

func TestIntervalFromConfig(t *testing.T) {
	cases := []struct {
		name    string
		payload any
		want    time.Duration
		ok      bool
	}{
		{"float seconds", map[string]any{"interval": 2.0}, 2 * time.Second, true},
		{"int seconds", map[string]any{"interval": 5}, 5 * time.Second, true},
		{"fractional", map[string]any{"interval": 0.5}, 500 * time.Millisecond, true},
		{"zero rejected", map[string]any{"interval": 0.0}, 0, false},
		{"negative rejected", map[string]any{"interval": -1.0}, 0, false},
		{"missing key", map[string]any{"other": 1.0}, 0, false},
		{"not a map", "interval=2", 0, false},
	}
	for _, c := range cases {
		got, ok := interval(c.payload)
		if ok != c.ok || got != c.want {
			t.Errorf("%s: interval(%v) = (%v, %v), want (%v, %v)",
				c.name, c.payload, got, ok, c.want, c.ok)
		}
	}
}
