// Package heartbeat prints a periodic liveness line so a serial watcher can
// tell a wedged board from a quiet one.
package heartbeat

import (
	"context"
	"time"

	"motioncode-go/bus"
)

const defaultInterval = 2 * time.Second

// Run loops until ctx is done, ticking at the configured interval. The
// interval follows config/heartbeat messages carrying {"interval": seconds}.
func Run(ctx context.Context, b *bus.Bus) {
	cfgSub := b.Subscribe(bus.T("config", "heartbeat"))
	defer cfgSub.Unsubscribe()

	tick := time.NewTicker(defaultInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("Info: heartbeat service stopping")
			return
		case <-tick.C:
			println("Info: heartbeat")
		case msg := <-cfgSub.Channel():
			if iv, ok := interval(msg.Payload); ok {
				tick.Reset(iv)
			}
		}
	}
}

func interval(payload any) (time.Duration, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := m["interval"].(type) {
	case float64:
		if v > 0 {
			return time.Duration(v * float64(time.Second)), true
		}
	case int:
		if v > 0 {
			return time.Duration(v) * time.Second, true
		}
	}
	return 0, false
}
