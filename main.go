package main

import (
	"context"
	"time"

	"motioncode-go/bus"
	"motioncode-go/services/config"
	"motioncode-go/services/heartbeat"
	"motioncode-go/services/tacho"
	"motioncode-go/types"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	b := bus.NewBus(16)
	ctx := context.Background()

	if err := config.Publish(b, config.DeviceName()); err != nil {
		println("config publish failed:", err.Error())
	}
	go heartbeat.Run(ctx, b)

	go func() {
		err := tacho.Boot(ctx, b, types.TachoConfig{
			PollIntervalMs: 100,
			Report:         true,
		})
		if err != nil {
			println("tacho boot failed:", err.Error())
		}
	}()

	mainLoop()
}
