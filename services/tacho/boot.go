package tacho

import (
	"context"

	"motioncode-go/bus"
	"motioncode-go/services/tacho/internal/irqlock"
	"motioncode-go/services/tacho/internal/platform"
	"motioncode-go/services/tacho/internal/quad"
	"motioncode-go/types"
)

// Boot wires the platform defaults (board plan, pin and bank factories, the
// identification converter and the report port), initializes the registry and
// runs the service until ctx is done. Call once, before any interrupt source
// is live.
func Boot(ctx context.Context, b *bus.Bus, cfg types.TachoConfig) error {
	pins, banks, adc, report := platform.Default()

	reg, err := quad.NewRegistry(platform.DefaultPlan(), pins, banks, adc)
	if err != nil {
		return err
	}
	if err := reg.Init(); err != nil {
		return err
	}

	Run(ctx, b, Deps{Registry: reg, Report: report, Config: cfg})
	return nil
}

// IdleUntilInterrupt parks the processor until the next interrupt, for outer
// scheduling loops with nothing to do. Power hint only; it promises nothing
// about which pending interrupt is serviced next.
func IdleUntilInterrupt() {
	t := irqlock.Enter()
	irqlock.Idle(t)
	irqlock.Exit(t)
}
