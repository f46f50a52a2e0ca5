package quad_test

import (
	"testing"

	"motioncode-go/errcode"
	"motioncode-go/services/tacho/internal/platform"
	"motioncode-go/services/tacho/internal/quad"
	"motioncode-go/types"
)

type rig struct {
	reg   *quad.Registry
	pins  *platform.FakePinFactory
	banks *platform.FakeBankFactory
	adc   *platform.FakeADC
	plan  quad.Plan
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{
		pins:  platform.NewFakePins(),
		banks: platform.NewFakeBanks(),
		adc:   platform.NewFakeADC(),
		plan:  platform.DefaultPlan(),
	}
	reg, err := quad.NewRegistry(r.plan, r.pins, r.banks, r.adc)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if err := reg.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r.reg = reg
	return r
}

// edge drives one hardware edge on a channel with the given line levels.
func (r *rig) edge(ch int, pulse, dir bool) {
	cfg := r.plan[ch]
	r.pins.Pin(cfg.PulsePin).Set(pulse)
	r.pins.Pin(cfg.DirPin).Set(dir)
	r.banks.Bank(cfg.Bank).Edge(cfg.BankBit)
}

func (r *rig) device(t *testing.T, ch int) *quad.Device {
	t.Helper()
	d, err := r.reg.Device(ch)
	if err != nil {
		t.Fatalf("Device(%d): %v", ch, err)
	}
	return d
}

func TestXORSignRule(t *testing.T) {
	r := newRig(t)
	d := r.device(t, 0)

	cases := []struct {
		pulse, dir bool
		delta      int32
	}{
		{true, false, +1},
		{false, true, +1},
		{true, true, -1},
		{false, false, -1},
	}
	for _, c := range cases {
		before := d.Count()
		r.edge(0, c.pulse, c.dir)
		if got := d.Count() - before; got != c.delta {
			t.Fatalf("edge(pulse=%v dir=%v): delta %d, want %d", c.pulse, c.dir, got, c.delta)
		}
	}
}

func TestEdgeReplayIsDeterministic(t *testing.T) {
	seq := []struct{ pulse, dir bool }{
		{true, false}, {false, false}, {true, true}, {false, true},
		{true, false}, {true, false}, {false, false},
	}
	run := func() int32 {
		r := newRig(t)
		for _, e := range seq {
			r.edge(0, e.pulse, e.dir)
		}
		return r.device(t, 0).Count()
	}

	first := run()
	// increments - decrements: 4 XOR-true, 3 XOR-false.
	if first != 1 {
		t.Fatalf("final count %d, want 1", first)
	}
	if again := run(); again != first {
		t.Fatalf("replay diverged: %d vs %d", again, first)
	}
}

func TestSharedBankServicesEveryPendingChannel(t *testing.T) {
	r := newRig(t)
	d0, d2 := r.device(t, 0), r.device(t, 2)

	// Raise edges on two channels of bank 5 while the bank is masked, then
	// unmask: one handler invocation must service both status bits.
	r.pins.Pin(r.plan[0].PulsePin).Set(true) // XOR true -> +1
	r.pins.Pin(r.plan[2].PulsePin).Set(true)
	bank := r.banks.Bank(5)
	bank.IntDisable()
	bank.Edge(r.plan[0].BankBit)
	bank.Edge(r.plan[2].BankBit)
	bank.IntEnable()

	if d0.Count() != 1 || d2.Count() != 1 {
		t.Fatalf("counts (%d, %d), want (1, 1)", d0.Count(), d2.Count())
	}
	if bank.Pending() != 0 {
		t.Fatalf("status bits not acknowledged: %#x", bank.Pending())
	}
}

func TestUnsetStatusBitIsSkipped(t *testing.T) {
	r := newRig(t)
	d0, d1 := r.device(t, 0), r.device(t, 1)

	r.pins.Pin(r.plan[0].PulsePin).Set(true)
	r.banks.Bank(5).Edge(r.plan[0].BankBit)

	if d0.Count() != 1 {
		t.Fatalf("channel 0 count %d, want 1", d0.Count())
	}
	if d1.Count() != 0 {
		t.Fatalf("channel 1 count %d, want 0 (its bit was never set)", d1.Count())
	}
}

func TestDisarmedLineNeverFires(t *testing.T) {
	r := newRig(t)
	r.banks.Bank(5).Edge(0) // bit 0 is not a pulse line in the plan
	for ch := 0; ch < r.reg.Len(); ch++ {
		if c := r.device(t, ch).Count(); c != 0 {
			t.Fatalf("channel %d count %d after disarmed edge", ch, c)
		}
	}
}

func TestInitWiring(t *testing.T) {
	r := newRig(t)

	// Bank 5 arms exactly the three pulse bits, bank 6 exactly one.
	if got := r.banks.Bank(5).Armed(); got != (1<<27)|(1<<24)|(1<<29) {
		t.Fatalf("bank 5 armed mask %#x", got)
	}
	if got := r.banks.Bank(6).Armed(); got != 1<<9 {
		t.Fatalf("bank 6 armed mask %#x", got)
	}

	for i, cfg := range r.plan {
		det := r.pins.Pin(cfg.DetectPin)
		if !det.IsOutput() || det.Get() {
			t.Fatalf("channel %d: detect line must be an output driven low", i)
		}
		if r.pins.Pin(cfg.PulsePin).IsOutput() || r.pins.Pin(cfg.DirPin).IsOutput() {
			t.Fatalf("channel %d: pulse/dir must be inputs", i)
		}
		// Each line is configured exactly once.
		for _, pin := range []int{cfg.PulsePin, cfg.DirPin, cfg.DetectPin} {
			in, out := r.pins.Pin(pin).ConfigureCounts()
			if in+out != 1 {
				t.Fatalf("channel %d pin %d configured %d times", i, pin, in+out)
			}
		}
	}
}

func TestAngleDecomposition(t *testing.T) {
	r := newRig(t)
	r.adc.SetSample(r.plan[0].ADCChannel, 290) // medium motor band
	d := r.device(t, 0)

	r.pins.Pin(r.plan[0].DirPin).Set(false)
	r.pins.Pin(r.plan[0].PulsePin).Set(true)
	for i := 0; i < 725; i++ {
		r.banks.Bank(5).Edge(r.plan[0].BankBit)
	}

	rot, mdeg, motor, err := d.Angle()
	if err != nil {
		t.Fatalf("Angle: %v", err)
	}
	if rot != 2 || mdeg != 5000 {
		t.Fatalf("Angle = (%d, %d), want (2, 5000)", rot, mdeg)
	}
	if motor != types.MotorMedium {
		t.Fatalf("motor %v, want medium", motor)
	}
	if mdeg < 0 || mdeg >= 359000 {
		t.Fatalf("millidegrees %d outside [0, 359000)", mdeg)
	}
	if rot*360+mdeg/1000 != d.Count() {
		t.Fatal("rotations*360 + millidegrees/1000 must equal count")
	}
}

func TestNegativeAngleUsesTruncatingDivision(t *testing.T) {
	r := newRig(t)
	r.adc.SetSample(r.plan[0].ADCChannel, 290)
	d := r.device(t, 0)

	// XOR false on every edge: 725 decrements.
	r.pins.Pin(r.plan[0].DirPin).Set(false)
	r.pins.Pin(r.plan[0].PulsePin).Set(false)
	for i := 0; i < 725; i++ {
		r.banks.Bank(5).Edge(r.plan[0].BankBit)
	}

	rot, mdeg, _, err := d.Angle()
	if err != nil {
		t.Fatalf("Angle: %v", err)
	}
	if rot != -2 || mdeg != -5000 {
		t.Fatalf("Angle = (%d, %d), want (-2, -5000) per truncating division", rot, mdeg)
	}
	if rot*360+mdeg/1000 != d.Count() {
		t.Fatal("decomposition must recompose to count for negative counts too")
	}
}

func TestAbsentDeviceHidesCount(t *testing.T) {
	r := newRig(t)
	d := r.device(t, 0)

	// Accumulate history, then leave the port floating at the centre band.
	r.pins.Pin(r.plan[0].PulsePin).Set(true)
	for i := 0; i < 10; i++ {
		r.banks.Bank(5).Edge(r.plan[0].BankBit)
	}
	if d.Count() == 0 {
		t.Fatal("test needs a nonzero historical count")
	}

	rot, mdeg, motor, err := d.Angle()
	if errcode.Of(err) != errcode.NoDev {
		t.Fatalf("err %v, want no_dev", err)
	}
	if rot != 0 || mdeg != 0 || motor != types.MotorNone {
		t.Fatal("no rotation data may surface for an absent device")
	}
}

func TestConverterFailurePropagates(t *testing.T) {
	r := newRig(t)
	r.adc.Err = errcode.Unavailable
	d := r.device(t, 0)

	if _, _, _, err := d.Angle(); errcode.Of(err) != errcode.Unavailable {
		t.Fatalf("err %v, want unavailable", err)
	}
}

func TestAbsoluteAngleAlwaysUnsupported(t *testing.T) {
	r := newRig(t)
	r.adc.SetSample(r.plan[0].ADCChannel, 290)
	d := r.device(t, 0)

	for i := 0; i < 2; i++ {
		if _, err := d.AbsoluteAngle(); errcode.Of(err) != errcode.NotSupported {
			t.Fatalf("err %v, want not_supported", err)
		}
	}
}

func TestDeviceRange(t *testing.T) {
	r := newRig(t)
	if _, err := r.reg.Device(-1); errcode.Of(err) != errcode.NoDev {
		t.Fatal("negative id must be no_dev")
	}
	if _, err := r.reg.Device(r.reg.Len()); errcode.Of(err) != errcode.NoDev {
		t.Fatal("id past the fixed range must be no_dev")
	}
}

func TestQueryInterleavedWithIncrement(t *testing.T) {
	r := newRig(t)
	r.adc.SetSample(r.plan[0].ADCChannel, 290)
	d := r.device(t, 0)

	r.pins.Pin(r.plan[0].DirPin).Set(false)
	r.pins.Pin(r.plan[0].PulsePin).Set(true)
	for i := 0; i < 5; i++ {
		r.banks.Bank(5).Edge(r.plan[0].BankBit)
	}
	pre := d.Count()

	// One more edge lands while the query is in flight, between the analog
	// sample and the counter snapshot.
	r.adc.ReadHook = func() {
		r.banks.Bank(5).Edge(r.plan[0].BankBit)
		r.adc.ReadHook = nil
	}

	rot, mdeg, _, err := d.Angle()
	if err != nil {
		t.Fatalf("Angle: %v", err)
	}
	got := rot*360 + mdeg/1000
	if got != pre && got != pre+1 {
		t.Fatalf("observed %d, want pre (%d) or post (%d), never a torn value", got, pre, pre+1)
	}
	if got != pre+1 {
		t.Fatalf("edge delivered before the snapshot must be visible: got %d", got)
	}
}
