package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/sentinelx/sentinelx/pkg/vector"
)

func newTestController(maxInterceptors int) *DefenseController {
	return NewDefenseController(vector.Vec3{}, 30000, 10000, maxInterceptors, nil)
}

func inboundThreat(t *testing.T, rng *rand.Rand, name string, x float64) *Threat {
	t.Helper()
	return NewThreat(KindBallistic, name,
		vector.Vec3{X: x, Z: 10000},
		vector.Vec3{Z: -500},
		rng,
	)
}

func TestDetectAndLaunchTargetsInRangeThreats(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	dc := newTestController(30)

	threats := []*Threat{
		inboundThreat(t, rng, "M1", 5000),
		inboundThreat(t, rng, "M2", 8000),
	}

	dc.DetectAndLaunch(threats)

	if got := len(dc.Interceptors()); got != 2 {
		t.Fatalf("active interceptors = %d, want 2", got)
	}
	for _, threat := range threats {
		if !threat.Targeted {
			t.Errorf("%s not targeted after launch", threat.Name)
		}
	}
	if stats := dc.Stats(); stats.Launches != 2 {
		t.Errorf("Launches = %d, want 2", stats.Launches)
	}
}

func TestDetectAndLaunchSkipsIneligible(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	dc := newTestController(30)

	destroyed := inboundThreat(t, rng, "M1", 1000)
	destroyed.Destroyed = true
	grounded := inboundThreat(t, rng, "M2", 1000)
	grounded.HitGround = true
	targeted := inboundThreat(t, rng, "M3", 1000)
	targeted.Targeted = true
	outOfRange := inboundThreat(t, rng, "M4", 100000)
	// Receding faster than the interceptor: geometry unsolvable.
	unsolvable := NewThreat(KindBallistic, "M5",
		vector.Vec3{X: 10000}, vector.Vec3{X: 20000}, rng)

	dc.DetectAndLaunch([]*Threat{destroyed, grounded, targeted, outOfRange, unsolvable})

	if got := len(dc.Interceptors()); got != 0 {
		t.Errorf("active interceptors = %d, want 0", got)
	}
	if stats := dc.Stats(); stats.Launches != 0 {
		t.Errorf("Launches = %d, want 0", stats.Launches)
	}
}

func TestDetectAndLaunchRespectsCapacity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	dc := newTestController(3)

	var threats []*Threat
	for i := 0; i < 10; i++ {
		threats = append(threats, inboundThreat(t, rng, "M", 1000+float64(i)*1000))
	}

	dc.DetectAndLaunch(threats)

	if got := len(dc.Interceptors()); got != 3 {
		t.Fatalf("active interceptors = %d, want 3", got)
	}

	// The closest three threats have the smallest intercept times and must
	// be the ones selected.
	for i, threat := range threats {
		want := i < 3
		if threat.Targeted != want {
			t.Errorf("threat %d Targeted = %v, want %v", i, threat.Targeted, want)
		}
	}

	// Capacity exhausted: a second scan launches nothing.
	dc.DetectAndLaunch(threats)
	if got := len(dc.Interceptors()); got != 3 {
		t.Errorf("active interceptors after second scan = %d, want 3", got)
	}
}

func TestDetectAndLaunchBreaksTiesByInputOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(20))
	dc := newTestController(1)

	// Identical geometry gives identical intercept times; the stable sort
	// must keep input order, so the first threat wins the single slot.
	first := inboundThreat(t, rng, "first", 5000)
	second := inboundThreat(t, rng, "second", 5000)

	dc.DetectAndLaunch([]*Threat{first, second})

	if !first.Targeted {
		t.Error("first-listed threat not targeted on a tie")
	}
	if second.Targeted {
		t.Error("second-listed threat targeted ahead of the first on a tie")
	}
}

func TestDetectAndLaunchPrefersSmallestInterceptTime(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	dc := newTestController(1)

	far := inboundThreat(t, rng, "far", 20000)
	near := inboundThreat(t, rng, "near", 2000)

	dc.DetectAndLaunch([]*Threat{far, near})

	if !near.Targeted {
		t.Error("nearest threat not targeted with capacity 1")
	}
	if far.Targeted {
		t.Error("farther threat targeted ahead of the nearest")
	}
}

func TestUpdateResolvesCollision(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	dc := newTestController(30)
	threat := inboundThreat(t, rng, "M1", 5000)

	dc.DetectAndLaunch([]*Threat{threat})
	interceptors := dc.Interceptors()
	if len(interceptors) != 1 {
		t.Fatalf("active interceptors = %d, want 1", len(interceptors))
	}

	// Teleport the interceptor inside the kill radius.
	interceptors[0].Position = threat.Position.Add(vector.Vec3{X: KillRadius / 2})

	dc.Update(0.0001, []*Threat{threat})

	if !threat.Destroyed {
		t.Error("threat not destroyed on collision")
	}
	if got := len(dc.Interceptors()); got != 0 {
		t.Errorf("active interceptors after collision = %d, want 0", got)
	}
	stats := dc.Stats()
	if stats.Intercepted != 1 {
		t.Errorf("Intercepted = %d, want 1", stats.Intercepted)
	}
	if stats.Missed != 0 {
		t.Errorf("Missed = %d, want 0", stats.Missed)
	}
}

func TestUpdateCountsCollisionOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	dc := newTestController(30)
	threat := inboundThreat(t, rng, "M1", 5000)

	// Two manual launches are impossible against one threat, so stage two
	// interceptors directly to put both inside the kill radius.
	first, err := dc.ManualIntercept(threat)
	if err != nil {
		t.Fatalf("ManualIntercept() error = %v", err)
	}
	second := dc.LaunchInterceptor(threat, 1.0)
	dc.interceptors = append(dc.interceptors, second)
	first.Position = threat.Position
	second.Position = threat.Position

	dc.Update(0.0001, []*Threat{threat})

	if stats := dc.Stats(); stats.Intercepted != 1 {
		t.Errorf("Intercepted = %d, want 1 for a single threat", stats.Intercepted)
	}
	// The second interceptor keeps flying; only the colliding pair died.
	if got := len(dc.Interceptors()); got != 1 {
		t.Errorf("active interceptors = %d, want 1", got)
	}
}

func TestExpiryReleasesTargetWithoutCounting(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	dc := newTestController(30)
	threat := inboundThreat(t, rng, "M1", 5000)

	dc.DetectAndLaunch([]*Threat{threat})
	interceptors := dc.Interceptors()
	if len(interceptors) != 1 {
		t.Fatalf("active interceptors = %d, want 1", len(interceptors))
	}

	// Steer the interceptor away so it can never collide, then burn its
	// whole flight budget.
	interceptors[0].Velocity = vector.Vec3{X: -10000}
	interceptors[0].Elapsed = interceptors[0].Lifetime

	dc.Update(0.01, []*Threat{threat})

	if threat.Targeted {
		t.Error("threat still targeted after its interceptor expired")
	}
	if threat.Destroyed {
		t.Error("threat destroyed by an expired interceptor")
	}
	stats := dc.Stats()
	if stats.Intercepted != 0 || stats.Missed != 0 {
		t.Errorf("Intercepted = %d, Missed = %d after expiry, want 0, 0", stats.Intercepted, stats.Missed)
	}

	// The released threat is immediately re-targetable.
	dc.DetectAndLaunch([]*Threat{threat})
	if !threat.Targeted {
		t.Error("released threat not re-targeted on the next scan")
	}
}

func TestRecordMissesMarksGroundImpact(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	dc := newTestController(30)

	// Low and fast: crosses z=0 in a single step.
	threat := NewThreat(KindBallistic, "M1",
		vector.Vec3{Z: 50}, vector.Vec3{Z: -1000}, rng)
	threat.Targeted = true
	threat.Advance(0.1)

	dc.RecordMisses([]*Threat{threat})

	if !threat.HitGround {
		t.Error("threat below ground not marked HitGround")
	}
	if threat.Targeted {
		t.Error("Targeted not cleared on ground impact")
	}
	if stats := dc.Stats(); stats.Missed != 1 {
		t.Errorf("Missed = %d, want 1", stats.Missed)
	}

	// Idempotent: a second pass must not double-count.
	dc.RecordMisses([]*Threat{threat})
	if stats := dc.Stats(); stats.Missed != 1 {
		t.Errorf("Missed after second pass = %d, want 1", stats.Missed)
	}
}

func TestManualInterceptRejections(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	dc := newTestController(30)

	destroyed := inboundThreat(t, rng, "M1", 5000)
	destroyed.Destroyed = true
	if _, err := dc.ManualIntercept(destroyed); !errors.Is(err, ErrAlreadyNeutralized) {
		t.Errorf("ManualIntercept(destroyed) error = %v, want ErrAlreadyNeutralized", err)
	}

	targeted := inboundThreat(t, rng, "M2", 5000)
	targeted.Targeted = true
	if _, err := dc.ManualIntercept(targeted); !errors.Is(err, ErrAlreadyTargeted) {
		t.Errorf("ManualIntercept(targeted) error = %v, want ErrAlreadyTargeted", err)
	}

	unsolvable := NewThreat(KindBallistic, "M3",
		vector.Vec3{X: 10000}, vector.Vec3{X: 20000}, rng)
	if _, err := dc.ManualIntercept(unsolvable); !errors.Is(err, ErrNoIntercept) {
		t.Errorf("ManualIntercept(unsolvable) error = %v, want ErrNoIntercept", err)
	}

	if stats := dc.Stats(); stats.Launches != 0 {
		t.Errorf("Launches = %d after rejections, want 0", stats.Launches)
	}
	if got := len(dc.Interceptors()); got != 0 {
		t.Errorf("active interceptors = %d after rejections, want 0", got)
	}
}

func TestManualInterceptLaunches(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	dc := newTestController(30)
	threat := inboundThreat(t, rng, "M1", 5000)

	interceptor, err := dc.ManualIntercept(threat)
	if err != nil {
		t.Fatalf("ManualIntercept() error = %v", err)
	}
	if interceptor.TargetID != threat.ID {
		t.Error("manual interceptor not bound to the requested threat")
	}
	if !threat.Targeted {
		t.Error("threat not targeted after manual launch")
	}
	if stats := dc.Stats(); stats.Launches != 1 {
		t.Errorf("Launches = %d, want 1", stats.Launches)
	}
}

func TestUpdateConfigurationAppliesOnNextScan(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	dc := newTestController(30)
	threat := inboundThreat(t, rng, "M1", 25000)

	// Shrink the radar below the threat's distance: it becomes invisible.
	dc.UpdateConfiguration(10000, 10000, 30)
	dc.DetectAndLaunch([]*Threat{threat})
	if threat.Targeted {
		t.Fatal("threat targeted outside the reduced radar range")
	}

	dc.UpdateConfiguration(40000, 10000, 30)
	dc.DetectAndLaunch([]*Threat{threat})
	if !threat.Targeted {
		t.Error("threat not targeted after radar range restored")
	}
}

func TestAlertSinkReceivesEvents(t *testing.T) {
	rng := rand.New(rand.NewSource(12))

	var categories []AlertCategory
	dc := NewDefenseController(vector.Vec3{}, 30000, 10000, 30,
		func(msg string, category AlertCategory) {
			categories = append(categories, category)
		})

	threat := inboundThreat(t, rng, "M1", 5000)
	dc.DetectAndLaunch([]*Threat{threat})
	dc.Interceptors()[0].Position = threat.Position
	dc.Update(0.0001, []*Threat{threat})

	want := []AlertCategory{AlertLaunch, AlertIntercept}
	if len(categories) != len(want) {
		t.Fatalf("alert categories = %v, want %v", categories, want)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Errorf("alert %d = %q, want %q", i, categories[i], want[i])
		}
	}

	tail := dc.EventTail(10)
	if len(tail) != 2 {
		t.Errorf("EventTail(10) returned %d events, want 2", len(tail))
	}
}

func TestSpawnBallisticThreats(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	ranges := DefaultBallisticRanges()

	threats := SpawnBallisticThreats(20, ranges, rng)
	if len(threats) != 20 {
		t.Fatalf("spawned %d threats, want 20", len(threats))
	}
	for i, threat := range threats {
		if threat.Kind != KindBallistic {
			t.Errorf("threat %d kind = %q, want %q", i, threat.Kind, KindBallistic)
		}
		if threat.Position.Z < 25000 || threat.Position.Z > 40000 {
			t.Errorf("threat %d altitude = %v, out of envelope", i, threat.Position.Z)
		}
		if threat.Velocity.Z < -1500 || threat.Velocity.Z > -800 {
			t.Errorf("threat %d vertical speed = %v, out of envelope", i, threat.Velocity.Z)
		}
	}
	if threats[0].Name != "M1" || threats[19].Name != "M20" {
		t.Errorf("names = %q..%q, want M1..M20", threats[0].Name, threats[19].Name)
	}
}

func TestSpawnEvasiveThreats(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	ranges := DefaultEvasiveRanges()

	threats := SpawnEvasiveThreats(8, ranges, rng)
	if len(threats) != 8 {
		t.Fatalf("spawned %d threats, want 8", len(threats))
	}
	for i, threat := range threats {
		if threat.Kind != KindEvasive {
			t.Errorf("threat %d kind = %q, want %q", i, threat.Kind, KindEvasive)
		}
		if threat.Position.Y != -30000 {
			t.Errorf("threat %d Y = %v, want -30000", i, threat.Position.Y)
		}
		if threat.Velocity.Y < 800 || threat.Velocity.Y > 1200 {
			t.Errorf("threat %d northward speed = %v, out of envelope", i, threat.Velocity.Y)
		}
	}
}
