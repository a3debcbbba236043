package movement

// Shared test doubles for the movement package. The fakes implement the
// collaborator contracts with directly settable results so tests can
// drive the controller through exact contact and clock situations.

const (
	testGroundMask  LayerMask = 1 << 0
	testWallMask    LayerMask = 1 << 1
	testCeilingMask LayerMask = 1 << 2
)

const testDT = 1.0 / 60.0

// fakeBody records velocity writes and accumulated forces.
type fakeBody struct {
	vx, vy float64
	forces []Vec
}

func (b *fakeBody) Velocity() (float64, float64) { return b.vx, b.vy }

func (b *fakeBody) SetVelocity(vx, vy float64) {
	b.vx = vx
	b.vy = vy
}

func (b *fakeBody) ApplyForce(fx, fy float64) {
	b.forces = append(b.forces, Vec{X: fx, Y: fy})
}

// fakeProber answers overlap and ray queries from fixed flags. Wall
// queries are told apart by the probe center's side of the origin.
type fakeProber struct {
	ground    bool
	wallLeft  bool
	wallRight bool
	ceiling   bool

	// err, when set, fails every query.
	err error
}

func (p *fakeProber) OverlapRegion(center, size Vec, mask LayerMask) (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	switch mask {
	case testGroundMask:
		return p.ground, nil
	case testWallMask:
		if center.X < 0 {
			return p.wallLeft, nil
		}
		return p.wallRight, nil
	}
	return false, nil
}

func (p *fakeProber) Raycast(origin, dir Vec, maxDist float64, mask LayerMask) (Hit, bool, error) {
	if p.err != nil {
		return Hit{}, false, p.err
	}
	if mask == testCeilingMask && p.ceiling {
		return Hit{Point: origin, Distance: 0}, true, nil
	}
	return Hit{}, false, nil
}

// fakeAnchors keeps every anchor at the origin so the left wall probe
// lands at negative X and the right one at positive X.
type fakeAnchors struct{}

func (fakeAnchors) Center() Vec { return Vec{} }
func (fakeAnchors) Ground() Vec { return Vec{Y: -0.5} }
func (fakeAnchors) Head() Vec   { return Vec{Y: 0.5} }

// fakeClock is a manually advanced monotonic clock.
type fakeClock struct {
	now float64
}

func (c *fakeClock) Now() float64           { return c.now }
func (c *fakeClock) FixedDelta() float64    { return testDT }
func (c *fakeClock) VariableDelta() float64 { return testDT }

func (c *fakeClock) advance(dt float64) { c.now += dt }

// createTestConfig mirrors the reference tuning: moveSpeed 8, impulse
// 10, 0.8s hold, one air and one wall jump, 0.2s wall cooldown, fall
// multiplier 2.5, 0.1s coyote window.
func createTestConfig() Config {
	return Config{
		MoveSpeed:            8,
		JumpImpulse:          10,
		MaxHoldTime:          0.8,
		HoldForce:            30,
		HoldProfile:          HoldLinearDecay,
		WallPushSpeed:        8,
		WallDamping:          0.5,
		WallDampingMode:      WallDampingScale,
		WallSlideSpeed:       12,
		MaxAirJumps:          1,
		MaxWallJumps:         1,
		WallJumpCooldown:     0.2,
		CoyoteTime:           0.1,
		Gravity:              20,
		FallMultiplier:       2.5,
		BodyWidth:            1,
		GroundProbeHeight:    0.1,
		WallProbeDistance:    0.2,
		WallProbeSize:        Vec{X: 0.2, Y: 0.8},
		CeilingProbeDistance: 0.3,
		GroundMask:           testGroundMask,
		WallMask:             testWallMask,
		CeilingMask:          testCeilingMask,
	}
}

// testRig bundles a controller with its fakes.
type testRig struct {
	ctrl   *Controller
	body   *fakeBody
	prober *fakeProber
	clock  *fakeClock
}

func createTestRig() *testRig {
	body := &fakeBody{}
	prober := &fakeProber{}
	clock := &fakeClock{}
	ctrl, err := New(createTestConfig(), body, prober, fakeAnchors{}, clock)
	if err != nil {
		panic(err)
	}
	return &testRig{ctrl: ctrl, body: body, prober: prober, clock: clock}
}

// step runs one input sample followed by one fixed tick, advancing the
// clock like the driver loop would.
func (r *testRig) step(in InputSample) {
	r.ctrl.SampleInput(in, testDT)
	if err := r.ctrl.Tick(testDT); err != nil {
		panic(err)
	}
	r.clock.advance(testDT)
}

func pressJump() InputSample {
	return InputSample{JumpPressed: true, JumpHeld: true}
}

func holdJump() InputSample {
	return InputSample{JumpHeld: true}
}

func releaseJump() InputSample {
	return InputSample{JumpReleased: true}
}
