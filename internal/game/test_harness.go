package game

import "fmt"

// TestSim is a headless simulation harness used by tests and the headless
// reporter. It wraps a Director with deterministic seeding, an event
// recorder, structured logging, and the external-collaborator duties the
// core leaves to its host (target assignment).
type TestSim struct {
	Director *Director
	Events   *EventRecorder
	SimLog   *SimLog

	cfg       Config
	seed      int64
	dt        float64
	autoAim   bool
	verbose   bool
	prevModes map[int]BehaviorMode
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // config, seed, dt, verbose — applied first
	simOptShip                        // spawn ships — applied once the director exists
	simOptTarget                      // assign targets — applied after ships exist
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithConfig sets the global combat configuration.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg = cfg }}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.seed = seed }}
}

// WithTickDelta sets the fixed per-tick delta time in seconds.
func WithTickDelta(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.dt = dt }}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.verbose = v }}
}

// WithAutoTargeting makes the harness re-point every ship at its closest
// living enemy before each tick, standing in for the external targeting
// collaborator.
func WithAutoTargeting() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.autoAim = true }}
}

// WithFriendly spawns a friendly ship of the given archetype at (x,y,z) with
// stock bounds. IDs are assigned in option order starting from 0.
func WithFriendly(arch Archetype, x, y, z float64) SimOption {
	return SimOption{simOptShip, func(ts *TestSim) {
		ts.Director.Spawn(SpawnRequest{
			Archetype: arch,
			Team:      TeamFriendly,
			Bounds:    defaultBoundsFor(arch),
			Pos:       Vec3{X: x, Y: y, Z: z},
		})
	}}
}

// WithHostile spawns a hostile ship of the given archetype at (x,y,z).
func WithHostile(arch Archetype, x, y, z float64) SimOption {
	return SimOption{simOptShip, func(ts *TestSim) {
		ts.Director.Spawn(SpawnRequest{
			Archetype: arch,
			Team:      TeamHostile,
			Bounds:    defaultBoundsFor(arch),
			Pos:       Vec3{X: x, Y: y, Z: z},
		})
	}}
}

// WithSpawn spawns a ship from a fully specified spawn request.
func WithSpawn(req SpawnRequest) SimOption {
	return SimOption{simOptShip, func(ts *TestSim) { ts.Director.Spawn(req) }}
}

// WithTarget points ship id at target id (one-shot external assignment).
func WithTarget(id, targetID int) SimOption {
	return SimOption{simOptTarget, func(ts *TestSim) { ts.Director.AssignTarget(id, targetID) }}
}

// NewTestSim constructs a TestSim from the given options in three ordered
// passes: infrastructure, ship spawns, target assignment.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:       DefaultConfig(),
		seed:      1,
		dt:        1.0 / 60.0,
		prevModes: map[int]BehaviorMode{},
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Events = &EventRecorder{}
	ts.SimLog = NewSimLog(ts.verbose)
	ts.Director = NewDirector(ts.cfg, ts.seed, ts.Events)
	for _, o := range opts {
		if o.kind == simOptShip {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptTarget {
			o.fn(ts)
		}
	}
	return ts
}

// RunTicks advances the simulation n ticks, logging events to SimLog.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.Director.Tick()
		}
	}
	return -1
}

// runOneTick mirrors what a host frame loop does: external targeting, one
// director tick, then event/state diffing into the SimLog.
func (ts *TestSim) runOneTick() {
	if ts.autoAim {
		ts.retargetClosest()
	}

	perTickFires := len(ts.Events.Fires)
	perTickImpacts := len(ts.Events.Impacts)
	perTickDestr := len(ts.Events.Destructions)
	perTickNotices := len(ts.Events.Notices)

	ts.Director.Advance(ts.dt)
	tick := ts.Director.Tick()

	// Mode changes.
	for _, s := range ts.Director.Ships() {
		prev, seen := ts.prevModes[s.id]
		if seen && prev != s.mode {
			ts.SimLog.Add(tick, s.label, s.team.String(), "mode", "change",
				fmt.Sprintf("%s → %s", prev, s.mode), 0)
		}
		ts.prevModes[s.id] = s.mode

		ts.SimLog.AddVerbose(tick, s.label, s.team.String(), "move", "position",
			fmt.Sprintf("(%.1f,%.1f,%.1f)", s.pos.X, s.pos.Y, s.pos.Z), 0)
		ts.SimLog.AddVerbose(tick, s.label, s.team.String(), "move", "hull",
			fmt.Sprintf("%.1f", s.hull), s.hull)
	}

	// New events this tick.
	for _, e := range ts.Events.Fires[perTickFires:] {
		ts.SimLog.Add(tick, "--", "--", "fire", "shot",
			fmt.Sprintf("%s dmg=%.0f", e.Archetype, e.Damage), e.Damage)
	}
	for _, e := range ts.Events.Impacts[perTickImpacts:] {
		ts.SimLog.Add(tick, "--", "--", "hit", "impact",
			fmt.Sprintf("dmg=%.0f at (%.0f,%.0f,%.0f)", e.Damage, e.Point.X, e.Point.Y, e.Point.Z), e.Damage)
	}
	for _, e := range ts.Events.Destructions[perTickDestr:] {
		ts.SimLog.Add(tick, fmt.Sprintf("#%d", e.ShipID), "--", "destroy", "ship",
			fmt.Sprintf("ship %d destroyed", e.ShipID), 0)
		delete(ts.prevModes, e.ShipID)
	}
	for _, e := range ts.Events.Notices[perTickNotices:] {
		ts.SimLog.Add(tick, "--", "--", "notice", "event", e.Message, 0)
	}

	ts.SimLog.AddVerbose(tick, "--", "--", "pool", "active", "",
		float64(ts.Director.Pool().ActiveCount()))
}

// retargetClosest points every ship at its nearest living enemy.
func (ts *TestSim) retargetClosest() {
	ships := ts.Director.Ships()
	for _, s := range ships {
		var best *Ship
		bestD := -1.0
		for _, o := range ships {
			if o.team == s.team || !o.Alive() {
				continue
			}
			d := o.pos.Sub(s.pos).LenSq()
			if best == nil || d < bestD {
				best = o
				bestD = d
			}
		}
		s.SetTarget(best)
	}
}

// AllByTeam returns all registered ships on one side.
func (ts *TestSim) AllByTeam(team Team) []*Ship {
	var out []*Ship
	for _, s := range ts.Director.Ships() {
		if s.team == team {
			out = append(out, s)
		}
	}
	return out
}
