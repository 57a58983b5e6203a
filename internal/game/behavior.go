package game

import "math"

// Tactical behavior library: pure, stateless steering per (archetype, mode).
// Everything a behavior needs arrives in SteerInput; periodic motion is
// driven by the ship's accumulated sim-time phase, never the wall clock, so
// evasion patterns are identical under any frame rate.

const (
	fighterOptimalFrac     = 0.7  // optimal range = 0.7 × weapon range
	cruiserOptimalFrac     = 0.8  // optimal range = 0.8 × weapon range
	cruiserBandInnerFrac   = 0.6  // standoff band lower edge × optimal
	cruiserBandOuterFrac   = 1.0  // standoff band upper edge × optimal
	cruiserOrbitSpeedFrac  = 0.45 // tangential orbit speed × max speed
	pursueSpeedMul         = 1.2  // lead-pursuit overdrive
	interceptorBoostMul    = 1.3  // attack-run overdrive
	interceptorBreakRange  = 0.5  // break away inside this × weapon range
	strafeAmplitude        = 60.0 // world units of lateral strafe offset
	strafeRate             = 2.4  // rad/s of strafe oscillation
	corkscrewAmplitude     = 45.0 // world units of evade spiral offset
	corkscrewRate          = 3.2  // rad/s, fighter corkscrew
	barrelRollRate         = 7.5  // rad/s, interceptor helix (high frequency)
	zigzagAmplitude        = 80.0 // world units of cruiser retreat zigzag
	zigzagRate             = 1.1  // rad/s
	patrolSpeedFrac        = 0.4  // cruise fraction while patrolling
	leadPursuitTime        = 1.5  // seconds ahead to predict in pursuit
)

// SteerInput is the full read-only view a behavior function receives.
type SteerInput struct {
	Archetype Archetype
	Mode      BehaviorMode

	Pos     Vec3
	Vel     Vec3
	Forward Vec3
	Phase   float64 // accumulated sim seconds for this ship

	MaxSpeed        float64
	WeaponRange     float64
	FiringCone      float64 // half-angle, radians
	ProjectileSpeed float64

	HasTarget bool
	TargetPos Vec3
	TargetVel Vec3
}

// SteerResult is the behavior library's answer: where to go, how fast, and
// whether a firing solution exists. A zero Dir means "hold course".
type SteerResult struct {
	Dir   Vec3    // desired direction (unit)
	Speed float64 // desired speed, world units/s
	Fire  bool    // range + cone gate satisfied
}

// Steer dispatches to the archetype's steering for the given mode. Missing
// or dead targets yield a neutral result rather than an error: the ship
// simply coasts.
func Steer(in SteerInput) SteerResult {
	if in.Mode == ModePatrol || !in.HasTarget {
		return steerPatrol(in)
	}
	switch in.Archetype {
	case ArchetypeFighter:
		return steerFighter(in)
	case ArchetypeCruiser:
		return steerCruiser(in)
	case ArchetypeInterceptor:
		return steerInterceptor(in)
	case ArchetypeStation:
		return steerStation(in)
	default:
		return steerFighter(in) // generic hulls fly like fighters
	}
}

// fireGate is the shared firing check: inside weapon range AND inside the
// forward cone. Behaviors that never fire simply don't call it.
func fireGate(in SteerInput) bool {
	to := in.TargetPos.Sub(in.Pos)
	dist := to.Len()
	if dist > in.WeaponRange {
		return false
	}
	return in.Forward.AngleTo(to) <= in.FiringCone
}

// interceptPoint leads the target by its velocity over the straight-line
// projectile travel time. Degenerate projectile speed falls back to the
// target's current position.
func interceptPoint(in SteerInput) Vec3 {
	dist := in.TargetPos.Dist(in.Pos)
	if in.ProjectileSpeed <= 0 {
		return in.TargetPos
	}
	travel := dist / in.ProjectileSpeed
	return in.TargetPos.Add(in.TargetVel.Scale(travel))
}

func steerPatrol(in SteerInput) SteerResult {
	// Lazy cruise on the current heading; stations sit still.
	if in.Archetype == ArchetypeStation {
		return SteerResult{}
	}
	return SteerResult{Dir: in.Forward, Speed: in.MaxSpeed * patrolSpeedFrac}
}

func steerFighter(in SteerInput) SteerResult {
	switch in.Mode {
	case ModeEngage:
		return fighterEngage(in)
	case ModeEvade:
		return fighterEvade(in)
	case ModePursue:
		return fighterPursue(in)
	default:
		return steerPatrol(in)
	}
}

func fighterEngage(in SteerInput) SteerResult {
	to := in.TargetPos.Sub(in.Pos)
	dist := to.Len()
	optimal := in.WeaponRange * fighterOptimalFrac

	var dir Vec3
	speed := in.MaxSpeed
	switch {
	case dist > 1.5*optimal:
		// Too far out: fly the intercept lead point.
		dir = interceptPoint(in).Sub(in.Pos).Normalized()
	case dist < 0.5*optimal:
		// Too close: perpendicular strafing run. Lateral offset oscillates
		// with accumulated phase while keeping slight forward closure.
		basis := BasisFromForward(to.Normalized())
		lateral := basis.Right.Scale(strafeAmplitude * math.Sin(in.Phase*strafeRate))
		aim := in.TargetPos.Add(lateral)
		dir = aim.Sub(in.Pos).Normalized()
		speed = in.MaxSpeed * 0.8
	default:
		dir = to.Normalized()
	}
	return SteerResult{Dir: dir, Speed: speed, Fire: fireGate(in)}
}

func fighterEvade(in SteerInput) SteerResult {
	// Corkscrew: flee the threat with two out-of-phase sinusoidal offsets
	// (lateral and vertical) in the local frame. Never fires.
	away := in.Pos.Sub(in.TargetPos).Normalized()
	if away.IsZero() {
		away = in.Forward
	}
	basis := BasisFromForward(away)
	offset := basis.Right.Scale(corkscrewAmplitude * math.Sin(in.Phase*corkscrewRate)).
		Add(basis.Up.Scale(corkscrewAmplitude * math.Cos(in.Phase*corkscrewRate)))
	dir := away.Scale(100).Add(offset).Normalized()
	return SteerResult{Dir: dir, Speed: in.MaxSpeed}
}

func fighterPursue(in SteerInput) SteerResult {
	future := in.TargetPos.Add(in.TargetVel.Scale(leadPursuitTime))
	dir := future.Sub(in.Pos).Normalized()
	return SteerResult{Dir: dir, Speed: in.MaxSpeed * pursueSpeedMul, Fire: fireGate(in)}
}

func steerCruiser(in SteerInput) SteerResult {
	switch in.Mode {
	case ModeEngage:
		return cruiserEngage(in)
	case ModeEvade:
		return cruiserEvade(in)
	case ModePursue:
		// Cruisers close at flank speed; no overdrive.
		dir := in.TargetPos.Sub(in.Pos).Normalized()
		return SteerResult{Dir: dir, Speed: in.MaxSpeed, Fire: fireGate(in)}
	default:
		return steerPatrol(in)
	}
}

func cruiserEngage(in SteerInput) SteerResult {
	to := in.TargetPos.Sub(in.Pos)
	dist := to.Len()
	optimal := in.WeaponRange * cruiserOptimalFrac

	var dir Vec3
	speed := in.MaxSpeed
	switch {
	case dist > optimal*cruiserBandOuterFrac:
		dir = to.Normalized()
	case dist < optimal*cruiserBandInnerFrac:
		dir = to.Normalized().Scale(-1)
	default:
		// Inside the standoff band: orbit tangentially at reduced speed.
		tangent := Vec3{Y: 1}.Cross(to)
		if tangent.IsZero() {
			tangent = in.Forward
		}
		dir = tangent.Normalized()
		speed = in.MaxSpeed * cruiserOrbitSpeedFrac
	}
	return SteerResult{Dir: dir, Speed: speed, Fire: fireGate(in)}
}

func cruiserEvade(in SteerInput) SteerResult {
	// Fighting retreat: directly away with a lateral zigzag, guns still
	// firing for suppression.
	away := in.Pos.Sub(in.TargetPos).Normalized()
	if away.IsZero() {
		away = in.Forward
	}
	basis := BasisFromForward(away)
	zig := basis.Right.Scale(zigzagAmplitude * math.Sin(in.Phase*zigzagRate))
	dir := away.Scale(120).Add(zig).Normalized()
	return SteerResult{Dir: dir, Speed: in.MaxSpeed, Fire: fireGate(in)}
}

func steerInterceptor(in SteerInput) SteerResult {
	switch in.Mode {
	case ModeEngage:
		return interceptorEngage(in)
	case ModeEvade:
		return interceptorEvade(in)
	case ModePursue:
		future := in.TargetPos.Add(in.TargetVel.Scale(leadPursuitTime))
		dir := future.Sub(in.Pos).Normalized()
		return SteerResult{Dir: dir, Speed: in.MaxSpeed * pursueSpeedMul, Fire: fireGate(in)}
	default:
		return steerPatrol(in)
	}
}

func interceptorEngage(in SteerInput) SteerResult {
	to := in.TargetPos.Sub(in.Pos)
	dist := to.Len()
	if dist > in.WeaponRange*interceptorBreakRange {
		// Boosted attack run straight at the intercept point.
		dir := interceptPoint(in).Sub(in.Pos).Normalized()
		return SteerResult{Dir: dir, Speed: in.MaxSpeed * interceptorBoostMul, Fire: fireGate(in)}
	}
	// Break away on a phase-derived pseudo-random vector, guns free. Using
	// the phase keeps runs reproducible under a fixed seed.
	basis := BasisFromForward(to.Normalized())
	breakDir := basis.Right.Scale(math.Sin(in.Phase*2.9 + 1.3)).
		Add(basis.Up.Scale(math.Cos(in.Phase*3.7))).
		Add(to.Normalized().Scale(-0.6)).
		Normalized()
	return SteerResult{Dir: breakDir, Speed: in.MaxSpeed * interceptorBoostMul, Fire: fireGate(in)}
}

func interceptorEvade(in SteerInput) SteerResult {
	// Barrel roll: high-frequency helical offsets while fleeing. Never fires.
	away := in.Pos.Sub(in.TargetPos).Normalized()
	if away.IsZero() {
		away = in.Forward
	}
	basis := BasisFromForward(away)
	offset := basis.Right.Scale(corkscrewAmplitude * math.Sin(in.Phase*barrelRollRate)).
		Add(basis.Up.Scale(corkscrewAmplitude * math.Cos(in.Phase*barrelRollRate)))
	dir := away.Scale(80).Add(offset).Normalized()
	return SteerResult{Dir: dir, Speed: in.MaxSpeed}
}

func steerStation(in SteerInput) SteerResult {
	// Stations don't steer; turrets fire whenever the gate allows.
	return SteerResult{Fire: fireGate(in)}
}
