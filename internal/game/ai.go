package game

import (
	"math"
	"math/rand"
)

// AI controller: per-ship mode machine + movement integration + fire gating.
// Runs once per ship per tick, on the single simulation thread.

const (
	// Hysteresis bands for mode transitions,× weapon range unless noted.
	engageEnterFrac = 1.5 // Patrol→Engage below this
	pursueEnterFrac = 2.0 // Engage→Pursue beyond this
	pursueExitFrac  = 1.0 // Pursue→Engage below this
	evadeEnterFrac  = 0.3 // Engage→Evade below this × max hull
	evadeExitFrac   = 0.5 // Evade→Engage above this × max hull
)

// FireIntent is one weapon wanting to shoot this tick. The director turns
// intents into pooled projectiles (or drops them under backpressure).
type FireIntent struct {
	Owner  *Ship
	Muzzle Vec3
	Dir    Vec3
	Damage float64
}

// AIContext carries the per-tick environment the controller needs.
type AIContext struct {
	SimTime         float64
	ProjectileSpeed float64
	Rng             *rand.Rand
}

// UpdateAI advances one ship's decision loop for a tick: mode transitions,
// steering dispatch, velocity/heading integration, and weapon fire gating.
// Fire intents are appended to intents (reused across ticks by the caller)
// and the extended slice is returned.
func (s *Ship) UpdateAI(dt float64, ctx AIContext, intents []FireIntent) []FireIntent {
	if !s.Alive() {
		return intents
	}
	s.phase += dt

	if s.target != nil && !s.target.Alive() {
		s.target = nil
	}
	s.evalTransitions()

	in := SteerInput{
		Archetype:       s.archetype,
		Mode:            s.mode,
		Pos:             s.pos,
		Vel:             s.vel,
		Forward:         s.forward,
		Phase:           s.phase,
		MaxSpeed:        s.stats.MaxSpeed,
		WeaponRange:     s.stats.WeaponRange,
		FiringCone:      s.stats.FiringCone,
		ProjectileSpeed: ctx.ProjectileSpeed,
	}
	if s.target != nil {
		in.HasTarget = true
		in.TargetPos = s.target.pos
		in.TargetVel = s.target.vel
	}
	steer := Steer(in)

	s.integrate(dt, steer)

	if steer.Fire && s.target != nil {
		intents = s.evalWeapons(ctx, in, intents)
	}
	return intents
}

// evalTransitions applies the hysteresis mode machine against the current
// target. Distance and hull thresholds are deliberately asymmetric so a ship
// holding exactly on a boundary cannot flap between modes.
func (s *Ship) evalTransitions() {
	if s.target == nil {
		if s.mode != ModeEvade {
			s.mode = ModePatrol
		}
		return
	}
	dist := s.pos.Dist(s.target.pos)
	r := s.stats.WeaponRange

	switch s.mode {
	case ModePatrol:
		if dist < r*engageEnterFrac {
			s.mode = ModeEngage
		}
	case ModeEngage:
		switch {
		case s.hull < evadeEnterFrac*s.stats.MaxHull:
			s.mode = ModeEvade
		case dist > r*pursueEnterFrac:
			s.mode = ModePursue
		}
	case ModeEvade:
		if s.hull > evadeExitFrac*s.stats.MaxHull {
			s.mode = ModeEngage
		}
	case ModePursue:
		if dist < r*pursueExitFrac {
			s.mode = ModeEngage
		}
	}
}

// integrate moves the ship toward the steering result: exponential smoothing
// of velocity toward the desired vector, then heading rotation bounded by
// the turn rate, then position update.
func (s *Ship) integrate(dt float64, steer SteerResult) {
	desired := s.vel
	if !steer.Dir.IsZero() {
		desired = steer.Dir.Normalized().Scale(steer.Speed)
	} else if steer.Speed == 0 {
		desired = Vec3{}
	}

	// Damping factor: fraction of the gap closed this tick.
	alpha := 1.0 - expDecay(s.stats.Acceleration*dt)
	s.vel = s.vel.Add(desired.Sub(s.vel).Scale(alpha))

	// Clamp. Overdrive behaviors (pursuit, boost runs) may request more than
	// max speed; the clamp honours the larger of the two.
	limit := s.stats.MaxSpeed
	if steer.Speed > limit {
		limit = steer.Speed
	}
	if sp := s.vel.Len(); sp > limit && limit > 0 {
		s.vel = s.vel.Scale(limit / sp)
	}

	if !s.vel.IsZero() {
		s.forward = RotateToward(s.forward, s.vel.Normalized(), s.stats.TurnRate*dt)
	}
	s.pos = s.pos.Add(s.vel.Scale(dt))
}

// evalWeapons checks every weapon independently: elapsed cooldown, then an
// accuracy roll. Each passing weapon emits one fire intent aimed at the lead
// intercept point from its own muzzle.
func (s *Ship) evalWeapons(ctx AIContext, in SteerInput, intents []FireIntent) []FireIntent {
	aim := interceptPoint(in)
	for i := range s.weapons {
		w := &s.weapons[i]
		if ctx.SimTime-w.lastFired < w.Cooldown {
			continue
		}
		if ctx.Rng.Float64() > s.stats.Accuracy {
			continue
		}
		muzzle := s.muzzleWorld(w)
		dir := aim.Sub(muzzle).Normalized()
		if dir.IsZero() {
			dir = s.forward
		}
		w.lastFired = ctx.SimTime
		intents = append(intents, FireIntent{
			Owner:  s,
			Muzzle: muzzle,
			Dir:    dir,
			Damage: w.Damage,
		})
	}
	return intents
}

// expDecay returns e^-x, clamped so a stalled frame (huge dt) converges
// instead of overshooting.
func expDecay(x float64) float64 {
	if x <= 0 {
		return 1
	}
	if x > 20 {
		return 0
	}
	return math.Exp(-x)
}
