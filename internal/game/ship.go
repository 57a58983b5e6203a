package game

import "fmt"

// Team distinguishes friendly vs hostile force.
type Team int

const (
	TeamFriendly Team = iota
	TeamHostile
)

func (t Team) String() string {
	if t == TeamFriendly {
		return "friendly"
	}
	return "hostile"
}

// BehaviorMode is the high-level tactical state of a ship's AI.
type BehaviorMode int

const (
	ModePatrol BehaviorMode = iota // no committed target, holding pattern
	ModeEngage                     // actively attacking the target
	ModeEvade                      // hull critical, breaking off
	ModePursue                     // target slipped out of range, closing
)

func (m BehaviorMode) String() string {
	switch m {
	case ModePatrol:
		return "patrol"
	case ModeEngage:
		return "engage"
	case ModeEvade:
		return "evade"
	case ModePursue:
		return "pursue"
	default:
		return "unknown"
	}
}

// Weapon is a single hardpoint-mounted gun. Owned exclusively by its ship.
type Weapon struct {
	Offset    Vec3    // mount position in the hull local frame
	Damage    float64 // per projectile
	Cooldown  float64 // seconds between shots
	lastFired float64 // sim time of last shot; -inf semantics via negative init
}

// Ship is one autonomous combat entity. All mutation happens on the single
// simulation thread: the AI controller moves it, the director damages it.
type Ship struct {
	id        int
	label     string // e.g. "F0" (friendly) / "H3" (hostile)
	team      Team
	archetype Archetype
	stats     ClassStats

	hull    float64
	shields float64

	pos     Vec3
	vel     Vec3
	forward Vec3 // unit heading

	mode   BehaviorMode
	target *Ship // single assigned target; nil is valid
	phase  float64 // accumulated sim seconds, drives periodic evasion motion

	weapons []Weapon
	hitbox  *HitVolume
	bounds  Vec3 // clamped mesh bounds used to build hitbox + hardpoints
}

// SpawnRequest is the inbound contract for creating a ship: archetype, the
// static mesh bounds of its hull, a spawn transform, and optional property
// overrides (zero-valued fields keep the class defaults).
type SpawnRequest struct {
	Archetype Archetype
	Team      Team
	Bounds    Vec3 // full mesh extents; zero axes are clamped
	Pos       Vec3
	Forward   Vec3 // zero defaults to +Z
	Overrides ClassStats
}

// NewShip builds a ship from a spawn request. The hit volume is built once
// here and only ever rebuilt through Refit.
func NewShip(id int, req SpawnRequest) *Ship {
	stats := classStatsFor(req.Archetype)
	applyOverrides(&stats, req.Overrides)

	bounds := clampBounds(req.Bounds)
	forward := req.Forward.Normalized()
	if forward.IsZero() {
		forward = Vec3{Z: 1}
	}

	prefix := "F"
	if req.Team == TeamHostile {
		prefix = "H"
	}

	s := &Ship{
		id:        id,
		label:     fmt.Sprintf("%s%d", prefix, id),
		team:      req.Team,
		archetype: req.Archetype,
		stats:     stats,
		hull:      stats.MaxHull,
		shields:   stats.MaxShields,
		pos:       req.Pos,
		forward:   forward,
		mode:      ModePatrol,
		bounds:    bounds,
		hitbox:    BuildHitVolume(req.Archetype, bounds),
	}
	for _, hp := range hardpointsFor(req.Archetype, bounds) {
		s.weapons = append(s.weapons, Weapon{
			Offset:    hp,
			Damage:    stats.WeaponDamage,
			Cooldown:  stats.WeaponCooldown,
			lastFired: -stats.WeaponCooldown, // ready at spawn
		})
	}
	return s
}

// applyOverrides copies non-zero override fields onto the class template.
func applyOverrides(stats *ClassStats, o ClassStats) {
	if o.MaxHull > 0 {
		stats.MaxHull = o.MaxHull
	}
	if o.MaxShields > 0 {
		stats.MaxShields = o.MaxShields
	}
	if o.WeaponDamage > 0 {
		stats.WeaponDamage = o.WeaponDamage
	}
	if o.WeaponRange > 0 {
		stats.WeaponRange = o.WeaponRange
	}
	if o.WeaponCooldown > 0 {
		stats.WeaponCooldown = o.WeaponCooldown
	}
	if o.MaxSpeed > 0 {
		stats.MaxSpeed = o.MaxSpeed
	}
	if o.Acceleration > 0 {
		stats.Acceleration = o.Acceleration
	}
	if o.TurnRate > 0 {
		stats.TurnRate = o.TurnRate
	}
	if o.Aggressiveness > 0 {
		stats.Aggressiveness = o.Aggressiveness
	}
	if o.Accuracy > 0 {
		stats.Accuracy = o.Accuracy
	}
	if o.FiringCone > 0 {
		stats.FiringCone = o.FiringCone
	}
}

// Refit replaces the ship's mesh bounds, rebuilding hit volume and
// hardpoints. This is the only path that rebuilds the hitbox after spawn.
func (s *Ship) Refit(bounds Vec3) {
	s.bounds = clampBounds(bounds)
	s.hitbox = BuildHitVolume(s.archetype, s.bounds)
	hps := hardpointsFor(s.archetype, s.bounds)
	for i := range s.weapons {
		if i < len(hps) {
			s.weapons[i].Offset = hps[i]
		}
	}
}

// Alive reports whether the ship is still in the fight.
func (s *Ship) Alive() bool { return s.hull > 0 }

// Basis returns the ship's current local frame.
func (s *Ship) Basis() Basis { return BasisFromForward(s.forward) }

// ID returns the ship's registry id.
func (s *Ship) ID() int { return s.id }

// Label returns the short display label, e.g. "F0".
func (s *Ship) Label() string { return s.label }

// Team returns the ship's side.
func (s *Ship) Team() Team { return s.team }

// Pos returns the ship's world position.
func (s *Ship) Pos() Vec3 { return s.pos }

// Mode returns the ship's current behavior mode.
func (s *Ship) Mode() BehaviorMode { return s.mode }

// SetTarget assigns the ship's single current target. Target assignment is
// owned by external collaborators; nil clears it.
func (s *Ship) SetTarget(t *Ship) { s.target = t }

// ApplyDamage runs the shields-then-hull split: shields absorb up to their
// remaining strength, any remainder comes off the hull, clamped at zero.
// Damaging a dead ship is a no-op so removal stays idempotent.
func (s *Ship) ApplyDamage(amount float64) {
	if amount <= 0 || !s.Alive() {
		return
	}
	absorbed := amount
	if absorbed > s.shields {
		absorbed = s.shields
	}
	s.shields -= absorbed
	remainder := amount - absorbed
	if remainder > 0 {
		s.hull -= remainder
		if s.hull < 0 {
			s.hull = 0
		}
	}
}

// Repair restores hull first, then shields, each clamped to its maximum.
func (s *Ship) Repair(amount float64) {
	if amount <= 0 || !s.Alive() {
		return
	}
	hullNeed := s.stats.MaxHull - s.hull
	if hullNeed > 0 {
		h := amount
		if h > hullNeed {
			h = hullNeed
		}
		s.hull += h
		amount -= h
	}
	if amount > 0 {
		s.shields += amount
		if s.shields > s.stats.MaxShields {
			s.shields = s.stats.MaxShields
		}
	}
}

// HullFrac returns hull as a 0-1 fraction of maximum.
func (s *Ship) HullFrac() float64 {
	if s.stats.MaxHull <= 0 {
		return 0
	}
	return s.hull / s.stats.MaxHull
}

// ShieldFrac returns shields as a 0-1 fraction of maximum.
func (s *Ship) ShieldFrac() float64 {
	if s.stats.MaxShields <= 0 {
		return 0
	}
	return s.shields / s.stats.MaxShields
}

// muzzleWorld returns the world position of a weapon's hardpoint.
func (s *Ship) muzzleWorld(w *Weapon) Vec3 {
	return s.pos.Add(s.Basis().ToWorld(w.Offset))
}
