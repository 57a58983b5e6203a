package game

import "math"

// Archetype is the fixed category of a combat ship. Steering, weapon profile
// and hit-volume construction all key off it.
type Archetype int

const (
	ArchetypeFighter Archetype = iota
	ArchetypeCruiser
	ArchetypeInterceptor
	ArchetypeStation
)

func (a Archetype) String() string {
	switch a {
	case ArchetypeFighter:
		return "fighter"
	case ArchetypeCruiser:
		return "cruiser"
	case ArchetypeInterceptor:
		return "interceptor"
	case ArchetypeStation:
		return "station"
	default:
		return "unknown"
	}
}

// ClassStats is the immutable property template for an archetype. Spawn
// requests may override any field; zero overrides keep the class value.
type ClassStats struct {
	MaxHull        float64
	MaxShields     float64
	WeaponDamage   float64
	WeaponRange    float64 // world units
	WeaponCooldown float64 // seconds between shots per weapon
	MaxSpeed       float64 // world units per second
	Acceleration   float64 // velocity smoothing rate (1/s)
	TurnRate       float64 // radians per second
	Aggressiveness float64 // 0-1, biases engagement decisions
	Accuracy       float64 // 0-1, chance a ready weapon actually fires
	FiringCone     float64 // radians, half-angle of the firing cone
}

// classStatsFor returns the property template for an archetype. Unknown
// archetypes fall back to a generic light-hull template rather than failing.
func classStatsFor(a Archetype) ClassStats {
	switch a {
	case ArchetypeFighter:
		return ClassStats{
			MaxHull:        100,
			MaxShields:     50,
			WeaponDamage:   12,
			WeaponRange:    800,
			WeaponCooldown: 0.5,
			MaxSpeed:       220,
			Acceleration:   2.8,
			TurnRate:       2.2,
			Aggressiveness: 0.8,
			Accuracy:       0.75,
			FiringCone:     45 * math.Pi / 180,
		}
	case ArchetypeCruiser:
		return ClassStats{
			MaxHull:        600,
			MaxShields:     400,
			WeaponDamage:   35,
			WeaponRange:    1400,
			WeaponCooldown: 1.6,
			MaxSpeed:       80,
			Acceleration:   0.9,
			TurnRate:       0.5,
			Aggressiveness: 0.6,
			Accuracy:       0.85,
			FiringCone:     30 * math.Pi / 180,
		}
	case ArchetypeInterceptor:
		return ClassStats{
			MaxHull:        70,
			MaxShields:     30,
			WeaponDamage:   18,
			WeaponRange:    600,
			WeaponCooldown: 0.35,
			MaxSpeed:       300,
			Acceleration:   3.6,
			TurnRate:       3.0,
			Aggressiveness: 0.95,
			Accuracy:       0.65,
			FiringCone:     45 * math.Pi / 180,
		}
	case ArchetypeStation:
		return ClassStats{
			MaxHull:        2500,
			MaxShields:     1500,
			WeaponDamage:   50,
			WeaponRange:    1800,
			WeaponCooldown: 2.0,
			MaxSpeed:       0,
			Acceleration:   0,
			TurnRate:       0.05,
			Aggressiveness: 0.4,
			Accuracy:       0.9,
			FiringCone:     math.Pi, // turrets: effectively omnidirectional
		}
	default:
		// Missing archetype configuration: generic default, not an error.
		return ClassStats{
			MaxHull:        100,
			MaxShields:     50,
			WeaponDamage:   10,
			WeaponRange:    700,
			WeaponCooldown: 0.8,
			MaxSpeed:       150,
			Acceleration:   2.0,
			TurnRate:       1.5,
			Aggressiveness: 0.5,
			Accuracy:       0.7,
			FiringCone:     45 * math.Pi / 180,
		}
	}
}

// HullClass is the shape classification shared by ship statistics and
// hit-volume construction, so the two can never disagree.
type HullClass int

const (
	HullClassCompact  HullClass = iota // single oriented box
	HullClassCapital                   // chained boxes along the long axis
	HullClassStation                   // single bounding sphere
)

const (
	// capitalLengthThreshold is the hull length above which the hull is
	// treated as elongated and gets a chained hit volume.
	capitalLengthThreshold = 30.0
	// hullSegmentLength is the length of one chained hit-volume segment.
	hullSegmentLength = 15.0
	// minHullExtent clamps degenerate mesh bounds on any axis.
	minHullExtent = 1.0
)

// classifyHull classifies a hull by archetype and bounds. bounds are the full
// extents of the static mesh in the local frame (X width, Y height, Z length).
func classifyHull(a Archetype, bounds Vec3) HullClass {
	if a == ArchetypeStation {
		return HullClassStation
	}
	if bounds.Z > capitalLengthThreshold {
		return HullClassCapital
	}
	return HullClassCompact
}

// clampBounds enforces a minimum extent on each axis so zero-size spawn data
// cannot produce untestable volumes.
func clampBounds(bounds Vec3) Vec3 {
	if bounds.X < minHullExtent {
		bounds.X = minHullExtent
	}
	if bounds.Y < minHullExtent {
		bounds.Y = minHullExtent
	}
	if bounds.Z < minHullExtent {
		bounds.Z = minHullExtent
	}
	return bounds
}

// defaultBoundsFor returns stock mesh bounds for an archetype, used when a
// spawner supplies none (scenario harness, viewer demos).
func defaultBoundsFor(a Archetype) Vec3 {
	switch a {
	case ArchetypeFighter:
		return Vec3{X: 8, Y: 3, Z: 12}
	case ArchetypeCruiser:
		return Vec3{X: 20, Y: 14, Z: 90}
	case ArchetypeInterceptor:
		return Vec3{X: 6, Y: 2, Z: 9}
	case ArchetypeStation:
		return Vec3{X: 120, Y: 120, Z: 120}
	default:
		return Vec3{X: 8, Y: 4, Z: 10}
	}
}

// hardpointsFor returns the local-frame weapon mount offsets for an
// archetype with the given (clamped) bounds. Offsets sit on the hull so
// projectiles spawn at the muzzle, not the ship centre.
func hardpointsFor(a Archetype, bounds Vec3) []Vec3 {
	halfW := bounds.X / 2
	halfL := bounds.Z / 2
	switch a {
	case ArchetypeFighter:
		// One mount per wing tip.
		return []Vec3{
			{X: -halfW, Z: halfL * 0.5},
			{X: halfW, Z: halfL * 0.5},
		}
	case ArchetypeCruiser:
		// Four turrets spread along the spine.
		return []Vec3{
			{X: -halfW * 0.6, Z: halfL * 0.6},
			{X: halfW * 0.6, Z: halfL * 0.6},
			{X: -halfW * 0.6, Z: -halfL * 0.4},
			{X: halfW * 0.6, Z: -halfL * 0.4},
		}
	case ArchetypeInterceptor:
		// Single nose cannon.
		return []Vec3{{Z: halfL}}
	case ArchetypeStation:
		// Cardinal turret ring.
		return []Vec3{
			{X: halfW}, {X: -halfW}, {Z: halfL}, {Z: -halfL},
		}
	default:
		return []Vec3{{Z: halfL}}
	}
}
