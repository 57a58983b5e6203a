package game

import "math"

// Hit volumes: per-ship derived collision geometry, built once at spawn and
// rebuilt only on Refit. Stations get one sphere, elongated hulls a chain of
// oriented boxes along the long axis, everything else a single oriented box.

// volumeKind tags a sub-volume's shape.
type volumeKind int

const (
	volumeSphere volumeKind = iota
	volumeBox
)

// subVolume is one piece of a hit volume, defined in the hull local frame.
type subVolume struct {
	kind   volumeKind
	center Vec3    // local offset from ship origin
	radius float64 // spheres only
	half   Vec3    // boxes only: half extents
}

// HitVolume is a ship's full collision geometry plus broad-phase data.
type HitVolume struct {
	centerOffset Vec3    // local-space centre so rotation transforms it correctly
	maxDim       float64 // largest bounding dimension, broad-phase radius
	subs         []subVolume
}

// HitResult describes where and how a projectile struck.
type HitResult struct {
	Point  Vec3 // world-space hit position
	Normal Vec3 // world-space hit normal (unit)
}

// BuildHitVolume derives collision geometry from an archetype and its
// (clamped) mesh bounds, using the same classification as ship statistics.
func BuildHitVolume(a Archetype, bounds Vec3) *HitVolume {
	bounds = clampBounds(bounds)
	maxDim := bounds.X
	if bounds.Y > maxDim {
		maxDim = bounds.Y
	}
	if bounds.Z > maxDim {
		maxDim = bounds.Z
	}

	h := &HitVolume{maxDim: maxDim}
	switch classifyHull(a, bounds) {
	case HullClassStation:
		h.subs = append(h.subs, subVolume{
			kind:   volumeSphere,
			radius: maxDim / 2,
		})
	case HullClassCapital:
		// Equal-length boxes chained along the longitudinal (Z) axis.
		n := int(math.Ceil(bounds.Z / hullSegmentLength))
		if n < 1 {
			n = 1
		}
		segLen := bounds.Z / float64(n)
		half := Vec3{X: bounds.X / 2, Y: bounds.Y / 2, Z: segLen / 2}
		for i := 0; i < n; i++ {
			centerZ := -bounds.Z/2 + segLen*(float64(i)+0.5)
			h.subs = append(h.subs, subVolume{
				kind:   volumeBox,
				center: Vec3{Z: centerZ},
				half:   half,
			})
		}
	default:
		h.subs = append(h.subs, subVolume{
			kind: volumeBox,
			half: Vec3{X: bounds.X / 2, Y: bounds.Y / 2, Z: bounds.Z / 2},
		})
	}
	return h
}

// MaxDim returns the largest bounding dimension (broad-phase radius).
func (h *HitVolume) MaxDim() float64 { return h.maxDim }

// SegmentCount returns the number of sub-volumes.
func (h *HitVolume) SegmentCount() int { return len(h.subs) }

// Test checks a world-space point against the volume. shipPos/basis are the
// owning ship's current transform. Broad phase rejects on squared distance
// against the largest bounding dimension; narrow phase walks sub-volumes in
// order and the first hit wins, supplying point and normal.
func (h *HitVolume) Test(point, shipPos Vec3, basis Basis) (HitResult, bool) {
	worldCenter := shipPos.Add(basis.ToWorld(h.centerOffset))
	if point.Sub(worldCenter).LenSq() > h.maxDim*h.maxDim {
		return HitResult{}, false
	}

	// Transform once into the hull local frame; every box test is then a
	// plain axis-aligned range check, which respects hull rotation.
	local := basis.ToLocal(point.Sub(shipPos))

	for i := range h.subs {
		sv := &h.subs[i]
		switch sv.kind {
		case volumeSphere:
			rel := local.Sub(sv.center)
			if rel.LenSq() <= sv.radius*sv.radius {
				normal := rel.Normalized()
				if normal.IsZero() {
					normal = Vec3{Z: 1}
				}
				return HitResult{
					Point:  point,
					Normal: basis.ToWorld(normal),
				}, true
			}
		case volumeBox:
			rel := local.Sub(sv.center)
			if math.Abs(rel.X) <= sv.half.X &&
				math.Abs(rel.Y) <= sv.half.Y &&
				math.Abs(rel.Z) <= sv.half.Z {
				return HitResult{
					Point:  point,
					Normal: basis.ToWorld(boxFaceNormal(rel, sv.half)),
				}, true
			}
		}
	}
	return HitResult{}, false
}

// boxFaceNormal returns the local-frame normal of the box face nearest to a
// point already known to be inside the box.
func boxFaceNormal(rel, half Vec3) Vec3 {
	// Penetration depth per axis; the shallowest axis is the exit face.
	dx := half.X - math.Abs(rel.X)
	dy := half.Y - math.Abs(rel.Y)
	dz := half.Z - math.Abs(rel.Z)

	switch {
	case dx <= dy && dx <= dz:
		if rel.X >= 0 {
			return Vec3{X: 1}
		}
		return Vec3{X: -1}
	case dy <= dz:
		if rel.Y >= 0 {
			return Vec3{Y: 1}
		}
		return Vec3{Y: -1}
	default:
		if rel.Z >= 0 {
			return Vec3{Z: 1}
		}
		return Vec3{Z: -1}
	}
}
