package game

import (
	"math"
	"testing"
)

func identityBasis() Basis { return BasisFromForward(Vec3{Z: 1}) }

func TestHitVolume_StationIsSingleSphere(t *testing.T) {
	h := BuildHitVolume(ArchetypeStation, Vec3{X: 120, Y: 120, Z: 120})
	if h.SegmentCount() != 1 {
		t.Fatalf("station sub-volumes = %d, want 1", h.SegmentCount())
	}
	if h.MaxDim() != 120 {
		t.Errorf("MaxDim = %v, want 120", h.MaxDim())
	}

	// Inside the radius (60) hits, outside misses.
	if _, ok := h.Test(Vec3{X: 59}, Vec3{}, identityBasis()); !ok {
		t.Error("point inside station sphere missed")
	}
	if _, ok := h.Test(Vec3{X: 61}, Vec3{}, identityBasis()); ok {
		t.Error("point outside station sphere hit")
	}
}

func TestHitVolume_SphereNormalIsRadial(t *testing.T) {
	h := BuildHitVolume(ArchetypeStation, Vec3{X: 120, Y: 120, Z: 120})
	res, ok := h.Test(Vec3{X: 50}, Vec3{}, identityBasis())
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(res.Normal.X-1) > 1e-9 || math.Abs(res.Normal.Y) > 1e-9 || math.Abs(res.Normal.Z) > 1e-9 {
		t.Errorf("normal = %+v, want radial +X", res.Normal)
	}
}

func TestHitVolume_CapitalChainsSegments(t *testing.T) {
	// Length 90 at 15 per segment: six equal boxes along the long axis.
	h := BuildHitVolume(ArchetypeCruiser, Vec3{X: 20, Y: 14, Z: 90})
	if h.SegmentCount() != 6 {
		t.Fatalf("segments = %d, want 6", h.SegmentCount())
	}

	// The chain must tile the full hull: points near both ends and at the
	// centre all register.
	for _, z := range []float64{-44, 0, 44} {
		if _, ok := h.Test(Vec3{Z: z}, Vec3{}, identityBasis()); !ok {
			t.Errorf("point at z=%v fell through the segment chain", z)
		}
	}
	if _, ok := h.Test(Vec3{Z: 46}, Vec3{}, identityBasis()); ok {
		t.Error("point past the bow still hit")
	}
}

func TestHitVolume_SegmentCountRoundsUp(t *testing.T) {
	// Non-integral division still covers the hull: 31 units → 3 segments.
	h := BuildHitVolume(ArchetypeCruiser, Vec3{X: 10, Y: 10, Z: 31})
	if h.SegmentCount() != 3 {
		t.Errorf("segments = %d, want 3 for length 31", h.SegmentCount())
	}
}

func TestHitVolume_SmallHullIsOneBox(t *testing.T) {
	h := BuildHitVolume(ArchetypeFighter, Vec3{X: 8, Y: 3, Z: 12})
	if h.SegmentCount() != 1 {
		t.Fatalf("fighter sub-volumes = %d, want 1", h.SegmentCount())
	}
	if _, ok := h.Test(Vec3{X: 3.9, Y: 1.4, Z: 5.9}, Vec3{}, identityBasis()); !ok {
		t.Error("interior point missed the fighter box")
	}
	if _, ok := h.Test(Vec3{X: 4.1}, Vec3{}, identityBasis()); ok {
		t.Error("point past the wingtip hit")
	}
}

func TestHitVolume_RespectsHullRotation(t *testing.T) {
	// Fighter rotated to face world +X: its long axis now lies along X.
	h := BuildHitVolume(ArchetypeFighter, Vec3{X: 8, Y: 3, Z: 12})
	basis := BasisFromForward(Vec3{X: 1})

	if _, ok := h.Test(Vec3{X: 5.9}, Vec3{}, basis); !ok {
		t.Error("point on the rotated long axis missed")
	}
	// The same offset along world Z is now across the narrow beam: a miss.
	if _, ok := h.Test(Vec3{Z: 5.9}, Vec3{}, basis); ok {
		t.Error("point across the rotated beam hit")
	}
}

func TestHitVolume_BoxNormalTracksNearestFace(t *testing.T) {
	h := BuildHitVolume(ArchetypeFighter, Vec3{X: 8, Y: 3, Z: 12})

	res, ok := h.Test(Vec3{Z: 5.99}, Vec3{}, identityBasis())
	if !ok {
		t.Fatal("expected bow hit")
	}
	if res.Normal != (Vec3{Z: 1}) {
		t.Errorf("bow normal = %+v, want +Z", res.Normal)
	}

	res, ok = h.Test(Vec3{X: -3.99}, Vec3{}, identityBasis())
	if !ok {
		t.Fatal("expected port hit")
	}
	if res.Normal != (Vec3{X: -1}) {
		t.Errorf("port normal = %+v, want -X", res.Normal)
	}
}

func TestHitVolume_NormalRotatesWithHull(t *testing.T) {
	h := BuildHitVolume(ArchetypeFighter, Vec3{X: 8, Y: 3, Z: 12})
	basis := BasisFromForward(Vec3{X: 1})

	res, ok := h.Test(Vec3{X: 5.99}, Vec3{}, basis)
	if !ok {
		t.Fatal("expected hit")
	}
	// Local bow (+Z) face, expressed in world space, points along +X.
	if math.Abs(res.Normal.X-1) > 1e-9 {
		t.Errorf("world normal = %+v, want +X", res.Normal)
	}
}

func TestHitVolume_BroadPhaseRejectsDistantPoints(t *testing.T) {
	h := BuildHitVolume(ArchetypeCruiser, Vec3{X: 20, Y: 14, Z: 90})
	if _, ok := h.Test(Vec3{X: 500}, Vec3{}, identityBasis()); ok {
		t.Error("broad phase let a distant point through")
	}
	// And it follows the ship: same world point, ship moved nearby.
	if _, ok := h.Test(Vec3{X: 500}, Vec3{X: 495}, identityBasis()); !ok {
		t.Error("point beside the relocated hull missed")
	}
}

func TestHitVolume_BoundaryPointIsStable(t *testing.T) {
	// A point exactly on a face must classify the same way every time.
	h := BuildHitVolume(ArchetypeFighter, Vec3{X: 8, Y: 3, Z: 12})
	onFace := Vec3{Z: 6}
	_, first := h.Test(onFace, Vec3{}, identityBasis())
	for i := 0; i < 100; i++ {
		if _, ok := h.Test(onFace, Vec3{}, identityBasis()); ok != first {
			t.Fatalf("boundary classification changed on repeat %d", i)
		}
	}
	if !first {
		t.Error("face boundary is inclusive; point on the face should hit")
	}
}

func TestHitVolume_DegenerateBoundsStillHittable(t *testing.T) {
	// Zero and negative extents clamp to a minimum, never a zero-size volume.
	h := BuildHitVolume(ArchetypeFighter, Vec3{})
	if h.MaxDim() <= 0 {
		t.Fatalf("MaxDim = %v, want a positive clamped extent", h.MaxDim())
	}
	if _, ok := h.Test(Vec3{}, Vec3{}, identityBasis()); !ok {
		t.Error("centre of a clamped degenerate hull missed")
	}
}

func TestHitVolume_FirstSegmentWins(t *testing.T) {
	// Segment boundaries are inclusive on both sides; the walk order makes
	// the earlier (sternward) segment own the shared plane.
	h := BuildHitVolume(ArchetypeCruiser, Vec3{X: 20, Y: 14, Z: 90})
	// Boundary between segment 0 and 1 sits at z = -30.
	res, ok := h.Test(Vec3{Z: -30}, Vec3{}, identityBasis())
	if !ok {
		t.Fatal("segment boundary point missed")
	}
	if res.Normal != (Vec3{Z: 1}) {
		t.Errorf("normal = %+v, want +Z (bow face of the stern segment)", res.Normal)
	}
}
