package game

import "testing"

func newTestShip(t *testing.T, arch Archetype, team Team, overrides ClassStats) *Ship {
	t.Helper()
	return NewShip(0, SpawnRequest{
		Archetype: arch,
		Team:      team,
		Bounds:    defaultBoundsFor(arch),
		Overrides: overrides,
	})
}

func TestDamage_SplitLaw_ShieldsAbsorbFirst(t *testing.T) {
	s := newTestShip(t, ArchetypeFighter, TeamFriendly, ClassStats{MaxHull: 100, MaxShields: 80})

	// D <= S: shields only.
	s.ApplyDamage(30)
	if s.shields != 50 || s.hull != 100 {
		t.Errorf("D<=S: got shields=%.0f hull=%.0f, want 50/100", s.shields, s.hull)
	}

	// D > S: shields drained, remainder off hull.
	s.ApplyDamage(70)
	if s.shields != 0 || s.hull != 80 {
		t.Errorf("D>S: got shields=%.0f hull=%.0f, want 0/80", s.shields, s.hull)
	}
}

func TestDamage_HullClampedAtZero(t *testing.T) {
	s := newTestShip(t, ArchetypeFighter, TeamFriendly, ClassStats{MaxHull: 50, MaxShields: 10})
	s.ApplyDamage(10000)
	if s.hull != 0 {
		t.Errorf("hull = %.1f, want 0", s.hull)
	}
	if s.Alive() {
		t.Error("ship with zero hull reports alive")
	}
}

func TestDamage_MonotonicWithoutRepair(t *testing.T) {
	s := newTestShip(t, ArchetypeCruiser, TeamHostile, ClassStats{})
	prev := s.hull
	for i := 0; i < 200; i++ {
		s.ApplyDamage(7)
		if s.hull > prev {
			t.Fatalf("hull increased under damage: %.1f → %.1f", prev, s.hull)
		}
		if s.hull < 0 {
			t.Fatalf("hull went negative: %.1f", s.hull)
		}
		prev = s.hull
	}
}

func TestDamage_DeadShipIsNoOp(t *testing.T) {
	s := newTestShip(t, ArchetypeFighter, TeamHostile, ClassStats{MaxHull: 10, MaxShields: 0})
	s.ApplyDamage(100)
	s.shields = 5 // even with shields restored post-mortem, damage must not run
	s.ApplyDamage(3)
	if s.shields != 5 {
		t.Errorf("dead ship took shield damage: %.1f", s.shields)
	}
}

func TestScenarioA_ShieldOverflowIntoHull(t *testing.T) {
	s := newTestShip(t, ArchetypeFighter, TeamFriendly, ClassStats{MaxHull: 150, MaxShields: 200})
	s.ApplyDamage(250)
	if s.hull != 100 {
		t.Errorf("hull = %.1f, want 100", s.hull)
	}
	if s.shields != 0 {
		t.Errorf("shields = %.1f, want 0", s.shields)
	}
	if !s.Alive() {
		t.Error("ship should survive scenario A")
	}
}

func TestRepair_HullFirstThenShields_Clamped(t *testing.T) {
	s := newTestShip(t, ArchetypeFighter, TeamFriendly, ClassStats{MaxHull: 100, MaxShields: 60})
	s.ApplyDamage(120) // shields 0, hull 40
	s.Repair(70)       // hull → 100, 10 spills into shields
	if s.hull != 100 {
		t.Errorf("hull = %.1f, want 100", s.hull)
	}
	if s.shields != 10 {
		t.Errorf("shields = %.1f, want 10", s.shields)
	}
	s.Repair(10000)
	if s.hull != 100 || s.shields != 60 {
		t.Errorf("over-repair: got %.0f/%.0f, want clamped 100/60", s.hull, s.shields)
	}
}

func TestSpawn_OverridesKeepClassDefaultsWhenZero(t *testing.T) {
	s := newTestShip(t, ArchetypeFighter, TeamFriendly, ClassStats{WeaponRange: 1234})
	if s.stats.WeaponRange != 1234 {
		t.Errorf("override ignored: range = %.0f", s.stats.WeaponRange)
	}
	def := classStatsFor(ArchetypeFighter)
	if s.stats.MaxHull != def.MaxHull {
		t.Errorf("zero override clobbered MaxHull: %.0f", s.stats.MaxHull)
	}
}

func TestSpawn_DegenerateBoundsClamped(t *testing.T) {
	s := NewShip(0, SpawnRequest{Archetype: ArchetypeFighter, Bounds: Vec3{}})
	if s.bounds.X < minHullExtent || s.bounds.Y < minHullExtent || s.bounds.Z < minHullExtent {
		t.Errorf("zero bounds not clamped: %+v", s.bounds)
	}
	if s.hitbox == nil || s.hitbox.SegmentCount() == 0 {
		t.Error("degenerate bounds produced no hit volume")
	}
}

func TestSpawn_UnknownArchetypeFallsBack(t *testing.T) {
	s := NewShip(0, SpawnRequest{Archetype: Archetype(99), Bounds: Vec3{X: 5, Y: 5, Z: 5}})
	if s.stats.MaxHull <= 0 || s.stats.WeaponRange <= 0 {
		t.Errorf("unknown archetype got no default stats: %+v", s.stats)
	}
	if len(s.weapons) == 0 {
		t.Error("unknown archetype got no hardpoints")
	}
}

func TestSpawn_HardpointsPerArchetype(t *testing.T) {
	cases := []struct {
		arch Archetype
		want int
	}{
		{ArchetypeFighter, 2},
		{ArchetypeCruiser, 4},
		{ArchetypeInterceptor, 1},
		{ArchetypeStation, 4},
	}
	for _, c := range cases {
		s := newTestShip(t, c.arch, TeamHostile, ClassStats{})
		if len(s.weapons) != c.want {
			t.Errorf("%s: %d hardpoints, want %d", c.arch, len(s.weapons), c.want)
		}
	}
}

func TestPlayer_SameDamageOrderingAsShips(t *testing.T) {
	p := NewPlayer(150, 200)
	p.ApplyDamage(250)
	if p.Hull != 100 || p.Shields != 0 {
		t.Errorf("player split: hull=%.0f shields=%.0f, want 100/0", p.Hull, p.Shields)
	}
	p.Repair(60)
	if p.Hull != 150 || p.Shields != 10 {
		t.Errorf("player repair: hull=%.0f shields=%.0f, want 150/10", p.Hull, p.Shields)
	}
}
