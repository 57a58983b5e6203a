package game

// Read-only snapshot surface for HUD / targeting-overlay collaborators.

// ShipSnapshot is a lightweight copy of one ship's externally visible state.
type ShipSnapshot struct {
	ID        int
	Label     string
	Team      Team
	Archetype Archetype
	Mode      BehaviorMode
	Pos       Vec3
	Forward   Vec3
	HullFrac  float64
	ShieldFrac float64
}

// BattleSnapshot captures the whole battle at one tick.
type BattleSnapshot struct {
	Tick  int
	Ships []ShipSnapshot
}

// Snapshot returns the current state of every registered ship. The result
// shares nothing with the live registry.
func (d *Director) Snapshot() BattleSnapshot {
	snap := BattleSnapshot{Tick: d.tick}
	snap.Ships = make([]ShipSnapshot, 0, len(d.ships))
	for _, s := range d.ships {
		snap.Ships = append(snap.Ships, ShipSnapshot{
			ID:        s.id,
			Label:     s.label,
			Team:      s.team,
			Archetype: s.archetype,
			Mode:      s.mode,
			Pos:       s.pos,
			Forward:   s.forward,
			HullFrac:  s.HullFrac(),
			ShieldFrac: s.ShieldFrac(),
		})
	}
	return snap
}
