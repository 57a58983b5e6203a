package game

// Player is the externally controlled craft the simulation orbits around:
// hostile culling distance is measured from it, and external collaborators
// route player damage/repair through the same shields-then-hull split that
// ship damage uses.
type Player struct {
	Pos Vec3
	Vel Vec3

	Hull       float64
	MaxHull    float64
	Shields    float64
	MaxShields float64
}

// NewPlayer returns a player craft with full hull and shields.
func NewPlayer(maxHull, maxShields float64) *Player {
	return &Player{
		Hull:       maxHull,
		MaxHull:    maxHull,
		Shields:    maxShields,
		MaxShields: maxShields,
	}
}

// Alive reports whether the player still has hull.
func (p *Player) Alive() bool { return p.Hull > 0 }

// ApplyDamage runs the standard split: shields absorb first, remainder comes
// off the hull, clamped at zero.
func (p *Player) ApplyDamage(amount float64) {
	if amount <= 0 || !p.Alive() {
		return
	}
	absorbed := amount
	if absorbed > p.Shields {
		absorbed = p.Shields
	}
	p.Shields -= absorbed
	if rem := amount - absorbed; rem > 0 {
		p.Hull -= rem
		if p.Hull < 0 {
			p.Hull = 0
		}
	}
}

// Repair restores hull first, then shields, clamped to maxima.
func (p *Player) Repair(amount float64) {
	if amount <= 0 || !p.Alive() {
		return
	}
	if need := p.MaxHull - p.Hull; need > 0 {
		h := amount
		if h > need {
			h = need
		}
		p.Hull += h
		amount -= h
	}
	if amount > 0 {
		p.Shields += amount
		if p.Shields > p.MaxShields {
			p.Shields = p.MaxShields
		}
	}
}
