package game

import (
	"fmt"
	"math"
	"math/rand"
)

// Director owns the ship registry and the projectile pool and drives the
// whole combat core each tick. Everything runs on one logical thread: no
// locks, only phase ordering. A projectile fired this tick is advanced and
// collision-tested in the same tick, so its spawn position is the muzzle and
// it can only score by flying into something.
type Director struct {
	cfg     Config
	effects EffectsSink
	rng     *rand.Rand

	player  *Player
	ships   []*Ship
	pool    *ProjectilePool
	simTime float64
	tick    int
	nextID  int

	intents []FireIntent // reused across ticks; no per-tick allocation

	// Running totals for reports.
	ShotsFired   int
	ShotsDropped int
	Hits         int
	Kills        int
}

// NewDirector builds a director with the given config, RNG seed, and an
// injected effects collaborator (nil gets a no-op sink).
func NewDirector(cfg Config, seed int64, effects EffectsSink) *Director {
	if effects == nil {
		effects = NopEffects{}
	}
	cfg = cfg.normalized()
	return &Director{
		cfg:     cfg,
		effects: effects,
		rng:     rand.New(rand.NewSource(seed)), // #nosec G404 -- simulation only
		player:  NewPlayer(150, 200),
		pool:    NewProjectilePool(cfg.PoolCapacity),
		intents: make([]FireIntent, 0, 64),
	}
}

// Spawn creates a ship from a spawn request and registers it.
func (d *Director) Spawn(req SpawnRequest) *Ship {
	s := NewShip(d.nextID, req)
	d.nextID++
	d.ships = append(d.ships, s)
	return s
}

// Player returns the player craft (external damage/repair entry point).
func (d *Director) Player() *Player { return d.player }

// Ships returns the live registry. Callers must not hold the slice across
// ticks; removal compacts it in place.
func (d *Director) Ships() []*Ship { return d.ships }

// Pool exposes the projectile pool for rendering and tests.
func (d *Director) Pool() *ProjectilePool { return d.pool }

// Config returns the active configuration.
func (d *Director) Config() Config { return d.cfg }

// SimTime returns accumulated simulation seconds.
func (d *Director) SimTime() float64 { return d.simTime }

// Tick returns the number of completed ticks.
func (d *Director) Tick() int { return d.tick }

// ShipByID returns the registered ship with the given id, or nil.
func (d *Director) ShipByID(id int) *Ship {
	for _, s := range d.ships {
		if s.id == id {
			return s
		}
	}
	return nil
}

// AssignTarget points ship id at target id. Target assignment is owned by
// external collaborators; a bad pair surfaces only as a notice event.
func (d *Director) AssignTarget(id, targetID int) {
	s := d.ShipByID(id)
	if s == nil {
		return
	}
	t := d.ShipByID(targetID)
	if t == nil || t == s {
		s.SetTarget(nil)
		d.effects.Notice(NoticeEvent{ShipID: id, Message: fmt.Sprintf("target %d invalid", targetID)})
		return
	}
	s.SetTarget(t)
}

// ClosestHostile returns the nearest living hostile to a point, or nil.
func (d *Director) ClosestHostile(from Vec3) *Ship {
	var best *Ship
	bestD := math.MaxFloat64
	for _, s := range d.ships {
		if s.team != TeamHostile || !s.Alive() {
			continue
		}
		if dd := s.pos.Sub(from).LenSq(); dd < bestD {
			bestD = dd
			best = s
		}
	}
	return best
}

// Advance runs one simulation tick with the host-supplied delta time.
func (d *Director) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	d.tick++
	d.simTime += dt

	// 1. THINK: every live ship's AI controller.
	d.intents = d.intents[:0]
	ctx := AIContext{SimTime: d.simTime, ProjectileSpeed: d.cfg.ProjectileSpeed, Rng: d.rng}
	for _, s := range d.ships {
		d.intents = s.UpdateAI(dt, ctx, d.intents)
	}

	// 2. FIRE: intents become pooled projectiles; exhaustion drops silently.
	d.spawnProjectiles()

	// 3. ADVANCE: move every active bolt, burn lifetime.
	for i := 0; i < d.pool.Capacity(); i++ {
		p := d.pool.At(i)
		if !p.active {
			continue
		}
		p.pos = p.pos.Add(p.vel.Scale(dt))
		p.life -= dt
	}

	// 4. COLLIDE: test bolts against opposing hulls only.
	d.resolveCollisions()

	// 5. EXPIRE: release bolts whose fuse ran out without a hit.
	for i := 0; i < d.pool.Capacity(); i++ {
		p := d.pool.At(i)
		if p.active && p.life <= 0 {
			d.pool.Release(i)
		}
	}

	// 6. CULL: drop dead ships and anything beyond 2× combat range of the
	// player. In-place compaction keeps iteration safe.
	d.cullShips()
}

func (d *Director) spawnProjectiles() {
	dropped := 0
	for _, in := range d.intents {
		idx, ok := d.pool.Acquire()
		if !ok {
			dropped++
			continue
		}
		d.pool.Configure(idx,
			in.Owner.id,
			in.Owner.team == TeamFriendly,
			in.Muzzle,
			in.Dir.Scale(d.cfg.ProjectileSpeed),
			in.Damage,
			d.cfg.ProjectileLifetime,
		)
		d.ShotsFired++
		d.effects.Fire(FireEvent{
			Muzzle:    in.Muzzle,
			Dir:       in.Dir,
			Damage:    in.Damage,
			Archetype: in.Owner.archetype,
		})
	}
	if dropped > 0 {
		d.ShotsDropped += dropped
		d.effects.Notice(NoticeEvent{ShipID: -1,
			Message: fmt.Sprintf("projectile pool saturated, %d shots dropped", dropped)})
	}
}

func (d *Director) resolveCollisions() {
	for i := 0; i < d.pool.Capacity(); i++ {
		p := d.pool.At(i)
		if !p.active {
			continue
		}
		for _, s := range d.ships {
			if !s.Alive() {
				continue
			}
			// Friendly fire is excluded by the friend/foe flag. Ownership is
			// not consulted: a dead owner's bolts keep flying.
			if p.friendly == (s.team == TeamFriendly) {
				continue
			}
			res, hit := s.hitbox.Test(p.pos, s.pos, s.Basis())
			if !hit {
				continue
			}
			d.Hits++
			s.ApplyDamage(p.damage)
			d.effects.Impact(ImpactEvent{Point: res.Point, Normal: res.Normal, Damage: p.damage})
			if !s.Alive() {
				d.Kills++
				d.effects.Destruction(DestructionEvent{Pos: s.pos, ShipID: s.id})
			}
			d.pool.Release(i)
			break
		}
	}
}

func (d *Director) cullShips() {
	cullSq := 2 * d.cfg.CombatRange
	cullSq *= cullSq
	kept := d.ships[:0]
	for _, s := range d.ships {
		if !s.Alive() {
			continue
		}
		if s.pos.Sub(d.player.Pos).LenSq() > cullSq {
			continue
		}
		kept = append(kept, s)
	}
	// Clear trailing pointers so removed ships can be collected.
	for i := len(kept); i < len(d.ships); i++ {
		d.ships[i] = nil
	}
	d.ships = kept
}
