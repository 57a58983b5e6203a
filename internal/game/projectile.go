package game

// Projectile is one pooled bolt. A projectile is either fully inert (on the
// free list, active=false) or fully configured (active=true); configure and
// release are the only two state changes and each resets every field it owns.
type Projectile struct {
	owner    int  // registry id of the firing ship
	friendly bool // friend/foe flag, used only for collision filtering
	active   bool

	pos    Vec3
	vel    Vec3
	damage float64
	life   float64 // remaining seconds
}

// Pos returns the projectile's world position.
func (p *Projectile) Pos() Vec3 { return p.pos }

// Active reports whether the slot is live.
func (p *Projectile) Active() bool { return p.active }

// Friendly reports the projectile's side.
func (p *Projectile) Friendly() bool { return p.friendly }

// ProjectilePool is a fixed-capacity pool with an explicit free list (index
// stack): acquire and release are O(1) and the hot path never allocates.
// Exhaustion is not an error — the caller drops the fire request.
type ProjectilePool struct {
	items []Projectile
	free  []int // indices of inert slots; top of stack is next to hand out
}

// NewProjectilePool pre-allocates capacity slots, all inert.
func NewProjectilePool(capacity int) *ProjectilePool {
	if capacity < 1 {
		capacity = 1
	}
	p := &ProjectilePool{
		items: make([]Projectile, capacity),
		free:  make([]int, capacity),
	}
	for i := range p.free {
		p.free[i] = capacity - 1 - i
	}
	return p
}

// Capacity returns the fixed pool size.
func (p *ProjectilePool) Capacity() int { return len(p.items) }

// FreeCount returns the number of inert slots.
func (p *ProjectilePool) FreeCount() int { return len(p.free) }

// ActiveCount returns the number of live projectiles.
func (p *ProjectilePool) ActiveCount() int { return len(p.items) - len(p.free) }

// Acquire pops a free slot and returns its index. ok is false when the pool
// is exhausted; the request is simply dropped by the caller.
func (p *ProjectilePool) Acquire() (int, bool) {
	n := len(p.free)
	if n == 0 {
		return -1, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]
	return idx, true
}

// Configure arms slot idx with a full projectile record and marks it active.
func (p *ProjectilePool) Configure(idx int, owner int, friendly bool, pos, vel Vec3, damage, lifetime float64) {
	p.items[idx] = Projectile{
		owner:    owner,
		friendly: friendly,
		active:   true,
		pos:      pos,
		vel:      vel,
		damage:   damage,
		life:     lifetime,
	}
}

// Release returns slot idx to the free list and clears it. Releasing an
// already-inert slot is a no-op so hit + expiry in one tick stays safe.
func (p *ProjectilePool) Release(idx int) {
	if idx < 0 || idx >= len(p.items) || !p.items[idx].active {
		return
	}
	p.items[idx] = Projectile{}
	p.free = append(p.free, idx)
}

// At returns the projectile in slot idx.
func (p *ProjectilePool) At(idx int) *Projectile { return &p.items[idx] }
