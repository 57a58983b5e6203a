package game

// Config is the global combat configuration supplied by the host.
type Config struct {
	CombatRange        float64 // ships beyond 2× this from the player are culled
	ProjectileSpeed    float64 // world units per second
	ProjectileLifetime float64 // seconds before an un-hit bolt expires
	PoolCapacity       int     // fixed projectile pool size
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		CombatRange:        4000,
		ProjectileSpeed:    900,
		ProjectileLifetime: 3.0,
		PoolCapacity:       256,
	}
}

// normalized fills in unset fields so a partially specified config is usable.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.CombatRange <= 0 {
		c.CombatRange = d.CombatRange
	}
	if c.ProjectileSpeed <= 0 {
		c.ProjectileSpeed = d.ProjectileSpeed
	}
	if c.ProjectileLifetime <= 0 {
		c.ProjectileLifetime = d.ProjectileLifetime
	}
	if c.PoolCapacity <= 0 {
		c.PoolCapacity = d.PoolCapacity
	}
	return c
}
