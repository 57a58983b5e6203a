package game

import (
	"fmt"
	"strings"
)

// battleReport renders a plain-text summary of the current engagement,
// suitable for pasting into a bug report.
func (v *View) battleReport() string {
	d := v.director

	var b strings.Builder
	fmt.Fprintf(&b, "--- VoidSense battle report ---\n")
	fmt.Fprintf(&b, "tick=%d sim_time=%.1fs speed=%.1fx\n", d.Tick(), d.SimTime(), v.simSpeed)
	fmt.Fprintf(&b, "shots=%d hits=%d dropped=%d kills=%d pool=%d/%d\n\n",
		d.ShotsFired, d.Hits, d.ShotsDropped, d.Kills,
		d.Pool().ActiveCount(), d.Pool().Capacity())

	for _, s := range d.Ships() {
		target := "none"
		if s.target != nil {
			target = s.target.label
		}
		fmt.Fprintf(&b, "%-4s %-11s %-8s mode=%-7s hull=%5.0f/%-5.0f shield=%5.0f/%-5.0f "+
			"pos=(%.0f,%.0f,%.0f) spd=%.0f target=%s\n",
			s.label, s.archetype, s.team, s.mode,
			s.hull, s.stats.MaxHull, s.shields, s.stats.MaxShields,
			s.pos.X, s.pos.Y, s.pos.Z, s.vel.Len(), target)
	}

	p := d.Player()
	fmt.Fprintf(&b, "\nplayer hull=%.0f/%.0f shield=%.0f/%.0f pos=(%.0f,%.0f,%.0f)\n",
		p.Hull, p.MaxHull, p.Shields, p.MaxShields, p.Pos.X, p.Pos.Y, p.Pos.Z)
	return b.String()
}
