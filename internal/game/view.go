package game

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	viewWidth  = 1280
	viewHeight = 720
	// Fixed simulation step for the viewer; the core itself takes any dt.
	viewTickDelta = 1.0 / 60.0
)

// View is the interactive ebiten frontend: it hosts a Director, stands in
// for the external collaborators (targeting, effects), and renders the
// battle top-down on the XZ plane.
type View struct {
	director *Director
	events   *EventRecorder

	// Camera pan + zoom (world XZ → screen).
	camX    float64
	camY    float64 // world Z, screen vertical
	camZoom float64

	// Simulation speed control: 0 (paused), 0.5, 1, 2, 4.
	simSpeed  float64
	tickAccum float64

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool

	// Click-to-inspect.
	selectedID int // -1 = none

	// Short-lived visual effects fed from the event recorder.
	flashes []impactFlash
	bolts   []muzzleFlash

	copiedUntil time.Time // "report copied" toast deadline
}

type impactFlash struct {
	pos Vec3
	age int
}

type muzzleFlash struct {
	pos Vec3
	dir Vec3
	age int
}

// NewView builds the viewer with a stock demo engagement.
func NewView() *View {
	events := &EventRecorder{}
	d := NewDirector(DefaultConfig(), time.Now().UnixNano(), events)

	v := &View{
		director:   d,
		events:     events,
		camZoom:    0.25,
		simSpeed:   1.0,
		prevKeys:   map[ebiten.Key]bool{},
		selectedID: -1,
	}
	v.spawnDemoBattle()
	return v
}

// spawnDemoBattle sets up a mixed engagement around the player.
func (v *View) spawnDemoBattle() {
	d := v.director
	spawn := func(arch Archetype, team Team, x, z float64) {
		d.Spawn(SpawnRequest{
			Archetype: arch,
			Team:      team,
			Bounds:    defaultBoundsFor(arch),
			Pos:       Vec3{X: x, Z: z},
			Forward:   Vec3{Z: 1},
		})
	}
	spawn(ArchetypeFighter, TeamFriendly, -300, -900)
	spawn(ArchetypeFighter, TeamFriendly, -200, -950)
	spawn(ArchetypeInterceptor, TeamFriendly, -100, -1000)
	spawn(ArchetypeCruiser, TeamFriendly, 0, -1200)
	spawn(ArchetypeFighter, TeamHostile, 300, 900)
	spawn(ArchetypeFighter, TeamHostile, 200, 950)
	spawn(ArchetypeInterceptor, TeamHostile, 100, 1000)
	spawn(ArchetypeCruiser, TeamHostile, 0, 1200)
	spawn(ArchetypeStation, TeamHostile, 900, 1600)
}

// Update advances the sim at the selected speed and processes input.
func (v *View) Update() error {
	v.handleInput()

	if v.simSpeed > 0 {
		v.tickAccum += v.simSpeed
		for v.tickAccum >= 1.0 {
			v.tickAccum -= 1.0
			v.simTick()
		}
	}
	v.ageEffects()
	return nil
}

// simTick runs one fixed-step tick, doing the host collaborator's jobs:
// targeting before the tick, effect collection after.
func (v *View) simTick() {
	// Targeting: everyone locks the closest living enemy.
	ships := v.director.Ships()
	for _, s := range ships {
		var best *Ship
		bestD := -1.0
		for _, o := range ships {
			if o.team == s.team || !o.Alive() {
				continue
			}
			dd := o.pos.Sub(s.pos).LenSq()
			if best == nil || dd < bestD {
				best = o
				bestD = dd
			}
		}
		s.SetTarget(best)
	}

	v.director.Advance(viewTickDelta)

	// Drain events into short-lived visuals.
	for _, e := range v.events.Fires {
		v.bolts = append(v.bolts, muzzleFlash{pos: e.Muzzle, dir: e.Dir})
	}
	for _, e := range v.events.Impacts {
		v.flashes = append(v.flashes, impactFlash{pos: e.Point})
	}
	for _, e := range v.events.Destructions {
		v.flashes = append(v.flashes, impactFlash{pos: e.Pos, age: -6}) // bigger, lives longer
	}
	v.events.Reset()
}

// ageEffects ages and prunes impact flashes and muzzle flashes in place.
func (v *View) ageEffects() {
	kept := v.flashes[:0]
	for _, f := range v.flashes {
		f.age++
		if f.age < flashLifetimeTicks {
			kept = append(kept, f)
		}
	}
	v.flashes = kept

	keptB := v.bolts[:0]
	for _, b := range v.bolts {
		b.age++
		if b.age < muzzleLifetimeTicks {
			keptB = append(keptB, b)
		}
	}
	v.bolts = keptB
}

func (v *View) handleInput() {
	current := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		current[k] = ebiten.IsKeyPressed(k)
		return current[k] && !v.prevKeys[k]
	}

	// Camera pan: WASD / arrows.
	panSpeed := 10.0 / v.camZoom
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.camY -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.camY += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.camX -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.camX += panSpeed
	}

	// Zoom: Q/E.
	if ebiten.IsKeyPressed(ebiten.KeyQ) && v.camZoom > 0.05 {
		v.camZoom *= 0.98
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) && v.camZoom < 4.0 {
		v.camZoom *= 1.02
	}

	// Sim speed: space pauses, -/+ step through 0.5/1/2/4.
	if pressed(ebiten.KeySpace) {
		if v.simSpeed > 0 {
			v.simSpeed = 0
		} else {
			v.simSpeed = 1
		}
	}
	if pressed(ebiten.KeyMinus) && v.simSpeed > 0.5 {
		v.simSpeed /= 2
	}
	if pressed(ebiten.KeyEqual) && v.simSpeed < 4 {
		if v.simSpeed == 0 {
			v.simSpeed = 0.5
		} else {
			v.simSpeed *= 2
		}
	}

	// C: copy battle report to clipboard.
	if pressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(v.battleReport()); err == nil {
			v.copiedUntil = time.Now().Add(2 * time.Second)
		}
	}

	// Click: select nearest ship for inspection.
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !v.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		v.selectShipAt(mx, my)
	}
	v.prevMouseLeft = left

	v.prevKeys = current
}

// selectShipAt picks the ship nearest the clicked screen position.
func (v *View) selectShipAt(mx, my int) {
	const pickRadius = 24.0
	bestD := pickRadius * pickRadius
	v.selectedID = -1
	for _, s := range v.director.Ships() {
		sx, sy := v.worldToScreen(s.pos)
		dx := sx - float64(mx)
		dy := sy - float64(my)
		if dd := dx*dx + dy*dy; dd < bestD {
			bestD = dd
			v.selectedID = s.id
		}
	}
}

// worldToScreen projects a world position onto the screen (top-down XZ).
func (v *View) worldToScreen(p Vec3) (float64, float64) {
	x := (p.X-v.camX)*v.camZoom + viewWidth/2
	y := (p.Z-v.camY)*v.camZoom + viewHeight/2
	return x, y
}

// Layout reports the fixed logical screen size.
func (v *View) Layout(_, _ int) (int, int) {
	return viewWidth, viewHeight
}
