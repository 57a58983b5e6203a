package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	flashLifetimeTicks  = 12
	muzzleLifetimeTicks = 5
)

var hudFace font.Face = basicfont.Face7x13

var (
	friendlyColor = color.RGBA{R: 70, G: 180, B: 255, A: 255}
	hostileColor  = color.RGBA{R: 235, G: 80, B: 60, A: 255}
	spaceColor    = color.RGBA{R: 8, G: 8, B: 16, A: 255}
)

// Draw renders the battle: ships, projectiles, effects, HUD, inspector.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(spaceColor)

	for i := 0; i < v.director.Pool().Capacity(); i++ {
		p := v.director.Pool().At(i)
		if p.Active() {
			v.drawProjectile(screen, p)
		}
	}
	for _, s := range v.director.Ships() {
		v.drawShip(screen, s)
	}
	v.drawEffects(screen)
	v.drawHUD(screen)
	v.drawInspector(screen)
}

func (v *View) drawShip(screen *ebiten.Image, s *Ship) {
	sx, sy := v.worldToScreen(s.pos)
	if sx < -50 || sx > viewWidth+50 || sy < -50 || sy > viewHeight+50 {
		return
	}

	c := friendlyColor
	if s.team == TeamHostile {
		c = hostileColor
	}

	// Hull circle scaled by the broad-phase radius; floor so fighters stay
	// visible zoomed out.
	r := float32(s.hitbox.MaxDim() / 2 * v.camZoom)
	if r < 3 {
		r = 3
	}
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), r, c, true)

	// Shield ring fades with shield fraction.
	if sf := s.ShieldFrac(); sf > 0 {
		ring := color.RGBA{R: 120, G: 200, B: 255, A: uint8(60 + 140*sf)}
		vector.StrokeCircle(screen, float32(sx), float32(sy), r+3, 1.2, ring, true)
	}

	// Heading line.
	hx := sx + s.forward.X*float64(r+8)
	hy := sy + s.forward.Z*float64(r+8)
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(hx), float32(hy), 1,
		color.RGBA{R: 255, G: 255, B: 255, A: 160}, true)

	// Label + mode letter.
	text.Draw(screen, fmt.Sprintf("%s %s", s.label, modeLetter(s.mode)),
		hudFace, int(sx)-10, int(sy)-int(r)-6, color.White)

	if s.id == v.selectedID {
		vector.StrokeCircle(screen, float32(sx), float32(sy), r+7, 1.5,
			color.RGBA{R: 255, G: 255, B: 120, A: 220}, true)
	}
}

func modeLetter(m BehaviorMode) string {
	switch m {
	case ModeEngage:
		return "[E]"
	case ModeEvade:
		return "[V]"
	case ModePursue:
		return "[P]"
	default:
		return "[·]"
	}
}

func (v *View) drawProjectile(screen *ebiten.Image, p *Projectile) {
	sx, sy := v.worldToScreen(p.Pos())
	c := color.RGBA{R: 120, G: 220, B: 255, A: 230}
	if !p.Friendly() {
		c = color.RGBA{R: 255, G: 180, B: 90, A: 230}
	}
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), 1.6, c, true)
}

func (v *View) drawEffects(screen *ebiten.Image) {
	for _, f := range v.flashes {
		sx, sy := v.worldToScreen(f.pos)
		life := float64(flashLifetimeTicks-f.age) / flashLifetimeTicks
		if life <= 0 {
			continue
		}
		if life > 1 { // destruction flashes start with negative age
			life = 1
		}
		r := float32(3 + 9*(1-life))
		a := uint8(220 * life)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), r,
			color.RGBA{R: 255, G: 230, B: 160, A: a}, true)
	}
	for _, b := range v.bolts {
		sx, sy := v.worldToScreen(b.pos)
		life := float64(muzzleLifetimeTicks-b.age) / muzzleLifetimeTicks
		if life <= 0 {
			continue
		}
		ex := sx + b.dir.X*10
		ey := sy + b.dir.Z*10
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(ex), float32(ey), 1.5,
			color.RGBA{R: 255, G: 250, B: 210, A: uint8(200 * life)}, true)
	}
}

func (v *View) drawHUD(screen *ebiten.Image) {
	friendly, hostile := 0, 0
	for _, s := range v.director.Ships() {
		if s.team == TeamFriendly {
			friendly++
		} else {
			hostile++
		}
	}
	pool := v.director.Pool()
	lines := []string{
		fmt.Sprintf("T=%d  speed=%.1fx  zoom=%.2f", v.director.Tick(), v.simSpeed, v.camZoom),
		fmt.Sprintf("friendly=%d hostile=%d  bolts=%d/%d", friendly, hostile,
			pool.ActiveCount(), pool.Capacity()),
		fmt.Sprintf("shots=%d hits=%d dropped=%d kills=%d",
			v.director.ShotsFired, v.director.Hits, v.director.ShotsDropped, v.director.Kills),
		"wasd pan  q/e zoom  space pause  -/+ speed  click inspect  c copy report",
	}
	for i, l := range lines {
		text.Draw(screen, l, hudFace, 8, 16+14*i, color.White)
	}
	if v.copiedUntil.After(time.Now()) {
		text.Draw(screen, "battle report copied", hudFace, 8, 16+14*len(lines),
			color.RGBA{R: 160, G: 255, B: 160, A: 255})
	}
}

// drawInspector renders the selected ship's panel in the lower-left corner.
func (v *View) drawInspector(screen *ebiten.Image) {
	if v.selectedID < 0 {
		return
	}
	s := v.director.ShipByID(v.selectedID)
	if s == nil {
		v.selectedID = -1
		return
	}

	const px, pw = 8, 290
	ph := 86
	py := viewHeight - ph - 8
	vector.DrawFilledRect(screen, px, float32(py), pw, float32(ph),
		color.RGBA{R: 10, G: 10, B: 24, A: 210}, false)

	target := "none"
	if s.target != nil {
		target = s.target.label
	}
	lines := []string{
		fmt.Sprintf("%s  %s  mode=%s  target=%s", s.label, s.archetype, s.mode, target),
		fmt.Sprintf("pos (%.0f, %.0f, %.0f)  spd %.0f", s.pos.X, s.pos.Y, s.pos.Z, s.vel.Len()),
	}
	for i, l := range lines {
		text.Draw(screen, l, hudFace, px+6, py+16+14*i, color.White)
	}
	drawBar(screen, px+6, py+48, 200, 7, s.HullFrac(), color.RGBA{R: 120, G: 230, B: 120, A: 255})
	drawBar(screen, px+6, py+60, 200, 7, s.ShieldFrac(), color.RGBA{R: 120, G: 190, B: 255, A: 255})
	text.Draw(screen, fmt.Sprintf("hull %.0f  shield %.0f", s.hull, s.shields),
		hudFace, px+6, py+82, color.White)
}

func drawBar(screen *ebiten.Image, x, y, w, h int, frac float64, c color.RGBA) {
	frac = math.Max(0, math.Min(1, frac))
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h),
		color.RGBA{R: 40, G: 40, B: 50, A: 255}, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(float64(w)*frac), float32(h), c, false)
}
