package game

import "math"

// Vec3 is a 3D vector in world units. Y is up; ships mostly fight in the
// XZ plane but evasion patterns use the full three axes.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3  { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3  { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Len() float64   { return math.Sqrt(v.Dot(v)) }
func (v Vec3) LenSq() float64 { return v.Dot(v) }

// Normalized returns a unit vector, or the zero vector for degenerate input.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return Vec3{}
	}
	return v.Scale(1.0 / l)
}

// IsZero reports whether the vector is (numerically) the zero vector.
func (v Vec3) IsZero() bool {
	return v.LenSq() < 1e-18
}

// Dist returns the distance between two points.
func (v Vec3) Dist(o Vec3) float64 { return v.Sub(o).Len() }

// AngleTo returns the angle in radians between v and o (both treated as
// directions). Degenerate inputs yield pi so that cone checks fail closed.
func (v Vec3) AngleTo(o Vec3) float64 {
	a := v.Normalized()
	b := o.Normalized()
	if a.IsZero() || b.IsZero() {
		return math.Pi
	}
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}

// RotateToward rotates unit direction v toward unit direction target by at
// most maxAngle radians. Both inputs are assumed normalized; the result is
// normalized. If the two are (anti)parallel the rotation falls back to a
// fixed perpendicular axis so the turn still makes progress.
func RotateToward(v, target Vec3, maxAngle float64) Vec3 {
	if maxAngle <= 0 || target.IsZero() {
		return v
	}
	angle := v.AngleTo(target)
	if angle <= maxAngle {
		return target.Normalized()
	}
	axis := v.Cross(target)
	if axis.IsZero() {
		// Anti-parallel: pick any axis perpendicular to v.
		axis = v.Cross(Vec3{Y: 1})
		if axis.IsZero() {
			axis = v.Cross(Vec3{X: 1})
		}
	}
	return rotateAbout(v, axis.Normalized(), maxAngle).Normalized()
}

// rotateAbout rotates v around unit axis by angle (Rodrigues' formula).
func rotateAbout(v, axis Vec3, angle float64) Vec3 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return v.Scale(c).
		Add(axis.Cross(v).Scale(s)).
		Add(axis.Scale(axis.Dot(v) * (1 - c)))
}

// Basis is an orthonormal ship-local frame: Forward is the hull's long axis,
// Right and Up complete a right-handed set. Hit volumes and hardpoints are
// defined in this frame, so world-space tests transform through it.
type Basis struct {
	Right, Up, Forward Vec3
}

// BasisFromForward builds a frame from a forward direction using world-up as
// the reference. A forward parallel to world-up falls back to world-X so the
// frame is always well formed.
func BasisFromForward(forward Vec3) Basis {
	f := forward.Normalized()
	if f.IsZero() {
		f = Vec3{Z: 1}
	}
	up := Vec3{Y: 1}
	right := up.Cross(f)
	if right.IsZero() {
		right = Vec3{X: 1}.Cross(f)
	}
	right = right.Normalized()
	return Basis{Right: right, Up: f.Cross(right).Normalized(), Forward: f}
}

// ToWorld transforms a local-frame vector into world space (rotation only).
func (b Basis) ToWorld(local Vec3) Vec3 {
	return b.Right.Scale(local.X).
		Add(b.Up.Scale(local.Y)).
		Add(b.Forward.Scale(local.Z))
}

// ToLocal transforms a world-space vector into the local frame (rotation only).
func (b Basis) ToLocal(world Vec3) Vec3 {
	return Vec3{
		X: world.Dot(b.Right),
		Y: world.Dot(b.Up),
		Z: world.Dot(b.Forward),
	}
}
