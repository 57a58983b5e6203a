package game

// Outbound events for rendering/effects collaborators. The director never
// reaches into a global effects helper; it calls an injected EffectsSink.

// FireEvent is emitted for every projectile actually spawned.
type FireEvent struct {
	Muzzle    Vec3
	Dir       Vec3
	Damage    float64
	Archetype Archetype // weapon type proxy: the firing hull's class
}

// ImpactEvent is emitted when a projectile strikes a hull.
type ImpactEvent struct {
	Point  Vec3
	Normal Vec3
	Damage float64
}

// DestructionEvent is emitted the tick a ship's hull reaches zero.
type DestructionEvent struct {
	Pos    Vec3
	ShipID int
}

// NoticeEvent is a non-fatal condition surfaced for display only, e.g. an
// invalid target assignment or the projectile pool saturating.
type NoticeEvent struct {
	ShipID  int
	Message string
}

// EffectsSink receives combat events. Implementations must not mutate the
// simulation; they run synchronously inside the tick.
type EffectsSink interface {
	Fire(FireEvent)
	Impact(ImpactEvent)
	Destruction(DestructionEvent)
	Notice(NoticeEvent)
}

// NopEffects discards all events. Used when no collaborator is attached.
type NopEffects struct{}

func (NopEffects) Fire(FireEvent)               {}
func (NopEffects) Impact(ImpactEvent)           {}
func (NopEffects) Destruction(DestructionEvent) {}
func (NopEffects) Notice(NoticeEvent)           {}

// EventRecorder is an EffectsSink that buffers events for later inspection
// (the viewer drains it per frame, tests assert on it).
type EventRecorder struct {
	Fires        []FireEvent
	Impacts      []ImpactEvent
	Destructions []DestructionEvent
	Notices      []NoticeEvent
}

func (r *EventRecorder) Fire(e FireEvent)               { r.Fires = append(r.Fires, e) }
func (r *EventRecorder) Impact(e ImpactEvent)           { r.Impacts = append(r.Impacts, e) }
func (r *EventRecorder) Destruction(e DestructionEvent) { r.Destructions = append(r.Destructions, e) }
func (r *EventRecorder) Notice(e NoticeEvent)           { r.Notices = append(r.Notices, e) }

// Reset clears all buffers, keeping capacity.
func (r *EventRecorder) Reset() {
	r.Fires = r.Fires[:0]
	r.Impacts = r.Impacts[:0]
	r.Destructions = r.Destructions[:0]
	r.Notices = r.Notices[:0]
}
