package carousel

import (
	"math"
	"time"
)

// Phase is the drag state machine state. Snapping is transient: a release
// snaps and commits synchronously before returning to Idle.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Snapping
)

func (p Phase) String() string {
	switch p {
	case Dragging:
		return "dragging"
	case Snapping:
		return "snapping"
	default:
		return "idle"
	}
}

type source int

const (
	sourcePointer source = iota
	sourceTouch
)

// touchLockThreshold is the axis-dominant travel after which a touch drag
// claims the gesture from the host's native scrolling.
const touchLockThreshold = 5

// Drag turns pointer, touch and wheel input into transform updates and
// value commits.
type Drag struct {
	state *State
	geom  *Geometry
	host  Host

	phase      Phase
	src        source
	start      float64
	touchStart Point
	lastInput  time.Time
	release    func()

	// Now is the clock used by the watchdog.
	Now func() time.Time

	onPointerDown []Handler[*PointerEvent]
	onTouchStart  []Handler[*TouchEvent]
	onTouchMove   []Handler[*TouchEvent]
	onTouchEnd    []Handler[*TouchEvent]

	unsubscribe func()
}

// NewDrag wires a drag controller to the state and geometry. It also keeps
// the transform in sync with value changes made by any other writer.
func NewDrag(state *State, geom *Geometry, host Host) *Drag {
	d := &Drag{state: state, geom: geom, host: host, Now: time.Now}
	d.unsubscribe = state.Subscribe(d.reconcile)
	return d
}

// Close detaches the controller from the state.
func (d *Drag) Close() {
	d.endCapture()
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
}

// Phase returns the current drag phase.
func (d *Drag) Phase() Phase { return d.phase }

// OnPointerDown appends external pointer-down handlers.
func (d *Drag) OnPointerDown(h ...Handler[*PointerEvent]) {
	d.onPointerDown = append(d.onPointerDown, h...)
}

// OnTouchStart appends external touch-start handlers.
func (d *Drag) OnTouchStart(h ...Handler[*TouchEvent]) { d.onTouchStart = append(d.onTouchStart, h...) }

// OnTouchMove appends external touch-move handlers.
func (d *Drag) OnTouchMove(h ...Handler[*TouchEvent]) { d.onTouchMove = append(d.onTouchMove, h...) }

// OnTouchEnd appends external touch-end handlers.
func (d *Drag) OnTouchEnd(h ...Handler[*TouchEvent]) { d.onTouchEnd = append(d.onTouchEnd, h...) }

func (d *Drag) coord(x, y float64) float64 {
	if d.state.Axis() == AxisY {
		return y
	}
	return x
}

func (d *Drag) canDrag() bool {
	return d.state.opts.Draggable && d.geom.scrollArea != nil
}

// begin enters Dragging from Idle.
func (d *Drag) begin(src source, start float64) {
	d.state.InterruptAutoplay()
	d.geom.SetTransition(false)
	d.geom.SetBoundaries()
	d.phase = Dragging
	d.src = src
	d.start = start
	d.lastInput = d.Now()
	d.state.logger.Debug("drag started", "start", start)
}

// track applies one incremental move of a drag.
func (d *Drag) track(pos, sensitivity float64) {
	bounds, ok := d.geom.Boundaries()
	if !ok {
		return
	}
	walk := (d.start - pos) * sensitivity
	candidate := d.geom.transform - walk
	if bounds.Contains(candidate) {
		d.geom.transform = candidate
		d.geom.SetTransition(false)
		d.geom.ApplyTransform()
	}
	d.start = pos
	d.lastInput = d.Now()
}

// PointerDown starts a pointer drag and captures window-level move/up.
func (d *Drag) PointerDown(ev *PointerEvent) {
	dispatch(ev, append([]Handler[*PointerEvent]{d.pointerDown}, d.onPointerDown...)...)
}

func (d *Drag) pointerDown(ev *PointerEvent) {
	if !d.canDrag() || d.phase == Dragging {
		return
	}
	d.begin(sourcePointer, d.coord(ev.PageX, ev.PageY))
	d.release = d.host.Capture(d.PointerMove, d.PointerUp)
}

// PointerMove tracks a pointer drag.
func (d *Drag) PointerMove(ev *PointerEvent) {
	if d.phase != Dragging || d.src != sourcePointer {
		return
	}
	d.track(d.coord(ev.PageX, ev.PageY), d.state.opts.Sensitivity.Pointer)
}

// PointerUp ends a pointer drag with a snap.
func (d *Drag) PointerUp(ev *PointerEvent) {
	if d.phase != Dragging || d.src != sourcePointer {
		return
	}
	d.snap()
}

// TouchStart starts a touch drag.
func (d *Drag) TouchStart(ev *TouchEvent) {
	dispatch(ev, append([]Handler[*TouchEvent]{d.touchStartHandler}, d.onTouchStart...)...)
}

func (d *Drag) touchStartHandler(ev *TouchEvent) {
	if len(ev.Touches) == 0 {
		return
	}
	d.touchStart = ev.Touches[0]
	if !d.canDrag() || d.phase == Dragging {
		return
	}
	t := ev.Touches[0]
	d.begin(sourceTouch, d.coord(t.ClientX, t.ClientY))
}

// TouchMove tracks a touch drag.
func (d *Drag) TouchMove(ev *TouchEvent) {
	dispatch(ev, append([]Handler[*TouchEvent]{d.touchMoveHandler}, d.onTouchMove...)...)
}

func (d *Drag) touchMoveHandler(ev *TouchEvent) {
	if len(ev.Touches) == 0 {
		return
	}
	t := ev.Touches[0]
	dx := math.Abs(t.ClientX - d.touchStart.ClientX)
	dy := math.Abs(t.ClientY - d.touchStart.ClientY)
	if d.state.Axis() == AxisX && dx > dy && dx > touchLockThreshold {
		ev.PreventDefault()
	} else if d.state.Axis() == AxisY && dy > dx && dy > touchLockThreshold {
		ev.PreventDefault()
	}

	if d.phase != Dragging || d.src != sourceTouch {
		return
	}
	d.track(d.coord(t.ClientX, t.ClientY), d.state.opts.Sensitivity.Touch)
}

// TouchEnd ends a touch drag with a snap.
func (d *Drag) TouchEnd(ev *TouchEvent) {
	dispatch(ev, append([]Handler[*TouchEvent]{d.touchEndHandler}, d.onTouchEnd...)...)
}

func (d *Drag) touchEndHandler(*TouchEvent) {
	if d.phase != Dragging || d.src != sourceTouch {
		return
	}
	d.snap()
}

// Cancel ends an active drag as if it had been released.
func (d *Drag) Cancel() {
	if d.phase != Dragging {
		return
	}
	d.state.logger.Debug("drag cancelled")
	d.snap()
}

// Expire releases a drag that has seen no input for the configured drag
// timeout. It reports whether a drag was released.
func (d *Drag) Expire(now time.Time) bool {
	timeout := d.state.opts.DragTimeout
	if timeout <= 0 || d.phase != Dragging {
		return false
	}
	if now.Sub(d.lastInput) < timeout {
		return false
	}
	d.state.logger.Debug("drag expired", "idle", now.Sub(d.lastInput))
	d.snap()
	return true
}

// snap selects the closest item, animates to it and commits its value.
func (d *Drag) snap() {
	d.phase = Snapping
	d.endCapture()

	if d.state.ItemCount() > 0 {
		closest := d.geom.closestIndex()
		d.geom.SetTransition(true)
		d.geom.transform = -d.geom.ItemOffset(closest)
		d.geom.ApplyTransform()
		d.state.logger.Debug("drag snapped", "index", closest)
		d.state.SetCurrentValue(ValueFromIndex(closest, d.state.values))
	}
	d.phase = Idle
}

func (d *Drag) endCapture() {
	if d.release != nil {
		d.release()
		d.release = nil
	}
}

// Wheel steps one valid stop per tick. The wheel clamps at both ends and
// ignores rewind.
func (d *Drag) Wheel(ev *WheelEvent) {
	if !d.state.opts.Mousewheel {
		return
	}
	ev.PreventDefault()
	if !d.canDrag() || ev.DeltaY == 0 {
		return
	}
	dir := -1
	if ev.DeltaY > 0 {
		dir = 1
	}
	d.state.step(dir, false)
}

// reconcile re-snaps the surface when the value changes outside a drag.
func (d *Drag) reconcile(c Change) {
	if c.Kind == ChangeAutoplay {
		return
	}
	if d.phase != Idle {
		return
	}
	d.geom.SnapTo(d.state.CurrentIndex())
}
