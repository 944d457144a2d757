package carousel

// Key is a navigation key recognised by triggers.
type Key int

const (
	KeyOther Key = iota
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
)

// Event carries the propagation flags shared by all input events.
type Event struct {
	defaultPrevented bool
	stopped          bool
}

// PreventDefault marks the host's default action as suppressed.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation keeps later handlers in the chain from running.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// KeyEvent is a key press on a trigger.
type KeyEvent struct {
	Event
	Key Key
}

// PointerEvent is a mouse event in page coordinates.
type PointerEvent struct {
	Event
	PageX, PageY float64
}

// Point is a single touch contact in client coordinates.
type Point struct {
	ClientX, ClientY float64
}

// TouchEvent carries the active touch contacts. End events may have none.
type TouchEvent struct {
	Event
	Touches []Point
}

// WheelEvent is a mouse wheel tick.
type WheelEvent struct {
	Event
	DeltaY float64
}

type propagator interface {
	PropagationStopped() bool
}

// Handler is one link of an event handler chain.
type Handler[E propagator] func(E)

// dispatch runs handlers in order until one stops propagation.
func dispatch[E propagator](ev E, handlers ...Handler[E]) {
	for _, h := range handlers {
		if h == nil {
			continue
		}
		h(ev)
		if ev.PropagationStopped() {
			return
		}
	}
}
