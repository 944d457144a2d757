package carousel

// Ref is an opaque handle to a rendered surface owned by the host.
type Ref any

// Axis is the translation axis of the scroll surface.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Measurement is the rendered size of a surface.
type Measurement struct {
	Width, Height             float64
	ScrollWidth, ScrollHeight float64
	ClientWidth, ClientHeight float64
}

// size returns the length along the axis.
func (m Measurement) size(axis Axis) float64 {
	if axis == AxisY {
		return m.Height
	}
	return m.Width
}

func (m Measurement) scroll(axis Axis) float64 {
	if axis == AxisY {
		return m.ScrollHeight
	}
	return m.ScrollWidth
}

func (m Measurement) client(axis Axis) float64 {
	if axis == AxisY {
		return m.ClientHeight
	}
	return m.ClientWidth
}

// Host is the rendering layer the carousel reads from and writes to.
// It owns no decisions: every call is a measurement or a side effect.
type Host interface {
	// Measure returns the rendered size of ref. ok is false when the surface
	// is not mounted or not yet laid out.
	Measure(ref Ref) (m Measurement, ok bool)
	SetTransform(ref Ref, axis Axis, px float64)
	SetTransitionEnabled(ref Ref, enabled bool)
	Focus(ref Ref)
	// Capture routes window-level pointer move/up events to the given
	// handlers until the returned release func is called.
	Capture(move, up func(*PointerEvent)) (release func())
}
