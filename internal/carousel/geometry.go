package carousel

import "math"

// Bounds is the allowed range of the live transform.
type Bounds struct {
	Min, Max float64
}

// Contains reports whether v lies inside the bounds.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Geometry positions the scroll surface. The transform is a translation
// along the state's axis and is always <= 0.
type Geometry struct {
	state      *State
	host       Host
	scrollArea Ref

	transform  float64
	transition bool
	bounds     *Bounds
}

// NewGeometry binds the scroll surface of a carousel.
func NewGeometry(state *State, host Host, scrollArea Ref) *Geometry {
	return &Geometry{state: state, host: host, scrollArea: scrollArea}
}

// Transform returns the live transform value.
func (g *Geometry) Transform() float64 { return g.transform }

// TransitionEnabled reports whether transform changes animate.
func (g *Geometry) TransitionEnabled() bool { return g.transition }

// Boundaries returns the bounds captured by the last SetBoundaries call.
func (g *Geometry) Boundaries() (Bounds, bool) {
	if g.bounds == nil {
		return Bounds{}, false
	}
	return *g.bounds, true
}

// Mount switches the state into scroller mode and places the start value
// without a transition.
func (g *Geometry) Mount() {
	g.state.setScroller(true)
	if g.scrollArea == nil {
		return
	}
	g.SetTransition(false)
	g.transform = -g.ItemOffset(g.state.CurrentIndex())
	g.ApplyTransform()
}

// ItemOffset returns the distance the surface must move to bring the item
// at index into alignment. Missing measurements yield 0.
func (g *Geometry) ItemOffset(index int) float64 {
	if g.scrollArea == nil {
		return 0
	}
	area, ok := g.host.Measure(g.scrollArea)
	if !ok {
		return 0
	}
	axis := g.state.Axis()
	gap := g.state.opts.Gap

	position := 0.0
	for i := 0; i < index && i < len(g.state.items); i++ {
		item := g.state.items[i]
		if item == nil {
			continue
		}
		m, ok := g.host.Measure(item.surface)
		if !ok {
			continue
		}
		position += m.size(axis) + gap
	}

	current := g.state.Item(index)
	if current == nil {
		return 0
	}
	cm, ok := g.host.Measure(current.surface)
	if !ok {
		return 0
	}
	viewport := area.client(axis)
	itemSize := cm.size(axis)

	switch g.state.opts.Align {
	case AlignCenter:
		position -= (viewport - itemSize) / 2
	case AlignEnd:
		position -= viewport - itemSize
	}

	minPos := -(area.scroll(axis) - viewport)
	position = math.Max(minPos, math.Min(0, -position))
	return math.Abs(position)
}

// SetBoundaries captures the drag range from the current measurements.
func (g *Geometry) SetBoundaries() {
	if g.scrollArea == nil {
		return
	}
	area, ok := g.host.Measure(g.scrollArea)
	if !ok {
		return
	}
	axis := g.state.Axis()
	g.bounds = &Bounds{Min: -(area.scroll(axis) - area.client(axis)), Max: 0}
}

// SetTransition toggles animated transform changes.
func (g *Geometry) SetTransition(enabled bool) {
	g.transition = enabled
	if g.scrollArea == nil {
		return
	}
	g.host.SetTransitionEnabled(g.scrollArea, enabled)
}

// ApplyTransform pushes the live transform to the surface.
func (g *Geometry) ApplyTransform() {
	if g.scrollArea == nil {
		return
	}
	g.host.SetTransform(g.scrollArea, g.state.Axis(), g.transform)
}

// SnapTo animates the surface to the offset of index.
func (g *Geometry) SnapTo(index int) {
	if g.scrollArea == nil {
		return
	}
	g.SetTransition(true)
	g.transform = -g.ItemOffset(index)
	g.ApplyTransform()
}

// Resize re-aligns the current index after the viewport changed size. The
// jump animates, after which transitions are off again.
func (g *Geometry) Resize() {
	if g.scrollArea == nil {
		return
	}
	g.SnapTo(g.state.CurrentIndex())
	g.SetTransition(false)
}

// closestIndex returns the item whose offset is nearest the live transform.
// Ties resolve to the lower index.
func (g *Geometry) closestIndex() int {
	current := -g.transform
	closest := 0
	best := math.Inf(1)
	for i, item := range g.state.items {
		if item == nil {
			continue
		}
		d := math.Abs(g.ItemOffset(i) - current)
		if d < best {
			closest = i
			best = d
		}
	}
	return closest
}
