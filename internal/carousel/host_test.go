package carousel

// fakeHost is an in-memory Host. Surfaces are measured from a table keyed
// by ref.
type fakeHost struct {
	sizes       map[Ref]Measurement
	transforms  []float64
	transitions []bool
	focused     Ref
	captured    bool
	move, up    func(*PointerEvent)
}

func newFakeHost() *fakeHost {
	return &fakeHost{sizes: make(map[Ref]Measurement)}
}

func (h *fakeHost) Measure(ref Ref) (Measurement, bool) {
	m, ok := h.sizes[ref]
	return m, ok
}

func (h *fakeHost) SetTransform(_ Ref, _ Axis, px float64) {
	h.transforms = append(h.transforms, px)
}

func (h *fakeHost) SetTransitionEnabled(_ Ref, enabled bool) {
	h.transitions = append(h.transitions, enabled)
}

func (h *fakeHost) Focus(ref Ref) { h.focused = ref }

func (h *fakeHost) Capture(move, up func(*PointerEvent)) func() {
	h.captured = true
	h.move, h.up = move, up
	return func() {
		h.captured = false
		h.move, h.up = nil, nil
	}
}

func (h *fakeHost) lastTransform() float64 {
	if len(h.transforms) == 0 {
		return 0
	}
	return h.transforms[len(h.transforms)-1]
}

// strip builds a horizontal carousel of n items of width w with the
// viewport showing perView of them.
type strip struct {
	host  *fakeHost
	state *State
	geom  *Geometry
	drag  *Drag
	items []*Item
}

func newStrip(n int, w float64, opts Options) *strip {
	h := newFakeHost()
	s := New(opts)
	s.SetHost(h)
	per := s.Options().ItemsPerView
	gap := s.Options().Gap

	area := "area"
	content := float64(n)*w + float64(n-1)*gap
	viewport := float64(per)*w + float64(per-1)*gap
	h.sizes[area] = Measurement{
		Width: viewport, Height: 10,
		ScrollWidth: content, ScrollHeight: 10,
		ClientWidth: viewport, ClientHeight: 10,
	}

	st := &strip{host: h, state: s}
	for i := 0; i < n; i++ {
		ref := i
		h.sizes[ref] = Measurement{Width: w, Height: 10}
		st.items = append(st.items, s.RegisterItem("", ref))
	}
	st.geom = NewGeometry(s, h, area)
	st.drag = NewDrag(s, st.geom, h)
	st.geom.Mount()
	return st
}
