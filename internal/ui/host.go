package ui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"carousel/internal/carousel"
)

// Surface refs handed to the carousel core. The core never looks inside them.
type (
	areaRef  struct{}
	slideRef int
	dotRef   int
)

// Frame pacing for animated transforms
const (
	animFrames   = 8
	animInterval = 16 * time.Millisecond
)

// Rows and columns taken by everything around the slide area
const (
	padX        = 1
	headerRows  = 2 // title + blank
	footerRows  = 4 // blank + dots + status + help
	minSlideLen = 6
)

// layout is the cell geometry of the scroll surface for the current window
type layout struct {
	ok       bool
	vertical bool

	viewW, viewH       int // visible window onto the surface
	slideW, slideH     int
	gap                int
	contentW, contentH int // full surface
}

// slideLen is the slide length along the axis
func (l layout) slideLen() int {
	if l.vertical {
		return l.slideH
	}
	return l.slideW
}

// computeLayout splits the available space between perView slides
func computeLayout(width, height, slides int, opts carousel.Options, vertical bool) layout {
	availW := width - 2*padX
	availH := height - headerRows - footerRows
	perView := max(opts.ItemsPerView, 1)
	gap := max(int(math.Round(opts.Gap)), 0)

	l := layout{vertical: vertical, gap: gap}
	if availW < minSlideLen || availH < 3 {
		return l
	}

	if vertical {
		l.slideW = availW
		l.slideH = max(int(math.Round(opts.MaxItemHeight)), 3)
		l.viewW = availW
		l.viewH = min(perView*l.slideH+gap*(perView-1), availH)
		l.contentW = l.viewW
		l.contentH = stripLen(slides, l.slideH, gap)
	} else {
		l.slideW = (availW - gap*(perView-1)) / perView
		if l.slideW < minSlideLen {
			return l
		}
		l.slideH = availH
		l.viewW = perView*l.slideW + gap*(perView-1)
		l.viewH = availH
		l.contentW = stripLen(slides, l.slideW, gap)
		l.contentH = l.viewH
	}
	l.ok = true
	return l
}

func stripLen(n, size, gap int) int {
	if n <= 0 {
		return 0
	}
	return n*size + gap*(n-1)
}

// capture is an active window-level pointer capture
type capture struct {
	move, up func(*carousel.PointerEvent)
}

// animation interpolates the rendered offset toward a target
type animation struct {
	id       int
	from, to float64
	frame    int
}

type animFrameMsg struct{ id int }

// terminalHost is the carousel.Host backed by the bubbletea model. Side
// effects that need the event loop are queued as commands and drained by
// Update.
type terminalHost struct {
	m *Model

	offset     float64 // rendered offset, moves toward target while animating
	target     float64
	transition bool
	anim       *animation
	animSeq    int

	capture *capture
	pending []tea.Cmd
}

func newTerminalHost(m *Model) *terminalHost {
	return &terminalHost{m: m}
}

func (h *terminalHost) Measure(ref carousel.Ref) (carousel.Measurement, bool) {
	l := h.m.layout()
	if !l.ok {
		return carousel.Measurement{}, false
	}
	switch r := ref.(type) {
	case areaRef:
		return carousel.Measurement{
			Width:        float64(l.viewW),
			Height:       float64(l.viewH),
			ScrollWidth:  float64(max(l.contentW, l.viewW)),
			ScrollHeight: float64(max(l.contentH, l.viewH)),
			ClientWidth:  float64(l.viewW),
			ClientHeight: float64(l.viewH),
		}, true
	case slideRef:
		if int(r) < 0 || int(r) >= len(h.m.slides) {
			return carousel.Measurement{}, false
		}
		return carousel.Measurement{Width: float64(l.slideW), Height: float64(l.slideH)}, true
	}
	return carousel.Measurement{}, false
}

func (h *terminalHost) SetTransform(_ carousel.Ref, _ carousel.Axis, px float64) {
	h.target = px
	if !h.transition || h.offset == px {
		h.offset = px
		h.anim = nil
		return
	}
	h.animSeq++
	h.anim = &animation{id: h.animSeq, from: h.offset, to: px}
	h.pending = append(h.pending, animTick(h.animSeq))
}

func (h *terminalHost) SetTransitionEnabled(_ carousel.Ref, enabled bool) {
	h.transition = enabled
}

func (h *terminalHost) Focus(ref carousel.Ref) {
	if r, ok := ref.(dotRef); ok {
		h.m.focus = int(r)
	}
}

func (h *terminalHost) Capture(move, up func(*carousel.PointerEvent)) func() {
	c := &capture{move: move, up: up}
	h.capture = c
	return func() {
		if h.capture == c {
			h.capture = nil
		}
	}
}

// step advances the running animation by one frame and reports whether
// another frame is due
func (h *terminalHost) step(msg animFrameMsg) bool {
	a := h.anim
	if a == nil || a.id != msg.id {
		return false
	}
	a.frame++
	if a.frame >= animFrames {
		h.offset = a.to
		h.anim = nil
		return false
	}
	h.offset = a.from + (a.to-a.from)*float64(a.frame)/animFrames
	return true
}

// animating reports whether a transition is in flight
func (h *terminalHost) animating() bool { return h.anim != nil }

// drain returns the commands queued by side effects since the last call
func (h *terminalHost) drain() []tea.Cmd {
	cmds := h.pending
	h.pending = nil
	return cmds
}

func animTick(id int) tea.Cmd {
	return tea.Tick(animInterval, func(time.Time) tea.Msg {
		return animFrameMsg{id: id}
	})
}
