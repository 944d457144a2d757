package ui

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"carousel/internal/carousel"
	"carousel/internal/domain"
	"carousel/internal/eventbus"
)

// DeckReloadedMsg replaces the deck and options, typically after the deck
// file changed on disk
type DeckReloadedMsg struct {
	Deck    domain.Deck
	Options carousel.Options
}

type autoplayMsg struct{ seq int }

type dragWatchMsg struct{}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	logger *log.Logger

	deck     domain.Deck
	slides   []domain.Slide
	state    *carousel.State
	geom     *carousel.Geometry
	drag     *carousel.Drag
	host     *terminalHost
	items    []*carousel.Item
	triggers []*carousel.Trigger
	unsub    func()

	width   int
	height  int
	mounted bool
	focus   int // trigger ordinal with keyboard focus

	keys   KeyMap
	help   help.Model
	styles *Styles
	bodies *bodyRenderer

	autoplaySeq int
	status      string
	statusErr   bool
	paused      bool

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model showing deck
func NewModel(bus eventbus.EventBus, deck domain.Deck, opts carousel.Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Model{
		bus:    bus,
		logger: logger.WithPrefix("ui"),
		help:   help.New(),
		styles: NewStyles(),
		bodies: newBodyRenderer(DefaultGlamourStyle),
	}
	m.host = newTerminalHost(m)
	m.build(deck, opts)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// SetGlamourStyle selects the markdown style for slide bodies
func (m *Model) SetGlamourStyle(style string) {
	m.bodies = newBodyRenderer(style)
}

// State exposes the carousel state
func (m *Model) State() *carousel.State { return m.state }

// Value returns the current value of the carousel
func (m *Model) Value() string { return m.state.CurrentValue() }

// build creates a fresh carousel for deck, replacing any previous one
func (m *Model) build(deck domain.Deck, opts carousel.Options) {
	if m.drag != nil {
		m.drag.Close()
	}
	if m.unsub != nil {
		m.unsub()
	}

	m.deck = deck
	m.slides = deck.Slides
	m.bodies.reset()
	m.host.capture = nil
	m.host.anim = nil

	state := carousel.New(opts)
	state.SetHost(m.host)
	m.items = m.items[:0]
	m.triggers = m.triggers[:0]
	for i, s := range m.slides {
		m.items = append(m.items, state.RegisterItem(s.Value, slideRef(i)))
	}
	for i := range m.slides {
		m.triggers = append(m.triggers, state.RegisterTrigger(dotRef(i)))
	}

	m.state = state
	m.geom = carousel.NewGeometry(state, m.host, areaRef{})
	m.drag = carousel.NewDrag(state, m.geom, m.host)
	m.drag.OnPointerDown(m.onDragStart)
	m.unsub = state.Subscribe(m.onChange)

	m.applyOrientation()
	m.focus = m.activeTrigger()
	m.mounted = false
	m.mount()

	// New starts playing without notifying subscribers
	if state.IsAutoplay() {
		m.host.pending = append(m.host.pending, m.autoplayCmd())
	}

	m.logger.Debug("carousel built", "id", state.ID(), "slides", len(m.slides), "value", state.CurrentValue())
}

// mount places the start value once the window size is known
func (m *Model) mount() {
	if m.mounted || !m.layout().ok {
		return
	}
	m.geom.Mount()
	m.mounted = true
}

func (m *Model) layout() layout {
	return computeLayout(m.width, m.height, len(m.slides), m.state.Options(), m.state.Orientation() == carousel.Vertical)
}

func (m *Model) applyOrientation() {
	m.keys = DefaultKeyMap()
	if m.state.Orientation() == carousel.Vertical {
		m.keys = m.keys.vertical()
	}
}

// onChange mirrors state changes onto the bus and the focus ring
func (m *Model) onChange(c carousel.Change) {
	switch c.Kind {
	case carousel.ChangeValue:
		m.focus = m.activeTrigger()
		m.publish(eventbus.ValueChangedEvent{
			CarouselID: m.state.ID(),
			Value:      c.Value,
			Index:      m.state.CurrentIndex(),
		})
	case carousel.ChangeAutoplay:
		m.publish(eventbus.AutoplayChangedEvent{CarouselID: m.state.ID(), Playing: c.Autoplay})
		if c.Autoplay {
			m.host.pending = append(m.host.pending, m.autoplayCmd())
		}
	case carousel.ChangeOptions:
		m.applyOrientation()
		m.focus = m.activeTrigger()
	}
}

func (m *Model) onDragStart(*carousel.PointerEvent) {
	if m.drag.Phase() != carousel.Dragging {
		return
	}
	m.publish(eventbus.DragStartedEvent{CarouselID: m.state.ID()})
	if m.state.Options().DragTimeout > 0 {
		m.host.pending = append(m.host.pending, m.dragWatchCmd())
	}
}

func (m *Model) publish(ev eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(ev)
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	if m.state.IsAutoplay() {
		return m.autoplayCmd()
	}
	return nil
}

func (m *Model) autoplayCmd() tea.Cmd {
	m.autoplaySeq++
	seq := m.autoplaySeq
	return tea.Tick(m.state.Options().AutoPlayInterval, func(time.Time) tea.Msg {
		return autoplayMsg{seq: seq}
	})
}

func (m *Model) dragWatchCmd() tea.Cmd {
	return tea.Tick(m.state.Options().DragTimeout, func(time.Time) tea.Msg {
		return dragWatchMsg{}
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.mounted {
			m.geom.Resize()
		} else {
			m.mount()
		}

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.BlurMsg:
		m.endDrag(m.drag.Cancel)

	case animFrameMsg:
		if m.host.step(msg) {
			cmds = append(cmds, animTick(msg.id))
		}

	case autoplayMsg:
		if msg.seq != m.autoplaySeq || !m.state.IsAutoplay() {
			break
		}
		before := m.state.CurrentValue()
		m.state.Next()
		if m.state.CurrentValue() == before {
			// end of the deck without rewind
			m.state.SetAutoplay(false)
			break
		}
		cmds = append(cmds, m.autoplayCmd())

	case dragWatchMsg:
		if m.drag.Phase() != carousel.Dragging {
			break
		}
		m.endDrag(func() { m.drag.Expire(m.drag.Now()) })
		if m.drag.Phase() == carousel.Dragging {
			cmds = append(cmds, m.dragWatchCmd())
		}

	case DeckReloadedMsg:
		m.reload(msg)

	case pauseRenderingMsg:
		m.paused = true

	case resumeRenderingMsg:
		m.paused = false

	case slidePagerMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("pager: %w", msg.err))
		}
	}

	cmds = append(cmds, m.host.drain()...)
	return m, tea.Batch(cmds...)
}

// reload applies a new deck. Options alone are applied in place; a changed
// slide list rebuilds the carousel, keeping the current value when the new
// deck still has it and starting from the first slide otherwise.
func (m *Model) reload(msg DeckReloadedMsg) {
	if sameSlides(m.slides, msg.Deck.Slides) {
		m.deck = msg.Deck
		m.slides = msg.Deck.Slides
		m.bodies.reset()
		m.state.SetOptions(msg.Options)
		m.status = "deck reloaded"
		m.statusErr = false
		return
	}

	opts := msg.Options
	opts.Value = ""
	current := m.state.CurrentValue()
	for i, s := range msg.Deck.Slides {
		if s.Value == current || (s.Value == "" && strconv.Itoa(i) == current) {
			opts.Value = current
			break
		}
	}
	m.build(msg.Deck, opts)
	m.status = "deck reloaded"
	m.statusErr = false
}

// sameSlides reports whether both decks have the same slide identities
func sameSlides(a, b []domain.Slide) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	m.logger.Error("ui error", "err", err)
	m.publish(eventbus.ErrorEvent{Message: "ui error", Err: err})
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Prev):
		m.sendKey(carousel.KeyArrowLeft)
	case key.Matches(msg, m.keys.Next):
		m.sendKey(carousel.KeyArrowRight)
	case key.Matches(msg, m.keys.First):
		m.sendKey(carousel.KeyHome)
	case key.Matches(msg, m.keys.Last):
		m.sendKey(carousel.KeyEnd)
	case key.Matches(msg, m.keys.FocusFwd):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.FocusBwd):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Activate):
		if t := m.focusedTrigger(); t != nil {
			t.Activate()
		}
	case key.Matches(msg, m.keys.Autoplay):
		if m.state.Options().AutoPlayInterval <= 0 {
			m.status = "autoplay is off: set autoplay_interval_ms"
			m.statusErr = false
			break
		}
		m.state.SetAutoplay(!m.state.IsAutoplay())
	case key.Matches(msg, m.keys.Open):
		return m.openActive()
	}
	return nil
}

// sendKey routes a navigation key to the focused trigger
func (m *Model) sendKey(k carousel.Key) {
	if t := m.focusedTrigger(); t != nil {
		t.HandleKey(&carousel.KeyEvent{Key: k})
	}
}

// focusedTrigger returns the trigger holding focus, moving focus to the
// active trigger when the focused one is no longer rendered
func (m *Model) focusedTrigger() *carousel.Trigger {
	if len(m.triggers) == 0 {
		return nil
	}
	if m.focus < 0 || m.focus >= len(m.triggers) || !m.triggers[m.focus].Visibility().Rendered {
		m.focus = m.activeTrigger()
	}
	return m.triggers[m.focus]
}

// activeTrigger returns the rendered trigger whose page holds the current
// index
func (m *Model) activeTrigger() int {
	for i, t := range m.triggers {
		if v := t.Visibility(); v.Rendered && v.Active {
			return i
		}
	}
	return 0
}

// moveFocus cycles focus through the rendered triggers. Focusing a trigger
// shows its page.
func (m *Model) moveFocus(dir int) {
	var rendered []int
	pos := -1
	for i, t := range m.triggers {
		if !t.Visibility().Rendered {
			continue
		}
		if i == m.focus {
			pos = len(rendered)
		}
		rendered = append(rendered, i)
	}
	if len(rendered) == 0 {
		return
	}
	if pos < 0 {
		pos = 0
		dir = 0
	}
	next := rendered[(pos+dir+len(rendered))%len(rendered)]
	m.focus = next
	m.triggers[next].Activate()
}

// openActive shows the current slide in the pager
func (m *Model) openActive() tea.Cmd {
	if len(m.slides) == 0 {
		return nil
	}
	if m.program == nil {
		m.setError(fmt.Errorf("pager unavailable"))
		return nil
	}
	idx := m.state.CurrentIndex()
	slide := m.slides[idx]
	body, err := m.bodies.render(idx, slide.Body, max(m.width-4, 20))
	if err != nil {
		m.logger.Warn("rendering slide for pager", "err", err)
	}
	m.publish(eventbus.SlideOpenedEvent{Value: m.state.CurrentValue()})
	return m.openPager(slide, body)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	ev := &carousel.PointerEvent{PageX: float64(msg.X), PageY: float64(msg.Y)}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			m.drag.Wheel(&carousel.WheelEvent{DeltaY: -1})
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			m.drag.Wheel(&carousel.WheelEvent{DeltaY: 1})
		case tea.MouseButtonLeft:
			if ord, ok := m.dotAt(msg.X, msg.Y); ok {
				m.focus = ord
				m.triggers[ord].Activate()
				return
			}
			if i, ok := m.slideAt(msg.X, msg.Y); ok {
				m.items[i].FocusIn()
				m.drag.PointerDown(ev)
			}
		}

	case tea.MouseActionMotion:
		if c := m.host.capture; c != nil {
			c.move(ev)
		}

	case tea.MouseActionRelease:
		if c := m.host.capture; c != nil {
			m.endDrag(func() { c.up(ev) })
		}
	}
}

// endDrag runs release and reports the snap when it ended a drag
func (m *Model) endDrag(release func()) {
	wasDragging := m.drag.Phase() == carousel.Dragging
	release()
	if wasDragging && m.drag.Phase() == carousel.Idle {
		m.publish(eventbus.DragSnappedEvent{CarouselID: m.state.ID(), Index: m.state.CurrentIndex()})
	}
}

// shift is the rendered scroll position in cells
func (m *Model) shift(l layout) int {
	s := int(math.Round(-m.host.offset))
	limit := l.contentW - l.viewW
	if l.vertical {
		limit = l.contentH - l.viewH
	}
	return max(0, min(s, max(limit, 0)))
}

// slideAt maps a screen cell to the slide drawn there
func (m *Model) slideAt(x, y int) (int, bool) {
	l := m.layout()
	if !l.ok {
		return 0, false
	}
	ax, ay := x-padX, y-headerRows
	if ax < 0 || ay < 0 || ax >= l.viewW || ay >= l.viewH {
		return 0, false
	}
	pos := ax
	if l.vertical {
		pos = ay
	}
	pos += m.shift(l)
	pitch := l.slideLen() + l.gap
	i := pos / pitch
	if pos%pitch >= l.slideLen() || i >= len(m.slides) {
		return 0, false
	}
	return i, true
}

// dotSpan is the screen column of one rendered trigger
type dotSpan struct {
	ordinal int
	x       int
}

func (m *Model) dotSpans() []dotSpan {
	var spans []dotSpan
	x := padX
	for i, t := range m.triggers {
		if !t.Visibility().Rendered {
			continue
		}
		spans = append(spans, dotSpan{ordinal: i, x: x})
		x += 2
	}
	return spans
}

func (m *Model) dotsRow(l layout) int {
	return headerRows + l.viewH + 1
}

// dotAt maps a screen cell to the trigger drawn there
func (m *Model) dotAt(x, y int) (int, bool) {
	l := m.layout()
	if !l.ok || y != m.dotsRow(l) {
		return 0, false
	}
	for _, d := range m.dotSpans() {
		if x == d.x {
			return d.ordinal, true
		}
	}
	return 0, false
}
