package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carousel/internal/carousel"
	"carousel/internal/domain"
	"carousel/internal/eventbus"
)

// With an 80x24 window a single-slide view is 78 cells wide; with gap 2 the
// pitch between slides is 80.
const (
	testWidth  = 80
	testHeight = 24
	testPitch  = 80
)

func testDeck() domain.Deck {
	return domain.Deck{
		Title: "Test deck",
		Slides: []domain.Slide{
			{Value: "a", Title: "Slide A", Body: "Body of a"},
			{Value: "b", Title: "Slide B", Body: "Body of b"},
			{Value: "c", Title: "Slide C", Body: "Body of c"},
			{Value: "d", Title: "Slide D", Body: "Body of d"},
			{Value: "e", Title: "Slide E", Body: "Body of e"},
		},
	}
}

func testOptions() carousel.Options {
	opts := carousel.DefaultOptions()
	opts.Gap = 2
	return opts
}

func newTestModel(t *testing.T, opts carousel.Options) *Model {
	t.Helper()
	m := NewModel(nil, testDeck(), opts)
	m.SetGlamourStyle("notty")
	m.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	require.True(t, m.mounted)
	return m
}

// settle plays the running animation to its end
func settle(m *Model) {
	for m.host.animating() {
		m.Update(animFrameMsg{id: m.host.anim.id})
	}
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runeMsg(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestModel_MountPlacesStartValueWithoutAnimation(t *testing.T) {
	opts := testOptions()
	opts.Value = "c"
	m := newTestModel(t, opts)

	assert.False(t, m.host.animating())
	assert.Equal(t, float64(-2*testPitch), m.host.offset)
	assert.Equal(t, "c", m.Value())
	assert.Equal(t, 2, m.focus)
}

func TestModel_LayoutSplitsViewport(t *testing.T) {
	opts := testOptions()
	opts.ItemsPerView = 2
	m := newTestModel(t, opts)

	l := m.layout()
	require.True(t, l.ok)
	assert.Equal(t, 38, l.slideW)
	assert.Equal(t, 78, l.viewW)
	assert.Equal(t, 5*38+4*2, l.contentW)
	assert.Equal(t, testHeight-headerRows-footerRows, l.viewH)
}

func TestModel_ArrowKeysAnimateToNextSlide(t *testing.T) {
	m := newTestModel(t, testOptions())

	m.Update(keyMsg(tea.KeyRight))
	assert.Equal(t, "b", m.Value())
	assert.Equal(t, float64(-testPitch), m.host.target)
	require.True(t, m.host.animating())
	assert.Equal(t, 0.0, m.host.offset)

	m.Update(animFrameMsg{id: m.host.anim.id})
	assert.InDelta(t, -float64(testPitch)/animFrames, m.host.offset, 0.001)

	settle(m)
	assert.Equal(t, float64(-testPitch), m.host.offset)

	m.Update(keyMsg(tea.KeyLeft))
	assert.Equal(t, "a", m.Value())
}

func TestModel_StaleAnimationFramesAreIgnored(t *testing.T) {
	m := newTestModel(t, testOptions())

	m.Update(keyMsg(tea.KeyRight))
	stale := m.host.anim.id
	m.Update(keyMsg(tea.KeyRight))
	require.NotEqual(t, stale, m.host.anim.id)

	_, cmd := m.Update(animFrameMsg{id: stale})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.host.anim.frame)
}

func TestModel_HomeEndAndClamp(t *testing.T) {
	m := newTestModel(t, testOptions())

	m.Update(keyMsg(tea.KeyLeft))
	assert.Equal(t, "a", m.Value(), "no rewind clamps at the first slide")

	m.Update(keyMsg(tea.KeyEnd))
	assert.Equal(t, "e", m.Value())
	m.Update(keyMsg(tea.KeyRight))
	assert.Equal(t, "e", m.Value())

	m.Update(keyMsg(tea.KeyHome))
	assert.Equal(t, "a", m.Value())
}

func TestModel_RewindWrapsKeyboard(t *testing.T) {
	opts := testOptions()
	opts.Rewind = true
	m := newTestModel(t, opts)

	m.Update(keyMsg(tea.KeyLeft))
	assert.Equal(t, "e", m.Value())
	m.Update(keyMsg(tea.KeyRight))
	assert.Equal(t, "a", m.Value())
}

func TestModel_VerticalUsesUpDown(t *testing.T) {
	opts := testOptions()
	opts.Orientation = carousel.Vertical
	opts.MaxItemHeight = 6
	m := newTestModel(t, opts)

	l := m.layout()
	require.True(t, l.vertical)
	assert.Equal(t, 6, l.slideH)

	m.Update(keyMsg(tea.KeyRight))
	assert.Equal(t, "a", m.Value())
	m.Update(keyMsg(tea.KeyDown))
	assert.Equal(t, "b", m.Value())
	settle(m)
	assert.Equal(t, float64(-(6 + 2)), m.host.offset)
	m.Update(keyMsg(tea.KeyUp))
	assert.Equal(t, "a", m.Value())
}

func TestModel_TabCyclesRenderedDots(t *testing.T) {
	opts := testOptions()
	opts.ItemsPerView = 2
	opts.Move = 2
	m := newTestModel(t, opts)

	// stops are 0, 2, 3
	m.Update(keyMsg(tea.KeyTab))
	assert.Equal(t, 2, m.focus)
	assert.Equal(t, "c", m.Value())

	m.Update(keyMsg(tea.KeyTab))
	assert.Equal(t, 3, m.focus)
	assert.Equal(t, "d", m.Value())

	m.Update(keyMsg(tea.KeyTab))
	assert.Equal(t, 0, m.focus)
	assert.Equal(t, "a", m.Value())

	m.Update(keyMsg(tea.KeyShiftTab))
	assert.Equal(t, 3, m.focus)
}

func TestModel_EnterActivatesFocusedDot(t *testing.T) {
	m := newTestModel(t, testOptions())
	m.focus = 3

	m.Update(keyMsg(tea.KeyEnter))
	assert.Equal(t, "d", m.Value())
}

func TestModel_MouseDragSnapsToClosestSlide(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()
	snapped := make(chan eventbus.DragSnappedEvent, 1)
	bus.Subscribe(eventbus.EventDragSnapped, func(ev eventbus.DomainEvent) {
		snapped <- ev.(eventbus.DragSnappedEvent)
	})

	m := NewModel(bus, testDeck(), testOptions())
	m.SetGlamourStyle("notty")
	m.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})

	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 60, 5))
	require.Equal(t, carousel.Dragging, m.drag.Phase())
	require.NotNil(t, m.host.capture)

	// 40 cells at pointer sensitivity 1.5
	m.Update(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 20, 5))
	assert.Equal(t, -60.0, m.host.offset)
	assert.Equal(t, "a", m.Value())

	m.Update(mouse(tea.MouseActionRelease, tea.MouseButtonLeft, 20, 5))
	assert.Equal(t, carousel.Idle, m.drag.Phase())
	assert.Nil(t, m.host.capture)
	assert.Equal(t, "b", m.Value())
	assert.Equal(t, float64(-testPitch), m.host.target)

	select {
	case ev := <-snapped:
		assert.Equal(t, 1, ev.Index)
	case <-time.After(time.Second):
		t.Fatal("no DragSnappedEvent")
	}
}

func TestModel_MotionWithoutCaptureIsIgnored(t *testing.T) {
	m := newTestModel(t, testOptions())

	m.Update(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 20, 5))
	m.Update(mouse(tea.MouseActionRelease, tea.MouseButtonLeft, 20, 5))
	assert.Equal(t, 0.0, m.host.offset)
	assert.Equal(t, "a", m.Value())
}

func TestModel_PressOutsideSlidesDoesNotDrag(t *testing.T) {
	m := newTestModel(t, testOptions())

	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10, 0))
	assert.Equal(t, carousel.Idle, m.drag.Phase())
}

func TestModel_BlurCancelsDrag(t *testing.T) {
	m := newTestModel(t, testOptions())

	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 60, 5))
	m.Update(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 20, 5))
	m.Update(tea.BlurMsg{})

	assert.Equal(t, carousel.Idle, m.drag.Phase())
	assert.Nil(t, m.host.capture)
	assert.Equal(t, "b", m.Value())
}

func TestModel_DragWatchdogReleasesIdleDrag(t *testing.T) {
	opts := testOptions()
	opts.DragTimeout = time.Second
	m := newTestModel(t, opts)

	now := time.Unix(1000, 0)
	m.drag.Now = func() time.Time { return now }

	_, cmd := m.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 60, 5))
	require.NotNil(t, cmd, "watchdog tick scheduled")

	now = now.Add(500 * time.Millisecond)
	_, cmd = m.Update(dragWatchMsg{})
	assert.Equal(t, carousel.Dragging, m.drag.Phase())
	assert.NotNil(t, cmd, "watchdog re-armed")

	now = now.Add(time.Second)
	m.Update(dragWatchMsg{})
	assert.Equal(t, carousel.Idle, m.drag.Phase())
	assert.Nil(t, m.host.capture)
}

func TestModel_WheelStepsWithoutWrapping(t *testing.T) {
	opts := testOptions()
	opts.Mousewheel = true
	opts.Rewind = true
	m := newTestModel(t, opts)

	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonWheelUp, 40, 5))
	assert.Equal(t, "a", m.Value())

	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 40, 5))
	assert.Equal(t, "b", m.Value())
}

func TestModel_WheelDisabledByDefault(t *testing.T) {
	m := newTestModel(t, testOptions())

	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 40, 5))
	assert.Equal(t, "a", m.Value())
}

func TestModel_ClickOnDotActivatesTrigger(t *testing.T) {
	m := newTestModel(t, testOptions())
	l := m.layout()

	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, padX+2*2, m.dotsRow(l)))
	assert.Equal(t, "c", m.Value())
	assert.Equal(t, 2, m.focus)
}

func TestModel_AutoplayAdvancesUntilInterrupted(t *testing.T) {
	opts := testOptions()
	opts.AutoPlayInterval = time.Second
	m := newTestModel(t, opts)

	require.NotNil(t, m.Init())
	require.True(t, m.State().IsAutoplay())

	_, cmd := m.Update(autoplayMsg{seq: m.autoplaySeq})
	assert.Equal(t, "b", m.Value())
	assert.NotNil(t, cmd)

	// a tick from an older schedule is dropped
	m.Update(autoplayMsg{seq: m.autoplaySeq - 1})
	assert.Equal(t, "b", m.Value())

	m.Update(keyMsg(tea.KeyRight))
	assert.False(t, m.State().IsAutoplay())
	assert.Equal(t, "c", m.Value())

	m.Update(autoplayMsg{seq: m.autoplaySeq})
	assert.Equal(t, "c", m.Value())
}

func TestModel_AutoplayStopsAtEndWithoutRewind(t *testing.T) {
	opts := testOptions()
	opts.AutoPlayInterval = time.Second
	opts.Value = "e"
	m := newTestModel(t, opts)

	m.Update(autoplayMsg{seq: m.autoplaySeq})
	assert.Equal(t, "e", m.Value())
	assert.False(t, m.State().IsAutoplay())
}

func TestModel_SpaceTogglesAutoplay(t *testing.T) {
	opts := testOptions()
	opts.AutoPlayInterval = time.Second
	m := newTestModel(t, opts)

	m.Update(keyMsg(tea.KeySpace))
	assert.False(t, m.State().IsAutoplay())

	seq := m.autoplaySeq
	_, cmd := m.Update(keyMsg(tea.KeySpace))
	assert.True(t, m.State().IsAutoplay())
	assert.NotNil(t, cmd)
	assert.Equal(t, seq+1, m.autoplaySeq)
}

func TestModel_SpaceWithoutIntervalReportsStatus(t *testing.T) {
	m := newTestModel(t, testOptions())

	m.Update(keyMsg(tea.KeySpace))
	assert.False(t, m.State().IsAutoplay())
	assert.Contains(t, m.status, "autoplay_interval_ms")
}

func TestModel_ReloadAppliesOptionsInPlace(t *testing.T) {
	m := newTestModel(t, testOptions())
	m.Update(keyMsg(tea.KeyRight))
	state := m.State()

	opts := testOptions()
	opts.ItemsPerView = 2
	deck := testDeck()
	deck.Slides[1].Title = "Renamed"
	m.Update(DeckReloadedMsg{Deck: deck, Options: opts})

	assert.Same(t, state, m.State())
	assert.Equal(t, 2, m.State().Options().ItemsPerView)
	assert.Equal(t, "b", m.Value())
	assert.Equal(t, "Renamed", m.slides[1].Title)
}

func TestModel_ReloadRebuildsOnNewSlides(t *testing.T) {
	m := newTestModel(t, testOptions())
	m.Update(keyMsg(tea.KeyRight))
	old := m.State()

	deck := testDeck()
	deck.Slides = append(deck.Slides, domain.Slide{Value: "f", Title: "Slide F"})
	m.Update(DeckReloadedMsg{Deck: deck, Options: testOptions()})

	assert.NotSame(t, old, m.State())
	assert.Equal(t, 6, m.State().ItemCount())
	assert.Equal(t, "b", m.Value(), "current value survives the rebuild")
	assert.True(t, m.mounted)
	assert.Equal(t, float64(-testPitch), m.host.offset)

	deck.Slides = deck.Slides[2:]
	m.Update(DeckReloadedMsg{Deck: deck, Options: testOptions()})
	assert.Equal(t, "c", m.Value(), "falls back to the first slide")
}

func TestModel_ReloadRebuildKeepsAutoplayTicking(t *testing.T) {
	opts := testOptions()
	opts.AutoPlayInterval = time.Second
	m := newTestModel(t, opts)

	// a tick that arrives after the user took over stops nothing further
	m.Update(keyMsg(tea.KeyRight))
	m.Update(autoplayMsg{seq: m.autoplaySeq})
	require.False(t, m.State().IsAutoplay())

	deck := testDeck()
	deck.Slides = append(deck.Slides, domain.Slide{Value: "f", Title: "Slide F"})
	seq := m.autoplaySeq
	_, cmd := m.Update(DeckReloadedMsg{Deck: deck, Options: opts})

	require.True(t, m.State().IsAutoplay())
	assert.NotNil(t, cmd, "a tick is scheduled for the new carousel")
	assert.Equal(t, seq+1, m.autoplaySeq)

	m.Update(autoplayMsg{seq: m.autoplaySeq})
	assert.Equal(t, "c", m.Value())
	assert.Contains(t, ansi.Strip(m.View()), "playing")
}

func TestModel_ReloadFallsBackToFirstSlide(t *testing.T) {
	m := newTestModel(t, testOptions())
	m.Update(keyMsg(tea.KeyRight))
	require.Equal(t, "b", m.Value())

	opts := testOptions()
	opts.Value = "d"
	deck := testDeck()
	deck.Slides = append(deck.Slides[:1:1], deck.Slides[2:]...)
	m.Update(DeckReloadedMsg{Deck: deck, Options: opts})

	assert.Equal(t, 0, m.State().CurrentIndex())
	assert.Equal(t, "a", m.Value(), "the configured start value is not reused")
	assert.Equal(t, 0.0, m.host.offset)
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, testOptions())

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Test deck")
	assert.Contains(t, view, "Slide A")
	assert.Contains(t, view, "Body of a")
	assert.NotContains(t, view, "Slide B", "second slide is outside the viewport")
	assert.Contains(t, view, "1/5")
	assert.Contains(t, view, "●")
	assert.Contains(t, view, "○")

	m.Update(keyMsg(tea.KeyEnd))
	settle(m)
	view = ansi.Strip(m.View())
	assert.Contains(t, view, "Slide E")
	assert.Contains(t, view, "5/5")
}

func TestModel_ViewShowsNeighboursMidDrag(t *testing.T) {
	m := newTestModel(t, testOptions())

	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 60, 5))
	m.Update(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 40, 5))

	// the surface sits 30 cells in, so the second slide's title is on screen
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Slide B")
	assert.Contains(t, view, "dragging")
}

func TestModel_ViewTooSmall(t *testing.T) {
	m := NewModel(nil, testDeck(), testOptions())
	m.Update(tea.WindowSizeMsg{Width: 5, Height: 5})

	assert.False(t, m.mounted)
	assert.Contains(t, m.View(), "window too small")
}

func TestModel_ResizeRealignsCurrentSlide(t *testing.T) {
	m := newTestModel(t, testOptions())
	m.Update(keyMsg(tea.KeyRight))
	settle(m)

	m.Update(tea.WindowSizeMsg{Width: 62, Height: testHeight})
	settle(m)
	// 60 wide slides plus the gap
	assert.Equal(t, -62.0, m.host.offset)
	assert.False(t, m.host.transition)
}

func TestModel_OpenWithoutProgramReportsError(t *testing.T) {
	m := newTestModel(t, testOptions())

	_, cmd := m.Update(runeMsg('o'))
	assert.Nil(t, cmd)
	assert.True(t, m.statusErr)
}

func TestModel_QuitAndHelp(t *testing.T) {
	m := newTestModel(t, testOptions())

	m.Update(runeMsg('?'))
	assert.True(t, m.help.ShowAll)

	_, cmd := m.Update(runeMsg('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_PagerPausesRendering(t *testing.T) {
	m := newTestModel(t, testOptions())

	m.Update(pauseRenderingMsg{})
	assert.Empty(t, m.View())
	m.Update(resumeRenderingMsg{})
	assert.NotEmpty(t, m.View())
}
