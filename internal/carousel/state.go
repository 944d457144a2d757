package carousel

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ChangeKind identifies what a Change notification is about.
type ChangeKind int

const (
	ChangeValue ChangeKind = iota
	ChangeOptions
	ChangeAutoplay
)

// Change is delivered to subscribers after the state mutates.
type Change struct {
	Kind     ChangeKind
	Value    string
	Autoplay bool
}

// State is the shared context of one carousel. Items and triggers register
// into it, and every derived read (current index, stops, visibility) is
// recomputed from its primitive fields on demand.
//
// State is not safe for concurrent use; all calls must come from the
// host's event loop.
type State struct {
	id     string
	opts   Options
	logger *log.Logger
	host   Host

	items    []*Item
	values   []string
	triggers []*Trigger

	nextItem    int
	nextTrigger int

	current  string
	start    string
	bound    bool
	autoplay bool
	scroller bool

	subs   map[int]func(Change)
	nextID int
}

// New creates the state for one carousel instance. The initial value is
// assigned here and never reported through OnChange.
func New(opts Options) *State {
	opts = opts.normalized()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &State{
		id:       uuid.NewString(),
		opts:     opts,
		logger:   logger,
		current:  opts.Value,
		bound:    opts.Value != "",
		autoplay: opts.AutoPlayInterval > 0,
		subs:     make(map[int]func(Change)),
	}
	if s.current == "" {
		s.current = "0"
	}
	s.start = s.current
	return s
}

// ID returns the instance identifier used to build element ids.
func (s *State) ID() string { return s.id }

// SetHost sets the host used for focus changes made by keyboard navigation.
func (s *State) SetHost(h Host) { s.host = h }

// Options returns the normalized options.
func (s *State) Options() Options { return s.opts }

// SetOptions replaces the configuration. Registries and the current value
// are kept; callbacks left nil keep their previous value.
func (s *State) SetOptions(opts Options) {
	if opts.OnChange == nil {
		opts.OnChange = s.opts.OnChange
	}
	if opts.Logger == nil {
		opts.Logger = s.opts.Logger
	}
	s.opts = opts.normalized()
	if s.opts.AutoPlayInterval <= 0 {
		s.autoplay = false
	}
	s.logger.Debug("options updated", "perView", s.opts.ItemsPerView, "move", s.opts.Move, "align", s.opts.Align)
	s.notify(Change{Kind: ChangeOptions, Value: s.current, Autoplay: s.autoplay})
}

// Subscribe registers fn for change notifications and returns a func that
// removes it.
func (s *State) Subscribe(fn func(Change)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

func (s *State) notify(c Change) {
	// ids are monotonic, so iterate in subscription order
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.subs[id]; ok {
			fn(c)
		}
	}
}

// RegisterItem assigns the next item ordinal. An empty value defaults to the
// stringified ordinal.
func (s *State) RegisterItem(value string, surface Ref) *Item {
	ordinal := s.nextItem
	s.nextItem++
	if value == "" {
		value = strconv.Itoa(ordinal)
	}

	item := &Item{state: s, ordinal: ordinal, value: value, surface: surface, registered: true}
	for len(s.items) <= ordinal {
		s.items = append(s.items, nil)
	}
	s.items[ordinal] = item
	for len(s.values) <= ordinal {
		s.values = append(s.values, strconv.Itoa(len(s.values)))
	}
	s.values[ordinal] = value

	// Without a bound value the first slide becomes current during mount.
	if ordinal == 0 && !s.bound {
		s.current = value
		s.start = value
	}

	s.logger.Debug("item registered", "ordinal", ordinal, "value", value)
	return item
}

// RegisterTrigger assigns the next trigger ordinal.
func (s *State) RegisterTrigger(surface Ref) *Trigger {
	ordinal := s.nextTrigger
	s.nextTrigger++

	trigger := &Trigger{state: s, ordinal: ordinal, surface: surface, registered: true}
	for len(s.triggers) <= ordinal {
		s.triggers = append(s.triggers, nil)
	}
	s.triggers[ordinal] = trigger
	return trigger
}

// Item returns the registered item at ordinal, or nil.
func (s *State) Item(ordinal int) *Item {
	if ordinal < 0 || ordinal >= len(s.items) {
		return nil
	}
	return s.items[ordinal]
}

// Trigger returns the registered trigger at ordinal, or nil.
func (s *State) Trigger(ordinal int) *Trigger {
	if ordinal < 0 || ordinal >= len(s.triggers) {
		return nil
	}
	return s.triggers[ordinal]
}

// ItemCount returns the size of the item registry. Slots left by detached
// items still count.
func (s *State) ItemCount() int { return len(s.items) }

// TriggerCount returns the size of the trigger registry.
func (s *State) TriggerCount() int { return len(s.triggers) }

// Values returns a copy of the item values in ordinal order.
func (s *State) Values() []string {
	return append([]string(nil), s.values...)
}

// CurrentValue returns the selected slide identity.
func (s *State) CurrentValue() string { return s.current }

// StartValue returns the value that was current at initialization.
func (s *State) StartValue() string { return s.start }

// CurrentIndex derives the current index from the current value. It is 0
// before any item registers and always within [0, ItemCount) after.
func (s *State) CurrentIndex() int {
	n := len(s.items)
	if n == 0 {
		return 0
	}
	idx := IndexFromValue(s.current, s.values)
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// SetCurrentValue commits a new current value. OnChange and subscribers run
// only when the value actually changes.
func (s *State) SetCurrentValue(value string) {
	s.bound = true
	if value == s.current {
		return
	}
	s.current = value
	s.logger.Debug("value committed", "value", value, "index", s.CurrentIndex())
	if s.opts.OnChange != nil {
		s.opts.OnChange(value)
	}
	s.notify(Change{Kind: ChangeValue, Value: value, Autoplay: s.autoplay})
}

// ValidStopIndexes returns the indices the carousel may rest on.
func (s *State) ValidStopIndexes() []int {
	return StopIndexes(len(s.items), s.opts.ItemsPerView, s.opts.Move)
}

// ValidStopValues returns the values of ValidStopIndexes.
func (s *State) ValidStopValues() []string {
	stops := s.ValidStopIndexes()
	values := make([]string, len(stops))
	for i, idx := range stops {
		values[i] = ValueFromIndex(idx, s.values)
	}
	return values
}

// Next moves to the next valid stop after the current index. At the end it
// wraps when rewind is set and stays otherwise.
func (s *State) Next() { s.step(1, s.opts.Rewind) }

// Prev moves to the previous valid stop before the current index.
func (s *State) Prev() { s.step(-1, s.opts.Rewind) }

// step moves one valid stop in dir from the current index.
func (s *State) step(dir int, wrap bool) {
	stops := s.ValidStopIndexes()
	if len(stops) == 0 {
		return
	}
	idx := s.CurrentIndex()
	target := -1
	if dir > 0 {
		for _, stop := range stops {
			if stop > idx {
				target = stop
				break
			}
		}
		if target < 0 {
			target = stops[len(stops)-1]
			if wrap {
				target = stops[0]
			}
		}
	} else {
		for i := len(stops) - 1; i >= 0; i-- {
			if stops[i] < idx {
				target = stops[i]
				break
			}
		}
		if target < 0 {
			target = stops[0]
			if wrap {
				target = stops[len(stops)-1]
			}
		}
	}
	s.SetCurrentValue(ValueFromIndex(target, s.values))
}

// Orientation is horizontal unless a max item height is configured.
func (s *State) Orientation() Orientation {
	if s.opts.MaxItemHeight <= 0 {
		return Horizontal
	}
	return s.opts.Orientation
}

// Axis returns the translation axis for the orientation.
func (s *State) Axis() Axis {
	if s.Orientation() == Vertical {
		return AxisY
	}
	return AxisX
}

// Alignment returns the configured alignment.
func (s *State) Alignment() Alignment { return s.opts.Align }

// IsAutoplay reports whether autoplay may advance the carousel.
func (s *State) IsAutoplay() bool { return s.autoplay }

// SetAutoplay turns autoplay on or off. It cannot be turned on without an
// interval.
func (s *State) SetAutoplay(on bool) {
	if on && s.opts.AutoPlayInterval <= 0 {
		return
	}
	if s.autoplay == on {
		return
	}
	s.autoplay = on
	s.notify(Change{Kind: ChangeAutoplay, Value: s.current, Autoplay: on})
}

// InterruptAutoplay stops autoplay in response to user input.
func (s *State) InterruptAutoplay() {
	if !s.autoplay {
		return
	}
	s.logger.Debug("autoplay interrupted")
	s.SetAutoplay(false)
}

// IsScroller reports whether a scroll surface is mounted.
func (s *State) IsScroller() bool { return s.scroller }

func (s *State) setScroller(on bool) { s.scroller = on }
