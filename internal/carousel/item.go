package carousel

import (
	"errors"
	"strconv"
)

var (
	errItemOrdinal    = errors.New("carousel: item cannot find its ordinal")
	errTriggerOrdinal = errors.New("carousel: trigger cannot find its ordinal")
)

// Item is a registered slide. Its ordinal is fixed at registration.
type Item struct {
	state      *State
	ordinal    int
	value      string
	surface    Ref
	registered bool
}

func (i *Item) mustState() *State {
	if i == nil || !i.registered || i.state == nil {
		panic(errItemOrdinal)
	}
	return i.state
}

// Ordinal returns the registration position of the item.
func (i *Item) Ordinal() int {
	i.mustState()
	return i.ordinal
}

// Value returns the item's identity.
func (i *Item) Value() string {
	i.mustState()
	return i.value
}

// Surface returns the host reference used for measurement.
func (i *Item) Surface() Ref { return i.surface }

// ID returns the element id of the item.
func (i *Item) ID() string {
	return i.mustState().id + "-" + i.value
}

// Position returns the 1-based position and the total item count.
func (i *Item) Position() (n, total int) {
	s := i.mustState()
	return i.ordinal + 1, s.ItemCount()
}

// Visibility returns the derived visibility flags of the item.
func (i *Item) Visibility() ItemVisibility {
	return i.mustState().ItemVisibility(i.ordinal)
}

// FocusIn reports that focus entered the item.
func (i *Item) FocusIn() {
	i.mustState().InterruptAutoplay()
}

// Detach clears the item's registry slot. The ordinal is not reused.
func (i *Item) Detach() {
	s := i.mustState()
	if s.items[i.ordinal] == i {
		s.items[i.ordinal] = nil
	}
}

// Trigger is a registered navigation control. Its ordinal addresses the
// raw item index of the page it represents.
type Trigger struct {
	state      *State
	ordinal    int
	surface    Ref
	registered bool
	onKeyDown  []Handler[*KeyEvent]
}

func (t *Trigger) mustState() *State {
	if t == nil || !t.registered || t.state == nil {
		panic(errTriggerOrdinal)
	}
	return t.state
}

// Ordinal returns the registration position of the trigger.
func (t *Trigger) Ordinal() int {
	t.mustState()
	return t.ordinal
}

// Surface returns the host reference used for focus.
func (t *Trigger) Surface() Ref { return t.surface }

// Controls returns the id of the slide the trigger controls.
func (t *Trigger) Controls() string {
	return t.mustState().id + "-" + strconv.Itoa(t.ordinal)
}

// Value returns the value of the item the trigger points at.
func (t *Trigger) Value() string {
	s := t.mustState()
	return ValueFromIndex(t.ordinal, s.values)
}

// Visibility returns the derived flags of the trigger.
func (t *Trigger) Visibility() TriggerVisibility {
	return t.mustState().TriggerVisibility(t.ordinal)
}

// Activate commits the trigger's value, as on click or focus.
func (t *Trigger) Activate() {
	s := t.mustState()
	s.SetCurrentValue(t.Value())
}

// OnKeyDown appends external key handlers. They run after the internal one.
func (t *Trigger) OnKeyDown(handlers ...Handler[*KeyEvent]) {
	t.mustState()
	t.onKeyDown = append(t.onKeyDown, handlers...)
}

// Detach clears the trigger's registry slot. The ordinal is not reused.
func (t *Trigger) Detach() {
	s := t.mustState()
	if s.triggers[t.ordinal] == t {
		s.triggers[t.ordinal] = nil
	}
}
