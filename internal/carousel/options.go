package carousel

import (
	"time"

	"github.com/charmbracelet/log"
)

// Alignment is where the active item sits inside the viewport.
type Alignment string

const (
	AlignStart  Alignment = "start"
	AlignCenter Alignment = "center"
	AlignEnd    Alignment = "end"
)

// Valid reports whether a is a known alignment.
func (a Alignment) Valid() bool {
	switch a {
	case AlignStart, AlignCenter, AlignEnd:
		return true
	}
	return false
}

// Orientation is the scroll axis of the carousel.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool {
	return o == Horizontal || o == Vertical
}

// Sensitivity holds the drag speed multipliers per input source.
type Sensitivity struct {
	Pointer float64
	Touch   float64
}

// Default option values.
const (
	DefaultItemsPerView = 1
	DefaultMove         = 1
	DefaultPointer      = 1.5
	DefaultTouch        = 1.25
)

// Options configures a carousel. Zero values fall back to the defaults,
// except Draggable which must be set explicitly (DefaultOptions sets it).
type Options struct {
	// Value is the initial current value. Empty means "0".
	Value string

	ItemsPerView int
	Move         int
	Gap          float64
	Align        Alignment
	Orientation  Orientation
	// MaxItemHeight enables the vertical orientation when non-zero.
	MaxItemHeight float64

	Rewind           bool
	Draggable        bool
	Mousewheel       bool
	AutoPlayInterval time.Duration
	Sensitivity      Sensitivity

	// DragTimeout force-releases a drag that received no input for this long.
	// Zero disables the watchdog.
	DragTimeout time.Duration

	// OnChange is called with every committed value after construction.
	OnChange func(value string)

	Logger *log.Logger
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		ItemsPerView: DefaultItemsPerView,
		Move:         DefaultMove,
		Align:        AlignStart,
		Orientation:  Horizontal,
		Draggable:    true,
		Sensitivity:  Sensitivity{Pointer: DefaultPointer, Touch: DefaultTouch},
	}
}

// normalized fills unset fields with their defaults.
func (o Options) normalized() Options {
	if o.ItemsPerView < 1 {
		o.ItemsPerView = DefaultItemsPerView
	}
	if o.Move < 1 {
		o.Move = DefaultMove
	}
	if o.Gap < 0 {
		o.Gap = 0
	}
	if !o.Align.Valid() {
		o.Align = AlignStart
	}
	if !o.Orientation.Valid() {
		o.Orientation = Horizontal
	}
	if o.Sensitivity.Pointer == 0 {
		o.Sensitivity.Pointer = DefaultPointer
	}
	if o.Sensitivity.Touch == 0 {
		o.Sensitivity.Touch = DefaultTouch
	}
	return o
}
