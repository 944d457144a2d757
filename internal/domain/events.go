package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventValueChanged    EventType = "ValueChanged"
	EventAutoplayChanged EventType = "AutoplayChanged"
	EventDragStarted     EventType = "DragStarted"
	EventDragSnapped     EventType = "DragSnapped"
	EventError           EventType = "Error"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
	EventConfigChanged   EventType = "ConfigChanged"
	EventSlideOpened     EventType = "SlideOpened"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ValueChangedEvent is emitted after a new current value is committed
type ValueChangedEvent struct {
	CarouselID string
	Value      string
	Index      int
}

func (e ValueChangedEvent) Type() EventType { return EventValueChanged }

// AutoplayChangedEvent is emitted when autoplay is started, paused or interrupted
type AutoplayChangedEvent struct {
	CarouselID string
	Playing    bool
}

func (e AutoplayChangedEvent) Type() EventType { return EventAutoplayChanged }

// DragStartedEvent is emitted when a pointer or touch drag begins
type DragStartedEvent struct {
	CarouselID string
}

func (e DragStartedEvent) Type() EventType { return EventDragStarted }

// DragSnappedEvent is emitted when a drag is released onto an item
type DragSnappedEvent struct {
	CarouselID string
	Index      int
}

func (e DragSnappedEvent) Type() EventType { return EventDragSnapped }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when a deck file is loaded
type ConfigLoadedEvent struct {
	Path   string
	Slides int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when a deck file is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when the watched deck file was reloaded
type ConfigChangedEvent struct {
	Path   string
	Slides int
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// SlideOpenedEvent is emitted when a slide is opened in the pager
type SlideOpenedEvent struct {
	Value string
}

func (e SlideOpenedEvent) Type() EventType { return EventSlideOpened }
