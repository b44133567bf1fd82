// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	// WheelY is positive when scrolling away from the user (up), in notches.
	WheelY float32
	// Ctrl is set when a control key was held.
	Ctrl bool
}

// Source yields raw SDL events; sdl.PollEvent in production.
type Source func() sdl.Event

// Input handles all input processing.
type Input struct {
	events []Event
	poll   Source
	mods   func() sdl.Keymod
}

// New creates a new input handler reading from the SDL event queue.
func New() *Input {
	return NewWithSource(sdl.PollEvent, sdl.GetModState)
}

// NewWithSource creates an input handler over an arbitrary event source.
func NewWithSource(poll Source, mods func() sdl.Keymod) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		poll:   poll,
		mods:   mods,
	}
}

// Update drains pending events and converts them.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := i.poll(); event != nil; event = i.poll() {
		if e, ok := i.convert(event); ok {
			i.events = append(i.events, e)
			if e.Type == EventQuit {
				quit = true
			}
		}
	}
	return quit
}

func (i *Input) convert(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		ctrl := e.Keysym.Mod&sdl.KMOD_CTRL != 0
		switch e.Type {
		case sdl.KEYDOWN:
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode, Ctrl: ctrl}, true
		case sdl.KEYUP:
			return Event{Type: EventKeyUp, Key: e.Keysym.Scancode, Ctrl: ctrl}, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
		}, true

	case *sdl.MouseButtonEvent:
		ev := Event{
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			ev.Type = EventMouseDown
			return ev, true
		case sdl.MOUSEBUTTONUP:
			ev.Type = EventMouseUp
			return ev, true
		}

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		if y == 0 {
			return Event{}, false
		}
		return Event{
			Type:   EventWheel,
			WheelY: y,
			Ctrl:   i.mods != nil && i.mods()&sdl.KMOD_CTRL != 0,
		}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
