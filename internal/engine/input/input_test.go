package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

// queue replays a fixed list of SDL events, then reports an empty queue.
func queue(events ...sdl.Event) Source {
	return func() sdl.Event {
		if len(events) == 0 {
			return nil
		}
		e := events[0]
		events = events[1:]
		return e
	}
}

func noMods() sdl.Keymod   { return sdl.KMOD_NONE }
func ctrlHeld() sdl.Keymod { return sdl.KMOD_LCTRL }

func TestUpdateConvertsEvents(t *testing.T) {
	in := NewWithSource(queue(
		&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 10, Y: 20},
		&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 15, Y: 25},
		&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 15, Y: 25},
		&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_PAGEDOWN}},
		&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 1024, Data2: 768},
		&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED},
	), noMods)

	if in.Update() {
		t.Fatal("no quit event was queued")
	}

	want := []EventType{EventMouseDown, EventMouseMove, EventMouseUp, EventKeyDown, EventWindowResize}
	got := in.Events()
	if len(got) != len(want) {
		t.Fatalf("events = %+v, want types %v", got, want)
	}
	for idx, typ := range want {
		if got[idx].Type != typ {
			t.Errorf("event %d type = %v, want %v", idx, got[idx].Type, typ)
		}
	}
	if got[0].MouseX != 10 || got[0].MouseY != 20 || got[0].Button != sdl.BUTTON_LEFT {
		t.Errorf("mouse down = %+v", got[0])
	}
	if got[4].Width != 1024 || got[4].Height != 768 {
		t.Errorf("resize = %+v", got[4])
	}
	if got[3].Key != sdl.SCANCODE_PAGEDOWN {
		t.Errorf("key down = %+v", got[3])
	}
}

func TestQuitDrainsQueue(t *testing.T) {
	in := NewWithSource(queue(
		&sdl.QuitEvent{Type: sdl.QUIT},
		&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 1, Y: 1},
	), noMods)

	if !in.Update() {
		t.Fatal("expected quit")
	}
	if n := len(in.Events()); n != 2 {
		t.Errorf("events after quit = %d, want the whole queue (2)", n)
	}
}

func TestWheel(t *testing.T) {
	tests := []struct {
		name     string
		event    *sdl.MouseWheelEvent
		mods     func() sdl.Keymod
		wantY    float32
		wantCtrl bool
		wantNone bool
	}{
		{name: "up", event: &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1}, mods: noMods, wantY: 1},
		{name: "down", event: &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: -2}, mods: noMods, wantY: -2},
		{name: "flipped", event: &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1, Direction: sdl.MOUSEWHEEL_FLIPPED}, mods: noMods, wantY: -1},
		{name: "ctrl", event: &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1}, mods: ctrlHeld, wantY: 1, wantCtrl: true},
		{name: "horizontal only", event: &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, X: 3}, mods: noMods, wantNone: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewWithSource(queue(tt.event), tt.mods)
			in.Update()
			events := in.Events()
			if tt.wantNone {
				if len(events) != 0 {
					t.Errorf("events = %+v, want none", events)
				}
				return
			}
			if len(events) != 1 || events[0].Type != EventWheel {
				t.Fatalf("events = %+v", events)
			}
			if events[0].WheelY != tt.wantY || events[0].Ctrl != tt.wantCtrl {
				t.Errorf("wheel = %+v, want y=%v ctrl=%v", events[0], tt.wantY, tt.wantCtrl)
			}
		})
	}
}

func TestUpdateClearsPreviousFrame(t *testing.T) {
	in := NewWithSource(queue(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}}), noMods)
	in.Update()
	if e := in.Events(); len(e) != 1 || e[0].Key != sdl.SCANCODE_F12 {
		t.Fatalf("events = %+v, want F12", e)
	}
	in.Update()
	if len(in.Events()) != 0 {
		t.Error("events carried over to the next frame")
	}
}
