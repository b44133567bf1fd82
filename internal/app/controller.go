package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/spacefolio/internal/engine/camera"
	"github.com/Faultbox/spacefolio/internal/engine/input"
	"github.com/Faultbox/spacefolio/internal/engine/scene"
)

// pageKeyNotches is how far PageUp/PageDown move the page, in wheel notches.
const pageKeyNotches = 5

type action int

const (
	actionNone action = iota
	actionQuit
	actionScreenshot
)

// controller routes host events to the scene between ticks.
type controller struct {
	scene *scene.Context
	// orbit is nil unless orbit control is enabled.
	orbit *camera.OrbitControls
	page  scene.Page

	trackResize bool
	// resize is told about tracked viewport changes (the renderer).
	resize func(width, height int)
}

// handle applies one event and reports what the caller should do next.
func (c *controller) handle(e input.Event) action {
	switch e.Type {
	case input.EventQuit:
		return actionQuit

	case input.EventKeyDown:
		switch e.Key {
		case sdl.SCANCODE_ESCAPE:
			return actionQuit
		case sdl.SCANCODE_F12:
			return actionScreenshot
		case sdl.SCANCODE_PAGEDOWN:
			c.scrollPage(pageKeyNotches)
		case sdl.SCANCODE_PAGEUP:
			c.scrollPage(-pageKeyNotches)
		case sdl.SCANCODE_HOME:
			c.scrollHome()
		}

	case input.EventMouseDown:
		if c.orbit != nil && e.Button == sdl.BUTTON_LEFT {
			c.orbit.PointerDown(int32(e.MouseX), int32(e.MouseY))
		}
	case input.EventMouseMove:
		if c.orbit != nil {
			c.orbit.PointerMove(int32(e.MouseX), int32(e.MouseY))
		}
	case input.EventMouseUp:
		if c.orbit != nil && e.Button == sdl.BUTTON_LEFT {
			c.orbit.PointerUp()
		}

	case input.EventWheel:
		// With scroll binding the wheel belongs to the page; zoom needs Ctrl.
		if c.scrollBound() && !e.Ctrl {
			// Wheel up moves toward the top of the page.
			c.scrollPage(-e.WheelY)
		} else if c.orbit != nil {
			c.orbit.HandleZoom(e.WheelY)
		}

	case input.EventWindowResize:
		if c.trackResize && e.Width > 0 && e.Height > 0 {
			c.scene.Resize(e.Width, e.Height)
			if c.resize != nil {
				c.resize(e.Width, e.Height)
			}
		}
	}
	return actionNone
}

func (c *controller) scrollBound() bool {
	return c.scene.Capabilities().ScrollBinding && c.scene.Scroll != nil
}

func (c *controller) scrollPage(notches float32) {
	if !c.scrollBound() {
		return
	}
	c.scene.ScrollTo(c.page.Scroll(notches))
}

func (c *controller) scrollHome() {
	if !c.scrollBound() {
		return
	}
	c.page.Offset = 0
	c.scene.ScrollTo(0)
}
