package app

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input tracks previous key/button state for edge-triggered queries.
type Input struct {
	prevKeys  map[glfw.Key]bool
	prevMouse map[glfw.MouseButton]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys:  make(map[glfw.Key]bool),
		prevMouse: make(map[glfw.MouseButton]bool),
	}
}

// Held reports whether a key is currently down.
func (in *Input) Held(window *glfw.Window, key glfw.Key) bool {
	return window.GetKey(key) == glfw.Press
}

// JustPressed reports a down edge since the previous query of this key.
func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// JustClicked reports a down edge since the previous query of this button.
func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jc := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jc
}

// CursorFB returns the cursor position in framebuffer pixels. GLFW reports
// the cursor in window coordinates, which differ from framebuffer pixels on
// HiDPI displays.
func (in *Input) CursorFB(window *glfw.Window, fbW, fbH int) (float64, float64) {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	if winW <= 0 || winH <= 0 {
		return cx, cy
	}
	return cx * float64(fbW) / float64(winW), cy * float64(fbH) / float64(winH)
}

// Axis returns -1, 0 or +1 from a pair of opposing keys.
func (in *Input) Axis(window *glfw.Window, neg, pos glfw.Key) float64 {
	v := 0.0
	if window.GetKey(neg) == glfw.Press {
		v -= 1
	}
	if window.GetKey(pos) == glfw.Press {
		v += 1
	}
	return v
}
