package app

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Frame carries the per-iteration state the loop body needs: delta time,
// accumulated time, and the current framebuffer size. It is recomputed every
// iteration and owned solely by the loop.
type Frame struct {
	Window *glfw.Window
	Input  *Input

	DT   float64 // seconds since the previous iteration, clamped
	Time float64 // accumulated since the loop started

	FbW, FbH int
}

// Loop drives a demo: Running until the window is closed or Stop is called,
// then Stopped. One iteration drains events, advances time, hands the Frame
// to the body, and presents.
type Loop struct {
	window  *glfw.Window
	input   *Input
	frame   Frame
	stopped bool
}

func NewLoop(window *glfw.Window) *Loop {
	return &Loop{window: window, input: NewInput()}
}

// Stop requests a transition to Stopped after the current iteration.
func (l *Loop) Stop() { l.stopped = true }

// Run iterates until a quit signal arrives. An error from the body stops the
// loop and propagates to the caller. The viewport tracks the framebuffer size
// synchronously within the same iteration, so resizes need no callback.
func (l *Loop) Run(body func(*Frame) error) error {
	last := glfw.GetTime()
	for !l.stopped && !l.window.ShouldClose() {
		glfw.PollEvents()
		if l.window.GetKey(glfw.KeyEscape) == glfw.Press {
			l.window.SetShouldClose(true)
			continue
		}

		now := glfw.GetTime()
		dt := now - last
		last = now
		// A long stall (debugger, window drag) should not teleport the
		// simulation.
		if dt > 0.1 {
			dt = 0.1
		}

		fbW, fbH := l.window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		gl.Viewport(0, 0, int32(fbW), int32(fbH))

		l.frame = Frame{
			Window: l.window,
			Input:  l.input,
			DT:     dt,
			Time:   l.frame.Time + dt,
			FbW:    fbW,
			FbH:    fbH,
		}
		if err := body(&l.frame); err != nil {
			return err
		}
		l.window.SwapBuffers()
	}
	return nil
}
