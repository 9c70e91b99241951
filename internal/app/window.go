package app

import (
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"gfxlab/internal/glx"
)

func init() {
	// GLFW event handling and GL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

// Config selects per-demo window behavior.
type Config struct {
	Title   string
	Width   int
	Height  int
	VSync   bool
	Samples int // MSAA samples; 0 leaves multisampling off
}

// NewWindow initializes GLFW, creates a 4.1 core-profile window, makes its
// context current, and loads the GL function pointers. The caller owns the
// returned window and must call glfw.Terminate when done.
func NewWindow(cfg Config) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &glx.InitError{Stage: "glfw", Err: err}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if cfg.Samples > 0 {
		glfw.WindowHint(glfw.Samples, cfg.Samples)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &glx.InitError{Stage: "window", Err: err}
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, &glx.InitError{Stage: "gl", Err: err}
	}
	return window, nil
}
