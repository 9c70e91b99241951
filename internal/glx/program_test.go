package glx

import (
	"errors"
	"runtime"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() { runtime.LockOSThread() }

// newTestContext creates a hidden window with a current GL context, or skips
// the test on machines without a display.
func newTestContext(t *testing.T) {
	t.Helper()
	if err := glfw.Init(); err != nil {
		t.Skipf("glfw init failed: %v", err)
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(64, 64, "test", nil, nil)
	if err != nil {
		glfw.Terminate()
		t.Skipf("window creation failed: %v", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		t.Skipf("gl init failed: %v", err)
	}
	t.Cleanup(func() {
		win.Destroy()
		glfw.Terminate()
	})
}

const testVertexSrc = `#version 410 core
layout (location = 0) in vec2 in_position;
uniform vec2 shift;
void main() {
    gl_Position = vec4(in_position + shift, 0.0, 1.0);
}`

const testFragmentSrc = `#version 410 core
uniform vec3 tint;
out vec4 out_color;
void main() {
    out_color = vec4(tint, 1.0);
}`

func TestBuildProgram(t *testing.T) {
	newTestContext(t)

	p, err := BuildProgram(Vertex(testVertexSrc), Fragment(testFragmentSrc))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	defer p.Delete()

	if p.ID() == 0 {
		t.Fatal("program has no handle")
	}
	if p.Uniform("shift") < 0 {
		t.Error("shift uniform not resolved")
	}
	if p.Uniform("tint") < 0 {
		t.Error("tint uniform not resolved")
	}
	if p.Uniform("no_such_uniform") != -1 {
		t.Error("unknown uniform should report -1")
	}
}

func TestBuildProgramCompileError(t *testing.T) {
	newTestContext(t)

	_, err := BuildProgram(Vertex("#version 410 core\nthis is not glsl"))
	var cerr *ShaderCompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected compile error, got %v", err)
	}
	if cerr.Stage != "vertex" {
		t.Errorf("stage = %q", cerr.Stage)
	}
	if cerr.Log == "" {
		t.Error("compile error carries no driver log")
	}
}

func TestMeshRoundTrip(t *testing.T) {
	newTestContext(t)

	m := NewMesh([]float32{
		-1, -1, 0, 0,
		1, -1, 1, 0,
		0, 1, 0.5, 1,
	}, 4, []Attrib{
		{Loc: 0, Components: 2, Offset: 0},
		{Loc: 1, Components: 2, Offset: 8},
	}, gl.STATIC_DRAW)
	defer m.Delete()

	m.SetIndices([]uint32{0, 1, 2})
	if got := gl.GetError(); got != gl.NO_ERROR {
		t.Fatalf("gl error after mesh setup: 0x%x", got)
	}
}

func TestShadowTargetComplete(t *testing.T) {
	newTestContext(t)

	rt, err := NewShadowTarget(256)
	if err != nil {
		t.Fatalf("shadow target: %v", err)
	}
	defer rt.Delete()

	rt.Bind()
	gl.ClearColor(1, 1, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	rt.Unbind(64, 64)
	if got := gl.GetError(); got != gl.NO_ERROR {
		t.Fatalf("gl error after render-target use: 0x%x", got)
	}
}
