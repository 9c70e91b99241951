// Curves is an interactive bezier editor. Left click places control points,
// right click removes the last one, and left/right arrows change the
// sampling quality. The control polygon draws solid, the curve draws as an
// animated dashed line.
package main

import (
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"gfxlab/internal/app"
	"gfxlab/internal/geom"
	"gfxlab/internal/glx"
	"gfxlab/internal/sfx"
)

const curveVertSrc = `#version 410 core

uniform mat4 view;

layout (location = 0) in vec2 in_position;
layout (location = 1) in float in_distance;
layout (location = 2) in vec3 in_color;

out vec3 color;
out float dist;

void main() {
    gl_Position = view * vec4(in_position, 0.0, 1.0);
    color = in_color;
    dist = in_distance;
}
` + "\x00"

const curveFragSrc = `#version 410 core

uniform bool dash;
uniform float time;

in vec3 color;
in float dist;

layout (location = 0) out vec4 out_color;

void main() {
    if (dash && mod(dist + time, 40.0) >= 20.0)
        discard;
    out_color = vec4(color, 1.0);
}
` + "\x00"

// Cycling point colors, one per placed control point.
var pointColors = [][3]float32{
	{1, 0.25, 0.25},
	{0.25, 1, 0.25},
	{0.35, 0.55, 1},
}

const strideFloats = 6 // pos2 + dist1 + color3

func controlVerts(ctrl []mgl32.Vec2) []float32 {
	out := make([]float32, 0, len(ctrl)*strideFloats)
	var dist float32
	for i, p := range ctrl {
		if i > 0 {
			dist += p.Sub(ctrl[i-1]).Len()
		}
		c := pointColors[i%len(pointColors)]
		out = append(out, p.X(), p.Y(), dist, c[0], c[1], c[2])
	}
	return out
}

func curveVerts(pts []geom.CurvePoint) []float32 {
	out := make([]float32, 0, len(pts)*strideFloats)
	for _, p := range pts {
		out = append(out, p.Pos.X(), p.Pos.Y(), p.Dist, 0.1, 0.1, 0.1)
	}
	return out
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("curves: ")
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	window, err := app.NewWindow(app.Config{
		Title:   "bezier curves",
		Width:   1024,
		Height:  768,
		VSync:   true,
		Samples: 4,
	})
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	sound, err := sfx.NewSystem()
	if err != nil {
		log.Printf("audio init failed (continuing without sound): %v", err)
	}

	arena := &glx.Arena{}
	defer arena.Release()

	prog, err := glx.BuildProgram(glx.Vertex(curveVertSrc), glx.Fragment(curveFragSrc))
	if err != nil {
		return err
	}
	arena.Track(prog)

	attribs := []glx.Attrib{
		{Loc: 0, Components: 2, Offset: 0},
		{Loc: 1, Components: 1, Offset: 8},
		{Loc: 2, Components: 3, Offset: 12},
	}
	ctrlMesh := glx.NewMesh(nil, strideFloats, attribs, gl.DYNAMIC_DRAW)
	curveMesh := glx.NewMesh(nil, strideFloats, attribs, gl.DYNAMIC_DRAW)
	arena.Track(ctrlMesh, curveMesh)

	gl.ClearColor(0.8, 0.8, 1, 1)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PointSize(10)
	gl.LineWidth(3)

	var ctrl []mgl32.Vec2
	quality := 4
	dirty := false

	loop := app.NewLoop(window)
	return loop.Run(func(f *app.Frame) error {
		if f.Input.JustClicked(f.Window, glfw.MouseButtonLeft) {
			cx, cy := f.Input.CursorFB(f.Window, f.FbW, f.FbH)
			ctrl = append(ctrl, mgl32.Vec2{float32(cx), float32(cy)})
			sound.Click()
			dirty = true
		}
		if f.Input.JustClicked(f.Window, glfw.MouseButtonRight) && len(ctrl) > 0 {
			ctrl = ctrl[:len(ctrl)-1]
			sound.Blip()
			dirty = true
		}
		if f.Input.JustPressed(f.Window, glfw.KeyLeft) && quality > 1 {
			quality--
			sound.Chime()
			dirty = true
		}
		if f.Input.JustPressed(f.Window, glfw.KeyRight) {
			quality++
			sound.Chime()
			dirty = true
		}

		if dirty {
			ctrlMesh.Upload(controlVerts(ctrl))
			curveMesh.Upload(curveVerts(geom.SampleCurve(ctrl, quality)))
			dirty = false
		}

		gl.Clear(gl.COLOR_BUFFER_BIT)
		prog.Use()
		// Pixel coordinates, origin at the top left like the cursor's.
		prog.SetMat4("view", mgl32.Ortho2D(0, float32(f.FbW), float32(f.FbH), 0))

		prog.SetBool("dash", false)
		ctrlMesh.Draw(gl.POINTS)
		ctrlMesh.Draw(gl.LINE_STRIP)

		if len(ctrl) > 2 {
			prog.SetBool("dash", true)
			prog.SetFloat("time", float32(f.Time)*50)
			curveMesh.Draw(gl.LINE_STRIP)
		}
		return nil
	})
}
