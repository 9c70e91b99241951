// Metaballs renders a field of gaussian blobs sampled over a triangulated
// grid, restreamed every frame. Up/down arrows change the ball count.
package main

import (
	"log"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"gfxlab/internal/app"
	"gfxlab/internal/geom"
	"gfxlab/internal/glx"
)

const fieldVertSrc = `#version 410 core

uniform mat4 mvp;

layout (location = 0) in vec2 in_position;
layout (location = 1) in vec3 in_color;

out vec3 color;

void main() {
    gl_Position = mvp * vec4(in_position, 0.0, 1.0);
    color = in_color;
}
` + "\x00"

const fieldFragSrc = `#version 410 core

in vec3 color;
layout (location = 0) out vec4 out_color;

void main() {
    out_color = vec4(color, 1.0);
}
` + "\x00"

const (
	gridDim    = 100
	fieldRange = 4
	ballSpeed  = 1.0
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("metaballs: ")
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	window, err := app.NewWindow(app.Config{
		Title:  "metaballs",
		Width:  1024,
		Height: 768,
		VSync:  true,
	})
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	arena := &glx.Arena{}
	defer arena.Release()

	prog, err := glx.BuildProgram(glx.Vertex(fieldVertSrc), glx.Fragment(fieldFragSrc))
	if err != nil {
		return err
	}
	arena.Track(prog)

	rnd := geom.NewRand(uint64(time.Now().UnixNano()))
	count := 200
	field := geom.NewField(count, gridDim, gridDim, fieldRange, rnd)

	mesh := glx.NewMesh(field.Vertices(), 5, []glx.Attrib{
		{Loc: 0, Components: 2, Offset: 0},
		{Loc: 1, Components: 3, Offset: 8},
	}, gl.STREAM_DRAW)
	mesh.SetIndices(geom.GridIndices(gridDim, gridDim))
	arena.Track(mesh)

	gl.ClearColor(0.06, 0.06, 0.1, 1)

	loop := app.NewLoop(window)
	return loop.Run(func(f *app.Frame) error {
		if f.Input.JustPressed(f.Window, glfw.KeyUp) {
			count += 25
			field = geom.NewField(count, gridDim, gridDim, fieldRange, rnd)
			log.Printf("metaballs: %d", count)
		}
		if f.Input.JustPressed(f.Window, glfw.KeyDown) && count > 25 {
			count -= 25
			field = geom.NewField(count, gridDim, gridDim, fieldRange, rnd)
			log.Printf("metaballs: %d", count)
		}

		field.Update(float32(f.DT), ballSpeed)
		mesh.Upload(field.Vertices())

		// Shrink the long window axis so the square grid keeps its aspect.
		aspect := float32(f.FbH) / float32(f.FbW)
		scale := mgl32.Vec3{0.9 * aspect, 0.9, 1}
		if aspect > 1 {
			scale = mgl32.Vec3{0.9, 0.9 / aspect, 1}
		}
		mvp := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()).
			Mul4(mgl32.Ortho(-fieldRange, fieldRange, -fieldRange, fieldRange, -1, 1))

		gl.Clear(gl.COLOR_BUFFER_BIT)
		prog.Use()
		prog.SetMat4("mvp", mvp)
		mesh.DrawIndexed(gl.TRIANGLES)
		return nil
	})
}
