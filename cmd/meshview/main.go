// Meshview displays a lit, textured torus. The default texture carries a
// hand-built mip chain (checkerboard at level 0, then solid red, green and
// blue) so the active mip level is visible while zooming; pass -texture to
// view an image file instead. Left/right arrows orbit, up/down zoom, and T
// toggles the scrolling texture animation.
package main

import (
	"flag"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"gfxlab/internal/app"
	"gfxlab/internal/geom"
	"gfxlab/internal/glx"
)

const meshVertSrc = `#version 410 core

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

layout (location = 0) in vec3 in_position;
layout (location = 1) in vec3 in_normal;
layout (location = 2) in vec2 in_texcoord;

out vec3 normal;
out vec2 texcoord;

void main() {
    gl_Position = projection * view * model * vec4(in_position, 1.0);
    normal = mat3(model) * in_normal;
    texcoord = in_texcoord;
}
` + "\x00"

const meshFragSrc = `#version 410 core

uniform sampler2D albedo_texture;
uniform float time;
uniform bool scroll;

in vec3 normal;
in vec2 texcoord;

layout (location = 0) out vec4 out_color;

void main() {
    vec2 uv = texcoord;
    if (scroll)
        uv = vec2(uv.x + 0.1 * sin(time), uv.y + 0.1 * cos(time));
    float lightness = 0.5 + 0.5 * dot(normalize(normal), normalize(vec3(1.0, 2.0, 3.0)));
    vec3 albedo = texture(albedo_texture, uv).rgb;
    out_color = vec4(lightness * albedo, 1.0);
}
` + "\x00"

func main() {
	log.SetFlags(0)
	log.SetPrefix("meshview: ")
	texPath := flag.String("texture", "", "image file to map onto the mesh (default: mip debug texture)")
	flag.Parse()
	if err := run(*texPath); err != nil {
		log.Fatal(err)
	}
}

func run(texPath string) error {
	window, err := app.NewWindow(app.Config{
		Title:   "meshview",
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

	arena := &glx.Arena{}
	defer arena.Release()

	prog, err := glx.BuildProgram(glx.Vertex(meshVertSrc), glx.Fragment(meshFragSrc))
	if err != nil {
		return err
	}
	arena.Track(prog)

	var tex *glx.Texture
	if texPath != "" {
		tex, err = glx.LoadTexture(texPath)
		if err != nil {
			return err
		}
	} else {
		tex = glx.DebugMipTexture(1024)
	}
	arena.Track(tex)

	torus := geom.Torus(1.2, 0.5, 64, 32)
	mesh := glx.NewMesh(torus.Verts, geom.VertexStride, []glx.Attrib{
		{Loc: 0, Components: 3, Offset: 0},
		{Loc: 1, Components: 3, Offset: 12},
		{Loc: 2, Components: 2, Offset: 24},
	}, gl.STATIC_DRAW)
	mesh.SetIndices(torus.Indices)
	arena.Track(mesh)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.1, 0.1, 0.14, 1)

	cam := geom.OrbitCamera{Height: 1.5, Distance: 5}
	scroll := false

	loop := app.NewLoop(window)
	return loop.Run(func(f *app.Frame) error {
		dt := float32(f.DT)
		cam.Angle += 2 * dt * float32(f.Input.Axis(f.Window, glfw.KeyRight, glfw.KeyLeft))
		cam.Distance += 4 * dt * float32(f.Input.Axis(f.Window, glfw.KeyUp, glfw.KeyDown))
		cam.Distance = geom.Clamp(cam.Distance, 2, 60)
		if f.Input.JustPressed(f.Window, glfw.KeyT) {
			scroll = !scroll
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		proj := mgl32.Perspective(mgl32.DegToRad(50),
			float32(f.FbW)/float32(f.FbH), 0.1, 100)

		prog.Use()
		prog.SetMat4("model", mgl32.HomogRotate3DY(float32(f.Time)*0.3))
		prog.SetMat4("view", cam.View())
		prog.SetMat4("projection", proj)
		prog.SetInt("albedo_texture", 0)
		prog.SetFloat("time", float32(f.Time))
		prog.SetBool("scroll", scroll)

		tex.Bind(0)
		mesh.DrawIndexed(gl.TRIANGLES)
		return nil
	})
}
