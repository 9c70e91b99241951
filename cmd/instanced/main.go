// Instanced draws a 64x64 grid of tori with frustum culling and distance-
// based level of detail, one instanced draw per detail level. WASD moves,
// left/right arrows rotate, up/down change height, and space pauses the
// animation. GPU frame times from a timer-query ring are logged once a
// second together with the visible instance count.
package main

import (
	"image"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"gfxlab/internal/app"
	"gfxlab/internal/geom"
	"gfxlab/internal/glx"
)

const instVertSrc = `#version 410 core

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

layout (location = 0) in vec3 in_position;
layout (location = 1) in vec3 in_normal;
layout (location = 2) in vec2 in_texcoord;
layout (location = 3) in vec3 in_offset;

out vec3 normal;
out vec2 texcoord;

void main() {
    gl_Position = projection * view * (model * vec4(in_position, 1.0) + vec4(in_offset, 0.0));
    normal = mat3(model) * in_normal;
    texcoord = in_texcoord;
}
` + "\x00"

const instFragSrc = `#version 410 core

uniform sampler2D albedo;
uniform vec3 light_direction;

in vec3 normal;
in vec2 texcoord;

layout (location = 0) out vec4 out_color;

void main() {
    vec3 albedo_color = texture(albedo, texcoord).rgb;
    float ambient = 0.4;
    float diffuse = max(0.0, dot(normalize(normal), light_direction));
    out_color = vec4(albedo_color * (ambient + diffuse), 1.0);
}
` + "\x00"

const (
	gridHalf = 32 // instances span [-gridHalf, gridHalf) on both axes
	lodStep  = 5.0
	lodCount = 4
)

type lodMesh struct {
	mesh      *glx.Mesh
	offsets   *glx.InstanceBuffer
	instances []float32
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("instanced: ")
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	window, err := app.NewWindow(app.Config{
		Title:   "instancing",
		Width:   1280,
		Height:  800,
		VSync:   false,
		Samples: 4,
	})
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	arena := &glx.Arena{}
	defer arena.Release()

	prog, err := glx.BuildProgram(glx.Vertex(instVertSrc), glx.Fragment(instFragSrc))
	if err != nil {
		return err
	}
	arena.Track(prog)

	const texDim = 128
	img := &image.RGBA{
		Pix:    glx.Checkerboard(texDim),
		Stride: texDim * 4,
		Rect:   image.Rect(0, 0, texDim, texDim),
	}
	tex := glx.NewTextureRGBA(img)
	arena.Track(tex)

	lodData := geom.TorusLODs(0.28, 0.12, 48, 24, lodCount)
	bounds := lodData[0].Bounds
	lods := make([]*lodMesh, lodCount)
	for i, d := range lodData {
		m := glx.NewMesh(d.Verts, geom.VertexStride, []glx.Attrib{
			{Loc: 0, Components: 3, Offset: 0},
			{Loc: 1, Components: 3, Offset: 12},
			{Loc: 2, Components: 2, Offset: 24},
		}, gl.STATIC_DRAW)
		m.SetIndices(d.Indices)
		arena.Track(m)
		lods[i] = &lodMesh{mesh: m, offsets: m.AttachInstanceAttrib(3, 3)}
	}

	timer := &glx.FrameTimer{}
	arena.Track(timer)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.8, 0.8, 1, 1)

	cam := geom.FlyCamera{Position: mgl32.Vec3{0, 1.5, 3}}
	paused := false
	spin := float32(0)
	logTimer := 0.0

	loop := app.NewLoop(window)
	return loop.Run(func(f *app.Frame) error {
		dt := float32(f.DT)
		if f.Input.JustPressed(f.Window, glfw.KeySpace) {
			paused = !paused
		}
		cam.Rotate(3*dt*float32(f.Input.Axis(f.Window, glfw.KeyLeft, glfw.KeyRight)), 0)
		cam.Move(
			3*dt*float32(f.Input.Axis(f.Window, glfw.KeyS, glfw.KeyW)),
			3*dt*float32(f.Input.Axis(f.Window, glfw.KeyA, glfw.KeyD)),
			3*dt*float32(f.Input.Axis(f.Window, glfw.KeyDown, glfw.KeyUp)),
		)
		if !paused {
			spin += dt
		}

		view := cam.View()
		proj := mgl32.Perspective(mgl32.DegToRad(90),
			float32(f.FbW)/float32(f.FbH), 0.1, 100)

		// Cull against the frustum, then bucket survivors by distance.
		frustum := geom.NewFrustum(proj.Mul4(view))
		for _, l := range lods {
			l.instances = l.instances[:0]
		}
		visible := 0
		for i := -gridHalf; i < gridHalf; i++ {
			for j := -gridHalf; j < gridHalf; j++ {
				off := mgl32.Vec3{float32(i), 0, float32(j)}
				if !frustum.IntersectsAABB(bounds.Translate(off)) {
					continue
				}
				visible++
				lod := geom.LODLevel(cam.Position.Sub(off).Len(), lodStep, lodCount)
				lods[lod].instances = append(lods[lod].instances,
					off.X(), off.Y(), off.Z())
			}
		}

		timer.Begin()
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		prog.Use()
		prog.SetMat4("model", mgl32.HomogRotate3DY(spin*0.6))
		prog.SetMat4("view", view)
		prog.SetMat4("projection", proj)
		prog.SetInt("albedo", 0)
		prog.SetVec3("light_direction", mgl32.Vec3{1, 2, 3}.Normalize())
		tex.Bind(0)

		for _, l := range lods {
			l.offsets.Upload(l.instances)
			l.mesh.DrawIndexedInstanced(gl.TRIANGLES, l.offsets.Count())
		}
		timer.End()

		logTimer += f.DT
		if logTimer >= 1 {
			logTimer = 0
			for _, sec := range timer.Poll() {
				log.Printf("gpu %.3fms (%.0f fps), visible %d, queries in flight %d",
					sec*1e3, 1/sec, visible, timer.InFlight())
			}
		} else {
			timer.Poll()
		}
		return nil
	})
}
