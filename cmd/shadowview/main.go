// Shadowview renders a small scene lit by an orbiting sun with variance
// shadow mapping: the shadow pass writes depth and depth squared into an
// RG32F target, and the lighting pass blurs both moments and turns them
// into a soft shadow factor via Chebyshev's inequality. WASD moves, Q/E
// change height, arrow keys look around, space pauses the sun, and Tab
// toggles the shadow-map debug quad in the corner.
package main

import (
	"image"
	"log"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"gfxlab/internal/app"
	"gfxlab/internal/geom"
	"gfxlab/internal/glx"
)

const sceneVertSrc = `#version 410 core

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

layout (location = 0) in vec3 in_position;
layout (location = 1) in vec3 in_normal;
layout (location = 2) in vec2 in_texcoord;

out vec3 position;
out vec3 normal;
out vec2 texcoord;

void main() {
    position = (model * vec4(in_position, 1.0)).xyz;
    normal = normalize(mat3(model) * in_normal);
    texcoord = in_texcoord;
    gl_Position = projection * view * vec4(position, 1.0);
}
` + "\x00"

const sceneFragSrc = `#version 410 core

uniform vec3 camera_position;
uniform vec3 sun_direction;
uniform vec3 sun_color;
uniform sampler2D albedo_texture;
uniform mat4 shadow_projection;
uniform sampler2D shadow_map;
uniform float glossiness;
uniform float power;

in vec3 position;
in vec3 normal;
in vec2 texcoord;

layout (location = 0) out vec4 out_color;

vec3 albedo;

vec3 diffuse(vec3 direction) {
    return albedo * max(0.0, dot(normal, direction));
}

vec3 specular(vec3 direction) {
    vec3 reflected = 2.0 * normal * dot(normal, direction) - direction;
    vec3 view_direction = normalize(camera_position - position);
    return glossiness * albedo * pow(max(0.0, dot(reflected, view_direction)), power);
}

vec2 blur_moments(vec2 uv) {
    vec2 sum = vec2(0.0);
    float sum_w = 0.0;
    const int N = 2;
    const float radius = 2.0;
    for (int x = -N; x <= N; ++x) {
        for (int y = -N; y <= N; ++y) {
            float c = exp(-float(x * x + y * y) / (radius * radius));
            sum += c * texture(shadow_map, uv + vec2(x, y) / vec2(textureSize(shadow_map, 0))).rg;
            sum_w += c;
        }
    }
    return sum / sum_w;
}

float shadow_factor() {
    vec4 shadow_pos = shadow_projection * vec4(position, 1.0);
    shadow_pos /= shadow_pos.w;
    shadow_pos = shadow_pos * 0.5 + vec4(0.5);
    vec2 data = blur_moments(shadow_pos.xy);
    float mu = data.r;
    float sigma = data.g - mu * mu;
    float z = shadow_pos.z - 0.002;
    float factor = (z < mu) ? 1.0 : sigma / (sigma + (z - mu) * (z - mu));
    const float delta = 0.125;
    return factor > delta ? (factor - delta) / (1.0 - delta) : 0.0;
}

void main() {
    const float ambient_light = 0.25;
    albedo = texture(albedo_texture, texcoord).rgb;
    vec3 color = albedo * ambient_light;
    color += sun_color * (diffuse(sun_direction) + specular(sun_direction)) * shadow_factor();
    out_color = vec4(color, 1.0);
}
` + "\x00"

const shadowVertSrc = `#version 410 core

uniform mat4 shadow_projection;
uniform mat4 model;

layout (location = 0) in vec3 in_position;

void main() {
    gl_Position = shadow_projection * model * vec4(in_position, 1.0);
}
` + "\x00"

const shadowFragSrc = `#version 410 core

layout (location = 0) out vec4 out_moments;

void main() {
    float z = gl_FragCoord.z;
    out_moments = vec4(z, z * z + 0.25 * (dFdx(z) * dFdx(z) + dFdy(z) * dFdy(z)), 0.0, 0.0);
}
` + "\x00"

const debugVertSrc = `#version 410 core

const vec2 VERTICES[6] = vec2[6](
    vec2(-1.0, -1.0), vec2(-0.5, -1.0), vec2(-1.0, -0.5),
    vec2(-1.0, -0.5), vec2(-0.5, -1.0), vec2(-0.5, -0.5)
);
const vec2 TEXCOORD[6] = vec2[6](
    vec2(0.0, 0.0), vec2(1.0, 0.0), vec2(0.0, 1.0),
    vec2(0.0, 1.0), vec2(1.0, 0.0), vec2(1.0, 1.0)
);

out vec2 texcoord;

void main() {
    texcoord = TEXCOORD[gl_VertexID];
    gl_Position = vec4(VERTICES[gl_VertexID], 0.0, 1.0);
}
` + "\x00"

const debugFragSrc = `#version 410 core

uniform sampler2D shadow_map;

in vec2 texcoord;
layout (location = 0) out vec4 out_color;

void main() {
    out_color = vec4(texture(shadow_map, texcoord).rgb, 1.0);
}
` + "\x00"

const shadowMapSize = 2048

type sceneObject struct {
	mesh  *glx.Mesh
	tex   *glx.Texture
	model mgl32.Mat4
}

func solidTexture(r, g, b uint8) *glx.Texture {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = 0xff
	}
	return glx.NewTextureRGBA(img)
}

func uploadMesh(d geom.MeshData) *glx.Mesh {
	m := glx.NewMesh(d.Verts, geom.VertexStride, []glx.Attrib{
		{Loc: 0, Components: 3, Offset: 0},
		{Loc: 1, Components: 3, Offset: 12},
		{Loc: 2, Components: 2, Offset: 24},
	}, gl.STATIC_DRAW)
	m.SetIndices(d.Indices)
	return m
}

// fitShadowProjection builds the sun's clip transform: an oriented box
// around the scene bounds, axes aligned to the light, inverted so world
// space maps into the light's [-1,1] cube.
func fitShadowProjection(sunDir mgl32.Vec3, bounds geom.AABB) mgl32.Mat4 {
	lightZ := sunDir.Mul(-1)
	lightX := lightZ.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	lightY := lightX.Cross(lightZ)
	c := bounds.Center()

	var ex, ey, ez float32
	for _, x := range []float32{bounds.Min.X(), bounds.Max.X()} {
		for _, y := range []float32{bounds.Min.Y(), bounds.Max.Y()} {
			for _, z := range []float32{bounds.Min.Z(), bounds.Max.Z()} {
				v := mgl32.Vec3{x, y, z}.Sub(c)
				ex = max32(ex, abs32(v.Dot(lightX)))
				ey = max32(ey, abs32(v.Dot(lightY)))
				ez = max32(ez, abs32(v.Dot(lightZ)))
			}
		}
	}

	x := lightX.Mul(ex)
	y := lightY.Mul(ey)
	z := lightZ.Mul(ez)
	m := mgl32.Mat4{
		x.X(), x.Y(), x.Z(), 0,
		y.X(), y.Y(), y.Z(), 0,
		z.X(), z.Y(), z.Z(), 0,
		c.X(), c.Y(), c.Z(), 1,
	}
	return m.Inv()
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("shadowview: ")
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	window, err := app.NewWindow(app.Config{
		Title:   "shadow mapping",
		Width:   1280,
		Height:  800,
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

	sceneProg, err := glx.BuildProgram(glx.Vertex(sceneVertSrc), glx.Fragment(sceneFragSrc))
	if err != nil {
		return err
	}
	shadowProg, err := glx.BuildProgram(glx.Vertex(shadowVertSrc), glx.Fragment(shadowFragSrc))
	if err != nil {
		return err
	}
	debugProg, err := glx.BuildProgram(glx.Vertex(debugVertSrc), glx.Fragment(debugFragSrc))
	if err != nil {
		return err
	}
	arena.Track(sceneProg, shadowProg, debugProg)

	shadowMap, err := glx.NewShadowTarget(shadowMapSize)
	if err != nil {
		return err
	}
	arena.Track(shadowMap)

	const texDim = 256
	ground := solidTexture(0x70, 0x80, 0x60)
	checker := &image.RGBA{
		Pix:    glx.Checkerboard(texDim),
		Stride: texDim * 4,
		Rect:   image.Rect(0, 0, texDim, texDim),
	}
	checkerTex := glx.NewTextureRGBA(checker)
	brick := solidTexture(0xb0, 0x50, 0x40)
	arena.Track(ground, checkerTex, brick)

	planeMesh := uploadMesh(geom.PlaneMesh(20, 8))
	cubeMesh := uploadMesh(geom.Cube(1))
	torusMesh := uploadMesh(geom.Torus(1.4, 0.5, 48, 24))
	arena.Track(planeMesh, cubeMesh, torusMesh)

	// Empty VAO for the debug quad; its vertices live in the shader.
	debugQuad := glx.NewMesh(nil, 1, nil, gl.STATIC_DRAW)
	arena.Track(debugQuad)

	objects := []sceneObject{
		{planeMesh, ground, mgl32.Ident4()},
		{cubeMesh, brick, mgl32.Translate3D(-5, 1, -4)},
		{cubeMesh, brick, mgl32.Translate3D(6, 1, 3).Mul4(mgl32.HomogRotate3DY(0.7))},
		{cubeMesh, checkerTex, mgl32.Translate3D(3, 0.6, -6).Mul4(mgl32.Scale3D(0.6, 0.6, 0.6))},
	}
	sceneBounds := geom.AABB{
		Min: mgl32.Vec3{-20, 0, -20},
		Max: mgl32.Vec3{20, 6, 20},
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	cam := geom.FlyCamera{Position: mgl32.Vec3{0, 3, 12}}
	paused := false
	showDebug := true
	sunTime := 0.0

	loop := app.NewLoop(window)
	return loop.Run(func(f *app.Frame) error {
		dt := float32(f.DT)
		if f.Input.JustPressed(f.Window, glfw.KeySpace) {
			paused = !paused
		}
		if f.Input.JustPressed(f.Window, glfw.KeyTab) {
			showDebug = !showDebug
		}
		if !paused {
			sunTime += f.DT
		}

		cam.Rotate(
			3*dt*float32(f.Input.Axis(f.Window, glfw.KeyLeft, glfw.KeyRight)),
			3*dt*float32(f.Input.Axis(f.Window, glfw.KeyDown, glfw.KeyUp)),
		)
		cam.Move(
			10*dt*float32(f.Input.Axis(f.Window, glfw.KeyS, glfw.KeyW)),
			10*dt*float32(f.Input.Axis(f.Window, glfw.KeyA, glfw.KeyD)),
			10*dt*float32(f.Input.Axis(f.Window, glfw.KeyQ, glfw.KeyE)),
		)

		sunDir := mgl32.Vec3{
			float32(math.Cos(sunTime * 0.5)),
			3,
			float32(math.Sin(sunTime * 0.5)),
		}.Normalize()
		shadowProjection := fitShadowProjection(sunDir, sceneBounds)

		// The torus circles the scene, passing through the cube shadows.
		torusModel := mgl32.Translate3D(
			7*float32(math.Sin(sunTime*0.3)), 1.9, 7*float32(math.Cos(sunTime*0.3))).
			Mul4(mgl32.HomogRotate3DY(float32(sunTime)))
		drawList := append(objects[:len(objects):len(objects)],
			sceneObject{torusMesh, checkerTex, torusModel})

		// Shadow pass.
		shadowMap.Bind()
		gl.ClearColor(1, 1, 0, 0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		shadowProg.Use()
		shadowProg.SetMat4("shadow_projection", shadowProjection)
		for _, obj := range drawList {
			shadowProg.SetMat4("model", obj.model)
			obj.mesh.DrawIndexed(gl.TRIANGLES)
		}
		shadowMap.Unbind(f.FbW, f.FbH)

		// Lighting pass.
		gl.ClearColor(0.8, 0.8, 0.9, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		proj := mgl32.Perspective(mgl32.DegToRad(90),
			float32(f.FbW)/float32(f.FbH), 0.5, 200)

		sceneProg.Use()
		sceneProg.SetMat4("view", cam.View())
		sceneProg.SetMat4("projection", proj)
		sceneProg.SetMat4("shadow_projection", shadowProjection)
		sceneProg.SetVec3("camera_position", cam.Position)
		sceneProg.SetVec3("sun_direction", sunDir)
		sceneProg.SetVec3("sun_color", mgl32.Vec3{0.8, 0.8, 0.8})
		sceneProg.SetFloat("glossiness", 0.4)
		sceneProg.SetFloat("power", 32)
		sceneProg.SetInt("albedo_texture", 0)
		sceneProg.SetInt("shadow_map", 1)
		shadowMap.ColorTexture(1)

		for _, obj := range drawList {
			sceneProg.SetMat4("model", obj.model)
			obj.tex.Bind(0)
			obj.mesh.DrawIndexed(gl.TRIANGLES)
		}

		if showDebug {
			debugProg.Use()
			debugProg.SetInt("shadow_map", 1)
			shadowMap.ColorTexture(1)
			debugQuad.DrawRange(gl.TRIANGLES, 0, 6)
		}
		return nil
	})
}
