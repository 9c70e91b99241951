// Sdftext renders typed text with a multi-channel signed distance field
// font: the median of the three channels recovers the distance, and screen-
// space derivatives size the smoothstep edge so glyphs stay crisp at any
// scale. Typing appends, backspace deletes, enter breaks the line; long
// lines wrap automatically. After a few idle seconds the text fades out and
// clears.
//
// The atlas is not bundled: pass -font with a JSON description holding the
// texture filename (resolved next to the JSON), the sdfScale, and per-glyph
// codepoint/x/y/width/height/xoffset/yoffset/advance entries, as produced
// by msdfgen-based atlas packers.
package main

import (
	"flag"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"gfxlab/internal/app"
	"gfxlab/internal/glx"
	"gfxlab/internal/msdf"
)

const textVertSrc = `#version 410 core

uniform mat4 transform;

layout (location = 0) in vec2 in_position;
layout (location = 1) in vec2 in_texcoord;

out vec2 texcoord;

void main() {
    gl_Position = transform * vec4(in_position, 0.0, 1.0);
    texcoord = in_texcoord;
}
` + "\x00"

const textFragSrc = `#version 410 core

uniform float time_since_last_input;
uniform float fade_time;
uniform float sdf_scale;
uniform sampler2D sdf_texture;

in vec2 texcoord;
layout (location = 0) out vec4 out_color;

float median(vec3 v) {
    return max(min(v.r, v.g), min(max(v.r, v.g), v.b));
}

void main() {
    vec3 text_color = vec3(0.0);
    vec3 outline_color = vec3(1.0);

    float texture_value = median(texture(sdf_texture, texcoord).rgb);
    float sdf_value = sdf_scale * (texture_value - 0.5);
    float width = length(vec2(dFdx(sdf_value), dFdy(sdf_value))) / sqrt(2.0);
    float alpha = smoothstep(-width, width, sdf_value);

    float outline_sdf = sdf_value + 1.0;
    float outline_width = length(vec2(dFdx(outline_sdf), dFdy(outline_sdf))) / sqrt(2.0);
    float outline_alpha = smoothstep(-outline_width, outline_width, outline_sdf);

    float fade = time_since_last_input > fade_time
        ? 1.0 : time_since_last_input / fade_time;

    if (alpha < 0.1)
        out_color = vec4(outline_color, mix(outline_alpha, 0.0, fade));
    else
        out_color = vec4(text_color, mix(alpha, 0.0, fade));
}
` + "\x00"

const (
	fadeTime   = 3.0
	lineHeight = 30.0
	wrapCols   = 13
	zoom       = 5.0
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sdftext: ")
	fontPath := flag.String("font", "font/font-msdf.json",
		"msdf atlas JSON (texture path, sdfScale, glyph table); the PNG must sit next to it")
	flag.Parse()
	if err := run(*fontPath); err != nil {
		log.Fatal(err)
	}
}

// centerTransform maps the laid-out text (pixel units, y down) to clip
// space, centered and magnified.
func centerTransform(fbW, fbH int, textW, textH float32) mgl32.Mat4 {
	w, h := float32(fbW), float32(fbH)
	return mgl32.Scale3D(zoom, zoom, 1).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(180))).
		Mul4(mgl32.Translate3D(-1, -1, 0)).
		Mul4(mgl32.Scale3D(2/w, 2/h, 1)).
		Mul4(mgl32.Translate3D(w/2-textW/2, h/2-textH/2, 0))
}

func run(fontPath string) error {
	window, err := app.NewWindow(app.Config{
		Title:  "sdf text",
		Width:  1024,
		Height: 768,
		VSync:  true,
	})
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	font, err := msdf.Load(fontPath)
	if err != nil {
		return err
	}

	arena := &glx.Arena{}
	defer arena.Release()

	prog, err := glx.BuildProgram(glx.Vertex(textVertSrc), glx.Fragment(textFragSrc))
	if err != nil {
		return err
	}
	arena.Track(prog)

	atlas, err := glx.LoadTexture(font.TexturePath)
	if err != nil {
		return err
	}
	arena.Track(atlas)

	mesh := glx.NewMesh(nil, 4, []glx.Attrib{
		{Loc: 0, Components: 2, Offset: 0},
		{Loc: 1, Components: 2, Offset: 8},
	}, gl.DYNAMIC_DRAW)
	arena.Track(mesh)

	text := []rune("Hello")
	textChanged := true
	window.SetCharCallback(func(_ *glfw.Window, r rune) {
		text = append(text, r)
		textChanged = true
	})
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		switch key {
		case glfw.KeyEnter:
			text = append(text, '\n')
			textChanged = true
		case glfw.KeyBackspace:
			if len(text) > 0 {
				text = text[:len(text)-1]
				textChanged = true
			}
		}
	})

	gl.ClearColor(0.8, 0.8, 1, 1)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	transform := mgl32.Ident4()
	idle := 0.0
	lastW, lastH := 0, 0

	loop := app.NewLoop(window)
	return loop.Run(func(f *app.Frame) error {
		idle += f.DT
		if idle > fadeTime && len(text) > 0 {
			text = text[:0]
			textChanged = true
		}

		if textChanged || f.FbW != lastW || f.FbH != lastH {
			wrapped := msdf.Wrap(text, wrapCols)
			verts, tw, th := font.Layout(wrapped, atlas.W, atlas.H, lineHeight)
			mesh.Upload(verts)
			transform = centerTransform(f.FbW, f.FbH, tw, th)
			lastW, lastH = f.FbW, f.FbH
			if textChanged {
				idle = 0
			}
			textChanged = false
		}

		gl.Clear(gl.COLOR_BUFFER_BIT)
		prog.Use()
		prog.SetMat4("transform", transform)
		prog.SetFloat("sdf_scale", font.Scale)
		prog.SetFloat("fade_time", fadeTime)
		prog.SetFloat("time_since_last_input", float32(idle))
		prog.SetInt("sdf_texture", 0)
		atlas.Bind(0)
		mesh.Draw(gl.TRIANGLES)
		return nil
	})
}
