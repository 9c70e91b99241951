// Package msdf loads multi-channel signed distance field font atlases and
// lays out text as textured quads.
package msdf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"

	"gfxlab/internal/glx"
)

// Glyph is one atlas entry: its pixel rect in the texture plus pen metrics.
type Glyph struct {
	Codepoint int     `json:"codepoint"`
	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	Width     float32 `json:"width"`
	Height    float32 `json:"height"`
	XOffset   float32 `json:"xoffset"`
	YOffset   float32 `json:"yoffset"`
	Advance   float32 `json:"advance"`
}

// Font is a parsed atlas description. TexturePath is resolved relative to
// the atlas file so the pair can live anywhere together.
type Font struct {
	TexturePath string
	Scale       float32
	Glyphs      map[rune]Glyph
}

type atlasFile struct {
	Texture  string  `json:"texture"`
	SDFScale float32 `json:"sdfScale"`
	Glyphs   []Glyph `json:"glyphs"`
}

// Load reads an atlas description from path.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &glx.AssetLoadError{Path: path, Err: err}
	}
	var raw atlasFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &glx.AssetLoadError{Path: path, Err: err}
	}
	if raw.Texture == "" {
		return nil, &glx.AssetLoadError{Path: path, Err: fmt.Errorf("atlas names no texture")}
	}
	f := &Font{
		TexturePath: filepath.Join(filepath.Dir(path), raw.Texture),
		Scale:       raw.SDFScale,
		Glyphs:      make(map[rune]Glyph, len(raw.Glyphs)),
	}
	for _, g := range raw.Glyphs {
		f.Glyphs[rune(g.Codepoint)] = g
	}
	return f, nil
}

// Wrap inserts newlines so no line exceeds cols visible characters.
// Explicit newlines reset the column counter.
func Wrap(text []rune, cols int) []rune {
	out := make([]rune, 0, len(text)+len(text)/cols+1)
	col := 0
	for _, r := range text {
		if r == '\n' {
			col = 0
			out = append(out, r)
			continue
		}
		col++
		if col == cols {
			out = append(out, '\n')
			col = 1
		}
		out = append(out, r)
	}
	return out
}

// Layout builds six pos2+uv2 vertices per visible glyph, advancing a pen
// along each line and dropping down lineHeight pixels on newlines. Glyphs
// missing from the atlas are skipped. Returns the vertex slice and the
// bounding box size of the laid-out text, used to center it on screen.
func (f *Font) Layout(text []rune, texW, texH int, lineHeight float32) (verts []float32, w, h float32) {
	var penX, penY float32
	xmin := float32(math32.MaxFloat32)
	ymin := float32(math32.MaxFloat32)
	xmax := float32(-math32.MaxFloat32)
	ymax := float32(-math32.MaxFloat32)

	tw, th := float32(texW), float32(texH)
	for _, r := range text {
		if r == '\n' {
			penX = 0
			penY += lineHeight
			continue
		}
		g, ok := f.Glyphs[r]
		if !ok {
			continue
		}
		x0 := penX + g.XOffset
		y0 := penY + g.YOffset
		x1 := x0 + g.Width
		y1 := y0 + g.Height
		u0 := g.X / tw
		v0 := g.Y / th
		u1 := (g.X + g.Width) / tw
		v1 := (g.Y + g.Height) / th

		verts = append(verts,
			x0, y0, u0, v0,
			x0, y1, u0, v1,
			x1, y0, u1, v0,
			x1, y0, u1, v0,
			x0, y1, u0, v1,
			x1, y1, u1, v1,
		)
		if x0 < xmin {
			xmin = x0
		}
		if x1 > xmax {
			xmax = x1
		}
		if y0 < ymin {
			ymin = y0
		}
		if y1 > ymax {
			ymax = y1
		}
		penX += g.Advance
	}
	if len(verts) == 0 {
		return nil, 0, 0
	}
	return verts, xmax - xmin, ymax - ymin
}
