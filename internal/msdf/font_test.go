package msdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gfxlab/internal/glx"
)

const testAtlas = `{
  "texture": "font.png",
  "sdfScale": 8.0,
  "glyphs": [
    {"codepoint": 65, "x": 0, "y": 0, "width": 20, "height": 30, "xoffset": 1, "yoffset": 2, "advance": 22},
    {"codepoint": 66, "x": 20, "y": 0, "width": 18, "height": 30, "xoffset": 0, "yoffset": 2, "advance": 20}
  ]
}`

func writeAtlas(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.json")
	require.NoError(t, os.WriteFile(path, []byte(testAtlas), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeAtlas(t)
	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "font.png"), f.TexturePath)
	assert.Equal(t, float32(8), f.Scale)
	require.Len(t, f.Glyphs, 2)
	assert.Equal(t, float32(22), f.Glyphs['A'].Advance)
	assert.Equal(t, float32(20), f.Glyphs['B'].X)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	var lerr *glx.AssetLoadError
	require.ErrorAs(t, err, &lerr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		in   string
		cols int
		want string
	}{
		{"short line untouched", "hello", 13, "hello"},
		{"wrap at column", "abcdefgh", 4, "abc\ndef\ngh"},
		{"explicit newline resets", "ab\ncdef", 4, "ab\ncde\nf"},
		{"empty", "", 13, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Wrap([]rune(tt.in), tt.cols)))
		})
	}
}

func TestLayout(t *testing.T) {
	f, err := Load(writeAtlas(t))
	require.NoError(t, err)

	verts, w, h := f.Layout([]rune("AB"), 64, 64, 30)
	require.Len(t, verts, 2*6*4)

	// First glyph starts at its xoffset, second at the pen after A's advance.
	assert.Equal(t, float32(1), verts[0])
	assert.Equal(t, float32(22), verts[6*4])

	// B's right edge minus A's left edge.
	assert.InDelta(t, 22+18-1, w, 1e-5)
	assert.InDelta(t, 30, h, 1e-5)

	// Texcoords are normalized.
	for i := 0; i < len(verts); i += 4 {
		assert.LessOrEqual(t, verts[i+2], float32(1))
		assert.LessOrEqual(t, verts[i+3], float32(1))
		assert.GreaterOrEqual(t, verts[i+2], float32(0))
		assert.GreaterOrEqual(t, verts[i+3], float32(0))
	}
}

func TestLayoutSkipsUnknownGlyphs(t *testing.T) {
	f, err := Load(writeAtlas(t))
	require.NoError(t, err)

	verts, _, _ := f.Layout([]rune("A?B"), 64, 64, 30)
	assert.Len(t, verts, 2*6*4)

	verts, w, h := f.Layout([]rune("??"), 64, 64, 30)
	assert.Nil(t, verts)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestLayoutNewlineDropsLine(t *testing.T) {
	f, err := Load(writeAtlas(t))
	require.NoError(t, err)

	verts, _, h := f.Layout([]rune("A\nB"), 64, 64, 30)
	require.Len(t, verts, 2*6*4)
	// Second glyph's top sits one line below the first's.
	assert.Equal(t, float32(2), verts[1])
	assert.Equal(t, float32(32), verts[6*4+1])
	assert.InDelta(t, 60, h, 1e-5)
}
