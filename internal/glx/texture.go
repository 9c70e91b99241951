package glx

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"
)

// Checkerboard sentinel pixel values (RGBA byte per channel, opaque).
const (
	CheckerBlack uint8 = 0x00
	CheckerWhite uint8 = 0xff
)

// Checkerboard returns an n*n RGBA pixel buffer where cell (i,j) is black
// when i%2 == j%2 and white otherwise.
func Checkerboard(n int) []uint8 {
	pix := make([]uint8, n*n*4)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := CheckerWhite
			if i%2 == j%2 {
				v = CheckerBlack
			}
			o := (i*n + j) * 4
			pix[o] = v
			pix[o+1] = v
			pix[o+2] = v
			pix[o+3] = 0xff
		}
	}
	return pix
}

// Texture owns a 2D GPU texture handle.
type Texture struct {
	id   uint32
	W, H int
}

func (t *Texture) ID() uint32 { return t.id }

func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// NewTextureRGBA uploads an RGBA image with hardware-generated mipmaps and
// trilinear filtering.
func NewTextureRGBA(img *image.RGBA) *Texture {
	t := &Texture{W: img.Rect.Dx(), H: img.Rect.Dy()}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.W), int32(t.H), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	return t
}

// LoadTexture decodes a PNG/JPEG file to RGBA and uploads it.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &AssetLoadError{Path: path, Err: err}
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &AssetLoadError{Path: path, Err: err}
	}
	rgba := toRGBA(src)
	return NewTextureRGBA(rgba), nil
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(src.Bounds())
	draw.Copy(rgba, rgba.Rect.Min, src, src.Bounds(), draw.Src, nil)
	return rgba
}

// DebugMipTexture builds an n*n checkerboard with a hand-supplied mip chain:
// level 0 is the board, levels 1-3 are solid red/green/blue so the active mip
// level is visible on screen, and the remaining levels are CPU-downscaled from
// level 3. Nearest-mipmap-nearest filtering keeps the level boundaries sharp.
func DebugMipTexture(n int) *Texture {
	t := &Texture{W: n, H: n}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_NEAREST)

	pix := Checkerboard(n)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(n), int32(n), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))

	solids := [][4]uint8{
		{0xff, 0x00, 0x00, 0xff},
		{0x00, 0xff, 0x00, 0xff},
		{0x00, 0x00, 0xff, 0xff},
	}
	level := int32(1)
	dim := n / 2
	var last *image.RGBA
	for _, c := range solids {
		if dim < 1 {
			break
		}
		img := image.NewRGBA(image.Rect(0, 0, dim, dim))
		for i := range img.Pix {
			img.Pix[i] = c[i%4]
		}
		gl.TexImage2D(gl.TEXTURE_2D, level, gl.RGBA8, int32(dim), int32(dim), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		last = img
		level++
		dim /= 2
	}
	// Fill out the rest of the chain so min filtering never samples an
	// unspecified level.
	for dim >= 1 && last != nil {
		img := image.NewRGBA(image.Rect(0, 0, dim, dim))
		draw.ApproxBiLinear.Scale(img, img.Rect, last, last.Rect, draw.Src, nil)
		gl.TexImage2D(gl.TEXTURE_2D, level, gl.RGBA8, int32(dim), int32(dim), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		last = img
		level++
		dim /= 2
	}
	return t
}
