package glx

import "github.com/go-gl/gl/v4.1-core/gl"

// RenderTarget is a square offscreen framebuffer with a float color texture
// and a 24-bit depth renderbuffer, sized for shadow-map rendering.
type RenderTarget struct {
	fbo   uint32
	color uint32
	depth uint32
	Size  int
}

// NewShadowTarget allocates an RG32F color attachment (depth and depth² for
// variance shadows) plus a depth renderbuffer, and verifies completeness.
func NewShadowTarget(size int) (*RenderTarget, error) {
	t := &RenderTarget{Size: size}

	gl.GenTextures(1, &t.color)
	gl.BindTexture(gl.TEXTURE_2D, t.color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RG32F, int32(size), int32(size), 0,
		gl.RGBA, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture(gl.DRAW_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, t.color, 0)

	gl.GenRenderbuffers(1, &t.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(size), int32(size))
	gl.FramebufferRenderbuffer(gl.DRAW_FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depth)

	if status := gl.CheckFramebufferStatus(gl.DRAW_FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		t.Delete()
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
		return nil, &FramebufferIncompleteError{Status: status}
	}
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	return t, nil
}

// Bind makes the target the draw framebuffer and sets its viewport.
func (t *RenderTarget) Bind() {
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.Size), int32(t.Size))
}

// Unbind restores the default framebuffer with the given viewport.
func (t *RenderTarget) Unbind(w, h int) {
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(w), int32(h))
}

// ColorTexture binds the color attachment to a texture unit for sampling.
func (t *RenderTarget) ColorTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.color)
}

func (t *RenderTarget) Delete() {
	if t.depth != 0 {
		gl.DeleteRenderbuffers(1, &t.depth)
		t.depth = 0
	}
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
	if t.color != 0 {
		gl.DeleteTextures(1, &t.color)
		t.color = 0
	}
}
