package glx

import "fmt"

// InitError reports a windowing/context/driver setup failure. Nothing can be
// rendered after one of these; demos log it and exit nonzero.
type InitError struct {
	Stage string // "glfw", "window", "gl"
	Err   error
}

func (e *InitError) Error() string { return fmt.Sprintf("init %s: %v", e.Stage, e.Err) }
func (e *InitError) Unwrap() error { return e.Err }

// ShaderCompileError carries the driver's diagnostic text for a single failed
// stage. It is a distinct type from ProgramLinkError so a caller that
// hot-reloads shaders can keep the old program on bad source instead of
// aborting.
type ShaderCompileError struct {
	Stage string // "vertex", "fragment", ...
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("compile %s shader: %s", e.Stage, e.Log)
}

// ProgramLinkError carries the linker's diagnostic text.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string { return "link program: " + e.Log }

// FramebufferIncompleteError reports an FBO that failed its completeness
// check, with the raw GL status enum.
type FramebufferIncompleteError struct {
	Status uint32
}

func (e *FramebufferIncompleteError) Error() string {
	return fmt.Sprintf("framebuffer incomplete: status 0x%04x", e.Status)
}

// AssetLoadError reports a missing or unreadable texture/font file.
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }
func (e *AssetLoadError) Unwrap() error { return e.Err }
