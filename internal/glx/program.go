package glx

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Stage is one shader stage's source text.
type Stage struct {
	Type   uint32
	Source string
}

func Vertex(src string) Stage   { return Stage{Type: gl.VERTEX_SHADER, Source: src} }
func Fragment(src string) Stage { return Stage{Type: gl.FRAGMENT_SHADER, Source: src} }
func Geometry(src string) Stage { return Stage{Type: gl.GEOMETRY_SHADER, Source: src} }

func stageName(t uint32) string {
	switch t {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	case gl.GEOMETRY_SHADER:
		return "geometry"
	default:
		return "unknown"
	}
}

// Program owns a linked GPU program handle and its uniform-location cache.
// Locations are resolved once after linking and are valid only for this
// program's lifetime.
type Program struct {
	id       uint32
	uniforms map[string]int32
}

// BuildProgram compiles each stage independently and links them into one
// program. Stage sources need not be NUL-terminated.
func BuildProgram(stages ...Stage) (*Program, error) {
	var ids []uint32
	for _, st := range stages {
		id, err := compileStage(st)
		if err != nil {
			for _, prev := range ids {
				gl.DeleteShader(prev)
			}
			return nil, err
		}
		ids = append(ids, id)
	}

	prog := gl.CreateProgram()
	for _, id := range ids {
		gl.AttachShader(prog, id)
	}
	gl.LinkProgram(prog)
	for _, id := range ids {
		gl.DetachShader(prog, id)
		gl.DeleteShader(id)
	}

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(prog)
		return nil, &ProgramLinkError{Log: strings.TrimRight(buf, "\x00")}
	}

	p := &Program{id: prog}
	p.resolveUniforms()
	return p, nil
}

func compileStage(st Stage) (uint32, error) {
	src := st.Source
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	shader := gl.CreateShader(st.Type)
	csources, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, &ShaderCompileError{
			Stage: stageName(st.Type),
			Log:   strings.TrimRight(buf, "\x00"),
		}
	}
	return shader, nil
}

// resolveUniforms fills the name→location cache from the active uniform list.
// Array uniforms are reported as "name[0]"; they are cached under the bare name.
func (p *Program) resolveUniforms() {
	p.uniforms = make(map[string]int32)
	var count int32
	gl.GetProgramiv(p.id, gl.ACTIVE_UNIFORMS, &count)
	var maxLen int32
	gl.GetProgramiv(p.id, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	if maxLen < 1 {
		maxLen = 1
	}
	buf := make([]uint8, maxLen+1)
	for i := int32(0); i < count; i++ {
		var nameLen, size int32
		var xtype uint32
		gl.GetActiveUniform(p.id, uint32(i), maxLen, &nameLen, &size, &xtype, &buf[0])
		name := strings.TrimSuffix(string(buf[:nameLen]), "[0]")
		p.uniforms[name] = gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	}
}

func (p *Program) ID() uint32 { return p.id }
func (p *Program) Use()       { gl.UseProgram(p.id) }
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// Uniform returns the cached location for name, or -1 if the uniform is not
// active in this program (mirroring glGetUniformLocation's miss value).
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (p *Program) SetInt(name string, v int32)     { gl.Uniform1i(p.Uniform(name), v) }
func (p *Program) SetFloat(name string, v float32) { gl.Uniform1f(p.Uniform(name), v) }
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.Uniform(name), i)
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(p.Uniform(name), v.X(), v.Y())
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.Uniform(name), v.X(), v.Y(), v.Z())
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, &m[0])
}
