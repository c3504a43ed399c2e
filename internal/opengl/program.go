package opengl

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program with a per-name uniform location
// cache. Setting a uniform the driver does not know (location -1) is a
// no-op; it is logged once per name.
type Program struct {
	ID   uint32
	Name string

	uniforms uniformCache
}

// LoadProgram reads, compiles and links a vertex/fragment pair from disk.
func LoadProgram(name, vertPath, fragPath string) (*Program, error) {
	vert, err := os.ReadFile(vertPath)
	if err != nil {
		return nil, fmt.Errorf("program %s: read vertex shader: %w", name, err)
	}
	frag, err := os.ReadFile(fragPath)
	if err != nil {
		return nil, fmt.Errorf("program %s: read fragment shader: %w", name, err)
	}
	return NewProgram(name, string(vert), string(frag))
}

// NewProgram compiles and links GLSL sources.
func NewProgram(name, vertSrc, fragSrc string) (*Program, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("program %s: vertex: %w", name, err)
	}
	defer gl.DeleteShader(vert)
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("program %s: fragment: %w", name, err)
	}
	defer gl.DeleteShader(frag)

	id := gl.CreateProgram()
	gl.AttachShader(id, vert)
	gl.AttachShader(id, frag)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(id, logLen, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("program %s: link failed: %s", name, strings.TrimRight(log, "\x00\n"))
	}

	p := &Program{ID: id, Name: name}
	p.uniforms = newUniformCache(name, func(u string) int32 {
		return gl.GetUniformLocation(id, gl.Str(u+"\x00"))
	})
	return p, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", strings.TrimRight(log, "\x00\n"))
	}
	return shader, nil
}

// Use makes p the active program.
func (p *Program) Use() { gl.UseProgram(p.ID) }

// Location returns the cached location of a uniform, -1 when absent.
func (p *Program) Location(name string) int32 { return p.uniforms.location(name) }

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.Location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (p *Program) SetMat3(name string, m mgl32.Mat3) {
	if loc := p.Location(name); loc >= 0 {
		gl.UniformMatrix3fv(loc, 1, false, &m[0])
	}
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.Location(name); loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

func (p *Program) SetFloat(name string, f float32) {
	if loc := p.Location(name); loc >= 0 {
		gl.Uniform1f(loc, f)
	}
}

func (p *Program) SetInt(name string, i int32) {
	if loc := p.Location(name); loc >= 0 {
		gl.Uniform1i(loc, i)
	}
}

func (p *Program) SetBool(name string, b bool) {
	var i int32
	if b {
		i = 1
	}
	p.SetInt(name, i)
}

// Destroy deletes the GL program.
func (p *Program) Destroy() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// uniformCache memoises uniform lookups, misses included, so a missing
// uniform costs one driver call and one log line per program.
type uniformCache struct {
	program string
	lookup  func(string) int32
	locs    map[string]int32
}

func newUniformCache(program string, lookup func(string) int32) uniformCache {
	return uniformCache{program: program, lookup: lookup, locs: map[string]int32{}}
}

func (c *uniformCache) location(name string) int32 {
	if loc, ok := c.locs[name]; ok {
		return loc
	}
	loc := c.lookup(name)
	c.locs[name] = loc
	if loc < 0 {
		slog.Warn("uniform not found", "program", c.program, "uniform", name)
	}
	return loc
}
