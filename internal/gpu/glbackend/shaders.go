package glbackend

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Vertex layout shared by every program: position at location 0, texture
// coordinate at location 1.
const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;

uniform mat4 uTransform;

out vec2 vUV;

void main() {
    gl_Position = uTransform * vec4(aPos, 0.0, 1.0);
    vUV = aUV;
}
` + "\x00"

// Fragment shader for untextured geometry.
const flatFragmentShaderSource = `
#version 410 core
uniform vec4 uColor;
out vec4 FragColor;

void main() {
    FragColor = uColor;
}
` + "\x00"

// Fragment shader for label quads. The glyph texture holds coverage only.
const textFragmentShaderSource = `
#version 410 core
in vec2 vUV;
uniform sampler2D uGlyphs;
uniform vec4 uColor;
out vec4 FragColor;

void main() {
    FragColor = vec4(uColor.rgb, uColor.a * texture(uGlyphs, vUV).r);
}
` + "\x00"

// Fragment shader for the colormap stage. Values are taken from texel
// centers and colored before interpolating, so a LUT with sharp transitions
// stays sharp regardless of the data texture's filter.
const colormapFragmentShaderSource = `
#version 410 core
in vec2 vUV;
uniform sampler2D uData;
uniform sampler1D uLUT;
uniform float uScale;
uniform float uOffset;
uniform int uMode;
out vec4 FragColor;

vec4 lookup(vec2 uv) {
    float n = float(textureSize(uLUT, 0));
    float x = clamp(texture(uData, uv).r * uScale + uOffset, 0.0, 1.0);
    return texture(uLUT, (x * (n - 1.0) + 0.5) / n);
}

void main() {
    vec2 size = vec2(textureSize(uData, 0));
    vec2 p = vUV * size - 0.5;
    vec2 i = floor(p);
    if (uMode == 0) {
        FragColor = lookup((floor(vUV * size) + 0.5) / size);
        return;
    }
    vec2 f = p - i;
    vec2 c = (i + 0.5) / size;
    vec2 d = 1.0 / size;
    vec4 c00 = lookup(c);
    vec4 c10 = lookup(c + vec2(d.x, 0.0));
    vec4 c01 = lookup(c + vec2(0.0, d.y));
    vec4 c11 = lookup(c + d);
    FragColor = mix(mix(c00, c10, f.x), mix(c01, c11, f.x), f.y);
}
` + "\x00"

// program is a linked shader program with its uniform locations.
type program struct {
	id       uint32
	uniforms map[string]int32
}

// newProgram compiles and links a program from the shared vertex shader and
// the given fragment shader, resolving the named uniforms.
func newProgram(fragmentSource string, uniforms ...string) (*program, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragmentShader)

	id := gl.CreateProgram()
	gl.AttachShader(id, vertexShader)
	gl.AttachShader(id, fragmentShader)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("shader linking failed: %s", strings.TrimRight(logText, "\x00"))
	}

	p := &program{id: id, uniforms: make(map[string]int32, len(uniforms))}
	for _, name := range uniforms {
		p.uniforms[name] = gl.GetUniformLocation(id, gl.Str(name+"\x00"))
	}
	return p, nil
}

// mustProgram is newProgram for programs the device cannot work without.
func mustProgram(fragmentSource string, uniforms ...string) *program {
	p, err := newProgram(fragmentSource, uniforms...)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return p
}

func (p *program) use() { gl.UseProgram(p.id) }

func (p *program) setTransform(matrix [16]float32) {
	gl.UniformMatrix4fv(p.uniforms["uTransform"], 1, false, &matrix[0])
}

func (p *program) setColor(r, g, b, a float32) {
	gl.Uniform4f(p.uniforms["uColor"], r, g, b, a)
}

func (p *program) setInt(name string, v int32) { gl.Uniform1i(p.uniforms[name], v) }

func (p *program) setFloat(name string, v float32) { gl.Uniform1f(p.uniforms[name], v) }

func (p *program) delete() {
	if p != nil {
		gl.DeleteProgram(p.id)
	}
}

// compileShader compiles a single shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader compilation failed: %s", strings.TrimRight(logText, "\x00"))
	}
	return shader, nil
}
