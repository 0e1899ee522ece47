package graphics

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Shader represents a linked GLSL program on a device.
type Shader struct {
	dev Device
	ID  uint32
}

// NewShader creates a new shader program from vertex and fragment shader source files
func NewShader(dev Device, vertexPath, fragmentPath string) (*Shader, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("could not read vertex shader file: %w", err)
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("could not read fragment shader file: %w", err)
	}

	return NewShaderFromSource(dev, string(vertexSource), string(fragmentSource))
}

// NewShaderFromSource compiles and links a program from in-memory sources.
func NewShaderFromSource(dev Device, vertexSrc, fragmentSrc string) (*Shader, error) {
	program, err := dev.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Shader{dev: dev, ID: program}, nil
}

// WrapProgram returns a Shader for an already linked program.
func WrapProgram(dev Device, program uint32) *Shader {
	return &Shader{dev: dev, ID: program}
}

// Bind activates the shader program
func (s *Shader) Bind() {
	s.dev.UseProgram(s.ID)
}

// Program returns the program name.
func (s *Shader) Program() uint32 { return s.ID }

// SetMatrix4 sets a 4x4 matrix uniform. The program must be bound.
func (s *Shader) SetMatrix4(name string, value mgl32.Mat4) {
	s.dev.UniformMat4(s.ID, name, value)
}

// SetInt sets an integer uniform. The program must be bound.
func (s *Shader) SetInt(name string, value int32) {
	s.dev.UniformInt(s.ID, name, value)
}

// Delete releases the program.
func (s *Shader) Delete() {
	s.dev.DeleteProgram(s.ID)
	s.ID = 0
}
