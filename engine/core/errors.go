package core

import (
	"errors"
	"fmt"
)

var (
	ErrResourceCreation         = errors.New("native resource creation failed")
	ErrInvalidArgument          = errors.New("invalid argument")
	ErrDeviceLimitExceeded      = errors.New("device limit exceeded")
	ErrFormatMismatch           = errors.New("texture format mismatch")
	ErrShaderCompile            = errors.New("shader compilation failed")
	ErrShaderLink               = errors.New("shader program link failed")
	ErrUniformNotFound          = errors.New("shader uniform not found")
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
	ErrInvalidConfiguration     = errors.New("invalid configuration")
	ErrResourceReleased         = errors.New("resource already released")
	ErrPlatform                 = errors.New("platform failure")
	ErrUnknown                  = errors.New("unknown")
)

// ResourceKind names the family a GPU resource belongs to.
type ResourceKind uint8

const (
	ResourceKindVertexBuffer ResourceKind = iota
	ResourceKindElementBuffer
	ResourceKindVertexArray
	ResourceKindShader
	ResourceKindTexture
	ResourceKindMaterial
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceKindVertexBuffer:
		return "vertex buffer"
	case ResourceKindElementBuffer:
		return "element buffer"
	case ResourceKindVertexArray:
		return "vertex array"
	case ResourceKindShader:
		return "shader"
	case ResourceKindTexture:
		return "texture"
	case ResourceKindMaterial:
		return "material"
	}
	return fmt.Sprintf("resource(%d)", uint8(k))
}

// ResourceCreationError is returned when the device hands back an invalid
// handle for a new resource.
type ResourceCreationError struct {
	Kind   ResourceKind
	Reason string
}

func (e *ResourceCreationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", ErrResourceCreation, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", ErrResourceCreation, e.Kind, e.Reason)
}

func (e *ResourceCreationError) Is(target error) bool {
	return target == ErrResourceCreation
}

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage uint8

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
	// ShaderStageProgram marks errors raised while linking.
	ShaderStageProgram
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	case ShaderStageProgram:
		return "program"
	}
	return "unknown"
}

// ShaderError carries the native compiler or linker log verbatim.
type ShaderError struct {
	Stage ShaderStage
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == ShaderStageProgram {
		return fmt.Sprintf("%s: %s", ErrShaderLink, e.Log)
	}
	return fmt.Sprintf("%s (%s stage): %s", ErrShaderCompile, e.Stage, e.Log)
}

func (e *ShaderError) Is(target error) bool {
	if e.Stage == ShaderStageProgram {
		return target == ErrShaderLink
	}
	return target == ErrShaderCompile
}
