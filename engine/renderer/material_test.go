package renderer_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/renderer"
)

const (
	vertexSource   = "#version 460 core\nvoid main() {}\n"
	fragmentSource = "#version 460 core\nout vec4 c;\nvoid main() { c = vec4(1); }\n"
)

func TestShaderCompileErrorCarriesLog(t *testing.T) {
	ctx, device := newTestContext(t, false)
	device.CompileErrors[core.ShaderStageFragment] = "0:3(1): error: syntax error"

	_, err := renderer.NewShader(ctx, vertexSource, fragmentSource)
	require.ErrorIs(t, err, core.ErrShaderCompile)

	var shaderErr *core.ShaderError
	require.True(t, errors.As(err, &shaderErr))
	assert.Equal(t, core.ShaderStageFragment, shaderErr.Stage)
	assert.Equal(t, "0:3(1): error: syntax error", shaderErr.Log)
	assert.Empty(t, device.Live, "stages are deleted on failure")
}

func TestShaderLinkError(t *testing.T) {
	ctx, device := newTestContext(t, false)
	device.LinkError = "error: main not defined"

	_, err := renderer.NewShader(ctx, vertexSource, fragmentSource)
	assert.ErrorIs(t, err, core.ErrShaderLink)
	assert.Empty(t, device.Live)
}

func TestShaderOrFallback(t *testing.T) {
	ctx, device := newTestContext(t, true)
	device.LinkError = "broken"
	_, err := renderer.NewShader(ctx, vertexSource, fragmentSource)
	require.Error(t, err)

	device.LinkError = ""
	s := renderer.ShaderOrFallback(ctx, nil, err)
	require.NotNil(t, s)
	assert.True(t, s.Shared())
	assert.Same(t, s, renderer.ShaderOrFallback(ctx, nil, errors.New("again")))

	s.Dispose()
	assert.False(t, s.Released(), "the fallback belongs to the context")

	leaks, err := ctx.Shutdown()
	require.NoError(t, err)
	assert.Equal(t, 0, leaks)
	assert.True(t, s.Released())
}

func TestShaderUniformLocationsAreCached(t *testing.T) {
	ctx, device := newTestContext(t, false)
	device.UniformNames["u_color"] = 4

	s, err := renderer.NewShader(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		loc, err := s.UniformLocation("u_color")
		require.NoError(t, err)
		assert.Equal(t, int32(4), loc)
	}
	for i := 0; i < 2; i++ {
		_, err = s.UniformLocation("u_missing")
		assert.ErrorIs(t, err, core.ErrUniformNotFound)
	}
	assert.Equal(t, 2, device.Calls["UniformLocation"])
	s.Dispose()
}

func TestMaterialBind(t *testing.T) {
	ctx, device := newTestContext(t, false)
	device.UniformNames["u_tint"] = 1
	device.UniformNames["u_mvp"] = 2
	device.UniformNames["u_enabled"] = 3

	s, err := renderer.NewShader(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)
	diffuse, err := renderer.TextureFromImage(ctx, rgbaImage(4, 4), settings(renderer.Texture2D))
	require.NoError(t, err)
	normal, err := renderer.TextureFromImage(ctx, rgbaImage(4, 4), settings(renderer.Texture2D))
	require.NoError(t, err)

	m, err := renderer.NewMaterial(ctx, s, diffuse, normal)
	require.NoError(t, err)
	require.NoError(t, m.SetUniform("u_tint", renderer.UniformVec4{1, 0, 0, 1}))
	require.NoError(t, m.SetUniform("u_mvp", renderer.UniformMat4(mgl32.Ident4())))
	require.NoError(t, m.SetUniform("u_enabled", renderer.UniformBool(true)))
	require.NoError(t, m.SetUniform("u_tint", renderer.UniformVec4{0, 1, 0, 1}))
	assert.Equal(t, []string{"u_tint", "u_mvp", "u_enabled"}, m.UniformNames())

	require.NoError(t, m.Bind())
	assert.Equal(t, diffuse.Handle(), ctx.Bindings.BoundTexture(0))
	assert.Equal(t, normal.Handle(), ctx.Bindings.BoundTexture(1))
	assert.Equal(t, s.Handle(), ctx.Bindings.BoundProgram())

	require.Len(t, device.Uniforms, 3)
	assert.Equal(t, []float32{0, 1, 0, 1}, device.Uniforms[0].Floats)
	assert.Equal(t, 4, device.Uniforms[1].Columns)
	assert.Equal(t, 4, device.Uniforms[1].Rows)
	assert.Equal(t, []int32{1}, device.Uniforms[2].Ints)

	v, ok := m.Uniform("u_enabled")
	require.True(t, ok)
	assert.Equal(t, renderer.UniformBool(true), v)

	m.Dispose()
	m.Dispose()
	assert.True(t, s.Released())
	assert.True(t, diffuse.Released())
	assert.True(t, normal.Released())
	assert.Empty(t, device.Live)
}

func TestMaterialUnknownUniform(t *testing.T) {
	ctx, _ := newTestContext(t, false)

	s, err := renderer.NewShader(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)
	m, err := renderer.NewMaterial(ctx, s)
	require.NoError(t, err)
	require.NoError(t, m.SetUniform("u_nope", renderer.UniformFloat(1)))

	assert.ErrorIs(t, m.Bind(), core.ErrUniformNotFound)
	m.Dispose()
}

func TestMaterialTextureLimit(t *testing.T) {
	ctx, device := newTestContext(t, false)
	device.LimitsValue.MaxTextureImageUnits = 1
	ctx.Limits = device.LimitsValue

	s, err := renderer.NewShader(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)
	a, err := renderer.TextureFromImage(ctx, rgbaImage(2, 2), settings(renderer.Texture2D))
	require.NoError(t, err)
	b, err := renderer.TextureFromImage(ctx, rgbaImage(2, 2), settings(renderer.Texture2D))
	require.NoError(t, err)

	_, err = renderer.NewMaterial(ctx, s, a, b)
	assert.ErrorIs(t, err, core.ErrDeviceLimitExceeded)

	s.Dispose()
	a.Dispose()
	b.Dispose()
}

func TestMatrixUniformShapes(t *testing.T) {
	ctx, device := newTestContext(t, false)
	device.UniformNames["m"] = 0

	s, err := renderer.NewShader(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)

	tests := []struct {
		value         renderer.UniformValue
		columns, rows int
	}{
		{renderer.UniformMat2x3{}, 2, 3},
		{renderer.UniformMat3x2{}, 3, 2},
		{renderer.UniformMat4x3{}, 4, 3},
		{renderer.UniformMat3x4{}, 3, 4},
	}
	for _, tt := range tests {
		require.NoError(t, s.SetUniform("m", tt.value))
		last := device.Uniforms[len(device.Uniforms)-1]
		assert.Equal(t, tt.columns, last.Columns)
		assert.Equal(t, tt.rows, last.Rows)
		assert.Len(t, last.Floats, tt.columns*tt.rows)
	}
	s.Dispose()
}
