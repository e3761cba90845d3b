package renderer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/renderer"
)

func settings(kind renderer.TextureType) renderer.TextureSettings {
	s := renderer.DefaultTextureSettings()
	s.Type = kind
	return s
}

func TestTexture2DFromImage(t *testing.T) {
	ctx, device := newTestContext(t, false)

	tex, err := renderer.TextureFromImage(ctx, rgbaImage(256, 64), settings(renderer.Texture2D))
	require.NoError(t, err)

	assert.Equal(t, int32(9), tex.MipLevels())
	require.Len(t, device.Storage, 1)
	assert.Equal(t, int32(9), device.Storage[0].Levels)
	assert.Equal(t, 1, device.Calls["GenerateMipmap"])
	assert.Equal(t, int32(4), device.UnpackAlignment)

	params := device.Params[tex.Handle()]
	assert.Equal(t, renderer.FilterLinearMipLinear, params.MinFilter)
	assert.Equal(t, renderer.FilterLinear, params.MagFilter)
	assert.Equal(t, renderer.AnisotropyNone, params.Anisotropy)

	tex.Bind(2)
	tex.Bind(2)
	assert.Equal(t, 1, device.Calls["BindTextureUnit"])

	tex.Dispose()
	assert.Equal(t, renderer.InvalidHandle, ctx.Bindings.BoundTexture(2))
}

func TestTextureWithoutMipmapsDowngradesFilter(t *testing.T) {
	ctx, device := newTestContext(t, false)

	s := settings(renderer.Texture2D)
	s.Mipmaps = false
	s.Filter = renderer.FilterNearestMipLinear
	s.Anisotropy = renderer.Anisotropy16x
	device.LimitsValue.MaxAnisotropy = 8
	ctx.Limits = device.LimitsValue

	img := &renderer.Image{Width: 3, Height: 3, Format: renderer.FormatRGB, BitDepth: renderer.Depth16, Pix16: make([]uint16, 27)}
	tex, err := renderer.TextureFromImage(ctx, img, s)
	require.NoError(t, err)

	assert.Equal(t, int32(1), tex.MipLevels())
	assert.Equal(t, 0, device.Calls["GenerateMipmap"])
	assert.Equal(t, int32(1), device.UnpackAlignment)
	params := tex.Parameters()
	assert.Equal(t, renderer.FilterNearest, params.MinFilter)
	assert.Equal(t, renderer.FilterNearest, params.MagFilter)
	assert.Equal(t, renderer.Anisotropy8x, params.Anisotropy)
	tex.Dispose()
}

func TestTextureFactoryValidation(t *testing.T) {
	ctx, device := newTestContext(t, false)

	six := func() []*renderer.Image {
		imgs := make([]*renderer.Image, 6)
		for i := range imgs {
			imgs[i] = rgbaImage(8, 8)
		}
		return imgs
	}

	tests := []struct {
		name string
		make func() error
		want error
	}{
		{"cube map from single image", func() error {
			_, err := renderer.TextureFromImage(ctx, rgbaImage(8, 8), settings(renderer.TextureCubeMap))
			return err
		}, core.ErrUnsupportedConfiguration},
		{"3D from single image", func() error {
			_, err := renderer.TextureFromImage(ctx, rgbaImage(8, 8), settings(renderer.Texture3D))
			return err
		}, core.ErrUnsupportedConfiguration},
		{"2D from multiple images", func() error {
			_, err := renderer.TextureFromImages(ctx, six(), settings(renderer.Texture2D))
			return err
		}, core.ErrUnsupportedConfiguration},
		{"3D with mismatched resolution", func() error {
			_, err := renderer.TextureFromImages(ctx, []*renderer.Image{rgbaImage(8, 8), rgbaImage(4, 8)}, settings(renderer.Texture3D))
			return err
		}, core.ErrFormatMismatch},
		{"array with mismatched format", func() error {
			grey := &renderer.Image{Width: 8, Height: 8, Format: renderer.FormatR, BitDepth: renderer.Depth8, Pix8: make([]uint8, 64)}
			_, err := renderer.TextureFromImages(ctx, []*renderer.Image{rgbaImage(8, 8), grey}, settings(renderer.Texture2DArray))
			return err
		}, core.ErrFormatMismatch},
		{"cube map with five faces", func() error {
			_, err := renderer.TextureFromImages(ctx, six()[:5], settings(renderer.TextureCubeMap))
			return err
		}, core.ErrInvalidArgument},
		{"cube map with rectangular faces", func() error {
			imgs := []*renderer.Image{}
			for i := 0; i < 6; i++ {
				imgs = append(imgs, rgbaImage(8, 4))
			}
			_, err := renderer.TextureFromImages(ctx, imgs, settings(renderer.TextureCubeMap))
			return err
		}, core.ErrInvalidArgument},
		{"zero size", func() error {
			_, err := renderer.TextureFromImage(ctx, rgbaImage(0, 8), settings(renderer.Texture2D))
			return err
		}, core.ErrInvalidArgument},
		{"short payload", func() error {
			img := rgbaImage(8, 8)
			img.Pix8 = img.Pix8[:10]
			_, err := renderer.TextureFromImage(ctx, img, settings(renderer.Texture2D))
			return err
		}, core.ErrInvalidArgument},
		{"1D with height", func() error {
			_, err := renderer.TextureFromImage(ctx, rgbaImage(8, 2), settings(renderer.Texture1D))
			return err
		}, core.ErrInvalidArgument},
		{"2D beyond max size", func() error {
			_, err := renderer.TextureFromImage(ctx, rgbaImage(16385, 1), settings(renderer.Texture2D))
			return err
		}, core.ErrDeviceLimitExceeded},
		{"3D beyond max depth", func() error {
			imgs := make([]*renderer.Image, 2049)
			small := rgbaImage(1, 1)
			for i := range imgs {
				imgs[i] = small
			}
			_, err := renderer.TextureFromImages(ctx, imgs, settings(renderer.Texture3D))
			return err
		}, core.ErrDeviceLimitExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.make(), tt.want)
		})
	}
	assert.Equal(t, 0, device.Calls["CreateTexture"])
}

func TestCubeMapUploadsSixFaces(t *testing.T) {
	ctx, device := newTestContext(t, false)

	imgs := make([]*renderer.Image, 6)
	for i := range imgs {
		imgs[i] = rgbaImage(16, 16)
	}
	tex, err := renderer.TextureFromImages(ctx, imgs, settings(renderer.TextureCubeMap))
	require.NoError(t, err)

	require.Len(t, device.SubImages, 6)
	for i, region := range device.SubImages {
		assert.Equal(t, int32(i), region.Layer)
	}
	tex.Dispose()
}

func TestCubeMapMipChainFollowsFaceSize(t *testing.T) {
	ctx, device := newTestContext(t, false)

	imgs := make([]*renderer.Image, 6)
	for i := range imgs {
		imgs[i] = rgbaImage(64, 64)
	}
	tex, err := renderer.TextureFromImages(ctx, imgs, settings(renderer.TextureCubeMap))
	require.NoError(t, err)

	// six faces do not lengthen the chain
	assert.Equal(t, int32(7), tex.MipLevels())
	require.Len(t, device.Storage, 1)
	assert.Equal(t, int32(7), device.Storage[0].Levels)
	assert.Equal(t, 1, device.Calls["GenerateMipmap"])
	assert.Equal(t, renderer.FilterLinearMipLinear, device.Params[tex.Handle()].MinFilter)
	tex.Dispose()

	s := settings(renderer.TextureCubeMap)
	s.Mipmaps = false
	flat, err := renderer.TextureFromImages(ctx, imgs, s)
	require.NoError(t, err)
	assert.Equal(t, int32(1), flat.MipLevels())
	assert.Equal(t, 1, device.Calls["GenerateMipmap"])
	flat.Dispose()
}

func TestTextureAtMaxSizeIsAccepted(t *testing.T) {
	ctx, device := newTestContext(t, false)
	device.LimitsValue.MaxTextureSize = 8
	ctx.Limits = device.LimitsValue

	tex, err := renderer.TextureFromImage(ctx, rgbaImage(8, 8), settings(renderer.Texture2D))
	require.NoError(t, err)
	tex.Dispose()
}

type stubLoader map[string]*renderer.Image

func (l stubLoader) LoadImage(path string) (*renderer.Image, error) {
	img, ok := l[path]
	if !ok {
		return nil, core.ErrInvalidArgument
	}
	return img, nil
}

func TestTextureFromFiles(t *testing.T) {
	ctx, _ := newTestContext(t, true)
	loader := stubLoader{"a.png": rgbaImage(4, 4), "b.png": rgbaImage(4, 4)}

	tex, err := renderer.TextureFromFiles(ctx, loader, []string{"a.png", "b.png"}, settings(renderer.Texture2DArray))
	require.NoError(t, err)
	assert.Equal(t, int32(2), tex.Layers())

	single, err := renderer.TextureFromFile(ctx, loader, "a.png", settings(renderer.Texture2D))
	require.NoError(t, err)
	assert.Equal(t, "a.png", ctx.Registry.Live()[1].Label)

	_, err = renderer.TextureFromFile(ctx, loader, "missing.png", settings(renderer.Texture2D))
	assert.Error(t, err)

	tex.Dispose()
	single.Dispose()
	assert.Equal(t, 0, ctx.Registry.Len())
}
