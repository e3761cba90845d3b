package renderer

import (
	"fmt"
	"math/bits"

	"github.com/spaghettifunk/jackal/engine/core"
)

// Texture is an immutable-storage GPU texture of any TextureType.
type Texture struct {
	resource

	kind   TextureType
	format TextureFormat
	depth  BitDepth
	width  int32
	height int32
	layers int32
	levels int32
	params TextureParameters
}

// TextureFromImage creates a 1D or 2D texture from a single image.
func TextureFromImage(ctx *Context, img *Image, settings TextureSettings) (*Texture, error) {
	if !settings.Type.singleImage() {
		core.LogError("texture: a %s texture cannot be built from a single image", settings.Type)
		return nil, fmt.Errorf("texture: %s from a single image: %w", settings.Type, core.ErrUnsupportedConfiguration)
	}
	if err := validateImage(img, settings.Type); err != nil {
		return nil, err
	}
	if err := checkTextureLimits(ctx.Limits, settings.Type, img.Width, img.Height, 1); err != nil {
		core.LogError("texture: %s", err)
		return nil, err
	}
	return createTexture(ctx, settings, []*Image{img})
}

// TextureFromImages creates a 3D, array or cube map texture. Every image
// must match the first one in size, format and bit depth. Cube maps take
// six square faces in CubeMapFace order.
func TextureFromImages(ctx *Context, imgs []*Image, settings TextureSettings) (*Texture, error) {
	if settings.Type.singleImage() {
		core.LogError("texture: a %s texture cannot be built from multiple images", settings.Type)
		return nil, fmt.Errorf("texture: %s from multiple images: %w", settings.Type, core.ErrUnsupportedConfiguration)
	}
	if len(imgs) == 0 {
		return nil, fmt.Errorf("texture: no images: %w", core.ErrInvalidArgument)
	}
	first := imgs[0]
	for i, img := range imgs {
		if err := validateImage(img, settings.Type); err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		if img.Width != first.Width || img.Height != first.Height || img.Format != first.Format || img.BitDepth != first.BitDepth {
			core.LogError("texture: image %d is %dx%d %s/%d, image 0 is %dx%d %s/%d", i,
				img.Width, img.Height, img.Format, img.BitDepth, first.Width, first.Height, first.Format, first.BitDepth)
			return nil, fmt.Errorf("texture: image %d differs from image 0: %w", i, core.ErrFormatMismatch)
		}
	}
	if settings.Type == TextureCubeMap {
		if len(imgs) != int(cubeMapFaceCount) {
			return nil, fmt.Errorf("texture: cube map needs %d faces, got %d: %w", cubeMapFaceCount, len(imgs), core.ErrInvalidArgument)
		}
		if first.Width != first.Height {
			return nil, fmt.Errorf("texture: cube map faces must be square, got %dx%d: %w", first.Width, first.Height, core.ErrInvalidArgument)
		}
	}
	if err := checkTextureLimits(ctx.Limits, settings.Type, first.Width, first.Height, int32(len(imgs))); err != nil {
		core.LogError("texture: %s", err)
		return nil, err
	}
	return createTexture(ctx, settings, imgs)
}

// TextureFromFile decodes path with loader and creates a 1D or 2D texture.
func TextureFromFile(ctx *Context, loader TextureLoader, path string, settings TextureSettings) (*Texture, error) {
	if !settings.Type.singleImage() {
		return nil, fmt.Errorf("texture %q: %s from a single image: %w", path, settings.Type, core.ErrUnsupportedConfiguration)
	}
	img, err := loader.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", path, err)
	}
	t, err := TextureFromImage(ctx, img, settings)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", path, err)
	}
	t.relabel(path)
	return t, nil
}

func TextureFromFiles(ctx *Context, loader TextureLoader, paths []string, settings TextureSettings) (*Texture, error) {
	if settings.Type.singleImage() {
		return nil, fmt.Errorf("texture: %s from multiple images: %w", settings.Type, core.ErrUnsupportedConfiguration)
	}
	imgs := make([]*Image, 0, len(paths))
	for _, path := range paths {
		img, err := loader.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", path, err)
		}
		imgs = append(imgs, img)
	}
	return TextureFromImages(ctx, imgs, settings)
}

func validateImage(img *Image, kind TextureType) error {
	if img == nil {
		return fmt.Errorf("texture: nil image: %w", core.ErrInvalidArgument)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("texture: image size %dx%d: %w", img.Width, img.Height, core.ErrInvalidArgument)
	}
	if (kind == Texture1D || kind == Texture1DArray) && img.Height != 1 {
		return fmt.Errorf("texture: %s image with height %d: %w", kind, img.Height, core.ErrInvalidArgument)
	}
	if img.BitDepth != Depth8 && img.BitDepth != Depth16 {
		return fmt.Errorf("texture: bit depth %d: %w", img.BitDepth, core.ErrInvalidArgument)
	}
	want := int(img.Width) * int(img.Height) * img.Format.Channels()
	if got := img.payloadLen(); got != want {
		return fmt.Errorf("texture: %dx%d %s image has %d components, want %d: %w",
			img.Width, img.Height, img.Format, got, want, core.ErrInvalidArgument)
	}
	return nil
}

// checkTextureLimits compares the requested size with the device maximum for
// the texture kind. A zero limit is treated as unknown.
func checkTextureLimits(limits DeviceLimits, kind TextureType, width, height, layers int32) error {
	exceeds := func(what string, v int32, limit int) error {
		if limit > 0 && int(v) > limit {
			return fmt.Errorf("%s texture %s %d exceeds %d: %w", kind, what, v, limit, core.ErrDeviceLimitExceeded)
		}
		return nil
	}
	var checks []error
	switch kind {
	case Texture1D:
		checks = append(checks, exceeds("width", width, limits.MaxTextureSize))
	case Texture2D:
		checks = append(checks,
			exceeds("width", width, limits.MaxTextureSize),
			exceeds("height", height, limits.MaxTextureSize))
	case Texture3D:
		checks = append(checks,
			exceeds("width", width, limits.Max3DTextureSize),
			exceeds("height", height, limits.Max3DTextureSize),
			exceeds("depth", layers, limits.Max3DTextureSize))
	case Texture1DArray:
		checks = append(checks,
			exceeds("width", width, limits.MaxTextureSize),
			exceeds("layer count", layers, limits.MaxArrayTextureLayers))
	case Texture2DArray:
		checks = append(checks,
			exceeds("width", width, limits.MaxTextureSize),
			exceeds("height", height, limits.MaxTextureSize),
			exceeds("layer count", layers, limits.MaxArrayTextureLayers))
	case TextureCubeMap:
		checks = append(checks, exceeds("face size", width, limits.MaxCubeMapTextureSize))
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// mipLevels returns the length of the full mip chain for the largest dimension.
func mipLevels(dims ...int32) int32 {
	var largest int32
	for _, d := range dims {
		largest = max(largest, d)
	}
	return int32(bits.Len32(uint32(largest)))
}

func createTexture(ctx *Context, settings TextureSettings, imgs []*Image) (*Texture, error) {
	first := imgs[0]
	t := &Texture{
		kind:   settings.Type,
		format: first.Format,
		depth:  first.BitDepth,
		width:  first.Width,
		height: first.Height,
		layers: int32(len(imgs)),
		levels: 1,
	}
	if settings.Mipmaps {
		if t.kind == Texture3D {
			t.levels = mipLevels(t.width, t.height, t.layers)
		} else {
			t.levels = mipLevels(t.width, t.height)
		}
	}

	device := ctx.Device
	handle := device.CreateTexture(t.kind)
	if handle == InvalidHandle {
		return nil, &core.ResourceCreationError{Kind: core.ResourceKindTexture}
	}

	if t.format == FormatRGBA || t.format == FormatBGRA {
		device.SetUnpackAlignment(4)
	} else {
		device.SetUnpackAlignment(1)
	}
	device.TextureStorage(handle, t.kind, t.levels, t.format, t.depth, t.width, t.height, t.layers)
	for i, img := range imgs {
		region := TextureRegion{
			Layer:  int32(i),
			Width:  img.Width,
			Height: img.Height,
			Depth:  1,
		}
		device.TextureSubImage(handle, t.kind, region, t.format, t.depth, img.pixels())
	}
	if t.levels > 1 {
		device.GenerateMipmap(handle)
	}

	filter := settings.Filter
	if filter == FilterDefault {
		filter = ctx.DefaultFilter
	}
	anisotropy := settings.Anisotropy
	if anisotropy == AnisotropyDefault {
		anisotropy = ctx.DefaultAnisotropy
	}
	t.params.Wrap = settings.Wrap
	t.params.MinFilter, t.params.MagFilter = filter.minMag(t.levels > 1)
	t.params.Anisotropy = anisotropy.Clamp(ctx.Limits.MaxAnisotropy)
	device.TextureParameters(handle, t.params)

	t.track(ctx, core.ResourceKindTexture, handle, fmt.Sprintf("%s %dx%dx%d %s", t.kind, t.width, t.height, t.layers, t.format), t)
	return t, nil
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	if !t.live("bind") {
		return
	}
	if limit := t.ctx.Limits.MaxTextureImageUnits; limit > 0 && int(unit) >= limit {
		core.LogError("texture %s: unit %d out of range, device has %d", t.label, unit, limit)
		return
	}
	t.ctx.Bindings.BindTexture(unit, t.handle)
}

func (t *Texture) Dispose() {
	if !t.release(t) {
		return
	}
	t.ctx.Bindings.ReleaseTexture(t.handle)
	t.ctx.Device.DeleteTexture(t.handle)
}

func (t *Texture) Type() TextureType             { return t.kind }
func (t *Texture) Format() TextureFormat         { return t.format }
func (t *Texture) BitDepth() BitDepth            { return t.depth }
func (t *Texture) Width() int32                  { return t.width }
func (t *Texture) Height() int32                 { return t.height }
func (t *Texture) Layers() int32                 { return t.layers }
func (t *Texture) MipLevels() int32              { return t.levels }
func (t *Texture) Parameters() TextureParameters { return t.params }
