package renderer

import "github.com/spaghettifunk/jackal/engine/math"

/**
 * @brief Represents the dimensionality of a texture.
 */
type TextureType uint8

const (
	/** @brief A one-dimensional texture. */
	Texture1D TextureType = iota
	/** @brief A standard two-dimensional texture. */
	Texture2D
	/** @brief A volume texture built from a stack of equally sized images. */
	Texture3D
	/** @brief An array of one-dimensional layers. */
	Texture1DArray
	/** @brief An array of two-dimensional layers. */
	Texture2DArray
	/** @brief A cube texture, used for cubemaps. Built from six square faces. */
	TextureCubeMap
)

func (t TextureType) String() string {
	switch t {
	case Texture1D:
		return "1D"
	case Texture2D:
		return "2D"
	case Texture3D:
		return "3D"
	case Texture1DArray:
		return "1D array"
	case Texture2DArray:
		return "2D array"
	case TextureCubeMap:
		return "cube map"
	}
	return "unknown"
}

// singleImage reports whether the type is built from exactly one image.
func (t TextureType) singleImage() bool {
	return t == Texture1D || t == Texture2D
}

/**
 * @brief The channel layout of pixel data.
 */
type TextureFormat uint8

const (
	FormatR TextureFormat = iota
	FormatRG
	FormatRGB
	FormatBGR
	FormatRGBA
	FormatBGRA
)

/** @brief Returns the number of channels per pixel. */
func (f TextureFormat) Channels() int {
	switch f {
	case FormatR:
		return 1
	case FormatRG:
		return 2
	case FormatRGB, FormatBGR:
		return 3
	}
	return 4
}

func (f TextureFormat) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatRG:
		return "RG"
	case FormatRGB:
		return "RGB"
	case FormatBGR:
		return "BGR"
	case FormatRGBA:
		return "RGBA"
	case FormatBGRA:
		return "BGRA"
	}
	return "unknown"
}

/**
 * @brief Bits per channel.
 */
type BitDepth uint8

const (
	Depth8  BitDepth = 8
	Depth16 BitDepth = 16
)

/**
 * @brief Represents supported texture wrapping modes.
 */
type TextureWrap uint8

const (
	/** @brief Repeats the texture. */
	WrapRepeat TextureWrap = iota
	/** @brief Reverses the texture on each repeat. */
	WrapMirroredRepeat
	/** @brief Stretches the edge texel. */
	WrapClampToEdge
)

/**
 * @brief Represents supported texture filtering modes.
 */
type TextureFilter uint8

const (
	/** @brief Use the context default filter. */
	FilterDefault TextureFilter = iota
	FilterNearest
	FilterLinear
	FilterNearestMipNearest
	FilterNearestMipLinear
	FilterLinearMipNearest
	FilterLinearMipLinear
)

func (f TextureFilter) usesMipmaps() bool {
	return f >= FilterNearestMipNearest
}

// minMag splits the filter into the minification and magnification filters.
// Without mipmaps the minification filter drops its mip component.
func (f TextureFilter) minMag(mipmaps bool) (TextureFilter, TextureFilter) {
	mag := FilterLinear
	if f == FilterNearest || f == FilterNearestMipNearest || f == FilterNearestMipLinear {
		mag = FilterNearest
	}
	minFilter := f
	if !mipmaps && f.usesMipmaps() {
		minFilter = mag
	}
	return minFilter, mag
}

/**
 * @brief Maximum anisotropic filtering samples.
 */
type Anisotropy float32

const (
	/** @brief Use the context default anisotropy. */
	AnisotropyDefault Anisotropy = 0
	AnisotropyNone    Anisotropy = 1
	Anisotropy2x      Anisotropy = 2
	Anisotropy4x      Anisotropy = 4
	Anisotropy8x      Anisotropy = 8
	Anisotropy16x     Anisotropy = 16
)

// AnisotropyFromFloat rounds down to the nearest supported level.
func AnisotropyFromFloat(v float32) Anisotropy {
	switch {
	case v >= 16:
		return Anisotropy16x
	case v >= 8:
		return Anisotropy8x
	case v >= 4:
		return Anisotropy4x
	case v >= 2:
		return Anisotropy2x
	}
	return AnisotropyNone
}

// Clamp limits the anisotropy to what the device supports.
func (a Anisotropy) Clamp(limit float32) Anisotropy {
	if limit < 1 {
		limit = 1
	}
	return Anisotropy(math.Clamp(float32(a), 1, limit))
}

/**
 * @brief The face of a cube map, in upload order.
 */
type CubeMapFace uint8

const (
	CubeMapPositiveX CubeMapFace = iota
	CubeMapNegativeX
	CubeMapPositiveY
	CubeMapNegativeY
	CubeMapPositiveZ
	CubeMapNegativeZ
	cubeMapFaceCount
)

// TextureRegion addresses the part of a texture written by an upload.
// Layer is the z offset for 3D and array textures and the face index for cube maps.
type TextureRegion struct {
	Level  int32
	Layer  int32
	Width  int32
	Height int32
	Depth  int32
}

// TextureParameters are the sampler states applied to a texture.
type TextureParameters struct {
	Wrap       TextureWrap
	MinFilter  TextureFilter
	MagFilter  TextureFilter
	Anisotropy Anisotropy
}

/**
 * @brief Settings used when creating a texture.
 */
type TextureSettings struct {
	Type TextureType
	Wrap TextureWrap
	/** @brief Overrides the context filter unless FilterDefault. */
	Filter TextureFilter
	/** @brief Allocates and generates the full mip chain. Ignored for cube maps. */
	Mipmaps bool
	/** @brief Overrides the context anisotropy unless AnisotropyDefault. */
	Anisotropy Anisotropy
}

func DefaultTextureSettings() TextureSettings {
	return TextureSettings{
		Type:    Texture2D,
		Wrap:    WrapRepeat,
		Mipmaps: true,
	}
}

/**
 * @brief Decoded pixel data for one image. Exactly one of Pix8 and Pix16 is
 * used, according to BitDepth.
 */
type Image struct {
	Width    int32
	Height   int32
	Format   TextureFormat
	BitDepth BitDepth
	Pix8     []uint8
	Pix16    []uint16
}

func (img *Image) pixels() any {
	if img.BitDepth == Depth16 {
		return img.Pix16
	}
	return img.Pix8
}

func (img *Image) payloadLen() int {
	if img.BitDepth == Depth16 {
		return len(img.Pix16)
	}
	return len(img.Pix8)
}

// TextureLoader decodes image files.
type TextureLoader interface {
	LoadImage(path string) (*Image, error)
}
