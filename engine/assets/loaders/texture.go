package loaders

import (
	"fmt"
	"image"
	"image/color"
	"os"

	// decoders registered with image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/jackal/engine/renderer"
)

// TextureLoader decodes image files into pixel data ready for upload.
type TextureLoader struct {
	// FlipY stores the bottom row first, matching OpenGL texture coordinates.
	FlipY bool
}

func NewTextureLoader() *TextureLoader {
	return &TextureLoader{FlipY: true}
}

func (tl *TextureLoader) Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
}

func (tl *TextureLoader) LoadImage(path string) (*renderer.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, kind, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	out := ConvertImage(img, tl.FlipY)
	if out.Width == 0 || out.Height == 0 {
		return nil, fmt.Errorf("%s image %q has no pixels", kind, path)
	}
	return out, nil
}

// ConvertImage maps a decoded image onto the texture formats: grey images
// become R, opaque images RGB and everything else RGBA. 16 bit sources keep
// their precision.
func ConvertImage(img image.Image, flipY bool) *renderer.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &renderer.Image{Width: int32(w), Height: int32(h), BitDepth: renderer.Depth8}

	row := func(y int) int {
		if flipY {
			return h - 1 - y
		}
		return y
	}

	switch src := img.(type) {
	case *image.Gray:
		out.Format = renderer.FormatR
		out.Pix8 = make([]uint8, w*h)
		for y := 0; y < h; y++ {
			copy(out.Pix8[row(y)*w:], src.Pix[y*src.Stride:y*src.Stride+w])
		}
		return out

	case *image.Gray16:
		out.Format = renderer.FormatR
		out.BitDepth = renderer.Depth16
		out.Pix16 = make([]uint16, w*h)
		for y := 0; y < h; y++ {
			line := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				out.Pix16[row(y)*w+x] = uint16(line[2*x])<<8 | uint16(line[2*x+1])
			}
		}
		return out

	case *image.RGBA64, *image.NRGBA64:
		out.BitDepth = renderer.Depth16
		channels := channelsFor(img)
		out.Format = formatFor(channels)
		out.Pix16 = make([]uint16, w*h*channels)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
				i := (row(y)*w + x) * channels
				out.Pix16[i], out.Pix16[i+1], out.Pix16[i+2] = c.R, c.G, c.B
				if channels == 4 {
					out.Pix16[i+3] = c.A
				}
			}
		}
		return out
	}

	channels := channelsFor(img)
	out.Format = formatFor(channels)
	out.Pix8 = make([]uint8, w*h*channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := (row(y)*w + x) * channels
			out.Pix8[i], out.Pix8[i+1], out.Pix8[i+2] = c.R, c.G, c.B
			if channels == 4 {
				out.Pix8[i+3] = c.A
			}
		}
	}
	return out
}

func channelsFor(img image.Image) int {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

func formatFor(channels int) renderer.TextureFormat {
	if channels == 3 {
		return renderer.FormatRGB
	}
	return renderer.FormatRGBA
}
