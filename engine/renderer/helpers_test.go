package renderer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/jackal/engine/internal/fakes"
	"github.com/spaghettifunk/jackal/engine/renderer"
)

func newTestContext(t *testing.T, debug bool) (*renderer.Context, *fakes.Device) {
	t.Helper()
	device := fakes.NewDevice()
	ctx, err := renderer.NewContext(device, debug)
	require.NoError(t, err)
	return ctx, device
}

type vertex struct {
	Position [3]float32
	UV       [2]float32
}

func quad() []vertex {
	return []vertex{
		{Position: [3]float32{-1, -1, 0}, UV: [2]float32{0, 0}},
		{Position: [3]float32{1, -1, 0}, UV: [2]float32{1, 0}},
		{Position: [3]float32{1, 1, 0}, UV: [2]float32{1, 1}},
		{Position: [3]float32{-1, 1, 0}, UV: [2]float32{0, 1}},
	}
}

func rgbaImage(w, h int32) *renderer.Image {
	return &renderer.Image{
		Width:    w,
		Height:   h,
		Format:   renderer.FormatRGBA,
		BitDepth: renderer.Depth8,
		Pix8:     make([]uint8, int(w*h)*4),
	}
}
