package service

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestOptimizeImageFitsWithinVariantBounds(t *testing.T) {
	raw := testPNG(t, 1600, 1200)

	cases := []struct {
		size   string
		maxDim int
	}{
		{"thumb", 300},
		{"medium", 800},
		{"catalog", 120},
	}

	for _, tc := range cases {
		out, err := OptimizeImage(raw, tc.size)
		require.NoError(t, err, "size %s", tc.size)

		decoded, err := jpeg.Decode(bytes.NewReader(out))
		require.NoError(t, err, "size %s", tc.size)
		bounds := decoded.Bounds()
		assert.LessOrEqual(t, bounds.Dx(), tc.maxDim, "size %s width", tc.size)
		assert.LessOrEqual(t, bounds.Dy(), tc.maxDim, "size %s height", tc.size)
		// aspect ratio preserved: 4:3 input stays wider than tall
		assert.Greater(t, bounds.Dx(), bounds.Dy(), "size %s aspect", tc.size)
	}
}

func TestOptimizeImageDoesNotUpscale(t *testing.T) {
	raw := testPNG(t, 80, 60)

	out, err := OptimizeImage(raw, "medium")
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 80, decoded.Bounds().Dx())
	assert.Equal(t, 60, decoded.Bounds().Dy())
}

func TestOptimizeImageUnknownSize(t *testing.T) {
	_, err := OptimizeImage(testPNG(t, 10, 10), "huge")
	assert.Error(t, err)
}

func TestOptimizeImageRejectsGarbage(t *testing.T) {
	_, err := OptimizeImage([]byte("not an image"), "thumb")
	assert.Error(t, err)
}

func TestValidImageSize(t *testing.T) {
	assert.True(t, ValidImageSize("thumb"))
	assert.True(t, ValidImageSize("medium"))
	assert.True(t, ValidImageSize("catalog"))
	assert.False(t, ValidImageSize("huge"))
	assert.False(t, ValidImageSize(""))
}
