package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 200, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, testImage(w, h)))
}

func TestDecodeTexturePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(3, 2)))

	tex, err := DecodeTexture("face", &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, tex.Width)
	assert.Equal(t, 2, tex.Height)
	require.Len(t, tex.Pixels, 3*2*4)
	// pixel (2, 1)
	assert.Equal(t, []byte{80, 40, 200, 255}, tex.Pixels[(1*3+2)*4:(1*3+2)*4+4])
}

func TestDecodeTextureBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage(4, 4)))

	tex, err := DecodeTexture("sky_rt.bmp", &buf)
	require.NoError(t, err)
	assert.Equal(t, 4, tex.Width)
	assert.Len(t, tex.Pixels, 4*4*4)
	assert.Equal(t, []byte{0, 0, 200, 255}, tex.Pixels[:4])
}

func TestDecodeTextureRejectsGarbage(t *testing.T) {
	_, err := DecodeTexture("junk", bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestLoadTextureMissingFile(t *testing.T) {
	_, err := LoadTexture("does/not/exist.png")
	assert.ErrorContains(t, err, "open texture")
}

func TestNewSolidTexture(t *testing.T) {
	tex := NewSolidTexture("white", 255, 255, 255, 255)
	assert.Equal(t, 1, tex.Width)
	assert.Equal(t, []byte{255, 255, 255, 255}, tex.Pixels)
}

func TestFlippedPixels(t *testing.T) {
	tex := &Texture{Name: "rows", Width: 1, Height: 3, Pixels: []byte{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
	}}
	out := tex.FlippedPixels()
	assert.Equal(t, []byte{3, 3, 3, 3, 2, 2, 2, 2, 1, 1, 1, 1}, out)
	assert.Equal(t, byte(1), tex.Pixels[0], "source rows untouched")
}
