package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/resonance/engine/renderer/metadata"
)

// twoRows is a 2x2 image, red on top and blue at the bottom.
func twoRows(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.Set(x, 0, color.NRGBA{R: 255, A: 255})
		img.Set(x, 1, color.NRGBA{B: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImageToRGBA(t *testing.T) {
	data, err := DecodeImage(bytes.NewReader(twoRows(t)), ImageParams{})
	require.NoError(t, err)

	assert.Equal(t, uint32(2), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.True(t, data.Valid())
	assert.Equal(t, []uint8{255, 0, 0, 255}, data.Pixels[0:4])
	assert.Equal(t, []uint8{0, 0, 255, 255}, data.Pixels[8:12])
}

func TestDecodeImageFlipY(t *testing.T) {
	data, err := DecodeImage(bytes.NewReader(twoRows(t)), ImageParams{FlipY: true})
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 255, 255}, data.Pixels[0:4])
	assert.Equal(t, []uint8{255, 0, 0, 255}, data.Pixels[8:12])
}

func TestDecodeImageMaxSize(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 16))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	data, err := DecodeImage(&buf, ImageParams{MaxSize: 32})
	require.NoError(t, err)
	assert.Equal(t, uint32(32), data.Width)
	assert.Equal(t, uint32(8), data.Height)
	assert.True(t, data.Valid())
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	_, err := DecodeImage(bytes.NewReader([]byte("not an image")), ImageParams{})
	assert.Error(t, err)
}

func TestLoadersReadFiles(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "rows.png")
	require.NoError(t, os.WriteFile(imgPath, twoRows(t), 0o644))
	txtPath := filepath.Join(dir, "particles.frag")
	require.NoError(t, os.WriteFile(txtPath, []byte("void main() {}"), 0o644))

	res, err := (&ImageLoader{}).Load(imgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "rows.png", res.Name)
	assert.Equal(t, uint64(16), res.DataSize)
	assert.IsType(t, &metadata.ImageData{}, res.Data)

	res, err = (&TextLoader{}).Load(txtPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", res.Data)

	_, err = (&TextLoader{}).Load(filepath.Join(dir, "missing"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
