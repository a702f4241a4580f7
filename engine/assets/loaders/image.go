package loaders

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// decoders registered with image.Decode
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/resonance/engine/renderer/metadata"
)

/** @brief Parameters used when loading an image. */
type ImageParams struct {
	/** @brief Indicates if the image should be flipped on the y-axis when loaded. */
	FlipY bool
	/** @brief Images larger than this on either side are scaled down to fit. 0 keeps the size. */
	MaxSize int
}

type ImageLoader struct{}

func (il *ImageLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	typedParams, _ := params.(*ImageParams)
	if typedParams == nil {
		typedParams = &ImageParams{}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := DecodeImage(file, *typedParams)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(data.Pixels)),
		Data:     data,
	}, nil
}

func (il *ImageLoader) Unload(*metadata.Resource) error {
	return nil
}

// DecodeImage decodes any registered format (png, jpeg, bmp, webp) into
// tightly packed RGBA.
func DecodeImage(r io.Reader, params ImageParams) (*metadata.ImageData, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	width, height := fitSize(bounds.Dx(), bounds.Dy(), params.MaxSize)
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == bounds.Dx() && height == bounds.Dy() {
		draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), src, bounds, draw.Src, nil)
	}

	if params.FlipY {
		flipRows(rgba)
	}

	return &metadata.ImageData{
		Width:  uint32(width),
		Height: uint32(height),
		Pixels: rgba.Pix,
	}, nil
}

func fitSize(width, height, maxSize int) (int, int) {
	if maxSize <= 0 || (width <= maxSize && height <= maxSize) {
		return width, height
	}
	if width >= height {
		return maxSize, max(1, height*maxSize/width)
	}
	return max(1, width*maxSize/height), maxSize
}

func flipRows(img *image.RGBA) {
	stride := img.Stride
	rows := img.Rect.Dy()
	tmp := make([]uint8, stride)
	for y := 0; y < rows/2; y++ {
		top := img.Pix[y*stride : (y+1)*stride]
		bottom := img.Pix[(rows-1-y)*stride : (rows-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
