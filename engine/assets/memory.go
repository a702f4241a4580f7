package assets

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/renderer/device"
	"github.com/spaghettifunk/resonance/engine/renderer/metadata"
)

// MemoryImages serves images already decoded in memory. Tests and the web
// build, where images are decoded by the browser, use it.
type MemoryImages map[string]*metadata.ImageData

func (m MemoryImages) Image(name string) (*metadata.ImageData, error) {
	img, ok := m[name]
	if !ok || img == nil {
		return nil, fmt.Errorf("image %q: %w", name, core.ErrImageNotFound)
	}
	return img, nil
}

// Chain asks each source in order and returns the first image found.
type Chain []device.ImageSource

func (c Chain) Image(name string) (*metadata.ImageData, error) {
	for _, src := range c {
		if src == nil {
			continue
		}
		img, err := src.Image(name)
		if err == nil {
			return img, nil
		}
		if !errors.Is(err, core.ErrImageNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("image %q: %w", name, core.ErrImageNotFound)
}

/**
 * @brief Generates a white disc on a transparent background with a soft edge,
 * the built in particle sprite used when circle.png is not on disk.
 * @param size side length in pixels.
 */
func Circle(size uint32) *metadata.ImageData {
	img := &metadata.ImageData{
		Width:  size,
		Height: size,
		Pixels: make([]uint8, int(size)*int(size)*metadata.ChannelCount),
	}
	if size == 0 {
		return img
	}

	radius := float32(size) / 2
	for y := uint32(0); y < size; y++ {
		for x := uint32(0); x < size; x++ {
			dx := float32(x) + 0.5 - radius
			dy := float32(y) + 0.5 - radius
			// one pixel of falloff at the rim
			alpha := radius - math32.Sqrt(dx*dx+dy*dy)
			if alpha <= 0 {
				continue
			}
			if alpha > 1 {
				alpha = 1
			}
			i := (int(y)*int(size) + int(x)) * metadata.ChannelCount
			img.Pixels[i+0] = 255
			img.Pixels[i+1] = 255
			img.Pixels[i+2] = 255
			img.Pixels[i+3] = uint8(alpha * 255)
		}
	}
	return img
}
