package metadata

/**
 * @brief Decoded image pixels ready for a texture upload.
 */
type ImageData struct {
	/** @brief The width of the image. */
	Width uint32
	/** @brief The height of the image. */
	Height uint32
	/** @brief Tightly packed RGBA pixels, row by row from the top. */
	Pixels []uint8
}

// ChannelCount is fixed, images are always expanded to RGBA on load.
const ChannelCount = 4

// Valid reports whether Pixels covers Width x Height RGBA texels.
func (img *ImageData) Valid() bool {
	return img != nil && len(img.Pixels) == int(img.Width)*int(img.Height)*ChannelCount
}
