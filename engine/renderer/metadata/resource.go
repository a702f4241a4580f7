package metadata

/** @brief Kinds of files the asset manager knows how to load. */
type ResourceType uint8

const (
	ResourceTypeNone ResourceType = iota
	/** @brief Decoded to RGBA ImageData. */
	ResourceTypeImage
	/** @brief Read as UTF-8 text, used for shader sources. */
	ResourceTypeText
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeImage:
		return "image"
	case ResourceTypeText:
		return "text"
	}
	return "none"
}

/**
 * @brief A loaded file. Data is *ImageData for images and string for text.
 */
type Resource struct {
	Name     string
	FullPath string
	DataSize uint64
	Data     interface{}
}
