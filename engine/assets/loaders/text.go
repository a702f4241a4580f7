package loaders

import (
	"os"
	"path/filepath"

	"github.com/spaghettifunk/resonance/engine/renderer/metadata"
)

// TextLoader reads shader sources and other plain text assets.
type TextLoader struct{}

func (tl *TextLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     string(data),
	}, nil
}

func (tl *TextLoader) Unload(*metadata.Resource) error {
	return nil
}
