package components

import (
	"fmt"

	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/renderer/device"
)

/** @brief Sampling state applied after each upload. Zero fields are left at the device default. */
type TextureParameters struct {
	MinFilter device.Enum
	MagFilter device.Enum
	WrapS     device.Enum
	WrapT     device.Enum
}

// Texture is a 2D RGBA texture filled from a named image.
type Texture struct {
	Object3D

	texture device.TextureID
	name    string
	params  TextureParameters
}

func NewTexture(gl *device.Context) *Texture {
	return &Texture{
		Object3D: NewObject3D(gl),
		texture:  gl.CreateTexture(),
	}
}

func (t *Texture) ID() device.TextureID {
	return t.texture
}

// Name is the image last loaded into the texture.
func (t *Texture) Name() string {
	return t.name
}

func (t *Texture) SetParameters(params TextureParameters) {
	t.params = params
}

// Load binds the texture and uploads the named image as level 0.
func (t *Texture) Load(imageName string) error {
	gl := t.Context()
	gl.BindTexture(device.TEXTURE_2D, t.texture)
	// kept on failure so a later Reload can retry once the image exists
	t.name = imageName

	image, err := gl.StageImage(imageName)
	if err != nil {
		err = fmt.Errorf("texture %d: %w", t.texture, err)
		core.LogError(err.Error())
		return err
	}
	gl.TexImage2D(device.TEXTURE_2D, 0, device.RGBA, device.RGBA, device.UNSIGNED_BYTE, image)
	if err := gl.ReleaseImage(image); err != nil {
		return err
	}

	t.applyParameters()
	return nil
}

// Reload uploads the last loaded image again.
func (t *Texture) Reload() error {
	if t.name == "" {
		return fmt.Errorf("texture %d has no image: %w", t.texture, core.ErrImageNotFound)
	}
	return t.Load(t.name)
}

func (t *Texture) applyParameters() {
	gl := t.Context()
	set := func(pname, param device.Enum) {
		if param != 0 {
			gl.TexParameteri(device.TEXTURE_2D, pname, int(param))
		}
	}
	set(device.TEXTURE_MIN_FILTER, t.params.MinFilter)
	set(device.TEXTURE_MAG_FILTER, t.params.MagFilter)
	set(device.TEXTURE_WRAP_S, t.params.WrapS)
	set(device.TEXTURE_WRAP_T, t.params.WrapT)
}

// Activate binds the texture on texture unit unit.
func (t *Texture) Activate(unit int) {
	gl := t.Context()
	gl.ActiveTexture(device.TEXTURE0 + device.Enum(unit))
	gl.BindTexture(device.TEXTURE_2D, t.texture)
}
